package capture

// Hotkey registers a global key combination with the desktop shell. No OS
// implementation ships in this repo; the shell provides one and the tests
// provide doubles.
type Hotkey interface {
	// Register claims the combination, e.g. "ctrl+shift+d".
	Register(combination string) error

	// OnFired installs the callback invoked every time the combination is
	// pressed.
	OnFired(fn func())
}
