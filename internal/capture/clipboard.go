package capture

import (
	"github.com/atotto/clipboard"

	pkgerrors "github.com/ccoppo/AcronymLookupTool/pkg/errors"
)

// Clipboard is the pipeline's view of the system clipboard.
type Clipboard interface {
	// ReadText returns the current clipboard text.
	ReadText() (string, error)

	// RequestCopy asks the environment to copy the current selection. Best
	// effort: the actual keystroke injection lives in the desktop shell, not
	// in this process.
	RequestCopy() error
}

// SystemClipboard reads the real OS clipboard.
type SystemClipboard struct{}

var _ Clipboard = SystemClipboard{}

func (SystemClipboard) ReadText() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read clipboard")
	}
	return text, nil
}

// RequestCopy is a no-op at this boundary. The shell that owns the keyboard
// hook issues the copy before handing control here.
func (SystemClipboard) RequestCopy() error {
	return nil
}
