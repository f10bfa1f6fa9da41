package enums

// CaptureState tracks where the clipboard-capture pipeline currently is.
type CaptureState string

const (
	CaptureStateIdle         CaptureState = "idle"
	CaptureStateAwaitingCopy CaptureState = "awaiting_copy"
	CaptureStateProcessing   CaptureState = "processing"
)

// String implements fmt.Stringer.
func (s CaptureState) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CaptureState.
func (s CaptureState) IsValid() bool {
	switch s {
	case CaptureStateIdle, CaptureStateAwaitingCopy, CaptureStateProcessing:
		return true
	}
	return false
}
