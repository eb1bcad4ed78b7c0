package termgrid

import "io"

// ResponseProvider receives terminal responses (cursor position
// reports, status replies) on their way back to the PTY. Typically an
// io.Writer connected to the PTY input.
type ResponseProvider = io.Writer

// NoopResponse discards all response data.
type NoopResponse struct{}

func (NoopResponse) Write(p []byte) (n int, err error) {
	return len(p), nil
}

// BellProvider handles bell events triggered by BEL (0x07).
type BellProvider interface {
	// Ring is called when a bell character is received.
	Ring()
}

// NoopBell ignores all bell events.
type NoopBell struct{}

func (NoopBell) Ring() {}

// TitleProvider handles window title changes (OSC 0, 1, 2).
type TitleProvider interface {
	// SetTitle is called when the title changes.
	SetTitle(title string)
	// PushTitle saves the current title to the stack.
	PushTitle()
	// PopTitle restores the title from the stack.
	PopTitle()
}

// NoopTitle ignores all title operations.
type NoopTitle struct{}

func (NoopTitle) SetTitle(title string) {}
func (NoopTitle) PushTitle()            {}
func (NoopTitle) PopTitle()             {}

// Ensure implementations satisfy their interfaces
var _ ResponseProvider = NoopResponse{}
var _ BellProvider = NoopBell{}
var _ TitleProvider = NoopTitle{}
