package termgrid

import (
	"github.com/danielgatis/go-ansicode"
)

// Ensure Terminal implements ansicode.Handler
var _ ansicode.Handler = (*Terminal)(nil)

// tabWidth is the fixed tab stop interval.
const tabWidth = 8

// Terminal couples a Grid to an ANSI escape decoder. It implements
// io.Writer, so raw PTY output can be piped straight in, and
// ansicode.Handler, which maps the decoded stream onto the grid's
// write, insert and cursor operations.
//
// Sequences with no counterpart in the cell grid (charsets, keyboard
// modes, graphics, clipboard) are accepted and ignored, or forwarded
// to the configured providers.
//
// Like the grid itself, a Terminal is single-threaded; callers
// serialise access.
type Terminal struct {
	grid    *Grid
	decoder *ansicode.Decoder

	// SGR state folded into the grid's attribute word
	fg    Color
	bg    Color
	style StyleFlag

	// IRM: Input shifts instead of overwriting
	insertMode bool

	savedRow int
	savedCol int

	title      string
	titleStack []string

	responseProvider ResponseProvider
	bellProvider     BellProvider
	titleProvider    TitleProvider
}

// TerminalOption configures a Terminal during construction.
type TerminalOption func(*Terminal)

// WithGrid sets the grid the terminal feeds. Defaults to New().
func WithGrid(g *Grid) TerminalOption {
	return func(t *Terminal) {
		t.grid = g
	}
}

// WithResponse sets the writer for terminal responses (cursor position
// reports and the like). If not set, responses are discarded.
func WithResponse(p ResponseProvider) TerminalOption {
	return func(t *Terminal) {
		t.responseProvider = p
	}
}

// WithBell sets the handler for bell events. Defaults to a no-op.
func WithBell(p BellProvider) TerminalOption {
	return func(t *Terminal) {
		t.bellProvider = p
	}
}

// WithTitle sets the handler for window title changes. Defaults to a
// no-op.
func WithTitle(p TitleProvider) TerminalOption {
	return func(t *Terminal) {
		t.titleProvider = p
	}
}

// NewTerminal creates a terminal with the given options.
func NewTerminal(opts ...TerminalOption) *Terminal {
	t := &Terminal{
		fg:               ColorDefaultFG,
		bg:               ColorDefaultBG,
		responseProvider: NoopResponse{},
		bellProvider:     NoopBell{},
		titleProvider:    NoopTitle{},
	}

	for _, opt := range opts {
		opt(t)
	}

	if t.grid == nil {
		t.grid = New()
	}
	t.decoder = ansicode.NewDecoder(t)

	return t
}

// Grid returns the grid the terminal feeds.
func (t *Terminal) Grid() *Grid {
	return t.grid
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	return t.title
}

// InsertMode returns true while IRM insert mode is active.
func (t *Terminal) InsertMode() bool {
	return t.insertMode
}

// Write processes raw bytes, parsing ANSI escape sequences and
// updating the grid. Implements io.Writer.
func (t *Terminal) Write(data []byte) (int, error) {
	return t.decoder.Write(data)
}

// WriteString converts s to bytes and calls Write.
func (t *Terminal) WriteString(s string) (int, error) {
	return t.Write([]byte(s))
}

// writeResponse sends a response string back via the response
// provider.
func (t *Terminal) writeResponse(s string) {
	if t.responseProvider != nil {
		t.responseProvider.Write([]byte(s))
	}
}

// applyAttributes folds the accumulated SGR state into the grid's
// current attribute word.
func (t *Terminal) applyAttributes() {
	t.grid.SetAttributes(t.fg, t.bg, t.style)
}
