package termgrid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultWidth is the default grid width in columns.
	DefaultWidth = 80
	// DefaultHeight is the default grid height in rows.
	DefaultHeight = 24
)

// ErrOutOfRange is returned by the query surface when a row or column
// does not address a cell currently held by the screen or scrollback.
var ErrOutOfRange = errors.New("termgrid: out of range")

// Grid is the cell grid of a terminal: a fixed-height visible screen
// over a bounded scrollback tail, with a VT100-style cursor. Character
// streams enter through Write and Insert; renderers read cells back
// through the query surface.
//
// A Grid is single-threaded: no operation blocks or performs I/O, and
// callers must serialise access.
type Grid struct {
	width         int
	height        int
	maxScrollback int

	screen     *RingBuffer[*Line]
	scrollback *RingBuffer[*Line]

	currentAttrs Attributes
	cursor       *Cursor
	isWide       WidthFunc
}

// Option configures a Grid during construction.
type Option func(*Grid)

// WithSize sets the grid dimensions in cells.
// Values <= 0 are replaced with the defaults (80x24).
func WithSize(width, height int) Option {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return func(g *Grid) {
		g.width = width
		g.height = height
	}
}

// WithMaxScrollback sets how many lines scrolled off the top are
// retained. Zero (the default) disables scrollback; negative values
// are treated as zero.
func WithMaxScrollback(n int) Option {
	if n < 0 {
		n = 0
	}
	return func(g *Grid) {
		g.maxScrollback = n
	}
}

// WithWidthFunc replaces the wide-character classifier. The default is
// IsWide; UnicodeWidth selects UAX #11 East-Asian semantics instead.
func WithWidthFunc(f WidthFunc) Option {
	return func(g *Grid) {
		if f != nil {
			g.isWide = f
		}
	}
}

// New creates a grid with the given options. Every screen line starts
// empty, the cursor at (0, 0), and the current attributes at the
// default foreground/background with no styles.
func New(opts ...Option) *Grid {
	g := &Grid{
		width:  DefaultWidth,
		height: DefaultHeight,
		isWide: IsWide,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.currentAttrs = DefaultAttributes()
	g.cursor = newCursor(g)
	g.screen = NewRingBuffer[*Line](g.height)
	g.scrollback = NewRingBuffer[*Line](g.maxScrollback)

	for i := 0; i < g.height; i++ {
		g.screen.Push(newLine(g.width, g.currentAttrs))
	}

	return g
}

// Width returns the grid width in columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the visible screen height in rows.
func (g *Grid) Height() int {
	return g.height
}

// MaxScrollback returns the scrollback capacity in lines.
func (g *Grid) MaxScrollback() int {
	return g.maxScrollback
}

// ScrollbackSize returns the number of lines currently in scrollback.
func (g *Grid) ScrollbackSize() int {
	return g.scrollback.Size()
}

// Cursor returns the grid's cursor for position queries and moves.
func (g *Grid) Cursor() *Cursor {
	return g.cursor
}

// CurrentAttributes returns the attribute word applied to subsequent
// writes.
func (g *Grid) CurrentAttributes() Attributes {
	return g.currentAttrs
}

// SetAttributes packs fg, bg and style into the attribute word used by
// all subsequent write and insert operations.
func (g *Grid) SetAttributes(fg, bg Color, style StyleFlag) {
	g.currentAttrs = PackAttributes(fg, bg, style)
}

// screenLine returns the line at the given screen row.
func (g *Grid) screenLine(row int) *Line {
	return g.screen.Get(row)
}

// markWrapped flags a screen row as the soft-wrap continuation of its
// predecessor. Part of the cursor's surface.
func (g *Grid) markWrapped(row int) {
	g.screen.Get(row).SetWrapped()
}

// moveToScrollback pushes a line evicted from the screen into
// scrollback, dropping the oldest scrollback line when at capacity.
// With scrollback disabled the line is discarded.
func (g *Grid) moveToScrollback(line *Line) {
	if g.maxScrollback == 0 {
		return
	}
	if g.scrollback.Size() == g.maxScrollback {
		g.scrollback.Pop()
	}
	g.scrollback.Push(line)
}

// scroll moves the top screen line into scrollback and appends a fresh
// empty line at the bottom. The cursor does not move.
func (g *Grid) scroll() {
	removed := g.screen.Pop()
	g.moveToScrollback(removed)
	g.screen.Push(newLine(g.width, g.currentAttrs))
}

// AddEmptyLine scrolls the screen up by one line and keeps the cursor
// on the line it was on (clamped to the top).
func (g *Grid) AddEmptyLine() {
	g.scroll()
	g.cursor.Set(g.cursor.row-1, g.cursor.col)
}

// Write writes text at the cursor, overwriting existing cells. Narrow
// runs are emitted in bulk; CR and LF move the cursor; wide characters
// take two cells and never straddle a line end. Wide placeholders in
// the input are skipped.
func (g *Grid) Write(text string) {
	chars := []rune(text)
	i := 0
	for i < len(chars) {
		next := g.findBoundary(chars, i)
		g.writeChunk(chars, i, next)
		if next < len(chars) {
			switch c := chars[next]; c {
			case '\r', '\n':
				g.cursor.handleControl(c)
			case WidePlaceholder:
				// Stray placeholders in the input are skipped.
			default:
				g.writeWide(c)
			}
		}
		i = next + 1
	}
}

// WriteAt moves the cursor to (row, col), clamped, then writes text.
func (g *Grid) WriteAt(text string, row, col int) {
	g.cursor.Set(row, col)
	g.Write(text)
}

// findBoundary returns the index of the next CR, LF, wide character or
// stray placeholder at or after start, or len(chars).
func (g *Grid) findBoundary(chars []rune, start int) int {
	for i := start; i < len(chars); i++ {
		c := chars[i]
		if c == '\r' || c == '\n' || c == WidePlaceholder || g.isWide(c) {
			return i
		}
	}
	return len(chars)
}

// writeChunk emits a narrow run in line-width-bounded blocks, wrapping
// between blocks.
func (g *Grid) writeChunk(chars []rune, start, end int) {
	current := start
	for current < end {
		g.cursor.resolveWrap()
		line := g.screenLine(g.cursor.row)
		avail := g.width - g.cursor.col
		toWrite := end - current
		if toWrite > avail {
			toWrite = avail
		}
		line.WriteBlock(g.cursor.col, chars, current, toWrite, g.currentAttrs)
		g.cursor.Right(toWrite - 1)
		g.cursor.advance()
		current += toWrite
	}
}

// writeWide places one wide character. When only the last column is
// left it stays blank and the character wraps to the next line.
func (g *Grid) writeWide(c rune) {
	g.cursor.resolveWrap()
	if g.cursor.col == g.width-1 {
		g.cursor.advance()
		g.cursor.resolveWrap()
	}
	if g.width < 2 {
		// A 1-column grid cannot represent a two-cell character.
		return
	}
	line := g.screenLine(g.cursor.row)
	line.SetWide(g.cursor.col, c, g.currentAttrs)
	g.cursor.advanceForWide()
}

// FillLine overwrites every cell of a screen row with ch using the
// current attributes. The cursor does not move.
func (g *Grid) FillLine(row int, ch rune) error {
	if row < 0 || row >= g.height {
		return fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	g.screenLine(row).Fill(ch, g.currentAttrs)
	return nil
}

// ClearScreen replaces every screen line with a fresh empty line and
// homes the cursor. Scrollback is untouched.
func (g *Grid) ClearScreen() {
	g.screen.Clear()
	for i := 0; i < g.height; i++ {
		g.screen.Push(newLine(g.width, g.currentAttrs))
	}
	g.cursor.Set(0, 0)
}

// ClearScreenAndScrollback erases everything: screen, scrollback, and
// homes the cursor.
func (g *Grid) ClearScreenAndScrollback() {
	g.ClearScreen()
	g.scrollback.Clear()
}

// ClearScrollback removes all scrollback lines. The screen and cursor
// are untouched.
func (g *Grid) ClearScrollback() {
	g.scrollback.Clear()
}

// lineAt resolves a row index to a line: row >= 0 indexes the screen
// from the top, row < 0 indexes scrollback where -1 is the most recent
// scrollback line.
func (g *Grid) lineAt(row int) (*Line, error) {
	if row >= 0 {
		if row >= g.screen.Size() {
			return nil, fmt.Errorf("%w: row %d", ErrOutOfRange, row)
		}
		return g.screen.Get(row), nil
	}
	idx := g.scrollback.Size() + row
	if idx < 0 {
		return nil, fmt.Errorf("%w: row %d", ErrOutOfRange, row)
	}
	return g.scrollback.Get(idx), nil
}

// GetChar returns the character at (row, col). Negative rows index
// scrollback, -1 being the most recent scrollback line.
func (g *Grid) GetChar(row, col int) (rune, error) {
	line, err := g.lineAt(row)
	if err != nil {
		return 0, err
	}
	if col < 0 || col >= line.Width() {
		return 0, fmt.Errorf("%w: col %d", ErrOutOfRange, col)
	}
	return line.Char(col), nil
}

// GetAttributes returns the attribute word at (row, col), with the
// same row addressing as GetChar.
func (g *Grid) GetAttributes(row, col int) (Attributes, error) {
	line, err := g.lineAt(row)
	if err != nil {
		return 0, err
	}
	if col < 0 || col >= line.Width() {
		return 0, fmt.Errorf("%w: col %d", ErrOutOfRange, col)
	}
	return line.Attr(col), nil
}

// GetLine returns an entire row as a string of exactly Width
// characters, with the same row addressing as GetChar. Trailing spaces
// and wide placeholders are preserved.
func (g *Grid) GetLine(row int) (string, error) {
	line, err := g.lineAt(row)
	if err != nil {
		return "", err
	}
	return line.String(), nil
}

// ScreenToString returns the visible screen, one line per row, each
// terminated by a newline.
func (g *Grid) ScreenToString() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for i := 0; i < g.screen.Size(); i++ {
		sb.WriteString(g.screen.Get(i).String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ScreenAndScrollbackToString returns scrollback (oldest first)
// followed by the screen, one line per row, each terminated by a
// newline.
func (g *Grid) ScreenAndScrollbackToString() string {
	var sb strings.Builder
	for i := 0; i < g.scrollback.Size(); i++ {
		sb.WriteString(g.scrollback.Get(i).String())
		sb.WriteByte('\n')
	}
	sb.WriteString(g.ScreenToString())
	return sb.String()
}

// LineContent returns the text of a screen row with trailing spaces
// trimmed and wide placeholders skipped. Returns "" for an out of
// range or blank row.
func (g *Grid) LineContent(row int) string {
	if row < 0 || row >= g.height {
		return ""
	}
	return lineText(g.screenLine(row))
}

// lineText renders a line for reading: wide placeholders dropped,
// trailing spaces trimmed.
func lineText(l *Line) string {
	last := -1
	for col := l.Width() - 1; col >= 0; col-- {
		c := l.Char(col)
		if c != ' ' && c != WidePlaceholder {
			last = col
			break
		}
	}
	if last < 0 {
		return ""
	}

	runes := make([]rune, 0, last+1)
	for col := 0; col <= last; col++ {
		c := l.Char(col)
		if c == WidePlaceholder {
			continue
		}
		runes = append(runes, c)
	}
	return string(runes)
}

// Position identifies a cell in the grid (0-based). Negative rows
// address scrollback the way GetChar does.
type Position struct {
	Row int
	Col int
}

// Before returns true if p comes before other in reading order.
func (p Position) Before(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Equal returns true if both coordinates match.
func (p Position) Equal(other Position) bool {
	return p.Row == other.Row && p.Col == other.Col
}

// Search returns the positions of every occurrence of pattern in the
// visible screen, matching against trimmed line text. Col counts
// characters of that text, which skips wide placeholders, so it is
// smaller than the grid column by the number of wide characters before
// the match.
func (g *Grid) Search(pattern string) []Position {
	if pattern == "" {
		return nil
	}
	var matches []Position
	want := []rune(pattern)
	for row := 0; row < g.height; row++ {
		matches = appendLineMatches(matches, []rune(g.LineContent(row)), want, row)
	}
	return matches
}

// SearchScrollback returns the positions of every occurrence of
// pattern in scrollback. Returned rows are negative, -1 being the most
// recent scrollback line; Col is counted as in Search.
func (g *Grid) SearchScrollback(pattern string) []Position {
	if pattern == "" {
		return nil
	}
	var matches []Position
	want := []rune(pattern)
	size := g.scrollback.Size()
	for i := 0; i < size; i++ {
		text := []rune(lineText(g.scrollback.Get(i)))
		matches = appendLineMatches(matches, text, want, i-size)
	}
	return matches
}

func appendLineMatches(matches []Position, text, want []rune, row int) []Position {
	for col := 0; col+len(want) <= len(text); col++ {
		found := true
		for i, r := range want {
			if text[col+i] != r {
				found = false
				break
			}
		}
		if found {
			matches = append(matches, Position{Row: row, Col: col})
		}
	}
	return matches
}
