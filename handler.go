package termgrid

import (
	"fmt"
	"image/color"

	"github.com/danielgatis/go-ansicode"
)

// Input writes one printable rune at the cursor, shifting instead of
// overwriting while IRM insert mode is active.
func (t *Terminal) Input(r rune) {
	if t.insertMode {
		t.grid.Insert(string(r))
		return
	}
	t.grid.Write(string(r))
}

// LineFeed moves the cursor to the start of the next line, scrolling
// at the bottom.
func (t *Terminal) LineFeed() {
	t.grid.cursor.handleControl('\n')
}

// CarriageReturn moves the cursor to column 0.
func (t *Terminal) CarriageReturn() {
	t.grid.cursor.handleControl('\r')
}

// Backspace moves the cursor one column left.
func (t *Terminal) Backspace() {
	t.grid.cursor.Left(1)
}

// Bell forwards the bell event to the bell provider.
func (t *Terminal) Bell() {
	t.bellProvider.Ring()
}

// Tab moves the cursor right to the next n fixed 8-column stops.
func (t *Terminal) Tab(n int) {
	cur := t.grid.cursor
	for i := 0; i < n; i++ {
		next := (cur.Col()/tabWidth + 1) * tabWidth
		if next > t.grid.width-1 {
			next = t.grid.width - 1
		}
		cur.Set(cur.Row(), next)
	}
}

// MoveForwardTabs moves the cursor right to the next n tab stops.
func (t *Terminal) MoveForwardTabs(n int) {
	t.Tab(n)
}

// MoveBackwardTabs moves the cursor left to the previous n tab stops.
func (t *Terminal) MoveBackwardTabs(n int) {
	cur := t.grid.cursor
	for i := 0; i < n; i++ {
		col := cur.Col()
		prev := 0
		if col > 0 {
			prev = ((col - 1) / tabWidth) * tabWidth
		}
		cur.Set(cur.Row(), prev)
	}
}

// Goto moves the cursor to (row, col), clamped to the screen.
func (t *Terminal) Goto(row, col int) {
	t.grid.cursor.Set(row, col)
}

// GotoCol moves the cursor to col, keeping the current row.
func (t *Terminal) GotoCol(col int) {
	cur := t.grid.cursor
	cur.Set(cur.Row(), col)
}

// GotoLine moves the cursor to row, keeping the current column.
func (t *Terminal) GotoLine(row int) {
	cur := t.grid.cursor
	cur.Set(row, cur.Col())
}

// MoveUp moves the cursor n rows up.
func (t *Terminal) MoveUp(n int) {
	t.grid.cursor.Up(n)
}

// MoveDown moves the cursor n rows down.
func (t *Terminal) MoveDown(n int) {
	t.grid.cursor.Down(n)
}

// MoveForward moves the cursor n columns right.
func (t *Terminal) MoveForward(n int) {
	t.grid.cursor.Right(n)
}

// MoveBackward moves the cursor n columns left.
func (t *Terminal) MoveBackward(n int) {
	t.grid.cursor.Left(n)
}

// MoveDownCr moves the cursor n rows down and to column 0.
func (t *Terminal) MoveDownCr(n int) {
	cur := t.grid.cursor
	cur.Set(cur.Row()+n, 0)
}

// MoveUpCr moves the cursor n rows up and to column 0.
func (t *Terminal) MoveUpCr(n int) {
	cur := t.grid.cursor
	cur.Set(cur.Row()-n, 0)
}

// clearCells overwrites [from, to) of a screen row with spaces in the
// current attributes.
func (t *Terminal) clearCells(row, from, to int) {
	line := t.grid.screenLine(row)
	if from < 0 {
		from = 0
	}
	if to > t.grid.width {
		to = t.grid.width
	}
	for c := from; c < to; c++ {
		line.Set(c, ' ', t.grid.currentAttrs)
	}
}

// ClearLine erases part or all of the cursor's line without moving the
// cursor.
func (t *Terminal) ClearLine(mode ansicode.LineClearMode) {
	cur := t.grid.cursor
	switch mode {
	case ansicode.LineClearModeRight:
		t.clearCells(cur.Row(), cur.Col(), t.grid.width)
	case ansicode.LineClearModeLeft:
		t.clearCells(cur.Row(), 0, cur.Col()+1)
	case ansicode.LineClearModeAll:
		t.grid.FillLine(cur.Row(), ' ')
	}
}

// ClearScreen erases part or all of the screen. The cursor does not
// move; clearing saved lines also empties the scrollback.
func (t *Terminal) ClearScreen(mode ansicode.ClearMode) {
	cur := t.grid.cursor
	row, col := cur.Row(), cur.Col()

	switch mode {
	case ansicode.ClearModeBelow:
		t.clearCells(row, col, t.grid.width)
		for r := row + 1; r < t.grid.height; r++ {
			t.grid.FillLine(r, ' ')
		}
	case ansicode.ClearModeAbove:
		for r := 0; r < row; r++ {
			t.grid.FillLine(r, ' ')
		}
		t.clearCells(row, 0, col+1)
	case ansicode.ClearModeAll:
		t.grid.ClearScreen()
		cur.Set(row, col)
	case ansicode.ClearModeSaved:
		t.grid.ClearScrollback()
	}
}

// EraseChars resets n cells at the cursor to spaces without shifting.
func (t *Terminal) EraseChars(n int) {
	cur := t.grid.cursor
	t.clearCells(cur.Row(), cur.Col(), cur.Col()+n)
}

// DeleteChars removes n cells at the cursor, shifting the rest of the
// line left and blanking the tail.
func (t *Terminal) DeleteChars(n int) {
	if n <= 0 {
		return
	}
	cur := t.grid.cursor
	line := t.grid.screenLine(cur.Row())
	width := t.grid.width
	col := cur.Col()

	if n > width-col {
		n = width - col
	}
	for c := col; c < width-n; c++ {
		line.Set(c, line.Char(c+n), line.Attr(c+n))
	}
	t.clearCells(cur.Row(), width-n, width)
}

// InsertBlank inserts n blank cells at the cursor, shifting the rest
// of the line right. Cells pushed past the edge are lost (ICH does not
// cascade).
func (t *Terminal) InsertBlank(n int) {
	if n <= 0 {
		return
	}
	cur := t.grid.cursor
	line := t.grid.screenLine(cur.Row())
	width := t.grid.width
	col := cur.Col()

	if n > width-col {
		n = width - col
	}
	for c := width - 1; c >= col+n; c-- {
		line.Set(c, line.Char(c-n), line.Attr(c-n))
	}
	t.clearCells(cur.Row(), col, col+n)
}

// InsertBlankLines is accepted and ignored: the grid models no scroll
// region for IL to operate in.
func (t *Terminal) InsertBlankLines(n int) {}

// DeleteLines is accepted and ignored, as InsertBlankLines.
func (t *Terminal) DeleteLines(n int) {}

// ScrollUp scrolls the screen up n lines, moving the top lines into
// scrollback.
func (t *Terminal) ScrollUp(n int) {
	for i := 0; i < n; i++ {
		t.grid.scroll()
	}
}

// ScrollDown is accepted and ignored: lines cannot re-enter the screen
// from scrollback.
func (t *Terminal) ScrollDown(n int) {}

// ReverseIndex moves the cursor up one row; at the top it stays (no
// reverse scroll).
func (t *Terminal) ReverseIndex() {
	cur := t.grid.cursor
	if cur.Row() > 0 {
		cur.Up(1)
	}
}

// SaveCursorPosition records the cursor for RestoreCursorPosition.
func (t *Terminal) SaveCursorPosition() {
	t.savedRow = t.grid.cursor.Row()
	t.savedCol = t.grid.cursor.Col()
}

// RestoreCursorPosition moves the cursor back to the saved position.
func (t *Terminal) RestoreCursorPosition() {
	t.grid.cursor.Set(t.savedRow, t.savedCol)
}

// Decaln fills the screen with 'E' (DEC alignment pattern).
func (t *Terminal) Decaln() {
	for r := 0; r < t.grid.height; r++ {
		t.grid.FillLine(r, 'E')
	}
}

// Substitute replaces the cell at the cursor with '?'.
func (t *Terminal) Substitute() {
	cur := t.grid.cursor
	t.grid.screenLine(cur.Row()).Set(cur.Col(), '?', t.grid.currentAttrs)
}

// ResetState returns the terminal to its initial state: empty grid and
// scrollback, default attributes, modes off.
func (t *Terminal) ResetState() {
	t.fg = ColorDefaultFG
	t.bg = ColorDefaultBG
	t.style = StyleNone
	t.applyAttributes()
	t.insertMode = false
	t.savedRow = 0
	t.savedCol = 0
	t.title = ""
	t.titleStack = nil
	t.grid.ClearScreenAndScrollback()
}

// SetMode enables a terminal mode. Only IRM insert mode affects the
// grid; everything else is accepted and ignored.
func (t *Terminal) SetMode(mode ansicode.TerminalMode) {
	if mode == ansicode.TerminalModeInsert {
		t.insertMode = true
	}
}

// UnsetMode disables a terminal mode.
func (t *Terminal) UnsetMode(mode ansicode.TerminalMode) {
	if mode == ansicode.TerminalModeInsert {
		t.insertMode = false
	}
}

// SetTerminalCharAttribute folds one SGR attribute into the grid's
// current attribute word. Attributes the 32-bit word has no room for
// (dim, blink, reverse, hidden, strike, underline colour, 256/true
// colour) are accepted and dropped.
func (t *Terminal) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		t.fg = ColorDefaultFG
		t.bg = ColorDefaultBG
		t.style = StyleNone

	case ansicode.CharAttributeBold:
		t.style |= StyleBold
	case ansicode.CharAttributeItalic:
		t.style |= StyleItalic
	case ansicode.CharAttributeUnderline,
		ansicode.CharAttributeDoubleUnderline,
		ansicode.CharAttributeCurlyUnderline,
		ansicode.CharAttributeDottedUnderline,
		ansicode.CharAttributeDashedUnderline:
		t.style |= StyleUnderline

	case ansicode.CharAttributeCancelBold, ansicode.CharAttributeCancelBoldDim:
		t.style &^= StyleBold
	case ansicode.CharAttributeCancelItalic:
		t.style &^= StyleItalic
	case ansicode.CharAttributeCancelUnderline:
		t.style &^= StyleUnderline

	case ansicode.CharAttributeForeground:
		t.fg = paletteIndex(attr, ColorDefaultFG)
	case ansicode.CharAttributeBackground:
		t.bg = paletteIndex(attr, ColorDefaultBG)
	}

	t.applyAttributes()
}

// paletteIndex maps an SGR colour to the 16-entry palette. Colours the
// attribute word cannot hold fall back to the given default.
func paletteIndex(attr ansicode.TerminalCharAttribute, def Color) Color {
	if attr.NamedColor != nil {
		if n := int(*attr.NamedColor); n >= 0 && n < 16 {
			return Color(n)
		}
		return def
	}
	if attr.IndexedColor != nil {
		if idx := int(attr.IndexedColor.Index); idx < 16 {
			return Color(idx)
		}
		return def
	}
	return def
}

// DeviceStatus answers DSR queries: 5 reports OK, 6 reports the cursor
// position (1-based).
func (t *Terminal) DeviceStatus(n int) {
	switch n {
	case 5:
		t.writeResponse("\x1b[0n")
	case 6:
		cur := t.grid.cursor
		t.writeResponse(fmt.Sprintf("\x1b[%d;%dR", cur.Row()+1, cur.Col()+1))
	}
}

// IdentifyTerminal answers DA with a VT220 identification.
func (t *Terminal) IdentifyTerminal(b byte) {
	t.writeResponse("\x1b[?62;c")
}

// TextAreaSizeChars reports the grid dimensions in characters.
func (t *Terminal) TextAreaSizeChars() {
	t.writeResponse(fmt.Sprintf("\x1b[8;%d;%dt", t.grid.height, t.grid.width))
}

// TextAreaSizePixels reports the grid dimensions in pixels, assuming
// 10x20 pixel cells.
func (t *Terminal) TextAreaSizePixels() {
	t.writeResponse(fmt.Sprintf("\x1b[4;%d;%dt", t.grid.height*20, t.grid.width*10))
}

// CellSizePixels reports the assumed 10x20 pixel cell size.
func (t *Terminal) CellSizePixels() {
	t.writeResponse("\x1b[6;20;10t")
}

// SetTitle updates the window title and notifies the title provider.
func (t *Terminal) SetTitle(title string) {
	t.title = title
	t.titleProvider.SetTitle(title)
}

// PushTitle saves the current title on the stack.
func (t *Terminal) PushTitle() {
	t.titleStack = append(t.titleStack, t.title)
	t.titleProvider.PushTitle()
}

// PopTitle restores the most recently pushed title.
func (t *Terminal) PopTitle() {
	if n := len(t.titleStack); n > 0 {
		t.title = t.titleStack[n-1]
		t.titleStack = t.titleStack[:n-1]
		t.titleProvider.SetTitle(t.title)
	}
	t.titleProvider.PopTitle()
}

// ReportKeyboardMode reports no enhanced keyboard flags.
func (t *Terminal) ReportKeyboardMode() {
	t.writeResponse("\x1b[?0u")
}

// ReportModifyOtherKeys reports modifyOtherKeys off.
func (t *Terminal) ReportModifyOtherKeys() {
	t.writeResponse("\x1b[>4;0m")
}

// The remaining handler callbacks have no counterpart in the cell
// grid; they are accepted and ignored so any byte stream can be fed
// through safely.

func (t *Terminal) ApplicationCommandReceived(data []byte) {}

func (t *Terminal) PrivacyMessageReceived(data []byte) {}

func (t *Terminal) StartOfStringReceived(data []byte) {}

func (t *Terminal) ClearTabs(mode ansicode.TabulationClearMode) {}

func (t *Terminal) HorizontalTabSet() {}

func (t *Terminal) ClipboardLoad(clipboard byte, terminator string) {}

func (t *Terminal) ClipboardStore(clipboard byte, data []byte) {}

func (t *Terminal) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {}

func (t *Terminal) SetActiveCharset(n int) {}

func (t *Terminal) SetColor(index int, c color.Color) {}

func (t *Terminal) ResetColor(i int) {}

func (t *Terminal) SetDynamicColor(prefix string, index int, terminator string) {}

func (t *Terminal) SetCursorStyle(style ansicode.CursorStyle) {}

func (t *Terminal) SetHyperlink(hyperlink *ansicode.Hyperlink) {}

func (t *Terminal) SetKeyboardMode(mode ansicode.KeyboardMode, behavior ansicode.KeyboardModeBehavior) {
}

func (t *Terminal) PushKeyboardMode(mode ansicode.KeyboardMode) {}

func (t *Terminal) PopKeyboardMode(n int) {}

func (t *Terminal) SetModifyOtherKeys(modify ansicode.ModifyOtherKeys) {}

func (t *Terminal) SetKeypadApplicationMode() {}

func (t *Terminal) UnsetKeypadApplicationMode() {}

func (t *Terminal) SetScrollingRegion(top, bottom int) {}

func (t *Terminal) SetWorkingDirectory(uri string) {}

func (t *Terminal) SixelReceived(params [][]uint16, data []byte) {}
