package termgrid

// Insert inserts text at the cursor, shifting existing content right
// instead of overwriting it. Cells pushed past the right edge cascade
// onto the following lines, shifting those in turn; the screen scrolls
// when the cascade runs off the bottom row. The cursor ends where a
// plain Write of the text would have left it: right after the inserted
// text, unless the cascade scrolled the screen, since those scrolls do
// not move the cursor.
func (g *Grid) Insert(text string) {
	g.cursor.resolveWrap()

	finalRow, finalCol, finalPending := g.finalInsertPosition(text)

	// Expand wide characters into (char, placeholder) pairs so the
	// cascade can treat the stream as plain cells.
	chars := []rune(text)
	expanded := make([]rune, 0, len(chars))
	attrs := make([]Attributes, 0, len(chars))
	for _, c := range chars {
		if c == WidePlaceholder {
			continue
		}
		expanded = append(expanded, c)
		attrs = append(attrs, g.currentAttrs)
		if g.isWide(c) {
			expanded = append(expanded, WidePlaceholder)
			attrs = append(attrs, g.currentAttrs)
		}
	}

	var queue []*Overflow
	g.insertAndOverflow(expanded, attrs, &queue)
	for len(queue) > 0 {
		of := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		g.insertAndOverflow(of.Chars, of.Attrs, &queue)
	}

	// The incremental motion above only drives overflow placement; the
	// cursor lands where a plain write of the text would have left it.
	g.cursor.Set(finalRow, finalCol)
	g.cursor.pendingWrap = finalPending
}

// InsertAt moves the cursor to (row, col), clamped, then inserts text.
func (g *Grid) InsertAt(text string, row, col int) {
	g.cursor.Set(row, col)
	g.Insert(text)
}

// insertAndOverflow walks one cell stream (the original text or a
// popped overflow segment), inserting narrow runs and wide pairs and
// collecting any further overflow.
func (g *Grid) insertAndOverflow(chars []rune, attrs []Attributes, queue *[]*Overflow) {
	g.cursor.resolveWrap()
	i := 0
	for i < len(chars) {
		next := g.findBoundary(chars, i)
		g.insertChunk(chars, attrs, i, next, queue)
		if next < len(chars) {
			switch c := chars[next]; c {
			case '\r', '\n':
				g.cursor.handleControl(c)
			case WidePlaceholder:
				// Placeholders ride along with their base cell.
			default:
				g.insertWideChar(c, attrs[next], queue)
			}
		}
		i = next + 1
	}
}

// insertChunk inserts one narrow run into the cursor's line.
func (g *Grid) insertChunk(chars []rune, attrs []Attributes, start, end int, queue *[]*Overflow) {
	if start == end {
		return
	}
	line := g.screenLine(g.cursor.row)
	of := line.InsertAt(g.cursor.col, chars, attrs, start, end)
	g.moveCursorAfterInsert(of, end-start)
	if of != nil {
		*queue = append(*queue, of)
	}
}

// insertWideChar inserts one wide character, wrapping first when only
// the last column is free. Unlike a narrow chunk, the cursor only
// steps past the pair: any text remaining in the stream continues
// right after it, before the queued overflow is drained.
func (g *Grid) insertWideChar(c rune, attr Attributes, queue *[]*Overflow) {
	g.cursor.resolveWrap()
	if g.cursor.col == g.width-1 {
		g.cursor.advance()
		g.cursor.resolveWrap()
	}
	if g.width < 2 {
		return
	}
	line := g.screenLine(g.cursor.row)
	of := line.InsertWide(g.cursor.col, c, attr)
	g.cursor.advanceForWide()
	if of != nil {
		*queue = append(*queue, of)
	}
}

// moveCursorAfterInsert advances past an inserted segment: by its
// length when it fit, to the end of the line when it overflowed, so
// the next segment of the cascade lands on the following line.
func (g *Grid) moveCursorAfterInsert(of *Overflow, segLen int) {
	shift := segLen
	if of != nil {
		shift = g.width
	}
	if shift > g.width {
		shift = g.width
	}
	g.cursor.Right(shift - 1)
	g.cursor.resolveWrap()
	g.cursor.advance()
}

// finalInsertPosition simulates writing text from the current cursor
// position without touching the grid and returns where the cursor must
// end up. Scrolls are simulated by pinning the row to the bottom.
func (g *Grid) finalInsertPosition(text string) (row, col int, pending bool) {
	row, col, pending = g.cursor.row, g.cursor.col, g.cursor.pendingWrap
	lastRow := g.height - 1
	lastCol := g.width - 1

	resolve := func() {
		if !pending {
			return
		}
		if row < lastRow {
			row++
		}
		col = 0
		pending = false
	}

	for _, c := range text {
		switch {
		case c == WidePlaceholder:
			// Skipped by the writer, so skipped here.
		case c == '\n':
			if row < lastRow {
				row++
			}
			col = 0
			pending = false
		case c == '\r':
			col = 0
			pending = false
		case g.isWide(c):
			resolve()
			if col == lastCol {
				pending = true
				resolve()
			}
			if g.width < 2 {
				continue
			}
			if col+2 < g.width {
				col += 2
			} else {
				col = lastCol
				pending = true
			}
		default:
			resolve()
			if col != lastCol {
				col++
			} else {
				pending = true
			}
		}
	}
	return row, col, pending
}
