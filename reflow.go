package termgrid

// Resize changes the grid dimensions, reflowing all content to the new
// width. Soft-wrapped lines are regrouped into their paragraphs and
// re-split: widening merges continuation lines back together,
// narrowing splits long paragraphs across more lines. Wide characters
// never straddle a line end; a pair that no longer fits rolls onto the
// next line whole.
//
// Both scrollback and screen participate. When the reflowed content
// exceeds the new screen height the oldest lines move to scrollback;
// trailing blank lines below the content and the cursor are dropped.
// The cursor keeps its logical position in the reflowed text, or
// (0, 0) if that position ended up in scrollback.
func (g *Grid) Resize(newWidth, newHeight int) {
	if newWidth <= 0 || newHeight <= 0 {
		return
	}

	allLines := g.collectLinesForReflow()
	anchorBlock, anchorOffset := g.cursorAnchor(allLines)

	newLines, cursorRow, cursorCol := g.reflowLines(allLines, newWidth, anchorBlock, anchorOffset)

	g.width = newWidth
	g.height = newHeight
	g.rebuildBuffers(newLines, newHeight)
	g.restoreCursor(cursorRow, cursorCol, len(newLines))
}

// collectLinesForReflow concatenates scrollback and the screen up to
// the last non-empty screen line or the cursor's row, whichever is
// lower on the screen. Trailing blank lines past both are dropped.
func (g *Grid) collectLinesForReflow() []*Line {
	screenLines := g.lastMeaningfulScreenLine()
	all := make([]*Line, 0, g.scrollback.Size()+screenLines)
	for i := 0; i < g.scrollback.Size(); i++ {
		all = append(all, g.scrollback.Get(i))
	}
	for i := 0; i < screenLines; i++ {
		all = append(all, g.screen.Get(i))
	}
	return all
}

// lastMeaningfulScreenLine returns one past the last screen row that
// is non-empty or holds the cursor.
func (g *Grid) lastMeaningfulScreenLine() int {
	for i := g.screen.Size() - 1; i >= 0; i-- {
		if g.screen.Get(i).IsEmpty() && i != g.cursor.row {
			continue
		}
		return i + 1
	}
	return 0
}

// cursorAnchor locates the cursor in the collected lines as a
// (paragraph index, cell offset within the paragraph) pair. A cursor
// on a line outside the collection anchors at (0, 0).
func (g *Grid) cursorAnchor(lines []*Line) (block, offset int) {
	cursorLine := g.screenLine(g.cursor.row)
	blockIdx := 0
	current := 0
	for _, line := range lines {
		if !line.Wrapped() && current > 0 {
			blockIdx++
			current = 0
		}
		if line == cursorLine {
			return blockIdx, current + g.cursor.col
		}
		current += g.width
	}
	return 0, 0
}

// reflowLines regroups the collected lines into paragraphs and emits
// them re-split at the new width. Returns the emitted lines and the
// cursor's position in them (-1, -1 if the anchor was never reached).
func (g *Grid) reflowLines(allLines []*Line, newWidth, anchorBlock, anchorOffset int) (newLines []*Line, cursorRow, cursorCol int) {
	cursorRow, cursorCol = -1, -1
	blockIdx := 0

	i := 0
	for i < len(allLines) {
		start := i
		end := i
		for end+1 < len(allLines) && allLines[end+1].Wrapped() {
			end++
		}

		effectiveLen := g.effectiveLength(allLines, start, end)
		logicSize := effectiveLen
		if blockIdx == anchorBlock && anchorOffset+1 > logicSize {
			// Keep room for a cursor parked beyond the text.
			logicSize = anchorOffset + 1
		}

		offset := 0
		for offset < logicSize || (logicSize == 0 && offset == 0) {
			line := newLine(newWidth, g.currentAttrs)
			if offset > 0 {
				line.SetWrapped()
			}

			consumed := g.copyCells(allLines, start, end, line, offset, newWidth)

			if blockIdx == anchorBlock && anchorOffset >= offset && anchorOffset < offset+consumed {
				cursorRow = len(newLines)
				cursorCol = anchorOffset - offset
			}

			newLines = append(newLines, line)
			offset += consumed
		}

		blockIdx++
		i = end + 1
	}
	return newLines, cursorRow, cursorCol
}

// effectiveLength returns the paragraph's logical length: one past its
// last cell that was written and is not a space in the current
// attributes. 0 means the paragraph is blank.
func (g *Grid) effectiveLength(lines []*Line, start, end int) int {
	for l := end; l >= start; l-- {
		line := lines[l]
		for c := g.width - 1; c >= 0; c-- {
			if !line.IsEmptyCell(c) && (line.Char(c) != ' ' || line.Attr(c) != g.currentAttrs) {
				return (l-start)*g.width + c + 1
			}
		}
	}
	return 0
}

// copyCells fills one emitted line from the source paragraph starting
// at the given cell offset, cell by cell. A wide character with only
// one target column left ends the line early and starts the next one.
// Returns how many source cells were consumed (at least 1, so a
// paragraph always makes progress).
func (g *Grid) copyCells(allLines []*Line, start, end int, target *Line, startOffset, targetWidth int) int {
	copied := 0
	consumed := 0

	for copied < targetWidth {
		globalOffset := startOffset + consumed
		lineInBlock := globalOffset / g.width
		colInLine := globalOffset % g.width

		if start+lineInBlock > end {
			break
		}

		source := allLines[start+lineInBlock]
		c := source.Char(colInLine)
		attr := source.Attr(colInLine)

		if g.isWide(c) {
			if copied >= targetWidth-1 {
				break
			}
			target.SetWide(copied, c, attr)
			copied += 2
			consumed += 2
		} else {
			target.Set(copied, c, attr)
			copied++
			consumed++
		}
	}

	if consumed == 0 && targetWidth > 0 {
		return 1
	}
	return consumed
}

// rebuildBuffers redistributes the emitted lines: oldest overflow into
// scrollback, the rest onto the screen, padded with blank lines up to
// the new height.
func (g *Grid) rebuildBuffers(newLines []*Line, newHeight int) {
	g.scrollback.Clear()
	g.screen.ResizeAndClear(newHeight)

	screenStart := len(newLines) - newHeight
	if screenStart < 0 {
		screenStart = 0
	}

	for i := 0; i < screenStart; i++ {
		g.moveToScrollback(newLines[i])
	}
	for i := screenStart; i < len(newLines); i++ {
		g.screen.Push(newLines[i])
	}
	for g.screen.Size() < newHeight {
		g.screen.Push(newLine(g.width, g.currentAttrs))
	}
}

// restoreCursor translates the emitted-line cursor position through
// the scrollback split. An anchor that landed in scrollback clamps to
// (0, 0); an unreachable anchor parks at the bottom-left.
func (g *Grid) restoreCursor(row, col, totalLines int) {
	screenStart := totalLines - g.height
	if screenStart < 0 {
		screenStart = 0
	}

	if row == -1 {
		g.cursor.Set(g.screen.Size()-1, 0)
		return
	}

	relative := row - screenStart
	if relative < 0 {
		g.cursor.Set(0, 0)
		return
	}
	g.cursor.Set(relative, col)
}
