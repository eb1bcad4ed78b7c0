package termgrid

import "fmt"

// SnapshotDetail specifies the level of detail in a snapshot.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text with style segments per line.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a serialisable capture of the visible screen.
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds grid dimensions.
type SnapshotSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row         int  `json:"row"`
	Col         int  `json:"col"`
	PendingWrap bool `json:"pending_wrap,omitempty"`
}

// SnapshotLine represents a single screen line.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Wrapped  bool              `json:"wrapped,omitempty"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing one style.
type SnapshotSegment struct {
	Text  string        `json:"text"`
	Fg    string        `json:"fg"`
	Bg    string        `json:"bg"`
	Attrs SnapshotAttrs `json:"attrs,omitempty"`
}

// SnapshotCell is a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attrs      SnapshotAttrs `json:"attrs,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wide_spacer,omitempty"`
	Empty      bool          `json:"empty,omitempty"`
}

// SnapshotAttrs holds the text decoration flags.
type SnapshotAttrs struct {
	Bold      bool `json:"bold,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Underline bool `json:"underline,omitempty"`
}

// Snapshot captures the current screen state. The detail parameter
// controls how much information is included per line.
func (g *Grid) Snapshot(detail SnapshotDetail) *Snapshot {
	snap := &Snapshot{
		Size: SnapshotSize{
			Width:  g.width,
			Height: g.height,
		},
		Cursor: SnapshotCursor{
			Row:         g.cursor.Row(),
			Col:         g.cursor.Col(),
			PendingWrap: g.cursor.PendingWrap(),
		},
		Lines: make([]SnapshotLine, g.height),
	}

	for row := 0; row < g.height; row++ {
		snap.Lines[row] = g.snapshotLine(row, detail)
	}

	return snap
}

func (g *Grid) snapshotLine(row int, detail SnapshotDetail) SnapshotLine {
	line := g.screenLine(row)
	sl := SnapshotLine{
		Text:    lineText(line),
		Wrapped: line.Wrapped(),
	}

	switch detail {
	case SnapshotDetailStyled:
		sl.Segments = lineToSegments(line)
	case SnapshotDetailFull:
		sl.Cells = lineToCells(line, g.isWide)
	}

	return sl
}

// lineToSegments groups the line into runs of identical styling. Wide
// placeholders fold into their base cell's segment.
func lineToSegments(l *Line) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var chars []rune

	for col := 0; col < l.Width(); col++ {
		c := l.Char(col)
		if c == WidePlaceholder {
			continue
		}
		attr := l.Attr(col)

		fg := colorToHex(attr, true)
		bg := colorToHex(attr, false)
		attrs := attrsToSnapshot(attr)

		if current == nil || current.Fg != fg || current.Bg != bg || current.Attrs != attrs {
			if current != nil && len(chars) > 0 {
				current.Text = string(chars)
				segments = append(segments, *current)
			}
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs}
			chars = nil
		}
		chars = append(chars, c)
	}

	if current != nil && len(chars) > 0 {
		current.Text = string(chars)
		segments = append(segments, *current)
	}

	return segments
}

// lineToCells expands the line to one entry per cell.
func lineToCells(l *Line, isWide WidthFunc) []SnapshotCell {
	cells := make([]SnapshotCell, 0, l.Width())

	for col := 0; col < l.Width(); col++ {
		c := l.Char(col)
		attr := l.Attr(col)

		ch := c
		if ch == WidePlaceholder {
			ch = ' '
		}

		cells = append(cells, SnapshotCell{
			Char:       string(ch),
			Fg:         colorToHex(attr, true),
			Bg:         colorToHex(attr, false),
			Attrs:      attrsToSnapshot(attr),
			Wide:       c != WidePlaceholder && isWide(c),
			WideSpacer: c == WidePlaceholder,
			Empty:      attr.IsEmpty(),
		})
	}

	return cells
}

func attrsToSnapshot(a Attributes) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:      a.HasStyle(StyleBold),
		Italic:    a.HasStyle(StyleItalic),
		Underline: a.HasStyle(StyleUnderline),
	}
}

func colorToHex(a Attributes, fg bool) string {
	rgba := ResolveColor(a, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
