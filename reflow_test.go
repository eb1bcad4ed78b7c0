package termgrid

import (
	"testing"
)

func TestResizeDimensions(t *testing.T) {
	g := testGrid(10, 5, 10)

	g.Resize(20, 8)

	if g.Width() != 20 {
		t.Errorf("expected width 20, got %d", g.Width())
	}
	if g.Height() != 8 {
		t.Errorf("expected height 8, got %d", g.Height())
	}
	for row := 0; row < 8; row++ {
		line, err := g.GetLine(row)
		if err != nil {
			t.Fatalf("row %d: %v", row, err)
		}
		if len([]rune(line)) != 20 {
			t.Errorf("row %d: expected 20 cells, got %d", row, len([]rune(line)))
		}
	}
}

func TestResizeInvalidDimensionsIgnored(t *testing.T) {
	g := testGrid(10, 5, 10)
	g.Write("KEEP")

	g.Resize(0, 5)
	g.Resize(10, -1)

	if g.Width() != 10 || g.Height() != 5 {
		t.Errorf("expected 10x5 unchanged, got %dx%d", g.Width(), g.Height())
	}
	if got, _ := g.GetLine(0); got != "KEEP      " {
		t.Errorf("expected content kept, got %q", got)
	}
}

func TestResizeNarrowerSplitsParagraph(t *testing.T) {
	g := testGrid(5, 4, 10)
	g.Write("AAAAA")
	g.Write("BBB")

	g.Resize(3, 4)

	if got, _ := g.GetLine(0); got != "AAA" {
		t.Errorf("expected %q, got %q", "AAA", got)
	}
	if got, _ := g.GetLine(1); got != "AAB" {
		t.Errorf("expected %q, got %q", "AAB", got)
	}
	if got, _ := g.GetLine(2); got != "BB " {
		t.Errorf("expected %q, got %q", "BB ", got)
	}

	if g.screenLine(0).Wrapped() {
		t.Error("first paragraph line must not be wrapped")
	}
	if !g.screenLine(1).Wrapped() || !g.screenLine(2).Wrapped() {
		t.Error("continuation lines must be wrapped")
	}
}

func TestResizeWiderMergesParagraph(t *testing.T) {
	g := testGrid(3, 4, 10)
	g.Write("ABCDE")

	g.Resize(10, 4)

	if got := g.LineContent(0); got != "ABCDE" {
		t.Errorf("expected merged paragraph, got %q", got)
	}
	if got := g.LineContent(1); got != "" {
		t.Errorf("expected blank second row, got %q", got)
	}
	c := g.Cursor()
	if c.Row() != 0 || c.Col() != 5 {
		t.Errorf("expected cursor (0,5), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestResizeRoundTripRestoresContent(t *testing.T) {
	g := testGrid(5, 4, 10)
	g.Write("AAAAA")
	g.Write("BBB")

	g.Resize(3, 4)
	g.Resize(5, 4)

	if got := g.LineContent(0); got != "AAAAA" {
		t.Errorf("expected %q, got %q", "AAAAA", got)
	}
	if got := g.LineContent(1); got != "BBB" {
		t.Errorf("expected %q, got %q", "BBB", got)
	}
}

func TestResizePreservesBlankLines(t *testing.T) {
	g := testGrid(10, 5, 10)
	g.Write("AAA\n\nBBB")

	g.Resize(8, 5)

	if got := g.LineContent(0); got != "AAA" {
		t.Errorf("expected %q, got %q", "AAA", got)
	}
	if got := g.LineContent(1); got != "" {
		t.Errorf("expected preserved blank line, got %q", got)
	}
	if got := g.LineContent(2); got != "BBB" {
		t.Errorf("expected %q, got %q", "BBB", got)
	}
}

func TestResizeCursorContinuity(t *testing.T) {
	g := testGrid(5, 4, 10)
	g.Write("AAAAABBB")
	g.Cursor().Set(1, 1)

	before, err := g.GetChar(1, 1)
	if err != nil {
		t.Fatal(err)
	}

	g.Resize(3, 4)

	c := g.Cursor()
	after, err := g.GetChar(c.Row(), c.Col())
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Errorf("cursor character changed across resize: %q -> %q", before, after)
	}
}

func TestResizeCursorInEmptySpace(t *testing.T) {
	g := testGrid(10, 5, 10)
	g.Cursor().Set(0, 7)

	g.Resize(4, 5)

	// The cursor's logical offset (7) needs two 4-wide lines.
	c := g.Cursor()
	if c.Row() != 1 || c.Col() != 3 {
		t.Errorf("expected cursor (1,3), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestResizeShrinkHeightPushesToScrollback(t *testing.T) {
	g := testGrid(5, 4, 10)
	g.Write("A\nB\nC\nD")

	g.Resize(5, 2)

	if g.ScrollbackSize() != 2 {
		t.Fatalf("expected 2 scrollback lines, got %d", g.ScrollbackSize())
	}
	if got := g.LineContent(0); got != "C" {
		t.Errorf("expected %q on top row, got %q", "C", got)
	}
	if got := g.LineContent(1); got != "D" {
		t.Errorf("expected %q on bottom row, got %q", "D", got)
	}
	if got, _ := g.GetLine(-1); got != "B    " {
		t.Errorf("expected %q most recent in scrollback, got %q", "B    ", got)
	}
	c := g.Cursor()
	if c.Row() != 1 || c.Col() != 1 {
		t.Errorf("expected cursor (1,1), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestResizeGrowHeightPullsNothing(t *testing.T) {
	g := testGrid(5, 2, 10)
	g.Write("A\nB")

	g.Resize(5, 4)

	if got := g.LineContent(0); got != "A" {
		t.Errorf("expected %q, got %q", "A", got)
	}
	if got := g.LineContent(1); got != "B" {
		t.Errorf("expected %q, got %q", "B", got)
	}
	if got := g.LineContent(2); got != "" {
		t.Errorf("expected padded blank row, got %q", got)
	}
}

func TestResizeReflowsScrollback(t *testing.T) {
	g := testGrid(4, 2, 10)
	g.Write("AB\nCD\nEF\nGH")

	if g.ScrollbackSize() != 2 {
		t.Fatalf("expected 2 scrollback lines before resize, got %d", g.ScrollbackSize())
	}

	g.Resize(10, 2)

	// Four one-line paragraphs still need four lines; the first two
	// stay in scrollback at the new width.
	if g.ScrollbackSize() != 2 {
		t.Fatalf("expected 2 scrollback lines after resize, got %d", g.ScrollbackSize())
	}
	if got, _ := g.GetLine(-2); got != "AB        " {
		t.Errorf("expected reflowed scrollback line, got %q", got)
	}
	if got := g.LineContent(0); got != "EF" {
		t.Errorf("expected %q, got %q", "EF", got)
	}
}

func TestResizeWideCharacterRollsToNextLine(t *testing.T) {
	g := testGrid(4, 3, 10)
	g.Write("AB中")

	g.Resize(3, 3)

	if ch, _ := g.GetChar(0, 0); ch != 'A' {
		t.Errorf("expected 'A', got %q", ch)
	}
	if ch, _ := g.GetChar(0, 2); ch != ' ' {
		t.Errorf("expected stranded space before the wide pair, got %q", ch)
	}
	if ch, _ := g.GetChar(1, 0); ch != '中' {
		t.Errorf("expected wide char on next line, got %q", ch)
	}
	if ch, _ := g.GetChar(1, 1); ch != WidePlaceholder {
		t.Errorf("expected placeholder, got %q", ch)
	}
	if !g.screenLine(1).Wrapped() {
		t.Error("rolled line must be a continuation")
	}
}

func TestResizeNoopKeepsContent(t *testing.T) {
	g := testGrid(10, 5, 10)
	g.Write("HELLO\nWORLD")

	g.Resize(10, 5)

	if got := g.LineContent(0); got != "HELLO" {
		t.Errorf("expected %q, got %q", "HELLO", got)
	}
	if got := g.LineContent(1); got != "WORLD" {
		t.Errorf("expected %q, got %q", "WORLD", got)
	}
	c := g.Cursor()
	if c.Row() != 1 || c.Col() != 5 {
		t.Errorf("expected cursor (1,5), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestResizeEmptyGrid(t *testing.T) {
	g := testGrid(10, 5, 10)

	g.Resize(6, 3)

	if g.Width() != 6 || g.Height() != 3 {
		t.Errorf("expected 6x3, got %dx%d", g.Width(), g.Height())
	}
	c := g.Cursor()
	if c.Row() != 0 || c.Col() != 0 {
		t.Errorf("expected cursor (0,0), got (%d,%d)", c.Row(), c.Col())
	}
	if g.ScrollbackSize() != 0 {
		t.Errorf("expected no scrollback, got %d", g.ScrollbackSize())
	}
}
