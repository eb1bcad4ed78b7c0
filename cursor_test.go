package termgrid

import (
	"testing"
)

func testGrid(width, height, scrollback int) *Grid {
	return New(WithSize(width, height), WithMaxScrollback(scrollback))
}

func TestCursorSetClamps(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(100, 100)
	if c.Row() != 4 || c.Col() != 9 {
		t.Errorf("expected (4,9), got (%d,%d)", c.Row(), c.Col())
	}

	c.Set(-3, -7)
	if c.Row() != 0 || c.Col() != 0 {
		t.Errorf("expected (0,0), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestCursorMovesClamp(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(2, 5)
	c.Up(10)
	if c.Row() != 0 {
		t.Errorf("expected row 0, got %d", c.Row())
	}
	c.Down(10)
	if c.Row() != 4 {
		t.Errorf("expected row 4, got %d", c.Row())
	}
	c.Left(10)
	if c.Col() != 0 {
		t.Errorf("expected col 0, got %d", c.Col())
	}
	c.Right(100)
	if c.Col() != 9 {
		t.Errorf("expected col 9, got %d", c.Col())
	}
}

func TestCursorAdvanceEntersPendingWrap(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(0, 8)
	c.advance()
	if c.Col() != 9 || c.PendingWrap() {
		t.Errorf("expected (col 9, no pending), got (col %d, pending %v)", c.Col(), c.PendingWrap())
	}

	c.advance()
	if c.Col() != 9 {
		t.Errorf("cursor must stay on last column, got %d", c.Col())
	}
	if !c.PendingWrap() {
		t.Error("expected pending wrap after advancing from last column")
	}
}

func TestCursorMovesClearPendingWrap(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	arm := func() {
		c.Set(0, 9)
		c.advance()
	}

	arm()
	c.Set(0, 9)
	if c.PendingWrap() {
		t.Error("Set must clear pending wrap")
	}

	arm()
	c.Left(1)
	if c.PendingWrap() {
		t.Error("Left must clear pending wrap")
	}

	arm()
	c.handleControl('\r')
	if c.PendingWrap() || c.Col() != 0 {
		t.Errorf("CR must clear pending wrap and home the column, got (col %d, pending %v)", c.Col(), c.PendingWrap())
	}
}

func TestCursorResolveWrap(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(1, 9)
	c.advance()
	c.resolveWrap()

	if c.Row() != 2 || c.Col() != 0 {
		t.Errorf("expected (2,0), got (%d,%d)", c.Row(), c.Col())
	}
	if c.PendingWrap() {
		t.Error("resolve must clear pending wrap")
	}
	if !g.screenLine(2).Wrapped() {
		t.Error("the target row must be marked as a continuation")
	}
}

func TestCursorResolveWrapScrollsAtBottom(t *testing.T) {
	g := testGrid(10, 2, 5)
	g.Write("0123456789")
	g.WriteAt("ABCDEFGHIJ", 1, 0)
	c := g.Cursor()

	if c.Row() != 1 || !c.PendingWrap() {
		t.Fatalf("expected pending wrap on bottom row, got (%d,%d) pending=%v", c.Row(), c.Col(), c.PendingWrap())
	}

	c.resolveWrap()

	if c.Row() != 1 || c.Col() != 0 {
		t.Errorf("expected (1,0) after scroll, got (%d,%d)", c.Row(), c.Col())
	}
	if g.ScrollbackSize() != 1 {
		t.Errorf("expected 1 scrollback line, got %d", g.ScrollbackSize())
	}
	if got, _ := g.GetLine(-1); got != "0123456789" {
		t.Errorf("expected scrolled line in scrollback, got %q", got)
	}
}

func TestCursorResolveWrapNoopWithoutPending(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(2, 4)
	c.resolveWrap()
	if c.Row() != 2 || c.Col() != 4 {
		t.Errorf("expected (2,4), got (%d,%d)", c.Row(), c.Col())
	}
}

func TestCursorHandleControlLineFeed(t *testing.T) {
	g := testGrid(10, 3, 5)
	c := g.Cursor()

	c.Set(0, 4)
	c.handleControl('\n')
	if c.Row() != 1 || c.Col() != 0 {
		t.Errorf("expected (1,0), got (%d,%d)", c.Row(), c.Col())
	}

	c.Set(2, 4)
	c.handleControl('\n')
	if c.Row() != 2 || c.Col() != 0 {
		t.Errorf("expected (2,0) after bottom-row LF, got (%d,%d)", c.Row(), c.Col())
	}
	if g.ScrollbackSize() != 1 {
		t.Errorf("expected LF at bottom to scroll, scrollback %d", g.ScrollbackSize())
	}
}

func TestCursorAdvanceForWide(t *testing.T) {
	g := testGrid(10, 5, 0)
	c := g.Cursor()

	c.Set(0, 3)
	c.advanceForWide()
	if c.Row() != 0 || c.Col() != 5 || c.PendingWrap() {
		t.Errorf("expected (0,5) no pending, got (%d,%d) pending=%v", c.Row(), c.Col(), c.PendingWrap())
	}

	c.Set(0, 8)
	c.advanceForWide()
	if c.Col() != 9 || !c.PendingWrap() {
		t.Errorf("expected last column with pending wrap, got col %d pending=%v", c.Col(), c.PendingWrap())
	}
}
