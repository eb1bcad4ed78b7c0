// Package termgrid implements the in-memory cell grid of a terminal
// emulator: a fixed-height visible screen over a bounded scrollback
// tail, with styled cells, VT100 pending-wrap cursor semantics, wide
// (double-width) character placement, and dynamic resize with content
// reflow.
//
// The package is a pure data structure: no I/O, no rendering, no
// escape parsing in the core. Consumers push decoded character streams
// in and read cells, lines and cursor coordinates back out.
//
// # Quick Start
//
//	grid := termgrid.New(termgrid.WithSize(80, 24), termgrid.WithMaxScrollback(1000))
//	grid.Write("hello\nworld")
//	fmt.Print(grid.ScreenToString())
//
// # Core types
//
//   - [Grid]: the screen + scrollback with write, insert, resize and
//     the query surface
//   - [Line]: one row as parallel character/attribute arrays
//   - [Attributes]: a cell's colours and styles packed into 32 bits
//   - [Cursor]: position with pending-wrap state
//   - [RingBuffer]: the fixed-capacity FIFO backing screen and
//     scrollback
//
// # Writing and inserting
//
// [Grid.Write] overwrites cells at the cursor, wrapping at the right
// edge and scrolling off the bottom. [Grid.Insert] shifts existing
// content right instead, cascading displaced cells through the
// following lines. Both understand CR, LF and wide characters; a wide
// character never straddles a line end.
//
// # Wide characters
//
// A rune classified as double-width occupies two cells; the second
// holds [WidePlaceholder] (U+0000). Renderers draw the base cell
// across both columns. The default classifier [IsWide] uses a fixed
// block table; [UnicodeWidth] (UAX #11, via uniwidth) can be swapped
// in with [WithWidthFunc].
//
// # Scrollback and queries
//
// Lines scrolled off the top land in a bounded scrollback ring,
// oldest evicted first. The query surface addresses it with negative
// rows:
//
//	ch, err := grid.GetChar(-1, 0) // most recent scrollback line
//
// # Resize
//
// [Grid.Resize] reflows everything to the new width: soft-wrapped
// lines are regrouped into paragraphs, trimmed of trailing blanks and
// re-split, and the cursor keeps its logical position in the text.
//
// # Feeding ANSI streams
//
// [Terminal] couples a Grid to a go-ansicode decoder and implements
// io.Writer, so PTY output can be piped straight in:
//
//	grid := termgrid.New(termgrid.WithSize(80, 24))
//	term := termgrid.NewTerminal(termgrid.WithGrid(grid))
//	cmd.Stdout = term
//
// # Snapshots and screenshots
//
// [Grid.Snapshot] captures the state as a JSON-serialisable structure
// at text, styled-segment or full-cell detail. [Grid.Screenshot]
// renders the grid to an image for golden tests and debugging.
//
// # Concurrency
//
// The engine is single-threaded by design. Nothing locks; callers
// must serialise access to a Grid or Terminal.
package termgrid
