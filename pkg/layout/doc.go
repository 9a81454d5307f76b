// Package layout implements the text flow engine: greedy word wrapping of
// labelled blocks into one or more columns, spilling onto new pages when a
// column runs out of vertical space.
//
// # Overview
//
// Every caller that sets clue text (book-style pages, combined clue pages,
// templated regions) goes through the same [Flow]. A flow is parameterized
// by a [Geometry], the [canvas.Surface] it draws on, and a [Header] callback
// that draws the running header whenever the flow starts a page.
//
// The write position is an explicit [Cursor] value. Every operation takes a
// cursor and returns the advanced one; nothing about the position is kept
// in the Flow itself, so a caller can hand the cursor of one section to the
// next (Across followed by Down on the same page).
//
// # Transitions
//
// Before a label or a continuation line is drawn, the cursor is tested for
// exhaustion: y < Bottom + LineHeight. An exhausted cursor moves to the top
// of the next column, or, past the last column, to a fresh page. A fresh
// page started in the middle of a section repeats the section heading as
// "ACROSS (continued)". Transitions depend only on vertical space; a word
// wider than the column never forces one.
//
// # Wrapping
//
// [Wrap] accumulates whitespace-separated words while the measured line
// fits. The first line of a block is narrower by the width of its bold
// label; continuation lines are indented by [Geometry.Indent], which
// defaults to the label width (a hanging indent). A single word wider than
// the available width is placed on a line of its own and overflows.
package layout
