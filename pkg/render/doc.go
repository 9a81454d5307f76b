// Package render turns a normalized puzzle into a paginated document.
//
// # Overview
//
// [Render] is the document assembler: it picks the font family, creates
// the page surface, runs the page layout orchestrator and serializes the
// result. The orchestrator decides which sections appear and in what order,
// based on [Options.LayoutStyle]:
//
//	book-style    grid page, Across page(s), Down page(s)
//	grid-first    grid page, combined Across+Down page(s)
//	clues-first   combined Across+Down page(s), grid page
//	grid-only     grid page
//	clues-only    combined Across+Down page(s)
//	template      one page arranged by a [Template]
//
// With [Options.IncludeSolution] a solution page follows, whatever the
// style. Every page starts with the centered title (and the copyright line
// when [Options.IncludeCopyright] is set). Clue text is set by the
// [layout.Flow] engine in one or more columns; grids are drawn by
// [DrawGrid].
//
// # Options
//
// Zero values take defaults (18pt text, 24pt title, 36pt margins, Times,
// letter paper, one column). Names the renderer does not know fall back to
// their defaults; [Options.Warnings] lists them as UNSUPPORTED_OPTION errors
// so callers can log them. None of them make a render fail.
//
// [ColumnsAuto] picks the column count from the font size:
//
//	font size ≤ 12pt   3 columns (4 on legal paper)
//	font size ≤ 14pt   2 columns
//	otherwise          1 column
//
// # Output
//
// Output is deterministic: rendering the same puzzle with the same options
// twice yields identical bytes. The "json" format serializes the recorded
// draw commands of the very same layout, which is useful for inspecting
// pagination without a PDF viewer.
package render
