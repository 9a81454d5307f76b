// Package pkg provides the core libraries for Gridpress crossword typesetting.
//
// # Overview
//
// Gridpress reads crossword puzzles in the ipuz JSON format and lays them out
// as print-ready PDF documents. The pkg directory is organized into three
// areas:
//
//  1. Domain logic: [puzzle], [layout], [render] and [canvas]
//  2. Infrastructure: [cache], [config], [observability] and [buildinfo]
//  3. Orchestration: [pipeline] (parse → render → cache, single file or batch)
//
// # Architecture
//
// The typical data flow through Gridpress:
//
//	ipuz JSON
//	    ↓
//	[puzzle] package (normalize grid, clues and metadata)
//	    ↓
//	[render] package (choose a page layout, draw the grid, flow the clues)
//	    ↓        ↘
//	[layout]     [canvas] (PDF surface or JSON draw-command recorder)
//	    ↓
//	PDF/JSON output
//
// # Quick Start
//
// Render a puzzle file to PDF:
//
//	import (
//	    "os"
//
//	    "github.com/matzehuels/gridpress/pkg/puzzle"
//	    "github.com/matzehuels/gridpress/pkg/render"
//	)
//
//	data, _ := os.ReadFile("daily.ipuz")
//	p, _ := puzzle.Parse(data)
//	pdf, _ := render.Render(p, render.Options{
//	    LayoutStyle: render.StyleGridFirst,
//	    Columns:     render.ColumnsAuto,
//	})
//	os.WriteFile("daily.pdf", pdf, 0o644)
//
// For caching, hooks and batch processing use [pipeline.Runner] instead.
//
// # Main Packages
//
// [puzzle] - Tolerant normalization of ipuz documents: numeric or string
// cells, block markers, clue entries as pairs, objects or "N. text"
// strings, and section names in any case.
//
// [layout] - The text flow engine. Greedy word wrapping of numbered clues into
// columns, spilling onto continuation pages when a column fills up.
//
// [render] - Page layout styles (book-style, grid-first, clues-first,
// grid-only, clues-only, template), the grid renderer and the solution page.
//
// [canvas] - The drawing surface: a PDF backend built on fpdf and a recorder
// that serializes the same draw calls as JSON.
//
// [pipeline] - Orchestration with a two-tier cache (normalized puzzle, then
// rendered artifact) and a bounded-concurrency batch runner.
//
// [cache] - File, Redis and null cache backends behind one interface.
//
// [errors] - Structured error codes shared by the CLI and HTTP server.
package pkg
