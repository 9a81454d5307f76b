// Package canvas is the drawing surface layouts are written onto.
//
// A [Surface] exposes the handful of primitives the renderer needs: start a
// page, draw a string at a baseline, draw a rectangle, and measure a string.
// Coordinates are in points with the origin at the bottom-left corner of the
// page, y growing upwards, so a text cursor moves down the page by
// decreasing y.
//
// Two surfaces are provided:
//
//   - [PDF] writes a PDF document through github.com/go-pdf/fpdf using the
//     core Times, Helvetica and Courier fonts. Output is byte-for-byte
//     reproducible: creation dates are fixed and the catalog is sorted.
//   - [Recorder] keeps every draw call in memory and serializes them as JSON.
//     Tests assert on it directly; the json output format uses it to expose
//     computed layouts.
//
// Measurement is separated into [Measurer] so layouts can be computed with
// real font widths ([Metrics]) or with fixed-advance arithmetic
// ([MonoMetrics]) in tests.
package canvas
