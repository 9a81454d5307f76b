package layout

import (
	"strconv"

	"github.com/matzehuels/gridpress/pkg/canvas"
	"github.com/matzehuels/gridpress/pkg/fonts"
)

// ContinuedSuffix is appended to a section heading repeated on a
// continuation page.
const ContinuedSuffix = " (continued)"

// Header draws the running header on a page the flow has just started and
// returns the baseline at which content may begin. continued is true when
// the page continues a section begun on an earlier page.
type Header func(continued bool) float64

// Cursor is the write position of a flow.
type Cursor struct {
	Page    int     // zero-based page index on the surface
	Column  int     // zero-based column index
	Y       float64 // baseline of the next line
	Top     float64 // baseline at which columns on this page start
	Section string  // heading of the section being flowed, if any
}

// Flow sets labelled text blocks into columns and pages.
type Flow struct {
	Surface  canvas.Surface
	Geometry Geometry
	Header   Header
	Color    canvas.Color
}

// New returns a flow drawing black text on s.
func New(s canvas.Surface, g Geometry, h Header) *Flow {
	return &Flow{Surface: s, Geometry: g, Header: h, Color: canvas.Black}
}

// Start begins a new page and returns a cursor at the top of its first
// column.
func (f *Flow) Start() Cursor {
	return f.newPage(false)
}

// At returns a cursor at baseline y in the first column of the current
// page. Columns on this page will start at y as well.
func (f *Flow) At(y float64) Cursor {
	return Cursor{Page: f.Surface.PageCount() - 1, Y: y, Top: y}
}

func (f *Flow) newPage(continued bool) Cursor {
	f.Surface.NewPage(f.Geometry.PageWidth, f.Geometry.PageHeight)
	top := f.Geometry.PageHeight - f.Geometry.Bottom
	if f.Header != nil {
		top = f.Header(continued)
	}
	return f.At(top)
}

// Ensure returns cur unchanged while a line still fits. Otherwise it moves
// to the next column, or to a new page when cur is in the last column.
func (f *Flow) Ensure(cur Cursor) Cursor {
	if !f.Geometry.Exhausted(cur.Y) {
		return cur
	}
	return f.advance(cur)
}

func (f *Flow) advance(cur Cursor) Cursor {
	g := f.Geometry
	if cur.Column < g.Columns-1 {
		cur.Column++
		cur.Y = cur.Top
		return cur
	}

	if cur.Section == "" {
		return f.newPage(false)
	}
	next := f.newPage(true)
	next = f.heading(next, cur.Section+ContinuedSuffix)
	next.Section = cur.Section
	return next
}

// Heading places a section heading and marks the cursor as inside that
// section. A heading is never left without room for a line below it, and a
// page started to make room for the heading is not a continuation.
func (f *Flow) Heading(cur Cursor, label string) Cursor {
	cur.Section = ""
	if g := f.Geometry; !g.Exhausted(cur.Y) && g.Exhausted(cur.Y-g.HeadingGap) {
		cur = f.advance(cur)
	}
	cur = f.Ensure(cur)
	cur = f.heading(cur, label)
	cur.Section = label
	return cur
}

func (f *Flow) heading(cur Cursor, label string) Cursor {
	g := f.Geometry
	f.Surface.DrawText(label, g.ColumnX(cur.Column), cur.Y, fonts.Bold, g.HeadingSize, f.Color)
	cur.Y -= g.HeadingGap
	return cur
}

// Skip moves the cursor down by dy without testing for exhaustion. The next
// heading or block performs any transition.
func (f *Flow) Skip(cur Cursor, dy float64) Cursor {
	cur.Y -= dy
	return cur
}

// PlaceBlock sets a bold label followed by body text wrapped to the
// column. Continuation lines may land in later columns or pages; the label
// is drawn once. The returned cursor sits below the block and its gap, never
// lower than the bottom limit.
func (f *Flow) PlaceBlock(cur Cursor, label, body string) Cursor {
	g := f.Geometry
	s := f.Surface

	cur = f.Ensure(cur)
	s.DrawText(label, g.ColumnX(cur.Column), cur.Y, fonts.Bold, g.FontSize, f.Color)

	labelW := s.MeasureText(label, fonts.Bold, g.FontSize) + g.LabelGap
	indent := g.Indent
	if indent <= 0 {
		indent = labelW
	}
	measure := func(text string) float64 {
		return s.MeasureText(text, fonts.Regular, g.FontSize)
	}

	colW := g.ColumnWidth()
	lines := Wrap(body, colW-labelW, colW-indent, measure)
	for i, line := range lines {
		offset := labelW
		if i > 0 {
			cur = f.Ensure(cur)
			offset = indent
		}
		s.DrawText(line, g.ColumnX(cur.Column)+offset, cur.Y, fonts.Regular, g.FontSize, f.Color)
		cur.Y -= g.LineHeight
	}
	if len(lines) == 0 {
		cur.Y -= g.LineHeight
	}

	// The gap never pushes the cursor below Bottom; the next block's
	// exhaustion test starts the new column or page.
	if y := cur.Y - g.BlockGap; y >= g.Bottom {
		cur.Y = y
	} else if cur.Y > g.Bottom {
		cur.Y = g.Bottom
	}
	return cur
}

// PlaceNumbered is PlaceBlock with an integer label.
func (f *Flow) PlaceNumbered(cur Cursor, n int, body string) Cursor {
	return f.PlaceBlock(cur, strconv.Itoa(n), body)
}
