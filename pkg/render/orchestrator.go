package render

import (
	"github.com/matzehuels/gridpress/pkg/canvas"
	"github.com/matzehuels/gridpress/pkg/fonts"
	"github.com/matzehuels/gridpress/pkg/layout"
	"github.com/matzehuels/gridpress/pkg/puzzle"
)

// Section headings.
const (
	HeadingAcross   = "ACROSS"
	HeadingDown     = "DOWN"
	HeadingSolution = "SOLUTION"
)

// Section names reported in [Stats].
const (
	SectionGrid     = "grid"
	SectionAcross   = "across"
	SectionDown     = "down"
	SectionClues    = "clues"
	SectionSolution = "solution"
	SectionTemplate = "template"
)

// orchestrator sequences the sections of one document. It is used for a
// single render and then discarded.
type orchestrator struct {
	s     canvas.Surface
	p     *puzzle.Puzzle
	set   settings
	stats Stats
}

func (o *orchestrator) run() {
	switch o.set.LayoutStyle {
	case StyleBook:
		o.grid(false)
		o.clues(SectionAcross, HeadingAcross, o.p.Clues.Across)
		o.clues(SectionDown, HeadingDown, o.p.Clues.Down)
	case StyleGridFirst:
		o.grid(false)
		o.combined()
	case StyleCluesFirst:
		o.combined()
		o.grid(false)
	case StyleGridOnly:
		o.grid(false)
	case StyleCluesOnly:
		o.combined()
	case StyleTemplate:
		o.template()
	}

	if o.set.IncludeSolution {
		o.grid(true)
	}

	// A document always has at least a title page.
	if o.s.PageCount() == 0 {
		o.startPage()
	}
	o.stats.Pages = o.s.PageCount()
}

// startPage begins a page, draws the header and returns the baseline where
// content starts.
func (o *orchestrator) startPage() float64 {
	o.s.NewPage(o.set.paper.Width, o.set.paper.Height)
	return o.header(false)
}

// header draws the centered title and optional copyright. It satisfies
// [layout.Header].
func (o *orchestrator) header(continued bool) float64 {
	st := o.set
	avail := st.paper.Width - 2*st.Margin

	size := fitSize(o.s, o.p.Title, fonts.Bold, st.TitleFontSize, avail)
	y := st.paper.Height - st.Margin - size*capHeight
	o.centered(o.p.Title, y, fonts.Bold, size)
	y -= st.TitleFontSize * 1.5

	if st.IncludeCopyright && o.p.Copyright != "" {
		size := fitSize(o.s, o.p.Copyright, fonts.Regular, st.FontSize*0.8, avail)
		o.centered(o.p.Copyright, y, fonts.Regular, size)
		y -= st.lineHeight
	}

	if continued {
		o.stats.ContinuedPages++
	}
	return y - 2*st.lineHeight
}

func (o *orchestrator) centered(text string, y float64, style fonts.Style, size float64) {
	w := o.s.MeasureText(text, style, size)
	o.s.DrawText(text, (o.set.paper.Width-w)/2, y, style, size, canvas.Black)
}

// fitSize shrinks size so text fits in width.
func fitSize(m canvas.Measurer, text string, style fonts.Style, size, width float64) float64 {
	w := m.MeasureText(text, style, size)
	if w <= width || w == 0 {
		return size
	}
	return size * width / w
}

// grid draws a grid page, or the solution page when solution is set.
func (o *orchestrator) grid(solution bool) {
	st := o.set
	y := o.startPage()

	section := SectionGrid
	if solution {
		section = SectionSolution
		o.centered(HeadingSolution, y, fonts.Bold, st.FontSize*1.2)
		y -= 2 * st.lineHeight
	}

	pw, ph := st.paper.Width, st.paper.Height
	maxW := min(pw-2*st.Margin, ph-2*st.Margin-3*st.TitleFontSize, y-st.Margin)
	cell := GridCellSize(maxW, o.p.Size())
	x := (pw - cell*float64(o.p.Cols())) / 2

	DrawGrid(o.s, o.p, GridOptions{CellSize: cell, X: x, Y: y, ShowSolution: solution})
	o.stats.Sections = append(o.stats.Sections, section)
}

func (o *orchestrator) flow() *layout.Flow {
	st := o.set
	g := layout.NewGeometry(st.paper.Width, st.paper.Height, st.Margin, st.columns, st.FontSize, st.LineSpacing)
	g.HeadingSize = st.SectionHeadingSize
	g.HeadingGap = st.titleGap
	return layout.New(o.s, g, o.header)
}

// clues flows one clue list onto its own pages. An empty list draws
// nothing.
func (o *orchestrator) clues(section, heading string, list []puzzle.Clue) {
	if len(list) == 0 {
		return
	}
	f := o.flow()
	cur := f.Heading(f.Start(), heading)
	place(f, cur, list)
	o.stats.Sections = append(o.stats.Sections, section)
}

// combined flows Across then Down through the same pages.
func (o *orchestrator) combined() {
	across, down := o.p.Clues.Across, o.p.Clues.Down
	if len(across) == 0 && len(down) == 0 {
		return
	}

	f := o.flow()
	cur := f.Start()
	if len(across) > 0 {
		cur = f.Heading(cur, HeadingAcross)
		cur = place(f, cur, across)
	}
	if len(down) > 0 {
		if len(across) > 0 {
			cur = f.Skip(cur, 2*o.set.lineHeight)
		}
		cur = f.Heading(cur, HeadingDown)
		place(f, cur, down)
	}
	o.stats.Sections = append(o.stats.Sections, SectionClues)
}

func place(f *layout.Flow, cur layout.Cursor, list []puzzle.Clue) layout.Cursor {
	for _, c := range list {
		cur = f.PlaceNumbered(cur, c.Number, c.Text)
	}
	return cur
}
