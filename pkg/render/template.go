package render

import (
	"math"

	"github.com/matzehuels/gridpress/pkg/canvas"
	"github.com/matzehuels/gridpress/pkg/fonts"
	"github.com/matzehuels/gridpress/pkg/layout"
)

// Template places the title, grid and clue lists at fixed positions on a
// single page, as exported from a visual page designer. Positions are
// measured in points from the top-left corner of the page.
//
// A nil region is not drawn. A clue list without a region of its own
// continues in the other clue region; with neither, no clues are drawn.
type Template struct {
	Title  *TitleRegion `json:"title,omitempty" toml:"title"`
	Grid   *GridRegion  `json:"grid,omitempty" toml:"grid"`
	Across *ClueRegion  `json:"across,omitempty" toml:"across"`
	Down   *ClueRegion  `json:"down,omitempty" toml:"down"`
}

// TitleRegion positions the title. The copyright line, when enabled, sits
// below it at 60% of the title size.
type TitleRegion struct {
	Left     float64 `json:"left" toml:"left"`
	Top      float64 `json:"top" toml:"top"`
	FontSize float64 `json:"font_size,omitempty" toml:"font_size"`
}

// GridRegion positions the grid by its top-left corner.
type GridRegion struct {
	Left     float64 `json:"left" toml:"left"`
	Top      float64 `json:"top" toml:"top"`
	CellSize float64 `json:"cell_size,omitempty" toml:"cell_size"`
}

// ClueRegion is a single column of clues.
type ClueRegion struct {
	Left        float64 `json:"left" toml:"left"`
	Top         float64 `json:"top" toml:"top"`
	Width       float64 `json:"width,omitempty" toml:"width"`
	FontSize    float64 `json:"font_size,omitempty" toml:"font_size"`
	HeadingSize float64 `json:"heading_size,omitempty" toml:"heading_size"`
}

// Template defaults.
const (
	DefaultTemplateTitleSize   = 24.0
	DefaultTemplateCellSize    = 30.0
	DefaultTemplateClueWidth   = 200.0
	DefaultTemplateClueSize    = 14.0
	DefaultTemplateHeadingSize = 18.0
)

// DefaultTemplate returns a letter-sized arrangement: grid at the top left,
// Across beside it and Down underneath.
func DefaultTemplate() *Template {
	t := &Template{
		Title:  &TitleRegion{Left: 36, Top: 36},
		Grid:   &GridRegion{Left: 36, Top: 96, CellSize: 20},
		Across: &ClueRegion{Left: 356, Top: 96, Width: 220, FontSize: 11, HeadingSize: 14},
		Down:   &ClueRegion{Left: 36, Top: 416, Width: 300, FontSize: 11, HeadingSize: 14},
	}
	t.SetDefaults()
	return t
}

// SetDefaults fills zero and non-finite sizes of the regions present.
// Non-finite positions become 0.
func (t *Template) SetDefaults() {
	if r := t.Title; r != nil {
		finitePos(&r.Left, &r.Top)
		if unsetSize(r.FontSize) {
			r.FontSize = DefaultTemplateTitleSize
		}
	}
	if r := t.Grid; r != nil {
		finitePos(&r.Left, &r.Top)
		if unsetSize(r.CellSize) {
			r.CellSize = DefaultTemplateCellSize
		}
	}
	for _, r := range []*ClueRegion{t.Across, t.Down} {
		if r == nil {
			continue
		}
		finitePos(&r.Left, &r.Top)
		if unsetSize(r.Width) {
			r.Width = DefaultTemplateClueWidth
		}
		if unsetSize(r.FontSize) {
			r.FontSize = DefaultTemplateClueSize
		}
		if unsetSize(r.HeadingSize) {
			r.HeadingSize = DefaultTemplateHeadingSize
		}
	}
}

func finitePos(vs ...*float64) {
	for _, v := range vs {
		if math.IsNaN(*v) || math.IsInf(*v, 0) {
			*v = 0
		}
	}
}

// clone copies t and each of its regions.
func (t *Template) clone() *Template {
	c := *t
	if t.Title != nil {
		r := *t.Title
		c.Title = &r
	}
	if t.Grid != nil {
		r := *t.Grid
		c.Grid = &r
	}
	if t.Across != nil {
		r := *t.Across
		c.Across = &r
	}
	if t.Down != nil {
		r := *t.Down
		c.Down = &r
	}
	return &c
}

// template draws the templated page. Clue regions overflow onto pages that
// repeat the title; once Across has overflowed, Down continues after it in
// the same flow rather than returning to the first page.
func (o *orchestrator) template() {
	t := o.set.Template.clone()
	t.SetDefaults()
	ph := o.set.paper.Height

	o.s.NewPage(o.set.paper.Width, ph)
	o.templateHeader(t)(false)
	first := o.s.PageCount()

	if t.Grid != nil {
		DrawGrid(o.s, o.p, GridOptions{CellSize: t.Grid.CellSize, X: t.Grid.Left, Y: ph - t.Grid.Top})
	}

	acrossRegion, downRegion := t.Across, t.Down
	if acrossRegion == nil {
		acrossRegion = downRegion
	}
	if acrossRegion == nil {
		o.stats.Sections = append(o.stats.Sections, SectionTemplate)
		return
	}

	across, down := o.p.Clues.Across, o.p.Clues.Down
	var (
		f   *layout.Flow
		cur layout.Cursor
	)
	if len(across) > 0 {
		f = o.regionFlow(t, acrossRegion)
		cur = f.At(ph - acrossRegion.Top - acrossRegion.HeadingSize*capHeight)
		cur = f.Heading(cur, HeadingAcross)
		cur = place(f, cur, across)
	}
	if len(down) > 0 {
		switch {
		case f == nil:
			r := downRegion
			if r == nil {
				r = acrossRegion
			}
			f = o.regionFlow(t, r)
			cur = f.At(ph - r.Top - r.HeadingSize*capHeight)
		case downRegion != nil && downRegion != acrossRegion && o.s.PageCount() == first:
			f = o.regionFlow(t, downRegion)
			cur = f.At(ph - downRegion.Top - downRegion.HeadingSize*capHeight)
		default:
			cur = f.Skip(cur, 2*f.Geometry.LineHeight)
		}
		cur = f.Heading(cur, HeadingDown)
		place(f, cur, down)
	}
	o.stats.Sections = append(o.stats.Sections, SectionTemplate)
}

func (o *orchestrator) regionFlow(t *Template, r *ClueRegion) *layout.Flow {
	lh := r.FontSize * o.set.LineSpacing
	g := layout.Geometry{
		PageWidth:   o.set.paper.Width,
		PageHeight:  o.set.paper.Height,
		Left:        r.Left,
		Width:       r.Width,
		Bottom:      o.set.Margin,
		Columns:     1,
		FontSize:    r.FontSize,
		LineHeight:  lh,
		HeadingSize: r.HeadingSize,
		HeadingGap:  lh,
		LabelGap:    layout.LabelGap,
		BlockGap:    lh * layout.BlockGapRatio,
	}
	return layout.New(o.s, g, o.templateHeader(t))
}

// templateHeader returns a header drawing the title at its template
// position. Without a title region, continuation pages start at the top
// margin.
func (o *orchestrator) templateHeader(t *Template) layout.Header {
	return func(continued bool) float64 {
		if continued {
			o.stats.ContinuedPages++
		}
		ph := o.set.paper.Height
		title := t.Title
		if title == nil {
			return ph - o.set.Margin
		}
		y := ph - title.Top - title.FontSize*capHeight
		o.s.DrawText(o.p.Title, title.Left, y, fonts.Bold, title.FontSize, canvas.Black)
		y -= title.FontSize * 1.5

		if o.set.IncludeCopyright && o.p.Copyright != "" {
			o.s.DrawText(o.p.Copyright, title.Left, y, fonts.Regular, title.FontSize*0.6, canvas.Black)
			y -= title.FontSize
		}
		return y - o.set.lineHeight
	}
}
