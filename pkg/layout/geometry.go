package layout

// Default spacing constants.
const (
	// LabelGap separates a block label from the first line of its text.
	LabelGap = 10.0

	// BlockGapRatio is the space left after a block, as a fraction of the
	// line height.
	BlockGapRatio = 0.3

	// ColumnGapRatio is the gutter between columns, as a fraction of the
	// page margin.
	ColumnGapRatio = 0.6
)

// Geometry describes the area a flow fills. All values are in points,
// with y measured up from the bottom edge of the page.
type Geometry struct {
	PageWidth  float64
	PageHeight float64

	Left   float64 // x of the first column
	Width  float64 // total width of all columns and gutters
	Bottom float64 // lowest permitted descent; normally the page margin

	Columns   int
	ColumnGap float64

	FontSize   float64
	LineHeight float64

	HeadingSize float64
	HeadingGap  float64 // space below a section heading

	Indent   float64 // continuation indent; 0 means hang under the first line
	LabelGap float64
	BlockGap float64
}

// NewGeometry returns the geometry of a page filled margin to margin with
// n columns of text set at fontSize.
func NewGeometry(pageWidth, pageHeight, margin float64, n int, fontSize, lineSpacing float64) Geometry {
	lh := fontSize * lineSpacing
	return Geometry{
		PageWidth:   pageWidth,
		PageHeight:  pageHeight,
		Left:        margin,
		Width:       pageWidth - 2*margin,
		Bottom:      margin,
		Columns:     max(n, 1),
		ColumnGap:   margin * ColumnGapRatio,
		FontSize:    fontSize,
		LineHeight:  lh,
		HeadingSize: fontSize,
		HeadingGap:  lh,
		LabelGap:    LabelGap,
		BlockGap:    lh * BlockGapRatio,
	}
}

// ColumnWidth returns the width of a single column.
func (g Geometry) ColumnWidth() float64 {
	n := max(g.Columns, 1)
	return (g.Width - float64(n-1)*g.ColumnGap) / float64(n)
}

// ColumnX returns the left edge of column col.
func (g Geometry) ColumnX(col int) float64 {
	return g.Left + float64(col)*(g.ColumnWidth()+g.ColumnGap)
}

// Exhausted reports whether a line can no longer be set at baseline y.
func (g Geometry) Exhausted(y float64) bool {
	return y < g.Bottom+g.LineHeight
}
