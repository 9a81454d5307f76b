package canvas

import (
	"fmt"
	"io"

	"github.com/matzehuels/gridpress/pkg/fonts"
)

// Color is an RGB color.
type Color struct {
	R, G, B uint8
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// Hex returns the color as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// MarshalText encodes the color as #rrggbb.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// Rect is an axis-aligned rectangle anchored at its bottom-left corner.
// A nil Fill or Stroke skips that part.
type Rect struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	W         float64 `json:"w"`
	H         float64 `json:"h"`
	Fill      *Color  `json:"fill,omitempty"`
	Stroke    *Color  `json:"stroke,omitempty"`
	LineWidth float64 `json:"line_width,omitempty"`
}

// Measurer reports the advance width of a string in points.
type Measurer interface {
	MeasureText(text string, style fonts.Style, size float64) float64
}

// Surface is an append-only sequence of pages. Draw calls always target the
// most recently started page.
type Surface interface {
	Measurer

	// NewPage starts a page of the given size in points.
	NewPage(width, height float64)

	// PageCount returns the number of pages started so far.
	PageCount() int

	// DrawText draws text with its baseline starting at (x, y).
	DrawText(text string, x, y float64, style fonts.Style, size float64, color Color)

	// DrawRect draws a filled and/or stroked rectangle.
	DrawRect(r Rect)
}

// Document is a Surface that can be written out once all pages are drawn.
type Document interface {
	Surface
	Serialize(w io.Writer) error
}

// Info is document-level metadata.
type Info struct {
	Title   string `json:"title,omitempty"`
	Author  string `json:"author,omitempty"`
	Subject string `json:"subject,omitempty"`
	Creator string `json:"creator,omitempty"`
}
