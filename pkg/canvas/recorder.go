package canvas

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/gridpress/pkg/fonts"
)

// OpKind identifies a recorded draw call.
type OpKind string

const (
	OpText OpKind = "text"
	OpRect OpKind = "rect"
)

// Op is one recorded draw call.
type Op struct {
	Kind  OpKind      `json:"kind"`
	Text  string      `json:"text,omitempty"`
	X     float64     `json:"x"`
	Y     float64     `json:"y"`
	Style fonts.Style `json:"style,omitempty"`
	Size  float64     `json:"size,omitempty"`
	Color *Color      `json:"color,omitempty"`
	Rect  *Rect       `json:"rect,omitempty"`
}

// Page is the recorded content of one page.
type Page struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Ops    []Op    `json:"ops"`
}

// Texts returns the text ops on the page in draw order.
func (p Page) Texts() []Op {
	var out []Op
	for _, op := range p.Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

// Recorder is a [Document] that keeps draw calls in memory.
type Recorder struct {
	Measurer `json:"-"`

	Info   Info         `json:"info"`
	Family fonts.Family `json:"font_family,omitempty"`
	Pages  []Page       `json:"pages"`

	err error
}

// NewRecorder returns an empty recorder measuring with m.
func NewRecorder(m Measurer) *Recorder {
	return &Recorder{Measurer: m, Pages: []Page{}}
}

// NewPage implements [Surface].
func (r *Recorder) NewPage(width, height float64) {
	r.Pages = append(r.Pages, Page{Width: width, Height: height, Ops: []Op{}})
}

// PageCount implements [Surface].
func (r *Recorder) PageCount() int { return len(r.Pages) }

// DrawText implements [Surface].
func (r *Recorder) DrawText(text string, x, y float64, style fonts.Style, size float64, color Color) {
	c := color
	r.append(Op{Kind: OpText, Text: text, X: x, Y: y, Style: style, Size: size, Color: &c})
}

// DrawRect implements [Surface].
func (r *Recorder) DrawRect(rect Rect) {
	rc := rect
	r.append(Op{Kind: OpRect, X: rect.X, Y: rect.Y, Rect: &rc})
}

func (r *Recorder) append(op Op) {
	if len(r.Pages) == 0 {
		r.err = errNoPage
		return
	}
	last := &r.Pages[len(r.Pages)-1]
	last.Ops = append(last.Ops, op)
}

// Serialize writes the recorded pages as indented JSON.
func (r *Recorder) Serialize(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
