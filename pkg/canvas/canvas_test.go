package canvas

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/gridpress/pkg/fonts"
)

func drawSample(s Surface) {
	s.NewPage(612, 792)
	s.DrawText("CROSSWORD", 72, 720, fonts.Bold, 24, Black)
	s.DrawRect(Rect{X: 72, Y: 600, W: 30, H: 30, Fill: &White, Stroke: &Black, LineWidth: 1})
	s.DrawRect(Rect{X: 102, Y: 600, W: 30, H: 30, Fill: &Black})
	s.NewPage(612, 1008)
	s.DrawText("ACROSS", 36, 950, fonts.Bold, 20, Black)
}

func TestPDFSerialize(t *testing.T) {
	p := NewPDF(fonts.Times, Info{Title: "Test", Creator: "gridpress"})
	drawSample(p)

	if got := p.PageCount(); got != 2 {
		t.Errorf("PageCount() = %d, want 2", got)
	}

	var buf bytes.Buffer
	if err := p.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Errorf("output does not start with %%PDF: %q", buf.Bytes()[:8])
	}
}

func TestPDFDeterministic(t *testing.T) {
	render := func() []byte {
		p := NewPDF(fonts.Helvetica, Info{Title: "Same", Author: "Setter"})
		drawSample(p)
		var buf bytes.Buffer
		if err := p.Serialize(&buf); err != nil {
			t.Fatalf("Serialize: %v", err)
		}
		return buf.Bytes()
	}

	a, b := render(), render()
	if !bytes.Equal(a, b) {
		t.Error("two renders of the same drawing differ")
	}
}

func TestPDFDrawBeforePage(t *testing.T) {
	p := NewPDF(fonts.Times, Info{})
	p.DrawText("orphan", 10, 10, fonts.Regular, 12, Black)

	if err := p.Serialize(&bytes.Buffer{}); err == nil {
		t.Error("Serialize() error = nil, want error for draw before first page")
	}
}

func TestMetricsCourier(t *testing.T) {
	m := NewMetrics(fonts.Courier)

	// Courier advances 600 units per 1000 em.
	tests := []struct {
		text  string
		style fonts.Style
		size  float64
		want  float64
	}{
		{"abc", fonts.Regular, 10, 18},
		{"abc", fonts.Bold, 10, 18},
		{"", fonts.Regular, 10, 0},
		{"12", fonts.Bold, 20, 24},
	}
	for _, tt := range tests {
		got := m.MeasureText(tt.text, tt.style, tt.size)
		if math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("MeasureText(%q, %v, %v) = %v, want %v", tt.text, tt.style, tt.size, got, tt.want)
		}
	}
}

func TestMetricsMatchPDF(t *testing.T) {
	m := NewMetrics(fonts.Times)
	p := NewPDF(fonts.Times, Info{})

	for _, s := range []string{"Feline", "A much longer clue, with punctuation!", "Café"} {
		a := m.MeasureText(s, fonts.Regular, 18)
		b := p.MeasureText(s, fonts.Regular, 18)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("MeasureText(%q): metrics %v, pdf %v", s, a, b)
		}
	}
}

func TestMonoMetrics(t *testing.T) {
	m := MonoMetrics{Advance: 0.5}
	if got := m.MeasureText("héllo", fonts.Regular, 10); got != 25 {
		t.Errorf("MeasureText = %v, want 25", got)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(MonoMetrics{Advance: 0.5})
	drawSample(r)

	if got := r.PageCount(); got != 2 {
		t.Fatalf("PageCount() = %d, want 2", got)
	}
	if got := len(r.Pages[0].Ops); got != 3 {
		t.Errorf("page 1 ops = %d, want 3", got)
	}
	texts := r.Pages[1].Texts()
	if len(texts) != 1 || texts[0].Text != "ACROSS" || texts[0].Style != fonts.Bold {
		t.Errorf("page 2 texts = %+v", texts)
	}
	if r.Pages[1].Height != 1008 {
		t.Errorf("page 2 height = %v, want 1008", r.Pages[1].Height)
	}

	var buf bytes.Buffer
	if err := r.Serialize(&buf); err != nil {
		t.Fatalf("Serialize: %v", err)
	}

	var decoded struct {
		Pages []struct {
			Ops []map[string]any `json:"ops"`
		} `json:"pages"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if len(decoded.Pages) != 2 {
		t.Fatalf("decoded pages = %d, want 2", len(decoded.Pages))
	}
	first := decoded.Pages[0].Ops[0]
	if first["style"] != "bold" || first["color"] != "#000000" {
		t.Errorf("first op = %v", first)
	}
	if !strings.Contains(buf.String(), `"fill": "#ffffff"`) {
		t.Error("serialized rect is missing its fill color")
	}
}

func TestRecorderDrawBeforePage(t *testing.T) {
	r := NewRecorder(MonoMetrics{Advance: 0.5})
	r.DrawRect(Rect{W: 1, H: 1, Fill: &Black})
	if err := r.Serialize(&bytes.Buffer{}); err == nil {
		t.Error("Serialize() error = nil, want error for draw before first page")
	}
}

func TestColorHex(t *testing.T) {
	if got := (Color{R: 255, G: 16, B: 0}).Hex(); got != "#ff1000" {
		t.Errorf("Hex() = %q, want #ff1000", got)
	}
}
