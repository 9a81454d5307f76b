package canvas

import (
	"sync"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/gridpress/pkg/fonts"
)

// Metrics measures strings with the core font widths bundled with fpdf.
// It is safe for concurrent use.
type Metrics struct {
	mu     sync.Mutex
	doc    *fpdf.Fpdf
	family fonts.Family
	tr     func(string) string
}

// NewMetrics returns a measurer for family.
func NewMetrics(family fonts.Family) *Metrics {
	doc := fpdf.New("P", "pt", "Letter", "")
	return &Metrics{
		doc:    doc,
		family: family,
		tr:     doc.UnicodeTranslatorFromDescriptor(""),
	}
}

// MeasureText implements [Measurer].
func (m *Metrics) MeasureText(text string, style fonts.Style, size float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.doc.SetFont(m.family.PDFName(), style.PDFStyle(), size)
	return m.doc.GetStringWidth(m.tr(text))
}

// MonoMetrics gives every rune the same advance, Advance × size. Layout
// arithmetic becomes exact, which is what tests want.
type MonoMetrics struct {
	Advance float64
}

// MeasureText implements [Measurer].
func (m MonoMetrics) MeasureText(text string, _ fonts.Style, size float64) float64 {
	return float64(utf8.RuneCountInString(text)) * size * m.Advance
}
