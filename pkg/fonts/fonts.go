// Package fonts names the font families a document can be set in.
//
// gridpress draws with the PDF core fonts, which every viewer provides, so
// no font files are embedded or shipped. A family is chosen once per
// document; unknown names fall back to [Default].
package fonts

import (
	"slices"
	"strings"
)

// Family is a font family name as accepted on the command line.
type Family string

// Supported families.
const (
	Times     Family = "times"
	Helvetica Family = "helvetica"
	Courier   Family = "courier"
)

// Default is the family used when none or an unknown one is requested.
const Default = Times

var pdfNames = map[Family]string{
	Times:     "Times",
	Helvetica: "Helvetica",
	Courier:   "Courier",
}

// Parse looks up a family by name, ignoring case and surrounding space.
func Parse(name string) (Family, bool) {
	f := Family(strings.ToLower(strings.TrimSpace(name)))
	_, ok := pdfNames[f]
	return f, ok
}

// PDFName returns the core font name used in the PDF font dictionary.
func (f Family) PDFName() string {
	if n, ok := pdfNames[f]; ok {
		return n
	}
	return pdfNames[Default]
}

// Names returns all supported family names in sorted order.
func Names() []string {
	names := make([]string, 0, len(pdfNames))
	for f := range pdfNames {
		names = append(names, string(f))
	}
	slices.Sort(names)
	return names
}

// Style selects a face within a family.
type Style int

const (
	Regular Style = iota
	Bold
)

// PDFStyle returns the style string fpdf expects.
func (s Style) PDFStyle() string {
	if s == Bold {
		return "B"
	}
	return ""
}

func (s Style) String() string {
	if s == Bold {
		return "bold"
	}
	return "regular"
}

// MarshalText encodes the style by name.
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
