package render

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/fonts"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultFontSize           = 18.0
	DefaultTitleFontSize      = 24.0
	DefaultSectionHeadingSize = 20.0
	DefaultMargin             = 36.0
	DefaultLineSpacing        = 1.5
	DefaultColumns            = Columns(1)
	DefaultLayoutStyle        = StyleBook
	DefaultTitleClueGap       = GapLarge
	DefaultPaperSize          = PaperLetter

	// MaxColumns bounds the clue column count.
	MaxColumns = 8

	// MaxCellSize caps the side of a grid square in points.
	MaxCellSize = 30.0
)

// Layout styles.
const (
	StyleBook       = "book-style"
	StyleGridFirst  = "grid-first"
	StyleCluesFirst = "clues-first"
	StyleGridOnly   = "grid-only"
	StyleCluesOnly  = "clues-only"
	StyleTemplate   = "template"
)

// ValidStyles is the set of supported layout styles.
var ValidStyles = map[string]bool{
	StyleBook:       true,
	StyleGridFirst:  true,
	StyleCluesFirst: true,
	StyleGridOnly:   true,
	StyleCluesOnly:  true,
	StyleTemplate:   true,
}

// Title-to-clue gap presets.
const (
	GapNormal     = "normal"
	GapLarge      = "large"
	GapExtraLarge = "extra-large"
)

// titleGaps maps a gap preset to a multiple of the line height.
var titleGaps = map[string]float64{
	GapNormal:     1.5,
	GapLarge:      2.5,
	GapExtraLarge: 3.5,
}

// =============================================================================
// Paper
// =============================================================================

// Paper sizes.
const (
	PaperLetter = "letter"
	PaperLegal  = "legal"
	PaperA4     = "A4"
)

// Paper is a page size in points.
type Paper struct {
	Name   string
	Width  float64
	Height float64
}

var papers = map[string]Paper{
	"letter": {PaperLetter, 612, 792},
	"legal":  {PaperLegal, 612, 1008},
	"a4":     {PaperA4, 595.28, 841.89},
}

// LookupPaper finds a paper size by name, ignoring case.
func LookupPaper(name string) (Paper, bool) {
	p, ok := papers[strings.ToLower(strings.TrimSpace(name))]
	return p, ok
}

// =============================================================================
// Columns
// =============================================================================

// Columns is a clue column count. The zero value means "use the default";
// ColumnsAuto derives the count from the font size and paper.
type Columns int

// ColumnsAuto selects the column count from the font size.
const ColumnsAuto Columns = -1

// ParseColumns parses "auto" or a positive integer.
func ParseColumns(s string) (Columns, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "auto") {
		return ColumnsAuto, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidInput, "columns must be a positive integer or \"auto\", got %q", s)
	}
	return Columns(n), nil
}

func (c Columns) String() string {
	if c == ColumnsAuto {
		return "auto"
	}
	return strconv.Itoa(int(c))
}

// MarshalText encodes the count as "auto" or digits.
func (c Columns) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Columns) UnmarshalText(b []byte) error {
	v, err := ParseColumns(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// UnmarshalJSON accepts a number or a string.
func (c *Columns) UnmarshalJSON(b []byte) error {
	var n int
	if err := json.Unmarshal(b, &n); err == nil {
		return c.UnmarshalText([]byte(strconv.Itoa(n)))
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("columns: %w", err)
	}
	return c.UnmarshalText([]byte(s))
}

// UnmarshalTOML accepts an integer or a string.
func (c *Columns) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case int64:
		return c.UnmarshalText([]byte(strconv.FormatInt(x, 10)))
	case string:
		return c.UnmarshalText([]byte(x))
	default:
		return errors.New(errors.ErrCodeInvalidInput, "columns must be an integer or \"auto\", got %T", v)
	}
}

// AutoColumnCount returns the column count used for ColumnsAuto: three
// columns up to 12pt (four on legal paper), two up to 14pt, else one.
func AutoColumnCount(fontSize float64, paper string) int {
	switch {
	case fontSize <= 12 && strings.EqualFold(paper, PaperLegal):
		return 4
	case fontSize <= 12:
		return 3
	case fontSize <= 14:
		return 2
	default:
		return 1
	}
}

// =============================================================================
// Options
// =============================================================================

// Options controls how a puzzle is laid out. Zero values are replaced by
// defaults; unknown names fall back to defaults with a warning.
type Options struct {
	FontFamily         string    `json:"font_family,omitempty" toml:"font_family"`
	FontSize           float64   `json:"font_size,omitempty" toml:"font_size"`
	TitleFontSize      float64   `json:"title_font_size,omitempty" toml:"title_font_size"`
	SectionHeadingSize float64   `json:"section_heading_size,omitempty" toml:"section_heading_size"`
	Margin             float64   `json:"margin,omitempty" toml:"margin"`
	LayoutStyle        string    `json:"layout_style,omitempty" toml:"layout_style"`
	Columns            Columns   `json:"columns,omitempty" toml:"columns"`
	TitleClueGap       string    `json:"title_clue_gap,omitempty" toml:"title_clue_gap"`
	LineSpacing        float64   `json:"line_spacing,omitempty" toml:"line_spacing"`
	PaperSize          string    `json:"paper_size,omitempty" toml:"paper_size"`
	IncludeCopyright   bool      `json:"include_copyright,omitempty" toml:"include_copyright"`
	IncludeSolution    bool      `json:"include_solution,omitempty" toml:"include_solution"`
	Template           *Template `json:"template,omitempty" toml:"-"`
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() Options {
	var o Options
	o.SetDefaults()
	return o
}

// SetDefaults fills zero, non-positive and non-finite values. It is
// idempotent.
func (o *Options) SetDefaults() {
	if o.FontFamily == "" {
		o.FontFamily = string(fonts.Default)
	}
	if unsetSize(o.FontSize) {
		o.FontSize = DefaultFontSize
	}
	if unsetSize(o.TitleFontSize) {
		o.TitleFontSize = DefaultTitleFontSize
	}
	if unsetSize(o.SectionHeadingSize) {
		o.SectionHeadingSize = DefaultSectionHeadingSize
	}
	if unsetSize(o.Margin) {
		o.Margin = DefaultMargin
	}
	if o.LayoutStyle == "" {
		o.LayoutStyle = DefaultLayoutStyle
	}
	if o.Columns == 0 || o.Columns < ColumnsAuto {
		o.Columns = DefaultColumns
	}
	if o.TitleClueGap == "" {
		o.TitleClueGap = DefaultTitleClueGap
	}
	if unsetSize(o.LineSpacing) {
		o.LineSpacing = DefaultLineSpacing
	}
	if o.PaperSize == "" {
		o.PaperSize = DefaultPaperSize
	}
}

// unsetSize reports whether a size must be replaced by its default. NaN
// fails every comparison, so the test is written as !(v > 0).
func unsetSize(v float64) bool {
	return !(v > 0) || math.IsInf(v, 1)
}

// Warnings reports the option values that will be replaced by defaults.
// Each warning is an UNSUPPORTED_OPTION error; none of them stop a render.
func (o Options) Warnings() []error {
	_, warns := o.resolve()
	return warns
}

// settings are options with every name resolved and derived sizes computed.
type settings struct {
	Options

	family     fonts.Family
	paper      Paper
	columns    int
	lineHeight float64
	titleGap   float64
}

func (o Options) resolve() (settings, []error) {
	var warns []error
	for _, f := range []struct {
		name string
		v    *float64
		def  float64
	}{
		{"font size", &o.FontSize, DefaultFontSize},
		{"title font size", &o.TitleFontSize, DefaultTitleFontSize},
		{"section heading size", &o.SectionHeadingSize, DefaultSectionHeadingSize},
		{"margin", &o.Margin, DefaultMargin},
		{"line spacing", &o.LineSpacing, DefaultLineSpacing},
	} {
		if math.IsNaN(*f.v) || math.IsInf(*f.v, 0) {
			warns = append(warns, errors.Unsupported(f.name, strconv.FormatFloat(*f.v, 'g', -1, 64), strconv.FormatFloat(f.def, 'g', -1, 64)))
			*f.v = f.def
		}
	}
	o.SetDefaults()

	family, ok := fonts.Parse(o.FontFamily)
	if !ok {
		warns = append(warns, errors.Unsupported("font family", o.FontFamily, string(fonts.Default)))
		family = fonts.Default
	}
	o.FontFamily = string(family)

	paper, ok := LookupPaper(o.PaperSize)
	if !ok {
		warns = append(warns, errors.Unsupported("paper size", o.PaperSize, DefaultPaperSize))
		paper, _ = LookupPaper(DefaultPaperSize)
	}
	o.PaperSize = paper.Name

	if !ValidStyles[o.LayoutStyle] {
		warns = append(warns, errors.Unsupported("layout style", o.LayoutStyle, DefaultLayoutStyle))
		o.LayoutStyle = DefaultLayoutStyle
	}

	ratio, ok := titleGaps[o.TitleClueGap]
	if !ok {
		warns = append(warns, errors.Unsupported("title clue gap", o.TitleClueGap, DefaultTitleClueGap))
		o.TitleClueGap = DefaultTitleClueGap
		ratio = titleGaps[DefaultTitleClueGap]
	}

	columns := int(o.Columns)
	if o.Columns == ColumnsAuto {
		columns = AutoColumnCount(o.FontSize, paper.Name)
	}
	if columns > MaxColumns {
		warns = append(warns, errors.Unsupported("column count", o.Columns.String(), strconv.Itoa(MaxColumns)))
		columns = MaxColumns
	}

	if o.LayoutStyle == StyleTemplate && o.Template == nil {
		o.Template = DefaultTemplate()
	}

	lh := o.FontSize * o.LineSpacing
	return settings{
		Options:    o,
		family:     family,
		paper:      paper,
		columns:    columns,
		lineHeight: lh,
		titleGap:   lh * ratio,
	}, warns
}
