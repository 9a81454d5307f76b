package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"github.com/matzehuels/gridpress/pkg/config"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
	"github.com/matzehuels/gridpress/pkg/render"
)

// renderFlags holds the layout flags shared by convert and batch.
// Flag names match the HTTP query parameters.
type renderFlags struct {
	fontFamily         string
	fontSize           float64
	titleFontSize      float64
	sectionHeadingSize float64
	margin             float64
	lineSpacing        float64
	layoutStyle        string
	clueColumns        string
	titleClueSpacing   string
	paperSize          string
	includeCopyright   bool
	includeSolution    bool
	template           string

	format  string
	noCache bool
	refresh bool
}

func (f *renderFlags) register(fs *pflag.FlagSet) {
	d := render.DefaultOptions()
	fs.StringVar(&f.fontFamily, "fontFamily", d.FontFamily, "font family: times, helvetica, courier")
	fs.Float64Var(&f.fontSize, "fontSize", d.FontSize, "clue font size in points")
	fs.Float64Var(&f.titleFontSize, "titleFontSize", d.TitleFontSize, "title font size in points")
	fs.Float64Var(&f.sectionHeadingSize, "sectionHeadingSize", d.SectionHeadingSize, "ACROSS/DOWN heading size in points")
	fs.Float64Var(&f.margin, "margin", d.Margin, "page margin in points")
	fs.Float64Var(&f.lineSpacing, "lineSpacing", d.LineSpacing, "line height as a multiple of the font size")
	fs.StringVar(&f.layoutStyle, "layoutStyle", d.LayoutStyle, "layout style: "+strings.Join(styleNames(), ", "))
	fs.StringVar(&f.clueColumns, "clueColumns", d.Columns.String(), `clue columns: 1-8 or "auto"`)
	fs.StringVar(&f.titleClueSpacing, "titleClueSpacing", d.TitleClueGap, "space between title and clues: normal, large, extra-large")
	fs.StringVar(&f.paperSize, "paperSize", d.PaperSize, "paper size: letter, legal, A4")
	fs.BoolVar(&f.includeCopyright, "includeCopyright", false, "print the copyright line under the title")
	fs.BoolVar(&f.includeSolution, "includeSolution", false, "append a solution page")
	fs.StringVar(&f.template, "template", "", "page template file (TOML); implies --layoutStyle template")
	fs.StringVarP(&f.format, "format", "f", pipeline.DefaultFormat, "output format: pdf, json")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "re-render even when a cached result exists")
}

// apply copies explicitly set flags onto opts, so that values from the
// config file survive unless overridden on the command line.
func (f *renderFlags) apply(fs *pflag.FlagSet, opts *render.Options) error {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("fontFamily", func() { opts.FontFamily = f.fontFamily })
	set("fontSize", func() { opts.FontSize = f.fontSize })
	set("titleFontSize", func() { opts.TitleFontSize = f.titleFontSize })
	set("sectionHeadingSize", func() { opts.SectionHeadingSize = f.sectionHeadingSize })
	set("margin", func() { opts.Margin = f.margin })
	set("lineSpacing", func() { opts.LineSpacing = f.lineSpacing })
	set("layoutStyle", func() { opts.LayoutStyle = f.layoutStyle })
	set("titleClueSpacing", func() { opts.TitleClueGap = f.titleClueSpacing })
	set("paperSize", func() { opts.PaperSize = f.paperSize })
	set("includeCopyright", func() { opts.IncludeCopyright = f.includeCopyright })
	set("includeSolution", func() { opts.IncludeSolution = f.includeSolution })

	if fs.Changed("clueColumns") {
		cols, err := render.ParseColumns(f.clueColumns)
		if err != nil {
			return err
		}
		opts.Columns = cols
	}

	if f.template != "" {
		tpl, err := config.LoadTemplate(f.template)
		if err != nil {
			return err
		}
		opts.Template = tpl
		if !fs.Changed("layoutStyle") {
			opts.LayoutStyle = render.StyleTemplate
		}
	}
	return nil
}

// formats splits the --format flag and validates each entry.
func (f *renderFlags) formats() ([]string, error) {
	var out []string
	for _, s := range strings.Split(f.format, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no output format given")
	}
	return out, pipeline.ValidateFormats(out)
}

func styleNames() []string {
	return []string{
		render.StyleBook,
		render.StyleGridFirst,
		render.StyleCluesFirst,
		render.StyleGridOnly,
		render.StyleCluesOnly,
		render.StyleTemplate,
	}
}
