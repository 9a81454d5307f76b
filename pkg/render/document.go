package render

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/gridpress/pkg/canvas"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/puzzle"
)

// Output formats.
const (
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatJSON: true,
}

// Creator is written into document metadata.
const Creator = "gridpress"

// Stats describes a finished layout.
type Stats struct {
	Pages          int      // total pages drawn
	ContinuedPages int      // pages started by clue overflow
	Columns        int      // clue columns in effect
	Sections       []string // sections in page order
}

// Render lays out p as a PDF document.
func Render(p *puzzle.Puzzle, opts Options) ([]byte, error) {
	return RenderFormat(p, opts, FormatPDF)
}

// RenderFormat lays out p and serializes it as format: "pdf" for a PDF
// document, "json" for the recorded draw commands of the same layout.
// Every failure is returned as a RENDER_FAILED error, except an unknown
// format, which is INVALID_FORMAT.
func RenderFormat(p *puzzle.Puzzle, opts Options, format string) ([]byte, error) {
	data, _, err := RenderStats(p, opts, format)
	return data, err
}

// RenderStats is RenderFormat that also reports what the layout produced.
func RenderStats(p *puzzle.Puzzle, opts Options, format string) ([]byte, Stats, error) {
	if err := errors.ValidateFormat(format, ValidFormats); err != nil {
		return nil, Stats{}, err
	}
	if p == nil {
		return nil, Stats{}, errors.New(errors.ErrCodeRender, "no puzzle to render")
	}

	set, _ := opts.resolve()
	info := canvas.Info{
		Title:   p.Title,
		Author:  p.Author,
		Subject: "Crossword",
		Creator: Creator,
	}

	var doc canvas.Document
	switch format {
	case FormatJSON:
		rec := canvas.NewRecorder(canvas.NewMetrics(set.family))
		rec.Info = info
		rec.Family = set.family
		doc = rec
	default:
		doc = canvas.NewPDF(set.family, info)
	}

	stats, err := layoutSettings(doc, p, set)
	if err != nil {
		return nil, Stats{}, err
	}

	var buf bytes.Buffer
	if err := serialize(doc, &buf); err != nil {
		return nil, Stats{}, errors.Wrap(errors.ErrCodeRender, err, "serialize %s", format)
	}
	return buf.Bytes(), stats, nil
}

// Layout draws p onto any surface. Unknown option values fall back to
// their defaults; use [Options.Warnings] to report them.
func Layout(s canvas.Surface, p *puzzle.Puzzle, opts Options) (Stats, error) {
	if p == nil {
		return Stats{}, errors.New(errors.ErrCodeRender, "no puzzle to render")
	}
	set, _ := opts.resolve()
	return layoutSettings(s, p, set)
}

func layoutSettings(s canvas.Surface, p *puzzle.Puzzle, set settings) (stats Stats, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New(errors.ErrCodeRender, "layout: %v", r)
		}
	}()

	o := &orchestrator{s: s, p: p, set: set}
	o.run()
	o.stats.Columns = set.columns
	return o.stats, nil
}

func serialize(doc canvas.Document, buf *bytes.Buffer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("serializer panicked: %v", r)
		}
	}()
	return doc.Serialize(buf)
}
