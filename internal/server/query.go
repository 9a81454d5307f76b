package server

import (
	"math"
	"net/url"
	"sort"
	"strconv"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
	"github.com/matzehuels/gridpress/pkg/render"
)

type param struct {
	apply func(o *render.Options, v string) error
}

func floatParam(field func(o *render.Options) *float64) param {
	return param{func(o *render.Options, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || !(f > 0) || math.IsInf(f, 1) {
			return errors.New(errors.ErrCodeInvalidInput, "must be a positive finite number, got %q", v)
		}
		*field(o) = f
		return nil
	}}
}

func boolParam(field func(o *render.Options) *bool) param {
	return param{func(o *render.Options, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New(errors.ErrCodeInvalidInput, "must be true or false, got %q", v)
		}
		*field(o) = b
		return nil
	}}
}

func stringParam(field func(o *render.Options) *string) param {
	return param{func(o *render.Options, v string) error {
		*field(o) = v
		return nil
	}}
}

// params maps query parameter names, which match the CLI flags, to options.
var params = map[string]param{
	"fontFamily":         stringParam(func(o *render.Options) *string { return &o.FontFamily }),
	"fontSize":           floatParam(func(o *render.Options) *float64 { return &o.FontSize }),
	"titleFontSize":      floatParam(func(o *render.Options) *float64 { return &o.TitleFontSize }),
	"sectionHeadingSize": floatParam(func(o *render.Options) *float64 { return &o.SectionHeadingSize }),
	"margin":             floatParam(func(o *render.Options) *float64 { return &o.Margin }),
	"lineSpacing":        floatParam(func(o *render.Options) *float64 { return &o.LineSpacing }),
	"layoutStyle":        stringParam(func(o *render.Options) *string { return &o.LayoutStyle }),
	"titleClueSpacing":   stringParam(func(o *render.Options) *string { return &o.TitleClueGap }),
	"paperSize":          stringParam(func(o *render.Options) *string { return &o.PaperSize }),
	"includeCopyright":   boolParam(func(o *render.Options) *bool { return &o.IncludeCopyright }),
	"includeSolution":    boolParam(func(o *render.Options) *bool { return &o.IncludeSolution }),
	"clueColumns": {func(o *render.Options, v string) error {
		c, err := render.ParseColumns(v)
		if err != nil {
			return err
		}
		o.Columns = c
		return nil
	}},
}

// parseQuery applies query parameters on top of base and returns the
// requested output format. Unknown parameters are rejected.
func parseQuery(q url.Values, base render.Options) (render.Options, string, error) {
	opts := base
	format := pipeline.DefaultFormat

	names := make([]string, 0, len(q))
	for name := range q {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := q.Get(name)
		if name == "format" {
			if err := pipeline.ValidateFormat(v); err != nil {
				return opts, "", err
			}
			format = v
			continue
		}
		p, ok := params[name]
		if !ok {
			return opts, "", errors.New(errors.ErrCodeInvalidInput, "unknown parameter %q", name)
		}
		if err := p.apply(&opts, v); err != nil {
			return opts, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "parameter %s", name)
		}
	}
	return opts, format, nil
}
