package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/render"
)

func parseRenderFlags(t *testing.T, args ...string) (*renderFlags, *pflag.FlagSet) {
	t.Helper()
	var f renderFlags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	f.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v): %v", args, err)
	}
	return &f, fs
}

func TestRenderFlagsApply(t *testing.T) {
	f, fs := parseRenderFlags(t, "--fontSize", "11", "--clueColumns", "auto", "--includeSolution")

	// Values from the config file survive unless overridden.
	opts := render.Options{FontSize: 14, Margin: 50, PaperSize: render.PaperA4}
	if err := f.apply(fs, &opts); err != nil {
		t.Fatalf("apply: %v", err)
	}

	want := render.Options{
		FontSize:        11,
		Margin:          50,
		PaperSize:       render.PaperA4,
		Columns:         render.ColumnsAuto,
		IncludeSolution: true,
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("apply mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderFlagsApplyBadColumns(t *testing.T) {
	f, fs := parseRenderFlags(t, "--clueColumns", "zero")
	var opts render.Options
	if err := f.apply(fs, &opts); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("apply err = %v, want INVALID_INPUT", err)
	}
}

func TestRenderFlagsTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.toml")
	if err := os.WriteFile(path, []byte("[title]\nleft = 40\ntop = 40\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("implies template style", func(t *testing.T) {
		f, fs := parseRenderFlags(t, "--template", path)
		var opts render.Options
		if err := f.apply(fs, &opts); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if opts.LayoutStyle != render.StyleTemplate {
			t.Errorf("LayoutStyle = %q, want %q", opts.LayoutStyle, render.StyleTemplate)
		}
		if opts.Template == nil || opts.Template.Title.Left != 40 {
			t.Errorf("Template = %+v", opts.Template)
		}
	})

	t.Run("explicit style wins", func(t *testing.T) {
		f, fs := parseRenderFlags(t, "--template", path, "--layoutStyle", render.StyleGridFirst)
		var opts render.Options
		if err := f.apply(fs, &opts); err != nil {
			t.Fatalf("apply: %v", err)
		}
		if opts.LayoutStyle != render.StyleGridFirst {
			t.Errorf("LayoutStyle = %q, want %q", opts.LayoutStyle, render.StyleGridFirst)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		f, fs := parseRenderFlags(t, "--template", filepath.Join(t.TempDir(), "nope.toml"))
		var opts render.Options
		if err := f.apply(fs, &opts); !errors.Is(err, errors.ErrCodeFileNotFound) {
			t.Errorf("apply err = %v, want FILE_NOT_FOUND", err)
		}
	})
}

func TestRenderFlagsFormats(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr bool
	}{
		{"pdf", []string{"pdf"}, false},
		{"pdf, json", []string{"pdf", "json"}, false},
		{"json,", []string{"json"}, false},
		{"", nil, true},
		{" , ", nil, true},
		{"pdf,svg", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f := &renderFlags{format: tt.in}
			got, err := f.formats()
			if (err != nil) != tt.wantErr {
				t.Fatalf("formats() err = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Errorf("err = %v, want INVALID_FORMAT", err)
				}
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("formats() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestStyleNamesValid(t *testing.T) {
	names := styleNames()
	if len(names) != len(render.ValidStyles) {
		t.Errorf("styleNames() has %d entries, ValidStyles has %d", len(names), len(render.ValidStyles))
	}
	for _, n := range names {
		if !render.ValidStyles[n] {
			t.Errorf("%q is not a valid style", n)
		}
	}
}
