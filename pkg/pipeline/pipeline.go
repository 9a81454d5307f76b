// Package pipeline turns puzzle files into rendered documents.
//
// It is the one place where the CLI, the batch driver and the HTTP server
// meet the renderer, so caching, hooks and logging behave the same for all
// of them.
//
// # Stages
//
//  1. Parse: decode and normalize the puzzle JSON ([puzzle.Parse]).
//  2. Render: lay the puzzle out and serialize it in every requested format
//     ([render.RenderStats]).
//
// Both stages are cached. The puzzle tier is keyed by the hash of the input
// bytes; the artifact tier adds the output format and the fully defaulted
// render options, so changing any option renders afresh.
//
// # Usage
//
//	runner := pipeline.NewRunner(c, nil, logger)
//	result, err := runner.Convert(ctx, data, "daily.ipuz", pipeline.Options{
//	    Render: render.Options{LayoutStyle: render.StyleGridFirst},
//	})
//	pdf := result.Artifacts[render.FormatPDF]
//
// Convert a directory:
//
//	report, err := runner.Batch(ctx, "in", "out", opts, pipeline.BatchOptions{Workers: 4})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpress/pkg/cache"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/puzzle"
	"github.com/matzehuels/gridpress/pkg/render"
)

// DefaultFormat is used when no output format is requested.
const DefaultFormat = render.FormatPDF

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
// It supports JSON serialization so the same struct can describe API requests.
type Options struct {
	Render  render.Options `json:"render"`
	Formats []string       `json:"formats,omitempty"`

	// Refresh skips cache reads. Fresh results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a conversion.
type Result struct {
	// Puzzle is the normalized puzzle.
	Puzzle *puzzle.Puzzle

	// PuzzleHash is the content hash of the input bytes.
	PuzzleHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Warnings lists option values that were replaced by defaults.
	Warnings []error

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains conversion statistics.
type Stats struct {
	Rows       int
	Cols       int
	Clues      int
	Pages      int // zero when every artifact came from the cache
	ParseTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each stage.
type CacheInfo struct {
	ParseHit  bool
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, render.ValidFormats)
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults applies render defaults, checks the output formats
// and installs a discard logger if none is set. It is idempotent.
//
// Unknown render option values are not errors here; see [Options.Warnings].
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	o.Render.SetDefaults()
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Warnings reports render option values that will fall back to defaults.
func (o *Options) Warnings() []error {
	return o.Render.Warnings()
}

// ArtifactKeyOpts returns cache key options for one output format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:  format,
		Options: o.Render,
	}
}
