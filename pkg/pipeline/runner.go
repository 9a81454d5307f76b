package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridpress/pkg/cache"
	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/observability"
	"github.com/matzehuels/gridpress/pkg/puzzle"
	"github.com/matzehuels/gridpress/pkg/render"
)

// Cache tier names reported to observability hooks.
const (
	tierPuzzle   = "puzzle"
	tierArtifact = "artifact"
)

// Runner executes conversions with caching.
//
// A Runner holds no per-conversion state, so one Runner may serve many
// goroutines with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// means [cache.DefaultKeyer] and a nil logger means log.Default().
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Convert runs parse and render for one puzzle. source names the input in
// logs and hook events; it may be empty.
func (r *Runner) Convert(ctx context.Context, data []byte, source string, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	// Warnings first: defaulting erases the values they describe.
	result := &Result{Warnings: opts.Warnings()}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	parseStart := time.Now()
	p, hash, parseHit, err := r.ParseWithCacheInfo(ctx, data, source, opts)
	if err != nil {
		return nil, err
	}
	result.Puzzle = p
	result.PuzzleHash = hash
	result.CacheInfo.ParseHit = parseHit
	result.Stats.Rows = p.Rows()
	result.Stats.Cols = p.Cols()
	result.Stats.Clues = p.Clues.Len()
	result.Stats.ParseTime = time.Since(parseStart)

	renderStart := time.Now()
	artifacts, stats, renderHit, err := r.RenderWithCacheInfo(ctx, p, hash, source, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.CacheInfo.RenderHit = renderHit
	result.Stats.Pages = stats.Pages
	result.Stats.RenderTime = time.Since(renderStart)

	opts.Logger.Debug("converted puzzle",
		"file", source,
		"size", p.Size(),
		"clues", result.Stats.Clues,
		"pages", stats.Pages,
		"cached", renderHit,
		"duration", result.Stats.ParseTime+result.Stats.RenderTime)

	return result, nil
}

// ConvertFile reads path and converts it. An unreadable file is a
// MALFORMED_PUZZLE error like any other input that cannot be normalized.
func (r *Runner) ConvertFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMalformedPuzzle, err, "read %s", path)
	}
	return r.Convert(ctx, data, path, opts)
}

// ParseWithCacheInfo normalizes data, consulting the puzzle cache first.
// It returns the puzzle, the hash of data and whether the cache was hit.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, data []byte, source string, opts Options) (*puzzle.Puzzle, string, bool, error) {
	hash := cache.Hash(data)
	key := r.Keyer.PuzzleKey(hash)
	hooks := observability.Pipeline()

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var p puzzle.Puzzle
			if err := json.Unmarshal(cached, &p); err == nil {
				observability.Cache().OnCacheHit(ctx, tierPuzzle)
				return &p, hash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, tierPuzzle)
	}

	start := time.Now()
	hooks.OnParseStart(ctx, source)
	p, err := puzzle.Parse(data)
	if err != nil {
		hooks.OnParseComplete(ctx, source, 0, time.Since(start), err)
		return nil, hash, false, err
	}
	hooks.OnParseComplete(ctx, source, p.Clues.Len(), time.Since(start), nil)

	if encoded, err := json.Marshal(p); err == nil {
		if err := r.Cache.Set(ctx, key, encoded, cache.TTLPuzzle); err == nil {
			observability.Cache().OnCacheSet(ctx, tierPuzzle, len(encoded))
		}
	}
	return p, hash, false, nil
}

// RenderWithCacheInfo renders every format in opts.Formats. When all of them
// are cached nothing is rendered and the returned stats are zero.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, p *puzzle.Puzzle, puzzleHash, source string, opts Options) (map[string][]byte, render.Stats, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, render.Stats{}, false, err
	}

	if !opts.Refresh {
		artifacts := make(map[string][]byte, len(opts.Formats))
		for _, format := range opts.Formats {
			data, hit, err := r.Cache.Get(ctx, r.Keyer.ArtifactKey(puzzleHash, opts.ArtifactKeyOpts(format)))
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCacheHit(ctx, tierArtifact)
			return artifacts, render.Stats{}, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, tierArtifact)
	}

	hooks := observability.Pipeline()
	artifacts := make(map[string][]byte, len(opts.Formats))
	var stats render.Stats
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, render.Stats{}, false, err
		}

		start := time.Now()
		hooks.OnRenderStart(ctx, source, format)
		data, s, err := render.RenderStats(p, opts.Render, format)
		hooks.OnRenderComplete(ctx, source, format, s.Pages, time.Since(start), err)
		if err != nil {
			return nil, render.Stats{}, false, err
		}
		artifacts[format] = data
		stats = s

		if err := r.Cache.Set(ctx, r.Keyer.ArtifactKey(puzzleHash, opts.ArtifactKeyOpts(format)), data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, tierArtifact, len(data))
		}
	}
	return artifacts, stats, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
