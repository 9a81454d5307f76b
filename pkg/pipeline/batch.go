package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/gridpress/pkg/errors"
)

// PuzzleExt is the extension batch conversion picks up, matched without
// regard to case.
const PuzzleExt = ".ipuz"

// BatchOptions configures a directory conversion.
type BatchOptions struct {
	// Workers bounds concurrent conversions. Zero means runtime.NumCPU().
	Workers int

	// OnStart, if set, is called once with the file names about to be
	// converted.
	OnStart func(names []string)

	// OnFile, if set, is called as each file finishes. Calls are serialized
	// but arrive in completion order, not input order.
	OnFile func(FileResult)
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Name     string        // input file name relative to the input directory
	Outputs  []string      // written files, one per format
	Pages    int           // zero on a full cache hit
	Cached   bool          // every artifact came from the cache
	Duration time.Duration // wall time for this file
	Err      error
}

// OK reports whether the file converted successfully.
func (f FileResult) OK() bool { return f.Err == nil }

// Report summarizes a batch run. Files is in input (sorted name) order.
type Report struct {
	RunID     string
	Total     int
	Succeeded int
	Failed    int
	Duration  time.Duration
	Files     []FileResult
}

// ListPuzzles returns the names of the puzzle files directly inside dir,
// sorted by name.
func ListPuzzles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "input directory %s", dir)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read input directory %s", dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), PuzzleExt) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// OutputName replaces the extension of name with format.
func OutputName(name, format string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "." + format
}

// outputClashes maps each name whose outputs would overwrite those of an
// earlier name, such as "a.IPUZ" after "a.ipuz", to that earlier name.
func outputClashes(names []string, format string) map[string]string {
	first := make(map[string]string, len(names))
	clashes := make(map[string]string)
	for _, name := range names {
		out := OutputName(name, format)
		if prev, ok := first[out]; ok {
			clashes[name] = prev
			continue
		}
		first[out] = name
	}
	return clashes
}

// Batch converts every puzzle in inDir and writes the results to outDir,
// which is created if needed.
//
// A failing file never stops the run; its error is recorded in the report.
// The returned error is non-nil only when the run could not start or ctx was
// cancelled, in which case the report covers the files that finished.
func (r *Runner) Batch(ctx context.Context, inDir, outDir string, opts Options, bopts BatchOptions) (*Report, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	names, err := ListPuzzles(inDir)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory %s", outDir)
	}

	workers := bopts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	report := &Report{
		RunID: uuid.NewString(),
		Total: len(names),
		Files: make([]FileResult, len(names)),
	}
	logger := opts.Logger.With("run", report.RunID[:8])
	logger.Debug("batch start", "files", len(names), "workers", workers)

	if bopts.OnStart != nil {
		bopts.OnStart(names)
	}

	clashes := outputClashes(names, opts.Formats[0])

	start := time.Now()
	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(workers)

	for i, name := range names {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			var res FileResult
			if prev, ok := clashes[name]; ok {
				res = FileResult{Name: name, Err: errors.New(errors.ErrCodeInvalidPath,
					"output %s would overwrite the output of %s", OutputName(name, opts.Formats[0]), prev)}
			} else {
				res = r.convertOne(ctx, inDir, outDir, name, opts)
			}
			if res.Err != nil {
				logger.Error("conversion failed", "file", name, "err", errors.UserMessage(res.Err))
			} else {
				logger.Info("converted", "file", name, "pages", res.Pages, "duration", res.Duration.Round(time.Millisecond))
			}

			mu.Lock()
			defer mu.Unlock()
			report.Files[i] = res
			if bopts.OnFile != nil {
				bopts.OnFile(res)
			}
			return nil
		})
	}
	_ = g.Wait()
	report.Duration = time.Since(start)

	for i := range report.Files {
		f := &report.Files[i]
		if f.Name == "" {
			f.Name = names[i]
			f.Err = context.Cause(ctx)
		}
		if f.OK() {
			report.Succeeded++
		} else {
			report.Failed++
		}
	}
	return report, ctx.Err()
}

func (r *Runner) convertOne(ctx context.Context, inDir, outDir, name string, opts Options) (res FileResult) {
	start := time.Now()
	res.Name = name
	defer func() { res.Duration = time.Since(start) }()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	result, err := r.ConvertFile(ctx, filepath.Join(inDir, name), opts)
	if err != nil {
		res.Err = err
		return res
	}
	res.Pages = result.Stats.Pages
	res.Cached = result.CacheInfo.RenderHit

	for _, format := range opts.Formats {
		out := filepath.Join(outDir, OutputName(name, format))
		if err := os.WriteFile(out, result.Artifacts[format], 0o644); err != nil {
			res.Err = errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
			return res
		}
		res.Outputs = append(res.Outputs, out)
	}
	return res
}
