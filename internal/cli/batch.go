package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpress/pkg/pipeline"
)

// batchCommand creates the batch command for rendering a directory.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		flags   renderFlags
		workers int
		useTUI  bool
	)

	cmd := &cobra.Command{
		Use:   "batch <inputDir> <outputDir>",
		Short: "Render every .ipuz file in a directory",
		Long: `Render every .ipuz file directly inside inputDir into outputDir.

A file that fails to parse or render is reported and skipped; the remaining
files are still processed. The command exits non-zero if any file failed.`,
		Example: `  gridpress batch puzzles/ out/
  gridpress batch puzzles/ out/ --workers 8 --format pdf,json --tui`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Batch.Workers
			}
			return c.runBatch(cmd, &flags, args[0], args[1], workers, useTUI)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent conversions (default: one per CPU)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show an interactive progress view")
	return cmd
}

func (c *CLI) runBatch(cmd *cobra.Command, flags *renderFlags, inDir, outDir string, workers int, useTUI bool) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := flags.formats()
	if err != nil {
		return err
	}
	opts := pipeline.Options{
		Render:  c.cfg.Render,
		Formats: formats,
		Refresh: flags.refresh,
		Logger:  logger,
	}
	if err := flags.apply(cmd.Flags(), &opts.Render); err != nil {
		return err
	}
	printWarnings(opts.Warnings())

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	run := func(ctx context.Context, onStart func([]string), onFile func(pipeline.FileResult)) (*pipeline.Report, error) {
		return runner.Batch(ctx, inDir, outDir, opts, pipeline.BatchOptions{
			Workers: workers,
			OnStart: onStart,
			OnFile:  onFile,
		})
	}

	var report *pipeline.Report
	if useTUI && isatty.IsTerminal(os.Stderr.Fd()) {
		// Worker logs would tear the TUI; it reports failures itself.
		opts.Logger = log.New(io.Discard)
		report, err = runBatchTUI(ctx, run)
	} else {
		report, err = run(ctx, nil, func(f pipeline.FileResult) {
			fmt.Println(fileResultLine(f))
		})
	}
	if report == nil {
		return err
	}

	fmt.Println()
	fmt.Println(summaryTable(report))
	prog.done(fmt.Sprintf("Processed %s", plural(report.Total, "puzzle")))

	if err != nil {
		return err
	}
	if report.Total == 0 {
		printInfo("No %s files in %s", pipeline.PuzzleExt, inDir)
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d files failed", report.Failed, report.Total)
	}
	return nil
}
