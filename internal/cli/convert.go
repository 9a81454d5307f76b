package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridpress/pkg/errors"
	"github.com/matzehuels/gridpress/pkg/pipeline"
)

// convertCommand creates the convert command for rendering one puzzle.
func (c *CLI) convertCommand() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "convert <input.ipuz> <output.pdf>",
		Short: "Render a puzzle file to PDF",
		Long: `Render a crossword puzzle in ipuz JSON format to a paginated PDF.

Unknown option values (a font family or paper size gridpress does not know)
are reported as warnings and replaced by their defaults.`,
		Example: `  gridpress convert daily.ipuz daily.pdf
  gridpress convert daily.ipuz daily.pdf --layoutStyle grid-first --clueColumns auto
  gridpress convert daily.ipuz layout.json --format json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, &flags, args[0], args[1])
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, flags *renderFlags, input, output string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := flags.formats()
	if err != nil {
		return err
	}
	if len(formats) > 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "convert writes a single file; use batch for several formats")
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

	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
	spinner.Start()

	result, err := runner.ConvertFile(ctx, input, opts)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("%s: %s", input, errors.UserMessage(err)))
		return fmt.Errorf("convert %s: %w", input, err)
	}

	if dir := filepath.Dir(output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			spinner.Stop()
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dir)
		}
	}
	if err := os.WriteFile(output, result.Artifacts[formats[0]], 0o644); err != nil {
		spinner.Stop()
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
	}

	spinner.StopWithSuccess(fmt.Sprintf("Rendered %s", result.Puzzle.Title))
	printFile(output)
	fmt.Println(statsLine(result.Stats.Pages, result.Stats.Clues, result.CacheInfo.RenderHit))
	return nil
}
