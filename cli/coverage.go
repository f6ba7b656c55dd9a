package cli

// This file contains the coverage command for checking a GdUnit4 coverage
// report against a threshold.

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gdtdd/gdtdd/config"
	"github.com/gdtdd/gdtdd/coverage"
	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/project"
)

func (a *App) coverage(ctx *cli.Context) error {
	root, cfg, err := a.loadProject(ctx)
	if err != nil {
		return err
	}

	// Flags override the config file only when given explicitly
	threshold := cfg.Coverage.Threshold
	if ctx.IsSet("threshold") {
		threshold = ctx.Float64("threshold")
	}
	cutoff := cfg.Coverage.Cutoff
	if ctx.IsSet("cutoff") {
		cutoff = ctx.Float64("cutoff")
	}
	output := cfg.Coverage.Output
	if ctx.IsSet("output") {
		output = ctx.String("output")
	}
	if output != config.OutputText && output != config.OutputJSON {
		return gderrors.Usage("unknown output format %q (use %s or %s)", output, config.OutputText, config.OutputJSON)
	}

	path := ctx.String("file")
	if path == "" {
		path, err = project.FindCoverageFile(root)
		if err != nil {
			return err
		}
	}

	report, err := coverage.Load(path)
	if err != nil {
		return err
	}

	verdict := coverage.Evaluate(report, threshold)
	a.logger.Debug().
		Str("report", path).
		Int("files", report.TotalFiles).
		Float64("percent", report.Percent).
		Float64("threshold", threshold).
		Bool("passed", verdict.Passed).
		Msg("Evaluated coverage")

	if output == config.OutputJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to encode coverage report: %w", err)
		}
	} else {
		fmt.Fprintln(a.out, coverage.Format(report, threshold))

		if !verdict.Passed {
			fmt.Fprint(a.out, coverage.FormatLowCoverage(coverage.ListLowCoverage(report, cutoff)))
		}
	}

	if !verdict.Passed {
		return gderrors.Failure("")
	}
	return nil
}
