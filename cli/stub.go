package cli

// This file contains the stub command for generating GdUnit4 test suites
// from GDScript sources.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/gdscript"
)

func (a *App) stub(ctx *cli.Context) error {
	if ctx.Args().Len() < 1 {
		return gderrors.Usage("usage: %s stub <source_file> [output_dir]", AppName)
	}
	sourceFile := ctx.Args().Get(0)

	_, cfg, err := a.loadProject(ctx)
	if err != nil {
		return err
	}
	outputDir := cfg.Stub.OutputDir
	if ctx.Args().Len() > 1 {
		outputDir = ctx.Args().Get(1)
	}

	source, err := os.ReadFile(sourceFile)
	if err != nil {
		if os.IsNotExist(err) {
			return gderrors.NotFound("source file", sourceFile)
		}
		return fmt.Errorf("failed to read source file: %w", err)
	}

	summary := gdscript.Analyze(string(source))
	content := gdscript.RenderStub(summary, sourceFile)

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	outputFile := filepath.Join(outputDir, gdscript.StubFileName(summary, sourceFile))
	if _, err := os.Stat(outputFile); err == nil {
		a.logger.Warn().Str("file", outputFile).Msg("Overwriting existing test suite")
	}
	if err := os.WriteFile(outputFile, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write test suite: %w", err)
	}

	a.logger.Debug().
		Str("source", sourceFile).
		Str("class", summary.ClassName).
		Str("extends", summary.BaseName).
		Int("methods", len(summary.Operations)).
		Msg("Generated test suite")

	fmt.Fprintf(a.out, "✓ Generated test suite: %s\n", outputFile)
	fmt.Fprintf(a.out, "  Methods found: %d\n", len(summary.Operations))
	for _, name := range gdscript.TestNames(summary.Operations) {
		fmt.Fprintf(a.out, "    - %s()\n", name)
	}

	return nil
}
