package cli

// This file contains the test command for running a single GdUnit4 suite
// headless and recording the run in the project history.

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gdtdd/gdtdd/cli/godot"
	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/gdunit"
	"github.com/gdtdd/gdtdd/model"
	"github.com/gdtdd/gdtdd/project"
)

func (a *App) test(ctx *cli.Context) (err error) {
	startTime := time.Now()

	if ctx.Args().Len() < 1 {
		return gderrors.Usage("usage: %s test <test_file>", AppName)
	}
	testFile := ctx.Args().First()

	// Flags stop at the test file, so boolean flags given after it are
	// picked up here.
	verbose, noHistory, err := trailingTestFlags(ctx.Args().Tail())
	if err != nil {
		return err
	}
	verbose = verbose || ctx.Bool("verbose")
	noHistory = noHistory || ctx.Bool("no-history")

	root, cfg, err := a.loadProject(ctx)
	if err != nil {
		return err
	}

	executable, err := a.resolveGodot(ctx.String("godot"), cfg.Godot.Executable, cfg.Godot.Candidates)
	if err != nil {
		return err
	}

	testPath, err := project.ResolveTestFile(root, testFile)
	if err != nil {
		return err
	}
	resPath, err := project.ResPath(root, testPath)
	if err != nil {
		return err
	}

	timeout := cfg.Godot.Timeout
	if ctx.IsSet("timeout") {
		timeout = ctx.Duration("timeout")
	}

	opts := godot.RunOptions{
		Executable:  executable,
		ProjectRoot: root,
		TestPath:    resPath,
	}

	// Generate random 16-byte ID
	idBytes := make([]byte, 16)
	if _, err := rand.Read(idBytes); err != nil {
		return fmt.Errorf("failed to generate test run ID: %w", err)
	}

	h := &model.History{
		ID:        hex.EncodeToString(idBytes),
		Type:      model.HistoryTypeTest,
		Timestamp: startTime,
		Args:      os.Args,
		WorkDir:   relativeWorkDir(root),
		Runner: &model.Runner{
			Executable: executable,
			Command:    godot.BuildCommand(opts),
			Timeout:    timeout,
		},
		Test: &model.TestRun{
			File:    testFile,
			ResPath: resPath,
		},
	}

	// Capture git info (non-fatal if it fails)
	if commit, branch, gitErr := a.getGitInfo(root); gitErr == nil {
		h.Git = &model.Git{
			Commit: commit,
			Branch: branch,
		}
	}

	var output string
	if !noHistory {
		defer func() {
			h.Duration = time.Since(startTime)
			h.ExitCode = gderrors.GetExitCode(err)

			// Record the history (non-fatal if it fails)
			if recErr := a.recordHistory(h, root, output); recErr != nil {
				a.logger.Warn().Err(recErr).Msg("Failed to record history")
			}
		}()
	}

	fmt.Fprintf(a.out, "Running: %s\n", resPath)
	fmt.Fprintf(a.out, "Project: %s\n", root)
	fmt.Fprintf(a.out, "Godot: %s\n", executable)
	fmt.Fprintln(a.out, strings.Repeat("-", 60))

	stream := io.Discard
	if verbose {
		stream = a.out
	}

	result, err := godot.Run(ctx.Context, a.logger, opts, timeout, stream)
	if result != nil {
		output = result.Output
	}
	if err != nil {
		if gderrors.Is(err, gderrors.KindTimeout) {
			h.Test.TimedOut = true
		}
		return err
	}

	summary := gdunit.Interpret(result.Output)
	h.Test.Summary = &summary

	a.logger.Debug().
		Int("exit_code", result.ExitCode).
		Int("total", summary.Total).
		Int("passed", summary.Passed).
		Int("failed", summary.Failed).
		Int("errors", summary.Errors).
		Msg("Interpreted runner output")

	fmt.Fprint(a.out, gdunit.FormatSummary(summary))

	if summary.Total == 0 && strings.TrimSpace(result.Output) == "" {
		return gderrors.Failure(fmt.Sprintf("godot produced no output (exit code %d)", result.ExitCode))
	}
	if !summary.Succeeded() {
		return gderrors.Failure("")
	}
	return nil
}

// trailingTestFlags reads the boolean flags accepted after the test file.
func trailingTestFlags(args []string) (verbose, noHistory bool, err error) {
	for _, arg := range args {
		switch arg {
		case "--verbose", "-verbose", "-v", "--v":
			verbose = true
		case "--no-history", "-no-history":
			noHistory = true
		default:
			return false, false, gderrors.Usage("unexpected argument %q (usage: %s test <test_file> [--verbose])", arg, AppName)
		}
	}
	return verbose, noHistory, nil
}

// resolveGodot finds the Godot executable. The flag value takes precedence
// over the configured one.
func (a *App) resolveGodot(flagValue, configured string, candidates []string) (string, error) {
	if a.resolver != nil {
		return a.resolver()
	}
	executable := flagValue
	if executable == "" {
		executable = configured
	}
	l := &godot.Locator{
		Executable: executable,
		Candidates: candidates,
	}
	return l.Resolve()
}

// relativeWorkDir returns the working directory relative to the project root.
func relativeWorkDir(root string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	rel, err := filepath.Rel(root, cwd)
	if err != nil {
		return cwd
	}
	return filepath.ToSlash(rel)
}
