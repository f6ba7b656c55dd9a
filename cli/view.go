package cli

// This file contains the view command for displaying test runs from history.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/gdunit"
	"github.com/gdtdd/gdtdd/history"
	"github.com/gdtdd/gdtdd/model"
)

// viewTarget returns the run selector given to view: "0" when none is given.
// A leading "--" separator is ignored.
func viewTarget(args []string) (string, error) {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	switch len(args) {
	case 0:
		return "0", nil
	case 1:
		return args[0], nil
	default:
		return "", gderrors.Usage("view takes at most one argument, got %d (usage: %s view [0|-N|ID])", len(args), AppName)
	}
}

func (a *App) view(ctx *cli.Context) error {
	arg, err := viewTarget(ctx.Args().Slice())
	if err != nil {
		return err
	}

	root, _, err := a.loadProject(ctx)
	if err != nil {
		return err
	}

	historyEntries, err := history.LoadEntries(a.logger, history.Root(root))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	targetEntry, err := history.Select(historyEntries, arg)
	if err != nil {
		return err
	}

	return a.displayHistoryEntry(targetEntry)
}

func (a *App) displayHistoryEntry(entry *history.Entry) error {
	h := entry.History

	shortID := h.ID
	if len(shortID) > 8 {
		shortID = shortID[:8]
	}

	fmt.Fprintf(a.out, "=== Test Run: %s ===\n", shortID)
	fmt.Fprintf(a.out, "Time: %s\n", h.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(a.out, "Duration: %s\n", h.Duration)
	fmt.Fprintf(a.out, "Exit Code: %d\n", h.ExitCode)
	if h.WorkDir != "" {
		fmt.Fprintf(a.out, "Working Dir: %s\n", h.WorkDir)
	}
	if h.Git != nil && h.Git.Commit != "" {
		commit := h.Git.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		fmt.Fprintf(a.out, "Git Commit: %s", commit)
		if h.Git.Branch != "" {
			fmt.Fprintf(a.out, " (%s)", h.Git.Branch)
		}
		fmt.Fprintln(a.out)
	}
	if h.Runner != nil {
		fmt.Fprintf(a.out, "Command: %s\n", h.Runner.Command)
	}
	if h.Test != nil {
		fmt.Fprintf(a.out, "Suite: %s\n", h.Test.ResPath)
		if h.Test.TimedOut {
			fmt.Fprintln(a.out, "Result: timed out")
		}
		if h.Test.Summary != nil {
			fmt.Fprint(a.out, gdunit.FormatSummary(*h.Test.Summary))
		}
	}
	fmt.Fprintln(a.out)

	for i := range h.Artifacts {
		if h.Artifacts[i].Type == model.ArtifactTypeOutput {
			return a.displayOutput(entry.FullPath, &h.Artifacts[i])
		}
	}

	fmt.Fprintln(a.out, "No runner output recorded")
	fmt.Fprintf(a.out, "History directory: %s\n", entry.FullPath)
	return nil
}

func (a *App) displayOutput(runDir string, artifact *model.Artifact) error {
	outputPath := filepath.Join(runDir, artifact.File)
	fmt.Fprintf(a.out, "Runner Output: %s\n", outputPath)
	data, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Errorf("failed to read runner output: %w", err)
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}
