package cli

// This file contains the list command for displaying previous test runs.

import (
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/gdtdd/gdtdd/history"
)

func (a *App) list(ctx *cli.Context) error {
	filterPath := ctx.String("path")
	limit := ctx.Int("limit")

	root, _, err := a.loadProject(ctx)
	if err != nil {
		return err
	}

	// Load all history entries, newest first
	historyEntries, err := history.LoadEntries(a.logger, history.Root(root))
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	// Apply path filter if specified
	var filteredEntries []history.Entry
	for _, entry := range historyEntries {
		if filterPath == "" || matchesPath(entry, filterPath) {
			filteredEntries = append(filteredEntries, entry)
		}
	}

	if len(filteredEntries) == 0 {
		if filterPath != "" {
			fmt.Fprintf(a.out, "No history entries found matching path: %s\n", filterPath)
		} else {
			fmt.Fprintln(a.out, "No history entries found")
		}
		return nil
	}

	// Apply limit
	displayRuns := filteredEntries
	if limit > 0 && limit < len(displayRuns) {
		displayRuns = displayRuns[:limit]
	}

	fmt.Fprintf(a.out, "\n=== History (%d total) ===\n\n", len(filteredEntries))

	for _, entry := range displayRuns {
		tr := entry.History
		timestamp := tr.Timestamp.Format("2006-01-02 15:04:05")
		duration := tr.Duration.Round(time.Millisecond)

		status := "✓"
		if tr.ExitCode != 0 {
			status = "✗"
		}

		shortID := tr.ID
		if len(shortID) > 8 {
			shortID = shortID[:8]
		}

		fmt.Fprintf(a.out, "%s  %s  [%s]  exit=%d  id=%s\n", status, timestamp, duration, tr.ExitCode, shortID)
		if tr.Test != nil {
			fmt.Fprintf(a.out, "   Suite: %s\n", tr.Test.ResPath)
			switch {
			case tr.Test.TimedOut:
				fmt.Fprintln(a.out, "   Result: timed out")
			case tr.Test.Summary != nil:
				s := tr.Test.Summary
				fmt.Fprintf(a.out, "   Result: %d total, %d passed, %d failed, %d skipped, %d errors\n",
					s.Total, s.Passed, s.Failed, s.Skipped, s.Errors)
			}
		}
		if tr.Git != nil && tr.Git.Commit != "" {
			shortCommit := tr.Git.Commit
			if len(shortCommit) > 8 {
				shortCommit = shortCommit[:8]
			}
			fmt.Fprintf(a.out, "   Commit: %s", shortCommit)
			if tr.Git.Branch != "" {
				fmt.Fprintf(a.out, " (%s)", tr.Git.Branch)
			}
			fmt.Fprintln(a.out)
		}
		fmt.Fprintf(a.out, "   %s\n", entry.FullPath)
		fmt.Fprintln(a.out)
	}

	fmt.Fprintf(a.out, "View a run: %s view <ID>\n", AppName)

	return nil
}

func matchesPath(entry history.Entry, filter string) bool {
	t := entry.History.Test
	if t == nil {
		return false
	}
	return strings.Contains(t.File, filter) || strings.Contains(t.ResPath, filter)
}
