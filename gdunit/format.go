package gdunit

import (
	"fmt"
	"strings"

	"github.com/gdtdd/gdtdd/model"
)

const summaryWidth = 60

// FormatSummary renders the result block printed after a run.
func FormatSummary(s model.TestRunSummary) string {
	rule := strings.Repeat("=", summaryWidth)

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n%s\nTEST RESULTS\n%s\n", rule, rule)
	fmt.Fprintf(&sb, "Total:  %d\n", s.Total)
	fmt.Fprintf(&sb, "Passed: %d ✓\n", s.Passed)
	fmt.Fprintf(&sb, "Failed: %d ✗\n", s.Failed)
	fmt.Fprintf(&sb, "Skipped: %d -\n", s.Skipped)
	if s.Errors > 0 {
		fmt.Fprintf(&sb, "Errors: %d !\n", s.Errors)
	}
	sb.WriteString(rule + "\n")

	if !s.Succeeded() {
		if failed := s.FailedTests(); len(failed) > 0 {
			sb.WriteString("\nFailed tests:\n")
			for _, t := range failed {
				fmt.Fprintf(&sb, "  - %s::%s\n", t.Suite, t.Test)
			}
		}
	}

	return sb.String()
}
