package coverage

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gdtdd/gdtdd/model"
)

const reportWidth = 70

const (
	glyphPass = "✓"
	glyphFail = "✗"
)

// Format renders the fixed-width text report. Files are listed worst first.
func Format(report *model.CoverageReport, threshold float64) string {
	rule := strings.Repeat("=", reportWidth)
	thin := strings.Repeat("-", reportWidth)
	th := formatThreshold(threshold)

	var lines []string
	lines = append(lines,
		rule,
		"COVERAGE REPORT",
		rule,
		fmt.Sprintf("Overall Coverage: %.2f%%", report.Percent),
		fmt.Sprintf("Threshold:        %s%%", th),
		"",
		fmt.Sprintf("Files:            %d/%d", report.CoveredFiles, report.TotalFiles),
		fmt.Sprintf("Lines:            %d/%d", report.CoveredLines, report.TotalLines),
		"",
	)

	if Evaluate(report, threshold).Passed {
		lines = append(lines, fmt.Sprintf("%s PASSED - Coverage meets threshold (%.2f%% >= %s%%)", glyphPass, report.Percent, th))
	} else {
		lines = append(lines, fmt.Sprintf("%s FAILED - Coverage below threshold (%.2f%% < %s%%)", glyphFail, report.Percent, th))
	}
	lines = append(lines, "")

	if len(report.Files) > 0 {
		lines = append(lines, thin, "File Breakdown:", thin)

		for _, f := range SortedByPercent(report.Files) {
			glyph := glyphFail
			if f.Percent >= threshold {
				glyph = glyphPass
			}
			lines = append(lines, fmt.Sprintf("%s %-40s %6.2f%% (%d/%d lines)",
				glyph, baseName(f.Path), f.Percent, f.CoveredLines, f.TotalLines))
		}
	}

	lines = append(lines, rule)

	return strings.Join(lines, "\n")
}

// FormatLowCoverage renders the "needs attention" list printed under a failing report.
// It returns an empty string for an empty list.
func FormatLowCoverage(low []LowCoverage) string {
	if len(low) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\nFiles needing attention:\n")
	for _, f := range low {
		fmt.Fprintf(&sb, "  - %s (%.1f%%)\n", f.Path, f.Percent)
	}
	return sb.String()
}

// SortedByPercent returns a copy of files ordered by ascending coverage.
// Files with equal coverage keep their report order.
func SortedByPercent(files []model.FileCoverage) []model.FileCoverage {
	sorted := make([]model.FileCoverage, len(files))
	copy(sorted, files)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Percent < sorted[j].Percent
	})
	return sorted
}

func formatThreshold(threshold float64) string {
	return strconv.FormatFloat(threshold, 'f', -1, 64)
}

// baseName strips directories from both slash and backslash separated paths,
// including res:// paths.
func baseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}
