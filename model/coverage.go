package model

// FileCoverage is the line coverage of a single source file
type FileCoverage struct {
	Path         string  `json:"path"`
	TotalLines   int     `json:"total_lines"`
	CoveredLines int     `json:"covered_lines"`
	Percent      float64 `json:"coverage_percent"`
}

// CoverageReport aggregates the files of one coverage artifact.
//
// Percent is computed from the summed line counts, never as the mean of the
// per-file percentages. CoveredFiles counts files whose percent is above zero.
type CoverageReport struct {
	TotalFiles   int            `json:"total_files"`
	CoveredFiles int            `json:"covered_files"`
	TotalLines   int            `json:"total_lines"`
	CoveredLines int            `json:"covered_lines"`
	Percent      float64        `json:"coverage_percent"`
	Files        []FileCoverage `json:"files"`
}

// LinePercent returns covered/total*100, or 0 when total is not positive.
func LinePercent(covered, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}
