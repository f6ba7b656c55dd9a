// Package coverage interprets GdUnit4 coverage artifacts and checks them
// against a threshold.
package coverage

import (
	"encoding/json"
	"fmt"
	"os"

	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/model"
)

type rawReport struct {
	Files []rawFile `json:"files"`
}

// Counts are decoded as float64 because the schema admits integral values
// written with a fraction (10.0). The schema bounds them to the int32 range.
type rawFile struct {
	Path         optionalString `json:"path"`
	File         optionalString `json:"file"`
	TotalLines   float64        `json:"total_lines"`
	CoveredLines float64        `json:"covered_lines"`
}

// path returns the file path. A present "path" key wins even when it is
// empty or null; "file" is only consulted when "path" is absent.
func (f rawFile) path() string {
	if f.Path.Set {
		return f.Path.Value
	}
	return f.File.Value
}

// optionalString records whether a key was present at all.
type optionalString struct {
	Set   bool
	Value string
}

func (s *optionalString) UnmarshalJSON(data []byte) error {
	s.Set = true
	if string(data) == "null" {
		s.Value = ""
		return nil
	}
	return json.Unmarshal(data, &s.Value)
}

// Load reads and parses the coverage artifact at path.
func Load(path string) (*model.CoverageReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, gderrors.NotFound("coverage report", path)
		}
		return nil, fmt.Errorf("failed to read coverage report: %w", err)
	}
	return Parse(data)
}

// Parse builds a report from a coverage artifact.
//
// A document without a files array yields an empty report. Files without a
// path are skipped and do not count toward any total. Undecodable JSON or a
// files array of the wrong shape is a malformed input error.
func Parse(data []byte) (*model.CoverageReport, error) {
	if err := validate(data); err != nil {
		return nil, gderrors.Malformed("coverage report", err)
	}

	var raw rawReport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, gderrors.Malformed("coverage report", err)
	}

	report := &model.CoverageReport{
		Files: []model.FileCoverage{},
	}

	for _, f := range raw.Files {
		path := f.path()
		if path == "" {
			continue
		}

		total := int(f.TotalLines)
		covered := int(f.CoveredLines)
		fc := model.FileCoverage{
			Path:         path,
			TotalLines:   total,
			CoveredLines: covered,
			Percent:      model.LinePercent(covered, total),
		}
		report.Files = append(report.Files, fc)

		report.TotalFiles++
		report.TotalLines += total
		report.CoveredLines += covered
		if fc.Percent > 0 {
			report.CoveredFiles++
		}
	}

	report.Percent = model.LinePercent(report.CoveredLines, report.TotalLines)

	return report, nil
}

// Verdict is the outcome of checking a report against a threshold.
type Verdict struct {
	Passed    bool
	Percent   float64
	Threshold float64
}

// Evaluate checks the overall coverage against threshold. A report exactly at
// the threshold passes.
func Evaluate(report *model.CoverageReport, threshold float64) Verdict {
	return Verdict{
		Passed:    report.Percent >= threshold,
		Percent:   report.Percent,
		Threshold: threshold,
	}
}

// LowCoverage is a file whose coverage is under the attention cutoff.
type LowCoverage struct {
	Path    string  `json:"path"`
	Percent float64 `json:"coverage"`
}

// ListLowCoverage returns the files strictly below cutoff, in report order.
func ListLowCoverage(report *model.CoverageReport, cutoff float64) []LowCoverage {
	var low []LowCoverage
	for _, f := range report.Files {
		if f.Percent < cutoff {
			low = append(low, LowCoverage{Path: f.Path, Percent: f.Percent})
		}
	}
	return low
}
