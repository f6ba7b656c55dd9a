// Package gdunit interprets the text printed by a headless GdUnit4 run.
//
// The runner's output is not a stable contract, so interpretation is tolerant:
// a missing count is zero and lines that do not look like a test report are
// ignored.
package gdunit

import (
	"regexp"
	"strconv"

	"github.com/gdtdd/gdtdd/model"
)

// countPattern extracts one aggregate count from the runner output.
type countPattern struct {
	name string
	re   *regexp.Regexp
	set  func(s *model.TestRunSummary, n int)
}

// Compiled once at package init.
var countPatterns = []countPattern{
	{
		name: "total",
		re:   regexp.MustCompile(`(?i)Tests:\s+(\d+)`),
		set:  func(s *model.TestRunSummary, n int) { s.Total = n },
	},
	{
		name: "passed",
		re:   regexp.MustCompile(`(?i)Passed:\s+(\d+)`),
		set:  func(s *model.TestRunSummary, n int) { s.Passed = n },
	},
	{
		name: "failed",
		re:   regexp.MustCompile(`(?i)Failed:\s+(\d+)`),
		set:  func(s *model.TestRunSummary, n int) { s.Failed = n },
	},
	{
		name: "skipped",
		re:   regexp.MustCompile(`(?i)Skipped:\s+(\d+)`),
		set:  func(s *model.TestRunSummary, n int) { s.Skipped = n },
	},
	{
		name: "errors",
		re:   regexp.MustCompile(`(?i)Errors:\s+(\d+)`),
		set:  func(s *model.TestRunSummary, n int) { s.Errors = n },
	},
}

// testLineRegex matches a per-test report line:
//
//	[PASS] - TestTileDatabase::test_get_tile() - PASSED
//	[TEST] FAILED - TestTileDatabase::test_add_tile() - FAILED
//
// Groups: 1 bracketed token, 2 optional status word, 3 suite, 4 test, 5 result.
var testLineRegex = regexp.MustCompile(`\[(\w+)\]\s+(?:(\w+)\s+)?-\s+(\w+)::(\w+)\(\)\s+-\s+(\w+)`)

// Interpret extracts the aggregate counts and the per-test outcomes from the
// combined stdout and stderr of one runner invocation. It never fails; an empty
// output yields a zero summary.
func Interpret(output string) model.TestRunSummary {
	summary := model.TestRunSummary{
		Tests: []model.TestOutcome{},
	}

	for _, p := range countPatterns {
		if n, ok := firstCount(p.re, output); ok {
			p.set(&summary, n)
		}
	}

	summary.Tests = append(summary.Tests, ParseTestLines(output)...)

	return summary
}

// ParseTestLines returns one outcome per report line, in the order they appear.
// Repeated lines produce repeated outcomes.
func ParseTestLines(output string) []model.TestOutcome {
	matches := testLineRegex.FindAllStringSubmatch(output, -1)
	outcomes := make([]model.TestOutcome, 0, len(matches))
	for _, m := range matches {
		status := m[1]
		if m[2] != "" {
			status = m[2]
		}
		outcomes = append(outcomes, model.TestOutcome{
			Status:    status,
			Suite:     m[3],
			Test:      m[4],
			RawResult: m[5],
			Result:    ClassifyResult(m[5]),
		})
	}
	return outcomes
}

// ClassifyResult maps a result token onto the known results.
func ClassifyResult(token string) model.TestResult {
	switch model.TestResult(token) {
	case model.TestResultPassed, model.TestResultFailed, model.TestResultError:
		return model.TestResult(token)
	default:
		return model.TestResultOther
	}
}

func firstCount(re *regexp.Regexp, output string) (int, bool) {
	match := re.FindStringSubmatch(output)
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		// digits too long for int
		return 0, false
	}
	return n, true
}
