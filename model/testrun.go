package model

// TestResult classifies the result token of a single reported test.
type TestResult string

const (
	TestResultPassed TestResult = "PASSED"
	TestResultFailed TestResult = "FAILED"
	TestResultError  TestResult = "ERROR"
	TestResultOther  TestResult = "OTHER"
)

// TestOutcome is one per-test line reported by the GdUnit4 runner
type TestOutcome struct {
	// Bracketed status token (e.g. "TEST", "PASS")
	Status string `json:"status"`
	// Suite name, left of "::"
	Suite string `json:"suite"`
	// Test name, without the trailing "()"
	Test string `json:"test"`
	// Raw result token as printed by the runner
	RawResult string `json:"raw_result"`
	// Classified result
	Result TestResult `json:"result"`
}

// TestRunSummary holds the counts and outcomes extracted from one runner invocation.
// Counts missing from the output are zero.
type TestRunSummary struct {
	Total   int           `json:"total"`
	Passed  int           `json:"passed"`
	Failed  int           `json:"failed"`
	Skipped int           `json:"skipped"`
	Errors  int           `json:"errors"`
	Tests   []TestOutcome `json:"tests"`
}

// Succeeded reports whether the run had neither failures nor errors.
func (s TestRunSummary) Succeeded() bool {
	return s.Failed == 0 && s.Errors == 0
}

// FailedTests returns the outcomes whose result is FAILED or ERROR, in report order.
func (s TestRunSummary) FailedTests() []TestOutcome {
	var failed []TestOutcome
	for _, t := range s.Tests {
		if t.Result == TestResultFailed || t.Result == TestResultError {
			failed = append(failed, t)
		}
	}
	return failed
}
