package gdscript

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/gdtdd/gdtdd/model"
)

// SuiteBase is the class every generated suite extends.
const SuiteBase = "GdUnitTestSuite"

// TypeName is the class under test: the declared class_name, or the file stem
// of the source when the script has none.
func TypeName(summary model.SourceSummary, sourcePath string) string {
	if summary.ClassName != "" {
		return summary.ClassName
	}
	base := sourcePath
	if i := strings.LastIndexAny(base, `/\`); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// StubFileName returns the file name of the generated suite, e.g.
// "test_tiledatabase.gd" for class_name TileDatabase.
func StubFileName(summary model.SourceSummary, sourcePath string) string {
	lower := cases.Lower(language.Und)
	return testPrefix + lower.String(TypeName(summary, sourcePath)) + ".gd"
}

// TestNames returns the generated test function name for each operation, in
// order. A name already taken gets the lowest free numeric suffix starting at
// 2, so the suite never declares the same function twice even when a source
// function is itself named like a suffixed duplicate.
func TestNames(ops []model.Operation) []string {
	used := make(map[string]bool, len(ops))
	names := make([]string, 0, len(ops))
	for _, op := range ops {
		base := testPrefix + op.Name
		name := base
		for n := 2; used[name]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[name] = true
		names = append(names, name)
	}
	return names
}

// RenderStub renders a GdUnit4 suite for summary. sourceLabel is written into
// the header and used for the class name when the script declares none.
//
// Functions without parameters get a smoke test asserting a non-null result.
// Functions with parameters get a commented call and an assertion that always
// fails, so an untouched stub never passes.
func RenderStub(summary model.SourceSummary, sourceLabel string) string {
	className := TypeName(summary, sourceLabel)

	lines := []string{
		"# Auto-generated test suite",
		"# Source: " + sourceLabel,
		"extends " + SuiteBase,
		"",
		"# Setup/Teardown",
		"func before():",
		"\t# Setup test environment",
		"\tpass",
		"",
		"func after():",
		"\t# Cleanup after tests",
		"\tpass",
		"",
		"",
		"# Test Methods",
	}

	testNames := TestNames(summary.Operations)
	for i, op := range summary.Operations {
		lines = append(lines,
			fmt.Sprintf("func %s():", testNames[i]),
			fmt.Sprintf("\t# TODO: Implement test for %s()", op.Name),
			fmt.Sprintf("\tvar instance := %s.new()", className),
		)

		if op.Parameters == "" {
			lines = append(lines,
				fmt.Sprintf("\tvar result := instance.%s()", op.Name),
				"\tassert_that(result).is_not_null()",
			)
		} else {
			args := make([]string, 0)
			for _, p := range ParameterNames(op.Parameters) {
				args = append(args, "# "+p)
			}
			lines = append(lines,
				fmt.Sprintf("\t# var result := instance.%s(%s)", op.Name, strings.Join(args, ", ")),
				"\tassert_that(false).is_true()  # TODO: Implement",
			)
		}

		lines = append(lines, "", "")
	}

	return strings.Join(lines, "\n")
}
