// Package gdscript outlines GDScript sources and renders GdUnit4 test-suite stubs.
package gdscript

import (
	"regexp"
	"strings"

	"github.com/gdtdd/gdtdd/model"
)

var (
	classNameRegex = regexp.MustCompile(`class_name\s+(\w+)`)
	extendsRegex   = regexp.MustCompile(`extends\s+(\w+)`)
	// Parameters stop at the first ')', so defaults containing calls are cut short.
	funcRegex = regexp.MustCompile(`func\s+(\w+)\s*\(([^)]*)\)`)
)

const (
	privatePrefix = "_"
	testPrefix    = "test_"
)

// Analyze extracts the class name, base class and public functions of a script.
// It never fails: a missing class_name leaves ClassName empty and a missing
// extends falls back to model.DefaultBaseName.
func Analyze(source string) model.SourceSummary {
	summary := model.SourceSummary{
		BaseName:   model.DefaultBaseName,
		Operations: []model.Operation{},
	}

	if m := classNameRegex.FindStringSubmatch(source); m != nil {
		summary.ClassName = m[1]
	}
	if m := extendsRegex.FindStringSubmatch(source); m != nil {
		summary.BaseName = m[1]
	}

	for _, m := range funcRegex.FindAllStringSubmatch(source, -1) {
		name := m[1]
		if !IsPublic(name) {
			continue
		}
		summary.Operations = append(summary.Operations, model.Operation{
			Name:       name,
			Parameters: strings.TrimSpace(m[2]),
		})
	}

	return summary
}

// IsPublic reports whether a function belongs in the generated suite: private
// functions and already generated tests are left out.
func IsPublic(name string) bool {
	return !strings.HasPrefix(name, privatePrefix) && !strings.HasPrefix(name, testPrefix)
}

// ParameterNames reduces a raw parameter list to bare names, dropping type
// hints and default values.
//
//	"id: int, name := \"x\", flags = 0" -> [id name flags]
func ParameterNames(params string) []string {
	var names []string
	for _, p := range strings.Split(params, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		name, _, _ := strings.Cut(p, ":")
		name, _, _ = strings.Cut(name, "=")
		names = append(names, strings.TrimSpace(name))
	}
	return names
}
