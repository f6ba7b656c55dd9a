// Package project locates a Godot project and the files gdtdd works with inside it.
package project

import (
	"os"
	"path/filepath"
	"strings"

	gderrors "github.com/gdtdd/gdtdd/errors"
)

// MarkerFileName identifies the root of a Godot project.
const MarkerFileName = "project.godot"

// StateDirName holds gdtdd's own files below the project root.
const StateDirName = ".gdtdd"

// CoverageCandidates are the locations GdUnit4 writes coverage to, relative to
// the project root, in lookup order.
var CoverageCandidates = []string{
	"coverage.json",
	filepath.Join("reports", "coverage.json"),
	filepath.Join(".gdunit4", "coverage", "coverage.json"),
}

// FindRoot walks up from the current working directory until it finds project.godot.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd), nil
}

// FindRootFrom walks up from startDir until it finds project.godot. When no
// parent holds the marker, the start directory itself is used as the root.
func FindRootFrom(startDir string) string {
	start, err := filepath.Abs(startDir)
	if err != nil {
		start = startDir
	}

	dir := start
	for {
		if _, err := os.Stat(filepath.Join(dir, MarkerFileName)); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}

// IsGodotProject reports whether root holds the project marker.
func IsGodotProject(root string) bool {
	_, err := os.Stat(filepath.Join(root, MarkerFileName))
	return err == nil
}

// FindCoverageFile returns the first coverage artifact present under root.
func FindCoverageFile(root string) (string, error) {
	for _, rel := range CoverageCandidates {
		path := filepath.Join(root, rel)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", gderrors.NotFound("coverage report", "run tests with coverage first: godot --headless --run-tests --coverage")
}

// ResolveTestFile returns the absolute path of a test file given on the command
// line. Relative paths are taken relative to the project root.
func ResolveTestFile(root, file string) (string, error) {
	path := file
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, file)
	}
	if _, err := os.Stat(path); err != nil {
		return "", gderrors.NotFound("test file", path)
	}
	return path, nil
}

// ResPath converts a path below root into a res:// path.
func ResPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", err
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", gderrors.Usage("%s is outside the project at %s", path, root)
	}
	return "res://" + filepath.ToSlash(rel), nil
}
