package godot

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	gderrors "github.com/gdtdd/gdtdd/errors"
)

// EnvExecutable names the environment variable holding the Godot executable.
const EnvExecutable = "GODOT_BIN"

// Resolver returns the path of the Godot executable to run.
type Resolver func() (string, error)

// DefaultCandidates are the install locations checked before PATH.
var DefaultCandidates = []string{
	`C:\Program Files\Godot\Godot_v4.5.1-stable_win64.exe`,
	`C:\Program Files\Godot\Godot_v4.5-stable_win64.exe`,
	`C:\Godot\Godot_v4.5.1-stable_win64.exe`,
	"/Applications/Godot.app/Contents/MacOS/Godot",
}

// DefaultNames are the executable names searched on PATH.
var DefaultNames = []string{"godot", "godot4", "godot.exe"}

// Locator finds the Godot executable. The zero value searches the environment,
// DefaultCandidates and PATH.
type Locator struct {
	// Executable, when set, is the only path considered
	Executable string
	// Candidates are checked before DefaultCandidates
	Candidates []string

	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// Resolve returns the first executable found, in order: Executable, the
// GODOT_BIN environment variable, Candidates, DefaultCandidates, then
// DefaultNames on PATH.
func (l *Locator) Resolve() (string, error) {
	if l.Executable != "" {
		if isFile(l.Executable) {
			return l.Executable, nil
		}
		return "", gderrors.NotFound("godot executable", l.Executable)
	}

	getenv := l.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if env := strings.TrimSpace(getenv(EnvExecutable)); env != "" {
		if isFile(env) {
			return env, nil
		}
		return "", gderrors.NotFound("godot executable", env+" (from "+EnvExecutable+")")
	}

	for _, c := range append(append([]string{}, l.Candidates...), DefaultCandidates...) {
		if isFile(c) {
			return c, nil
		}
	}

	lookPath := l.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	for _, name := range DefaultNames {
		if path, err := lookPath(name); err == nil {
			return path, nil
		}
	}

	return "", gderrors.NotFound("godot executable", "install Godot 4.x or set "+EnvExecutable)
}

func isFile(path string) bool {
	info, err := os.Stat(filepath.Clean(path))
	return err == nil && !info.IsDir()
}
