package godot

// godot.go contains utilities for building and running headless GdUnit4
// invocations of the Godot executable.

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"al.essio.dev/pkg/shellescape"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	gderrors "github.com/gdtdd/gdtdd/errors"
)

// DefaultTimeout bounds a single test run.
const DefaultTimeout = 120 * time.Second

// waitDelay is how long Run waits for output pipes after the process is killed.
const waitDelay = 5 * time.Second

// RunOptions contains options for a GdUnit4 run.
type RunOptions struct {
	Executable  string // Godot executable
	ProjectRoot string // Directory holding project.godot
	TestPath    string // res:// path of the suite to run
}

// Result is the captured outcome of one run.
type Result struct {
	// Combined stdout and stderr
	Output   string
	ExitCode int
	Duration time.Duration
}

// BuildArgs builds the Godot arguments for running one test suite headless.
func BuildArgs(opts RunOptions) []string {
	return []string{
		"--path", opts.ProjectRoot,
		"--headless",
		"--run-tests",
		opts.TestPath,
	}
}

// BuildCommand builds the full command line with proper shell escaping, for
// logging and for the run history.
func BuildCommand(opts RunOptions) string {
	args := BuildArgs(opts)

	parts := make([]string, 0, len(args)+1)
	parts = append(parts, shellescape.Quote(opts.Executable))

	for _, arg := range args {
		parts = append(parts, shellescape.Quote(arg))
	}

	return strings.Join(parts, " ")
}

// Run executes one GdUnit4 run and blocks until it exits or timeout elapses.
// Output is copied to stream while it is captured.
//
// A non-zero exit code is not an error: GdUnit4 exits non-zero when tests fail.
// When the timeout elapses Run returns a timeout error together with the
// partial result; the partial output must not be interpreted as a finished run.
func Run(ctx context.Context, logger zerolog.Logger, opts RunOptions, timeout time.Duration, stream io.Writer) (*Result, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if stream == nil {
		stream = io.Discard
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger.Debug().
		Str("command", BuildCommand(opts)).
		Dur("timeout", timeout).
		Msg("Starting godot")

	cmd := exec.CommandContext(ctx, opts.Executable, BuildArgs(opts)...)
	cmd.Dir = opts.ProjectRoot
	cmd.WaitDelay = waitDelay

	var output bytes.Buffer
	w := io.MultiWriter(stream, &output)
	cmd.Stdout = w
	cmd.Stderr = w

	start := time.Now()
	err := cmd.Run()
	result := &Result{
		Output:   output.String(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		result.ExitCode = -1
		logger.Warn().Dur("timeout", timeout).Msg("Test execution timed out")
		return result, gderrors.Timeout("test execution", timeout)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
			logger.Info().
				Int("exit_code", result.ExitCode).
				Msg("Godot exited with a non-zero code")
			return result, nil
		}
		return result, fmt.Errorf("failed to execute godot: %w", err)
	}

	logger.Debug().Dur("duration", result.Duration).Msg("Godot finished")
	return result, nil
}

// TimeoutFlag returns the timeout flag for a test run.
func TimeoutFlag() cli.Flag {
	return &cli.DurationFlag{
		Name:  "timeout",
		Usage: "Abort the test run after this duration",
		Value: DefaultTimeout,
	}
}

// ExecutableFlag returns the flag overriding the Godot executable lookup.
func ExecutableFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "godot",
		Usage:   "Path to the Godot executable",
		EnvVars: []string{EnvExecutable},
	}
}
