package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/gdtdd/gdtdd/cli/godot"
	"github.com/gdtdd/gdtdd/config"
	gderrors "github.com/gdtdd/gdtdd/errors"
	"github.com/gdtdd/gdtdd/project"
)

const AppName = "gdtdd"

type App struct {
	logger zerolog.Logger
	cli    *cli.App
	// Reports and results go to out; logs go to the logger
	out io.Writer
	// resolver overrides the Godot lookup when set
	resolver godot.Resolver
}

func New() *App {
	return newApp(os.Stdout, os.Stderr)
}

func newApp(out, logOut io.Writer) *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        logOut,
		TimeFormat: time.RFC3339Nano,
	}).With().Timestamp().Logger()

	app := &App{
		logger: logger,
		out:    out,
		cli: &cli.App{
			Name:      AppName,
			Usage:     "Test-driven development helpers for Godot projects tested with GdUnit4",
			Writer:    out,
			ErrWriter: logOut,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:  "debug",
					Usage: "Enable debug logging",
				},
				&cli.StringFlag{
					Name:    "project",
					Aliases: []string{"C"},
					Usage:   "Directory to search upward from for project.godot (default: current directory)",
				},
				&cli.StringFlag{
					Name:  "config",
					Usage: "Path to the configuration file (default: <project>/" + config.FileName + ")",
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("debug") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
			// Errors are returned from Run and mapped to exit codes by ExitCode.
			ExitErrHandler: func(*cli.Context, error) {},
		},
	}
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "coverage",
		Usage:  "Check the GdUnit4 coverage report against a threshold",
		Action: app.coverage,
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:    "threshold",
				Aliases: []string{"t"},
				Usage:   "Minimum overall coverage percentage",
				Value:   config.DefaultThreshold,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: text or json",
				Value:   config.DefaultOutput,
			},
			&cli.Float64Flag{
				Name:  "cutoff",
				Usage: "Files below this percentage are listed as needing attention",
				Value: config.DefaultCutoff,
			},
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Coverage report to read (default: search the project)",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "stub",
		Usage:     "Generate a GdUnit4 test suite stub from a GDScript source",
		ArgsUsage: "<source_file> [output_dir]",
		Action:    app.stub,
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:      "test",
		Usage:     "Run a single GdUnit4 test suite headless",
		ArgsUsage: "<test_file> [--verbose]",
		Action:    app.test,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Show the runner output",
			},
			godot.TimeoutFlag(),
			godot.ExecutableFlag(),
			&cli.BoolFlag{
				Name:  "no-history",
				Usage: "Do not record the run in the project history",
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "list",
		Usage:  "List previous test runs",
		Action: app.list,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Filter by test file (e.g., test_suites/test_tile_database.gd)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Limit number of results (default: 20)",
				Value:   20,
			},
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:            "view",
		Usage:           "View a test run from history",
		ArgsUsage:       "[ID|INDEX]",
		Action:          app.view,
		SkipFlagParsing: true,
		Description: `View a test run from history.

Arguments:
  0           View last test run (default)
  -1          View 2nd last test run
  <hex-id>    View test run matching the hex ID prefix

Examples:
  gdtdd view           # View last test run
  gdtdd view -1        # View 2nd last test run
  gdtdd view abc123    # View test run with ID starting with abc123`,
	})
	return app
}

func (a *App) Run(args []string) error {
	return a.cli.Run(args)
}

// ExitCode logs err, if it carries a message, and returns the process exit code.
func (a *App) ExitCode(err error) int {
	if err != nil && err.Error() != "" {
		a.logger.Error().Msg(err.Error())
	}
	return gderrors.GetExitCode(err)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && commit != "" {
		if len(commit) > 8 {
			commit = commit[:8]
		}
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)
	}
}

// loadProject resolves the project root and its configuration.
func (a *App) loadProject(ctx *cli.Context) (string, *config.Config, error) {
	var root string
	if start := ctx.String("project"); start != "" {
		root = project.FindRootFrom(start)
	} else {
		found, err := project.FindRoot()
		if err != nil {
			return "", nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		root = found
	}
	if !project.IsGodotProject(root) {
		a.logger.Debug().Str("dir", root).Msg("No project.godot found, using directory as project root")
	}

	var cfg *config.Config
	var err error
	if path := ctx.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadFromRoot(root)
	}
	if err != nil {
		return "", nil, err
	}

	a.logger.Debug().Str("root", root).Msg("Resolved project")
	return root, cfg, nil
}
