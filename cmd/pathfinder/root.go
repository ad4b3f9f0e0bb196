package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/internal/config"
	"github.com/pdrpinto/pathfinder/internal/log"
	"github.com/pdrpinto/pathfinder/observability"
)

// Exit codes.
const (
	exitFound    = 0
	exitNotFound = 1
	exitInvalid  = 2
)

// exitError carries the process exit code of a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

var errNoPath = errors.New("no path found")

// app holds the state shared by every subcommand once the root command has
// loaded the configuration.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFile    string

	cfg      *config.Config
	observer observability.Observer
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "pathfinder",
		Short: "A* shortest-path search on square grids",
		Long: `pathfinder runs an A* search on a square grid with 4-directional movement,
unit edge cost and a Manhattan heuristic. Grids come from flags, scenario
files or editor scripts and can be rendered as text, PNG frames or stepped
through in a browser.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "Append logs to this file instead of stderr")

	rootCmd.AddCommand(
		newSearchCmd(a),
		newReplayCmd(a),
		newRenderCmd(a),
		newServeCmd(a),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and initialises
// logging and the event observer.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return &exitError{code: exitInvalid, err: err}
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFile != "" {
		cfg.Logging.Path = a.logFile
	}
	if err := config.Validate(cfg); err != nil {
		return &exitError{code: exitInvalid, err: err}
	}

	if err := log.InitWriter(cfg.Logging.Path, cfg.Logging.Level, a.stderr); err != nil {
		return fmt.Errorf("failed to initialise logging: %w", err)
	}
	observer, err := observability.GetObserver(cfg.Observer)
	if err != nil {
		return &exitError{code: exitInvalid, err: err}
	}

	a.cfg = cfg
	a.observer = observer
	return nil
}

// run executes the command line and maps its outcome to an exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitFound
	}
	fmt.Fprintln(stderr, "Error:", err)
	return exitCode(err)
}

func exitCode(err error) int {
	var exit *exitError
	switch {
	case err == nil:
		return exitFound
	case errors.As(err, &exit):
		return exit.code
	case errors.Is(err, pathfinder.ErrAborted):
		return exitNotFound
	default:
		return exitInvalid
	}
}

// resultError converts a finished search into the command error.
func resultError(result pathfinder.Result[grid.Position], err error) error {
	switch {
	case err != nil && errors.Is(err, pathfinder.ErrInvalidConfiguration):
		return &exitError{code: exitInvalid, err: err}
	case err != nil:
		return &exitError{code: exitNotFound, err: err}
	case !result.Found():
		return &exitError{code: exitNotFound, err: errNoPath}
	}
	return nil
}
