package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/editor"
	"github.com/pdrpinto/pathfinder/observability"
	"github.com/pdrpinto/pathfinder/render"
)

type replayFlags struct {
	progressFlags
	size int
	show bool
}

func newReplayCmd(a *app) *cobra.Command {
	var f replayFlags
	cmd := &cobra.Command{
		Use:   "replay <script|->",
		Short: "Replay an editor script",
		Long: `Replay editor commands, one per line:

  start r,c   end r,c   barrier r,c   clear r,c
  click r,c   erase r,c   reset   run   quit

Text after '#' is ignored. Every "run" searches the current grid and prints
its outcome; the exit code follows the last run. "quit" stops the replay.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.replay(cmd.Context(), args[0], cmd.InOrStdin(), &f)
		},
	}
	f.progressFlags.register(cmd)
	cmd.Flags().IntVar(&f.size, "size", 0, "Grid dimension (default from config)")
	cmd.Flags().BoolVar(&f.show, "show", false, "Print the grid after every run")
	return cmd
}

func (a *app) replay(ctx context.Context, source string, stdin io.Reader, f *replayFlags) error {
	commands, err := readScript(source, stdin)
	if err != nil {
		return &exitError{code: exitInvalid, err: err}
	}

	size := f.size
	if size == 0 {
		size = a.cfg.Grid.Dimension
	}
	if size < 1 {
		return &exitError{code: exitInvalid, err: fmt.Errorf("--size must be positive, got %d", size)}
	}
	onStep, _, err := f.progressFlags.stepFunc(a, a.stdout)
	if err != nil {
		return err
	}

	stats := newRunStats()
	ed := editor.New(size, editor.WithObserver(observability.Fanout(a.observer, stats)))
	defer func() { fmt.Fprintln(a.stdout, stats) }()

	var last error
	for _, command := range commands {
		if command.Op != editor.OpRun {
			if err := ed.Apply(ctx, command); err != nil {
				return &exitError{code: exitInvalid, err: fmt.Errorf("line %d: %w", command.Line, err)}
			}
			if ed.QuitRequested() {
				slog.Debug("replay stopped by quit", "line", command.Line)
				break
			}
			continue
		}

		result, err := ed.RunSearch(ctx, onStep)
		if errors.Is(err, pathfinder.ErrInvalidConfiguration) {
			return &exitError{code: exitInvalid, err: fmt.Errorf("line %d: %w", command.Line, err)}
		}
		if f.show {
			if err := render.Text(a.stdout, ed.Grid(), f.color); err != nil {
				return err
			}
		}
		if err == nil && result.Found() {
			printResult(a.stdout, result)
		} else {
			fmt.Fprintf(a.stdout, "%s: %d expanded\n", result.Outcome, result.ExpandedNodes)
		}
		last = resultError(result, err)
		if errors.Is(err, pathfinder.ErrAborted) {
			break
		}
	}
	return last
}

func readScript(source string, stdin io.Reader) ([]editor.Command, error) {
	if source == "-" {
		return editor.ParseScript(stdin)
	}
	file, err := os.Open(source)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	commands, err := editor.ParseScript(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return commands, nil
}
