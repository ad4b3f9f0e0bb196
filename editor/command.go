package editor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdrpinto/pathfinder/grid"
)

// Op names one user intent.
type Op string

const (
	OpStart   Op = "start"
	OpEnd     Op = "end"
	OpBarrier Op = "barrier"
	OpClear   Op = "clear"
	OpClick   Op = "click"
	OpErase   Op = "erase"
	OpReset   Op = "reset"
	OpRun     Op = "run"
	OpQuit    Op = "quit"
)

// Command is a parsed user intent. Position is only meaningful for ops that
// address a cell.
type Command struct {
	Op       Op
	Position grid.Position
	Line     int
}

func (op Op) takesPosition() bool {
	switch op {
	case OpStart, OpEnd, OpBarrier, OpClear, OpClick, OpErase:
		return true
	}
	return false
}

// ParseCommand parses one line such as "barrier 2,3" or "run".
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("empty command: %w", ErrUnknownCommand)
	}

	op := Op(strings.ToLower(fields[0]))
	switch op {
	case OpStart, OpEnd, OpBarrier, OpClear, OpClick, OpErase, OpReset, OpRun, OpQuit:
	default:
		return Command{}, fmt.Errorf("%q: %w", fields[0], ErrUnknownCommand)
	}

	if !op.takesPosition() {
		if len(fields) != 1 {
			return Command{}, fmt.Errorf("%s takes no arguments", op)
		}
		return Command{Op: op}, nil
	}
	if len(fields) < 2 {
		return Command{}, fmt.Errorf("%s needs a position row,col", op)
	}
	pos, err := grid.ParsePosition(strings.Join(fields[1:], ""))
	if err != nil {
		return Command{}, fmt.Errorf("%s: %w", op, err)
	}
	return Command{Op: op, Position: pos}, nil
}

// ParseScript reads one command per line. Blank lines and text after '#' are
// ignored.
func ParseScript(r io.Reader) ([]Command, error) {
	var commands []Command
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		cmd.Line = lineNo
		commands = append(commands, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// Apply performs an editing command. OpRun and OpQuit are not edits: Apply
// handles OpQuit by calling Quit and rejects OpRun, which the caller must
// route to RunSearch with its own step callback.
func (e *Editor) Apply(ctx context.Context, cmd Command) error {
	switch cmd.Op {
	case OpStart:
		return e.SetStart(ctx, cmd.Position)
	case OpEnd:
		return e.SetEnd(ctx, cmd.Position)
	case OpBarrier:
		return e.ToggleBarrier(ctx, cmd.Position)
	case OpClear, OpErase:
		return e.ClearCell(ctx, cmd.Position)
	case OpClick:
		return e.Click(ctx, cmd.Position)
	case OpReset:
		e.ResetGrid(ctx)
		return nil
	case OpQuit:
		e.Quit()
		return nil
	case OpRun:
		return fmt.Errorf("%s is not an edit", cmd.Op)
	default:
		return fmt.Errorf("%q: %w", cmd.Op, ErrUnknownCommand)
	}
}
