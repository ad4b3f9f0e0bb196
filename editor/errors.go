package editor

import "errors"

var (
	// ErrOutOfBounds is returned for edits addressing a cell outside the grid.
	ErrOutOfBounds = errors.New("position out of bounds")
	// ErrCollision is returned when an edit would overwrite the current Start
	// or End cell. The grid is left unchanged.
	ErrCollision = errors.New("edit collides with start or end")
	// ErrQuit is the abort cause reported when Quit is requested during a search.
	ErrQuit = errors.New("quit requested")
	// ErrUnknownCommand is returned by ParseCommand for unrecognised input.
	ErrUnknownCommand = errors.New("unknown command")
)
