package pathfinder

import "errors"

// ErrInvalidConfiguration is returned when a search cannot start: an endpoint
// is missing, out of bounds, on a barrier, or start and goal coincide.
var ErrInvalidConfiguration = errors.New("invalid search configuration")

// ErrAborted is returned when a search was interrupted before it could finish,
// either because the visualizer's Step reported an error or the context was
// cancelled. The returned error also wraps the cause.
var ErrAborted = errors.New("search aborted")
