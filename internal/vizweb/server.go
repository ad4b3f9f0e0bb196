// Package vizweb serves a browser front end that steps through a search one
// expansion per request.
package vizweb

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/pathfinder"
	"github.com/pdrpinto/pathfinder/editor"
	"github.com/pdrpinto/pathfinder/grid"
	"github.com/pdrpinto/pathfinder/internal/config"
	"github.com/pdrpinto/pathfinder/observability"
)

//go:embed static/index.html
var indexHTML []byte

const maxSize = 200

// Server holds one editing session. Handlers are serialised by mu since the
// editor and stepper are single-threaded.
type Server struct {
	mu       sync.Mutex
	cfg      config.Config
	observer observability.Observer
	rand     *rand.Rand

	session string
	editor  *editor.Editor
	stepper *pathfinder.Stepper[grid.Position]
}

// New creates a server with an empty grid of the configured dimension.
func New(cfg config.Config, observer observability.Observer) *Server {
	if observer == nil {
		observer = observability.NoOpObserver{}
	}
	s := &Server{
		cfg:      cfg,
		observer: observer,
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	s.reset(cfg.Grid.Dimension)
	return s
}

// Handler returns the HTTP routes of the visualizer.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleStatic)
	mux.HandleFunc("/init", s.handleInit)
	mux.HandleFunc("/edit", s.handleEdit)
	mux.HandleFunc("/next", s.handleNext)
	mux.HandleFunc("/state", s.handleState)
	return mux
}

func (s *Server) reset(size int) {
	s.session = uuid.New().String()
	s.editor = editor.New(size, editor.WithObserver(s.observer))
	s.stepper = nil
}

type snapshot struct {
	Session   string   `json:"session"`
	Run       string   `json:"run,omitempty"`
	Step      int      `json:"step"`
	Size      int      `json:"size"`
	Walls     [][2]int `json:"walls"`
	Open      [][2]int `json:"open,omitempty"`
	Closed    [][2]int `json:"closed,omitempty"`
	Path      [][2]int `json:"path,omitempty"`
	Current   *[2]int  `json:"current,omitempty"`
	Start     *[2]int  `json:"start,omitempty"`
	Goal      *[2]int  `json:"goal,omitempty"`
	OpenCount int      `json:"open_count"`
	Done      bool     `json:"done"`
	Found     bool     `json:"found"`
	Outcome   string   `json:"outcome"`
}

func pair(p grid.Position) [2]int { return [2]int{p.Row, p.Col} }

func optionalPair(p grid.Position, ok bool) *[2]int {
	if !ok {
		return nil
	}
	v := pair(p)
	return &v
}

// snapshotLocked describes the grid by cell state. The traced path comes
// from the Path cells; endpoints are reported separately.
func (s *Server) snapshotLocked() snapshot {
	g := s.editor.Grid()
	start, hasStart := s.editor.Start()
	goal, hasGoal := s.editor.End()
	snap := snapshot{
		Session: s.session,
		Size:    g.Dimension(),
		Walls:   make([][2]int, 0),
		Start:   optionalPair(start, hasStart),
		Goal:    optionalPair(goal, hasGoal),
		Outcome: pathfinder.OutcomePending.String(),
	}
	for _, p := range s.editor.Barriers() {
		snap.Walls = append(snap.Walls, pair(p))
	}
	g.Each(func(cell *grid.Cell) {
		p := pair(cell.Position())
		switch cell.State() {
		case grid.Open:
			snap.Open = append(snap.Open, p)
		case grid.Closed:
			snap.Closed = append(snap.Closed, p)
		case grid.Path:
			snap.Path = append(snap.Path, p)
		}
	})
	if s.stepper != nil {
		result := s.stepper.Result()
		snap.Run = s.stepper.RunID()
		snap.Step = result.ExpandedNodes
		snap.Done = s.stepper.Done()
		snap.Found = result.Found()
		snap.Outcome = result.Outcome.String()
	}
	return snap
}

func (s *Server) handleInit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	size := s.cfg.Grid.Dimension
	walls := s.cfg.Server.Walls
	if v, err := strconv.Atoi(q.Get("size")); err == nil && v > 1 && v <= maxSize {
		size = v
	}
	if v, err := strconv.Atoi(q.Get("clusters")); err == nil && v >= 0 {
		walls.Clusters = v
	}
	if v, err := strconv.Atoi(q.Get("steps")); err == nil && v >= 0 {
		walls.Steps = v
	}
	if v, err := strconv.ParseFloat(q.Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		walls.Density = v
	}
	if size < 2 {
		http.Error(w, "grid needs at least two cells per side", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rng := s.rand
	if v, err := strconv.ParseInt(q.Get("seed"), 10, 64); err == nil {
		rng = rand.New(rand.NewSource(v))
	}

	ctx := r.Context()
	s.reset(size)
	start, goal := randomEndpoints(rng, size)
	// endpoints are placed first so the generator output can never collide
	if err := s.editor.SetStart(ctx, start); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := s.editor.SetEnd(ctx, goal); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for _, p := range genWalls(rng, size, walls, start, goal) {
		if err := s.editor.PlaceBarrier(ctx, p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

// handleEdit applies one editor command, e.g. /edit?op=click&row=3&col=4.
// Any edit discards the current search; op=run starts a new one.
func (s *Server) handleEdit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	line := q.Get("op")
	if q.Has("row") || q.Has("col") {
		line += " " + q.Get("row") + "," + q.Get("col")
	}
	cmd, err := editor.ParseCommand(line)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch cmd.Op {
	case editor.OpRun:
		if err := s.startSearchLocked(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	case editor.OpQuit:
		http.Error(w, "quit is not available over http", http.StatusBadRequest)
		return
	default:
		if err := s.editor.Apply(r.Context(), cmd); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, editor.ErrCollision) {
				status = http.StatusConflict
			}
			http.Error(w, err.Error(), status)
			return
		}
		s.stepper = nil
	}

	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Server) startSearchLocked() error {
	stepper, err := s.editor.Stepper(nil, pathfinder.WithObserver(s.observer))
	if err != nil {
		return err
	}
	s.stepper = stepper
	return nil
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stepper == nil {
		if err := s.startSearchLocked(); err != nil {
			http.Error(w, "engine not initialized: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	st, err := s.stepper.Step(r.Context())
	if err != nil && !errors.Is(err, pathfinder.ErrAborted) {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	snap := s.snapshotLocked()
	if !st.Done && st.StepIndex > 0 {
		current := pair(st.Current)
		snap.Current = &current
	}
	snap.OpenCount = st.OpenCount
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.snapshotLocked())
}

func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(indexHTML)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// ListenAndServe serves the visualizer on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
