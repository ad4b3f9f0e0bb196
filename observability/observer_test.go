package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/pdrpinto/pathfinder/observability"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  string
	}{
		{name: "trace range", level: 1, want: "TRACE"},
		{name: "verbose maps to DEBUG", level: observability.LevelVerbose, want: "DEBUG"},
		{name: "info maps to INFO", level: observability.LevelInfo, want: "INFO"},
		{name: "warning maps to WARN", level: observability.LevelWarning, want: "WARN"},
		{name: "error maps to ERROR", level: observability.LevelError, want: "ERROR"},
		{name: "fatal range", level: 21, want: "FATAL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.String(); got != tt.want {
				t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
			}
		})
	}
}

func TestLevel_SlogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level observability.Level
		want  slog.Level
	}{
		{name: "verbose maps to Debug", level: observability.LevelVerbose, want: slog.LevelDebug},
		{name: "info maps to Info", level: observability.LevelInfo, want: slog.LevelInfo},
		{name: "warning maps to Warn", level: observability.LevelWarning, want: slog.LevelWarn},
		{name: "error maps to Error", level: observability.LevelError, want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.level.SlogLevel(); got != tt.want {
				t.Errorf("Level(%d).SlogLevel() = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestSlogObserver_OnEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	obs := observability.NewSlogObserver(logger)

	obs.OnEvent(context.Background(), observability.Event{
		Type:      observability.EventSearchFound,
		Level:     observability.LevelInfo,
		Timestamp: time.Now(),
		Source:    "pathfinder",
		Data:      map[string]any{"cost": 8, "expanded": 12},
	})

	out := buf.String()
	for _, want := range []string{"search.found", "source=pathfinder", "cost=8", "expanded=12", "level=INFO"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}
	if strings.Index(out, "cost=") > strings.Index(out, "expanded=") {
		t.Errorf("attributes not emitted in key order: %q", out)
	}
}

type recordingObserver struct {
	events []observability.Event
}

func (r *recordingObserver) OnEvent(ctx context.Context, event observability.Event) {
	r.events = append(r.events, event)
}

func TestFanout(t *testing.T) {
	first, second, third := &recordingObserver{}, &recordingObserver{}, &recordingObserver{}
	obs := observability.Fanout(first, nil, observability.Fanout(second, third))

	obs.OnEvent(context.Background(), observability.Event{Type: observability.EventGridReset})

	for i, r := range []*recordingObserver{first, second, third} {
		if len(r.events) != 1 {
			t.Errorf("observer %d got %d events, want 1", i, len(r.events))
		}
	}

	if got := observability.Fanout(nil, first); got != observability.Observer(first) {
		t.Errorf("Fanout of one observer = %T, want it unwrapped", got)
	}
	if _, ok := observability.Fanout().(observability.NoOpObserver); !ok {
		t.Error("Fanout() should be a NoOpObserver")
	}
}

func TestRegistry(t *testing.T) {
	names := observability.Names()
	if want := []string{"noop", "slog"}; strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", names, want)
	}
	for _, name := range names {
		if _, err := observability.GetObserver(name); err != nil {
			t.Errorf("GetObserver(%q) error = %v", name, err)
		}
	}

	_, err := observability.GetObserver("missing")
	if err == nil || !strings.Contains(err.Error(), "noop, slog") {
		t.Errorf("GetObserver(missing) error = %v", err)
	}
}
