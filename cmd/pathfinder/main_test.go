package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdrpinto/pathfinder"
)

func execute(t *testing.T, ctx context.Context, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--log-level", "error"}, args...)
	code := run(ctx, args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSearch_ExitCodes(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
	}{
		{
			name:       "found around a wall",
			args:       []string{"search", "--size", "5", "--start", "0,0", "--end", "4,4", "--barrier", "2,1", "--barrier", "2,2", "--barrier", "2,3", "--verify"},
			wantCode:   exitFound,
			wantStdout: "found: cost 8",
		},
		{
			name:       "enclosed start",
			args:       []string{"search", "--size", "3", "--start", "0,0", "--end", "2,2", "--barrier", "1,0", "--barrier", "0,1", "--verify"},
			wantCode:   exitNotFound,
			wantStdout: "verified: end unreachable, 1 cells reachable from start",
		},
		{
			name:     "start equals end",
			args:     []string{"search", "--size", "3", "--start", "1,1", "--end", "1,1"},
			wantCode: exitInvalid,
		},
		{
			name:     "missing end",
			args:     []string{"search", "--size", "3", "--start", "1,1"},
			wantCode: exitInvalid,
		},
		{
			name:     "malformed position",
			args:     []string{"search", "--size", "3", "--start", "x", "--end", "1,1"},
			wantCode: exitInvalid,
		},
		{
			name:     "barrier on start",
			args:     []string{"search", "--size", "3", "--start", "0,0", "--end", "2,2", "--barrier", "0,0"},
			wantCode: exitInvalid,
		},
		{
			name:     "endpoint outside grid",
			args:     []string{"search", "--size", "3", "--start", "0,0", "--end", "3,3"},
			wantCode: exitInvalid,
		},
		{
			name:     "unknown flag",
			args:     []string{"search", "--diagonal"},
			wantCode: exitInvalid,
		},
		{
			name:     "bad delay",
			args:     []string{"search", "--size", "3", "--start", "0,0", "--end", "2,2", "--delay", "soon"},
			wantCode: exitInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := execute(t, t.Context(), tt.args...)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout, stderr)
			}
			if !strings.Contains(stdout, tt.wantStdout) {
				t.Errorf("stdout = %q, want it to contain %q", stdout, tt.wantStdout)
			}
		})
	}
}

func TestSearch_PrintsPath(t *testing.T) {
	code, stdout, _ := execute(t, t.Context(), "search", "--size", "3", "--start", "0,0", "--end", "0,2", "--barrier", "0,1", "--show")
	if code != exitFound {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout, "(0,0) (1,0) (1,1) (1,2) (0,2)") {
		t.Errorf("path missing from output:\n%s", stdout)
	}
	if !strings.Contains(stdout, "S#E\n***\n") {
		t.Errorf("final grid missing from output:\n%s", stdout)
	}
}

func TestSearch_Scenario(t *testing.T) {
	path := writeFile(t, "maze.yaml", "map: |\n  S.#.\n  .##.\n  ....\n  #..E\n")
	code, stdout, stderr := execute(t, t.Context(), "search", "--scenario", path, "--verify")
	if code != exitFound {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "found: cost 6") || !strings.Contains(stdout, "verified") {
		t.Errorf("stdout = %q", stdout)
	}

	code, _, _ = execute(t, t.Context(), "search", "--scenario", path, "--end", "0,3", "--barrier", "2,3")
	if code != exitNotFound {
		t.Errorf("overridden scenario exit code = %d, want %d", code, exitNotFound)
	}
}

func TestSearch_Frames(t *testing.T) {
	dir := t.TempDir()
	code, _, stderr := execute(t, t.Context(), "search", "--size", "4", "--start", "0,0", "--end", "3,3", "--frames", dir)
	if code != exitFound {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr)
	}
	frames, err := filepath.Glob(filepath.Join(dir, "frame-*.png"))
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) < 2 {
		t.Errorf("wrote %d frames", len(frames))
	}
}

func TestSearch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	code, _, stderr := execute(t, ctx, "search", "--size", "4", "--start", "0,0", "--end", "3,3")
	if code != exitNotFound {
		t.Errorf("exit code = %d, want %d", code, exitNotFound)
	}
	if !strings.Contains(stderr, pathfinder.ErrAborted.Error()) {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestReplay(t *testing.T) {
	script := writeFile(t, "session.txt", `# two clicks place the endpoints
click 0,0
click 0,2
barrier 0,1
run
quit
run
`)
	code, stdout, stderr := execute(t, t.Context(), "replay", "--size", "3", script)
	if code != exitFound {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr)
	}
	if got := strings.Count(stdout, "found: cost 4"); got != 1 {
		t.Errorf("runs reported = %d, want 1\n%s", got, stdout)
	}
	if !strings.Contains(stdout, "replay: 3 edits, 0 resets, 1 runs (1 found, 0 not found, 0 aborted)") {
		t.Errorf("summary missing from output:\n%s", stdout)
	}
}

func TestReplay_Errors(t *testing.T) {
	tests := []struct {
		name     string
		script   string
		wantCode int
	}{
		{name: "unknown command", script: "teleport 1,1\n", wantCode: exitInvalid},
		{name: "run without endpoints", script: "start 0,0\nrun\n", wantCode: exitInvalid},
		{name: "barrier on end", script: "start 0,0\nend 1,1\nbarrier 1,1\n", wantCode: exitInvalid},
		{name: "last run fails", script: "start 0,0\nend 2,2\nrun\nbarrier 1,2\nbarrier 2,1\nrun\n", wantCode: exitNotFound},
		{name: "reset then edits only", script: "start 0,0\nreset\nclick 1,1\n", wantCode: exitFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			script := writeFile(t, "script.txt", tt.script)
			code, stdout, stderr := execute(t, t.Context(), "replay", "--size", "3", script)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d\nstdout: %s\nstderr: %s", code, tt.wantCode, stdout, stderr)
			}
		})
	}
}

func TestRender(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grid.png")
	code, stdout, stderr := execute(t, t.Context(), "render", "--size", "6", "--start", "0,0", "--end", "5,5", "--solve", "--cell-size", "4", "-o", out)
	if code != exitFound {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr)
	}
	if strings.TrimSpace(stdout) != out {
		t.Errorf("stdout = %q", stdout)
	}
	if info, err := os.Stat(out); err != nil || info.Size() == 0 {
		t.Errorf("png not written: %v", err)
	}
}

func TestConfig(t *testing.T) {
	bad := writeFile(t, "bad.yaml", "observer: carrier-pigeon\n")
	if code, _, _ := execute(t, t.Context(), "--config", bad, "search"); code != exitInvalid {
		t.Errorf("bad observer exit code = %d", code)
	}

	good := writeFile(t, "good.yaml", "grid:\n  dimension: 4\nobserver: noop\n")
	code, stdout, _ := execute(t, t.Context(), "--config", good, "search", "--start", "0,0", "--end", "3,3")
	if code != exitFound || !strings.Contains(stdout, "found: cost 6") {
		t.Errorf("config dimension not applied: code %d, stdout %q", code, stdout)
	}

	if code, _, _ := execute(t, t.Context(), "--log-level", "loud", "search"); code != exitInvalid {
		t.Errorf("bad log level exit code = %d", code)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, exitFound},
		{&exitError{code: exitNotFound, err: errNoPath}, exitNotFound},
		{fmt.Errorf("wrapped: %w", &exitError{code: exitInvalid, err: errNoPath}), exitInvalid},
		{fmt.Errorf("%w: %w", pathfinder.ErrAborted, context.Canceled), exitNotFound},
		{errors.New("anything else"), exitInvalid},
	}
	for _, tt := range tests {
		if got := exitCode(tt.err); got != tt.want {
			t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
