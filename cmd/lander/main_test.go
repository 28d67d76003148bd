package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name  string
		state core.GameState
		want  int
	}{
		{"landed", core.GameState{GameOver: true, Won: true}, 0},
		{"crashed", core.GameState{GameOver: true}, 2},
		{"aborted", core.GameState{Status: "in flight"}, 130},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.state); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPort(t *testing.T) {
	tests := map[string]string{
		":23234":       "23234",
		"0.0.0.0:2222": "2222",
		"localhost":    "localhost",
		"[::1]:23234":  "23234",
	}
	for addr, want := range tests {
		if got := port(addr); got != want {
			t.Errorf("port(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestEffectiveConfigAppliesPreset(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := effectiveConfig("", "easy")
	if err != nil {
		t.Fatalf("effectiveConfig() failed: %v", err)
	}
	if !strings.Contains(string(out), "fuel: 150") {
		t.Errorf("easy config should carry 150 fuel:\n%s", out)
	}

	if _, err := effectiveConfig("", "impossible"); err == nil {
		t.Error("effectiveConfig() should reject unknown presets")
	}
}

func TestPrintFlightLog(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	if err := printFlightLog(&buf, store, false, 10); err != nil {
		t.Fatalf("printFlightLog() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "No flights recorded yet.") {
		t.Errorf("empty log output:\n%s", buf.String())
	}

	_, _ = store.SaveFlight(storage.Flight{GameID: "lander", Pilot: "neil", Outcome: storage.OutcomeLanded, FuelLeft: 100, Score: 1100})
	_, _ = store.SaveFlight(storage.Flight{GameID: "lander", Pilot: "buzz", Outcome: storage.OutcomeCrashed, Cause: "out of fuel"})

	buf.Reset()
	if err := printFlightLog(&buf, store, false, 10); err != nil {
		t.Fatalf("printFlightLog() failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "neil") || strings.Contains(out, "buzz") {
		t.Errorf("best landings should list only landings:\n%s", out)
	}

	buf.Reset()
	if err := printFlightLog(&buf, store, true, 10); err != nil {
		t.Fatalf("printFlightLog() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "buzz") {
		t.Errorf("recent flights should include crashes:\n%s", buf.String())
	}
}

func TestClearFlightLog(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	_, _ = store.SaveFlight(storage.Flight{GameID: "lander", Pilot: "neil", Outcome: storage.OutcomeLanded, Score: 1100})
	_, _ = store.SaveFlight(storage.Flight{GameID: "lander", Pilot: "buzz", Outcome: storage.OutcomeCrashed})

	var buf bytes.Buffer
	if err := clearFlightLog(&buf, store); err != nil {
		t.Fatalf("clearFlightLog() failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 2 flights.") {
		t.Errorf("clear output = %q", buf.String())
	}

	flights, err := store.RecentFlights("lander", 10)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 0 {
		t.Errorf("expected empty log after clear, got %d flights", len(flights))
	}
}

func TestLogFlight(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	defer store.Close()

	var buf bytes.Buffer
	logger = log.New(&buf)
	t.Cleanup(func() { logger = nil })

	f := storage.Flight{GameID: "lander", Pilot: "neil", Outcome: storage.OutcomeLanded, Score: 1100}
	f.ID, err = store.SaveFlight(f)
	if err != nil {
		t.Fatalf("SaveFlight() failed: %v", err)
	}

	state := core.GameState{GameOver: true, Won: true, Status: "landed", Score: 1100}
	logFlight(store, tui.FlightResult{State: state, Flight: &f})
	if out := buf.String(); !strings.Contains(out, "flight finished") || !strings.Contains(out, f.ID) {
		t.Errorf("log should name the saved flight:\n%s", out)
	}

	buf.Reset()
	logFlight(nil, tui.FlightResult{State: state, RecordErr: errors.New("disk full")})
	out := buf.String()
	if !strings.Contains(out, "could not save flight") || !strings.Contains(out, "disk full") {
		t.Errorf("log should report the save error:\n%s", out)
	}
	if !strings.Contains(out, "flight finished") {
		t.Errorf("outcome should still be logged:\n%s", out)
	}
}
