package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

func newLander(t *testing.T, mutate func(*config.LanderConfig)) *lander.Game {
	t.Helper()
	cfg := config.DefaultLanderConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := lander.NewWithConfig(cfg)
	if err != nil {
		t.Fatalf("NewWithConfig() failed: %v", err)
	}
	return g
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "flights.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update() returned %T, want Model", next)
	}
	return model, cmd
}

// tickFor returns a tick from the model's own tick loop.
func tickFor(m Model) TickMsg {
	return TickMsg{Flight: m.flightID}
}

// flyUntilDone sends ticks until the flight ends and returns the last command.
func flyUntilDone(t *testing.T, m Model) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for range 2000 {
		m, cmd = update(t, m, tickFor(m))
		if m.State().GameOver {
			return m, cmd
		}
		if cmd == nil {
			t.Fatal("tick loop stopped before the flight ended")
		}
	}
	t.Fatal("flight did not finish")
	return m, nil
}

func TestModelKeysApplyImmediately(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())

	m, _ = update(t, m, runeKey('d'))
	if x := g.Vehicle().Position.X; x != 115 {
		t.Errorf("after d, x = %v, want 115", x)
	}

	m, _ = update(t, m, runeKey('w'))
	if g.Phase() != lander.PhaseDescending {
		t.Errorf("after w, phase = %v, want descending", g.Phase())
	}
	if m.State().Status != "in flight" {
		t.Errorf("State().Status = %q, want %q", m.State().Status, "in flight")
	}
}

func TestModelExitsWhenFlightEnds(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig()).ExitOnFinish(0)

	m, _ = update(t, m, runeKey('w'))
	m, cmd := flyUntilDone(t, m)

	if cmd == nil {
		t.Fatal("expected quit command after the flight ended")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg after the flight ended")
	}
	if m.State().Won {
		t.Error("flight from the launch pad should not land")
	}
	if m.State().Detail != lander.CauseOffTarget.String() {
		t.Errorf("Detail = %q, want %q", m.State().Detail, lander.CauseOffTarget.String())
	}
}

func TestModelHoldsFinalFrame(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig()).ExitOnFinish(1)

	m, _ = update(t, m, runeKey('w'))
	m, cmd := flyUntilDone(t, m)
	if cmd == nil {
		t.Fatal("expected hold command")
	}
	if _, ok := cmd().(finishMsg); !ok {
		t.Fatal("hold command should deliver finishMsg")
	}

	_, cmd = update(t, m, finishMsg{})
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("finishMsg should quit")
	}
}

func TestModelStopsTickingAndRecordsOnce(t *testing.T) {
	store := openStore(t)
	rec := &Recorder{Store: store, Pilot: "neil"}

	g := newLander(t, func(c *config.LanderConfig) { c.World.LaunchX = c.World.LandingX })
	m := NewModel(g, rec, core.DefaultConfig())

	m, _ = update(t, m, runeKey('w'))
	m, cmd := flyUntilDone(t, m)
	if cmd != nil {
		t.Error("tick loop should stop once the flight ended")
	}

	// Further ticks and flight keys change nothing
	m, cmd = update(t, m, tickFor(m))
	if cmd != nil {
		t.Error("tick after the flight ended should not schedule another")
	}
	m, _ = update(t, m, runeKey('a'))
	if x := g.Vehicle().Position.X; x != 500 {
		t.Errorf("move after landing changed x to %v", x)
	}

	f := m.Flight()
	if f == nil {
		t.Fatal("Flight() should be set after the flight ended")
	}
	if !f.Landed() || f.Pilot != "neil" || f.ID == "" {
		t.Errorf("Flight() = %+v", *f)
	}

	flights, err := store.RecentFlights(lander.ID, 10)
	if err != nil {
		t.Fatalf("RecentFlights() failed: %v", err)
	}
	if len(flights) != 1 {
		t.Fatalf("expected 1 stored flight, got %d", len(flights))
	}
	if flights[0].Score != m.State().Score || flights[0].Score != 1100 {
		t.Errorf("stored score = %d, want 1100", flights[0].Score)
	}
}

func TestModelReportsRecordError(t *testing.T) {
	store := openStore(t)
	store.Close()
	rec := &Recorder{Store: store, Pilot: "neil"}

	g := newLander(t, func(c *config.LanderConfig) { c.World.LaunchX = c.World.LandingX })
	m := NewModel(g, rec, core.DefaultConfig()).ExitOnFinish(0)

	m, _ = update(t, m, runeKey('w'))
	m, _ = flyUntilDone(t, m)

	if m.RecordErr() == nil {
		t.Fatal("RecordErr() should report the failed save")
	}
	res := m.Result()
	if res.RecordErr == nil || !res.State.Won {
		t.Errorf("Result() = %+v", res)
	}
	if res.Flight == nil || res.Flight.ID != "" {
		t.Errorf("unsaved flight should have no ID, got %+v", res.Flight)
	}
}

func TestModelDropsTicksFromOtherFlights(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())
	m, _ = update(t, m, runeKey('w'))

	m, cmd := update(t, m, TickMsg{Flight: m.flightID + 1})
	if cmd != nil || m.State().Ticks != 0 {
		t.Errorf("foreign tick advanced the flight: ticks=%d", m.State().Ticks)
	}

	m, cmd = update(t, m, tickFor(m))
	if cmd == nil || m.State().Ticks != 1 {
		t.Errorf("own tick: ticks=%d, next scheduled=%v", m.State().Ticks, cmd != nil)
	}
}

func TestModelRestart(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())

	// Restart is ignored during a flight
	m, _ = update(t, m, runeKey('w'))
	m, cmd := update(t, m, runeKey('r'))
	if cmd != nil || g.Phase() != lander.PhaseDescending {
		t.Fatal("restart should be ignored mid-flight")
	}

	m, _ = flyUntilDone(t, m)
	stale := tickFor(m)
	m, cmd = update(t, m, runeKey('r'))
	if cmd == nil {
		t.Error("restart should resume ticking")
	}
	if _, cmd = update(t, m, stale); cmd != nil {
		t.Error("tick from the previous flight should be dropped")
	}
	if g.Phase() != lander.PhaseAwaitingLaunch {
		t.Errorf("phase after restart = %v, want awaiting launch", g.Phase())
	}
	if m.Flight() != nil || m.State().GameOver {
		t.Error("restart should clear the finished flight")
	}
}

func TestModelExitOnFinishIgnoresMenuKeys(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig()).ExitOnFinish(0)

	m, _ = update(t, m, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back should be ignored when there is no menu")
	}
}

func TestModelBackAndQuit(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())

	back, _ := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !back.BackToMenu() {
		t.Error("esc should go back to the menu")
	}

	quit, cmd := update(t, m, runeKey('q'))
	if !quit.IsQuitting() {
		t.Error("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
	if quit.View() != "" {
		t.Error("View() should be empty after quitting")
	}
}

func TestModelResize(t *testing.T) {
	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.Phase() != lander.PhaseDescending {
		t.Error("resize should not reset the flight")
	}
	lines := strings.Split(m.View(), "\n")
	if len(lines) != 30 {
		t.Errorf("View() has %d lines, want 30", len(lines))
	}
}

func TestModelScreenshot(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	g := newLander(t, nil)
	m := NewModel(g, nil, core.DefaultConfig())
	update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	files, err := filepath.Glob(filepath.Join(home, ".lander", "screenshots", "lander_*.txt"))
	if err != nil || len(files) != 1 {
		t.Fatalf("expected one screenshot, got %v (%v)", files, err)
	}
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("read screenshot: %v", err)
	}
	if !strings.Contains(string(data), "Fuel: 100.00") {
		t.Error("screenshot should contain the fuel readout")
	}
}
