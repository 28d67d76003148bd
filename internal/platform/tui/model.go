package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// finishMsg ends the program after the final frame has been shown.
type finishMsg struct{}

// Model is the Bubble Tea model for a single flight.
//
// Key presses are applied to the game as they arrive, before the next tick.
// Once the game reports Done the model stops ticking; in exit-on-finish mode
// it then quits, otherwise it waits for restart, back or quit.
type Model struct {
	game      registry.Game
	screen    *core.Screen
	recorder  *Recorder
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	gameState core.GameState
	flightID  uint64 // tags this flight's ticks

	exitOnFinish bool
	hold         time.Duration // time the final frame stays up before quitting

	recorded   bool
	flight     *storage.Flight // set once the finished flight is recorded
	recordErr  error
	err        error
	quitting   bool
	backToMenu bool
}

// NewModel creates a new Bubble Tea model for a game that has already been Reset.
func NewModel(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) Model {
	return Model{
		game:      game,
		screen:    core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:  rec,
		config:    cfg,
		keyMapper: NewKeyMapper(),
		gameState: game.State(),
		flightID:  nextFlight(),
	}
}

// ExitOnFinish makes the model quit once the flight ends, after showing the
// final frame for hold.
func (m Model) ExitOnFinish(hold time.Duration) Model {
	m.exitOnFinish = true
	m.hold = hold
	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate, m.flightID)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		if msg.Flight != m.flightID {
			return m, nil
		}
		return m.handleTick()

	case finishMsg:
		return m, tea.Quit
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.IsScreenshot(msg) {
		//nolint:errcheck // Best-effort save, game continues regardless
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case action.IsFlightControl():
		if !m.gameState.GameOver {
			m.game.HandleInput(action)
			m.gameState = m.game.State()
		}

	case action == core.ActionRestart:
		if m.gameState.GameOver && !m.exitOnFinish {
			return m.restart()
		}

	case action == core.ActionBack:
		if !m.exitOnFinish {
			m.backToMenu = true
		}
	}

	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.gameState.GameOver {
		return m, nil
	}

	result := m.game.Advance()
	m.gameState = result.State

	if !result.Done {
		return m, tickCmd(m.config.TickRate, m.flightID)
	}

	// The flight is over: record it once and stop ticking
	if !m.recorded {
		f, err := m.recorder.Record(m.game.ID(), m.gameState)
		m.recorded = true
		m.flight = &f
		m.recordErr = err
	}

	if !m.exitOnFinish {
		return m, nil
	}
	if m.hold <= 0 {
		return m, tea.Quit
	}
	return m, tea.Tick(m.hold, func(time.Time) tea.Msg { return finishMsg{} })
}

// restart places a fresh vehicle on the launch pad and resumes ticking.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if err := m.game.Reset(m.config); err != nil {
		m.err = err
		m.quitting = true
		return m, tea.Quit
	}
	m.gameState = m.game.State()
	m.flightID = nextFlight()
	m.recorded = false
	m.flight = nil
	m.recordErr = nil
	return m, tickCmd(m.config.TickRate, m.flightID)
}

// saveScreenshot saves the current screen to ~/.lander/screenshots.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".lander", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last known game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Flight returns the recorded flight, or nil while the flight is running.
func (m Model) Flight() *storage.Flight {
	return m.flight
}

// RecordErr returns the error from saving the finished flight, if any.
func (m Model) RecordErr() error {
	return m.recordErr
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// FlightResult is what Run reports about a flight once the program exits.
type FlightResult struct {
	State     core.GameState
	Flight    *storage.Flight // nil unless the flight finished
	RecordErr error           // saving the finished flight failed
}

// Run resets the game, flies it until it finishes or the user quits,
// and returns the final game state with the recorded flight.
func Run(game registry.Game, rec *Recorder, cfg core.RuntimeConfig) (FlightResult, error) {
	if err := game.Reset(cfg); err != nil {
		return FlightResult{}, err
	}

	model := NewModel(game, rec, cfg).ExitOnFinish(2 * time.Second)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return FlightResult{State: game.State()}, err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return FlightResult{State: game.State()}, nil
	}
	return m.Result(), m.Err()
}

// Result returns the flight as it stands.
func (m Model) Result() FlightResult {
	return FlightResult{State: m.gameState, Flight: m.flight, RecordErr: m.recordErr}
}
