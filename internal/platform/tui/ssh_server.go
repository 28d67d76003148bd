// Package tui provides terminal UI components including SSH server support via Wish.
package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/metrics"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.lander/host_key.
	HostKeyPath string

	// DBPath is the path to the flight log database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MetricsAddress enables the Prometheus endpoint when set (e.g., ":9090").
	MetricsAddress string

	// GameID selects the registered game served to every session.
	GameID string

	// ConfigPath is an optional custom game config file.
	ConfigPath string

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.lander/flights.db",
		IdleTimeout: 30 * time.Minute,
		GameID:      "lander",
		TickRate:    60,
	}
}

// SSHServer wraps a Wish SSH server for the lander.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	store   *storage.Store
	metrics *metrics.Metrics
	http    *http.Server
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lander-ssh",
		})
	}

	if !registry.Exists(cfg.GameID) {
		return nil, fmt.Errorf("unknown game: %s", cfg.GameID)
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open flight log", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	if cfg.MetricsAddress != "" {
		srv.metrics = metrics.New()
		srv.http = srv.metrics.NewServer(cfg.MetricsAddress)
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".lander", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// Create Wish server options
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	// Create the server
	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
	}

	rec := &Recorder{
		Store:   s.store,
		Metrics: s.metrics,
		Logger:  s.logger.With("session", sessionID(sshSession)),
		Pilot:   sshSession.User(),
	}

	// Create session model that handles menu + flight flow
	model := NewSessionModel(s.config.GameID, core.GameOptions{ConfigPath: s.config.ConfigPath}, rec, cfg)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// sessionIDKey stores the session UUID in the SSH context.
type sessionIDKey struct{}

func sessionID(sshSession ssh.Session) string {
	if id, ok := sshSession.Context().Value(sessionIDKey{}).(string); ok {
		return id
	}
	return ""
}

// loggingMiddleware tags each session with an ID and logs session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		id := uuid.NewString()
		sshSession.Context().SetValue(sessionIDKey{}, id)

		s.metrics.SessionStarted()
		s.logger.Info("session started",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)

		next(sshSession)

		s.metrics.SessionEnded()
		s.logger.Info("session ended",
			"session", id,
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	if s.http != nil {
		s.logger.Info("serving metrics", "address", s.config.MetricsAddress)
		go func() {
			if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				s.logger.Error("metrics server error", "error", err)
			}
		}()
	}

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if s.http != nil {
		errs = append(errs, s.http.Shutdown(ctx))
	}
	errs = append(errs, s.server.Shutdown(ctx))

	if s.store != nil {
		errs = append(errs, s.store.Close())
	}

	return errors.Join(errs...)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionScreen is the screen a session is currently showing.
type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenFlightLog
	screenFlight
)

// SessionModel manages the full session flow: menu -> flight or flight log -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	gameID    string
	opts      core.GameOptions
	recorder  *Recorder
	config    core.RuntimeConfig
	current   sessionScreen
	menu      MenuModel
	flightLog FlightLogModel
	flight    Model
	quitting  bool
}

// NewSessionModel creates a new session model starting at the menu.
func NewSessionModel(gameID string, opts core.GameOptions, rec *Recorder, cfg core.RuntimeConfig) SessionModel {
	return SessionModel{
		gameID:   gameID,
		opts:     opts,
		recorder: rec,
		config:   cfg,
		menu:     NewMenuModel(rec.Store, gameID, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.current {
	case screenFlight:
		return m.updateFlight(msg)
	case screenFlightLog:
		return m.updateFlightLog(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	// The menu quits its own program; inside a session the quit is dropped
	switch selected.Kind {
	case MenuItemFlightLog:
		m.flightLog = NewFlightLogModel(m.recorder.Store, m.gameID, m.config.ScreenW, m.config.ScreenH)
		m.current = screenFlightLog
		return m, m.flightLog.Init()

	default:
		opts := m.opts
		opts.Difficulty = string(selected.Difficulty)
		game, err := registry.Create(m.gameID, opts)
		if err == nil {
			err = game.Reset(m.config)
		}
		if err != nil {
			return m.toMenu(fmt.Sprintf("Cannot start flight: %v", err)), nil
		}

		m.flight = NewModel(game, m.recorder, m.config)
		m.current = screenFlight
		return m, m.flight.Init()
	}
}

// updateFlightLog handles updates when the flight log is open.
func (m SessionModel) updateFlightLog(msg tea.Msg) (tea.Model, tea.Cmd) {
	newLog, cmd := m.flightLog.Update(msg)
	if logModel, ok := newLog.(FlightLogModel); ok {
		m.flightLog = logModel
	}

	if m.flightLog.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.flightLog.IsGoingBack() {
		return m.toMenu(""), nil
	}

	return m, cmd
}

// updateFlight handles updates during a flight.
func (m SessionModel) updateFlight(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.flight.Update(msg)
	if flightModel, ok := newModel.(Model); ok {
		m.flight = flightModel
	}

	if m.flight.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.flight.BackToMenu() {
		notice := ""
		if err := m.flight.RecordErr(); err != nil {
			notice = fmt.Sprintf("Flight not saved: %v", err)
		}
		return m.toMenu(notice), nil
	}

	return m, cmd
}

// toMenu returns to a fresh menu so the best landing is up to date.
func (m SessionModel) toMenu(notice string) SessionModel {
	m.current = screenMenu
	m.menu = NewMenuModel(m.recorder.Store, m.gameID, m.config).WithNotice(notice)
	return m
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.current {
	case screenFlight:
		return m.flight.View()
	case screenFlightLog:
		return m.flightLog.View()
	default:
		return m.menu.View()
	}
}
