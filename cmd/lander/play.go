package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Process exit codes for a single flight.
const (
	exitLanded  = 0
	exitError   = 1
	exitCrashed = 2
	exitAborted = 130 // quit before the flight ended
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Fly a single flight",
	Long: `Start a single flight. The program exits once the vehicle lands or crashes.

Controls:
  W/Up/Space  - Launch, then fire the engine
  A/Left      - Step left
  D/Right     - Step right
  Ctrl+S      - Save a screenshot
  Q/Ctrl+C    - Quit

Exit status:
  0    landed inside the landing zone
  2    crashed (off target or out of fuel)
  130  quit before the flight ended
  1    error

Examples:
  lander play
  lander play --difficulty easy
  lander play --config ./my-lander.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, _ []string) {
	game, err := registry.Create(lander.ID, gameOptions())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(exitError)
	}

	// Open flight log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open flight log", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	rec := &tui.Recorder{Store: store, Pilot: pilotName()}
	res, runErr := tui.Run(game, rec, runtimeConfig())

	if runErr != nil {
		closeStore(store)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(exitError)
	}

	// The recorder stays quiet during the flight so it cannot draw over the screen
	logFlight(store, res)
	closeStore(store)

	os.Exit(exitCode(res.State))
}

// logFlight logs the outcome of a flight, reading it back from the flight log when it was saved.
func logFlight(store *storage.Store, res tui.FlightResult) {
	if res.RecordErr != nil {
		logger.Warn("could not save flight", "error", res.RecordErr)
	}

	state := res.State
	if !state.GameOver {
		return
	}

	fields := []any{
		"status", state.Status,
		"cause", state.Detail,
		"fuel", fmt.Sprintf("%.2f", state.FuelLeft),
		"ticks", state.Ticks,
		"score", state.Score,
	}
	if store != nil && res.Flight != nil && res.Flight.ID != "" {
		saved, err := store.FlightByID(res.Flight.ID)
		switch {
		case err != nil:
			logger.Warn("could not read saved flight", "id", res.Flight.ID, "error", err)
		case saved != nil:
			fields = append(fields, "id", saved.ID, "logged", saved.CreatedAt.Format(time.DateTime))
		}
	}
	logger.Info("flight finished", fields...)
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}

// exitCode maps the final game state to the process exit status.
func exitCode(state core.GameState) int {
	switch {
	case !state.GameOver:
		return exitAborted
	case state.Won:
		return exitLanded
	default:
		return exitCrashed
	}
}
