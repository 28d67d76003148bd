package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the lander with a difficulty menu",
	Long: `Start the lander in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a flight ends, you return to the menu to fly again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  lander menu
  lander menu --fps 30
  lander menu --db ./flights.db`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	// Open flight log
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open flight log", "error", err)
		store = nil
	}

	cfg := runtimeConfig()
	rec := &tui.Recorder{Store: store, Pilot: pilotName()}
	notice := ""

	// Menu loop
	for {
		// Show menu and get selection
		menuResult, err := tui.RunMenu(store, lander.ID, cfg, notice)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}
		notice = ""

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsFlightLog {
			goBack, logErr := tui.RunFlightLog(store, lander.ID, cfg.ScreenW, cfg.ScreenH)
			if logErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", logErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from flight log
		}

		opts := gameOptions()
		opts.Difficulty = string(menuResult.Difficulty)
		game, err := registry.Create(lander.ID, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			break
		}

		res, err := tui.Run(game, rec, cfg)
		if err != nil {
			notice = fmt.Sprintf("Cannot start flight: %v", err)
			continue
		}
		if res.RecordErr != nil {
			notice = fmt.Sprintf("Flight not saved: %v", res.RecordErr)
		}
		if res.State.GameOver {
			logger.Debug("flight finished", "difficulty", opts.Difficulty, "status", res.State.Status, "score", res.State.Score)
		}

		// Loop back to menu
	}

	// Cleanup
	if store != nil {
		store.Close()
	}
}
