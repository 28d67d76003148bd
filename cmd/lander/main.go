// lander is a lunar lander you fly in the terminal.
//
// Usage:
//
//	lander play          - Fly a single flight
//	lander menu          - Start the menu to pick a difficulty interactively
//	lander serve         - Start SSH server for remote play
//	lander scores        - Show the flight log
//	lander config        - Print the effective configuration
//	lander difficulties  - List difficulty presets
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--db <path>           - Set database path (default: ~/.lander/flights.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard
//	--log-level <level>   - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"

	// Import the game to register it
	_ "github.com/vovakirdan/tui-lander/internal/lander"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "lander",
	Short: "Lunar Lander - set the vehicle down on the pad before the fuel runs out",
	Long: `Lunar Lander is a terminal game: release the vehicle from the launch pad,
steer it over the landing zone and fire the engine to slow the descent.

Available commands:
  play          - Fly a single flight
  menu          - Interactive difficulty menu and flight log
  serve         - Start SSH server for remote play
  scores        - View the flight log
  config        - Print the effective configuration
  difficulties  - List difficulty presets

Examples:
  lander play
  lander play --difficulty hard
  lander menu
  lander serve --ssh :2222 --metrics :9090
  lander scores --recent`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		if flagFPS <= 0 {
			return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
		}

		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "lander",
			Level:           level,
		})
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.lander/flights.db", "Path to flight log database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(difficultiesCmd)
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	return cfg
}

// gameOptions returns the options selected by the global flags.
func gameOptions() core.GameOptions {
	return core.GameOptions{
		ConfigPath: flagConfig,
		Difficulty: flagDifficulty,
	}
}

// pilotName returns the local user name for the flight log.
func pilotName() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "anonymous"
}
