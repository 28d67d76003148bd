package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/config"
)

var difficultiesCmd = &cobra.Command{
	Use:   "difficulties",
	Short: "List difficulty presets",
	Long:  `Shows the difficulty presets and the fuel and landing zone they give with the current config.`,
	Args:  cobra.NoArgs,
	Run:   runDifficulties,
}

func runDifficulties(_ *cobra.Command, _ []string) {
	base, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()

	// Print header
	fmt.Printf("  %-8s  %8s  %9s  %s\n", "Preset", "Fuel", "Pad +/-", "Description")
	fmt.Printf("  %-8s  %8s  %9s  %s\n", "------", "----", "-------", "-----------")

	for _, p := range config.Presets {
		cfg := base
		config.ApplyLanderPreset(&cfg, p)
		fmt.Printf("  %-8s  %8.2f  %9.2f  %s\n", p, cfg.Vehicle.Fuel, cfg.World.LandingTolerance, p.Description())
	}

	fmt.Println()
	fmt.Println("Run 'lander play --difficulty <preset>' to fly one.")
}
