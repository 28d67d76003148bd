package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-lander/internal/lander"
	"github.com/vovakirdan/tui-lander/internal/platform/tui"
	"github.com/vovakirdan/tui-lander/internal/registry"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

var (
	flagRecent bool
	flagLimit  int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the flight log",
	Long: `Display the best landings, or the most recent flights with --recent.

Examples:
  lander scores
  lander scores --recent
  lander scores --limit 25
  lander scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent flights, crashes included")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of flights to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded flight")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening flight log: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := clearFlightLog(os.Stdout, store); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing flight log: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		return
	}

	if err := printFlightLog(os.Stdout, store, flagRecent, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading flight log: %v\n", err)
		store.Close()
		os.Exit(1)
	}
}

// clearFlightLog deletes the recorded flights and reports how many were removed.
func clearFlightLog(w io.Writer, store *storage.Store) error {
	stats, err := store.Stats(lander.ID)
	if err != nil {
		return err
	}
	if err := store.ClearFlights(lander.ID); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %d flights.\n", stats.Flights)
	return nil
}

// printFlightLog writes the flight log as a plain text table.
func printFlightLog(w io.Writer, store *storage.Store, recent bool, limit int) error {
	title := "Best landings"
	flights, err := store.TopFlights(lander.ID, limit)
	if recent {
		title = "Recent flights"
		flights, err = store.RecentFlights(lander.ID, limit)
	}
	if err != nil {
		return err
	}

	stats, err := store.Stats(lander.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "%s - %s\n", title, registry.Title(lander.ID))
	fmt.Fprintln(w, tui.FormatStats(stats))
	fmt.Fprintln(w)

	if len(flights) == 0 {
		fmt.Fprintln(w, "No flights recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'lander play' to make the first one!")
		return nil
	}

	// Print header
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %6s  %7s  %5s  %s\n", "#", "Pilot", "Outcome", "Score", "Fuel", "Ticks", "Date")
	fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %6s  %7s  %5s  %s\n", "-", "-----", "-------", "-----", "----", "-----", "----")

	for _, row := range tui.FlightRows(flights) {
		fmt.Fprintf(w, "  %-4s  %-12s  %-8s  %6s  %7s  %5s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5], row[6])
	}

	return nil
}
