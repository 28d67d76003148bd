package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/metrics"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

// Recorder writes finished flights to the flight log, the server metrics
// and the logger. Every field is optional.
type Recorder struct {
	Store   *storage.Store
	Metrics *metrics.Metrics
	Logger  *log.Logger
	Pilot   string
}

// Record stores a finished flight. It is a no-op for unfinished runs.
// Storage failures are logged and returned; the flight itself is kept in memory.
func (r *Recorder) Record(gameID string, st core.GameState) (storage.Flight, error) {
	f := storage.Flight{
		GameID:     gameID,
		Pilot:      r.pilot(),
		Outcome:    storage.OutcomeCrashed,
		Cause:      st.Detail,
		FuelLeft:   st.FuelLeft,
		Ticks:      st.Ticks,
		TouchdownX: st.X,
		Score:      st.Score,
	}
	if r == nil || !st.GameOver {
		return f, nil
	}
	if st.Won {
		f.Outcome = storage.OutcomeLanded
	}

	r.Metrics.FlightFinished(f.Outcome, f.Ticks)

	var err error
	if r.Store != nil {
		f.ID, err = r.Store.SaveFlight(f)
	}

	if r.Logger != nil {
		if err != nil {
			r.Logger.Error("could not save flight", "pilot", f.Pilot, "error", err)
		}
		r.Logger.Info("flight finished",
			"pilot", f.Pilot,
			"outcome", f.Outcome,
			"cause", f.Cause,
			"fuel", f.FuelLeft,
			"ticks", f.Ticks,
			"score", f.Score,
		)
	}

	return f, err
}

func (r *Recorder) pilot() string {
	if r == nil || r.Pilot == "" {
		return "anonymous"
	}
	return r.Pilot
}
