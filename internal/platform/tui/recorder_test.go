package tui

import (
	"testing"

	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/metrics"
	"github.com/vovakirdan/tui-lander/internal/storage"
)

func TestRecorderSkipsUnfinishedFlights(t *testing.T) {
	store := openStore(t)
	rec := &Recorder{Store: store}

	if _, err := rec.Record("lander", core.GameState{Status: "in flight"}); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	flights, _ := store.RecentFlights("lander", 10)
	if len(flights) != 0 {
		t.Errorf("unfinished flight was stored: %+v", flights)
	}
}

func TestRecorderStoresCrash(t *testing.T) {
	store := openStore(t)
	rec := &Recorder{Store: store, Metrics: metrics.New()}

	f, err := rec.Record("lander", core.GameState{
		GameOver: true,
		Status:   "crashed",
		Detail:   "out of fuel",
		FuelLeft: 0,
		Ticks:    42,
		X:        315,
	})
	if err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	if f.Outcome != storage.OutcomeCrashed || f.Pilot != "anonymous" || f.ID == "" {
		t.Errorf("Record() = %+v", f)
	}

	saved, err := store.FlightByID(f.ID)
	if err != nil || saved == nil {
		t.Fatalf("FlightByID() = %v, %v", saved, err)
	}
	if saved.Cause != "out of fuel" || saved.Ticks != 42 || saved.TouchdownX != 315 {
		t.Errorf("stored flight = %+v", *saved)
	}
}

func TestNilRecorder(t *testing.T) {
	var rec *Recorder

	f, err := rec.Record("lander", core.GameState{GameOver: true, Won: true, Score: 10})
	if err != nil {
		t.Fatalf("nil Record() failed: %v", err)
	}
	if f.ID != "" {
		t.Error("nil recorder should not assign an ID")
	}
}
