// Package tui provides the Bubble Tea integration for the lander.
// It handles the terminal UI loop, input mapping, and flight recording.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
// Flight identifies the tick loop that sent it; ticks from another flight are dropped.
type TickMsg struct {
	Time   time.Time
	Flight uint64
}

// flightSeq numbers tick loops across every model in the process.
var flightSeq atomic.Uint64

func nextFlight() uint64 {
	return flightSeq.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, flight uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Flight: flight}
	})
}
