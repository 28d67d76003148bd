package lander

import "github.com/vovakirdan/tui-lander/internal/core"

// Phase is the lifecycle stage of the vehicle.
// Phases only move forward: AwaitingLaunch -> Descending -> Landed | Crashed.
type Phase int

const (
	PhaseAwaitingLaunch Phase = iota
	PhaseDescending
	PhaseLanded
	PhaseCrashed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAwaitingLaunch:
		return "AwaitingLaunch"
	case PhaseDescending:
		return "Descending"
	case PhaseLanded:
		return "Landed"
	case PhaseCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == PhaseLanded || p == PhaseCrashed
}

// Status is the outcome reported to the run loop after every tick.
type Status int

const (
	StatusAwaitingLaunch Status = iota
	StatusInFlight
	StatusLanded
	StatusCrashed
)

// String returns a short human-readable label.
func (s Status) String() string {
	switch s {
	case StatusAwaitingLaunch:
		return "awaiting launch"
	case StatusInFlight:
		return "in flight"
	case StatusLanded:
		return "landed"
	case StatusCrashed:
		return "crashed"
	default:
		return "unknown"
	}
}

// Status maps a phase to the status reported for it.
func (p Phase) Status() Status {
	switch p {
	case PhaseDescending:
		return StatusInFlight
	case PhaseLanded:
		return StatusLanded
	case PhaseCrashed:
		return StatusCrashed
	default:
		return StatusAwaitingLaunch
	}
}

// Cause explains why a flight crashed.
type Cause int

const (
	CauseNone Cause = iota
	CauseOffTarget
	CauseOutOfFuel
)

// String returns a short description of the cause.
func (c Cause) String() string {
	switch c {
	case CauseOffTarget:
		return "touched down outside the landing zone"
	case CauseOutOfFuel:
		return "out of fuel"
	default:
		return ""
	}
}

// Direction selects a horizontal move.
type Direction int

const (
	Left Direction = iota
	Right
)

// Vehicle is the lander's physical state.
type Vehicle struct {
	Position  core.Vec2 // y grows downward
	VelocityY float64   // positive = moving down
	Fuel      float64
	Gravity   float64
	Phase     Phase
}

// Altitude returns the height above the given ground level.
func (v Vehicle) Altitude(groundY float64) float64 {
	return groundY - v.Position.Y
}
