package lander

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/core"
)

// Advance moves the simulation forward by one tick.
//
// While descending, gravity is applied before the position update. Ground
// contact is checked before fuel so that a touchdown on the last drop of fuel
// still counts as a landing; running dry only crashes an airborne vehicle.
func (g *Game) Advance() core.StepResult {
	v := &g.vehicle

	if v.Phase == PhaseDescending {
		g.ticks++
		v.VelocityY += v.Gravity
		v.Position.Y += v.VelocityY

		groundY := g.cfg.World.GroundY
		if v.Position.Y >= groundY {
			v.Position.Y = groundY
			v.VelocityY = 0
			if g.onTarget(v.Position.X) {
				v.Phase = PhaseLanded
			} else {
				v.Phase = PhaseCrashed
				g.cause = CauseOffTarget
			}
		} else if v.Fuel <= 0 {
			v.Phase = PhaseCrashed
			g.cause = CauseOutOfFuel
		}
	}

	return core.StepResult{
		State: g.State(),
		Done:  v.Phase.Terminal(),
	}
}

// onTarget reports whether x is inside the landing band, edges included.
func (g *Game) onTarget(x float64) bool {
	return math.Abs(x-g.cfg.World.LandingX) <= g.cfg.World.LandingTolerance
}

// MoveHorizontal steps the vehicle sideways. It works in every phase,
// including on the launch pad. A move is only made while the vehicle is not
// already at the edge it moves toward; the position is kept inside the play
// area and fuel never drops below zero.
func (g *Game) MoveHorizontal(dir Direction) {
	v := &g.vehicle
	w := g.cfg.World
	ctl := g.cfg.Controls

	switch dir {
	case Left:
		if v.Position.X <= 0 {
			return
		}
		v.Position.X = math.Max(v.Position.X-ctl.Step, 0)
	case Right:
		if v.Position.X >= w.PlayWidth {
			return
		}
		v.Position.X = math.Min(v.Position.X+ctl.Step, w.PlayWidth)
	default:
		return
	}
	g.burn(ctl.MoveCost)
}

// Thrust launches the vehicle from the pad, or fires the engine while
// descending. The engine only fires with at least the thrust gate in the
// tank; otherwise nothing happens.
func (g *Game) Thrust() {
	v := &g.vehicle
	ctl := g.cfg.Controls

	switch v.Phase {
	case PhaseAwaitingLaunch:
		v.Phase = PhaseDescending
	case PhaseDescending:
		if v.Fuel < ctl.ThrustGate {
			return
		}
		v.VelocityY -= ctl.ThrustImpulse
		g.burn(ctl.ThrustCost)
	}
}

func (g *Game) burn(amount float64) {
	g.vehicle.Fuel = math.Max(g.vehicle.Fuel-amount, 0)
}
