// Package lander implements a lunar lander simulation.
// The player releases the vehicle from the launch pad, steers it sideways
// and fires the engine to set it down inside the landing zone before the
// fuel runs out.
package lander

import (
	"math"

	"github.com/vovakirdan/tui-lander/internal/config"
	"github.com/vovakirdan/tui-lander/internal/core"
	"github.com/vovakirdan/tui-lander/internal/registry"
)

// ID is the registry and storage identifier of the game.
const ID = "lander"

// Game owns the vehicle and advances it one tick at a time.
// It is driven by a single run loop and is not safe for concurrent use.
type Game struct {
	opts    core.GameOptions
	cfg     config.LanderConfig
	fixed   bool // cfg was supplied directly and is not reloaded on Reset
	runtime core.RuntimeConfig

	vehicle Vehicle
	cause   Cause
	ticks   int // airborne ticks since launch
}

// New creates a game that loads its configuration on Reset.
func New(opts core.GameOptions) *Game {
	return &Game{opts: opts, runtime: core.DefaultConfig()}
}

// NewWithConfig creates a game with a fixed configuration, ready to launch.
// Returns an error wrapping config.ErrInvalidConfig for malformed worlds.
func NewWithConfig(cfg config.LanderConfig) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{cfg: cfg, fixed: true, runtime: core.DefaultConfig()}
	g.start()
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lunar Lander"
}

// Reset loads the configuration and places a fresh vehicle on the launch pad.
func (g *Game) Reset(runtime core.RuntimeConfig) error {
	g.runtime = runtime

	if !g.fixed {
		cfg, err := config.Load(g.opts.ConfigPath)
		if err != nil {
			return err
		}
		preset, err := config.ParsePreset(g.opts.Difficulty)
		if err != nil {
			return err
		}
		config.ApplyLanderPreset(&cfg, preset)
		if err := cfg.Validate(); err != nil {
			return err
		}
		g.cfg = cfg
	}

	g.start()
	return nil
}

// start puts the vehicle at its initial state.
func (g *Game) start() {
	g.vehicle = Vehicle{
		Position: core.Vec2{X: g.cfg.World.LaunchX, Y: g.cfg.StartY()},
		Fuel:     g.cfg.Vehicle.Fuel,
		Gravity:  g.cfg.Vehicle.Gravity,
		Phase:    PhaseAwaitingLaunch,
	}
	g.cause = CauseNone
	g.ticks = 0
}

// HandleInput applies a single key-down action immediately.
// Actions that are not flight controls are ignored.
func (g *Game) HandleInput(a core.Action) {
	switch a {
	case core.ActionMoveLeft:
		g.MoveHorizontal(Left)
	case core.ActionMoveRight:
		g.MoveHorizontal(Right)
	case core.ActionThrust:
		g.Thrust()
	}
}

// Vehicle returns a copy of the vehicle state.
func (g *Game) Vehicle() Vehicle {
	return g.vehicle
}

// Config returns the world configuration in use.
func (g *Game) Config() config.LanderConfig {
	return g.cfg
}

// Phase returns the current vehicle phase.
func (g *Game) Phase() Phase {
	return g.vehicle.Phase
}

// Status returns the status reported for the current phase.
func (g *Game) Status() Status {
	return g.vehicle.Phase.Status()
}

// Cause returns why the flight crashed, or CauseNone.
func (g *Game) Cause() Cause {
	return g.cause
}

// Ticks returns the number of airborne ticks since launch.
func (g *Game) Ticks() int {
	return g.ticks
}

// Score rates a finished flight. Crashes and unfinished flights score 0.
// A landing earns ten points per unit of fuel left plus up to 100 points
// for touching down close to the center of the landing zone.
func (g *Game) Score() int {
	if g.vehicle.Phase != PhaseLanded {
		return 0
	}
	offset := math.Abs(g.vehicle.Position.X - g.cfg.World.LandingX)
	precision := 1 - offset/g.cfg.World.LandingTolerance
	return int(math.Round(g.vehicle.Fuel*10)) + int(math.Round(precision*100))
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.Score(),
		GameOver: g.vehicle.Phase.Terminal(),
		Won:      g.vehicle.Phase == PhaseLanded,
		Status:   g.Status().String(),
		Detail:   g.cause.String(),
		FuelLeft: g.vehicle.Fuel,
		Ticks:    g.ticks,
		X:        g.vehicle.Position.X,
	}
}

// Register the game with the registry
func init() {
	registry.Register(ID, func(opts core.GameOptions) registry.Game {
		return New(opts)
	})
}
