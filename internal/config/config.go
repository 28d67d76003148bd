// Package config provides YAML-based configuration loading, validation and
// difficulty presets for the lander.
package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config: invalid lander configuration")

// LanderConfig contains all configuration for a lander session.
// It is immutable once a session starts.
type LanderConfig struct {
	World    WorldConfig    `yaml:"world"`
	Vehicle  VehicleConfig  `yaml:"vehicle"`
	Controls ControlsConfig `yaml:"controls"`
}

// WorldConfig defines the playfield geometry in world units.
type WorldConfig struct {
	PlayWidth        float64 `yaml:"play_width"`        // Visible width; x is bounded to [0, PlayWidth]
	ScreenHeight     float64 `yaml:"screen_height"`     // Visible height
	GroundY          float64 `yaml:"ground_y"`          // Y level of launch and landing pads
	GroundHeight     float64 `yaml:"ground_height"`     // Gap between pad level and the drawn ground
	LaunchX          float64 `yaml:"launch_x"`          // Center of the launch pad
	LandingX         float64 `yaml:"landing_x"`         // Center of the landing pad
	LandingTolerance float64 `yaml:"landing_tolerance"` // Half-width of the successful landing band
	PadWidth         float64 `yaml:"pad_width"`         // Drawn width of both pad markers
	StartAltitude    float64 `yaml:"start_altitude"`    // Initial offset above GroundY
}

// VehicleConfig defines the vehicle's initial resources and the gravity acting on it.
type VehicleConfig struct {
	Fuel    float64 `yaml:"fuel"`
	Gravity float64 `yaml:"gravity"` // Added to vertical velocity every airborne tick
}

// ControlsConfig defines the cost and effect of each player action.
type ControlsConfig struct {
	Step          float64 `yaml:"step"`           // Horizontal distance per move
	MoveCost      float64 `yaml:"move_cost"`      // Fuel per horizontal move
	ThrustGate    float64 `yaml:"thrust_gate"`    // Minimum fuel needed to fire the engine
	ThrustCost    float64 `yaml:"thrust_cost"`    // Fuel per engine burst
	ThrustImpulse float64 `yaml:"thrust_impulse"` // Upward velocity change per burst
}

// StartY returns the initial vertical position of the vehicle.
func (c LanderConfig) StartY() float64 {
	return c.World.GroundY - c.World.StartAltitude
}

// Validate checks the configuration for values the simulation cannot run with.
// All problems are reported at once, joined under ErrInvalidConfig.
func (c LanderConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	w := c.World
	check(w.PlayWidth > 0, "world.play_width must be positive, got %g", w.PlayWidth)
	check(w.ScreenHeight > 0, "world.screen_height must be positive, got %g", w.ScreenHeight)
	check(w.GroundY > 0 && w.GroundY < w.ScreenHeight,
		"world.ground_y must be inside (0, %g), got %g", w.ScreenHeight, w.GroundY)
	check(w.GroundHeight >= 0, "world.ground_height must not be negative, got %g", w.GroundHeight)
	check(w.LaunchX >= 0 && w.LaunchX <= w.PlayWidth,
		"world.launch_x must be inside [0, %g], got %g", w.PlayWidth, w.LaunchX)
	check(w.LandingX >= 0 && w.LandingX <= w.PlayWidth,
		"world.landing_x must be inside [0, %g], got %g", w.PlayWidth, w.LandingX)
	check(w.LandingTolerance > 0, "world.landing_tolerance must be positive, got %g", w.LandingTolerance)
	check(w.PadWidth > 0, "world.pad_width must be positive, got %g", w.PadWidth)
	check(w.StartAltitude >= 0 && w.StartAltitude <= w.GroundY,
		"world.start_altitude must be inside [0, %g], got %g", w.GroundY, w.StartAltitude)

	v := c.Vehicle
	check(v.Fuel > 0, "vehicle.fuel must be positive, got %g", v.Fuel)
	check(v.Gravity > 0, "vehicle.gravity must be positive, got %g", v.Gravity)

	ctl := c.Controls
	check(ctl.Step > 0, "controls.step must be positive, got %g", ctl.Step)
	check(ctl.MoveCost >= 0, "controls.move_cost must not be negative, got %g", ctl.MoveCost)
	check(ctl.ThrustCost >= 0, "controls.thrust_cost must not be negative, got %g", ctl.ThrustCost)
	check(ctl.ThrustGate >= ctl.ThrustCost,
		"controls.thrust_gate (%g) must be at least controls.thrust_cost (%g)", ctl.ThrustGate, ctl.ThrustCost)
	check(ctl.ThrustImpulse >= 0, "controls.thrust_impulse must not be negative, got %g", ctl.ThrustImpulse)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the difficulty presets in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset converts a CLI value to a preset. An empty string selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// Description returns a short summary of the preset for menus.
func (p DifficultyPreset) Description() string {
	switch p {
	case DifficultyEasy:
		return "extra fuel, wide landing pad"
	case DifficultyHard:
		return "short on fuel, narrow landing pad"
	default:
		return "standard fuel and pad"
	}
}
