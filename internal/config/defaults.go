package config

import (
	_ "embed"
)

//go:embed defaults/lander.yaml
var defaultLanderYAML []byte

// DefaultLanderConfig returns the default lander configuration.
// It matches defaults/lander.yaml and is used when the embedded file cannot be parsed.
func DefaultLanderConfig() LanderConfig {
	return LanderConfig{
		World: WorldConfig{
			PlayWidth:        800,
			ScreenHeight:     600,
			GroundY:          500,
			GroundHeight:     20,
			LaunchX:          100,
			LandingX:         500,
			LandingTolerance: 20,
			PadWidth:         40,
			StartAltitude:    30,
		},
		Vehicle: VehicleConfig{
			Fuel:    100,
			Gravity: 0.2,
		},
		Controls: ControlsConfig{
			Step:          15,
			MoveCost:      1,
			ThrustGate:    10,
			ThrustCost:    5,
			ThrustImpulse: 5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultLanderYAML
}
