package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt their rendering to the terminal size.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Simulation ticks per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Score of the finished run (0 while running)
	GameOver bool   // Whether the game has reached a terminal state
	Won      bool   // Whether the terminal state is a success
	Status   string // Short status label, e.g. "in flight"
	Detail   string // Optional detail for the status, e.g. "out of fuel"

	// Flight readouts, recorded in the flight log once GameOver is set
	FuelLeft float64
	Ticks    int
	X        float64
}

// StepResult is returned by Game.Advance() after each simulation tick.
type StepResult struct {
	State GameState
	// Done is set when the run loop should stop after drawing this frame.
	Done bool
}
