package core

// RuntimeConfig contains configuration passed to modes at start.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Signal is the discrete outcome a mode reports to the shell.
type Signal int

const (
	SignalNone Signal = iota
	SignalDone        // the mode reached its terminal state during this update
)

// GameState is the per-tick status a mode exposes to the shell.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the mode has reached its terminal state
}

// StepResult is returned by every mode update.
type StepResult struct {
	State  GameState
	Signal Signal
}

// Result holds the read-only outcome of a finished run.
type Result struct {
	Mode    string // mode ID
	Tier    string // difficulty tier name
	Score   int
	Victory bool
	Coins   int // currency earned by this run
}
