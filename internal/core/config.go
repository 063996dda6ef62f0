package core

// RuntimeConfig is what the platform tells a game about its host: terminal
// size, tick rate and the run seed.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int   // ticks per second
	Seed     int64 // 0 lets the platform pick one from the clock
}

func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60}
}

// GameState is the part of a game the platform acts on.
type GameState struct {
	Score    int
	GameOver bool
	Paused   bool
}

// StepResult is what Game.Step reports for one tick.
type StepResult struct {
	State GameState
}

// RunSummary describes a finished round for persistence. Games that can
// describe their rounds implement Summary() RunSummary.
type RunSummary struct {
	ClaimedTiles int
	Outcome      string
	Elapsed      float64 // seconds of simulated time
	Ticks        int64
	Difficulty   string
	Hash         uint64 // state hash at the end of the round
}

// TickDuration returns the simulated seconds covered by one tick.
func (c RuntimeConfig) TickDuration() float64 {
	if c.TickRate <= 0 {
		return 1.0 / float64(DefaultConfig().TickRate)
	}
	return 1.0 / float64(c.TickRate)
}
