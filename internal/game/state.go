package game

// GameState is the top-level mode of a session.
type GameState int

const (
	StateTitle GameState = iota
	StatePlaying
	StatePaused
	StateDeath
	StateGameOver
	StateVictory
)

func (s GameState) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateDeath:
		return "death"
	case StateGameOver:
		return "game_over"
	case StateVictory:
		return "victory"
	}
	return "unknown"
}

// Stats are the end-of-game counters shown on the victory and game over screens.
type Stats struct {
	Kills      int
	Score      int
	ShotsFired int
	ShotsHit   int
}

// Accuracy is the percentage of player bullets that hit, 0 before the first shot.
func (s Stats) Accuracy() float64 {
	if s.ShotsFired == 0 {
		return 0
	}
	return float64(s.ShotsHit) / float64(s.ShotsFired) * 100
}
