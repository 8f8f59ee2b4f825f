package game

import (
	"path/filepath"
	"testing"
	"time"

	"taproom/internal/logging"
)

func TestRecordFinish(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	s := newTestSession(t, nil)
	g := &Game{
		log:        logging.Discard(),
		session:    s,
		scores:     &HighScores{},
		scoresPath: path,
	}
	now := time.Unix(1700000000, 0)

	g.recordFinish(StatePlaying, now)
	if len(g.scores.Entries) != 0 {
		t.Fatalf("Recorded a run that is still playing")
	}

	s.Stats.Score = 300
	s.State = StateVictory
	g.recordFinish(StatePlaying, now)
	if g.lastRank != 1 || len(g.scores.Entries) != 1 {
		t.Fatalf("Victory not recorded: rank %d, %d entries", g.lastRank, len(g.scores.Entries))
	}
	g.recordFinish(StateVictory, now)
	if len(g.scores.Entries) != 1 {
		t.Errorf("Same victory recorded twice")
	}

	saved, err := LoadHighScores(path)
	if err != nil || len(saved.Entries) != 1 || saved.Entries[0].Outcome != "victory" {
		t.Errorf("Saved table %+v, err %v", saved, err)
	}
}
