package game

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const maxHighScores = 10

// HighScoreEntry is one finished run.
type HighScoreEntry struct {
	Score    int       `json:"score"`
	Kills    int       `json:"kills"`
	Accuracy float64   `json:"accuracy"`
	Outcome  string    `json:"outcome"`
	PlayTime string    `json:"play_time"`
	Date     time.Time `json:"date"`
}

// HighScores is the best runs, highest score first.
type HighScores struct {
	Entries []HighScoreEntry `json:"entries"`
}

// newHighScoreEntry records the end of a session.
func newHighScoreEntry(s *Session, now time.Time) HighScoreEntry {
	return HighScoreEntry{
		Score:    s.Stats.Score,
		Kills:    s.Stats.Kills,
		Accuracy: s.Stats.Accuracy(),
		Outcome:  s.State.String(),
		PlayTime: (time.Duration(s.Clock()) * time.Millisecond).Round(time.Second).String(),
		Date:     now,
	}
}

// LoadHighScores reads the table at path. A missing file is an empty table.
func LoadHighScores(path string) (*HighScores, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &HighScores{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read high scores %s: %w", path, err)
	}

	var scores HighScores
	if err := json.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("parse high scores %s: %w", path, err)
	}
	return &scores, nil
}

// Save writes the table to path, creating its directory.
func (hs *HighScores) Save(path string) error {
	data, err := json.MarshalIndent(hs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Add inserts entry, keeps the best ten and returns its 1-based rank, or 0
// when it did not make the table.
func (hs *HighScores) Add(entry HighScoreEntry) int {
	rank := hs.Rank(entry.Score)
	if rank > maxHighScores {
		return 0
	}
	hs.Entries = append(hs.Entries, entry)
	sort.SliceStable(hs.Entries, func(i, j int) bool {
		return hs.Entries[i].Score > hs.Entries[j].Score
	})
	if len(hs.Entries) > maxHighScores {
		hs.Entries = hs.Entries[:maxHighScores]
	}
	return rank
}

// Rank is the 1-based position score would take. Ties go below existing entries.
func (hs *HighScores) Rank(score int) int {
	for i, e := range hs.Entries {
		if score > e.Score {
			return i + 1
		}
	}
	return len(hs.Entries) + 1
}

// Top returns at most n entries.
func (hs *HighScores) Top(n int) []HighScoreEntry {
	return hs.Entries[:min(n, len(hs.Entries))]
}

// SavePath resolves a relative file name against the directory of the
// executable, or the working directory when running from a go build cache.
func SavePath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if exe, err := os.Executable(); err == nil {
		if dir := filepath.Dir(exe); !isTempExeDir(dir) {
			return filepath.Join(dir, name)
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return filepath.Join(cwd, name)
	}
	return name
}

func isTempExeDir(dir string) bool {
	clean := filepath.Clean(dir)
	return strings.Contains(clean, string(filepath.Separator)+"go-build") ||
		strings.HasPrefix(clean, filepath.Clean(os.TempDir())+string(filepath.Separator))
}
