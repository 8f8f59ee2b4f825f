package game

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeRoster(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "enemies.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEnemyRoster(t *testing.T) {
	path := writeRoster(t, `
enemies:
  e1: {speed: 0.5, walk_texture: 32, shoot_texture: 16, death_texture: 24, cooldown_ms: 1000, health: 10, damage: 3}
  brute: {name: ogre, speed: 0.3, walk_texture: 9, shoot_texture: 20, death_texture: 28, cooldown_ms: 3000, health: 200, damage: 40}
`)
	r, err := LoadEnemyRoster(path)
	if err != nil {
		t.Fatalf("LoadEnemyRoster: %v", err)
	}
	if e1, _ := r.Lookup("e1"); e1.Name != "e1" || e1.Health != 10 {
		t.Errorf("e1 = %+v, want name from key and health 10", e1)
	}
	if brute, ok := r.Lookup("brute"); !ok || brute.Name != "ogre" || brute.CooldownMs != 3000 {
		t.Errorf("brute = %+v", brute)
	}
	if fb, ok := r.Lookup("e2"); ok || fb.Health != 10 {
		t.Errorf("Missing template should fall back to the file's e1")
	}
}

func TestLoadEnemyRosterErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"no fallback", "enemies:\n  e2: {speed: 1, walk_texture: 9, shoot_texture: 20, death_texture: 28, cooldown_ms: 1, health: 1}\n", "fallback"},
		{"dead on arrival", "enemies:\n  e1: {speed: 1, walk_texture: 9, shoot_texture: 20, death_texture: 28, cooldown_ms: 1, health: 0}\n", "health"},
		{"no cooldown", "enemies:\n  e1: {speed: 1, walk_texture: 9, shoot_texture: 20, death_texture: 28, health: 5}\n", "cooldown"},
		{"no textures", "enemies:\n  e1: {speed: 1, cooldown_ms: 1, health: 5}\n", "texture"},
		{"bad yaml", "enemies: [", "parse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadEnemyRoster(writeRoster(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}

	_, err := LoadEnemyRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Missing file error %v should wrap fs.ErrNotExist", err)
	}
}

func TestDefaultRosterValid(t *testing.T) {
	if err := DefaultRoster().Validate(); err != nil {
		t.Fatal(err)
	}
}
