package game

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// FallbackTemplate is used for spawns that name an unknown template.
const FallbackTemplate = "e1"

// EnemyRoster maps template names to enemy templates.
type EnemyRoster map[string]EnemyTemplate

// DefaultRoster returns the built-in tavern enemies.
func DefaultRoster() EnemyRoster {
	return EnemyRoster{
		"e1": {Name: "e1", Speed: 0.8, WalkTexture: 32, ShootTexture: 16, DeathTexture: 24, CooldownMs: 2000, Health: 75, Damage: 15},
		"e2": {Name: "e2", Speed: 1.2, WalkTexture: 9, ShootTexture: 20, DeathTexture: 28, CooldownMs: 1800, Health: 45, Damage: 8},
	}
}

type rosterFile struct {
	Enemies map[string]EnemyTemplate `yaml:"enemies"`
}

// LoadEnemyRoster reads enemy templates from a yaml file. Templates without
// a name take their map key.
func LoadEnemyRoster(path string) (EnemyRoster, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read enemy roster %s: %w", path, err)
	}

	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse enemy roster %s: %w", path, err)
	}

	r := make(EnemyRoster, len(f.Enemies))
	for key, t := range f.Enemies {
		if t.Name == "" {
			t.Name = key
		}
		r[key] = t
	}
	if err := r.Validate(); err != nil {
		return nil, fmt.Errorf("enemy roster %s: %w", path, err)
	}
	return r, nil
}

// Validate reports every template that could not be simulated, plus a
// missing fallback template.
func (r EnemyRoster) Validate() error {
	var problems []string
	if _, ok := r[FallbackTemplate]; !ok {
		problems = append(problems, fmt.Sprintf("missing fallback template %q", FallbackTemplate))
	}

	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		t := r[k]
		switch {
		case t.Health <= 0:
			problems = append(problems, fmt.Sprintf("%s: health %d must be positive", k, t.Health))
		case t.Speed < 0:
			problems = append(problems, fmt.Sprintf("%s: negative speed %v", k, t.Speed))
		case t.CooldownMs <= 0:
			problems = append(problems, fmt.Sprintf("%s: cooldown %v must be positive", k, t.CooldownMs))
		case t.WalkTexture <= 0 || t.ShootTexture <= 0 || t.DeathTexture <= 0:
			problems = append(problems, fmt.Sprintf("%s: texture ids must be positive", k))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid enemy roster:\n%s", strings.Join(problems, "\n"))
	}
	return nil
}

// Lookup returns the named template. Unknown names fall back to e1.
func (r EnemyRoster) Lookup(name string) (EnemyTemplate, bool) {
	if t, ok := r[name]; ok {
		return t, true
	}
	return r[FallbackTemplate], false
}
