package game

import (
	"math"

	"taproom/internal/config"
	"taproom/internal/world"
)

const (
	courtyardRoom = 1
	hallRoom      = 2

	reinforcementBatch   = 3
	reinforcementResetMs = 10000
	// Room changes are ignored inside this band around the dividing wall.
	roomHysteresis = 0.5
	dividerTile    = 9
	spawnClearance = 1.5
)

// roomOf maps a world position to a room number using the walkway zone.
func roomOf(zone config.ZoneConfig, x, y, tileSize float64) int {
	tx := int(math.Floor(x / tileSize))
	ty := int(math.Floor(y / tileSize))
	if zone.Contains(tx, ty) {
		return hallRoom
	}
	return courtyardRoom
}

// Reinforcements spawns extra enemies in the courtyard when the player
// leaves it for the hall.
type Reinforcements struct {
	zone     config.ZoneConfig
	tileSize float64
	spawns   []world.EnemySpawn
	max      int

	total        int
	previousRoom int
	triggered    bool
	resetTimer   float64
}

func NewReinforcements(zone config.ZoneConfig, tileSize float64, spawns []world.EnemySpawn, initial, maxEnemies int) *Reinforcements {
	return &Reinforcements{
		zone:         zone,
		tileSize:     tileSize,
		spawns:       spawns,
		max:          maxEnemies,
		total:        initial,
		previousRoom: courtyardRoom,
	}
}

// Triggered reports whether a spawn fired and has not been rearmed yet.
func (r *Reinforcements) Triggered() bool { return r.triggered }

// Total is the number of enemies spawned so far, initial ones included.
func (r *Reinforcements) Total() int { return r.total }

// Check runs one tick of the trigger and returns the positions to spawn.
// occupied reports whether a position is too close to a living enemy.
func (r *Reinforcements) Check(dtMs, px, py float64, occupied func(x, y, radius float64) bool) []world.EnemySpawn {
	if r.resetTimer > 0 {
		r.resetTimer -= dtMs
		if r.resetTimer <= 0 {
			r.resetTimer = 0
			r.triggered = false
		}
	}

	room := roomOf(r.zone, px, py, r.tileSize)
	var out []world.EnemySpawn
	if room != r.previousRoom {
		r.triggered = false
	}
	if r.previousRoom == courtyardRoom && room == hallRoom && !r.triggered && r.total < r.max {
		out = r.spawn(occupied)
	}

	if math.Abs(px-dividerTile*r.tileSize) > roomHysteresis*r.tileSize {
		r.previousRoom = room
	}
	return out
}

func (r *Reinforcements) spawn(occupied func(x, y, radius float64) bool) []world.EnemySpawn {
	r.triggered = true
	n := min(reinforcementBatch, r.max-r.total, len(r.spawns))

	var out []world.EnemySpawn
	for _, s := range r.spawns[:n] {
		x, y := r.placement(s.X, s.Y, occupied)
		out = append(out, world.EnemySpawn{Template: s.Template, X: x, Y: y})
	}
	r.total += len(out)

	if r.total < r.max {
		r.resetTimer = reinforcementResetMs
	}
	return out
}

// placement tries the spawn point and its four neighbours one tile away,
// returning the first that is clear of living enemies.
func (r *Reinforcements) placement(x, y float64, occupied func(x, y, radius float64) bool) (float64, float64) {
	t := r.tileSize
	candidates := [][2]float64{{x, y}, {x + t, y}, {x - t, y}, {x, y + t}, {x, y - t}}
	for _, c := range candidates {
		if occupied == nil || !occupied(c[0], c[1], spawnClearance*t) {
			return c[0], c[1]
		}
	}
	return x, y
}
