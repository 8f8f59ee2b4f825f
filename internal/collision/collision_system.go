package collision

import (
	"math"

	"taproom/internal/config"
)

// TileChecker answers wall queries in world coordinates. *world.Grid implements it.
type TileChecker interface {
	IsSolid(x, y float64) bool
	IsNear(x, y, radius float64) bool
	TileSize() float64
}

// DoorChecker answers closed-door queries. *world.DoorSet implements it.
type DoorChecker interface {
	IsDoorBlocking(x, y float64) bool
	IsDoorBlockingTile(tileX, tileY int) bool
	IsDoorNear(x, y, radius float64) bool
}

// System combines walls, doors and round obstacles into the movement
// predicates shared by the player, enemies and projectiles.
type System struct {
	tiles     TileChecker
	doors     DoorChecker
	obstacles *ObstacleSet

	playerBuffer   float64
	playerObstacle float64
	obstacleRadius float64
}

// NewSystem creates a collision system. doors and obstacles may be nil.
func NewSystem(tiles TileChecker, doors DoorChecker, obstacles *ObstacleSet, cfg config.MovementConfig) *System {
	if obstacles == nil {
		obstacles = NewObstacleSet()
	}
	return &System{
		tiles:          tiles,
		doors:          doors,
		obstacles:      obstacles,
		playerBuffer:   cfg.PlayerWallBuffer,
		playerObstacle: cfg.PlayerTableRadius,
		obstacleRadius: cfg.TableRadius,
	}
}

func (cs *System) Obstacles() *ObstacleSet { return cs.obstacles }

// IsSolid reports a wall or out-of-bounds position.
func (cs *System) IsSolid(x, y float64) bool {
	return cs.tiles.IsSolid(x, y)
}

// IsNear reports a wall within radius along either axis.
func (cs *System) IsNear(x, y, radius float64) bool {
	return cs.tiles.IsNear(x, y, radius)
}

// IsDoorBlockingTile reports a closed door on the tile.
func (cs *System) IsDoorBlockingTile(tileX, tileY int) bool {
	return cs.doors != nil && cs.doors.IsDoorBlockingTile(tileX, tileY)
}

func (cs *System) doorBlocking(x, y float64) bool {
	return cs.doors != nil && cs.doors.IsDoorBlocking(x, y)
}

func (cs *System) doorNear(x, y, radius float64) bool {
	return cs.doors != nil && cs.doors.IsDoorNear(x, y, radius)
}

// Blocked is the point test used by projectiles: wall, closed door or an obstacle.
func (cs *System) Blocked(x, y float64) bool {
	return cs.tiles.IsSolid(x, y) || cs.doorBlocking(x, y) || cs.obstacles.Hit(x, y, cs.obstacleRadius)
}

// PlayerBlocked keeps the player a buffer away from walls and doors and
// further away from obstacles.
func (cs *System) PlayerBlocked(x, y float64) bool {
	return cs.tiles.IsNear(x, y, cs.playerBuffer) ||
		cs.doorNear(x, y, cs.playerBuffer) ||
		cs.obstacles.Hit(x, y, cs.playerObstacle)
}

// EnemyBlocked pads walls and doors by pad and uses the plain obstacle radius.
func (cs *System) EnemyBlocked(x, y, pad float64) bool {
	return cs.tiles.IsNear(x, y, pad) ||
		cs.doorNear(x, y, pad) ||
		cs.obstacles.Hit(x, y, cs.obstacleRadius)
}

// HasLineOfSight samples the segment every quarter tile. Walls and closed
// doors block sight; obstacles do not.
func (cs *System) HasLineOfSight(x1, y1, x2, y2 float64) bool {
	dx := x2 - x1
	dy := y2 - y1
	steps := math.Max(math.Abs(dx), math.Abs(dy)) / (cs.tiles.TileSize() / 4)
	if steps < 1 {
		return true
	}

	stepX := dx / steps
	stepY := dy / steps
	for i := 0.0; i <= steps; i++ {
		x := x1 + stepX*i
		y := y1 + stepY*i
		if cs.tiles.IsSolid(x, y) || cs.doorBlocking(x, y) {
			return false
		}
	}
	return true
}

// Slide moves (x, y) by (dx, dy) one axis at a time, keeping each axis move
// only when blocked reports false. Bodies slide along walls instead of sticking.
func Slide(x, y, dx, dy float64, blocked func(x, y float64) bool) (float64, float64) {
	if nx := x + dx; !blocked(nx, y) {
		x = nx
	}
	if ny := y + dy; !blocked(x, ny) {
		y = ny
	}
	return x, y
}
