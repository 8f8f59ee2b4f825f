package render

import (
	"math"

	"taproom/internal/world"
)

// Hit is the result of one ray. Side is 0 when the ray entered the wall cell
// across an x boundary, 1 across a y boundary. WallU is the horizontal
// texture coordinate in [0, 1).
type Hit struct {
	Distance float64
	TileID   int
	Side     int
	WallU    float64
	HitX     float64
	HitY     float64
}

// Caster marches rays through a grid in fixed steps.
type Caster struct {
	grid        *world.Grid
	doors       world.DoorQuery
	step        float64
	maxDistance float64
}

// NewCaster creates a caster. doors may be nil, in which case every door slot is closed.
func NewCaster(grid *world.Grid, doors world.DoorQuery, step, maxDistance float64) *Caster {
	return &Caster{grid: grid, doors: doors, step: step, maxDistance: maxDistance}
}

// Cast marches from the origin along (dirX, dirY) until it reaches a wall, a
// closed door or leaves the map. Open doors are transparent. When nothing is
// hit within the max distance a synthetic hit on tile 1 is returned.
func (c *Caster) Cast(originX, originY, dirX, dirY float64) Hit {
	length := math.Hypot(dirX, dirY)
	if length == 0 {
		return c.miss(originX, originY, 0, 0)
	}
	dirX /= length
	dirY /= length

	ts := c.grid.TileSize()
	for i := 0; ; i++ {
		dist := float64(i) * c.step
		if dist >= c.maxDistance {
			break
		}

		x := originX + dirX*dist
		y := originY + dirY*dist
		if !c.grid.IsSolidForRender(x, y) {
			continue
		}

		cellX, cellY := c.grid.Cell(x, y)
		tile := c.grid.TileAtCell(cellX, cellY)
		if tile == world.DoorTile && c.doors != nil && c.doors.IsDoorOpenAt(cellX, cellY) {
			continue
		}

		prevCellX, _ := c.grid.Cell(originX+dirX*(dist-c.step), originY+dirY*(dist-c.step))

		hit := Hit{Distance: dist, TileID: tile, HitX: x, HitY: y}
		if prevCellX != cellX {
			hit.Side = 0
			hit.WallU = frac(y / ts)
			if dirX > 0 {
				hit.WallU = 1 - hit.WallU
			}
		} else {
			hit.Side = 1
			hit.WallU = frac(x / ts)
			if dirY < 0 {
				hit.WallU = 1 - hit.WallU
			}
		}
		hit.WallU = math.Min(hit.WallU, math.Nextafter(1, 0))
		return hit
	}

	return c.miss(originX, originY, dirX, dirY)
}

func (c *Caster) miss(originX, originY, dirX, dirY float64) Hit {
	return Hit{
		Distance: c.maxDistance,
		TileID:   world.OutOfBoundsTile,
		HitX:     originX + dirX*c.maxDistance,
		HitY:     originY + dirY*c.maxDistance,
	}
}

func frac(v float64) float64 {
	return v - math.Floor(v)
}
