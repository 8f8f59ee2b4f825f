package world

import (
	"fmt"
	"math"
)

const (
	// EmptyTile is walkable floor.
	EmptyTile = 0
	// OutOfBoundsTile is what every lookup outside the map reports.
	OutOfBoundsTile = 1
	// DoorTile marks a door slot. Its open/closed state lives in a DoorSet.
	DoorTile = 90
)

// Grid is the immutable tile map. Cell values are 0 for empty space,
// 1-89 for a wall texture id and DoorTile for a door.
type Grid struct {
	tiles    [][]int
	width    int
	height   int
	tileSize float64
}

// NewGrid copies tiles into a grid. Rows must all have the same length.
func NewGrid(tiles [][]int, tileSize float64) (*Grid, error) {
	if len(tiles) == 0 || len(tiles[0]) == 0 {
		return nil, fmt.Errorf("grid is empty")
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("invalid tile size %v", tileSize)
	}

	width := len(tiles[0])
	rows := make([][]int, len(tiles))
	for y, row := range tiles {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", y, len(row), width)
		}
		rows[y] = append([]int(nil), row...)
	}

	return &Grid{tiles: rows, width: width, height: len(rows), tileSize: tileSize}, nil
}

// MustNewGrid is NewGrid that panics on malformed input. Used for built-in levels.
func MustNewGrid(tiles [][]int, tileSize float64) *Grid {
	g, err := NewGrid(tiles, tileSize)
	if err != nil {
		panic("invalid grid: " + err.Error())
	}
	return g
}

func (g *Grid) Width() int          { return g.width }
func (g *Grid) Height() int         { return g.height }
func (g *Grid) TileSize() float64   { return g.tileSize }
func (g *Grid) WorldWidth() float64 { return float64(g.width) * g.tileSize }

// Cell converts a world position to tile coordinates.
func (g *Grid) Cell(x, y float64) (int, int) {
	return int(math.Floor(x / g.tileSize)), int(math.Floor(y / g.tileSize))
}

// InBounds reports whether the tile coordinate lies inside the map.
func (g *Grid) InBounds(tileX, tileY int) bool {
	return tileX >= 0 && tileX < g.width && tileY >= 0 && tileY < g.height
}

// TileAtCell returns the tile value, OutOfBoundsTile outside the map.
func (g *Grid) TileAtCell(tileX, tileY int) int {
	if !g.InBounds(tileX, tileY) {
		return OutOfBoundsTile
	}
	return g.tiles[tileY][tileX]
}

// TileAt returns the tile value under a world position.
func (g *Grid) TileAt(x, y float64) int {
	return g.TileAtCell(g.Cell(x, y))
}

// IsSolid reports walls and out-of-bounds positions. Doors are not solid here;
// their blocking state comes from the DoorSet.
func (g *Grid) IsSolid(x, y float64) bool {
	tile := g.TileAt(x, y)
	return tile > EmptyTile && tile != DoorTile
}

// IsSolidForRender treats every door slot as solid. The ray caster decides
// separately whether an open door lets the ray through.
func (g *Grid) IsSolidForRender(x, y float64) bool {
	return g.TileAt(x, y) > EmptyTile
}

// IsNear probes the four axis points at radius around (x, y). Corners are not
// probed, so a round body can graze an exact wall corner.
func (g *Grid) IsNear(x, y, radius float64) bool {
	return g.IsSolid(x+radius, y) ||
		g.IsSolid(x-radius, y) ||
		g.IsSolid(x, y+radius) ||
		g.IsSolid(x, y-radius)
}

// IsEnclosed reports an empty cell whose four neighbours are all nonzero.
// Neighbours outside the map count as empty.
func (g *Grid) IsEnclosed(tileX, tileY int) bool {
	if !g.InBounds(tileX, tileY) || g.tiles[tileY][tileX] != EmptyTile {
		return false
	}
	return g.raw(tileX, tileY-1) > 0 &&
		g.raw(tileX, tileY+1) > 0 &&
		g.raw(tileX-1, tileY) > 0 &&
		g.raw(tileX+1, tileY) > 0
}

func (g *Grid) raw(tileX, tileY int) int {
	if !g.InBounds(tileX, tileY) {
		return EmptyTile
	}
	return g.tiles[tileY][tileX]
}

// CellCenter returns the world position of a tile's center.
func (g *Grid) CellCenter(tileX, tileY int) (float64, float64) {
	return (float64(tileX) + 0.5) * g.tileSize, (float64(tileY) + 0.5) * g.tileSize
}

// EmptyCells lists every empty tile in row-major order.
func (g *Grid) EmptyCells() [][2]int {
	var cells [][2]int
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.tiles[y][x] == EmptyTile {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return cells
}
