package render

import (
	"math"

	"taproom/internal/mathutil"
)

// floorCellBias nudges cell lookups so exact tile edges fall into the lower cell.
const floorCellBias = 0.01

func (r *Renderer) drawFloorCeiling(f *Frame, cam Camera) {
	rows := mathutil.IntMin(r.viewHeight, r.height)
	r.forRange(rows, func(lo, hi int) {
		for y := lo; y < hi; y++ {
			r.drawFloorRow(f, cam, y)
		}
	})
}

// drawFloorRow projects screen row y onto the floor (below the horizon) or the
// ceiling plane (above it) and colors each pixel by the cell it lands in.
func (r *Renderer) drawFloorRow(f *Frame, cam Camera, y int) {
	h := float64(r.height)
	half := r.height >> 1
	ceiling := y < half

	p := float64(y) - h/2
	if ceiling {
		p = h/2 - float64(y)
	}

	px := f.Pixels
	if p == 0 {
		c := r.exterior
		for x := 0; x < r.width; x++ {
			px.SetRGB(x, y, uint8(c.r), uint8(c.g), uint8(c.b))
		}
		return
	}

	rowDist := 0.5 * h / p
	rayDirX0 := cam.DirX - cam.PlaneX
	rayDirY0 := cam.DirY - cam.PlaneY
	rayDirX1 := cam.DirX + cam.PlaneX
	rayDirY1 := cam.DirY + cam.PlaneY

	stepX := rowDist * (rayDirX1 - rayDirX0) / float64(r.width)
	stepY := rowDist * (rayDirY1 - rayDirY0) / float64(r.width)
	floorX := cam.X/r.tileSize + rowDist*rayDirX0
	floorY := cam.Y/r.tileSize + rowDist*rayDirY0

	zone := r.gfx.WalkwayZone
	var stoneShade, skyShade float64
	if ceiling {
		stoneShade = math.Max(0.4, 0.7+float64(y)/h*0.3)
		skyShade = 0.8 + float64(y)/h*0.4
	}

	for x := 0; x < r.width; x++ {
		cellX := mathutil.FloorInt(floorX - floorCellBias)
		cellY := mathutil.FloorInt(floorY - floorCellBias)

		var c rgb
		shade := 1.0
		switch {
		case ceiling && zone.Contains(cellX, cellY):
			c, shade = r.stone, stoneShade
		case ceiling:
			c, shade = r.sky, skyShade
		default:
			c = r.floorColor(cellX, cellY)
		}
		px.SetRGB(x, y,
			mathutil.ClampByte(math.Floor(c.r*shade)),
			mathutil.ClampByte(math.Floor(c.g*shade)),
			mathutil.ClampByte(math.Floor(c.b*shade)))

		floorX += stepX
		floorY += stepY
	}
}

// floorColor picks the palette entry for a floor cell: walkway inside the
// walkway zone, interior for enclosed cells, exterior for everything else.
func (r *Renderer) floorColor(cellX, cellY int) rgb {
	if !r.grid.InBounds(cellX, cellY) || r.grid.TileAtCell(cellX, cellY) != 0 {
		return r.exterior
	}
	if r.gfx.WalkwayZone.Contains(cellX, cellY) {
		return r.walkway
	}
	if r.grid.IsEnclosed(cellX, cellY) {
		return r.interior
	}
	return r.exterior
}
