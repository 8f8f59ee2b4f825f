package render

import (
	"math"

	"taproom/internal/mathutil"
)

// minWallDepth keeps the projected height finite when the camera sits on a wall.
const minWallDepth = 1e-6

func (r *Renderer) drawWalls(f *Frame, cam Camera) {
	camAngle := cam.Angle()
	r.forRange(r.width, func(lo, hi int) {
		for x := lo; x < hi; x++ {
			r.drawColumn(f, cam, camAngle, x)
		}
	})
	if r.monitor != nil {
		r.monitor.AddRays(r.width)
	}
}

// drawColumn casts the ray for screen column x, records its corrected depth in
// the z-buffer and draws the textured wall slice.
func (r *Renderer) drawColumn(f *Frame, cam Camera, camAngle float64, x int) {
	cameraX := 2*float64(x)/float64(r.width) - 1
	rayAngle := math.Atan2(cam.DirY+cam.PlaneY*cameraX, cam.DirX+cam.PlaneX*cameraX)

	hit := r.caster.Cast(cam.X, cam.Y, math.Cos(rayAngle), math.Sin(rayAngle))

	// Perpendicular distance removes the fisheye bulge.
	depth := hit.Distance * math.Cos(rayAngle-camAngle)
	f.ZBuffer[x] = depth

	tex, ok := r.textures.Texture(hit.TileID)
	if !ok {
		return
	}

	h := float64(r.height)
	wallHeight := r.tileSize * h / math.Max(depth, minWallDepth)
	drawStart := (h - wallHeight) / 2
	drawEnd := drawStart + wallHeight

	size := tex.Size
	step := float64(size) / wallHeight
	texPos := 0.0
	if drawStart < 0 {
		texPos = -drawStart * step
	}

	startY := int(math.Max(0, math.Floor(drawStart)))
	endY := int(math.Min(float64(r.viewHeight), math.Floor(drawEnd)))
	texX := mathutil.IntClamp(int(hit.WallU*float64(size)), 0, size-1)

	shade := 1.0
	if hit.Side == 1 {
		shade *= r.gfx.SideShade
	}
	shade *= math.Max(r.gfx.WallShadeMin, 1-depth/r.shadeDistance)

	px := f.Pixels
	for y := startY; y < endY; y++ {
		texY := int(texPos)
		texPos += step
		if texY >= size {
			continue
		}
		tr, tg, tb, _ := tex.At(texX, texY)
		px.SetRGB(x, y,
			mathutil.ClampByte(float64(tr)*shade),
			mathutil.ClampByte(float64(tg)*shade),
			mathutil.ClampByte(float64(tb)*shade))
	}
}
