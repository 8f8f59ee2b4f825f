package render

import (
	"math"

	"taproom/internal/config"
	"taproom/internal/mathutil"
	"taproom/internal/threading/core"
	"taproom/internal/threading/monitoring"
	"taproom/internal/world"
)

// Frame is the output of one Render call. The renderer reuses it, so it is
// only valid until the next call; use Clone to keep one.
type Frame struct {
	Pixels  *Framebuffer
	ZBuffer []float64
	// Blit offset for screen shake.
	ShakeX, ShakeY int
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		Pixels:  NewFramebuffer(f.Pixels.Width, f.Pixels.Height),
		ZBuffer: append([]float64(nil), f.ZBuffer...),
		ShakeX:  f.ShakeX,
		ShakeY:  f.ShakeY,
	}
	c.Pixels.CopyFrom(f.Pixels)
	return c
}

type rgb struct{ r, g, b float64 }

func rgbFrom(c [3]int) rgb {
	return rgb{float64(c[0]), float64(c[1]), float64(c[2])}
}

// Renderer draws frames of one grid. It holds no game state; everything that
// changes per frame arrives through Render's arguments.
type Renderer struct {
	width      int
	height     int
	viewHeight int
	tileSize   float64

	grid     *world.Grid
	caster   *Caster
	textures TextureTable
	gfx      config.GraphicsConfig

	shadeDistance float64
	exterior      rgb
	interior      rgb
	walkway       rgb
	stone         rgb
	sky           rgb

	pool    *core.WorkerPool
	monitor *monitoring.PerformanceMonitor

	frame   *Frame
	visible []Sprite
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkerPool spreads the wall and floor passes over a worker pool.
// Output is identical to the serial path.
func WithWorkerPool(pool *core.WorkerPool) Option {
	return func(r *Renderer) { r.pool = pool }
}

// WithMonitor records pass timings.
func WithMonitor(m *monitoring.PerformanceMonitor) Option {
	return func(r *Renderer) { r.monitor = m }
}

// NewRenderer creates a renderer for the grid. doors may be nil.
func NewRenderer(cfg *config.Config, grid *world.Grid, doors world.DoorQuery, textures TextureTable, opts ...Option) *Renderer {
	r := &Renderer{
		width:         cfg.GetScreenWidth(),
		height:        cfg.GetScreenHeight(),
		viewHeight:    cfg.GetViewHeight(),
		tileSize:      grid.TileSize(),
		grid:          grid,
		caster:        NewCaster(grid, doors, grid.TileSize()/float64(cfg.World.RayStepDivisor), cfg.World.MaxRayDistance),
		textures:      textures,
		gfx:           cfg.Graphics,
		shadeDistance: cfg.Graphics.ShadeDistance * grid.TileSize(),
		exterior:      rgbFrom(cfg.Graphics.Colors.Exterior),
		interior:      rgbFrom(cfg.Graphics.Colors.Interior),
		walkway:       rgbFrom(cfg.Graphics.Colors.Walkway),
		stone:         rgbFrom(cfg.Graphics.Colors.Stone),
		sky:           rgbFrom(cfg.Graphics.Colors.Sky),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.frame = &Frame{
		Pixels:  NewFramebuffer(r.width, r.height),
		ZBuffer: make([]float64, r.width),
	}
	return r
}

// Caster exposes the ray caster, e.g. for hitscan checks.
func (r *Renderer) Caster() *Caster { return r.caster }

// Render draws one frame: floor and ceiling, walls, sprites, the weapon,
// the crosshair, then full-screen effects.
func (r *Renderer) Render(cam Camera, sprites []Sprite, ov Overlay) *Frame {
	f := r.frame
	f.Pixels.Clear()
	for i := range f.ZBuffer {
		f.ZBuffer[i] = math.Inf(1)
	}

	r.profile(monitoring.PassFloor, func() { r.drawFloorCeiling(f, cam) })
	r.profile(monitoring.PassWalls, func() { r.drawWalls(f, cam) })
	r.profile(monitoring.PassSprites, func() { r.drawSprites(f, cam, sprites) })
	r.profile(monitoring.PassOverlay, func() {
		if ov.Weapon != nil {
			r.drawWeapon(f, *ov.Weapon)
		}
		if ov.Crosshair {
			r.drawCrosshair(f)
		}
		r.applyEffects(f, ov)
	})

	f.ShakeX = mathutil.RoundHalfUp(ov.ShakeX)
	f.ShakeY = mathutil.RoundHalfUp(ov.ShakeY)
	return f
}

func (r *Renderer) profile(pass monitoring.Pass, fn func()) {
	if r.monitor == nil {
		fn()
		return
	}
	r.monitor.Profile(pass, fn)
}

// forRange runs fn over [0, n) either inline or split across the pool.
func (r *Renderer) forRange(n int, fn func(lo, hi int)) {
	if r.pool == nil {
		fn(0, n)
		return
	}
	r.pool.ParallelRange(0, n, fn)
}
