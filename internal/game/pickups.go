package game

import (
	"math"

	"taproom/internal/render"
	"taproom/internal/world"
)

const (
	pickupRadius      = 30
	pickupHealth      = 10
	pickupAmmo        = 10
	shotgunSlot       = 1
	shotgunPickupAmmo = 10
)

// Pickup is a placed prop. Decorations never bob and cannot be collected.
type Pickup struct {
	Kind      world.PropKind
	X, Y      float64
	TextureID int
	BobPeriod float64
	BobHeight float64
	RespawnMs float64

	Active   bool
	bobTimer float64
	takenAt  float64
}

func newPickup(p world.PropSpawn) *Pickup {
	return &Pickup{
		Kind:      p.Kind,
		X:         p.X,
		Y:         p.Y,
		TextureID: p.TextureID,
		BobPeriod: p.BobPeriod,
		BobHeight: p.BobHeight,
		RespawnMs: p.RespawnMs,
		Active:    true,
		bobTimer:  p.BobPhase,
	}
}

// Bob is the vertical offset in pixels.
func (p *Pickup) Bob() float64 {
	if p.Kind.IsObstacle() || p.BobPeriod <= 0 {
		return 0
	}
	return math.Sin(p.bobTimer/p.BobPeriod*2*math.Pi) * p.BobHeight
}

// update advances the bob and handles respawn. It reports whether the pickup
// can be collected this tick.
func (p *Pickup) update(dtMs, now float64) bool {
	if p.Kind.IsObstacle() {
		return false
	}
	p.bobTimer += dtMs
	if !p.Active {
		if p.RespawnMs > 0 && now-p.takenAt >= p.RespawnMs {
			p.Active = true
		}
		return false
	}
	return true
}

func (p *Pickup) take(now float64) {
	p.Active = false
	p.takenAt = now
}

func (p *Pickup) sprite(camX, camY float64) render.Sprite {
	kind := render.SpritePickup
	if p.Kind.IsObstacle() {
		kind = render.SpriteDecoration
	}
	return render.Sprite{
		Kind:      kind,
		X:         p.X,
		Y:         p.Y,
		Distance:  math.Hypot(p.X-camX, p.Y-camY),
		TextureID: p.TextureID,
		Active:    p.Active,
		Bob:       p.Bob(),
	}
}
