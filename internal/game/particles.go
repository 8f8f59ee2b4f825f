package game

import (
	"image/color"
	"math"
	"math/rand/v2"

	"taproom/internal/render"
)

const (
	particleTexture     = 68
	particleBaseCount   = 12
	particleMax         = 150
	particleLifeMs      = 800
	particleDrag        = 0.96
	particlePull        = 0.003
	particleFrameMs     = 16.67
	particleFadeShare   = 0.3
	particleSpreadWide  = 1.5
	particleHeavySpread = 1.5
)

// Particle is one blood droplet.
type Particle struct {
	X, Y           float64
	startX, startY float64
	vx, vy         float64
	life, maxLife  float64
	r, g, b        float64
}

// alpha fades the particle over the last part of its life.
func (p *Particle) alpha() float64 {
	pct := p.life / p.maxLife
	if pct > particleFadeShare {
		return 1
	}
	return math.Max(0, pct/particleFadeShare)
}

// ParticleSystem owns the blood splatter particles.
type ParticleSystem struct {
	particles []Particle
	rng       *rand.Rand
}

func NewParticleSystem(rng *rand.Rand) *ParticleSystem {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &ParticleSystem{rng: rng}
}

// Splatter emits floor(12*mult) particles at (x, y). With directed set they
// spray in a cone around dir, otherwise in every direction. When the pool is
// full the oldest particles make room.
func (ps *ParticleSystem) Splatter(x, y, dir float64, directed bool, mult float64) {
	count := int(math.Floor(particleBaseCount * mult))
	if count <= 0 {
		return
	}
	if len(ps.particles) >= particleMax {
		drop := min(count, len(ps.particles))
		ps.particles = append(ps.particles[:0], ps.particles[drop:]...)
	}

	spread := math.Pi / 4
	if mult > particleSpreadWide {
		spread *= particleHeavySpread
	}
	for i := 0; i < count; i++ {
		angle := ps.rng.Float64() * 2 * math.Pi
		if directed {
			angle = dir + (ps.rng.Float64()-0.5)*spread
		}
		speed := 1 + ps.rng.Float64()
		ps.particles = append(ps.particles, Particle{
			X: x, Y: y,
			startX: x, startY: y,
			vx:      math.Cos(angle) * speed,
			vy:      math.Sin(angle) * speed,
			life:    particleLifeMs,
			maxLife: particleLifeMs,
			r:       200 + ps.rng.Float64()*55,
			g:       ps.rng.Float64() * 20,
			b:       ps.rng.Float64() * 15,
		})
	}
}

// Update moves the particles and drops the dead ones.
func (ps *ParticleSystem) Update(dtMs float64) {
	timeScale := dtMs / particleFrameMs
	alive := ps.particles[:0]
	for _, p := range ps.particles {
		age := 1 - p.life/p.maxLife
		p.vx += (p.startX - p.X) * age * particlePull
		p.vy += (p.startY - p.Y) * age * particlePull
		p.vx *= particleDrag
		p.vy *= particleDrag
		p.X += p.vx * timeScale
		p.Y += p.vy * timeScale
		p.life -= dtMs
		if p.life > 0 {
			alive = append(alive, p)
		}
	}
	ps.particles = alive
}

// Len returns the number of live particles.
func (ps *ParticleSystem) Len() int { return len(ps.particles) }

// Clear removes every particle.
func (ps *ParticleSystem) Clear() { ps.particles = ps.particles[:0] }

// AppendSprites adds one tinted sprite per particle.
func (ps *ParticleSystem) AppendSprites(dst []render.Sprite, camX, camY float64) []render.Sprite {
	for i := range ps.particles {
		p := &ps.particles[i]
		a := p.alpha()
		dst = append(dst, render.Sprite{
			Kind:      render.SpriteParticle,
			X:         p.X,
			Y:         p.Y,
			Distance:  math.Hypot(p.X-camX, p.Y-camY),
			TextureID: particleTexture,
			Active:    true,
			Tint: color.RGBA{
				R: uint8(math.Floor(p.r * a)),
				G: uint8(math.Floor(p.g * a)),
				B: uint8(math.Floor(p.b * a)),
				A: 255,
			},
		})
	}
	return dst
}
