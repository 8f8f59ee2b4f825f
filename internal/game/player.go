package game

import (
	"taproom/internal/collision"
	"taproom/internal/config"
	"taproom/internal/render"
)

const (
	playerMaxHealth = 100
	playerStartAmmo = 10
	playerMaxAmmo   = 200
	playerLives     = 3
)

// Player is the camera plus the player's resources. The embedded camera
// position is the player position.
type Player struct {
	render.Camera

	Health    int
	MaxHealth int
	Ammo      int
	MaxAmmo   int
	Lives     int

	// WalkTimer advances only while moving and drives the weapon sway.
	WalkTimer float64

	keys map[string]bool
}

// NewPlayer places a fresh player at (x, y) facing angle.
func NewPlayer(x, y, angle, planeLength float64) *Player {
	return &Player{
		Camera:    render.NewCamera(x, y, angle, planeLength),
		Health:    playerMaxHealth,
		MaxHealth: playerMaxHealth,
		Ammo:      playerStartAmmo,
		MaxAmmo:   playerMaxAmmo,
		Lives:     playerLives,
		keys:      make(map[string]bool),
	}
}

// HasKey implements the door key check.
func (p *Player) HasKey(id string) bool { return p.keys[id] }

// AddKey stores a key.
func (p *Player) AddKey(id string) { p.keys[id] = true }

// Keys returns the number of keys carried.
func (p *Player) Keys() int { return len(p.keys) }

// HealthPercent is health relative to the maximum, 0..100.
func (p *Player) HealthPercent() float64 {
	if p.MaxHealth <= 0 {
		return 0
	}
	return float64(p.Health) / float64(p.MaxHealth) * 100
}

// Heal adds health up to the maximum.
func (p *Player) Heal(n int) {
	p.Health = min(p.Health+n, p.MaxHealth)
}

// AddAmmo adds ammo up to the maximum.
func (p *Player) AddAmmo(n int) {
	p.Ammo = min(p.Ammo+n, p.MaxAmmo)
}

// Move applies one tick of movement input. Each axis is checked on its own
// so the player slides along walls.
func (p *Player) Move(dtMs float64, in Input, cfg config.MovementConfig, blocked func(x, y float64) bool) {
	moveSpeed := cfg.MoveSpeed * dtMs
	rotSpeed := cfg.RotationSpeed * dtMs

	if in.TurnLeft {
		p.Rotate(-rotSpeed)
	}
	if in.TurnRight {
		p.Rotate(rotSpeed)
	}

	step := func(dx, dy float64) {
		p.X, p.Y = collision.Slide(p.X, p.Y, dx, dy, blocked)
	}
	if in.Forward {
		step(p.DirX*moveSpeed, p.DirY*moveSpeed)
	}
	if in.Backward {
		step(-p.DirX*moveSpeed, -p.DirY*moveSpeed)
	}
	if in.StrafeLeft {
		step(-p.PlaneX*moveSpeed, -p.PlaneY*moveSpeed)
	}
	if in.StrafeRight {
		step(p.PlaneX*moveSpeed, p.PlaneY*moveSpeed)
	}

	if in.Moving() {
		p.WalkTimer += dtMs
	}
}

// Respawn restores full health at the given position and orientation.
// Ammo, lives and keys are kept.
func (p *Player) Respawn(x, y, angle, planeLength float64) {
	p.Camera = render.NewCamera(x, y, angle, planeLength)
	p.Health = p.MaxHealth
	p.WalkTimer = 0
}
