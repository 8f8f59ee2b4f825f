package game

import "math"

const (
	bulletTimeScale   = 0.1
	playerBulletSpeed = 8
	playerBulletLife  = 1000
	enemyBulletSpeed  = 4
	enemyBulletLife   = 2000
	enemyHitRadius    = 32
	playerHitRadius   = 24
)

// Bullet is a projectile fired by the player or an enemy. Velocity is in
// world units per 10 ms.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	LifeMs float64
	Damage int
}

func newBullet(x, y, angle, speed, life float64, dmg int) Bullet {
	return Bullet{
		X: x, Y: y,
		VX:     math.Cos(angle) * speed,
		VY:     math.Sin(angle) * speed,
		LifeMs: life,
		Damage: dmg,
	}
}

// step moves the bullet and reports whether it is still alive.
func (b *Bullet) step(dtMs float64, blocked func(x, y float64) bool) bool {
	b.X += b.VX * dtMs * bulletTimeScale
	b.Y += b.VY * dtMs * bulletTimeScale
	b.LifeMs -= dtMs
	return b.LifeMs > 0 && !blocked(b.X, b.Y)
}
