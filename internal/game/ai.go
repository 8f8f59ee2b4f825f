package game

import (
	"math"

	"taproom/internal/collision"
)

// Distances in tiles.
const (
	aiRetreatRange  = 1
	aiChaseMin      = 1.5
	aiChaseMax      = 5
	aiShootRange    = 4
	aiPatrolStep    = 3.2
	aiChaseFactor   = 0.7
	aiRetreatFactor = 0.4
	aiCircleFactor  = 0.6
	aiCircleWobble  = 0.2
)

// updateEnemy runs one tick of the enemy state machine. idx is the enemy's
// slot in the list and gives each enemy its own patrol and circling phase.
func (s *Session) updateEnemy(e *Enemy, idx int, dtMs float64) {
	e.animate(dtMs)
	if e.Dying {
		return
	}

	p := s.Player
	t := s.tileSize
	dx, dy := p.X-e.X, p.Y-e.Y
	dist := math.Hypot(dx, dy)

	canSee := s.collision.HasLineOfSight(e.X, e.Y, p.X, p.Y)
	sameRoom := roomOf(s.cfg.Graphics.WalkwayZone, e.X, e.Y, t) == roomOf(s.cfg.Graphics.WalkwayZone, p.X, p.Y, t)
	canShoot := canSee && dist <= aiShootRange*t && s.clock-e.lastShot >= e.Template.CooldownMs && e.Walking

	if !e.Walking && s.clock-e.shootStart >= enemyShootMs {
		e.Walking = true
	}

	switch {
	case canShoot:
		e.Mode = AIShoot
		e.Walking = false
		e.lastShot = s.clock
		e.shootStart = s.clock
		angle := math.Atan2(dy, dx)
		s.enemyBullets = append(s.enemyBullets,
			newBullet(e.X, e.Y, angle, enemyBulletSpeed, enemyBulletLife, e.Template.Damage))
		s.log.WithField("enemy", e.ID).Debug("enemy fired")

	case !e.Walking:
		e.Mode = AIShoot

	case !sameRoom:
		e.Mode = AIPatrol
		angle := (s.clock/1000 + float64(idx)*2) * 0.5
		s.moveEnemy(e, math.Cos(angle)*aiPatrolStep, math.Sin(angle)*aiPatrolStep)

	case dist > aiChaseMin*t && dist < aiChaseMax*t:
		e.Mode = AIChase
		speed := e.Template.Speed * aiChaseFactor
		s.moveEnemy(e, dx/dist*speed, dy/dist*speed)

	case dist <= aiRetreatRange*t:
		e.Mode = AIRetreat
		if dist == 0 {
			return
		}
		speed := e.Template.Speed * aiRetreatFactor
		s.moveEnemy(e, -dx/dist*speed, -dy/dist*speed)

	default:
		e.Mode = AICircle
		if dist == 0 {
			return
		}
		ux, uy := dx/dist, dy/dist
		side := 1.0
		if idx%2 != 0 {
			side = -1
		}
		speed := e.Template.Speed * aiCircleFactor
		wobble := math.Sin(s.clock*0.001+float64(idx)) * aiCircleWobble
		s.moveEnemy(e, -uy*side*speed+ux*wobble, ux*side*speed+uy*wobble)
	}
}

func (s *Session) moveEnemy(e *Enemy, dx, dy float64) {
	pad := s.cfg.Movement.EnemyPadding
	e.X, e.Y = collision.Slide(e.X, e.Y, dx, dy, func(x, y float64) bool {
		return s.collision.EnemyBlocked(x, y, pad)
	})
}
