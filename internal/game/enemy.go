package game

// EnemyTemplate is the static description of an enemy type.
type EnemyTemplate struct {
	Name         string  `yaml:"name"`
	Speed        float64 `yaml:"speed"`
	WalkTexture  int     `yaml:"walk_texture"`
	ShootTexture int     `yaml:"shoot_texture"`
	DeathTexture int     `yaml:"death_texture"`
	CooldownMs   float64 `yaml:"cooldown_ms"`
	Health       int     `yaml:"health"`
	Damage       int     `yaml:"damage"`
}

const (
	enemyFrameMs      = 200
	enemyShootMs      = 800
	enemyRemoveMs     = 2800
	enemyHitFlashMs   = 150
	enemyAnimFrames   = 4
	enemyBigHealth    = 40
	enemyScoreBig     = 100
	enemyScoreSmall   = 75
	heavyHitDamage    = 50
	heavyKillDamage   = 35
	heavySplatterMult = 2
)

// AIMode is what an enemy decided to do this tick.
type AIMode int

const (
	AIIdle AIMode = iota
	AIPatrol
	AIChase
	AIRetreat
	AICircle
	AIShoot
)

func (m AIMode) String() string {
	switch m {
	case AIIdle:
		return "idle"
	case AIPatrol:
		return "patrol"
	case AIChase:
		return "chase"
	case AIRetreat:
		return "retreat"
	case AICircle:
		return "circle"
	case AIShoot:
		return "shoot"
	}
	return "unknown"
}

// Enemy is a live or dying enemy. Times are session clock milliseconds.
type Enemy struct {
	ID       int
	Template EnemyTemplate
	X, Y     float64

	Health    int
	MaxHealth int
	Dying     bool
	Walking   bool
	Frame     int
	Mode      AIMode

	frameTimer float64
	lastShot   float64
	shootStart float64
	deathStart float64
	hitAt      float64
	hit        bool
}

func newEnemy(id int, t EnemyTemplate, x, y, now float64) *Enemy {
	return &Enemy{
		ID:        id,
		Template:  t,
		X:         x,
		Y:         y,
		Health:    t.Health,
		MaxHealth: t.Health,
		Walking:   true,
		lastShot:  now - t.CooldownMs,
	}
}

// Alive reports an enemy that can still act and be hit.
func (e *Enemy) Alive() bool { return !e.Dying }

// HitFlashing reports whether the hit flash is showing at now. Dying enemies
// never flash.
func (e *Enemy) HitFlashing(now float64) bool {
	return !e.Dying && e.hit && now-e.hitAt < enemyHitFlashMs
}

// TextureID picks the animation texture for the current state.
func (e *Enemy) TextureID() int {
	switch {
	case e.Dying:
		return e.Template.DeathTexture + e.Frame
	case e.Walking:
		return e.Template.WalkTexture + e.Frame
	}
	return e.Template.ShootTexture + e.Frame
}

// animate advances the frame counter. Dying enemies stop on the last frame.
func (e *Enemy) animate(dtMs float64) {
	e.frameTimer += dtMs
	if e.frameTimer < enemyFrameMs {
		return
	}
	e.frameTimer = 0
	if e.Dying {
		if e.Frame < enemyAnimFrames-1 {
			e.Frame++
		}
		return
	}
	e.Frame = (e.Frame + 1) % enemyAnimFrames
}

// expired reports a dying enemy whose corpse should be removed.
func (e *Enemy) expired(now float64) bool {
	return e.Dying && now-e.deathStart >= enemyRemoveMs
}

// takeDamage applies damage and reports whether it killed the enemy.
func (e *Enemy) takeDamage(dmg int, now float64) bool {
	if e.Dying {
		return false
	}
	e.Health -= dmg
	e.hit = true
	e.hitAt = now
	if e.Health > 0 {
		return false
	}
	e.Dying = true
	e.deathStart = now
	e.Frame = 0
	e.frameTimer = 0
	e.Walking = false
	e.Mode = AIIdle
	return true
}

// ScoreValue is the score awarded for a kill.
func (e *Enemy) ScoreValue() int {
	if e.MaxHealth >= enemyBigHealth {
		return enemyScoreBig
	}
	return enemyScoreSmall
}
