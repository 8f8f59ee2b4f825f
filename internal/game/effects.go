package game

import (
	"math"
	"math/rand/v2"

	"taproom/internal/config"
	"taproom/internal/render"
)

const lowHealthPulseRate = 0.01

// Effects holds the full-screen feedback: shake, damage flash and the
// low health border.
type Effects struct {
	cfg   config.EffectsConfig
	shake *render.Shake

	flashTimer float64
	lowHealth  float64
	pulse      float64
}

func NewEffects(cfg config.EffectsConfig, rng *rand.Rand) *Effects {
	return &Effects{cfg: cfg, shake: render.NewShake(rng)}
}

// PlayerHit shakes the screen and starts the damage flash.
func (fx *Effects) PlayerHit() {
	fx.shake.Apply(fx.cfg.ShakeIntensity, float64(fx.cfg.ShakeDurationMs))
	fx.Flash()
}

// Flash starts the damage flash without a shake.
func (fx *Effects) Flash() {
	fx.flashTimer = float64(fx.cfg.DamageFlashMs)
}

// UpdateShake advances the shake timer.
func (fx *Effects) UpdateShake(dtMs float64) { fx.shake.Update(dtMs) }

// Update advances the flash and recomputes the low health border.
func (fx *Effects) Update(dtMs, now, healthPercent float64) {
	fx.flashTimer = math.Max(0, fx.flashTimer-dtMs)

	fx.lowHealth = 0
	if healthPercent <= fx.cfg.LowHealthPercent && fx.cfg.LowHealthPercent > 0 {
		fx.lowHealth = 1 - healthPercent/fx.cfg.LowHealthPercent
	}
	fx.pulse = math.Sin(now*lowHealthPulseRate)*0.5 + 0.5
}

// DamageFlash is the current flash intensity.
func (fx *Effects) DamageFlash() float64 {
	if fx.cfg.DamageFlashMs <= 0 {
		return 0
	}
	return math.Max(0, fx.cfg.DamageFlashPeak*fx.flashTimer/float64(fx.cfg.DamageFlashMs))
}

// Apply copies the effect intensities into an overlay.
func (fx *Effects) Apply(ov *render.Overlay) {
	ov.DamageFlash = fx.DamageFlash()
	ov.LowHealth = fx.lowHealth
	ov.Pulse = fx.pulse
	ov.ShakeX, ov.ShakeY = fx.shake.Offset()
}

// Reset clears every effect.
func (fx *Effects) Reset() {
	fx.shake.Stop()
	fx.flashTimer = 0
	fx.lowHealth = 0
	fx.pulse = 0
}
