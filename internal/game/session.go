package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"taproom/internal/collision"
	"taproom/internal/config"
	"taproom/internal/render"
	"taproom/internal/world"
)

const (
	messageMs      = 2000
	messageFadeMs  = 1000
	faceFrameMs    = 3000
	msgDoorLocked  = "Door is locked!"
	msgDoorBlocked = "Can't close door while standing on it!"
)

// interactive is a usable wall tile with its runtime state.
type interactive struct {
	world.InteractiveTile
	active bool
}

// Session is one game on one level: the player, enemies, pickups and
// everything that moves. It does not draw; Sprites and Overlay describe
// what the renderer should show.
type Session struct {
	cfg      *config.Config
	level    *world.Level
	log      logrus.FieldLogger
	rng      *rand.Rand
	tileSize float64

	grid      *world.Grid
	doors     *world.DoorSet
	collision *collision.System

	State     GameState
	Player    *Player
	Arsenal   *Arsenal
	Enemies   []*Enemy
	Pickups   []*Pickup
	Particles *ParticleSystem
	Effects   *Effects
	Stats     Stats

	playerBullets  []Bullet
	enemyBullets   []Bullet
	interactives   []*interactive
	reinforcements *Reinforcements

	clock        float64
	nextEnemyID  int
	victoryTimer float64
	message      string
	messageTimer float64
	faceFrame    int
	faceTimer    float64
	ShowDebug    bool

	roster  EnemyRoster
	sprites []render.Sprite
}

// SessionOption customizes a Session.
type SessionOption func(*Session)

// WithRoster replaces the built-in enemy templates.
func WithRoster(r EnemyRoster) SessionOption {
	return func(s *Session) { s.roster = r }
}

// NewSession builds a session on level and leaves it on the title screen.
// rng may be nil.
func NewSession(cfg *config.Config, level *world.Level, log logrus.FieldLogger, rng *rand.Rand, opts ...SessionOption) (*Session, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	ts := cfg.GetTileSize()
	grid, err := level.Grid(ts)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.Name, err)
	}

	obstacles := collision.NewObstacleSet()
	for i, p := range level.Obstacles() {
		obstacles.Add(fmt.Sprintf("%s_%d", p.Kind, i), p.X, p.Y)
	}
	doors := level.DoorSet(ts)

	s := &Session{
		cfg:       cfg,
		level:     level,
		log:       log.WithField("level", level.Name),
		rng:       rng,
		tileSize:  ts,
		grid:      grid,
		doors:     doors,
		collision: collision.NewSystem(grid, doors, obstacles, cfg.Movement),
		Particles: NewParticleSystem(rng),
		Effects:   NewEffects(cfg.Effects, rng),
		roster:    DefaultRoster(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	s.State = StateTitle
	return s, nil
}

// Grid returns the level grid.
func (s *Session) Grid() *world.Grid { return s.grid }

// Doors returns the live door state.
func (s *Session) Doors() *world.DoorSet { return s.doors }

// Collision returns the movement predicates of the level.
func (s *Session) Collision() *collision.System { return s.collision }

// Clock is the playing time in milliseconds. It stops while paused.
func (s *Session) Clock() float64 { return s.clock }

// Message returns the current UI message and its remaining time.
func (s *Session) Message() (string, float64) {
	if s.messageTimer <= 0 {
		return "", 0
	}
	return s.message, s.messageTimer
}

// MessageAlpha fades the UI message over its last second.
func (s *Session) MessageAlpha() float64 {
	return math.Min(1, s.messageTimer/messageFadeMs)
}

// ShowMessage displays text for two seconds.
func (s *Session) ShowMessage(text string) {
	s.message = text
	s.messageTimer = messageMs
}

// Reset restarts the level with a fresh player and enemies.
func (s *Session) Reset() {
	lv := s.level
	s.Player = NewPlayer(lv.PlayerX, lv.PlayerY, lv.PlayerAngle, s.cfg.Camera.PlaneLength)
	s.Arsenal = NewArsenal()
	s.Stats = Stats{}
	s.clock = 0
	s.victoryTimer = 0
	s.messageTimer = 0
	s.faceFrame, s.faceTimer = 0, 0

	s.Enemies = s.Enemies[:0]
	s.nextEnemyID = 0
	for _, sp := range lv.Enemies {
		s.spawnEnemy(sp)
	}
	s.reinforcements = NewReinforcements(s.cfg.Graphics.WalkwayZone, s.tileSize,
		lv.Reinforcements, len(lv.Enemies), lv.MaxEnemies)

	s.Pickups = s.Pickups[:0]
	for _, p := range lv.Props {
		s.Pickups = append(s.Pickups, newPickup(p))
	}
	s.interactives = s.interactives[:0]
	for _, it := range lv.Interactives {
		s.interactives = append(s.interactives, &interactive{InteractiveTile: it, active: true})
	}

	s.playerBullets = s.playerBullets[:0]
	s.enemyBullets = s.enemyBullets[:0]
	s.Particles.Clear()
	s.Effects.Reset()
	s.doors.CloseAll()

	s.State = StatePlaying
	s.log.WithField("enemies", len(s.Enemies)).Info("session reset")
}

func (s *Session) spawnEnemy(sp world.EnemySpawn) *Enemy {
	t, ok := s.roster.Lookup(sp.Template)
	if !ok {
		s.log.WithField("template", sp.Template).Warn("unknown enemy template, using " + FallbackTemplate)
	}
	s.nextEnemyID++
	e := newEnemy(s.nextEnemyID, t, sp.X, sp.Y, s.clock)
	s.Enemies = append(s.Enemies, e)
	return e
}

// AliveEnemies counts enemies that are not dying.
func (s *Session) AliveEnemies() int {
	n := 0
	for _, e := range s.Enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// Projectiles returns the live player and enemy bullet counts.
func (s *Session) Projectiles() (player, enemy int) {
	return len(s.playerBullets), len(s.enemyBullets)
}

// Update handles one tick of input and, while playing, advances the world by dtMs.
func (s *Session) Update(dtMs float64, in Input) {
	if in.Debug {
		s.ShowDebug = !s.ShowDebug
	}

	switch s.State {
	case StateTitle:
		if in.Fire {
			s.State = StatePlaying
		}
	case StatePlaying:
		s.handlePlayingInput(in)
		if s.State == StatePlaying {
			s.tick(dtMs, in)
		}
	case StatePaused:
		if in.Pause || in.Escape {
			s.State = StatePlaying
		}
	case StateDeath:
		if in.Fire {
			s.respawn()
		}
	case StateGameOver, StateVictory:
		if in.Reset {
			s.Reset()
		}
	}
}

func (s *Session) handlePlayingInput(in Input) {
	if in.Weapon > 0 {
		s.Arsenal.Switch(in.Weapon - 1)
	}
	if in.Fire {
		s.shoot()
	}
	if in.Interact {
		s.Interact()
	}
	if in.Splatter {
		s.Particles.Splatter(s.Player.X, s.Player.Y, 0, false, 1)
	}
	if in.Pause || in.Escape {
		s.State = StatePaused
	}
}

// tick advances the simulation in a fixed order.
func (s *Session) tick(dtMs float64, in Input) {
	s.clock += dtMs
	p := s.Player

	p.Move(dtMs, in, s.cfg.Movement, s.collision.PlayerBlocked)
	s.Arsenal.Update(dtMs, s.clock)
	if in.FireHeld && s.Arsenal.AutoFire(p.Ammo, s.clock) {
		s.launchPlayerBullet()
	}

	s.updateEnemies(dtMs)
	s.updateProjectiles(dtMs)
	s.updatePickups(dtMs)
	s.Particles.Update(dtMs)
	s.Effects.UpdateShake(dtMs)
	s.Effects.Update(dtMs, s.clock, p.HealthPercent())
	s.updateFace(dtMs)

	if s.messageTimer > 0 {
		s.messageTimer = math.Max(0, s.messageTimer-dtMs)
	}

	ptx, pty := s.grid.Cell(p.X, p.Y)
	for _, d := range s.doors.Update(dtMs, ptx, pty) {
		s.log.WithField("door", d.ID).Debug("door closed")
	}

	if spawns := s.reinforcements.Check(dtMs, p.X, p.Y, s.enemyNear); len(spawns) > 0 {
		for _, sp := range spawns {
			s.spawnEnemy(sp)
		}
		s.log.WithFields(logrus.Fields{
			"spawned": len(spawns),
			"total":   s.reinforcements.Total(),
		}).Info("reinforcements arrived")
	}

	s.checkConditions(dtMs)
}

func (s *Session) enemyNear(x, y, radius float64) bool {
	for _, e := range s.Enemies {
		if e.Alive() && math.Hypot(x-e.X, y-e.Y) < radius {
			return true
		}
	}
	return false
}

// shoot fires the held weapon on a key press.
func (s *Session) shoot() {
	if s.Arsenal.Fire(s.Player.Ammo, s.clock) {
		s.launchPlayerBullet()
	}
}

func (s *Session) launchPlayerBullet() {
	p := s.Player
	p.Ammo--
	s.Stats.ShotsFired++
	s.playerBullets = append(s.playerBullets, newBullet(p.X, p.Y, p.Angle(),
		playerBulletSpeed, playerBulletLife, s.Arsenal.Current().Damage))
}

func (s *Session) updateEnemies(dtMs float64) {
	for i, e := range s.Enemies {
		s.updateEnemy(e, i, dtMs)
	}
	kept := s.Enemies[:0]
	for _, e := range s.Enemies {
		if !e.expired(s.clock) {
			kept = append(kept, e)
		}
	}
	s.Enemies = kept
}

func (s *Session) updateProjectiles(dtMs float64) {
	kept := s.playerBullets[:0]
	for _, b := range s.playerBullets {
		if !b.step(dtMs, s.collision.Blocked) {
			continue
		}
		if e := s.enemyAt(b.X, b.Y); e != nil {
			s.Stats.ShotsHit++
			s.DamageEnemy(e, b.Damage)
			continue
		}
		kept = append(kept, b)
	}
	s.playerBullets = kept

	p := s.Player
	keptEnemy := s.enemyBullets[:0]
	for _, b := range s.enemyBullets {
		if !b.step(dtMs, s.collision.Blocked) {
			continue
		}
		if math.Hypot(b.X-p.X, b.Y-p.Y) < playerHitRadius {
			s.DamagePlayer(b.Damage)
			continue
		}
		keptEnemy = append(keptEnemy, b)
	}
	s.enemyBullets = keptEnemy
}

func (s *Session) enemyAt(x, y float64) *Enemy {
	for _, e := range s.Enemies {
		if e.Alive() && math.Hypot(x-e.X, y-e.Y) < enemyHitRadius {
			return e
		}
	}
	return nil
}

// DamageEnemy applies a hit: blood toward the far side of the enemy, and on
// a kill a second burst plus score.
func (s *Session) DamageEnemy(e *Enemy, dmg int) {
	if !e.Alive() {
		return
	}
	p := s.Player
	killed := e.takeDamage(dmg, s.clock)
	dir := math.Atan2(e.Y-p.Y, e.X-p.X)

	mult := 1.0
	if dmg >= heavyHitDamage {
		mult = heavySplatterMult
	}
	s.Particles.Splatter(e.X, e.Y, dir, true, mult)
	if !killed {
		return
	}

	mult = 1
	if dmg >= heavyKillDamage {
		mult = heavySplatterMult
	}
	s.Particles.Splatter(e.X, e.Y, dir, true, mult)
	s.Particles.Splatter(e.X, e.Y, 0, false, mult)
	s.Stats.Kills++
	s.Stats.Score += e.ScoreValue()
	s.log.WithFields(logrus.Fields{
		"enemy":    e.ID,
		"template": e.Template.Name,
		"score":    s.Stats.Score,
	}).Info("enemy killed")
}

// DamagePlayer takes health and plays the hit effects.
func (s *Session) DamagePlayer(dmg int) {
	s.Player.Health -= dmg
	s.Effects.PlayerHit()
	s.log.WithField("health", s.Player.Health).Debug("player hit")
}

func (s *Session) updatePickups(dtMs float64) {
	p := s.Player
	for _, pk := range s.Pickups {
		if !pk.update(dtMs, s.clock) {
			continue
		}
		if math.Hypot(pk.X-p.X, pk.Y-p.Y) >= pickupRadius {
			continue
		}
		switch pk.Kind {
		case world.PropHealth:
			p.Heal(pickupHealth)
		case world.PropAmmo:
			p.AddAmmo(pickupAmmo)
		case world.PropShotgun:
			p.AddAmmo(shotgunPickupAmmo)
			s.Arsenal.Unlock(shotgunSlot)
			s.Arsenal.Switch(shotgunSlot)
		}
		pk.take(s.clock)
		s.log.WithField("pickup", pk.Kind.String()).Debug("picked up")
	}
}

func (s *Session) updateFace(dtMs float64) {
	s.faceTimer += dtMs
	if s.faceTimer >= faceFrameMs {
		s.faceTimer = 0
		s.faceFrame = (s.faceFrame + 1) % 3
	}
}

// FaceFrame is the HUD face animation frame, 0..2.
func (s *Session) FaceFrame() int { return s.faceFrame }

// Interact uses the nearest interactive tile in reach, or failing that a door.
func (s *Session) Interact() {
	p := s.Player
	reach := s.cfg.World.InteractionReach * s.tileSize

	for _, it := range s.interactives {
		if !it.active {
			continue
		}
		cx, cy := s.grid.CellCenter(it.TileX, it.TileY)
		if math.Hypot(p.X-cx, p.Y-cy) >= reach {
			continue
		}
		if it.Kind == world.InteractKey {
			it.active = false
			p.AddKey(it.KeyID)
			s.log.WithField("key", it.KeyID).Info("key collected")
		}
		s.ShowMessage(it.Message)
		return
	}

	ptx, pty := s.grid.Cell(p.X, p.Y)
	for _, d := range s.doors.Doors() {
		dx := p.X - float64(d.TileX)*s.tileSize
		dy := p.Y - float64(d.TileY)*s.tileSize
		if math.Hypot(dx, dy) >= reach {
			continue
		}
		res := d.Toggle(p.HasKey, ptx, pty)
		switch res {
		case world.DoorLocked:
			s.ShowMessage(msgDoorLocked)
		case world.DoorOccupied:
			s.ShowMessage(msgDoorBlocked)
		}
		s.log.WithFields(logrus.Fields{"door": d.ID, "result": res.String()}).Debug("door used")
		return
	}
}

func (s *Session) checkConditions(dtMs float64) {
	if s.AliveEnemies() == 0 {
		s.victoryTimer += dtMs
		if s.victoryTimer >= float64(s.cfg.Effects.VictoryDelayMs) {
			s.State = StateVictory
			s.log.WithFields(logrus.Fields{
				"kills":    s.Stats.Kills,
				"score":    s.Stats.Score,
				"accuracy": s.Stats.Accuracy(),
			}).Info("victory")
			return
		}
	} else {
		s.victoryTimer = 0
	}

	p := s.Player
	if p.Health > 0 {
		return
	}
	p.Lives--
	if p.Lives > 0 {
		s.State = StateDeath
		s.log.WithField("lives", p.Lives).Info("player died")
		return
	}
	s.State = StateGameOver
	s.log.WithField("score", s.Stats.Score).Info("game over")
}

func (s *Session) respawn() {
	lv := s.level
	s.Player.Respawn(lv.PlayerX, lv.PlayerY, lv.PlayerAngle, s.cfg.Camera.PlaneLength)
	s.Effects.PlayerHit()
	s.State = StatePlaying
}

// Sprites returns the billboards to draw this frame. The slice is reused
// between calls.
func (s *Session) Sprites() []render.Sprite {
	p := s.Player
	out := s.sprites[:0]
	for _, e := range s.Enemies {
		out = append(out, render.Sprite{
			Kind:      render.SpriteEnemy,
			X:         e.X,
			Y:         e.Y,
			Distance:  math.Hypot(e.X-p.X, e.Y-p.Y),
			TextureID: e.TextureID(),
			Active:    true,
			HitFlash:  e.HitFlashing(s.clock),
		})
	}
	for _, pk := range s.Pickups {
		out = append(out, pk.sprite(p.X, p.Y))
	}
	out = s.Particles.AppendSprites(out, p.X, p.Y)
	s.sprites = out
	return out
}

// Overlay describes the weapon, crosshair and screen effects for this frame.
func (s *Session) Overlay() render.Overlay {
	ov := render.Overlay{Crosshair: s.State == StatePlaying}
	if id, ok := s.Arsenal.Current().TextureID(); ok {
		ov.Weapon = &render.WeaponOverlay{TextureID: id, WalkTimer: s.Player.WalkTimer}
	}
	s.Effects.Apply(&ov)
	return ov
}

// Camera is the view for this frame.
func (s *Session) Camera() render.Camera { return s.Player.Camera }
