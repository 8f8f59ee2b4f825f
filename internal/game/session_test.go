package game

import (
	"math"
	"math/rand/v2"
	"testing"

	"taproom/internal/config"
	"taproom/internal/logging"
	"taproom/internal/world"
)

const (
	ts   = 64.0
	tick = 16.0
)

// newTestSession builds a playing session on the tavern level. mutate may
// edit the level before the session is built.
func newTestSession(t *testing.T, mutate func(lv *world.Level)) *Session {
	t.Helper()
	lv := world.Tavern(ts)
	if mutate != nil {
		mutate(lv)
	}
	s, err := NewSession(config.Default(), lv, logging.Discard(), rand.New(rand.NewPCG(7, 11)))
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	s.State = StatePlaying
	return s
}

func run(s *Session, ticks int, in Input) {
	for i := 0; i < ticks; i++ {
		s.Update(tick, in)
	}
}

func TestTitleStartsOnFire(t *testing.T) {
	s, err := NewSession(config.Default(), world.Tavern(ts), logging.Discard(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if s.State != StateTitle {
		t.Fatalf("New session state = %v, want title", s.State)
	}
	s.Update(tick, Input{})
	if s.State != StateTitle || s.Clock() != 0 {
		t.Errorf("Title screen advanced without input")
	}
	s.Update(tick, Input{Fire: true})
	if s.State != StatePlaying {
		t.Errorf("State = %v after fire, want playing", s.State)
	}
}

func TestPauseFreezesClock(t *testing.T) {
	s := newTestSession(t, nil)
	run(s, 3, Input{})
	before := s.Clock()

	s.Update(tick, Input{Pause: true})
	if s.State != StatePaused {
		t.Fatalf("State = %v, want paused", s.State)
	}
	run(s, 10, Input{Forward: true})
	if s.Clock() != before {
		t.Errorf("Clock advanced while paused: %v -> %v", before, s.Clock())
	}
	if s.Player.X != world.Tavern(ts).PlayerX {
		t.Errorf("Player moved while paused")
	}

	s.Update(tick, Input{Escape: true})
	if s.State != StatePlaying {
		t.Errorf("Escape did not resume, state %v", s.State)
	}
}

func TestInteract(t *testing.T) {
	cases := []struct {
		name    string
		x, y    float64
		setup   func(s *Session)
		message string
		check   func(t *testing.T, s *Session)
	}{
		{
			name: "key tile", x: 12.5 * ts, y: 8.5 * ts,
			message: "Thanks Chris!",
			check: func(t *testing.T, s *Session) {
				if !s.Player.HasKey("key1") {
					t.Errorf("Key not collected")
				}
			},
		},
		{
			name: "easter egg", x: 14.5 * ts, y: 1.5 * ts,
			message: "WTF Teanaway?",
		},
		{
			name: "locked door", x: 14.5 * ts, y: 8.5 * ts,
			message: msgDoorLocked,
			check: func(t *testing.T, s *Session) {
				if s.Doors().IsDoorOpenAt(14, 9) {
					t.Errorf("Locked door opened without key")
				}
			},
		},
		{
			name: "unlocked with key", x: 14.5 * ts, y: 8.5 * ts,
			setup: func(s *Session) { s.Player.AddKey("key1") },
			check: func(t *testing.T, s *Session) {
				if !s.Doors().IsDoorOpenAt(14, 9) {
					t.Errorf("Door did not open with key")
				}
			},
		},
		{
			name: "standing in doorway", x: 9.5 * ts, y: 7.5 * ts,
			setup: func(s *Session) {
				s.Doors().DoorAt(9, 7).Toggle(nil, 0, 0)
			},
			message: msgDoorBlocked,
			check: func(t *testing.T, s *Session) {
				if !s.Doors().IsDoorOpenAt(9, 7) {
					t.Errorf("Door closed on the player")
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, nil)
			s.Player.X, s.Player.Y = tc.x, tc.y
			if tc.setup != nil {
				tc.setup(s)
			}
			s.Interact()

			msg, remaining := s.Message()
			if msg != tc.message {
				t.Errorf("Message = %q, want %q", msg, tc.message)
			}
			if tc.message != "" && remaining != messageMs {
				t.Errorf("Message time = %v, want %v", remaining, messageMs)
			}
			if tc.check != nil {
				tc.check(t, s)
			}
		})
	}
}

func TestKeyTileIsSingleUse(t *testing.T) {
	s := newTestSession(t, nil)
	s.Player.X, s.Player.Y = 12.5*ts, 8.5*ts
	s.Interact()
	s.messageTimer = 0
	s.Interact()
	if msg, _ := s.Message(); msg != "" {
		t.Errorf("Used key tile again: %q", msg)
	}
}

func TestMessageExpires(t *testing.T) {
	s := newTestSession(t, nil)
	s.ShowMessage("hello")
	run(s, 63, Input{})
	if msg, _ := s.Message(); msg != "hello" {
		t.Fatalf("Message gone too early")
	}
	if a := s.MessageAlpha(); a >= 1 || a <= 0 {
		t.Errorf("Message should be fading, alpha %v", a)
	}
	run(s, 62, Input{})
	if msg, _ := s.Message(); msg != "" {
		t.Errorf("Message still shown after 2 s: %q", msg)
	}
}

func TestEnemyShootsPlayer(t *testing.T) {
	s := newTestSession(t, func(lv *world.Level) {
		lv.Enemies = []world.EnemySpawn{{Template: "e1", X: 4.5 * ts, Y: 1.5 * ts}}
	})

	s.Update(tick, Input{})
	e := s.Enemies[0]
	if e.Mode != AIShoot || e.Walking {
		t.Fatalf("Enemy in range did not shoot: mode %v walking %v", e.Mode, e.Walking)
	}
	if _, n := s.Projectiles(); n != 1 {
		t.Fatalf("Expected one enemy bullet, got %d", n)
	}
	if e.TextureID() != e.Template.ShootTexture+e.Frame {
		t.Errorf("Shooting enemy uses texture %d", e.TextureID())
	}

	run(s, 30, Input{})
	if s.Player.Health != playerMaxHealth-15 {
		t.Errorf("Health = %d, want %d", s.Player.Health, playerMaxHealth-15)
	}
	if s.Effects.DamageFlash() <= 0 {
		t.Errorf("Hit did not start the damage flash")
	}
	if _, n := s.Projectiles(); n != 0 {
		t.Errorf("Bullet not consumed on hit")
	}
}

func TestPlayerBulletHitsEnemy(t *testing.T) {
	s := newTestSession(t, func(lv *world.Level) {
		lv.Enemies = []world.EnemySpawn{{Template: "e2", X: 4.5 * ts, Y: 1.5 * ts}}
	})

	// Raise the pistol.
	run(s, 20, Input{})
	if s.Arsenal.Current().State != WeaponReady {
		t.Fatalf("Pistol not ready after 320 ms: %v", s.Arsenal.Current().State)
	}

	s.Update(tick, Input{Fire: true})
	if s.Player.Ammo != playerStartAmmo-1 || s.Stats.ShotsFired != 1 {
		t.Fatalf("Fire did not spend ammo: ammo %d fired %d", s.Player.Ammo, s.Stats.ShotsFired)
	}

	run(s, 20, Input{})
	if s.Stats.ShotsHit != 1 {
		t.Fatalf("ShotsHit = %d, want 1", s.Stats.ShotsHit)
	}
	if e := s.Enemies[0]; e.Health != 45-15 {
		t.Errorf("Enemy health = %d, want 30", e.Health)
	}
	if s.Particles.Len() == 0 {
		t.Errorf("Hit produced no blood")
	}
}

func TestDamageEnemyKill(t *testing.T) {
	s := newTestSession(t, nil)
	e := s.Enemies[1]
	if e.Template.Name != "e2" {
		t.Fatalf("Expected an e2 in slot 1, got %s", e.Template.Name)
	}

	s.DamageEnemy(e, 50)
	if !e.Dying {
		t.Fatalf("Enemy with %d health survived 50 damage", e.MaxHealth)
	}
	if s.Stats.Kills != 1 || s.Stats.Score != 100 {
		t.Errorf("Stats = %+v, want 1 kill and 100 score", s.Stats)
	}
	// Heavy hit and heavy kill: three bursts of 24.
	if n := s.Particles.Len(); n != 72 {
		t.Errorf("Particles = %d, want 72", n)
	}
	if s.AliveEnemies() != len(world.Tavern(ts).Enemies)-1 {
		t.Errorf("Dying enemy still counted as alive")
	}

	s.DamageEnemy(e, 50)
	if s.Stats.Kills != 1 {
		t.Errorf("Dying enemy was killed twice")
	}
}

func TestVictoryAfterDelay(t *testing.T) {
	s := newTestSession(t, nil)
	for _, e := range s.Enemies {
		s.DamageEnemy(e, 1000)
	}

	ticks := 0
	for s.State == StatePlaying && ticks < 300 {
		s.Update(tick, Input{})
		ticks++
	}
	if s.State != StateVictory {
		t.Fatalf("State = %v, want victory", s.State)
	}
	if want := int(math.Ceil(2000 / tick)); ticks != want {
		t.Errorf("Victory after %d ticks, want %d", ticks, want)
	}

	s.Update(tick, Input{Reset: true})
	if s.State != StatePlaying || s.AliveEnemies() != 5 || s.Stats.Kills != 0 {
		t.Errorf("Reset did not restore the level: state %v alive %d", s.State, s.AliveEnemies())
	}
}

func TestDeathRespawnAndGameOver(t *testing.T) {
	s := newTestSession(t, nil)
	lv := world.Tavern(ts)

	for lives := playerLives - 1; lives > 0; lives-- {
		s.Player.X += ts
		s.Player.Health = 0
		s.Update(tick, Input{})
		if s.State != StateDeath || s.Player.Lives != lives {
			t.Fatalf("State %v lives %d, want death with %d lives", s.State, s.Player.Lives, lives)
		}

		s.Update(tick, Input{Fire: true})
		if s.State != StatePlaying {
			t.Fatalf("Fire did not respawn, state %v", s.State)
		}
		p := s.Player
		if p.Health != p.MaxHealth || p.X != lv.PlayerX || p.Y != lv.PlayerY || p.DirX != 1 {
			t.Errorf("Respawn left player at (%v, %v) with %d health", p.X, p.Y, p.Health)
		}
		if s.Effects.DamageFlash() <= 0 {
			t.Errorf("Respawn should flash the screen")
		}
	}

	s.Player.Health = -5
	s.Update(tick, Input{})
	if s.State != StateGameOver || s.Player.Lives != 0 {
		t.Fatalf("State %v lives %d, want game over", s.State, s.Player.Lives)
	}

	s.Update(tick, Input{Fire: true})
	if s.State != StateGameOver {
		t.Errorf("Fire left the game over screen")
	}
	s.Update(tick, Input{Reset: true})
	if s.State != StatePlaying || s.Player.Lives != playerLives {
		t.Errorf("Reset did not restart: state %v lives %d", s.State, s.Player.Lives)
	}
}

func TestPickups(t *testing.T) {
	ammoSpawn := world.Tavern(ts).Props[0]
	shotgunSpawn := world.Tavern(ts).Props[7]

	t.Run("ammo respawns", func(t *testing.T) {
		s := newTestSession(t, nil)
		s.Player.X, s.Player.Y = ammoSpawn.X, ammoSpawn.Y
		s.Update(tick, Input{})
		if s.Player.Ammo != playerStartAmmo+pickupAmmo {
			t.Fatalf("Ammo = %d, want %d", s.Player.Ammo, playerStartAmmo+pickupAmmo)
		}
		pk := s.Pickups[0]
		if pk.Active {
			t.Fatalf("Pickup still active")
		}

		s.Player.X, s.Player.Y = 1.5*ts, 1.5*ts
		for i := 0; i < 24; i++ {
			s.clock += 1000
			s.updatePickups(1000)
		}
		if pk.Active {
			t.Fatalf("Pickup respawned early")
		}
		s.clock += 1000
		s.updatePickups(1000)
		if !pk.Active {
			t.Errorf("Pickup did not respawn after %v ms", ammoSpawn.RespawnMs)
		}
	})

	t.Run("shotgun unlocks and switches", func(t *testing.T) {
		s := newTestSession(t, nil)
		s.Player.X, s.Player.Y = shotgunSpawn.X, shotgunSpawn.Y
		s.Update(tick, Input{})
		if s.Arsenal.CurrentIndex() != shotgunSlot || !s.Arsenal.Current().Available {
			t.Errorf("Shotgun not selected after pickup")
		}
		if s.Player.Ammo != playerStartAmmo+shotgunPickupAmmo {
			t.Errorf("Ammo = %d", s.Player.Ammo)
		}
		if s.Pickups[7].RespawnMs != world.RespawnNever {
			t.Errorf("Shotgun should never respawn")
		}
	})

	t.Run("health caps", func(t *testing.T) {
		s := newTestSession(t, nil)
		hp := world.Tavern(ts).Props[8]
		s.Player.Health = 95
		s.Player.X, s.Player.Y = hp.X, hp.Y
		s.Update(tick, Input{})
		if s.Player.Health != playerMaxHealth {
			t.Errorf("Health = %d, want %d", s.Player.Health, playerMaxHealth)
		}
	})
}

func TestReinforcementsSpawnOnRoomChange(t *testing.T) {
	s := newTestSession(t, nil)
	start := len(s.Enemies)

	// Walk through the open door into the hall.
	s.Doors().DoorAt(9, 7).Toggle(nil, 0, 0)
	s.Player.X, s.Player.Y = 8.2*ts, 7.5*ts
	s.Update(tick, Input{})
	s.Player.X = 10.5 * ts
	s.Update(tick, Input{})

	if got := len(s.Enemies) - start; got != reinforcementBatch {
		t.Fatalf("Spawned %d enemies, want %d", got, reinforcementBatch)
	}
	if s.reinforcements.Total() != start+reinforcementBatch {
		t.Errorf("Total = %d", s.reinforcements.Total())
	}
}

func TestOnlyLivingEnemiesFlash(t *testing.T) {
	s := newTestSession(t, nil)
	wounded, killed := s.Enemies[0], s.Enemies[1]

	s.DamageEnemy(wounded, 1)
	s.DamageEnemy(killed, killed.Health+1000)
	if wounded.Dying || !killed.Dying {
		t.Fatalf("Setup failed: wounded dying %v, killed dying %v", wounded.Dying, killed.Dying)
	}

	sprites := s.Sprites()
	if !sprites[0].HitFlash {
		t.Errorf("Wounded enemy sprite should flash")
	}
	if sprites[1].HitFlash {
		t.Errorf("Dying enemy sprite should not flash")
	}
}

func TestSpritesAndOverlay(t *testing.T) {
	s := newTestSession(t, nil)
	lv := world.Tavern(ts)

	sprites := s.Sprites()
	if len(sprites) != len(lv.Enemies)+len(lv.Props) {
		t.Fatalf("Got %d sprites, want %d", len(sprites), len(lv.Enemies)+len(lv.Props))
	}
	kinds := map[string]int{}
	for _, sp := range sprites {
		kinds[sp.Kind.String()]++
	}
	if kinds["enemy"] != 5 || kinds["decoration"] != 5 || kinds["pickup"] != 10 {
		t.Errorf("Unexpected sprite kinds %v", kinds)
	}

	ov := s.Overlay()
	if ov.Weapon == nil || ov.Weapon.TextureID != 40 {
		t.Errorf("Expected pistol raising frame, got %+v", ov.Weapon)
	}
	if !ov.Crosshair {
		t.Errorf("Crosshair hidden while playing")
	}

	s.State = StatePaused
	if s.Overlay().Crosshair {
		t.Errorf("Crosshair shown while paused")
	}

	s.Update(0, Input{Escape: true})
	s.Update(tick, Input{Splatter: true})
	if got := len(s.Sprites()) - len(sprites); got != particleBaseCount {
		t.Errorf("Splatter key added %d particle sprites, want %d", got, particleBaseCount)
	}
}

func TestFaceAnimation(t *testing.T) {
	s := newTestSession(t, nil)
	s.updateFace(faceFrameMs - 1)
	if s.FaceFrame() != 0 {
		t.Fatalf("Face frame advanced early")
	}
	for want := 1; want <= 3; want++ {
		s.updateFace(faceFrameMs)
		if s.FaceFrame() != want%3 {
			t.Errorf("Face frame = %d, want %d", s.FaceFrame(), want%3)
		}
	}
}

func TestStatsAccuracy(t *testing.T) {
	if (Stats{}).Accuracy() != 0 {
		t.Errorf("Accuracy without shots should be 0")
	}
	if a := (Stats{ShotsFired: 4, ShotsHit: 1}).Accuracy(); a != 25 {
		t.Errorf("Accuracy = %v, want 25", a)
	}
}

func TestSessionRoster(t *testing.T) {
	roster := DefaultRoster()
	e2 := roster["e2"]
	e2.Health = 1
	roster["e2"] = e2

	lv := world.Tavern(ts)
	lv.Enemies = append(lv.Enemies, world.EnemySpawn{Template: "ghost", X: 5.5 * ts, Y: 5.5 * ts})
	s, err := NewSession(config.Default(), lv, logging.Discard(), nil, WithRoster(roster))
	if err != nil {
		t.Fatal(err)
	}

	for _, e := range s.Enemies {
		want := roster["e1"].Health
		if e.Template.Name == "e2" {
			want = 1
		}
		if e.Health != want {
			t.Errorf("Enemy %d (%s) health = %d, want %d", e.ID, e.Template.Name, e.Health, want)
		}
	}
	if last := s.Enemies[len(s.Enemies)-1]; last.Template.Name != FallbackTemplate {
		t.Errorf("Unknown template spawned as %q", last.Template.Name)
	}
}
