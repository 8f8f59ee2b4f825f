package game

import "math"

// WeaponState is the animation state of the held weapon.
type WeaponState int

const (
	WeaponHidden WeaponState = iota
	WeaponComingUp
	WeaponReady
	WeaponFiring
)

func (s WeaponState) String() string {
	switch s {
	case WeaponHidden:
		return "hidden"
	case WeaponComingUp:
		return "coming_up"
	case WeaponReady:
		return "ready"
	case WeaponFiring:
		return "firing"
	}
	return "unknown"
}

const weaponFrameMs = 150

// Weapon is one slot of the arsenal.
type Weapon struct {
	Name         string
	UpTextures   []int
	FireTextures []int
	FireAnimMs   float64
	FireRateMs   float64
	Damage       int
	Available    bool

	State      WeaponState
	Frame      int
	frameTimer float64
	fireStart  float64
}

func (w *Weapon) lastUpFrame() int { return len(w.UpTextures) - 1 }

func (w *Weapon) raise() {
	w.State = WeaponComingUp
	w.Frame = 0
	w.frameTimer = 0
}

// TextureID returns the overlay texture for the current state.
func (w *Weapon) TextureID() (int, bool) {
	switch w.State {
	case WeaponComingUp:
		return w.UpTextures[w.Frame], true
	case WeaponFiring:
		return w.FireTextures[w.Frame], true
	case WeaponReady:
		return w.UpTextures[w.lastUpFrame()], true
	}
	return 0, false
}

func (w *Weapon) update(dtMs, now float64) {
	switch w.State {
	case WeaponComingUp:
		w.frameTimer += dtMs
		if w.frameTimer >= weaponFrameMs {
			w.frameTimer = 0
			w.Frame++
			if w.Frame >= len(w.UpTextures) {
				w.State = WeaponReady
				w.Frame = w.lastUpFrame()
			}
		}
	case WeaponFiring:
		w.frameTimer += dtMs
		if w.frameTimer >= weaponFrameMs {
			w.frameTimer = 0
			w.Frame = (w.Frame + 1) % len(w.FireTextures)
		}
		if now-w.fireStart >= w.FireAnimMs {
			w.State = WeaponReady
			w.Frame = w.lastUpFrame()
		}
	}
}

func defaultWeapons() []*Weapon {
	return []*Weapon{
		{
			Name:         "Pistol",
			UpTextures:   []int{40, 41},
			FireTextures: []int{42, 43},
			FireAnimMs:   200,
			FireRateMs:   150,
			Damage:       15,
			Available:    true,
		},
		{
			Name:         "Shotgun",
			UpTextures:   []int{44, 45},
			FireTextures: []int{46, 47},
			FireAnimMs:   300,
			FireRateMs:   400,
			Damage:       50,
		},
	}
}

// Arsenal holds the weapons and tracks the held one.
type Arsenal struct {
	weapons  []*Weapon
	current  int
	lastShot float64
}

// NewArsenal returns the starting loadout with the pistol raised.
func NewArsenal() *Arsenal {
	a := &Arsenal{weapons: defaultWeapons(), lastShot: math.Inf(-1)}
	a.weapons[0].raise()
	return a
}

// Current returns the held weapon.
func (a *Arsenal) Current() *Weapon { return a.weapons[a.current] }

// CurrentIndex returns the 0-based slot of the held weapon.
func (a *Arsenal) CurrentIndex() int { return a.current }

// Weapon returns the weapon in slot i, or nil.
func (a *Arsenal) Weapon(i int) *Weapon {
	if i < 0 || i >= len(a.weapons) {
		return nil
	}
	return a.weapons[i]
}

// Unlock makes slot i selectable.
func (a *Arsenal) Unlock(i int) {
	if w := a.Weapon(i); w != nil {
		w.Available = true
	}
}

// Switch selects slot i. Selecting the held weapon while it is hidden
// raises it again; unavailable slots are ignored.
func (a *Arsenal) Switch(i int) bool {
	w := a.Weapon(i)
	if w == nil || !w.Available {
		return false
	}
	if i == a.current {
		if w.State == WeaponHidden {
			w.raise()
			return true
		}
		return false
	}

	a.Current().State = WeaponHidden
	a.current = i
	w.raise()
	return true
}

// Update advances the held weapon's animation.
func (a *Arsenal) Update(dtMs, now float64) {
	a.Current().update(dtMs, now)
}

// CanFire reports whether the held weapon is ready and there is ammo.
func (a *Arsenal) CanFire(ammo int) bool {
	return a.Current().State == WeaponReady && ammo > 0
}

// Fire starts the fire animation if the weapon can fire.
func (a *Arsenal) Fire(ammo int, now float64) bool {
	if !a.CanFire(ammo) {
		return false
	}
	w := a.Current()
	w.State = WeaponFiring
	w.Frame = 0
	w.frameTimer = 0
	w.fireStart = now
	return true
}

// AutoFire fires when the fire rate has elapsed since the last automatic shot.
func (a *Arsenal) AutoFire(ammo int, now float64) bool {
	if now-a.lastShot < a.Current().FireRateMs || !a.CanFire(ammo) {
		return false
	}
	a.lastShot = now
	return a.Fire(ammo, now)
}
