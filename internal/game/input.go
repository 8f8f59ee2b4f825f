package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input is one tick of player intent. Held fields are level-triggered;
// the rest are edges and fire once per key press.
type Input struct {
	Forward, Backward       bool
	StrafeLeft, StrafeRight bool
	TurnLeft, TurnRight     bool
	// FireHeld keeps the weapon firing at its fire rate.
	FireHeld bool

	Fire     bool
	Weapon   int // 1-based weapon slot, 0 for none
	Pause    bool
	Escape   bool
	Interact bool
	Splatter bool
	Reset    bool
	Debug    bool
}

// Moving reports whether any movement key is held.
func (in Input) Moving() bool {
	return in.Forward || in.Backward || in.StrafeLeft || in.StrafeRight
}

func anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}

func anyJustPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if inpututil.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

// PollKeyboard reads the ebiten keyboard state into an Input.
func PollKeyboard() Input {
	in := Input{
		Forward:     anyPressed(ebiten.KeyW, ebiten.KeyUp),
		Backward:    anyPressed(ebiten.KeyS, ebiten.KeyDown),
		StrafeLeft:  anyPressed(ebiten.KeyA),
		StrafeRight: anyPressed(ebiten.KeyD),
		TurnLeft:    anyPressed(ebiten.KeyLeft),
		TurnRight:   anyPressed(ebiten.KeyRight),
		FireHeld:    anyPressed(ebiten.KeySpace),

		Fire:     anyJustPressed(ebiten.KeySpace, ebiten.KeyEnter) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Pause:    anyJustPressed(ebiten.KeyP),
		Escape:   anyJustPressed(ebiten.KeyEscape),
		Interact: anyJustPressed(ebiten.KeyE),
		Splatter: anyJustPressed(ebiten.KeyB),
		Reset:    anyJustPressed(ebiten.KeyF5),
		Debug:    anyJustPressed(ebiten.KeyF1),
	}
	switch {
	case anyJustPressed(ebiten.Key1):
		in.Weapon = 1
	case anyJustPressed(ebiten.Key2):
		in.Weapon = 2
	}
	return in
}
