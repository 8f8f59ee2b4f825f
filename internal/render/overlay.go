package render

import (
	"math"

	"taproom/internal/mathutil"
)

const (
	weaponWidth  = 150
	weaponHeight = 120
	weaponGap    = 8
	weaponBobHz  = 0.006
	weaponBobAmp = 6

	crosshairArm       = 6
	crosshairThickness = 2

	borderWidth = 20
)

// WeaponOverlay is the held weapon drawn over the view.
type WeaponOverlay struct {
	TextureID int
	// WalkTimer drives the sway; it advances only while the player moves.
	WalkTimer float64
}

// Overlay carries the per-frame 2D layers and effects. Intensities are in [0, 1].
type Overlay struct {
	Weapon    *WeaponOverlay
	Crosshair bool

	DamageFlash float64
	LowHealth   float64
	// Pulse modulates the low-health border.
	Pulse float64

	ShakeX, ShakeY float64
}

func (r *Renderer) drawWeapon(f *Frame, w WeaponOverlay) {
	tex, ok := r.textures.Texture(w.TextureID)
	if !ok {
		return
	}

	bob := math.Sin(w.WalkTimer*weaponBobHz) * weaponBobAmp
	baseY := float64(r.viewHeight) - weaponHeight + weaponGap
	originX := mathutil.RoundHalfUp(float64(r.width)/2 - weaponWidth/2 + bob)
	originY := mathutil.RoundHalfUp(baseY - bob*0.5)

	px := f.Pixels
	for y := 0; y < weaponHeight; y++ {
		sy := originY + y
		if sy < 0 || sy >= r.height {
			continue
		}
		texY := y * tex.Size / weaponHeight
		for x := 0; x < weaponWidth; x++ {
			sx := originX + x
			if sx < 0 || sx >= r.width {
				continue
			}
			tr, tg, tb, ta := tex.At(x*tex.Size/weaponWidth, texY)
			if ta > r.gfx.AlphaThreshold {
				px.SetRGB(sx, sy, tr, tg, tb)
			}
		}
	}
}

func (r *Renderer) drawCrosshair(f *Frame) {
	cx, cy := r.width/2, r.height/2
	px := f.Pixels
	plot := func(x, y int) {
		if x >= 0 && x < r.width && y >= 0 && y < r.viewHeight {
			px.SetRGB(x, y, 255, 255, 255)
		}
	}
	for d := -crosshairArm; d <= crosshairArm; d++ {
		for t := 0; t < crosshairThickness; t++ {
			off := t - crosshairThickness/2
			plot(cx+d, cy+off)
			plot(cx+off, cy+d)
		}
	}
}

// applyEffects adds the red damage wash over the whole frame and the pulsing
// border over the view area.
func (r *Renderer) applyEffects(f *Frame, ov Overlay) {
	pix := f.Pixels.Pix
	if i := ov.DamageFlash; i > 0 {
		for p := 0; p < len(pix); p += 4 {
			pix[p] = mathutil.ClampByte(float64(pix[p]) + i*100)
			pix[p+1] = mathutil.ClampByte(float64(pix[p+1]) - i*50)
			pix[p+2] = mathutil.ClampByte(float64(pix[p+2]) - i*50)
		}
	}

	if ov.LowHealth <= 0 {
		return
	}
	strength := ov.LowHealth * ov.Pulse
	stride := f.Pixels.Stride
	for y := 0; y < r.viewHeight; y++ {
		for x := 0; x < r.width; x++ {
			d := mathutil.IntMin(mathutil.IntMin(x, r.width-x), mathutil.IntMin(y, r.viewHeight-y))
			if d >= borderWidth {
				continue
			}
			p := y*stride + x*4
			pix[p] = mathutil.ClampByte(float64(pix[p]) + strength*(1-float64(d)/borderWidth)*80)
		}
	}
}
