package render

import (
	"image/color"
	"math"
	"sort"

	"taproom/internal/mathutil"
)

// SpriteKind selects how a billboard is scaled and anchored.
type SpriteKind int

const (
	SpriteEnemy SpriteKind = iota
	SpriteDecoration
	SpritePickup
	SpriteParticle
)

func (k SpriteKind) String() string {
	switch k {
	case SpriteEnemy:
		return "enemy"
	case SpriteDecoration:
		return "decoration"
	case SpritePickup:
		return "pickup"
	case SpriteParticle:
		return "particle"
	}
	return "unknown"
}

// Scale is the size multiplier applied on top of the global sprite scale.
func (k SpriteKind) Scale() float64 {
	switch k {
	case SpriteDecoration:
		return 1.953125
	case SpritePickup:
		return 0.6
	case SpriteParticle:
		return 0.04
	}
	return 1
}

// spriteUnit converts projected height into pixels for a unit-scale sprite.
const spriteUnit = 32

// Sprite is one camera-facing billboard. Distance is only used for ordering;
// the caller computes it from the camera position.
type Sprite struct {
	Kind      SpriteKind
	X, Y      float64
	Distance  float64
	TextureID int
	Active    bool
	// Bob shifts non-enemy sprites vertically, in pixels.
	Bob      float64
	HitFlash bool
	// Tint replaces the texel color of particles.
	Tint color.RGBA
}

func (r *Renderer) drawSprites(f *Frame, cam Camera, sprites []Sprite) {
	r.visible = r.visible[:0]
	for _, s := range sprites {
		if s.Active {
			r.visible = append(r.visible, s)
		}
	}
	if len(r.visible) == 0 {
		return
	}

	// Far to near so closer billboards overwrite farther ones.
	sort.SliceStable(r.visible, func(i, j int) bool {
		return r.visible[i].Distance > r.visible[j].Distance
	})

	invDet := 1 / (cam.PlaneX*cam.DirY - cam.DirX*cam.PlaneY)
	if math.IsInf(invDet, 0) || math.IsNaN(invDet) {
		return
	}

	drawn := 0
	for i := range r.visible {
		if r.drawSprite(f, cam, invDet, &r.visible[i]) {
			drawn++
		}
	}
	if r.monitor != nil {
		r.monitor.AddSprites(drawn)
	}
}

// drawSprite projects one sprite and draws the stripes that pass the
// z-buffer test. It reports whether the sprite reached the projection stage.
func (r *Renderer) drawSprite(f *Frame, cam Camera, invDet float64, s *Sprite) bool {
	relX := s.X - cam.X
	relY := s.Y - cam.Y

	tx := invDet * (cam.DirY*relX - cam.DirX*relY)
	ty := invDet * (-cam.PlaneY*relX + cam.PlaneX*relY)
	if ty <= 0 || math.IsNaN(ty) || math.IsInf(ty, 0) || math.IsNaN(tx) {
		return false
	}

	w, h := float64(r.width), float64(r.height)
	screenX := math.Floor(w / 2 * (1 + tx/ty))
	size := mathutil.FloorInt(h / ty * r.gfx.SpriteScale * s.Kind.Scale() * spriteUnit)
	spriteH := mathutil.IntClamp(size, 1, r.height)
	spriteW := spriteH
	if spriteH < r.gfx.MinSpriteSize {
		return false
	}

	var vmove int
	if s.Kind == SpriteEnemy {
		// Enemies stand on the floor rather than float at eye level.
		vmove = int(math.Floor(float64(spriteH) * 0.25))
	} else {
		vmove = mathutil.FloorInt(s.Bob)
	}

	fh := float64(spriteH)
	startY := mathutil.IntMax(0, int(math.Floor(-fh/2+h/2+float64(vmove))))
	endY := mathutil.IntMin(r.viewHeight, int(math.Floor(fh/2+h/2+float64(vmove))))

	fw := float64(spriteW)
	startX := mathutil.IntMax(-spriteW, int(math.Floor(-fw/2+screenX)))
	endX := mathutil.IntMin(r.width+spriteW, int(math.Floor(fw/2+screenX)))
	if endX <= startX {
		return false
	}

	tex, ok := r.textures.Texture(s.TextureID)
	if !ok {
		return false
	}
	texSize := tex.Size

	brightness := math.Max(r.gfx.SpriteShadeMin, 1-ty/r.shadeDistance)
	px := f.Pixels

	for stripe := startX; stripe < endX; stripe++ {
		if stripe < 0 || stripe >= r.width || ty >= f.ZBuffer[stripe] {
			continue
		}
		texX := (stripe - startX) * texSize / (endX - startX)
		if texX < 0 || texX >= texSize {
			continue
		}
		for y := startY; y < endY; y++ {
			d := (y-vmove)*256 - r.height*128 + spriteH*128
			texY := mathutil.FloorInt(float64(d*texSize) / fh / 256)
			if texY < 0 || texY >= texSize {
				continue
			}
			tr, tg, tb, ta := tex.At(texX, texY)
			if ta <= r.gfx.AlphaThreshold {
				continue
			}

			var cr, cg, cb float64
			if s.Kind == SpriteParticle {
				cr, cg, cb = float64(s.Tint.R), float64(s.Tint.G), float64(s.Tint.B)
			} else {
				cr = math.Floor(float64(tr) * brightness)
				cg = math.Floor(float64(tg) * brightness)
				cb = math.Floor(float64(tb) * brightness)
			}
			if s.HitFlash && s.Kind == SpriteEnemy {
				cr += 100
				cg -= 50
				cb -= 50
			}
			px.SetRGB(stripe, y, mathutil.ClampByte(cr), mathutil.ClampByte(cg), mathutil.ClampByte(cb))
		}
	}
	return true
}
