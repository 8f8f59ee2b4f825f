package graphics

import (
	"taproom/internal/mathutil"
	"taproom/internal/render"
)

// Procedural builds a stand-in texture for a missing image. Walls are opaque
// bricks; sprites, weapons and dots are opaque shapes on a transparent
// background so the alpha test still cuts their outline.
func Procedural(kind TextureKind, c [3]uint8, size int) *render.Texture {
	tex := render.NewTexture(size)
	switch kind {
	case KindSprite:
		figure(tex, c)
	case KindWeapon:
		barrel(tex, c)
	case KindDot:
		dot(tex, c)
	case KindFace:
		face(tex, c)
	default:
		bricks(tex, c)
	}
	return tex
}

func shadeOf(c [3]uint8, f float64) (uint8, uint8, uint8) {
	return mathutil.ClampByte(float64(c[0]) * f),
		mathutil.ClampByte(float64(c[1]) * f),
		mathutil.ClampByte(float64(c[2]) * f)
}

func bricks(tex *render.Texture, c [3]uint8) {
	n := tex.Size
	rowH := mathutil.IntMax(1, n/4)
	brickW := mathutil.IntMax(1, n/2)
	mr, mg, mb := shadeOf(c, 0.55)

	for v := 0; v < n; v++ {
		row := v / rowH
		offset := (row % 2) * brickW / 2
		for u := 0; u < n; u++ {
			if v%rowH == 0 || (u+offset)%brickW == 0 {
				tex.Set(u, v, mr, mg, mb, 255)
				continue
			}
			// Slight per-brick variation.
			f := 0.9 + float64((row*7+(u+offset)/brickW*3)%5)*0.04
			r, g, b := shadeOf(c, f)
			tex.Set(u, v, r, g, b, 255)
		}
	}
}

func figure(tex *render.Texture, c [3]uint8) {
	n := float64(tex.Size)
	cx := n / 2
	headY, headR := n*0.2, n*0.12
	dr, dg, db := shadeOf(c, 0.7)

	for v := 0; v < tex.Size; v++ {
		y := float64(v) + 0.5
		for u := 0; u < tex.Size; u++ {
			x := float64(u) + 0.5
			dx, dy := x-cx, y-headY
			switch {
			case dx*dx+dy*dy <= headR*headR:
				tex.Set(u, v, c[0], c[1], c[2], 255)
			case y > n*0.32 && y < n*0.95 && abs(dx) < n*(0.12+0.1*(y/n)):
				tex.Set(u, v, dr, dg, db, 255)
			}
		}
	}
}

func barrel(tex *render.Texture, c [3]uint8) {
	n := tex.Size
	lr, lg, lb := shadeOf(c, 1.2)
	for v := n / 3; v < n; v++ {
		half := n/10 + (v-n/3)/4
		for u := n/2 - half; u < n/2+half; u++ {
			if u == n/2-half || u == n/2+half-1 {
				tex.Set(u, v, lr, lg, lb, 255)
				continue
			}
			tex.Set(u, v, c[0], c[1], c[2], 255)
		}
	}
}

func dot(tex *render.Texture, c [3]uint8) {
	n := float64(tex.Size)
	r := n * 0.4
	for v := 0; v < tex.Size; v++ {
		for u := 0; u < tex.Size; u++ {
			dx, dy := float64(u)+0.5-n/2, float64(v)+0.5-n/2
			if dx*dx+dy*dy <= r*r {
				tex.Set(u, v, c[0], c[1], c[2], 255)
			}
		}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func face(tex *render.Texture, c [3]uint8) {
	dot(tex, c)
	n := tex.Size
	er, eg, eb := shadeOf(c, 0.25)
	eye := mathutil.IntMax(1, n/10)
	for _, ex := range []int{n * 3 / 8, n * 5 / 8} {
		for v := n*3/8 - eye/2; v < n*3/8+eye/2+1; v++ {
			for u := ex - eye/2; u < ex+eye/2+1; u++ {
				tex.Set(u, v, er, eg, eb, 255)
			}
		}
	}
	for u := n * 3 / 8; u < n*5/8; u++ {
		tex.Set(u, n*5/8, er, eg, eb, 255)
	}
}
