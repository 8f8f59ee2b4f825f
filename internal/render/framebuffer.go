package render

import (
	"image"
	"image/color"
)

// Framebuffer is an RGBA pixel buffer. It wraps image.RGBA so frontends can
// hand Pix straight to their blit call.
type Framebuffer struct {
	*image.RGBA
	Width  int
	Height int
}

// NewFramebuffer allocates a cleared framebuffer.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		RGBA:   image.NewRGBA(image.Rect(0, 0, width, height)),
		Width:  width,
		Height: height,
	}
}

// Clear sets every pixel to opaque black.
func (fb *Framebuffer) Clear() {
	pix := fb.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i] = 0
		pix[i+1] = 0
		pix[i+2] = 0
		pix[i+3] = 255
	}
}

// SetRGB writes an opaque pixel. Callers keep x and y in range.
func (fb *Framebuffer) SetRGB(x, y int, r, g, b uint8) {
	i := y*fb.Stride + x*4
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
	fb.Pix[i+3] = 255
}

// RGB reads a pixel.
func (fb *Framebuffer) RGB(x, y int) (uint8, uint8, uint8) {
	i := y*fb.Stride + x*4
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]
}

// CopyFrom copies the pixels of another framebuffer of the same size.
func (fb *Framebuffer) CopyFrom(src *Framebuffer) {
	copy(fb.Pix, src.Pix)
}

// Blit copies the frame into dst shifted by the frame's shake offset.
// Uncovered destination pixels are filled with black.
func Blit(dst *image.RGBA, frame *Frame) {
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetRGBA(x, y, color.RGBA{A: 255})
		}
	}

	src := frame.Pixels
	for sy := 0; sy < src.Height; sy++ {
		dy := sy + frame.ShakeY
		if dy < b.Min.Y || dy >= b.Max.Y {
			continue
		}
		for sx := 0; sx < src.Width; sx++ {
			dx := sx + frame.ShakeX
			if dx < b.Min.X || dx >= b.Max.X {
				continue
			}
			si := sy*src.Stride + sx*4
			di := dst.PixOffset(dx, dy)
			copy(dst.Pix[di:di+4], src.Pix[si:si+4])
		}
	}
}
