package render

// Texture is a square RGBA image sampled by wall and sprite rendering.
type Texture struct {
	Size int
	Pix  []uint8
}

// NewTexture allocates a transparent size x size texture.
func NewTexture(size int) *Texture {
	return &Texture{Size: size, Pix: make([]uint8, size*size*4)}
}

// At returns the texel at (u, v). Callers keep u and v in [0, Size).
func (t *Texture) At(u, v int) (r, g, b, a uint8) {
	i := (v*t.Size + u) * 4
	return t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]
}

// Set writes a texel.
func (t *Texture) Set(u, v int, r, g, b, a uint8) {
	i := (v*t.Size + u) * 4
	t.Pix[i] = r
	t.Pix[i+1] = g
	t.Pix[i+2] = b
	t.Pix[i+3] = a
}

// Fill sets every texel to one color.
func (t *Texture) Fill(r, g, b, a uint8) {
	for v := 0; v < t.Size; v++ {
		for u := 0; u < t.Size; u++ {
			t.Set(u, v, r, g, b, a)
		}
	}
}

// TextureTable resolves texture ids. A missing id makes the renderer skip
// whatever wanted to draw with it.
type TextureTable interface {
	Texture(id int) (*Texture, bool)
}

// TextureMap is the simple map-backed TextureTable.
type TextureMap map[int]*Texture

func (m TextureMap) Texture(id int) (*Texture, bool) {
	t, ok := m[id]
	return t, ok && t != nil
}
