package graphics

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"taproom/internal/render"
)

// TextureManager owns the texture table shared by the renderer and the HUD.
type TextureManager struct {
	size     int
	textures render.TextureMap
	images   map[int]*ebiten.Image // HUD copies, created on first use
	log      logrus.FieldLogger
}

// LoadStats summarises a Load call.
type LoadStats struct {
	Loaded     int
	Aliased    int
	Procedural int
}

func NewTextureManager(size int, log logrus.FieldLogger) *TextureManager {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TextureManager{
		size:     size,
		textures: make(render.TextureMap),
		images:   make(map[int]*ebiten.Image),
		log:      log,
	}
}

// Texture implements render.TextureTable.
func (tm *TextureManager) Texture(id int) (*render.Texture, bool) {
	return tm.textures.Texture(id)
}

// Set registers a texture, replacing any previous one with the same id.
func (tm *TextureManager) Set(id int, tex *render.Texture) {
	tm.textures[id] = tex
	delete(tm.images, id)
}

// Len returns the number of registered textures.
func (tm *TextureManager) Len() int { return len(tm.textures) }

// Load decodes every manifest entry from baseDir. Files that are missing or
// fail to decode fall back first to the entry's FallbackID, then to a
// procedural pattern, so Load only fails on I/O errors other than "not found".
func (tm *TextureManager) Load(m *Manifest, baseDir string) (LoadStats, error) {
	var stats LoadStats
	dir := filepath.Join(baseDir, m.Directory)

	var pending []TextureEntry
	for _, e := range m.Textures {
		tex, err := tm.loadFile(filepath.Join(dir, e.File))
		switch {
		case err == nil:
			tm.Set(e.ID, tex)
			stats.Loaded++
			tm.log.WithFields(logrus.Fields{"id": e.ID, "file": e.File}).Debug("loaded texture")
		case errors.Is(err, fs.ErrNotExist) || errors.Is(err, errDecode):
			tm.log.WithFields(logrus.Fields{"id": e.ID, "file": e.File}).Debug("texture file unavailable")
			pending = append(pending, e)
		default:
			return stats, err
		}
	}

	// Aliases may chain, so resolve until a pass makes no progress.
	for progress := true; progress && len(pending) > 0; {
		progress = false
		rest := pending[:0]
		for _, e := range pending {
			if src, ok := tm.textures[e.FallbackID]; ok && e.FallbackID != 0 {
				tm.Set(e.ID, src)
				stats.Aliased++
				progress = true
				continue
			}
			rest = append(rest, e)
		}
		pending = rest
	}

	for _, e := range pending {
		tm.Set(e.ID, Procedural(e.Kind, e.Color, tm.size))
		stats.Procedural++
	}

	tm.log.WithFields(logrus.Fields{
		"loaded":     stats.Loaded,
		"aliased":    stats.Aliased,
		"procedural": stats.Procedural,
	}).Info("textures ready")
	return stats, nil
}

var errDecode = errors.New("decode texture")

func (tm *TextureManager) loadFile(path string) (*render.Texture, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	tex, err := DecodeTexture(file, tm.size)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", errDecode, path, err)
	}
	return tex, nil
}

// DecodeTexture decodes an image and resamples it to a size x size texture.
func DecodeTexture(r io.Reader, size int) (*render.Texture, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	tex := render.NewTexture(size)
	copy(tex.Pix, dst.Pix)
	return tex, nil
}

// Image returns an ebiten copy of a texture for 2D drawing, or nil when the
// id is unknown.
func (tm *TextureManager) Image(id int) *ebiten.Image {
	if img, ok := tm.images[id]; ok {
		return img
	}
	tex, ok := tm.textures.Texture(id)
	if !ok {
		return nil
	}

	img := ebiten.NewImage(tex.Size, tex.Size)
	img.WritePixels(premultiply(tex.Pix))
	tm.images[id] = img
	return img
}

// premultiply converts straight alpha texels to the premultiplied layout
// WritePixels expects.
func premultiply(pix []uint8) []uint8 {
	out := make([]uint8, len(pix))
	for i := 0; i < len(pix); i += 4 {
		a := uint16(pix[i+3])
		out[i] = uint8(uint16(pix[i]) * a / 255)
		out[i+1] = uint8(uint16(pix[i+1]) * a / 255)
		out[i+2] = uint8(uint16(pix[i+2]) * a / 255)
		out[i+3] = pix[i+3]
	}
	return out
}
