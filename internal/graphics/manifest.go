package graphics

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TextureKind selects the procedural pattern used when an image file is missing.
type TextureKind string

const (
	KindWall   TextureKind = "wall"
	KindSprite TextureKind = "sprite"
	KindWeapon TextureKind = "weapon"
	KindDot    TextureKind = "dot"
	KindFace   TextureKind = "face"
)

// Face textures start at FaceTextureBase, FaceFrames per health state.
const (
	FaceTextureBase = 48
	FaceFrames      = 3
)

// TextureEntry maps a texture id to an image file.
type TextureEntry struct {
	ID   int         `yaml:"id"`
	File string      `yaml:"file"`
	Kind TextureKind `yaml:"kind"`
	// Color tints the procedural fallback.
	Color [3]uint8 `yaml:"color"`
	// FallbackID is reused when File cannot be loaded; 0 means none.
	FallbackID int `yaml:"fallback_id"`
}

// Manifest lists every texture the game uses.
type Manifest struct {
	Directory string         `yaml:"directory"`
	Textures  []TextureEntry `yaml:"textures"`
}

// LoadManifest reads a texture manifest from a yaml file
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture manifest %s: %w", path, err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse texture manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("texture manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate rejects duplicate ids and unknown kinds.
func (m *Manifest) Validate() error {
	seen := make(map[int]bool, len(m.Textures))
	for _, e := range m.Textures {
		if e.ID <= 0 {
			return fmt.Errorf("invalid texture id %d", e.ID)
		}
		if seen[e.ID] {
			return fmt.Errorf("duplicate texture id %d", e.ID)
		}
		seen[e.ID] = true

		switch e.Kind {
		case KindWall, KindSprite, KindWeapon, KindDot, KindFace, "":
		default:
			return fmt.Errorf("texture %d: unknown kind %q", e.ID, e.Kind)
		}
	}
	return nil
}

// DefaultManifest is the built-in texture list for the tavern level. Files
// live under assets/textures; every entry has a procedural fallback.
func DefaultManifest() *Manifest {
	wall := func(id int, file string, c [3]uint8) TextureEntry {
		return TextureEntry{ID: id, File: file, Kind: KindWall, Color: c}
	}
	sprite := func(id int, file string, c [3]uint8) TextureEntry {
		return TextureEntry{ID: id, File: file, Kind: KindSprite, Color: c}
	}
	weapon := func(id int, file string, c [3]uint8) TextureEntry {
		return TextureEntry{ID: id, File: file, Kind: KindWeapon, Color: c}
	}

	m := &Manifest{Directory: "assets/textures"}
	m.Textures = append(m.Textures,
		wall(1, "stone_wall.png", [3]uint8{128, 128, 128}),
		wall(2, "cooler.png", [3]uint8{139, 69, 19}),
		wall(3, "wall_wht.png", [3]uint8{210, 200, 190}),
		wall(4, "building_1.png", [3]uint8{160, 82, 45}),
		wall(5, "bar_2r.png", [3]uint8{120, 70, 30}),
		wall(6, "bar_1.png", [3]uint8{130, 75, 35}),
		wall(7, "bar_2l.png", [3]uint8{120, 70, 30}),
		wall(8, "booth.png", [3]uint8{72, 61, 139}),
		wall(13, "Projector1.png", [3]uint8{105, 105, 105}),
		wall(14, "Projector2.png", [3]uint8{105, 105, 105}),
		wall(15, "wall_door.png", [3]uint8{210, 180, 140}),
		TextureEntry{ID: 36, File: "bar_1c.png", Kind: KindWall, Color: [3]uint8{130, 75, 35}, FallbackID: 6},
		TextureEntry{ID: 37, File: "bar1c.png", Kind: KindWall, Color: [3]uint8{130, 75, 35}, FallbackID: 36},
		TextureEntry{ID: 38, File: "booth2.png", Kind: KindWall, Color: [3]uint8{72, 61, 139}, FallbackID: 8},
		wall(70, "building_logo.png", [3]uint8{180, 40, 40}),
		wall(90, "door1.png", [3]uint8{139, 69, 19}),
	)

	animation := func(first int, prefix string, c [3]uint8) {
		for i := 0; i < 4; i++ {
			m.Textures = append(m.Textures, sprite(first+i, fmt.Sprintf("%s%d.png", prefix, i+1), c))
		}
	}
	animation(32, "enemy1_walk", [3]uint8{60, 90, 160})
	animation(16, "enemy1_shoot", [3]uint8{80, 110, 190})
	animation(24, "enemy1_death", [3]uint8{90, 40, 40})
	animation(9, "enemy2_walk", [3]uint8{150, 120, 60})
	animation(20, "enemy2_shoot", [3]uint8{180, 150, 80})
	animation(28, "enemy2_death", [3]uint8{110, 50, 30})

	m.Textures = append(m.Textures,
		weapon(40, "weapon_up1.png", [3]uint8{70, 70, 80}),
		weapon(41, "weapon_up2.png", [3]uint8{70, 70, 80}),
		weapon(42, "weapon_fire1.png", [3]uint8{230, 200, 90}),
		weapon(43, "weapon_fire2.png", [3]uint8{200, 160, 70}),
		weapon(44, "shotgun_up1.png", [3]uint8{100, 70, 40}),
		weapon(45, "shotgun_up2.png", [3]uint8{100, 70, 40}),
		weapon(46, "shotgun_fire1.png", [3]uint8{240, 190, 80}),
		weapon(47, "shotgun_fire2.png", [3]uint8{210, 150, 60}),
		TextureEntry{ID: 68, File: "health_pack.png", Kind: KindDot, Color: [3]uint8{220, 30, 30}},
		sprite(69, "ammo_box.png", [3]uint8{200, 170, 40}),
		sprite(71, "keg1.png", [3]uint8{120, 80, 40}),
		sprite(72, "table.png", [3]uint8{110, 70, 35}),
		sprite(73, "shotgun_item.png", [3]uint8{90, 60, 30}),
	)

	// HUD faces: five health states with three frames each. The second and
	// third frames reuse the first when missing.
	faceColors := [][3]uint8{{100, 255, 100}, {255, 255, 100}, {255, 200, 100}, {255, 150, 100}, {128, 128, 128}}
	for state, name := range []string{"100", "75", "50", "25", "dead"} {
		base := FaceTextureBase + state*FaceFrames
		for frame := 0; frame < FaceFrames; frame++ {
			e := TextureEntry{
				ID:    base + frame,
				File:  fmt.Sprintf("face%d_%s.png", frame+1, name),
				Kind:  KindFace,
				Color: faceColors[state],
			}
			if frame > 0 {
				e.FallbackID = base
			}
			m.Textures = append(m.Textures, e)
		}
	}
	return m
}
