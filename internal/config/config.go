package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	World    WorldConfig    `yaml:"world"`
	Movement MovementConfig `yaml:"movement"`
	Camera   CameraConfig   `yaml:"camera"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Effects  EffectsConfig  `yaml:"effects"`
	Logging  LoggingConfig  `yaml:"logging"`
	Assets   AssetsConfig   `yaml:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	HUDHeight    int    `yaml:"hud_height"`
	WindowTitle  string `yaml:"window_title"`
	WindowScale  int    `yaml:"window_scale"`
	Resizable    bool   `yaml:"resizable"`
}

type WorldConfig struct {
	TileSize  int `yaml:"tile_size"`
	MapWidth  int `yaml:"map_width"`
	MapHeight int `yaml:"map_height"`
	// RayStepDivisor is the number of march steps per tile. Values below 64 can skip thin walls.
	RayStepDivisor   int     `yaml:"ray_step_divisor"`
	MaxRayDistance   float64 `yaml:"max_ray_distance"`
	InteractionReach float64 `yaml:"interaction_reach"` // in tiles
}

type MovementConfig struct {
	MoveSpeed         float64 `yaml:"move_speed"`     // world units per millisecond
	RotationSpeed     float64 `yaml:"rotation_speed"` // radians per millisecond
	PlayerWallBuffer  float64 `yaml:"player_wall_buffer"`
	PlayerTableRadius float64 `yaml:"player_table_radius"`
	TableRadius       float64 `yaml:"table_radius"`
	EnemyPadding      float64 `yaml:"enemy_padding"`
}

type CameraConfig struct {
	PlaneLength float64 `yaml:"plane_length"`
}

type GraphicsConfig struct {
	TextureSize     int          `yaml:"texture_size"`
	SpriteScale     float64      `yaml:"sprite_scale"`
	WallShadeMin    float64      `yaml:"wall_shade_min"`
	SpriteShadeMin  float64      `yaml:"sprite_shade_min"`
	ShadeDistance   float64      `yaml:"shade_distance"` // in tiles
	SideShade       float64      `yaml:"side_shade"`
	AlphaThreshold  uint8        `yaml:"alpha_threshold"`
	MinSpriteSize   int          `yaml:"min_sprite_size"`
	ParallelColumns bool         `yaml:"parallel_columns"`
	Colors          ColorsConfig `yaml:"colors"`
	WalkwayZone     ZoneConfig   `yaml:"walkway_zone"`
}

type ColorsConfig struct {
	Exterior [3]int `yaml:"exterior"`
	Interior [3]int `yaml:"interior"`
	Walkway  [3]int `yaml:"walkway"`
	Stone    [3]int `yaml:"stone"`
	Sky      [3]int `yaml:"sky"`
}

// ZoneConfig is an inclusive tile rectangle.
type ZoneConfig struct {
	MinX int `yaml:"min_x"`
	MinY int `yaml:"min_y"`
	MaxX int `yaml:"max_x"`
	MaxY int `yaml:"max_y"`
}

// Contains reports whether the tile lies inside the zone.
func (z ZoneConfig) Contains(tileX, tileY int) bool {
	return tileX >= z.MinX && tileX <= z.MaxX && tileY >= z.MinY && tileY <= z.MaxY
}

type EffectsConfig struct {
	ShakeIntensity   float64 `yaml:"shake_intensity"`
	ShakeDurationMs  int     `yaml:"shake_duration_ms"`
	DamageFlashMs    int     `yaml:"damage_flash_ms"`
	DamageFlashPeak  float64 `yaml:"damage_flash_peak"`
	LowHealthPercent float64 `yaml:"low_health_percent"`
	VictoryDelayMs   int     `yaml:"victory_delay_ms"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type AssetsConfig struct {
	TextureManifest string `yaml:"texture_manifest"`
	// EnemyRoster is optional; the built-in enemies are used when empty.
	EnemyRoster string `yaml:"enemy_roster"`
	// HighScores is resolved next to the executable when relative; empty disables the table.
	HighScores string `yaml:"high_scores"`
}

// Default returns the built-in configuration. LoadConfig starts from these values,
// so a config file only needs the keys it changes.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			HUDHeight:    80,
			WindowTitle:  "Taproom",
			WindowScale:  2,
			Resizable:    true,
		},
		World: WorldConfig{
			TileSize:         64,
			MapWidth:         16,
			MapHeight:        16,
			RayStepDivisor:   128,
			MaxRayDistance:   800,
			InteractionReach: 1.5,
		},
		Movement: MovementConfig{
			MoveSpeed:         0.1,
			RotationSpeed:     0.002,
			PlayerWallBuffer:  20,
			PlayerTableRadius: 35,
			TableRadius:       25,
			EnemyPadding:      16,
		},
		Camera: CameraConfig{PlaneLength: 0.66},
		Graphics: GraphicsConfig{
			TextureSize:    64,
			SpriteScale:    1.2,
			WallShadeMin:   0.3,
			SpriteShadeMin: 0.4,
			ShadeDistance:  8,
			SideShade:      0.8,
			AlphaThreshold: 128,
			MinSpriteSize:  5,
			Colors: ColorsConfig{
				Exterior: [3]int{40, 90, 40},
				Interior: [3]int{150, 115, 60},
				Walkway:  [3]int{185, 155, 95},
				Stone:    [3]int{140, 130, 120},
				Sky:      [3]int{135, 180, 235},
			},
			WalkwayZone: ZoneConfig{MinX: 10, MinY: 1, MaxX: 15, MaxY: 14},
		},
		Effects: EffectsConfig{
			ShakeIntensity:   8,
			ShakeDurationMs:  350,
			DamageFlashMs:    350,
			DamageFlashPeak:  0.6,
			LowHealthPercent: 25,
			VictoryDelayMs:   2000,
		},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		Assets:  AssetsConfig{TextureManifest: "assets/textures.yaml", EnemyRoster: "assets/enemies.yaml", HighScores: "saves/highscores.json"},
	}
}

// LoadConfig loads the configuration from a yaml file
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", filename, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", filename, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	cfg, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return cfg
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("invalid screen size %dx%d", c.Display.ScreenWidth, c.Display.ScreenHeight)
	case c.Display.HUDHeight < 0 || c.Display.HUDHeight >= c.Display.ScreenHeight:
		return fmt.Errorf("invalid hud height %d", c.Display.HUDHeight)
	case c.World.TileSize <= 0:
		return fmt.Errorf("invalid tile size %d", c.World.TileSize)
	case c.World.RayStepDivisor < 64:
		return fmt.Errorf("ray step divisor %d is coarser than 1/64 tile", c.World.RayStepDivisor)
	case c.World.MaxRayDistance <= 0:
		return fmt.Errorf("invalid max ray distance %v", c.World.MaxRayDistance)
	case c.Graphics.TextureSize <= 0:
		return fmt.Errorf("invalid texture size %d", c.Graphics.TextureSize)
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

// GetViewHeight is the height of the 3D view above the HUD band.
func (c *Config) GetViewHeight() int {
	return c.Display.ScreenHeight - c.Display.HUDHeight
}

func (c *Config) GetTileSize() float64 {
	return float64(c.World.TileSize)
}

func (c *Config) GetMapWidth() int {
	return c.World.MapWidth
}

func (c *Config) GetMapHeight() int {
	return c.World.MapHeight
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// GetRayStep is the march step in world units.
func (c *Config) GetRayStep() float64 {
	return c.GetTileSize() / float64(c.World.RayStepDivisor)
}

// GetShadeDistance is the distance in world units at which shading bottoms out.
func (c *Config) GetShadeDistance() float64 {
	return c.Graphics.ShadeDistance * c.GetTileSize()
}

func (c *Config) GetInteractionDistance() float64 {
	return c.World.InteractionReach * c.GetTileSize()
}
