package world

import "math"

// PropKind classifies the placed objects of a level.
type PropKind int

const (
	PropAmmo PropKind = iota
	PropHealth
	PropShotgun
	PropTable
	PropKeg
)

func (k PropKind) String() string {
	switch k {
	case PropAmmo:
		return "ammo"
	case PropHealth:
		return "health"
	case PropShotgun:
		return "shotgun"
	case PropTable:
		return "table"
	case PropKeg:
		return "keg"
	}
	return "unknown"
}

// IsObstacle reports props that block movement instead of being picked up.
func (k PropKind) IsObstacle() bool {
	return k == PropTable || k == PropKeg
}

// Texture ids used by the built-in level.
const (
	TextureHealth  = 68
	TextureAmmo    = 69
	TextureKeg     = 71
	TextureTable   = 72
	TextureShotgun = 73
)

// RespawnNever marks a one-time pickup.
const RespawnNever = -1

// PropSpawn places a pickup or obstacle. Positions are in world units.
type PropSpawn struct {
	Kind      PropKind
	X, Y      float64
	TextureID int
	BobPhase  float64 // initial bob timer, ms
	BobPeriod float64 // ms per bob cycle, 0 disables bobbing
	BobHeight float64 // pixels
	RespawnMs float64 // 0 for obstacles, RespawnNever for one-time pickups
}

// EnemySpawn places an enemy of a named template.
type EnemySpawn struct {
	Template string
	X, Y     float64
}

// InteractiveKind is what using an interactive tile does.
type InteractiveKind int

const (
	InteractKey InteractiveKind = iota
	InteractMessage
)

// InteractiveTile is a wall tile the player can use from an adjacent cell.
type InteractiveTile struct {
	ID           string
	Kind         InteractiveKind
	TileX, TileY int
	KeyID        string
	Message      string
}

// Level bundles everything needed to start a session on one map.
type Level struct {
	Name           string
	Tiles          [][]int
	Doors          []Door
	Interactives   []InteractiveTile
	Props          []PropSpawn
	Enemies        []EnemySpawn
	Reinforcements []EnemySpawn
	// MaxEnemies caps the total number of enemies ever spawned, reinforcements included.
	MaxEnemies int

	PlayerX, PlayerY float64
	PlayerAngle      float64
}

// Grid builds the tile grid of the level.
func (l *Level) Grid(tileSize float64) (*Grid, error) {
	return NewGrid(l.Tiles, tileSize)
}

// DoorSet builds fresh door state for the level.
func (l *Level) DoorSet(tileSize float64) *DoorSet {
	return NewDoorSet(tileSize, l.Doors...)
}

// Obstacles returns the props that block movement.
func (l *Level) Obstacles() []PropSpawn {
	var out []PropSpawn
	for _, p := range l.Props {
		if p.Kind.IsObstacle() {
			out = append(out, p)
		}
	}
	return out
}

var tavernTiles = [][]int{
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 8, 8, 8, 8, 8, 38, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 15},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 13},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 70, 0, 0, 0, 0, 0, 14},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 90, 0, 0, 0, 0, 0, 15},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 6, 6, 37, 5, 90, 3},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 2, 2, 2, 2, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 2},
	{1, 0, 0, 0, 0, 0, 0, 0, 0, 4, 0, 0, 0, 0, 0, 2},
	{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2, 2},
}

// Tavern is the built-in two-room level: a courtyard on the left, the tavern
// hall behind two doors on the right.
func Tavern(tileSize float64) *Level {
	at := func(tx, ty float64) (float64, float64) { return tx * tileSize, ty * tileSize }

	prop := func(kind PropKind, tx, ty float64, tex int, phase, period, height, respawn float64) PropSpawn {
		x, y := at(tx, ty)
		return PropSpawn{Kind: kind, X: x, Y: y, TextureID: tex,
			BobPhase: phase, BobPeriod: period, BobHeight: height, RespawnMs: respawn}
	}
	decor := func(kind PropKind, tx, ty float64, tex int) PropSpawn {
		return prop(kind, tx, ty, tex, 0, 0, 0, 0)
	}
	enemy := func(template string, tx, ty float64) EnemySpawn {
		x, y := at(tx, ty)
		return EnemySpawn{Template: template, X: x, Y: y}
	}

	px, py := at(1.5, 1.5)
	return &Level{
		Name:  "tavern",
		Tiles: tavernTiles,
		Doors: []Door{
			{ID: "door1", TileX: 9, TileY: 7, AutoCloseDelay: 3000},
			{ID: "door2", TileX: 14, TileY: 9, KeyID: "key1", AutoCloseDelay: 3000},
		},
		Interactives: []InteractiveTile{
			{ID: "key1", Kind: InteractKey, TileX: 12, TileY: 9, KeyID: "key1", Message: "Thanks Chris!"},
			{ID: "teanaway", Kind: InteractMessage, TileX: 14, TileY: 0, Message: "WTF Teanaway?"},
		},
		Props: []PropSpawn{
			prop(PropAmmo, 11.5, 1.5, TextureAmmo, 0, 2200, 6, 25000),
			prop(PropAmmo, 13.5, 1.5, TextureAmmo, math.Pi, 2100, 5, 25000),
			decor(PropTable, 11.5, 3.5, TextureTable),
			decor(PropTable, 13.5, 3.5, TextureTable),
			decor(PropKeg, 10.5, 11.5, TextureKeg),
			decor(PropKeg, 10.5, 14.5, TextureKeg),
			decor(PropKeg, 11.5, 14.5, TextureKeg),
			prop(PropShotgun, 14.5, 14.5, TextureShotgun, 0, 2000, 8, RespawnNever),
			prop(PropHealth, 11.5, 8.5, TextureHealth, 0, 2000, 8, 30000),
			prop(PropHealth, 13.5, 8.5, TextureHealth, math.Pi, 2200, 6, 30000),
			prop(PropHealth, 11.5, 11.5, TextureHealth, math.Pi/2, 2100, 7, 30000),
			prop(PropHealth, 13.5, 11.5, TextureHealth, math.Pi*0.8, 1900, 6, 30000),
			prop(PropHealth, 12.5, 12.5, TextureHealth, math.Pi*1.2, 2000, 8, 30000),
			prop(PropHealth, 11.5, 13.5, TextureHealth, math.Pi*1.6, 2100, 7, 30000),
			prop(PropHealth, 13.5, 13.5, TextureHealth, math.Pi*0.3, 1900, 6, 30000),
		},
		Enemies: []EnemySpawn{
			enemy("e1", 7.5, 6.5),
			enemy("e2", 3.5, 6.5),
			enemy("e2", 6.5, 3.5),
			enemy("e2", 2.5, 8.5),
			enemy("e2", 7.5, 8.5),
		},
		Reinforcements: []EnemySpawn{
			enemy("e2", 4.5, 4.5),
			enemy("e2", 5.5, 7.5),
			enemy("e1", 1.5, 6.5),
		},
		MaxEnemies: 10,
		PlayerX:    px,
		PlayerY:    py,
	}
}
