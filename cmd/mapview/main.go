// Command mapview draws the tavern level from above: tiles, doors, props,
// spawn points and the walkway zone.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"

	"taproom/internal/config"
	"taproom/internal/game"
	"taproom/internal/graphics"
	"taproom/internal/logging"
	"taproom/internal/world"
)

const (
	windowWidth  = 1000
	windowHeight = 700
	sidebarWidth = 300
	padding      = 16
	lineHeight   = 14
)

const (
	tabInfo = iota
	tabLegend
)

var (
	floorColor    = color.RGBA{60, 60, 70, 255}
	doorColor     = color.RGBA{139, 69, 19, 255}
	startColor    = color.RGBA{50, 200, 255, 255}
	enemyColor    = color.RGBA{230, 80, 80, 255}
	reinforceClr  = color.RGBA{255, 150, 40, 255}
	pickupColor   = color.RGBA{80, 220, 120, 255}
	obstacleColor = color.RGBA{150, 110, 70, 255}
	zoneColor     = color.RGBA{255, 220, 0, 255}
	panelColor    = color.RGBA{18, 18, 26, 255}
	borderColor   = color.RGBA{70, 70, 90, 255}
)

type viewer struct {
	cfg    *config.Config
	level  *world.Level
	grid   *world.Grid
	roster game.EnemyRoster
	walls  map[int]color.RGBA

	tab          int
	legendScroll int
	legend       []string
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	log := logging.New(cfg.Logging)

	level := world.Tavern(cfg.GetTileSize())
	grid, err := level.Grid(cfg.GetTileSize())
	if err != nil {
		log.WithError(err).Fatal("invalid level")
	}

	manifest, err := graphics.LoadManifest(cfg.Assets.TextureManifest)
	if err != nil {
		log.WithError(err).Warn("using built-in texture manifest")
		manifest = graphics.DefaultManifest()
	}
	roster := game.DefaultRoster()
	if cfg.Assets.EnemyRoster != "" {
		if r, err := game.LoadEnemyRoster(cfg.Assets.EnemyRoster); err == nil {
			roster = r
		} else {
			log.WithError(err).Warn("using built-in enemies")
		}
	}

	v := &viewer{
		cfg:    cfg,
		level:  level,
		grid:   grid,
		roster: roster,
		walls:  wallColors(manifest),
	}
	v.legend = legendLines(level, roster)
	log.WithFields(logrus.Fields{
		"level":   level.Name,
		"width":   grid.Width(),
		"height":  grid.Height(),
		"enemies": len(level.Enemies),
	}).Info("map viewer ready")

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle(cfg.Display.WindowTitle + " Map Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(v); err != nil {
		log.WithError(err).Fatal("map viewer stopped")
	}
}

// wallColors maps wall texture ids to their manifest tint.
func wallColors(m *graphics.Manifest) map[int]color.RGBA {
	out := make(map[int]color.RGBA)
	for _, e := range m.Textures {
		if e.Kind == graphics.KindWall {
			out[e.ID] = color.RGBA{e.Color[0], e.Color[1], e.Color[2], 255}
		}
	}
	return out
}

// tileColor picks the panel color of one cell.
func (v *viewer) tileColor(tx, ty int) color.RGBA {
	switch id := v.grid.TileAtCell(tx, ty); id {
	case world.EmptyTile:
		if v.cfg.Graphics.WalkwayZone.Contains(tx, ty) {
			return color.RGBA{90, 80, 60, 255}
		}
		return floorColor
	case world.DoorTile:
		return doorColor
	default:
		if c, ok := v.walls[id]; ok {
			return c
		}
		return color.RGBA{50, 50, 60, 255}
	}
}

func (v *viewer) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.tab = 1 - v.tab
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		v.tab = tabInfo
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		v.tab = tabLegend
	}

	if v.tab == tabLegend {
		_, wheelY := ebiten.Wheel()
		v.legendScroll -= int(wheelY * lineHeight)
		if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
			v.legendScroll += lineHeight
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
			v.legendScroll -= lineHeight
		}
		maxScroll := max(0, len(v.legend)*lineHeight-(windowHeight-padding*2-48))
		v.legendScroll = min(max(v.legendScroll, 0), maxScroll)
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	mapW := windowWidth - sidebarWidth - padding*3
	mapH := windowHeight - padding*2
	cell := min(mapW/v.grid.Width(), mapH/v.grid.Height())
	ox := padding + (mapW-cell*v.grid.Width())/2
	oy := padding + (mapH-cell*v.grid.Height())/2

	for ty := 0; ty < v.grid.Height(); ty++ {
		for tx := 0; tx < v.grid.Width(); tx++ {
			vector.DrawFilledRect(screen, float32(ox+tx*cell), float32(oy+ty*cell), float32(cell-1), float32(cell-1), v.tileColor(tx, ty), false)
		}
	}

	z := v.cfg.Graphics.WalkwayZone
	vector.StrokeRect(screen, float32(ox+z.MinX*cell), float32(oy+z.MinY*cell),
		float32((z.MaxX-z.MinX+1)*cell), float32((z.MaxY-z.MinY+1)*cell), 2, zoneColor, false)

	v.drawMarkers(screen, ox, oy, cell)
	v.drawHover(screen, ox, oy, cell)
	v.drawSidebar(screen, windowWidth-sidebarWidth-padding, padding, sidebarWidth, mapH)
}

// marker draws a circle at world position (x, y) with an optional label.
func (v *viewer) marker(screen *ebiten.Image, ox, oy, cell int, x, y float64, clr color.RGBA, label string) {
	ts := v.grid.TileSize()
	cx := float32(ox) + float32(x/ts)*float32(cell)
	cy := float32(oy) + float32(y/ts)*float32(cell)
	vector.DrawFilledCircle(screen, cx, cy, float32(cell)*0.3, clr, true)
	if label != "" && cell >= 12 {
		ebitenutil.DebugPrintAt(screen, label, int(cx)-3, int(cy)-8)
	}
}

func (v *viewer) drawMarkers(screen *ebiten.Image, ox, oy, cell int) {
	lv := v.level
	for _, p := range lv.Props {
		clr := pickupColor
		if p.Kind.IsObstacle() {
			clr = obstacleColor
		}
		v.marker(screen, ox, oy, cell, p.X, p.Y, clr, "")
	}
	for _, e := range lv.Enemies {
		v.marker(screen, ox, oy, cell, e.X, e.Y, enemyColor, e.Template[len(e.Template)-1:])
	}
	for _, e := range lv.Reinforcements {
		v.marker(screen, ox, oy, cell, e.X, e.Y, reinforceClr, e.Template[len(e.Template)-1:])
	}
	for _, it := range lv.Interactives {
		label := "?"
		if it.Kind == world.InteractKey {
			label = "K"
		}
		ebitenutil.DebugPrintAt(screen, label, ox+it.TileX*cell+cell/2-3, oy+it.TileY*cell+cell/2-8)
	}
	for _, d := range lv.Doors {
		if d.KeyID != "" {
			ebitenutil.DebugPrintAt(screen, "L", ox+d.TileX*cell+cell/2-3, oy+d.TileY*cell+cell/2-8)
		}
	}
	v.marker(screen, ox, oy, cell, lv.PlayerX, lv.PlayerY, startColor, "+")
}

func (v *viewer) drawHover(screen *ebiten.Image, ox, oy, cell int) {
	mx, my := ebiten.CursorPosition()
	tx, ty := (mx-ox)/cell, (my-oy)/cell
	if mx < ox || my < oy || !v.grid.InBounds(tx, ty) {
		return
	}
	vector.StrokeRect(screen, float32(ox+tx*cell), float32(oy+ty*cell), float32(cell), float32(cell), 2, color.White, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("tile (%d, %d) id %d", tx, ty, v.grid.TileAtCell(tx, ty)), padding, windowHeight-padding)
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x, y, w, h int) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), panelColor, false)
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), 2, borderColor, false)

	tabW := w / 2
	active := color.RGBA{70, 70, 95, 255}
	idle := color.RGBA{40, 40, 55, 255}
	infoClr, legendClr := active, idle
	if v.tab == tabLegend {
		infoClr, legendClr = idle, active
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(tabW), 24, infoClr, false)
	vector.DrawFilledRect(screen, float32(x+tabW), float32(y), float32(w-tabW), 24, legendClr, false)
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)

	row := y + 36
	if v.tab == tabLegend {
		for i, line := range v.legend {
			ly := row - v.legendScroll + i*lineHeight
			if ly < row-lineHeight || ly > y+h-lineHeight {
				continue
			}
			ebitenutil.DebugPrintAt(screen, line, x+10, ly)
		}
		return
	}

	lv := v.level
	for _, line := range []string{
		fmt.Sprintf("Level: %s", lv.Name),
		fmt.Sprintf("Tiles: %dx%d", v.grid.Width(), v.grid.Height()),
		fmt.Sprintf("Doors: %d", len(lv.Doors)),
		fmt.Sprintf("Props: %d", len(lv.Props)),
		fmt.Sprintf("Enemies: %d (+%d reinforcements)", len(lv.Enemies), len(lv.Reinforcements)),
		fmt.Sprintf("Enemy cap: %d", lv.MaxEnemies),
		"",
		"Cyan: start   Red: enemies",
		"Orange: reinforcements",
		"Green: pickups   Brown: props",
		"Yellow outline: walkway zone",
		"K: key   ?: message   L: locked",
		"",
		"Tab switches panels, Esc quits",
	} {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// legendLines lists the level's doors, interactive tiles and enemy templates.
func legendLines(lv *world.Level, roster game.EnemyRoster) []string {
	lines := []string{"Doors", "-----"}
	for _, d := range lv.Doors {
		lock := "unlocked"
		if d.KeyID != "" {
			lock = "needs " + d.KeyID
		}
		lines = append(lines, fmt.Sprintf("%s (%d, %d) %s, closes after %.0fs", d.ID, d.TileX, d.TileY, lock, d.AutoCloseDelay/1000))
	}

	lines = append(lines, "", "Interactive tiles", "-----------------")
	for _, it := range lv.Interactives {
		lines = append(lines, fmt.Sprintf("%s (%d, %d): %q", it.ID, it.TileX, it.TileY, it.Message))
	}

	lines = append(lines, "", "Enemy templates", "---------------")
	names := make([]string, 0, len(roster))
	for name := range roster {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := roster[name]
		lines = append(lines, fmt.Sprintf("%s: hp %d dmg %d speed %.1f", name, t.Health, t.Damage, t.Speed))
	}
	return lines
}
