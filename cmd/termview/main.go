// Command termview plays the tavern in a terminal. Each character cell shows
// two pixels with the upper half block glyph.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"taproom/internal/config"
	"taproom/internal/game"
	"taproom/internal/game/keytracker"
	"taproom/internal/graphics"
	"taproom/internal/logging"
	"taproom/internal/render"
	"taproom/internal/world"
)

const (
	tps       = 60
	statusRow = 1
)

type viewer struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	screen   tcell.Screen
	session  *game.Session
	textures *graphics.TextureManager
	keys     *keytracker.Tracker[string]

	renderer *render.Renderer
	pixels   *image.RGBA
	cols     int
	rows     int
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	logPath := flag.String("log", "termview.log", "log file; the terminal is busy drawing")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logFile.Close()
	log := logging.NewWithOutput(cfg.Logging, logFile)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Error("termview stopped")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logrus.FieldLogger) error {
	manifest, err := graphics.LoadManifest(cfg.Assets.TextureManifest)
	baseDir := filepath.Dir(cfg.Assets.TextureManifest)
	if err != nil {
		log.WithError(err).Warn("using built-in texture manifest")
		manifest, baseDir = graphics.DefaultManifest(), "."
	}
	textures := graphics.NewTextureManager(cfg.Graphics.TextureSize, log)
	if _, err := textures.Load(manifest, baseDir); err != nil {
		return err
	}

	var opts []game.SessionOption
	if path := cfg.Assets.EnemyRoster; path != "" {
		roster, err := game.LoadEnemyRoster(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithField("path", path).Warn("enemy roster not found, using built-in enemies")
		case err != nil:
			return err
		default:
			opts = append(opts, game.WithRoster(roster))
		}
	}

	session, err := game.NewSession(cfg, world.Tavern(cfg.GetTileSize()), log, nil, opts...)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	v := &viewer{
		cfg:      cfg,
		log:      log,
		screen:   screen,
		session:  session,
		textures: textures,
		keys:     keytracker.New[string](keytracker.DefaultHold),
	}
	v.resize()
	v.loop()
	return nil
}

// resize rebuilds the renderer for the current terminal size.
func (v *viewer) resize() {
	cols, rows := v.screen.Size()
	v.cols, v.rows = max(cols, 1), max(rows-statusRow, 1)

	rc := *v.cfg
	rc.Display.ScreenWidth = v.cols
	rc.Display.ScreenHeight = v.rows * 2
	rc.Display.HUDHeight = 0
	v.renderer = render.NewRenderer(&rc, v.session.Grid(), v.session.Doors(), v.textures)
	v.pixels = image.NewRGBA(image.Rect(0, 0, v.cols, v.rows*2))
	v.log.WithFields(logrus.Fields{"cols": v.cols, "rows": v.rows}).Debug("terminal resized")
}

func (v *viewer) loop() {
	ticker := time.NewTicker(time.Second / tps)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	dt := 1000.0 / tps
	for {
		select {
		case ev, ok := <-events:
			if !ok || !v.handle(ev) {
				return
			}
		case now := <-ticker.C:
			v.session.Update(dt, v.input(now))
			v.draw()
		}
	}
}

// handle records key presses. It returns false when the viewer should quit.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if name := keyName(ev); name != "" {
			v.keys.Press(name, ev.When())
		}
	case *tcell.EventResize:
		v.screen.Sync()
		v.resize()
	}
	return true
}

func keyName(ev *tcell.EventKey) string {
	switch ev.Key() {
	case tcell.KeyUp:
		return "up"
	case tcell.KeyDown:
		return "down"
	case tcell.KeyLeft:
		return "left"
	case tcell.KeyRight:
		return "right"
	case tcell.KeyEnter:
		return "enter"
	case tcell.KeyEscape:
		return "esc"
	case tcell.KeyF1:
		return "f1"
	case tcell.KeyF5:
		return "f5"
	case tcell.KeyRune:
		if ev.Rune() == ' ' {
			return "space"
		}
		return string(ev.Rune())
	}
	return ""
}

// input converts the tracked keys into one tick of intent. The bindings
// follow the windowed game.
func (v *viewer) input(now time.Time) game.Input {
	held := func(names ...string) bool {
		for _, n := range names {
			if v.keys.Held(n, now) {
				return true
			}
		}
		return false
	}
	pressed := func(names ...string) bool {
		hit := false
		for _, n := range names {
			if v.keys.IsKeyJustPressed(n) {
				hit = true
			}
		}
		return hit
	}

	in := game.Input{
		Forward:     held("w", "up"),
		Backward:    held("s", "down"),
		StrafeLeft:  held("a"),
		StrafeRight: held("d"),
		TurnLeft:    held("left"),
		TurnRight:   held("right"),
		FireHeld:    held("space"),

		Fire:     pressed("space", "enter"),
		Pause:    pressed("p"),
		Escape:   pressed("esc"),
		Interact: pressed("e"),
		Splatter: pressed("b"),
		Reset:    pressed("f5"),
		Debug:    pressed("f1"),
	}
	switch {
	case pressed("1"):
		in.Weapon = 1
	case pressed("2"):
		in.Weapon = 2
	}
	return in
}

func (v *viewer) draw() {
	s := v.session
	if s.State == game.StateTitle {
		v.screen.Clear()
		v.text(0, 0, "TAPROOM  press SPACE to begin, q to quit", tcell.StyleDefault.Foreground(tcell.ColorOrange))
		v.screen.Show()
		return
	}

	frame := v.renderer.Render(s.Camera(), s.Sprites(), s.Overlay())
	render.Blit(v.pixels, frame)

	for y := 0; y < v.rows; y++ {
		for x := 0; x < v.cols; x++ {
			top := v.pixels.RGBAAt(x, y*2)
			bottom := v.pixels.RGBAAt(x, y*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			v.screen.SetContent(x, y, '▀', nil, style)
		}
	}

	status := v.status()
	for x := 0; x < v.cols; x++ {
		v.screen.SetContent(x, v.rows, ' ', nil, tcell.StyleDefault)
	}
	v.text(0, v.rows, status, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	v.screen.Show()
}

func (v *viewer) status() string {
	s := v.session
	p := s.Player
	line := fmt.Sprintf("HP %3.0f%%  %s %d  LIVES %d  SCORE %d",
		p.HealthPercent(), s.Arsenal.Current().Name, p.Ammo, p.Lives, s.Stats.Score)
	if p.Keys() > 0 {
		line += "  KEY"
	}
	switch s.State {
	case game.StatePaused:
		line += "  [PAUSED]"
	case game.StateDeath:
		line += "  YOU DIED, space to respawn"
	case game.StateVictory:
		line += fmt.Sprintf("  VICTORY! kills %d accuracy %.0f%%, F5 to play again", s.Stats.Kills, s.Stats.Accuracy())
	case game.StateGameOver:
		line += "  GAME OVER, F5 to restart"
	}
	if msg, _ := s.Message(); msg != "" {
		line += "  | " + msg
	}
	return line
}

func (v *viewer) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= v.cols {
			return
		}
		v.screen.SetContent(x, y, r, nil, style)
		x++
	}
}
