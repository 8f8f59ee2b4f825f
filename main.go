package main

import (
	"errors"
	"flag"
	"io/fs"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"taproom/internal/config"
	"taproom/internal/game"
	"taproom/internal/graphics"
	"taproom/internal/logging"
	"taproom/internal/world"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	log := logging.New(cfg.Logging)

	textures, err := loadTextures(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to load textures")
	}

	ebiten.SetWindowSize(cfg.GetScreenWidth()*max(1, cfg.Display.WindowScale), cfg.GetScreenHeight()*max(1, cfg.Display.WindowScale))
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	var opts []game.SessionOption
	if path := cfg.Assets.EnemyRoster; path != "" {
		roster, err := game.LoadEnemyRoster(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			log.WithField("path", path).Warn("enemy roster not found, using built-in enemies")
		case err != nil:
			log.WithError(err).Fatal("failed to load enemy roster")
		default:
			opts = append(opts, game.WithRoster(roster))
		}
	}

	g, err := game.NewGame(cfg, world.Tavern(cfg.GetTileSize()), textures, log, opts...)
	if err != nil {
		log.WithError(err).Fatal("failed to start game")
	}
	defer g.Close()

	if err := ebiten.RunGame(g); err != nil {
		log.WithError(err).Fatal("game loop stopped")
	}
}

// loadTextures reads the texture manifest and decodes every entry. A missing
// manifest falls back to the built-in one, so the game runs without assets.
func loadTextures(cfg *config.Config, log logrus.FieldLogger) (*graphics.TextureManager, error) {
	path := cfg.Assets.TextureManifest
	baseDir := filepath.Dir(path)
	manifest, err := graphics.LoadManifest(path)
	if err != nil {
		log.WithError(err).Warn("using built-in texture manifest")
		manifest, baseDir = graphics.DefaultManifest(), "."
	}

	tm := graphics.NewTextureManager(cfg.Graphics.TextureSize, log)
	if _, err := tm.Load(manifest, baseDir); err != nil {
		return nil, err
	}
	return tm, nil
}
