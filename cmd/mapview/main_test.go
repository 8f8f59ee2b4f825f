package main

import (
	"image/color"
	"strings"
	"testing"

	"taproom/internal/config"
	"taproom/internal/game"
	"taproom/internal/graphics"
	"taproom/internal/world"
)

func TestTileColor(t *testing.T) {
	cfg := config.Default()
	lv := world.Tavern(cfg.GetTileSize())
	v := &viewer{
		cfg:   cfg,
		level: lv,
		grid:  world.MustNewGrid(lv.Tiles, cfg.GetTileSize()),
		walls: wallColors(graphics.DefaultManifest()),
	}

	tests := []struct {
		name   string
		tx, ty int
		want   color.RGBA
	}{
		{"courtyard floor", 2, 2, floorColor},
		{"door", 9, 7, doorColor},
		{"stone wall", 0, 0, color.RGBA{128, 128, 128, 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.tileColor(tt.tx, tt.ty); got != tt.want {
				t.Errorf("tileColor(%d, %d) = %v, want %v", tt.tx, tt.ty, got, tt.want)
			}
		})
	}
	if v.tileColor(11, 2) == floorColor {
		t.Errorf("Walkway floor should differ from the courtyard")
	}
}

func TestLegendLines(t *testing.T) {
	lines := strings.Join(legendLines(world.Tavern(64), game.DefaultRoster()), "\n")
	for _, want := range []string{"door2 (14, 9) needs key1", "key1 (12, 9)", "e1: hp 75", "e2: hp 45"} {
		if !strings.Contains(lines, want) {
			t.Errorf("Legend missing %q", want)
		}
	}
}
