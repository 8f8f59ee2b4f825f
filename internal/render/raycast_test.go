package render

import (
	"math"
	"testing"

	"taproom/internal/world"
)

const testTile = 64.0

// borderRoom returns an n x n grid with solid walls around an empty interior.
func borderRoom(n int) [][]int {
	tiles := make([][]int, n)
	for y := range tiles {
		tiles[y] = make([]int, n)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == n-1 || y == n-1 {
				tiles[y][x] = 1
			}
		}
	}
	return tiles
}

func newTestCaster(t *testing.T, tiles [][]int, doors world.DoorQuery) *Caster {
	t.Helper()
	grid, err := world.NewGrid(tiles, testTile)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	return NewCaster(grid, doors, testTile/128, 800)
}

func TestCastEmptyRoomAxisRays(t *testing.T) {
	c := newTestCaster(t, borderRoom(8), nil)
	step := testTile / 128

	cases := []struct {
		name       string
		ox, oy     float64
		dx, dy     float64
		want       float64
		wantSide   int
		wantWallU  float64
		wantTileID int
	}{
		{"east", 256, 288, 1, 0, 192, 0, 0.5, 1},
		{"west", 256, 288, -1, 0, 192, 0, 0.5, 1},
		{"north", 288, 256, 0, -1, 192, 1, 0.5, 1},
		{"south", 288, 256, 0, 1, 192, 1, 0.5, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hit := c.Cast(tc.ox, tc.oy, tc.dx, tc.dy)
			if math.Abs(hit.Distance-tc.want) > step {
				t.Errorf("Distance = %v, want %v within %v", hit.Distance, tc.want, step)
			}
			if hit.Side != tc.wantSide {
				t.Errorf("Side = %d, want %d", hit.Side, tc.wantSide)
			}
			if math.Abs(hit.WallU-tc.wantWallU) > 0.02 {
				t.Errorf("WallU = %v, want about %v", hit.WallU, tc.wantWallU)
			}
			if hit.TileID != tc.wantTileID {
				t.Errorf("TileID = %d, want %d", hit.TileID, tc.wantTileID)
			}
		})
	}
}

func TestCastNeverOvershootsNearestWall(t *testing.T) {
	c := newTestCaster(t, borderRoom(8), nil)
	ox, oy := 200.0, 300.0
	step := testTile / 128

	for i := 0; i < 64; i++ {
		angle := float64(i) / 64 * 2 * math.Pi
		dx, dy := math.Cos(angle), math.Sin(angle)
		hit := c.Cast(ox, oy, dx, dy)

		// Distance along the ray to the inner faces of the border walls.
		analytic := math.Inf(1)
		if dx > 0 {
			analytic = math.Min(analytic, (7*testTile-ox)/dx)
		} else if dx < 0 {
			analytic = math.Min(analytic, (testTile-ox)/dx)
		}
		if dy > 0 {
			analytic = math.Min(analytic, (7*testTile-oy)/dy)
		} else if dy < 0 {
			analytic = math.Min(analytic, (testTile-oy)/dy)
		}

		if hit.Distance > analytic+step {
			t.Errorf("angle %.3f: distance %v overshoots wall at %v", angle, hit.Distance, analytic)
		}
		if hit.WallU < 0 || hit.WallU >= 1 {
			t.Errorf("angle %.3f: WallU %v outside [0, 1)", angle, hit.WallU)
		}
	}
}

func TestCastOutsideGridIsSolid(t *testing.T) {
	tiles := [][]int{
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	}
	c := newTestCaster(t, tiles, nil)

	hit := c.Cast(32, 32, 1, 0)
	if hit.TileID != world.OutOfBoundsTile {
		t.Errorf("TileID = %d, want out of bounds tile", hit.TileID)
	}
	if hit.Distance != 224 {
		t.Errorf("Distance = %v, want 224", hit.Distance)
	}
}

func TestCastMissReturnsSyntheticHit(t *testing.T) {
	grid := world.MustNewGrid(borderRoom(40), testTile)
	c := NewCaster(grid, nil, 0.5, 100)

	hit := c.Cast(640, 640, 1, 0)
	if hit.Distance != 100 || hit.TileID != world.OutOfBoundsTile || hit.Side != 0 || hit.WallU != 0 {
		t.Errorf("Unexpected miss hit %+v", hit)
	}

	zero := c.Cast(640, 640, 0, 0)
	if zero.Distance != 100 {
		t.Errorf("Zero direction should miss, got %+v", zero)
	}
}

func TestCastPassesOpenDoor(t *testing.T) {
	tiles := [][]int{
		{1, 1, 1, 1, 1, 1, 1},
		{1, 0, 0, world.DoorTile, 0, 0, 2},
		{1, 1, 1, 1, 1, 1, 1},
	}

	t.Run("closed", func(t *testing.T) {
		doors := world.NewDoorSet(testTile, world.Door{ID: "d", TileX: 3, TileY: 1})
		c := newTestCaster(t, tiles, doors)
		hit := c.Cast(96, 96, 1, 0)
		if hit.TileID != world.DoorTile {
			t.Errorf("TileID = %d, want door", hit.TileID)
		}
		if hit.Distance != 96 {
			t.Errorf("Distance = %v, want 96", hit.Distance)
		}
	})

	t.Run("open", func(t *testing.T) {
		doors := world.NewDoorSet(testTile, world.Door{ID: "d", TileX: 3, TileY: 1, Open: true})
		c := newTestCaster(t, tiles, doors)
		hit := c.Cast(96, 96, 1, 0)
		if hit.TileID != 2 {
			t.Errorf("TileID = %d, want wall 2 behind the door", hit.TileID)
		}
		if hit.Distance != 288 {
			t.Errorf("Distance = %v, want 288", hit.Distance)
		}
	})

	t.Run("no door set", func(t *testing.T) {
		c := newTestCaster(t, tiles, nil)
		if hit := c.Cast(96, 96, 1, 0); hit.TileID != world.DoorTile {
			t.Errorf("Door slot without state should block, got tile %d", hit.TileID)
		}
	})
}

func TestCastDiagonalCorner(t *testing.T) {
	c := newTestCaster(t, borderRoom(8), nil)
	step := testTile / 128

	// Straight at the inner corner of the south-east walls.
	hit := c.Cast(256, 256, 1, 1)
	want := 192 * math.Sqrt2
	if math.Abs(hit.Distance-want) > step {
		t.Errorf("Distance = %v, want %v within %v", hit.Distance, want, step)
	}
	if hit.TileID != 1 {
		t.Errorf("TileID = %d, want 1", hit.TileID)
	}
	if hit.Side != 0 {
		t.Errorf("Side = %d, x crossing should win", hit.Side)
	}

	again := c.Cast(256, 256, 1, 1)
	if again != hit {
		t.Errorf("Cast is not deterministic: %+v vs %+v", hit, again)
	}
}

func TestCastDeterministic(t *testing.T) {
	grid := world.MustNewGrid(world.Tavern(testTile).Tiles, testTile)
	c := NewCaster(grid, nil, testTile/128, 800)

	for i := 0; i < 32; i++ {
		angle := float64(i) * 0.37
		a := c.Cast(100, 100, math.Cos(angle), math.Sin(angle))
		b := c.Cast(100, 100, math.Cos(angle), math.Sin(angle))
		if a != b {
			t.Fatalf("angle %v: %+v != %+v", angle, a, b)
		}
	}
}
