package render

import (
	"math"
	"testing"

	"taproom/internal/config"
)

// pocketRoom is a bordered room with a walled-in single cell at (3, 3).
func pocketRoom() [][]int {
	tiles := borderRoom(16)
	tiles[2][3], tiles[4][3], tiles[3][2], tiles[3][4] = 1, 1, 1, 1
	return tiles
}

func shaded(c [3]int, shade float64) [3]uint8 {
	return [3]uint8{
		uint8(math.Floor(float64(c[0]) * shade)),
		uint8(math.Floor(float64(c[1]) * shade)),
		uint8(math.Floor(float64(c[2]) * shade)),
	}
}

func pixelAt(f *Frame, x, y int) [3]uint8 {
	r, g, b := f.Pixels.RGB(x, y)
	return [3]uint8{r, g, b}
}

func TestFloorColor(t *testing.T) {
	colors := config.Default().Graphics.Colors
	r := newTestRenderer(t, pocketRoom(), nil, TextureMap{})

	tests := []struct {
		name         string
		cellX, cellY int
		want         [3]int
	}{
		{"walkway zone", 12, 5, colors.Walkway},
		{"enclosed cell", 3, 3, colors.Interior},
		{"open cell", 6, 6, colors.Exterior},
		{"wall cell", 3, 2, colors.Exterior},
		{"left of grid", -1, 4, colors.Exterior},
		{"below grid", 5, 16, colors.Exterior},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.floorColor(tt.cellX, tt.cellY); got != rgbFrom(tt.want) {
				t.Errorf("floorColor(%d, %d) = %v, want %v", tt.cellX, tt.cellY, got, tt.want)
			}
		})
	}
}

// floorFrame runs only the floor and ceiling pass for a camera facing +x.
func floorFrame(t *testing.T, tileX, tileY float64) (*Renderer, *Frame) {
	t.Helper()
	r := newTestRenderer(t, borderRoom(16), nil, TextureMap{})
	f := &Frame{Pixels: NewFramebuffer(r.width, r.height), ZBuffer: make([]float64, r.width)}
	r.drawFloorCeiling(f, NewCamera(tileX*testTile, tileY*testTile, 0, 0.66))
	return r, f
}

func TestFloorAndStoneCeilingInWalkway(t *testing.T) {
	colors := config.Default().Graphics.Colors
	r, f := floorFrame(t, 12.5, 7.5)
	cx := r.width / 2
	h := float64(r.height)

	if got, want := pixelAt(f, cx, r.viewHeight-1), shaded(colors.Walkway, 1); got != want {
		t.Errorf("Bottom row = %v, want walkway %v", got, want)
	}

	for _, y := range []int{0, 60, 120} {
		want := shaded(colors.Stone, math.Max(0.4, 0.7+float64(y)/h*0.3))
		if got := pixelAt(f, cx, y); got != want {
			t.Errorf("Ceiling row %d = %v, want shaded stone %v", y, got, want)
		}
	}
}

func TestSkyOutsideWalkway(t *testing.T) {
	colors := config.Default().Graphics.Colors
	r, f := floorFrame(t, 4.5, 7.5)
	cx := r.width / 2
	h := float64(r.height)

	for _, y := range []int{0, 60, 120} {
		want := shaded(colors.Sky, 0.8+float64(y)/h*0.4)
		if got := pixelAt(f, cx, y); got != want {
			t.Errorf("Sky row %d = %v, want %v", y, got, want)
		}
	}
	if got, want := pixelAt(f, cx, r.viewHeight-1), shaded(colors.Exterior, 1); got != want {
		t.Errorf("Bottom row = %v, want exterior %v", got, want)
	}
	if got, want := pixelAt(f, cx, r.height/2), shaded(colors.Exterior, 1); got != want {
		t.Errorf("Horizon row = %v, want exterior %v", got, want)
	}
}
