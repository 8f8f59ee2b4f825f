package render

import "math"

// Camera is a position plus a direction vector and a camera plane vector
// perpendicular to it. The plane length sets the field of view.
type Camera struct {
	X, Y           float64
	DirX, DirY     float64
	PlaneX, PlaneY float64
}

// NewCamera builds a camera looking along angle (radians, 0 is +x, +y is down the map).
func NewCamera(x, y, angle, planeLength float64) Camera {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	return Camera{
		X: x, Y: y,
		DirX: dirX, DirY: dirY,
		PlaneX: -dirY * planeLength, PlaneY: dirX * planeLength,
	}
}

// Rotate turns the camera by theta radians. Both vectors are computed from the
// old values before either is assigned.
func (c *Camera) Rotate(theta float64) {
	cos, sin := math.Cos(theta), math.Sin(theta)
	dirX := c.DirX*cos - c.DirY*sin
	dirY := c.DirX*sin + c.DirY*cos
	planeX := c.PlaneX*cos - c.PlaneY*sin
	planeY := c.PlaneX*sin + c.PlaneY*cos
	c.DirX, c.DirY = dirX, dirY
	c.PlaneX, c.PlaneY = planeX, planeY
}

// Angle returns the facing angle in radians.
func (c Camera) Angle() float64 {
	return math.Atan2(c.DirY, c.DirX)
}

// GetPosition returns the camera's current position
func (c Camera) GetPosition() (float64, float64) {
	return c.X, c.Y
}

// SetPosition sets the camera's position
func (c *Camera) SetPosition(x, y float64) {
	c.X = x
	c.Y = y
}
