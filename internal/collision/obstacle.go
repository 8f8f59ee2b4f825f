package collision

import "math"

// Point is a 2D world coordinate.
type Point struct {
	X, Y float64
}

// Distance returns the euclidean distance between two points.
func (p Point) Distance(o Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Obstacle is a round blocker such as a table or keg. Its radius depends on
// who is asking, so only the center is stored.
type Obstacle struct {
	ID     string
	Center Point
	Active bool
}

// ObstacleSet is the list of obstacles on a level.
type ObstacleSet struct {
	items []*Obstacle
}

func NewObstacleSet() *ObstacleSet {
	return &ObstacleSet{}
}

// Add registers an active obstacle.
func (s *ObstacleSet) Add(id string, x, y float64) *Obstacle {
	o := &Obstacle{ID: id, Center: Point{X: x, Y: y}, Active: true}
	s.items = append(s.items, o)
	return o
}

func (s *ObstacleSet) All() []*Obstacle { return s.items }

// Hit reports whether (x, y) lies strictly inside radius of any active obstacle.
func (s *ObstacleSet) Hit(x, y, radius float64) bool {
	p := Point{X: x, Y: y}
	for _, o := range s.items {
		if o.Active && o.Center.Distance(p) < radius {
			return true
		}
	}
	return false
}
