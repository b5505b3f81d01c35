package force

import (
	"fmt"
	"math"
)

// Vec2i is a grid coordinate on the operations map.
type Vec2i struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (v Vec2i) String() string { return fmt.Sprintf("(%d, %d)", v.X, v.Y) }

// Distance is the Euclidean distance between two map points.
func Distance(a, b Vec2i) float64 {
	dx := float64(b.X - a.X)
	dy := float64(b.Y - a.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
