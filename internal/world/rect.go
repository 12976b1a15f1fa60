package world

import "math"

// Point is a map coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// DistancePythagoras returns the straight-line distance between two points.
func DistancePythagoras(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// Rect represents a rectangular room. The carved interior runs from
// X1+1..X2 and Y1+1..Y2 inclusive, leaving X1/Y1 as the wall line.
type Rect struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewRect creates a rect from its top-left corner and size.
func NewRect(x, y, w, h int) Rect {
	return Rect{X1: x, Y1: y, X2: x + w, Y2: y + h}
}

// Center returns the center coordinates of the room.
func (r Rect) Center() (int, int) {
	return (r.X1 + r.X2) / 2, (r.Y1 + r.Y2) / 2
}

// Contains returns true if the given point is inside the carved interior.
func (r Rect) Contains(x, y int) bool {
	return x > r.X1 && x <= r.X2 && y > r.Y1 && y <= r.Y2
}

// Intersects returns true if this rect overlaps or touches another.
func (r Rect) Intersects(other Rect) bool {
	return r.X1 <= other.X2 && r.X2 >= other.X1 && r.Y1 <= other.Y2 && r.Y2 >= other.Y1
}
