// Package geometry provides the basic point types used throughout the
// application. All stored geometry is in original-frame pixel coordinates.
package geometry

import (
	"image"
	"math"
)

// PointInt is a 2D point with integer pixel coordinates.
type PointInt struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Pt creates a new PointInt.
func Pt(x, y int) PointInt {
	return PointInt{X: x, Y: y}
}

// ToFloat converts to Point2D.
func (p PointInt) ToFloat() Point2D {
	return Point2D{X: float64(p.X), Y: float64(p.Y)}
}

// ImagePoint converts to the stdlib image.Point used by drawing calls.
func (p PointInt) ImagePoint() image.Point {
	return image.Point{X: p.X, Y: p.Y}
}

// Distance returns the Euclidean distance to another point.
func (p PointInt) Distance(other PointInt) float64 {
	dx := float64(p.X - other.X)
	dy := float64(p.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Sub returns the component-wise difference p - other.
func (p PointInt) Sub(other PointInt) PointInt {
	return PointInt{X: p.X - other.X, Y: p.Y - other.Y}
}

// Point2D is a 2D point with floating-point coordinates.
type Point2D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another point.
func (p Point2D) Distance(other Point2D) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Scale returns the point scaled component-wise by (sx, sy).
func (p Point2D) Scale(sx, sy float64) Point2D {
	return Point2D{X: p.X * sx, Y: p.Y * sy}
}

// Truncate converts to integer coordinates, truncating toward zero.
func (p Point2D) Truncate() PointInt {
	return PointInt{X: int(p.X), Y: int(p.Y)}
}

// Size is a 2D pixel dimension.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AspectRatio returns width over height, or 1.0 for a degenerate height.
func (s Size) AspectRatio() float64 {
	if s.Height <= 0 {
		return 1.0
	}
	return float64(s.Width) / float64(s.Height)
}
