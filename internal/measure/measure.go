// Package measure implements the distance and angle measurement engines.
// Both engines are pure functions of their point buffers so they can be
// exercised without a camera or a display.
package measure

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/daserban31/MicroscopeCamera/pkg/geometry"
)

// Required point counts for each tool.
const (
	DistancePoints = 2
	AnglePoints    = 3
)

// PixelDistance returns the Euclidean distance between two points in pixels.
func PixelDistance(p1, p2 geometry.PointInt) float64 {
	return p1.Distance(p2)
}

// RealDistance converts a pixel distance to real-world units using the
// configured pixels-per-unit ratio. A non-positive ratio yields 0 rather
// than a division by zero.
func RealDistance(pixels, pixelsPerUnit float64) float64 {
	if pixelsPerUnit <= 0 {
		return 0
	}
	return pixels / pixelsPerUnit
}

// VertexAngle returns the angle in degrees at vertex between the rays
// vertex->a and vertex->b. A zero-length ray yields 0 rather than an acos
// domain error. The result is always in [0, 180].
func VertexAngle(vertex, a, b geometry.PointInt) float64 {
	da := a.Sub(vertex)
	db := b.Sub(vertex)
	v1 := mat.NewVecDense(2, []float64{float64(da.X), float64(da.Y)})
	v2 := mat.NewVecDense(2, []float64{float64(db.X), float64(db.Y)})

	m1 := mat.Norm(v1, 2)
	m2 := mat.Norm(v2, 2)
	if m1 == 0 || m2 == 0 {
		return 0
	}

	cos := mat.Dot(v1, v2) / (m1 * m2)
	cos = math.Max(-1.0, math.Min(1.0, cos))
	return math.Acos(cos) * 180 / math.Pi
}
