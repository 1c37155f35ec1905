package measure

import "github.com/daserban31/MicroscopeCamera/pkg/geometry"

// Buffer collects clicked points for a measurement tool, in click order,
// up to a fixed capacity. Points past the capacity are ignored until the
// buffer is cleared.
type Buffer struct {
	points   []geometry.PointInt
	capacity int
}

// NewBuffer creates a buffer for the given number of points.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{capacity: capacity}
}

// Add appends a point if the buffer is not yet full. It reports whether the
// point was accepted.
func (b *Buffer) Add(p geometry.PointInt) bool {
	if len(b.points) >= b.capacity {
		return false
	}
	b.points = append(b.points, p)
	return true
}

// Full reports whether the buffer holds its required point count.
func (b *Buffer) Full() bool {
	return len(b.points) >= b.capacity
}

// Len returns the number of collected points.
func (b *Buffer) Len() int {
	return len(b.points)
}

// Points returns the collected points in click order.
func (b *Buffer) Points() []geometry.PointInt {
	return b.points
}

// At returns the i-th collected point.
func (b *Buffer) At(i int) geometry.PointInt {
	return b.points[i]
}

// Clear discards all collected points.
func (b *Buffer) Clear() {
	b.points = b.points[:0]
}
