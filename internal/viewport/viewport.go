// Package viewport maps between the on-screen display space and the native
// capture space. All measurement and annotation geometry is stored in
// original-frame coordinates; the display is only a resampled view.
package viewport

import "github.com/daserban31/MicroscopeCamera/pkg/geometry"

// Viewport holds the original and display dimensions plus the derived
// display-to-original scale factors.
type Viewport struct {
	Original geometry.Size
	Display  geometry.Size

	scaleX float64
	scaleY float64
}

// Fit computes the display size for an original frame size and the
// requested display constraints. A non-positive wantWidth or wantHeight
// leaves that axis unconstrained; constraining a single axis preserves the
// original aspect ratio, constraining both uses them as-is, and
// constraining neither keeps the native size.
func Fit(original geometry.Size, wantWidth, wantHeight int) Viewport {
	aspect := original.AspectRatio()

	display := original
	switch {
	case wantWidth > 0 && wantHeight > 0:
		display = geometry.Size{Width: wantWidth, Height: wantHeight}
	case wantWidth > 0:
		h := wantWidth
		if aspect > 0 {
			h = int(float64(wantWidth) / aspect)
		}
		display = geometry.Size{Width: wantWidth, Height: h}
	case wantHeight > 0:
		display = geometry.Size{Width: int(float64(wantHeight) * aspect), Height: wantHeight}
	}

	v := Viewport{Original: original, Display: display, scaleX: 1.0, scaleY: 1.0}
	if display.Width > 0 && display.Height > 0 {
		v.scaleX = float64(original.Width) / float64(display.Width)
		v.scaleY = float64(original.Height) / float64(display.Height)
	}
	return v
}

// ToOriginal maps a pointer position in display coordinates to original
// frame coordinates, truncating to integer pixels.
func (v Viewport) ToOriginal(x, y int) geometry.PointInt {
	return geometry.Point2D{X: float64(x), Y: float64(y)}.Scale(v.scaleX, v.scaleY).Truncate()
}

// ScaleX returns the display-to-original scale factor on the X axis.
func (v Viewport) ScaleX() float64 { return v.scaleX }

// ScaleY returns the display-to-original scale factor on the Y axis.
func (v Viewport) ScaleY() float64 { return v.scaleY }

// NeedsResize reports whether the composed frame must be resampled before
// presentation. Resizing happens only at the final presentation step so
// overlays are always drawn (and recorded) at original resolution.
func (v Viewport) NeedsResize() bool {
	return v.Display != v.Original && v.Display.Width > 0 && v.Display.Height > 0
}
