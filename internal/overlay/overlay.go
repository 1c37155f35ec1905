// Package overlay composes the annotation layers onto a filtered frame.
// Drawing always happens at original capture resolution; the composed frame
// is what gets recorded and snapshotted, and is resized only for display.
//
// Layer order is a contract: scale bar and info text, then active
// measurement geometry, then committed annotations, then the draft
// highlight, then the recording indicator. Later layers stay visible over
// earlier ones.
package overlay

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/daserban31/MicroscopeCamera/internal/session"
)

const (
	margin      = 20
	pointRadius = 5
	textScale   = 0.5
	thickness   = 1
)

var (
	barColor        = color.RGBA{255, 255, 255, 0}
	textColor       = color.RGBA{255, 255, 255, 0}
	modeTextColor   = color.RGBA{200, 255, 200, 0}
	statusTextColor = color.RGBA{255, 200, 200, 0}
	measurePoint    = color.RGBA{0, 255, 0, 0}
	measureLine     = color.RGBA{255, 255, 0, 0}
	annotationPoint = color.RGBA{0, 0, 255, 0}
	annotationText  = color.RGBA{200, 200, 255, 0}
	draftColor      = color.RGBA{0, 255, 255, 0}
	recordingRed    = color.RGBA{255, 0, 0, 0}
)

// Renderer draws the overlay layers for a session.
type Renderer struct {
	// ScaleBarPixels is the on-frame length of the scale bar, derived from
	// the calibration ratio. A non-positive length suppresses the bar.
	ScaleBarPixels int
	// ScaleBarLabel is the bar's caption, e.g. "100 µm".
	ScaleBarLabel string
}

// Draw renders all overlay layers onto the already-filtered frame.
func (r *Renderer) Draw(frame *gocv.Mat, s *session.Session) {
	height := frame.Rows()
	width := frame.Cols()

	r.drawScaleBar(frame, height)
	r.drawInfoText(frame, s)
	r.drawMeasurements(frame, s)
	r.drawAnnotations(frame, s)
	r.drawDraft(frame, s)
	if s.Recording {
		gocv.Circle(frame, image.Pt(width-margin-10, margin+10), 10, recordingRed, -1)
	}
}

func (r *Renderer) drawScaleBar(frame *gocv.Mat, height int) {
	if r.ScaleBarPixels <= 0 {
		return
	}
	y := height - margin
	gocv.Line(frame, image.Pt(margin, y), image.Pt(margin+r.ScaleBarPixels, y), barColor, 2)
	gocv.PutText(frame, r.ScaleBarLabel, image.Pt(margin, y-10),
		gocv.FontHersheySimplex, textScale, textColor, thickness)
}

func (r *Renderer) drawInfoText(frame *gocv.Mat, s *session.Session) {
	header := fmt.Sprintf("Mode: %s | Filter: %s", s.Mode, s.FilterName())
	gocv.PutText(frame, header, image.Pt(margin, margin+20),
		gocv.FontHersheySimplex, textScale*1.2, modeTextColor, thickness)
	if s.Status != "" {
		gocv.PutText(frame, s.Status, image.Pt(margin, margin+50),
			gocv.FontHersheySimplex, textScale*1.1, statusTextColor, thickness)
	}
}

func (r *Renderer) drawMeasurements(frame *gocv.Mat, s *session.Session) {
	for _, p := range s.DistanceBuffer.Points() {
		gocv.Circle(frame, p.ImagePoint(), pointRadius, measurePoint, -1)
	}
	if s.DistanceBuffer.Full() {
		gocv.Line(frame, s.DistanceBuffer.At(0).ImagePoint(), s.DistanceBuffer.At(1).ImagePoint(),
			measureLine, thickness)
	}

	for _, p := range s.AngleBuffer.Points() {
		gocv.Circle(frame, p.ImagePoint(), pointRadius, measurePoint, -1)
	}
	if s.AngleBuffer.Full() {
		vertex := s.AngleBuffer.At(0).ImagePoint()
		gocv.Line(frame, vertex, s.AngleBuffer.At(1).ImagePoint(), measureLine, thickness)
		gocv.Line(frame, vertex, s.AngleBuffer.At(2).ImagePoint(), measureLine, thickness)
	}
}

func (r *Renderer) drawAnnotations(frame *gocv.Mat, s *session.Session) {
	for _, ann := range s.Annotations {
		p := ann.Point.ImagePoint()
		gocv.Circle(frame, p, pointRadius-2, annotationPoint, -1)
		gocv.PutText(frame, ann.Text, image.Pt(p.X+10, p.Y+5),
			gocv.FontHersheySimplex, textScale, annotationText, thickness)
	}
}

func (r *Renderer) drawDraft(frame *gocv.Mat, s *session.Session) {
	if s.Mode != session.ModeAnnotationTyping || s.Draft.Point == nil {
		return
	}
	p := s.Draft.Point.ImagePoint()
	gocv.Circle(frame, p, pointRadius-1, draftColor, -1)
	gocv.PutText(frame, s.Draft.Text+"|", image.Pt(p.X+10, p.Y+5),
		gocv.FontHersheySimplex, textScale, draftColor, thickness)
}
