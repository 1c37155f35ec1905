// Package capture wraps the camera source and the video recorder. Both are
// thin collaborators around gocv; the loop owns their lifecycles.
package capture

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/daserban31/MicroscopeCamera/pkg/geometry"
)

// Cameras commonly report 0 fps; fall back to something sane for the
// recorder.
const defaultFPS = 20.0

// Source is an open camera device.
type Source struct {
	cap    *gocv.VideoCapture
	size   geometry.Size
	fps    float64
	device int
}

// Open opens the camera at the given device index and reads its native
// resolution and frame rate.
func Open(device int) (*Source, error) {
	cap, err := gocv.OpenVideoCapture(device)
	if err != nil {
		return nil, fmt.Errorf("opening video device %d: %w", device, err)
	}

	s := &Source{
		cap:    cap,
		device: device,
		size: geometry.Size{
			Width:  int(cap.Get(gocv.VideoCaptureFrameWidth)),
			Height: int(cap.Get(gocv.VideoCaptureFrameHeight)),
		},
		fps: cap.Get(gocv.VideoCaptureFPS),
	}
	if s.fps <= 0 {
		s.fps = defaultFPS
	}
	return s, nil
}

// Read grabs the next frame into dst. It reports false on end of stream.
func (s *Source) Read(dst *gocv.Mat) bool {
	return s.cap.Read(dst)
}

// Size returns the native capture resolution.
func (s *Source) Size() geometry.Size { return s.size }

// FPS returns the capture frame rate.
func (s *Source) FPS() float64 { return s.fps }

// Device returns the device index the source was opened with.
func (s *Source) Device() int { return s.device }

// Close releases the camera.
func (s *Source) Close() error {
	return s.cap.Close()
}
