package capture

import (
	"fmt"

	"gocv.io/x/gocv"

	"github.com/daserban31/MicroscopeCamera/pkg/geometry"
)

// Recorder appends composed frames to a video file. It must be opened
// before the session's recording flag flips true and released exactly once
// when recording stops or the process shuts down.
type Recorder struct {
	writer *gocv.VideoWriter
	path   string
	closed bool
}

// StartRecording opens a video file at the session resolution and frame
// rate. The codec follows the extension-agnostic MJPG default; a writer
// that fails to open is reported as an error, not a half-open recorder.
func StartRecording(path string, fps float64, size geometry.Size) (*Recorder, error) {
	writer, err := gocv.VideoWriterFile(path, "MJPG", fps, size.Width, size.Height, true)
	if err != nil {
		return nil, fmt.Errorf("opening video writer %s: %w", path, err)
	}
	if !writer.IsOpened() {
		writer.Close()
		return nil, fmt.Errorf("video writer %s failed to open", path)
	}
	return &Recorder{writer: writer, path: path}, nil
}

// Write appends one frame. Frames carry overlays at original resolution.
func (r *Recorder) Write(frame gocv.Mat) error {
	return r.writer.Write(frame)
}

// Path returns the output file path.
func (r *Recorder) Path() string { return r.path }

// Close releases the writer. Closing twice is a no-op so shutdown paths can
// call it unconditionally.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	return r.writer.Close()
}
