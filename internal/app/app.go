// Package app runs the capture/render/input loop that ties the camera,
// filters, overlay, session state, and persistence together.
package app

import (
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"

	"github.com/daserban31/MicroscopeCamera/internal/capture"
	"github.com/daserban31/MicroscopeCamera/internal/filter"
	"github.com/daserban31/MicroscopeCamera/internal/overlay"
	"github.com/daserban31/MicroscopeCamera/internal/session"
	"github.com/daserban31/MicroscopeCamera/internal/snapshot"
	"github.com/daserban31/MicroscopeCamera/internal/viewport"
	"github.com/daserban31/MicroscopeCamera/ui/dialogs"
)

// OpenCV mouse event code for a left-button press, as delivered by the
// window's mouse handler.
const eventLeftButtonDown = 1

// Key poll timeouts in milliseconds. Typing mode waits longer so text entry
// doesn't drop characters between frames.
const (
	pollNormalMs = 1
	pollTypingMs = 30
)

// Config carries everything the loop needs, resolved from prefs and flags.
type Config struct {
	Device        int
	DisplayWidth  int // <=0: derive from height or use native
	DisplayHeight int // <=0: derive from width or use native
	PixelsPerUnit float64
	UnitLabel     string
	ScaleBarUnits float64
	CaptureDir    string
	StartFilter   int
	WindowTitle   string
}

// App owns the loop and its collaborators.
type App struct {
	cfg      Config
	sess     *session.Session
	vp       viewport.Viewport
	source   *capture.Source
	recorder *capture.Recorder
	window   *gocv.Window
	renderer *overlay.Renderer
	dialog   dialogs.SaveDialog
}

// New creates an App with the given save-path chooser.
func New(cfg Config, dlg dialogs.SaveDialog) *App {
	return &App{cfg: cfg, dialog: dlg}
}

// FilterIndex returns the active filter index, for writing back to prefs.
func (a *App) FilterIndex() int {
	if a.sess == nil {
		return a.cfg.StartFilter
	}
	return a.sess.FilterIndex
}

// Run opens the camera and the display window and drives the loop until a
// quit command or end of stream. The recording sink, if open, is released
// exactly once on the way out.
func (a *App) Run() error {
	if err := os.MkdirAll(a.cfg.CaptureDir, 0o755); err != nil {
		return fmt.Errorf("creating capture directory: %w", err)
	}

	source, err := capture.Open(a.cfg.Device)
	if err != nil {
		return err
	}
	a.source = source
	defer a.source.Close()

	a.vp = viewport.Fit(source.Size(), a.cfg.DisplayWidth, a.cfg.DisplayHeight)

	a.sess = session.New(session.Config{
		PixelsPerUnit: a.cfg.PixelsPerUnit,
		UnitLabel:     a.cfg.UnitLabel,
		FilterNames:   filter.Names(),
	})
	if a.cfg.StartFilter >= 0 && a.cfg.StartFilter < filter.Count() {
		a.sess.FilterIndex = a.cfg.StartFilter
	}

	a.renderer = &overlay.Renderer{
		ScaleBarPixels: int(a.cfg.ScaleBarUnits * a.cfg.PixelsPerUnit),
		ScaleBarLabel:  fmt.Sprintf("%.0f %s", a.cfg.ScaleBarUnits, a.cfg.UnitLabel),
	}

	a.window = gocv.NewWindow(a.cfg.WindowTitle)
	defer a.window.Close()
	if a.vp.NeedsResize() {
		a.window.ResizeWindow(a.vp.Display.Width, a.vp.Display.Height)
	}
	a.window.SetMouseHandler(func(event, x, y, flags int, userdata interface{}) {
		if event == eventLeftButtonDown {
			a.sess.HandleClick(a.vp.ToOriginal(x, y))
		}
	}, nil)

	log.Printf("Camera: %d, Original Res: %dx%d, Display Res: %dx%d, FPS: %.1f",
		source.Device(), a.vp.Original.Width, a.vp.Original.Height,
		a.vp.Display.Width, a.vp.Display.Height, source.FPS())
	log.Printf("Scale: %.2f px/%s | Bar: %.0f %s",
		a.cfg.PixelsPerUnit, a.cfg.UnitLabel, a.cfg.ScaleBarUnits, a.cfg.UnitLabel)
	for _, line := range session.ControlsHelp() {
		log.Print(line)
	}

	defer a.stopRecording(false)

	return a.loop()
}

func (a *App) loop() error {
	frame := gocv.NewMat()
	defer frame.Close()
	composed := gocv.NewMat()
	defer composed.Close()
	display := gocv.NewMat()
	defer display.Close()

	for {
		if ok := a.source.Read(&frame); !ok || frame.Empty() {
			log.Print("End of stream, shutting down")
			return nil
		}

		// Composition order: filter, then overlays at original resolution,
		// then (for display only) the resize.
		filter.Apply(filter.Filter(a.sess.FilterIndex), frame, &composed)
		a.renderer.Draw(&composed, a.sess)

		if a.sess.Recording && a.recorder != nil {
			if err := a.recorder.Write(composed); err != nil {
				log.Printf("Recording write failed: %v", err)
			}
		}

		out := &composed
		if a.vp.NeedsResize() {
			gocv.Resize(composed, &display,
				image.Pt(a.vp.Display.Width, a.vp.Display.Height), 0, 0, gocv.InterpolationArea)
			out = &display
		}
		a.window.IMShow(*out)

		a.sess.DrainPending()

		timeout := pollNormalMs
		if a.sess.Mode == session.ModeAnnotationTyping {
			timeout = pollTypingMs
		}
		key := a.window.WaitKey(timeout)

		if a.sess.Mode == session.ModeAnnotationTyping {
			if key >= 0 {
				a.sess.HandleTypingKey(key)
			}
			continue
		}
		if key < 0 {
			continue
		}

		switch cmd := session.CommandForKey(key); cmd {
		case session.CmdQuit:
			return nil
		case session.CmdSaveSnapshot:
			a.saveSnapshot(composed)
		case session.CmdToggleRecord:
			a.toggleRecording()
		case session.CmdNone:
			a.sess.ClearStaleStatus()
		default:
			a.sess.Exec(cmd)
		}
	}
}

// saveSnapshot writes the composed frame (with overlays, at original
// resolution) to an operator-chosen path. A cancelled dialog mutates
// nothing but the status message.
func (a *App) saveSnapshot(frame gocv.Mat) {
	path, ok := a.dialog.ChooseSavePath(
		a.cfg.CaptureDir,
		"Save Image As...",
		snapshot.DefaultName("capture", ".png"),
		snapshot.SupportedExtensions(),
	)
	if !ok {
		a.sess.Status = "Save cancelled."
		return
	}
	if err := snapshot.Save(frame, path); err != nil {
		log.Printf("Snapshot failed: %v", err)
		a.sess.Status = "Error saving image!"
		return
	}
	a.sess.Status = "Saved: " + filepath.Base(path)
}

// toggleRecording starts or stops the recording sink. The sink is opened
// before the recording flag flips true; open failure leaves the flag false.
func (a *App) toggleRecording() {
	if a.sess.Recording {
		a.stopRecording(true)
		return
	}

	path, ok := a.dialog.ChooseSavePath(
		a.cfg.CaptureDir,
		"Record Video As...",
		snapshot.DefaultName("video", ".avi"),
		[]string{".avi", ".mp4"},
	)
	if !ok {
		a.sess.Status = "Recording cancelled."
		return
	}

	recorder, err := capture.StartRecording(path, a.source.FPS(), a.source.Size())
	if err != nil {
		log.Printf("Recording failed to start: %v", err)
		a.sess.Status = "Error starting recording!"
		return
	}
	a.recorder = recorder
	a.sess.Recording = true
	a.sess.Status = "Recording to " + filepath.Base(path)
}

// stopRecording releases the sink if open. Safe to call on shutdown paths
// whether or not recording is active.
func (a *App) stopRecording(announce bool) {
	if a.recorder == nil {
		return
	}
	if err := a.recorder.Close(); err != nil {
		log.Printf("Closing video writer: %v", err)
	}
	a.recorder = nil
	a.sess.Recording = false
	if announce {
		a.sess.Status = "Recording stopped."
	}
}
