// Package dialogs provides the save-path chooser collaborator. The core
// loop only sees the SaveDialog interface; the fyne implementation shows a
// real chooser, the default-path implementation makes headless runs and
// tests deterministic.
package dialogs

import (
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
)

// SaveDialog chooses a destination path for a snapshot or recording.
// The second return is false when the operator cancelled.
type SaveDialog interface {
	ChooseSavePath(dir, title, defaultName string, exts []string) (string, bool)
}

// DefaultPathDialog accepts the suggested name inside the capture directory
// without asking. Used with --no-dialog and in tests.
type DefaultPathDialog struct{}

// ChooseSavePath joins the capture directory and the default name.
func (DefaultPathDialog) ChooseSavePath(dir, title, defaultName string, exts []string) (string, bool) {
	return filepath.Join(dir, defaultName), true
}

// FyneDialog shows a file-save chooser parented to a hidden window, the
// same trick the original tool used with a withdrawn Tk root. Its event
// loop must own the main goroutine (the glfw driver panics otherwise), so
// the caller runs the capture loop elsewhere, calls Run here, and calls
// Quit when the capture loop ends.
type FyneDialog struct {
	app fyne.App
	win fyne.Window
}

// NewFyneDialog creates the hidden dialog host.
func NewFyneDialog() *FyneDialog {
	a := app.NewWithID("com.daserban31.microscopecamera")
	w := a.NewWindow("Microscope Power Tools")
	w.Resize(fyne.NewSize(800, 600))
	return &FyneDialog{app: a, win: w}
}

// Run enters the dialog event loop. It must be called from the main
// goroutine and blocks until Quit.
func (d *FyneDialog) Run() {
	d.app.Run()
}

// Quit stops the dialog event loop, unblocking Run.
func (d *FyneDialog) Quit() {
	d.app.Quit()
}

// ChooseSavePath blocks until the operator picks a path or cancels. It is
// called from the capture goroutine while Run holds the main goroutine.
func (d *FyneDialog) ChooseSavePath(dir, title, defaultName string, exts []string) (string, bool) {
	result := make(chan string, 1)
	d.win.SetTitle(title)

	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			result <- ""
			return
		}
		path := writer.URI().Path()
		writer.Close()
		if filepath.Ext(path) == "" && len(exts) > 0 {
			path += exts[0]
		}
		result <- path
	}, d.win)
	fd.SetFileName(defaultName)
	if len(exts) > 0 {
		fd.SetFilter(storage.NewExtensionFileFilter(exts))
	}
	if loc := listableDir(dir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.SetOnClosed(func() {
		select {
		case result <- "":
		default:
		}
	})

	d.win.Show()
	fd.Show()
	path := <-result
	d.win.Hide()

	if path == "" {
		return "", false
	}
	return path, true
}

// listableDir returns the directory as a ListableURI, or nil.
func listableDir(dir string) fyne.ListableURI {
	if dir == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(dir))
	if err != nil {
		return nil
	}
	return listable
}
