package cmd

import "runtime"

// dialogHost is a GUI event loop that must keep the goroutine it is started
// on. Run blocks until Quit.
type dialogHost interface {
	Run()
	Quit()
}

// runWithHost drives the capture loop on its own locked OS thread and gives
// the calling goroutine to the dialog host's event loop. Fyne's glfw driver
// panics when its Run is called off the main goroutine, so the host stays
// where main started and the loop moves instead. The host is quit once the
// loop returns, and the loop's error is passed through.
func runWithHost(host dialogHost, loop func() error) error {
	errCh := make(chan error, 1)
	go func() {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		errCh <- loop()
		host.Quit()
	}()
	host.Run()
	return <-errCh
}
