package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daserban31/MicroscopeCamera/internal/app"
	"github.com/daserban31/MicroscopeCamera/internal/version"
	"github.com/daserban31/MicroscopeCamera/ui/dialogs"
	"github.com/daserban31/MicroscopeCamera/ui/prefs"
)

const windowTitle = "Microscope Power Tools"

var (
	flagDevice        int
	flagDisplayWidth  int
	flagDisplayHeight int
	flagPixelsPerUnit float64
	flagUnitLabel     string
	flagScaleBarUnits float64
	flagCaptureDir    string
	flagNoDialog      bool
)

var rootCmd = &cobra.Command{
	Use:     "microscope-camera",
	Short:   "Live microscope video annotation and measurement overlay",
	Version: version.Version,
	Long: `Reads frames from a microscope camera, applies a selectable visual
filter, overlays distance/angle measurements and text annotations placed
with the mouse and keyboard, and saves snapshots or records the annotated
stream.`,
	RunE: run,
}

func init() {
	f := rootCmd.Flags()
	f.IntVarP(&flagDevice, "device", "i", 0, "camera device index")
	f.IntVar(&flagDisplayWidth, "width", 0, "display width in pixels (0 = from prefs)")
	f.IntVar(&flagDisplayHeight, "height", 0, "display height in pixels (0 = from prefs)")
	f.Float64Var(&flagPixelsPerUnit, "px-per-unit", 0, "calibration ratio in pixels per real unit (0 = from prefs)")
	f.StringVar(&flagUnitLabel, "unit", "", "real-world unit label (empty = from prefs)")
	f.Float64Var(&flagScaleBarUnits, "scale-bar", 0, "scale bar length in real units (0 = from prefs)")
	f.StringVar(&flagCaptureDir, "dir", "", "capture directory (empty = from prefs)")
	f.BoolVar(&flagNoDialog, "no-dialog", false, "save to timestamped files without a chooser dialog")
}

func run(cmd *cobra.Command, args []string) error {
	p := prefs.Load()
	applyFlags(p)

	var host *dialogs.FyneDialog
	var dlg dialogs.SaveDialog = dialogs.DefaultPathDialog{}
	if !flagNoDialog {
		host = dialogs.NewFyneDialog()
		dlg = host
	}

	a := app.New(app.Config{
		Device:        flagDevice,
		DisplayWidth:  p.DisplayWidth,
		DisplayHeight: p.DisplayHeight,
		PixelsPerUnit: p.PixelsPerUnit,
		UnitLabel:     p.UnitLabel,
		ScaleBarUnits: p.ScaleBarUnits,
		CaptureDir:    p.CaptureDir,
		StartFilter:   p.FilterIndex,
		WindowTitle:   windowTitle,
	}, dlg)

	// The fyne host keeps the main goroutine; the capture loop gets its own
	// locked OS thread. Without a dialog host the loop runs right here.
	var err error
	if host != nil {
		err = runWithHost(host, a.Run)
	} else {
		err = a.Run()
	}

	p.FilterIndex = a.FilterIndex()
	if saveErr := p.Save(); saveErr != nil {
		fmt.Fprintf(os.Stderr, "saving preferences: %v\n", saveErr)
	}
	return err
}

// applyFlags overlays explicitly set flags onto the loaded preferences.
func applyFlags(p *prefs.Prefs) {
	if flagDisplayWidth > 0 {
		p.DisplayWidth = flagDisplayWidth
		if flagDisplayHeight <= 0 {
			p.DisplayHeight = 0
		}
	}
	if flagDisplayHeight > 0 {
		p.DisplayHeight = flagDisplayHeight
		if flagDisplayWidth <= 0 {
			p.DisplayWidth = 0
		}
	}
	if flagPixelsPerUnit > 0 {
		p.PixelsPerUnit = flagPixelsPerUnit
	}
	if flagUnitLabel != "" {
		p.UnitLabel = flagUnitLabel
	}
	if flagScaleBarUnits > 0 {
		p.ScaleBarUnits = flagScaleBarUnits
	}
	if flagCaptureDir != "" {
		p.CaptureDir = flagCaptureDir
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
