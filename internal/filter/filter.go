// Package filter enumerates the visual filters and applies them to raw
// frames. Filtering is the first layer of the overlay composition: it runs
// on the full-resolution frame before anything is drawn on top.
package filter

import "gocv.io/x/gocv"

// Filter identifies one of the enumerated visual filters.
type Filter int

const (
	Normal Filter = iota
	Grayscale
	Jet
	HSV
	Cool
	ChannelSwap
	Invert

	count
)

var names = [...]string{
	Normal:      "Normal",
	Grayscale:   "Grayscale",
	Jet:         "Jet Colormap",
	HSV:         "HSV Colormap",
	Cool:        "Cool Colormap",
	ChannelSwap: "Channel Swap RGB",
	Invert:      "Invert Colors",
}

func (f Filter) String() string {
	if f < 0 || int(f) >= len(names) {
		return "Unknown"
	}
	return names[f]
}

// Count returns the number of enumerated filters.
func Count() int {
	return int(count)
}

// Names returns the display names of all filters in cycle order.
func Names() []string {
	out := make([]string, count)
	for i := range out {
		out[i] = Filter(i).String()
	}
	return out
}

// Apply writes the filtered version of the BGR frame src into dst. Every
// filter produces a 3-channel BGR result so the overlay and recording
// stages see a uniform format.
func Apply(f Filter, src gocv.Mat, dst *gocv.Mat) {
	switch f {
	case Grayscale:
		gray := gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
		gocv.CvtColor(gray, dst, gocv.ColorGrayToBGR)
	case Jet, HSV, Cool:
		gray := gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)
		gocv.ApplyColorMap(gray, dst, colormapFor(f))
	case ChannelSwap:
		// BGR -> GRB, matching the original channel-swap filter.
		ch := gocv.Split(src)
		defer func() {
			for i := range ch {
				ch[i].Close()
			}
		}()
		gocv.Merge([]gocv.Mat{ch[1], ch[2], ch[0]}, dst)
	case Invert:
		gocv.BitwiseNot(src, dst)
	default:
		src.CopyTo(dst)
	}
}

func colormapFor(f Filter) gocv.ColormapTypes {
	switch f {
	case HSV:
		return gocv.ColormapHsv
	case Cool:
		return gocv.ColormapCool
	default:
		return gocv.ColormapJet
	}
}
