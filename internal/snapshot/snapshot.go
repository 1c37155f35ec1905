// Package snapshot writes annotated still frames to image files. PNG and
// JPEG go through the stdlib encoders, TIFF through golang.org/x/image for
// operators who want a lossless archival format.
package snapshot

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocv.io/x/gocv"
	"golang.org/x/image/tiff"
)

const jpegQuality = 95

// SupportedExtensions lists the snapshot formats offered in the save
// dialog, preferred format first.
func SupportedExtensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".tiff", ".tif"}
}

// DefaultName returns a timestamped default filename such as
// capture_20260825-153012.png.
func DefaultName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s%s", prefix, time.Now().Format("20060102-150405"), ext)
}

// Save writes the composed BGR frame to path, choosing the encoder from the
// file extension. Unknown extensions fall back to PNG.
func Save(frame gocv.Mat, path string) error {
	img, err := frame.ToImage()
	if err != nil {
		return fmt.Errorf("converting frame: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := Encode(f, img, filepath.Ext(path)); err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", path, err)
	}
	return nil
}

// Encode writes img to w in the format implied by ext.
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	case ".tiff", ".tif":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return png.Encode(w, img)
	}
}
