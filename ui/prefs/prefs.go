// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const prefsFile = "preferences.json"

// Prefs stores the operator-facing settings that survive between runs.
// Command-line flags override these for a single run; a clean exit writes
// the effective values back.
type Prefs struct {
	CaptureDir    string  `json:"capture_dir"`
	PixelsPerUnit float64 `json:"pixels_per_unit"`
	UnitLabel     string  `json:"unit_label"`
	ScaleBarUnits float64 `json:"scale_bar_units"`
	DisplayWidth  int     `json:"display_width"`
	DisplayHeight int     `json:"display_height"`
	FilterIndex   int     `json:"filter_index"`

	path string
}

// Defaults returns the built-in settings: a 960-wide display (height
// derived from the camera's aspect ratio), micrometer calibration, and a
// capture directory under the working directory.
func Defaults() Prefs {
	return Prefs{
		CaptureDir:    "./microscope_captures",
		PixelsPerUnit: 3.0,
		UnitLabel:     "µm",
		ScaleBarUnits: 100,
		DisplayWidth:  960,
		DisplayHeight: 0,
	}
}

// DefaultPath returns ~/.config/microscope-camera/preferences.json.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "microscope-camera", prefsFile)
}

// Load reads preferences from the default path, returning defaults if the
// file doesn't exist.
func Load() *Prefs {
	return LoadFile(DefaultPath())
}

// LoadFile reads preferences from an explicit path, overlaying whatever the
// file holds onto the defaults.
func LoadFile(path string) *Prefs {
	p := Defaults()
	p.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		return &p
	}
	_ = json.Unmarshal(data, &p)
	return &p
}

// Save writes preferences back to the path they were loaded from.
func (p *Prefs) Save() error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}
