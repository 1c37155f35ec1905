package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file yields defaults", func(t *testing.T) {
		t.Parallel()
		p := LoadFile(filepath.Join(t.TempDir(), "nope", "preferences.json"))
		assert.Equal(t, Defaults().PixelsPerUnit, p.PixelsPerUnit)
		assert.Equal(t, Defaults().UnitLabel, p.UnitLabel)
		assert.Equal(t, 960, p.DisplayWidth)
	})

	t.Run("file values overlay defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "preferences.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"pixels_per_unit": 7.5, "unit_label": "mm"}`), 0o644))

		p := LoadFile(path)
		assert.Equal(t, 7.5, p.PixelsPerUnit)
		assert.Equal(t, "mm", p.UnitLabel)
		assert.Equal(t, Defaults().ScaleBarUnits, p.ScaleBarUnits, "unset keys keep defaults")
	})

	t.Run("corrupt file falls back to defaults", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "preferences.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

		p := LoadFile(path)
		assert.Equal(t, Defaults().PixelsPerUnit, p.PixelsPerUnit)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sub", "preferences.json")
	p := LoadFile(path)
	p.PixelsPerUnit = 12.25
	p.FilterIndex = 3
	p.CaptureDir = "/data/captures"
	require.NoError(t, p.Save())

	got := LoadFile(path)
	assert.Equal(t, 12.25, got.PixelsPerUnit)
	assert.Equal(t, 3, got.FilterIndex)
	assert.Equal(t, "/data/captures", got.CaptureDir)
}
