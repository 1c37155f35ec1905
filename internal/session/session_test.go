package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daserban31/MicroscopeCamera/pkg/geometry"
)

func testConfig() Config {
	return Config{
		PixelsPerUnit: 2.0,
		UnitLabel:     "µm",
		FilterNames:   []string{"Normal", "Grayscale", "Invert Colors"},
	}
}

func TestTransition(t *testing.T) {
	t.Parallel()

	allModes := []Mode{ModeIdle, ModeDistance, ModeAngle, ModeAnnotationPlacing, ModeAnnotationTyping}

	t.Run("tool entries work from every state", func(t *testing.T) {
		t.Parallel()
		for _, m := range allModes {
			assert.Equal(t, ModeDistance, Transition(m, CmdEnterDistance), "from %s", m)
			assert.Equal(t, ModeAngle, Transition(m, CmdEnterAngle), "from %s", m)
			assert.Equal(t, ModeAnnotationPlacing, Transition(m, CmdEnterAnnotate), "from %s", m)
		}
	})

	t.Run("clear-current stays in measure modes and cancels annotate modes", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, ModeDistance, Transition(ModeDistance, CmdClearCurrent))
		assert.Equal(t, ModeAngle, Transition(ModeAngle, CmdClearCurrent))
		assert.Equal(t, ModeIdle, Transition(ModeAnnotationPlacing, CmdClearCurrent))
		assert.Equal(t, ModeIdle, Transition(ModeAnnotationTyping, CmdClearCurrent))
		assert.Equal(t, ModeIdle, Transition(ModeIdle, CmdClearCurrent))
	})

	t.Run("undefined commands are no-ops on state", func(t *testing.T) {
		t.Parallel()
		for _, m := range allModes {
			for _, cmd := range []Command{CmdNone, CmdQuit, CmdSaveSnapshot, CmdToggleRecord, CmdClearAllAnnotations, CmdCycleFilter} {
				assert.Equal(t, m, Transition(m, cmd), "from %s with %d", m, cmd)
			}
		}
	})
}

func TestDistanceMeasurement(t *testing.T) {
	t.Parallel()

	t.Run("two clicks finalize pixel and real distance", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		require.Equal(t, ModeDistance, s.Mode)

		s.HandleClick(geometry.Pt(100, 100))
		assert.False(t, s.HasDistance)
		s.HandleClick(geometry.Pt(100, 200))

		require.True(t, s.HasDistance)
		assert.InDelta(t, 100.0, s.DistancePixels, 1e-9)
		assert.InDelta(t, 50.0, s.DistanceReal, 1e-9)
		assert.Equal(t, "Distance: 50.00µm", s.Status)
	})

	t.Run("extra clicks are ignored once finalized", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		s.HandleClick(geometry.Pt(0, 0))
		s.HandleClick(geometry.Pt(0, 100))
		first := s.DistancePixels

		s.HandleClick(geometry.Pt(500, 500))
		assert.Equal(t, first, s.DistancePixels)
		assert.Equal(t, 2, s.DistanceBuffer.Len())
	})

	t.Run("re-entering the tool clears buffer and result", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		s.HandleClick(geometry.Pt(0, 0))
		s.HandleClick(geometry.Pt(0, 100))
		require.True(t, s.HasDistance)

		s.Exec(CmdEnterDistance)
		assert.False(t, s.HasDistance)
		assert.Zero(t, s.DistanceBuffer.Len())
	})

	t.Run("result survives switching tools", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		s.HandleClick(geometry.Pt(0, 0))
		s.HandleClick(geometry.Pt(0, 100))

		s.Exec(CmdEnterAngle)
		assert.True(t, s.HasDistance, "results are not auto-cleared on mode exit")
	})

	t.Run("clear-current empties buffer and result but keeps mode", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		s.HandleClick(geometry.Pt(0, 0))
		s.HandleClick(geometry.Pt(0, 100))

		s.Exec(CmdClearCurrent)
		assert.Equal(t, ModeDistance, s.Mode)
		assert.Zero(t, s.DistanceBuffer.Len())
		assert.False(t, s.HasDistance)
	})
}

func TestAngleMeasurement(t *testing.T) {
	t.Parallel()

	t.Run("three clicks finalize the vertex angle", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAngle)

		s.HandleClick(geometry.Pt(0, 0))
		s.HandleClick(geometry.Pt(10, 0))
		assert.False(t, s.HasAngle)
		s.HandleClick(geometry.Pt(0, 10))

		require.True(t, s.HasAngle)
		assert.InDelta(t, 90.0, s.AngleDegrees, 1e-9)
		assert.Equal(t, "Angle: 90.00 degrees", s.Status)
	})

	t.Run("clicks in idle mode are ignored", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.HandleClick(geometry.Pt(5, 5))
		assert.Zero(t, s.DistanceBuffer.Len())
		assert.Zero(t, s.AngleBuffer.Len())
		assert.Nil(t, s.Draft.Point)
	})
}

func TestAnnotationFlow(t *testing.T) {
	t.Parallel()

	t.Run("click then typing then commit appends exactly one annotation", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		require.Equal(t, ModeAnnotationPlacing, s.Mode)

		s.HandleClick(geometry.Pt(50, 50))
		// The callback only requests the transition; the loop applies it.
		assert.Equal(t, ModeAnnotationPlacing, s.Mode)
		s.DrainPending()
		require.Equal(t, ModeAnnotationTyping, s.Mode)
		require.NotNil(t, s.Draft.Point)
		assert.Equal(t, geometry.Pt(50, 50), *s.Draft.Point)
		assert.Empty(t, s.Draft.Text)

		s.HandleTypingKey('o')
		s.HandleTypingKey('k')
		s.HandleTypingKey(KeyEnter)

		require.Len(t, s.Annotations, 1)
		assert.Equal(t, Annotation{Point: geometry.Pt(50, 50), Text: "ok"}, s.Annotations[0])
		assert.Equal(t, ModeIdle, s.Mode)
		assert.Nil(t, s.Draft.Point)
	})

	t.Run("commit with empty text never appends", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		s.HandleClick(geometry.Pt(10, 10))
		s.DrainPending()

		s.HandleTypingKey(KeyEnter)
		assert.Empty(t, s.Annotations)
		assert.Equal(t, ModeIdle, s.Mode)
	})

	t.Run("backspace trims and is a no-op on empty text", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		s.HandleClick(geometry.Pt(10, 10))
		s.DrainPending()

		s.HandleTypingKey(KeyBackspace)
		assert.Empty(t, s.Draft.Text)

		s.HandleTypingKey('a')
		s.HandleTypingKey('b')
		s.HandleTypingKey(KeyBackspace)
		assert.Equal(t, "a", s.Draft.Text)
	})

	t.Run("escape cancels without appending", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		s.HandleClick(geometry.Pt(10, 10))
		s.DrainPending()
		s.HandleTypingKey('x')

		s.HandleTypingKey(KeyEscape)
		assert.Empty(t, s.Annotations)
		assert.Equal(t, ModeIdle, s.Mode)
		assert.Nil(t, s.Draft.Point)
		assert.Empty(t, s.Draft.Text)
	})

	t.Run("non-printable keys are ignored while typing", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		s.HandleClick(geometry.Pt(10, 10))
		s.DrainPending()

		s.HandleTypingKey(KeyNone)
		s.HandleTypingKey(7)
		s.HandleTypingKey(200)
		assert.Empty(t, s.Draft.Text)
		assert.Equal(t, ModeAnnotationTyping, s.Mode)
	})

	t.Run("clear-all empties annotations but not measurement buffers", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Annotations = []Annotation{
			{Point: geometry.Pt(1, 1), Text: "one"},
			{Point: geometry.Pt(2, 2), Text: "two"},
		}
		s.Exec(CmdEnterDistance)
		s.HandleClick(geometry.Pt(0, 0))

		s.Exec(CmdClearAllAnnotations)
		assert.Empty(t, s.Annotations)
		assert.Equal(t, 1, s.DistanceBuffer.Len())
	})

	t.Run("clear-current cancels a draft in placing mode", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)

		s.Exec(CmdClearCurrent)
		assert.Equal(t, ModeIdle, s.Mode)
		assert.Nil(t, s.Draft.Point)
	})
}

func TestPendingRequestSlot(t *testing.T) {
	t.Parallel()

	t.Run("drain without a request is a no-op", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterDistance)
		s.DrainPending()
		assert.Equal(t, ModeDistance, s.Mode)
	})

	t.Run("a request is consumed exactly once", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Exec(CmdEnterAnnotate)
		s.HandleClick(geometry.Pt(1, 1))

		s.DrainPending()
		require.Equal(t, ModeAnnotationTyping, s.Mode)

		// A later drain must not re-apply the stale request.
		s.Exec(CmdEnterDistance)
		s.DrainPending()
		assert.Equal(t, ModeDistance, s.Mode)
	})
}

func TestCycleFilter(t *testing.T) {
	t.Parallel()

	s := New(testConfig())
	assert.Equal(t, "Normal", s.FilterName())

	s.Exec(CmdCycleFilter)
	assert.Equal(t, 1, s.FilterIndex)
	assert.Equal(t, "Filter: Grayscale", s.Status)

	s.Exec(CmdCycleFilter)
	s.Exec(CmdCycleFilter)
	assert.Equal(t, 0, s.FilterIndex, "cycling wraps around")
}

func TestClearStaleStatus(t *testing.T) {
	t.Parallel()

	t.Run("clears only in idle mode", func(t *testing.T) {
		t.Parallel()
		s := New(testConfig())
		s.Status = "old message"
		s.ClearStaleStatus()
		assert.Empty(t, s.Status)

		s.Exec(CmdEnterDistance)
		s.ClearStaleStatus()
		assert.NotEmpty(t, s.Status)
	})
}

func TestCommandForKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key  int
		want Command
	}{
		{'q', CmdQuit},
		{'s', CmdSaveSnapshot},
		{'r', CmdToggleRecord},
		{'d', CmdEnterDistance},
		{'a', CmdEnterAngle},
		{'t', CmdEnterAnnotate},
		{'c', CmdClearCurrent},
		{'C', CmdClearAllAnnotations},
		{'f', CmdCycleFilter},
		{'z', CmdNone},
		{KeyNone, CmdNone},
		{KeyEnter, CmdNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CommandForKey(tc.key), "key %d", tc.key)
	}
}
