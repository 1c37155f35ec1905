package session

import (
	"fmt"
	"sync"

	"github.com/daserban31/MicroscopeCamera/internal/measure"
	"github.com/daserban31/MicroscopeCamera/pkg/geometry"
)

// Annotation is a committed text label anchored at an original-frame point.
// Committed annotations are never mutated; they are removable only through
// clear-all.
type Annotation struct {
	Point geometry.PointInt `json:"point"`
	Text  string            `json:"text"`
}

// Draft is an annotation in progress. It exists only while placing or
// typing and is discarded on commit, cancel, or clear.
type Draft struct {
	Point *geometry.PointInt
	Text  string
}

// Config carries the calibration and filter naming the session needs for
// its status messages and measurement results.
type Config struct {
	PixelsPerUnit float64
	UnitLabel     string
	FilterNames   []string
}

// Session is the whole mutable state of one capture session. It is owned by
// the main loop; the pointer callback touches it only through HandleClick,
// which defers mode transitions via the single-slot pending request.
type Session struct {
	Mode   Mode
	Status string

	FilterIndex int

	DistanceBuffer *measure.Buffer
	AngleBuffer    *measure.Buffer

	// Finalized measurement results. They persist for display after the
	// tool mode is left and are reset only by clear-current or re-entering
	// the same tool.
	DistancePixels float64
	DistanceReal   float64
	AngleDegrees   float64
	HasDistance    bool
	HasAngle       bool

	Annotations []Annotation
	Draft       Draft

	Recording bool

	cfg Config

	// Single-slot pending mode transition, written by the pointer callback
	// and drained once per loop iteration.
	pendingMu   sync.Mutex
	pendingMode *Mode
}

// New creates a session in Idle mode.
func New(cfg Config) *Session {
	return &Session{
		Mode:           ModeIdle,
		cfg:            cfg,
		DistanceBuffer: measure.NewBuffer(measure.DistancePoints),
		AngleBuffer:    measure.NewBuffer(measure.AnglePoints),
	}
}

// FilterName returns the display name of the active filter.
func (s *Session) FilterName() string {
	if s.FilterIndex >= 0 && s.FilterIndex < len(s.cfg.FilterNames) {
		return s.cfg.FilterNames[s.FilterIndex]
	}
	return ""
}

// UnitLabel returns the configured real-world unit label.
func (s *Session) UnitLabel() string {
	return s.cfg.UnitLabel
}

// HandleClick processes a pointer click already mapped to original-frame
// coordinates. It may be invoked from the display's reentrant mouse
// callback, so it never switches Mode directly; the one transition it can
// cause (placing -> typing) goes through the pending slot.
func (s *Session) HandleClick(p geometry.PointInt) {
	switch s.Mode {
	case ModeDistance:
		if !s.DistanceBuffer.Add(p) {
			return
		}
		if s.DistanceBuffer.Full() {
			s.finalizeDistance()
		}
	case ModeAngle:
		if !s.AngleBuffer.Add(p) {
			return
		}
		if s.AngleBuffer.Full() {
			s.finalizeAngle()
		}
	case ModeAnnotationPlacing:
		pt := p
		s.Draft.Point = &pt
		s.Status = "Type annotation text, Enter to save, Esc to cancel."
		s.requestMode(ModeAnnotationTyping)
	}
}

func (s *Session) finalizeDistance() {
	p1, p2 := s.DistanceBuffer.At(0), s.DistanceBuffer.At(1)
	s.DistancePixels = measure.PixelDistance(p1, p2)
	s.DistanceReal = measure.RealDistance(s.DistancePixels, s.cfg.PixelsPerUnit)
	s.HasDistance = true
	s.Status = fmt.Sprintf("Distance: %.2f%s", s.DistanceReal, s.cfg.UnitLabel)
}

func (s *Session) finalizeAngle() {
	vertex, a, b := s.AngleBuffer.At(0), s.AngleBuffer.At(1), s.AngleBuffer.At(2)
	s.AngleDegrees = measure.VertexAngle(vertex, a, b)
	s.HasAngle = true
	s.Status = fmt.Sprintf("Angle: %.2f degrees", s.AngleDegrees)
}

// requestMode posts a mode transition into the single-slot pending queue.
func (s *Session) requestMode(m Mode) {
	s.pendingMu.Lock()
	s.pendingMode = &m
	s.pendingMu.Unlock()
}

// DrainPending applies at most one pending mode transition. The main loop
// calls it exactly once per iteration.
func (s *Session) DrainPending() {
	s.pendingMu.Lock()
	m := s.pendingMode
	s.pendingMode = nil
	s.pendingMu.Unlock()
	if m != nil {
		s.Mode = *m
	}
}

// Exec applies a state-only command: mode entries, clears, and filter
// cycling. Quit, snapshot, and recording are handled by the loop since they
// involve collaborators; Exec ignores them.
func (s *Session) Exec(cmd Command) {
	next := Transition(s.Mode, cmd)

	switch cmd {
	case CmdEnterDistance:
		s.DistanceBuffer.Clear()
		s.HasDistance = false
		s.Status = "Distance Mode: Click 2 points."
	case CmdEnterAngle:
		s.AngleBuffer.Clear()
		s.HasAngle = false
		s.Status = "Angle Mode: Click 3 points (Vertex first)."
	case CmdEnterAnnotate:
		s.Draft = Draft{}
		s.Status = "Annotation Mode: Click to place text."
	case CmdClearCurrent:
		switch s.Mode {
		case ModeDistance:
			s.DistanceBuffer.Clear()
			s.HasDistance = false
		case ModeAngle:
			s.AngleBuffer.Clear()
			s.HasAngle = false
		case ModeAnnotationPlacing, ModeAnnotationTyping:
			s.Draft = Draft{}
		}
		s.Status = "Current points cleared."
	case CmdClearAllAnnotations:
		s.Annotations = nil
		s.Status = "All annotations cleared."
	case CmdCycleFilter:
		if n := len(s.cfg.FilterNames); n > 0 {
			s.FilterIndex = (s.FilterIndex + 1) % n
		}
		s.Status = "Filter: " + s.FilterName()
	}

	s.Mode = next
}

// HandleTypingKey processes one key while in AnnotationTyping mode:
// printable characters append, backspace deletes, Enter commits, Escape
// cancels. Keys outside the text-entry surface are ignored.
func (s *Session) HandleTypingKey(key int) {
	switch {
	case key == KeyEnter:
		s.commitDraft()
	case key == KeyEscape:
		s.cancelDraft()
	case key == KeyBackspace:
		if len(s.Draft.Text) > 0 {
			s.Draft.Text = s.Draft.Text[:len(s.Draft.Text)-1]
		}
	case key >= 32 && key <= 126:
		s.Draft.Text += string(rune(key))
	}
}

// commitDraft appends the draft to the annotation collection if it has both
// a point and non-empty text, then clears it and returns to Idle.
func (s *Session) commitDraft() {
	if s.Draft.Text != "" && s.Draft.Point != nil {
		s.Annotations = append(s.Annotations, Annotation{Point: *s.Draft.Point, Text: s.Draft.Text})
		s.Status = "Annotation saved. Press 't' for new."
	} else {
		s.Status = "Annotation cancelled."
	}
	s.Draft = Draft{}
	s.Mode = ModeIdle
}

func (s *Session) cancelDraft() {
	s.Draft = Draft{}
	s.Mode = ModeIdle
	s.Status = "Annotation cancelled."
}

// ClearStaleStatus drops a leftover status message when an unrecognized key
// is pressed in Idle mode.
func (s *Session) ClearStaleStatus() {
	if s.Mode == ModeIdle && s.Status != "" {
		s.Status = ""
	}
}
