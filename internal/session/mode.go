// Package session holds the interaction state for one capture session: the
// mode state machine, measurement buffers, the annotation collection and
// draft, and the pending pointer-transition hand-off. It has no camera or
// display dependency so the whole interaction model is testable offline.
package session

// Mode is the interaction mode of the session.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDistance
	ModeAngle
	ModeAnnotationPlacing
	ModeAnnotationTyping
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeDistance:
		return "distance measure"
	case ModeAngle:
		return "angle measure"
	case ModeAnnotationPlacing:
		return "annotate: place point"
	case ModeAnnotationTyping:
		return "annotate: type text"
	default:
		return "unknown"
	}
}

// Command is a keyboard command available outside of text entry.
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdSaveSnapshot
	CmdToggleRecord
	CmdEnterDistance
	CmdEnterAngle
	CmdEnterAnnotate
	CmdClearCurrent
	CmdClearAllAnnotations
	CmdCycleFilter
)

// Transition is the mode transition table: the mode reached by issuing cmd
// while in mode m. It is a pure function and the single source of truth for
// mode changes; commands with no defined transition leave the mode as-is.
// The AnnotationPlacing to AnnotationTyping edge is not here because it is
// driven by a pointer click, not a command (see Session.HandleClick).
func Transition(m Mode, cmd Command) Mode {
	switch cmd {
	case CmdEnterDistance:
		return ModeDistance
	case CmdEnterAngle:
		return ModeAngle
	case CmdEnterAnnotate:
		return ModeAnnotationPlacing
	case CmdClearCurrent:
		switch m {
		case ModeDistance, ModeAngle:
			return m
		case ModeAnnotationPlacing, ModeAnnotationTyping:
			return ModeIdle
		}
	}
	return m
}
