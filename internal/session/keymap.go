package session

// Key codes delivered by the display's key poll. The poll returns a
// negative value when no key arrived within the timeout.
const (
	KeyNone      = -1
	KeyBackspace = 8
	KeyEnter     = 13
	KeyEscape    = 27
)

// keymap binds the non-typing keyboard command surface. Shift+C clears all
// annotations, lowercase c clears only the active tool's points.
var keymap = map[int]Command{
	'q': CmdQuit,
	's': CmdSaveSnapshot,
	'r': CmdToggleRecord,
	'd': CmdEnterDistance,
	'a': CmdEnterAngle,
	't': CmdEnterAnnotate,
	'c': CmdClearCurrent,
	'C': CmdClearAllAnnotations,
	'f': CmdCycleFilter,
}

// CommandForKey maps a key code to its command, or CmdNone for keys outside
// the command surface.
func CommandForKey(key int) Command {
	if cmd, ok := keymap[key]; ok {
		return cmd
	}
	return CmdNone
}

// ControlsHelp describes the keyboard command surface for the startup log.
func ControlsHelp() []string {
	return []string{
		" 's': Save image | 'r': Record video | 'q': Quit",
		" 'd': Distance measure | 'a': Angle measure | 't': Annotate point",
		" 'c': Clear current measurement/annotation points",
		" 'C' (Shift+C): Clear ALL annotations",
		" 'f': Cycle visual filters/colormaps",
	}
}
