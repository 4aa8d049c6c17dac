package core

// Action represents a semantic game action, abstracted from physical key presses.
// Movement actions are level-triggered (held), the rest are edge-triggered.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - climb / move up
	ActionDown           // S, Down arrow - dive / move down
	ActionLeft           // A, Left arrow - move left (jingle)
	ActionRight          // D, Right arrow - move right (jingle)
	ActionDrop           // Space - drop a gift
	ActionConfirm        // Enter - start / retry / confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDrop:
		return "Drop"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// IsHeld reports whether the action is a level-triggered movement action.
// The platform keeps held actions alive across ticks; edge actions fire once.
func (a Action) IsHeld() bool {
	switch a {
	case ActionUp, ActionDown, ActionLeft, ActionRight:
		return true
	}
	return false
}

// InputFrame represents the input state for the player during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were active this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as active for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was active this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}
