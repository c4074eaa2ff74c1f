package core

// Action represents a semantic game action, abstracted from physical key presses
// and pointer events. Games work with these normalized intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionMoveLeft           // A, Left arrow - nudge the paddle left
	ActionMoveRight          // D, Right arrow - nudge the paddle right
	ActionPointerDrag        // mouse motion with the button held
	ActionPointerDown        // mouse button pressed
	ActionPointerUp          // mouse button released
	ActionStartGame          // Space - launch the ball
	ActionPause              // P - pause/unpause game
	ActionRestart            // R - restart after game over
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionPointerDrag:
		return "PointerDrag"
	case ActionPointerDown:
		return "PointerDown"
	case ActionPointerUp:
		return "PointerUp"
	case ActionStartGame:
		return "StartGame"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Command is one normalized input event. X carries the pointer column for
// pointer actions and is zero otherwise.
type Command struct {
	Action Action
	X      float64
}

// InputFrame collects the commands issued during one simulation tick.
// Order matters: a drag followed by a release must be applied in sequence.
type InputFrame struct {
	Commands []Command
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Push appends a command to the frame.
func (f *InputFrame) Push(c Command) {
	f.Commands = append(f.Commands, c)
}

// Set marks an action without a payload as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	f.Push(Command{Action: a})
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, c := range f.Commands {
		if c.Action == a {
			return true
		}
	}
	return false
}

// Empty reports whether no commands were issued.
func (f InputFrame) Empty() bool {
	return len(f.Commands) == 0
}

// Clear resets all commands for the next frame, reusing the backing array.
func (f *InputFrame) Clear() {
	f.Commands = f.Commands[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{Commands: make([]Command, len(f.Commands))}
	copy(clone.Commands, f.Commands)
	return clone
}
