package core

import "maps"

// Action is a player intent, independent of the key that produced it.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionTurnLeft
	ActionTurnRight
	ActionBeam    // toggles the beam
	ActionLand    // lands on the claimed tile below, or takes off
	ActionConfirm // menus only
	ActionBack
	ActionRestart
	ActionQuit
	ActionPause
)

var actionNames = [...]string{
	ActionNone:      "None",
	ActionForward:   "Forward",
	ActionBackward:  "Backward",
	ActionTurnLeft:  "TurnLeft",
	ActionTurnRight: "TurnRight",
	ActionBeam:      "Beam",
	ActionLand:      "Land",
	ActionConfirm:   "Confirm",
	ActionBack:      "Back",
	ActionRestart:   "Restart",
	ActionQuit:      "Quit",
	ActionPause:     "Pause",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions pressed during one tick. Terminals
// report presses only, so a held key shows up as repeated frames.
type InputFrame struct {
	Actions map[Action]bool
}

func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has is safe on a zero InputFrame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// Clear empties the frame in place. Holders of the same map see it too;
// use Clone to keep a copy.
func (f *InputFrame) Clear() {
	clear(f.Actions)
}

func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	maps.Copy(clone.Actions, f.Actions)
	return clone
}
