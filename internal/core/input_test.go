package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		a    Action
		want string
	}{
		{ActionNone, "None"},
		{ActionBeam, "Beam"},
		{ActionPause, "Pause"},
		{Action(-1), "Unknown"},
		{ActionPause + 1, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.a.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", int(tt.a), got, tt.want)
		}
	}
}

func TestInputFrame(t *testing.T) {
	var zero InputFrame
	if zero.Has(ActionForward) {
		t.Error("zero frame reports Forward")
	}
	zero.Set(ActionForward)
	if !zero.Has(ActionForward) {
		t.Error("Set on zero frame was lost")
	}

	f := NewInputFrame()
	f.Set(ActionBeam)
	f.Set(ActionLand)
	kept := f.Clone()
	shared := f

	f.Clear()
	if f.Has(ActionBeam) || shared.Has(ActionBeam) {
		t.Error("Clear left actions in the shared map")
	}
	if !kept.Has(ActionBeam) || !kept.Has(ActionLand) {
		t.Errorf("clone = %v, want Beam and Land", kept.Actions)
	}
}
