package sim

import (
	"errors"
	"testing"
)

func TestSequencerFullCycle(t *testing.T) {
	events := &Events{}
	var seen []Phase
	events.Phase.Subscribe(func(ev PhaseEvent) { seen = append(seen, ev.Phase) })
	s := NewSequencer(events)

	steps := []Phase{
		PhaseCreated, PhaseLoading, PhaseStarted, PhasePaused, PhaseResumed,
		PhasePaused, PhaseResumed, PhaseEnded, PhaseLoading, PhaseStarted, PhaseDestroyed,
	}
	for _, p := range steps {
		if err := s.Transition(p); err != nil {
			t.Fatalf("Transition(%v): %v", p, err)
		}
	}
	if len(seen) != len(steps) {
		t.Errorf("published %d phases, want %d", len(seen), len(steps))
	}
}

func TestSequencerRejectsInvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		path []Phase
		bad  Phase
	}{
		{"start before load", []Phase{PhaseCreated}, PhaseStarted},
		{"resume without pause", []Phase{PhaseCreated, PhaseLoading, PhaseStarted}, PhaseResumed},
		{"pause while loading", []Phase{PhaseCreated, PhaseLoading}, PhasePaused},
		{"end twice", []Phase{PhaseCreated, PhaseLoading, PhaseStarted, PhaseEnded}, PhaseEnded},
		{"destroy twice", []Phase{PhaseCreated, PhaseDestroyed}, PhaseDestroyed},
		{"load before create", nil, PhaseLoading},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSequencer(&Events{})
			for _, p := range tt.path {
				if err := s.Transition(p); err != nil {
					t.Fatalf("setup Transition(%v): %v", p, err)
				}
			}
			before := s.Phase()
			err := s.Transition(tt.bad)
			if !errors.Is(err, ErrInvalidTransition) {
				t.Fatalf("Transition(%v) error = %v, want ErrInvalidTransition", tt.bad, err)
			}
			if s.Phase() != before {
				t.Errorf("phase changed to %v on a rejected transition", s.Phase())
			}
		})
	}
}

func TestSequencerOutcome(t *testing.T) {
	events := &Events{}
	var last PhaseEvent
	events.Phase.Subscribe(func(ev PhaseEvent) { last = ev })
	s := NewSequencer(events)

	for _, p := range []Phase{PhaseCreated, PhaseLoading, PhaseStarted} {
		if err := s.Transition(p); err != nil {
			t.Fatal(err)
		}
	}
	if !s.Running() {
		t.Error("Running() = false after start")
	}

	if err := s.End(OutcomeFailed); err != nil {
		t.Fatal(err)
	}
	if last.Phase != PhaseEnded || last.Outcome != OutcomeFailed || s.Outcome() != OutcomeFailed {
		t.Errorf("end event = %+v, outcome = %v", last, s.Outcome())
	}
	if s.Running() {
		t.Error("Running() = true after end")
	}

	if err := s.Transition(PhaseLoading); err != nil {
		t.Fatal(err)
	}
	if s.Outcome() != OutcomeNone {
		t.Errorf("Outcome() = %v after reload, want none", s.Outcome())
	}
}

func TestPhaseNames(t *testing.T) {
	if PhaseResumed.String() != "resumed" || Phase(200).String() != "unknown" {
		t.Error("unexpected phase names")
	}
	if OutcomeCompleted.String() != "completed" || OutcomeNone.String() != "none" {
		t.Error("unexpected outcome names")
	}
}
