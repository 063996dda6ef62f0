package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned for a phase change the sequence forbids.
var ErrInvalidTransition = errors.New("sim: invalid phase transition")

// Phase is the top-level game phase.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCreated
	PhaseLoading
	PhaseStarted
	PhasePaused
	PhaseResumed
	PhaseEnded
	PhaseDestroyed
)

var phaseNames = [...]string{
	PhaseNone:      "none",
	PhaseCreated:   "created",
	PhaseLoading:   "loading",
	PhaseStarted:   "started",
	PhasePaused:    "paused",
	PhaseResumed:   "resumed",
	PhaseEnded:     "ended",
	PhaseDestroyed: "destroyed",
}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Outcome explains why a game ended.
type Outcome uint8

const (
	OutcomeNone Outcome = iota
	OutcomeCompleted
	OutcomeFailed
	OutcomeAborted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFailed:
		return "failed"
	case OutcomeAborted:
		return "aborted"
	default:
		return "none"
	}
}

var transitions = map[Phase][]Phase{
	PhaseNone:      {PhaseCreated},
	PhaseCreated:   {PhaseLoading},
	PhaseLoading:   {PhaseStarted},
	PhaseStarted:   {PhasePaused, PhaseEnded},
	PhasePaused:    {PhaseResumed, PhaseEnded},
	PhaseResumed:   {PhasePaused, PhaseEnded},
	PhaseEnded:     {PhaseLoading},
	PhaseDestroyed: {PhaseCreated},
}

// CanTransition reports whether from -> to is allowed. Destroyed is
// reachable from every phase except itself.
func CanTransition(from, to Phase) bool {
	if to == PhaseDestroyed {
		return from != PhaseDestroyed && from != PhaseNone
	}
	for _, p := range transitions[from] {
		if p == to {
			return true
		}
	}
	return false
}

// Sequencer holds the current phase and broadcasts every change.
type Sequencer struct {
	events  *Events
	phase   Phase
	outcome Outcome
}

// NewSequencer creates a sequencer in PhaseNone.
func NewSequencer(events *Events) *Sequencer {
	return &Sequencer{events: events}
}

// Phase returns the current phase.
func (s *Sequencer) Phase() Phase { return s.phase }

// Outcome returns the outcome of the last ended game.
func (s *Sequencer) Outcome() Outcome { return s.outcome }

// Running reports whether gameplay components should tick.
func (s *Sequencer) Running() bool {
	return s.phase == PhaseStarted || s.phase == PhaseResumed
}

// Transition moves to phase to and publishes it.
func (s *Sequencer) Transition(to Phase) error {
	return s.transition(to, OutcomeNone)
}

// End moves to PhaseEnded with the given outcome.
func (s *Sequencer) End(o Outcome) error {
	return s.transition(PhaseEnded, o)
}

func (s *Sequencer) transition(to Phase, o Outcome) error {
	if !CanTransition(s.phase, to) {
		return fmt.Errorf("%s -> %s: %w", s.phase, to, ErrInvalidTransition)
	}
	s.phase = to
	switch to {
	case PhaseEnded:
		s.outcome = o
	case PhaseLoading:
		s.outcome = OutcomeNone
	}
	s.events.Phase.Publish(PhaseEvent{Phase: to, Outcome: s.outcome})
	return nil
}
