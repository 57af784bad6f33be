// ABOUTME: Session state value and its pure transition functions.
// ABOUTME: Every operation takes a State and returns the next State plus emitted events.
package session

import (
	"errors"

	"github.com/harperreed/fitday/internal/models"
)

var (
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	// The state is left unchanged.
	ErrInvalidState = errors.New("invalid session state")

	// ErrEmptyWorkout is returned when starting a workout without exercises.
	ErrEmptyWorkout = models.ErrEmptyWorkout
)

// Status is the lifecycle status of a session.
type Status int

const (
	StatusIdle Status = iota
	StatusActive
	StatusCompleted
	StatusAborted
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusActive:
		return "active"
	case StatusCompleted:
		return "completed"
	case StatusAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Phase is the interval within one exercise slot.
type Phase int

const (
	PhaseWorking Phase = iota
	PhaseResting
)

func (p Phase) String() string {
	if p == PhaseResting {
		return "resting"
	}
	return "working"
}

// State is the run-time state of one session. The zero value is Idle.
type State struct {
	Status        Status
	ExerciseIndex int
	Phase         Phase
	Remaining     int
	Paused        bool
}

// Running reports whether a workout is in progress (paused or not).
func (s State) Running() bool {
	return s.Status == StatusActive
}

// Terminal reports whether the session has completed or been aborted.
func (s State) Terminal() bool {
	return s.Status == StatusCompleted || s.Status == StatusAborted
}

// Ticking reports whether Tick would advance the countdown.
func (s State) Ticking() bool {
	return s.Status == StatusActive && !s.Paused
}

// Start begins w from its first exercise.
func Start(s State, w *models.Workout) (State, []Event, error) {
	if s.Status != StatusIdle {
		return s, nil, ErrInvalidState
	}
	if w == nil || w.Len() == 0 {
		return s, nil, ErrEmptyWorkout
	}

	next := State{
		Status:        StatusActive,
		ExerciseIndex: 0,
		Phase:         PhaseWorking,
		Remaining:     w.Exercises[0].WorkSeconds,
	}
	return next, []Event{phaseStarted(next, w)}, nil
}

// Tick advances the countdown by one second. It is a no-op unless the
// session is active and not paused, so late or duplicate timer firings are harmless.
func Tick(s State, w *models.Workout) (State, []Event) {
	if !s.Ticking() || w == nil {
		return s, nil
	}
	if s.Remaining > 0 {
		s.Remaining--
	}
	return finishPhases(s, w, nil)
}

// Pause suspends the countdown. Idempotent.
func Pause(s State) (State, []Event) {
	if !s.Ticking() {
		return s, nil
	}
	s.Paused = true
	return s, []Event{{Kind: EventPaused, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Remaining: s.Remaining}}
}

// Resume continues a paused countdown. Idempotent.
func Resume(s State) (State, []Event) {
	if s.Status != StatusActive || !s.Paused {
		return s, nil
	}
	s.Paused = false
	return s, []Event{{Kind: EventResumed, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Remaining: s.Remaining}}
}

// Skip ends the current exercise immediately and moves to the next one's
// working phase, bypassing any rest. On the last exercise the workout completes.
// The paused flag is carried over.
func Skip(s State, w *models.Workout) (State, []Event, error) {
	if s.Status != StatusActive || w == nil {
		return s, nil, ErrInvalidState
	}

	events := []Event{{Kind: EventSkipped, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Remaining: s.Remaining, Workout: w}}
	if s.ExerciseIndex >= w.Len()-1 {
		next, evs := complete(s, w, events)
		return next, evs, nil
	}

	next := enterWorking(s, w, s.ExerciseIndex+1)
	return next, append(events, phaseStarted(next, w)), nil
}

// Stop aborts the session. The caller is responsible for confirming with the user.
func Stop(s State) (State, []Event, error) {
	if s.Status != StatusActive {
		return s, nil, ErrInvalidState
	}
	ev := Event{Kind: EventWorkoutAborted, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Remaining: s.Remaining}
	return State{Status: StatusAborted}, []Event{ev}, nil
}

// Reset returns a finished session to Idle. Resetting an idle session is a no-op.
func Reset(s State) (State, error) {
	if s.Status == StatusActive {
		return s, ErrInvalidState
	}
	return State{}, nil
}

// PhaseDuration returns the full length of the current phase.
func PhaseDuration(s State, w *models.Workout) int {
	if s.Status != StatusActive || w == nil || s.ExerciseIndex >= w.Len() {
		return 0
	}
	e := w.Exercises[s.ExerciseIndex]
	if s.Phase == PhaseResting {
		return e.RestSeconds
	}
	return e.WorkSeconds
}

// Fraction returns how far through the workout the session is, in [0, 1].
// A working exercise counts as half done; a resting one as done.
func Fraction(s State, w *models.Workout) float64 {
	if w == nil || w.Len() == 0 {
		return 0
	}
	switch s.Status {
	case StatusCompleted:
		return 1
	case StatusActive:
		done := float64(s.ExerciseIndex) + 0.5
		if s.Phase == PhaseResting {
			done = float64(s.ExerciseIndex) + 1
		}
		return done / float64(w.Len())
	default:
		return 0
	}
}

// finishPhases handles every phase that has run out. Zero-length phases are
// entered and left within the same call.
func finishPhases(s State, w *models.Workout, events []Event) (State, []Event) {
	for s.Status == StatusActive && s.Remaining == 0 {
		events = append(events, Event{Kind: EventPhaseCompleted, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Workout: w})

		switch s.Phase {
		case PhaseWorking:
			s.Phase = PhaseResting
			s.Remaining = w.Exercises[s.ExerciseIndex].RestSeconds
			events = append(events, phaseStarted(s, w))
		case PhaseResting:
			if s.ExerciseIndex >= w.Len()-1 {
				return complete(s, w, events)
			}
			s = enterWorking(s, w, s.ExerciseIndex+1)
			events = append(events, phaseStarted(s, w))
		}
	}
	return s, events
}

func enterWorking(s State, w *models.Workout, index int) State {
	s.ExerciseIndex = index
	s.Phase = PhaseWorking
	s.Remaining = w.Exercises[index].WorkSeconds
	return s
}

func complete(s State, w *models.Workout, events []Event) (State, []Event) {
	next := State{
		Status:        StatusCompleted,
		ExerciseIndex: w.Len() - 1,
		Phase:         s.Phase,
	}
	return next, append(events, Event{
		Kind:               EventWorkoutCompleted,
		ExerciseIndex:      next.ExerciseIndex,
		Phase:              next.Phase,
		ExercisesCompleted: w.Len(),
		DurationSeconds:    w.TotalSeconds,
		Workout:            w,
	})
}

func phaseStarted(s State, w *models.Workout) Event {
	return Event{Kind: EventPhaseStarted, ExerciseIndex: s.ExerciseIndex, Phase: s.Phase, Remaining: s.Remaining, Workout: w}
}
