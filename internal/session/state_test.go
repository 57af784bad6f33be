// ABOUTME: Tests for the pure session transition functions.
// ABOUTME: Covers tick timelines, pause, skip, stop, reset, and zero-length rests.
package session

import (
	"errors"
	"testing"

	"github.com/harperreed/fitday/internal/models"
)

// newWorkout builds a workout from (work, rest) pairs.
func newWorkout(t *testing.T, durations ...[2]int) *models.Workout {
	t.Helper()
	var exs []models.Exercise
	for i, d := range durations {
		id := string(rune('a' + i))
		e, err := models.NewExercise(id, id, d[0], 0, d[1], "", "")
		if err != nil {
			t.Fatalf("NewExercise failed: %v", err)
		}
		exs = append(exs, e)
	}
	w, err := models.NewWorkout("w", "Test", models.NewDate(2025, 1, 1), models.DifficultyIntermediate, exs)
	if err != nil {
		t.Fatalf("NewWorkout failed: %v", err)
	}
	return w
}

func mustStart(t *testing.T, w *models.Workout) State {
	t.Helper()
	s, _, err := Start(State{}, w)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return s
}

func tickN(s State, w *models.Workout, n int) (State, []Event) {
	var all []Event
	for i := 0; i < n; i++ {
		var evs []Event
		s, evs = Tick(s, w)
		all = append(all, evs...)
	}
	return s, all
}

func hasEvent(events []Event, kind EventKind) bool {
	for _, ev := range events {
		if ev.Kind == kind {
			return true
		}
	}
	return false
}

func TestStartInitialState(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15}, [2]int{30, 10})
	s, events, err := Start(State{}, w)
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if s.Status != StatusActive || s.ExerciseIndex != 0 || s.Phase != PhaseWorking || s.Remaining != 45 || s.Paused {
		t.Errorf("unexpected initial state: %+v", s)
	}
	if !s.Running() || s.Terminal() {
		t.Error("expected running, non-terminal state")
	}
	if len(events) != 1 || events[0].Kind != EventPhaseStarted {
		t.Errorf("expected one phase_started event, got %v", events)
	}
}

func TestStartErrors(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15})
	active := mustStart(t, w)

	if _, _, err := Start(active, w); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Start while active: expected ErrInvalidState, got %v", err)
	}
	if _, _, err := Start(State{Status: StatusCompleted}, w); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Start while completed: expected ErrInvalidState, got %v", err)
	}
	if _, _, err := Start(State{}, nil); !errors.Is(err, ErrEmptyWorkout) {
		t.Errorf("Start nil workout: expected ErrEmptyWorkout, got %v", err)
	}
	if _, _, err := Start(State{}, &models.Workout{}); !errors.Is(err, ErrEmptyWorkout) {
		t.Errorf("Start empty workout: expected ErrEmptyWorkout, got %v", err)
	}
}

func TestTwoExerciseTimeline(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15}, [2]int{45, 15})
	s := mustStart(t, w)

	s, _ = tickN(s, w, 45)
	if s.Phase != PhaseResting || s.Remaining != 15 || s.ExerciseIndex != 0 {
		t.Fatalf("after 45 ticks: %+v", s)
	}

	s, _ = tickN(s, w, 15)
	if s.ExerciseIndex != 1 || s.Phase != PhaseWorking || s.Remaining != 45 {
		t.Fatalf("after 60 ticks: %+v", s)
	}

	s, _ = tickN(s, w, 45)
	if s.Phase != PhaseResting || s.Remaining != 15 {
		t.Fatalf("after 105 ticks: %+v", s)
	}

	s, events := tickN(s, w, 15)
	if s.Status != StatusCompleted {
		t.Fatalf("after 120 ticks: %+v", s)
	}

	last := events[len(events)-1]
	if last.Kind != EventWorkoutCompleted {
		t.Fatalf("last event = %s, want workout_completed", last.Kind)
	}
	if last.ExercisesCompleted != 2 || last.DurationSeconds != 120 {
		t.Errorf("completion = %d exercises / %ds, want 2 / 120s", last.ExercisesCompleted, last.DurationSeconds)
	}
}

func TestTickCountCompletesWorkout(t *testing.T) {
	tests := []struct {
		name      string
		durations [][2]int
	}{
		{"uniform", [][2]int{{45, 15}, {45, 15}, {45, 15}}},
		{"mixed", [][2]int{{3, 2}, {1, 0}, {4, 7}, {2, 1}}},
		{"all zero rest", [][2]int{{2, 0}, {3, 0}}},
		{"single", [][2]int{{5, 5}}},
		{"zero rest last", [][2]int{{2, 1}, {2, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorkout(t, tt.durations...)
			s := mustStart(t, w)

			prevIndex := 0
			for i := 0; i < w.TotalSeconds; i++ {
				if s.Status != StatusActive {
					t.Fatalf("session ended early after %d ticks: %+v", i, s)
				}
				s, _ = Tick(s, w)
				if s.ExerciseIndex < 0 || s.ExerciseIndex >= w.Len() {
					t.Fatalf("index %d out of range", s.ExerciseIndex)
				}
				if s.ExerciseIndex < prevIndex {
					t.Fatalf("index went backwards: %d -> %d", prevIndex, s.ExerciseIndex)
				}
				if s.ExerciseIndex > prevIndex+1 {
					t.Fatalf("index skipped: %d -> %d", prevIndex, s.ExerciseIndex)
				}
				if s.Status == StatusActive && s.Remaining > PhaseDuration(s, w) {
					t.Fatalf("remaining %d exceeds phase duration %d", s.Remaining, PhaseDuration(s, w))
				}
				prevIndex = s.ExerciseIndex
			}

			if s.Status != StatusCompleted {
				t.Errorf("after %d ticks status = %s, want completed", w.TotalSeconds, s.Status)
			}
		})
	}
}

func TestZeroRestCollapsesInSameTick(t *testing.T) {
	w := newWorkout(t, [2]int{2, 0}, [2]int{3, 4})
	s := mustStart(t, w)

	s, events := tickN(s, w, 2)
	if s.ExerciseIndex != 1 || s.Phase != PhaseWorking || s.Remaining != 3 {
		t.Fatalf("zero rest not collapsed: %+v", s)
	}
	if !hasEvent(events, EventPhaseCompleted) {
		t.Error("expected phase_completed events")
	}
}

func TestPauseStopsCountdown(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15})
	s := mustStart(t, w)
	s, _ = tickN(s, w, 5)

	s, events := Pause(s)
	if !s.Paused || len(events) != 1 || events[0].Kind != EventPaused {
		t.Fatalf("Pause: %+v %v", s, events)
	}

	before := s.Remaining
	s, events = tickN(s, w, 100)
	if s.Remaining != before {
		t.Errorf("remaining changed while paused: %d -> %d", before, s.Remaining)
	}
	if len(events) != 0 {
		t.Errorf("ticks while paused emitted %v", events)
	}

	s, events = Resume(s)
	if s.Paused || len(events) != 1 || events[0].Kind != EventResumed {
		t.Fatalf("Resume: %+v %v", s, events)
	}
	s, _ = Tick(s, w)
	if s.Remaining != before-1 {
		t.Errorf("remaining after resume = %d, want %d", s.Remaining, before-1)
	}
}

func TestPauseResumeIdempotent(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15})
	s := mustStart(t, w)

	s, _ = Pause(s)
	again, events := Pause(s)
	if again != s || events != nil {
		t.Error("second Pause changed state")
	}

	s, _ = Resume(s)
	again, events = Resume(s)
	if again != s || events != nil {
		t.Error("second Resume changed state")
	}

	idle, events := Pause(State{})
	if idle != (State{}) || events != nil {
		t.Error("Pause on idle changed state")
	}
}

func TestSkipBypassesRest(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15}, [2]int{30, 10}, [2]int{20, 5})
	s := mustStart(t, w)

	s, events, err := Skip(s, w)
	if err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if s.ExerciseIndex != 1 || s.Phase != PhaseWorking || s.Remaining != 30 {
		t.Errorf("after skip: %+v", s)
	}
	if !hasEvent(events, EventSkipped) {
		t.Error("expected skipped event")
	}

	// Skipping from a rest phase also lands on the next exercise's work phase.
	s, _ = tickN(s, w, 30)
	if s.Phase != PhaseResting {
		t.Fatalf("expected resting, got %+v", s)
	}
	s, _, _ = Skip(s, w)
	if s.ExerciseIndex != 2 || s.Phase != PhaseWorking || s.Remaining != 20 {
		t.Errorf("skip from rest: %+v", s)
	}
}

func TestSkipLastExerciseCompletes(t *testing.T) {
	for _, phase := range []Phase{PhaseWorking, PhaseResting} {
		t.Run(phase.String(), func(t *testing.T) {
			w := newWorkout(t, [2]int{4, 2})
			s := mustStart(t, w)
			if phase == PhaseResting {
				s, _ = tickN(s, w, 4)
			}

			s, events, err := Skip(s, w)
			if err != nil {
				t.Fatalf("Skip failed: %v", err)
			}
			if s.Status != StatusCompleted {
				t.Fatalf("status = %s, want completed", s.Status)
			}
			if !hasEvent(events, EventWorkoutCompleted) {
				t.Error("expected workout_completed event")
			}
		})
	}
}

func TestSkipKeepsPause(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15}, [2]int{30, 10})
	s := mustStart(t, w)
	s, _ = Pause(s)

	s, _, err := Skip(s, w)
	if err != nil {
		t.Fatalf("Skip failed: %v", err)
	}
	if !s.Paused || s.ExerciseIndex != 1 {
		t.Errorf("after paused skip: %+v", s)
	}
}

func TestSkipRequiresActive(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15})
	for _, s := range []State{{}, {Status: StatusCompleted}, {Status: StatusAborted}} {
		if _, _, err := Skip(s, w); !errors.Is(err, ErrInvalidState) {
			t.Errorf("Skip in %s: expected ErrInvalidState, got %v", s.Status, err)
		}
	}
}

func TestStopAborts(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15}, [2]int{45, 15})
	s := mustStart(t, w)
	s, _ = tickN(s, w, 50)
	s, _ = Pause(s)

	s, events, err := Stop(s)
	if err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	if s.Status != StatusAborted || !s.Terminal() {
		t.Errorf("status = %s, want aborted", s.Status)
	}
	if s.Remaining != 0 || s.ExerciseIndex != 0 || s.Paused {
		t.Errorf("phase state not discarded: %+v", s)
	}
	if hasEvent(events, EventWorkoutCompleted) {
		t.Error("abort must not emit workout_completed")
	}
	if !hasEvent(events, EventWorkoutAborted) {
		t.Error("expected workout_aborted event")
	}

	if _, _, err := Stop(s); !errors.Is(err, ErrInvalidState) {
		t.Errorf("second Stop: expected ErrInvalidState, got %v", err)
	}
}

func TestTickIgnoredWhenNotRunning(t *testing.T) {
	w := newWorkout(t, [2]int{45, 15})
	for _, s := range []State{{}, {Status: StatusCompleted}, {Status: StatusAborted}} {
		next, events := Tick(s, w)
		if next != s || events != nil {
			t.Errorf("Tick in %s changed state", s.Status)
		}
	}
}

func TestReset(t *testing.T) {
	w := newWorkout(t, [2]int{1, 0})
	s := mustStart(t, w)

	if _, err := Reset(s); !errors.Is(err, ErrInvalidState) {
		t.Errorf("Reset while active: expected ErrInvalidState, got %v", err)
	}

	s, _ = Tick(s, w)
	if s.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", s.Status)
	}

	s, err := Reset(s)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if s != (State{}) {
		t.Errorf("Reset left fields set: %+v", s)
	}

	if _, _, err := Start(s, w); err != nil {
		t.Errorf("Start after Reset failed: %v", err)
	}
}

func TestFraction(t *testing.T) {
	w := newWorkout(t, [2]int{2, 2}, [2]int{2, 2})
	s := mustStart(t, w)

	if got := Fraction(s, w); got != 0.25 {
		t.Errorf("working first = %v, want 0.25", got)
	}
	s, _ = tickN(s, w, 2)
	if got := Fraction(s, w); got != 0.5 {
		t.Errorf("resting first = %v, want 0.5", got)
	}
	s, _ = tickN(s, w, 6)
	if got := Fraction(s, w); got != 1 {
		t.Errorf("completed = %v, want 1", got)
	}
	if got := Fraction(State{}, w); got != 0 {
		t.Errorf("idle = %v, want 0", got)
	}
}
