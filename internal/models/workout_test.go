// ABOUTME: Tests for Exercise, Workout and CompletionRecord models.
// ABOUTME: Validates constructors, invariants, and copy semantics.
package models

import (
	"errors"
	"testing"
)

func mustExercise(t *testing.T, id string, work, rest int) Exercise {
	t.Helper()
	e, err := NewExercise(id, id, work, 0, rest, "Core", "")
	if err != nil {
		t.Fatalf("NewExercise(%s) failed: %v", id, err)
	}
	return e
}

func TestNewExercise(t *testing.T) {
	e, err := NewExercise("pushup", "Push-up", 45, 15, 15, "Chest", "img", "a", "b")
	if err != nil {
		t.Fatalf("NewExercise failed: %v", err)
	}
	if !e.IsRepBased() {
		t.Error("expected rep-based exercise")
	}
	if e.Target() != "15 reps" {
		t.Errorf("Target = %q, want %q", e.Target(), "15 reps")
	}
	if e.TotalSeconds() != 60 {
		t.Errorf("TotalSeconds = %d, want 60", e.TotalSeconds())
	}
}

func TestNewExerciseTimed(t *testing.T) {
	e, err := NewExercise("plank", "Plank", 60, 0, 15, "Core", "")
	if err != nil {
		t.Fatalf("NewExercise failed: %v", err)
	}
	if e.IsRepBased() {
		t.Error("expected timed exercise")
	}
	if e.Target() != "60s" {
		t.Errorf("Target = %q, want %q", e.Target(), "60s")
	}
}

func TestNewExerciseInvalid(t *testing.T) {
	tests := []struct {
		name string
		id   string
		work int
		rest int
	}{
		{"empty id", "", 45, 15},
		{"zero work", "x", 0, 15},
		{"negative work", "x", -1, 15},
		{"negative rest", "x", 45, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExercise(tt.id, "X", tt.work, 0, tt.rest, "", "")
			if !errors.Is(err, ErrInvalidExercise) {
				t.Errorf("expected ErrInvalidExercise, got %v", err)
			}
		})
	}
}

func TestNewExerciseZeroRest(t *testing.T) {
	if _, err := NewExercise("x", "X", 30, 0, 0, "", ""); err != nil {
		t.Errorf("zero rest should be valid: %v", err)
	}
}

func TestNewWorkoutTotals(t *testing.T) {
	exs := []Exercise{mustExercise(t, "a", 45, 15), mustExercise(t, "b", 30, 0)}
	w, err := NewWorkout("workout-1", "Test", NewDate(2025, 1, 1), DifficultyIntermediate, exs)
	if err != nil {
		t.Fatalf("NewWorkout failed: %v", err)
	}
	if w.TotalSeconds != 90 {
		t.Errorf("TotalSeconds = %d, want 90", w.TotalSeconds)
	}
	if w.Minutes() != 2 {
		t.Errorf("Minutes = %d, want 2", w.Minutes())
	}
	if w.Len() != 2 {
		t.Errorf("Len = %d, want 2", w.Len())
	}
}

func TestNewWorkoutEmpty(t *testing.T) {
	_, err := NewWorkout("w", "Empty", NewDate(2025, 1, 1), DifficultyBeginner, nil)
	if !errors.Is(err, ErrEmptyWorkout) {
		t.Errorf("expected ErrEmptyWorkout, got %v", err)
	}
}

func TestNewWorkoutCopiesExercises(t *testing.T) {
	e, _ := NewExercise("a", "A", 45, 10, 15, "", "", "step one")
	w, err := NewWorkout("w", "W", NewDate(2025, 1, 1), DifficultyBeginner, []Exercise{e})
	if err != nil {
		t.Fatalf("NewWorkout failed: %v", err)
	}

	w.Exercises[0].Instructions[0] = "changed"
	*w.Exercises[0].Reps = 99

	if e.Instructions[0] != "step one" {
		t.Error("workout shares instruction storage with source exercise")
	}
	if *e.Reps != 10 {
		t.Error("workout shares reps storage with source exercise")
	}
}

func TestNewCompletionRecord(t *testing.T) {
	exs := []Exercise{mustExercise(t, "a", 45, 15), mustExercise(t, "b", 45, 15)}
	w, _ := NewWorkout("w", "W", NewDate(2025, 3, 9), DifficultyIntermediate, exs)

	r := NewCompletionRecord("user-1", w.Date, w)
	if r.ID.String() == "" {
		t.Error("expected UUID to be set")
	}
	if !r.Completed {
		t.Error("expected Completed")
	}
	if r.ExercisesCompleted != 2 || r.TotalExercises != 2 {
		t.Errorf("counts = %d/%d, want 2/2", r.ExercisesCompleted, r.TotalExercises)
	}
	if r.DurationSeconds != 120 {
		t.Errorf("DurationSeconds = %d, want 120", r.DurationSeconds)
	}
	if r.Date.String() != "2025-03-09" {
		t.Errorf("Date = %s, want 2025-03-09", r.Date)
	}
}

func TestValidateWeeklyGoal(t *testing.T) {
	for goal := MinWeeklyGoal; goal <= MaxWeeklyGoal; goal++ {
		if err := ValidateWeeklyGoal(goal); err != nil {
			t.Errorf("ValidateWeeklyGoal(%d) unexpected error: %v", goal, err)
		}
	}
	for _, goal := range []int{0, -1, 8} {
		if err := ValidateWeeklyGoal(goal); err == nil {
			t.Errorf("ValidateWeeklyGoal(%d) expected error", goal)
		}
	}
	if DefaultPreferences().WeeklyGoal != 4 {
		t.Error("default weekly goal should be 4")
	}
}
