// ABOUTME: Exercise model for the compiled-in catalog.
// ABOUTME: Exercises are validated value objects with work and rest durations in seconds.
package models

import (
	"errors"
	"fmt"
)

// ErrInvalidExercise is returned when an exercise definition violates its invariants.
var ErrInvalidExercise = errors.New("invalid exercise")

// Exercise is a single timed movement. A rep-based exercise still carries
// WorkSeconds, which drives the countdown.
type Exercise struct {
	ID           string   `json:"id" yaml:"id"`
	Name         string   `json:"name" yaml:"name"`
	WorkSeconds  int      `json:"work_seconds" yaml:"work_seconds"`
	Reps         *int     `json:"reps,omitempty" yaml:"reps,omitempty"`
	RestSeconds  int      `json:"rest_seconds" yaml:"rest_seconds"`
	Instructions []string `json:"instructions" yaml:"instructions"`
	MuscleGroup  string   `json:"muscle_group" yaml:"muscle_group"`
	Image        string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// NewExercise creates a validated Exercise. Pass reps <= 0 for a timed-only exercise.
func NewExercise(id, name string, workSeconds, reps, restSeconds int, muscleGroup, image string, instructions ...string) (Exercise, error) {
	e := Exercise{
		ID:           id,
		Name:         name,
		WorkSeconds:  workSeconds,
		RestSeconds:  restSeconds,
		Instructions: append([]string(nil), instructions...),
		MuscleGroup:  muscleGroup,
		Image:        image,
	}
	if reps > 0 {
		e.Reps = &reps
	}
	if err := e.Validate(); err != nil {
		return Exercise{}, err
	}
	return e, nil
}

// Validate checks the exercise invariants.
func (e Exercise) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidExercise)
	}
	if e.WorkSeconds <= 0 {
		return fmt.Errorf("%w: %s: work duration must be positive, got %d", ErrInvalidExercise, e.ID, e.WorkSeconds)
	}
	if e.RestSeconds < 0 {
		return fmt.Errorf("%w: %s: rest duration must not be negative, got %d", ErrInvalidExercise, e.ID, e.RestSeconds)
	}
	return nil
}

// IsRepBased reports whether the exercise has a repetition target.
func (e Exercise) IsRepBased() bool {
	return e.Reps != nil && *e.Reps > 0
}

// TotalSeconds is the work plus rest time of the exercise slot.
func (e Exercise) TotalSeconds() int {
	return e.WorkSeconds + e.RestSeconds
}

// Target describes what the user aims for: "15 reps" or "45s".
func (e Exercise) Target() string {
	if e.IsRepBased() {
		return fmt.Sprintf("%d reps", *e.Reps)
	}
	return fmt.Sprintf("%ds", e.WorkSeconds)
}

// Clone returns a deep copy so callers cannot mutate shared catalog data.
func (e Exercise) Clone() Exercise {
	c := e
	c.Instructions = append([]string(nil), e.Instructions...)
	if e.Reps != nil {
		r := *e.Reps
		c.Reps = &r
	}
	return c
}
