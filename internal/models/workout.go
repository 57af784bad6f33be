// ABOUTME: Workout model: an ordered, non-empty sequence of exercises for one day.
// ABOUTME: The total duration is computed once at construction.
package models

import (
	"errors"
	"fmt"
)

// Difficulty labels a workout.
type Difficulty string

// Difficulty levels.
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// ErrEmptyWorkout is returned when a workout has no exercises.
var ErrEmptyWorkout = errors.New("workout has no exercises")

// Workout is the plan for a session.
type Workout struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Date         Date       `json:"date" yaml:"date"`
	Exercises    []Exercise `json:"exercises" yaml:"exercises"`
	TotalSeconds int        `json:"total_seconds" yaml:"total_seconds"`
	Difficulty   Difficulty `json:"difficulty" yaml:"difficulty"`
}

// NewWorkout creates a validated Workout. The exercises are deep-copied.
func NewWorkout(id, name string, date Date, difficulty Difficulty, exercises []Exercise) (*Workout, error) {
	if len(exercises) == 0 {
		return nil, ErrEmptyWorkout
	}

	w := &Workout{
		ID:         id,
		Name:       name,
		Date:       date,
		Difficulty: difficulty,
		Exercises:  make([]Exercise, 0, len(exercises)),
	}
	for _, e := range exercises {
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("workout %s: %w", id, err)
		}
		w.Exercises = append(w.Exercises, e.Clone())
		w.TotalSeconds += e.TotalSeconds()
	}
	return w, nil
}

// Len returns the number of exercises.
func (w *Workout) Len() int {
	return len(w.Exercises)
}

// Minutes returns the total duration rounded up to whole minutes.
func (w *Workout) Minutes() int {
	return (w.TotalSeconds + 59) / 60
}
