// ABOUTME: CompletionRecord model persisted when a user finishes a workout.
// ABOUTME: Records are append-only; one is expected per user per date.
package models

import (
	"time"

	"github.com/google/uuid"
)

// CompletionRecord is the persisted fact that a user finished a workout on a date.
type CompletionRecord struct {
	ID                 uuid.UUID `json:"id" yaml:"id"`
	UserID             string    `json:"user_id" yaml:"user_id"`
	Date               Date      `json:"date" yaml:"date"`
	Completed          bool      `json:"completed" yaml:"completed"`
	ExercisesCompleted int       `json:"exercises_completed" yaml:"exercises_completed"`
	TotalExercises     int       `json:"total_exercises" yaml:"total_exercises"`
	DurationSeconds    int       `json:"duration_seconds" yaml:"duration_seconds"`
	CreatedAt          time.Time `json:"created_at" yaml:"created_at"`
}

// NewCompletionRecord creates a completed record for w on date.
func NewCompletionRecord(userID string, date Date, w *Workout) *CompletionRecord {
	return &CompletionRecord{
		ID:                 uuid.New(),
		UserID:             userID,
		Date:               date,
		Completed:          true,
		ExercisesCompleted: w.Len(),
		TotalExercises:     w.Len(),
		DurationSeconds:    w.TotalSeconds,
		CreatedAt:          time.Now(),
	}
}

// WithCounts overrides the exercise counts and duration.
func (r *CompletionRecord) WithCounts(completed, total, seconds int) *CompletionRecord {
	r.ExercisesCompleted = completed
	r.TotalExercises = total
	r.DurationSeconds = seconds
	return r
}
