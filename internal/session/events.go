// ABOUTME: Events emitted by session transitions.
// ABOUTME: Listeners receive them after the state change is committed.
package session

import "github.com/harperreed/fitday/internal/models"

// EventKind identifies what happened.
type EventKind int

const (
	EventPhaseStarted EventKind = iota
	EventPhaseCompleted
	EventPaused
	EventResumed
	EventSkipped
	EventWorkoutCompleted
	EventWorkoutAborted
)

func (k EventKind) String() string {
	switch k {
	case EventPhaseStarted:
		return "phase_started"
	case EventPhaseCompleted:
		return "phase_completed"
	case EventPaused:
		return "paused"
	case EventResumed:
		return "resumed"
	case EventSkipped:
		return "skipped"
	case EventWorkoutCompleted:
		return "workout_completed"
	case EventWorkoutAborted:
		return "workout_aborted"
	default:
		return "unknown"
	}
}

// Event describes one transition. Remaining is the countdown at the time of
// the event; for EventPhaseStarted it is the full phase length.
type Event struct {
	Kind          EventKind
	ExerciseIndex int
	Phase         Phase
	Remaining     int

	// Set on EventWorkoutCompleted.
	ExercisesCompleted int
	DurationSeconds    int

	Workout *models.Workout
}

// Listener receives session events.
type Listener func(Event)
