// ABOUTME: Tracker ties the signed-in user's history to today's workout.
// ABOUTME: Keeps a local completed-dates set that survives storage failures.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/harperreed/fitday/internal/metrics"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/planner"
	"github.com/harperreed/fitday/internal/progress"
	"github.com/harperreed/fitday/internal/session"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/rs/zerolog"
)

// ErrTransient marks a storage failure the user can be told about but that
// did not stop the local operation.
var ErrTransient = errors.New("storage unavailable")

// HistoryDays is how far back Load reads, so streaks and weeks that cross a
// month boundary are still visible.
const HistoryDays = 366

// Options configures a Tracker. Zero values select the real clock, the local
// zone, and a disabled logger.
type Options struct {
	Location *time.Location
	Clock    session.Clock
	Logger   zerolog.Logger
}

// Tracker holds one user's completed dates and weekly goal.
type Tracker struct {
	repo   storage.Repository
	userID string
	loc    *time.Location
	clock  session.Clock
	logger zerolog.Logger

	mu        sync.Mutex
	completed map[models.Date]bool
	goal      int
	workout   *models.Workout
}

// New creates a Tracker for userID. Call Load before reading history.
func New(repo storage.Repository, userID string, opts Options) *Tracker {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Clock == nil {
		opts.Clock = session.RealClock{}
	}
	return &Tracker{
		repo:      repo,
		userID:    userID,
		loc:       opts.Location,
		clock:     opts.Clock,
		logger:    opts.Logger.With().Str("component", "tracker").Str("user", userID).Logger(),
		completed: make(map[models.Date]bool),
		goal:      models.DefaultWeeklyGoal,
	}
}

// UserID returns the user this tracker serves.
func (t *Tracker) UserID() string {
	return t.userID
}

// Today returns the current date in the tracker's zone.
func (t *Tracker) Today() models.Date {
	return models.DateOf(t.clock.Now().In(t.loc))
}

// Load reads completed dates and the weekly goal. A missing goal means the
// default. On a storage failure the defaults stay in place and the returned
// error wraps ErrTransient.
func (t *Tracker) Load(ctx context.Context) error {
	today := t.Today()
	since := today.AddDays(-HistoryDays)
	if first := today.FirstOfMonth(); first.Before(since) {
		since = first
	}

	var errs []error

	dates, err := t.repo.LoadCompletedDates(ctx, t.userID, since)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("load_dates").Inc()
		errs = append(errs, fmt.Errorf("load completed dates: %w", err))
	}

	goal, goalErr := t.repo.LoadWeeklyGoal(ctx, t.userID)
	switch {
	case goalErr == nil:
		if models.ValidateWeeklyGoal(goal) != nil {
			t.logger.Warn().Int("goal", goal).Msg("stored weekly goal out of range, using default")
			goal = models.DefaultWeeklyGoal
		}
	case errors.Is(goalErr, storage.ErrNotFound):
		goal = models.DefaultWeeklyGoal
	default:
		metrics.StorageErrors.WithLabelValues("load_goal").Inc()
		errs = append(errs, fmt.Errorf("load weekly goal: %w", goalErr))
		goal = models.DefaultWeeklyGoal
	}

	t.mu.Lock()
	if err == nil {
		t.completed = make(map[models.Date]bool, len(dates))
		for _, d := range dates {
			t.completed[d] = true
		}
	}
	t.goal = goal
	t.mu.Unlock()

	t.logger.Debug().Int("dates", len(dates)).Int("goal", goal).Msg("history loaded")

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrTransient, errors.Join(errs...))
	}
	return nil
}

// TodayWorkout returns today's plan, recomputed when the date changes.
func (t *Tracker) TodayWorkout() *models.Workout {
	today := t.Today()

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.workout == nil || t.workout.Date != today {
		t.workout = planner.SelectWorkout(today)
	}
	return t.workout
}

// IsCompletedToday reports whether today is in the completed set.
func (t *Tracker) IsCompletedToday() bool {
	today := t.Today()
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[today]
}

// CompletedDates returns the known completed dates in ascending order.
func (t *Tracker) CompletedDates() []models.Date {
	t.mu.Lock()
	dates := make([]models.Date, 0, len(t.completed))
	for d := range t.completed {
		dates = append(dates, d)
	}
	t.mu.Unlock()

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

// WeeklyGoal returns the current goal.
func (t *Tracker) WeeklyGoal() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.goal
}

// RecordCompletion persists a completed session. Today is marked complete
// locally before the write, so a failed write still shows the workout as done;
// the returned error then wraps ErrTransient. The record is returned either way.
func (t *Tracker) RecordCompletion(ctx context.Context, w *models.Workout, ev session.Event) (*models.CompletionRecord, error) {
	if ev.Kind != session.EventWorkoutCompleted {
		return nil, fmt.Errorf("record completion: unexpected event %s", ev.Kind)
	}
	if w == nil {
		return nil, fmt.Errorf("record completion: %w", models.ErrEmptyWorkout)
	}

	today := t.Today()
	record := models.NewCompletionRecord(t.userID, today, w).
		WithCounts(ev.ExercisesCompleted, w.Len(), ev.DurationSeconds)

	t.mu.Lock()
	t.completed[today] = true
	t.mu.Unlock()

	metrics.WorkoutsCompleted.Inc()
	metrics.WorkoutSeconds.Add(float64(ev.DurationSeconds))

	if err := t.repo.InsertCompletionRecord(ctx, record); err != nil {
		metrics.StorageErrors.WithLabelValues("insert_completion").Inc()
		t.logger.Warn().Err(err).Str("date", today.String()).Msg("completion not saved")
		return record, fmt.Errorf("%w: insert completion record: %w", ErrTransient, err)
	}

	t.logger.Info().Str("date", today.String()).Str("workout", w.ID).Msg("completion recorded")
	return record, nil
}

// CompleteToday records today's workout as done outside an interactive
// session. Zero counts mean the whole workout was done at its planned length.
func (t *Tracker) CompleteToday(ctx context.Context, exercisesCompleted, durationSeconds int) (*models.CompletionRecord, error) {
	w := t.TodayWorkout()
	if exercisesCompleted <= 0 || exercisesCompleted > w.Len() {
		exercisesCompleted = w.Len()
	}
	if durationSeconds <= 0 {
		durationSeconds = w.TotalSeconds
	}
	return t.RecordCompletion(ctx, w, session.Event{
		Kind:               session.EventWorkoutCompleted,
		ExerciseIndex:      w.Len() - 1,
		ExercisesCompleted: exercisesCompleted,
		DurationSeconds:    durationSeconds,
		Workout:            w,
	})
}

// History returns the user's stored completion records, newest first.
func (t *Tracker) History(ctx context.Context, limit int) ([]*models.CompletionRecord, error) {
	records, err := t.repo.ListCompletionRecords(ctx, t.userID, limit)
	if err != nil {
		metrics.StorageErrors.WithLabelValues("list_completions").Inc()
		return nil, fmt.Errorf("%w: list completions: %w", ErrTransient, err)
	}
	return records, nil
}

// SetWeeklyGoal validates and stores the goal. An invalid goal changes nothing.
// A storage failure leaves the new goal in effect locally and wraps ErrTransient.
func (t *Tracker) SetWeeklyGoal(ctx context.Context, goal int) error {
	if err := models.ValidateWeeklyGoal(goal); err != nil {
		return err
	}

	t.mu.Lock()
	t.goal = goal
	t.mu.Unlock()

	if err := t.repo.UpsertWeeklyGoal(ctx, t.userID, goal); err != nil {
		metrics.StorageErrors.WithLabelValues("upsert_goal").Inc()
		return fmt.Errorf("%w: upsert weekly goal: %w", ErrTransient, err)
	}
	return nil
}

// MonthProgress summarises the current month.
func (t *Tracker) MonthProgress() progress.MonthProgress {
	return progress.Month(t.CompletedDates(), t.Today())
}

// WeekProgress compares this week to the weekly goal.
func (t *Tracker) WeekProgress() progress.WeekProgress {
	return progress.Week(t.CompletedDates(), t.Today(), t.WeeklyGoal())
}

// Streak returns the current run of consecutive completed days.
func (t *Tracker) Streak() int {
	return progress.Streak(t.CompletedDates(), t.Today())
}

// Summary is everything a progress view shows.
type Summary struct {
	Today          models.Date            `json:"today"`
	CompletedToday bool                   `json:"completed_today"`
	Month          progress.MonthProgress `json:"month"`
	Week           progress.WeekProgress  `json:"week"`
	Streak         int                    `json:"streak"`
}

// Summary collects the progress views in one value.
func (t *Tracker) Summary() Summary {
	return Summary{
		Today:          t.Today(),
		CompletedToday: t.IsCompletedToday(),
		Month:          t.MonthProgress(),
		Week:           t.WeekProgress(),
		Streak:         t.Streak(),
	}
}

// Attach subscribes to m so a completed session is recorded. Aborted sessions
// write nothing. onResult, when set, receives every recording outcome.
func (t *Tracker) Attach(ctx context.Context, m *session.Machine, onResult func(*models.CompletionRecord, error)) {
	m.OnEvent(func(ev session.Event) {
		switch ev.Kind {
		case session.EventWorkoutCompleted:
			record, err := t.RecordCompletion(ctx, ev.Workout, ev)
			if onResult != nil {
				onResult(record, err)
			}
		case session.EventWorkoutAborted:
			metrics.WorkoutsAborted.Inc()
			t.logger.Debug().Int("exercise", ev.ExerciseIndex).Msg("workout aborted")
		}
	})
}
