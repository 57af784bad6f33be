// ABOUTME: Repository interface for workout history storage.
// ABOUTME: Defines the contract every backend (SQLite, Redis, Charm) implements.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/fitday/internal/models"
)

// ErrNotFound is returned when a requested value has never been stored.
var ErrNotFound = errors.New("not found")

// Repository defines the storage interface for completion history and goals.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// LoadCompletedDates returns the distinct dates on or after since with a
	// completed record for the user, in ascending order.
	LoadCompletedDates(ctx context.Context, userID string, since models.Date) ([]models.Date, error)

	// InsertCompletionRecord appends a record. Records are never updated.
	InsertCompletionRecord(ctx context.Context, r *models.CompletionRecord) error

	// ListCompletionRecords returns the user's records, newest date first.
	// A limit <= 0 returns everything.
	ListCompletionRecords(ctx context.Context, userID string, limit int) ([]*models.CompletionRecord, error)

	// LoadWeeklyGoal returns ErrNotFound when the user has no stored goal.
	LoadWeeklyGoal(ctx context.Context, userID string) (int, error)

	// UpsertWeeklyGoal replaces or creates the user's goal.
	UpsertWeeklyGoal(ctx context.Context, userID string, goal int) error

	// ListUsers returns every user with stored data.
	ListUsers(ctx context.Context) ([]string, error)

	// Lifecycle
	Close() error
}
