// ABOUTME: Weekly goal operations for SQLite storage.
// ABOUTME: One user_profiles row per user, replaced on every write.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// LoadWeeklyGoal returns the user's stored goal or ErrNotFound.
func (d *DB) LoadWeeklyGoal(ctx context.Context, userID string) (int, error) {
	var goal int
	err := d.db.QueryRowContext(ctx,
		`SELECT weekly_goal FROM user_profiles WHERE user_id = ?`, userID,
	).Scan(&goal)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("weekly goal for %s: %w", userID, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load weekly goal: %w", err)
	}
	return goal, nil
}

// UpsertWeeklyGoal replaces or creates the user's goal.
func (d *DB) UpsertWeeklyGoal(ctx context.Context, userID string, goal int) error {
	query := `
		INSERT INTO user_profiles (user_id, weekly_goal, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			weekly_goal = excluded.weekly_goal,
			updated_at = excluded.updated_at
	`
	_, err := d.db.ExecContext(ctx, query, userID, goal, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("upsert weekly goal: %w", err)
	}
	return nil
}
