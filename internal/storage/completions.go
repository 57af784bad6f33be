// ABOUTME: Completion record operations for SQLite storage.
// ABOUTME: Records are append-only and queried per user by date.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitday/internal/models"
)

// InsertCompletionRecord stores a new completion record.
func (d *DB) InsertCompletionRecord(ctx context.Context, r *models.CompletionRecord) error {
	query := `
		INSERT INTO completion_records
			(id, user_id, date, completed, exercises_completed, total_exercises, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := d.db.ExecContext(ctx, query,
		r.ID.String(),
		r.UserID,
		r.Date.String(),
		r.Completed,
		r.ExercisesCompleted,
		r.TotalExercises,
		r.DurationSeconds,
		r.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert completion record: %w", err)
	}
	return nil
}

// LoadCompletedDates returns the distinct completed dates on or after since.
func (d *DB) LoadCompletedDates(ctx context.Context, userID string, since models.Date) ([]models.Date, error) {
	query := `
		SELECT DISTINCT date
		FROM completion_records
		WHERE user_id = ? AND completed = 1 AND date >= ?
		ORDER BY date ASC
	`
	rows, err := d.db.QueryContext(ctx, query, userID, since.String())
	if err != nil {
		return nil, fmt.Errorf("load completed dates: %w", err)
	}
	defer rows.Close()

	var dates []models.Date
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan date: %w", err)
		}
		date, err := models.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("parse stored date: %w", err)
		}
		dates = append(dates, date)
	}
	return dates, rows.Err()
}

// ListCompletionRecords returns the user's records, newest first.
func (d *DB) ListCompletionRecords(ctx context.Context, userID string, limit int) ([]*models.CompletionRecord, error) {
	query := `
		SELECT id, user_id, date, completed, exercises_completed, total_exercises, duration_seconds, created_at
		FROM completion_records
		WHERE user_id = ?
		ORDER BY date DESC, created_at DESC
	`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completion records: %w", err)
	}
	defer rows.Close()

	return scanCompletionRecords(rows)
}

// ListUsers returns every user with records or a stored goal.
func (d *DB) ListUsers(ctx context.Context) ([]string, error) {
	query := `
		SELECT user_id FROM completion_records
		UNION
		SELECT user_id FROM user_profiles
		ORDER BY user_id
	`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// scanCompletionRecords scans rows into CompletionRecords.
func scanCompletionRecords(rows *sql.Rows) ([]*models.CompletionRecord, error) {
	var records []*models.CompletionRecord

	for rows.Next() {
		var r models.CompletionRecord
		var idStr, dateStr, createdAt string

		err := rows.Scan(&idStr, &r.UserID, &dateStr, &r.Completed,
			&r.ExercisesCompleted, &r.TotalExercises, &r.DurationSeconds, &createdAt)
		if err != nil {
			return nil, fmt.Errorf("scan completion record: %w", err)
		}

		r.ID, _ = uuid.Parse(idStr)
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		if r.Date, err = models.ParseDate(dateStr); err != nil {
			return nil, fmt.Errorf("parse stored date: %w", err)
		}

		records = append(records, &r)
	}

	return records, rows.Err()
}
