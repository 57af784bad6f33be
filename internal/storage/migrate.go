// ABOUTME: Data migration between fitday storage backends.
// ABOUTME: Copies completion records and weekly goals from source to destination.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Users       int
	Completions int
	Goals       int
}

// MigrateData copies history from src to dst for the given users, or for
// every user src knows about when users is empty. The destination should be
// empty: records are appended, not merged.
func MigrateData(ctx context.Context, src, dst Repository, users []string) (*MigrateSummary, error) {
	if len(users) == 0 {
		var err error
		users, err = src.ListUsers(ctx)
		if err != nil {
			return nil, fmt.Errorf("list source users: %w", err)
		}
	}

	summary := &MigrateSummary{}
	for _, user := range users {
		records, err := src.ListCompletionRecords(ctx, user, 0)
		if err != nil {
			return nil, fmt.Errorf("list completions for %s: %w", user, err)
		}
		for _, r := range records {
			if err := dst.InsertCompletionRecord(ctx, r); err != nil {
				return nil, fmt.Errorf("insert completion %s: %w", r.ID, err)
			}
			summary.Completions++
		}

		goal, err := src.LoadWeeklyGoal(ctx, user)
		switch {
		case err == nil:
			if err := dst.UpsertWeeklyGoal(ctx, user, goal); err != nil {
				return nil, fmt.Errorf("upsert goal for %s: %w", user, err)
			}
			summary.Goals++
		case !errors.Is(err, ErrNotFound):
			return nil, fmt.Errorf("load goal for %s: %w", user, err)
		}

		summary.Users++
	}

	return summary, nil
}

// HasHistory reports whether repo already holds completion records for any of users.
func HasHistory(ctx context.Context, repo Repository, users []string) (bool, error) {
	for _, user := range users {
		records, err := repo.ListCompletionRecords(ctx, user, 1)
		if err != nil {
			return false, fmt.Errorf("list completions for %s: %w", user, err)
		}
		if len(records) > 0 {
			return true, nil
		}
	}
	return false, nil
}
