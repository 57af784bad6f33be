// ABOUTME: Tests for data migration between storage backends.
// ABOUTME: Covers full and per-user migration and the destination history check.
package storage

import (
	"context"
	"testing"

	"github.com/harperreed/fitday/internal/models"
)

func TestMigrateDataAllUsers(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)
	ctx := context.Background()

	_ = src.InsertCompletionRecord(ctx, record(t, "alice", models.NewDate(2025, 6, 1)))
	_ = src.InsertCompletionRecord(ctx, record(t, "alice", models.NewDate(2025, 6, 2)))
	_ = src.InsertCompletionRecord(ctx, record(t, "bob", models.NewDate(2025, 6, 2)))
	_ = src.UpsertWeeklyGoal(ctx, "alice", 3)

	summary, err := MigrateData(ctx, src, dst, nil)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Users != 2 || summary.Completions != 3 || summary.Goals != 1 {
		t.Errorf("summary = %+v", summary)
	}

	records, _ := dst.ListCompletionRecords(ctx, "alice", 0)
	if len(records) != 2 {
		t.Errorf("alice has %d records in destination, want 2", len(records))
	}
	goal, err := dst.LoadWeeklyGoal(ctx, "alice")
	if err != nil || goal != 3 {
		t.Errorf("goal = %d, %v; want 3", goal, err)
	}
}

func TestMigrateDataSelectedUsers(t *testing.T) {
	src := setupTestDB(t)
	dst := setupTestDB(t)
	ctx := context.Background()

	_ = src.InsertCompletionRecord(ctx, record(t, "alice", models.NewDate(2025, 6, 1)))
	_ = src.InsertCompletionRecord(ctx, record(t, "bob", models.NewDate(2025, 6, 2)))

	summary, err := MigrateData(ctx, src, dst, []string{"bob"})
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if summary.Users != 1 || summary.Completions != 1 || summary.Goals != 0 {
		t.Errorf("summary = %+v", summary)
	}

	users, _ := dst.ListUsers(ctx)
	if len(users) != 1 || users[0] != "bob" {
		t.Errorf("destination users = %v, want [bob]", users)
	}
}

func TestMigrateDataEmptySource(t *testing.T) {
	summary, err := MigrateData(context.Background(), setupTestDB(t), setupTestDB(t), nil)
	if err != nil {
		t.Fatalf("MigrateData failed: %v", err)
	}
	if *summary != (MigrateSummary{}) {
		t.Errorf("expected empty summary, got %+v", summary)
	}
}

func TestHasHistory(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	got, err := HasHistory(ctx, db, []string{"alice", "bob"})
	if err != nil || got {
		t.Errorf("empty store: got %v, %v", got, err)
	}

	_ = db.InsertCompletionRecord(ctx, record(t, "bob", models.NewDate(2025, 6, 2)))

	got, err = HasHistory(ctx, db, []string{"alice", "bob"})
	if err != nil || !got {
		t.Errorf("bob has history: got %v, %v", got, err)
	}

	got, err = HasHistory(ctx, db, []string{"alice"})
	if err != nil || got {
		t.Errorf("alice has none: got %v, %v", got, err)
	}
}
