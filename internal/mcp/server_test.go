// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers NewServer, tool handlers, and resource handlers.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/session"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
)

// setupTestDB creates a test database in a temp directory.
func setupTestDB(t *testing.T) *storage.DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "fitday-mcp-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := storage.OpenInDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

// setupServer builds a server for "alice" on June 10th 2025.
func setupServer(t *testing.T, repo storage.Repository) *Server {
	t.Helper()
	clock := &session.FixedClock{CurrentTime: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	tr := tracker.New(repo, "alice", tracker.Options{Location: time.UTC, Clock: clock, Logger: zerolog.Nop()})
	if err := tr.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	server, err := NewServer(tr)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server
}

type offlineRepo struct {
	storage.Repository
}

func (offlineRepo) UpsertWeeklyGoal(ctx context.Context, userID string, goal int) error {
	return errors.New("offline")
}

func (offlineRepo) InsertCompletionRecord(ctx context.Context, r *models.CompletionRecord) error {
	return errors.New("offline")
}

func TestNewServer(t *testing.T) {
	server := setupServer(t, setupTestDB(t))

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.tracker == nil {
		t.Error("Expected non-nil tracker")
	}
}

func TestHandleGetDailyWorkout(t *testing.T) {
	server := setupServer(t, setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		name     string
		input    dailyWorkoutInput
		wantDate models.Date
		wantErr  bool
	}{
		{"today", dailyWorkoutInput{}, models.NewDate(2025, 6, 10), false},
		{"explicit date", dailyWorkoutInput{Date: "2025-01-01"}, models.NewDate(2025, 1, 1), false},
		{"bad date", dailyWorkoutInput{Date: "June 1st"}, models.Date{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, output, err := server.handleGetDailyWorkout(ctx, &mcp.CallToolRequest{}, tt.input)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			out, ok := output.(dailyWorkoutOutput)
			if !ok {
				t.Fatalf("output type = %T", output)
			}
			if out.Workout.Date != tt.wantDate {
				t.Errorf("date = %s, want %s", out.Workout.Date, tt.wantDate)
			}
			if out.Workout.Len() == 0 || out.Minutes != out.Workout.Minutes() {
				t.Errorf("output = %+v", out)
			}
		})
	}
}

func TestHandleRecordCompletion(t *testing.T) {
	server := setupServer(t, setupTestDB(t))
	ctx := context.Background()

	_, out, err := server.handleRecordCompletion(ctx, &mcp.CallToolRequest{}, recordCompletionInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Date != "2025-06-10" || len(out.ID) != 8 {
		t.Errorf("output = %+v", out)
	}

	_, output, _ := server.handleGetDailyWorkout(ctx, &mcp.CallToolRequest{}, dailyWorkoutInput{})
	if daily := output.(dailyWorkoutOutput); !daily.Completed || !strings.Contains(daily.Message, "completed") {
		t.Errorf("today should be completed: %+v", daily)
	}
}

func TestHandleRecordCompletionOffline(t *testing.T) {
	server := setupServer(t, offlineRepo{setupTestDB(t)})

	_, out, err := server.handleRecordCompletion(context.Background(), &mcp.CallToolRequest{}, recordCompletionInput{})
	if err != nil {
		t.Fatalf("transient failure should not be a tool error: %v", err)
	}
	if !strings.Contains(out.Message, "not saved") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHandleGetProgress(t *testing.T) {
	server := setupServer(t, setupTestDB(t))
	ctx := context.Background()

	if _, _, err := server.handleRecordCompletion(ctx, &mcp.CallToolRequest{}, recordCompletionInput{}); err != nil {
		t.Fatalf("record: %v", err)
	}

	_, output, err := server.handleGetProgress(ctx, &mcp.CallToolRequest{}, struct{}{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	out := output.(progressOutput)
	if out.Month.Completed != 1 || out.Streak != 1 || !out.CompletedToday {
		t.Errorf("progress = %+v", out)
	}
	if !strings.Contains(out.Message, "1 of 30 days") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestHandleSetWeeklyGoal(t *testing.T) {
	server := setupServer(t, setupTestDB(t))
	ctx := context.Background()

	tests := []struct {
		goal    int
		wantErr bool
	}{
		{3, false},
		{7, false},
		{0, true},
		{8, true},
	}
	for _, tt := range tests {
		_, _, err := server.handleSetWeeklyGoal(ctx, &mcp.CallToolRequest{}, weeklyGoalInput{WeeklyGoal: tt.goal})
		if (err != nil) != tt.wantErr {
			t.Errorf("goal %d: err = %v, wantErr %v", tt.goal, err, tt.wantErr)
		}
	}
	if got := server.tracker.WeeklyGoal(); got != 7 {
		t.Errorf("goal = %d, want 7", got)
	}
}

func TestHandleSetWeeklyGoalOffline(t *testing.T) {
	server := setupServer(t, offlineRepo{setupTestDB(t)})

	_, out, err := server.handleSetWeeklyGoal(context.Background(), &mcp.CallToolRequest{}, weeklyGoalInput{WeeklyGoal: 5})
	if err != nil {
		t.Fatalf("transient failure should not be a tool error: %v", err)
	}
	if !strings.Contains(out.Message, "not saved") {
		t.Errorf("message = %q", out.Message)
	}
	if server.tracker.WeeklyGoal() != 5 {
		t.Error("goal should apply locally")
	}
}

func TestHandleListCompletions(t *testing.T) {
	server := setupServer(t, setupTestDB(t))
	ctx := context.Background()

	_, output, err := server.handleListCompletions(ctx, &mcp.CallToolRequest{}, listCompletionsInput{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out := output.(listCompletionsOutput); len(out.Completions) != 0 || out.Message == "" {
		t.Errorf("empty output = %+v", out)
	}

	if _, _, err := server.handleRecordCompletion(ctx, &mcp.CallToolRequest{}, recordCompletionInput{}); err != nil {
		t.Fatalf("record: %v", err)
	}

	_, output, err = server.handleListCompletions(ctx, &mcp.CallToolRequest{}, listCompletionsInput{Limit: 5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out := output.(listCompletionsOutput); len(out.Completions) != 1 {
		t.Errorf("got %d completions, want 1", len(out.Completions))
	}
}

func TestHandleTodayResource(t *testing.T) {
	server := setupServer(t, setupTestDB(t))

	result, err := server.handleTodayResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(result.Contents) == 0 {
		t.Fatal("Expected non-empty contents")
	}
	if result.Contents[0].URI != "fitday://today" {
		t.Errorf("URI = %s, want fitday://today", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}

	var body struct {
		Workout   models.Workout `json:"workout"`
		Completed bool           `json:"completed"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Workout.Date != models.NewDate(2025, 6, 10) || body.Completed {
		t.Errorf("body = %+v", body)
	}
}

func TestHandleProgressResource(t *testing.T) {
	server := setupServer(t, setupTestDB(t))

	result, err := server.handleProgressResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if result.Contents[0].URI != "fitday://progress" {
		t.Errorf("URI = %s, want fitday://progress", result.Contents[0].URI)
	}

	var sum tracker.Summary
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &sum); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sum.Week.Goal != models.DefaultWeeklyGoal || sum.Month.DaysInMonth != 30 {
		t.Errorf("summary = %+v", sum)
	}
}
