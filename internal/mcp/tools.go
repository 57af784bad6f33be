// ABOUTME: MCP tool implementations for fitday.
// ABOUTME: Daily workout lookup, progress, weekly goal, and completion history.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/planner"
	"github.com/harperreed/fitday/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_daily_workout",
		Description: "Get the workout planned for today or for a given date",
	}, s.handleGetDailyWorkout)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_progress",
		Description: "Get monthly progress, weekly goal progress, and the current streak",
	}, s.handleGetProgress)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "set_weekly_goal",
		Description: "Set how many days per week the user aims to work out (1-7)",
	}, s.handleSetWeeklyGoal)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "record_completion",
		Description: "Mark today's workout as completed",
	}, s.handleRecordCompletion)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_completions",
		Description: "List recent completed workouts, newest first",
	}, s.handleListCompletions)
}

// Tool input/output types. Outputs carrying dates or record IDs are returned
// as any so no output schema is inferred from their Go types.

type dailyWorkoutInput struct {
	Date string `json:"date,omitempty" jsonschema:"Date as YYYY-MM-DD, defaults to today"`
}

type dailyWorkoutOutput struct {
	Workout   *models.Workout `json:"workout"`
	Minutes   int             `json:"minutes"`
	Completed bool            `json:"completed"`
	Message   string          `json:"message"`
}

type progressOutput struct {
	tracker.Summary
	Message string `json:"message"`
}

type weeklyGoalInput struct {
	WeeklyGoal int `json:"weekly_goal" jsonschema:"Workout days per week, 1 to 7"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type recordCompletionInput struct {
	ExercisesCompleted int `json:"exercises_completed,omitempty" jsonschema:"Exercises finished, defaults to all"`
	DurationSeconds    int `json:"duration_seconds,omitempty" jsonschema:"Seconds spent, defaults to the planned length"`
}

type completionOutput struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

type listCompletionsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max results (default 20)"`
}

type listCompletionsOutput struct {
	Completions []*models.CompletionRecord `json:"completions"`
	Message     string                     `json:"message,omitempty"`
}

// Tool handlers

func (s *Server) handleGetDailyWorkout(ctx context.Context, req *mcp.CallToolRequest, input dailyWorkoutInput) (*mcp.CallToolResult, any, error) {
	today := s.tracker.Today()

	date := today
	if input.Date != "" {
		d, err := models.ParseDate(input.Date)
		if err != nil {
			return nil, nil, err
		}
		date = d
	}

	var w *models.Workout
	completed := false
	if date == today {
		w = s.tracker.TodayWorkout()
		completed = s.tracker.IsCompletedToday()
	} else {
		w = planner.SelectWorkout(date)
	}

	msg := fmt.Sprintf("%s: %s, %d exercises, %d min", date, w.Name, w.Len(), w.Minutes())
	if completed {
		msg += " (completed)"
	}

	return nil, dailyWorkoutOutput{
		Workout:   w,
		Minutes:   w.Minutes(),
		Completed: completed,
		Message:   msg,
	}, nil
}

func (s *Server) handleGetProgress(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	sum := s.tracker.Summary()
	return nil, progressOutput{
		Summary: sum,
		Message: fmt.Sprintf("%d of %d days this month (%d%%), %d/%d this week, %d day streak",
			sum.Month.Completed, sum.Month.DaysInMonth, sum.Month.Percentage,
			sum.Week.Completed, sum.Week.Goal, sum.Streak),
	}, nil
}

func (s *Server) handleSetWeeklyGoal(ctx context.Context, req *mcp.CallToolRequest, input weeklyGoalInput) (*mcp.CallToolResult, simpleOutput, error) {
	err := s.tracker.SetWeeklyGoal(ctx, input.WeeklyGoal)
	switch {
	case err == nil:
		return nil, simpleOutput{Message: fmt.Sprintf("Weekly goal set to %d days", input.WeeklyGoal)}, nil
	case errors.Is(err, tracker.ErrTransient):
		return nil, simpleOutput{Message: fmt.Sprintf("Weekly goal set to %d days locally, but not saved: %v", input.WeeklyGoal, err)}, nil
	default:
		return nil, simpleOutput{}, fmt.Errorf("failed to set weekly goal: %w", err)
	}
}

func (s *Server) handleRecordCompletion(ctx context.Context, req *mcp.CallToolRequest, input recordCompletionInput) (*mcp.CallToolResult, completionOutput, error) {
	record, err := s.tracker.CompleteToday(ctx, input.ExercisesCompleted, input.DurationSeconds)
	if err != nil && !errors.Is(err, tracker.ErrTransient) {
		return nil, completionOutput{}, fmt.Errorf("failed to record completion: %w", err)
	}

	out := completionOutput{
		ID:      record.ID.String()[:8],
		Date:    record.Date.String(),
		Message: fmt.Sprintf("Recorded %s: %d/%d exercises", record.Date, record.ExercisesCompleted, record.TotalExercises),
	}
	if err != nil {
		out.Message += fmt.Sprintf(" (not saved: %v)", err)
	}
	return nil, out, nil
}

func (s *Server) handleListCompletions(ctx context.Context, req *mcp.CallToolRequest, input listCompletionsInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	records, err := s.tracker.History(ctx, input.Limit)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list completions: %w", err)
	}

	if len(records) == 0 {
		return nil, listCompletionsOutput{Completions: []*models.CompletionRecord{}, Message: "No completed workouts yet."}, nil
	}
	return nil, listCompletionsOutput{Completions: records}, nil
}
