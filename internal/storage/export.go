// ABOUTME: Export and import of a user's workout history.
// ABOUTME: Works over any Repository; supports JSON and YAML formats.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fitday/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for one user.
type ExportData struct {
	Version     string                     `json:"version" yaml:"version"`
	ExportedAt  time.Time                  `json:"exported_at" yaml:"exported_at"`
	Tool        string                     `json:"tool" yaml:"tool"`
	UserID      string                     `json:"user_id" yaml:"user_id"`
	WeeklyGoal  *int                       `json:"weekly_goal,omitempty" yaml:"weekly_goal,omitempty"`
	Completions []*models.CompletionRecord `json:"completions" yaml:"completions"`
}

// GetAllData collects everything stored for userID.
func GetAllData(ctx context.Context, repo Repository, userID string) (*ExportData, error) {
	records, err := repo.ListCompletionRecords(ctx, userID, 0)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	if records == nil {
		records = []*models.CompletionRecord{}
	}

	data := &ExportData{
		Version:     ExportVersion,
		ExportedAt:  time.Now(),
		Tool:        "fitday",
		UserID:      userID,
		Completions: records,
	}

	goal, err := repo.LoadWeeklyGoal(ctx, userID)
	switch {
	case err == nil:
		data.WeeklyGoal = &goal
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("load weekly goal: %w", err)
	}

	return data, nil
}

// ImportData writes an export into repo. The goal is replaced; records are appended.
func ImportData(ctx context.Context, repo Repository, data *ExportData) error {
	if data.UserID == "" {
		return fmt.Errorf("import: missing user_id")
	}

	for _, r := range data.Completions {
		if r.UserID == "" {
			r.UserID = data.UserID
		}
		if err := repo.InsertCompletionRecord(ctx, r); err != nil {
			return fmt.Errorf("import completion %s: %w", r.ID, err)
		}
	}

	if data.WeeklyGoal != nil {
		if err := repo.UpsertWeeklyGoal(ctx, data.UserID, *data.WeeklyGoal); err != nil {
			return fmt.Errorf("import weekly goal: %w", err)
		}
	}
	return nil
}

// ExportJSON exports a user's data as indented JSON.
func ExportJSON(ctx context.Context, repo Repository, userID string) ([]byte, error) {
	data, err := GetAllData(ctx, repo, userID)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports a user's data as YAML with a compact record layout.
func ExportYAML(ctx context.Context, repo Repository, userID string) ([]byte, error) {
	data, err := GetAllData(ctx, repo, userID)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version     string           `yaml:"version"`
		ExportedAt  string           `yaml:"exported_at"`
		Tool        string           `yaml:"tool"`
		UserID      string           `yaml:"user_id"`
		WeeklyGoal  int              `yaml:"weekly_goal,omitempty"`
		Completions []yamlCompletion `yaml:"completions"`
	}{
		Version:     data.Version,
		ExportedAt:  data.ExportedAt.Format(time.RFC3339),
		Tool:        data.Tool,
		UserID:      data.UserID,
		Completions: make([]yamlCompletion, 0, len(data.Completions)),
	}
	if data.WeeklyGoal != nil {
		yamlData.WeeklyGoal = *data.WeeklyGoal
	}

	for _, r := range data.Completions {
		yamlData.Completions = append(yamlData.Completions, yamlCompletion{
			ID:        r.ID.String()[:8],
			Date:      r.Date.String(),
			Exercises: fmt.Sprintf("%d/%d", r.ExercisesCompleted, r.TotalExercises),
			Duration:  (time.Duration(r.DurationSeconds) * time.Second).String(),
			Completed: r.Completed,
		})
	}

	return yaml.Marshal(yamlData)
}

type yamlCompletion struct {
	ID        string `yaml:"id"`
	Date      string `yaml:"date"`
	Exercises string `yaml:"exercises"`
	Duration  string `yaml:"duration"`
	Completed bool   `yaml:"completed"`
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, repo Repository, raw []byte) error {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(ctx, repo, &data)
}
