// ABOUTME: Completion record and weekly goal operations for Charm KV storage.
// ABOUTME: Keys embed user and date so history scans are prefix filters.
package charm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/storage"
)

var _ storage.Repository = (*Client)(nil)

// completionKey is completion:<user>:<date>:<id>.
func completionKey(r *models.CompletionRecord) string {
	return fmt.Sprintf("%s%s:%s:%s", CompletionPrefix, r.UserID, r.Date, r.ID)
}

func userCompletionPrefix(userID string) string {
	return CompletionPrefix + userID + ":"
}

func goalKey(userID string) string {
	return GoalPrefix + userID
}

// InsertCompletionRecord stores a record. Existing records are never overwritten.
func (c *Client) InsertCompletionRecord(ctx context.Context, r *models.CompletionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := completionKey(r)
	if _, err := c.get(key); err == nil {
		return fmt.Errorf("insert completion record: %s already exists", r.ID)
	}

	data, err := marshalJSON(r)
	if err != nil {
		return fmt.Errorf("marshal completion record: %w", err)
	}
	if err := c.set(key, data); err != nil {
		return fmt.Errorf("insert completion record: %w", err)
	}
	return nil
}

// LoadCompletedDates returns the distinct completed dates on or after since.
func (c *Client) LoadCompletedDates(ctx context.Context, userID string, since models.Date) ([]models.Date, error) {
	records, err := c.userRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load completed dates: %w", err)
	}

	seen := make(map[models.Date]bool)
	var dates []models.Date
	for _, r := range records {
		if !r.Completed || r.Date.Before(since) || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		dates = append(dates, r.Date)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

// ListCompletionRecords returns the user's records, newest date first.
func (c *Client) ListCompletionRecords(ctx context.Context, userID string, limit int) ([]*models.CompletionRecord, error) {
	records, err := c.userRecords(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list completion records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].Date != records[j].Date {
			return records[i].Date.After(records[j].Date)
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// LoadWeeklyGoal returns the user's stored goal or storage.ErrNotFound.
func (c *Client) LoadWeeklyGoal(ctx context.Context, userID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	data, err := c.get(goalKey(userID))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, fmt.Errorf("weekly goal for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load weekly goal: %w", err)
	}

	goal, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, fmt.Errorf("parse weekly goal: %w", err)
	}
	return goal, nil
}

// UpsertWeeklyGoal replaces or creates the user's goal.
func (c *Client) UpsertWeeklyGoal(ctx context.Context, userID string, goal int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.set(goalKey(userID), []byte(strconv.Itoa(goal))); err != nil {
		return fmt.Errorf("upsert weekly goal: %w", err)
	}
	return nil
}

// ListUsers returns every user with records or a goal.
func (c *Client) ListUsers(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)

	completionKeys, err := c.keysByPrefix(CompletionPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, key := range completionKeys {
		rest := extractID(key, CompletionPrefix)
		if i := strings.Index(rest, ":"); i > 0 {
			seen[rest[:i]] = true
		}
	}

	goalKeys, err := c.keysByPrefix(GoalPrefix)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	for _, key := range goalKeys {
		seen[extractID(key, GoalPrefix)] = true
	}

	users := make([]string, 0, len(seen))
	for u := range seen {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

func (c *Client) userRecords(ctx context.Context, userID string) ([]*models.CompletionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys, values, err := c.listByPrefix(userCompletionPrefix(userID))
	if err != nil {
		return nil, err
	}

	records := make([]*models.CompletionRecord, 0, len(values))
	for i, data := range values {
		r, err := unmarshalJSON[models.CompletionRecord](data)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", keys[i], err)
		}
		records = append(records, r)
	}
	return records, nil
}
