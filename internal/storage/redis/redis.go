// ABOUTME: Redis-backed Repository for sharing history between devices.
// ABOUTME: One hash per completion record, indexed by a per-user sorted set.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/storage"
	"github.com/redis/go-redis/v9"
)

// Options configures the Redis connection.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// Store implements storage.Repository using Redis.
type Store struct {
	client *redis.Client
	insert *redis.Script
}

var _ storage.Repository = (*Store)(nil)

// Open creates a Redis-backed store and verifies the connection.
func Open(opts Options) (*Store, error) {
	if opts.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: opts.DialTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &Store{client: client, insert: redis.NewScript(insertCompletionScript)}, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}

func completionKey(id string) string  { return "fitday:completion:" + id }
func userIndexKey(user string) string { return "fitday:completions:" + user }
func goalKey(user string) string      { return "fitday:goal:" + user }

const usersKey = "fitday:users"

// InsertCompletionRecord stores r and indexes it under its user and date.
func (s *Store) InsertCompletionRecord(ctx context.Context, r *models.CompletionRecord) error {
	id := r.ID.String()
	keys := []string{completionKey(id), userIndexKey(r.UserID), usersKey}
	args := []interface{}{
		id,
		r.UserID,
		r.Date.String(),
		strconv.FormatBool(r.Completed),
		r.ExercisesCompleted,
		r.TotalExercises,
		r.DurationSeconds,
		r.CreatedAt.UTC().Format(time.RFC3339Nano),
		r.Date.Ordinal(),
	}

	if err := s.insert.Run(ctx, s.client, keys, args...).Err(); err != nil {
		return fmt.Errorf("insert completion record: %w", err)
	}
	return nil
}

// LoadCompletedDates returns the distinct completed dates on or after since.
func (s *Store) LoadCompletedDates(ctx context.Context, userID string, since models.Date) ([]models.Date, error) {
	ids, err := s.client.ZRangeByScore(ctx, userIndexKey(userID), &redis.ZRangeBy{
		Min: strconv.Itoa(since.Ordinal()),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("load completed dates: %w", err)
	}

	records, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load completed dates: %w", err)
	}

	var dates []models.Date
	seen := make(map[models.Date]bool)
	for _, r := range records {
		if !r.Completed || seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		dates = append(dates, r.Date)
	}
	return dates, nil
}

// ListCompletionRecords returns the user's records, newest date first.
func (s *Store) ListCompletionRecords(ctx context.Context, userID string, limit int) ([]*models.CompletionRecord, error) {
	stop := int64(-1)
	if limit > 0 {
		stop = int64(limit - 1)
	}

	ids, err := s.client.ZRevRange(ctx, userIndexKey(userID), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("list completion records: %w", err)
	}

	records, err := s.fetch(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list completion records: %w", err)
	}
	return records, nil
}

// LoadWeeklyGoal returns the user's stored goal or storage.ErrNotFound.
func (s *Store) LoadWeeklyGoal(ctx context.Context, userID string) (int, error) {
	goal, err := s.client.Get(ctx, goalKey(userID)).Int()
	if errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("weekly goal for %s: %w", userID, storage.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("load weekly goal: %w", err)
	}
	return goal, nil
}

// UpsertWeeklyGoal replaces or creates the user's goal.
func (s *Store) UpsertWeeklyGoal(ctx context.Context, userID string, goal int) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, goalKey(userID), goal, 0)
	pipe.SAdd(ctx, usersKey, userID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("upsert weekly goal: %w", err)
	}
	return nil
}

// ListUsers returns every user with stored data.
func (s *Store) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.client.SMembers(ctx, usersKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return sortStrings(users), nil
}

// fetch loads the record hashes for ids in one pipeline, preserving order.
func (s *Store) fetch(ctx context.Context, ids []string) ([]*models.CompletionRecord, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, completionKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}

	records := make([]*models.CompletionRecord, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Result()
		if err != nil || len(data) == 0 {
			continue
		}
		r, err := parseCompletionRecord(data)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}
