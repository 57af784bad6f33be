// ABOUTME: Conversions between Redis hashes and fitday models.
// ABOUTME: Also holds the Lua script used for atomic inserts.
package redis

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/fitday/internal/models"
	"github.com/harperreed/fitday/internal/storage"
)

// insertCompletionScript writes a record hash and its indexes, refusing to
// overwrite an existing record.
const insertCompletionScript = `
local record_key = KEYS[1]   -- fitday:completion:{id}
local index_key = KEYS[2]    -- fitday:completions:{user}
local users_key = KEYS[3]    -- fitday:users

if redis.call('EXISTS', record_key) == 1 then
  return redis.error_reply('completion record already exists')
end

redis.call('HSET', record_key,
  'id', ARGV[1],
  'user_id', ARGV[2],
  'date', ARGV[3],
  'completed', ARGV[4],
  'exercises_completed', ARGV[5],
  'total_exercises', ARGV[6],
  'duration_seconds', ARGV[7],
  'created_at', ARGV[8]
)
redis.call('ZADD', index_key, ARGV[9], ARGV[1])
redis.call('SADD', users_key, ARGV[2])

return 'OK'
`

// parseCompletionRecord converts a Redis hash to a CompletionRecord.
func parseCompletionRecord(data map[string]string) (*models.CompletionRecord, error) {
	if len(data) == 0 {
		return nil, storage.ErrNotFound
	}

	id, err := uuid.Parse(data["id"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse id: %w", err)
	}
	date, err := models.ParseDate(data["date"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse date: %w", err)
	}
	completed, err := strconv.ParseBool(data["completed"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse completed: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, data["created_at"])
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at: %w", err)
	}

	counts := make(map[string]int, 3)
	for _, field := range []string{"exercises_completed", "total_exercises", "duration_seconds"} {
		n, err := strconv.Atoi(data[field])
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", field, err)
		}
		counts[field] = n
	}

	return &models.CompletionRecord{
		ID:                 id,
		UserID:             data["user_id"],
		Date:               date,
		Completed:          completed,
		ExercisesCompleted: counts["exercises_completed"],
		TotalExercises:     counts["total_exercises"],
		DurationSeconds:    counts["duration_seconds"],
		CreatedAt:          createdAt,
	}, nil
}

func sortStrings(s []string) []string {
	sort.Strings(s)
	return s
}
