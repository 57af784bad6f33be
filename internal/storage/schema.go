// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for completion records and user profiles.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS completion_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		date TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 1,
		exercises_completed INTEGER NOT NULL,
		total_exercises INTEGER NOT NULL,
		duration_seconds INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS user_profiles (
		user_id TEXT PRIMARY KEY,
		weekly_goal INTEGER NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_completions_user_date ON completion_records(user_id, date DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
