// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines the user_stats and user_achievements tables.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS user_stats (
		user_id TEXT PRIMARY KEY,
		total_meals_logged INTEGER NOT NULL DEFAULT 0,
		zero_waste_meals_count INTEGER NOT NULL DEFAULT 0,
		low_sugar_meals_count INTEGER NOT NULL DEFAULT 0,
		balanced_meals_count INTEGER NOT NULL DEFAULT 0,
		unique_food_items TEXT NOT NULL DEFAULT '[]',
		unique_food_items_count INTEGER NOT NULL DEFAULT 0,
		total_calories REAL NOT NULL DEFAULT 0,
		total_protein REAL NOT NULL DEFAULT 0,
		total_carbs REAL NOT NULL DEFAULT 0,
		total_fat REAL NOT NULL DEFAULT 0,
		total_fiber REAL NOT NULL DEFAULT 0,
		total_sugar REAL NOT NULL DEFAULT 0,
		total_waste_grams REAL NOT NULL DEFAULT 0,
		daily_log_streak INTEGER NOT NULL DEFAULT 0,
		last_log_date TEXT,
		zero_waste_streak INTEGER NOT NULL DEFAULT 0,
		total_xp INTEGER NOT NULL DEFAULT 0,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS user_achievements (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		achievement_id TEXT NOT NULL,
		xp_awarded INTEGER NOT NULL,
		created_at TEXT NOT NULL,
		UNIQUE (user_id, achievement_id)
	);

	CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id, created_at);
	`

	_, err := d.db.Exec(schema)
	return err
}
