// ABOUTME: PostgreSQL implementation of storage.Store using pgx/v5.
// ABOUTME: Creates its tables on open; unique violations map to storage.ErrConflict.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
)

// Store is a Postgres-backed storage.Store.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

// Open connects to the database at url, verifies the connection, and
// creates the schema if needed.
func Open(ctx context.Context, url string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, schema)
	return err
}

const schema = `
CREATE TABLE IF NOT EXISTS user_stats (
	user_id TEXT PRIMARY KEY,
	total_meals_logged INTEGER NOT NULL DEFAULT 0,
	zero_waste_meals_count INTEGER NOT NULL DEFAULT 0,
	low_sugar_meals_count INTEGER NOT NULL DEFAULT 0,
	balanced_meals_count INTEGER NOT NULL DEFAULT 0,
	unique_food_items TEXT[] NOT NULL DEFAULT '{}',
	unique_food_items_count INTEGER NOT NULL DEFAULT 0,
	total_calories DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_protein DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_carbs DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_fat DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_fiber DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_sugar DOUBLE PRECISION NOT NULL DEFAULT 0,
	total_waste_grams DOUBLE PRECISION NOT NULL DEFAULT 0,
	daily_log_streak INTEGER NOT NULL DEFAULT 0,
	last_log_date DATE,
	zero_waste_streak INTEGER NOT NULL DEFAULT 0,
	total_xp BIGINT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS user_achievements (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	achievement_id TEXT NOT NULL,
	xp_awarded BIGINT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, achievement_id)
);

CREATE INDEX IF NOT EXISTS idx_user_achievements_user ON user_achievements(user_id, created_at);
`

const statsColumns = `user_id, total_meals_logged, zero_waste_meals_count, low_sugar_meals_count,
	balanced_meals_count, unique_food_items, unique_food_items_count, total_calories,
	total_protein, total_carbs, total_fat, total_fiber, total_sugar, total_waste_grams,
	daily_log_streak, last_log_date, zero_waste_streak, total_xp, updated_at`

// GetStats returns the snapshot for a user, or nil if none exists.
func (s *Store) GetStats(ctx context.Context, userID string) (*models.UserStats, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+statsColumns+` FROM user_stats WHERE user_id = $1`, userID)
	st, err := scanStats(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

// UpsertStats writes the full snapshot keyed by user id.
func (s *Store) UpsertStats(ctx context.Context, st *models.UserStats) error {
	items := st.UniqueFoodItems
	if items == nil {
		items = []string{}
	}
	var lastLog pgtype.Date
	if st.LastLogDate != nil {
		lastLog = pgtype.Date{Time: *st.LastLogDate, Valid: true}
	}

	query := `
		INSERT INTO user_stats (` + statsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
		ON CONFLICT (user_id) DO UPDATE SET
			total_meals_logged = EXCLUDED.total_meals_logged,
			zero_waste_meals_count = EXCLUDED.zero_waste_meals_count,
			low_sugar_meals_count = EXCLUDED.low_sugar_meals_count,
			balanced_meals_count = EXCLUDED.balanced_meals_count,
			unique_food_items = EXCLUDED.unique_food_items,
			unique_food_items_count = EXCLUDED.unique_food_items_count,
			total_calories = EXCLUDED.total_calories,
			total_protein = EXCLUDED.total_protein,
			total_carbs = EXCLUDED.total_carbs,
			total_fat = EXCLUDED.total_fat,
			total_fiber = EXCLUDED.total_fiber,
			total_sugar = EXCLUDED.total_sugar,
			total_waste_grams = EXCLUDED.total_waste_grams,
			daily_log_streak = EXCLUDED.daily_log_streak,
			last_log_date = EXCLUDED.last_log_date,
			zero_waste_streak = EXCLUDED.zero_waste_streak,
			total_xp = EXCLUDED.total_xp,
			updated_at = EXCLUDED.updated_at
	`
	_, err := s.pool.Exec(ctx, query,
		st.UserID,
		st.TotalMealsLogged,
		st.ZeroWasteMealsCount,
		st.LowSugarMealsCount,
		st.BalancedMealsCount,
		items,
		st.UniqueFoodItemsCount,
		st.TotalCalories,
		st.TotalProtein,
		st.TotalCarbs,
		st.TotalFat,
		st.TotalFiber,
		st.TotalSugar,
		st.TotalWasteGrams,
		st.DailyLogStreak,
		lastLog,
		st.ZeroWasteStreak,
		st.TotalXP,
		st.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListStats returns every snapshot ordered by user id (byte order).
func (s *Store) ListStats(ctx context.Context) ([]*models.UserStats, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+statsColumns+` FROM user_stats ORDER BY user_id COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var out []*models.UserStats
	for rows.Next() {
		st, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("list stats: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

// AddXP increments total_xp, creating the row if needed, and returns the new total.
func (s *Store) AddXP(ctx context.Context, userID string, delta int64) (int64, error) {
	query := `
		INSERT INTO user_stats (user_id, total_xp, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			total_xp = user_stats.total_xp + EXCLUDED.total_xp,
			updated_at = EXCLUDED.updated_at
		RETURNING total_xp
	`
	var total int64
	if err := s.pool.QueryRow(ctx, query, userID, delta).Scan(&total); err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	return total, nil
}

// InsertUnlock stores an unlock record or returns storage.ErrConflict.
func (s *Store) InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error {
	query := `
		INSERT INTO user_achievements (id, user_id, achievement_id, xp_awarded, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
	`
	tag, err := s.pool.Exec(ctx, query, u.ID.String(), u.UserID, u.AchievementID, u.XPAwarded, u.CreatedAt)
	if IsUniqueViolation(err) || (err == nil && tag.RowsAffected() == 0) {
		return fmt.Errorf("insert unlock %s for %s: %w", u.AchievementID, u.UserID, storage.ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	return nil
}

// ListUnlocks returns a user's unlock records, oldest first.
func (s *Store) ListUnlocks(ctx context.Context, userID string) ([]*models.AchievementUnlock, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, user_id, achievement_id, xp_awarded, created_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var out []*models.AchievementUnlock
	for rows.Next() {
		var (
			u  models.AchievementUnlock
			id string
		)
		if err := rows.Scan(&id, &u.UserID, &u.AchievementID, &u.XPAwarded, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		if u.ID, err = ulid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse unlock id: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// IsUniqueViolation checks if the error is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

func scanStats(row pgx.Row) (*models.UserStats, error) {
	var (
		st      models.UserStats
		lastLog pgtype.Date
	)
	err := row.Scan(
		&st.UserID,
		&st.TotalMealsLogged,
		&st.ZeroWasteMealsCount,
		&st.LowSugarMealsCount,
		&st.BalancedMealsCount,
		&st.UniqueFoodItems,
		&st.UniqueFoodItemsCount,
		&st.TotalCalories,
		&st.TotalProtein,
		&st.TotalCarbs,
		&st.TotalFat,
		&st.TotalFiber,
		&st.TotalSugar,
		&st.TotalWasteGrams,
		&st.DailyLogStreak,
		&lastLog,
		&st.ZeroWasteStreak,
		&st.TotalXP,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if st.UniqueFoodItems == nil {
		st.UniqueFoodItems = []string{}
	}
	if lastLog.Valid {
		d := models.CalendarDate(lastLog.Time, time.UTC)
		st.LastLogDate = &d
	}
	return &st, nil
}
