// ABOUTME: UserStats operations for SQLite storage.
// ABOUTME: Implements the stats half of the Store interface.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/crumb/internal/models"
)

const statsColumns = `user_id, total_meals_logged, zero_waste_meals_count, low_sugar_meals_count,
	balanced_meals_count, unique_food_items, unique_food_items_count, total_calories,
	total_protein, total_carbs, total_fat, total_fiber, total_sugar, total_waste_grams,
	daily_log_streak, last_log_date, zero_waste_streak, total_xp, updated_at`

// GetStats retrieves the stats snapshot for a user.
func (d *DB) GetStats(ctx context.Context, userID string) (*models.UserStats, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats WHERE user_id = ?`
	s, err := d.scanStats(d.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return s, nil
}

// UpsertStats writes the full snapshot, replacing any existing row.
func (d *DB) UpsertStats(ctx context.Context, s *models.UserStats) error {
	items, err := json.Marshal(nonNil(s.UniqueFoodItems))
	if err != nil {
		return fmt.Errorf("encode unique items: %w", err)
	}

	var lastLog *string
	if s.LastLogDate != nil {
		v := s.LastLogDate.Format(models.DateLayout)
		lastLog = &v
	}

	query := `
		INSERT INTO user_stats (` + statsColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_meals_logged = excluded.total_meals_logged,
			zero_waste_meals_count = excluded.zero_waste_meals_count,
			low_sugar_meals_count = excluded.low_sugar_meals_count,
			balanced_meals_count = excluded.balanced_meals_count,
			unique_food_items = excluded.unique_food_items,
			unique_food_items_count = excluded.unique_food_items_count,
			total_calories = excluded.total_calories,
			total_protein = excluded.total_protein,
			total_carbs = excluded.total_carbs,
			total_fat = excluded.total_fat,
			total_fiber = excluded.total_fiber,
			total_sugar = excluded.total_sugar,
			total_waste_grams = excluded.total_waste_grams,
			daily_log_streak = excluded.daily_log_streak,
			last_log_date = excluded.last_log_date,
			zero_waste_streak = excluded.zero_waste_streak,
			total_xp = excluded.total_xp,
			updated_at = excluded.updated_at
	`
	_, err = d.db.ExecContext(ctx, query,
		s.UserID,
		s.TotalMealsLogged,
		s.ZeroWasteMealsCount,
		s.LowSugarMealsCount,
		s.BalancedMealsCount,
		string(items),
		s.UniqueFoodItemsCount,
		s.TotalCalories,
		s.TotalProtein,
		s.TotalCarbs,
		s.TotalFat,
		s.TotalFiber,
		s.TotalSugar,
		s.TotalWasteGrams,
		s.DailyLogStreak,
		lastLog,
		s.ZeroWasteStreak,
		s.TotalXP,
		s.UpdatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListStats returns all stats rows ordered by user id.
func (d *DB) ListStats(ctx context.Context) ([]*models.UserStats, error) {
	query := `SELECT ` + statsColumns + ` FROM user_stats ORDER BY user_id`
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}
	defer rows.Close()

	var out []*models.UserStats
	for rows.Next() {
		s, err := d.scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("list stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// AddXP increments total_xp and returns the new total in one statement.
func (d *DB) AddXP(ctx context.Context, userID string, delta int64) (int64, error) {
	query := `
		INSERT INTO user_stats (user_id, total_xp, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_xp = user_stats.total_xp + excluded.total_xp,
			updated_at = excluded.updated_at
		RETURNING total_xp
	`
	var total int64
	err := d.db.QueryRowContext(ctx, query, userID, delta, time.Now().UTC().Format(timeLayout)).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (d *DB) scanStats(row rowScanner) (*models.UserStats, error) {
	var (
		s         models.UserStats
		items     string
		lastLog   sql.NullString
		updatedAt string
	)
	err := row.Scan(
		&s.UserID,
		&s.TotalMealsLogged,
		&s.ZeroWasteMealsCount,
		&s.LowSugarMealsCount,
		&s.BalancedMealsCount,
		&items,
		&s.UniqueFoodItemsCount,
		&s.TotalCalories,
		&s.TotalProtein,
		&s.TotalCarbs,
		&s.TotalFat,
		&s.TotalFiber,
		&s.TotalSugar,
		&s.TotalWasteGrams,
		&s.DailyLogStreak,
		&lastLog,
		&s.ZeroWasteStreak,
		&s.TotalXP,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(items), &s.UniqueFoodItems); err != nil {
		return nil, fmt.Errorf("decode unique items: %w", err)
	}
	s.UniqueFoodItems = nonNil(s.UniqueFoodItems)

	if lastLog.Valid && lastLog.String != "" {
		day, err := models.ParseDate(lastLog.String)
		if err != nil {
			return nil, fmt.Errorf("parse last_log_date: %w", err)
		}
		s.LastLogDate = &day
	}

	s.UpdatedAt, err = time.Parse(timeLayout, updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &s, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
