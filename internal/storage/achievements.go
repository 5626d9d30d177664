// ABOUTME: Achievement unlock operations for SQLite storage.
// ABOUTME: The UNIQUE(user_id, achievement_id) constraint enforces at-most-once awards.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/crumb/internal/models"
	"github.com/oklog/ulid/v2"
)

// InsertUnlock stores an unlock record, or returns ErrConflict if the user
// already holds the achievement.
func (d *DB) InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error {
	query := `
		INSERT INTO user_achievements (id, user_id, achievement_id, xp_awarded, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT DO NOTHING
	`
	result, err := d.db.ExecContext(ctx, query,
		u.ID.String(),
		u.UserID,
		u.AchievementID,
		u.XPAwarded,
		u.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("insert unlock %s for %s: %w", u.AchievementID, u.UserID, ErrConflict)
	}
	return nil
}

// ListUnlocks returns a user's unlock records, oldest first.
func (d *DB) ListUnlocks(ctx context.Context, userID string) ([]*models.AchievementUnlock, error) {
	query := `
		SELECT id, user_id, achievement_id, xp_awarded, created_at
		FROM user_achievements
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC
	`
	rows, err := d.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}
	defer rows.Close()

	var out []*models.AchievementUnlock
	for rows.Next() {
		var (
			u         models.AchievementUnlock
			id        string
			createdAt string
		)
		if err := rows.Scan(&id, &u.UserID, &u.AchievementID, &u.XPAwarded, &createdAt); err != nil {
			return nil, fmt.Errorf("scan unlock: %w", err)
		}
		if u.ID, err = ulid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse unlock id: %w", err)
		}
		if u.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}
