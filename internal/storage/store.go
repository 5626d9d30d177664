// ABOUTME: Store interface implemented by every crumb persistence backend.
// ABOUTME: Defines the record contract for stats snapshots and achievement unlocks.
package storage

import (
	"context"
	"errors"

	"github.com/harperreed/crumb/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique record already exists.
	ErrConflict = errors.New("already exists")
)

// Store defines the storage interface for gamification data.
// This interface allows swapping backends (sqlite, postgres, redis, charm).
type Store interface {
	// GetStats returns the snapshot for a user, or nil with no error when the
	// user has never logged a meal.
	GetStats(ctx context.Context, userID string) (*models.UserStats, error)
	// UpsertStats writes the full snapshot keyed by user id. Last write wins.
	UpsertStats(ctx context.Context, s *models.UserStats) error
	// ListStats returns every stored snapshot ordered by user id.
	ListStats(ctx context.Context) ([]*models.UserStats, error)

	// InsertUnlock stores an unlock record. It returns ErrConflict if the user
	// already holds that achievement.
	InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error
	// ListUnlocks returns a user's unlock records, oldest first.
	ListUnlocks(ctx context.Context, userID string) ([]*models.AchievementUnlock, error)

	// AddXP adds delta to the user's total XP and returns the new total. The
	// stats record is created if it does not exist yet.
	AddXP(ctx context.Context, userID string, delta int64) (int64, error)

	Close() error
}
