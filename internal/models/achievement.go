// ABOUTME: AchievementUnlock model, one row per user per unlocked achievement.
// ABOUTME: Records are created once and never mutated.
package models

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// AchievementUnlock records that a user unlocked an achievement.
type AchievementUnlock struct {
	ID            ulid.ULID `json:"id" yaml:"id"`
	UserID        string    `json:"user_id" yaml:"user_id"`
	AchievementID string    `json:"achievement_id" yaml:"achievement_id"`
	XPAwarded     int64     `json:"xp_awarded" yaml:"xp_awarded"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
}

// NewAchievementUnlock creates an unlock record stamped with the current time.
func NewAchievementUnlock(userID, achievementID string, xp int64) *AchievementUnlock {
	now := time.Now()
	return &AchievementUnlock{
		ID:            ulid.MustNew(ulid.Timestamp(now), ulid.DefaultEntropy()),
		UserID:        userID,
		AchievementID: achievementID,
		XPAwarded:     xp,
		CreatedAt:     now,
	}
}

// WithCreatedAt sets a custom created_at timestamp.
func (a *AchievementUnlock) WithCreatedAt(t time.Time) *AchievementUnlock {
	a.CreatedAt = t
	return a
}
