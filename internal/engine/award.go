// ABOUTME: Achievement evaluation: unlock every qualifying definition at most once.
// ABOUTME: Unlock inserts rely on the store's uniqueness; the XP bonus is one separate credit.
package engine

import (
	"context"
	"errors"

	"github.com/harperreed/crumb/internal/achievements"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"go.uber.org/zap"
)

// AwardResult lists what one evaluation pass unlocked.
type AwardResult struct {
	Awarded        []achievements.Definition `json:"awarded"`
	TotalXPFromNew int64                     `json:"total_xp_from_new"`
	// TotalXP is the user's XP after the bonus credit.
	TotalXP int64 `json:"total_xp"`
}

// CheckAndAwardAchievements unlocks every definition st qualifies for that the
// user does not already hold, then credits the summed reward XP once.
//
// A failed insert skips that definition. A failed XP credit returns the
// partial result together with a *StoreError; the unlocks stay recorded.
func (e *Engine) CheckAndAwardAchievements(ctx context.Context, userID string, st *models.UserStats) (*AwardResult, error) {
	held, err := e.store.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, storeErr("list unlocks", userID, err)
	}
	unlocked := make(map[string]bool, len(held))
	for _, u := range held {
		unlocked[u.AchievementID] = true
	}

	result := &AwardResult{Awarded: []achievements.Definition{}, TotalXP: st.TotalXP}
	for _, def := range e.catalog.Definitions() {
		if unlocked[def.ID] || !def.Qualifies(st) {
			continue
		}

		rec := models.NewAchievementUnlock(userID, def.ID, def.RewardXP).WithCreatedAt(e.now())
		err := e.store.InsertUnlock(ctx, rec)
		switch {
		case errors.Is(err, storage.ErrConflict):
			e.log.Debug("achievement already unlocked",
				zap.String("user_id", userID), zap.String("achievement", def.ID))
			unlocked[def.ID] = true
			continue
		case err != nil:
			e.log.Warn("insert unlock failed",
				zap.String("user_id", userID), zap.String("achievement", def.ID), zap.Error(err))
			continue
		}

		unlocked[def.ID] = true
		result.Awarded = append(result.Awarded, def)
		result.TotalXPFromNew += def.RewardXP
		e.log.Info("achievement unlocked",
			zap.String("user_id", userID),
			zap.String("achievement", def.ID),
			zap.Int64("reward_xp", def.RewardXP),
		)
	}

	if result.TotalXPFromNew > 0 {
		total, err := e.store.AddXP(ctx, userID, result.TotalXPFromNew)
		if err != nil {
			return result, storeErr("credit xp", userID, err)
		}
		result.TotalXP = total
	}
	return result, nil
}
