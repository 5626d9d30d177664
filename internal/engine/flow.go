// ABOUTME: LogMeal composes the stats update and achievement check for one meal.
// ABOUTME: Also reports the level before and after so callers can celebrate level-ups.
package engine

import (
	"context"

	"github.com/harperreed/crumb/internal/level"
	"github.com/harperreed/crumb/internal/models"
	"go.uber.org/zap"
)

// MealResult is the outcome of logging one meal.
type MealResult struct {
	Stats       *models.UserStats `json:"stats"`
	Award       *AwardResult      `json:"award"`
	LevelBefore level.Progress    `json:"level_before"`
	LevelAfter  level.Progress    `json:"level_after"`
	LeveledUp   bool              `json:"leveled_up"`
}

// LogMeal updates the user's stats with m and then awards any achievements the
// new snapshot qualifies for. If the award step fails after the stats were
// saved, the result still carries the saved stats.
func (e *Engine) LogMeal(ctx context.Context, userID string, m *models.MealLog) (*MealResult, error) {
	st, err := e.UpdateStatsOnMealLog(ctx, userID, m)
	if err != nil {
		return nil, err
	}
	before := level.FromXP(float64(st.TotalXP - m.ExpEarned))

	res := &MealResult{Stats: st, LevelBefore: before}
	award, err := e.CheckAndAwardAchievements(ctx, userID, st)
	if award != nil {
		res.Award = award
		st.TotalXP = award.TotalXP
	}
	res.LevelAfter = level.FromXP(float64(st.TotalXP))
	res.LeveledUp = res.LevelAfter.Level > before.Level
	if err != nil {
		return res, err
	}

	if res.LeveledUp {
		e.log.Info("level up",
			zap.String("user_id", userID),
			zap.Int("from", before.Level),
			zap.Int("to", res.LevelAfter.Level),
		)
	}
	return res, nil
}
