// ABOUTME: Statistics aggregate operations: read the snapshot and apply a meal log.
// ABOUTME: Each update is one read-modify-upsert; the store resolves concurrent writers.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/stats"
	"go.uber.org/zap"
)

// GetUserStats returns the user's snapshot, or all-zero defaults if the user
// has never logged. Store failures are returned as *StoreError.
func (e *Engine) GetUserStats(ctx context.Context, userID string) (*models.UserStats, error) {
	st, err := e.store.GetStats(ctx, userID)
	if err != nil {
		return nil, storeErr("get stats", userID, err)
	}
	if st == nil {
		st = models.NewUserStats(userID)
		st.UpdatedAt = e.now()
	}
	return st, nil
}

// UpdateStatsOnMealLog applies one meal log to the user's snapshot and
// persists it. The returned snapshot is what was written.
func (e *Engine) UpdateStatsOnMealLog(ctx context.Context, userID string, m *models.MealLog) (*models.UserStats, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: empty user id", ErrInvalidMealLog)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: no meal", ErrInvalidMealLog)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMealLog, err)
	}

	prev, err := e.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := e.now()
	next := stats.Apply(prev, m, models.CalendarDate(now, e.loc), now)
	next.UserID = userID
	if err := next.CheckTotals(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMealLog, err)
	}

	if err := e.store.UpsertStats(ctx, next); err != nil {
		return nil, storeErr("upsert stats", userID, err)
	}

	e.log.Debug("stats updated",
		zap.String("user_id", userID),
		zap.String("meal_type", string(m.Type)),
		zap.Int("meals", next.TotalMealsLogged),
		zap.Int("daily_streak", next.DailyLogStreak),
		zap.Int("zero_waste_streak", next.ZeroWasteStreak),
		zap.Int64("total_xp", next.TotalXP),
	)
	return next, nil
}

// IsStoreError reports whether err came from the store.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
