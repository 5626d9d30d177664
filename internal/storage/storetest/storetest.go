// ABOUTME: Conformance suite shared by every storage.Store backend.
// ABOUTME: Backends call Run from their own tests with a factory for a fresh store.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a ready store. The suite closes it.
type Factory func(t *testing.T) storage.Store

// Run exercises the Store contract. User ids are random so the suite can run
// against shared servers without cleanup.
func Run(t *testing.T, open Factory) {
	t.Helper()

	tests := []struct {
		name string
		fn   func(t *testing.T, s storage.Store)
	}{
		{"GetStatsMissing", testGetStatsMissing},
		{"UpsertRoundTrip", testUpsertRoundTrip},
		{"UpsertOverwrites", testUpsertOverwrites},
		{"ListStats", testListStats},
		{"InsertUnlockConflict", testInsertUnlockConflict},
		{"ListUnlocksOrder", testListUnlocksOrder},
		{"AddXPWithoutStats", testAddXPWithoutStats},
		{"AddXPKeepsOtherFields", testAddXPKeepsOtherFields},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := open(t)
			t.Cleanup(func() { _ = s.Close() })
			tt.fn(t, s)
		})
	}
}

// UserID returns a fresh user id for a test.
func UserID() string {
	return "storetest-" + uuid.NewString()
}

// SampleStats returns a populated snapshot for userID.
func SampleStats(userID string) *models.UserStats {
	last := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return &models.UserStats{
		UserID:               userID,
		TotalMealsLogged:     12,
		ZeroWasteMealsCount:  7,
		LowSugarMealsCount:   5,
		BalancedMealsCount:   3,
		UniqueFoodItems:      []string{"rice", "chicken", "broccoli"},
		UniqueFoodItemsCount: 3,
		TotalCalories:        6400.5,
		TotalProtein:         310.25,
		TotalCarbs:           700,
		TotalFat:             180,
		TotalFiber:           64,
		TotalSugar:           90,
		TotalWasteGrams:      42.5,
		DailyLogStreak:       4,
		LastLogDate:          &last,
		ZeroWasteStreak:      2,
		TotalXP:              320,
		UpdatedAt:            time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC),
	}
}

func ctx() context.Context { return context.Background() }

func assertStatsEqual(t *testing.T, want, got *models.UserStats) {
	t.Helper()
	require.NotNil(t, got)
	assert.Equal(t, want.UserID, got.UserID)
	assert.Equal(t, want.TotalMealsLogged, got.TotalMealsLogged)
	assert.Equal(t, want.ZeroWasteMealsCount, got.ZeroWasteMealsCount)
	assert.Equal(t, want.LowSugarMealsCount, got.LowSugarMealsCount)
	assert.Equal(t, want.BalancedMealsCount, got.BalancedMealsCount)
	assert.Equal(t, want.UniqueFoodItems, got.UniqueFoodItems)
	assert.Equal(t, want.UniqueFoodItemsCount, got.UniqueFoodItemsCount)
	assert.InDelta(t, want.TotalCalories, got.TotalCalories, 1e-9)
	assert.InDelta(t, want.TotalProtein, got.TotalProtein, 1e-9)
	assert.InDelta(t, want.TotalCarbs, got.TotalCarbs, 1e-9)
	assert.InDelta(t, want.TotalFat, got.TotalFat, 1e-9)
	assert.InDelta(t, want.TotalFiber, got.TotalFiber, 1e-9)
	assert.InDelta(t, want.TotalSugar, got.TotalSugar, 1e-9)
	assert.InDelta(t, want.TotalWasteGrams, got.TotalWasteGrams, 1e-9)
	assert.Equal(t, want.DailyLogStreak, got.DailyLogStreak)
	assert.Equal(t, want.ZeroWasteStreak, got.ZeroWasteStreak)
	assert.Equal(t, want.TotalXP, got.TotalXP)
	if want.LastLogDate == nil {
		assert.Nil(t, got.LastLogDate)
	} else {
		require.NotNil(t, got.LastLogDate)
		assert.Equal(t, want.LastLogDate.Format(models.DateLayout), got.LastLogDate.Format(models.DateLayout))
	}
	assert.WithinDuration(t, want.UpdatedAt, got.UpdatedAt, time.Millisecond)
}

func testGetStatsMissing(t *testing.T, s storage.Store) {
	got, err := s.GetStats(ctx(), UserID())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func testUpsertRoundTrip(t *testing.T, s storage.Store) {
	want := SampleStats(UserID())
	require.NoError(t, s.UpsertStats(ctx(), want))

	got, err := s.GetStats(ctx(), want.UserID)
	require.NoError(t, err)
	assertStatsEqual(t, want, got)

	empty := models.NewUserStats(UserID())
	require.NoError(t, s.UpsertStats(ctx(), empty))
	got, err = s.GetStats(ctx(), empty.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.NotNil(t, got.UniqueFoodItems)
	assert.Empty(t, got.UniqueFoodItems)
	assert.Nil(t, got.LastLogDate)
}

func testUpsertOverwrites(t *testing.T, s storage.Store) {
	first := SampleStats(UserID())
	require.NoError(t, s.UpsertStats(ctx(), first))

	second := first.Clone()
	second.TotalMealsLogged = 13
	second.DailyLogStreak = 1
	second.UniqueFoodItems = append(second.UniqueFoodItems, "tofu")
	second.UniqueFoodItemsCount = 4
	require.NoError(t, s.UpsertStats(ctx(), second))

	got, err := s.GetStats(ctx(), first.UserID)
	require.NoError(t, err)
	assertStatsEqual(t, second, got)
}

func testListStats(t *testing.T, s storage.Store) {
	a := SampleStats(UserID())
	b := SampleStats(UserID())
	require.NoError(t, s.UpsertStats(ctx(), a))
	require.NoError(t, s.UpsertStats(ctx(), b))

	all, err := s.ListStats(ctx())
	require.NoError(t, err)

	found := map[string]bool{}
	for i, st := range all {
		found[st.UserID] = true
		if i > 0 {
			assert.Less(t, all[i-1].UserID, st.UserID, "ordered by user id")
		}
	}
	assert.True(t, found[a.UserID])
	assert.True(t, found[b.UserID])
}

func testInsertUnlockConflict(t *testing.T, s storage.Store) {
	user := UserID()
	first := models.NewAchievementUnlock(user, "zero_crumb_1", 10)
	require.NoError(t, s.InsertUnlock(ctx(), first))

	dup := models.NewAchievementUnlock(user, "zero_crumb_1", 10)
	err := s.InsertUnlock(ctx(), dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrConflict), "got %v", err)

	other := models.NewAchievementUnlock(UserID(), "zero_crumb_1", 10)
	require.NoError(t, s.InsertUnlock(ctx(), other), "other users are independent")

	unlocks, err := s.ListUnlocks(ctx(), user)
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, first.ID, unlocks[0].ID)
}

func testListUnlocksOrder(t *testing.T, s storage.Store) {
	user := UserID()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	ids := []string{"streak_3", "zero_crumb_1", "variety_10"}
	for i, id := range ids {
		u := models.NewAchievementUnlock(user, id, int64(10*(i+1))).WithCreatedAt(base.Add(time.Duration(i) * time.Minute))
		require.NoError(t, s.InsertUnlock(ctx(), u))
	}

	unlocks, err := s.ListUnlocks(ctx(), user)
	require.NoError(t, err)
	require.Len(t, unlocks, 3)
	for i, u := range unlocks {
		assert.Equal(t, ids[i], u.AchievementID)
		assert.Equal(t, user, u.UserID)
		assert.Equal(t, int64(10*(i+1)), u.XPAwarded)
		assert.WithinDuration(t, base.Add(time.Duration(i)*time.Minute), u.CreatedAt, time.Millisecond)
	}

	none, err := s.ListUnlocks(ctx(), UserID())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func testAddXPWithoutStats(t *testing.T, s storage.Store) {
	user := UserID()
	total, err := s.AddXP(ctx(), user, 25)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)

	total, err = s.AddXP(ctx(), user, 75)
	require.NoError(t, err)
	assert.Equal(t, int64(100), total)

	got, err := s.GetStats(ctx(), user)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, int64(100), got.TotalXP)
	assert.Zero(t, got.TotalMealsLogged)
}

func testAddXPKeepsOtherFields(t *testing.T, s storage.Store) {
	want := SampleStats(UserID())
	require.NoError(t, s.UpsertStats(ctx(), want))

	total, err := s.AddXP(ctx(), want.UserID, 500)
	require.NoError(t, err)
	assert.Equal(t, want.TotalXP+500, total)

	got, err := s.GetStats(ctx(), want.UserID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.TotalXP+500, got.TotalXP)
	assert.Equal(t, want.TotalMealsLogged, got.TotalMealsLogged)
	assert.Equal(t, want.UniqueFoodItems, got.UniqueFoodItems)
	assert.Equal(t, want.DailyLogStreak, got.DailyLogStreak)
}
