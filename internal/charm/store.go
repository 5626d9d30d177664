// ABOUTME: storage.Store operations for the Charm KV backend.
// ABOUTME: Read-modify-write operations run under the client mutex.
package charm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
)

var _ storage.Store = (*Client)(nil)

// GetStats returns the snapshot for a user, or nil if none exists.
func (c *Client) GetStats(_ context.Context, userID string) (*models.UserStats, error) {
	c.mu.RLock()
	data, err := c.get(statsKey(userID))
	c.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeStats(data)
}

// UpsertStats writes the full snapshot.
func (c *Client) UpsertStats(_ context.Context, s *models.UserStats) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.set(statsKey(s.UserID), data); err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListStats returns every snapshot ordered by user id.
func (c *Client) ListStats(_ context.Context) ([]*models.UserStats, error) {
	all, err := c.listByPrefix(StatsPrefix)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}

	out := make([]*models.UserStats, 0, len(all))
	for _, data := range all {
		s, err := decodeStats(data)
		if err != nil {
			return nil, fmt.Errorf("list stats: %w", err)
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

// AddXP credits delta to the user's snapshot, creating it if needed.
func (c *Client) AddXP(_ context.Context, userID string, delta int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := c.get(statsKey(userID))
	if err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	s := models.NewUserStats(userID)
	if data != nil {
		if s, err = decodeStats(data); err != nil {
			return 0, fmt.Errorf("add xp: %w", err)
		}
	}
	s.TotalXP += delta
	s.UpdatedAt = time.Now().UTC()

	out, err := json.Marshal(s)
	if err != nil {
		return 0, fmt.Errorf("marshal stats: %w", err)
	}
	if err := c.put(statsKey(userID), out); err != nil {
		return 0, fmt.Errorf("add xp: %w", err)
	}
	return s.TotalXP, nil
}

// InsertUnlock stores an unlock record unless the user already holds it.
func (c *Client) InsertUnlock(_ context.Context, u *models.AchievementUnlock) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := achievementKey(u.UserID, u.AchievementID)
	existing, err := c.get(key)
	if err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	if existing != nil {
		return fmt.Errorf("insert unlock %s for %s: %w", u.AchievementID, u.UserID, storage.ErrConflict)
	}

	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal unlock: %w", err)
	}
	if err := c.put(key, data); err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	return nil
}

// ListUnlocks returns a user's unlock records, oldest first.
func (c *Client) ListUnlocks(_ context.Context, userID string) ([]*models.AchievementUnlock, error) {
	all, err := c.listByPrefix(achievementKey(userID, ""))
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	out := make([]*models.AchievementUnlock, 0, len(all))
	for _, data := range all {
		u, err := unmarshalJSON[models.AchievementUnlock](data)
		if err != nil {
			return nil, fmt.Errorf("list unlocks: %w", err)
		}
		if u.UserID != userID {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Compare(out[j].ID) < 0
	})
	return out, nil
}

func decodeStats(data []byte) (*models.UserStats, error) {
	s, err := unmarshalJSON[models.UserStats](data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}
	if s.UniqueFoodItems == nil {
		s.UniqueFoodItems = []string{}
	}
	return s, nil
}
