// ABOUTME: Redis implementation of storage.Store using go-redis/v9.
// ABOUTME: Stats are JSON strings, unlocks live in a per-user hash written with HSETNX.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key this store writes.
const DefaultPrefix = "crumb:"

// maxTxRetries bounds optimistic retries of the XP credit transaction.
const maxTxRetries = 16

// Options configures the Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
	// Prefix defaults to DefaultPrefix.
	Prefix string
}

// Store is a Redis-backed storage.Store.
type Store struct {
	client *redis.Client
	prefix string
}

var _ storage.Store = (*Store)(nil)

// Open connects to Redis and verifies the connection.
func Open(ctx context.Context, opts Options) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: 5 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewWithClient(client, opts.Prefix), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

func (s *Store) statsKey(userID string) string {
	return s.prefix + "stats:" + userID
}

func (s *Store) unlocksKey(userID string) string {
	return s.prefix + "achievements:" + userID
}

func (s *Store) usersKey() string {
	return s.prefix + "users"
}

// GetStats returns the snapshot for a user, or nil if none exists.
func (s *Store) GetStats(ctx context.Context, userID string) (*models.UserStats, error) {
	st, err := getStats(ctx, s.client, s.statsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("get stats: %w", err)
	}
	return st, nil
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func getStats(ctx context.Context, c getter, key string) (*models.UserStats, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st models.UserStats
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if st.UniqueFoodItems == nil {
		st.UniqueFoodItems = []string{}
	}
	return &st, nil
}

// UpsertStats writes the full snapshot and indexes the user.
func (s *Store) UpsertStats(ctx context.Context, st *models.UserStats) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode stats: %w", err)
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.statsKey(st.UserID), raw, 0)
		pipe.SAdd(ctx, s.usersKey(), st.UserID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}

// ListStats returns every indexed snapshot ordered by user id.
func (s *Store) ListStats(ctx context.Context) ([]*models.UserStats, error) {
	users, err := s.client.SMembers(ctx, s.usersKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	sort.Strings(users)

	out := make([]*models.UserStats, 0, len(users))
	for _, u := range users {
		st, err := s.GetStats(ctx, u)
		if err != nil {
			return nil, fmt.Errorf("list stats: %w", err)
		}
		if st != nil {
			out = append(out, st)
		}
	}
	return out, nil
}

// AddXP credits delta under WATCH so concurrent credits and upserts are not lost.
func (s *Store) AddXP(ctx context.Context, userID string, delta int64) (int64, error) {
	key := s.statsKey(userID)
	var total int64

	txf := func(tx *redis.Tx) error {
		st, err := getStats(ctx, tx, key)
		if err != nil {
			return err
		}
		if st == nil {
			st = models.NewUserStats(userID)
		}
		st.TotalXP += delta
		st.UpdatedAt = time.Now().UTC()

		raw, err := json.Marshal(st)
		if err != nil {
			return fmt.Errorf("encode stats: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			pipe.SAdd(ctx, s.usersKey(), userID)
			return nil
		})
		if err == nil {
			total = st.TotalXP
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("add xp: %w", err)
		}
		return total, nil
	}
	return 0, fmt.Errorf("add xp: %w", redis.TxFailedErr)
}

// InsertUnlock stores the record under its achievement id unless one exists.
func (s *Store) InsertUnlock(ctx context.Context, u *models.AchievementUnlock) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode unlock: %w", err)
	}
	ok, err := s.client.HSetNX(ctx, s.unlocksKey(u.UserID), u.AchievementID, raw).Result()
	if err != nil {
		return fmt.Errorf("insert unlock: %w", err)
	}
	if !ok {
		return fmt.Errorf("insert unlock %s for %s: %w", u.AchievementID, u.UserID, storage.ErrConflict)
	}
	return nil
}

// ListUnlocks returns a user's unlock records, oldest first.
func (s *Store) ListUnlocks(ctx context.Context, userID string) ([]*models.AchievementUnlock, error) {
	fields, err := s.client.HGetAll(ctx, s.unlocksKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("list unlocks: %w", err)
	}

	out := make([]*models.AchievementUnlock, 0, len(fields))
	for id, raw := range fields {
		var u models.AchievementUnlock
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			return nil, fmt.Errorf("decode unlock %s: %w", id, err)
		}
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID.Compare(out[j].ID) < 0
	})
	return out, nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	return s.client.Close()
}
