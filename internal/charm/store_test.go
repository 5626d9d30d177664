// ABOUTME: Unit tests for the Charm KV store.
// ABOUTME: Runs the conformance suite against an in-memory KV and checks key formats.
package charm

import (
	"bytes"
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/crumb/internal/models"
	"github.com/harperreed/crumb/internal/storage"
	"github.com/harperreed/crumb/internal/storage/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memKV is an in-memory kvStore.
type memKV struct {
	mu       sync.Mutex
	data     map[string][]byte
	readOnly bool
	syncs    int
}

func newMemKV() *memKV {
	return &memKV{data: make(map[string][]byte)}
}

func (m *memKV) Set(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *memKV) Get(key []byte) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, badger.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKV) Delete(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

func (m *memKV) Keys() ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([][]byte, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, []byte(k))
	}
	sort.Slice(keys, func(i, j int) bool { return bytes.Compare(keys[i], keys[j]) < 0 })
	return keys, nil
}

func (m *memKV) Sync() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.syncs++
	return nil
}

func (m *memKV) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string][]byte)
	return nil
}

func (m *memKV) Close() error     { return nil }
func (m *memKV) IsReadOnly() bool { return m.readOnly }

func TestCharmConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) storage.Store {
		return newClient(newMemKV(), false)
	})
}

func TestKeyFormats(t *testing.T) {
	assert.Equal(t, "stats:u1", statsKey("u1"))
	assert.Equal(t, "achievement:u1:zero_crumb_1", achievementKey("u1", "zero_crumb_1"))
}

func TestListUnlocksIgnoresPrefixNeighbours(t *testing.T) {
	c := newClient(newMemKV(), false)
	ctx := context.Background()

	require.NoError(t, c.InsertUnlock(ctx, models.NewAchievementUnlock("u1", "log_1", 30)))
	require.NoError(t, c.InsertUnlock(ctx, models.NewAchievementUnlock("u1:x", "log_1", 30)))

	unlocks, err := c.ListUnlocks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "u1", unlocks[0].UserID)
}

func TestListReportsCorruptRecords(t *testing.T) {
	mem := newMemKV()
	c := newClient(mem, false)
	ctx := context.Background()

	require.NoError(t, c.UpsertStats(ctx, models.NewUserStats("u1")))
	require.NoError(t, mem.Set([]byte(statsKey("u2")), []byte("{not json")))

	_, err := c.ListStats(ctx)
	assert.ErrorContains(t, err, "list stats")

	require.NoError(t, c.InsertUnlock(ctx, models.NewAchievementUnlock("u1", "log_1", 30)))
	require.NoError(t, mem.Set([]byte(achievementKey("u1", "zero_crumb_1")), []byte("garbage")))

	_, err = c.ListUnlocks(ctx, "u1")
	assert.ErrorContains(t, err, "list unlocks")
}

func TestReadOnlyRejectsWrites(t *testing.T) {
	mem := newMemKV()
	mem.readOnly = true
	c := newClient(mem, true)
	ctx := context.Background()

	err := c.UpsertStats(ctx, models.NewUserStats("u1"))
	assert.ErrorIs(t, err, errReadOnly)

	_, err = c.AddXP(ctx, "u1", 10)
	assert.ErrorIs(t, err, errReadOnly)

	got, err := c.GetStats(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, c.Sync())
}

func TestAutoSyncAfterWrite(t *testing.T) {
	mem := newMemKV()
	c := newClient(mem, true)

	require.NoError(t, c.UpsertStats(context.Background(), models.NewUserStats("u1")))
	assert.Equal(t, 1, mem.syncs)

	c.SetAutoSync(false)
	_, err := c.AddXP(context.Background(), "u1", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, mem.syncs)
}
