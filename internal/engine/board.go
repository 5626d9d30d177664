// ABOUTME: Board joins the catalog with a user's unlocks and current progress.
// ABOUTME: Read-only view used by the CLI, HTTP API, and MCP server.
package engine

import (
	"context"
	"time"

	"github.com/harperreed/crumb/internal/achievements"
	"github.com/harperreed/crumb/internal/models"
)

// BoardEntry is one definition with the user's progress toward it.
type BoardEntry struct {
	achievements.Definition
	// Current is clamped to Target.
	Current    int        `json:"current"`
	Target     int        `json:"target"`
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}

// BoardCategory is one category of the board.
type BoardCategory struct {
	Name    string       `json:"name"`
	Icon    string       `json:"icon"`
	Entries []BoardEntry `json:"achievements"`
}

// Board is the full achievement board for one user.
type Board struct {
	UserID     string          `json:"user_id"`
	Unlocked   int             `json:"unlocked"`
	Total      int             `json:"total"`
	Categories []BoardCategory `json:"categories"`
}

// Board builds the achievement board for userID.
func (e *Engine) Board(ctx context.Context, userID string) (*Board, error) {
	st, err := e.GetUserStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := e.store.ListUnlocks(ctx, userID)
	if err != nil {
		return nil, storeErr("list unlocks", userID, err)
	}
	return BuildBoard(e.catalog, st, held), nil
}

// BuildBoard assembles a board from already-fetched data.
func BuildBoard(catalog *achievements.Catalog, st *models.UserStats, held []*models.AchievementUnlock) *Board {
	at := make(map[string]time.Time, len(held))
	for _, u := range held {
		at[u.AchievementID] = u.CreatedAt
	}

	b := &Board{UserID: st.UserID, Total: catalog.Len()}
	for _, cat := range catalog.ByCategory() {
		bc := BoardCategory{Name: cat.Name, Icon: cat.Icon, Entries: make([]BoardEntry, 0, len(cat.Definitions))}
		for _, def := range cat.Definitions {
			current, target := def.Progress(st)
			if current > target {
				current = target
			}
			entry := BoardEntry{Definition: def, Current: current, Target: target}
			if t, ok := at[def.ID]; ok {
				t := t
				entry.Unlocked = true
				entry.UnlockedAt = &t
				b.Unlocked++
			}
			bc.Entries = append(bc.Entries, entry)
		}
		b.Categories = append(b.Categories, bc)
	}
	return b
}
