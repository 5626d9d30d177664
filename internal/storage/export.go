// ABOUTME: Export and import functionality for crumb data.
// ABOUTME: Supports JSON, YAML, and Markdown export formats over any Store.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/crumb/internal/achievements"
	"github.com/harperreed/crumb/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportVersion is the current export file format version.
const ExportVersion = "1.0"

// ExportData represents the full export format for crumb data.
type ExportData struct {
	Version      string                      `json:"version" yaml:"version"`
	ExportedAt   time.Time                   `json:"exported_at" yaml:"exported_at"`
	Tool         string                      `json:"tool" yaml:"tool"`
	Stats        []*models.UserStats         `json:"stats" yaml:"stats"`
	Achievements []*models.AchievementUnlock `json:"achievements" yaml:"achievements"`
}

// GetAllData retrieves every stats row and the unlock records of those users.
func GetAllData(ctx context.Context, s Store) (*ExportData, error) {
	stats, err := s.ListStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("list stats: %w", err)
	}

	data := &ExportData{
		Version:      ExportVersion,
		ExportedAt:   time.Now(),
		Tool:         "crumb",
		Stats:        stats,
		Achievements: []*models.AchievementUnlock{},
	}
	for _, st := range stats {
		unlocks, err := s.ListUnlocks(ctx, st.UserID)
		if err != nil {
			return nil, fmt.Errorf("list unlocks for %s: %w", st.UserID, err)
		}
		data.Achievements = append(data.Achievements, unlocks...)
	}
	return data, nil
}

// ImportData writes exported records into s. Stats rows overwrite existing
// ones; unlocks the user already holds are skipped.
func ImportData(ctx context.Context, s Store, data *ExportData) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	for _, st := range data.Stats {
		if err := s.UpsertStats(ctx, st); err != nil {
			return summary, fmt.Errorf("import stats %s: %w", st.UserID, err)
		}
		summary.Stats++
	}

	for _, u := range data.Achievements {
		err := s.InsertUnlock(ctx, u)
		if errors.Is(err, ErrConflict) {
			summary.Skipped++
			continue
		}
		if err != nil {
			return summary, fmt.Errorf("import unlock %s: %w", u.ID, err)
		}
		summary.Achievements++
	}

	return summary, nil
}

// ExportJSON exports all data as JSON.
func ExportJSON(ctx context.Context, s Store) ([]byte, error) {
	data, err := GetAllData(ctx, s)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all data as YAML with unlocks grouped under each user.
func ExportYAML(ctx context.Context, s Store) ([]byte, error) {
	data, err := GetAllData(ctx, s)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string     `yaml:"version"`
		ExportedAt string     `yaml:"exported_at"`
		Tool       string     `yaml:"tool"`
		Users      []yamlUser `yaml:"users"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Users:      make([]yamlUser, 0, len(data.Stats)),
	}

	byUser := make(map[string][]yamlUnlock)
	for _, u := range data.Achievements {
		byUser[u.UserID] = append(byUser[u.UserID], yamlUnlock{
			ID:         u.AchievementID,
			XP:         u.XPAwarded,
			UnlockedAt: u.CreatedAt.Format(time.RFC3339),
		})
	}

	for _, st := range data.Stats {
		yu := yamlUser{
			UserID:       st.UserID,
			Stats:        st,
			Achievements: byUser[st.UserID],
		}
		yamlData.Users = append(yamlData.Users, yu)
	}

	return yaml.Marshal(yamlData)
}

type yamlUser struct {
	UserID       string            `yaml:"user_id"`
	Stats        *models.UserStats `yaml:"stats"`
	Achievements []yamlUnlock      `yaml:"achievements,omitempty"`
}

type yamlUnlock struct {
	ID         string `yaml:"id"`
	XP         int64  `yaml:"xp"`
	UnlockedAt string `yaml:"unlocked_at"`
}

// ExportMarkdown renders a human-readable report. Achievement titles come
// from the catalog; unknown ids are shown as-is.
func ExportMarkdown(ctx context.Context, s Store, catalog *achievements.Catalog) (string, error) {
	data, err := GetAllData(ctx, s)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Crumb Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	byUser := make(map[string][]*models.AchievementUnlock)
	for _, u := range data.Achievements {
		byUser[u.UserID] = append(byUser[u.UserID], u)
	}

	for _, st := range data.Stats {
		sb.WriteString(fmt.Sprintf("## %s\n\n", st.UserID))
		sb.WriteString("| Stat | Value |\n")
		sb.WriteString("|------|-------|\n")
		rows := []struct {
			name  string
			value string
		}{
			{"Meals logged", fmt.Sprintf("%d", st.TotalMealsLogged)},
			{"Zero-waste meals", fmt.Sprintf("%d", st.ZeroWasteMealsCount)},
			{"Low-sugar meals", fmt.Sprintf("%d", st.LowSugarMealsCount)},
			{"Balanced meals", fmt.Sprintf("%d", st.BalancedMealsCount)},
			{"Unique foods", fmt.Sprintf("%d", st.UniqueFoodItemsCount)},
			{"Calories", fmt.Sprintf("%.0f", st.TotalCalories)},
			{"Protein", fmt.Sprintf("%.1f g", st.TotalProtein)},
			{"Fiber", fmt.Sprintf("%.1f g", st.TotalFiber)},
			{"Daily streak", fmt.Sprintf("%d", st.DailyLogStreak)},
			{"Zero-waste streak", fmt.Sprintf("%d", st.ZeroWasteStreak)},
			{"Total XP", fmt.Sprintf("%d", st.TotalXP)},
		}
		for _, r := range rows {
			sb.WriteString(fmt.Sprintf("| %s | %s |\n", r.name, r.value))
		}
		sb.WriteString("\n")

		unlocks := byUser[st.UserID]
		if len(unlocks) == 0 {
			continue
		}
		sb.WriteString("### Achievements\n\n")
		sb.WriteString("| Date | Achievement | XP |\n")
		sb.WriteString("|------|-------------|----|\n")
		for _, u := range unlocks {
			title := u.AchievementID
			if catalog != nil {
				if def, ok := catalog.Lookup(u.AchievementID); ok {
					title = def.Icon + " " + def.Title
				}
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | +%d |\n",
				u.CreatedAt.Format("2006-01-02 15:04"), title, u.XPAwarded))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports data from JSON bytes.
func ImportJSON(ctx context.Context, s Store, raw []byte) (*MigrateSummary, error) {
	var data ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	if data.Version != "" && data.Version != ExportVersion {
		return nil, fmt.Errorf("unsupported export version %q", data.Version)
	}
	return ImportData(ctx, s, &data)
}
