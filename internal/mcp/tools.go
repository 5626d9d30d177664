// ABOUTME: MCP tool implementations for crumb.
// ABOUTME: Logs meals, reports stats and levels, and evaluates or lists achievements.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/level"
	"github.com/harperreed/crumb/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_meal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_meal",
		Description: "Log a meal, update streaks and totals, and award any achievements it unlocks",
	}, s.handleLogMeal)

	// get_stats
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_stats",
		Description: "Get the user's cumulative meal statistics and level",
	}, s.handleGetStats)

	// check_achievements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "check_achievements",
		Description: "Re-evaluate achievements against current stats and award any newly earned",
	}, s.handleCheckAchievements)

	// list_achievements
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_achievements",
		Description: "List achievements with progress, optionally filtered by category or unlocked state",
	}, s.handleListAchievements)

	// get_level
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_level",
		Description: "Place an XP total on the level curve; defaults to the user's own XP",
	}, s.handleGetLevel)
}

// Tool input/output types

type emptyInput struct{}

type awardedOutput struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	RewardXP int64  `json:"reward_xp"`
}

type logMealOutput struct {
	Stats     *models.UserStats `json:"stats"`
	Awarded   []awardedOutput   `json:"awarded"`
	XPEarned  int64             `json:"xp_earned"`
	Level     levelOutput       `json:"level"`
	LeveledUp bool              `json:"leveled_up"`
	Message   string            `json:"message"`
}

type levelOutput struct {
	XP          float64 `json:"xp"`
	Level       int     `json:"level"`
	XPInLevel   float64 `json:"xp_in_level"`
	LevelWidth  float64 `json:"level_width"`
	NextLevelAt float64 `json:"next_level_at"`
}

type statsOutput struct {
	Stats *models.UserStats `json:"stats"`
	Level levelOutput       `json:"level"`
}

type checkOutput struct {
	Awarded        []awardedOutput `json:"awarded"`
	TotalXPFromNew int64           `json:"total_xp_from_new"`
	TotalXP        int64           `json:"total_xp"`
	Message        string          `json:"message"`
}

type listAchievementsInput struct {
	Category     string `json:"category,omitempty" jsonschema:"Only include this category, matched case-insensitively"`
	UnlockedOnly bool   `json:"unlocked_only,omitempty" jsonschema:"Only include achievements already unlocked"`
}

type listAchievementsOutput struct {
	Unlocked     int                 `json:"unlocked"`
	Total        int                 `json:"total"`
	Achievements []engine.BoardEntry `json:"achievements"`
}

type getLevelInput struct {
	XP *float64 `json:"xp,omitempty" jsonschema:"XP total to place on the curve"`
}

func newLevelOutput(xp float64) levelOutput {
	p := level.FromXP(xp)
	return levelOutput{
		XP:          xp,
		Level:       p.Level,
		XPInLevel:   p.XPInLevel,
		LevelWidth:  p.LevelWidth,
		NextLevelAt: level.CumulativeXPForLevel(p.Level),
	}
}

func toAwarded(res *engine.AwardResult) []awardedOutput {
	out := []awardedOutput{}
	if res == nil {
		return out
	}
	for _, d := range res.Awarded {
		out = append(out, awardedOutput{ID: d.ID, Title: d.Title, Icon: d.Icon, RewardXP: d.RewardXP})
	}
	return out
}

// Tool handlers

func (s *Server) handleLogMeal(ctx context.Context, req *mcp.CallToolRequest, input models.MealInput) (*mcp.CallToolResult, logMealOutput, error) {
	m, err := input.MealLog(s.mealXP)
	if err != nil {
		return nil, logMealOutput{}, err
	}

	res, err := s.eng.LogMeal(ctx, s.userID, m)
	if res == nil {
		return nil, logMealOutput{}, fmt.Errorf("failed to log meal: %w", err)
	}
	if err != nil {
		// Stats were saved; only the achievement step failed.
		return nil, logMealOutput{}, fmt.Errorf("meal logged but achievements not awarded: %w", err)
	}

	awarded := toAwarded(res.Award)
	msg := fmt.Sprintf("Logged %s meal (+%d XP)", m.Type, m.ExpEarned)
	if len(awarded) > 0 {
		titles := make([]string, 0, len(awarded))
		for _, a := range awarded {
			titles = append(titles, a.Title)
		}
		msg += fmt.Sprintf("; unlocked %s", strings.Join(titles, ", "))
	}
	if res.LeveledUp {
		msg += fmt.Sprintf("; reached level %d", res.LevelAfter.Level)
	}

	return nil, logMealOutput{
		Stats:     res.Stats,
		Awarded:   awarded,
		XPEarned:  m.ExpEarned + res.Award.TotalXPFromNew,
		Level:     newLevelOutput(float64(res.Stats.TotalXP)),
		LeveledUp: res.LeveledUp,
		Message:   msg,
	}, nil
}

func (s *Server) handleGetStats(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, statsOutput, error) {
	st, err := s.eng.GetUserStats(ctx, s.userID)
	if err != nil {
		return nil, statsOutput{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return nil, statsOutput{Stats: st, Level: newLevelOutput(float64(st.TotalXP))}, nil
}

func (s *Server) handleCheckAchievements(ctx context.Context, req *mcp.CallToolRequest, input emptyInput) (*mcp.CallToolResult, checkOutput, error) {
	st, err := s.eng.GetUserStats(ctx, s.userID)
	if err != nil {
		return nil, checkOutput{}, fmt.Errorf("failed to get stats: %w", err)
	}

	res, err := s.eng.CheckAndAwardAchievements(ctx, s.userID, st)
	if err != nil {
		return nil, checkOutput{}, fmt.Errorf("failed to check achievements: %w", err)
	}

	out := checkOutput{
		Awarded:        toAwarded(res),
		TotalXPFromNew: res.TotalXPFromNew,
		TotalXP:        res.TotalXP,
	}
	if len(out.Awarded) == 0 {
		out.Message = "No new achievements."
	} else {
		out.Message = fmt.Sprintf("Unlocked %d achievement(s) worth %d XP", len(out.Awarded), res.TotalXPFromNew)
	}
	return nil, out, nil
}

func (s *Server) handleListAchievements(ctx context.Context, req *mcp.CallToolRequest, input listAchievementsInput) (*mcp.CallToolResult, listAchievementsOutput, error) {
	board, err := s.eng.Board(ctx, s.userID)
	if err != nil {
		return nil, listAchievementsOutput{}, fmt.Errorf("failed to list achievements: %w", err)
	}

	out := listAchievementsOutput{
		Unlocked:     board.Unlocked,
		Total:        board.Total,
		Achievements: []engine.BoardEntry{},
	}
	for _, cat := range board.Categories {
		if input.Category != "" && !strings.EqualFold(cat.Name, input.Category) {
			continue
		}
		for _, e := range cat.Entries {
			if input.UnlockedOnly && !e.Unlocked {
				continue
			}
			out.Achievements = append(out.Achievements, e)
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetLevel(ctx context.Context, req *mcp.CallToolRequest, input getLevelInput) (*mcp.CallToolResult, levelOutput, error) {
	if input.XP != nil {
		if err := level.CheckXP(*input.XP); err != nil {
			return nil, levelOutput{}, err
		}
		return nil, newLevelOutput(*input.XP), nil
	}

	st, err := s.eng.GetUserStats(ctx, s.userID)
	if err != nil {
		return nil, levelOutput{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return nil, newLevelOutput(float64(st.TotalXP)), nil
}
