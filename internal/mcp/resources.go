// ABOUTME: MCP resource implementations for crumb.
// ABOUTME: Provides crumb://stats, crumb://achievements, and crumb://levels resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/crumb/internal/level"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// levelTableSize is how many levels crumb://levels lists.
const levelTableSize = 20

func (s *Server) registerResources() {
	// crumb://stats - cumulative stats with level progress
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "crumb://stats",
		Name:        "Meal Statistics",
		Description: "Cumulative meal statistics, streaks, and level progress",
		MIMEType:    "application/json",
	}, s.handleStatsResource)

	// crumb://achievements - full achievement board
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "crumb://achievements",
		Name:        "Achievement Board",
		Description: "Every achievement by category with progress and unlock time",
		MIMEType:    "application/json",
	}, s.handleAchievementsResource)

	// crumb://levels - XP thresholds of the first levels
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "crumb://levels",
		Name:        "Level Curve",
		Description: "Per-level XP cost and cumulative XP needed to reach the next level",
		MIMEType:    "application/json",
	}, s.handleLevelsResource)
}

// Resource handlers

func (s *Server) handleStatsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	st, err := s.eng.GetUserStats(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}
	return jsonResource("crumb://stats", statsOutput{Stats: st, Level: newLevelOutput(float64(st.TotalXP))})
}

func (s *Server) handleAchievementsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	board, err := s.eng.Board(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build achievement board: %w", err)
	}
	return jsonResource("crumb://achievements", board)
}

type levelRow struct {
	Level       int     `json:"level"`
	Cost        float64 `json:"cost"`
	NextLevelAt float64 `json:"next_level_at"`
}

func (s *Server) handleLevelsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	rows := make([]levelRow, 0, levelTableSize)
	for n := 1; n <= levelTableSize; n++ {
		rows = append(rows, levelRow{
			Level:       n,
			Cost:        level.XPForLevel(n),
			NextLevelAt: level.CumulativeXPForLevel(n),
		})
	}
	return jsonResource("crumb://levels", rows)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}
