// ABOUTME: MCP server setup for the crumb gamification engine.
// ABOUTME: Wraps the MCP server with an engine bound to a single configured user.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/crumb/internal/engine"
	"github.com/harperreed/crumb/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with engine access.
type Server struct {
	mcpServer *mcp.Server
	eng       *engine.Engine
	userID    string
	mealXP    func(models.MealType) int64
}

// Options configures a Server.
type Options struct {
	// UserID is the user every tool acts on.
	UserID string
	// MealXP supplies the reward for meals that do not carry one.
	MealXP func(models.MealType) int64
}

// NewServer creates a new MCP server on top of eng.
func NewServer(eng *engine.Engine, opts Options) (*Server, error) {
	if eng == nil {
		return nil, errors.New("engine is required")
	}
	if opts.UserID == "" {
		return nil, errors.New("user id is required")
	}
	if opts.MealXP == nil {
		opts.MealXP = func(models.MealType) int64 { return 0 }
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "crumb",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		eng:       eng,
		userID:    opts.UserID,
		mealXP:    opts.MealXP,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
