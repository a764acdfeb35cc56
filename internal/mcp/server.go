// Package mcp exposes one user's coach as Model Context Protocol tools.
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/porygon/mealplanner/internal/service"
)

// Services are the coach operations the tools call.
type Services struct {
	Chat      *service.ChatService
	Progress  *service.ProgressService
	MealPlans *service.MealPlanService
	Inventory *service.InventoryService
	Outlook   *service.OutlookService
}

// Server wraps the MCP server for a single user.
type Server struct {
	mcpServer *mcp.Server
	services  Services
	userID    string
}

// NewServer creates an MCP server acting as userID.
func NewServer(services Services, userID, version string) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "mealplanner-coach",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		services:  services,
		userID:    userID,
	}
	s.registerTools()

	return s
}

// Serve runs the server over stdin/stdout until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
