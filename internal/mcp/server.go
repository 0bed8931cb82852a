// ABOUTME: MCP server exposing fitforge's offline helpers and local state.
// ABOUTME: Wraps the MCP server with the storage Repository and the ingredient table.
package mcp

import (
	"context"

	"github.com/harperreed/fitforge/internal/pricing"
	"github.com/harperreed/fitforge/internal/recipe"
	"github.com/harperreed/fitforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	table     recipe.Table
	prices    *pricing.Service
}

// NewServer creates a new MCP server. prices may be nil, in which case the
// plan listing tool is not offered.
func NewServer(repo storage.Repository, table recipe.Table, prices *pricing.Service) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitforge",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		table:     table,
		prices:    prices,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
