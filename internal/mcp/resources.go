// ABOUTME: MCP resource implementations for fitforge.
// ABOUTME: Provides fitforge://profile, fitforge://ingredients, and fitforge://outbox resources.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fitforge/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	uriProfile     = "fitforge://profile"
	uriIngredients = "fitforge://ingredients"
	uriOutbox      = "fitforge://outbox"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriProfile,
		Name:        "Profile",
		Description: "Cached user profile and the last completed onboarding answers",
		MIMEType:    "application/json",
	}, s.handleProfileResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriIngredients,
		Name:        "Ingredient Reference Table",
		Description: "Per-100g calories and macros for every known ingredient",
		MIMEType:    "application/json",
	}, s.handleIngredientsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         uriOutbox,
		Name:        "Pending Saves",
		Description: "Onboarding saves waiting to be retried",
		MIMEType:    "application/json",
	}, s.handleOutboxResource)
}

// Resource handlers

func (s *Server) handleProfileResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
	}

	profile, err := s.repo.GetProfile()
	switch {
	case err == nil:
		result["profile"] = profile
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	answers, err := s.repo.GetOnboardingAnswers()
	switch {
	case err == nil:
		result["onboarding"] = answers
	case !errors.Is(err, storage.ErrNotFound):
		return nil, fmt.Errorf("failed to read onboarding answers: %w", err)
	}

	return jsonResource(uriProfile, result)
}

func (s *Server) handleIngredientsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries := s.table.Entries()
	return jsonResource(uriIngredients, map[string]interface{}{
		"count":       len(entries),
		"ingredients": entries,
	})
}

func (s *Server) handleOutboxResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.repo.ListOutbox()
	if err != nil {
		return nil, fmt.Errorf("failed to list outbox: %w", err)
	}
	return jsonResource(uriOutbox, map[string]interface{}{
		"count":   len(entries),
		"entries": entries,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
