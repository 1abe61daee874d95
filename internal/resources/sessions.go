// Package resources implements MCP resource handlers for Draftsmith.
//
// Resources provide read-only data that the host can consume for
// context. They use URI-based addressing (draftsmith://...) following
// MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// Handler serves Draftsmith resource endpoints from the session registry.
type Handler struct {
	registry *session.Registry
}

// NewHandler creates a resource Handler over the given registry.
func NewHandler(registry *session.Registry) *Handler {
	return &Handler{registry: registry}
}

// StatsResource returns the MCP resource definition for session statistics.
func (h *Handler) StatsResource() mcp.Resource {
	return mcp.NewResource(
		"draftsmith://sessions/stats",
		"Drafting Session Statistics",
		mcp.WithResourceDescription("Per-kind session counts and stored payload sizes"),
		mcp.WithMIMEType("application/json"),
	)
}

// HandleStats returns the current per-kind session figures as JSON.
func (h *Handler) HandleStats(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	stats, err := h.registry.Stats()
	if err != nil {
		return nil, fmt.Errorf("collecting session stats: %w", err)
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling session stats: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
