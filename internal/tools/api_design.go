package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// APIDesignTool handles the api_design MCP tool.
type APIDesignTool struct {
	sessions *session.Manager[docs.APIDesignState]
}

// NewAPIDesignTool creates an APIDesignTool over the given manager.
func NewAPIDesignTool(m *session.Manager[docs.APIDesignState]) *APIDesignTool {
	return &APIDesignTool{sessions: m}
}

// Definition returns the MCP tool definition for registration.
func (t *APIDesignTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draft an API design iteratively: endpoints with paths, methods, " +
				"and descriptions, plus an optional authentication scheme. " +
				"Each draft for the same api_id is appended to that design's history.",
		),
		mcp.WithString("api_id",
			mcp.Required(),
			mcp.Description("Stable identifier for the API design being drafted."),
		),
		mcp.WithString("api_name",
			mcp.Required(),
			mcp.Description("Human-readable name of the API."),
		),
		mcp.WithArray("endpoints",
			mcp.Required(),
			mcp.Description("Endpoints in this draft. Paths must start with '/' and (method, path) pairs must be unique."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"path":          map[string]any{"type": "string"},
					"method":        map[string]any{"type": "string", "enum": docs.HTTPMethods},
					"description":   map[string]any{"type": "string"},
					"auth_required": map[string]any{"type": "boolean"},
				},
				"required": []string{"path", "method", "description"},
			}),
		),
		mcp.WithString("auth_type",
			mcp.Description("Authentication scheme: "+strings.Join(docs.AuthTypes, ", ")+"."),
		),
	}
	opts = append(opts, draftFieldsSchema()...)
	return mcp.NewTool("api_design", opts...)
}

// apiDesignSummary is the JSON response for an API design draft.
type apiDesignSummary struct {
	APIID           string   `json:"apiId"`
	APIName         string   `json:"apiName"`
	DraftNumber     int      `json:"draftNumber"`
	TotalDrafts     int      `json:"totalDrafts"`
	NextStepNeeded  bool     `json:"nextStepNeeded"`
	IsFinalDraft    bool     `json:"isFinalDraft"`
	EndpointCount   int      `json:"endpointCount"`
	HistoryLength   int      `json:"historyLength"`
	ActiveCritiques []string `json:"activeCritiques"`
}

// Handle processes an api_design tool call.
func (t *APIDesignTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := normalizeTotalDrafts(req.GetArguments())

	doc, err := docs.ValidateAPIDesign(args)
	if err != nil {
		return faultResult(err)
	}

	rec, err := t.sessions.GetSession(doc.APIID)
	if err != nil {
		return nil, fmt.Errorf("loading API design session: %w", err)
	}

	state := rec.Data
	state.History = append(state.History, *doc)
	state.ActiveCritiques = appendCritique(state.ActiveCritiques, doc.DraftFields)

	if err := t.sessions.UpdateSession(doc.APIID, state); err != nil {
		return nil, fmt.Errorf("saving API design session: %w", err)
	}

	return jsonResult(apiDesignSummary{
		APIID:           doc.APIID,
		APIName:         doc.APIName,
		DraftNumber:     doc.DraftNumber,
		TotalDrafts:     doc.TotalDrafts,
		NextStepNeeded:  doc.NextStepNeeded,
		IsFinalDraft:    doc.IsFinalDraft,
		EndpointCount:   len(doc.Endpoints),
		HistoryLength:   len(state.History),
		ActiveCritiques: critiqueList(state.ActiveCritiques),
	})
}
