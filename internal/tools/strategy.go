package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// StrategyTool handles the implementation_strategy MCP tool.
type StrategyTool struct {
	sessions *session.Manager[docs.StrategyState]
}

// NewStrategyTool creates a StrategyTool over the given manager.
func NewStrategyTool(m *session.Manager[docs.StrategyState]) *StrategyTool {
	return &StrategyTool{sessions: m}
}

// Definition returns the MCP tool definition for registration.
func (t *StrategyTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draft an implementation strategy iteratively: candidate approaches " +
				"with pros and cons, execution phases, risks, and dependencies. " +
				"Each draft for the same strategy_id is appended to that strategy's history.",
		),
		mcp.WithString("strategy_id",
			mcp.Required(),
			mcp.Description("Stable identifier for the strategy being drafted."),
		),
		mcp.WithString("objective",
			mcp.Required(),
			mcp.Description("What the implementation should achieve."),
		),
		mcp.WithArray("implementation_approaches",
			mcp.Required(),
			mcp.Description("Candidate approaches, each with a name and description."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"pros":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
					"cons":        map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"name", "description"},
			}),
		),
		mcp.WithString("selected_approach",
			mcp.Description("Name of the chosen approach. Must match an entry in implementation_approaches."),
		),
		mcp.WithArray("phases",
			mcp.Description("Execution phases, each with a name, description, and optional tasks."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"tasks":       map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				},
				"required": []string{"name", "description"},
			}),
		),
		mcp.WithArray("risks",
			mcp.Description("Identified risks with optional mitigations and severities."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"description": map[string]any{"type": "string"},
					"mitigation":  map[string]any{"type": "string"},
					"severity":    map[string]any{"type": "string", "enum": docs.Severities},
				},
				"required": []string{"description"},
			}),
		),
		mcp.WithArray("dependencies",
			mcp.Description("Dependencies by category: "+strings.Join(docs.DependencyCategories, ", ")+"."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"description": map[string]any{"type": "string"},
					"category":    map[string]any{"type": "string", "enum": docs.DependencyCategories},
				},
				"required": []string{"description", "category"},
			}),
		),
	}
	opts = append(opts, draftFieldsSchema()...)
	return mcp.NewTool("implementation_strategy", opts...)
}

// strategySummary is the JSON response for an implementation strategy draft.
type strategySummary struct {
	StrategyID       string   `json:"strategyId"`
	Objective        string   `json:"objective"`
	DraftNumber      int      `json:"draftNumber"`
	TotalDrafts      int      `json:"totalDrafts"`
	NextStepNeeded   bool     `json:"nextStepNeeded"`
	IsFinalDraft     bool     `json:"isFinalDraft"`
	ApproachCount    int      `json:"approachCount"`
	SelectedApproach string   `json:"selectedApproach,omitempty"`
	PhaseCount       int      `json:"phaseCount"`
	RiskCount        int      `json:"riskCount"`
	DependencyCount  int      `json:"dependencyCount"`
	HistoryLength    int      `json:"historyLength"`
	ActiveCritiques  []string `json:"activeCritiques"`
}

// Handle processes an implementation_strategy tool call.
func (t *StrategyTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := normalizeTotalDrafts(req.GetArguments())

	doc, err := docs.ValidateStrategy(args)
	if err != nil {
		return faultResult(err)
	}

	rec, err := t.sessions.GetSession(doc.StrategyID)
	if err != nil {
		return nil, fmt.Errorf("loading strategy session: %w", err)
	}

	state := rec.Data
	state.History = append(state.History, *doc)
	state.ActiveCritiques = appendCritique(state.ActiveCritiques, doc.DraftFields)

	if err := t.sessions.UpdateSession(doc.StrategyID, state); err != nil {
		return nil, fmt.Errorf("saving strategy session: %w", err)
	}

	return jsonResult(strategySummary{
		StrategyID:       doc.StrategyID,
		Objective:        doc.Objective,
		DraftNumber:      doc.DraftNumber,
		TotalDrafts:      doc.TotalDrafts,
		NextStepNeeded:   doc.NextStepNeeded,
		IsFinalDraft:     doc.IsFinalDraft,
		ApproachCount:    len(doc.Approaches),
		SelectedApproach: doc.SelectedApproach,
		PhaseCount:       len(doc.Phases),
		RiskCount:        len(doc.Risks),
		DependencyCount:  len(doc.Dependencies),
		HistoryLength:    len(state.History),
		ActiveCritiques:  critiqueList(state.ActiveCritiques),
	})
}
