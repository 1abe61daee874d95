package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// DecisionTool handles the architecture_decision MCP tool.
type DecisionTool struct {
	sessions *session.Manager[docs.DecisionState]
}

// NewDecisionTool creates a DecisionTool over the given manager.
func NewDecisionTool(m *session.Manager[docs.DecisionState]) *DecisionTool {
	return &DecisionTool{sessions: m}
}

// Definition returns the MCP tool definition for registration.
func (t *DecisionTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draft an architecture decision record iteratively: the decision, " +
				"its context, the alternatives considered, and optionally the " +
				"selected option and impact level. Each draft for the same id " +
				"is appended to that decision's history.",
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Stable identifier for the decision being drafted."),
		),
		mcp.WithString("decision",
			mcp.Required(),
			mcp.Description("The decision under consideration, stated as a short title."),
		),
		mcp.WithString("context",
			mcp.Required(),
			mcp.Description("Problem context — what situation requires a decision?"),
		),
		mcp.WithArray("alternatives",
			mcp.Required(),
			mcp.Description("Options considered, each with a name and description."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name":        map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"trade_offs":  map[string]any{"type": "string"},
				},
				"required": []string{"name", "description"},
			}),
		),
		mcp.WithString("selected_option",
			mcp.Description("Name of the chosen alternative. Must match an entry in alternatives."),
		),
		mcp.WithString("impact_level",
			mcp.Description("Impact of the decision: "+strings.Join(docs.ImpactLevels, ", ")+"."),
		),
		mcp.WithArray("stakeholders",
			mcp.Description("Who is affected by the decision."),
			mcp.Items(map[string]any{"type": "string"}),
		),
	}
	opts = append(opts, draftFieldsSchema()...)
	return mcp.NewTool("architecture_decision", opts...)
}

// decisionSummary is the JSON response for an architecture decision draft.
type decisionSummary struct {
	ID               string   `json:"id"`
	Decision         string   `json:"decision"`
	DraftNumber      int      `json:"draftNumber"`
	TotalDrafts      int      `json:"totalDrafts"`
	NextStepNeeded   bool     `json:"nextStepNeeded"`
	IsFinalDraft     bool     `json:"isFinalDraft"`
	AlternativeCount int      `json:"alternativeCount"`
	SelectedOption   string   `json:"selectedOption,omitempty"`
	HistoryLength    int      `json:"historyLength"`
	ActiveCritiques  []string `json:"activeCritiques"`
}

// Handle processes an architecture_decision tool call.
func (t *DecisionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := normalizeTotalDrafts(req.GetArguments())

	doc, err := docs.ValidateDecision(args)
	if err != nil {
		return faultResult(err)
	}

	rec, err := t.sessions.GetSession(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("loading decision session: %w", err)
	}

	state := rec.Data
	state.History = append(state.History, *doc)
	state.ActiveCritiques = appendCritique(state.ActiveCritiques, doc.DraftFields)

	if err := t.sessions.UpdateSession(doc.ID, state); err != nil {
		return nil, fmt.Errorf("saving decision session: %w", err)
	}

	return jsonResult(decisionSummary{
		ID:               doc.ID,
		Decision:         doc.Decision,
		DraftNumber:      doc.DraftNumber,
		TotalDrafts:      doc.TotalDrafts,
		NextStepNeeded:   doc.NextStepNeeded,
		IsFinalDraft:     doc.IsFinalDraft,
		AlternativeCount: len(doc.Alternatives),
		SelectedOption:   doc.SelectedOption,
		HistoryLength:    len(state.History),
		ActiveCritiques:  critiqueList(state.ActiveCritiques),
	})
}
