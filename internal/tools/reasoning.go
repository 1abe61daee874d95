package tools

import (
	"context"
	"fmt"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// reasoningSessionKey is the fixed session key for the reasoning
// chain tool. The tool has no domain id: every draft lands in one
// shared history, routed through the session manager like every
// other kind so it gets the same eviction and size bounds.
const reasoningSessionKey = "global"

// ReasoningTool handles the reasoning_chain MCP tool.
type ReasoningTool struct {
	sessions *session.Manager[docs.ReasoningState]
}

// NewReasoningTool creates a ReasoningTool over the given manager.
func NewReasoningTool(m *session.Manager[docs.ReasoningState]) *ReasoningTool {
	return &ReasoningTool{sessions: m}
}

// Definition returns the MCP tool definition for registration.
func (t *ReasoningTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draft a reasoning chain iteratively: submit an ordered list of " +
				"reasoning steps, then critique or revise it across drafts. " +
				"Set step_to_review to focus a critique on one step — the draft " +
				"is also filed under a branch for that step.",
		),
		mcp.WithArray("reasoning_chain",
			mcp.Required(),
			mcp.Description("Ordered reasoning steps for this draft."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithNumber("step_to_review",
			mcp.Description("Zero-based index of the step a critique focuses on."),
		),
	}
	opts = append(opts, draftFieldsSchema()...)
	return mcp.NewTool("reasoning_chain", opts...)
}

// reasoningSummary is the JSON response for a reasoning chain draft.
type reasoningSummary struct {
	DraftNumber     int      `json:"draftNumber"`
	TotalDrafts     int      `json:"totalDrafts"`
	NextStepNeeded  bool     `json:"nextStepNeeded"`
	IsFinalDraft    bool     `json:"isFinalDraft"`
	ChainLength     int      `json:"chainLength"`
	HistoryLength   int      `json:"historyLength"`
	BranchKey       string   `json:"branchKey,omitempty"`
	BranchCount     int      `json:"branchCount"`
	ActiveCritiques []string `json:"activeCritiques"`
}

// Handle processes a reasoning_chain tool call.
func (t *ReasoningTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := normalizeTotalDrafts(req.GetArguments())

	doc, err := docs.ValidateReasoning(args)
	if err != nil {
		return faultResult(err)
	}

	rec, err := t.sessions.GetSession(reasoningSessionKey)
	if err != nil {
		return nil, fmt.Errorf("loading reasoning session: %w", err)
	}

	state := rec.Data
	state.History = append(state.History, *doc)
	state.ActiveCritiques = appendCritique(state.ActiveCritiques, doc.DraftFields)

	branchKey := ""
	if doc.StepToReview != nil {
		branchKey = docs.BranchKey(doc.DraftNumber, *doc.StepToReview)
		if state.Branches == nil {
			state.Branches = make(map[string][]docs.ReasoningDocument)
		}
		state.Branches[branchKey] = append(state.Branches[branchKey], *doc)
	}

	if err := t.sessions.UpdateSession(reasoningSessionKey, state); err != nil {
		return nil, fmt.Errorf("saving reasoning session: %w", err)
	}

	return jsonResult(reasoningSummary{
		DraftNumber:     doc.DraftNumber,
		TotalDrafts:     doc.TotalDrafts,
		NextStepNeeded:  doc.NextStepNeeded,
		IsFinalDraft:    doc.IsFinalDraft,
		ChainLength:     len(doc.ReasoningChain),
		HistoryLength:   len(state.History),
		BranchKey:       branchKey,
		BranchCount:     len(state.Branches),
		ActiveCritiques: critiqueList(state.ActiveCritiques),
	})
}
