package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewTool handles the code_review MCP tool.
type ReviewTool struct {
	sessions *session.Manager[docs.ReviewState]
}

// NewReviewTool creates a ReviewTool over the given manager.
func NewReviewTool(m *session.Manager[docs.ReviewState]) *ReviewTool {
	return &ReviewTool{sessions: m}
}

// Definition returns the MCP tool definition for registration.
func (t *ReviewTool) Definition() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription(
			"Draft a code review iteratively: the files under review and the " +
				"findings against them, each tied to a file and severity. " +
				"Each draft for the same review_id is appended to that review's history.",
		),
		mcp.WithString("review_id",
			mcp.Required(),
			mcp.Description("Stable identifier for the review being drafted."),
		),
		mcp.WithArray("files",
			mcp.Required(),
			mcp.Description("Paths of the files under review."),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithArray("findings",
			mcp.Required(),
			mcp.Description("Findings raised by this draft. Every finding's file must appear in files."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"file":        map[string]any{"type": "string"},
					"severity":    map[string]any{"type": "string", "enum": docs.Severities},
					"dimension":   map[string]any{"type": "string", "enum": docs.ReviewDimensions},
					"description": map[string]any{"type": "string"},
					"suggestion":  map[string]any{"type": "string"},
					"line_start":  map[string]any{"type": "integer", "minimum": 1},
					"line_end":    map[string]any{"type": "integer"},
				},
				"required": []string{"file", "severity", "description"},
			}),
		),
		mcp.WithString("summary",
			mcp.Description("Overall assessment of this draft. Severities: "+strings.Join(docs.Severities, ", ")+"."),
		),
	}
	opts = append(opts, draftFieldsSchema()...)
	return mcp.NewTool("code_review", opts...)
}

// reviewSummary is the JSON response for a code review draft.
type reviewSummary struct {
	ReviewID        string   `json:"reviewId"`
	DraftNumber     int      `json:"draftNumber"`
	TotalDrafts     int      `json:"totalDrafts"`
	NextStepNeeded  bool     `json:"nextStepNeeded"`
	IsFinalDraft    bool     `json:"isFinalDraft"`
	FileCount       int      `json:"fileCount"`
	FindingCount    int      `json:"findingCount"`
	HistoryLength   int      `json:"historyLength"`
	ActiveCritiques []string `json:"activeCritiques"`
}

// Handle processes a code_review tool call.
func (t *ReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := normalizeTotalDrafts(req.GetArguments())

	doc, err := docs.ValidateCodeReview(args)
	if err != nil {
		return faultResult(err)
	}

	rec, err := t.sessions.GetSession(doc.ReviewID)
	if err != nil {
		return nil, fmt.Errorf("loading review session: %w", err)
	}

	state := rec.Data
	state.History = append(state.History, *doc)
	state.ActiveCritiques = appendCritique(state.ActiveCritiques, doc.DraftFields)

	if err := t.sessions.UpdateSession(doc.ReviewID, state); err != nil {
		return nil, fmt.Errorf("saving review session: %w", err)
	}

	return jsonResult(reviewSummary{
		ReviewID:        doc.ReviewID,
		DraftNumber:     doc.DraftNumber,
		TotalDrafts:     doc.TotalDrafts,
		NextStepNeeded:  doc.NextStepNeeded,
		IsFinalDraft:    doc.IsFinalDraft,
		FileCount:       len(doc.Files),
		FindingCount:    len(doc.Findings),
		HistoryLength:   len(state.History),
		ActiveCritiques: critiqueList(state.ActiveCritiques),
	})
}
