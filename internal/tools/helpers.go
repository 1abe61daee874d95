// Package tools implements the MCP tool handlers for the five
// structured drafting tools.
//
// Each tool is a struct that receives its session manager via the
// constructor (DIP) and exposes Definition/Handle for registration.
// The pipeline is uniform: normalize total_drafts, validate, load the
// session, append to history, persist, return a JSON summary.
//
// Design principles:
// - SRP: each file = one tool
// - DIP: tools depend on session.Manager and docs validators, not on backends
package tools

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/draftsmith/draftsmith/internal/docs"
	"github.com/mark3labs/mcp-go/mcp"
)

// normalizeTotalDrafts returns args with total_drafts raised to
// draft_number when a later draft arrives out of order. The bare
// validators reject draft_number > total_drafts; the handler path
// corrects it instead, so a caller that lost count keeps working.
// The input map is not mutated.
func normalizeTotalDrafts(args map[string]any) map[string]any {
	draftNumber, err := docs.Number(args["draft_number"])
	if err != nil {
		return args
	}
	totalDrafts, err := docs.Number(args["total_drafts"])
	if err != nil {
		return args
	}
	if draftNumber <= totalDrafts {
		return args
	}

	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	out["total_drafts"] = draftNumber
	return out
}

// faultResult maps a pipeline fault to the caller-visible shape:
// validation faults become tool errors (caller-correctable, the MCP
// analogue of invalid-params); everything else propagates as a Go
// error, surfaced by the SDK as an internal protocol error without
// leaking internal fault shapes.
func faultResult(err error) (*mcp.CallToolResult, error) {
	var verr *docs.ValidationError
	if errors.As(err, &verr) {
		return mcp.NewToolResultError(verr.Error()), nil
	}
	return nil, err
}

// jsonResult marshals a summary into a text tool result.
func jsonResult(summary any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling summary: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// appendCritique adds the document's critique focus to the session's
// active-critique list when the document is a critique carrying one.
func appendCritique(list []string, df docs.DraftFields) []string {
	if df.IsCritique != nil && *df.IsCritique && df.CritiqueFocus != "" {
		return append(list, df.CritiqueFocus)
	}
	return list
}

// critiqueList returns a non-nil copy for JSON summaries, so callers
// always see an array rather than null.
func critiqueList(list []string) []string {
	return append([]string{}, list...)
}

// draftFieldsSchema returns the tool schema options shared by every
// drafting tool.
func draftFieldsSchema() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("draft_number",
			mcp.Required(),
			mcp.Description("Current draft number, starting at 1."),
		),
		mcp.WithNumber("total_drafts",
			mcp.Required(),
			mcp.Description("Expected total number of drafts. Raised automatically when a later draft arrives."),
		),
		mcp.WithBoolean("next_step_needed",
			mcp.Required(),
			mcp.Description("Whether another draft, critique, or revision step is expected."),
		),
		mcp.WithBoolean("is_final_draft",
			mcp.Description("Whether this draft is considered final."),
		),
		mcp.WithBoolean("is_critique",
			mcp.Description("True when this draft critiques a previous one, false when it revises one. Omit when neither."),
		),
		mcp.WithString("critique_focus",
			mcp.Description("What the critique focuses on. Required when is_critique is true."),
		),
		mcp.WithString("revision_instructions",
			mcp.Description("How to revise the previous draft. Required when is_critique is false."),
		),
	}
}
