// Package prompts implements MCP prompt handlers for Draftsmith.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DraftPrompt handles the draftsmith-start MCP prompt.
// It guides the AI through the draft, critique, revision loop for a
// chosen document kind.
type DraftPrompt struct{}

// NewDraftPrompt creates a DraftPrompt.
func NewDraftPrompt() *DraftPrompt {
	return &DraftPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DraftPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("draftsmith-start",
		mcp.WithPromptDescription(
			"Start a structured drafting session. "+
				"Walks through drafting a document, critiquing it against a "+
				"focus, and revising until a final draft is reached.",
		),
		mcp.WithArgument("document_kind",
			mcp.ArgumentDescription(
				"What to draft: reasoning_chain, api_design, architecture_decision, code_review, or implementation_strategy. Default: reasoning_chain",
			),
		),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("What the document is about."),
		),
	)
}

// Handle processes the draftsmith-start prompt request.
func (p *DraftPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	kind := "reasoning_chain"
	topic := "the problem at hand"
	if args := req.Params.Arguments; args != nil {
		if k, ok := args["document_kind"]; ok && k != "" {
			kind = k
		}
		if t, ok := args["topic"]; ok && t != "" {
			topic = t
		}
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Structured drafting: %s", kind),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"I want to work on a %s about %s using structured drafting.\n\n"+
						"Please:\n"+
						"1. Produce draft 1 by calling the `%s` tool with draft_number=1, a realistic total_drafts estimate, and next_step_needed=true\n"+
						"2. Critique the draft: call the tool again with is_critique=true and a specific critique_focus\n"+
						"3. Revise it: call the tool with is_critique=false and concrete revision_instructions\n"+
						"4. Repeat the critique/revision loop until the document is solid, then submit the final draft with is_final_draft=true and next_step_needed=false\n\n"+
						"Generate real content at every step — the tools store what you write, they do not write it for you.",
					kind, topic, kind,
				)),
			},
		},
	}, nil
}
