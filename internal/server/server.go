// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates concrete implementations
// and injects them into the tools/prompts/resources that depend on
// abstractions. No business logic lives here — only wiring.
package server

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/draftsmith/draftsmith/internal/prompts"
	"github.com/draftsmith/draftsmith/internal/resources"
	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/draftsmith/draftsmith/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Options configures server construction.
type Options struct {
	// DBPath, when non-empty, selects the durable SQLite session
	// backend. Empty keeps the in-memory default: nothing survives
	// a restart.
	DBPath string
}

// New creates and configures the MCP server with all tools, the
// drafting prompt, and the session stats resource registered.
//
// The returned cleanup function stops the session managers' eviction
// timers (and closes the database when a durable backend is in use).
// It must be called on shutdown, typically via defer, or the process
// cannot exit cleanly. It is always non-nil and safe to call twice.
func New(opts Options) (*server.MCPServer, func(), error) {
	// --- Create shared dependencies ---

	var db *sql.DB
	if opts.DBPath != "" {
		var err error
		if db, err = session.OpenDB(opts.DBPath); err != nil {
			return nil, noop, fmt.Errorf("opening session database: %w", err)
		}
	}

	registry := session.Init(session.Options{
		Policy: session.PolicyFromEnv(),
		DB:     db,
	})

	cleanup := func() {
		registry.Cleanup()
		if db != nil {
			if err := db.Close(); err != nil {
				log.Printf("WARNING: session database close: %v", err)
			}
		}
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"draftsmith",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register drafting tools ---

	reasoningTool := tools.NewReasoningTool(registry.Reasoning)
	s.AddTool(reasoningTool.Definition(), reasoningTool.Handle)

	apiDesignTool := tools.NewAPIDesignTool(registry.APIDesigns)
	s.AddTool(apiDesignTool.Definition(), apiDesignTool.Handle)

	decisionTool := tools.NewDecisionTool(registry.Decisions)
	s.AddTool(decisionTool.Definition(), decisionTool.Handle)

	reviewTool := tools.NewReviewTool(registry.Reviews)
	s.AddTool(reviewTool.Definition(), reviewTool.Handle)

	strategyTool := tools.NewStrategyTool(registry.Strategies)
	s.AddTool(strategyTool.Definition(), strategyTool.Handle)

	// --- Register prompts ---

	draftPrompt := prompts.NewDraftPrompt()
	s.AddPrompt(draftPrompt.Definition(), draftPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(registry)
	s.AddResource(resourceHandler.StatsResource(), resourceHandler.HandleStats)

	return s, cleanup, nil
}

// noop is a no-op cleanup function returned on construction failure.
func noop() {}

// serverInstructions returns the system instructions that tell the AI
// how to use Draftsmith effectively.
func serverInstructions() string {
	return `You have access to Draftsmith, a structured drafting MCP server.

## What Draftsmith does

Draftsmith gives you five drafting tools, each for a different document kind:

- reasoning_chain — an ordered chain of reasoning steps
- api_design — endpoints, methods, and authentication for an API
- architecture_decision — a decision, its context, and the alternatives considered
- code_review — files under review and findings against them
- implementation_strategy — candidate approaches, phases, risks, and dependencies

Each tool stores the documents YOU write. It validates the draft, appends it
to that document's history, and returns a JSON summary with counts and the
list of active critique focuses. Nothing is generated for you.

## The drafting loop

1. DRAFT — submit draft_number=1 with a realistic total_drafts and
   next_step_needed=true. Generate real content; never submit placeholders.
2. CRITIQUE — submit the next draft with is_critique=true and a specific
   critique_focus (e.g. "error handling coverage", "endpoint naming
   consistency"). The focus is added to the session's active critique list.
3. REVISE — submit the next draft with is_critique=false and concrete
   revision_instructions describing what changed and why.
4. Repeat 2-3 until the document holds up, then submit the final draft with
   is_final_draft=true and next_step_needed=false.

If you lose count and submit a draft_number above total_drafts, the server
raises total_drafts to match — keep drafting.

## Per-tool rules

- reasoning_chain has no id: all drafts share one history. To critique a
  single step, set step_to_review to its zero-based index; the draft is also
  filed under a branch named branch_<draft>_<step>.
- api_design, architecture_decision, code_review, and implementation_strategy
  are keyed by api_id, id, review_id, and strategy_id respectively. Reuse the
  same key across drafts of the same document; use a fresh key for a new one.
- code_review findings must reference files listed in the files parameter.
- selected_option / selected_approach must name one of the listed
  alternatives / implementation_approaches.

## Session behavior

Sessions are bounded: a single document history may not exceed the configured
payload limit (5 MiB by default), and sessions idle for longer than a day are
evicted. If a payload is rejected for size, start a fresh key or trim the
document — the stored history is left as it was.

The draftsmith://sessions/stats resource reports how many sessions exist per
document kind and how much they store.`
}
