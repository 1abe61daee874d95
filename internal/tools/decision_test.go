package tools

import (
	"context"
	"testing"

	"github.com/draftsmith/draftsmith/internal/docs"
)

func decisionArgs() map[string]any {
	return map[string]any{
		"id":       "adr-001",
		"decision": "Pick a message queue",
		"context":  "Workers need a durable handoff.",
		"alternatives": []any{
			map[string]any{"name": "redis streams", "description": "Streams on existing Redis"},
			map[string]any{"name": "nats", "description": "Dedicated broker"},
		},
		"draft_number":     float64(1),
		"total_drafts":     float64(3),
		"next_step_needed": true,
	}
}

func TestDecisionTool_Definition(t *testing.T) {
	tool := NewDecisionTool(newTestManager[docs.DecisionState](t))
	def := tool.Definition()

	if def.Name != "architecture_decision" {
		t.Errorf("tool name = %q", def.Name)
	}
	props := def.InputSchema.Properties
	for _, p := range []string{"id", "decision", "context", "alternatives", "selected_option", "impact_level", "stakeholders"} {
		if _, ok := props[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}
}

func TestDecisionTool_FirstDraft(t *testing.T) {
	tool := NewDecisionTool(newTestManager[docs.DecisionState](t))

	result, err := tool.Handle(context.Background(), makeReq(decisionArgs()))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	sum := decodeSummary(t, result)
	if sum["id"] != "adr-001" || sum["alternativeCount"] != float64(2) {
		t.Errorf("summary = %v", sum)
	}
	if sum["historyLength"] != float64(1) {
		t.Errorf("historyLength = %v, want 1", sum["historyLength"])
	}
}

// A later draft arriving with a stale total is corrected rather than
// rejected: total_drafts is raised to the draft number.
func TestDecisionTool_RaisesTotalDrafts(t *testing.T) {
	tool := NewDecisionTool(newTestManager[docs.DecisionState](t))

	args := decisionArgs()
	args["draft_number"] = float64(5)
	args["total_drafts"] = float64(3)
	result, err := tool.Handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	sum := decodeSummary(t, result)
	if sum["draftNumber"] != float64(5) {
		t.Errorf("draftNumber = %v, want 5", sum["draftNumber"])
	}
	if sum["totalDrafts"] != float64(5) {
		t.Errorf("totalDrafts = %v, want 5", sum["totalDrafts"])
	}
}

func TestDecisionTool_HistoryKeyedByID(t *testing.T) {
	tool := NewDecisionTool(newTestManager[docs.DecisionState](t))

	if _, err := tool.Handle(context.Background(), makeReq(decisionArgs())); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	other := decisionArgs()
	other["id"] = "adr-002"
	result, err := tool.Handle(context.Background(), makeReq(other))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	// A different id starts its own history.
	sum := decodeSummary(t, result)
	if sum["historyLength"] != float64(1) {
		t.Errorf("historyLength = %v, want 1", sum["historyLength"])
	}
}

func TestDecisionTool_SelectedOptionFault(t *testing.T) {
	tool := NewDecisionTool(newTestManager[docs.DecisionState](t))

	args := decisionArgs()
	args["selected_option"] = "kafka"
	result, err := tool.Handle(context.Background(), makeReq(args))
	expectToolError(t, result, err, `Selected option "kafka" does not match any alternative`)
}
