package tools

import (
	"context"
	"testing"

	"github.com/draftsmith/draftsmith/internal/docs"
)

func apiDesignArgs() map[string]any {
	return map[string]any{
		"api_id":   "billing-api",
		"api_name": "Billing API",
		"endpoints": []any{
			map[string]any{"path": "/invoices", "method": "GET", "description": "List invoices"},
		},
		"draft_number":     float64(1),
		"total_drafts":     float64(2),
		"next_step_needed": true,
	}
}

func TestAPIDesignTool_Definition(t *testing.T) {
	tool := NewAPIDesignTool(newTestManager[docs.APIDesignState](t))
	def := tool.Definition()

	if def.Name != "api_design" {
		t.Errorf("tool name = %q", def.Name)
	}
	props := def.InputSchema.Properties
	for _, p := range []string{"api_id", "api_name", "endpoints", "auth_type", "draft_number"} {
		if _, ok := props[p]; !ok {
			t.Errorf("missing %q parameter", p)
		}
	}
}

func TestAPIDesignTool_FirstDraft(t *testing.T) {
	tool := NewAPIDesignTool(newTestManager[docs.APIDesignState](t))

	result, err := tool.Handle(context.Background(), makeReq(apiDesignArgs()))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	sum := decodeSummary(t, result)
	if sum["apiId"] != "billing-api" || sum["apiName"] != "Billing API" {
		t.Errorf("identity = %v/%v", sum["apiId"], sum["apiName"])
	}
	if sum["endpointCount"] != float64(1) || sum["historyLength"] != float64(1) {
		t.Errorf("summary = %v", sum)
	}
}

func TestAPIDesignTool_HistoryGrowsPerID(t *testing.T) {
	tool := NewAPIDesignTool(newTestManager[docs.APIDesignState](t))

	if _, err := tool.Handle(context.Background(), makeReq(apiDesignArgs())); err != nil {
		t.Fatalf("first Handle failed: %v", err)
	}

	args := apiDesignArgs()
	args["draft_number"] = float64(2)
	result, err := tool.Handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("second Handle failed: %v", err)
	}

	sum := decodeSummary(t, result)
	if sum["historyLength"] != float64(2) {
		t.Errorf("historyLength = %v, want 2", sum["historyLength"])
	}
}

func TestAPIDesignTool_DuplicateEndpointFault(t *testing.T) {
	tool := NewAPIDesignTool(newTestManager[docs.APIDesignState](t))

	args := apiDesignArgs()
	args["endpoints"] = []any{
		map[string]any{"path": "/invoices", "method": "GET", "description": "one"},
		map[string]any{"path": "/invoices", "method": "get", "description": "two"},
	}
	result, err := tool.Handle(context.Background(), makeReq(args))
	expectToolError(t, result, err, "Duplicate endpoint GET /invoices")
}
