package tools

import (
	"encoding/json"
	"testing"

	"github.com/draftsmith/draftsmith/internal/session"
	"github.com/mark3labs/mcp-go/mcp"
)

// newTestManager builds a memory-backed manager with the background
// sweep disabled, torn down with the test.
func newTestManager[T any](t *testing.T) *session.Manager[T] {
	t.Helper()
	policy := session.DefaultPolicy()
	policy.CleanupInterval = 0
	m := session.NewManager(session.NewMemoryStore[T](), policy)
	t.Cleanup(m.Destroy)
	return m
}

// makeReq builds a mcp.CallToolRequest with the given arguments.
func makeReq(args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

// resultText extracts the text content from a tool result.
func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

// decodeSummary parses a tool result's JSON body into a generic map.
func decodeSummary(t *testing.T, r *mcp.CallToolResult) map[string]any {
	t.Helper()
	if r == nil {
		t.Fatal("nil tool result")
	}
	if r.IsError {
		t.Fatalf("tool result is an error: %s", resultText(r))
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(resultText(r)), &out); err != nil {
		t.Fatalf("summary is not JSON: %v\n%s", err, resultText(r))
	}
	return out
}

// expectToolError asserts that the result is a tool-level error
// carrying the given message.
func expectToolError(t *testing.T, r *mcp.CallToolResult, err error, want string) {
	t.Helper()
	if err != nil {
		t.Fatalf("Handle returned Go error %v, want tool error", err)
	}
	if r == nil || !r.IsError {
		t.Fatalf("result = %+v, want tool error", r)
	}
	if got := resultText(r); got != want {
		t.Errorf("tool error = %q, want %q", got, want)
	}
}
