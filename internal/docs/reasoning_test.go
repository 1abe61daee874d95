package docs

import "testing"

func validReasoningArgs() map[string]any {
	return map[string]any{
		"reasoning_chain":  []any{"identify the constraint", "weigh the options"},
		"draft_number":     float64(1),
		"total_drafts":     float64(3),
		"next_step_needed": true,
	}
}

func TestValidateReasoning_Valid(t *testing.T) {
	doc, err := ValidateReasoning(validReasoningArgs())
	if err != nil {
		t.Fatalf("ValidateReasoning failed: %v", err)
	}
	if len(doc.ReasoningChain) != 2 {
		t.Errorf("chain length = %d, want 2", len(doc.ReasoningChain))
	}
	if doc.DraftNumber != 1 || doc.TotalDrafts != 3 || !doc.NextStepNeeded {
		t.Errorf("draft fields = %+v", doc.DraftFields)
	}
	if doc.StepToReview != nil {
		t.Errorf("StepToReview = %v, want nil when omitted", *doc.StepToReview)
	}
}

func TestValidateReasoning_MissingFields(t *testing.T) {
	for _, field := range reasoningRequired {
		args := validReasoningArgs()
		delete(args, field)
		_, err := ValidateReasoning(args)
		if err == nil || err.Error() != "Invalid reasoning chain data: missing required fields" {
			t.Errorf("missing %s: error = %v", field, err)
		}
	}
}

func TestValidateReasoning_EmptyChain(t *testing.T) {
	args := validReasoningArgs()
	args["reasoning_chain"] = []any{}
	_, err := ValidateReasoning(args)
	if err == nil || err.Error() != "reasoning_chain must contain at least one step" {
		t.Errorf("error = %v", err)
	}
}

func TestValidateReasoning_ChainRejectsObjects(t *testing.T) {
	args := validReasoningArgs()
	args["reasoning_chain"] = []any{map[string]any{"step": "one"}}
	if _, err := ValidateReasoning(args); err == nil {
		t.Error("chain of objects validated, want error")
	}
}

func TestValidateReasoning_StepToReview(t *testing.T) {
	args := validReasoningArgs()
	args["step_to_review"] = float64(0)
	doc, err := ValidateReasoning(args)
	if err != nil {
		t.Fatalf("ValidateReasoning failed: %v", err)
	}
	if doc.StepToReview == nil || *doc.StepToReview != 0 {
		t.Errorf("StepToReview = %v, want 0", doc.StepToReview)
	}

	args["step_to_review"] = float64(-1)
	_, err = ValidateReasoning(args)
	if err == nil || err.Error() != "step_to_review cannot be negative" {
		t.Errorf("error = %v", err)
	}
}
