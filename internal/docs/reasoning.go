package docs

// reasoningRequired is the presence check for a reasoning chain draft.
var reasoningRequired = []string{"reasoning_chain", "draft_number", "total_drafts", "next_step_needed"}

// ValidateReasoning checks an untyped input against the reasoning
// chain schema and returns the typed document.
func ValidateReasoning(args map[string]any) (*ReasoningDocument, error) {
	if !present(args, reasoningRequired...) {
		return nil, errf("Invalid reasoning chain data: missing required fields")
	}

	chain, err := stringSlice("reasoning_chain", args["reasoning_chain"])
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		return nil, errf("reasoning_chain must contain at least one step")
	}

	df, err := validateDraftFields(args)
	if err != nil {
		return nil, err
	}

	doc := &ReasoningDocument{
		ReasoningChain: chain,
		DraftFields:    df,
	}

	if v, ok := args["step_to_review"]; ok && v != nil {
		step, err := integer(v)
		if err != nil {
			return nil, errf("Field step_to_review: %s", err.Error())
		}
		if step < 0 {
			return nil, errf("step_to_review cannot be negative")
		}
		doc.StepToReview = &step
	}

	return doc, nil
}
