package docs

// decisionRequired is the presence check for an architecture decision draft.
var decisionRequired = []string{"id", "decision", "context", "alternatives", "draft_number", "total_drafts", "next_step_needed"}

// ValidateDecision checks an untyped input against the architecture
// decision schema and returns the typed document. A selected_option,
// when given, must name one of the alternatives.
func ValidateDecision(args map[string]any) (*DecisionDocument, error) {
	if !present(args, decisionRequired...) {
		return nil, errf("Invalid architecture decision data: missing required fields")
	}

	id, err := str("id", args["id"])
	if err != nil {
		return nil, err
	}
	decision, err := str("decision", args["decision"])
	if err != nil {
		return nil, err
	}
	decisionContext, err := str("context", args["context"])
	if err != nil {
		return nil, err
	}

	rawAlternatives, err := objectSlice("alternatives", args["alternatives"])
	if err != nil {
		return nil, err
	}

	alternatives := make([]Alternative, 0, len(rawAlternatives))
	for i, raw := range rawAlternatives {
		if !present(raw, "name", "description") {
			return nil, errf("Invalid alternative at index %d: missing required fields", i)
		}

		alt := Alternative{}
		if alt.Name, err = str("name", raw["name"]); err != nil {
			return nil, err
		}
		if alt.Description, err = str("description", raw["description"]); err != nil {
			return nil, err
		}
		if alt.TradeOffs, err = optionalString(raw, "trade_offs"); err != nil {
			return nil, err
		}
		alternatives = append(alternatives, alt)
	}

	df, err := validateDraftFields(args)
	if err != nil {
		return nil, err
	}

	doc := &DecisionDocument{
		ID:           id,
		Decision:     decision,
		Context:      decisionContext,
		Alternatives: alternatives,
		DraftFields:  df,
	}

	if doc.ImpactLevel, err = optionalString(args, "impact_level"); err != nil {
		return nil, err
	}
	if doc.ImpactLevel != "" && !oneOf(doc.ImpactLevel, ImpactLevels) {
		return nil, enumErrf("impact_level", doc.ImpactLevel, ImpactLevels)
	}

	if v, ok := args["stakeholders"]; ok && v != nil {
		if doc.Stakeholders, err = stringSlice("stakeholders", v); err != nil {
			return nil, err
		}
	}

	if doc.SelectedOption, err = optionalString(args, "selected_option"); err != nil {
		return nil, err
	}
	if doc.SelectedOption != "" {
		found := false
		for _, alt := range alternatives {
			if alt.Name == doc.SelectedOption {
				found = true
				break
			}
		}
		if !found {
			return nil, errf("Selected option %q does not match any alternative", doc.SelectedOption)
		}
	}

	return doc, nil
}
