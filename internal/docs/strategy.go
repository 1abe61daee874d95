package docs

// strategyRequired is the presence check for an implementation strategy draft.
var strategyRequired = []string{"strategy_id", "objective", "implementation_approaches", "draft_number", "total_drafts", "next_step_needed"}

// ValidateStrategy checks an untyped input against the implementation
// strategy schema and returns the typed document. A selected_approach,
// when given, must name one of the implementation approaches.
func ValidateStrategy(args map[string]any) (*StrategyDocument, error) {
	if !present(args, strategyRequired...) {
		return nil, errf("Invalid implementation strategy data: missing required fields")
	}

	strategyID, err := str("strategy_id", args["strategy_id"])
	if err != nil {
		return nil, err
	}
	objective, err := str("objective", args["objective"])
	if err != nil {
		return nil, err
	}

	rawApproaches, err := objectSlice("implementation_approaches", args["implementation_approaches"])
	if err != nil {
		return nil, err
	}
	if len(rawApproaches) == 0 {
		return nil, errf("implementation_approaches must contain at least one approach")
	}

	approaches := make([]Approach, 0, len(rawApproaches))
	for i, raw := range rawApproaches {
		if !present(raw, "name", "description") {
			return nil, errf("Invalid approach at index %d: missing required fields", i)
		}

		ap := Approach{}
		if ap.Name, err = str("name", raw["name"]); err != nil {
			return nil, err
		}
		if ap.Description, err = str("description", raw["description"]); err != nil {
			return nil, err
		}
		if v, ok := raw["pros"]; ok && v != nil {
			if ap.Pros, err = stringSlice("pros", v); err != nil {
				return nil, err
			}
		}
		if v, ok := raw["cons"]; ok && v != nil {
			if ap.Cons, err = stringSlice("cons", v); err != nil {
				return nil, err
			}
		}
		approaches = append(approaches, ap)
	}

	df, err := validateDraftFields(args)
	if err != nil {
		return nil, err
	}

	doc := &StrategyDocument{
		StrategyID:  strategyID,
		Objective:   objective,
		Approaches:  approaches,
		DraftFields: df,
	}

	if v, ok := args["phases"]; ok && v != nil {
		rawPhases, err := objectSlice("phases", v)
		if err != nil {
			return nil, err
		}
		for i, raw := range rawPhases {
			if !present(raw, "name", "description") {
				return nil, errf("Invalid phase at index %d: missing required fields", i)
			}
			ph := Phase{}
			if ph.Name, err = str("name", raw["name"]); err != nil {
				return nil, err
			}
			if ph.Description, err = str("description", raw["description"]); err != nil {
				return nil, err
			}
			if v, ok := raw["tasks"]; ok && v != nil {
				if ph.Tasks, err = stringSlice("tasks", v); err != nil {
					return nil, err
				}
			}
			doc.Phases = append(doc.Phases, ph)
		}
	}

	if v, ok := args["risks"]; ok && v != nil {
		rawRisks, err := objectSlice("risks", v)
		if err != nil {
			return nil, err
		}
		for i, raw := range rawRisks {
			if !present(raw, "description") {
				return nil, errf("Invalid risk at index %d: missing required fields", i)
			}
			rk := Risk{}
			if rk.Description, err = str("description", raw["description"]); err != nil {
				return nil, err
			}
			if rk.Mitigation, err = optionalString(raw, "mitigation"); err != nil {
				return nil, err
			}
			if rk.Severity, err = optionalString(raw, "severity"); err != nil {
				return nil, err
			}
			if rk.Severity != "" && !oneOf(rk.Severity, Severities) {
				return nil, enumErrf("severity", rk.Severity, Severities)
			}
			doc.Risks = append(doc.Risks, rk)
		}
	}

	if v, ok := args["dependencies"]; ok && v != nil {
		rawDeps, err := objectSlice("dependencies", v)
		if err != nil {
			return nil, err
		}
		for i, raw := range rawDeps {
			if !present(raw, "description", "category") {
				return nil, errf("Invalid dependency at index %d: missing required fields", i)
			}
			dep := Dependency{}
			if dep.Description, err = str("description", raw["description"]); err != nil {
				return nil, err
			}
			if dep.Category, err = str("category", raw["category"]); err != nil {
				return nil, err
			}
			if !oneOf(dep.Category, DependencyCategories) {
				return nil, enumErrf("category", dep.Category, DependencyCategories)
			}
			doc.Dependencies = append(doc.Dependencies, dep)
		}
	}

	if doc.SelectedApproach, err = optionalString(args, "selected_approach"); err != nil {
		return nil, err
	}
	if doc.SelectedApproach != "" {
		found := false
		for _, ap := range approaches {
			if ap.Name == doc.SelectedApproach {
				found = true
				break
			}
		}
		if !found {
			return nil, errf("Selected approach %q does not match any implementation approach", doc.SelectedApproach)
		}
	}

	return doc, nil
}
