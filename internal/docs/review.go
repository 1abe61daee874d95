package docs

// reviewRequired is the presence check for a code review draft.
var reviewRequired = []string{"review_id", "files", "findings", "draft_number", "total_drafts", "next_step_needed"}

// ValidateCodeReview checks an untyped input against the code review
// schema and returns the typed document. Every finding must reference
// a file from the document's own files list, and line ranges must
// satisfy start >= 1 and end >= start.
func ValidateCodeReview(args map[string]any) (*ReviewDocument, error) {
	if !present(args, reviewRequired...) {
		return nil, errf("Invalid code review data: missing required fields")
	}

	reviewID, err := str("review_id", args["review_id"])
	if err != nil {
		return nil, err
	}

	files, err := stringSlice("files", args["files"])
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errf("files must contain at least one path")
	}
	fileSet := make(map[string]bool, len(files))
	for _, f := range files {
		fileSet[f] = true
	}

	rawFindings, err := objectSlice("findings", args["findings"])
	if err != nil {
		return nil, err
	}

	findings := make([]Finding, 0, len(rawFindings))
	for i, raw := range rawFindings {
		if !present(raw, "file", "severity", "description") {
			return nil, errf("Invalid finding at index %d: missing required fields", i)
		}

		fd := Finding{}
		if fd.File, err = str("file", raw["file"]); err != nil {
			return nil, err
		}
		if fd.Severity, err = str("severity", raw["severity"]); err != nil {
			return nil, err
		}
		if fd.Description, err = str("description", raw["description"]); err != nil {
			return nil, err
		}
		if fd.Dimension, err = optionalString(raw, "dimension"); err != nil {
			return nil, err
		}
		if fd.Suggestion, err = optionalString(raw, "suggestion"); err != nil {
			return nil, err
		}

		if !oneOf(fd.Severity, Severities) {
			return nil, enumErrf("severity", fd.Severity, Severities)
		}
		if fd.Dimension != "" && !oneOf(fd.Dimension, ReviewDimensions) {
			return nil, enumErrf("dimension", fd.Dimension, ReviewDimensions)
		}

		if v, ok := raw["line_start"]; ok && v != nil {
			start, err := integer(v)
			if err != nil {
				return nil, errf("Field line_start: %s", err.Error())
			}
			if start < 1 {
				return nil, errf("line_start must be at least 1")
			}
			fd.LineStart = &start
		}
		if v, ok := raw["line_end"]; ok && v != nil {
			end, err := integer(v)
			if err != nil {
				return nil, errf("Field line_end: %s", err.Error())
			}
			if fd.LineStart != nil && end < *fd.LineStart {
				return nil, errf("line_end cannot be less than line_start")
			}
			fd.LineEnd = &end
		}

		// Referential integrity: the finding must point at a file the
		// review actually covers.
		if !fileSet[fd.File] {
			return nil, errf("Finding references file %q which is not listed in files", fd.File)
		}

		findings = append(findings, fd)
	}

	df, err := validateDraftFields(args)
	if err != nil {
		return nil, err
	}

	doc := &ReviewDocument{
		ReviewID:    reviewID,
		Files:       files,
		Findings:    findings,
		DraftFields: df,
	}
	if doc.Summary, err = optionalString(args, "summary"); err != nil {
		return nil, err
	}

	return doc, nil
}
