package docs

import "strings"

// apiDesignRequired is the presence check for an API design draft.
var apiDesignRequired = []string{"api_id", "api_name", "endpoints", "draft_number", "total_drafts", "next_step_needed"}

// ValidateAPIDesign checks an untyped input against the API design
// schema and returns the typed document. Beyond scalar and enum
// checks, it enforces document-level integrity: every endpoint path
// is rooted and no (method, path) pair appears twice.
func ValidateAPIDesign(args map[string]any) (*APIDesignDocument, error) {
	if !present(args, apiDesignRequired...) {
		return nil, errf("Invalid API design data: missing required fields")
	}

	apiID, err := str("api_id", args["api_id"])
	if err != nil {
		return nil, err
	}
	apiName, err := str("api_name", args["api_name"])
	if err != nil {
		return nil, err
	}

	rawEndpoints, err := objectSlice("endpoints", args["endpoints"])
	if err != nil {
		return nil, err
	}

	endpoints := make([]Endpoint, 0, len(rawEndpoints))
	seen := make(map[string]bool, len(rawEndpoints))
	for i, raw := range rawEndpoints {
		if !present(raw, "path", "method", "description") {
			return nil, errf("Invalid endpoint at index %d: missing required fields", i)
		}

		ep := Endpoint{}
		if ep.Path, err = str("path", raw["path"]); err != nil {
			return nil, err
		}
		if ep.Method, err = str("method", raw["method"]); err != nil {
			return nil, err
		}
		if ep.Description, err = str("description", raw["description"]); err != nil {
			return nil, err
		}
		ep.Method = strings.ToUpper(ep.Method)
		ep.AuthRequired = truthy(raw["auth_required"])

		if !oneOf(ep.Method, HTTPMethods) {
			return nil, enumErrf("method", ep.Method, HTTPMethods)
		}
		if !strings.HasPrefix(ep.Path, "/") {
			return nil, errf("Endpoint path %q must start with \"/\"", ep.Path)
		}

		pair := ep.Method + " " + ep.Path
		if seen[pair] {
			return nil, errf("Duplicate endpoint %s", pair)
		}
		seen[pair] = true

		endpoints = append(endpoints, ep)
	}

	df, err := validateDraftFields(args)
	if err != nil {
		return nil, err
	}

	doc := &APIDesignDocument{
		APIID:       apiID,
		APIName:     apiName,
		Endpoints:   endpoints,
		DraftFields: df,
	}

	if doc.AuthType, err = optionalString(args, "auth_type"); err != nil {
		return nil, err
	}
	if doc.AuthType != "" && !oneOf(doc.AuthType, AuthTypes) {
		return nil, enumErrf("auth_type", doc.AuthType, AuthTypes)
	}

	return doc, nil
}
