package docs

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValidationError is the fault every validator raises: malformed,
// missing, out-of-range, or inconsistent input. Always
// caller-correctable — tool handlers surface it as an invalid-params
// style tool error rather than an internal failure.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// errf builds a ValidationError with a formatted reason.
func errf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// enumErrf builds the uniform "must be one of" fault for enum checks.
func enumErrf(field string, got any, allowed []string) *ValidationError {
	return errf("Invalid %s %q: must be one of: %s", field, fmt.Sprint(got), strings.Join(allowed, ", "))
}

// --- Scalar coercion ---
//
// Inputs arrive as untyped JSON values. Scalars are coerced rather
// than type-asserted: numbers accept numeric strings, booleans follow
// truthiness, strings absorb numeric and boolean values. NaN and
// infinities are rejected everywhere.

// Number coerces v to a float64. Accepted inputs: JSON numbers,
// integers, json.Number, numeric strings, and booleans (1/0).
func Number(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, errf("Value %v is not a finite number", n)
		}
		return n, nil
	case float32:
		return Number(float64(n))
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case json.Number:
		return Number(string(n))
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, errf("Value %q is not a number", n)
		}
		return Number(f)
	case bool:
		if n {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, errf("Value %v is not a number", v)
	}
}

// integer coerces v through Number and truncates to int.
func integer(v any) (int, error) {
	f, err := Number(v)
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

// truthy coerces v to a boolean: nil, false, zero, NaN, and the
// empty string are false; everything else is true.
func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case float64:
		return b != 0 && !math.IsNaN(b)
	case int:
		return b != 0
	case int64:
		return b != 0
	case string:
		return b != ""
	default:
		return true
	}
}

// str coerces v to a string. Scalars are absorbed; arrays and
// objects are rejected.
func str(field string, v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case bool:
		return strconv.FormatBool(s), nil
	case json.Number:
		return s.String(), nil
	default:
		return "", errf("Field %s must be a string", field)
	}
}

// stringSlice coerces v to a slice of strings, element by element.
func stringSlice(field string, v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errf("Field %s must be an array of strings", field)
	}
	out := make([]string, 0, len(items))
	for i, item := range items {
		s, err := str(fmt.Sprintf("%s[%d]", field, i), item)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// objectSlice coerces v to a slice of object maps.
func objectSlice(field string, v any) ([]map[string]any, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, errf("Field %s must be an array of objects", field)
	}
	out := make([]map[string]any, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errf("Field %s[%d] must be an object", field, i)
		}
		out = append(out, obj)
	}
	return out, nil
}

// present reports whether every named field exists (and is non-nil)
// in args. Used for the presence phase: the first missing field fails
// the check as a whole.
func present(args map[string]any, fields ...string) bool {
	for _, f := range fields {
		if v, ok := args[f]; !ok || v == nil {
			return false
		}
	}
	return true
}

// oneOf reports whether got is a member of allowed.
func oneOf(got string, allowed []string) bool {
	for _, a := range allowed {
		if got == a {
			return true
		}
	}
	return false
}

// optionalString coerces args[field] when present, returning "" otherwise.
func optionalString(args map[string]any, field string) (string, error) {
	v, ok := args[field]
	if !ok || v == nil {
		return "", nil
	}
	return str(field, v)
}

// --- Shared draft-field validation ---

// validateDraftFields coerces and checks the versioning envelope
// shared by every document kind: numeric ranges, ordering, and the
// critique/revision pairing rules. Presence of draft_number,
// total_drafts, and next_step_needed is checked by each kind's
// validator beforehand as part of its required set.
func validateDraftFields(args map[string]any) (DraftFields, error) {
	var df DraftFields

	draftNumber, err := integer(args["draft_number"])
	if err != nil {
		return df, errf("Field draft_number: %s", err.Error())
	}
	totalDrafts, err := integer(args["total_drafts"])
	if err != nil {
		return df, errf("Field total_drafts: %s", err.Error())
	}

	if draftNumber < 1 {
		return df, errf("Draft number must be at least 1")
	}
	if totalDrafts < 1 {
		return df, errf("Total drafts must be at least 1")
	}
	if draftNumber > totalDrafts {
		return df, errf("Draft number cannot exceed total drafts")
	}

	df.DraftNumber = draftNumber
	df.TotalDrafts = totalDrafts
	df.NextStepNeeded = truthy(args["next_step_needed"])
	df.IsFinalDraft = truthy(args["is_final_draft"])

	if v, ok := args["is_critique"]; ok && v != nil {
		isCritique := truthy(v)
		df.IsCritique = &isCritique
	}

	if df.CritiqueFocus, err = optionalString(args, "critique_focus"); err != nil {
		return df, err
	}
	if df.RevisionInstructions, err = optionalString(args, "revision_instructions"); err != nil {
		return df, err
	}

	if df.IsCritique != nil {
		if *df.IsCritique && strings.TrimSpace(df.CritiqueFocus) == "" {
			return df, errf("critique_focus is required when is_critique is true")
		}
		if !*df.IsCritique && strings.TrimSpace(df.RevisionInstructions) == "" {
			return df, errf("revision_instructions is required when is_critique is false")
		}
	}

	return df, nil
}
