package docs

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		name    string
		in      any
		want    float64
		wantErr bool
	}{
		{name: "float64", in: float64(3.5), want: 3.5},
		{name: "int", in: 7, want: 7},
		{name: "int64", in: int64(-2), want: -2},
		{name: "json number", in: json.Number("42"), want: 42},
		{name: "numeric string", in: "5", want: 5},
		{name: "padded numeric string", in: " 5 ", want: 5},
		{name: "true", in: true, want: 1},
		{name: "false", in: false, want: 0},
		{name: "word string", in: "five", wantErr: true},
		{name: "NaN", in: math.NaN(), wantErr: true},
		{name: "NaN string", in: "NaN", wantErr: true},
		{name: "positive infinity", in: math.Inf(1), wantErr: true},
		{name: "infinity string", in: "Inf", wantErr: true},
		{name: "array", in: []any{1}, wantErr: true},
		{name: "nil", in: nil, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Number(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Number(%v) = %v, want error", tc.in, got)
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("Number(%v) error type = %T, want *ValidationError", tc.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Number(%v) failed: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Number(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want bool
	}{
		{name: "nil", in: nil, want: false},
		{name: "false", in: false, want: false},
		{name: "true", in: true, want: true},
		{name: "zero", in: float64(0), want: false},
		{name: "nonzero", in: float64(0.5), want: true},
		{name: "NaN", in: math.NaN(), want: false},
		{name: "empty string", in: "", want: false},
		{name: "word false", in: "false", want: true}, // non-empty strings are truthy
		{name: "object", in: map[string]any{}, want: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truthy(tc.in); got != tc.want {
				t.Errorf("truthy(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStr_AbsorbsScalars(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{in: "x", want: "x"},
		{in: float64(3), want: "3"},
		{in: float64(3.5), want: "3.5"},
		{in: true, want: "true"},
		{in: json.Number("12"), want: "12"},
	}
	for _, tc := range cases {
		got, err := str("f", tc.in)
		if err != nil {
			t.Fatalf("str(%v) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("str(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStr_RejectsComposites(t *testing.T) {
	for _, in := range []any{[]any{"x"}, map[string]any{"k": "v"}, nil} {
		_, err := str("summary", in)
		if err == nil {
			t.Errorf("str(%v) succeeded, want error", in)
			continue
		}
		if err.Error() != "Field summary must be a string" {
			t.Errorf("str(%v) error = %q", in, err.Error())
		}
	}
}

// draftArgs returns a minimal valid versioning envelope.
func draftArgs() map[string]any {
	return map[string]any{
		"draft_number":     float64(1),
		"total_drafts":     float64(3),
		"next_step_needed": true,
	}
}

func TestValidateDraftFields_Ranges(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(map[string]any)
		wantErr string
	}{
		{
			name:    "draft number below one",
			mutate:  func(a map[string]any) { a["draft_number"] = float64(0) },
			wantErr: "Draft number must be at least 1",
		},
		{
			name:    "total drafts below one",
			mutate:  func(a map[string]any) { a["total_drafts"] = float64(0) },
			wantErr: "Total drafts must be at least 1",
		},
		{
			name:    "draft exceeds total",
			mutate:  func(a map[string]any) { a["draft_number"] = float64(5) },
			wantErr: "Draft number cannot exceed total drafts",
		},
		{
			name:    "non-numeric draft number",
			mutate:  func(a map[string]any) { a["draft_number"] = "two" },
			wantErr: `Field draft_number: Value "two" is not a number`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := draftArgs()
			tc.mutate(args)
			_, err := validateDraftFields(args)
			if err == nil {
				t.Fatal("validateDraftFields succeeded, want error")
			}
			if err.Error() != tc.wantErr {
				t.Errorf("error = %q, want %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestValidateDraftFields_Coercion(t *testing.T) {
	args := draftArgs()
	args["draft_number"] = "2"         // numeric string
	args["total_drafts"] = float64(3.9) // truncates to 3
	args["next_step_needed"] = "yes"    // truthy string
	args["is_final_draft"] = float64(0) // falsy number

	df, err := validateDraftFields(args)
	if err != nil {
		t.Fatalf("validateDraftFields failed: %v", err)
	}
	if df.DraftNumber != 2 || df.TotalDrafts != 3 {
		t.Errorf("numbers = %d/%d, want 2/3", df.DraftNumber, df.TotalDrafts)
	}
	if !df.NextStepNeeded {
		t.Error("NextStepNeeded = false, want true")
	}
	if df.IsFinalDraft {
		t.Error("IsFinalDraft = true, want false")
	}
	if df.IsCritique != nil {
		t.Errorf("IsCritique = %v, want nil when omitted", *df.IsCritique)
	}
}

func TestValidateDraftFields_CritiquePairing(t *testing.T) {
	t.Run("critique without focus", func(t *testing.T) {
		args := draftArgs()
		args["is_critique"] = true
		args["critique_focus"] = "   "
		_, err := validateDraftFields(args)
		if err == nil || err.Error() != "critique_focus is required when is_critique is true" {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("revision without instructions", func(t *testing.T) {
		args := draftArgs()
		args["is_critique"] = false
		_, err := validateDraftFields(args)
		if err == nil || err.Error() != "revision_instructions is required when is_critique is false" {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("critique with focus", func(t *testing.T) {
		args := draftArgs()
		args["is_critique"] = true
		args["critique_focus"] = "error handling"
		df, err := validateDraftFields(args)
		if err != nil {
			t.Fatalf("validateDraftFields failed: %v", err)
		}
		if df.IsCritique == nil || !*df.IsCritique {
			t.Error("IsCritique not set true")
		}
		if df.CritiqueFocus != "error handling" {
			t.Errorf("CritiqueFocus = %q", df.CritiqueFocus)
		}
	})

	t.Run("revision with instructions", func(t *testing.T) {
		args := draftArgs()
		args["is_critique"] = false
		args["revision_instructions"] = "tighten the error paths"
		df, err := validateDraftFields(args)
		if err != nil {
			t.Fatalf("validateDraftFields failed: %v", err)
		}
		if df.IsCritique == nil || *df.IsCritique {
			t.Error("IsCritique not set false")
		}
	})

	// Omitting is_critique skips the pairing rules entirely.
	t.Run("tri-state omitted", func(t *testing.T) {
		args := draftArgs()
		if _, err := validateDraftFields(args); err != nil {
			t.Fatalf("validateDraftFields failed: %v", err)
		}
	})
}

func TestEnumErrf_Message(t *testing.T) {
	err := enumErrf("severity", "fatal", Severities)
	want := "Invalid severity \"fatal\": must be one of: " + strings.Join(Severities, ", ")
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}
