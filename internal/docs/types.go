// Package docs defines the five structured drafting document kinds
// and their validators.
//
// Each validator takes the untyped argument map from a tool call and
// either returns a fully-typed, cross-checked document or a
// *ValidationError carrying a human-readable reason. Validation fails
// fast: the first violated rule wins, there is no error aggregation.
package docs

import "fmt"

// --- Shared draft fields ---

// DraftFields is the versioning envelope carried by every document
// kind. IsCritique is tri-state: nil means the document is neither a
// critique nor a revision, and neither CritiqueFocus nor
// RevisionInstructions is required.
type DraftFields struct {
	DraftNumber          int    `json:"draft_number"`
	TotalDrafts          int    `json:"total_drafts"`
	NextStepNeeded       bool   `json:"next_step_needed"`
	IsFinalDraft         bool   `json:"is_final_draft,omitempty"`
	IsCritique           *bool  `json:"is_critique,omitempty"`
	CritiqueFocus        string `json:"critique_focus,omitempty"`
	RevisionInstructions string `json:"revision_instructions,omitempty"`
}

// --- Reasoning chain ---

// ReasoningDocument is one draft of a reasoning chain. It has no
// domain key: all drafts share a single history. StepToReview, when
// present, targets a step index for focused critique and files the
// document under a branch key.
type ReasoningDocument struct {
	ReasoningChain []string `json:"reasoning_chain"`
	StepToReview   *int     `json:"step_to_review,omitempty"`
	DraftFields
}

// ReasoningState is the session payload for the reasoning chain tool.
type ReasoningState struct {
	History         []ReasoningDocument            `json:"history"`
	Branches        map[string][]ReasoningDocument `json:"branches,omitempty"`
	ActiveCritiques []string                       `json:"active_critiques,omitempty"`
}

// BranchKey names the branch a step-focused critique is filed under.
func BranchKey(draftNumber, stepToReview int) string {
	return fmt.Sprintf("branch_%d_%d", draftNumber, stepToReview)
}

// --- API design ---

// Endpoint is one operation in an API design draft.
type Endpoint struct {
	Path         string `json:"path"`
	Method       string `json:"method"`
	Description  string `json:"description"`
	AuthRequired bool   `json:"auth_required,omitempty"`
}

// APIDesignDocument is one draft of an API design, keyed by APIID.
type APIDesignDocument struct {
	APIID     string     `json:"api_id"`
	APIName   string     `json:"api_name"`
	Endpoints []Endpoint `json:"endpoints"`
	AuthType  string     `json:"auth_type,omitempty"`
	DraftFields
}

// APIDesignState is the session payload for the api_design tool.
type APIDesignState struct {
	History         []APIDesignDocument `json:"history"`
	ActiveCritiques []string            `json:"active_critiques,omitempty"`
}

// --- Architecture decision ---

// Alternative is one option considered in an architecture decision.
type Alternative struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TradeOffs   string `json:"trade_offs,omitempty"`
}

// DecisionDocument is one draft of an architecture decision record,
// keyed by ID. SelectedOption, when present, must name one of the
// Alternatives.
type DecisionDocument struct {
	ID             string        `json:"id"`
	Decision       string        `json:"decision"`
	Context        string        `json:"context"`
	Alternatives   []Alternative `json:"alternatives"`
	SelectedOption string        `json:"selected_option,omitempty"`
	ImpactLevel    string        `json:"impact_level,omitempty"`
	Stakeholders   []string      `json:"stakeholders,omitempty"`
	DraftFields
}

// DecisionState is the session payload for the architecture_decision tool.
type DecisionState struct {
	History         []DecisionDocument `json:"history"`
	ActiveCritiques []string           `json:"active_critiques,omitempty"`
}

// --- Code review ---

// Finding is one issue raised in a code review draft. File must match
// a path in the document's Files list. Line numbers are 1-based; a
// LineEnd below LineStart is rejected.
type Finding struct {
	File        string `json:"file"`
	Severity    string `json:"severity"`
	Dimension   string `json:"dimension,omitempty"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion,omitempty"`
	LineStart   *int   `json:"line_start,omitempty"`
	LineEnd     *int   `json:"line_end,omitempty"`
}

// ReviewDocument is one draft of a code review, keyed by ReviewID.
type ReviewDocument struct {
	ReviewID string    `json:"review_id"`
	Files    []string  `json:"files"`
	Findings []Finding `json:"findings"`
	Summary  string    `json:"summary,omitempty"`
	DraftFields
}

// ReviewState is the session payload for the code_review tool.
type ReviewState struct {
	History         []ReviewDocument `json:"history"`
	ActiveCritiques []string         `json:"active_critiques,omitempty"`
}

// --- Implementation strategy ---

// Approach is one candidate implementation approach.
type Approach struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Pros        []string `json:"pros,omitempty"`
	Cons        []string `json:"cons,omitempty"`
}

// Phase is one execution phase of a strategy.
type Phase struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tasks       []string `json:"tasks,omitempty"`
}

// Risk is one identified risk with optional mitigation.
type Risk struct {
	Description string `json:"description"`
	Mitigation  string `json:"mitigation,omitempty"`
	Severity    string `json:"severity,omitempty"`
}

// Dependency is one external or internal dependency of a strategy.
type Dependency struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

// StrategyDocument is one draft of an implementation strategy, keyed
// by StrategyID. SelectedApproach, when present, must name one of the
// Approaches.
type StrategyDocument struct {
	StrategyID       string       `json:"strategy_id"`
	Objective        string       `json:"objective"`
	Approaches       []Approach   `json:"implementation_approaches"`
	SelectedApproach string       `json:"selected_approach,omitempty"`
	Phases           []Phase      `json:"phases,omitempty"`
	Risks            []Risk       `json:"risks,omitempty"`
	Dependencies     []Dependency `json:"dependencies,omitempty"`
	DraftFields
}

// StrategyState is the session payload for the implementation_strategy tool.
type StrategyState struct {
	History         []StrategyDocument `json:"history"`
	ActiveCritiques []string           `json:"active_critiques,omitempty"`
}

// --- Allowed enum sets ---

// HTTPMethods are the methods an endpoint may declare.
var HTTPMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// AuthTypes are the authentication schemes an API design may declare.
var AuthTypes = []string{"none", "api_key", "basic", "bearer", "oauth2"}

// ImpactLevels are the allowed impact levels for a decision.
var ImpactLevels = []string{"low", "medium", "high"}

// Severities are the allowed severities for findings and risks.
var Severities = []string{"critical", "major", "minor", "info"}

// ReviewDimensions are the allowed review dimensions for a finding.
var ReviewDimensions = []string{"correctness", "performance", "security", "maintainability", "testability", "style"}

// DependencyCategories are the allowed categories for a strategy dependency.
var DependencyCategories = []string{"technical", "resource", "timeline", "external"}
