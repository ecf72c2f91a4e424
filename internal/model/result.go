package model

// ConversionResult is the terminal artifact of one conversion request.
// The core never persists it; rendering and storage belong to the caller.
type ConversionResult struct {
	Authority  AuthorityReference   `json:"authority"`
	Statements []CandidateStatement `json:"statements"`

	// ExistingEntityID is set when reconciliation matched an entity in the
	// knowledge base that already carries this external identifier.
	ExistingEntityID string `json:"existing_entity_id,omitempty"`

	// Warnings collects every recovered problem: dropped literals,
	// duplicate cardinality-one values, unmapped fields, failed lookups.
	Warnings []string `json:"warnings,omitempty"`

	// Review is an optional LLM-generated note for the human reviewer.
	// It never influences the statement list.
	Review *ReviewNote `json:"review,omitempty"`
}

// ReviewNote is an optional, clearly separated LLM summary of the
// proposed statements.
type ReviewNote struct {
	Provider string   `json:"provider"`
	Model    string   `json:"model,omitempty"`
	Text     string   `json:"text"`
	Warnings []string `json:"warnings,omitempty"`
}
