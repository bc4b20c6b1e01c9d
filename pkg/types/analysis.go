// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the agreemint pipeline:
// the analysis result produced from contract text, the request records kept
// around an analysis, and the per-component configuration.
package types

// StatusAnalyzed is the status carried by every AnalysisResult.
const StatusAnalyzed = "analyzed"

// RiskType categorizes a risk finding. The set of known types is closed;
// every known type must have advice in the rule table.
type RiskType string

const (
	RiskFinancial   RiskType = "Financial Risk"
	RiskLiability   RiskType = "Liability Risk"
	RiskCommitment  RiskType = "Commitment Risk"
	RiskRestrictive RiskType = "Restrictive Terms"
)

// KnownRiskTypes returns the known risk types in rule-table order.
func KnownRiskTypes() []RiskType {
	return []RiskType{RiskFinancial, RiskLiability, RiskCommitment, RiskRestrictive}
}

// Severity is a classification label on a RiskFinding. The built-in rules
// only emit SeverityMedium; rule files may use the others.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// RiskFinding is emitted once per risk rule whose pattern is present in the text.
type RiskFinding struct {
	// Type is the risk category of the rule that matched.
	Type RiskType `json:"type" yaml:"type"`

	// Description is the rule's fixed description.
	Description string `json:"description" yaml:"description"`

	// Severity is the rule's severity label.
	Severity Severity `json:"severity" yaml:"severity"`
}

// AnalysisResult is the aggregate produced by one analysis of contract text.
// It is not mutated after it is returned.
type AnalysisResult struct {
	// Status is always StatusAnalyzed.
	Status string `json:"status" yaml:"status"`

	// Parties lists contracting entity names in first-seen order (at most 5).
	Parties []string `json:"parties" yaml:"parties"`

	// KeyTerms lists verbatim clause spans (at most 10).
	KeyTerms []string `json:"key_terms" yaml:"key_terms"`

	// ImportantDates lists unique date strings (at most 5).
	ImportantDates []string `json:"important_dates" yaml:"important_dates"`

	// IdentifiedRisks lists one finding per matching risk rule, in rule order.
	IdentifiedRisks []RiskFinding `json:"identified_risks" yaml:"identified_risks"`

	// Recommendations always holds at least one advisory.
	Recommendations []string `json:"recommendations" yaml:"recommendations"`

	// ContractLength is the length of the input text in characters.
	ContractLength int `json:"contract_length" yaml:"contract_length"`

	// AnalysisSummary is the one-sentence summary of counts and risk level.
	AnalysisSummary string `json:"analysis_summary" yaml:"analysis_summary"`
}
