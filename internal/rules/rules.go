// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rules holds the pattern tables that drive contract analysis:
// party-naming patterns, clause patterns, calendar-date patterns, and the
// risk indicator rules together with the advice issued for each risk type.
// Tables are plain data so new rules can be shipped as YAML files.
package rules

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/agreemint/pkg/types"
)

// CurrentVersion is the rule table format version understood by Compile.
const CurrentVersion = 1

// TermRule is a named clause pattern whose full match becomes a key term.
type TermRule struct {
	Name    string `json:"name" yaml:"name"`
	Pattern string `json:"pattern" yaml:"pattern"`
}

// RiskRule flags a risk when its pattern is present anywhere in the text.
type RiskRule struct {
	// ID names the rule; unique within a table.
	ID string `json:"id" yaml:"id"`

	// Pattern is matched case-insensitively.
	Pattern string `json:"pattern" yaml:"pattern"`

	Type        types.RiskType `json:"type" yaml:"type"`
	Description string         `json:"description" yaml:"description"`

	// Severity defaults to medium when empty.
	Severity types.Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// Table is a complete, versioned set of analysis rules.
type Table struct {
	Version int `json:"version" yaml:"version"`

	// Parties are matched case-insensitively; every capture group is a candidate name.
	Parties []string `json:"parties" yaml:"parties"`

	// Terms are matched case-insensitively in list order.
	Terms []TermRule `json:"terms" yaml:"terms"`

	// Dates are matched literally (month names are case-sensitive).
	Dates []string `json:"dates" yaml:"dates"`

	// Risks are evaluated in list order.
	Risks []RiskRule `json:"risks" yaml:"risks"`

	// Advice maps each risk type to the recommendation issued for it.
	Advice map[types.RiskType]string `json:"advice" yaml:"advice"`

	// NoRiskAdvice is the sole recommendation when no risk is found.
	NoRiskAdvice string `json:"no_risk_advice" yaml:"no_risk_advice"`
}

// Default returns the built-in rule table.
func Default() Table {
	return Table{
		Version: CurrentVersion,
		Parties: []string{
			// "between Acme Corporation and Beta Services LLC, effective ..."
			// The second name ends at any non-letter, the end of text, or a
			// word that starts the rest of the sentence.
			`between\s+([A-Z][a-zA-Z\s]+?)\s+and\s+([A-Z][a-zA-Z \t]+?)` +
				`(?:[ \t]*(?:[^a-zA-Z \t]|$)|[ \t]+(?:effective|dated|for|to|on|hereinafter|as|with|under|regarding)\b)`,
			`Party\s+1[:\s]+([A-Z][a-zA-Z\s]+?)(?:\n|,|\.|;)`,
			`Party\s+2[:\s]+([A-Z][a-zA-Z\s]+?)(?:\n|,|\.|;)`,
		},
		Terms: []TermRule{
			{Name: "payment", Pattern: `payments?\s+of\s+\$?([0-9,]+(?:\.[0-9]{2})?)`},
			{Name: "term", Pattern: `terms?\s+of\s+([0-9]+\s+(?:days?|months?|years?))`},
			{Name: "effective_date", Pattern: `effective\s+date[:\s]+([A-Za-z0-9\s,]+)`},
			{Name: "termination", Pattern: `termination[:\s]+([^.]+\.)`},
			{Name: "confidentiality", Pattern: `confidentiality[:\s]+([^.]+\.)`},
		},
		Dates: []string{
			`\b(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4}\b`,
			`\b\d{1,2}[/-]\d{1,2}[/-]\d{4}\b`,
			`\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`,
		},
		Risks: []RiskRule{
			{
				ID:          "penalty",
				Pattern:     `penalty|penalties|fines?|forfeit`,
				Type:        types.RiskFinancial,
				Description: "Contract contains penalty or fine clauses",
				Severity:    types.SeverityMedium,
			},
			{
				ID:          "unlimited-liability",
				Pattern:     `unlimited\s+liability|personal\s+guarantee`,
				Type:        types.RiskLiability,
				Description: "Unlimited liability or personal guarantee terms found",
				Severity:    types.SeverityMedium,
			},
			{
				ID:          "automatic-renewal",
				Pattern:     `automatic\s+renewal|auto[- ]renew`,
				Type:        types.RiskCommitment,
				Description: "Automatic renewal clauses may extend commitment unexpectedly",
				Severity:    types.SeverityMedium,
			},
			{
				ID:          "restrictive-covenant",
				Pattern:     `non[- ]compete|non[- ]disclosure|confidentiality`,
				Type:        types.RiskRestrictive,
				Description: "Non-compete or confidentiality restrictions present",
				Severity:    types.SeverityMedium,
			},
		},
		Advice: map[types.RiskType]string{
			types.RiskFinancial:   "Review penalty clauses and consider negotiating caps on financial liability.",
			types.RiskLiability:   "Consider limiting liability to specific amounts or circumstances.",
			types.RiskCommitment:  "Review renewal terms and ensure clear termination procedures.",
			types.RiskRestrictive: "Evaluate non-compete and confidentiality terms for reasonableness.",
		},
		NoRiskAdvice: "No major risks identified. Review contract for completeness.",
	}
}

// applyDefaults fills fields a rule file may leave empty.
func (t *Table) applyDefaults() {
	if t.Version == 0 {
		t.Version = CurrentVersion
	}
	for i := range t.Risks {
		if t.Risks[i].Severity == "" {
			t.Risks[i].Severity = types.SeverityMedium
		}
	}
}

// Validate checks that every pattern compiles and that every risk type a
// rule can emit, and every known risk type, has advice.
func (t Table) Validate() error {
	if t.Version != CurrentVersion {
		return fmt.Errorf("unsupported rule table version %d (want %d)", t.Version, CurrentVersion)
	}
	if t.NoRiskAdvice == "" {
		return fmt.Errorf("no_risk_advice is empty")
	}

	for i, p := range t.Parties {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("party pattern %d: %w", i, err)
		}
	}
	for i, tr := range t.Terms {
		if tr.Name == "" {
			return fmt.Errorf("term rule %d: empty name", i)
		}
		if _, err := regexp.Compile(tr.Pattern); err != nil {
			return fmt.Errorf("term rule %q: %w", tr.Name, err)
		}
	}
	for i, p := range t.Dates {
		if _, err := regexp.Compile(p); err != nil {
			return fmt.Errorf("date pattern %d: %w", i, err)
		}
	}

	seen := make(map[string]bool, len(t.Risks))
	for i, r := range t.Risks {
		if r.ID == "" {
			return fmt.Errorf("risk rule %d: empty id", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("risk rule %q: duplicate id", r.ID)
		}
		seen[r.ID] = true
		if r.Type == "" {
			return fmt.Errorf("risk rule %q: empty type", r.ID)
		}
		if _, err := regexp.Compile(r.Pattern); err != nil {
			return fmt.Errorf("risk rule %q: %w", r.ID, err)
		}
		if t.Advice[r.Type] == "" {
			return fmt.Errorf("risk rule %q: no advice for type %q", r.ID, r.Type)
		}
	}

	for _, rt := range types.KnownRiskTypes() {
		if t.Advice[rt] == "" {
			return fmt.Errorf("no advice for risk type %q", rt)
		}
	}
	return nil
}
