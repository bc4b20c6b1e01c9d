// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analyze extracts parties, key terms, dates, and risk indicators
// from plain contract text and assembles them into an AnalysisResult.
//
// Analysis is a pure function of the text and the compiled rule table: it
// performs no I/O and keeps no state between calls, so one Analyzer can
// serve concurrent callers. Callers own the returned result and pass it
// explicitly to the report package.
package analyze

import (
	"unicode/utf8"

	"github.com/pdiddy/agreemint/internal/rules"
	"github.com/pdiddy/agreemint/pkg/types"
)

// Output bounds.
const (
	MaxParties  = 5
	MaxKeyTerms = 10
	MaxDates    = 5

	// maxTermLength is exclusive: a key term must be shorter than this.
	maxTermLength = 200
	// minPartyLength is exclusive: a party name must be longer than this.
	minPartyLength = 2
)

// Analyzer runs the extraction stages over contract text.
type Analyzer struct {
	rules *rules.Compiled
}

// New returns an Analyzer driven by the compiled rule table c.
func New(c *rules.Compiled) *Analyzer {
	return &Analyzer{rules: c}
}

// Default returns an Analyzer using the built-in rule table.
func Default() *Analyzer {
	return New(rules.MustDefault())
}

// Analyze runs every stage over text and assembles the result. It never
// fails; empty or unmatched text yields empty lists.
func (a *Analyzer) Analyze(text string) types.AnalysisResult {
	parties := a.Parties(text)
	terms := a.KeyTerms(text)
	dates := a.Dates(text)
	risks := a.Risks(text)

	return types.AnalysisResult{
		Status:          types.StatusAnalyzed,
		Parties:         parties,
		KeyTerms:        terms,
		ImportantDates:  dates,
		IdentifiedRisks: risks,
		Recommendations: a.Recommend(risks),
		ContractLength:  utf8.RuneCountInString(text),
		AnalysisSummary: Summarize(parties, terms, risks),
	}
}
