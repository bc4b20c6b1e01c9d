// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"fmt"

	"github.com/pdiddy/agreemint/pkg/types"
)

// Risks tests each risk rule for presence in text and emits one finding per
// matching rule, in rule order. Repeated matches of a rule do not add findings.
func (a *Analyzer) Risks(text string) []types.RiskFinding {
	risks := make([]types.RiskFinding, 0, len(a.rules.Risks))
	for _, r := range a.rules.Risks {
		if !r.Re.MatchString(text) {
			continue
		}
		risks = append(risks, types.RiskFinding{
			Type:        r.Type,
			Description: r.Description,
			Severity:    r.Severity,
		})
	}
	return risks
}

// Recommend maps risks to advisories. With no risks it returns the single
// no-risk advisory; otherwise a lead sentence counting the risks followed by
// the advice for each finding's type. Types without advice are counted in
// the lead sentence but contribute no advisory.
func (a *Analyzer) Recommend(risks []types.RiskFinding) []string {
	if len(risks) == 0 {
		return []string{a.rules.NoRiskAdvice}
	}

	recs := make([]string, 0, len(risks)+1)
	recs = append(recs, fmt.Sprintf("Found %d potential risk areas requiring attention.", len(risks)))
	for _, r := range risks {
		if advice, ok := a.rules.Advice[r.Type]; ok {
			recs = append(recs, advice)
		}
	}
	return recs
}

// Risk-level qualifiers appended to the summary sentence.
const (
	qualifierMinimal    = "Contract appears to have standard terms with minimal risk indicators."
	qualifierManageable = "Contract has some areas requiring attention but appears manageable."
	qualifierMultiple   = "Contract has multiple risk areas that should be carefully reviewed."
)

// Summarize reports the party, term, and risk counts followed by a
// qualifier: none for zero risks, manageable for one or two, multiple beyond.
func Summarize(parties, terms []string, risks []types.RiskFinding) string {
	qualifier := qualifierMultiple
	switch n := len(risks); {
	case n == 0:
		qualifier = qualifierMinimal
	case n <= 2:
		qualifier = qualifierManageable
	}

	return fmt.Sprintf("Contract analysis complete. Identified %d parties, %d key terms, and %d potential risks. %s",
		len(parties), len(terms), len(risks), qualifier)
}
