// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"regexp"

	"github.com/pdiddy/agreemint/pkg/types"
)

// CompiledTerm is a TermRule with its pattern compiled.
type CompiledTerm struct {
	Name string
	Re   *regexp.Regexp
}

// CompiledRisk is a RiskRule with its pattern compiled.
type CompiledRisk struct {
	ID          string
	Re          *regexp.Regexp
	Type        types.RiskType
	Description string
	Severity    types.Severity
}

// Compiled is a validated Table ready for matching. It is read-only and
// safe for concurrent use.
type Compiled struct {
	Parties      []*regexp.Regexp
	Terms        []CompiledTerm
	Dates        []*regexp.Regexp
	Risks        []CompiledRisk
	Advice       map[types.RiskType]string
	NoRiskAdvice string
}

// Compile validates t and compiles its patterns. Party, term, and risk
// patterns are made case-insensitive; date patterns are used as written.
func (t Table) Compile() (*Compiled, error) {
	t.Risks = append([]RiskRule(nil), t.Risks...)
	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("validating rule table: %w", err)
	}

	c := &Compiled{
		Advice:       make(map[types.RiskType]string, len(t.Advice)),
		NoRiskAdvice: t.NoRiskAdvice,
	}
	for _, p := range t.Parties {
		c.Parties = append(c.Parties, regexp.MustCompile(`(?i)`+p))
	}
	for _, tr := range t.Terms {
		c.Terms = append(c.Terms, CompiledTerm{Name: tr.Name, Re: regexp.MustCompile(`(?i)` + tr.Pattern)})
	}
	for _, p := range t.Dates {
		c.Dates = append(c.Dates, regexp.MustCompile(p))
	}
	for _, r := range t.Risks {
		c.Risks = append(c.Risks, CompiledRisk{
			ID:          r.ID,
			Re:          regexp.MustCompile(`(?i)` + r.Pattern),
			Type:        r.Type,
			Description: r.Description,
			Severity:    r.Severity,
		})
	}
	for k, v := range t.Advice {
		c.Advice[k] = v
	}
	return c, nil
}

// MustDefault compiles the built-in table. It panics only if the built-in
// table is broken, which the package tests rule out.
func MustDefault() *Compiled {
	c, err := Default().Compile()
	if err != nil {
		panic(err)
	}
	return c
}
