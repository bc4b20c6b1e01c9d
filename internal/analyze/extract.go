// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"
	"unicode/utf8"
)

// Parties returns up to MaxParties names matched by the party patterns.
// Candidates are every non-empty capture group longer than two characters
// after trimming, in pattern, then match, then group order. Duplicates are
// dropped by exact comparison; no case or whitespace folding is applied.
func (a *Analyzer) Parties(text string) []string {
	seen := make(map[string]bool)
	parties := make([]string, 0, MaxParties)

	for _, re := range a.rules.Parties {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			for _, group := range m[1:] {
				name := strings.TrimSpace(group)
				if utf8.RuneCountInString(name) <= minPartyLength || seen[name] {
					continue
				}
				seen[name] = true
				parties = append(parties, name)
				if len(parties) == MaxParties {
					return parties
				}
			}
		}
	}
	return parties
}

// KeyTerms returns up to MaxKeyTerms full clause matches in pattern order,
// then match order. Matches of 200 characters or more are discarded. The
// same span matched by two patterns is reported twice.
func (a *Analyzer) KeyTerms(text string) []string {
	terms := make([]string, 0)

	for _, tr := range a.rules.Terms {
		for _, m := range tr.Re.FindAllString(text, -1) {
			term := strings.TrimSpace(m)
			if term == "" || utf8.RuneCountInString(term) >= maxTermLength {
				continue
			}
			terms = append(terms, term)
			if len(terms) == MaxKeyTerms {
				return terms
			}
		}
	}
	return terms
}

// Dates returns up to MaxDates unique date strings. Duplicates are
// suppressed in first-seen order across the date patterns, so the subset
// returned when more than MaxDates unique dates exist is the first ones found.
func (a *Analyzer) Dates(text string) []string {
	seen := make(map[string]bool)
	dates := make([]string, 0)

	for _, re := range a.rules.Dates {
		for _, d := range re.FindAllString(text, -1) {
			if seen[d] {
				continue
			}
			seen[d] = true
			dates = append(dates, d)
			if len(dates) == MaxDates {
				return dates
			}
		}
	}
	return dates
}
