// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analyze

import (
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agreemint/internal/rules"
	"github.com/pdiddy/agreemint/pkg/types"
)

const sampleContract = `
    CONTRACT AGREEMENT

    This agreement is between Acme Corporation and Beta Services LLC, effective January 1, 2024.

    Terms of service: 12 months with automatic renewal.
    Payment of $50,000 due within 30 days.

    Confidentiality: Both parties agree to maintain strict confidentiality of all shared information.

    Penalties: Late payment will result in a penalty of 5% per month.

    Personal guarantee required from company officers.

    Termination: Either party may terminate with 30 days notice.
    `

func TestAnalyzeSampleContract(t *testing.T) {
	got := Default().Analyze(sampleContract)

	assert.Equal(t, types.StatusAnalyzed, got.Status)
	assert.Equal(t, []string{"Acme Corporation", "Beta Services LLC"}, got.Parties)
	assert.Equal(t, []string{
		"Payment of $50,000",
		"Termination: Either party may terminate with 30 days notice.",
		"Confidentiality: Both parties agree to maintain strict confidentiality of all shared information.",
	}, got.KeyTerms)
	assert.Equal(t, []string{"January 1, 2024"}, got.ImportantDates)
	assert.Equal(t, []types.RiskFinding{
		{Type: types.RiskFinancial, Description: "Contract contains penalty or fine clauses", Severity: types.SeverityMedium},
		{Type: types.RiskLiability, Description: "Unlimited liability or personal guarantee terms found", Severity: types.SeverityMedium},
		{Type: types.RiskCommitment, Description: "Automatic renewal clauses may extend commitment unexpectedly", Severity: types.SeverityMedium},
		{Type: types.RiskRestrictive, Description: "Non-compete or confidentiality restrictions present", Severity: types.SeverityMedium},
	}, got.IdentifiedRisks)
	assert.Equal(t, []string{
		"Found 4 potential risk areas requiring attention.",
		"Review penalty clauses and consider negotiating caps on financial liability.",
		"Consider limiting liability to specific amounts or circumstances.",
		"Review renewal terms and ensure clear termination procedures.",
		"Evaluate non-compete and confidentiality terms for reasonableness.",
	}, got.Recommendations)
	assert.Equal(t, utf8.RuneCountInString(sampleContract), got.ContractLength)
	assert.Equal(t, "Contract analysis complete. Identified 2 parties, 3 key terms, and 4 potential risks. "+
		"Contract has multiple risk areas that should be carefully reviewed.", got.AnalysisSummary)
}

func TestAnalyzeEmpty(t *testing.T) {
	got := Default().Analyze("")

	assert.Equal(t, types.StatusAnalyzed, got.Status)
	assert.NotNil(t, got.Parties)
	assert.Empty(t, got.Parties)
	assert.NotNil(t, got.KeyTerms)
	assert.Empty(t, got.KeyTerms)
	assert.NotNil(t, got.ImportantDates)
	assert.Empty(t, got.ImportantDates)
	assert.NotNil(t, got.IdentifiedRisks)
	assert.Empty(t, got.IdentifiedRisks)
	assert.Equal(t, 0, got.ContractLength)
	assert.Equal(t, []string{"No major risks identified. Review contract for completeness."}, got.Recommendations)
	assert.True(t, strings.HasSuffix(got.AnalysisSummary, qualifierMinimal))
}

func TestAnalyzeAllRiskTypes(t *testing.T) {
	text := "Late fees carry a penalty of 5% per month. Personal guarantee required. " +
		"The term continues by automatic renewal. Confidentiality: keep it quiet."

	got := Default().Analyze(text)

	require.Len(t, got.IdentifiedRisks, 4)
	wantTypes := []types.RiskType{types.RiskFinancial, types.RiskLiability, types.RiskCommitment, types.RiskRestrictive}
	for i, r := range got.IdentifiedRisks {
		assert.Equal(t, wantTypes[i], r.Type)
		assert.Equal(t, types.SeverityMedium, r.Severity)
	}
	assert.True(t, strings.HasSuffix(got.AnalysisSummary, qualifierMultiple))
}

func TestAnalyzeInvariants(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"\x00\xff not utf-8 \xfe",
		sampleContract,
		strings.Repeat(sampleContract, 20),
		strings.Repeat("between Alpha Corp and Beta Corp. ", 50),
		strings.Repeat("01/02/2024 2024-03-04 May 5, 2025 ", 10),
		"Ünïcödé contract between Ärger Gmbh and Öl Company; penalty applies.",
	}

	a := Default()
	for _, in := range inputs {
		got := a.Analyze(in)
		assert.Equal(t, utf8.RuneCountInString(in), got.ContractLength)
		assert.LessOrEqual(t, len(got.Parties), MaxParties)
		assert.LessOrEqual(t, len(got.KeyTerms), MaxKeyTerms)
		assert.LessOrEqual(t, len(got.ImportantDates), MaxDates)
		assert.LessOrEqual(t, len(got.IdentifiedRisks), len(rules.Default().Risks))
		assert.GreaterOrEqual(t, len(got.Recommendations), 1)
		assert.Equal(t, got, a.Analyze(in), "analysis is deterministic")
	}
}

func TestAnalyzeConcurrentCallers(t *testing.T) {
	a := Default()
	want := a.Analyze(sampleContract)

	var wg sync.WaitGroup
	results := make([]types.AnalysisResult, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.Analyze(sampleContract)
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, want, r)
	}
}

func TestAnalyzeWithCustomRules(t *testing.T) {
	tbl := rules.Default()
	tbl.Risks = append(tbl.Risks, rules.RiskRule{
		ID:          "indemnity",
		Pattern:     `indemnif(?:y|ication)`,
		Type:        "Indemnity Risk",
		Description: "Broad indemnification obligations present",
		Severity:    types.SeverityHigh,
	})
	tbl.Advice["Indemnity Risk"] = "Limit indemnities to third-party claims."
	c, err := tbl.Compile()
	require.NoError(t, err)

	got := New(c).Analyze("Supplier shall indemnify Customer.")

	require.Len(t, got.IdentifiedRisks, 1)
	assert.Equal(t, types.RiskType("Indemnity Risk"), got.IdentifiedRisks[0].Type)
	assert.Equal(t, types.SeverityHigh, got.IdentifiedRisks[0].Severity)
	assert.Equal(t, []string{
		"Found 1 potential risk areas requiring attention.",
		"Limit indemnities to third-party claims.",
	}, got.Recommendations)
}
