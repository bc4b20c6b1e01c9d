// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/agreemint/pkg/types"
)

func TestDefaultTableValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultAdviceCoversEveryKnownType(t *testing.T) {
	tbl := Default()
	for _, rt := range types.KnownRiskTypes() {
		assert.NotEmpty(t, tbl.Advice[rt], "advice for %s", rt)
	}
	for _, r := range tbl.Risks {
		assert.NotEmpty(t, tbl.Advice[r.Type], "advice for rule %s", r.ID)
	}
}

func TestDefaultRiskOrder(t *testing.T) {
	var got []types.RiskType
	for _, r := range Default().Risks {
		got = append(got, r.Type)
	}
	assert.Equal(t, types.KnownRiskTypes(), got)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Table)
		errMsg string
	}{
		{
			name:   "missing advice for known type",
			mutate: func(tb *Table) { delete(tb.Advice, types.RiskCommitment) },
			errMsg: `no advice for type "Commitment Risk"`,
		},
		{
			name: "custom type without advice",
			mutate: func(tb *Table) {
				tb.Risks = append(tb.Risks, RiskRule{ID: "indemnity", Pattern: "indemnif", Type: "Indemnity Risk"})
			},
			errMsg: `risk rule "indemnity": no advice for type "Indemnity Risk"`,
		},
		{
			name:   "duplicate rule id",
			mutate: func(tb *Table) { tb.Risks[1].ID = tb.Risks[0].ID },
			errMsg: `risk rule "penalty": duplicate id`,
		},
		{
			name:   "empty rule id",
			mutate: func(tb *Table) { tb.Risks[2].ID = "" },
			errMsg: "risk rule 2: empty id",
		},
		{
			name:   "bad risk pattern",
			mutate: func(tb *Table) { tb.Risks[0].Pattern = "penalty(" },
			errMsg: `risk rule "penalty"`,
		},
		{
			name:   "bad party pattern",
			mutate: func(tb *Table) { tb.Parties[1] = "[" },
			errMsg: "party pattern 1",
		},
		{
			name:   "bad date pattern",
			mutate: func(tb *Table) { tb.Dates[0] = "(?<x>" },
			errMsg: "date pattern 0",
		},
		{
			name:   "unnamed term",
			mutate: func(tb *Table) { tb.Terms[0].Name = "" },
			errMsg: "term rule 0: empty name",
		},
		{
			name:   "no risk advice",
			mutate: func(tb *Table) { tb.NoRiskAdvice = "" },
			errMsg: "no_risk_advice is empty",
		},
		{
			name:   "wrong version",
			mutate: func(tb *Table) { tb.Version = 7 },
			errMsg: "unsupported rule table version 7",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := Default()
			tt.mutate(&tbl)
			err := tbl.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCompileCaseInsensitivity(t *testing.T) {
	c := MustDefault()

	require.Len(t, c.Risks, 4)
	assert.True(t, c.Risks[0].Re.MatchString("PENALTY"))
	assert.True(t, c.Terms[0].Re.MatchString("PAYMENT OF $10"))

	// Month names stay case-sensitive.
	assert.True(t, c.Dates[0].MatchString("January 1, 2024"))
	assert.False(t, c.Dates[0].MatchString("january 1, 2024"))
}

func TestCompileDefaultsSeverityWithoutMutatingTable(t *testing.T) {
	tbl := Default()
	tbl.Risks[0].Severity = ""

	c, err := tbl.Compile()
	require.NoError(t, err)
	assert.Equal(t, types.SeverityMedium, c.Risks[0].Severity)
	assert.Equal(t, types.Severity(""), tbl.Risks[0].Severity)
}

func TestWriteAndLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, WriteFile(path, Default()))

	got, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestParseAppliesDefaults(t *testing.T) {
	data := []byte(`
risks:
  - id: indemnity
    pattern: indemnif(y|ication)
    type: Indemnity Risk
    description: Broad indemnification obligations present
advice:
  Indemnity Risk: Narrow indemnities to third-party claims.
  Financial Risk: a
  Liability Risk: b
  Commitment Risk: c
  Restrictive Terms: d
no_risk_advice: Nothing to flag.
`)
	tbl, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, tbl.Version)
	require.Len(t, tbl.Risks, 1)
	assert.Equal(t, types.SeverityMedium, tbl.Risks[0].Severity)
	assert.Empty(t, tbl.Parties)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading rule file")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("risks: [unterminated"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing rule file")
}
