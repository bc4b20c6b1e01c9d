// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders an AnalysisResult as pretty-printed JSON or as a
// sectioned plain-text report.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/agreemint/pkg/types"
)

// Format selects the rendering produced by Export.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// ErrInvalidFormat is returned for any format other than json or text.
var ErrInvalidFormat = errors.New("unsupported format: use json or text")

// NoResultsMessage is returned by Export when there is no result to render.
const NoResultsMessage = "No analysis results available. Run an analysis first."

// reportTitle heads the text report.
const reportTitle = "=== AgreeMint Contract Analysis Report ==="

// ParseFormat converts s to a Format, failing with ErrInvalidFormat.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatText:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Export renders result in the given format. The format is checked first,
// so an invalid format fails even without a result. A nil result renders
// as NoResultsMessage.
func Export(result *types.AnalysisResult, format Format) (string, error) {
	if _, err := ParseFormat(string(format)); err != nil {
		return "", err
	}
	if result == nil {
		return NoResultsMessage, nil
	}

	if format == FormatJSON {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshaling result: %w", err)
		}
		return string(data), nil
	}
	return Text(*result), nil
}

// Text renders the plain-text report. Sections whose list is empty are omitted.
func Text(r types.AnalysisResult) string {
	var b strings.Builder
	b.WriteString(reportTitle + "\n\n")
	fmt.Fprintf(&b, "Analysis Summary: %s\n\n", r.AnalysisSummary)

	if len(r.Parties) > 0 {
		b.WriteString("Identified Parties:\n")
		for i, p := range r.Parties {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, p)
		}
		b.WriteString("\n")
	}

	if len(r.KeyTerms) > 0 {
		b.WriteString("Key Terms:\n")
		for _, t := range r.KeyTerms {
			fmt.Fprintf(&b, "  - %s\n", t)
		}
		b.WriteString("\n")
	}

	if len(r.IdentifiedRisks) > 0 {
		b.WriteString("Identified Risks:\n")
		for _, risk := range r.IdentifiedRisks {
			fmt.Fprintf(&b, "  - %s: %s\n", risk.Type, risk.Description)
		}
		b.WriteString("\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("Recommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}
	}

	return b.String()
}
