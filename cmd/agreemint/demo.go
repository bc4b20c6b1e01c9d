// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/agreemint/internal/analyze"
	"github.com/pdiddy/agreemint/internal/report"
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

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Analyze a built-in sample contract and print the text report",
	RunE: func(cmd *cobra.Command, args []string) error {
		stderr := cmd.ErrOrStderr()
		rule := strings.Repeat("=", 50)
		fmt.Fprintln(stderr, "AgreeMint demo: analyzing sample contract")
		fmt.Fprintln(stderr, rule)

		result := analyze.Default().Analyze(sampleContract)
		out, err := report.Export(&result, report.FormatText)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)

		fmt.Fprintln(stderr, "\n"+rule)
		fmt.Fprintln(stderr, "Demo complete.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
