// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/agreemint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Work with analysis rule tables",
	Long: `Rules prints the built-in rule table or validates a custom one. A custom
table is selected with --rules or analysis.rules_file.`,
}

var rulesDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the built-in rule table as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("output")
		if outPath != "" {
			if err := rules.WriteFile(outPath, rules.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Rule table written to %s\n", outPath)
			return nil
		}
		t := rules.Default()
		data, err := yaml.Marshal(&t)
		if err != nil {
			return fmt.Errorf("marshaling rule table: %w", err)
		}
		_, err = io.WriteString(cmd.OutOrStdout(), string(data))
		return err
	},
}

var rulesCheckCmd = &cobra.Command{
	Use:   "check <rule-file>",
	Short: "Validate a YAML rule table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := rules.LoadFile(args[0])
		if err != nil {
			return err
		}
		if _, err := t.Compile(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d party, %d term, %d date, %d risk rules)\n",
			args[0], len(t.Parties), len(t.Terms), len(t.Dates), len(t.Risks))
		return nil
	},
}

func init() {
	rulesDumpCmd.Flags().StringP("output", "o", "", "write the table to a file instead of stdout")

	rulesCmd.AddCommand(rulesDumpCmd)
	rulesCmd.AddCommand(rulesCheckCmd)
	rootCmd.AddCommand(rulesCmd)
}
