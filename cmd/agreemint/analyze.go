// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/agreemint/internal/acquire"
	"github.com/pdiddy/agreemint/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <contract-file>",
	Short: "Analyze a contract file",
	Long: `Analyze reads a plain-text contract, runs the full analysis, and prints
the result as a text report (default) or JSON. Use -o to write the result
to a file instead of stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("output")

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cfg.Analysis)
	if err != nil {
		return err
	}

	text, err := acquire.ReadFile(args[0], cfg.Upload.MaxBytes)
	if err != nil {
		return fmt.Errorf("analyzing contract: %w", err)
	}
	if strings.TrimSpace(text) == "" {
		return acquire.ErrEmpty
	}

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, "Analyzing contract...")
	result := a.Analyze(text)

	out, err := report.Export(&result, format)
	if err != nil {
		return err
	}

	if outPath == "" || outPath == "-" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	fmt.Fprintf(stderr, "Analysis complete. Results written to %s\n", outPath)
	return nil
}

var quickCmd = &cobra.Command{
	Use:   "quick",
	Short: "Analyze contract text given on the command line",
	RunE:  runQuick,
}

func runQuick(cmd *cobra.Command, args []string) error {
	text, _ := cmd.Flags().GetString("text")
	if text == "" {
		return fmt.Errorf("no contract text provided (use --text)")
	}
	format, err := formatFlag(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	a, err := newAnalyzer(cfg.Analysis)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Running quick analysis...")
	result := a.Analyze(text)
	out, err := report.Export(&result, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

// formatFlag parses the --format flag.
func formatFlag(cmd *cobra.Command) (report.Format, error) {
	f, _ := cmd.Flags().GetString("format")
	return report.ParseFormat(f)
}

func init() {
	analyzeCmd.Flags().String("format", "text", "output format: json or text")
	analyzeCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	quickCmd.Flags().StringP("text", "t", "", "contract text to analyze")
	quickCmd.Flags().String("format", "text", "output format: json or text")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(quickCmd)
}
