// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the agreemint CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the agreemint CLI.
var rootCmd = &cobra.Command{
	Use:   "agreemint",
	Short: "Contract analysis: parties, key terms, dates, and risks",
	Long: `agreemint analyzes plain-text contracts with a fixed set of pattern rules.
It extracts parties, key terms, and dates, flags risk categories, and renders
recommendations and a summary as JSON or a text report.

Use analyze or quick for one-off analysis, serve to run the HTTP API, and
records to inspect analyses stored by the API.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./agreemint.yaml or ~/.config/agreemint/agreemint.yaml)")
	rootCmd.PersistentFlags().String("rules", "", "YAML rule table replacing the built-in rules")
	viper.BindPFlag("analysis.rules_file", rootCmd.PersistentFlags().Lookup("rules"))
}

func initConfig() {
	// A missing .env is fine; only values present there are exported.
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("agreemint")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "agreemint"))
		}
	}

	configure(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
