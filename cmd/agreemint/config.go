// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/agreemint/internal/analyze"
	"github.com/pdiddy/agreemint/internal/rules"
	"github.com/pdiddy/agreemint/pkg/types"
)

// configure registers defaults for every key and maps AGREEMINT_* environment
// variables onto them (store.data_dir reads AGREEMINT_STORE_DATA_DIR).
// Keys need a default for environment overrides to reach Unmarshal.
func configure(v *viper.Viper) {
	v.SetDefault("analysis.rules_file", "")
	v.SetDefault("store.data_dir", "data")
	v.SetDefault("upload.dir", "uploads")
	v.SetDefault("upload.max_bytes", types.DefaultMaxUploadBytes)
	v.SetDefault("server.addr", ":8000")
	v.SetDefault("server.cors_origins", []string{"*"})
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")

	v.SetEnvPrefix("AGREEMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// loadConfig decodes the merged flag, env, file, and default settings.
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding config: %w", err)
	}
	return cfg, nil
}

// newAnalyzer returns an Analyzer for the configured rule table, or the
// built-in rules when no rule file is set.
func newAnalyzer(cfg types.AnalysisConfig) (*analyze.Analyzer, error) {
	if cfg.RulesFile == "" {
		return analyze.Default(), nil
	}
	t, err := rules.LoadFile(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	c, err := t.Compile()
	if err != nil {
		return nil, err
	}
	return analyze.New(c), nil
}
