// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AnalysisConfig holds settings for the analysis pipeline.
type AnalysisConfig struct {
	// RulesFile is an optional YAML rule table replacing the built-in rules.
	RulesFile string `json:"rules_file,omitempty" yaml:"rules_file,omitempty" mapstructure:"rules_file"`
}

// StoreConfig holds settings for the analysis record store.
type StoreConfig struct {
	// DataDir is the directory holding agreemint.db and exports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir" mapstructure:"data_dir"`
}

// UploadConfig holds settings for accepting contract files.
type UploadConfig struct {
	// Dir is the directory where uploaded files are kept (default "uploads").
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxBytes is the largest accepted file size (default 10 MiB).
	MaxBytes int64 `json:"max_bytes" yaml:"max_bytes" mapstructure:"max_bytes"`
}

// DefaultMaxUploadBytes is the upload size limit used when none is configured.
const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

// ServerConfig holds settings for the HTTP API.
type ServerConfig struct {
	// Addr is the listen address (default ":8000").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// CORSOrigins lists allowed origins; "*" allows any.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" mapstructure:"cors_origins"`

	// ReadTimeout bounds reading a request including its body.
	ReadTimeout time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`

	// WriteTimeout bounds writing a response.
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`
}

// Config groups all component configurations.
type Config struct {
	Analysis AnalysisConfig `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Store    StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Upload   UploadConfig   `json:"upload" yaml:"upload" mapstructure:"upload"`
	Server   ServerConfig   `json:"server" yaml:"server" mapstructure:"server"`
}
