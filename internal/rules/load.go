// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rules

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// LoadFile reads a YAML rule table from path, fills defaults, and validates it.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading rule file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML rule table, fills defaults, and validates it.
func Parse(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing rule file: %w", err)
	}
	t.applyDefaults()
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// WriteFile saves t as YAML so the built-in rules can be used as a starting point.
func WriteFile(path string, t Table) error {
	data, err := yaml.Marshal(&t)
	if err != nil {
		return fmt.Errorf("marshaling rule table: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
