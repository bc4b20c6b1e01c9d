// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the records matching opts to dataDir/export.yaml and
// returns the path written.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	recs, err := s.List(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.dataDir, "export.yaml")
	data, err := yaml.Marshal(recs)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the records matching opts to dataDir/export.json and
// returns the path written.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	recs, err := s.List(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	path := filepath.Join(s.dataDir, "export.json")
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}
