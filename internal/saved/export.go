// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saved

import (
	"encoding/json"
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes the saved list to path as YAML (R3.1).
func (s *Store) ExportYAML(path string) error {
	data, err := yaml.Marshal(s.books)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the saved list to path as indented JSON (R3.2).
func (s *Store) ExportJSON(path string) error {
	data, err := json.MarshalIndent(s.books, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
