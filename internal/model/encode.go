package model

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EncodeJSON writes report as indented JSON.
func EncodeJSON(w io.Writer, report Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report as json: %w", err)
	}

	return nil
}

// EncodeYAML writes report as a YAML document with two-space indentation.
func EncodeYAML(w io.Writer, report Report) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode report as yaml: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("failed to flush yaml report: %w", err)
	}

	return nil
}
