package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile loads and parses an instruction file from the given path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instruction file %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Document.
func Parse(data []byte) (*Document, error) {
	var doc Document

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("failed to parse instruction YAML: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = "1"
	}

	if doc.Entry == "" {
		doc.Entry = EntryObject
	}
}

// Marshal serializes a Document to YAML.
func Marshal(doc *Document) ([]byte, error) {
	return yaml.Marshal(doc)
}

// WriteFile writes a Document to the given path.
func WriteFile(doc *Document, path string) error {
	data, err := Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal instructions: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write instruction file %s: %w", path, err)
	}

	return nil
}
