package registry

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the registry file, expands variables, and decodes it.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry: %w", err)
	}
	reg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return reg, nil
}

// Parse decodes registry YAML. The document passes through the variable
// expansion before decoding, so all string fields carry resolved addresses.
func Parse(data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		// Empty document: the validator reports the missing sections.
		return &Registry{}, nil
	}

	ExpandVariables(&doc)

	var reg Registry
	if err := doc.Decode(&reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Save writes the full registry back to path, in document order.
func (r *Registry) Save(path string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("encoding registry: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing registry: %w", err)
	}
	return nil
}

// Marshal encodes the registry as YAML with 2-space indentation.
func (r *Registry) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
