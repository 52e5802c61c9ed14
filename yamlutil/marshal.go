// Package yamlutil renders reconciliation reports as YAML.
package yamlutil

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// MarshalWithIndent encodes v with the given indent width. yaml.Marshal
// hard-codes its indentation, so this goes through an encoder instead.
func MarshalWithIndent(v any, indent int) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(indent)
	if err := encoder.Encode(v); err != nil {
		_ = encoder.Close()
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
