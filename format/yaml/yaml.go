// Package yaml provides a YAML codec built on gopkg.in/yaml.v3.
//
// Decoded values are normalized into the engine document model: mappings
// become map[string]any regardless of key type, sequences become []any.
// YAML keeps integers integral, so a sum over YAML-decoded values yields
// an int64 where JSON would yield a float64.
package yaml

import (
	"bytes"
	"fmt"

	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/format"
	"gopkg.in/yaml.v3"
)

// Codec is the YAML codec. The zero value is ready to use.
type Codec struct{}

// Ensure Codec implements the format.Codec interface.
var _ format.Codec = Codec{}

// Name returns "yaml".
func (Codec) Name() string {
	return "yaml"
}

// Decode parses YAML data into a document tree.
func (Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty YAML document")
	}
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return format.Normalize(root), nil
}

// DecodePatch parses a YAML sequence of operation mappings.
func (c Codec) DecodePatch(data []byte) (tsugihagi.Patch, error) {
	root, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return format.ToPatch(root)
}

// Encode serializes a document tree as YAML.
func (Codec) Encode(doc any) ([]byte, error) {
	b, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return b, nil
}
