// Package json provides the standard library (encoding/json) codec.
package json

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/format"
)

// Codec is the JSON codec. The zero value is ready to use.
type Codec struct{}

// Ensure Codec implements the format.Codec interface.
var _ format.Codec = Codec{}

// Name returns "json".
func (Codec) Name() string {
	return "json"
}

// Decode parses JSON data into a document tree. Any JSON value is a valid
// document root.
func (Codec) Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty JSON document")
	}
	var root any
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return root, nil
}

// DecodePatch parses a JSON array of operation objects.
func (c Codec) DecodePatch(data []byte) (tsugihagi.Patch, error) {
	root, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return format.ToPatch(root)
}

// Encode serializes a document tree as indented JSON.
func (Codec) Encode(doc any) ([]byte, error) {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(b, '\n'), nil
}
