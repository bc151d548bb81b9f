// Package jsonc provides a JSONC (JSON with comments) codec built on
// github.com/tailscale/hujson.
//
// Input is standardized (comments and trailing commas stripped) before
// decoding; Encode emits plain JSON, so comments do not survive a
// round trip.
package jsonc

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/format"
)

// Codec is the JSONC codec. The zero value is ready to use.
type Codec struct{}

// Ensure Codec implements the format.Codec interface.
var _ format.Codec = Codec{}

// Name returns "jsonc".
func (Codec) Name() string {
	return "jsonc"
}

// Decode parses JSONC data into a document tree.
func (Codec) Decode(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty JSONC document")
	}

	v, err := hujson.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC: %w", err)
	}
	// Standardize to remove comments and trailing commas for decoding
	v.Standardize()

	var root any
	if err := json.Unmarshal(v.Pack(), &root); err != nil {
		return nil, fmt.Errorf("failed to decode JSONC: %w", err)
	}
	return root, nil
}

// DecodePatch parses a JSONC array of operation objects.
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
		return nil, fmt.Errorf("failed to marshal JSONC: %w", err)
	}
	return append(b, '\n'), nil
}
