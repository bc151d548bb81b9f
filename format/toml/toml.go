// Package toml provides a TOML codec built on github.com/pelletier/go-toml/v2.
//
// TOML documents are always tables, so Decode yields a map[string]any
// root. TOML has no top-level arrays either; patches are written as an
// array of tables named "patch":
//
//	[[patch]]
//	op = "replace"
//	path = "/server/port"
//	value = 8443
package toml

import (
	"bytes"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/yacchi/tsugihagi"
	"github.com/yacchi/tsugihagi/format"
)

// PatchTable is the top-level key holding the operation list in a TOML
// patch file.
const PatchTable = "patch"

// Codec is the TOML codec. The zero value is ready to use.
type Codec struct{}

// Ensure Codec implements the format.Codec interface.
var _ format.Codec = Codec{}

// Name returns "toml".
func (Codec) Name() string {
	return "toml"
}

// Decode parses TOML data into a document tree.
func (Codec) Decode(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty TOML document")
	}
	var root map[string]any
	if err := toml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	return format.Normalize(root), nil
}

// DecodePatch parses the "patch" array of tables into an operation list.
func (c Codec) DecodePatch(data []byte) (tsugihagi.Patch, error) {
	root, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	table, ok := root.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("TOML patch must be a table, got %T", root)
	}
	ops, ok := table[PatchTable]
	if !ok {
		return nil, fmt.Errorf("TOML patch must carry a [[%s]] array of tables", PatchTable)
	}
	return format.ToPatch(ops)
}

// Encode serializes a document tree as TOML. The root must encode to a
// table; scalar and array roots are not representable in TOML.
func (Codec) Encode(doc any) ([]byte, error) {
	b, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal TOML: %w", err)
	}
	return b, nil
}
