// Package format defines the codec contract shared by the format
// subpackages (json, jsonc, yaml, toml).
//
// Codecs are external collaborators of the patch engine: they decode raw
// bytes into the document model the engine consumes (map[string]any,
// []any and scalars) and encode result documents back out. The engine
// itself never touches text.
package format

import (
	"fmt"

	"github.com/yacchi/tsugihagi"
)

// Codec decodes documents and patches from bytes and encodes documents
// back to bytes.
type Codec interface {
	// Name returns the codec identifier ("json", "yaml", ...).
	Name() string

	// Decode parses data into a document tree.
	Decode(data []byte) (any, error)

	// DecodePatch parses data into an ordered operation list.
	DecodePatch(data []byte) (tsugihagi.Patch, error)

	// Encode serializes a document tree.
	Encode(doc any) ([]byte, error)
}

// ToPatch converts a decoded patch value (an array of operation mappings)
// into a tsugihagi.Patch.
func ToPatch(v any) (tsugihagi.Patch, error) {
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("patch must be an array of operations, got %T", v)
	}
	patch := make(tsugihagi.Patch, 0, len(list))
	for i, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("patch[%d]: operation must be an object, got %T", i, e)
		}
		patch = append(patch, tsugihagi.Operation(m))
	}
	return patch, nil
}

// Normalize converts format-specific container shapes into the engine
// document model. YAML decoders may produce map[any]any for mappings;
// keys are stringified and nested containers normalized recursively.
// Values already in the document model pass through unchanged.
func Normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Normalize(e)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[fmt.Sprint(k)] = Normalize(e)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}
		return out
	default:
		return v
	}
}
