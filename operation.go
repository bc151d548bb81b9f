package tsugihagi

import (
	"encoding/json"
	"fmt"
)

// Op names understood by Apply. The first six follow RFC 6902; iterate,
// join and sum are extensions.
const (
	OpTest    = "test"
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpMove    = "move"
	OpCopy    = "copy"
	OpIterate = "iterate"
	OpJoin    = "join"
	OpSum     = "sum"
)

// Descriptor field names.
const (
	fieldOp            = "op"
	fieldPath          = "path"
	fieldValue         = "value"
	fieldFrom          = "from"
	fieldSubOperations = "sub_operations"
	fieldReplacement   = "replacement_character"
	fieldJoiner        = "joiner"
)

// DefaultReplacementToken is substituted with the element index in the
// sub-operations of an iterate operation unless the operation overrides it
// via "replacement_character".
const DefaultReplacementToken = "$?"

// DefaultJoiner separates the stringified values of a join operation
// unless the operation overrides it via "joiner".
const DefaultJoiner = ","

// Operation is a single patch operation descriptor. It stays a mapping
// rather than a struct because key presence is significant: an operation
// carrying an explicit null value is well-formed, while one missing the
// "value" key is a syntax error.
type Operation map[string]any

// String renders the descriptor for error provenance. Keys are emitted in
// sorted order so messages are stable.
func (o Operation) String() string {
	b, err := json.Marshal(map[string]any(o))
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(o))
	}
	return string(b)
}

// NewTest returns a "test" operation asserting the value at path.
func NewTest(path string, value any) Operation {
	return Operation{fieldOp: OpTest, fieldPath: path, fieldValue: value}
}

// NewAdd returns an "add" operation inserting value at path.
func NewAdd(path string, value any) Operation {
	return Operation{fieldOp: OpAdd, fieldPath: path, fieldValue: value}
}

// NewRemove returns a "remove" operation deleting the value at path.
func NewRemove(path string) Operation {
	return Operation{fieldOp: OpRemove, fieldPath: path}
}

// NewReplace returns a "replace" operation overwriting the value at path.
func NewReplace(path string, value any) Operation {
	return Operation{fieldOp: OpReplace, fieldPath: path, fieldValue: value}
}

// NewMove returns a "move" operation relocating the value at from to path.
func NewMove(from, path string) Operation {
	return Operation{fieldOp: OpMove, fieldFrom: from, fieldPath: path}
}

// NewCopy returns a "copy" operation duplicating the value at from to path.
func NewCopy(from, path string) Operation {
	return Operation{fieldOp: OpCopy, fieldFrom: from, fieldPath: path}
}

// NewIterate returns an "iterate" operation applying subs once per element
// of the array at path. The default replacement token is used; set
// "replacement_character" on the result to override it.
func NewIterate(path string, subs Patch) Operation {
	return Operation{fieldOp: OpIterate, fieldPath: path, fieldSubOperations: subs}
}

// NewJoin returns a "join" operation concatenating the values at the from
// paths with joiner and writing the result to path.
func NewJoin(path string, from []string, joiner string) Operation {
	return Operation{fieldOp: OpJoin, fieldPath: path, fieldFrom: from, fieldJoiner: joiner}
}

// NewSum returns a "sum" operation adding the numeric values at the from
// paths and writing the total to path.
func NewSum(path string, from []string) Operation {
	return Operation{fieldOp: OpSum, fieldPath: path, fieldFrom: from}
}

// Patch is an ordered sequence of operations, applied strictly in order.
type Patch []Operation

// Test appends a "test" operation to the patch.
func (p *Patch) Test(path string, value any) {
	*p = append(*p, NewTest(path, value))
}

// Add appends an "add" operation to the patch.
func (p *Patch) Add(path string, value any) {
	*p = append(*p, NewAdd(path, value))
}

// Remove appends a "remove" operation to the patch.
func (p *Patch) Remove(path string) {
	*p = append(*p, NewRemove(path))
}

// Replace appends a "replace" operation to the patch.
func (p *Patch) Replace(path string, value any) {
	*p = append(*p, NewReplace(path, value))
}

// Move appends a "move" operation to the patch.
func (p *Patch) Move(from, path string) {
	*p = append(*p, NewMove(from, path))
}

// Copy appends a "copy" operation to the patch.
func (p *Patch) Copy(from, path string) {
	*p = append(*p, NewCopy(from, path))
}

// Len returns the number of operations in the patch.
func (p Patch) Len() int {
	return len(p)
}

// IsEmpty returns true if the patch contains no operations.
func (p Patch) IsEmpty() bool {
	return len(p) == 0
}

// toPatch converts a decoded "sub_operations" value into a Patch. It
// accepts the shapes the format decoders and the builders produce.
func toPatch(v any) (Patch, bool) {
	switch ops := v.(type) {
	case Patch:
		return ops, true
	case []Operation:
		return Patch(ops), true
	case []map[string]any:
		out := make(Patch, len(ops))
		for i, m := range ops {
			out[i] = Operation(m)
		}
		return out, true
	case []any:
		out := make(Patch, len(ops))
		for i, e := range ops {
			switch m := e.(type) {
			case Operation:
				out[i] = m
			case map[string]any:
				out[i] = Operation(m)
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

// fromPaths extracts the "from" field of a join or sum operation as a list
// of pointer strings.
func fromPaths(op Operation) ([]string, bool) {
	raw, ok := op[fieldFrom]
	if !ok {
		return nil, false
	}
	switch v := raw.(type) {
	case []string:
		return v, true
	case []any:
		out := make([]string, len(v))
		for i, e := range v {
			s, ok := e.(string)
			if !ok {
				return nil, false
			}
			out[i] = s
		}
		return out, true
	}
	return nil, false
}
