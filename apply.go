// Package tsugihagi applies declarative edit operations to in-memory
// document trees following RFC 6902 (JSON Patch), extended with iteration
// over array elements (iterate), concatenation of multiple values (join)
// and numeric aggregation (sum).
//
// The engine consumes an already-decoded document (map[string]any, []any
// and scalars, as produced by the format subpackages or encoding/json) and
// an ordered Patch, and produces a new document. Inputs are never mutated:
// every edit rebuilds only the ancestors along the edited path and shares
// untouched subtrees with the input by reference, so callers keep a valid
// pre-patch document even after a successful Apply.
//
// Example:
//
//	doc := map[string]any{"a": 1}
//	patch := tsugihagi.Patch{}
//	patch.Add("/b", map[string]any{"c": true})
//	patch.Test("/a", 1)
//	patch.Move("/b/c", "/c")
//	out, err := tsugihagi.Apply(doc, patch)
package tsugihagi

import (
	"errors"
	"fmt"
)

// Apply applies the operations in patch to doc strictly in order and
// returns the resulting document. The document produced by each operation
// feeds the next; the first failure aborts the whole call and no partial
// document is returned. doc itself is never modified.
//
// Errors carry one of three kinds (SyntaxError, PathError, TestFailed) and
// a message annotated with the index and content of the failing operation.
func Apply(doc any, patch Patch) (any, error) {
	current := doc
	for i, op := range patch {
		next, err := applyOperation(current, op)
		if err != nil {
			return nil, annotate(err, i, op)
		}
		current = next
	}
	return current, nil
}

// annotate appends operation provenance to an error. Errors escaping an
// iterate sub-patch are annotated twice: once with the sub-list index by
// the nested Apply, then with the enclosing operation's index here.
func annotate(err error, index int, op Operation) error {
	kind := errorKind(err)
	if kind == Kind(-1) {
		kind = SyntaxError
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("%s (patches[%d], %s)", errMessage(err), index, op),
	}
}

func errMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func applyOperation(doc any, op Operation) (any, error) {
	kind, ok := op[fieldOp].(string)
	if !ok {
		return nil, syntaxErrorf("missing `op`")
	}
	rawPath, ok := op[fieldPath]
	if !ok {
		return nil, syntaxErrorf("missing `path`")
	}
	path, err := pointerString(rawPath, fieldPath)
	if err != nil {
		return nil, err
	}

	switch kind {
	case OpTest:
		value, ok := op[fieldValue]
		if !ok {
			return nil, syntaxErrorf("missing `value`")
		}
		current, err := GetPath(doc, path)
		if err != nil {
			return nil, err
		}
		if !equalValues(current, value) {
			return nil, testFailedError()
		}
		return doc, nil

	case OpAdd:
		value, ok := op[fieldValue]
		if !ok {
			return nil, syntaxErrorf("missing `value`")
		}
		return AddPath(doc, path, value)

	case OpRemove:
		return RemovePath(doc, path)

	case OpReplace:
		value, ok := op[fieldValue]
		if !ok {
			return nil, syntaxErrorf("missing `value`")
		}
		removed, err := RemovePath(doc, path)
		if err != nil {
			return nil, err
		}
		return AddPath(removed, path, value)

	case OpMove:
		rawFrom, ok := op[fieldFrom]
		if !ok {
			return nil, syntaxErrorf("missing `from`")
		}
		from, err := pointerString(rawFrom, fieldFrom)
		if err != nil {
			return nil, err
		}
		value, err := GetPath(doc, from)
		if err != nil {
			return nil, err
		}
		removed, err := RemovePath(doc, from)
		if err != nil {
			return nil, err
		}
		return AddPath(removed, path, value)

	case OpCopy:
		rawFrom, ok := op[fieldFrom]
		if !ok {
			return nil, syntaxErrorf("missing `from`")
		}
		from, err := pointerString(rawFrom, fieldFrom)
		if err != nil {
			return nil, err
		}
		value, err := GetPath(doc, from)
		if err != nil {
			return nil, err
		}
		return AddPath(doc, path, value)

	case OpIterate:
		return applyIterate(doc, op, path)

	case OpJoin:
		return applyJoin(doc, op, path)

	case OpSum:
		return applySum(doc, op, path)

	default:
		return nil, syntaxErrorf("not implemented: %s", kind)
	}
}

// pointerString validates a pointer-carrying field value ("path" or
// "from"). The key must be present (checked by the caller); a null or
// non-string value is a path error rather than a syntax error, matching
// the resolver contract.
func pointerString(raw any, field string) (string, error) {
	switch p := raw.(type) {
	case string:
		return p, nil
	case nil:
		return "", pathErrorf("null is not valid value for '%s'", field)
	default:
		return "", pathErrorf("%s is not valid value for '%s'", formatValue(raw), field)
	}
}
