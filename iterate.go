package tsugihagi

import (
	"strconv"
	"strings"
)

// applyIterate expands an iterate operation: for each index of the array
// at path, the replacement token in the sub-operations is substituted with
// the index and the rewritten sub-patch is applied to the running
// document. The array length is taken from the initial read; the first
// failing sub-patch aborts the whole expansion.
func applyIterate(doc any, op Operation, path string) (any, error) {
	subs, ok := toPatch(op[fieldSubOperations])
	if !ok {
		return nil, syntaxErrorf("missing `sub_operations`")
	}
	token := DefaultReplacementToken
	if raw, ok := op[fieldReplacement]; ok {
		s, ok := raw.(string)
		if !ok || s == "" {
			return nil, syntaxErrorf("%s is not valid value for 'replacement_character'", formatValue(raw))
		}
		token = s
	}

	target, err := GetPath(doc, path)
	if err != nil {
		return nil, err
	}
	array, ok := target.([]any)
	if !ok {
		return nil, pathErrorf("can't iterate over value %s", formatValue(target))
	}

	current := doc
	for i := range array {
		// Apply annotates sub-patch failures with the index relative
		// to the sub-operation list; the caller adds the enclosing
		// iterate operation's own provenance on top.
		next, err := Apply(current, substitutePatch(subs, token, strconv.Itoa(i)))
		if err != nil {
			return nil, err
		}
		current = next
	}
	return current, nil
}

// substitutePatch rewrites every occurrence of token in the path and from
// fields of each operation, recursing into nested sub_operations. The
// input descriptors are left untouched.
func substitutePatch(patch Patch, token, replacement string) Patch {
	out := make(Patch, len(patch))
	for i, op := range patch {
		out[i] = substituteOperation(op, token, replacement)
	}
	return out
}

func substituteOperation(op Operation, token, replacement string) Operation {
	out := make(Operation, len(op))
	for key, value := range op {
		switch key {
		case fieldPath:
			if s, ok := value.(string); ok {
				value = strings.ReplaceAll(s, token, replacement)
			}
		case fieldFrom:
			value = substituteFrom(value, token, replacement)
		case fieldSubOperations:
			if subs, ok := toPatch(value); ok {
				value = substitutePatch(subs, token, replacement)
			}
		}
		out[key] = value
	}
	return out
}

// substituteFrom handles both shapes of the from field: a single pointer
// (move, copy) and a pointer list (join, sum).
func substituteFrom(value any, token, replacement string) any {
	switch from := value.(type) {
	case string:
		return strings.ReplaceAll(from, token, replacement)
	case []string:
		out := make([]string, len(from))
		for i, s := range from {
			out[i] = strings.ReplaceAll(s, token, replacement)
		}
		return out
	case []any:
		out := make([]any, len(from))
		for i, e := range from {
			if s, ok := e.(string); ok {
				out[i] = strings.ReplaceAll(s, token, replacement)
			} else {
				out[i] = e
			}
		}
		return out
	}
	return value
}
