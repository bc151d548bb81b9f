package tsugihagi

import (
	"maps"

	"github.com/yacchi/tsugihagi/jsonptr"
)

// GetPath retrieves the value at the given JSON Pointer path. The empty
// pointer returns the document itself. Within arrays the key "-" reads the
// last element.
//
// Example:
//
//	doc := map[string]any{"spec": map[string]any{"replicas": 3}}
//	v, err := tsugihagi.GetPath(doc, "/spec/replicas")  // 3, nil
func GetPath(doc any, path string) (any, error) {
	tokens, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return getTokens(doc, tokens)
}

// AddPath returns a new document with value bound at path. Object keys are
// set or overwritten; array indices insert, shifting later elements right.
// An index equal to the array length appends, as does the key "-".
//
// The input document is never modified: every ancestor along the edited
// path is rebuilt and untouched siblings are shared by reference.
func AddPath(doc any, path string, value any) (any, error) {
	tokens, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return addTokens(doc, tokens, value)
}

// RemovePath returns a new document with the value at path removed. Array
// elements are deleted without leaving a hole; within arrays the key "-"
// removes the last element. Removing the empty pointer discards the whole
// document and returns nil.
//
// Like AddPath, the input document is never modified.
func RemovePath(doc any, path string) (any, error) {
	tokens, err := resolve(path)
	if err != nil {
		return nil, err
	}
	out, removed, err := removeTokens(doc, tokens)
	if err != nil {
		return nil, err
	}
	if removed {
		return nil, nil
	}
	return out, nil
}

func resolve(path string) ([]jsonptr.Token, error) {
	tokens, err := jsonptr.Parse(path)
	if err != nil {
		return nil, pathErrorf("%s", err)
	}
	return tokens, nil
}

func getTokens(doc any, tokens []jsonptr.Token) (any, error) {
	if len(tokens) == 0 {
		return doc, nil
	}
	head, rest := tokens[0], tokens[1:]
	switch node := doc.(type) {
	case []any:
		i, err := arrayIndex(node, head)
		if err != nil {
			return nil, err
		}
		return getTokens(node[i], rest)
	case map[string]any:
		child, ok := node[head.Key]
		if !ok {
			return nil, pathErrorf("missing key %s", head.Key)
		}
		return getTokens(child, rest)
	default:
		return nil, pathErrorf("can't index into value %s", formatValue(doc))
	}
}

// arrayIndex resolves a token against an array for read and remove
// contexts: in-bounds indices pass through and "-" aliases the last
// element. Insert-context index rules live in addTokens.
func arrayIndex(node []any, head jsonptr.Token) (int, error) {
	if head.IsIndex {
		if head.Index >= len(node) {
			return 0, pathErrorf("out-of-bounds index %d", head.Index)
		}
		return head.Index, nil
	}
	if head.Key == "-" {
		if len(node) == 0 {
			return 0, pathErrorf("can't use index '-' with empty array")
		}
		return len(node) - 1, nil
	}
	return 0, pathErrorf("can't index into array with string %s", head.Key)
}

// removeTokens walks toward the target. Exhausted tokens signal the parent
// to drop the current node entirely (removed == true); otherwise the
// parent substitutes the returned replacement value.
func removeTokens(doc any, tokens []jsonptr.Token) (out any, removed bool, err error) {
	if len(tokens) == 0 {
		return nil, true, nil
	}
	head, rest := tokens[0], tokens[1:]
	switch node := doc.(type) {
	case []any:
		i, err := arrayIndex(node, head)
		if err != nil {
			return nil, false, err
		}
		child, childRemoved, err := removeTokens(node[i], rest)
		if err != nil {
			return nil, false, err
		}
		if childRemoved {
			next := make([]any, 0, len(node)-1)
			next = append(next, node[:i]...)
			next = append(next, node[i+1:]...)
			return next, false, nil
		}
		next := make([]any, len(node))
		copy(next, node)
		next[i] = child
		return next, false, nil

	case map[string]any:
		value, ok := node[head.Key]
		if !ok {
			return nil, false, pathErrorf("missing key %s", head.Key)
		}
		child, childRemoved, err := removeTokens(value, rest)
		if err != nil {
			return nil, false, err
		}
		next := make(map[string]any, len(node))
		maps.Copy(next, node)
		if childRemoved {
			delete(next, head.Key)
		} else {
			next[head.Key] = child
		}
		return next, false, nil

	default:
		return nil, false, pathErrorf("can't index into value %s", formatValue(doc))
	}
}

func addTokens(doc any, tokens []jsonptr.Token, value any) (any, error) {
	if len(tokens) == 0 {
		return value, nil
	}
	head, rest := tokens[0], tokens[1:]
	switch node := doc.(type) {
	case []any:
		if !head.IsIndex {
			if head.Key == "-" && len(rest) == 0 {
				next := make([]any, len(node), len(node)+1)
				copy(next, node)
				return append(next, value), nil
			}
			// "-" only denotes one past the end for direct
			// insertion; with tokens remaining it is an error
			// like any other non-index key.
			return nil, pathErrorf("can't index into array with string %s", head.Key)
		}
		i := head.Index
		if i > len(node) {
			return nil, pathErrorf("out-of-bounds index %d", i)
		}
		if len(rest) == 0 {
			next := make([]any, 0, len(node)+1)
			next = append(next, node[:i]...)
			next = append(next, value)
			next = append(next, node[i:]...)
			return next, nil
		}
		var elem any
		if i < len(node) {
			elem = node[i]
		}
		child, err := addTokens(elem, rest, value)
		if err != nil {
			return nil, err
		}
		if i == len(node) {
			next := make([]any, len(node), len(node)+1)
			copy(next, node)
			return append(next, child), nil
		}
		next := make([]any, len(node))
		copy(next, node)
		next[i] = child
		return next, nil

	case map[string]any:
		next := make(map[string]any, len(node)+1)
		maps.Copy(next, node)
		if len(rest) == 0 {
			next[head.Key] = value
			return next, nil
		}
		// An absent key descends into nil, which errors below if
		// further structure is required.
		child, err := addTokens(node[head.Key], rest, value)
		if err != nil {
			return nil, err
		}
		next[head.Key] = child
		return next, nil

	default:
		return nil, pathErrorf("can't index into value %s", formatValue(doc))
	}
}
