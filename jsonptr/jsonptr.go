// Package jsonptr provides utilities for working with JSON Pointer (RFC 6901).
//
// JSON Pointer defines a string syntax for identifying a specific value
// within a JSON document. It is used in tsugihagi to address the target
// location of patch operations.
//
// Reference: https://tools.ietf.org/html/rfc6901
package jsonptr

import (
	"fmt"
	"strconv"
	"strings"
)

// Token is one decoded pointer segment: either a non-negative array index
// or an object key. The zero value is the empty key.
//
// A segment is classified as an index when it is a decimal literal with no
// leading zero ("0", "1", "42", ...). Everything else, including "-" and
// "007", is a key. Index tokens keep the literal segment so they can still
// be used as object keys ("/0" addresses the key "0" of an object).
type Token struct {
	// Key is the decoded segment, with RFC 6901 escapes applied.
	Key string
	// Index is the decimal value of the segment when IsIndex is true.
	Index int
	// IsIndex reports whether the segment is an array index literal.
	IsIndex bool
}

// String returns the decoded segment.
func (t Token) String() string {
	return t.Key
}

// KeyToken returns a key Token for the given decoded key.
func KeyToken(key string) Token {
	return Token{Key: key}
}

// IndexToken returns an index Token for the given non-negative index.
func IndexToken(i int) Token {
	return Token{Key: strconv.Itoa(i), Index: i, IsIndex: true}
}

// Escape escapes special characters in a key for use in JSON Pointer.
// Per RFC 6901:
//   - "~" is encoded as "~0"
//   - "/" is encoded as "~1"
func Escape(key string) string {
	// Order matters: escape ~ first, then /
	key = strings.ReplaceAll(key, "~", "~0")
	key = strings.ReplaceAll(key, "/", "~1")
	return key
}

// Unescape reverses the escaping applied by Escape.
// Per RFC 6901:
//   - "~1" is decoded as "/"
//   - "~0" is decoded as "~"
func Unescape(key string) string {
	// Order matters: unescape / first, then ~
	key = strings.ReplaceAll(key, "~1", "/")
	key = strings.ReplaceAll(key, "~0", "~")
	return key
}

// Build constructs a JSON Pointer from a sequence of keys.
// Keys can be strings, integers (for array indices), or Tokens.
//
// Examples:
//
//	Build("spec", "replicas")          -> "/spec/replicas"
//	Build("containers", 0, "name")     -> "/containers/0/name"
//	Build("paths", "/api/users")       -> "/paths/~1api~1users"
func Build(keys ...any) string {
	if len(keys) == 0 {
		return ""
	}

	var parts []string
	for _, key := range keys {
		var keyStr string
		switch v := key.(type) {
		case string:
			keyStr = v
		case Token:
			keyStr = v.Key
		case int:
			keyStr = strconv.Itoa(v)
		case int64:
			keyStr = strconv.FormatInt(v, 10)
		case uint:
			keyStr = strconv.FormatUint(uint64(v), 10)
		case uint64:
			keyStr = strconv.FormatUint(v, 10)
		default:
			keyStr = fmt.Sprint(v)
		}
		parts = append(parts, Escape(keyStr))
	}

	return "/" + strings.Join(parts, "/")
}

// Parse splits a JSON Pointer into its component tokens.
//
// The empty pointer refers to the whole document and yields no tokens. A
// bare "/" yields a single empty key (the key "" of the root object). Any
// other pointer must start with "/".
//
// Examples:
//
//	Parse("/spec/replicas")   -> [Key("spec"), Key("replicas")], nil
//	Parse("/containers/0")    -> [Key("containers"), Index(0)], nil
//	Parse("/a~1b/c~0d")       -> [Key("a/b"), Key("c~d")], nil
//	Parse("")                 -> [], nil
//	Parse("spec")             -> nil, error
func Parse(pointer string) ([]Token, error) {
	// Empty string is valid and refers to the whole document
	if pointer == "" {
		return []Token{}, nil
	}

	if !strings.HasPrefix(pointer, "/") {
		return nil, fmt.Errorf("JSON Pointer should start with a slash")
	}

	parts := strings.Split(pointer[1:], "/")
	tokens := make([]Token, len(parts))
	for i, part := range parts {
		tokens[i] = classify(part)
	}

	return tokens, nil
}

// classify decides whether a raw segment is an array index or a key.
// Index literals must have no leading zero, matching the RFC 6901
// array-index grammar; "007" stays a key.
func classify(segment string) Token {
	if !isIndexLiteral(segment) {
		return KeyToken(Unescape(segment))
	}
	n, err := strconv.Atoi(segment)
	if err != nil {
		// Out of int range; keep it a key so the walker reports a
		// type error instead of silently truncating.
		return KeyToken(segment)
	}
	return Token{Key: segment, Index: n, IsIndex: true}
}

func isIndexLiteral(s string) bool {
	if s == "0" {
		return true
	}
	if s == "" || s[0] < '1' || s[0] > '9' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Join combines two JSON Pointer paths into one.
// The second path can be either relative (without leading "/") or absolute
// (with leading "/"). In both cases, it is appended to the first path.
//
// Examples:
//
//	Join("/spec", "replicas")     -> "/spec/replicas"
//	Join("/spec", "/replicas")    -> "/spec/replicas"
//	Join("", "replicas")          -> "/replicas"
//	Join("/a", "/b/c")            -> "/a/b/c"
func Join(base, path string) string {
	// Handle empty cases
	if path == "" {
		if base == "" {
			return ""
		}
		return base
	}

	// Normalize path: remove leading "/" if present
	if strings.HasPrefix(path, "/") {
		path = path[1:]
	}

	// Handle empty base
	if base == "" {
		return "/" + path
	}

	// Ensure base starts with "/"
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}

	return base + "/" + path
}
