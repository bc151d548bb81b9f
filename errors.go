package tsugihagi

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies patch application failures. There are exactly three
// kinds; every failure inside Apply is terminal for that call and the
// caller decides whether to retry with a corrected patch.
type Kind int

const (
	// SyntaxError means the operation descriptor itself is malformed:
	// a missing required field, an unknown op, or a wrong field type.
	SyntaxError Kind = iota

	// PathError means the supplied pointer cannot be resolved against
	// the current document: out-of-bounds index, missing key, type
	// mismatch, or malformed pointer syntax.
	PathError

	// TestFailed means a test operation's value comparison did not hold.
	TestFailed
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case SyntaxError:
		return "syntax_error"
	case PathError:
		return "path_error"
	case TestFailed:
		return "test_failed"
	}
	return "unknown"
}

// Error is the error type produced by the patch engine. The Message of an
// error surfaced by Apply includes provenance: the 0-based index of the
// failing operation and the operation's literal content.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func syntaxErrorf(format string, args ...any) *Error {
	return &Error{Kind: SyntaxError, Message: fmt.Sprintf(format, args...)}
}

func pathErrorf(format string, args ...any) *Error {
	return &Error{Kind: PathError, Message: fmt.Sprintf(format, args...)}
}

func testFailedError() *Error {
	return &Error{Kind: TestFailed, Message: "test failed"}
}

// IsSyntaxError reports whether err is an engine error of kind SyntaxError.
func IsSyntaxError(err error) bool {
	return errorKind(err) == SyntaxError
}

// IsPathError reports whether err is an engine error of kind PathError.
func IsPathError(err error) bool {
	return errorKind(err) == PathError
}

// IsTestFailed reports whether err is an engine error of kind TestFailed.
func IsTestFailed(err error) bool {
	return errorKind(err) == TestFailed
}

func errorKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Kind(-1)
}

// HTTPStatus maps an Apply result to the status code HTTP-facing callers
// respond with:
//
//	nil         -> 200
//	TestFailed  -> 409
//	PathError   -> 422
//	SyntaxError -> 400
//
// Anything unrecognized also maps to 400.
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	switch errorKind(err) {
	case TestFailed:
		return http.StatusConflict
	case PathError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}
