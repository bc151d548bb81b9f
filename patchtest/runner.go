// Package patchtest provides reusable helpers for testing patch
// application against plain document trees.
//
// It is intended for consumers that build patches programmatically or
// decode them from configuration files and want table-driven coverage:
//
//	patchtest.Run(t, []patchtest.Case{
//		{
//			Name:  "replace port",
//			Doc:   map[string]any{"port": 8080},
//			Patch: tsugihagi.Patch{tsugihagi.NewReplace("/port", 8443)},
//			Want:  map[string]any{"port": 8443},
//		},
//	})
package patchtest

import (
	"strings"
	"testing"

	"github.com/yacchi/tsugihagi"
)

// Case describes one patch application scenario.
type Case struct {
	// Name is the subtest name.
	Name string
	// Doc is the input document.
	Doc any
	// Patch is applied to Doc.
	Patch tsugihagi.Patch
	// Want is the expected result document. Numeric values compare
	// loosely across int/int64/float64.
	Want any
	// WantErr, when non-empty, is a substring the error message must
	// contain. The case then expects Apply to fail.
	WantErr string
	// WantStatus, when non-zero, is the expected HTTP status for the
	// outcome (200 for success, 400/409/422 for failures).
	WantStatus int
}

// Run executes all cases as subtests.
func Run(t *testing.T, cases []Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.Name, func(t *testing.T) {
			RunCase(t, c)
		})
	}
}

// RunCase executes a single case against t.
func RunCase(t testT, c Case) {
	t.Helper()

	got, err := tsugihagi.Apply(c.Doc, c.Patch)

	if c.WantStatus != 0 {
		check(t, tsugihagi.HTTPStatus(err) == c.WantStatus,
			"HTTPStatus = %d, want %d (err: %v)", tsugihagi.HTTPStatus(err), c.WantStatus, err)
	}

	if c.WantErr != "" {
		if err == nil {
			t.Fatalf("Apply succeeded, want error containing %q", c.WantErr)
			return
		}
		check(t, strings.Contains(err.Error(), c.WantErr),
			"error = %q, want substring %q", err.Error(), c.WantErr)
		return
	}

	if err != nil {
		t.Fatalf("Apply error = %v", err)
		return
	}
	check(t, ValuesEqual(got, c.Want), "Apply = %v, want %v", got, c.Want)
}
