package patchtest

import (
	"fmt"
	"reflect"
)

// testT is the minimal testing interface used by patchtest utilities.
type testT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
}

// check reports an error if the condition is false, but continues the test.
func check(t testT, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Errorf(format, args...)
	}
}

// ValuesEqual compares two values for equality, handling numeric type
// conversions. JSON, YAML, and TOML decode numbers as different Go types,
// so 8080, int64(8080), and float64(8080) all compare equal.
func ValuesEqual(got, want any) bool {
	if got == nil && want == nil {
		return true
	}
	if got == nil || want == nil {
		return false
	}

	gotNum, gotIsNum := toFloat64(got)
	wantNum, wantIsNum := toFloat64(want)
	if gotIsNum && wantIsNum {
		return gotNum == wantNum
	}

	if gotStr, ok := got.(string); ok {
		if wantStr, ok := want.(string); ok {
			return gotStr == wantStr
		}
		return gotStr == fmt.Sprintf("%v", want)
	}

	switch gotV := got.(type) {
	case map[string]any:
		wantV, ok := want.(map[string]any)
		if !ok || len(gotV) != len(wantV) {
			return false
		}
		for k, v := range gotV {
			wv, ok := wantV[k]
			if !ok || !ValuesEqual(v, wv) {
				return false
			}
		}
		return true
	case []any:
		wantV, ok := want.([]any)
		if !ok || len(gotV) != len(wantV) {
			return false
		}
		for i, v := range gotV {
			if !ValuesEqual(v, wantV[i]) {
				return false
			}
		}
		return true
	}

	return reflect.DeepEqual(got, want)
}

// toFloat64 converts numeric types to float64 for comparison.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
