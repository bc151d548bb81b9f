package tsugihagi

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// formatValue renders a document fragment for error messages. JSON
// rendering keeps messages stable (map keys are sorted) and matches how
// callers think about the data; values that cannot be marshaled fall back
// to fmt.
func formatValue(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

// equalValues reports structural equality between two document fragments.
// Numbers compare by value regardless of Go type, so a test against 1
// holds whether the document carries int(1), int64(1) or float64(1).
func equalValues(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			bvv, ok := bv[k]
			if !ok || !equalValues(v, bvv) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, v := range av {
			if !equalValues(v, bv[i]) {
				return false
			}
		}
		return true
	}

	af, _, _, aNum := numericValue(a)
	bf, _, _, bNum := numericValue(b)
	if aNum || bNum {
		return aNum && bNum && af == bf
	}

	return reflect.DeepEqual(a, b)
}

// numericValue extracts a numeric document value. isInt reports whether
// the value is integral at the type level, which decides whether sum
// yields an int64 or a float64.
func numericValue(v any) (f float64, i int64, isInt, ok bool) {
	switch n := v.(type) {
	case int:
		return float64(n), int64(n), true, true
	case int8:
		return float64(n), int64(n), true, true
	case int16:
		return float64(n), int64(n), true, true
	case int32:
		return float64(n), int64(n), true, true
	case int64:
		return float64(n), n, true, true
	case uint:
		return float64(n), int64(n), true, true
	case uint8:
		return float64(n), int64(n), true, true
	case uint16:
		return float64(n), int64(n), true, true
	case uint32:
		return float64(n), int64(n), true, true
	case uint64:
		return float64(n), int64(n), true, true
	case float32:
		return float64(n), 0, false, true
	case float64:
		return n, 0, false, true
	case json.Number:
		if iv, err := n.Int64(); err == nil {
			return float64(iv), iv, true, true
		}
		if fv, err := n.Float64(); err == nil {
			return fv, 0, false, true
		}
	}
	return 0, 0, false, false
}

// stringifyScalar renders a scalar document value for join. Containers do
// not stringify; joining them is a type mismatch.
func stringifyScalar(v any) (string, error) {
	switch s := v.(type) {
	case nil:
		return "null", nil
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case json.Number:
		return s.String(), nil
	}
	if f, i, isInt, ok := numericValue(v); ok {
		if isInt {
			return strconv.FormatInt(i, 10), nil
		}
		return strconv.FormatFloat(f, 'f', -1, 64), nil
	}
	return "", pathErrorf("can't join value %s", formatValue(v))
}
