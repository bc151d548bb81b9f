package tsugihagi

import "strings"

// applyJoin reads every from path in order, stringifies the scalar values
// and writes the joined result to path. Containers at a from path are a
// type mismatch; spelling out "joiner": "" joins without a separator.
func applyJoin(doc any, op Operation, path string) (any, error) {
	from, ok := fromPaths(op)
	if !ok {
		return nil, syntaxErrorf("missing `from`")
	}
	joiner := DefaultJoiner
	if j, ok := op[fieldJoiner].(string); ok {
		joiner = j
	}

	parts := make([]string, 0, len(from))
	for _, p := range from {
		value, err := GetPath(doc, p)
		if err != nil {
			return nil, err
		}
		s, err := stringifyScalar(value)
		if err != nil {
			return nil, err
		}
		parts = append(parts, s)
	}
	return AddPath(doc, path, strings.Join(parts, joiner))
}

// applySum reads every from path, requires a numeric value at each and
// writes the total to path. An all-integer input sums to int64; any float
// in the mix widens the result to float64.
func applySum(doc any, op Operation, path string) (any, error) {
	from, ok := fromPaths(op)
	if !ok {
		return nil, syntaxErrorf("missing `from`")
	}

	var (
		floatTotal float64
		intTotal   int64
		allInts    = true
	)
	for _, p := range from {
		value, err := GetPath(doc, p)
		if err != nil {
			return nil, err
		}
		f, i, isInt, ok := numericValue(value)
		if !ok {
			return nil, pathErrorf("can't sum value %s", formatValue(value))
		}
		floatTotal += f
		if isInt {
			intTotal += i
		} else {
			allInts = false
		}
	}

	var total any = floatTotal
	if allInts {
		total = intTotal
	}
	return AddPath(doc, path, total)
}
