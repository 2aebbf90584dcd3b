package interp

import (
	"github.com/perbu/jmespath/ast"
	"github.com/perbu/jmespath/value"
)

// evalSlice implements spec §4.3's Python-style slice{start,stop,step}
// over arrays and strings (runes, to keep UTF-8 slicing well-defined).
func evalSlice(n *ast.Slice, data value.Value) (value.Value, error) {
	step := int64(1)
	if n.Step != nil {
		step = *n.Step
	}
	if step == 0 {
		return value.Null, &Error{Pos: n.Pos(), Message: "invalid slice: step cannot be 0"}
	}

	switch data.Kind() {
	case value.KindArray:
		arr := data.AsArray()
		start, stop := sliceBounds(n.Start, n.Stop, step, int64(len(arr)))
		out := make([]value.Value, 0)
		for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
			out = append(out, arr[i])
		}
		return value.Array(out), nil
	case value.KindString:
		runes := []rune(data.AsString())
		start, stop := sliceBounds(n.Start, n.Stop, step, int64(len(runes)))
		var out []rune
		for i := start; (step > 0 && i < stop) || (step < 0 && i > stop); i += step {
			out = append(out, runes[i])
		}
		return value.String(string(out)), nil
	default:
		return value.Null, nil
	}
}

// sliceBounds applies CPython's PySlice_GetIndicesEx defaulting rules:
// ascending slices default to [0, n); descending slices default to
// [n-1, -1) so that negative-step iteration runs down to and includes
// index 0.
func sliceBounds(startP, stopP *int64, step, n int64) (start, stop int64) {
	if step > 0 {
		if startP == nil {
			start = 0
		} else {
			start = capIndex(*startP, n)
		}
		if stopP == nil {
			stop = n
		} else {
			stop = capIndex(*stopP, n)
		}
		return start, stop
	}
	if startP == nil {
		start = n - 1
	} else {
		start = capIndexDescending(*startP, n)
	}
	if stopP == nil {
		stop = -1
	} else {
		stop = capIndexDescending(*stopP, n)
	}
	return start, stop
}

func capIndex(v, n int64) int64 {
	if v < 0 {
		v += n
		if v < 0 {
			v = 0
		}
	} else if v > n {
		v = n
	}
	return v
}

func capIndexDescending(v, n int64) int64 {
	if v < 0 {
		v += n
		if v < -1 {
			v = -1
		}
	} else if v >= n {
		v = n - 1
	}
	return v
}
