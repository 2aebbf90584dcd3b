package interp

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/perbu/jmespath/value"
)

type builtinFn func(pos int, args []value.Value) (value.Value, error)

type builtin struct {
	minArgs int
	maxArgs int // -1 means unbounded
	fn      builtinFn
}

// registry is the read-only-after-init built-in function table (spec
// §4.4). It is consulted by CallBuiltin, the default used whenever no
// fn_dispatcher override is configured.
var registry map[string]builtin

func init() {
	registry = map[string]builtin{
		"abs":         {1, 1, fnAbs},
		"avg":         {1, 1, fnAvg},
		"ceil":        {1, 1, fnCeil},
		"contains":    {2, 2, fnContains},
		"ends_with":   {2, 2, fnEndsWith},
		"floor":       {1, 1, fnFloor},
		"join":        {2, 2, fnJoin},
		"keys":        {1, 1, fnKeys},
		"length":      {1, 1, fnLength},
		"map":         {2, 2, fnMap},
		"max":         {1, 1, fnMax},
		"max_by":      {2, 2, fnMaxBy},
		"min":         {1, 1, fnMin},
		"min_by":      {2, 2, fnMinBy},
		"not_null":    {1, -1, fnNotNull},
		"reverse":     {1, 1, fnReverse},
		"sort":        {1, 1, fnSort},
		"sort_by":     {2, 2, fnSortBy},
		"starts_with": {2, 2, fnStartsWith},
		"sum":         {1, 1, fnSum},
		"to_array":    {1, 1, fnToArray},
		"to_number":   {1, 1, fnToNumber},
		"to_string":   {1, 1, fnToString},
		"type":        {1, 1, fnType},
		"values":      {1, 1, fnValues},
	}
}

// CallBuiltin dispatches name against the built-in registry. A
// fn_dispatcher override (spec §6.1) MAY call this for names it does
// not itself recognize.
func CallBuiltin(name string, pos int, args []value.Value) (value.Value, error) {
	b, ok := registry[name]
	if !ok {
		return value.Null, &Error{Name: name, Pos: pos, Message: fmt.Sprintf("unknown function %q", name)}
	}
	if len(args) < b.minArgs || (b.maxArgs >= 0 && len(args) > b.maxArgs) {
		return value.Null, &Error{Name: name, Pos: pos, Message: fmt.Sprintf("invalid arity calling %q: got %d argument(s)", name, len(args))}
	}
	return b.fn(pos, args)
}

func typeErr(name string, pos int, msg string) error {
	return &Error{Name: name, Pos: pos, Message: msg}
}

// typedReduce is the shared homogeneity check spec §4.4 calls for: every
// element of arr must share one concrete kind drawn from allowed. Returns
// KindNull (with no error) for an empty array, leaving the empty-result
// behavior to the caller.
func typedReduce(name string, pos int, arr []value.Value, allowed ...value.Kind) (value.Kind, error) {
	if len(arr) == 0 {
		return value.KindNull, nil
	}
	kind := arr[0].Kind()
	ok := false
	for _, a := range allowed {
		if kind == a {
			ok = true
			break
		}
	}
	if !ok {
		return 0, typeErr(name, pos, fmt.Sprintf("unsupported element type %s", kind))
	}
	for _, v := range arr[1:] {
		if v.Kind() != kind {
			return 0, typeErr(name, pos, "array elements must share a single type")
		}
	}
	return kind, nil
}

// compareSameKind orders two Values of the same Number or String kind.
func compareSameKind(a, b value.Value) int {
	if a.Kind() == value.KindNumber {
		switch {
		case a.AsNumber() < b.AsNumber():
			return -1
		case a.AsNumber() > b.AsNumber():
			return 1
		default:
			return 0
		}
	}
	switch {
	case a.AsString() < b.AsString():
		return -1
	case a.AsString() > b.AsString():
		return 1
	default:
		return 0
	}
}

type sortPair struct {
	idx  int
	item value.Value
	key  value.Value
}

// stableSort decorates each element with its original index, orders by
// key with compareSameKind, and breaks ties by original index — the
// decorate/compare/undecorate idiom spec §4.4 specifies.
func stableSort(pairs []sortPair) {
	sort.Slice(pairs, func(i, j int) bool {
		if c := compareSameKind(pairs[i].key, pairs[j].key); c != 0 {
			return c < 0
		}
		return pairs[i].idx < pairs[j].idx
	})
}

func fnAbs(pos int, args []value.Value) (value.Value, error) {
	n := args[0]
	if n.Kind() != value.KindNumber {
		return value.Null, typeErr("abs", pos, "argument must be a number")
	}
	return value.Number(math.Abs(n.AsNumber())), nil
}

func fnAvg(pos int, args []value.Value) (value.Value, error) {
	arr, err := requireArray("avg", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	if len(arr) == 0 {
		return value.Null, nil
	}
	var total float64
	for _, v := range arr {
		if v.Kind() != value.KindNumber {
			return value.Null, typeErr("avg", pos, "array elements must be numbers")
		}
		total += v.AsNumber()
	}
	return value.Number(total / float64(len(arr))), nil
}

func fnCeil(pos int, args []value.Value) (value.Value, error) {
	if args[0].Kind() != value.KindNumber {
		return value.Null, typeErr("ceil", pos, "argument must be a number")
	}
	return value.Number(math.Ceil(args[0].AsNumber())), nil
}

func fnContains(pos int, args []value.Value) (value.Value, error) {
	x, y := args[0], args[1]
	switch x.Kind() {
	case value.KindArray:
		for _, e := range x.AsArray() {
			if value.Equal(e, y) {
				return value.Bool(true), nil
			}
		}
		return value.Bool(false), nil
	case value.KindString:
		if y.Kind() != value.KindString {
			return value.Bool(false), nil
		}
		return value.Bool(strings.Contains(x.AsString(), y.AsString())), nil
	default:
		return value.Null, typeErr("contains", pos, "first argument must be an array or string")
	}
}

func fnEndsWith(pos int, args []value.Value) (value.Value, error) {
	s, suffix := args[0], args[1]
	if s.Kind() != value.KindString || suffix.Kind() != value.KindString {
		return value.Null, typeErr("ends_with", pos, "arguments must be strings")
	}
	return value.Bool(strings.HasSuffix(s.AsString(), suffix.AsString())), nil
}

func fnFloor(pos int, args []value.Value) (value.Value, error) {
	if args[0].Kind() != value.KindNumber {
		return value.Null, typeErr("floor", pos, "argument must be a number")
	}
	return value.Number(math.Floor(args[0].AsNumber())), nil
}

func fnJoin(pos int, args []value.Value) (value.Value, error) {
	sep, arr := args[0], args[1]
	if sep.Kind() != value.KindString {
		return value.Null, typeErr("join", pos, "first argument must be a string")
	}
	elems, err := requireArray("join", pos, arr)
	if err != nil {
		return value.Null, err
	}
	parts := make([]string, len(elems))
	for i, e := range elems {
		if e.Kind() != value.KindString {
			return value.Null, typeErr("join", pos, "array elements must be strings")
		}
		parts[i] = e.AsString()
	}
	return value.String(strings.Join(parts, sep.AsString())), nil
}

func fnKeys(pos int, args []value.Value) (value.Value, error) {
	obj, err := requireObject("keys", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, value.String(pair.Key))
	}
	return value.Array(out), nil
}

func fnLength(pos int, args []value.Value) (value.Value, error) {
	switch x := args[0]; x.Kind() {
	case value.KindString:
		return value.Number(float64(len([]rune(x.AsString())))), nil
	case value.KindArray:
		return value.Number(float64(len(x.AsArray()))), nil
	case value.KindObject:
		return value.Number(float64(x.AsObject().Len())), nil
	default:
		return value.Null, typeErr("length", pos, "argument must be a string, array, or object")
	}
}

func fnMap(pos int, args []value.Value) (value.Value, error) {
	expr, arr := args[0], args[1]
	if expr.Kind() != value.KindExpression {
		return value.Null, typeErr("map", pos, "first argument must be an expression reference")
	}
	elems, err := requireArray("map", pos, arr)
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, len(elems))
	for i, e := range elems {
		v, err := expr.AsExpression().Invoke(e)
		if err != nil {
			return value.Null, err
		}
		out[i] = v
	}
	return value.Array(out), nil
}

func fnMax(pos int, args []value.Value) (value.Value, error) {
	return reduceExtreme("max", pos, args[0], func(c int) bool { return c > 0 })
}

func fnMin(pos int, args []value.Value) (value.Value, error) {
	return reduceExtreme("min", pos, args[0], func(c int) bool { return c < 0 })
}

func reduceExtreme(name string, pos int, arrVal value.Value, better func(cmp int) bool) (value.Value, error) {
	arr, err := requireArray(name, pos, arrVal)
	if err != nil {
		return value.Null, err
	}
	if _, err := typedReduce(name, pos, arr, value.KindNumber, value.KindString); err != nil {
		return value.Null, err
	}
	if len(arr) == 0 {
		return value.Null, nil
	}
	best := arr[0]
	for _, v := range arr[1:] {
		if better(compareSameKind(v, best)) {
			best = v
		}
	}
	return best, nil
}

func fnMaxBy(pos int, args []value.Value) (value.Value, error) {
	return reduceExtremeBy("max_by", pos, args[0], args[1], func(c int) bool { return c > 0 })
}

func fnMinBy(pos int, args []value.Value) (value.Value, error) {
	return reduceExtremeBy("min_by", pos, args[0], args[1], func(c int) bool { return c < 0 })
}

func reduceExtremeBy(name string, pos int, arrVal, exprVal value.Value, better func(cmp int) bool) (value.Value, error) {
	arr, err := requireArray(name, pos, arrVal)
	if err != nil {
		return value.Null, err
	}
	if exprVal.Kind() != value.KindExpression {
		return value.Null, typeErr(name, pos, "second argument must be an expression reference")
	}
	if len(arr) == 0 {
		return value.Null, nil
	}
	expr := exprVal.AsExpression()
	keys := make([]value.Value, len(arr))
	for i, e := range arr {
		k, err := expr.Invoke(e)
		if err != nil {
			return value.Null, err
		}
		keys[i] = k
	}
	if _, err := typedReduce(name, pos, keys, value.KindNumber, value.KindString); err != nil {
		return value.Null, err
	}
	bestItem, bestKey := arr[0], keys[0]
	for i := 1; i < len(arr); i++ {
		if better(compareSameKind(keys[i], bestKey)) {
			bestItem, bestKey = arr[i], keys[i]
		}
	}
	return bestItem, nil
}

func fnNotNull(pos int, args []value.Value) (value.Value, error) {
	for _, v := range args {
		if !v.IsNull() {
			return v, nil
		}
	}
	return value.Null, nil
}

func fnReverse(pos int, args []value.Value) (value.Value, error) {
	switch x := args[0]; x.Kind() {
	case value.KindArray:
		src := x.AsArray()
		out := make([]value.Value, len(src))
		for i, v := range src {
			out[len(src)-1-i] = v
		}
		return value.Array(out), nil
	case value.KindString:
		runes := []rune(x.AsString())
		for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
			runes[i], runes[j] = runes[j], runes[i]
		}
		return value.String(string(runes)), nil
	default:
		return value.Null, typeErr("reverse", pos, "argument must be an array or string")
	}
}

func fnSort(pos int, args []value.Value) (value.Value, error) {
	arr, err := requireArray("sort", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	if _, err := typedReduce("sort", pos, arr, value.KindNumber, value.KindString); err != nil {
		return value.Null, err
	}
	pairs := make([]sortPair, len(arr))
	for i, v := range arr {
		pairs[i] = sortPair{idx: i, item: v, key: v}
	}
	stableSort(pairs)
	out := make([]value.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.item
	}
	return value.Array(out), nil
}

func fnSortBy(pos int, args []value.Value) (value.Value, error) {
	arr, err := requireArray("sort_by", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	if args[1].Kind() != value.KindExpression {
		return value.Null, typeErr("sort_by", pos, "second argument must be an expression reference")
	}
	expr := args[1].AsExpression()
	pairs := make([]sortPair, len(arr))
	keys := make([]value.Value, len(arr))
	for i, e := range arr {
		k, err := expr.Invoke(e)
		if err != nil {
			return value.Null, err
		}
		keys[i] = k
		pairs[i] = sortPair{idx: i, item: e, key: k}
	}
	if _, err := typedReduce("sort_by", pos, keys, value.KindNumber, value.KindString); err != nil {
		return value.Null, err
	}
	stableSort(pairs)
	out := make([]value.Value, len(pairs))
	for i, p := range pairs {
		out[i] = p.item
	}
	return value.Array(out), nil
}

func fnStartsWith(pos int, args []value.Value) (value.Value, error) {
	s, prefix := args[0], args[1]
	if s.Kind() != value.KindString || prefix.Kind() != value.KindString {
		return value.Null, typeErr("starts_with", pos, "arguments must be strings")
	}
	return value.Bool(strings.HasPrefix(s.AsString(), prefix.AsString())), nil
}

func fnSum(pos int, args []value.Value) (value.Value, error) {
	arr, err := requireArray("sum", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	var total float64
	for _, v := range arr {
		if v.Kind() != value.KindNumber {
			return value.Null, typeErr("sum", pos, "array elements must be numbers")
		}
		total += v.AsNumber()
	}
	return value.Number(total), nil
}

func fnToArray(pos int, args []value.Value) (value.Value, error) {
	if args[0].Kind() == value.KindArray {
		return args[0], nil
	}
	return value.Array([]value.Value{args[0]}), nil
}

func fnToNumber(pos int, args []value.Value) (value.Value, error) {
	switch x := args[0]; x.Kind() {
	case value.KindNumber:
		return x, nil
	case value.KindString:
		n, err := strconv.ParseFloat(x.AsString(), 64)
		if err != nil {
			return value.Null, nil
		}
		return value.Number(n), nil
	default:
		return value.Null, nil
	}
}

func fnToString(pos int, args []value.Value) (value.Value, error) {
	if args[0].Kind() == value.KindString {
		return args[0], nil
	}
	return value.String(value.Encode(args[0])), nil
}

func fnType(pos int, args []value.Value) (value.Value, error) {
	return value.String(args[0].TypeName()), nil
}

func fnValues(pos int, args []value.Value) (value.Value, error) {
	obj, err := requireObject("values", pos, args[0])
	if err != nil {
		return value.Null, err
	}
	out := make([]value.Value, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return value.Array(out), nil
}

func requireArray(name string, pos int, v value.Value) ([]value.Value, error) {
	if v.Kind() != value.KindArray {
		return nil, typeErr(name, pos, "argument must be an array")
	}
	return v.AsArray(), nil
}

func requireObject(name string, pos int, v value.Value) (*value.Object, error) {
	if v.Kind() != value.KindObject {
		return nil, typeErr(name, pos, "argument must be an object")
	}
	return v.AsObject(), nil
}
