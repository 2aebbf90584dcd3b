// Package interp implements the tree-walking evaluator of spec §4.3 and
// the built-in function registry of spec §4.4.
package interp

import (
	"fmt"

	"github.com/perbu/jmespath/ast"
	"github.com/perbu/jmespath/value"
)

// maxDepth bounds Eval recursion against pathological AST nesting (spec §5).
const maxDepth = 200

// FuncDispatcher overrides the built-in function registry (spec §6.1's
// fn_dispatcher option). It MAY delegate to CallBuiltin for names it does
// not recognize.
type FuncDispatcher func(name string, pos int, args []value.Value) (value.Value, error)

// Interp walks an AST against input data. It carries no mutable state
// beyond the call-stack depth counter, matching spec §5's "no shared
// mutable state during evaluation".
type Interp struct {
	dispatch FuncDispatcher
	depth    int
	maxDepth int
}

// New returns an Interp using the built-in registry, or dispatch if
// non-nil, with the default recursion guard (spec §5).
func New(dispatch FuncDispatcher) *Interp {
	return NewWithMaxDepth(dispatch, 0)
}

// NewWithMaxDepth is New with a caller-supplied recursion guard (spec §5,
// surfaced as jmespath.Options.MaxDepth); limit <= 0 uses the default of
// 200.
func NewWithMaxDepth(dispatch FuncDispatcher, limit int) *Interp {
	if limit <= 0 {
		limit = maxDepth
	}
	return &Interp{dispatch: dispatch, maxDepth: limit}
}

// Eval walks node against the built-in function registry with no
// fn_dispatcher override — the common case used by jmespath.Search.
func Eval(node ast.Node, data value.Value) (value.Value, error) {
	return New(nil).Eval(node, data)
}

// Eval walks node against data using in's function dispatcher.
func (in *Interp) Eval(node ast.Node, data value.Value) (value.Value, error) {
	in.depth++
	if in.depth > in.maxDepth {
		in.depth--
		return value.Null, &Error{Pos: node.Pos(), Message: "expression nested too deeply"}
	}
	defer func() { in.depth-- }()

	switch n := node.(type) {
	case *ast.Current:
		return data, nil

	case *ast.Literal:
		v, ok := n.Value.(value.Value)
		if !ok {
			return value.Null, &Error{Pos: n.Pos(), Message: "internal error: literal not decoded"}
		}
		return v, nil

	case *ast.Field:
		if data.Kind() != value.KindObject {
			return value.Null, nil
		}
		v, ok := data.AsObject().Get(n.Key)
		if !ok {
			return value.Null, nil
		}
		return v, nil

	case *ast.Index:
		return evalIndex(n, data), nil

	case *ast.Slice:
		return evalSlice(n, data)

	case *ast.ExprRef:
		child := n.Child
		return value.FromExpression(&value.Expression{
			Invoke: func(x value.Value) (value.Value, error) { return in.Eval(child, x) },
		}), nil

	case *ast.Subexpression:
		l, err := in.Eval(n.Left, data)
		if err != nil {
			return value.Null, err
		}
		return in.Eval(n.Right, l)

	case *ast.Pipe:
		// Structurally identical to Subexpression: the right side sees the
		// whole left result. "Stops a projection" is a parse-time property
		// (pipe's low binding power ends parse_projection's continuation),
		// not a distinct evaluation rule (spec §4.3, §9).
		l, err := in.Eval(n.Left, data)
		if err != nil {
			return value.Null, err
		}
		return in.Eval(n.Right, l)

	case *ast.Or:
		l, err := in.Eval(n.Left, data)
		if err != nil {
			return value.Null, err
		}
		if l.Truthy() {
			return l, nil
		}
		return in.Eval(n.Right, data)

	case *ast.And:
		l, err := in.Eval(n.Left, data)
		if err != nil {
			return value.Null, err
		}
		if !l.Truthy() {
			return l, nil
		}
		return in.Eval(n.Right, data)

	case *ast.Not:
		c, err := in.Eval(n.Child, data)
		if err != nil {
			return value.Null, err
		}
		return value.Bool(!c.Truthy()), nil

	case *ast.Flatten:
		return in.evalFlatten(n, data)

	case *ast.ArrayProjection:
		return in.evalArrayProjection(n, data)

	case *ast.ObjectProjection:
		return in.evalObjectProjection(n, data)

	case *ast.Comparator:
		return in.evalComparator(n, data)

	case *ast.Condition:
		p, err := in.Eval(n.Predicate, data)
		if err != nil {
			return value.Null, err
		}
		if !p.Truthy() {
			return value.Null, nil
		}
		return in.Eval(n.Then, data)

	case *ast.MultiSelectList:
		if data.IsNull() {
			return value.Null, nil
		}
		out := make([]value.Value, 0, len(n.Children))
		for _, child := range n.Children {
			v, err := in.Eval(child, data)
			if err != nil {
				return value.Null, err
			}
			out = append(out, v)
		}
		return value.Array(out), nil

	case *ast.MultiSelectHash:
		if data.IsNull() {
			return value.Null, nil
		}
		obj := value.NewObject()
		for _, pair := range n.Pairs {
			v, err := in.Eval(pair.Value, data)
			if err != nil {
				return value.Null, err
			}
			obj.Set(pair.Key, v)
		}
		return value.FromObject(obj), nil

	case *ast.FunctionCall:
		return in.evalFunctionCall(n, data)

	default:
		return value.Null, &Error{Pos: node.Pos(), Message: fmt.Sprintf("unhandled ast node %T", node)}
	}
}

func evalIndex(n *ast.Index, data value.Value) value.Value {
	if data.Kind() != value.KindArray {
		return value.Null
	}
	arr := data.AsArray()
	i := n.Value
	if i >= 0 {
		if i < int64(len(arr)) {
			return arr[i]
		}
		return value.Null
	}
	j := i + int64(len(arr))
	if j >= 0 && j < int64(len(arr)) {
		return arr[j]
	}
	return value.Null
}

func (in *Interp) evalFlatten(n *ast.Flatten, data value.Value) (value.Value, error) {
	child, err := in.Eval(n.Child, data)
	if err != nil {
		return value.Null, err
	}
	if child.Kind() != value.KindArray {
		return value.Null, nil
	}
	out := make([]value.Value, 0, len(child.AsArray()))
	for _, e := range child.AsArray() {
		if e.Kind() == value.KindArray {
			out = append(out, e.AsArray()...)
		} else {
			out = append(out, e)
		}
	}
	return value.Array(out), nil
}

func (in *Interp) evalArrayProjection(n *ast.ArrayProjection, data value.Value) (value.Value, error) {
	l, err := in.Eval(n.Left, data)
	if err != nil {
		return value.Null, err
	}
	if l.Kind() != value.KindArray {
		return value.Null, nil
	}
	arr := l.AsArray()
	out := make([]value.Value, 0, len(arr))
	for _, elem := range arr {
		r, err := in.Eval(n.Right, elem)
		if err != nil {
			return value.Null, err
		}
		if !r.IsNull() {
			out = append(out, r)
		}
	}
	return value.Array(out), nil
}

func (in *Interp) evalObjectProjection(n *ast.ObjectProjection, data value.Value) (value.Value, error) {
	l, err := in.Eval(n.Left, data)
	if err != nil {
		return value.Null, err
	}
	if l.Kind() != value.KindObject {
		return value.Null, nil
	}
	obj := l.AsObject()
	out := make([]value.Value, 0, obj.Len())
	for pair := obj.Oldest(); pair != nil; pair = pair.Next() {
		r, err := in.Eval(n.Right, pair.Value)
		if err != nil {
			return value.Null, err
		}
		if !r.IsNull() {
			out = append(out, r)
		}
	}
	return value.Array(out), nil
}

func (in *Interp) evalComparator(n *ast.Comparator, data value.Value) (value.Value, error) {
	l, err := in.Eval(n.Left, data)
	if err != nil {
		return value.Null, err
	}
	r, err := in.Eval(n.Right, data)
	if err != nil {
		return value.Null, err
	}
	switch n.Op {
	case "==":
		return value.Bool(value.Equal(l, r)), nil
	case "!=":
		return value.Bool(!value.Equal(l, r)), nil
	case "<", "<=", ">", ">=":
		if l.Kind() != value.KindNumber || r.Kind() != value.KindNumber {
			return value.Null, nil
		}
		a, b := l.AsNumber(), r.AsNumber()
		var ok bool
		switch n.Op {
		case "<":
			ok = a < b
		case "<=":
			ok = a <= b
		case ">":
			ok = a > b
		case ">=":
			ok = a >= b
		}
		return value.Bool(ok), nil
	default:
		return value.Null, &Error{Pos: n.Pos(), Message: fmt.Sprintf("unknown comparator %q", n.Op)}
	}
}

func (in *Interp) evalFunctionCall(n *ast.FunctionCall, data value.Value) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := in.Eval(a, data)
		if err != nil {
			return value.Null, err
		}
		args[i] = v
	}
	if in.dispatch != nil {
		return in.dispatch(n.Name, n.Pos(), args)
	}
	return CallBuiltin(n.Name, n.Pos(), args)
}
