// Package value implements the tagged-union data model JMESPath expressions
// operate over: the universe of JSON-shaped values plus the first-class
// expression-reference values produced by "&...".
package value

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies which variant of Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
	KindExpression
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindExpression:
		return "expression"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Object is the insertion-ordered string-keyed map backing JMESPath's
// object values. It is the primitive representation, not a side channel
// bolted onto a plain map: iterating from Oldest() via Next() always
// yields keys in the order they were first inserted.
type Object = orderedmap.OrderedMap[string, Value]

// NewObject returns an empty, insertion-ordered Object.
func NewObject() *Object {
	return orderedmap.New[string, Value]()
}

// Expression wraps an unevaluated AST handle produced by "&expr". The
// interp package supplies Invoke; value stays ignorant of ast/interp types
// to avoid an import cycle (interp depends on value).
type Expression struct {
	Invoke func(current Value) (Value, error)
}

// Value is a tagged union over Null, Bool, Number, String, Array, Object
// and Expression. The zero Value is Null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
	expr *Expression
}

// Null is the JMESPath null value; it also stands in for "absent" per §3.1.
var Null = Value{kind: KindNull}

// Bool constructs a boolean Value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number constructs a numeric Value.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String constructs a string Value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array constructs an array Value from an ordered slice. The slice is
// retained, not copied; callers must treat it as immutable afterward.
func Array(elems []Value) Value { return Value{kind: KindArray, arr: elems} }

// FromObject constructs an object Value from an already-built Object.
func FromObject(o *Object) Value { return Value{kind: KindObject, obj: o} }

// FromExpression constructs an expression-reference Value.
func FromExpression(e *Expression) Value { return Value{kind: KindExpression, expr: e} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; callers must check Kind() first.
func (v Value) AsBool() bool { return v.b }

// AsNumber returns the numeric payload; callers must check Kind() first.
func (v Value) AsNumber() float64 { return v.n }

// AsString returns the string payload; callers must check Kind() first.
func (v Value) AsString() string { return v.s }

// AsArray returns the element slice; callers must check Kind() first.
func (v Value) AsArray() []Value { return v.arr }

// AsObject returns the backing ordered map; callers must check Kind() first.
func (v Value) AsObject() *Object { return v.obj }

// AsExpression returns the expression-reference payload; callers must check
// Kind() first.
func (v Value) AsExpression() *Expression { return v.expr }

// Truthy implements JMESPath's "falsy" rule used by `or` and `[?...]`:
// Null, false, "", [] and {} are falsy; everything else, including 0 and
// "0", is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindString:
		return v.s != ""
	case KindArray:
		return len(v.arr) != 0
	case KindObject:
		return v.obj.Len() != 0
	default:
		return true
	}
}

// Equal implements structural equality: arrays compare elementwise in
// order, objects compare by key/value pairs regardless of key order.
// Numbers compare by value; Expression values are never equal to anything,
// including themselves, since they have no JMESPath-visible identity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindNumber:
		return a.n == b.n
	case KindString:
		return a.s == b.s
	case KindArray:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for pair := a.obj.Oldest(); pair != nil; pair = pair.Next() {
			bv, ok := b.obj.Get(pair.Key)
			if !ok || !Equal(pair.Value, bv) {
				return false
			}
		}
		return true
	case KindExpression:
		return false
	default:
		return false
	}
}

// TypeName returns the JMESPath type() string for v, per spec §4.4.
func (v Value) TypeName() string {
	return v.kind.String()
}
