// Package ast defines the JMESPath abstract syntax tree produced by the
// parser and walked by the interpreter (spec §3.3).
//
// Each grammar production gets its own concrete Go type implementing
// Node, rather than one generic struct dispatched on a string tag the way
// the teacher's VCL parser's "visit_" + node.Type convention (and the
// reference go-jmespath parser's single ASTNode{nodeType, value,
// children}) does it. The interpreter then type-switches over concrete
// types — an exhaustive, compiler-checked tagged-union match instead of a
// string key a typo can silently miss.
package ast

import "fmt"

// Node is any AST node. Pos is the 1-based character position of the
// token that introduced the node, used for runtime error reporting.
type Node interface {
	fmt.Stringer
	Pos() int
	node()
}

// BaseNode carries the source position every node needs and satisfies
// the node() marker, so concrete types only need to embed it.
type BaseNode struct {
	position int
}

func (b BaseNode) Pos() int { return b.position }
func (BaseNode) node()      {}

// NewBase constructs a BaseNode for the given source position.
func NewBase(pos int) BaseNode { return BaseNode{position: pos} }

// Field is `name` or `"name"` — a single object key lookup (spec §3.3).
type Field struct {
	BaseNode
	Key string
}

func (f *Field) String() string { return fmt.Sprintf("Field(%s)", f.Key) }

// Index is `[n]` — an array index, possibly negative (spec §3.3).
type Index struct {
	BaseNode
	Value int64
}

func (i *Index) String() string { return fmt.Sprintf("Index(%d)", i.Value) }

// Slice is `[start:stop:step]`; nil entries mean "not specified"
// (spec §3.3, §4.3).
type Slice struct {
	BaseNode
	Start *int64
	Stop  *int64
	Step  *int64
}

func (s *Slice) String() string { return "Slice" }

// Current is `@` — the identity expression (spec §3.3, §4.3).
type Current struct {
	BaseNode
}

func (c *Current) String() string { return "Current" }

// Literal is a `` `json` `` literal, already decoded to a value.Value at
// parse time (spec §3.3). Rather than importing package value, Literal
// stores the decoded payload behind a lightweight interface — see
// LiteralValue.
type Literal struct {
	BaseNode
	Value LiteralValue
}

func (l *Literal) String() string { return "Literal" }

// LiteralValue is satisfied by value.Value; declared here (rather than
// importing package value directly) only to avoid the otherwise-needless
// ast -> value dependency for every other node kind. parser constructs
// Literal.Value as a value.Value, and interp recovers it with a type
// assertion.
type LiteralValue interface{}

// ExprRef is `&expr` — a first-class reference to an unevaluated
// subexpression (spec §3.3).
type ExprRef struct {
	BaseNode
	Child Node
}

func (e *ExprRef) String() string { return "ExprRef" }

// Subexpression is `left.right` (spec §3.3).
type Subexpression struct {
	BaseNode
	Left, Right Node
}

func (s *Subexpression) String() string { return "Subexpression" }

// Pipe is `left | right`; it is the only node that stops a projection
// (spec §4.3 "Projection termination").
type Pipe struct {
	BaseNode
	Left, Right Node
}

func (p *Pipe) String() string { return "Pipe" }

// Or is `left || right` (spec §3.3, §4.3).
type Or struct {
	BaseNode
	Left, Right Node
}

func (o *Or) String() string { return "Or" }

// And is `left && right`. Spec §3.3/§9 mark this reserved: no token or
// grammar rule in spec §4.1/§4.2 produces an And node, since JMESPath's
// `[?...]` filter uses comparators and `||`, not a boolean `&&` operator.
// The variant is kept so a future grammar extension has a typed home
// without migrating the AST; nothing in this package constructs one.
type And struct {
	BaseNode
	Left, Right Node
}

func (a *And) String() string { return "And" }

// Not is `!child`. Reserved for the same reason as And (spec §9); no
// nud/led handler produces one.
type Not struct {
	BaseNode
	Child Node
}

func (n *Not) String() string { return "Not" }

// Flatten is `left[]` — splice one level of array nesting (spec §3.3,
// §4.3, glossary "Flatten").
type Flatten struct {
	BaseNode
	Child Node
}

func (f *Flatten) String() string { return "Flatten" }

// ArrayProjection evaluates Right once per element of the array Left
// produces, dropping Null results (spec §3.3, §4.3, glossary
// "Projection").
type ArrayProjection struct {
	BaseNode
	Left, Right Node
}

func (a *ArrayProjection) String() string { return "ArrayProjection" }

// ObjectProjection is ArrayProjection's object-valued counterpart: Left
// must produce an Object, iterated in insertion order (spec §3.3, §4.3).
type ObjectProjection struct {
	BaseNode
	Left, Right Node
}

func (o *ObjectProjection) String() string { return "ObjectProjection" }

// Comparator is `left op right` for op in {==, !=, <, <=, >, >=}
// (spec §3.3, §4.3).
type Comparator struct {
	BaseNode
	Op          string
	Left, Right Node
}

func (c *Comparator) String() string { return fmt.Sprintf("Comparator(%s)", c.Op) }

// Condition is the `[?predicate]` clause wrapped around a projection's
// right side (spec §3.3, §4.3).
type Condition struct {
	BaseNode
	Predicate Node
	Then      Node
}

func (c *Condition) String() string { return "Condition" }

// MultiSelectList is `[a, b, c]` (spec §3.3, §4.3).
type MultiSelectList struct {
	BaseNode
	Children []Node
}

func (m *MultiSelectList) String() string { return "MultiSelectList" }

// KeyValue is one `key: value` pair inside a MultiSelectHash.
type KeyValue struct {
	Key   string
	Value Node
}

// MultiSelectHash is `{k1: a, k2: b}`; Pairs preserves declaration order
// (spec §3.3, §4.3).
type MultiSelectHash struct {
	BaseNode
	Pairs []KeyValue
}

func (m *MultiSelectHash) String() string { return "MultiSelectHash" }

// FunctionCall is `name(args...)` (spec §3.3, §4.4).
type FunctionCall struct {
	BaseNode
	Name string
	Args []Node
}

func (f *FunctionCall) String() string { return fmt.Sprintf("FunctionCall(%s)", f.Name) }
