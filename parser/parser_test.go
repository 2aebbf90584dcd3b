package parser

import (
	"testing"

	"github.com/perbu/jmespath/ast"
)

func mustParse(t *testing.T, expr string) ast.Node {
	t.Helper()
	node, err := Parse(expr)
	if err != nil {
		t.Fatalf("Parse(%q): %v", expr, err)
	}
	return node
}

func TestParseField(t *testing.T) {
	n := mustParse(t, "foo")
	f, ok := n.(*ast.Field)
	if !ok || f.Key != "foo" {
		t.Fatalf("got %#v", n)
	}
}

func TestParseSubexpression(t *testing.T) {
	n := mustParse(t, "foo.bar")
	s, ok := n.(*ast.Subexpression)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	if _, ok := s.Left.(*ast.Field); !ok {
		t.Fatalf("left: got %#v", s.Left)
	}
	if _, ok := s.Right.(*ast.Field); !ok {
		t.Fatalf("right: got %#v", s.Right)
	}
}

func TestParseIndex(t *testing.T) {
	n := mustParse(t, "foo[0]")
	s, ok := n.(*ast.Subexpression)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	idx, ok := s.Right.(*ast.Index)
	if !ok || idx.Value != 0 {
		t.Fatalf("got %#v", s.Right)
	}
}

func TestParseSlice(t *testing.T) {
	n := mustParse(t, "foo[0:2:1]")
	s := n.(*ast.Subexpression)
	sl, ok := s.Right.(*ast.Slice)
	if !ok || sl.Start == nil || *sl.Start != 0 || sl.Stop == nil || *sl.Stop != 2 || sl.Step == nil || *sl.Step != 1 {
		t.Fatalf("got %#v", s.Right)
	}
}

func TestParseWildcardProjection(t *testing.T) {
	n := mustParse(t, "foo[*].bar")
	proj, ok := n.(*ast.ArrayProjection)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	if _, ok := proj.Right.(*ast.Field); !ok {
		t.Fatalf("right: got %#v", proj.Right)
	}
}

func TestParseLeadingFlatten(t *testing.T) {
	n := mustParse(t, "[].foo")
	proj, ok := n.(*ast.ArrayProjection)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	if _, ok := proj.Left.(*ast.Flatten); !ok {
		t.Fatalf("left: got %#v", proj.Left)
	}
}

func TestParseFilter(t *testing.T) {
	n := mustParse(t, "foo[?bar == `1`]")
	proj, ok := n.(*ast.ArrayProjection)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	cond, ok := proj.Right.(*ast.Condition)
	if !ok {
		t.Fatalf("right: got %#v", proj.Right)
	}
	if _, ok := cond.Predicate.(*ast.Comparator); !ok {
		t.Fatalf("predicate: got %#v", cond.Predicate)
	}
}

func TestParsePipe(t *testing.T) {
	n := mustParse(t, "foo[*] | [0]")
	p, ok := n.(*ast.Pipe)
	if !ok {
		t.Fatalf("got %#v", n)
	}
	if _, ok := p.Left.(*ast.ArrayProjection); !ok {
		t.Fatalf("left: got %#v", p.Left)
	}
}

func TestParseOr(t *testing.T) {
	n := mustParse(t, "foo || bar")
	if _, ok := n.(*ast.Or); !ok {
		t.Fatalf("got %#v", n)
	}
}

func TestParseMultiSelectList(t *testing.T) {
	n := mustParse(t, "[foo, bar]")
	m, ok := n.(*ast.MultiSelectList)
	if !ok || len(m.Children) != 2 {
		t.Fatalf("got %#v", n)
	}
}

func TestParseMultiSelectHash(t *testing.T) {
	n := mustParse(t, "{a: foo, b: bar}")
	m, ok := n.(*ast.MultiSelectHash)
	if !ok || len(m.Pairs) != 2 || m.Pairs[0].Key != "a" || m.Pairs[1].Key != "b" {
		t.Fatalf("got %#v", n)
	}
}

func TestParseFunctionCall(t *testing.T) {
	n := mustParse(t, "length(foo)")
	f, ok := n.(*ast.FunctionCall)
	if !ok || f.Name != "length" || len(f.Args) != 1 {
		t.Fatalf("got %#v", n)
	}
}

func TestParseExpref(t *testing.T) {
	n := mustParse(t, "sort_by(foo, &bar)")
	f, ok := n.(*ast.FunctionCall)
	if !ok || len(f.Args) != 2 {
		t.Fatalf("got %#v", n)
	}
	if _, ok := f.Args[1].(*ast.ExprRef); !ok {
		t.Fatalf("arg1: got %#v", f.Args[1])
	}
}

func TestParseCurrent(t *testing.T) {
	n := mustParse(t, "@")
	if _, ok := n.(*ast.Current); !ok {
		t.Fatalf("got %#v", n)
	}
}

func TestParseLiteral(t *testing.T) {
	n := mustParse(t, "`{\"a\": 1}`")
	if _, ok := n.(*ast.Literal); !ok {
		t.Fatalf("got %#v", n)
	}
}

func TestParseEmptyIsError(t *testing.T) {
	_, err := Parse("")
	if err == nil {
		t.Fatal("expected error")
	}
	pe, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if pe.Pos != 1 {
		t.Fatalf("got pos %d, want 1", pe.Pos)
	}
}

func TestParseTrailingGarbageIsError(t *testing.T) {
	_, err := Parse("foo bar")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseBareEqualsPropagatesLexError(t *testing.T) {
	_, err := Parse("foo=bar")
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*Error); ok {
		t.Fatal("expected a lex error, not a parse error")
	}
}

func TestParseQuotedIdentifierAsFunctionNameIsError(t *testing.T) {
	_, err := Parse(`"foo"(bar)`)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseUnbalancedBracketIsError(t *testing.T) {
	_, err := Parse("foo[0")
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestParseDeeplyNestedIsError(t *testing.T) {
	expr := ""
	for i := 0; i < 300; i++ {
		expr += "["
	}
	expr += "0"
	for i := 0; i < 300; i++ {
		expr += "]"
	}
	_, err := Parse(expr)
	if err == nil {
		t.Fatal("expected depth error")
	}
}
