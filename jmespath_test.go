package jmespath_test

import (
	"testing"

	"github.com/perbu/jmespath"
	"github.com/perbu/jmespath/value"
)

func mustSearch(t *testing.T, expr, data string) value.Value {
	t.Helper()
	d, err := value.Decode([]byte(data))
	if err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	v, err := jmespath.Search(expr, d)
	if err != nil {
		t.Fatalf("Search(%q): %v", expr, err)
	}
	return v
}

func TestIdentityProjectionProperty(t *testing.T) {
	d, _ := value.Decode([]byte(`{"a":[1,2,3]}`))
	got, err := jmespath.Search("@", d)
	if err != nil {
		t.Fatal(err)
	}
	if !value.Equal(got, d) {
		t.Fatalf("got %v, want %v", got, d)
	}
}

func TestPipeSubexpressionAgreementProperty(t *testing.T) {
	data := `{"a":{"b":42}}`
	dot := mustSearch(t, "a.b", data)
	pipe := mustSearch(t, "a | b", data)
	if !value.Equal(dot, pipe) {
		t.Fatalf("dot=%v pipe=%v", dot, pipe)
	}
}

func TestEmptyExpressionIsParseErrorAtOne(t *testing.T) {
	_, err := jmespath.Parse("")
	if err == nil {
		t.Fatal("expected error")
	}
	type positioned interface{ Position() int }
	p, ok := err.(positioned)
	if !ok {
		t.Fatalf("error has no Position(): %T", err)
	}
	if p.Position() != 1 {
		t.Fatalf("got position %d, want 1", p.Position())
	}
}

func TestConcreteScenarios(t *testing.T) {
	cases := []struct {
		expr, data, want string
	}{
		{"a.b", `{"a":{"b":"foo"}}`, `"foo"`},
		{"a[1]", `{"a":[10,20,30]}`, `20`},
		{"a[-1]", `{"a":[10,20,30]}`, `30`},
	}
	for _, c := range cases {
		got := mustSearch(t, c.expr, c.data)
		want, _ := value.Decode([]byte(c.want))
		if !value.Equal(got, want) {
			t.Fatalf("%s on %s: got %v, want %v", c.expr, c.data, got, want)
		}
	}
}

func TestRuntimeCachesAndReevaluates(t *testing.T) {
	rt := jmespath.NewRuntime(jmespath.Options{})
	d, _ := value.Decode([]byte(`{"a":1}`))
	for i := 0; i < 3; i++ {
		got, err := rt.Search("a", d)
		if err != nil {
			t.Fatal(err)
		}
		if got.AsNumber() != 1 {
			t.Fatalf("got %v", got)
		}
	}
}

func TestRuntimeFnDispatcherOverride(t *testing.T) {
	called := false
	rt := jmespath.NewRuntime(jmespath.Options{
		FnDispatcher: func(name string, pos int, args []value.Value) (value.Value, error) {
			if name == "double" {
				called = true
				return value.Number(args[0].AsNumber() * 2), nil
			}
			return value.Null, nil
		},
	})
	d, _ := value.Decode([]byte(`{"a":21}`))
	got, err := rt.Search("double(a)", d)
	if err != nil {
		t.Fatal(err)
	}
	if !called || got.AsNumber() != 42 {
		t.Fatalf("got %v, called=%v", got, called)
	}
}

func TestRuntimeCacheResetAtCap(t *testing.T) {
	rt := jmespath.NewRuntime(jmespath.Options{CacheSize: 2})
	d, _ := value.Decode([]byte(`{}`))
	exprs := []string{"a", "b", "c"}
	for _, e := range exprs {
		if _, err := rt.Search(e, d); err != nil {
			t.Fatal(err)
		}
	}
}
