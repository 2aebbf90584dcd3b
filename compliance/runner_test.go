// Package compliance embeds a small subset of the public JMESPath
// compliance corpus (spec §8.4) as JSON fixtures and drives them here.
// This is ambient test tooling, not the general-purpose compliance-runner
// contract spec §1 places out of scope as a deliverable: there is no
// exported runner, just a package test.
package compliance

import (
	"embed"
	"encoding/json"
	"path"
	"testing"

	"github.com/perbu/jmespath"
	"github.com/perbu/jmespath/interp"
	"github.com/perbu/jmespath/lexer"
	"github.com/perbu/jmespath/parser"
	"github.com/perbu/jmespath/value"
)

//go:embed testdata/*.json
var fixtures embed.FS

type group struct {
	Given json.RawMessage   `json:"given"`
	Cases []json.RawMessage `json:"cases"`
}

func TestComplianceCorpus(t *testing.T) {
	entries, err := fixtures.ReadDir("testdata")
	if err != nil {
		t.Fatal(err)
	}
	for _, entry := range entries {
		name := entry.Name()
		t.Run(name, func(t *testing.T) {
			raw, err := fixtures.ReadFile(path.Join("testdata", name))
			if err != nil {
				t.Fatal(err)
			}
			var groups []group
			if err := json.Unmarshal(raw, &groups); err != nil {
				t.Fatalf("parsing fixture: %v", err)
			}
			for gi, g := range groups {
				given, err := value.Decode(g.Given)
				if err != nil {
					t.Fatalf("group %d: decoding given: %v", gi, err)
				}
				for ci, rawCase := range g.Cases {
					runCase(t, gi, ci, given, rawCase)
				}
			}
		})
	}
}

func runCase(t *testing.T, gi, ci int, given value.Value, rawCase json.RawMessage) {
	t.Helper()

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(rawCase, &fields); err != nil {
		t.Fatalf("group %d case %d: parsing case: %v", gi, ci, err)
	}
	var expr string
	if err := json.Unmarshal(fields["expression"], &expr); err != nil {
		t.Fatalf("group %d case %d: missing expression: %v", gi, ci, err)
	}

	errField, wantsError := fields["error"]

	node, parseErr := jmespath.Parse(expr)
	if wantsError {
		var errKind string
		json.Unmarshal(errField, &errKind)
		if parseErr != nil {
			assertErrorFamily(t, expr, errKind, parseErr)
			return
		}
		got, evalErr := interp.Eval(node, given)
		if evalErr == nil {
			t.Fatalf("expression %q: expected %q error, got result %v", expr, errKind, got)
		}
		assertErrorFamily(t, expr, errKind, evalErr)
		return
	}

	if parseErr != nil {
		t.Fatalf("expression %q: unexpected parse error: %v", expr, parseErr)
	}
	got, err := interp.Eval(node, given)
	if err != nil {
		t.Fatalf("expression %q: unexpected eval error: %v", expr, err)
	}

	wantRaw, ok := fields["result"]
	if !ok {
		t.Fatalf("expression %q: case has neither result nor error", expr)
	}
	want, err := value.Decode(wantRaw)
	if err != nil {
		t.Fatalf("expression %q: decoding expected result: %v", expr, err)
	}
	if !value.Equal(got, want) {
		t.Fatalf("expression %q: got %s, want %s", expr, value.Encode(got), value.Encode(want))
	}
}

// assertErrorFamily maps the compliance corpus's error-class strings onto
// this engine's LexError/ParseError/RuntimeError families (spec §7).
func assertErrorFamily(t *testing.T, expr, kind string, err error) {
	t.Helper()
	switch kind {
	case "syntax":
		switch err.(type) {
		case *lexer.Error, *parser.Error:
			return
		default:
			t.Fatalf("expression %q: expected a lex/parse error, got %T: %v", expr, err, err)
		}
	case "invalid-type", "invalid-arity", "invalid-value", "unknown-function":
		if _, ok := err.(*interp.Error); !ok {
			t.Fatalf("expression %q: expected a runtime error, got %T: %v", expr, err, err)
		}
	default:
		// Unrecognized error class label: any error at all satisfies it.
	}
}
