package jmespath

import (
	"log/slog"

	"github.com/perbu/jmespath/interp"
)

// defaultCacheSize is the expression->AST cache cap before a full reset
// (spec §5: "a simple size cap such as 1,024 entries and full reset on
// overflow").
const defaultCacheSize = 1024

// Options configures a Runtime (spec §6.1's runtime(options)). Every
// field is optional; the zero Options is a valid, fully-default
// configuration.
type Options struct {
	// FnDispatcher overrides the built-in function registry. It MAY call
	// interp.CallBuiltin to fall back to the default behavior for names
	// it does not itself recognize. Spec §6.1's only formally specified
	// option.
	FnDispatcher interp.FuncDispatcher

	// MaxDepth bounds AST/recursion depth in both the parser and the
	// interpreter (spec §5). Zero or negative uses the built-in default
	// of 200.
	MaxDepth int

	// CacheSize caps the expression->AST cache before it is fully reset
	// (spec §5). Zero or negative uses the built-in default of 1024.
	CacheSize int

	// Logger receives debug-level cache trace records. Nil builds a
	// default slog.NewTextHandler(os.Stderr, nil), the same convention
	// harness.Config.Logger uses.
	Logger *slog.Logger
}
