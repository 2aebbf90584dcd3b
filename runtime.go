// Package jmespath is the public entry point (spec §6.1): Parse, Search,
// Tokenize for one-off calls, and Runtime for a configured, cached,
// reusable evaluator.
package jmespath

import (
	"log/slog"
	"os"
	"sync"

	"github.com/perbu/jmespath/ast"
	"github.com/perbu/jmespath/interp"
	"github.com/perbu/jmespath/lexer"
	"github.com/perbu/jmespath/parser"
	"github.com/perbu/jmespath/value"
)

// Parse compiles expr to an AST, or returns a *lexer.Error / *parser.Error.
func Parse(expr string) (ast.Node, error) {
	return parser.Parse(expr)
}

// Tokenize scans expr into its token stream, primarily for tests and
// tooling (spec §6.1).
func Tokenize(expr string) ([]lexer.Token, error) {
	return lexer.All(expr)
}

// Search parses expr (uncached) and evaluates it against data. Callers
// that repeat expressions should use Runtime instead, which caches
// parsed ASTs.
func Search(expr string, data value.Value) (value.Value, error) {
	node, err := Parse(expr)
	if err != nil {
		return value.Null, err
	}
	return interp.Eval(node, data)
}

// Runtime is a bound search equivalent (spec §6.1): a configured
// evaluator that caches parsed ASTs by expression string and applies the
// configured FnDispatcher/MaxDepth to every evaluation.
type Runtime struct {
	opts   Options
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]ast.Node
}

// NewRuntime builds a Runtime from opts. Safe for concurrent use: cache
// access is mutex-guarded, and evaluation itself has no shared mutable
// state (spec §5).
func NewRuntime(opts Options) *Runtime {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Runtime{
		opts:   opts,
		logger: logger,
		cache:  make(map[string]ast.Node),
	}
}

// Search parses (or reuses a cached parse of) expr and evaluates it
// against data using the Runtime's configured FnDispatcher.
func (r *Runtime) Search(expr string, data value.Value) (value.Value, error) {
	node, err := r.parse(expr)
	if err != nil {
		return value.Null, err
	}
	in := interp.NewWithMaxDepth(r.opts.FnDispatcher, r.opts.MaxDepth)
	return in.Eval(node, data)
}

func (r *Runtime) parse(expr string) (ast.Node, error) {
	r.mu.Lock()
	if node, ok := r.cache[expr]; ok {
		r.mu.Unlock()
		r.logger.Debug("ast cache hit", "expr", expr)
		return node, nil
	}
	r.mu.Unlock()

	node, err := parser.ParseWithMaxDepth(expr, r.opts.MaxDepth)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	cacheSize := r.opts.CacheSize
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	if len(r.cache) >= cacheSize {
		r.logger.Debug("ast cache reset", "size", cacheSize)
		r.cache = make(map[string]ast.Node)
	}
	r.cache[expr] = node
	return node, nil
}
