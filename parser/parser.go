// Package parser implements the Pratt parser described in spec §4.2: a
// token-indexed nud/led dispatch table (not a precedence-climbing switch,
// per spec §9's design note) driving a recursive binding-power loop.
package parser

import (
	"fmt"

	"github.com/perbu/jmespath/ast"
	"github.com/perbu/jmespath/lexer"
	"github.com/perbu/jmespath/value"
)

// maxDepth bounds expr() recursion against pathological nesting (spec §5).
const maxDepth = 200

// Parser walks a fully-tokenized expression. Tokenizing upfront (rather
// than pulling tokens lazily) means a malformed expression always fails
// with a LexError before any ParseError has a chance to fire, matching
// spec §7's error-family precedence.
type Parser struct {
	expr     string
	tokens   []lexer.Token
	pos      int
	depth    int
	maxDepth int
}

// Parse tokenizes and parses expr into an AST root, or returns a
// *lexer.Error / *parser.Error describing the first failure. Equivalent
// to ParseWithMaxDepth(expr, 0) (the default depth guard, spec §5).
func Parse(expr string) (ast.Node, error) {
	return ParseWithMaxDepth(expr, 0)
}

// ParseWithMaxDepth is Parse with a caller-supplied recursion guard
// (spec §5, surfaced as jmespath.Options.MaxDepth); limit <= 0 uses the
// default of 200.
func ParseWithMaxDepth(expr string, limit int) (ast.Node, error) {
	if limit <= 0 {
		limit = maxDepth
	}
	toks, err := lexer.All(expr)
	if err != nil {
		return nil, err
	}
	p := &Parser{expr: expr, tokens: toks, maxDepth: limit}
	node, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if p.current().Kind != lexer.EOF {
		return nil, p.errorAt(p.current(), fmt.Sprintf("unexpected trailing token %s", p.current().Kind))
	}
	return node, nil
}

func (p *Parser) current() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) lookahead(n int) lexer.Token {
	i := p.pos + n
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // eof
	}
	return p.tokens[i]
}

func (p *Parser) advance() {
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
}

func (p *Parser) errorAt(tok lexer.Token, msg string) error {
	return &Error{Expr: p.expr, Pos: tok.Pos, Message: msg}
}

func (p *Parser) expect(k lexer.Kind, context string) error {
	if p.current().Kind != k {
		return p.errorAt(p.current(), fmt.Sprintf("expected %s %s, got %s", k, context, p.current().Kind))
	}
	return nil
}

// expr is the Pratt driver: parse a nud, then fold in leds while their
// binding power exceeds rbp.
func (p *Parser) expr(rbp int) (ast.Node, error) {
	p.depth++
	if p.depth > p.maxDepth {
		p.depth--
		return nil, p.errorAt(p.current(), "expression nested too deeply")
	}
	defer func() { p.depth-- }()

	tok := p.current()
	p.advance()
	nud := nudTable[tok.Kind]
	if nud == nil {
		return nil, p.errorAt(tok, fmt.Sprintf("invalid use of %s", tok.Kind))
	}
	left, err := nud(p, tok)
	if err != nil {
		return nil, err
	}

	for rbp < bindingPower(p.current().Kind) {
		tok = p.current()
		p.advance()
		led := ledTable[tok.Kind]
		if led == nil {
			return nil, p.errorAt(tok, fmt.Sprintf("invalid use of %s", tok.Kind))
		}
		left, err = led(p, tok, left)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseProjection parses the right-hand side of a projection, per spec
// §4.2: a dangling projection (nothing left of sufficient binding power to
// consume) evaluates its remainder against the identity expression.
func (p *Parser) parseProjection(rbp int) (ast.Node, error) {
	if bindingPower(p.current().Kind) < 10 {
		return &ast.Current{BaseNode: ast.NewBase(p.current().Pos)}, nil
	}
	if p.current().Kind == lexer.DOT {
		tok := p.current()
		p.advance()
		if !isAfterDot(p.current().Kind) {
			return nil, p.errorAt(p.current(), "expected identifier, \"[\", \"{\" or \"*\" after \".\"")
		}
		return p.parseDotRHS(tok, rbp)
	}
	if p.current().Kind == lexer.LBRACKET || p.current().Kind == lexer.FILTER {
		return p.expr(rbp)
	}
	return nil, p.errorAt(p.current(), "syntax error in projection")
}

func isAfterDot(k lexer.Kind) bool {
	switch k {
	case lexer.IDENTIFIER, lexer.QUOTED_IDENTIFIER, lexer.LBRACKET, lexer.LBRACE, lexer.STAR:
		return true
	}
	return false
}

// parseDotRHS handles the "dot" token of a projection continuation in the
// same way led's DOT handler does, minus the "left" it folds into.
func (p *Parser) parseDotRHS(_ lexer.Token, rbp int) (ast.Node, error) {
	if p.current().Kind == lexer.LBRACKET {
		p.advance()
		return p.parseMultiSelectList()
	}
	return p.expr(rbp)
}

// parseArrayIndexExpr parses the contents of "[...]" once the lexer has
// told us it is a number/colon form, up to and including the closing
// bracket (spec §4.2, §4.3).
func (p *Parser) parseArrayIndexExpr() (ast.Node, error) {
	pos := p.current().Pos
	var parts [3]*int64
	idx := 0
	sawColon := false
	for p.current().Kind != lexer.RBRACKET {
		switch p.current().Kind {
		case lexer.COLON:
			sawColon = true
			idx++
			if idx > 2 {
				return nil, p.errorAt(p.current(), "too many colons in slice expression")
			}
			p.advance()
		case lexer.NUMBER:
			n := p.current().Num
			parts[idx] = &n
			p.advance()
		default:
			return nil, p.errorAt(p.current(), "expected number or \":\" in index expression")
		}
	}
	if err := p.expect(lexer.RBRACKET, "to close index expression"); err != nil {
		return nil, err
	}
	p.advance()

	if !sawColon {
		if parts[0] == nil {
			return nil, p.errorAt(p.current(), "empty index expression")
		}
		return &ast.Index{BaseNode: ast.NewBase(pos), Value: *parts[0]}, nil
	}
	return &ast.Slice{BaseNode: ast.NewBase(pos), Start: parts[0], Stop: parts[1], Step: parts[2]}, nil
}

// parseMultiSelectList parses "a, b, c]" with the opening "[" already
// consumed (spec §4.2, §4.3).
func (p *Parser) parseMultiSelectList() (ast.Node, error) {
	pos := p.current().Pos
	var children []ast.Node
	for {
		child, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
		if p.current().Kind == lexer.RBRACKET {
			break
		}
		if err := p.expect(lexer.COMMA, "between multi-select-list elements"); err != nil {
			return nil, err
		}
		p.advance()
	}
	p.advance() // rbracket
	return &ast.MultiSelectList{BaseNode: ast.NewBase(pos), Children: children}, nil
}

// parseMultiSelectHash parses "k1: v1, k2: v2}" with the opening "{"
// already consumed (spec §4.2, §4.3).
func (p *Parser) parseMultiSelectHash() (ast.Node, error) {
	pos := p.current().Pos
	var pairs []ast.KeyValue
	for {
		tok := p.current()
		var key string
		switch tok.Kind {
		case lexer.IDENTIFIER:
			key = tok.Str
			p.advance()
		case lexer.QUOTED_IDENTIFIER:
			decoded, err := value.DecodeQuotedIdentifier(tok.Str)
			if err != nil {
				return nil, p.errorAt(tok, err.Error())
			}
			key = decoded
			p.advance()
		default:
			return nil, p.errorAt(tok, "expected identifier or quoted identifier as hash key")
		}
		if err := p.expect(lexer.COLON, "after hash key"); err != nil {
			return nil, err
		}
		p.advance()
		val, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, ast.KeyValue{Key: key, Value: val})
		if p.current().Kind == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(lexer.RBRACE, "to close multi-select-hash"); err != nil {
		return nil, err
	}
	p.advance()
	return &ast.MultiSelectHash{BaseNode: ast.NewBase(pos), Pairs: pairs}, nil
}
