package parser

import (
	"github.com/perbu/jmespath/ast"
	"github.com/perbu/jmespath/lexer"
	"github.com/perbu/jmespath/value"
)

type nudFn func(p *Parser, tok lexer.Token) (ast.Node, error)
type ledFn func(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error)

// nudTable and ledTable are indexed by lexer.Kind: the token-indexed
// dispatch spec §9 calls for in place of a string-keyed "visit_" + type
// switch or a precedence-climbing if/else chain.
var nudTable [numKinds]nudFn
var ledTable [numKinds]ledFn

func init() {
	nudTable[lexer.IDENTIFIER] = nudIdentifier
	nudTable[lexer.QUOTED_IDENTIFIER] = nudQuotedIdentifier
	nudTable[lexer.CURRENT] = nudCurrent
	nudTable[lexer.LITERAL] = nudLiteral
	nudTable[lexer.EXPREF] = nudExpref
	nudTable[lexer.LBRACE] = nudLbrace
	nudTable[lexer.FLATTEN] = nudFlatten
	nudTable[lexer.FILTER] = nudFilter
	nudTable[lexer.STAR] = nudStar
	nudTable[lexer.LBRACKET] = nudLbracket

	ledTable[lexer.LBRACKET] = ledLbracket
	ledTable[lexer.DOT] = ledDot
	ledTable[lexer.FLATTEN] = ledFlatten
	ledTable[lexer.OR] = ledOr
	ledTable[lexer.PIPE] = ledPipe
	ledTable[lexer.COMPARATOR] = ledComparator
	ledTable[lexer.FILTER] = ledFilter
	ledTable[lexer.LPAREN] = ledLparen
}

func nudIdentifier(p *Parser, tok lexer.Token) (ast.Node, error) {
	return &ast.Field{BaseNode: ast.NewBase(tok.Pos), Key: tok.Str}, nil
}

func nudQuotedIdentifier(p *Parser, tok lexer.Token) (ast.Node, error) {
	key, err := value.DecodeQuotedIdentifier(tok.Str)
	if err != nil {
		return nil, p.errorAt(tok, err.Error())
	}
	if p.current().Kind == lexer.LPAREN {
		return nil, p.errorAt(p.current(), "quoted identifiers are not allowed as function names")
	}
	return &ast.Field{BaseNode: ast.NewBase(tok.Pos), Key: key}, nil
}

func nudCurrent(p *Parser, tok lexer.Token) (ast.Node, error) {
	return &ast.Current{BaseNode: ast.NewBase(tok.Pos)}, nil
}

func nudLiteral(p *Parser, tok lexer.Token) (ast.Node, error) {
	v, err := value.DecodeLiteral(tok.Str)
	if err != nil {
		return nil, p.errorAt(tok, err.Error())
	}
	return &ast.Literal{BaseNode: ast.NewBase(tok.Pos), Value: v}, nil
}

func nudExpref(p *Parser, tok lexer.Token) (ast.Node, error) {
	child, err := p.expr(2)
	if err != nil {
		return nil, err
	}
	return &ast.ExprRef{BaseNode: ast.NewBase(tok.Pos), Child: child}, nil
}

func nudLbrace(p *Parser, tok lexer.Token) (ast.Node, error) {
	return p.parseMultiSelectHash()
}

// nudFlatten handles a leading "[]" with no left-hand side: the current
// node stands in for the implicit left (spec §4.2).
func nudFlatten(p *Parser, tok lexer.Token) (ast.Node, error) {
	right, err := p.parseProjection(bindingPower(lexer.FLATTEN))
	if err != nil {
		return nil, err
	}
	return &ast.ArrayProjection{
		BaseNode: ast.NewBase(tok.Pos),
		Left:     &ast.Flatten{BaseNode: ast.NewBase(tok.Pos), Child: &ast.Current{BaseNode: ast.NewBase(tok.Pos)}},
		Right:    right,
	}, nil
}

// nudFilter handles a leading "[?...]" with no left-hand side.
func nudFilter(p *Parser, tok lexer.Token) (ast.Node, error) {
	return filterTail(p, tok, &ast.Current{BaseNode: ast.NewBase(tok.Pos)})
}

func nudStar(p *Parser, tok lexer.Token) (ast.Node, error) {
	right, err := p.parseProjection(bindingPower(lexer.STAR))
	if err != nil {
		return nil, err
	}
	return &ast.ObjectProjection{
		BaseNode: ast.NewBase(tok.Pos),
		Left:     &ast.Current{BaseNode: ast.NewBase(tok.Pos)},
		Right:    right,
	}, nil
}

// nudLbracket dispatches on the lookahead per spec §4.2: number/colon is a
// plain index or slice evaluated against whatever data flows in (no
// implicit-current wrapping needed, since Index/Slice nodes evaluate
// directly against their input); "*]" is an array wildcard projection;
// anything else is a multi-select-list.
func nudLbracket(p *Parser, tok lexer.Token) (ast.Node, error) {
	switch p.current().Kind {
	case lexer.NUMBER, lexer.COLON:
		return p.parseArrayIndexExpr()
	case lexer.STAR:
		if p.lookahead(1).Kind == lexer.RBRACKET {
			p.advance() // star
			p.advance() // rbracket
			right, err := p.parseProjection(bindingPower(lexer.STAR))
			if err != nil {
				return nil, err
			}
			return &ast.ArrayProjection{
				BaseNode: ast.NewBase(tok.Pos),
				Left:     &ast.Current{BaseNode: ast.NewBase(tok.Pos)},
				Right:    right,
			}, nil
		}
		return p.parseMultiSelectList()
	default:
		return p.parseMultiSelectList()
	}
}

func ledLbracket(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	switch p.current().Kind {
	case lexer.NUMBER, lexer.COLON:
		right, err := p.parseArrayIndexExpr()
		if err != nil {
			return nil, err
		}
		return &ast.Subexpression{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
	case lexer.STAR:
		p.advance() // star
		if err := p.expect(lexer.RBRACKET, "to close array wildcard"); err != nil {
			return nil, err
		}
		p.advance()
		right, err := p.parseProjection(bindingPower(lexer.STAR))
		if err != nil {
			return nil, err
		}
		return &ast.ArrayProjection{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
	default:
		return nil, p.errorAt(p.current(), "expected number, \":\" or \"*\" in index expression")
	}
}

func ledDot(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	if !isAfterDot(p.current().Kind) {
		return nil, p.errorAt(p.current(), "expected identifier, \"[\", \"{\" or \"*\" after \".\"")
	}
	switch p.current().Kind {
	case lexer.STAR:
		p.advance()
		right, err := p.parseProjection(bindingPower(lexer.STAR))
		if err != nil {
			return nil, err
		}
		return &ast.ObjectProjection{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
	case lexer.LBRACKET:
		p.advance()
		right, err := p.parseMultiSelectList()
		if err != nil {
			return nil, err
		}
		return &ast.Subexpression{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
	default:
		right, err := p.expr(bindingPower(lexer.DOT))
		if err != nil {
			return nil, err
		}
		return &ast.Subexpression{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
	}
}

func ledFlatten(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	right, err := p.parseProjection(bindingPower(lexer.FLATTEN))
	if err != nil {
		return nil, err
	}
	return &ast.ArrayProjection{
		BaseNode: ast.NewBase(tok.Pos),
		Left:     &ast.Flatten{BaseNode: ast.NewBase(tok.Pos), Child: left},
		Right:    right,
	}, nil
}

func ledOr(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	right, err := p.expr(bindingPower(lexer.OR))
	if err != nil {
		return nil, err
	}
	return &ast.Or{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
}

func ledPipe(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	right, err := p.expr(bindingPower(lexer.PIPE))
	if err != nil {
		return nil, err
	}
	return &ast.Pipe{BaseNode: ast.NewBase(tok.Pos), Left: left, Right: right}, nil
}

func ledComparator(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	right, err := p.expr(bindingPower(lexer.COMPARATOR))
	if err != nil {
		return nil, err
	}
	return &ast.Comparator{BaseNode: ast.NewBase(tok.Pos), Op: tok.Str, Left: left, Right: right}, nil
}

func ledFilter(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	return filterTail(p, tok, left)
}

// filterTail parses "predicate]" with the opening "[?" already consumed,
// shared by the nud (implicit current) and led (explicit left) forms.
func filterTail(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	predicate, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RBRACKET, "to close filter expression"); err != nil {
		return nil, err
	}
	p.advance()
	then, err := p.parseProjection(bindingPower(lexer.FILTER))
	if err != nil {
		return nil, err
	}
	return &ast.ArrayProjection{
		BaseNode: ast.NewBase(tok.Pos),
		Left:     left,
		Right:    &ast.Condition{BaseNode: ast.NewBase(tok.Pos), Predicate: predicate, Then: then},
	}, nil
}

// ledLparen parses a function call; left must be a bare Field node
// standing in for the function name (spec §4.2, §4.4).
func ledLparen(p *Parser, tok lexer.Token, left ast.Node) (ast.Node, error) {
	field, ok := left.(*ast.Field)
	if !ok {
		return nil, p.errorAt(tok, "\"(\" is only valid after a function name")
	}
	var args []ast.Node
	for p.current().Kind != lexer.RPAREN {
		arg, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.current().Kind == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	if err := p.expect(lexer.RPAREN, "to close function call"); err != nil {
		return nil, err
	}
	p.advance()
	return &ast.FunctionCall{BaseNode: ast.NewBase(tok.Pos), Name: field.Key, Args: args}, nil
}
