package parser

import "github.com/perbu/jmespath/lexer"

// Binding powers per spec §4.2's precedence table. Indexed by lexer.Kind
// rather than compared in a chain of if/else — the same tagged-dispatch
// idiom the AST and nud/led tables use, not a precedence-climbing switch.
var bindingPowers [numKinds]int

const numKinds = int(lexer.COMPARATOR) + 1

func init() {
	bindingPowers[lexer.PIPE] = 1
	bindingPowers[lexer.COMPARATOR] = 2
	bindingPowers[lexer.OR] = 5
	bindingPowers[lexer.FLATTEN] = 6
	bindingPowers[lexer.STAR] = 20
	bindingPowers[lexer.DOT] = 40
	bindingPowers[lexer.LBRACE] = 50
	bindingPowers[lexer.FILTER] = 50
	bindingPowers[lexer.LBRACKET] = 50
	bindingPowers[lexer.LPAREN] = 60
}

func bindingPower(k lexer.Kind) int {
	if int(k) < 0 || int(k) >= numKinds {
		return 0
	}
	return bindingPowers[k]
}
