package parser

import (
	"fmt"
	"strings"
)

// Error is a ParseError per spec §7, rendered with a caret pointing at
// the offending character — the same idea as the teacher's
// DetailedError.Error(), simplified to the four-line format spec §7
// requires verbatim: header, expression, caret line, message.
type Error struct {
	Expr    string
	Pos     int
	Message string
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Syntax error at character %d\n", e.Pos)
	b.WriteString(e.Expr)
	b.WriteByte('\n')
	if e.Pos > 1 {
		b.WriteString(strings.Repeat(" ", e.Pos-1))
	}
	b.WriteString("^\n")
	b.WriteString(e.Message)
	return b.String()
}

// Position returns the 1-based character offset the error occurred at.
func (e *Error) Position() int { return e.Pos }

// Kind identifies the error family for callers that type-switch across
// LexError/ParseError/RuntimeError (spec §7).
func (e *Error) Kind() string { return "ParseError" }
