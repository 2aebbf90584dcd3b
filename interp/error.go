package interp

import "fmt"

// Error is a RuntimeError per spec §7: unknown function name, arity or
// type mismatch, or an invalid slice step of 0. Errors raised by the
// interpreter carry the position of the AST node being evaluated; Pos is
// 0 only for an error built without one (spec §6.4).
type Error struct {
	Name    string
	Pos     int
	Message string
}

func (e *Error) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %s", e.Name, e.Message)
	}
	return e.Message
}

// Position returns the 1-based character offset of the AST node that
// triggered the error, or 0 if it originated outside parsing.
func (e *Error) Position() int { return e.Pos }

// Kind identifies the error family for callers that type-switch across
// LexError/ParseError/RuntimeError (spec §7).
func (e *Error) Kind() string { return "RuntimeError" }
