package lexer

import (
	"fmt"

	"github.com/botobag/artemis-codegen/token"
)

// SyntaxError reports a lexical error at a single location in a Source. It is the lexer-level
// error type; the parser and the root package wrap it into richer, document-aware error shapes.
type SyntaxError struct {
	Source  *token.Source
	Loc     token.Location
	Message string
}

// NewSyntaxError builds a SyntaxError for the given location and message.
func NewSyntaxError(source *token.Source, loc token.Location, message string) *SyntaxError {
	return &SyntaxError{Source: source, Loc: loc, Message: message}
}

func (e *SyntaxError) Error() string {
	info := e.Source.LocationInfoOf(e.Loc)
	return fmt.Sprintf("Syntax Error: %s (%s:%d:%d)", e.Message, info.Name, info.Line, info.Column)
}
