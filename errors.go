// Package gqlir is the top-level entry point of the GraphQL document parser and IR builder: it
// exposes ParseDocuments, the three error shapes the pipeline raises, and wires together the
// lexer, parser, compiler and cache packages on the caller's behalf.
package gqlir

import (
	"fmt"
	"strings"
)

// ParseException is a single-location syntax or semantic error: a lexer/parser failure, or a
// per-operation validation failure (unknown type, undefined variable, and so on).
type ParseException struct {
	Message  string
	Line     uint
	Position uint
}

func (e *ParseException) Error() string {
	return fmt.Sprintf("%s (line %d, position %d)", e.Message, e.Line, e.Position)
}

// NewParseException builds a ParseException at the given 1-indexed line/column.
func NewParseException(message string, line, position uint) *ParseException {
	return &ParseException{Message: message, Line: line, Position: position}
}

// GraphQLParseException is a whole-document error with no single offending location: duplicate
// operation/fragment names, or an unresolved fragment reference discovered by the linker.
type GraphQLParseException struct {
	Message string
}

func (e *GraphQLParseException) Error() string { return e.Message }

// NewGraphQLParseException builds a GraphQLParseException.
func NewGraphQLParseException(message string) *GraphQLParseException {
	return &GraphQLParseException{Message: message}
}

// GraphQLDocumentParseException wraps a ParseException with the file it occurred in and a
// three-line preview of the offending source, framed the way a terminal diagnostic would render
// it: the line before, the line itself, and the line after, each prefixed with its 1-indexed line
// number, bracketed above and below by a rule of dashes.
type GraphQLDocumentParseException struct {
	FilePath string
	Cause    *ParseException
	Preview  string
}

func (e *GraphQLDocumentParseException) Error() string {
	return fmt.Sprintf("%s: %s\n%s", e.FilePath, e.Cause.Error(), e.Preview)
}

// Unwrap lets errors.As/errors.Is reach the wrapped ParseException.
func (e *GraphQLDocumentParseException) Unwrap() error { return e.Cause }

const previewRule = "----------------------------------------------------"

// NewGraphQLDocumentParseException wraps cause with filePath and a rendered preview of source
// framing cause's line.
func NewGraphQLDocumentParseException(filePath, source string, cause *ParseException) *GraphQLDocumentParseException {
	return &GraphQLDocumentParseException{
		FilePath: filePath,
		Cause:    cause,
		Preview:  renderPreview(source, cause.Line),
	}
}

// renderPreview formats the lines [line-1, line, line+1] of source (1-indexed), each prefixed
// with "[N]: ", framed above and below by a dashed rule. Lines outside the document's bounds are
// omitted.
func renderPreview(source string, line uint) string {
	lines := strings.Split(source, "\n")

	var b strings.Builder
	b.WriteString(previewRule)
	b.WriteByte('\n')

	for _, n := range []uint{line - 1, line, line + 1} {
		if n < 1 || n > uint(len(lines)) {
			continue
		}
		fmt.Fprintf(&b, "[%d]: %s\n", n, lines[n-1])
	}

	b.WriteString(previewRule)
	return b.String()
}
