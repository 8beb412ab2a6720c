package token

import "fmt"

// Kind identifies the lexical class of a Token.
//
// Reference: https://spec.graphql.org/June2018/#sec-Appendix-Grammar-Summary.Lexical-Tokens
type Kind int

// Enumeration of Kind.
const (
	SOF Kind = iota + 1 // <SOF>
	EOF                 // <EOF>
	Bang
	Dollar
	Amp
	LeftParen
	RightParen
	Spread // ...
	Colon
	Equals
	At
	LeftBracket
	RightBracket
	LeftBrace
	Pipe
	RightBrace
	Name
	Int
	Float
	String
	BlockString
	Comment
)

var kindNames = map[Kind]string{
	SOF: "<SOF>", EOF: "<EOF>",
	Bang: "!", Dollar: "$", Amp: "&",
	LeftParen: "(", RightParen: ")", Spread: "...",
	Colon: ":", Equals: "=", At: "@",
	LeftBracket: "[", RightBracket: "]",
	LeftBrace: "{", Pipe: "|", RightBrace: "}",
	Name: "Name", Int: "Int", Float: "Float",
	String: "String", BlockString: "BlockString", Comment: "Comment",
}

func (kind Kind) String() string {
	if name, ok := kindNames[kind]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(kind))
}

var _ fmt.Stringer = Kind(0)

// Token is one lexeme in a Source, linked to its neighbours so that an AST node can recover its
// full token range (and thus its source location) without storing a Source reference of its own.
type Token struct {
	Kind Kind

	// Loc is where the token begins in Source.
	Loc Location

	// Len is the token's length in bytes.
	Len uint

	// Text holds the interpreted value for Name/Int/Float/String/BlockString tokens; empty for
	// punctuation and comments.
	Text string

	// Source is the document this token was lexed from.
	Source *Source

	// Prev and Next link every token (including comments, which the parser skips) into the
	// document's token stream. Commas are whitespace and never become tokens. <SOF> is always
	// first, <EOF> always last.
	Prev *Token
	Next *Token
}

// EndLoc returns the location just past the token.
func (t *Token) EndLoc() Location {
	return t.Loc.WithOffset(int(t.Len))
}

// Range returns the token's span within its Source.
func (t *Token) Range() Range {
	return Range{Begin: t.Loc, End: t.EndLoc()}
}

// Describe renders the token for use in diagnostics, e.g. `Name "id"`.
func (t *Token) Describe() string {
	if len(t.Text) > 0 {
		return fmt.Sprintf(`%s "%s"`, t.Kind, t.Text)
	}
	return t.Kind.String()
}

// LocationInfo resolves the token's line/column in its Source.
func (t *Token) LocationInfo() LocationInfo {
	return t.Source.LocationInfoOf(t.Loc)
}

// Span is the [First, Last] pair of tokens that bound an AST node; the node's source text runs
// from First's start to Last's end.
type Span struct {
	First *Token
	Last  *Token
}

// Range converts the token span into a byte Range within the source.
func (s Span) Range() Range {
	return Range{Begin: s.First.Loc, End: s.Last.EndLoc()}
}
