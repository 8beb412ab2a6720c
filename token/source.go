// Package token defines the lexical primitives shared by the lexer, parser and AST: a Source
// holding the raw document bytes, Location/LocationInfo for mapping byte offsets to line/column,
// and the Token stream produced by the lexer.
package token

import "unicode/utf8"

// Body is the raw bytes of a GraphQL document.
type Body []byte

// RuneAt decodes the rune at pos along with the number of bytes it occupies. It returns (-1, 0)
// once pos reaches the end of the body, signalling <EOF>.
func (body Body) RuneAt(pos uint) (rune, uint) {
	if uint(len(body)) <= pos {
		return -1, 0
	}
	if c := body[pos]; c < utf8.RuneSelf {
		return rune(c), 1
	}
	r, n := utf8.DecodeRune(body[pos:])
	return r, uint(n)
}

// At returns the byte at pos, or 0 if pos is out of range.
func (body Body) At(pos uint) byte {
	if body.Size() <= pos {
		return 0
	}
	return body[pos]
}

// Size returns the body length in bytes.
func (body Body) Size() uint {
	return uint(len(body))
}

// Slice returns the substring of body between [start, end).
func (body Body) Slice(start, end uint) string {
	return string(body[start:end])
}

// LocationInfo gives a human-readable line/column for a location within a named source.
type LocationInfo struct {
	Name   string
	Line   uint
	Column uint
}

// Source holds a GraphQL document's raw text plus the bookkeeping needed to report diagnostics
// against it: an optional name (typically a file path) and 0-indexed line/column offsets, useful
// when the document text is a slice of a larger file (e.g. one operation split out of many).
type Source struct {
	body         Body
	name         string
	lineOffset   uint
	columnOffset uint
}

// Option configures a Source.
type Option func(*Source)

// WithName sets the name reported in diagnostics (e.g. a file path).
func WithName(name string) Option {
	return func(s *Source) { s.name = name }
}

// WithLineOffset shifts reported line numbers by offset.
func WithLineOffset(offset uint) Option {
	return func(s *Source) { s.lineOffset = offset }
}

// WithColumnOffset shifts reported column numbers by offset.
func WithColumnOffset(offset uint) Option {
	return func(s *Source) { s.columnOffset = offset }
}

// NewSource builds a Source from a document string.
func NewSource(text string, opts ...Option) *Source {
	return NewSourceFromBytes([]byte(text), opts...)
}

// NewSourceFromBytes builds a Source from document bytes.
func NewSourceFromBytes(b []byte, opts ...Option) *Source {
	source := &Source{
		body: Body(b),
		name: "GraphQL request",
	}
	for _, opt := range opts {
		opt(source)
	}
	return source
}

// Body returns the document bytes.
func (s *Source) Body() Body { return s.body }

// Name returns the source's diagnostic name.
func (s *Source) Name() string { return s.name }

// Location is a 1-indexed byte offset into a Source's body. The zero value, NoLocation, never
// refers to a real position.
type Location uint

// NoLocation is the distinguished invalid Location, used by synthetic tokens (e.g. <SOF>) that
// have no real position in the source.
const NoLocation Location = 0

// IsValid reports whether loc refers to a real position.
func (loc Location) IsValid() bool {
	return loc != NoLocation
}

// WithOffset returns the Location offset bytes further into the source.
func (loc Location) WithOffset(offset int) Location {
	return Location(int(loc) + offset)
}

// Range is a half-open [Begin, End) span of Locations.
type Range struct {
	Begin Location
	End   Location
}

// LocationInfoOf computes the line/column for a Location within the source, accounting for the
// source's configured offsets.
func (s *Source) LocationInfoOf(loc Location) LocationInfo {
	if !loc.IsValid() {
		return LocationInfo{Name: s.name}
	}

	var (
		line     uint = 1
		column   uint = 1
		position      = uint(loc) - 1
	)

	body := s.body
	size := body.Size()
	if position > size {
		position = size
	}

	var i uint
	for i < position {
		switch body[i] {
		case '\r':
			if (i+1) < size && body[i+1] == '\n' {
				i++
				if i == position {
					line++
					column = 0
				}
			} else {
				line++
				column = 1
				i++
			}
		case '\n':
			line++
			column = 1
			i++
		default:
			column++
			i++
		}
	}

	return LocationInfo{
		Name:   s.name,
		Line:   line + s.lineOffset,
		Column: column + s.columnOffset,
	}
}
