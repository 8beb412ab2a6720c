// Package lexer tokenizes GraphQL document source text into the token.Token stream the parser
// drives.
package lexer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/botobag/artemis-codegen/token"
)

// Lexer is a stateful token stream over a token.Source. Each call to Advance moves to the next
// non-ignored token (comments are skipped automatically); the lexer otherwise retains every token,
// including comments, in the token.Token doubly-linked list so callers can recover exact source
// spans.
type Lexer struct {
	source *token.Source

	current *token.Token

	bytePos  uint
	bodySize uint
}

// New creates a Lexer positioned before the first token of source.
func New(source *token.Source) *Lexer {
	sof := &token.Token{Kind: token.SOF, Source: source}
	return &Lexer{
		source:   source,
		current:  sof,
		bodySize: source.Body().Size(),
	}
}

// Source returns the Source being lexed.
func (l *Lexer) Source() *token.Source { return l.source }

// Token returns the current token.
func (l *Lexer) Token() *token.Token { return l.current }

// Advance moves to and returns the next non-ignored token.
func (l *Lexer) Advance() (*token.Token, error) {
	next, err := l.Lookahead()
	if err != nil {
		return nil, err
	}
	l.current = next
	return next, nil
}

// Lookahead returns the next non-ignored token without advancing the lexer's current position.
func (l *Lexer) Lookahead() (*token.Token, error) {
	tok := l.current
	if tok.Kind == token.EOF {
		return tok, nil
	}
	start := l.current
	for {
		if tok.Next == nil {
			next, err := l.lexToken()
			if err != nil {
				l.current = start
				return nil, err
			}
			tok.Next = next
		}
		tok = tok.Next
		if tok.Kind != token.Comment {
			break
		}
		// Skip over the comment but keep it linked into the stream: the token lexed next takes the
		// current token as its Prev.
		l.current = tok
	}
	l.current = start
	return tok, nil
}

func (l *Lexer) loc() token.Location {
	return l.locAt(l.bytePos)
}

func (l *Lexer) locAt(pos uint) token.Location {
	return token.Location(pos + 1)
}

func (l *Lexer) peek() byte {
	return l.source.Body().At(l.bytePos)
}

func (l *Lexer) consume() byte {
	b := l.source.Body().At(l.bytePos)
	if l.bytePos < l.bodySize {
		l.bytePos++
	}
	return b
}

func (l *Lexer) consumeWhitespace() {
	body := l.source.Body()
	size := l.bodySize
	pos := l.bytePos

	if pos == 0 && (size-pos) >= 3 && body[0] == '\xEF' && body[1] == '\xBB' && body[2] == '\xBF' {
		pos += 3 // skip UTF-8 BOM
	}

	for pos < size {
		switch body[pos] {
		case '\t', ' ', ',', '\n':
			pos++
		case '\r':
			if (size-pos) >= 2 && body[pos+1] == '\n' {
				pos++
			}
			pos++
		default:
			l.bytePos = pos
			return
		}
	}
	l.bytePos = pos
}

func (l *Lexer) consumeDigits() byte {
	for {
		c := l.peek()
		if c < '0' || c > '9' {
			return c
		}
		l.consume()
	}
}

func (l *Lexer) describeByteAt(pos uint) string {
	if pos >= l.bodySize {
		return "<EOF>"
	}
	r, _ := l.source.Body().RuneAt(pos)
	if r >= 0x20 && r < 0x7F {
		return fmt.Sprintf(`"%c"`, r)
	}
	return fmt.Sprintf(`"\u%04X"`, r)
}

func (l *Lexer) unexpectedCharacterError(pos uint) error {
	char := l.source.Body().At(pos)
	var message string
	switch {
	case char < 0x0020 && char != '\t' && char != '\n' && char != '\r':
		message = fmt.Sprintf("Cannot contain the invalid character %s.", l.describeByteAt(pos))
	case char == '\'':
		message = `Unexpected single quote character ('), did you mean to use a double quote (")?`
	default:
		message = fmt.Sprintf("Cannot parse the unexpected character %s.", l.describeByteAt(pos))
	}
	return NewSyntaxError(l.source, l.locAt(pos), message)
}

func (l *Lexer) makeToken(kind token.Kind, length uint) *token.Token {
	return l.makeTokenWithText(kind, length, "")
}

func (l *Lexer) makeTokenWithText(kind token.Kind, length uint, text string) *token.Token {
	return &token.Token{
		Kind:   kind,
		Loc:    l.locAt(l.bytePos - length),
		Len:    length,
		Text:   text,
		Source: l.source,
		Prev:   l.current,
	}
}

// lexToken scans past whitespace and produces the next token starting at the lexer's byte
// position.
func (l *Lexer) lexToken() (*token.Token, error) {
	prev := l.current
	l.consumeWhitespace()

	char := l.peek()
	if char == 0 && l.bytePos >= l.bodySize {
		return &token.Token{Kind: token.EOF, Loc: l.loc(), Source: l.source, Prev: prev}, nil
	}

	simple := func(kind token.Kind) (*token.Token, error) {
		l.consume()
		return l.makeToken(kind, 1), nil
	}

	switch char {
	case '!':
		return simple(token.Bang)
	case '#':
		return l.lexComment(), nil
	case '$':
		return simple(token.Dollar)
	case '&':
		return simple(token.Amp)
	case '(':
		return simple(token.LeftParen)
	case ')':
		return simple(token.RightParen)
	case '.':
		l.consume()
		if l.peek() != '.' {
			return nil, l.unexpectedCharacterError(l.bytePos - 1)
		}
		l.consume()
		if l.peek() != '.' {
			return nil, l.unexpectedCharacterError(l.bytePos - 2)
		}
		l.consume()
		return l.makeToken(token.Spread, 3), nil
	case ':':
		return simple(token.Colon)
	case '=':
		return simple(token.Equals)
	case '@':
		return simple(token.At)
	case '[':
		return simple(token.LeftBracket)
	case ']':
		return simple(token.RightBracket)
	case '{':
		return simple(token.LeftBrace)
	case '|':
		return simple(token.Pipe)
	case '}':
		return simple(token.RightBrace)

	case 'A', 'B', 'C', 'D', 'E', 'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N',
		'O', 'P', 'Q', 'R', 'S', 'T', 'U', 'V', 'W', 'X', 'Y', 'Z',
		'_', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j', 'k', 'l', 'm', 'n',
		'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z':
		return l.lexName(), nil

	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return l.lexNumber()

	case '"':
		l.consume()
		if l.peek() == '"' {
			l.consume()
			if l.peek() == '"' {
				l.consume()
				return l.lexBlockString()
			}
			return l.makeTokenWithText(token.String, 2, ""), nil
		}
		return l.lexString()
	}

	return nil, l.unexpectedCharacterError(l.bytePos)
}

func (l *Lexer) lexComment() *token.Token {
	start := l.bytePos
	l.consume()
	for {
		c := l.peek()
		if c > 0x1F || c == '\t' {
			l.consume()
			continue
		}
		break
	}
	return l.makeToken(token.Comment, l.bytePos-start)
}

func (l *Lexer) lexNumber() (*token.Token, error) {
	start := l.bytePos
	char := l.consume()
	kind := token.Int

	if char == '-' {
		char = l.peek()
		if char < '0' || char > '9' {
			return nil, NewSyntaxError(l.source, l.loc(),
				fmt.Sprintf("Invalid number, expected digit after '-' but got: %s.", l.describeByteAt(l.bytePos)))
		}
		l.consume()
	}

	if char == '0' {
		if c := l.peek(); c >= '0' && c <= '9' {
			return nil, NewSyntaxError(l.source, l.loc(),
				fmt.Sprintf("Invalid number, unexpected digit after 0: %s.", l.describeByteAt(l.bytePos)))
		}
	} else {
		char = l.consumeDigits()
	}

	if char == '.' {
		kind = token.Float
		l.consume()
		if c := l.peek(); c >= '0' && c <= '9' {
			l.consume()
			char = l.consumeDigits()
		} else {
			return nil, NewSyntaxError(l.source, l.loc(),
				fmt.Sprintf("Invalid number, expected digit after decimal point ('.') but got: %s.", l.describeByteAt(l.bytePos)))
		}
	}

	if char == 'E' || char == 'e' {
		l.consume()
		kind = token.Float
		if c := l.peek(); c == '+' || c == '-' {
			l.consume()
		}
		if c := l.peek(); c >= '0' && c <= '9' {
			l.consume()
			l.consumeDigits()
		} else {
			return nil, NewSyntaxError(l.source, l.loc(),
				fmt.Sprintf("Invalid number, expected digit but got: %s.", l.describeByteAt(l.bytePos)))
		}
	}

	return l.makeTokenWithText(kind, l.bytePos-start, l.source.Body().Slice(start, l.bytePos)), nil
}

func (l *Lexer) lexString() (*token.Token, error) {
	start := l.bytePos - 1 // opening quote already consumed

	var value bytes.Buffer
	for l.bytePos < l.bodySize {
		char := l.peek()
		if char == '\n' || char == '\r' {
			break
		}
		if char == '"' {
			l.consume()
			return l.makeTokenWithText(token.String, l.bytePos-start, value.String()), nil
		}
		if char < 0x0020 && char != '\t' {
			return nil, NewSyntaxError(l.source, l.loc(),
				fmt.Sprintf("Invalid character within String: %s.", l.describeByteAt(l.bytePos)))
		}
		l.consume()

		if char != '\\' {
			value.WriteByte(char)
			continue
		}

		char = l.consume()
		switch char {
		case '"':
			value.WriteRune('"')
		case '\\':
			value.WriteRune('\\')
		case '/':
			value.WriteRune('/')
		case 'b':
			value.WriteRune('\b')
		case 'f':
			value.WriteRune('\f')
		case 'n':
			value.WriteRune('\n')
		case 'r':
			value.WriteRune('\r')
		case 't':
			value.WriteRune('\t')
		case 'u':
			escStart := l.bytePos
			if l.bodySize-l.bytePos >= 4 {
				code := hex4(l.consume(), l.consume(), l.consume(), l.consume())
				if code >= 0 {
					value.WriteRune(code)
					continue
				}
			}
			escEnd := l.bodySize
			if l.bytePos+4 <= l.bodySize {
				escEnd = escStart + 4
			}
			return nil, NewSyntaxError(l.source, l.locAt(escStart-1),
				fmt.Sprintf("Invalid character escape sequence: \\u%s.", l.source.Body().Slice(escStart, escEnd)))
		default:
			return nil, NewSyntaxError(l.source, l.locAt(l.bytePos-1),
				fmt.Sprintf("Invalid character escape sequence: \\%c.", char))
		}
	}

	return nil, NewSyntaxError(l.source, l.loc(), "Unterminated string.")
}

func hex4(a, b, c, d byte) rune {
	return (hexDigit(a) << 12) | (hexDigit(b) << 8) | (hexDigit(c) << 4) | hexDigit(d)
}

func hexDigit(c byte) rune {
	switch {
	case c >= '0' && c <= '9':
		return rune(c - '0')
	case c >= 'A' && c <= 'F':
		return rune(c - 'A' + 10)
	case c >= 'a' && c <= 'f':
		return rune(c - 'a' + 10)
	}
	return -1
}

func (l *Lexer) lexBlockString() (*token.Token, error) {
	start := l.bytePos - 3 // opening """ already consumed

	var value bytes.Buffer
	for l.bytePos < l.bodySize {
		char := l.peek()

		switch {
		case char == '"':
			l.consume()
			if l.peek() == '"' {
				l.consume()
				if l.peek() == '"' {
					l.consume()
					return l.makeTokenWithText(token.BlockString, l.bytePos-start, dedentBlockString(value.String())), nil
				}
				value.WriteRune('"')
			}
			value.WriteRune('"')

		case char == '\\':
			l.consume()
			if l.peek() != '"' {
				value.WriteRune('\\')
				break
			}
			l.consume()
			if l.peek() != '"' {
				value.WriteString(`\"`)
				break
			}
			l.consume()
			if l.peek() != '"' {
				value.WriteString(`\""`)
				break
			}
			l.consume()
			value.WriteString(`"""`)

		default:
			if char < 0x0020 && char != '\t' && char != '\r' && char != '\n' {
				return nil, NewSyntaxError(l.source, l.loc(),
					fmt.Sprintf("Invalid character within String: %s.", l.describeByteAt(l.bytePos)))
			}
			l.consume()
			value.WriteByte(char)
		}
	}

	return nil, NewSyntaxError(l.source, l.loc(), "Unterminated string.")
}

func (l *Lexer) lexName() *token.Token {
	start := l.bytePos
	l.consume()
	for {
		c := l.peek()
		if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
			l.consume()
			continue
		}
		break
	}
	return l.makeTokenWithText(token.Name, l.bytePos-start, l.source.Body().Slice(start, l.bytePos))
}

var blockStringNewlines = regexp.MustCompile("\r\n|[\n\r]")

// dedentBlockString implements the GraphQL spec's BlockStringValue() algorithm: it strips the
// common leading indentation from every line but the first, then trims blank leading/trailing
// lines.
//
// Reference: https://spec.graphql.org/June2018/#BlockStringValue()
func dedentBlockString(raw string) string {
	lines := blockStringNewlines.Split(raw, -1)

	commonIndent := -1
	for i, line := range lines {
		if i == 0 {
			continue
		}
		indent := leadingWhitespace(line)
		if indent < len(line) && (commonIndent == -1 || indent < commonIndent) {
			commonIndent = indent
		}
	}

	if commonIndent > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) >= commonIndent {
				lines[i] = lines[i][commonIndent:]
			} else {
				lines[i] = ""
			}
		}
	}

	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}

func leadingWhitespace(s string) int {
	n := 0
	for n < len(s) && (s[n] == ' ' || s[n] == '\t') {
		n++
	}
	return n
}
