// Package parser implements a recursive-descent parser that turns GraphQL document source text
// into an ast.Document. It follows the grammar in
// https://spec.graphql.org/June2018/#sec-Appendix-Grammar-Summary restricted to the executable
// (client) subset: operations, fragments, selection sets and values. Type-system definitions (SDL)
// are not accepted.
package parser

import (
	"fmt"

	"github.com/botobag/artemis-codegen/ast"
	"github.com/botobag/artemis-codegen/lexer"
	"github.com/botobag/artemis-codegen/token"
)

// Options configures the parser. The zero value is the default configuration.
type Options struct {
	// ExperimentalFragmentVariables accepts variable definitions on fragment definitions, a
	// non-standard extension some client toolchains emit.
	ExperimentalFragmentVariables bool
}

type parser struct {
	lexer   *lexer.Lexer
	options Options
}

// Parse lexes and parses source into an ast.Document.
func Parse(source *token.Source, opts ...Options) (*ast.Document, error) {
	var options Options
	if len(opts) > 0 {
		options = opts[0]
	}

	p := &parser{lexer: lexer.New(source), options: options}
	if _, err := p.lexer.Advance(); err != nil {
		return nil, err
	}
	return p.parseDocument()
}

func (p *parser) skip(kind token.Kind) (bool, error) {
	if p.lexer.Token().Kind == kind {
		if _, err := p.lexer.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *parser) expect(kind token.Kind) (*token.Token, error) {
	tok := p.lexer.Token()
	if tok.Kind == kind {
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return tok, nil
	}
	return nil, lexer.NewSyntaxError(p.lexer.Source(), tok.Loc,
		fmt.Sprintf("Expected %s, found %s", kind, tok.Describe()))
}

func (p *parser) skipKeyword(keyword string) (bool, error) {
	if tok := p.peek(); tok.Kind == token.Name && tok.Text == keyword {
		if _, err := p.lexer.Advance(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

func (p *parser) expectKeyword(keyword string) error {
	ok, err := p.skipKeyword(keyword)
	if err != nil {
		return err
	}
	if !ok {
		tok := p.peek()
		return lexer.NewSyntaxError(p.lexer.Source(), tok.Loc,
			fmt.Sprintf(`Expected "%s", found %s`, keyword, tok.Describe()))
	}
	return nil
}

func (p *parser) peek() *token.Token { return p.lexer.Token() }

func (p *parser) unexpected() error {
	tok := p.lexer.Token()
	return lexer.NewSyntaxError(p.lexer.Source(), tok.Loc, fmt.Sprintf("Unexpected %s", tok.Describe()))
}

func (p *parser) parseName() (*ast.Name, error) {
	tok, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}
	return &ast.Name{Value: tok.Text, Tok: tok}, nil
}

// Document ::
//
//	Definition+
func (p *parser) parseDocument() (*ast.Document, error) {
	first, err := p.expect(token.SOF)
	if err != nil {
		return nil, err
	}

	var definitions []ast.Definition
	var last *token.Token
	for {
		definition, err := p.parseDefinition()
		if err != nil {
			return nil, err
		}
		definitions = append(definitions, definition)
		last = definition.Span().Last

		stop, err := p.skip(token.EOF)
		if err != nil {
			return nil, err
		}
		if stop {
			last = p.lexer.Token()
			break
		}
	}

	return &ast.Document{Definitions: definitions, First: first, Last: last}, nil
}

// Definition ::
//
//	ExecutableDefinition
func (p *parser) parseDefinition() (ast.Definition, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Name:
		switch tok.Text {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}
	case token.LeftBrace:
		return p.parseQueryShorthand()
	}
	return nil, p.unexpected()
}

func operationTypeFromKeyword(keyword string) ast.OperationType {
	switch keyword {
	case "mutation":
		return ast.Mutation
	case "subscription":
		return ast.Subscription
	default:
		return ast.Query
	}
}

// OperationDefinition ::
//
//	OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*ast.OperationDefinition, error) {
	var (
		name                *ast.Name
		variableDefinitions []*ast.VariableDefinition
		directives          []*ast.Directive
	)

	opTok, err := p.expect(token.Name)
	if err != nil {
		return nil, err
	}

	if p.peek().Kind == token.Name {
		if name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.LeftParen {
		if variableDefinitions, err = p.parseVariableDefinitions(); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
	}

	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.OperationDefinition{
		Operation:           operationTypeFromKeyword(opTok.Text),
		Name:                name,
		VariableDefinitions: variableDefinitions,
		Directives:          directives,
		SelectionSet:        selectionSet,
		First:               opTok,
		Last:                selectionSet.Last,
	}, nil
}

// parseQueryShorthand parses the anonymous `{ field ... }` operation form.
//
// Reference: https://spec.graphql.org/June2018/#sec-Language.Operations
func (p *parser) parseQueryShorthand() (*ast.OperationDefinition, error) {
	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}
	return &ast.OperationDefinition{
		Operation:        ast.Query,
		SelectionSet:     selectionSet,
		IsQueryShorthand: true,
		First:            selectionSet.First,
		Last:             selectionSet.Last,
	}, nil
}

// SelectionSet ::
//
//	{ Selection+ }
func (p *parser) parseSelectionSet() (*ast.SelectionSet, error) {
	first, err := p.expect(token.LeftBrace)
	if err != nil {
		return nil, err
	}

	var selections []ast.Selection
	for {
		selection, err := p.parseSelection()
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)

		stop, err := p.skip(token.RightBrace)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}

	return &ast.SelectionSet{Selections: selections, First: first, Last: p.lexer.Token().Prev}, nil
}

// Selection ::
//
//	Field
//	FragmentSpread
//	InlineFragment
func (p *parser) parseSelection() (ast.Selection, error) {
	spreadTok := p.peek()
	isFragment, err := p.skip(token.Spread)
	if err != nil {
		return nil, err
	}
	if isFragment {
		tok := p.peek()
		if tok.Kind != token.Name || tok.Text == "on" {
			return p.parseInlineFragment(spreadTok)
		}
		return p.parseFragmentSpread(spreadTok)
	}
	return p.parseField()
}

// Field ::
//
//	Alias? Name Arguments? Directives? SelectionSet?
func (p *parser) parseField() (*ast.Field, error) {
	var (
		alias        *ast.Name
		name         *ast.Name
		arguments    []*ast.Argument
		directives   []*ast.Directive
		selectionSet *ast.SelectionSet
	)

	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}

	hasColon, err := p.skip(token.Colon)
	if err != nil {
		return nil, err
	}
	if !hasColon {
		name = nameOrAlias
	} else {
		alias = nameOrAlias
		if name, err = p.parseName(); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.LeftParen {
		if arguments, err = p.parseArguments(false); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
	}

	last := name.Tok
	if p.peek().Kind == token.LeftBrace {
		if selectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
		last = selectionSet.Last
	}

	return &ast.Field{
		Alias:        alias,
		Name:         name,
		Arguments:    arguments,
		Directives:   directives,
		SelectionSet: selectionSet,
		First:        nameOrAlias.Tok,
		Last:         last,
	}, nil
}

// FragmentSpread ::
//
//	... FragmentName Directives?
//
// The leading "..." is consumed by parseSelection's lookahead.
func (p *parser) parseFragmentSpread(spreadTok *token.Token) (*ast.FragmentSpread, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var directives []*ast.Directive
	last := name.Tok
	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
		last = directives[len(directives)-1].Last
	}

	return &ast.FragmentSpread{Name: name, Directives: directives, First: spreadTok, Last: last}, nil
}

// FragmentDefinition ::
//
//	fragment FragmentName TypeCondition Directives? SelectionSet
func (p *parser) parseFragmentDefinition() (*ast.FragmentDefinition, error) {
	first, err := p.expect(token.Name) // "fragment"
	if err != nil {
		return nil, err
	}

	name, err := p.parseFragmentName()
	if err != nil {
		return nil, err
	}

	var variableDefinitions []*ast.VariableDefinition
	if p.options.ExperimentalFragmentVariables && p.peek().Kind == token.LeftParen {
		if variableDefinitions, err = p.parseVariableDefinitions(); err != nil {
			return nil, err
		}
	}
	_ = variableDefinitions

	typeCondition, err := p.parseTypeCondition()
	if err != nil {
		return nil, err
	}

	var directives []*ast.Directive
	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
	}

	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.FragmentDefinition{
		Name:          name,
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
		First:         first,
		Last:          selectionSet.Last,
	}, nil
}

// FragmentName ::
//
//	Name but not "on"
func (p *parser) parseFragmentName() (*ast.Name, error) {
	if tok := p.peek(); tok.Kind == token.Name && tok.Text == "on" {
		return nil, lexer.NewSyntaxError(p.lexer.Source(), tok.Loc, `Expected a fragment name before "on"`)
	}
	return p.parseName()
}

// TypeCondition ::
//
//	on NamedType
func (p *parser) parseTypeCondition() (*ast.NamedType, error) {
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	return p.parseNamedType()
}

// InlineFragment ::
//
//	... TypeCondition? Directives? SelectionSet
//
// The leading "..." is consumed by parseSelection's lookahead.
func (p *parser) parseInlineFragment(spreadTok *token.Token) (*ast.InlineFragment, error) {
	var (
		typeCondition *ast.NamedType
		directives    []*ast.Directive
		err           error
	)

	if p.peek().Kind == token.Name {
		if typeCondition, err = p.parseTypeCondition(); err != nil {
			return nil, err
		}
	}

	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(false); err != nil {
			return nil, err
		}
	}

	selectionSet, err := p.parseSelectionSet()
	if err != nil {
		return nil, err
	}

	return &ast.InlineFragment{
		TypeCondition: typeCondition,
		Directives:    directives,
		SelectionSet:  selectionSet,
		First:         spreadTok,
		Last:          selectionSet.Last,
	}, nil
}

// Arguments ::
//
//	( Argument+ )
func (p *parser) parseArguments(isConst bool) ([]*ast.Argument, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}

	var arguments []*ast.Argument
	for {
		argument, err := p.parseArgument(isConst)
		if err != nil {
			return nil, err
		}
		arguments = append(arguments, argument)

		stop, err := p.skip(token.RightParen)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}
	return arguments, nil
}

// Argument ::
//
//	Name : Value
func (p *parser) parseArgument(isConst bool) (*ast.Argument, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	value, err := p.parseValue(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.Argument{Name: name, Value: value, First: name.Tok, Last: value.Span().Last}, nil
}

// Value ::
//
//	Variable | IntValue | FloatValue | StringValue | BooleanValue | NullValue | EnumValue |
//	ListValue | ObjectValue
func (p *parser) parseValue(isConst bool) (ast.Value, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.Dollar:
		if !isConst {
			return p.parseVariable()
		}

	case token.Int:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return &ast.IntValue{Value: tok.Text, Tok: tok}, nil

	case token.Float:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return &ast.FloatValue{Value: tok.Text, Tok: tok}, nil

	case token.String, token.BlockString:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		return &ast.StringValue{Value: tok.Text, Block: tok.Kind == token.BlockString, Tok: tok}, nil

	case token.Name:
		if _, err := p.lexer.Advance(); err != nil {
			return nil, err
		}
		switch tok.Text {
		case "true":
			return &ast.BooleanValue{Value: true, Tok: tok}, nil
		case "false":
			return &ast.BooleanValue{Value: false, Tok: tok}, nil
		case "null":
			return &ast.NullValue{Tok: tok}, nil
		default:
			return &ast.EnumValue{Value: tok.Text, Tok: tok}, nil
		}

	case token.LeftBracket:
		return p.parseListValue(isConst)

	case token.LeftBrace:
		return p.parseObjectValue(isConst)
	}

	return nil, p.unexpected()
}

// ListValue ::
//
//	[ ] | [ Value+ ]
func (p *parser) parseListValue(isConst bool) (*ast.ListValue, error) {
	first, err := p.expect(token.LeftBracket)
	if err != nil {
		return nil, err
	}

	var values []ast.Value
	for {
		stop, err := p.skip(token.RightBracket)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
		value, err := p.parseValue(isConst)
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}

	return &ast.ListValue{Values: values, First: first, Last: p.lexer.Token().Prev}, nil
}

// ObjectValue ::
//
//	{ } | { ObjectField+ }
func (p *parser) parseObjectValue(isConst bool) (*ast.ObjectValue, error) {
	first, err := p.expect(token.LeftBrace)
	if err != nil {
		return nil, err
	}

	var fields []*ast.ObjectField
	for {
		stop, err := p.skip(token.RightBrace)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
		field, err := p.parseObjectField(isConst)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	return &ast.ObjectValue{Fields: fields, First: first, Last: p.lexer.Token().Prev}, nil
}

// ObjectField ::
//
//	Name : Value
func (p *parser) parseObjectField(isConst bool) (*ast.ObjectField, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}
	value, err := p.parseValue(isConst)
	if err != nil {
		return nil, err
	}
	return &ast.ObjectField{Name: name, Value: value, First: name.Tok, Last: value.Span().Last}, nil
}

// Variable ::
//
//	$ Name
func (p *parser) parseVariable() (*ast.Variable, error) {
	dollar, err := p.expect(token.Dollar)
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.Variable{Name: name, First: dollar, Last: name.Tok}, nil
}

// VariableDefinitions ::
//
//	( VariableDefinition+ )
func (p *parser) parseVariableDefinitions() ([]*ast.VariableDefinition, error) {
	if _, err := p.expect(token.LeftParen); err != nil {
		return nil, err
	}

	var variableDefinitions []*ast.VariableDefinition
	for {
		variableDefinition, err := p.parseVariableDefinition()
		if err != nil {
			return nil, err
		}
		variableDefinitions = append(variableDefinitions, variableDefinition)

		stop, err := p.skip(token.RightParen)
		if err != nil {
			return nil, err
		}
		if stop {
			break
		}
	}
	return variableDefinitions, nil
}

// VariableDefinition ::
//
//	Variable : Type DefaultValue? Directives?
func (p *parser) parseVariableDefinition() (*ast.VariableDefinition, error) {
	var (
		defaultValue ast.Value
		directives   []*ast.Directive
	)

	variable, err := p.parseVariable()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Colon); err != nil {
		return nil, err
	}

	variableType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	last := variableType.Span().Last
	if p.peek().Kind == token.Equals {
		if defaultValue, err = p.parseDefaultValue(); err != nil {
			return nil, err
		}
		last = defaultValue.Span().Last
	}

	if p.peek().Kind == token.At {
		if directives, err = p.parseDirectives(true); err != nil {
			return nil, err
		}
		last = directives[len(directives)-1].Last
	}

	return &ast.VariableDefinition{
		Variable:     variable,
		Type:         variableType,
		DefaultValue: defaultValue,
		Directives:   directives,
		First:        variable.First,
		Last:         last,
	}, nil
}

// Type ::
//
//	NamedType | ListType | NonNullType
func (p *parser) parseType() (ast.Type, error) {
	if ok, err := p.skip(token.LeftBracket); err != nil {
		return nil, err
	} else if ok {
		first := p.lexer.Token().Prev
		innerType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RightBracket); err != nil {
			return nil, err
		}
		last := p.lexer.Token().Prev
		var t ast.Type = &ast.ListType{OfType: innerType, First: first, Last: last}

		if ok, err := p.skip(token.Bang); err != nil {
			return nil, err
		} else if ok {
			t = &ast.NonNullType{OfType: t, Last: p.lexer.Token().Prev}
		}
		return t, nil
	}

	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	var t ast.Type = &ast.NamedType{Name: name}

	if ok, err := p.skip(token.Bang); err != nil {
		return nil, err
	} else if ok {
		t = &ast.NonNullType{OfType: t, Last: p.lexer.Token().Prev}
	}
	return t, nil
}

// NamedType ::
//
//	Name
func (p *parser) parseNamedType() (*ast.NamedType, error) {
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &ast.NamedType{Name: name}, nil
}

// DefaultValue ::
//
//	= Value
func (p *parser) parseDefaultValue() (ast.Value, error) {
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}
	return p.parseValue(true)
}

// Directives ::
//
//	Directive+
func (p *parser) parseDirectives(isConst bool) ([]*ast.Directive, error) {
	var directives []*ast.Directive
	for {
		directive, err := p.parseDirective(isConst)
		if err != nil {
			return nil, err
		}
		directives = append(directives, directive)

		if p.peek().Kind != token.At {
			break
		}
	}
	return directives, nil
}

// Directive ::
//
//	@ Name Arguments?
func (p *parser) parseDirective(isConst bool) (*ast.Directive, error) {
	at, err := p.expect(token.At)
	if err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}

	var arguments []*ast.Argument
	last := name.Tok
	if p.peek().Kind == token.LeftParen {
		if arguments, err = p.parseArguments(isConst); err != nil {
			return nil, err
		}
		last = p.lexer.Token().Prev
	}

	return &ast.Directive{Name: name, Arguments: arguments, First: at, Last: last}, nil
}
