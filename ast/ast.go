// Package ast defines the concrete syntax tree produced by the parser for the client-document
// GraphQL subset: executable definitions (operations and fragments), selection sets, values and
// types. Every node knows its token.Span so callers can recover exact source locations for
// diagnostics.
package ast

import "github.com/botobag/artemis-codegen/token"

// Node is implemented by every AST node. Span returns the first and last tokens that make up the
// node's source text.
type Node interface {
	Span() token.Span
}

// Name is a GraphQL name (an identifier): a field name, type name, argument name, etc.
type Name struct {
	Value string
	Tok   *token.Token
}

func (n *Name) Span() token.Span { return token.Span{First: n.Tok, Last: n.Tok} }

// Document is the root node: the sequence of operation and fragment definitions lexed from one
// source file.
type Document struct {
	Definitions []Definition
	First, Last *token.Token
}

func (d *Document) Span() token.Span { return token.Span{First: d.First, Last: d.Last} }

// Definition is implemented by OperationDefinition and FragmentDefinition.
type Definition interface {
	Node
	definitionNode()
}

// OperationType enumerates query/mutation/subscription.
type OperationType int

const (
	Query OperationType = iota
	Mutation
	Subscription
)

func (t OperationType) String() string {
	switch t {
	case Query:
		return "query"
	case Mutation:
		return "mutation"
	case Subscription:
		return "subscription"
	default:
		return "query"
	}
}

// OperationDefinition is a top-level `query`/`mutation`/`subscription` (including the anonymous
// shorthand `{ ... }` form, where IsQueryShorthand is true).
type OperationDefinition struct {
	Operation           OperationType
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
	IsQueryShorthand    bool
	First, Last         *token.Token
}

func (*OperationDefinition) definitionNode()  {}
func (d *OperationDefinition) Span() token.Span { return token.Span{First: d.First, Last: d.Last} }

// FragmentDefinition is a top-level `fragment Name on Type { ... }`.
type FragmentDefinition struct {
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	First, Last   *token.Token
}

func (*FragmentDefinition) definitionNode()  {}
func (d *FragmentDefinition) Span() token.Span { return token.Span{First: d.First, Last: d.Last} }

// SelectionSet is a `{ ... }` block of selections.
type SelectionSet struct {
	Selections  []Selection
	First, Last *token.Token
}

func (s *SelectionSet) Span() token.Span { return token.Span{First: s.First, Last: s.Last} }

// Selection is implemented by Field, FragmentSpread and InlineFragment.
type Selection interface {
	Node
	selectionNode()
}

// Field is a selection of one field, with an optional alias, arguments, directives and a
// sub-selection set (absent for leaf/scalar fields).
type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	First, Last  *token.Token
}

func (*Field) selectionNode() {}
func (f *Field) Span() token.Span { return token.Span{First: f.First, Last: f.Last} }

// ResponseName is the key this field occupies in the response: its alias if given, else its name.
func (f *Field) ResponseName() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

// FragmentSpread is a `...Name` selection.
type FragmentSpread struct {
	Name        *Name
	Directives  []*Directive
	First, Last *token.Token
}

func (*FragmentSpread) selectionNode() {}
func (s *FragmentSpread) Span() token.Span { return token.Span{First: s.First, Last: s.Last} }

// InlineFragment is a `... on Type { ... }` or bare `... { ... }` selection.
type InlineFragment struct {
	TypeCondition *NamedType // nil when the type condition is omitted
	Directives    []*Directive
	SelectionSet  *SelectionSet
	First, Last   *token.Token
}

func (*InlineFragment) selectionNode() {}
func (f *InlineFragment) Span() token.Span { return token.Span{First: f.First, Last: f.Last} }

// Argument is one `name: value` pair, attached to a Field or Directive.
type Argument struct {
	Name        *Name
	Value       Value
	First, Last *token.Token
}

func (a *Argument) Span() token.Span { return token.Span{First: a.First, Last: a.Last} }

// Directive is a `@name(args...)` annotation.
type Directive struct {
	Name        *Name
	Arguments   []*Argument
	First, Last *token.Token
}

func (d *Directive) Span() token.Span { return token.Span{First: d.First, Last: d.Last} }

// Variable is a `$name` reference, valid only as an argument value.
type Variable struct {
	Name        *Name
	First, Last *token.Token
}

func (*Variable) valueNode() {}
func (v *Variable) Span() token.Span { return token.Span{First: v.First, Last: v.Last} }

// VariableDefinition declares an operation variable: `$name: Type = default`.
type VariableDefinition struct {
	Variable     *Variable
	Type         Type
	DefaultValue Value // nil when absent
	Directives   []*Directive
	First, Last  *token.Token
}

func (d *VariableDefinition) Span() token.Span { return token.Span{First: d.First, Last: d.Last} }

// Value is implemented by every literal and variable-reference value node.
type Value interface {
	Node
	valueNode()
}

type IntValue struct {
	Value string
	Tok   *token.Token
}

func (*IntValue) valueNode()        {}
func (v *IntValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type FloatValue struct {
	Value string
	Tok   *token.Token
}

func (*FloatValue) valueNode()        {}
func (v *FloatValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type StringValue struct {
	Value string
	Block bool
	Tok   *token.Token
}

func (*StringValue) valueNode()        {}
func (v *StringValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type BooleanValue struct {
	Value bool
	Tok   *token.Token
}

func (*BooleanValue) valueNode()        {}
func (v *BooleanValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type NullValue struct {
	Tok *token.Token
}

func (*NullValue) valueNode()        {}
func (v *NullValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type EnumValue struct {
	Value string
	Tok   *token.Token
}

func (*EnumValue) valueNode()        {}
func (v *EnumValue) Span() token.Span { return token.Span{First: v.Tok, Last: v.Tok} }

type ListValue struct {
	Values      []Value
	First, Last *token.Token
}

func (*ListValue) valueNode()        {}
func (v *ListValue) Span() token.Span { return token.Span{First: v.First, Last: v.Last} }

type ObjectValue struct {
	Fields      []*ObjectField
	First, Last *token.Token
}

func (*ObjectValue) valueNode()        {}
func (v *ObjectValue) Span() token.Span { return token.Span{First: v.First, Last: v.Last} }

type ObjectField struct {
	Name        *Name
	Value       Value
	First, Last *token.Token
}

func (f *ObjectField) Span() token.Span { return token.Span{First: f.First, Last: f.Last} }

// Type is implemented by NamedType, ListType and NonNullType.
type Type interface {
	Node
	typeNode()
	// String renders the type reference the way it appears in source, e.g. `[String!]!`.
	String() string
}

type NamedType struct {
	Name *Name
}

func (*NamedType) typeNode()        {}
func (t *NamedType) Span() token.Span { return t.Name.Span() }
func (t *NamedType) String() string { return t.Name.Value }

type ListType struct {
	OfType      Type
	First, Last *token.Token
}

func (*ListType) typeNode()        {}
func (t *ListType) Span() token.Span { return token.Span{First: t.First, Last: t.Last} }
func (t *ListType) String() string { return "[" + t.OfType.String() + "]" }

type NonNullType struct {
	OfType Type
	Last   *token.Token
}

func (*NonNullType) typeNode() {}
func (t *NonNullType) Span() token.Span {
	return token.Span{First: t.OfType.Span().First, Last: t.Last}
}
func (t *NonNullType) String() string { return t.OfType.String() + "!" }
