// Package ir defines the immutable intermediate representation produced by the compiler: the
// flattened, fragment-resolved, type-checked form of a GraphQL document that a downstream code
// generator (out of this module's scope) consumes.
package ir

import jsoniter "github.com/json-iterator/go"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OperationKind mirrors ast.OperationType for the IR's public surface, keeping the ir package
// independent of the ast package's internal node shapes.
type OperationKind string

const (
	OperationQuery        OperationKind = "query"
	OperationMutation     OperationKind = "mutation"
	OperationSubscription OperationKind = "subscription"
)

// Variable is a resolved operation variable: its declared type and optional default.
type Variable struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// Condition is a boolean `@skip`/`@include` guard attached to a Field or InlineFragment.
// VariableName is set when the condition's argument was a variable reference; otherwise
// InlineValue holds the literal boolean and VariableName is empty.
type Condition struct {
	VariableName string `json:"variable,omitempty"`
	InlineValue  bool   `json:"inlineValue,omitempty"`
	IsInline     bool   `json:"isInline"`
	// Negate is true for @skip (the field is included when the condition evaluates false).
	Negate bool `json:"negate"`
}

// Argument is a resolved field or directive argument: either a literal value (ValueJSON, rendered
// as a JSON literal) or a reference to an operation variable (VariableName).
type Argument struct {
	Name         string `json:"name"`
	VariableName string `json:"variable,omitempty"`
	ValueJSON    string `json:"value,omitempty"`
}

// Field is one flattened field selection. SelectionSet is non-empty only for composite (object,
// interface or union) field types.
type Field struct {
	ResponseName      string       `json:"responseName"`
	FieldName         string       `json:"fieldName"`
	Type              string       `json:"type"`
	Description       string       `json:"description,omitempty"`
	IsDeprecated      bool         `json:"isDeprecated,omitempty"`
	DeprecationReason string       `json:"deprecationReason,omitempty"`
	Arguments         []*Argument  `json:"arguments,omitempty"`
	IsConditional     bool         `json:"isConditional,omitempty"`
	Conditions        []*Condition `json:"conditions,omitempty"`
	SelectionSet      []*Field     `json:"selectionSet,omitempty"`
	// FragmentSpreads holds the names of fragments spread directly into this field's selection set.
	// They are left unresolved here (the linker only verifies they exist and computes source
	// closure); expanding their fields into SelectionSet is a downstream code-generation concern.
	FragmentSpreads []string `json:"fragmentSpreads,omitempty"`
	// InlineFragments holds selections from different-type inline fragments that could not be
	// merged into SelectionSet (same-type fragments are merged away entirely; see 4.5/4.7 of the
	// selection-set flattening algorithm).
	InlineFragments []*InlineFragment `json:"inlineFragments,omitempty"`
}

// InlineFragment is a type-conditioned selection that narrows a parent field's selection set to a
// specific concrete or abstract type. Same-type inline fragments (type condition equal to the
// parent field's declared type) are merged directly into the parent Field.SelectionSet instead of
// appearing here.
type InlineFragment struct {
	TypeCondition   string       `json:"typeCondition"`
	PossibleTypes   []string     `json:"possibleTypes,omitempty"`
	Conditions      []*Condition `json:"conditions,omitempty"`
	SelectionSet    []*Field     `json:"selectionSet"`
	FragmentSpreads []string     `json:"fragmentSpreads,omitempty"`
}

// Operation is one fully-resolved query/mutation/subscription: its selection set has been
// flattened (same-type inline fragments merged, `__typename` injected, directives interpreted;
// fragment spreads stay as names) and SourceWithFragments holds its source text followed by the
// fragments it references directly and the fragments those reference. Fragments nested deeper than
// that are not appended.
type Operation struct {
	Name                string        `json:"name"`
	PackageName         string        `json:"packageName"`
	Kind                OperationKind `json:"kind"`
	Variables           []*Variable   `json:"variables,omitempty"`
	SelectionSet        []*Field      `json:"selectionSet"`
	FragmentsReferenced []string      `json:"fragmentsReferenced,omitempty"`
	Source              string        `json:"source"`
	SourceWithFragments  string        `json:"sourceWithFragments"`
	FilePath             string        `json:"filePath"`
}

// Fragment is one fragment definition, flattened the same way an operation's selection set is.
// Fragments are retained in the IR (rather than only inlined into operations) so a downstream
// generator can emit one shared type per fragment.
type Fragment struct {
	Name                string   `json:"name"`
	PackageName         string   `json:"packageName"`
	TypeCondition       string   `json:"typeCondition"`
	PossibleTypes       []string `json:"possibleTypes,omitempty"`
	SelectionSet        []*Field `json:"selectionSet"`
	FragmentSpreads     []string `json:"fragmentSpreads,omitempty"`
	FragmentsReferenced []string `json:"fragmentsReferenced,omitempty"`
	Source              string   `json:"source"`
	FilePath            string   `json:"filePath"`
}

// TypeDeclarationKind distinguishes the three kinds of schema type a document can reference that a
// generator must also emit a representation for (object/interface/union types never need a
// standalone declaration: they are represented structurally by the selection sets above).
type TypeDeclarationKind string

const (
	TypeDeclarationScalar      TypeDeclarationKind = "SCALAR"
	TypeDeclarationEnum        TypeDeclarationKind = "ENUM"
	TypeDeclarationInputObject TypeDeclarationKind = "INPUT_OBJECT"
)

// InputField is one field of an INPUT_OBJECT type declaration.
type InputField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue string `json:"defaultValue,omitempty"`
}

// TypeDeclaration is one schema type that the documents reference and that has no structural
// representation of its own: scalars, enums and input objects (including every input object
// transitively reachable through another referenced input object's fields).
type TypeDeclaration struct {
	Kind        TypeDeclarationKind `json:"kind"`
	Name        string              `json:"name"`
	EnumValues  []string            `json:"enumValues,omitempty"`
	InputFields []*InputField       `json:"inputFields,omitempty"`
}

// CodeGenerationIR is the top-level output of a compilation run: every operation and fragment
// across the input documents, plus the closure of custom scalar/enum/input-object types they
// reference. It is immutable once built.
type CodeGenerationIR struct {
	Operations       []*Operation       `json:"operations"`
	Fragments        []*Fragment        `json:"fragments"`
	TypesUsed        []*TypeDeclaration `json:"typesUsed"`
}

// MarshalJSON projects the IR to JSON via jsoniter, mirroring the rest of the pack's error-type
// serialization so a downstream process can consume a compilation result across a process
// boundary without linking against this package's Go types.
func (ir *CodeGenerationIR) MarshalJSON() ([]byte, error) {
	type alias CodeGenerationIR
	return json.Marshal((*alias)(ir))
}
