// Package schema defines the read-only Schema Oracle the compiler validates documents against.
// The shape mirrors a GraphQL introspection result (see
// https://spec.graphql.org/June2018/#sec-Introspection) rather than the teacher's constructive
// type system: callers already have an introspected schema in hand, so the oracle only needs to
// answer lookups, never to build or mutate a schema.
package schema

// Kind enumerates the eight introspection type kinds.
type Kind string

const (
	Scalar      Kind = "SCALAR"
	Object      Kind = "OBJECT"
	Interface   Kind = "INTERFACE"
	Union       Kind = "UNION"
	Enum        Kind = "ENUM"
	InputObject Kind = "INPUT_OBJECT"
	List        Kind = "LIST"
	NonNull     Kind = "NON_NULL"
)

// TypeRef is a (possibly wrapped) reference to a named type, e.g. `[String!]!`. Exactly one of
// Name or OfType is set per the introspection `__Type` shape: Name is set for named types, OfType
// recurses for LIST and NON_NULL wrappers.
type TypeRef struct {
	Kind   Kind
	Name   string   // set when Kind is not List or NonNull
	OfType *TypeRef // set when Kind is List or NonNull
}

// NamedType returns the innermost named TypeRef, unwrapping LIST and NON_NULL layers.
func (t *TypeRef) NamedType() *TypeRef {
	for t != nil && t.OfType != nil {
		t = t.OfType
	}
	return t
}

// IsNonNull reports whether t is a NON_NULL wrapper.
func (t *TypeRef) IsNonNull() bool { return t != nil && t.Kind == NonNull }

// String renders the type reference the way it appears in SDL, e.g. `[String!]!`.
func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case List:
		return "[" + t.OfType.String() + "]"
	case NonNull:
		return t.OfType.String() + "!"
	default:
		return t.Name
	}
}

// Argument describes one field or directive argument.
type Argument struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue string // raw SDL literal text, empty when absent
}

// Field describes one object/interface field.
type Field struct {
	Name              string
	Description       string
	Args              []*Argument
	Type              *TypeRef
	IsDeprecated      bool
	DeprecationReason string
}

// EnumValue describes one member of an ENUM type.
type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
}

// InputField describes one field of an INPUT_OBJECT type.
type InputField struct {
	Name         string
	Description  string
	Type         *TypeRef
	DefaultValue string
}

// Type is one named type in the schema: its Kind determines which of Fields, Interfaces,
// PossibleTypes, EnumValues or InputFields is populated, mirroring the introspection `__Type`
// shape.
type Type struct {
	Kind        Kind
	Name        string
	Description string

	// OBJECT, INTERFACE
	Fields     []*Field
	Interfaces []string

	// INTERFACE, UNION
	PossibleTypes []string

	// ENUM
	EnumValues []*EnumValue

	// INPUT_OBJECT
	InputFields []*InputField
}

// FieldNamed returns t's field named name, or nil.
func (t *Type) FieldNamed(name string) *Field {
	for _, f := range t.Fields {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// IsAbstract reports whether selections against t require a type condition to resolve further
// (INTERFACE or UNION).
func (t *Type) IsAbstract() bool {
	return t.Kind == Interface || t.Kind == Union
}

// IsComposite reports whether t has sub-selectable fields (OBJECT, INTERFACE or UNION). Scalars
// and enums are leaf types.
func (t *Type) IsComposite() bool {
	return t.Kind == Object || t.Kind == Interface || t.Kind == Union
}

// Oracle is the read-only schema surface the compiler validates and flattens documents against.
// Implementations are expected to be immutable and safe for concurrent use, since one Oracle value
// is typically shared across every document processed in a run.
type Oracle interface {
	// QueryType, MutationType and SubscriptionType return the name of the respective root type, or
	// "" when the schema declares none.
	QueryType() string
	MutationType() string
	SubscriptionType() string

	// TypeByName returns the named type, or nil if the schema declares no such type.
	TypeByName(name string) *Type

	// PossibleTypes returns the concrete object type names that can satisfy abstractTypeName (an
	// INTERFACE or UNION). The result must not be mutated by callers.
	PossibleTypes(abstractTypeName string) []string

	// IsPossibleType reports whether objectTypeName is a member of abstractTypeName's possible
	// types (or IS abstractTypeName itself, for object-vs-object type-condition checks).
	IsPossibleType(abstractTypeName, objectTypeName string) bool
}
