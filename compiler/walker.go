// Package compiler implements the document walker, per-document validator, cross-document linker
// and type-declaration collector: the semantic core that turns parsed ast.Documents plus a
// schema.Oracle into an ir.CodeGenerationIR.
package compiler

import (
	"fmt"

	"github.com/botobag/artemis-codegen/ast"
	gqlir "github.com/botobag/artemis-codegen"
	"github.com/botobag/artemis-codegen/internal/identifier"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/lexer"
	"github.com/botobag/artemis-codegen/parser"
	"github.com/botobag/artemis-codegen/schema"
	"github.com/botobag/artemis-codegen/token"
)

// walker holds the state threaded through one file's walk: the schema oracle it validates
// against and the set of schema type names the file's variables, fields, arguments and input
// objects reference.
type walker struct {
	oracle    schema.Oracle
	usedTypes map[string]struct{}
}

func (w *walker) addUsedType(name string) {
	if name == "" {
		return
	}
	w.usedTypes[name] = struct{}{}
}

// documentResult is one file's contribution before cross-document linking: its operations and
// fragments, plus the schema types its contents reference.
type documentResult struct {
	operations []*ir.Operation
	fragments  []*ir.Fragment
	usedTypes  map[string]struct{}
}

func walkDocument(oracle schema.Oracle, filePath, source string) (*documentResult, error) {
	tokSource := token.NewSource(source, token.WithName(filePath))
	doc, err := parser.Parse(tokSource)
	if err != nil {
		return nil, wrapDocumentError(filePath, source, err)
	}

	w := &walker{oracle: oracle, usedTypes: map[string]struct{}{}}
	result := &documentResult{usedTypes: w.usedTypes}
	srcBytes := []byte(source)

	for _, def := range doc.Definitions {
		switch d := def.(type) {
		case *ast.FragmentDefinition:
			frag, err := w.walkFragment(d, filePath, srcBytes)
			if err != nil {
				return nil, wrapDocumentError(filePath, source, err)
			}
			result.fragments = append(result.fragments, frag)

		case *ast.OperationDefinition:
			op, err := w.walkOperation(d, filePath, srcBytes)
			if err != nil {
				return nil, wrapDocumentError(filePath, source, err)
			}
			result.operations = append(result.operations, op)
		}
	}

	return result, nil
}

// wrapDocumentError rewraps a single-location error raised while walking a file into a
// GraphQLDocumentParseException carrying the file path and a framed source preview.
func wrapDocumentError(filePath, source string, err error) error {
	switch e := err.(type) {
	case *gqlir.ParseException:
		return gqlir.NewGraphQLDocumentParseException(filePath, source, e)
	case *lexer.SyntaxError:
		info := e.Source.LocationInfoOf(e.Loc)
		return gqlir.NewGraphQLDocumentParseException(filePath, source, gqlir.NewParseException(e.Message, info.Line, info.Column))
	default:
		return err
	}
}

func operationRootType(oracle schema.Oracle, op ast.OperationType) (name string, kind ir.OperationKind) {
	switch op {
	case ast.Mutation:
		return oracle.MutationType(), ir.OperationMutation
	case ast.Subscription:
		return oracle.SubscriptionType(), ir.OperationSubscription
	default:
		return oracle.QueryType(), ir.OperationQuery
	}
}

func (w *walker) walkOperation(d *ast.OperationDefinition, filePath string, source []byte) (*ir.Operation, error) {
	rootTypeName, kind := operationRootType(w.oracle, d.Operation)
	if rootTypeName == "" {
		return nil, failTok(d.First, "Schema is not configured for %ss", d.Operation.String())
	}
	rootType := w.oracle.TypeByName(rootTypeName)
	if rootType == nil {
		return nil, failTok(d.First, "Unknown type '%s'", rootTypeName)
	}

	if _, err := parseDirectiveConditions(d.Directives, nil, operationDirectiveLocation(d.Operation)); err != nil {
		return nil, err
	}

	vars := map[string]*ir.Variable{}
	var varList []*ir.Variable
	for _, vd := range d.VariableDefinitions {
		baseName := astTypeBaseName(vd.Type)
		if w.oracle.TypeByName(baseName) == nil {
			return nil, failTok(vd.Variable.Name.Tok, "Unknown variable type '%s'", baseName)
		}
		if _, err := parseDirectiveConditions(vd.Directives, nil, locationVariableDefinition); err != nil {
			return nil, err
		}
		w.addUsedType(baseName)

		variable := &ir.Variable{Name: vd.Variable.Name.Value, Type: vd.Type.String()}
		if vd.DefaultValue != nil {
			literal, err := w.coerceLiteral(vd.DefaultValue)
			if err != nil {
				return nil, err
			}
			variable.DefaultValue = literal
		}
		vars[variable.Name] = variable
		varList = append(varList, variable)
	}

	sr, err := w.parseSelections(d.SelectionSet.Selections, rootType, vars)
	if err != nil {
		return nil, err
	}
	injected := injectTypename(&sr)

	if len(sr.Fields) == 0 {
		return nil, failTok(d.First, "Operation '%s' of type '%s' must have a selection of sub-fields", operationDisplayName(d), rootTypeName)
	}

	// 4.3: a top-level __typename that we only injected ourselves is dropped again; the linker's
	// downstream consumer re-adds it as needed via sub-selections.
	if injected {
		sr.Fields = sr.Fields[1:]
	}

	return &ir.Operation{
		Name:                operationDisplayName(d),
		PackageName:         identifier.FormatPackageName(filePath),
		Kind:                kind,
		Variables:           varList,
		SelectionSet:        sr.Fields,
		FragmentsReferenced: collectFragmentsReferenced(sr),
		Source:              sourceSlice(source, d.Span()),
		FilePath:            filePath,
	}, nil
}

func operationDisplayName(d *ast.OperationDefinition) string {
	if d.Name != nil {
		return d.Name.Value
	}
	return ""
}

func (w *walker) walkFragment(d *ast.FragmentDefinition, filePath string, source []byte) (*ir.Fragment, error) {
	typeName := d.TypeCondition.Name.Value
	schemaType := w.oracle.TypeByName(typeName)
	if schemaType == nil {
		return nil, failTok(d.TypeCondition.Name.Tok, "Unknown type '%s'", typeName)
	}

	if _, err := parseDirectiveConditions(d.Directives, nil, locationFragmentDefinition); err != nil {
		return nil, err
	}

	sr, err := w.parseSelections(d.SelectionSet.Selections, schemaType, map[string]*ir.Variable{})
	if err != nil {
		return nil, err
	}
	injectTypename(&sr)

	if len(sr.Fields) == 0 {
		return nil, failTok(d.First, "Fragment '%s' must have a selection of sub-fields", d.Name.Value)
	}

	return &ir.Fragment{
		Name:                d.Name.Value,
		PackageName:         identifier.FormatPackageName(filePath),
		TypeCondition:       typeName,
		PossibleTypes:       possibleTypesOf(w.oracle, schemaType),
		SelectionSet:        sr.Fields,
		FragmentSpreads:     sr.Spreads,
		FragmentsReferenced: collectFragmentsReferenced(sr),
		Source:              sourceSlice(source, d.Span()),
		FilePath:            filePath,
	}, nil
}

func possibleTypesOf(oracle schema.Oracle, t *schema.Type) []string {
	if t.IsAbstract() {
		return oracle.PossibleTypes(t.Name)
	}
	return []string{t.Name}
}

// astTypeBaseName unwraps ListType/NonNullType wrappers down to the innermost named type, the way
// a variable declaration's type must be resolved against the schema.
func astTypeBaseName(t ast.Type) string {
	for {
		switch v := t.(type) {
		case *ast.NamedType:
			return v.Name.Value
		case *ast.ListType:
			t = v.OfType
		case *ast.NonNullType:
			t = v.OfType
		default:
			return ""
		}
	}
}

func sourceSlice(source []byte, span token.Span) string {
	r := span.Range()
	begin, end := uint(r.Begin), uint(r.End)
	if begin > 0 {
		begin--
	}
	if end > 0 {
		end--
	}
	size := uint(len(source))
	if begin > size {
		begin = size
	}
	if end > size {
		end = size
	}
	if end < begin {
		end = begin
	}
	return string(source[begin:end])
}

func failTok(tok *token.Token, format string, args ...interface{}) error {
	info := tok.LocationInfo()
	return gqlir.NewParseException(fmt.Sprintf(format, args...), info.Line, info.Column)
}

// collectFragmentsReferenced gathers every fragment spread name reachable from a selection result:
// its own direct spreads, plus those nested inside its fields and inline fragments.
func collectFragmentsReferenced(sr selectionResult) []string {
	seen := map[string]bool{}
	var names []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range sr.Spreads {
		add(name)
	}
	for _, f := range sr.Fields {
		collectFieldFragments(f, add)
	}
	for _, inl := range sr.InlineFragments {
		for _, name := range inl.FragmentSpreads {
			add(name)
		}
		for _, f := range inl.SelectionSet {
			collectFieldFragments(f, add)
		}
	}
	return names
}

func collectFieldFragments(f *ir.Field, add func(string)) {
	for _, name := range f.FragmentSpreads {
		add(name)
	}
	for _, sub := range f.SelectionSet {
		collectFieldFragments(sub, add)
	}
	for _, inl := range f.InlineFragments {
		for _, name := range inl.FragmentSpreads {
			add(name)
		}
		for _, sub := range inl.SelectionSet {
			collectFieldFragments(sub, add)
		}
	}
}
