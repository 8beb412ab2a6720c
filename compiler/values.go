package compiler

import (
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/botobag/artemis-codegen/ast"
	"github.com/botobag/artemis-codegen/internal/suggestion"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func findSchemaArgument(args []*schema.Argument, name string) *schema.Argument {
	for _, a := range args {
		if a.Name == name {
			return a
		}
	}
	return nil
}

func findASTArgument(args []*ast.Argument, name string) *ast.Argument {
	for _, a := range args {
		if a.Name.Value == name {
			return a
		}
	}
	return nil
}

// parseArguments validates each supplied argument against the schema field's declared arguments,
// resolving variable references and coercing literal values.
func (w *walker) parseArguments(astArgs []*ast.Argument, schemaArgs []*schema.Argument, vars map[string]*ir.Variable, fieldName string) ([]*ir.Argument, error) {
	var result []*ir.Argument
	for _, a := range astArgs {
		schemaArg := findSchemaArgument(schemaArgs, a.Name.Value)
		if schemaArg == nil {
			names := make([]string, len(schemaArgs))
			for i, arg := range schemaArgs {
				names[i] = arg.Name
			}
			return nil, failTok(a.Name.Tok, "Unknown argument '%s' on field '%s'.%s", a.Name.Value, fieldName, suggestion.Suffix(a.Name.Value, names))
		}

		irArg, err := w.parseArgumentValue(a, schemaArg, vars)
		if err != nil {
			return nil, err
		}
		result = append(result, irArg)
	}
	return result, nil
}

func (w *walker) parseArgumentValue(a *ast.Argument, schemaArg *schema.Argument, vars map[string]*ir.Variable) (*ir.Argument, error) {
	argType := schemaArg.Type.String()

	if v, ok := a.Value.(*ast.Variable); ok {
		variable, exists := vars[v.Name.Value]
		if !exists {
			return nil, failTok(v.Name.Tok, "Undefined variable '%s'", v.Name.Value)
		}
		if variable.Type != argType && strings.TrimSuffix(variable.Type, "!") != argType {
			return nil, failTok(v.Name.Tok, "Variable '%s' of type '%s' used in position expecting type '%s'", v.Name.Value, variable.Type, argType)
		}
		return &ir.Argument{Name: a.Name.Value, VariableName: v.Name.Value}, nil
	}

	literal, err := w.coerceLiteral(a.Value)
	if err != nil {
		return nil, err
	}
	return &ir.Argument{Name: a.Name.Value, ValueJSON: literal}, nil
}

// coerceLiteral renders a constant AST value as a JSON literal: numbers and booleans pass
// through, strings and enum names are quoted, lists and input objects recurse.
func (w *walker) coerceLiteral(v ast.Value) (string, error) {
	switch val := v.(type) {
	case *ast.IntValue:
		return val.Value, nil
	case *ast.FloatValue:
		return val.Value, nil
	case *ast.StringValue:
		b, err := json.Marshal(val.Value)
		return string(b), err
	case *ast.BooleanValue:
		if val.Value {
			return "true", nil
		}
		return "false", nil
	case *ast.NullValue:
		return "null", nil
	case *ast.EnumValue:
		b, err := json.Marshal(val.Value)
		return string(b), err
	case *ast.ListValue:
		parts := make([]string, 0, len(val.Values))
		for _, item := range val.Values {
			part, err := w.coerceLiteral(item)
			if err != nil {
				return "", err
			}
			parts = append(parts, part)
		}
		return "[" + strings.Join(parts, ",") + "]", nil
	case *ast.ObjectValue:
		parts := make([]string, 0, len(val.Fields))
		for _, field := range val.Fields {
			part, err := w.coerceLiteral(field.Value)
			if err != nil {
				return "", err
			}
			nameJSON, err := json.Marshal(field.Name.Value)
			if err != nil {
				return "", err
			}
			parts = append(parts, string(nameJSON)+":"+part)
		}
		return "{" + strings.Join(parts, ",") + "}", nil
	case *ast.Variable:
		return "", failTok(val.Name.Tok, "Variables are not allowed in constant positions")
	default:
		return "", fmt.Errorf("unsupported value node")
	}
}

// directiveLocation names the AST position a directive was written at, mirroring the
// DirectiveLocation enum names from the GraphQL spec well enough to report them back verbatim in
// error messages.
type directiveLocation string

const (
	locationField              directiveLocation = "FIELD"
	locationFragmentSpread     directiveLocation = "FRAGMENT_SPREAD"
	locationInlineFragment     directiveLocation = "INLINE_FRAGMENT"
	locationFragmentDefinition directiveLocation = "FRAGMENT_DEFINITION"
	locationVariableDefinition directiveLocation = "VARIABLE_DEFINITION"
)

// operationDirectiveLocation is the DirectiveLocation an operation definition's own directives
// are checked against, keyed by its operation type.
func operationDirectiveLocation(op ast.OperationType) directiveLocation {
	return directiveLocation(strings.ToUpper(op.String()))
}

// skipIncludeLocations are the only places `@skip`/`@include` may appear in this client subset;
// every other Directives-bearing AST node (operation definitions, fragment definitions, variable
// definitions) rejects them.
var skipIncludeLocations = map[directiveLocation]bool{
	locationField:          true,
	locationFragmentSpread: true,
	locationInlineFragment: true,
}

// parseDirectiveConditions interprets @skip/@include directives into Conditions; any other
// directive name is accepted and silently ignored, matching the client subset's directive
// support. A @skip/@include found outside FIELD, FRAGMENT_SPREAD or INLINE_FRAGMENT is rejected:
// this client subset never evaluates them anywhere else.
func parseDirectiveConditions(directives []*ast.Directive, vars map[string]*ir.Variable, location directiveLocation) ([]*ir.Condition, error) {
	var conditions []*ir.Condition
	for _, d := range directives {
		name := d.Name.Value
		if name != "skip" && name != "include" {
			continue
		}
		if !skipIncludeLocations[location] {
			return nil, failTok(d.Name.Tok, "Directive '@%s' may not be used on %s", name, location)
		}

		ifArg := findASTArgument(d.Arguments, "if")
		if ifArg == nil {
			return nil, failTok(d.Name.Tok, `Directive '@%s' argument 'if' of type 'Boolean!' is required`, name)
		}

		condition := &ir.Condition{Negate: name == "skip"}
		switch v := ifArg.Value.(type) {
		case *ast.Variable:
			if _, ok := vars[v.Name.Value]; !ok {
				return nil, failTok(v.Name.Tok, "Undefined variable '%s'", v.Name.Value)
			}
			condition.VariableName = v.Name.Value
		case *ast.BooleanValue:
			condition.IsInline = true
			condition.InlineValue = v.Value
		default:
			return nil, failTok(ifArg.Name.Tok, `Directive '@%s' argument 'if' must be a Boolean or a variable`, name)
		}

		conditions = append(conditions, condition)
	}
	return conditions, nil
}
