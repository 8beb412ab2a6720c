package compiler

import (
	"sort"
	"strings"

	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"
)

var builtinScalars = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

// collectTypeDeclarations expands usedTypes to its input-object fixpoint and emits a
// TypeDeclaration for every retained SCALAR, ENUM or INPUT_OBJECT type, skipping the five
// built-in scalars (they need no declaration of their own).
func collectTypeDeclarations(oracle schema.Oracle, usedTypes map[string]struct{}) []*ir.TypeDeclaration {
	retained := map[string]*schema.Type{}

	var queue []string
	for name := range usedTypes {
		if !builtinScalars[name] {
			queue = append(queue, name)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if _, done := retained[name]; done {
			continue
		}

		t := oracle.TypeByName(name)
		if t == nil {
			continue
		}

		switch t.Kind {
		case schema.Scalar, schema.Enum, schema.InputObject:
			retained[name] = t
		default:
			continue
		}

		if t.Kind == schema.InputObject {
			for _, field := range t.InputFields {
				named := field.Type.NamedType()
				if named == nil || builtinScalars[named.Name] {
					continue
				}
				if _, done := retained[named.Name]; !done {
					queue = append(queue, named.Name)
				}
			}
		}
	}

	names := make([]string, 0, len(retained))
	for name := range retained {
		names = append(names, name)
	}
	sort.Strings(names)

	declarations := make([]*ir.TypeDeclaration, 0, len(names))
	for _, name := range names {
		t := retained[name]
		switch t.Kind {
		case schema.Enum:
			values := make([]string, 0, len(t.EnumValues))
			for _, v := range t.EnumValues {
				values = append(values, v.Name)
			}
			declarations = append(declarations, &ir.TypeDeclaration{
				Kind:       ir.TypeDeclarationEnum,
				Name:       name,
				EnumValues: values,
			})

		case schema.InputObject:
			fields := make([]*ir.InputField, 0, len(t.InputFields))
			for _, f := range t.InputFields {
				fields = append(fields, &ir.InputField{
					Name:         f.Name,
					Type:         f.Type.String(),
					DefaultValue: normalizeDefaultValue(f.Type, f.DefaultValue),
				})
			}
			declarations = append(declarations, &ir.TypeDeclaration{
				Kind:        ir.TypeDeclarationInputObject,
				Name:        name,
				InputFields: fields,
			})

		case schema.Scalar:
			declarations = append(declarations, &ir.TypeDeclaration{Kind: ir.TypeDeclarationScalar, Name: name})
		}
	}

	return declarations
}

// normalizeDefaultValue renders an input field's raw SDL default-value text as a JSON literal
// shaped by its declared type.
func normalizeDefaultValue(t *schema.TypeRef, raw string) string {
	if raw == "" {
		return ""
	}

	switch t.Kind {
	case schema.NonNull:
		return normalizeDefaultValue(t.OfType, raw)

	case schema.List:
		inner := strings.TrimSpace(raw)
		inner = strings.TrimPrefix(inner, "[")
		inner = strings.TrimSuffix(inner, "]")
		inner = strings.TrimSpace(inner)
		if inner == "" {
			return "[]"
		}

		// A list of enum default values degrades to null: the introspection default-value text
		// gives no reliable per-element delimiter for bare enum names containing commas in their
		// own literal form, so this case is left unresolved rather than guessed at.
		if named := t.OfType.NamedType(); named != nil && named.Kind == schema.Enum {
			return "null"
		}

		parts := strings.Split(inner, ",")
		rendered := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			p = strings.Trim(p, `"`)
			rendered = append(rendered, normalizeDefaultValue(t.OfType, p))
		}
		return "[" + strings.Join(rendered, ",") + "]"

	case schema.Scalar:
		switch t.Name {
		case "Int", "Float", "Boolean":
			return raw
		default:
			b, err := json.Marshal(raw)
			if err != nil {
				return raw
			}
			return string(b)
		}

	default:
		b, err := json.Marshal(raw)
		if err != nil {
			return raw
		}
		return string(b)
	}
}
