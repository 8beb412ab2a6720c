// Package introspection builds a schema.Oracle from a raw GraphQL introspection response (the
// JSON result of running the standard introspection query against a live schema). It exists for
// tests and fixtures: the compiler never imports this package, since schema ingestion itself is
// out of its scope — callers are expected to already hold a schema.Oracle by the time they invoke
// the compiler.
package introspection

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/botobag/artemis-codegen/schema"
)

// Load parses raw introspection JSON (the `{"data": {"__schema": {...}}}` or bare
// `{"__schema": {...}}` envelope) into a schema.Oracle.
func Load(raw []byte) (schema.Oracle, error) {
	doc := gjson.ParseBytes(raw)

	root := doc.Get("__schema")
	if !root.Exists() {
		root = doc.Get("data.__schema")
	}
	if !root.Exists() {
		return nil, fmt.Errorf("introspection: no __schema field found in document")
	}

	query := root.Get("queryType.name").String()
	mutation := root.Get("mutationType.name").String()
	subscription := root.Get("subscriptionType.name").String()

	var types []*schema.Type
	var parseErr error
	root.Get("types").ForEach(func(_, t gjson.Result) bool {
		parsed, err := parseType(t)
		if err != nil {
			parseErr = err
			return false
		}
		types = append(types, parsed)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return schema.NewInMemoryOracle(query, mutation, subscription, types), nil
}

// Normalize re-serializes raw introspection JSON with a canonical key order, using sjson, so
// golden fixtures diff cleanly regardless of the order a server emitted fields in.
func Normalize(raw []byte) ([]byte, error) {
	keys := []string{"__schema.queryType", "__schema.mutationType", "__schema.subscriptionType", "__schema.types"}
	out := []byte(`{}`)
	doc := gjson.ParseBytes(raw)
	schemaRoot := doc.Get("__schema")
	if !schemaRoot.Exists() {
		schemaRoot = doc.Get("data.__schema")
	}
	for _, key := range keys {
		shortKey := key[len("__schema."):]
		value := schemaRoot.Get(shortKey)
		if !value.Exists() {
			continue
		}
		var err error
		out, err = sjson.SetRawBytes(out, key, []byte(value.Raw))
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func parseType(t gjson.Result) (*schema.Type, error) {
	kind := schema.Kind(t.Get("kind").String())
	result := &schema.Type{
		Kind:        kind,
		Name:        t.Get("name").String(),
		Description: t.Get("description").String(),
	}

	t.Get("fields").ForEach(func(_, f gjson.Result) bool {
		result.Fields = append(result.Fields, parseField(f))
		return true
	})

	t.Get("interfaces").ForEach(func(_, i gjson.Result) bool {
		result.Interfaces = append(result.Interfaces, i.Get("name").String())
		return true
	})

	t.Get("possibleTypes").ForEach(func(_, p gjson.Result) bool {
		result.PossibleTypes = append(result.PossibleTypes, p.Get("name").String())
		return true
	})

	t.Get("enumValues").ForEach(func(_, e gjson.Result) bool {
		result.EnumValues = append(result.EnumValues, &schema.EnumValue{
			Name:              e.Get("name").String(),
			Description:       e.Get("description").String(),
			IsDeprecated:      e.Get("isDeprecated").Bool(),
			DeprecationReason: e.Get("deprecationReason").String(),
		})
		return true
	})

	t.Get("inputFields").ForEach(func(_, i gjson.Result) bool {
		result.InputFields = append(result.InputFields, &schema.InputField{
			Name:         i.Get("name").String(),
			Description:  i.Get("description").String(),
			Type:         parseTypeRef(i.Get("type")),
			DefaultValue: i.Get("defaultValue").String(),
		})
		return true
	})

	return result, nil
}

func parseField(f gjson.Result) *schema.Field {
	field := &schema.Field{
		Name:              f.Get("name").String(),
		Description:       f.Get("description").String(),
		Type:              parseTypeRef(f.Get("type")),
		IsDeprecated:      f.Get("isDeprecated").Bool(),
		DeprecationReason: f.Get("deprecationReason").String(),
	}
	f.Get("args").ForEach(func(_, a gjson.Result) bool {
		field.Args = append(field.Args, &schema.Argument{
			Name:         a.Get("name").String(),
			Description:  a.Get("description").String(),
			Type:         parseTypeRef(a.Get("type")),
			DefaultValue: a.Get("defaultValue").String(),
		})
		return true
	})
	return field
}

// parseTypeRef recurses through the introspection `__Type.ofType` chain (the spec's introspection
// query nests this up to 7 levels deep, enough for any realistic [[Type!]!] wrapping).
func parseTypeRef(t gjson.Result) *schema.TypeRef {
	if !t.Exists() {
		return nil
	}
	kind := schema.Kind(t.Get("kind").String())
	ref := &schema.TypeRef{Kind: kind}
	if kind == schema.List || kind == schema.NonNull {
		ref.OfType = parseTypeRef(t.Get("ofType"))
	} else {
		ref.Name = t.Get("name").String()
	}
	return ref
}
