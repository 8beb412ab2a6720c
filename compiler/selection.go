package compiler

import (
	"strings"

	"github.com/botobag/artemis-codegen/ast"
	"github.com/botobag/artemis-codegen/internal/suggestion"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"
)

// selectionResult is the triple a selection set (an operation body, a fragment body, a field's
// sub-selection, or an inline fragment's body) folds to before __typename injection: the plain
// fields parsed so far, the fragment spread names encountered directly, and the differently-typed
// inline fragments that could not be merged into Fields.
type selectionResult struct {
	Fields          []*ir.Field
	Spreads         []string
	InlineFragments []*ir.InlineFragment
}

// typenameField builds the synthetic __typename selection injected at the front of any non-empty
// selection set that doesn't already write one explicitly.
func typenameField() *ir.Field {
	return &ir.Field{ResponseName: "__typename", FieldName: "__typename", Type: "String!"}
}

// injectTypename prepends a synthetic __typename field to sr.Fields when the selection set is
// non-empty and none was already written; it reports whether it did so.
func injectTypename(sr *selectionResult) bool {
	if len(sr.Fields)+len(sr.Spreads)+len(sr.InlineFragments) == 0 {
		return false
	}
	for _, f := range sr.Fields {
		if f.FieldName == "__typename" {
			return false
		}
	}
	sr.Fields = append([]*ir.Field{typenameField()}, sr.Fields...)
	return true
}

// addField inserts field into sr, merging it with any existing selection sharing its response
// name per the conflict/merge rule, or appending it as new.
func (sr *selectionResult) addField(field *ir.Field) error {
	for i, existing := range sr.Fields {
		if existing.ResponseName == field.ResponseName {
			merged, err := mergeFields(existing, field)
			if err != nil {
				return err
			}
			sr.Fields[i] = merged
			return nil
		}
	}
	sr.Fields = append(sr.Fields, field)
	return nil
}

// mergeFields merges two selections that share a response name: a direct duplicate (an alias
// conflict) or a same-type inline fragment's field being forwarded into its enclosing selection.
// The two cases use one rule: the fields must already agree on shape, and only their fragment
// spreads are unioned.
func mergeFields(primary, other *ir.Field) (*ir.Field, error) {
	reason := ""
	switch {
	case primary.FieldName != other.FieldName:
		reason = "they have different field names"
	case primary.Type != other.Type:
		reason = "they have different types"
	case !argsContainAll(primary.Arguments, other.Arguments):
		reason = "they have different arguments"
	case !fieldsContainAll(primary.SelectionSet, other.SelectionSet):
		reason = "they have different sub-selections"
	case !inlineFragmentsContainAll(primary.InlineFragments, other.InlineFragments):
		reason = "they have different sub-selections"
	}
	if reason != "" {
		return nil, conflictError(primary.ResponseName, reason)
	}

	merged := *primary
	merged.FragmentSpreads = unionStrings(primary.FragmentSpreads, other.FragmentSpreads)
	return &merged, nil
}

func conflictError(responseName, reason string) error {
	return &conflictException{message: "Fields '" + responseName + "' conflict because " + reason + ". Use different aliases on the fields."}
}

// conflictException is a plain message error; merge conflicts have no single source location of
// their own (they span two selections), so they carry no line/position and the caller attaches
// one from whichever selection it was processing when the merge was attempted.
type conflictException struct{ message string }

func (e *conflictException) Error() string { return e.message }

func argsContainAll(primary, other []*ir.Argument) bool {
	for _, o := range other {
		found := false
		for _, p := range primary {
			if p.Name == o.Name && p.VariableName == o.VariableName && p.ValueJSON == o.ValueJSON {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func fieldsContainAll(primary, other []*ir.Field) bool {
	for _, o := range other {
		found := false
		for _, p := range primary {
			if p.ResponseName == o.ResponseName && p.FieldName == o.FieldName && p.Type == o.Type {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func inlineFragmentsContainAll(primary, other []*ir.InlineFragment) bool {
	for _, o := range other {
		found := false
		for _, p := range primary {
			if p.TypeCondition == o.TypeCondition {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func unionStrings(a, b []string) []string {
	seen := map[string]bool{}
	var result []string
	for _, s := range a {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	for _, s := range b {
		if !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}
	return result
}

// parseSelections walks one level of selections against parentType, folding fields, fragment
// spreads and differently-typed inline fragments into a selectionResult. It does not inject
// __typename; callers do that once the full result is assembled.
func (w *walker) parseSelections(selections []ast.Selection, parentType *schema.Type, vars map[string]*ir.Variable) (selectionResult, error) {
	var sr selectionResult

	for _, selection := range selections {
		switch s := selection.(type) {
		case *ast.Field:
			field, err := w.parseField(s, parentType, vars)
			if err != nil {
				return selectionResult{}, err
			}
			if err := sr.addField(field); err != nil {
				if ce, ok := err.(*conflictException); ok {
					return selectionResult{}, failTok(s.First, "%s", ce.message)
				}
				return selectionResult{}, err
			}

		case *ast.FragmentSpread:
			// Location only: a fragment spread's own @skip/@include never materializes into a stored
			// Condition, since FragmentSpreads carries names alone (spec §3's Fragment/Field tables).
			if _, err := parseDirectiveConditions(s.Directives, vars, locationFragmentSpread); err != nil {
				return selectionResult{}, err
			}
			sr.Spreads = append(sr.Spreads, s.Name.Value)

		case *ast.InlineFragment:
			typeConditionName := parentType.Name
			targetType := parentType
			if s.TypeCondition != nil {
				typeConditionName = s.TypeCondition.Name.Value
				targetType = w.oracle.TypeByName(typeConditionName)
				if targetType == nil {
					return selectionResult{}, failTok(s.TypeCondition.Name.Tok, "Unknown type '%s'", typeConditionName)
				}
			}

			conditions, err := parseDirectiveConditions(s.Directives, vars, locationInlineFragment)
			if err != nil {
				return selectionResult{}, err
			}

			inner, err := w.parseSelections(s.SelectionSet.Selections, targetType, vars)
			if err != nil {
				return selectionResult{}, err
			}

			if typeConditionName == parentType.Name {
				// No __typename is injected into inner here: the enclosing selection set receives its own
				// synthetic one at the front once it is fully assembled.
				for _, f := range inner.Fields {
					if err := sr.addField(f); err != nil {
						if ce, ok := err.(*conflictException); ok {
							return selectionResult{}, failTok(s.First, "%s", ce.message)
						}
						return selectionResult{}, err
					}
				}
				sr.Spreads = unionStrings(sr.Spreads, inner.Spreads)
				sr.InlineFragments = append(sr.InlineFragments, inner.InlineFragments...)
			} else {
				injectTypename(&inner)
				// 4.5/4.7: forward the enclosing selection set's sibling fields into this narrowing, so
				// shared selections appear inside it too, then union with the inline fragment's own
				// fields. Only plain fields and fragment spreads are forwarded; other inline fragments in
				// the enclosing set are left to their own, independent pass through this same loop.
				if err := w.forwardSiblingFields(&inner, selections, targetType, vars); err != nil {
					return selectionResult{}, err
				}
				injectTypename(&inner)

				sr.InlineFragments = append(sr.InlineFragments, &ir.InlineFragment{
					TypeCondition:   typeConditionName,
					PossibleTypes:   possibleTypesOf(w.oracle, targetType),
					Conditions:      conditions,
					SelectionSet:    inner.Fields,
					FragmentSpreads: inner.Spreads,
				})
				sr.InlineFragments = append(sr.InlineFragments, inner.InlineFragments...)
			}
		}
	}

	return sr, nil
}

// forwardSiblingFields parses every plain field and fragment spread in the enclosing selection
// list against targetType and unions the result into dst. It skips other inline fragments in the
// list: those are walked independently by parseSelections' own loop, and re-entering them here
// (against a type that may itself differ from theirs) would recurse without bound on a selection
// set containing two or more mutually exclusive narrowings.
func (w *walker) forwardSiblingFields(dst *selectionResult, selections []ast.Selection, targetType *schema.Type, vars map[string]*ir.Variable) error {
	for _, sibling := range selections {
		switch sib := sibling.(type) {
		case *ast.Field:
			f, err := w.parseField(sib, targetType, vars)
			if err != nil {
				return err
			}
			if err := dst.addField(f); err != nil {
				if ce, ok := err.(*conflictException); ok {
					return failTok(sib.First, "%s", ce.message)
				}
				return err
			}

		case *ast.FragmentSpread:
			if _, err := parseDirectiveConditions(sib.Directives, vars, locationFragmentSpread); err != nil {
				return err
			}
			dst.Spreads = unionStrings(dst.Spreads, []string{sib.Name.Value})
		}
	}
	return nil
}

// parseField parses one plain field selection against parentType, recursing into its
// sub-selection set against its own declared type.
func (w *walker) parseField(f *ast.Field, parentType *schema.Type, vars map[string]*ir.Variable) (*ir.Field, error) {
	responseName := f.ResponseName()
	fieldName := f.Name.Value

	if fieldName == "__typename" {
		return &ir.Field{ResponseName: responseName, FieldName: "__typename", Type: "String!"}, nil
	}

	if !parentType.IsComposite() {
		return nil, failTok(f.Name.Tok, "Can't query '%s' on type '%s'. '%s' is not one of the expected types of an object, interface or union.", fieldName, parentType.Name, parentType.Name)
	}

	schemaField := parentType.FieldNamed(fieldName)
	if schemaField == nil {
		names := make([]string, len(parentType.Fields))
		for i, field := range parentType.Fields {
			names[i] = field.Name
		}
		return nil, failTok(f.Name.Tok, "Can't query '%s' on type '%s'.%s", fieldName, parentType.Name, suggestion.Suffix(fieldName, names))
	}

	w.addUsedType(schemaField.Type.NamedType().Name)

	arguments, err := w.parseArguments(f.Arguments, schemaField.Args, vars, fieldName)
	if err != nil {
		return nil, err
	}

	conditions, err := parseDirectiveConditions(f.Directives, vars, locationField)
	if err != nil {
		return nil, err
	}

	field := &ir.Field{
		ResponseName:      responseName,
		FieldName:         fieldName,
		Type:              schemaField.Type.String(),
		Description:       schemaField.Description,
		IsDeprecated:      schemaField.IsDeprecated,
		DeprecationReason: schemaField.DeprecationReason,
		Arguments:         arguments,
		IsConditional:     len(conditions) > 0,
		Conditions:        conditions,
	}

	if f.SelectionSet != nil {
		subType := w.oracle.TypeByName(schemaField.Type.NamedType().Name)
		if subType == nil {
			return nil, failTok(f.Name.Tok, "Unknown type '%s'", schemaField.Type.NamedType().Name)
		}
		sub, err := w.parseSelections(f.SelectionSet.Selections, subType, vars)
		if err != nil {
			return nil, err
		}
		injectTypename(&sub)
		field.SelectionSet = sub.Fields
		field.FragmentSpreads = sub.Spreads
		field.InlineFragments = sub.InlineFragments
	}

	return field, nil
}

// normalizedSourceText trims trailing spaces, tabs and line breaks from source text reconstructed
// from a token range. Nothing in this module calls it.
func normalizedSourceText(s string) string {
	return strings.TrimRight(s, " \t\r\n")
}
