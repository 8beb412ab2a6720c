package compiler

import (
	"fmt"
	"strings"

	gqlir "github.com/botobag/artemis-codegen"
	"github.com/botobag/artemis-codegen/internal/identifier"
	"github.com/botobag/artemis-codegen/internal/suggestion"
	"github.com/botobag/artemis-codegen/ir"
)

// link runs the cross-document linker over every operation and fragment walked across all input
// files: duplicate-name detection, fragment-reference resolution, and per-operation source
// attachment of the fragments it references directly plus one further level of fragments.
func link(operations []*ir.Operation, fragments []*ir.Fragment) error {
	if err := checkDuplicateOperations(operations); err != nil {
		return err
	}
	fragByName, err := checkDuplicateFragments(fragments)
	if err != nil {
		return err
	}

	if err := checkFragmentReferences(operations, fragments, fragByName); err != nil {
		return err
	}

	attachSources(operations, fragByName)
	return nil
}

func checkDuplicateOperations(operations []*ir.Operation) error {
	seen := map[string]bool{}
	for _, op := range operations {
		key := identifier.FormatOperationKey(op.FilePath, op.Name)
		if seen[key] {
			return gqlir.NewGraphQLParseException(fmt.Sprintf("There can be only one operation named '%s'", op.Name))
		}
		seen[key] = true
	}
	return nil
}

func checkDuplicateFragments(fragments []*ir.Fragment) (map[string]*ir.Fragment, error) {
	byName := make(map[string]*ir.Fragment, len(fragments))
	for _, f := range fragments {
		if _, exists := byName[f.Name]; exists {
			return nil, gqlir.NewGraphQLParseException(fmt.Sprintf("There can be only one fragment named '%s'", f.Name))
		}
		byName[f.Name] = f
	}
	return byName, nil
}

func checkFragmentReferences(operations []*ir.Operation, fragments []*ir.Fragment, byName map[string]*ir.Fragment) error {
	known := make([]string, 0, len(byName))
	for name := range byName {
		known = append(known, name)
	}

	check := func(names []string) error {
		for _, name := range names {
			if _, ok := byName[name]; !ok {
				return gqlir.NewGraphQLParseException(fmt.Sprintf("Undefined fragment '%s'.%s", name, suggestion.Suffix(name, known)))
			}
		}
		return nil
	}
	for _, op := range operations {
		if err := check(op.FragmentsReferenced); err != nil {
			return err
		}
	}
	for _, f := range fragments {
		if err := check(f.FragmentsReferenced); err != nil {
			return err
		}
	}
	return nil
}

// attachSources sets each operation's sourceWithFragments: its own source, followed by the source
// of every directly referenced fragment, followed by one further level of fragments those
// directly reference.
func attachSources(operations []*ir.Operation, byName map[string]*ir.Fragment) {
	for _, op := range operations {
		seen := map[string]bool{}
		var sources []string

		appendFragment := func(name string) {
			if seen[name] {
				return
			}
			seen[name] = true
			if frag, ok := byName[name]; ok {
				sources = append(sources, frag.Source)
			}
		}

		for _, name := range op.FragmentsReferenced {
			appendFragment(name)
		}
		for _, name := range op.FragmentsReferenced {
			if frag, ok := byName[name]; ok {
				for _, nested := range frag.FragmentsReferenced {
					appendFragment(nested)
				}
			}
		}

		fragmentSource := strings.Join(sources, "\n")
		if fragmentSource != "" {
			op.SourceWithFragments = op.Source + "\n" + fragmentSource
		} else {
			op.SourceWithFragments = op.Source
		}
	}
}
