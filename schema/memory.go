package schema

import "sync"

// InMemoryOracle is a straightforward Oracle backed by a map of Type values, typically built once
// by schema/introspection.Load and then shared read-only across an entire run.
//
// Definitions in a schema are assumed immutable once built, so PossibleTypes results are computed
// once per abstract type and cached for the lifetime of the Oracle.
type InMemoryOracle struct {
	query        string
	mutation     string
	subscription string
	types        map[string]*Type

	possibleTypesOnce sync.Once
	possibleTypes     map[string][]string
}

// NewInMemoryOracle builds an Oracle from the given root type names and type list.
func NewInMemoryOracle(query, mutation, subscription string, types []*Type) *InMemoryOracle {
	byName := make(map[string]*Type, len(types))
	for _, t := range types {
		byName[t.Name] = t
	}
	return &InMemoryOracle{
		query:        query,
		mutation:     mutation,
		subscription: subscription,
		types:        byName,
	}
}

func (o *InMemoryOracle) QueryType() string        { return o.query }
func (o *InMemoryOracle) MutationType() string      { return o.mutation }
func (o *InMemoryOracle) SubscriptionType() string  { return o.subscription }

func (o *InMemoryOracle) TypeByName(name string) *Type { return o.types[name] }

func (o *InMemoryOracle) ensurePossibleTypes() {
	o.possibleTypesOnce.Do(func() {
		o.possibleTypes = make(map[string][]string)
		for _, t := range o.types {
			if t.Kind == Union {
				o.possibleTypes[t.Name] = append([]string(nil), t.PossibleTypes...)
				continue
			}
			if t.Kind == Object {
				for _, iface := range t.Interfaces {
					o.possibleTypes[iface] = append(o.possibleTypes[iface], t.Name)
				}
			}
		}
	})
}

func (o *InMemoryOracle) PossibleTypes(abstractTypeName string) []string {
	o.ensurePossibleTypes()
	return o.possibleTypes[abstractTypeName]
}

func (o *InMemoryOracle) IsPossibleType(abstractTypeName, objectTypeName string) bool {
	if abstractTypeName == objectTypeName {
		return true
	}
	for _, name := range o.PossibleTypes(abstractTypeName) {
		if name == objectTypeName {
			return true
		}
	}
	return false
}

var _ Oracle = (*InMemoryOracle)(nil)
