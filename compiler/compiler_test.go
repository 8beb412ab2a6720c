package compiler_test

import (
	"encoding/json"
	"testing"

	gqlir "github.com/botobag/artemis-codegen"
	"github.com/botobag/artemis-codegen/compiler"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"

	"github.com/kylelemons/godebug/pretty"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestCompiler(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Compiler Suite")
}

func scalarType(name string) *schema.TypeRef { return &schema.TypeRef{Kind: schema.Scalar, Name: name} }

func nonNull(t *schema.TypeRef) *schema.TypeRef { return &schema.TypeRef{Kind: schema.NonNull, OfType: t} }

// testSchema builds a small Star Wars-shaped schema: a Character interface implemented by Human
// and Droid, a Query root, and a ReviewInput input object for argument-coercion coverage.
func testSchema() schema.Oracle {
	idType := scalarType("ID")
	stringType := scalarType("String")
	episodeType := &schema.TypeRef{Kind: schema.Enum, Name: "Episode"}

	characterField := func() []*schema.Field {
		return []*schema.Field{
			{Name: "id", Type: nonNull(idType)},
			{Name: "name", Type: nonNull(stringType)},
		}
	}

	character := &schema.Type{
		Kind:   schema.Interface,
		Name:   "Character",
		Fields: characterField(),
	}

	human := &schema.Type{
		Kind:       schema.Object,
		Name:       "Human",
		Interfaces: []string{"Character"},
		Fields:     append(characterField(), &schema.Field{Name: "homePlanet", Type: stringType}),
	}

	droid := &schema.Type{
		Kind:       schema.Object,
		Name:       "Droid",
		Interfaces: []string{"Character"},
		Fields:     append(characterField(), &schema.Field{Name: "primaryFunction", Type: stringType}),
	}

	reviewInput := &schema.Type{
		Kind: schema.InputObject,
		Name: "ReviewInput",
		InputFields: []*schema.InputField{
			{Name: "stars", Type: nonNull(scalarType("Int"))},
			{Name: "commentary", Type: stringType},
		},
	}

	query := &schema.Type{
		Kind: schema.Object,
		Name: "Query",
		Fields: []*schema.Field{
			{Name: "hero", Type: &schema.TypeRef{Kind: schema.Interface, Name: "Character"}, Args: []*schema.Argument{
				{Name: "episode", Type: episodeType},
			}},
			{Name: "human", Type: &schema.TypeRef{Kind: schema.Object, Name: "Human"}, Args: []*schema.Argument{
				{Name: "id", Type: nonNull(idType)},
			}},
		},
	}

	mutation := &schema.Type{
		Kind: schema.Object,
		Name: "Mutation",
		Fields: []*schema.Field{
			{Name: "createReview", Type: stringType, Args: []*schema.Argument{
				{Name: "review", Type: nonNull(&schema.TypeRef{Kind: schema.InputObject, Name: "ReviewInput"})},
			}},
		},
	}

	episode := &schema.Type{
		Kind: schema.Enum,
		Name: "Episode",
		EnumValues: []*schema.EnumValue{
			{Name: "NEWHOPE"}, {Name: "EMPIRE"}, {Name: "JEDI"},
		},
	}

	builtinScalar := func(name string) *schema.Type { return &schema.Type{Kind: schema.Scalar, Name: name} }

	return schema.NewInMemoryOracle("Query", "Mutation", "", []*schema.Type{
		character, human, droid, query, mutation, episode, reviewInput,
		builtinScalar("String"), builtinScalar("ID"), builtinScalar("Int"),
		builtinScalar("Float"), builtinScalar("Boolean"),
	})
}

var _ = Describe("Compile", func() {
	var oracle schema.Oracle

	BeforeEach(func() {
		oracle = testSchema()
	})

	It("injects __typename into a minimal query", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `{ human(id: "1000") { name } }`},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.Operations).Should(HaveLen(1))

		op := result.Operations[0]
		Expect(op.SelectionSet).Should(HaveLen(1))

		human := op.SelectionSet[0]
		Expect(human.FieldName).Should(Equal("human"))
		Expect(human.SelectionSet).Should(HaveLen(2))
		Expect(human.SelectionSet[0].FieldName).Should(Equal("__typename"))
		Expect(human.SelectionSet[1].FieldName).Should(Equal("name"))
	})

	It("matches the golden IR shape for a minimal query's selection set", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `{ human(id: "1000") { name } }`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		got, err := json.Marshal(result.Operations[0].SelectionSet[0].SelectionSet)
		Expect(err).ShouldNot(HaveOccurred())

		want := `[` +
			`{"responseName":"__typename","fieldName":"__typename","type":"String!"},` +
			`{"responseName":"name","fieldName":"name","type":"String!"}` +
			`]`

		if diff := pretty.Compare(string(got), want); diff != "" {
			Fail("IR selection set does not match golden shape (-got +want):\n" + diff)
		}
	})

	It("rejects a variable used at an incompatible argument type", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `
				query Hero($id: String) {
					human(id: $id) { name }
				}
			`},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("used in position expecting type 'ID!'"))
	})

	It("accepts a variable whose type matches the argument", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `
				query Hero($id: ID!) {
					human(id: $id) { name }
				}
			`},
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("reports an undefined fragment", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `{ human(id: "1") { ...MissingFields } }`},
		})
		Expect(err).Should(HaveOccurred())

		var ge *gqlir.GraphQLParseException
		Expect(err).Should(BeAssignableToTypeOf(ge))
		Expect(err.Error()).Should(ContainSubstring("Undefined fragment 'MissingFields'"))
	})

	It("reports a duplicate operation name", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `query Hero { human(id: "1") { name } }`},
			{FilePath: "queries/a.graphql", Source: `query Hero { human(id: "2") { name } }`},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("There can be only one operation named 'Hero'"))
	})

	It("reports an alias conflict between differently-shaped fields", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `{
				hero(episode: EMPIRE) { name }
				hero: hero(episode: JEDI) { name }
			}`},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("conflict because they have different arguments"))
	})

	It("merges a same-type inline fragment's fields into the parent selection", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `{
				human(id: "1000") {
					id
					... on Human { name }
				}
			}`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		human := result.Operations[0].SelectionSet[0]
		names := make([]string, len(human.SelectionSet))
		for i, f := range human.SelectionSet {
			names[i] = f.ResponseName
		}
		Expect(names).Should(Equal([]string{"__typename", "id", "name"}))
		Expect(human.InlineFragments).Should(BeEmpty())
	})

	It("keeps a differently-typed inline fragment as its own record", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `{
				hero(episode: JEDI) {
					name
					... on Droid { primaryFunction }
				}
			}`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		hero := result.Operations[0].SelectionSet[0]
		Expect(hero.InlineFragments).Should(HaveLen(1))
		Expect(hero.InlineFragments[0].TypeCondition).Should(Equal("Droid"))
		Expect(hero.InlineFragments[0].PossibleTypes).Should(Equal([]string{"Droid"}))

		names := make([]string, len(hero.InlineFragments[0].SelectionSet))
		for i, f := range hero.InlineFragments[0].SelectionSet {
			names[i] = f.ResponseName
		}
		Expect(names).Should(ConsistOf("__typename", "name", "primaryFunction"))
	})

	It("keeps each differently-typed inline fragment's own fields out of its sibling narrowings", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `{
				hero(episode: JEDI) {
					... on Droid { primaryFunction }
					... on Human { homePlanet }
				}
			}`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		hero := result.Operations[0].SelectionSet[0]
		Expect(hero.InlineFragments).Should(HaveLen(2))

		byType := map[string][]string{}
		for _, inl := range hero.InlineFragments {
			names := make([]string, len(inl.SelectionSet))
			for i, f := range inl.SelectionSet {
				names[i] = f.ResponseName
			}
			byType[inl.TypeCondition] = names
		}
		Expect(byType["Droid"]).Should(ConsistOf("__typename", "primaryFunction"))
		Expect(byType["Human"]).Should(ConsistOf("__typename", "homePlanet"))
	})

	It("attaches a Condition for a field guarded by @include", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `
				query Hero($withName: Boolean!) {
					hero(episode: JEDI) {
						name @include(if: $withName)
					}
				}
			`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		hero := result.Operations[0].SelectionSet[0]
		var nameField *ir.Field
		for _, f := range hero.SelectionSet {
			if f.ResponseName == "name" {
				nameField = f
			}
		}
		Expect(nameField).ShouldNot(BeNil())
		Expect(nameField.IsConditional).Should(BeTrue())
		Expect(nameField.Conditions).Should(HaveLen(1))
		Expect(nameField.Conditions[0].Negate).Should(BeFalse())
		Expect(nameField.Conditions[0].VariableName).Should(Equal("withName"))
	})

	It("allows @skip on a fragment spread without erroring", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/a.graphql", Source: `
				query Hero($skipIt: Boolean!) {
					hero(episode: JEDI) {
						...CharacterFields @skip(if: $skipIt)
					}
				}
			`},
			{FilePath: "fragments/character.graphql", Source: `fragment CharacterFields on Character { name }`},
		})
		Expect(err).ShouldNot(HaveOccurred())
	})

	It("rejects @skip on a fragment definition", func() {
		_, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "fragments/character.graphql", Source: `fragment CharacterFields on Character @skip(if: true) { name }`},
		})
		Expect(err).Should(HaveOccurred())
		Expect(err.Error()).Should(ContainSubstring("Directive '@skip' may not be used on FRAGMENT_DEFINITION"))
	})

	It("resolves fragment spreads across documents and attaches their source", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `query Hero { hero(episode: JEDI) { ...CharacterFields } }`},
			{FilePath: "fragments/character.graphql", Source: `fragment CharacterFields on Character { id name }`},
		})
		Expect(err).ShouldNot(HaveOccurred())
		Expect(result.Fragments).Should(HaveLen(1))

		op := result.Operations[0]
		Expect(op.FragmentsReferenced).Should(Equal([]string{"CharacterFields"}))
		Expect(op.SourceWithFragments).Should(ContainSubstring("fragment CharacterFields"))
	})

	It("collects the referenced enum and input-object type declarations", func() {
		result, err := compiler.Compile(oracle, []compiler.Document{
			{FilePath: "queries/hero.graphql", Source: `query Hero($episode: Episode) { hero(episode: $episode) { name } }`},
			{FilePath: "mutations/review.graphql", Source: `mutation Create($review: ReviewInput!) { createReview(review: $review) }`},
		})
		Expect(err).ShouldNot(HaveOccurred())

		kinds := map[string]ir.TypeDeclarationKind{}
		for _, decl := range result.TypesUsed {
			kinds[decl.Name] = decl.Kind
		}
		Expect(kinds["Episode"]).Should(Equal(ir.TypeDeclarationEnum))
		Expect(kinds["ReviewInput"]).Should(Equal(ir.TypeDeclarationInputObject))
	})
})
