package parser_test

import (
	"testing"

	"github.com/botobag/artemis-codegen/ast"
	"github.com/botobag/artemis-codegen/parser"
	"github.com/botobag/artemis-codegen/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestParser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Parser Suite")
}

func parse(source string) (*ast.Document, error) {
	return parser.Parse(token.NewSource(source))
}

var _ = Describe("Parser", func() {
	It("parses the anonymous query shorthand", func() {
		doc, err := parse("{ id }")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(doc.Definitions).Should(HaveLen(1))

		op, ok := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(ok).Should(BeTrue())
		Expect(op.IsQueryShorthand).Should(BeTrue())
		Expect(op.Operation).Should(Equal(ast.Query))
		Expect(op.SelectionSet.Selections).Should(HaveLen(1))
	})

	It("parses a named operation with variables and a directive", func() {
		doc, err := parse(`query Hero($episode: Episode, $withFriends: Boolean = false) {
			hero(episode: $episode) {
				name
				friends @include(if: $withFriends) {
					name
				}
			}
		}`)
		Expect(err).ShouldNot(HaveOccurred())

		op := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(op.Name.Value).Should(Equal("Hero"))
		Expect(op.VariableDefinitions).Should(HaveLen(2))
		Expect(op.VariableDefinitions[0].Variable.Name.Value).Should(Equal("episode"))
		Expect(op.VariableDefinitions[1].DefaultValue).ShouldNot(BeNil())

		hero := op.SelectionSet.Selections[0].(*ast.Field)
		Expect(hero.Name.Value).Should(Equal("hero"))
		Expect(hero.Arguments).Should(HaveLen(1))

		friends := hero.SelectionSet.Selections[1].(*ast.Field)
		Expect(friends.Directives).Should(HaveLen(1))
		Expect(friends.Directives[0].Name.Value).Should(Equal("include"))
	})

	It("parses fragment definitions and spreads", func() {
		doc, err := parse(`
			query { hero { ...HeroDetails } }
			fragment HeroDetails on Character { name appearsIn }
		`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(doc.Definitions).Should(HaveLen(2))

		frag := doc.Definitions[1].(*ast.FragmentDefinition)
		Expect(frag.Name.Value).Should(Equal("HeroDetails"))
		Expect(frag.TypeCondition.Name.Value).Should(Equal("Character"))
	})

	It("parses inline fragments with and without a type condition", func() {
		doc, err := parse(`{
			hero {
				... on Droid { primaryFunction }
				... @skip(if: false) { name }
			}
		}`)
		Expect(err).ShouldNot(HaveOccurred())

		hero := doc.Definitions[0].(*ast.OperationDefinition).SelectionSet.Selections[0].(*ast.Field)
		typed := hero.SelectionSet.Selections[0].(*ast.InlineFragment)
		Expect(typed.TypeCondition.Name.Value).Should(Equal("Droid"))

		bare := hero.SelectionSet.Selections[1].(*ast.InlineFragment)
		Expect(bare.TypeCondition).Should(BeNil())
	})

	It("parses list and non-null types on variable definitions", func() {
		doc, err := parse(`query ($ids: [ID!]!) { nodes(ids: $ids) { id } }`)
		Expect(err).ShouldNot(HaveOccurred())

		op := doc.Definitions[0].(*ast.OperationDefinition)
		Expect(op.VariableDefinitions[0].Type.String()).Should(Equal("[ID!]!"))
	})

	It("parses aliased fields", func() {
		doc, err := parse(`{ luke: hero(episode: EMPIRE) { name } }`)
		Expect(err).ShouldNot(HaveOccurred())

		field := doc.Definitions[0].(*ast.OperationDefinition).SelectionSet.Selections[0].(*ast.Field)
		Expect(field.Alias.Value).Should(Equal("luke"))
		Expect(field.ResponseName()).Should(Equal("luke"))
	})

	It("rejects an unterminated selection set", func() {
		_, err := parse("{ hero { name ")
		Expect(err).Should(HaveOccurred())
	})

	It("rejects trailing garbage after a complete document", func() {
		_, err := parse("{ hero { name } } }")
		Expect(err).Should(HaveOccurred())
	})
})
