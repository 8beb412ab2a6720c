package gqlir_test

import (
	"testing"

	gqlir "github.com/botobag/artemis-codegen"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestErrors(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Errors Suite")
}

var _ = Describe("GraphQLDocumentParseException", func() {
	It("frames the offending line with its neighbors between dashed rules", func() {
		source := "query Hero {\n  hero(episode: JEDI\n  name\n}\n"
		cause := gqlir.NewParseException("Expected ')'", 2, 21)
		err := gqlir.NewGraphQLDocumentParseException("queries/hero.graphql", source, cause)

		Expect(err.FilePath).Should(Equal("queries/hero.graphql"))
		Expect(err.Preview).Should(ContainSubstring("[1]: query Hero {"))
		Expect(err.Preview).Should(ContainSubstring("[2]:   hero(episode: JEDI"))
		Expect(err.Preview).Should(ContainSubstring("[3]:   name"))
		Expect(err.Error()).Should(ContainSubstring("Expected ')' (line 2, position 21)"))
	})

	It("omits neighbor lines that fall outside the document", func() {
		cause := gqlir.NewParseException("Unexpected <EOF>", 1, 1)
		err := gqlir.NewGraphQLDocumentParseException("queries/hero.graphql", "{ id }", cause)
		Expect(err.Preview).Should(ContainSubstring("[1]: { id }"))
		Expect(err.Preview).ShouldNot(ContainSubstring("[0]:"))
		Expect(err.Preview).ShouldNot(ContainSubstring("[2]:"))
	})

	It("unwraps to its ParseException cause", func() {
		cause := gqlir.NewParseException("boom", 1, 1)
		err := gqlir.NewGraphQLDocumentParseException("f.graphql", "{}", cause)
		Expect(err.Unwrap()).Should(BeIdenticalTo(cause))
	})
})
