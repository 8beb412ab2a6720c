package identifier_test

import (
	"testing"

	"github.com/botobag/artemis-codegen/internal/identifier"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestIdentifier(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Identifier Suite")
}

var _ = Describe("FormatPackageName", func() {
	It("folds a nested directory path into a dotted, snake_cased package name", func() {
		Expect(identifier.FormatPackageName("queries/HeroDetails/hero.graphql")).Should(Equal("queries.hero_details"))
	})

	It("returns empty for a file at the root", func() {
		Expect(identifier.FormatPackageName("hero.graphql")).Should(Equal(""))
	})
})

var _ = Describe("FormatOperationKey", func() {
	It("scopes an operation name by its folded package", func() {
		Expect(identifier.FormatOperationKey("queries/hero.graphql", "Hero")).Should(Equal("queries.Hero"))
	})

	It("uses the bare name when there is no package", func() {
		Expect(identifier.FormatOperationKey("hero.graphql", "Hero")).Should(Equal("Hero"))
	})
})
