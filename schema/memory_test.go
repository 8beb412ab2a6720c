package schema_test

import (
	"testing"

	"github.com/botobag/artemis-codegen/schema"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestSchema(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schema Suite")
}

var _ = Describe("InMemoryOracle", func() {
	newOracle := func() schema.Oracle {
		character := &schema.Type{Kind: schema.Interface, Name: "Character"}
		human := &schema.Type{Kind: schema.Object, Name: "Human", Interfaces: []string{"Character"}}
		droid := &schema.Type{Kind: schema.Object, Name: "Droid", Interfaces: []string{"Character"}}
		searchResult := &schema.Type{Kind: schema.Union, Name: "SearchResult", PossibleTypes: []string{"Human", "Droid"}}
		query := &schema.Type{Kind: schema.Object, Name: "Query", Fields: []*schema.Field{
			{Name: "hero", Type: &schema.TypeRef{Kind: schema.Interface, Name: "Character"}},
		}}
		return schema.NewInMemoryOracle("Query", "", "", []*schema.Type{character, human, droid, searchResult, query})
	}

	It("computes possible types for an interface from implementing objects", func() {
		oracle := newOracle()
		Expect(oracle.PossibleTypes("Character")).Should(ConsistOf("Human", "Droid"))
	})

	It("returns a union's declared possible types", func() {
		oracle := newOracle()
		Expect(oracle.PossibleTypes("SearchResult")).Should(ConsistOf("Human", "Droid"))
	})

	It("treats an object as its own possible type", func() {
		oracle := newOracle()
		Expect(oracle.IsPossibleType("Human", "Human")).Should(BeTrue())
	})

	It("reports root type names and an empty name for unconfigured roots", func() {
		oracle := newOracle()
		Expect(oracle.QueryType()).Should(Equal("Query"))
		Expect(oracle.MutationType()).Should(Equal(""))
	})

	It("finds a field on the query root", func() {
		oracle := newOracle()
		query := oracle.TypeByName("Query")
		Expect(query.FieldNamed("hero")).ShouldNot(BeNil())
		Expect(query.FieldNamed("missing")).Should(BeNil())
	})
})
