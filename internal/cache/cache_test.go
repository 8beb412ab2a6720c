package cache_test

import (
	"testing"

	"github.com/botobag/artemis-codegen/internal/cache"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestCache(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Cache Suite")
}

var _ = Describe("KeyOf", func() {
	It("is stable for identical inputs", func() {
		Expect(cache.KeyOf("a.graphql", []byte("{ id }"))).Should(Equal(cache.KeyOf("a.graphql", []byte("{ id }"))))
	})

	It("differs when the file path differs", func() {
		Expect(cache.KeyOf("a.graphql", []byte("{ id }"))).ShouldNot(Equal(cache.KeyOf("b.graphql", []byte("{ id }"))))
	})

	It("does not collide across the path/source boundary", func() {
		Expect(cache.KeyOf("ab", []byte("c"))).ShouldNot(Equal(cache.KeyOf("a", []byte("bc"))))
	})
})

var _ = Describe("LRUDocumentCache", func() {
	It("round-trips a stored value and evicts least-recently-used entries past capacity", func() {
		c, err := cache.NewLRUDocumentCache(1)
		Expect(err).ShouldNot(HaveOccurred())

		keyA := cache.KeyOf("a", nil)
		keyB := cache.KeyOf("b", nil)

		c.Add(keyA, "valueA")
		v, ok := c.Get(keyA)
		Expect(ok).Should(BeTrue())
		Expect(v).Should(Equal("valueA"))

		c.Add(keyB, "valueB")
		_, ok = c.Get(keyA)
		Expect(ok).Should(BeFalse())
	})
})

var _ = Describe("NopDocumentCache", func() {
	It("never caches", func() {
		var c cache.NopDocumentCache
		c.Add(cache.KeyOf("a", nil), "value")
		_, ok := c.Get(cache.KeyOf("a", nil))
		Expect(ok).Should(BeFalse())
	})
})
