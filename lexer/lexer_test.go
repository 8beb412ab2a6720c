package lexer_test

import (
	"testing"

	"github.com/botobag/artemis-codegen/lexer"
	"github.com/botobag/artemis-codegen/token"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

func TestLexer(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Lexer Suite")
}

func lexOne(str string) (*token.Token, error) {
	l := lexer.New(token.NewSource(str))
	return l.Advance()
}

var _ = Describe("Lexer", func() {
	It("skips whitespace and comments", func() {
		tok, err := lexOne("\n\n    #comment\n    foo\n\n")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Kind).Should(Equal(token.Name))
		Expect(tok.Text).Should(Equal("foo"))
	})

	It("lexes punctuation", func() {
		for text, kind := range map[string]token.Kind{
			"!": token.Bang, "$": token.Dollar, "&": token.Amp, "(": token.LeftParen,
			")": token.RightParen, ":": token.Colon, "=": token.Equals, "@": token.At,
			"[": token.LeftBracket, "]": token.RightBracket, "{": token.LeftBrace,
			"|": token.Pipe, "}": token.RightBrace,
		} {
			tok, err := lexOne(text)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(tok.Kind).Should(Equal(kind))
		}
	})

	It("lexes a spread", func() {
		tok, err := lexOne("...")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Kind).Should(Equal(token.Spread))
	})

	It("rejects a partial spread", func() {
		_, err := lexOne("..")
		Expect(err).Should(HaveOccurred())
	})

	It("lexes names", func() {
		tok, err := lexOne("_ServiceName42")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Kind).Should(Equal(token.Name))
		Expect(tok.Text).Should(Equal("_ServiceName42"))
	})

	It("lexes numbers", func() {
		for text, kind := range map[string]token.Kind{
			"4": token.Int, "-4": token.Int,
			"4.123": token.Float, "123e4": token.Float, "123E-4": token.Float,
		} {
			tok, err := lexOne(text)
			Expect(err).ShouldNot(HaveOccurred())
			Expect(tok.Kind).Should(Equal(kind))
			Expect(tok.Text).Should(Equal(text))
		}
	})

	It("rejects a number with a leading zero", func() {
		_, err := lexOne("012")
		Expect(err).Should(HaveOccurred())
	})

	It("lexes a simple string", func() {
		tok, err := lexOne(`"simple"`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Kind).Should(Equal(token.String))
		Expect(tok.Text).Should(Equal("simple"))
	})

	It("lexes escape sequences", func() {
		tok, err := lexOne(`"escaped \n\tሴ"`)
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Text).Should(Equal("escaped \n\tሴ"))
	})

	It("rejects an unterminated string", func() {
		_, err := lexOne(`"no closing quote`)
		Expect(err).Should(HaveOccurred())
	})

	It("dedents block strings", func() {
		tok, err := lexOne("\"\"\"\n    Hello,\n      World!\n\n    Yours,\n      GraphQL.\n  \"\"\"")
		Expect(err).ShouldNot(HaveOccurred())
		Expect(tok.Kind).Should(Equal(token.BlockString))
		Expect(tok.Text).Should(Equal("Hello,\n  World!\n\nYours,\n  GraphQL."))
	})
})
