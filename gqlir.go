package gqlir

import (
	"github.com/botobag/artemis-codegen/compiler"
	"github.com/botobag/artemis-codegen/compiler/internal/diagnostics"
	"github.com/botobag/artemis-codegen/internal/cache"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"
)

// Document is one input GraphQL file: its path and raw source text.
type Document = compiler.Document

// Option configures a ParseDocuments run.
type Option = compiler.Option

// WithCache sets the document cache ParseDocuments consults and populates across calls. The
// default caches nothing.
func WithCache(c cache.DocumentCache) Option {
	return compiler.WithCache(c)
}

// WithLogger sets the structured logger ParseDocuments reports cache and walk events to. The
// default discards everything.
func WithLogger(l *diagnostics.Logger) Option {
	return compiler.WithLogger(l)
}

// ParseDocuments is the package's single entry point: given a read-only schema.Oracle and a batch
// of GraphQL documents, it lexes, parses, validates and flattens every document, links operations
// and fragments across the whole batch, and derives the closure of custom scalar, enum and
// input-object types the batch references.
//
// It fails fast: the first error encountered anywhere in the batch is returned, and no partial IR
// is produced. Errors are one of ParseException, GraphQLParseException or
// GraphQLDocumentParseException, dispatchable with errors.As.
func ParseDocuments(oracle schema.Oracle, documents []Document, opts ...Option) (*ir.CodeGenerationIR, error) {
	return compiler.Compile(oracle, documents, opts...)
}
