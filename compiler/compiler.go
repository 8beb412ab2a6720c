package compiler

import (
	"github.com/botobag/artemis-codegen/compiler/internal/diagnostics"
	"github.com/botobag/artemis-codegen/internal/cache"
	"github.com/botobag/artemis-codegen/ir"
	"github.com/botobag/artemis-codegen/schema"
)

// Document is one input file: its path (used for package-name folding and error reporting) and
// raw GraphQL source text.
type Document struct {
	FilePath string
	Source   string
}

// Options configures a Compile run.
type Options struct {
	Cache  cache.DocumentCache
	Logger *diagnostics.Logger
}

// Option mutates an Options value.
type Option func(*Options)

// WithCache sets the document cache Compile consults and populates. The default is a no-op cache.
func WithCache(c cache.DocumentCache) Option {
	return func(o *Options) { o.Cache = c }
}

// WithLogger sets the diagnostics logger Compile reports cache and walk events to. The default
// discards everything.
func WithLogger(l *diagnostics.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() *Options {
	return &Options{Cache: cache.NopDocumentCache{}, Logger: diagnostics.Nop()}
}

// Compile walks every document against oracle, links the resulting operations and fragments
// across the whole batch, and derives the closure of schema types the batch references. It fails
// fast: the first error encountered, from any document or from linking, is returned and no
// partial IR is produced.
func Compile(oracle schema.Oracle, documents []Document, opts ...Option) (*ir.CodeGenerationIR, error) {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	var (
		operations []*ir.Operation
		fragments  []*ir.Fragment
		usedTypes  = map[string]struct{}{}
	)

	for _, doc := range documents {
		result, err := compileDocument(oracle, doc, options)
		if err != nil {
			return nil, err
		}

		operations = append(operations, result.operations...)
		fragments = append(fragments, result.fragments...)
		for name := range result.usedTypes {
			usedTypes[name] = struct{}{}
		}
	}

	if err := link(operations, fragments); err != nil {
		return nil, err
	}

	return &ir.CodeGenerationIR{
		Operations: operations,
		Fragments:  fragments,
		TypesUsed:  collectTypeDeclarations(oracle, usedTypes),
	}, nil
}

// compileDocument walks one document, consulting and populating the document cache around the
// walk.
func compileDocument(oracle schema.Oracle, doc Document, options *Options) (*documentResult, error) {
	key := cache.KeyOf(doc.FilePath, []byte(doc.Source))

	if cached, ok := options.Cache.Get(key); ok {
		options.Logger.CacheHit(doc.FilePath)
		result, ok := cached.(*documentResult)
		if ok {
			return result, nil
		}
	}
	options.Logger.CacheMiss(doc.FilePath)

	result, err := walkDocument(oracle, doc.FilePath, doc.Source)
	if err != nil {
		return nil, err
	}

	options.Cache.Add(key, result)
	options.Logger.WalkedFile(doc.FilePath, len(result.operations), len(result.fragments))
	return result, nil
}
