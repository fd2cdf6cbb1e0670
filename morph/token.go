// Package morph filters morphologically analyzed tokens down to the
// normalized terms the weighting pipeline consumes.
//
// The morphological analyzer itself is an external capability: anything
// that can turn text into (surface form, POS tag) pairs satisfies the
// Tokenizer interface. CommandTokenizer adapts an external analyzer
// process; tests substitute in-memory implementations.
package morph

import "context"

// Token is one analyzed morpheme: its surface form and POS tag.
type Token struct {
	// Form is the surface form of the morpheme.
	Form string

	// Tag is the POS tag assigned by the analyzer (e.g. "NNG", "VV").
	Tag string
}

// Tokenizer is the narrow capability interface over the external
// morphological analyzer. Implementations must be safe for concurrent
// use; the corpus builder tokenizes documents in parallel.
type Tokenizer interface {
	// Tokenize analyzes text and returns its tokens in input order.
	// An empty result for degenerate input is valid, not an error.
	Tokenize(ctx context.Context, text string) ([]Token, error)
}

// TokenizerFunc adapts a function to the Tokenizer interface.
type TokenizerFunc func(ctx context.Context, text string) ([]Token, error)

// Tokenize implements Tokenizer.
func (f TokenizerFunc) Tokenize(ctx context.Context, text string) ([]Token, error) {
	return f(ctx, text)
}
