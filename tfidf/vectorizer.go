// Package tfidf provides a fit-once, transform-many TF-IDF vectorizer.
//
// The model is fitted exactly once over the pooled corpus and then
// applied unchanged to any subset of it. Reusing the fitted document
// frequencies and vocabulary is what makes weights comparable across
// subsets: a refit per subset would change the denominator statistics
// under each weight.
package tfidf

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode/utf8"
)

// ErrEmptyCorpus is returned when fitting over a corpus with no
// documents or no usable terms. No vocabulary can be derived, so every
// downstream stage would operate on an empty model.
var ErrEmptyCorpus = errors.New("empty corpus: no terms to fit")

// minTokenRunes drops single-character tokens, matching the reference
// vectorizer's token pattern.
const minTokenRunes = 2

// Vectorizer computes TF-IDF weights with smoothed IDF and L2 row
// normalization: idf = ln((1+n)/(1+df)) + 1, rows scaled to unit
// Euclidean norm. Fit then Transform; Transform never refits.
type Vectorizer struct {
	vocab []string       // fitted vocabulary in lexicographic order
	index map[string]int // term -> column
	idf   []float64      // per-column IDF
}

// NewVectorizer creates an unfitted vectorizer.
func NewVectorizer() *Vectorizer {
	return &Vectorizer{}
}

// Fitted reports whether Fit has completed.
func (v *Vectorizer) Fitted() bool {
	return v.index != nil
}

// Vocabulary returns the fitted vocabulary in its fixed lexicographic
// order. Nil before Fit.
func (v *Vectorizer) Vocabulary() []string {
	return v.vocab
}

// Column returns the fitted column index for a term.
func (v *Vectorizer) Column(term string) (int, bool) {
	col, ok := v.index[term]
	return col, ok
}

// Fit derives the vocabulary and IDF statistics from the pooled
// document set. Each document is a space-joined term string. Returns
// ErrEmptyCorpus when no document yields a usable term.
func (v *Vectorizer) Fit(docs []string) error {
	if len(docs) == 0 {
		return ErrEmptyCorpus
	}

	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, ok := seen[term]; !ok {
				df[term]++
				seen[term] = struct{}{}
			}
		}
	}
	if len(df) == 0 {
		return ErrEmptyCorpus
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	n := float64(len(docs))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	v.vocab = vocab
	v.index = index
	v.idf = idf
	return nil
}

// Transform applies the fitted model to docs, returning one dense
// weight vector per document over the fitted vocabulary. Terms outside
// the fitted vocabulary are ignored. Panics if called before Fit; the
// pipeline establishes the fit barrier before any transform runs.
func (v *Vectorizer) Transform(docs []string) [][]float64 {
	if !v.Fitted() {
		panic("tfidf: Transform called before Fit")
	}

	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(v.vocab))
		for _, term := range tokenize(doc) {
			if col, ok := v.index[term]; ok {
				row[col] += v.idf[col]
			}
		}
		l2Normalize(row)
		rows[i] = row
	}
	return rows
}

// FitTransform fits on docs and returns their transform.
func (v *Vectorizer) FitTransform(docs []string) ([][]float64, error) {
	if err := v.Fit(docs); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}
	return v.Transform(docs), nil
}

// tokenize splits a space-joined document the way the reference
// vectorizer's analyzer does: lowercase fold, tokens shorter than two
// runes dropped.
func tokenize(doc string) []string {
	fields := strings.Fields(doc)
	terms := fields[:0]
	for _, f := range fields {
		f = strings.ToLower(f)
		if utf8.RuneCountInString(f) >= minTokenRunes {
			terms = append(terms, f)
		}
	}
	return terms
}

// l2Normalize scales row to unit Euclidean norm in place. A zero row
// stays zero.
func l2Normalize(row []float64) {
	var sumSq float64
	for _, x := range row {
		sumSq += x * x
	}
	if sumSq == 0 {
		return
	}
	norm := math.Sqrt(sumSq)
	for i := range row {
		row[i] /= norm
	}
}
