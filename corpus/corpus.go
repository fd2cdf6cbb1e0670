// Package corpus groups filtered documents into period buckets for
// term weighting.
package corpus

import (
	"strings"

	"github.com/c360studio/salience/period"
)

// Document is one input corpus record: the publication year and the
// raw article text. Immutable once loaded.
type Document struct {
	// Year is the publication year.
	Year int `json:"year"`

	// Content is the raw article text.
	Content string `json:"content"`
}

// FilteredDocument is one document after morphological filtering: the
// ordered retained terms and the period its year maps to.
type FilteredDocument struct {
	// Period is the bucket the source document's year maps to.
	Period period.Period

	// Terms are the retained normalized terms in document order.
	// May be empty; an empty document is still a corpus member.
	Terms []string
}

// Text returns the canonical space-joined representation consumed by
// the term-weighting engine. Empty for an empty document.
func (d FilteredDocument) Text() string {
	return strings.Join(d.Terms, " ")
}

// PeriodCorpus maps each period to its ordered filtered documents.
// Read-only after Build returns it.
type PeriodCorpus struct {
	docs map[period.Period][]FilteredDocument
}

// Documents returns the filtered documents for a period in load order.
func (c *PeriodCorpus) Documents(p period.Period) []FilteredDocument {
	return c.docs[p]
}

// Texts returns the space-joined representation of every document in a
// period, in load order.
func (c *PeriodCorpus) Texts(p period.Period) []string {
	docs := c.docs[p]
	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Text()
	}
	return texts
}

// Periods returns the periods that hold at least one document, in the
// fixed bucket order with Unknown last when present.
func (c *PeriodCorpus) Periods() []period.Period {
	var out []period.Period
	for _, p := range append(period.All(), period.Unknown) {
		if len(c.docs[p]) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the total document count across all periods.
func (c *PeriodCorpus) Len() int {
	n := 0
	for _, docs := range c.docs {
		n += len(docs)
	}
	return n
}

// AllTexts returns every document's space-joined representation,
// flattened across periods in the fixed period order. This is the
// pooled corpus the weighting model is fitted on.
func (c *PeriodCorpus) AllTexts() []string {
	texts := make([]string, 0, c.Len())
	for _, p := range c.Periods() {
		texts = append(texts, c.Texts(p)...)
	}
	return texts
}

// TermCounts returns the total retained-term count per period, used
// for run reporting.
func (c *PeriodCorpus) TermCounts() map[string]int {
	counts := make(map[string]int, len(c.docs))
	for p, docs := range c.docs {
		n := 0
		for _, d := range docs {
			n += len(d.Terms)
		}
		counts[p.String()] = n
	}
	return counts
}
