package analysis

import (
	"fmt"

	"github.com/c360studio/salience/corpus"
	"github.com/c360studio/salience/tfidf"
)

// Aggregate transforms each period's documents with the already-fitted
// model and reduces the selected terms to per-period sum and mean
// matrices. The model is never refit here; every period's transform
// runs against the same vocabulary and IDF statistics, which is what
// makes rows comparable across periods.
//
// Terms outside a period's local usage contribute 0. A period present
// in the corpus with zero documents yields ErrDegeneratePeriod naming
// the period; its mean would be 0/0 and is never silently zeroed.
func Aggregate(v *tfidf.Vectorizer, pc *corpus.PeriodCorpus, terms []string) (sum, mean Matrix, err error) {
	if len(terms) == 0 {
		return Matrix{}, Matrix{}, ErrNoVocabulary
	}
	if !v.Fitted() {
		return Matrix{}, Matrix{}, fmt.Errorf("term-weighting model is not fitted")
	}

	periods := pc.Periods()
	sum = NewMatrix(periods, terms)
	mean = NewMatrix(periods, terms)

	// Column of each selected term in the fitted vocabulary. Selected
	// terms always come from the fitted vocabulary, but a missing
	// term simply stays a zero column.
	cols := make([]int, len(terms))
	for j, term := range terms {
		if col, ok := v.Column(term); ok {
			cols[j] = col
		} else {
			cols[j] = -1
		}
	}

	for i, p := range periods {
		texts := pc.Texts(p)
		if len(texts) == 0 {
			return Matrix{}, Matrix{}, fmt.Errorf("%w: %s", ErrDegeneratePeriod, p)
		}

		rows := v.Transform(texts)
		for _, row := range rows {
			for j, col := range cols {
				if col >= 0 {
					sum.Values[i][j] += row[col]
				}
			}
		}

		docCount := float64(len(texts))
		for j := range terms {
			mean.Values[i][j] = sum.Values[i][j] / docCount
		}
	}

	return sum, mean, nil
}
