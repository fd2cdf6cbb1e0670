package analysis

import (
	"fmt"
	"sort"

	"github.com/c360studio/salience/tfidf"
)

// TopTerms sums the fitted weight of every vocabulary term over the
// pooled document set and returns the n highest-scoring terms. The
// sort is stable: exact ties keep the fitted vocabulary's own order,
// so repeated runs select the same terms. When the fitted vocabulary
// holds fewer than n terms, all of them are returned.
func TopTerms(v *tfidf.Vectorizer, pooled []string, n int) ([]string, error) {
	if n <= 0 {
		return nil, fmt.Errorf("top-n must be positive, got %d", n)
	}
	if !v.Fitted() {
		return nil, fmt.Errorf("term-weighting model is not fitted")
	}

	vocab := v.Vocabulary()
	totals := make([]float64, len(vocab))
	for _, row := range v.Transform(pooled) {
		for col, w := range row {
			totals[col] += w
		}
	}

	order := make([]int, len(vocab))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return totals[order[a]] > totals[order[b]]
	})

	if n > len(vocab) {
		n = len(vocab)
	}
	terms := make([]string, n)
	for i := 0; i < n; i++ {
		terms[i] = vocab[order[i]]
	}
	return terms, nil
}
