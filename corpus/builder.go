package corpus

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/c360studio/salience/period"
)

// TermFilter extracts the retained normalized terms from raw text.
// morph.Filter satisfies this.
type TermFilter interface {
	Terms(ctx context.Context, text string) ([]string, error)
}

// BuilderConfig configures corpus construction.
type BuilderConfig struct {
	// Workers bounds concurrent tokenization. Zero means NumCPU.
	Workers int

	// Logger for per-document degradation warnings.
	Logger *slog.Logger
}

// Builder applies the morphological filter and period classification
// to every input document and groups the results by period.
type Builder struct {
	filter  TermFilter
	workers int
	logger  *slog.Logger
}

// NewBuilder creates a Builder over the given filter.
func NewBuilder(filter TermFilter, cfg BuilderConfig) (*Builder, error) {
	if filter == nil {
		return nil, fmt.Errorf("filter is required")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{filter: filter, workers: workers, logger: logger}, nil
}

// Build tokenizes every document and buckets it by period. Documents
// are processed concurrently but results keep input order, so repeated
// runs over the same input produce identical corpora.
//
// A document whose tokenization fails degrades to an empty member of
// its period (logged, not fatal): dropping it would change the
// document counts the mean aggregation divides by.
func (b *Builder) Build(ctx context.Context, docs []Document) (*PeriodCorpus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filtered := make([]FilteredDocument, len(docs))

	var wg sync.WaitGroup
	jobs := make(chan int)

	for w := 0; w < b.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				doc := docs[i]
				terms, err := b.filter.Terms(ctx, doc.Content)
				if err != nil {
					b.logger.Warn("document tokenization failed, keeping empty document",
						"index", i,
						"year", doc.Year,
						"error", err)
					terms = nil
				}
				filtered[i] = FilteredDocument{
					Period: period.Classify(doc.Year),
					Terms:  terms,
				}
			}
		}()
	}

	for i := range docs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return nil, ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	buckets := make(map[period.Period][]FilteredDocument)
	for _, fd := range filtered {
		buckets[fd.Period] = append(buckets[fd.Period], fd)
	}

	b.logger.Debug("corpus built",
		"documents", len(docs),
		"periods", len(buckets))

	return &PeriodCorpus{docs: buckets}, nil
}
