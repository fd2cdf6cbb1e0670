package analysis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/c360studio/salience/corpus"
	"github.com/c360studio/salience/tfidf"
)

// PipelineConfig configures a pipeline run.
type PipelineConfig struct {
	// TopN is the size of the selected global vocabulary. Required,
	// must be positive.
	TopN int

	// Workers bounds concurrent tokenization. Zero means NumCPU.
	Workers int

	// Logger for stage progress and warnings.
	Logger *slog.Logger
}

// Validate checks the configuration.
func (c PipelineConfig) Validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("TopN must be positive, got %d", c.TopN)
	}
	return nil
}

// Pipeline runs the full salience computation:
// filter → classify → build → fit → select → aggregate → normalize.
// The flow is strictly linear; each stage consumes the complete output
// of the previous one, and the fit is the barrier before any period
// transform or term selection.
type Pipeline struct {
	config  PipelineConfig
	builder *corpus.Builder
	logger  *slog.Logger
}

// Result holds all artifacts of one pipeline run.
type Result struct {
	// RunID uniquely identifies this run.
	RunID string

	// StartedAt is when the run began.
	StartedAt time.Time

	// Duration is the total run time.
	Duration time.Duration

	// Vocabulary is the selected global vocabulary in selection order.
	Vocabulary []string

	// Sum and Mean are the raw per-period aggregate matrices.
	Sum  Matrix
	Mean Matrix

	// ZSum and ZMean are the flattened z-score normalizations of Sum
	// and Mean.
	ZSum  Matrix
	ZMean Matrix

	// DocumentCounts maps period label to document count.
	DocumentCounts map[string]int

	// TotalDocuments is the pooled corpus size.
	TotalDocuments int
}

// NewPipeline creates a pipeline over the given morphological filter.
// Configuration errors fail here, before any processing.
func NewPipeline(filter corpus.TermFilter, cfg PipelineConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid pipeline configuration: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	builder, err := corpus.NewBuilder(filter, corpus.BuilderConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	return &Pipeline{config: cfg, builder: builder, logger: logger}, nil
}

// Run executes the pipeline over the loaded documents. It either
// returns a complete Result with all four matrices or an error naming
// the stage that failed. There are no partial results or checkpoints.
func (p *Pipeline) Run(ctx context.Context, docs []corpus.Document) (*Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	logger := p.logger.With("run_id", runID)

	logger.Info("pipeline run started",
		"documents", len(docs),
		"top_n", p.config.TopN)

	pc, err := p.builder.Build(ctx, docs)
	if err != nil {
		return nil, fmt.Errorf("build corpus: %w", err)
	}

	pooled := pc.AllTexts()
	vectorizer := tfidf.NewVectorizer()
	if err := vectorizer.Fit(pooled); err != nil {
		return nil, fmt.Errorf("fit term-weighting model: %w", err)
	}
	logger.Debug("model fitted",
		"documents", len(pooled),
		"vocabulary_size", len(vectorizer.Vocabulary()))

	vocabulary, err := TopTerms(vectorizer, pooled, p.config.TopN)
	if err != nil {
		return nil, fmt.Errorf("select top terms: %w", err)
	}
	logger.Debug("global vocabulary selected", "terms", len(vocabulary))

	sum, mean, err := Aggregate(vectorizer, pc, vocabulary)
	if err != nil {
		return nil, fmt.Errorf("aggregate periods: %w", err)
	}

	zSum := ZScore(sum, logger)
	zMean := ZScore(mean, logger)

	counts := make(map[string]int)
	for _, per := range pc.Periods() {
		counts[per.String()] = len(pc.Documents(per))
	}

	result := &Result{
		RunID:          runID,
		StartedAt:      started,
		Duration:       time.Since(started),
		Vocabulary:     vocabulary,
		Sum:            sum,
		Mean:           mean,
		ZSum:           zSum,
		ZMean:          zMean,
		DocumentCounts: counts,
		TotalDocuments: len(docs),
	}

	logger.Info("pipeline run completed",
		"duration", result.Duration,
		"periods", len(sum.Periods),
		"terms", len(vocabulary))

	return result, nil
}
