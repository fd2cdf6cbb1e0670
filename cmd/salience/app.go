package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/c360studio/salience/analysis"
	"github.com/c360studio/salience/config"
	"github.com/c360studio/salience/export"
	"github.com/c360studio/salience/freq"
	"github.com/c360studio/salience/metrics"
	"github.com/c360studio/salience/morph"
	"github.com/c360studio/salience/notify"
	"github.com/c360studio/salience/source"
	"github.com/c360studio/salience/watch"
)

// App is the main application that wires together all components.
type App struct {
	cfg    *config.Config
	logger *slog.Logger

	tokenizer morph.Tokenizer
	filter    *morph.Filter
	pipeline  *analysis.Pipeline
	loader    *source.Loader
	format    export.Format
	metrics   *metrics.Metrics
	publisher *notify.Publisher
}

// NewApp creates a new application instance. Configuration errors
// surface here, before any document is read.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	tokenizer, err := morph.NewCommandTokenizer(morph.CommandConfig{
		Command:      cfg.Tokenizer.Command,
		Args:         cfg.Tokenizer.Args,
		UserDictPath: cfg.Tokenizer.UserDict,
	})
	if err != nil {
		return nil, fmt.Errorf("configure tokenizer: %w", err)
	}

	filter, err := morph.NewFilter(tokenizer, morph.FilterConfig{
		KeepPrefixes:     cfg.Analysis.KeepTags,
		DictionaryEnding: cfg.Analysis.DictionaryEnding,
		Exclude:          cfg.Analysis.Exclude,
	})
	if err != nil {
		return nil, fmt.Errorf("configure morphological filter: %w", err)
	}

	pipeline, err := analysis.NewPipeline(filter, analysis.PipelineConfig{
		TopN:    cfg.Analysis.TopN,
		Workers: cfg.Analysis.Workers,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	format, err := export.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	publisher, err := notify.Connect(notify.Config{
		URL:     cfg.NATS.URL,
		Subject: cfg.NATS.Subject,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:       cfg,
		logger:    logger,
		tokenizer: tokenizer,
		filter:    filter,
		pipeline:  pipeline,
		loader:    source.NewLoader(logger),
		format:    format,
		metrics:   metrics.New(),
		publisher: publisher,
	}, nil
}

// Close releases external connections.
func (a *App) Close() {
	a.publisher.Close()
}

// RunOnce loads the corpus, runs the pipeline, writes all artifacts,
// and publishes the run event.
func (a *App) RunOnce(ctx context.Context) error {
	docs, err := a.loader.Load(a.cfg.Input.Patterns)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	result, err := a.pipeline.Run(ctx, docs)
	a.metrics.ObserveRun(result, err)
	if err != nil {
		return err
	}

	files, err := export.WriteRunArtifacts(a.cfg.Output.Dir, result, a.format)
	if err != nil {
		return fmt.Errorf("write artifacts: %w", err)
	}
	a.logger.Info("artifacts written",
		"dir", a.cfg.Output.Dir,
		"files", len(files))

	if err := a.publisher.PublishRunCompleted(result, files); err != nil {
		// Publishing is best-effort; the artifacts are already on disk.
		a.logger.Warn("failed to publish run event", "error", err)
	}
	return nil
}

// Freq writes a surface-form frequency report for the corpus.
func (a *App) Freq(ctx context.Context) error {
	docs, err := a.loader.Load(a.cfg.Input.Patterns)
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	analyzer, err := freq.NewAnalyzer(a.tokenizer, freq.DefaultConfig())
	if err != nil {
		return err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	entries, err := analyzer.Analyze(ctx, texts)
	if err != nil {
		return fmt.Errorf("frequency analysis: %w", err)
	}

	if err := os.MkdirAll(a.cfg.Output.Dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	path := filepath.Join(a.cfg.Output.Dir, "word_frequency.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := freq.WriteCSV(f, entries); err != nil {
		return fmt.Errorf("write frequency report: %w", err)
	}
	a.logger.Info("frequency report written", "path", path, "entries", len(entries))
	return f.Close()
}

// Watch runs the pipeline once, then re-runs it whenever input files
// change, until ctx is cancelled. When a metrics address is
// configured, /metrics is served for the lifetime of the watch.
func (a *App) Watch(ctx context.Context) error {
	if addr := a.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := a.metrics.Serve(ctx, addr, a.logger); err != nil {
				a.logger.Warn("metrics endpoint stopped", "error", err)
			}
		}()
	}

	if err := a.RunOnce(ctx); err != nil {
		// Keep watching: a malformed input file can be fixed by the
		// next write, which re-triggers the run.
		a.logger.Error("initial run failed", "error", err)
	}

	paths, err := source.ResolvePaths(a.cfg.Input.Patterns)
	if err != nil {
		return fmt.Errorf("resolve watch paths: %w", err)
	}

	watcher, err := watch.NewWatcher(watch.Config{
		Paths:         paths,
		DebounceDelay: a.cfg.Watch.Debounce,
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}

	done := make(chan error, 1)
	go func() { done <- watcher.Start(ctx) }()

	for {
		select {
		case <-ctx.Done():
			return <-done
		case event, ok := <-watcher.Events():
			if !ok {
				return <-done
			}
			a.logger.Info("input changed, re-running pipeline", "files", len(event.Paths))
			if err := a.RunOnce(ctx); err != nil {
				a.logger.Error("pipeline run failed", "error", err)
			}
		}
	}
}
