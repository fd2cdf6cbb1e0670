package source

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/c360studio/salience/corpus"
)

// Loader reads corpus documents from resolved input files, dispatching
// on file extension.
type Loader struct {
	logger *slog.Logger
	html   *articleExtractor
}

// NewLoader creates a Loader.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger, html: newArticleExtractor()}
}

// Load resolves the given glob patterns and reads every matched file
// into documents. Files are read in sorted path order so the loaded
// corpus is deterministic.
func (l *Loader) Load(patterns []string) ([]corpus.Document, error) {
	paths, err := ResolvePaths(patterns)
	if err != nil {
		return nil, err
	}

	var docs []corpus.Document
	for _, path := range paths {
		loaded, err := l.loadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		docs = append(docs, loaded...)
		l.logger.Debug("loaded input file",
			"path", path,
			"documents", len(loaded))
	}

	l.logger.Info("corpus loaded",
		"files", len(paths),
		"documents", len(docs))
	return docs, nil
}

// loadFile reads one file based on its extension.
func (l *Loader) loadFile(path string) ([]corpus.Document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".json", ".jsonl", ".ndjson":
		return loadJSONLines(path)
	case ".html", ".htm":
		doc, err := l.html.extract(path)
		if err != nil {
			return nil, err
		}
		return []corpus.Document{doc}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", filepath.Ext(path))
	}
}
