// Package freq counts surface-form frequencies over a corpus for
// descriptive word-frequency reports, separate from the TF-IDF
// salience pipeline.
package freq

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/c360studio/salience/morph"
)

// Config configures frequency analysis.
type Config struct {
	// KeepTags are the exact POS tags to count. Defaults to common
	// noun, verb, adjective, and general adverb.
	KeepTags []string

	// EndingTags are the tags whose forms get DictionaryEnding
	// appended in the report.
	EndingTags []string

	// DictionaryEnding is the citation-form ending.
	DictionaryEnding string

	// TopK caps the report length. Zero means 200.
	TopK int
}

// DefaultConfig returns the reference analysis settings.
func DefaultConfig() Config {
	return Config{
		KeepTags:         []string{"NNG", "VV", "VA", "MAG"},
		EndingTags:       []string{"VV", "VA"},
		DictionaryEnding: "다",
		TopK:             200,
	}
}

// Entry is one counted (form, tag) pair.
type Entry struct {
	// Form is the reported surface form, dictionary ending applied.
	Form string

	// Tag is the POS tag.
	Tag string

	// Count is the occurrence count.
	Count int
}

// Analyzer counts (form, tag) occurrences over raw texts.
type Analyzer struct {
	tokenizer morph.Tokenizer
	keep      map[string]struct{}
	ending    map[string]struct{}
	suffix    string
	topK      int
}

// NewAnalyzer creates an Analyzer over the tokenizer capability.
func NewAnalyzer(tokenizer morph.Tokenizer, cfg Config) (*Analyzer, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("tokenizer is required")
	}
	if len(cfg.KeepTags) == 0 {
		cfg = DefaultConfig()
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 200
	}

	keep := make(map[string]struct{}, len(cfg.KeepTags))
	for _, tag := range cfg.KeepTags {
		keep[tag] = struct{}{}
	}
	ending := make(map[string]struct{}, len(cfg.EndingTags))
	for _, tag := range cfg.EndingTags {
		ending[tag] = struct{}{}
	}

	return &Analyzer{
		tokenizer: tokenizer,
		keep:      keep,
		ending:    ending,
		suffix:    cfg.DictionaryEnding,
		topK:      cfg.TopK,
	}, nil
}

// Analyze cleans each text down to Hangul, tokenizes it, and counts
// the retained (form, tag) pairs. Entries are ordered by descending
// count, then by form and tag, and capped at TopK.
func (a *Analyzer) Analyze(ctx context.Context, texts []string) ([]Entry, error) {
	type key struct{ form, tag string }
	counts := make(map[key]int)

	for i, text := range texts {
		cleaned := morph.CleanKorean(text)
		if cleaned == "" {
			continue
		}
		tokens, err := a.tokenizer.Tokenize(ctx, cleaned)
		if err != nil {
			return nil, fmt.Errorf("tokenize text %d: %w", i, err)
		}
		for _, tok := range tokens {
			if _, ok := a.keep[tok.Tag]; ok {
				counts[key{tok.Form, tok.Tag}]++
			}
		}
	}

	entries := make([]Entry, 0, len(counts))
	for k, count := range counts {
		form := k.form
		if _, ok := a.ending[k.tag]; ok {
			form += a.suffix
		}
		entries = append(entries, Entry{Form: form, Tag: k.tag, Count: count})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		if entries[i].Form != entries[j].Form {
			return entries[i].Form < entries[j].Form
		}
		return entries[i].Tag < entries[j].Tag
	})

	if len(entries) > a.topK {
		entries = entries[:a.topK]
	}
	return entries, nil
}

// WriteCSV writes entries as a BOM-prefixed CSV report with the
// 형태소,품사,빈도수 header of the reference output.
func WriteCSV(w io.Writer, entries []Entry) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("write BOM: %w", err)
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"형태소", "품사", "빈도수"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.Form, e.Tag, fmt.Sprintf("%d", e.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
