package morph

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Default filter settings matching the reference analysis: keep common
// nouns and verbs/adjectives, restore the 다 citation ending.
const defaultDictionaryEnding = "다"

var (
	defaultKeepPrefixes   = []string{"NNG", "VV", "VA"}
	defaultEndingPrefixes = []string{"VV", "VA"}
)

// FilterConfig configures token filtering and normalization.
type FilterConfig struct {
	// KeepPrefixes lists POS tag prefixes to retain. A token survives
	// when its tag starts with any of these.
	KeepPrefixes []string

	// EndingPrefixes lists tag prefixes whose surface forms get
	// DictionaryEnding appended (verb/adjective stems).
	EndingPrefixes []string

	// DictionaryEnding is the citation-form ending appended to stems.
	DictionaryEnding string

	// Exclude is the set of normalized terms to drop. Applied after
	// the ending is appended, so "하" tagged VV is excluded by "하다".
	Exclude []string
}

// DefaultFilterConfig returns the filter settings of the reference
// analysis: NNG/VV/VA tags, 다 ending on VV/VA stems, no exclusions.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		KeepPrefixes:     defaultKeepPrefixes,
		EndingPrefixes:   defaultEndingPrefixes,
		DictionaryEnding: defaultDictionaryEnding,
	}
}

// Validate checks the configuration.
func (c FilterConfig) Validate() error {
	if len(c.KeepPrefixes) == 0 {
		return fmt.Errorf("KeepPrefixes must not be empty")
	}
	for _, p := range c.KeepPrefixes {
		if p == "" {
			return fmt.Errorf("KeepPrefixes must not contain empty strings")
		}
	}
	for _, w := range c.Exclude {
		if strings.TrimSpace(w) == "" {
			return fmt.Errorf("Exclude must not contain blank entries")
		}
	}
	return nil
}

// Filter turns raw text into the ordered sequence of normalized terms
// retained for analysis. It owns the POS retention rule, dictionary-form
// normalization, and the exclusion set.
type Filter struct {
	rules     filterRules
	tokenizer Tokenizer
	exclude   map[string]struct{}
}

// filterRules is the resolved, immutable form of FilterConfig.
type filterRules struct {
	keepPrefixes   []string
	endingPrefixes []string
	ending         string
}

// NewFilter creates a Filter over the given tokenizer capability.
// Returns an error if the configuration is invalid.
func NewFilter(tokenizer Tokenizer, cfg FilterConfig) (*Filter, error) {
	if tokenizer == nil {
		return nil, fmt.Errorf("tokenizer is required")
	}
	if len(cfg.KeepPrefixes) == 0 {
		cfg.KeepPrefixes = defaultKeepPrefixes
	}
	if len(cfg.EndingPrefixes) == 0 {
		cfg.EndingPrefixes = defaultEndingPrefixes
	}
	if cfg.DictionaryEnding == "" {
		cfg.DictionaryEnding = defaultDictionaryEnding
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exclude := make(map[string]struct{}, len(cfg.Exclude))
	for _, w := range cfg.Exclude {
		exclude[w] = struct{}{}
	}

	return &Filter{
		rules: filterRules{
			keepPrefixes:   append([]string(nil), cfg.KeepPrefixes...),
			endingPrefixes: append([]string(nil), cfg.EndingPrefixes...),
			ending:         cfg.DictionaryEnding,
		},
		tokenizer: tokenizer,
		exclude:   exclude,
	}, nil
}

// Terms tokenizes text and returns the retained, normalized terms in
// input order. Repeats are preserved; an empty slice is a valid result
// for empty or degenerate input.
func (f *Filter) Terms(ctx context.Context, text string) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	tokens, err := f.tokenizer.Tokenize(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}

	terms := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if !hasAnyPrefix(tok.Tag, f.rules.keepPrefixes) {
			continue
		}
		term := tok.Form
		if hasAnyPrefix(tok.Tag, f.rules.endingPrefixes) {
			term += f.rules.ending
		}
		if _, excluded := f.exclude[term]; excluded {
			continue
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func hasAnyPrefix(tag string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(tag, p) {
			return true
		}
	}
	return false
}

// CleanKorean strips everything but Hangul and whitespace, replacing
// removed runs with a single space. Used to pre-clean noisy article
// text before frequency analysis.
func CleanKorean(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	lastSpace := false
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Hangul, r):
			sb.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		default:
			if !lastSpace {
				sb.WriteRune(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(sb.String())
}
