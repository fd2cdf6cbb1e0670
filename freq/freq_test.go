package freq

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/salience/morph"
)

// tagLookup tokenizes by whitespace and assigns tags from a fixed map;
// unknown words become particles (dropped by the analyzer).
func tagLookup(tags map[string]string) morph.Tokenizer {
	return morph.TokenizerFunc(func(_ context.Context, text string) ([]morph.Token, error) {
		var tokens []morph.Token
		for _, w := range strings.Fields(text) {
			tag, ok := tags[w]
			if !ok {
				tag = "JX"
			}
			tokens = append(tokens, morph.Token{Form: w, Tag: tag})
		}
		return tokens, nil
	})
}

func TestAnalyzer_CountsAndOrdering(t *testing.T) {
	tok := tagLookup(map[string]string{
		"가족":  "NNG",
		"미디어": "NNG",
		"보":   "VV",
		"빨리":  "MAG",
	})
	a, err := NewAnalyzer(tok, DefaultConfig())
	require.NoError(t, err)

	entries, err := a.Analyze(context.Background(), []string{
		"가족 미디어 가족 보",
		"가족 빨리 는",
	})
	require.NoError(t, err)

	require.Len(t, entries, 4)
	assert.Equal(t, Entry{Form: "가족", Tag: "NNG", Count: 3}, entries[0])
	// Remaining three all have count 1, ordered by form.
	assert.Equal(t, "미디어", entries[1].Form)
	assert.Equal(t, "보다", entries[2].Form, "verb gets the dictionary ending")
	assert.Equal(t, "빨리", entries[3].Form)
}

func TestAnalyzer_TopKCap(t *testing.T) {
	tok := tagLookup(map[string]string{"가": "NNG", "나": "NNG", "다": "NNG"})
	a, err := NewAnalyzer(tok, Config{
		KeepTags: []string{"NNG"},
		TopK:     2,
	})
	require.NoError(t, err)

	entries, err := a.Analyze(context.Background(), []string{"가 가 나 다"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAnalyzer_SkipsNonKoreanText(t *testing.T) {
	calls := 0
	tok := morph.TokenizerFunc(func(_ context.Context, _ string) ([]morph.Token, error) {
		calls++
		return nil, nil
	})
	a, err := NewAnalyzer(tok, DefaultConfig())
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), []string{"only ascii 123", "가족"})
	require.NoError(t, err)
	assert.Equal(t, 1, calls, "non-Korean text cleans to empty and skips the analyzer")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []Entry{
		{Form: "가족", Tag: "NNG", Count: 3},
		{Form: "보다", Tag: "VV", Count: 1},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	lines := strings.Split(strings.TrimSpace(string(out[3:])), "\n")
	assert.Equal(t, []string{"형태소,품사,빈도수", "가족,NNG,3", "보다,VV,1"}, lines)
}
