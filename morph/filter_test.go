package morph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTokenizer returns a canned token stream regardless of input.
func fakeTokenizer(tokens []Token) Tokenizer {
	return TokenizerFunc(func(_ context.Context, _ string) ([]Token, error) {
		return tokens, nil
	})
}

func TestFilter_KeepsNounsAndNormalizesVerbs(t *testing.T) {
	f, err := NewFilter(fakeTokenizer([]Token{
		{Form: "미디어", Tag: "NNG"},
		{Form: "보", Tag: "VV"},
		{Form: "빠르", Tag: "VA"},
		{Form: "는", Tag: "JX"},      // particle, dropped
		{Form: "서울", Tag: "NNP"},   // proper noun, not in keep set
		{Form: "빨리", Tag: "MAG"},   // adverb, dropped
	}), DefaultFilterConfig())
	require.NoError(t, err)

	terms, err := f.Terms(context.Background(), "미디어를 보면 빠르다")
	require.NoError(t, err)
	assert.Equal(t, []string{"미디어", "보다", "빠르다"}, terms)
}

func TestFilter_ExclusionAppliesAfterNormalization(t *testing.T) {
	// "하" tagged VV normalizes to "하다" and must then be excluded.
	f, err := NewFilter(fakeTokenizer([]Token{
		{Form: "하", Tag: "VV"},
		{Form: "미혼모", Tag: "NNG"},
		{Form: "가족", Tag: "NNG"},
	}), FilterConfig{Exclude: []string{"하다", "미혼모"}})
	require.NoError(t, err)

	terms, err := f.Terms(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, []string{"가족"}, terms)
}

func TestFilter_EmptyInputIsValid(t *testing.T) {
	called := false
	tok := TokenizerFunc(func(_ context.Context, _ string) ([]Token, error) {
		called = true
		return nil, nil
	})
	f, err := NewFilter(tok, DefaultFilterConfig())
	require.NoError(t, err)

	terms, err := f.Terms(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, terms)
	assert.False(t, called, "blank input should not hit the analyzer")
}

func TestFilter_PreservesRepeats(t *testing.T) {
	f, err := NewFilter(fakeTokenizer([]Token{
		{Form: "가족", Tag: "NNG"},
		{Form: "가족", Tag: "NNG"},
	}), DefaultFilterConfig())
	require.NoError(t, err)

	terms, err := f.Terms(context.Background(), "가족 가족")
	require.NoError(t, err)
	assert.Equal(t, []string{"가족", "가족"}, terms)
}

func TestFilter_TokenizerErrorWrapped(t *testing.T) {
	tok := TokenizerFunc(func(_ context.Context, _ string) ([]Token, error) {
		return nil, fmt.Errorf("analyzer crashed")
	})
	f, err := NewFilter(tok, DefaultFilterConfig())
	require.NoError(t, err)

	_, err = f.Terms(context.Background(), "text")
	assert.ErrorContains(t, err, "tokenize")
}

func TestNewFilter_Validation(t *testing.T) {
	_, err := NewFilter(nil, DefaultFilterConfig())
	assert.Error(t, err)

	_, err = NewFilter(fakeTokenizer(nil), FilterConfig{Exclude: []string{"  "}})
	assert.Error(t, err)
}

func TestCleanKorean(t *testing.T) {
	assert.Equal(t, "미디어 분석", CleanKorean("미디어(media) &  분석 123!"))
	assert.Equal(t, "", CleanKorean("abc 123"))
	assert.Equal(t, "가 나", CleanKorean("  가\n\n나  "))
}
