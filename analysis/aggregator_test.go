package analysis

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/salience/corpus"
	"github.com/c360studio/salience/period"
	"github.com/c360studio/salience/tfidf"
)

// fieldsFilter splits raw text on whitespace; documents are supplied
// pre-tokenized in these tests.
type fieldsFilter struct{}

func (fieldsFilter) Terms(_ context.Context, text string) ([]string, error) {
	return strings.Fields(text), nil
}

func buildCorpus(t *testing.T, docs []corpus.Document) *corpus.PeriodCorpus {
	t.Helper()
	b, err := corpus.NewBuilder(fieldsFilter{}, corpus.BuilderConfig{Workers: 1})
	require.NoError(t, err)
	pc, err := b.Build(context.Background(), docs)
	require.NoError(t, err)
	return pc
}

func TestAggregate_SumAndMeanIdentities(t *testing.T) {
	docs := []corpus.Document{
		{Year: 1975, Content: "가족 미디어"},
		{Year: 1975, Content: "가족 가족"},
		{Year: 2016, Content: "미디어 시대"},
	}
	pc := buildCorpus(t, docs)

	v := tfidf.NewVectorizer()
	require.NoError(t, v.Fit(pc.AllTexts()))

	terms := []string{"가족", "미디어", "시대"}
	sum, mean, err := Aggregate(v, pc, terms)
	require.NoError(t, err)

	require.Equal(t, []period.Period{period.P1970s, period.P2015to23}, sum.Periods)
	require.Equal(t, terms, sum.Terms)

	// Recompute the expected sums directly from the fitted transform.
	for i, p := range sum.Periods {
		rows := v.Transform(pc.Texts(p))
		for j, term := range terms {
			col, ok := v.Column(term)
			require.True(t, ok)
			var want float64
			for _, row := range rows {
				want += row[col]
			}
			assert.InDelta(t, want, sum.At(i, j), 1e-12, "sum[%s][%s]", p, term)
			assert.InDelta(t, want/float64(len(rows)), mean.At(i, j), 1e-12, "mean[%s][%s]", p, term)
		}
	}
}

func TestAggregate_AbsentTermIsZeroNotMissing(t *testing.T) {
	docs := []corpus.Document{
		{Year: 1975, Content: "가족"},
		{Year: 2016, Content: "시대"},
	}
	pc := buildCorpus(t, docs)

	v := tfidf.NewVectorizer()
	require.NoError(t, v.Fit(pc.AllTexts()))

	sum, mean, err := Aggregate(v, pc, []string{"가족", "시대"})
	require.NoError(t, err)

	// 시대 never occurs in the 1970s row: dense zero, not absent.
	assert.Zero(t, sum.At(0, 1))
	assert.Zero(t, mean.At(0, 1))
	assert.Greater(t, sum.At(0, 0), 0.0)
	assert.Greater(t, sum.At(1, 1), 0.0)
}

func TestAggregate_EmptyDocumentPeriodMeansZero(t *testing.T) {
	// A period whose only document filtered down to nothing: every
	// term's mean is 0, not a crash and not a dropped row.
	docs := []corpus.Document{
		{Year: 1975, Content: ""},
		{Year: 2016, Content: "가족 미디어"},
	}
	pc := buildCorpus(t, docs)

	v := tfidf.NewVectorizer()
	require.NoError(t, v.Fit(pc.AllTexts()))

	sum, mean, err := Aggregate(v, pc, []string{"가족", "미디어"})
	require.NoError(t, err)

	require.Equal(t, []period.Period{period.P1970s, period.P2015to23}, sum.Periods)
	for j := range sum.Terms {
		assert.Zero(t, sum.At(0, j))
		assert.Zero(t, mean.At(0, j))
	}
}

func TestAggregate_NoVocabulary(t *testing.T) {
	pc := buildCorpus(t, []corpus.Document{{Year: 1975, Content: "가족"}})
	v := tfidf.NewVectorizer()
	require.NoError(t, v.Fit(pc.AllTexts()))

	_, _, err := Aggregate(v, pc, nil)
	assert.ErrorIs(t, err, ErrNoVocabulary)
}

func TestAggregate_UnfittedModel(t *testing.T) {
	pc := buildCorpus(t, []corpus.Document{{Year: 1975, Content: "가족"}})
	_, _, err := Aggregate(tfidf.NewVectorizer(), pc, []string{"가족"})
	assert.Error(t, err)
}
