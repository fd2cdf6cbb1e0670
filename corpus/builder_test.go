package corpus

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/salience/period"
)

// splitFilter is a TermFilter that splits on whitespace, failing for
// any document containing "FAIL".
type splitFilter struct{}

func (splitFilter) Terms(_ context.Context, text string) ([]string, error) {
	if strings.Contains(text, "FAIL") {
		return nil, fmt.Errorf("malformed document")
	}
	return strings.Fields(text), nil
}

func newTestBuilder(t *testing.T) *Builder {
	t.Helper()
	b, err := NewBuilder(splitFilter{}, BuilderConfig{Workers: 4})
	require.NoError(t, err)
	return b
}

func TestBuilder_GroupsByPeriod(t *testing.T) {
	b := newTestBuilder(t)

	docs := []Document{
		{Year: 1975, Content: "가족 미디어"},
		{Year: 1976, Content: "미디어"},
		{Year: 2016, Content: "스크린 미디어"},
		{Year: 2030, Content: "미래"},
	}

	pc, err := b.Build(context.Background(), docs)
	require.NoError(t, err)

	assert.Equal(t, 4, pc.Len())
	assert.Equal(t, []period.Period{period.P1970s, period.P2015to23, period.Unknown}, pc.Periods())
	assert.Equal(t, []string{"가족 미디어", "미디어"}, pc.Texts(period.P1970s))
	assert.Equal(t, []string{"스크린 미디어"}, pc.Texts(period.P2015to23))
}

func TestBuilder_PreservesInputOrder(t *testing.T) {
	b := newTestBuilder(t)

	var docs []Document
	for i := 0; i < 200; i++ {
		docs = append(docs, Document{Year: 1975, Content: fmt.Sprintf("doc%03d", i)})
	}

	pc, err := b.Build(context.Background(), docs)
	require.NoError(t, err)

	texts := pc.Texts(period.P1970s)
	require.Len(t, texts, 200)
	for i, text := range texts {
		assert.Equal(t, fmt.Sprintf("doc%03d", i), text)
	}
}

func TestBuilder_FailedDocumentDegradesToEmpty(t *testing.T) {
	b := newTestBuilder(t)

	docs := []Document{
		{Year: 1975, Content: "가족"},
		{Year: 1975, Content: "FAIL"},
	}

	pc, err := b.Build(context.Background(), docs)
	require.NoError(t, err)

	// The failed document stays as an empty member; the document count
	// the mean divides by is unchanged.
	texts := pc.Texts(period.P1970s)
	assert.Equal(t, []string{"가족", ""}, texts)
}

func TestBuilder_EmptyDocumentKept(t *testing.T) {
	b := newTestBuilder(t)

	pc, err := b.Build(context.Background(), []Document{{Year: 1975, Content: "   "}})
	require.NoError(t, err)

	assert.Equal(t, 1, pc.Len())
	assert.Equal(t, []string{""}, pc.Texts(period.P1970s))
}

func TestBuilder_CancelledContext(t *testing.T) {
	b := newTestBuilder(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Build(ctx, []Document{{Year: 1975, Content: "가족"}})
	assert.Error(t, err)
}

func TestBuilder_AllTextsPoolsPeriods(t *testing.T) {
	b := newTestBuilder(t)

	docs := []Document{
		{Year: 2016, Content: "나중"},
		{Year: 1975, Content: "먼저"},
	}

	pc, err := b.Build(context.Background(), docs)
	require.NoError(t, err)

	// Pooled in fixed period order, not input order.
	assert.Equal(t, []string{"먼저", "나중"}, pc.AllTexts())
}
