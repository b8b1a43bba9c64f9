package features

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSummarizer struct {
	out   string
	err   error
	calls int
}

func (s *stubSummarizer) Summarize(context.Context, string) (string, error) {
	s.calls++
	return s.out, s.err
}

func TestExtractiveTakesLeadingSentences(t *testing.T) {
	e := Extractive{MaxSentences: 3}
	text := "First one. Second one! Third one? Fourth one."

	got, err := e.Summarize(context.Background(), text)
	require.NoError(t, err)
	assert.Equal(t, "First one. Second one! Third one?", got)
}

func TestExtractiveShortAndEmptyInput(t *testing.T) {
	e := Extractive{}

	got, _ := e.Summarize(context.Background(), "Only a fragment without a stop")
	assert.Equal(t, "Only a fragment without a stop", got)

	got, _ = e.Summarize(context.Background(), "   ")
	assert.Empty(t, got)

	got, _ = e.Summarize(context.Background(), "Version 2.5 shipped. It works.")
	assert.Equal(t, "Version 2.5 shipped. It works.", got)
}

func TestFallbackSummarizer(t *testing.T) {
	text := "Alpha beta. Gamma delta. Epsilon zeta. Eta theta."
	extractive := "Alpha beta. Gamma delta. Epsilon zeta."

	tests := map[string]struct {
		primary *stubSummarizer
		want    string
	}{
		"primary output wins": {primary: &stubSummarizer{out: "- bullet"}, want: "- bullet"},
		"primary error":       {primary: &stubSummarizer{err: errors.New("timeout")}, want: extractive},
		"primary empty":       {primary: &stubSummarizer{out: "  "}, want: extractive},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := NewFallbackSummarizer(tc.primary, Extractive{MaxSentences: 3}, nil)

			got, err := f.Summarize(context.Background(), text)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, 1, tc.primary.calls)
		})
	}
}

func TestFallbackSummarizerWithoutPrimary(t *testing.T) {
	f := NewFallbackSummarizer(nil, Extractive{MaxSentences: 1}, nil)

	got, err := f.Summarize(context.Background(), "One. Two.")
	require.NoError(t, err)
	assert.Equal(t, "One.", got)

	got, err = f.Summarize(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHashEmbedder(t *testing.T) {
	var e HashEmbedder

	a := e.Embed("Lakers Secure Crucial Victory")
	b := e.Embed("Lakers Secure Crucial Victory")
	c := e.Embed("lakers secure crucial victory")

	require.Len(t, a, e.Dimensions())
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)

	var norm float64
	for _, v := range a {
		norm += v * v
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-6)
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float64{1, 2}, []float64{2, 4}), 1e-6)
	assert.InDelta(t, 0.0, Cosine([]float64{1, 0}, []float64{0, 1}), 1e-9)
	assert.Zero(t, Cosine([]float64{1}, []float64{1, 2}))
	assert.Zero(t, Cosine(nil, nil))
}
