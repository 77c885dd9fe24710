package hashvec

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVectorize_Deterministic(t *testing.T) {
	text := "The rain fell in long grey sheets over the harbor."

	a := Vectorize(text, DefaultDims)
	b := Vectorize(text, DefaultDims)

	require.Len(t, a, DefaultDims)
	assert.Equal(t, a, b, "same text must yield bit-identical vectors")
}

func TestVectorize_UnitNorm(t *testing.T) {
	texts := []string{
		"one",
		"He ran. He jumped. He dove.",
		"She wondered if he would come back.",
	}

	for _, text := range texts {
		vec := Vectorize(text, DefaultDims)

		sumSq := 0.0
		for _, x := range vec {
			sumSq += float64(x) * float64(x)
		}
		assert.InDelta(t, 1.0, math.Sqrt(sumSq), 1e-5, "non-empty text: %q", text)
	}
}

func TestVectorize_EmptyIsZero(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\n", "!!! ... ---"} {
		vec := Vectorize(text, DefaultDims)
		for i, x := range vec {
			require.Zero(t, x, "bucket %d for %q", i, text)
		}
	}
}

func TestVectorize_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Vectorize("Harbor Rain", DefaultDims), Vectorize("harbor rain", DefaultDims))
}

func TestSimilarity_SelfIsOne(t *testing.T) {
	vec := Vectorize("the quick brown fox", DefaultDims)
	assert.InDelta(t, 1.0, Similarity(vec, vec), 1e-5)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := Vectorize("a stormy night at sea", DefaultDims)
	b := Vectorize("breakfast in the garden", DefaultDims)

	assert.Equal(t, Similarity(a, b), Similarity(b, a))
}

func TestSimilarity_DimensionMismatch(t *testing.T) {
	a := Vectorize("text", 128)
	b := Vectorize("text", 256)

	assert.Zero(t, Similarity(a, b))
}

func TestSimilarity_Bounds(t *testing.T) {
	a := Vectorize("wind and water and stone", DefaultDims)
	b := Vectorize("wind and water", DefaultDims)

	score := Similarity(a, b)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestRetrieve_EmptyBank(t *testing.T) {
	assert.Empty(t, Retrieve("anything", nil, 3))
	assert.Empty(t, Retrieve("anything", []Sample{}, 3))
}

func TestRetrieve_TopK(t *testing.T) {
	bank := []Sample{
		NewSample("the harbor lights flickered across the water"),
		NewSample("she poured the tea and waited"),
		NewSample("harbor water lapped against the hull"),
		NewSample("a completely unrelated sentence about taxes"),
	}

	got := Retrieve("the harbor and the water at night", bank, 2)

	require.Len(t, got, 2)
	// Both harbor/water samples should outrank the others.
	texts := []string{got[0].Text, got[1].Text}
	assert.Contains(t, texts, bank[0].Text)
	assert.Contains(t, texts, bank[2].Text)
}

func TestRetrieve_KLargerThanBank(t *testing.T) {
	bank := []Sample{NewSample("only one sample")}

	got := Retrieve("query", bank, 5)
	require.Len(t, got, 1)
	assert.Equal(t, bank[0].Text, got[0].Text)
}

func TestRetrieve_SubsetOfBank(t *testing.T) {
	bank := []Sample{
		NewSample("alpha beta gamma"),
		NewSample("delta epsilon zeta"),
		NewSample("eta theta iota"),
	}
	inBank := map[string]bool{}
	for _, s := range bank {
		inBank[s.Text] = true
	}

	for _, s := range Retrieve("beta epsilon theta", bank, 3) {
		assert.True(t, inBank[s.Text])
	}
}

func TestRetrieve_StableOnTies(t *testing.T) {
	// Identical samples score identically; bank order must be preserved.
	bank := []Sample{
		NewSample("the same text"),
		NewSample("the same text"),
		NewSample("the same text"),
	}
	bank[0].Text = "first"
	bank[1].Text = "second"
	bank[2].Text = "third"

	got := Retrieve("the same text", bank, 3)
	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Text)
	assert.Equal(t, "second", got[1].Text)
	assert.Equal(t, "third", got[2].Text)
}

func TestRetrieve_OrderedByScore(t *testing.T) {
	bank := []Sample{
		NewSample("nothing in common here"),
		NewSample("gulls wheeled over the harbor at dawn"),
		NewSample("harbor dawn gulls"),
	}

	got := Retrieve("gulls over the harbor at dawn", bank, 3)
	require.Len(t, got, 3)

	queryVec := Vectorize("gulls over the harbor at dawn", DefaultDims)
	prev := math.Inf(1)
	for _, s := range got {
		score := Similarity(queryVec, s.Vector)
		assert.LessOrEqual(t, score, prev)
		prev = score
	}
}
