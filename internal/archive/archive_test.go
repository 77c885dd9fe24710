package archive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

func newTestArchive(t *testing.T) *Archive {
	t.Helper()
	a, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })
	return a
}

func TestAdd_FillsDefaults(t *testing.T) {
	a := newTestArchive(t)

	rec := &Record{Lane: lane.Dialogue, Source: "style", Text: `"Hello," she said.`}
	require.NoError(t, a.Add(rec))

	assert.NotEmpty(t, rec.ID)
	assert.Contains(t, rec.ID, "arc_")
	assert.NotZero(t, rec.CreatedAt)

	count, err := a.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSimilar_RanksByDistance(t *testing.T) {
	a := newTestArchive(t)

	require.NoError(t, a.Add(&Record{Lane: lane.Action, Source: "style",
		Text: "He sprinted across the deck and lunged for the rail."}))
	require.NoError(t, a.Add(&Record{Lane: lane.Narration, Source: "style",
		Text: "The village slept under a thin grey rain."}))
	require.NoError(t, a.Add(&Record{Lane: lane.Action, Source: "voice",
		Text: "She sprinted down the pier and dove into the water."}))

	matches, err := a.Similar("sprinted across the pier", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)

	assert.Contains(t, matches[0].Text, "sprinted")
	assert.LessOrEqual(t, matches[0].Distance, matches[1].Distance)
}

func TestSimilar_EmptyArchive(t *testing.T) {
	a := newTestArchive(t)

	matches, err := a.Similar("anything", 3)
	require.NoError(t, err)
	assert.Empty(t, matches)

	matches, err = a.Similar("anything", 0)
	require.NoError(t, err)
	assert.Nil(t, matches)
}

func TestByLane(t *testing.T) {
	a := newTestArchive(t)

	require.NoError(t, a.Add(&Record{Lane: lane.Dialogue, Source: "style", Text: "one", CreatedAt: 100}))
	require.NoError(t, a.Add(&Record{Lane: lane.Dialogue, Source: "style", Text: "two", CreatedAt: 200}))
	require.NoError(t, a.Add(&Record{Lane: lane.Action, Source: "style", Text: "three", CreatedAt: 300}))

	recs, err := a.ByLane(lane.Dialogue, 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "two", recs[0].Text, "newest first")

	recs, err = a.ByLane(lane.Interiority, 10)
	require.NoError(t, err)
	assert.Empty(t, recs)
}
