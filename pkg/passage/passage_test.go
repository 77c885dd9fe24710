package passage

import (
	"testing"

	"github.com/hack-pad/hackpadfs/mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIndex(t *testing.T) *Index {
	t.Helper()
	fs, err := mem.NewFS()
	require.NoError(t, err)
	idx, err := NewIndex(fs, "passages.idx")
	require.NoError(t, err)
	return idx
}

func TestAddDraft_SplitsParagraphs(t *testing.T) {
	idx := newTestIndex(t)

	added := idx.AddDraft("proj_1", "First paragraph.\n\n\n\nSecond paragraph.")
	assert.Equal(t, 2, added)
	assert.Equal(t, 2, idx.Len())

	added = idx.AddDraft("proj_2", "   \n\n  ")
	assert.Zero(t, added)
}

func TestSearch_FindsNearestParagraph(t *testing.T) {
	idx := newTestIndex(t)

	idx.AddDraft("proj_1", "The harbor was empty at dawn and the gulls were silent.\n\nShe sprinted down the pier chasing the ferry.")
	idx.AddDraft("proj_2", "Dinner was a quiet affair of bread and cold soup.")

	results := idx.Search("sprinted down the pier", 1)
	require.Len(t, results, 1)
	assert.Equal(t, "proj_1", results[0].ProjectID)
	assert.Contains(t, results[0].Text, "sprinted")
}

func TestSearch_EmptyIndex(t *testing.T) {
	idx := newTestIndex(t)
	assert.Nil(t, idx.Search("anything", 3))
	assert.Nil(t, idx.Search("anything", 0))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	fs, err := mem.NewFS()
	require.NoError(t, err)

	idx, err := NewIndex(fs, "passages.idx")
	require.NoError(t, err)
	idx.AddDraft("proj_1", "The harbor was empty at dawn.\n\nShe waited by the rail.")
	require.NoError(t, idx.Save())

	reloaded, err := NewIndex(fs, "passages.idx")
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.Len())

	results := reloaded.Search("waited by the rail", 1)
	require.Len(t, results, 1)
	assert.Equal(t, "She waited by the rail.", results[0].Text)
}
