package state

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

func TestNewAppState_Defaults(t *testing.T) {
	st := NewAppState()

	assert.Empty(t, st.Projects)
	assert.Equal(t, BayNew, st.CurrentBay)
	assert.Empty(t, st.CurrentID)
	for _, b := range Bays() {
		assert.Equal(t, "", st.BaySlots[b])
	}

	vb := st.VoiceBible
	assert.Equal(t, 0.5, vb.Intensity)
	assert.Equal(t, StyleNeutral, vb.Style.Style)
	assert.Equal(t, GenreLiterary, vb.Genre.Genre)
	assert.Equal(t, NoVoice, vb.Voice.Voice)
	assert.Equal(t, POVCloseThird, vb.Technical.POV)
	assert.Equal(t, TensePast, vb.Technical.Tense)
}

func TestCreateProject(t *testing.T) {
	st := NewAppState()

	p, err := st.CreateProject("Harbor Story", BayNew)
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, BayNew, p.Bay)
	assert.Equal(t, p.ID, st.BaySlots[BayNew])
	assert.Equal(t, p.ID, st.CurrentID)
	assert.Len(t, p.StoryBible, len(StoryBibleSections))

	// The NEW slot is taken now.
	_, err = st.CreateProject("Another", BayNew)
	assert.ErrorIs(t, err, ErrBayOccupied)
}

func TestPromote_AdvancesOneBay(t *testing.T) {
	st := NewAppState()
	p, err := st.CreateProject("Harbor Story", BayNew)
	require.NoError(t, err)

	bay, moved, err := st.Promote(p.ID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, BayRough, bay)
	assert.Equal(t, BayRough, p.Bay)

	// The id is absent from the old slot, present in the new, never both.
	assert.Equal(t, "", st.BaySlots[BayNew])
	assert.Equal(t, p.ID, st.BaySlots[BayRough])
	assert.Equal(t, BayRough, st.CurrentBay)
}

func TestPromote_NoOpAtFinal(t *testing.T) {
	st := NewAppState()
	p, err := st.CreateProject("Done Story", BayFinal)
	require.NoError(t, err)

	bay, moved, err := st.Promote(p.ID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, BayFinal, bay)
	assert.Equal(t, p.ID, st.BaySlots[BayFinal])
}

func TestPromote_FullChain(t *testing.T) {
	st := NewAppState()
	p, err := st.CreateProject("Chain", BayNew)
	require.NoError(t, err)

	want := []Bay{BayRough, BayEdit, BayFinal}
	for _, expected := range want {
		bay, moved, err := st.Promote(p.ID)
		require.NoError(t, err)
		assert.True(t, moved)
		assert.Equal(t, expected, bay)

		// Exactly one slot holds the project.
		held := 0
		for _, b := range Bays() {
			if st.BaySlots[b] == p.ID {
				held++
			}
		}
		assert.Equal(t, 1, held)
	}
}

func TestPromote_BlockedByOccupant(t *testing.T) {
	st := NewAppState()
	first, err := st.CreateProject("First", BayRough)
	require.NoError(t, err)
	second, err := st.CreateProject("Second", BayNew)
	require.NoError(t, err)

	_, moved, err := st.Promote(second.ID)
	assert.ErrorIs(t, err, ErrBayOccupied)
	assert.False(t, moved)
	assert.Equal(t, BayNew, second.Bay)
	assert.Equal(t, first.ID, st.BaySlots[BayRough])
}

func TestPromote_UnknownProject(t *testing.T) {
	st := NewAppState()
	_, _, err := st.Promote("proj_missing")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}

func TestStyleBank_Eviction(t *testing.T) {
	vb := NewVoiceBible()

	for i := 0; i < StyleBankCap+1; i++ {
		vb.AddStyleSample(lane.Narration, fmt.Sprintf("sample %d", i))
	}

	samples := vb.StyleBanks[lane.Narration]
	require.Len(t, samples, StyleBankCap)
	// Oldest dropped, most-recent-N retained in order.
	assert.Equal(t, "sample 1", samples[0].Text)
	assert.Equal(t, fmt.Sprintf("sample %d", StyleBankCap), samples[StyleBankCap-1].Text)
}

func TestVoiceVault_LaneCap(t *testing.T) {
	vb := NewVoiceBible()

	for i := 0; i < VaultLaneCap+5; i++ {
		vb.AddVoiceSample("Marlowe", lane.Dialogue, fmt.Sprintf("line %d", i))
	}

	samples := vb.VoiceVault["Marlowe"][lane.Dialogue]
	require.Len(t, samples, VaultLaneCap)
	assert.Equal(t, "line 5", samples[0].Text)
}

func TestNormalize_InvalidEnumsReset(t *testing.T) {
	st := NewAppState()
	p, err := st.CreateProject("Odd", BayNew)
	require.NoError(t, err)

	st.CurrentBay = Bay("GARAGE")
	p.Bay = Bay("LIMBO")
	st.VoiceBible.Style.Style = Style("Baroque")
	st.VoiceBible.Genre.Genre = Genre("Western")
	st.VoiceBible.Technical.POV = POV("Fourth")
	st.VoiceBible.Technical.Tense = Tense("Future")
	st.VoiceBible.Intensity = 3.5
	st.VoiceBible.Voice.Voice = "GhostVoice"
	st.VoiceBible.StyleBanks[lane.Lane("Poetry")] = nil

	st.Normalize()

	assert.Equal(t, BayNew, st.CurrentBay)
	assert.Equal(t, BayNew, p.Bay)
	assert.Equal(t, StyleNeutral, st.VoiceBible.Style.Style)
	assert.Equal(t, GenreLiterary, st.VoiceBible.Genre.Genre)
	assert.Equal(t, POVCloseThird, st.VoiceBible.Technical.POV)
	assert.Equal(t, TensePast, st.VoiceBible.Technical.Tense)
	assert.Equal(t, 1.0, st.VoiceBible.Intensity)
	assert.Equal(t, NoVoice, st.VoiceBible.Voice.Voice)
	assert.NotContains(t, st.VoiceBible.StyleBanks, lane.Lane("Poetry"))
	for _, l := range lane.Lanes() {
		assert.Contains(t, st.VoiceBible.StyleBanks, l)
	}
}

func TestNormalize_DanglingCurrentProject(t *testing.T) {
	st := NewAppState()
	st.CurrentID = "proj_gone"

	st.Normalize()
	assert.Empty(t, st.CurrentID)
}

func TestBayNext(t *testing.T) {
	next, ok := BayNew.Next()
	assert.True(t, ok)
	assert.Equal(t, BayRough, next)

	_, ok = BayFinal.Next()
	assert.False(t, ok)
}
