package prose

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeasure(t *testing.T) {
	draft := "The harbor was empty. She waited by the rail.\n\nNothing came."
	m := Measure(draft)

	assert.Equal(t, 11, m.WordCount)
	assert.Equal(t, len(draft), m.CharacterCount)
	assert.Equal(t, 3, m.SentenceCount)
	assert.Equal(t, 2, m.ParagraphCount)
	assert.InDelta(t, 11.0/250.0, m.ReadingTimeMin, 1e-9)
}

func TestMeasure_Empty(t *testing.T) {
	m := Measure("")
	assert.Zero(t, m.WordCount)
	assert.Zero(t, m.SentenceCount)
	assert.Zero(t, m.ParagraphCount)
	assert.Zero(t, m.ReadingTimeMin)
}

func TestSentenceCount(t *testing.T) {
	assert.Equal(t, 1, SentenceCount("No terminator here"))
	assert.Equal(t, 2, SentenceCount("Really?! She left."))
	assert.Equal(t, 1, SentenceCount("He paused..."))
	assert.Equal(t, 0, SentenceCount("   "))
}

func TestParagraphCount_SkipsBlankRuns(t *testing.T) {
	assert.Equal(t, 2, ParagraphCount("one\n\n\n\ntwo"))
}
