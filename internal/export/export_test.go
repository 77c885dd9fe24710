package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
)

func testProject() *state.Project {
	return &state.Project{
		ID:         "proj_test",
		Title:      "Harbor Story",
		Draft:      "The harbor was empty at dawn.\n\nShe waited by the rail.",
		Bay:        state.BayRough,
		CreatedAt:  1700000000000,
		ModifiedAt: 1700000100000,
	}
}

func TestMarkdown(t *testing.T) {
	out := Markdown(testProject())

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "title: Harbor Story\n")
	assert.Contains(t, out, "created: 2023-11-14T22:13:20Z\n")
	assert.Contains(t, out, "bay: ROUGH\n")
	assert.Contains(t, out, "word_count: 11\n")
	assert.Contains(t, out, "# Harbor Story\n")
	assert.True(t, strings.HasSuffix(out, "She waited by the rail."))
}

func TestManuscript(t *testing.T) {
	out := Manuscript(testProject())

	assert.True(t, strings.HasPrefix(out, "11 words\n"))
	assert.Contains(t, out, "\nHarbor Story\n")
	assert.Contains(t, out, "    The harbor was empty at dawn.\n")
	assert.Contains(t, out, "    She waited by the rail.")
	assert.False(t, strings.HasSuffix(out, "\n"))
}

func TestHTML(t *testing.T) {
	p := testProject()
	p.Title = "Fish & Chips"
	out := HTML(p)

	assert.Contains(t, out, "<title>Fish &amp; Chips</title>")
	assert.Contains(t, out, "<h1>Fish &amp; Chips</h1>")
	assert.Contains(t, out, "    <p>The harbor was empty at dawn.</p>\n")
	assert.Contains(t, out, "    <p>She waited by the rail.</p>\n")
	assert.True(t, strings.HasSuffix(out, "</html>"))
}

func TestRenderAndParseFormat(t *testing.T) {
	p := testProject()
	for _, f := range Formats() {
		out, err := Render(f, p)
		require.NoError(t, err)
		assert.NotEmpty(t, out)
	}

	f, err := ParseFormat("Manuscript")
	require.NoError(t, err)
	assert.Equal(t, FormatManuscript, f)
	assert.Equal(t, ".txt", f.Extension())

	_, err = ParseFormat("pdf")
	assert.Error(t, err)

	_, err = Render(Format("pdf"), p)
	assert.Error(t, err)
}

func TestMarkdown_EmptyDraft(t *testing.T) {
	p := testProject()
	p.Draft = ""
	out := Markdown(p)
	assert.Contains(t, out, "word_count: 0\n")
}
