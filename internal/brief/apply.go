package brief

import (
	"regexp"
	"strings"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// replaceTail is how much trailing draft a content action replaces.
const replaceTail = 500

// Apply merges a collaborator result into the project according to the
// action's routing rule and bumps the modification timestamp. The caller
// is responsible for persisting the state afterwards.
//
// Routing: Write appends as a new paragraph; Synonym and Sentence land in
// the tool-output field and never touch the draft; Rephrase swaps the
// final sentence; every other action replaces the trailing 500 bytes of
// the draft (the whole draft when it is shorter). The byte-count cut can
// split mid-word; that is historical behavior, preserved deliberately.
func Apply(action Action, project *state.Project, result string) {
	switch action {
	case ActionSynonym, ActionSentence:
		project.ToolOutput = result
	case ActionWrite:
		if project.Draft == "" {
			project.Draft = result
		} else {
			project.Draft += "\n\n" + result
		}
	case ActionRephrase:
		project.Draft = rephrase(project.Draft, result)
	default:
		if len(project.Draft) > replaceTail {
			project.Draft = project.Draft[:len(project.Draft)-replaceTail] + "\n\n" + result
		} else {
			project.Draft = result
		}
	}

	project.Touch()
}

// rephrase drops the draft's final sentence (split on sentence-terminal
// punctuation) and appends the result in its place. A single-sentence
// draft is replaced outright.
func rephrase(draft, result string) string {
	sentences := sentenceEnd.Split(draft, -1)
	if len(sentences) <= 1 {
		return result
	}
	return strings.Join(sentences[:len(sentences)-1], ".") + "." + result
}
