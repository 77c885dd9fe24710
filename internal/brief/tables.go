package brief

import (
	"fmt"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// Action is a writing-desk operation. The set is closed: the composer's
// task table and the result-application switch are both exhaustive over
// these values, so adding an action is a compile-time-checked change.
type Action string

const (
	ActionWrite    Action = "Write"
	ActionExpand   Action = "Expand"
	ActionDescribe Action = "Describe"
	ActionRewrite  Action = "Rewrite"
	ActionRephrase Action = "Rephrase"
	ActionSpell    Action = "Spell/Grammar"
	ActionSynonym  Action = "Synonym"
	ActionSentence Action = "Sentence"
)

// Actions returns all desk actions in menu order.
func Actions() []Action {
	return []Action{ActionWrite, ActionExpand, ActionDescribe, ActionRewrite, ActionRephrase, ActionSpell, ActionSynonym, ActionSentence}
}

// ParseAction returns the action matching s.
func ParseAction(s string) (Action, bool) {
	for _, a := range Actions() {
		if string(a) == s {
			return a, true
		}
	}
	return "", false
}

// genreDirective returns the per-genre instruction, parameterized by the
// genre control's intensity. Literary is the neutral default and has no
// directive.
func genreDirective(g state.Genre, intensity float64) (string, bool) {
	var text string
	switch g {
	case state.GenreThriller:
		text = "Maintain tension and pacing. Build suspense. Keep readers on edge."
	case state.GenreNoir:
		text = "Use dark, cynical tone. Emphasize moral ambiguity. Employ atmospheric description."
	case state.GenreHorror:
		text = "Create dread and unease. Use visceral imagery. Build atmospheric terror."
	case state.GenreRomance:
		text = "Emphasize emotional connection. Build romantic tension. Focus on character feelings."
	case state.GenreFantasy:
		text = "Rich world-building. Vivid magical elements. Maintain internal consistency."
	case state.GenreSciFi:
		text = "Technical plausibility. Explore implications. Balance explanation with story."
	case state.GenreHistorical:
		text = "Period-appropriate language. Historical accuracy. Immersive setting details."
	case state.GenreContemporary:
		text = "Modern voice. Current references. Authentic contemporary feel."
	default:
		return "", false
	}
	return fmt.Sprintf("%s (Intensity: %.1f)", text, intensity), true
}

// styleDirective returns the per-style instruction. Neutral has none.
func styleDirective(s state.Style, intensity float64) (string, bool) {
	var text string
	switch s {
	case state.StyleNarrative:
		text = "Clear storytelling. Forward momentum. Balanced pacing."
	case state.StyleDescriptive:
		text = "Rich sensory detail. Vivid imagery. Immersive atmosphere."
	case state.StyleEmotional:
		text = "Deep feeling. Emotional resonance. Character interiority."
	case state.StyleLyrical:
		text = "Poetic language. Rhythmic prose. Beautiful phrasing."
	case state.StyleSparse:
		text = "Economy of language. Minimal description. Direct prose."
	case state.StyleOrnate:
		text = "Elaborate language. Complex sentences. Rich vocabulary."
	default:
		return "", false
	}
	return fmt.Sprintf("%s (Intensity: %.1f)", text, intensity), true
}

// laneContext is the always-present context sentence keyed by lane.
func laneContext(l lane.Lane) string {
	switch l {
	case lane.Dialogue:
		return "Write authentic dialogue with natural speech patterns."
	case lane.Interiority:
		return "Explore character thoughts and emotions deeply."
	case lane.Action:
		return "Write kinetic, physical action with clear movement."
	default:
		return "Continue the narrative flow naturally."
	}
}

// taskDirective builds the user-facing task from the action table. Each
// action consumes a different trailing slice of the draft. Unknown
// actions fall back to the last 1000 bytes verbatim with no wrapper.
func taskDirective(action Action, draft string) string {
	switch action {
	case ActionWrite:
		return "Continue this draft with 1-3 new paragraphs:\n\n" + tail(draft, 1000)
	case ActionExpand:
		return "Add depth and detail to this text without changing its meaning:\n\n" + tail(draft, 500)
	case ActionDescribe:
		return "Add vivid sensory description while preserving pace:\n\n" + tail(draft, 500)
	case ActionRewrite:
		return "Improve the quality while preserving meaning:\n\n" + tail(draft, 500)
	case ActionRephrase:
		return "Replace the final sentence with a stronger alternative. Here's the text:\n\n" + tail(draft, 500)
	case ActionSpell:
		return "Fix spelling, grammar, and punctuation errors:\n\n" + tail(draft, 500)
	case ActionSynonym:
		return "Provide 12 strong synonym alternatives for the last word, grouped by nuance. Text:\n\n" + tail(draft, 200)
	case ActionSentence:
		return "Provide 8 rewrites of the final sentence with varied rhythm and diction. Text:\n\n" + tail(draft, 200)
	default:
		return tail(draft, 1000)
	}
}

// tail returns the last n bytes of s. The cut is a byte slice and may
// land mid-sentence or mid-word; that crude behavior is kept on purpose
// for compatibility with historical drafts.
func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// head returns the first n bytes of s.
func head(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
