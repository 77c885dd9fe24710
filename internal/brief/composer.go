// Package brief assembles the layered instruction set sent to the
// completion collaborator. Composition is a pure function of its inputs:
// the only state it touches is what the caller passes by reference.
package brief

import (
	"fmt"
	"strings"

	"github.com/superhappyfuntimellc/Olivetti/internal/state"
	"github.com/superhappyfuntimellc/Olivetti/pkg/hashvec"
	"github.com/superhappyfuntimellc/Olivetti/pkg/lane"
)

// Brief is the composed instruction triple for one collaborator call.
type Brief struct {
	System      string
	Task        string
	Temperature float64
}

const (
	// identity is the base system statement, always first.
	identity = "You are the Olivetti Creative Editing Partner, an expert writing assistant."

	// retrieveK is how many bank examples a directive may cite.
	retrieveK = 2

	// queryTail is how much trailing draft seeds retrieval queries.
	queryTail = 500

	// matchStyleHead caps the one-shot match-style excerpt.
	matchStyleHead = 300

	// bibleSectionHead caps each story-bible section excerpt.
	bibleSectionHead = 150
)

// Compose merges the Voice Bible controls, the detected lane, and
// retrieval results into a single ordered instruction set. Segment order
// is a precedence contract: later segments never override earlier ones,
// and the first blocks carry the highest rhetorical weight.
func Compose(action Action, l lane.Lane, project *state.Project, vb *state.VoiceBible) Brief {
	// Fixed affine map keeping temperature within [0.15, 1.10].
	temperature := 0.15 + vb.Intensity*0.95

	var sys []string

	// 1. Core identity.
	sys = append(sys, identity)

	// 2. Voice lock: mandatory rules, highest priority.
	if strings.TrimSpace(vb.VoiceLock) != "" {
		sys = append(sys, "\n**MANDATORY RULES (HIGHEST PRIORITY):**\n"+vb.VoiceLock)
	}

	// 3. Technical controls, always present.
	sys = append(sys, fmt.Sprintf("\nWrite in %s POV, %s tense.", vb.Technical.POV, vb.Technical.Tense))

	// 4. Genre directive.
	if vb.Genre.Enabled {
		if directive, ok := genreDirective(vb.Genre.Genre, vb.Genre.Intensity); ok {
			sys = append(sys, "\nGENRE: "+directive)
		}
	}

	// 5. Style directive plus retrieved lane examples.
	if vb.Style.Enabled {
		if directive, ok := styleDirective(vb.Style.Style, vb.Style.Intensity); ok {
			sys = append(sys, "\nSTYLE: "+directive)
			sys = append(sys, exampleBlock("STYLE EXAMPLES:", vb.StyleBanks[l], project.Draft)...)
		}
	}

	// 6. Trained-voice examples from the vault.
	if vb.Voice.Enabled && vb.Voice.Voice != state.NoVoice {
		if vault, ok := vb.VoiceVault[vb.Voice.Voice]; ok {
			header := fmt.Sprintf("VOICE SAMPLES (%s):", vb.Voice.Voice)
			sys = append(sys, exampleBlock(header, vault[l], project.Draft)...)
		}
	}

	// 7. One-shot match-style block.
	if strings.TrimSpace(vb.MatchStyle) != "" {
		sys = append(sys, "\nMATCH THIS STYLE:\n"+head(vb.MatchStyle, matchStyleHead))
	}

	// 8. Lane context, always present.
	sys = append(sys, "\nCONTEXT: "+laneContext(l))

	// 9. Story-bible context, only when any section has content.
	sys = append(sys, storyBibleBlock(project.StoryBible)...)

	return Brief{
		System:      strings.Join(sys, "\n"),
		Task:        taskDirective(action, project.Draft),
		Temperature: temperature,
	}
}

// exampleBlock retrieves up to retrieveK bank samples matched against the
// trailing draft and formats them under header. An empty draft or empty
// bank yields no block.
func exampleBlock(header string, bank []hashvec.Sample, draft string) []string {
	if draft == "" || len(bank) == 0 {
		return nil
	}

	similar := hashvec.Retrieve(tail(draft, queryTail), bank, retrieveK)
	if len(similar) == 0 {
		return nil
	}

	block := []string{"\n" + header}
	for i, s := range similar {
		block = append(block, fmt.Sprintf("%d. %s", i+1, head(s.Text, 200)))
	}
	return block
}

// storyBibleBlock emits each non-empty section's name and leading excerpt
// in the fixed section order.
func storyBibleBlock(bible map[string]string) []string {
	any := false
	for _, section := range state.StoryBibleSections {
		if strings.TrimSpace(bible[section]) != "" {
			any = true
			break
		}
	}
	if !any {
		return nil
	}

	block := []string{"\nSTORY CONTEXT:"}
	for _, section := range state.StoryBibleSections {
		content := strings.TrimSpace(bible[section])
		if content == "" {
			continue
		}
		block = append(block, fmt.Sprintf("- %s: %s", section, head(content, bibleSectionHead)))
	}
	return block
}
