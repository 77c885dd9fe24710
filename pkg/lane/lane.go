// Package lane classifies a draft excerpt into one of four writing modes.
// The decision rule is a fixed precedence chain: dialogue cues dominate,
// then introspection cues, then a count-gated action signal, with
// narration as the default. The lexicons and thresholds are load-bearing
// for observable behavior and must not be reordered.
package lane

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
)

// Lane is a writing-mode label for a text excerpt.
type Lane string

const (
	Narration   Lane = "Narration"
	Dialogue    Lane = "Dialogue"
	Interiority Lane = "Interiority"
	Action      Lane = "Action"
)

// Lanes returns all lanes in canonical order.
func Lanes() []Lane {
	return []Lane{Narration, Dialogue, Interiority, Action}
}

// Parse returns the lane matching s, or (Narration, false) if unknown.
func Parse(s string) (Lane, bool) {
	for _, l := range Lanes() {
		if string(l) == s {
			return l, true
		}
	}
	return Narration, false
}

// Interiority markers: thought-pattern verbs and perception phrases.
var interiorityMarkers = []string{
	"thought", "wondered", "realized", "felt", "knew", "remembered",
	"understood", "believed", "hoped", "feared", "wished",
	"could see", "could hear", "could feel",
}

// Action markers: kinetic verbs. A single incidental hit is not enough;
// at least two distinct markers are required.
var actionMarkers = []string{
	"ran", "jumped", "grabbed", "threw", "kicked", "punched", "struck",
	"dashed", "sprinted", "lunged", "dove", "rolled", "ducked", "swung",
	"fired", "shot", "slammed", "crashed", "leaped",
}

// Lexicons are compiled once into Aho-Corasick automatons. StandardMatch
// keeps every overlapping hit, so each marker behaves like an independent
// case-insensitive substring test.
var (
	interiorityAC = buildAutomaton(interiorityMarkers)
	actionAC      = buildAutomaton(actionMarkers)
)

func buildAutomaton(patterns []string) ahocorasick.AhoCorasick {
	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: true,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.StandardMatch,
	})
	return builder.Build(patterns)
}

// Classify labels the trailing paragraph of draft. Paragraphs split on
// blank lines; an empty or whitespace-only draft is Narration.
func Classify(draft string) Lane {
	para := lastParagraph(draft)
	if para == "" {
		return Narration
	}

	if quoteCount(para) >= 2 {
		return Dialogue
	}

	if len(interiorityAC.FindAll(para)) > 0 {
		return Interiority
	}

	if distinctPatterns(actionAC.FindAll(para)) >= 2 {
		return Action
	}

	return Narration
}

func lastParagraph(text string) string {
	var last string
	for _, p := range strings.Split(text, "\n\n") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			last = trimmed
		}
	}
	return last
}

// quoteCount counts straight and curly double quotation marks.
func quoteCount(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case '"', '“', '”':
			n++
		}
	}
	return n
}

func distinctPatterns(matches []ahocorasick.Match) int {
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		seen[m.Pattern()] = true
	}
	return len(seen)
}
