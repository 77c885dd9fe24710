// Package prose provides draft-level writing metrics.
package prose

import (
	"regexp"
	"strings"
)

// readingWPM is the average adult reading speed used for time estimates.
const readingWPM = 250.0

var sentenceRe = regexp.MustCompile(`[.!?]+`)

// Metrics holds the computed stats for a draft.
type Metrics struct {
	WordCount      int     `json:"wordCount"`
	CharacterCount int     `json:"charCount"`
	SentenceCount  int     `json:"sentCount"`
	ParagraphCount int     `json:"paraCount"`
	ReadingTimeMin float64 `json:"readingTimeMin"`
}

// Measure computes the full suite of metrics for a draft.
func Measure(draft string) Metrics {
	words := WordCount(draft)
	return Metrics{
		WordCount:      words,
		CharacterCount: len(draft),
		SentenceCount:  SentenceCount(draft),
		ParagraphCount: ParagraphCount(draft),
		ReadingTimeMin: float64(words) / readingWPM,
	}
}

// WordCount counts whitespace-separated words.
func WordCount(draft string) int {
	return len(strings.Fields(draft))
}

// SentenceCount counts terminal punctuation runs. A non-empty draft
// with no terminators still counts as one sentence.
func SentenceCount(draft string) int {
	if strings.TrimSpace(draft) == "" {
		return 0
	}
	count := 0
	for _, seg := range sentenceRe.Split(draft, -1) {
		if strings.TrimSpace(seg) != "" {
			count++
		}
	}
	if count == 0 {
		return 1
	}
	return count
}

// ParagraphCount counts blank-line separated paragraphs.
func ParagraphCount(draft string) int {
	count := 0
	for _, para := range strings.Split(draft, "\n\n") {
		if strings.TrimSpace(para) != "" {
			count++
		}
	}
	return count
}
