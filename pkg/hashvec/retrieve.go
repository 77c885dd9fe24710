package hashvec

import "sort"

// Sample is a banked writing excerpt with its precomputed signature.
// Immutable once created.
type Sample struct {
	Text   string    `json:"text"`
	Vector []float32 `json:"vector"`
}

// NewSample vectorizes text at DefaultDims and wraps it as a Sample.
func NewSample(text string) Sample {
	return Sample{Text: text, Vector: Vectorize(text, DefaultDims)}
}

// Retrieve returns the k bank samples most similar to the query text,
// ordered by non-increasing score. The sort is stable: ties keep their
// original bank position, so results are deterministic regardless of
// how the scan is scheduled. An empty bank yields an empty result.
func Retrieve(query string, bank []Sample, k int) []Sample {
	if len(bank) == 0 || k <= 0 {
		return nil
	}

	queryVec := Vectorize(query, DefaultDims)

	type scored struct {
		score  float64
		sample Sample
	}
	ranked := make([]scored, 0, len(bank))
	for _, s := range bank {
		ranked = append(ranked, scored{score: Similarity(queryVec, s.Vector), sample: s})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if k > len(ranked) {
		k = len(ranked)
	}
	out := make([]Sample, k)
	for i := 0; i < k; i++ {
		out[i] = ranked[i].sample
	}
	return out
}
