// Package hashvec implements hash-based bag-of-words text signatures.
// No external embedding APIs: signatures are deterministic, so retrieval
// is reproducible across runs and platforms.
package hashvec

import (
	"crypto/md5"
	"encoding/binary"
	"math"
	"regexp"
	"strings"
)

// DefaultDims is the signature width used across the application.
const DefaultDims = 512

var wordRe = regexp.MustCompile(`\w+`)

// Vectorize converts text to an L2-normalized bag-of-words hash vector.
// Each token is MD5-hashed and its first 4 bytes select a bucket mod dims.
// Hash collisions are accepted as a controlled approximation.
// Empty or non-tokenizable text yields the zero vector.
func Vectorize(text string, dims int) []float32 {
	vec := make([]float32, dims)

	words := wordRe.FindAllString(strings.ToLower(text), -1)
	for _, w := range words {
		sum := md5.Sum([]byte(w))
		idx := binary.BigEndian.Uint32(sum[:4]) % uint32(dims)
		vec[idx]++
	}

	normalize(vec)
	return vec
}

// normalize scales vec to unit length in place. Zero vectors are left as-is.
func normalize(vec []float32) {
	sumSq := 0.0
	for _, x := range vec {
		sumSq += float64(x) * float64(x)
	}
	if sumSq == 0 {
		return
	}

	norm := float32(math.Sqrt(sumSq))
	for i := range vec {
		vec[i] /= norm
	}
}

// Similarity returns the dot product of two unit vectors, clamped to [0,1].
// Term counts are non-negative so the cosine cannot go below zero for
// vectors produced by Vectorize; the clamp guards float drift.
// Returns 0 on dimension mismatch.
func Similarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	dot := 0.0
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}

	if dot < 0 {
		return 0.0
	}
	if dot > 1 {
		return 1.0
	}
	return dot
}
