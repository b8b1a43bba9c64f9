package features

import (
	"crypto/md5"
	"math"

	"NewsAggregator/internal/ports"
)

// HashDimensions is the size of vectors produced by HashEmbedder.
const HashDimensions = md5.Size

const normEpsilon = 1e-9

// HashEmbedder derives a unit vector from the MD5 digest of the text.
// It carries no semantic meaning; it only guarantees determinism and a
// stable dimensionality until a learned backend replaces it.
type HashEmbedder struct{}

var _ ports.Embedder = HashEmbedder{}

func (HashEmbedder) Dimensions() int { return HashDimensions }

func (HashEmbedder) Embed(text string) []float64 {
	digest := md5.Sum([]byte(text))

	vec := make([]float64, HashDimensions)
	var sum float64
	for i, b := range digest {
		vec[i] = float64(b)
		sum += vec[i] * vec[i]
	}

	norm := math.Sqrt(sum) + normEpsilon
	for i := range vec {
		vec[i] /= norm
	}
	return vec
}

// Cosine returns the cosine similarity of two vectors, 0 when they differ in
// length or either is empty.
func Cosine(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	return dot / (math.Sqrt(na)*math.Sqrt(nb) + normEpsilon)
}
