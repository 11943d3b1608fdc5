package services

import (
	"log"
	"math"
)

// CosineSimilarity returns the cosine of the angle between two embeddings,
// in [-1, 1]. Both vectors must be non-empty. Mismatched lengths, as seen
// with embeddings from different model revisions, are truncated to the
// shorter vector and a warning is logged. A zero-magnitude vector yields 0.0
// rather than an error: in a scoring pipeline a neutral similarity is safer
// than a crash.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVector
	}

	if len(a) != len(b) {
		log.Printf("⚠️  Embedding length mismatch (%d vs %d), truncating to shorter\n", len(a), len(b))
		n := len(a)
		if len(b) < n {
			n = len(b)
		}
		a = a[:n]
		b = b[:n]
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	if normA == 0 || normB == 0 {
		return 0, nil
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}
