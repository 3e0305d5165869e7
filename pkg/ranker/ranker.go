// Package ranker scores retrieval candidates against a query. The
// primary path is cosine similarity over unit-normalized vectors (which
// reduces to a dot product); when no query vector is available it falls
// back to BM25 keyword scoring with the same return shape, so callers
// only see a different Method tag.
package ranker

import (
	"errors"
	"sort"

	"github.com/google/uuid"
)

// Scoring provenance carried on every hit.
const (
	MethodSemantic = "semantic"
	MethodKeyword  = "keyword"
)

// ErrDimensionMismatch signals a stored vector whose dimension differs
// from the query vector under the same model tag. That is a broken
// installation, not a scoring decision, so it fails fast.
var ErrDimensionMismatch = errors.New("ranker: candidate vector dimension does not match query vector")

// Candidate is one stored unit (document chunk or knowledge entry)
// offered to the ranker.
type Candidate struct {
	ID      uuid.UUID
	OwnerID uuid.UUID // owning document or knowledge entry
	Index   int       // chunk ordinal; 0 for knowledge entries
	Content string
	Vector  []float32 // nil when the unit has not been embedded
	Model   string    // embedding model tag
}

// Hit is a scored candidate.
type Hit struct {
	Candidate
	Score  float64
	Method string
}

// RankByVector scores candidates by dot product against query (both
// unit-normalized, so the score equals cosine similarity), keeps those
// at or above minScore, sorts descending and truncates to topK. Ties
// keep scan order. Candidates embedded under a different model tag are
// excluded: their scores would not be comparable. A dimension mismatch
// under a matching tag returns ErrDimensionMismatch.
func RankByVector(query []float32, queryModel string, candidates []Candidate, topK int, minScore float64) ([]Hit, error) {
	if topK <= 0 {
		topK = 5
	}
	hits := make([]Hit, 0, len(candidates))
	for _, c := range candidates {
		if c.Vector == nil || c.Model != queryModel {
			continue
		}
		if len(c.Vector) != len(query) {
			return nil, ErrDimensionMismatch
		}
		score := dot(query, c.Vector)
		if score >= minScore {
			hits = append(hits, Hit{Candidate: c, Score: score, Method: MethodSemantic})
		}
	}
	sortAndTruncate(hits, topK)
	return hits[:min(topK, len(hits))], nil
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}

// sortAndTruncate orders hits by score descending with a stable sort so
// equal scores keep candidate scan order.
func sortAndTruncate(hits []Hit, topK int) {
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
