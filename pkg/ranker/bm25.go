package ranker

import (
	"math"
	"strings"
)

// Okapi BM25 parameters. k1 controls term-frequency saturation, b the
// strength of document-length normalization.
const (
	bm25K1 = 1.5
	bm25B  = 0.75
)

// RankByKeyword is the degraded-mode ranker used when the embedding
// provider is unavailable or no candidate carries a vector. It scores
// candidates with Okapi BM25 over whitespace-lowercase tokens, keeps
// strictly positive scores, and honors the same ordering contract as
// RankByVector. minScore is not applied here: BM25 scores are unbounded
// and not comparable to cosine similarity.
func RankByKeyword(query string, candidates []Candidate, topK int) []Hit {
	if topK <= 0 {
		topK = 5
	}
	queryTerms := tokenize(query)
	if len(queryTerms) == 0 || len(candidates) == 0 {
		return nil
	}

	corpus := make([][]string, len(candidates))
	totalLen := 0
	for i, c := range candidates {
		corpus[i] = tokenize(c.Content)
		totalLen += len(corpus[i])
	}
	avgLen := float64(totalLen) / float64(len(corpus))
	if avgLen == 0 {
		return nil
	}

	// Document frequency per query term across the candidate set.
	df := make(map[string]int, len(queryTerms))
	for _, doc := range corpus {
		seen := make(map[string]bool)
		for _, tok := range doc {
			seen[tok] = true
		}
		for _, term := range queryTerms {
			if seen[term] {
				df[term]++
			}
		}
	}

	n := float64(len(corpus))
	hits := make([]Hit, 0, len(candidates))
	for i, c := range candidates {
		tf := make(map[string]int, len(corpus[i]))
		for _, tok := range corpus[i] {
			tf[tok]++
		}
		docLen := float64(len(corpus[i]))

		var score float64
		for _, term := range queryTerms {
			freq := float64(tf[term])
			if freq == 0 {
				continue
			}
			idf := math.Log((n-float64(df[term])+0.5)/(float64(df[term])+0.5) + 1)
			norm := freq * (bm25K1 + 1) / (freq + bm25K1*(1-bm25B+bm25B*docLen/avgLen))
			score += idf * norm
		}
		if score > 0 {
			hits = append(hits, Hit{Candidate: c, Score: score, Method: MethodKeyword})
		}
	}

	sortAndTruncate(hits, topK)
	return hits[:min(topK, len(hits))]
}

func tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}
