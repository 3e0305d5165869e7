package ranker

import (
	"math"
	"testing"

	"github.com/google/uuid"
)

const modelTag = "all-minilm"

func unit(vals ...float32) []float32 {
	var norm float64
	for _, v := range vals {
		norm += float64(v) * float64(v)
	}
	norm = math.Sqrt(norm)
	out := make([]float32, len(vals))
	for i, v := range vals {
		out[i] = float32(float64(v) / norm)
	}
	return out
}

func candidate(content string, vec []float32) Candidate {
	return Candidate{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Content: content,
		Vector:  vec,
		Model:   modelTag,
	}
}

func TestRankByVectorScoring(t *testing.T) {
	query := unit(1, 0, 0)
	cands := []Candidate{
		candidate("aligned", unit(1, 0, 0)),
		candidate("halfway", unit(1, 1, 0)),
		candidate("orthogonal", unit(0, 1, 0)),
	}

	hits, err := RankByVector(query, modelTag, cands, 10, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 3 {
		t.Fatalf("hit count = %d, want 3", len(hits))
	}

	if hits[0].Content != "aligned" || math.Abs(hits[0].Score-1.0) > 1e-6 {
		t.Errorf("top hit = %q score %f, want aligned score 1.0", hits[0].Content, hits[0].Score)
	}
	if hits[1].Content != "halfway" || math.Abs(hits[1].Score-math.Sqrt2/2) > 1e-6 {
		t.Errorf("second hit = %q score %f, want halfway score %f", hits[1].Content, hits[1].Score, math.Sqrt2/2)
	}
	if hits[2].Content != "orthogonal" || math.Abs(hits[2].Score) > 1e-6 {
		t.Errorf("third hit = %q score %f, want orthogonal score 0", hits[2].Content, hits[2].Score)
	}
	for _, h := range hits {
		if h.Method != MethodSemantic {
			t.Errorf("Method = %q, want %q", h.Method, MethodSemantic)
		}
	}
}

func TestRankByVectorThresholdAndTopK(t *testing.T) {
	query := unit(1, 0)
	cands := []Candidate{
		candidate("high", unit(1, 0)),
		candidate("mid", unit(1, 1)),
		candidate("low", unit(1, 10)),
	}

	hits, err := RankByVector(query, modelTag, cands, 10, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits above 0.5 = %d, want 2", len(hits))
	}

	hits, err = RankByVector(query, modelTag, cands, 1, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Content != "high" {
		t.Fatalf("topK=1 returned %d hits, first %q", len(hits), hits[0].Content)
	}
}

func TestRankByVectorStableTies(t *testing.T) {
	query := unit(1, 0)
	first := candidate("first", unit(1, 0))
	second := candidate("second", unit(1, 0))

	hits, err := RankByVector(query, modelTag, []Candidate{first, second}, 10, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 2 {
		t.Fatalf("hit count = %d, want 2", len(hits))
	}
	if hits[0].ID != first.ID || hits[1].ID != second.ID {
		t.Error("equal scores must keep candidate scan order")
	}
}

func TestRankByVectorSkipsUnusableCandidates(t *testing.T) {
	query := unit(1, 0)

	bare := candidate("bare", nil)
	otherModel := candidate("other model", unit(1, 0))
	otherModel.Model = "nomic-embed-text"
	usable := candidate("usable", unit(1, 0))

	hits, err := RankByVector(query, modelTag, []Candidate{bare, otherModel, usable}, 10, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 1 || hits[0].Content != "usable" {
		t.Fatalf("hits = %d, want only the usable candidate", len(hits))
	}
}

func TestRankByVectorDimensionMismatch(t *testing.T) {
	query := unit(1, 0, 0)
	wrong := candidate("wrong dim", unit(1, 0))

	if _, err := RankByVector(query, modelTag, []Candidate{wrong}, 10, 0.0); err != ErrDimensionMismatch {
		t.Errorf("error = %v, want ErrDimensionMismatch", err)
	}
}

func TestRankByVectorEmpty(t *testing.T) {
	hits, err := RankByVector(unit(1, 0), modelTag, nil, 10, 0.0)
	if err != nil {
		t.Fatal(err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %d, want 0", len(hits))
	}
}
