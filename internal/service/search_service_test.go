package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/pkg/embedding"
)

const testModel = "all-minilm"

func seedDocumentWithChunk(uow *fakeUnitOfWork, proposalId *uuid.UUID, filename, content string, vec []float32) uuid.UUID {
	docId := uuid.New()
	uow.docs.Create(context.Background(), &entity.Document{
		Id:          docId,
		ProposalId:  proposalId,
		Filename:    filename,
		ContentHash: filename, // unique per fixture, value irrelevant here
		ChunkCount:  1,
		Vectorized:  vec != nil,
		CreatedAt:   time.Now(),
	})
	uow.chunks.CreateBulk(context.Background(), []*entity.DocumentChunk{{
		Id:             uuid.New(),
		DocumentId:     docId,
		ChunkIndex:     0,
		Content:        content,
		Embedding:      vec,
		EmbeddingModel: testModel,
		CreatedAt:      time.Now(),
	}})
	return docId
}

func TestSearchSemanticRanking(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("cloud migration", []float32{1, 0, 0})

	seedDocumentWithChunk(uow, nil, "close.txt", "cloud migration plan", []float32{1, 0, 0})
	seedDocumentWithChunk(uow, nil, "far.txt", "staffing roster", []float32{0, 1, 0})

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.25, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "cloud migration", Scope: ScopeDocuments})
	if err != nil {
		t.Fatal(err)
	}

	if res.SearchType != "semantic" {
		t.Errorf("SearchType = %q, want semantic", res.SearchType)
	}
	// Orthogonal chunk scores 0, below the 0.25 floor.
	if len(res.Hits) != 1 {
		t.Fatalf("hit count = %d, want 1", len(res.Hits))
	}
	hit := res.Hits[0]
	if hit.Filename != "close.txt" || hit.Source != "document" {
		t.Errorf("hit = %+v, want document close.txt", hit)
	}
	if hit.Score < 0.99 {
		t.Errorf("score = %f, want ~1.0", hit.Score)
	}
}

func TestSearchKeywordFallback(t *testing.T) {
	uow := newFakeUnitOfWork()
	// Chunks never vectorized, provider permanently unavailable.
	seedDocumentWithChunk(uow, nil, "plan.txt", "cloud migration plan for the agency", nil)
	seedDocumentWithChunk(uow, nil, "other.txt", "unrelated staffing roster", nil)

	svc := NewSearchService(&fakeFactory{uow: uow}, embedding.Disabled(testModel, 3), 8, 0.25, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "cloud migration", Scope: ScopeDocuments})
	if err != nil {
		t.Fatal(err)
	}

	if res.SearchType != "keyword" {
		t.Errorf("SearchType = %q, want keyword", res.SearchType)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hit count = %d, want 1", len(res.Hits))
	}
	if res.Hits[0].Filename != "plan.txt" {
		t.Errorf("hit filename = %q, want plan.txt", res.Hits[0].Filename)
	}
}

func TestSearchKeywordFallbackBeforeVectorization(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("cloud migration", []float32{1, 0, 0})

	// Provider is up, but the indexing pass has not run yet.
	seedDocumentWithChunk(uow, nil, "plan.txt", "cloud migration plan for the agency", nil)
	seedDocumentWithChunk(uow, nil, "other.txt", "unrelated staffing roster", nil)

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.25, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "cloud migration", Scope: ScopeDocuments})
	if err != nil {
		t.Fatal(err)
	}

	if res.SearchType != "keyword" {
		t.Errorf("SearchType = %q, want keyword", res.SearchType)
	}
	if len(res.Hits) != 1 {
		t.Fatalf("hit count = %d, want 1 (unvectorized corpus must keyword-rank)", len(res.Hits))
	}
	if res.Hits[0].Filename != "plan.txt" || res.Hits[0].SearchType != "keyword" {
		t.Errorf("hit = %+v, want keyword hit on plan.txt", res.Hits[0])
	}
}

func TestSearchProposalScope(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("query", []float32{1, 0, 0})

	mine := uuid.New()
	other := uuid.New()
	seedDocumentWithChunk(uow, &mine, "mine.txt", "matching content", []float32{1, 0, 0})
	seedDocumentWithChunk(uow, &other, "other.txt", "matching content too", []float32{1, 0, 0})

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.0, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{
		Query:      "query",
		Scope:      ScopeDocuments,
		ProposalId: &mine,
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(res.Hits) != 1 || res.Hits[0].Filename != "mine.txt" {
		t.Fatalf("hits = %+v, want only mine.txt", res.Hits)
	}
}

func TestSearchExcludedDocumentsInvisible(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("query", []float32{1, 0, 0})

	seedDocumentWithChunk(uow, nil, "hidden.txt", "matching content", []float32{1, 0, 0})
	doc, _ := uow.docs.FindOne(context.Background())
	doc.Excluded = true
	uow.docs.Update(context.Background(), doc)

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.0, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "query", Scope: ScopeDocuments})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %d, want 0 (excluded document must not surface)", len(res.Hits))
	}
}

func TestSearchSkipsForeignModelVectors(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("query", []float32{1, 0, 0})

	seedDocumentWithChunk(uow, nil, "foreign.txt", "matching content", []float32{1, 0, 0})
	chunks, _ := uow.chunks.FindAll(context.Background())
	uow.chunks.UpdateEmbedding(context.Background(), chunks[0].Id, []float32{1, 0, 0}, "nomic-embed-text")

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.0, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "query", Scope: ScopeDocuments})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %d, want 0 (foreign model tag must be excluded)", len(res.Hits))
	}
}

func TestSearchMergesKnowledge(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("query", []float32{1, 0, 0})

	seedDocumentWithChunk(uow, nil, "doc.txt", "document content", []float32{1, 0, 0})

	entryId := uuid.New()
	uow.kbEntries.Create(context.Background(), &entity.KnowledgeEntry{
		Id:        entryId,
		Title:     "Past Performance",
		Content:   "knowledge content",
		EntryType: "past_performance",
		IsActive:  true,
		CreatedAt: time.Now(),
	})
	uow.kbVectors.Upsert(context.Background(), &entity.KnowledgeEmbedding{
		Id:        uuid.New(),
		EntryId:   entryId,
		Embedding: []float32{0.9, 0.1, 0},
		Model:     testModel,
		CreatedAt: time.Now(),
	})

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.0, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "query", Scope: ScopeAll})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 2 {
		t.Fatalf("hit count = %d, want 2", len(res.Hits))
	}

	sources := map[string]bool{}
	for _, h := range res.Hits {
		sources[h.Source] = true
		if h.Source == "knowledge" && h.Title != "Past Performance" {
			t.Errorf("knowledge hit title = %q", h.Title)
		}
	}
	if !sources["document"] || !sources["knowledge"] {
		t.Errorf("sources = %v, want both corpora", sources)
	}

	// Scores descending after the merge.
	for i := 1; i < len(res.Hits); i++ {
		if res.Hits[i-1].Score < res.Hits[i].Score {
			t.Error("merged hits not sorted by score")
		}
	}
}

func TestSearchInactiveKnowledgeInvisible(t *testing.T) {
	uow := newFakeUnitOfWork()
	provider := newFakeEmbeddingProvider(testModel)
	provider.set("query", []float32{1, 0, 0})

	entryId := uuid.New()
	uow.kbEntries.Create(context.Background(), &entity.KnowledgeEntry{
		Id:        entryId,
		Title:     "Retired",
		Content:   "content",
		IsActive:  false,
		CreatedAt: time.Now(),
	})
	uow.kbVectors.Upsert(context.Background(), &entity.KnowledgeEmbedding{
		Id:        uuid.New(),
		EntryId:   entryId,
		Embedding: []float32{1, 0, 0},
		Model:     testModel,
		CreatedAt: time.Now(),
	})

	svc := NewSearchService(&fakeFactory{uow: uow}, provider, 8, 0.0, nopLogger{})

	res, err := svc.Search(context.Background(), &dto.SearchRequest{Query: "query", Scope: ScopeKnowledge})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Hits) != 0 {
		t.Errorf("hits = %d, want 0 (inactive entries must not surface)", len(res.Hits))
	}
}
