package service

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/pkg/embedding"
	"rfx-retrieval-be/pkg/ranker"
)

const (
	ScopeDocuments = "documents"
	ScopeKnowledge = "knowledge"
	ScopeAll       = "all"
)

type ISearchService interface {
	Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error)
}

type searchService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	defaultTopK       int
	defaultMinScore   float64
	log               logger.ILogger
}

func NewSearchService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	defaultTopK int,
	defaultMinScore float64,
	log logger.ILogger,
) ISearchService {
	return &searchService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		defaultTopK:       defaultTopK,
		defaultMinScore:   defaultMinScore,
		log:               log,
	}
}

// Search embeds the query once and ranks the requested corpora against
// it. When the embedding provider is unavailable, or when no document
// chunk carries a scoreable vector yet, it degrades to BM25 keyword
// ranking over the same candidates instead of returning nothing.
func (s *searchService) Search(ctx context.Context, req *dto.SearchRequest) (*dto.SearchResponse, error) {
	topK := req.TopK
	if topK <= 0 {
		topK = s.defaultTopK
	}
	minScore := s.defaultMinScore
	if req.MinScore != nil {
		minScore = *req.MinScore
	}
	scope := req.Scope
	if scope == "" {
		scope = ScopeAll
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var docCandidates []ranker.Candidate
	var docIndex map[uuid.UUID]*entity.Document
	if scope == ScopeDocuments || scope == ScopeAll {
		var err error
		docCandidates, docIndex, err = s.loadChunkCandidates(ctx, uow, req.ProposalId)
		if err != nil {
			return nil, err
		}
	}

	var kbCandidates []ranker.Candidate
	var kbIndex map[uuid.UUID]*entity.KnowledgeEntry
	if scope == ScopeKnowledge || scope == ScopeAll {
		var err error
		kbCandidates, kbIndex, err = s.loadKnowledgeCandidates(ctx, uow)
		if err != nil {
			return nil, err
		}
	}

	queryVec, err := s.embeddingProvider.Embed(ctx, req.Query)
	if err != nil {
		return nil, err
	}

	docType := ranker.MethodSemantic
	kbType := ranker.MethodSemantic
	var docHits, kbHits []ranker.Hit
	if queryVec != nil {
		if len(docCandidates) > 0 && !hasUsableVectors(docCandidates, queryVec.Model) {
			// Ingested but not yet vectorized corpus: keyword-rank it
			// instead of returning nothing.
			docType = ranker.MethodKeyword
			s.log.Info("search", "No embedded chunks for this query, using keyword ranking", map[string]interface{}{
				"query": req.Query,
			})
			docHits = ranker.RankByKeyword(req.Query, docCandidates, topK)
		} else {
			docHits, err = ranker.RankByVector(queryVec.Values, queryVec.Model, docCandidates, topK, minScore)
			if err != nil {
				return nil, err
			}
		}
		kbHits, err = ranker.RankByVector(queryVec.Values, queryVec.Model, kbCandidates, topK, minScore)
		if err != nil {
			return nil, err
		}
	} else {
		docType, kbType = ranker.MethodKeyword, ranker.MethodKeyword
		s.log.Info("search", "Embedding provider unavailable, using keyword ranking", map[string]interface{}{
			"query": req.Query,
		})
		docHits = ranker.RankByKeyword(req.Query, docCandidates, topK)
		kbHits = ranker.RankByKeyword(req.Query, kbCandidates, topK)
	}

	hits := s.merge(docHits, kbHits, docIndex, kbIndex, scope, topK, docType, kbType)

	searchType := ranker.MethodSemantic
	if queryVec == nil || (docType == ranker.MethodKeyword && len(kbHits) == 0) {
		searchType = ranker.MethodKeyword
	}

	return &dto.SearchResponse{
		Query:      req.Query,
		SearchType: searchType,
		Hits:       hits,
	}, nil
}

// hasUsableVectors reports whether any candidate carries a vector the
// ranker would actually score under the query's model tag.
func hasUsableVectors(candidates []ranker.Candidate, model string) bool {
	for _, c := range candidates {
		if c.Vector != nil && c.Model == model {
			return true
		}
	}
	return false
}

// loadChunkCandidates pulls chunks from non-excluded documents, scoped
// to a proposal when one is given. Chunks without vectors stay in the
// set so the keyword path can still see them; the vector ranker skips
// them on its own.
func (s *searchService) loadChunkCandidates(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	proposalId *uuid.UUID,
) ([]ranker.Candidate, map[uuid.UUID]*entity.Document, error) {
	docSpecs := []specification.Specification{specification.NotExcluded{}}
	if proposalId != nil {
		docSpecs = append(docSpecs, specification.ByProposalID{ProposalID: *proposalId})
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, docSpecs...)
	if err != nil {
		return nil, nil, err
	}
	if len(docs) == 0 {
		return nil, map[uuid.UUID]*entity.Document{}, nil
	}

	docIndex := make(map[uuid.UUID]*entity.Document, len(docs))
	docIds := make([]uuid.UUID, 0, len(docs))
	for _, doc := range docs {
		docIndex[doc.Id] = doc
		docIds = append(docIds, doc.Id)
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx, specification.ByDocumentIDs{DocumentIDs: docIds})
	if err != nil {
		return nil, nil, err
	}

	candidates := make([]ranker.Candidate, 0, len(chunks))
	for _, chunk := range chunks {
		candidates = append(candidates, ranker.Candidate{
			ID:      chunk.Id,
			OwnerID: chunk.DocumentId,
			Index:   chunk.ChunkIndex,
			Content: chunk.Content,
			Vector:  chunk.Embedding,
			Model:   chunk.EmbeddingModel,
		})
	}
	return candidates, docIndex, nil
}

func (s *searchService) loadKnowledgeCandidates(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
) ([]ranker.Candidate, map[uuid.UUID]*entity.KnowledgeEntry, error) {
	entries, err := uow.KnowledgeEntryRepository().FindAll(ctx, specification.ActiveOnly{})
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, map[uuid.UUID]*entity.KnowledgeEntry{}, nil
	}

	embeddings, err := uow.KnowledgeEmbeddingRepository().FindAll(ctx)
	if err != nil {
		return nil, nil, err
	}
	vectorByEntry := make(map[uuid.UUID]*entity.KnowledgeEmbedding, len(embeddings))
	for _, emb := range embeddings {
		vectorByEntry[emb.EntryId] = emb
	}

	entryIndex := make(map[uuid.UUID]*entity.KnowledgeEntry, len(entries))
	candidates := make([]ranker.Candidate, 0, len(entries))
	for _, entry := range entries {
		entryIndex[entry.Id] = entry
		cand := ranker.Candidate{
			ID:      entry.Id,
			OwnerID: entry.Id,
			Content: entry.Content,
		}
		if emb, ok := vectorByEntry[entry.Id]; ok {
			cand.Vector = emb.Embedding
			cand.Model = emb.Model
		}
		candidates = append(candidates, cand)
	}
	return candidates, entryIndex, nil
}

// merge interleaves both corpora by score. Knowledge hits are capped at
// half the requested budget so a dense knowledge base cannot crowd the
// proposal's own documents out of the window.
func (s *searchService) merge(
	docHits, kbHits []ranker.Hit,
	docIndex map[uuid.UUID]*entity.Document,
	kbIndex map[uuid.UUID]*entity.KnowledgeEntry,
	scope string,
	topK int,
	docType, kbType string,
) []dto.SearchHit {
	if scope == ScopeAll {
		kbQuota := topK / 2
		if kbQuota < 1 {
			kbQuota = 1
		}
		if len(kbHits) > kbQuota {
			kbHits = kbHits[:kbQuota]
		}
	}

	out := make([]dto.SearchHit, 0, len(docHits)+len(kbHits))
	for _, h := range docHits {
		hit := dto.SearchHit{
			Source:     "document",
			SearchType: docType,
			Score:      h.Score,
			Content:    h.Candidate.Content,
			DocumentId: &h.Candidate.OwnerID,
		}
		idx := h.Candidate.Index
		hit.ChunkIndex = &idx
		if doc, ok := docIndex[h.Candidate.OwnerID]; ok {
			hit.Filename = doc.Filename
		}
		out = append(out, hit)
	}
	for _, h := range kbHits {
		hit := dto.SearchHit{
			Source:     "knowledge",
			SearchType: kbType,
			Score:      h.Score,
			Content:    h.Candidate.Content,
			EntryId:    &h.Candidate.OwnerID,
		}
		if entry, ok := kbIndex[h.Candidate.OwnerID]; ok {
			hit.Title = entry.Title
			hit.EntryType = entry.EntryType
		}
		out = append(out, hit)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > topK {
		out = out[:topK]
	}
	return out
}
