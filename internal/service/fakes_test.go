package service

// In-memory repository fakes. They interpret the handful of
// specifications the services actually use, which keeps service tests
// independent of a running database.

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/repository/contract"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/pkg/embedding"
	"rfx-retrieval-be/pkg/research"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeUnitOfWork

type fakeUnitOfWork struct {
	docs      *fakeDocumentRepo
	chunks    *fakeChunkRepo
	kbEntries *fakeKnowledgeEntryRepo
	kbVectors *fakeKnowledgeEmbeddingRepo
	cache     *fakeResearchCacheRepo
}

func newFakeUnitOfWork() *fakeUnitOfWork {
	return &fakeUnitOfWork{
		docs:      &fakeDocumentRepo{byId: map[uuid.UUID]*entity.Document{}},
		chunks:    &fakeChunkRepo{},
		kbEntries: &fakeKnowledgeEntryRepo{byId: map[uuid.UUID]*entity.KnowledgeEntry{}},
		kbVectors: &fakeKnowledgeEmbeddingRepo{byEntry: map[uuid.UUID]*entity.KnowledgeEmbedding{}},
		cache:     &fakeResearchCacheRepo{byKey: map[string]*entity.ResearchCacheEntry{}},
	}
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (u *fakeUnitOfWork) Commit() error                   { return nil }
func (u *fakeUnitOfWork) Rollback() error                 { return nil }

func (u *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository { return u.docs }
func (u *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return u.chunks
}
func (u *fakeUnitOfWork) KnowledgeEntryRepository() contract.KnowledgeEntryRepository {
	return u.kbEntries
}
func (u *fakeUnitOfWork) KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository {
	return u.kbVectors
}
func (u *fakeUnitOfWork) ResearchCacheRepository() contract.ResearchCacheRepository {
	return u.cache
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork { return f.uow }

// fakeDocumentRepo

type fakeDocumentRepo struct {
	mu   sync.Mutex
	byId map[uuid.UUID]*entity.Document
}

func (r *fakeDocumentRepo) matches(doc *entity.Document, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if doc.Id != s.ID {
				return false
			}
		case specification.ByContentHash:
			if doc.ContentHash != s.Hash {
				return false
			}
		case specification.ByProposalID:
			if doc.ProposalId == nil || *doc.ProposalId != s.ProposalID {
				return false
			}
		case specification.NotVectorized:
			if doc.Vectorized {
				return false
			}
		case specification.NotExcluded:
			if doc.Excluded {
				return false
			}
		}
	}
	return true
}

func (r *fakeDocumentRepo) Create(ctx context.Context, doc *entity.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *doc
	r.byId[doc.Id] = &cp
	return nil
}

func (r *fakeDocumentRepo) Update(ctx context.Context, doc *entity.Document) error {
	return r.Create(ctx, doc)
}

func (r *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byId, id)
	return nil
}

func (r *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, doc := range r.byId {
		if r.matches(doc, specs) {
			cp := *doc
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Document
	for _, doc := range r.byId {
		if r.matches(doc, specs) {
			cp := *doc
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	docs, _ := r.FindAll(ctx, specs...)
	return int64(len(docs)), nil
}

func (r *fakeDocumentRepo) MarkVectorized(ctx context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc, ok := r.byId[id]; ok {
		doc.Vectorized = true
		doc.VectorizedAt = &at
	}
	return nil
}

// fakeChunkRepo

type fakeChunkRepo struct {
	mu     sync.Mutex
	chunks []*entity.DocumentChunk
}

func (r *fakeChunkRepo) matches(chunk *entity.DocumentChunk, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if chunk.Id != s.ID {
				return false
			}
		case specification.ByDocumentID:
			if chunk.DocumentId != s.DocumentID {
				return false
			}
		case specification.ByDocumentIDs:
			found := false
			for _, id := range s.DocumentIDs {
				if chunk.DocumentId == id {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case specification.WithEmbedding:
			if chunk.Embedding == nil {
				return false
			}
		case specification.WithoutEmbedding:
			if chunk.Embedding != nil {
				return false
			}
		}
	}
	return true
}

func (r *fakeChunkRepo) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range chunks {
		cp := *c
		r.chunks = append(r.chunks, &cp)
	}
	return nil
}

func (r *fakeChunkRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chunks {
		if r.matches(c, specs) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeChunkRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.DocumentChunk
	for _, c := range r.chunks {
		if r.matches(c, specs) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeChunkRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	chunks, _ := r.FindAll(ctx, specs...)
	return int64(len(chunks)), nil
}

func (r *fakeChunkRepo) UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, vector []float32, modelTag string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.chunks {
		if c.Id == chunkId {
			c.Embedding = vector
			c.EmbeddingModel = modelTag
		}
	}
	return nil
}

func (r *fakeChunkRepo) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.chunks[:0]
	for _, c := range r.chunks {
		if c.DocumentId != documentId {
			kept = append(kept, c)
		}
	}
	r.chunks = kept
	return nil
}

// fakeKnowledgeEntryRepo

type fakeKnowledgeEntryRepo struct {
	mu   sync.Mutex
	byId map[uuid.UUID]*entity.KnowledgeEntry
}

func (r *fakeKnowledgeEntryRepo) matches(entry *entity.KnowledgeEntry, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if entry.Id != s.ID {
				return false
			}
		case specification.ActiveOnly:
			if !entry.IsActive {
				return false
			}
		case specification.ByEntryTypes:
			found := false
			for _, t := range s.EntryTypes {
				if entry.EntryType == t {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

func (r *fakeKnowledgeEntryRepo) Create(ctx context.Context, entry *entity.KnowledgeEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.byId[entry.Id] = &cp
	return nil
}

func (r *fakeKnowledgeEntryRepo) Update(ctx context.Context, entry *entity.KnowledgeEntry) error {
	return r.Create(ctx, entry)
}

func (r *fakeKnowledgeEntryRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byId {
		if r.matches(e, specs) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeKnowledgeEntryRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.KnowledgeEntry
	for _, e := range r.byId {
		if r.matches(e, specs) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeKnowledgeEntryRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	entries, _ := r.FindAll(ctx, specs...)
	return int64(len(entries)), nil
}

// fakeKnowledgeEmbeddingRepo

type fakeKnowledgeEmbeddingRepo struct {
	mu      sync.Mutex
	byEntry map[uuid.UUID]*entity.KnowledgeEmbedding
}

func (r *fakeKnowledgeEmbeddingRepo) Upsert(ctx context.Context, emb *entity.KnowledgeEmbedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *emb
	r.byEntry[emb.EntryId] = &cp
	return nil
}

func (r *fakeKnowledgeEmbeddingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEmbedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, emb := range r.byEntry {
		ok := true
		for _, spec := range specs {
			if s, is := spec.(specification.ByEntryID); is && emb.EntryId != s.EntryID {
				ok = false
			}
		}
		if ok {
			cp := *emb
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeKnowledgeEmbeddingRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEmbedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.KnowledgeEmbedding
	for _, emb := range r.byEntry {
		cp := *emb
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeKnowledgeEmbeddingRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	embs, _ := r.FindAll(ctx, specs...)
	return int64(len(embs)), nil
}

func (r *fakeKnowledgeEmbeddingRepo) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byEntry, entryId)
	return nil
}

// fakeResearchCacheRepo

type fakeResearchCacheRepo struct {
	mu    sync.Mutex
	byKey map[string]*entity.ResearchCacheEntry
}

func (r *fakeResearchCacheRepo) matches(entry *entity.ResearchCacheEntry, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByQueryKey:
			if entry.QueryKey != s.QueryKey {
				return false
			}
		case specification.ByCategory:
			if entry.Category != s.Category {
				return false
			}
		case specification.NotExpiredAt:
			if !entry.ExpiresAt.After(s.Now) {
				return false
			}
		case specification.ExpiredAt:
			if entry.ExpiresAt.After(s.Now) {
				return false
			}
		case specification.FilterBy:
			if s.Field == "proposal_id" {
				id, ok := s.Value.(uuid.UUID)
				if !ok || entry.ProposalId == nil || *entry.ProposalId != id {
					return false
				}
			}
		}
	}
	return true
}

func (r *fakeResearchCacheRepo) Replace(ctx context.Context, entry *entity.ResearchCacheEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *entry
	r.byKey[entry.QueryKey] = &cp
	return nil
}

func (r *fakeResearchCacheRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.byKey {
		if r.matches(e, specs) {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeResearchCacheRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchCacheEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.ResearchCacheEntry
	for _, e := range r.byKey {
		if r.matches(e, specs) {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeResearchCacheRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	entries, _ := r.FindAll(ctx, specs...)
	return int64(len(entries)), nil
}

func (r *fakeResearchCacheRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for key, e := range r.byKey {
		if !e.ExpiresAt.After(now) {
			delete(r.byKey, key)
			deleted++
		}
	}
	return deleted, nil
}

// fake embedding provider

type fakeEmbeddingProvider struct {
	mu      sync.Mutex
	model   string
	vectors map[string][]float32 // exact text -> vector
	calls   int
}

func newFakeEmbeddingProvider(model string) *fakeEmbeddingProvider {
	return &fakeEmbeddingProvider{model: model, vectors: map[string][]float32{}}
}

func (p *fakeEmbeddingProvider) set(text string, vec []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vectors[text] = vec
}

func (p *fakeEmbeddingProvider) Embed(ctx context.Context, text string) (*embedding.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	vec, ok := p.vectors[text]
	if !ok {
		// Deterministic fallback so any text embeds to something.
		vec = []float32{1, 0, 0}
	}
	return &embedding.Result{Values: vec, Model: p.model}, nil
}

func (p *fakeEmbeddingProvider) Model() string  { return p.model }
func (p *fakeEmbeddingProvider) Dimension() int { return 3 }

// fakePublisher

type fakePublisher struct {
	mu       sync.Mutex
	payloads [][]byte
}

func (p *fakePublisher) Publish(ctx context.Context, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.payloads)
}

// fakeResearchBackend

type fakeResearchBackend struct {
	mu      sync.Mutex
	name    string
	records []research.Record
	err     error
	calls   int
}

func (b *fakeResearchBackend) Name() string { return b.name }

func (b *fakeResearchBackend) Search(ctx context.Context, query string, limit int) ([]research.Record, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.err != nil {
		return nil, b.err
	}
	return b.records, nil
}

func (b *fakeResearchBackend) callCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}
