package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/pkg/serverutils"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
)

type IKnowledgeService interface {
	Create(ctx context.Context, req *dto.CreateKnowledgeEntryRequest) (*dto.CreateKnowledgeEntryResponse, error)
	Update(ctx context.Context, req *dto.UpdateKnowledgeEntryRequest) error
	Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeEntryResponse, error)
	List(ctx context.Context, entryTypes []string) ([]*dto.KnowledgeEntryResponse, error)
}

type knowledgeService struct {
	uowFactory unitofwork.RepositoryFactory
	vectorizer IVectorizerService
	log        logger.ILogger
}

func NewKnowledgeService(
	uowFactory unitofwork.RepositoryFactory,
	vectorizer IVectorizerService,
	log logger.ILogger,
) IKnowledgeService {
	return &knowledgeService{
		uowFactory: uowFactory,
		vectorizer: vectorizer,
		log:        log,
	}
}

func (s *knowledgeService) Create(ctx context.Context, req *dto.CreateKnowledgeEntryRequest) (*dto.CreateKnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry := entity.KnowledgeEntry{
		Id:        uuid.New(),
		Title:     req.Title,
		Content:   req.Content,
		EntryType: req.EntryType,
		Tags:      req.Tags,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	if err := uow.KnowledgeEntryRepository().Create(ctx, &entry); err != nil {
		return nil, err
	}

	// Vector is auxiliary; the entry is usable via keyword ranking
	// until a later vectorization pass succeeds.
	if err := s.vectorizer.VectorizeKnowledgeEntry(ctx, entry.Id); err != nil {
		s.log.Warn("knowledge", "Failed to vectorize knowledge entry", map[string]interface{}{
			"entry_id": entry.Id,
			"error":    err.Error(),
		})
	}

	return &dto.CreateKnowledgeEntryResponse{Id: entry.Id}, nil
}

func (s *knowledgeService) Update(ctx context.Context, req *dto.UpdateKnowledgeEntryRequest) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeEntryRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return err
	}
	if entry == nil {
		return serverutils.ErrNotFound
	}

	contentChanged := entry.Title != req.Title || entry.Content != req.Content

	entry.Title = req.Title
	entry.Content = req.Content
	entry.EntryType = req.EntryType
	entry.Tags = req.Tags
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := uow.KnowledgeEntryRepository().Update(ctx, entry); err != nil {
		return err
	}

	if contentChanged {
		if err := s.vectorizer.VectorizeKnowledgeEntry(ctx, entry.Id); err != nil {
			s.log.Warn("knowledge", "Failed to re-vectorize knowledge entry", map[string]interface{}{
				"entry_id": entry.Id,
				"error":    err.Error(),
			})
		}
	}
	return nil
}

func (s *knowledgeService) Show(ctx context.Context, id uuid.UUID) (*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeEntryRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, serverutils.ErrNotFound
	}

	emb, err := uow.KnowledgeEmbeddingRepository().FindOne(ctx, specification.ByEntryID{EntryID: entry.Id})
	if err != nil {
		return nil, err
	}

	res := s.toResponse(entry)
	res.Vectorized = emb != nil
	return res, nil
}

func (s *knowledgeService) List(ctx context.Context, entryTypes []string) ([]*dto.KnowledgeEntryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.ActiveOnly{},
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if len(entryTypes) > 0 {
		specs = append(specs, specification.ByEntryTypes{EntryTypes: entryTypes})
	}

	entries, err := uow.KnowledgeEntryRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	embeddings, err := uow.KnowledgeEmbeddingRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	vectorized := make(map[uuid.UUID]bool, len(embeddings))
	for _, emb := range embeddings {
		vectorized[emb.EntryId] = true
	}

	out := make([]*dto.KnowledgeEntryResponse, 0, len(entries))
	for _, entry := range entries {
		res := s.toResponse(entry)
		res.Vectorized = vectorized[entry.Id]
		out = append(out, res)
	}
	return out, nil
}

func (s *knowledgeService) toResponse(entry *entity.KnowledgeEntry) *dto.KnowledgeEntryResponse {
	return &dto.KnowledgeEntryResponse{
		Id:        entry.Id,
		Title:     entry.Title,
		Content:   entry.Content,
		EntryType: entry.EntryType,
		Tags:      entry.Tags,
		IsActive:  entry.IsActive,
		CreatedAt: entry.CreatedAt,
		UpdatedAt: entry.UpdatedAt,
	}
}
