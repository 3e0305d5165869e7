package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/pkg/serverutils"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/pkg/chunker"
	"rfx-retrieval-be/pkg/contenthash"
	"rfx-retrieval-be/pkg/events"
	pktNats "rfx-retrieval-be/pkg/nats"
)

const (
	IngestStatusIngested  = "ingested"
	IngestStatusDuplicate = "duplicate"
)

type IDocumentService interface {
	Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error)
	List(ctx context.Context, proposalId *uuid.UUID) ([]*dto.DocumentListItem, error)
	SetExcluded(ctx context.Context, id uuid.UUID, excluded bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	splitter         *chunker.Chunker
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	splitter *chunker.Chunker,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		splitter:         splitter,
		eventPublisher:   eventPublisher,
		log:              log,
	}
}

// Ingest stores a document and its chunk set in one transaction, then
// queues vectorization. A content hash already present in the corpus
// short-circuits to a duplicate response without touching storage.
func (s *documentService) Ingest(ctx context.Context, req *dto.IngestDocumentRequest) (*dto.IngestDocumentResponse, error) {
	hash := contenthash.Sum([]byte(req.Content))

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.DocumentRepository().FindOne(ctx, specification.ByContentHash{Hash: hash})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.log.Info("document", "Duplicate content detected, skipping ingest", map[string]interface{}{
			"filename":    req.Filename,
			"existing_id": existing.Id,
		})
		return &dto.IngestDocumentResponse{
			Id:         existing.Id,
			Status:     IngestStatusDuplicate,
			ExistingId: &existing.Id,
			ChunkCount: existing.ChunkCount,
		}, nil
	}

	chunks := s.splitter.Split(req.Content)
	now := time.Now()

	doc := entity.Document{
		Id:            uuid.New(),
		ProposalId:    req.ProposalId,
		OpportunityId: req.OpportunityId,
		Filename:      req.Filename,
		DocType:       req.DocType,
		ContentHash:   hash,
		Content:       req.Content,
		PageCount:     req.PageCount,
		ChunkCount:    len(chunks),
		Notes:         req.Notes,
		CreatedAt:     now,
	}
	// Nothing to embed means nothing to defer.
	if len(chunks) == 0 {
		doc.Vectorized = true
		doc.VectorizedAt = &now
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for _, c := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: doc.Id,
			ChunkIndex: c.Index,
			Content:    c.Content,
			WordCount:  c.WordCount,
			CreatedAt:  now,
		})
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.DocumentRepository().Create(ctx, &doc); err != nil {
		return nil, err
	}
	if len(chunkEntities) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
			return nil, err
		}
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if len(chunkEntities) > 0 {
		msgJson, err := json.Marshal(dto.PublishVectorizeDocumentMessage{DocumentId: doc.Id})
		if err != nil {
			return nil, err
		}
		if err := s.publisherService.Publish(ctx, msgJson); err != nil {
			return nil, err
		}
	}

	if s.eventPublisher != nil {
		evt := events.DocumentIngested{
			DocumentId: doc.Id,
			Filename:   doc.Filename,
			ChunkCount: doc.ChunkCount,
		}
		// Auxiliary event, failure must not fail the ingest.
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("document", "Failed to publish document.ingested event", map[string]interface{}{
				"document_id": doc.Id,
				"error":       err.Error(),
			})
		}
	}

	s.log.Info("document", "Document ingested", map[string]interface{}{
		"document_id": doc.Id,
		"filename":    doc.Filename,
		"chunk_count": doc.ChunkCount,
	})

	return &dto.IngestDocumentResponse{
		Id:         doc.Id,
		Status:     IngestStatusIngested,
		ChunkCount: doc.ChunkCount,
	}, nil
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.ShowDocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, serverutils.ErrNotFound
	}

	return &dto.ShowDocumentResponse{
		Id:            doc.Id,
		ProposalId:    doc.ProposalId,
		OpportunityId: doc.OpportunityId,
		Filename:      doc.Filename,
		DocType:       doc.DocType,
		ContentHash:   doc.ContentHash,
		PageCount:     doc.PageCount,
		ChunkCount:    doc.ChunkCount,
		Vectorized:    doc.Vectorized,
		VectorizedAt:  doc.VectorizedAt,
		Excluded:      doc.Excluded,
		Notes:         doc.Notes,
		CreatedAt:     doc.CreatedAt,
	}, nil
}

func (s *documentService) List(ctx context.Context, proposalId *uuid.UUID) ([]*dto.DocumentListItem, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	if proposalId != nil {
		specs = append(specs, specification.ByProposalID{ProposalID: *proposalId})
	}

	docs, err := uow.DocumentRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.DocumentListItem, 0, len(docs))
	for _, doc := range docs {
		items = append(items, &dto.DocumentListItem{
			Id:         doc.Id,
			Filename:   doc.Filename,
			DocType:    doc.DocType,
			ChunkCount: doc.ChunkCount,
			Vectorized: doc.Vectorized,
			Excluded:   doc.Excluded,
			CreatedAt:  doc.CreatedAt,
		})
	}
	return items, nil
}

// SetExcluded flips retrieval visibility without destroying the stored
// chunks, so re-inclusion needs no re-ingest.
func (s *documentService) SetExcluded(ctx context.Context, id uuid.UUID, excluded bool) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return serverutils.ErrNotFound
	}

	doc.Excluded = excluded
	return uow.DocumentRepository().Update(ctx, doc)
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if doc == nil {
		return serverutils.ErrNotFound
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, doc.Id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, doc.Id); err != nil {
		return err
	}
	return uow.Commit()
}
