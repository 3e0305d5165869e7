package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"

	"rfx-retrieval-be/internal/dto"
	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/pkg/logger"
	"rfx-retrieval-be/internal/repository/specification"
	"rfx-retrieval-be/internal/repository/unitofwork"
	"rfx-retrieval-be/pkg/embedding"
	"rfx-retrieval-be/pkg/events"
	pktNats "rfx-retrieval-be/pkg/nats"
)

type IVectorizerService interface {
	Consume(ctx context.Context) error
	VectorizeDocument(ctx context.Context, documentId uuid.UUID) (int, error)
	VectorizePending(ctx context.Context) (int, error)
	VectorizeKnowledgeEntry(ctx context.Context, entryId uuid.UUID) error
}

type vectorizerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
}

func NewVectorizerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IVectorizerService {
	return &vectorizerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		eventPublisher:    eventPublisher,
		log:               log,
	}
}

func (s *vectorizerService) Consume(ctx context.Context) error {
	messages, err := s.pubSub.Subscribe(ctx, s.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			s.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (s *vectorizerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishVectorizeDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		s.log.Error("vectorizer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	embedded, err := s.VectorizeDocument(ctx, payload.DocumentId)
	if err != nil {
		s.log.Error("vectorizer", "Failed to vectorize document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}

	s.log.Info("vectorizer", "Document processed", map[string]interface{}{
		"document_id":     payload.DocumentId,
		"chunks_embedded": embedded,
	})
	msg.Ack()
}

// VectorizeDocument embeds every chunk of the document that does not
// yet carry a vector. When the embedding provider is unavailable the
// document is left non-vectorized and no error is raised; a later pass
// picks it up. Returns the number of chunks embedded in this pass.
func (s *vectorizerService) VectorizeDocument(ctx context.Context, documentId uuid.UUID) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: documentId})
	if err != nil {
		return 0, err
	}
	if doc == nil {
		s.log.Warn("vectorizer", "Document not found, skipping", map[string]interface{}{
			"document_id": documentId,
		})
		return 0, nil
	}
	if doc.Excluded {
		s.log.Info("vectorizer", "Document excluded from retrieval, skipping", map[string]interface{}{
			"document_id": documentId,
		})
		return 0, nil
	}

	chunks, err := uow.DocumentChunkRepository().FindAll(ctx,
		specification.ByDocumentID{DocumentID: doc.Id},
		specification.OrderByChunkIndex{},
	)
	if err != nil {
		return 0, err
	}

	embedded := 0
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			return embedded, err
		}
		if chunk.Embedding != nil {
			continue
		}

		res, err := s.embeddingProvider.Embed(ctx, chunk.Content)
		if err != nil {
			return embedded, err
		}
		if res == nil {
			// Provider unavailable: leave remaining chunks bare.
			s.log.Warn("vectorizer", "Embedding provider unavailable, deferring document", map[string]interface{}{
				"document_id": doc.Id,
				"chunk_index": chunk.ChunkIndex,
			})
			return embedded, nil
		}

		if err := uow.DocumentChunkRepository().UpdateEmbedding(ctx, chunk.Id, res.Values, res.Model); err != nil {
			return embedded, err
		}
		embedded++
	}

	if err := uow.DocumentRepository().MarkVectorized(ctx, doc.Id, time.Now()); err != nil {
		return embedded, err
	}

	if s.eventPublisher != nil && embedded > 0 {
		evt := events.DocumentVectorized{
			DocumentId:     doc.Id,
			ChunksEmbedded: embedded,
			Model:          s.embeddingProvider.Model(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("vectorizer", "Failed to publish document.vectorized event", map[string]interface{}{
				"document_id": doc.Id,
				"error":       err.Error(),
			})
		}
	}

	return embedded, nil
}

// VectorizePending sweeps documents still waiting for vectors, for the
// maintenance CLI and for recovery after provider downtime.
func (s *vectorizerService) VectorizePending(ctx context.Context) (int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(ctx,
		specification.NotVectorized{},
		specification.NotExcluded{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return 0, err
	}

	total := 0
	for _, doc := range docs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.VectorizeDocument(ctx, doc.Id)
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// VectorizeKnowledgeEntry refreshes the single vector kept per entry.
// Title is prepended to the content so short titled entries still rank
// on their subject.
func (s *vectorizerService) VectorizeKnowledgeEntry(ctx context.Context, entryId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	entry, err := uow.KnowledgeEntryRepository().FindOne(ctx, specification.ByID{ID: entryId})
	if err != nil {
		return err
	}
	if entry == nil {
		s.log.Warn("vectorizer", "Knowledge entry not found, skipping", map[string]interface{}{
			"entry_id": entryId,
		})
		return nil
	}

	res, err := s.embeddingProvider.Embed(ctx, entry.Title+"\n\n"+entry.Content)
	if err != nil {
		return err
	}
	if res == nil {
		s.log.Warn("vectorizer", "Embedding provider unavailable, knowledge entry left bare", map[string]interface{}{
			"entry_id": entryId,
		})
		return nil
	}

	return uow.KnowledgeEmbeddingRepository().Upsert(ctx, &entity.KnowledgeEmbedding{
		Id:         uuid.New(),
		EntryId:    entry.Id,
		Embedding:  res.Values,
		Model:      res.Model,
		Dimensions: len(res.Values),
		CreatedAt:  time.Now(),
	})
}
