package contract

import (
	"context"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/repository/specification"
)

type DocumentChunkRepository interface {
	// CreateBulk persists a document's full chunk set; callers run it
	// inside the same transaction as the document row so a partially
	// chunked document is never observable.
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.DocumentChunk, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// UpdateEmbedding is the idempotent vector upsert for one chunk:
	// it overwrites any prior vector and model tag.
	UpdateEmbedding(ctx context.Context, chunkId uuid.UUID, vector []float32, modelTag string) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
}
