package contract

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/repository/specification"
)

type DocumentRepository interface {
	Create(ctx context.Context, doc *entity.Document) error
	Update(ctx context.Context, doc *entity.Document) error
	// Delete is the explicit purge; the owning service removes the
	// chunk set in the same transaction.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// MarkVectorized flips the vectorization flag and timestamp once
	// every chunk carries a vector.
	MarkVectorized(ctx context.Context, id uuid.UUID, at time.Time) error
}
