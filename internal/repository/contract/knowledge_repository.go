package contract

import (
	"context"

	"github.com/google/uuid"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/repository/specification"
)

// KnowledgeEntryRepository reads the curated knowledge corpus. Entries
// are owned by the curation side; this engine only creates them through
// the seeding surface and maintains their embeddings.
type KnowledgeEntryRepository interface {
	Create(ctx context.Context, entry *entity.KnowledgeEntry) error
	Update(ctx context.Context, entry *entity.KnowledgeEntry) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEntry, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEntry, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type KnowledgeEmbeddingRepository interface {
	// Upsert keeps at most one live vector per entry, replacing any
	// existing one in place.
	Upsert(ctx context.Context, embedding *entity.KnowledgeEmbedding) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEmbedding, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error
}
