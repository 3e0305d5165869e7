package unitofwork

import (
	"context"

	"rfx-retrieval-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one logical transaction so
// mutations (document + chunk insert, vector upsert, cache refresh)
// are never visible half-done.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
	KnowledgeEntryRepository() contract.KnowledgeEntryRepository
	KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository
	ResearchCacheRepository() contract.ResearchCacheRepository
}
