package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// ByDocumentIDs scopes a chunk scan to a caller-supplied document set
// (e.g. the documents of one proposal) as a pre-filter, so the ranker
// never scans the full corpus for scoped searches.
type ByDocumentIDs struct {
	DocumentIDs []uuid.UUID
}

func (s ByDocumentIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id IN ?", s.DocumentIDs)
}

// WithEmbedding selects only vectorized chunks.
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

// WithoutEmbedding selects chunks the indexing pass still has to embed.
type WithoutEmbedding struct{}

func (s WithoutEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NULL")
}

// OrderByChunkIndex keeps chunk ordinals in document order.
type OrderByChunkIndex struct{}

func (s OrderByChunkIndex) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("chunk_index ASC")
}
