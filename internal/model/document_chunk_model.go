package model

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_chunk_doc_ordinal"`
	ChunkIndex int       `gorm:"not null;uniqueIndex:idx_chunk_doc_ordinal"` // 0-based, contiguous per document
	Content    string    `gorm:"type:text;not null"`
	WordCount  int       `gorm:"default:0"`
	// Raw little-endian float32 buffer, dimension * 4 bytes. Nil until
	// the deferred vectorization pass runs.
	Embedding      []byte    `gorm:"type:bytea"`
	EmbeddingModel string    `gorm:"type:varchar(128)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (DocumentChunk) TableName() string {
	return "rfx_document_chunks"
}
