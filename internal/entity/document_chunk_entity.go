package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentChunk struct {
	Id         uuid.UUID
	DocumentId uuid.UUID
	ChunkIndex int
	Content    string
	WordCount  int
	// Decoded embedding vector; nil until vectorized.
	Embedding      []float32
	EmbeddingModel string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
