package entity

import (
	"time"

	"github.com/google/uuid"
)

type KnowledgeEntry struct {
	Id        uuid.UUID
	Title     string
	Content   string
	EntryType string
	Tags      []string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt *time.Time
}

type KnowledgeEmbedding struct {
	Id         uuid.UUID
	EntryId    uuid.UUID
	Embedding  []float32
	Model      string
	Dimensions int
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
