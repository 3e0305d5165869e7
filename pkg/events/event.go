package events

import "github.com/google/uuid"

// Event is the outward-facing domain event contract published to the
// message bus for downstream consumers (report generation, audit).
type Event interface {
	EventType() string
	Payload() any
}

// DocumentIngested is emitted after a document and its chunk set have
// been committed.
type DocumentIngested struct {
	DocumentId uuid.UUID `json:"document_id"`
	Filename   string    `json:"filename"`
	ChunkCount int       `json:"chunk_count"`
}

func (e DocumentIngested) EventType() string { return "document.ingested" }
func (e DocumentIngested) Payload() any      { return e }

// DocumentVectorized is emitted once every chunk of a document carries
// an embedding.
type DocumentVectorized struct {
	DocumentId     uuid.UUID `json:"document_id"`
	ChunksEmbedded int       `json:"chunks_embedded"`
	Model          string    `json:"model"`
}

func (e DocumentVectorized) EventType() string { return "document.vectorized" }
func (e DocumentVectorized) Payload() any      { return e }
