package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestDocumentRequest struct {
	ProposalId    *uuid.UUID `json:"proposal_id"`
	OpportunityId *uuid.UUID `json:"opportunity_id"`
	Filename      string     `json:"filename" validate:"required,max=512"`
	DocType       string     `json:"doc_type" validate:"omitempty,max=64"`
	Content       string     `json:"content" validate:"required"`
	PageCount     int        `json:"page_count" validate:"omitempty,min=0"`
	Notes         *string    `json:"notes"`
}

type IngestDocumentResponse struct {
	Id         uuid.UUID  `json:"id"`
	Status     string     `json:"status"` // "ingested" or "duplicate"
	ExistingId *uuid.UUID `json:"existing_id,omitempty"`
	ChunkCount int        `json:"chunk_count"`
}

type ShowDocumentResponse struct {
	Id            uuid.UUID  `json:"id"`
	ProposalId    *uuid.UUID `json:"proposal_id,omitempty"`
	OpportunityId *uuid.UUID `json:"opportunity_id,omitempty"`
	Filename      string     `json:"filename"`
	DocType       string     `json:"doc_type"`
	ContentHash   string     `json:"content_hash"`
	PageCount     int        `json:"page_count"`
	ChunkCount    int        `json:"chunk_count"`
	Vectorized    bool       `json:"vectorized"`
	VectorizedAt  *time.Time `json:"vectorized_at,omitempty"`
	Excluded      bool       `json:"excluded"`
	Notes         *string    `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type DocumentListItem struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	DocType    string    `json:"doc_type"`
	ChunkCount int       `json:"chunk_count"`
	Vectorized bool      `json:"vectorized"`
	Excluded   bool      `json:"excluded"`
	CreatedAt  time.Time `json:"created_at"`
}

type SetDocumentExcludedRequest struct {
	Excluded bool `json:"excluded"`
}

// PublishVectorizeDocumentMessage is the internal queue payload that
// defers chunk embedding out of the ingest request path.
type PublishVectorizeDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
