package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID
	ProposalId    *uuid.UUID
	OpportunityId *uuid.UUID
	Filename      string
	DocType       string
	ContentHash   string
	Content       string
	PageCount     int
	ChunkCount    int
	Vectorized    bool
	VectorizedAt  *time.Time
	Excluded      bool
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
