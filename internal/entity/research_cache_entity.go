package entity

import (
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/pkg/research"
)

type ResearchCacheEntry struct {
	Id          uuid.UUID
	ProposalId  *uuid.UUID
	Query       string
	QueryKey    string
	Category    string
	Results     []research.Record
	SourceCount int
	ExpiresAt   time.Time
	CreatedAt   time.Time
}

// Live reports whether the entry is still fresh at the given instant.
func (e *ResearchCacheEntry) Live(now time.Time) bool {
	return e.ExpiresAt.After(now)
}
