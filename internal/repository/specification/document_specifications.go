package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByContentHash looks a document up by its content address; the
// ingestion dedup check.
type ByContentHash struct {
	Hash string
}

func (s ByContentHash) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("content_hash = ?", s.Hash)
}

type ByProposalID struct {
	ProposalID uuid.UUID
}

func (s ByProposalID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("proposal_id = ?", s.ProposalID)
}

type ByDocType struct {
	DocType string
}

func (s ByDocType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("doc_type = ?", s.DocType)
}

// NotVectorized selects documents still waiting for the deferred
// embedding pass.
type NotVectorized struct{}

func (s NotVectorized) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vectorized = false")
}

// NotExcluded filters out documents flagged to never feed embeddings
// or training sets.
type NotExcluded struct{}

func (s NotExcluded) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("excluded = false")
}
