package dto

import (
	"time"

	"github.com/google/uuid"

	"rfx-retrieval-be/pkg/research"
)

type ResearchRequest struct {
	Query        string     `json:"query" validate:"required"`
	Category     string     `json:"category" validate:"omitempty,max=64"`
	ProposalId   *uuid.UUID `json:"proposal_id"`
	ForceRefresh bool       `json:"force_refresh"`
}

type ResearchResponse struct {
	Query     string            `json:"query"`
	Category  string            `json:"category"`
	Cached    bool              `json:"cached"`
	ExpiresAt time.Time         `json:"expires_at"`
	Results   []research.Record `json:"results"`
}

type DeepResearchRequest struct {
	Topic      string     `json:"topic" validate:"required"`
	ProposalId *uuid.UUID `json:"proposal_id"`
}

type DeepResearchSection struct {
	Category string            `json:"category"`
	Source   string            `json:"source"`
	Cached   bool              `json:"cached"`
	Results  []research.Record `json:"results"`
}

type DeepResearchResponse struct {
	Topic    string                `json:"topic"`
	Sections []DeepResearchSection `json:"sections"`
}
