package dto

import "github.com/google/uuid"

type SearchRequest struct {
	Query      string     `json:"query" validate:"required"`
	ProposalId *uuid.UUID `json:"proposal_id"`
	Scope      string     `json:"scope" validate:"omitempty,oneof=documents knowledge all"`
	TopK       int        `json:"top_k" validate:"omitempty,min=1,max=50"`
	MinScore   *float64   `json:"min_score" validate:"omitempty,min=0,max=1"`
}

type SearchHit struct {
	Source     string     `json:"source"`      // "document" or "knowledge"
	SearchType string     `json:"search_type"` // "semantic" or "keyword"
	Score      float64    `json:"score"`
	Content    string     `json:"content"`
	DocumentId *uuid.UUID `json:"document_id,omitempty"`
	ChunkIndex *int       `json:"chunk_index,omitempty"`
	Filename   string     `json:"filename,omitempty"`
	EntryId    *uuid.UUID `json:"entry_id,omitempty"`
	Title      string     `json:"title,omitempty"`
	EntryType  string     `json:"entry_type,omitempty"`
}

type SearchResponse struct {
	Query      string      `json:"query"`
	SearchType string      `json:"search_type"`
	Hits       []SearchHit `json:"hits"`
}
