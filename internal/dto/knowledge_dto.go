package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateKnowledgeEntryRequest struct {
	Title     string   `json:"title" validate:"required,max=512"`
	Content   string   `json:"content" validate:"required"`
	EntryType string   `json:"entry_type" validate:"required,max=64"`
	Tags      []string `json:"tags" validate:"omitempty,dive,max=64"`
}

type CreateKnowledgeEntryResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateKnowledgeEntryRequest struct {
	Id        uuid.UUID `json:"-"`
	Title     string    `json:"title" validate:"required,max=512"`
	Content   string    `json:"content" validate:"required"`
	EntryType string    `json:"entry_type" validate:"required,max=64"`
	Tags      []string  `json:"tags" validate:"omitempty,dive,max=64"`
	IsActive  *bool     `json:"is_active"`
}

type KnowledgeEntryResponse struct {
	Id         uuid.UUID  `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	EntryType  string     `json:"entry_type"`
	Tags       []string   `json:"tags"`
	IsActive   bool       `json:"is_active"`
	Vectorized bool       `json:"vectorized"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}
