package mapper

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/model"
	"rfx-retrieval-be/pkg/vectorcodec"
)

type KnowledgeMapper struct{}

func NewKnowledgeMapper() *KnowledgeMapper {
	return &KnowledgeMapper{}
}

func (m *KnowledgeMapper) ToEntryEntity(e *model.KnowledgeEntry) *entity.KnowledgeEntry {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	// A Tags column that does not decode is treated as untagged; tags
	// only filter listings, so the entry itself stays searchable.
	var tags []string
	if len(e.Tags) > 0 {
		_ = json.Unmarshal(e.Tags, &tags)
	}

	return &entity.KnowledgeEntry{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		EntryType: e.EntryType,
		Tags:      tags,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToEntryModel(e *entity.KnowledgeEntry) *model.KnowledgeEntry {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	var tags datatypes.JSON
	if len(e.Tags) > 0 {
		raw, err := json.Marshal(e.Tags)
		if err == nil {
			tags = raw
		}
	}

	return &model.KnowledgeEntry{
		Id:        e.Id,
		Title:     e.Title,
		Content:   e.Content,
		EntryType: e.EntryType,
		Tags:      tags,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: updatedAt,
	}
}

func (m *KnowledgeMapper) ToEmbeddingEntity(e *model.KnowledgeEmbedding) *entity.KnowledgeEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	var embedding []float32
	if len(e.Embedding) > 0 {
		if vec, err := vectorcodec.Decode(e.Embedding); err == nil {
			embedding = vec
		}
	}

	return &entity.KnowledgeEmbedding{
		Id:         e.Id,
		EntryId:    e.EntryId,
		Embedding:  embedding,
		Model:      e.Model,
		Dimensions: e.Dimensions,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *KnowledgeMapper) ToEmbeddingModel(e *entity.KnowledgeEmbedding) *model.KnowledgeEmbedding {
	if e == nil {
		return nil
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	return &model.KnowledgeEmbedding{
		Id:         e.Id,
		EntryId:    e.EntryId,
		Embedding:  vectorcodec.Encode(e.Embedding),
		Model:      e.Model,
		Dimensions: e.Dimensions,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  updatedAt,
	}
}

func (m *KnowledgeMapper) ToEntryEntities(entries []*model.KnowledgeEntry) []*entity.KnowledgeEntry {
	entities := make([]*entity.KnowledgeEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntryEntity(e)
	}
	return entities
}

func (m *KnowledgeMapper) ToEmbeddingEntities(embeddings []*model.KnowledgeEmbedding) []*entity.KnowledgeEmbedding {
	entities := make([]*entity.KnowledgeEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEmbeddingEntity(e)
	}
	return entities
}
