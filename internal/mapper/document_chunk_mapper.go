package mapper

import (
	"time"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/model"
	"rfx-retrieval-be/pkg/vectorcodec"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	// A buffer that does not decode is treated as not embedded; the
	// ranker excludes vectorless candidates instead of scoring garbage.
	var embedding []float32
	if len(c.Embedding) > 0 {
		if vec, err := vectorcodec.Decode(c.Embedding); err == nil {
			embedding = vec
		}
	}

	return &entity.DocumentChunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		ChunkIndex:     c.ChunkIndex,
		Content:        c.Content,
		WordCount:      c.WordCount,
		Embedding:      embedding,
		EmbeddingModel: c.EmbeddingModel,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	var embedding []byte
	if c.Embedding != nil {
		embedding = vectorcodec.Encode(c.Embedding)
	}

	return &model.DocumentChunk{
		Id:             c.Id,
		DocumentId:     c.DocumentId,
		ChunkIndex:     c.ChunkIndex,
		Content:        c.Content,
		WordCount:      c.WordCount,
		Embedding:      embedding,
		EmbeddingModel: c.EmbeddingModel,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
