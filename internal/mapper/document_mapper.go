package mapper

import (
	"time"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	return &entity.Document{
		Id:            d.Id,
		ProposalId:    d.ProposalId,
		OpportunityId: d.OpportunityId,
		Filename:      d.Filename,
		DocType:       d.DocType,
		ContentHash:   d.ContentHash,
		Content:       d.Content,
		PageCount:     d.PageCount,
		ChunkCount:    d.ChunkCount,
		Vectorized:    d.Vectorized,
		VectorizedAt:  d.VectorizedAt,
		Excluded:      d.Excluded,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	return &model.Document{
		Id:            d.Id,
		ProposalId:    d.ProposalId,
		OpportunityId: d.OpportunityId,
		Filename:      d.Filename,
		DocType:       d.DocType,
		ContentHash:   d.ContentHash,
		Content:       d.Content,
		PageCount:     d.PageCount,
		ChunkCount:    d.ChunkCount,
		Vectorized:    d.Vectorized,
		VectorizedAt:  d.VectorizedAt,
		Excluded:      d.Excluded,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     updatedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
