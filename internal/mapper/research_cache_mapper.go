package mapper

import (
	"encoding/json"

	"gorm.io/datatypes"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/model"
	"rfx-retrieval-be/pkg/research"
)

type ResearchCacheMapper struct{}

func NewResearchCacheMapper() *ResearchCacheMapper {
	return &ResearchCacheMapper{}
}

func (m *ResearchCacheMapper) ToEntity(e *model.ResearchCacheEntry) *entity.ResearchCacheEntry {
	if e == nil {
		return nil
	}

	// A Results column that does not decode is treated as an empty
	// fetch; the entry still expires on schedule and the next lookup
	// refetches from the backend.
	var results []research.Record
	if len(e.Results) > 0 {
		_ = json.Unmarshal(e.Results, &results)
	}

	return &entity.ResearchCacheEntry{
		Id:          e.Id,
		ProposalId:  e.ProposalId,
		Query:       e.Query,
		QueryKey:    e.QueryKey,
		Category:    e.Category,
		Results:     results,
		SourceCount: e.SourceCount,
		ExpiresAt:   e.ExpiresAt,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ResearchCacheMapper) ToModel(e *entity.ResearchCacheEntry) *model.ResearchCacheEntry {
	if e == nil {
		return nil
	}

	var results datatypes.JSON
	if raw, err := json.Marshal(e.Results); err == nil {
		results = raw
	}

	return &model.ResearchCacheEntry{
		Id:          e.Id,
		ProposalId:  e.ProposalId,
		Query:       e.Query,
		QueryKey:    e.QueryKey,
		Category:    e.Category,
		Results:     results,
		SourceCount: e.SourceCount,
		ExpiresAt:   e.ExpiresAt,
		CreatedAt:   e.CreatedAt,
	}
}

func (m *ResearchCacheMapper) ToEntities(entries []*model.ResearchCacheEntry) []*entity.ResearchCacheEntry {
	entities := make([]*entity.ResearchCacheEntry, len(entries))
	for i, e := range entries {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
