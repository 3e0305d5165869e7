package implementation

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/mapper"
	"rfx-retrieval-be/internal/model"
	"rfx-retrieval-be/internal/repository/contract"
	"rfx-retrieval-be/internal/repository/specification"
)

type ResearchCacheRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ResearchCacheMapper
}

func NewResearchCacheRepository(db *gorm.DB) contract.ResearchCacheRepository {
	return &ResearchCacheRepositoryImpl{
		db:     db,
		mapper: mapper.NewResearchCacheMapper(),
	}
}

func (r *ResearchCacheRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Replace upserts on the query-key unique index so a refresh overwrites
// the prior row wholesale instead of accumulating stale entries.
func (r *ResearchCacheRepositoryImpl) Replace(ctx context.Context, entry *entity.ResearchCacheEntry) error {
	m := r.mapper.ToModel(entry)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "query_key"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"proposal_id", "query", "category", "results",
			"source_count", "expires_at", "created_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ResearchCacheRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ResearchCacheEntry, error) {
	var m model.ResearchCacheEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ResearchCacheRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ResearchCacheEntry, error) {
	var models []*model.ResearchCacheEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ResearchCacheRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ResearchCacheEntry{}).Count(&count).Error
	return count, err
}

// DeleteExpired compares against the rows' current expires_at values,
// so an entry refreshed after the maintenance pass started survives.
func (r *ResearchCacheRepositoryImpl) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at <= ?", now).Delete(&model.ResearchCacheEntry{})
	return result.RowsAffected, result.Error
}
