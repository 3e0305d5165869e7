package implementation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"rfx-retrieval-be/internal/entity"
	"rfx-retrieval-be/internal/mapper"
	"rfx-retrieval-be/internal/model"
	"rfx-retrieval-be/internal/repository/contract"
	"rfx-retrieval-be/internal/repository/specification"
)

type KnowledgeEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeEntryRepository(db *gorm.DB) contract.KnowledgeEntryRepository {
	return &KnowledgeEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *KnowledgeEntryRepositoryImpl) Create(ctx context.Context, entry *entity.KnowledgeEntry) error {
	m := r.mapper.ToEntryModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntryEntity(m)
	return nil
}

func (r *KnowledgeEntryRepositoryImpl) Update(ctx context.Context, entry *entity.KnowledgeEntry) error {
	m := r.mapper.ToEntryModel(entry)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntryEntity(m)
	return nil
}

func (r *KnowledgeEntryRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEntry, error) {
	var m model.KnowledgeEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntryEntity(&m), nil
}

func (r *KnowledgeEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEntry, error) {
	var models []*model.KnowledgeEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntryEntities(models), nil
}

func (r *KnowledgeEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeEntry{}).Count(&count).Error
	return count, err
}

type KnowledgeEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.KnowledgeMapper
}

func NewKnowledgeEmbeddingRepository(db *gorm.DB) contract.KnowledgeEmbeddingRepository {
	return &KnowledgeEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Upsert replaces the entry's vector in place; the unique index on
// entry_id enforces the one-live-vector invariant.
func (r *KnowledgeEmbeddingRepositoryImpl) Upsert(ctx context.Context, embedding *entity.KnowledgeEmbedding) error {
	var existing model.KnowledgeEmbedding
	err := r.db.WithContext(ctx).Where("entry_id = ?", embedding.EntryId).First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := r.mapper.ToEmbeddingModel(embedding)
	if err == nil {
		m.Id = existing.Id
		m.CreatedAt = existing.CreatedAt
		if saveErr := r.db.WithContext(ctx).Save(m).Error; saveErr != nil {
			return saveErr
		}
	} else {
		if createErr := r.db.WithContext(ctx).Create(m).Error; createErr != nil {
			return createErr
		}
	}
	*embedding = *r.mapper.ToEmbeddingEntity(m)
	return nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeEmbedding, error) {
	var m model.KnowledgeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEmbeddingEntity(&m), nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeEmbedding, error) {
	var models []*model.KnowledgeEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEmbeddingEntities(models), nil
}

func (r *KnowledgeEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.KnowledgeEmbedding{}).Count(&count).Error
	return count, err
}

func (r *KnowledgeEmbeddingRepositoryImpl) DeleteByEntryId(ctx context.Context, entryId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("entry_id = ?", entryId).Delete(&model.KnowledgeEmbedding{}).Error
}
