package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByEntryID struct {
	EntryID uuid.UUID
}

func (s ByEntryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_id = ?", s.EntryID)
}

type ByEntryTypes struct {
	EntryTypes []string
}

func (s ByEntryTypes) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_type IN ?", s.EntryTypes)
}

type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = true")
}
