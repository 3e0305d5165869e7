package specification

import (
	"time"

	"gorm.io/gorm"
)

type ByQueryKey struct {
	QueryKey string
}

func (s ByQueryKey) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("query_key = ?", s.QueryKey)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// NotExpiredAt keeps only cache rows still live at the given instant.
type NotExpiredAt struct {
	Now time.Time
}

func (s NotExpiredAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at > ?", s.Now)
}

// ExpiredAt selects rows the maintenance purge may delete.
type ExpiredAt struct {
	Now time.Time
}

func (s ExpiredAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("expires_at <= ?", s.Now)
}
