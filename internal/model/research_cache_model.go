package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ResearchCacheEntry caches one external result set under its content
// address. At most one live row per query key; refresh replaces the row
// wholesale.
type ResearchCacheEntry struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProposalId  *uuid.UUID `gorm:"type:uuid;index"`
	Query       string     `gorm:"type:text;not null"`
	QueryKey    string     `gorm:"type:char(64);uniqueIndex;not null"` // SHA-256(category + normalized query)
	Category    string     `gorm:"type:varchar(64);not null"`
	Results     datatypes.JSON `gorm:"type:jsonb"` // ordered heterogeneous source records
	SourceCount int        `gorm:"default:0"`
	ExpiresAt   time.Time  `gorm:"not null;index"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (ResearchCacheEntry) TableName() string {
	return "rfx_research_cache"
}
