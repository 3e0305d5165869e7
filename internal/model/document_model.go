package model

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProposalId    *uuid.UUID `gorm:"type:uuid;index"`
	OpportunityId *uuid.UUID `gorm:"type:uuid;index"`
	Filename      string     `gorm:"type:varchar(512);not null"`
	DocType       string     `gorm:"type:varchar(64);not null;default:'other'"`
	ContentHash   string     `gorm:"type:char(64);uniqueIndex;not null"` // SHA-256 of the raw upload
	Content       string     `gorm:"type:text"`                          // extracted plain text
	PageCount     int        `gorm:"default:0"`
	ChunkCount    int        `gorm:"default:0"`
	Vectorized    bool       `gorm:"default:false;index"`
	VectorizedAt  *time.Time
	Excluded      bool    `gorm:"default:false"` // never embedded or used for training when set
	Notes         *string `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "rfx_documents"
}
