package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// KnowledgeEntry rows are owned by the curation side of the system;
// this engine reads them and maintains their embeddings.
type KnowledgeEntry struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title     string         `gorm:"type:varchar(255);not null"`
	Content   string         `gorm:"type:text;not null"`
	EntryType string         `gorm:"type:varchar(64);index"`
	Tags      datatypes.JSON `gorm:"type:jsonb"`
	IsActive  bool           `gorm:"default:true;index"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (KnowledgeEntry) TableName() string {
	return "kb_entries"
}

// KnowledgeEmbedding holds at most one live vector per entry (unique
// index on entry_id; refresh overwrites in place).
type KnowledgeEmbedding struct {
	Id         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntryId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Embedding  []byte    `gorm:"type:bytea;not null"`
	Model      string    `gorm:"type:varchar(128);not null"`
	Dimensions int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (KnowledgeEmbedding) TableName() string {
	return "kb_embeddings"
}
