package entity

import (
	"time"

	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

type KnowledgeDocument struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string
	Summary   string
	Content   string
	Tags      []string
	Domain    store.Domain
	SourceURL string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
