package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PipelineSession struct {
	Id        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Position  string         `gorm:"type:varchar(32);not null"`
	Snapshot  datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
}

func (PipelineSession) TableName() string {
	return "pipeline_sessions"
}
