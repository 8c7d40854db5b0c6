package entity

import (
	"time"

	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

// PipelineSessionRecord is the durable form of a pipeline session. The full
// working state travels as a snapshot so a resumed run sees exactly what the
// paused run saw.
type PipelineSessionRecord struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Position  store.Stage
	Snapshot  store.Snapshot
	CreatedAt time.Time
	UpdatedAt *time.Time
}
