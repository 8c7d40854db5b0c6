package contract

import (
	"context"

	"second-brain-be/internal/entity"

	"github.com/google/uuid"
)

type PipelineSessionRepository interface {
	// Upsert writes the record, inserting on first save and replacing the
	// stored snapshot on subsequent saves.
	Upsert(ctx context.Context, record *entity.PipelineSessionRecord) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.PipelineSessionRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
