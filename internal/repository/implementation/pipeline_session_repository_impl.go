package implementation

import (
	"context"
	"errors"

	"second-brain-be/internal/entity"
	"second-brain-be/internal/mapper"
	"second-brain-be/internal/model"
	"second-brain-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PipelineSessionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PipelineSessionMapper
}

func NewPipelineSessionRepository(db *gorm.DB) contract.PipelineSessionRepository {
	return &PipelineSessionRepositoryImpl{
		db:     db,
		mapper: mapper.NewPipelineSessionMapper(),
	}
}

func (r *PipelineSessionRepositoryImpl) Upsert(ctx context.Context, record *entity.PipelineSessionRecord) error {
	m, err := r.mapper.ToModel(record)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"position", "snapshot", "updated_at"}),
		}).
		Create(m).Error
}

func (r *PipelineSessionRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.PipelineSessionRecord, error) {
	var m model.PipelineSession
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m)
}

func (r *PipelineSessionRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.PipelineSession{}, id).Error
}
