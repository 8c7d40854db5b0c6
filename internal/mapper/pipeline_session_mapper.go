package mapper

import (
	"encoding/json"
	"time"

	"second-brain-be/internal/entity"
	"second-brain-be/internal/model"
	"second-brain-be/pkg/store"

	"gorm.io/datatypes"
)

type PipelineSessionMapper struct{}

func NewPipelineSessionMapper() *PipelineSessionMapper {
	return &PipelineSessionMapper{}
}

func (m *PipelineSessionMapper) ToEntity(s *model.PipelineSession) (*entity.PipelineSessionRecord, error) {
	if s == nil {
		return nil, nil
	}

	var snapshot store.Snapshot
	if len(s.Snapshot) > 0 {
		if err := json.Unmarshal(s.Snapshot, &snapshot); err != nil {
			return nil, err
		}
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.PipelineSessionRecord{
		Id:        s.Id,
		Position:  store.Stage(s.Position),
		Snapshot:  snapshot,
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (m *PipelineSessionMapper) ToModel(s *entity.PipelineSessionRecord) (*model.PipelineSession, error) {
	if s == nil {
		return nil, nil
	}

	snapshotJSON, err := json.Marshal(s.Snapshot)
	if err != nil {
		return nil, err
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.PipelineSession{
		Id:        s.Id,
		Position:  string(s.Position),
		Snapshot:  datatypes.JSON(snapshotJSON),
		CreatedAt: s.CreatedAt,
		UpdatedAt: updatedAt,
	}, nil
}
