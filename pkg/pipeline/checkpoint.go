package pipeline

import (
	"context"
	"fmt"
	"time"

	"second-brain-be/internal/entity"
	"second-brain-be/internal/repository/memory"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

// CheckpointStore persists session state at every stage transition so a
// paused or crashed run can pick up where it left off.
type CheckpointStore interface {
	Save(ctx context.Context, session *store.PipelineSession) error
	// Load returns nil without error when the session does not exist.
	Load(ctx context.Context, id uuid.UUID) (*store.PipelineSession, error)
}

// DurableCheckpointStore writes through an in-process cache to the database.
// Resumes usually arrive minutes after the pause, so the cache absorbs most
// reads; the database row is what survives restarts.
type DurableCheckpointStore struct {
	factory unitofwork.RepositoryFactory
	hot     *memory.SessionRepository
}

func NewDurableCheckpointStore(factory unitofwork.RepositoryFactory, hot *memory.SessionRepository) *DurableCheckpointStore {
	return &DurableCheckpointStore{
		factory: factory,
		hot:     hot,
	}
}

func (c *DurableCheckpointStore) Save(ctx context.Context, session *store.PipelineSession) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}

	record := &entity.PipelineSessionRecord{
		Id:        session.Id,
		Position:  session.Position,
		Snapshot:  session.State,
		CreatedAt: session.CreatedAt,
		UpdatedAt: &session.UpdatedAt,
	}

	uow := c.factory.NewUnitOfWork(ctx)
	if err := uow.PipelineSessionRepository().Upsert(ctx, record); err != nil {
		return fmt.Errorf("failed to checkpoint session %s: %w", session.Id, err)
	}

	c.hot.Save(session)
	return nil
}

func (c *DurableCheckpointStore) Load(ctx context.Context, id uuid.UUID) (*store.PipelineSession, error) {
	if session, found := c.hot.Get(id.String()); found {
		return session, nil
	}

	uow := c.factory.NewUnitOfWork(ctx)
	record, err := uow.PipelineSessionRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	session := &store.PipelineSession{
		Id:        record.Id,
		Position:  record.Position,
		State:     record.Snapshot,
		CreatedAt: record.CreatedAt,
	}
	if record.UpdatedAt != nil {
		session.UpdatedAt = *record.UpdatedAt
	}

	c.hot.Save(session)
	return session, nil
}
