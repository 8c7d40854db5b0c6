package service

import (
	"context"
	"time"

	"second-brain-be/internal/dto"
	"second-brain-be/internal/pkg/logger"
	"second-brain-be/pkg/events"
	"second-brain-be/pkg/nats"
	"second-brain-be/pkg/pipeline"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

type IIngestionService interface {
	Start(ctx context.Context, req *dto.StartPipelineRequest) (*dto.PipelineStateResponse, error)
	Resume(ctx context.Context, id uuid.UUID, req *dto.ResumePipelineRequest) (*dto.PipelineStateResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PipelineStateResponse, error)
}

type ingestionService struct {
	orchestrator     *pipeline.Orchestrator
	checkpoints      pipeline.CheckpointStore
	publisherService IPublisherService
	reindexTopic     string
	natsPublisher    *nats.Publisher
	logger           logger.ILogger
}

func NewIngestionService(
	orchestrator *pipeline.Orchestrator,
	checkpoints pipeline.CheckpointStore,
	publisherService IPublisherService,
	reindexTopic string,
	natsPublisher *nats.Publisher,
	logger logger.ILogger,
) IIngestionService {
	return &ingestionService{
		orchestrator:     orchestrator,
		checkpoints:      checkpoints,
		publisherService: publisherService,
		reindexTopic:     reindexTopic,
		natsPublisher:    natsPublisher,
		logger:           logger,
	}
}

func (s *ingestionService) Start(ctx context.Context, req *dto.StartPipelineRequest) (*dto.PipelineStateResponse, error) {
	override := store.IntentAuto
	switch store.Intent(req.Intent) {
	case store.IntentSave, store.IntentQuery:
		override = store.Intent(req.Intent)
	}

	session, err := s.orchestrator.Start(ctx, req.Input, override)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "Session started", map[string]interface{}{
		"session_id": session.Id.String(),
		"position":   string(session.Position),
		"intent":     string(session.State.Intent),
		"domain":     string(session.State.Domain),
	})

	s.afterTerminal(ctx, session)
	return toStateResponse(session), nil
}

func (s *ingestionService) Resume(ctx context.Context, id uuid.UUID, req *dto.ResumePipelineRequest) (*dto.PipelineStateResponse, error) {
	decision := store.ReviewDecision{
		Approve:        req.Approve,
		Title:          req.Title,
		Summary:        req.Summary,
		Body:           req.Body,
		OverrideDomain: store.Domain(req.OverrideDomain),
	}

	session, err := s.orchestrator.Resume(ctx, id, decision)
	if err != nil {
		return nil, err
	}

	s.logger.Info("ingestion", "Session resumed", map[string]interface{}{
		"session_id": session.Id.String(),
		"approved":   req.Approve,
		"position":   string(session.Position),
		"outcome":    string(session.State.Outcome),
	})

	s.afterTerminal(ctx, session)
	return toStateResponse(session), nil
}

func (s *ingestionService) Get(ctx context.Context, id uuid.UUID) (*dto.PipelineStateResponse, error) {
	session, err := s.checkpoints.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, pipeline.ErrSessionNotFound
	}
	return toStateResponse(session), nil
}

// afterTerminal emits lifecycle events and schedules repair work once a
// session has finished. Best-effort: event bus trouble never fails the
// request.
func (s *ingestionService) afterTerminal(ctx context.Context, session *store.PipelineSession) {
	if !session.Terminal() {
		return
	}

	switch session.State.Outcome {
	case store.OutcomePublished:
		s.emitEvent(ctx, events.BaseEvent{
			Type: events.TypeArtifactPublished,
			Data: map[string]interface{}{
				"session_id":  session.Id.String(),
				"document_id": session.State.PublishedArtifactId,
				"domain":      string(session.State.AuthoritativeDomain()),
				"merged":      session.State.Merged,
			},
			OccurredAt: time.Now(),
		})

		// A failed memory write gets retried asynchronously so the
		// document becomes findable without re-running the session.
		if session.State.MemoryWriteError != "" {
			s.scheduleReindex(session)
		}

	case store.OutcomeRejected:
		s.emitEvent(ctx, events.BaseEvent{
			Type: events.TypeSessionRejected,
			Data: map[string]interface{}{
				"session_id": session.Id.String(),
			},
			OccurredAt: time.Now(),
		})
	}
}

func (s *ingestionService) emitEvent(ctx context.Context, event events.BaseEvent) {
	if s.natsPublisher == nil {
		return
	}
	if err := s.natsPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("ingestion", "Failed to publish lifecycle event", map[string]interface{}{
			"event_type": event.Type,
			"error":      err.Error(),
		})
	}
}

func (s *ingestionService) scheduleReindex(session *store.PipelineSession) {
	docId, err := uuid.Parse(session.State.PublishedArtifactId)
	if err != nil {
		return
	}
	msg := dto.ReindexDocumentMessage{DocumentId: docId}
	if err := s.publisherService.Publish(s.reindexTopic, msg); err != nil {
		s.logger.Warn("ingestion", "Failed to schedule reindex", map[string]interface{}{
			"document_id": docId.String(),
			"error":       err.Error(),
		})
	}
}

func toStateResponse(session *store.PipelineSession) *dto.PipelineStateResponse {
	snap := session.State

	res := &dto.PipelineStateResponse{
		Id:                  session.Id,
		Position:            string(session.Position),
		Intent:              string(snap.Intent),
		Domain:              string(snap.AuthoritativeDomain()),
		Confidence:          snap.Confidence,
		RetryCount:          snap.RetryCount,
		LastError:           snap.LastError,
		PublishedArtifactId: snap.PublishedArtifactId,
		Merged:              snap.Merged,
		MemoryWriteError:    snap.MemoryWriteError,
		Outcome:             string(snap.Outcome),
		FinalOutput:         snap.FinalOutput,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
	}

	if snap.Recall != nil {
		res.Recall = &dto.RecallResponse{
			ArtifactId: snap.Recall.ArtifactId,
			Title:      snap.Recall.Title,
			Summary:    snap.Recall.Summary,
			Score:      snap.Recall.Score,
			Domain:     string(snap.Recall.Domain),
		}
	}
	if snap.Draft != nil {
		res.Draft = &dto.ArtifactResponse{
			Title:   snap.Draft.Title,
			Summary: snap.Draft.Summary,
			Body:    snap.Draft.Body,
			Tags:    snap.Draft.Tags,
			Vocab:   snap.Draft.Vocab,
			Domain:  string(snap.Draft.Domain),
		}
	}

	return res
}
