package unitofwork

import (
	"context"

	"second-brain-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository
	KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository
	PipelineSessionRepository() contract.PipelineSessionRepository
}
