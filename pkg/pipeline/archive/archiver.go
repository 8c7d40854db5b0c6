package archive

import (
	"context"
	"fmt"
	"log"

	"second-brain-be/internal/entity"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/embedding"
	"second-brain-be/pkg/utils"

	"github.com/google/uuid"
)

const (
	chunkSize    = 1500
	chunkOverlap = 200
)

// Archiver writes a document into semantic memory so future recalls can find
// it. Existing chunks for the document are replaced, which makes re-archiving
// after a merge safe.
type Archiver struct {
	embedder embedding.EmbeddingProvider
	factory  unitofwork.RepositoryFactory
	logger   *log.Logger
}

func NewArchiver(
	embedder embedding.EmbeddingProvider,
	factory unitofwork.RepositoryFactory,
	logger *log.Logger,
) *Archiver {
	return &Archiver{
		embedder: embedder,
		factory:  factory,
		logger:   logger,
	}
}

// Archive chunks, embeds and stores the document's content.
func (a *Archiver) Archive(ctx context.Context, documentId uuid.UUID) error {
	uow := a.factory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeDocumentRepository().FindById(ctx, documentId)
	if err != nil {
		return fmt.Errorf("failed to load document for archiving: %w", err)
	}
	if doc == nil {
		return fmt.Errorf("document %s not found", documentId)
	}

	// Title and summary carry most of the retrieval signal, so they lead
	// the embedded text.
	text := fmt.Sprintf("%s\n\n%s\n\n%s", doc.Title, doc.Summary, doc.Content)
	chunks := utils.SplitText(text, chunkSize, chunkOverlap)

	embeddings := make([]*entity.KnowledgeEmbedding, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := a.embedder.Generate(chunk, "RETRIEVAL_DOCUMENT")
		if err != nil {
			return fmt.Errorf("failed to embed chunk %d: %w", i, err)
		}
		embeddings = append(embeddings, &entity.KnowledgeEmbedding{
			Id:             uuid.New(),
			Chunk:          chunk,
			EmbeddingValue: resp.Embedding.Values,
			DocumentId:     documentId,
			ChunkIndex:     i,
		})
	}

	embRepo := uow.KnowledgeEmbeddingRepository()
	if err := embRepo.DeleteByDocumentId(ctx, documentId); err != nil {
		return fmt.Errorf("failed to clear old chunks: %w", err)
	}
	if err := embRepo.CreateBulk(ctx, embeddings); err != nil {
		return fmt.Errorf("failed to store chunks: %w", err)
	}

	a.logger.Printf("[ARCHIVE] Stored %d chunks for document %s", len(embeddings), documentId)
	return nil
}
