package recall

import (
	"context"
	"log"

	"second-brain-be/internal/config"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/embedding"
	"second-brain-be/pkg/store"
	"second-brain-be/pkg/utils"
)

// Recaller looks up the closest prior document in semantic memory. Recall is
// best-effort: any embedding or search failure degrades to no-match so the
// pipeline keeps moving.
type Recaller struct {
	embedder embedding.EmbeddingProvider
	factory  unitofwork.RepositoryFactory
	policy   config.RecallConfig
	logger   *log.Logger
}

func NewRecaller(
	embedder embedding.EmbeddingProvider,
	factory unitofwork.RepositoryFactory,
	policy config.RecallConfig,
	logger *log.Logger,
) *Recaller {
	return &Recaller{
		embedder: embedder,
		factory:  factory,
		policy:   policy,
		logger:   logger,
	}
}

// Recall returns the best match within the domain, or nil when nothing
// clears the domain's similarity threshold.
func (r *Recaller) Recall(ctx context.Context, text string, domain store.Domain) *store.RecallResult {
	resp, err := r.embedder.Generate(utils.Truncate(text, 4000), "RETRIEVAL_QUERY")
	if err != nil {
		r.logger.Printf("[WARN] Recall embedding failed, treating as no match: %v", err)
		return nil
	}

	threshold := r.Threshold(domain)

	uow := r.factory.NewUnitOfWork(ctx)
	scored, err := uow.KnowledgeEmbeddingRepository().SearchSimilarWithScore(
		ctx, resp.Embedding.Values, 3, string(domain), threshold)
	if err != nil {
		r.logger.Printf("[WARN] Similarity search failed, treating as no match: %v", err)
		return nil
	}
	if len(scored) == 0 {
		r.logger.Printf("[RECALL] No match in %s above %.2f", domain, threshold)
		return nil
	}

	best := scored[0]
	doc, err := uow.KnowledgeDocumentRepository().FindById(ctx, best.Embedding.DocumentId)
	if err != nil || doc == nil {
		r.logger.Printf("[WARN] Recall hit document %s not loadable, treating as no match", best.Embedding.DocumentId)
		return nil
	}

	r.logger.Printf("[RECALL] Match: %q (similarity %.3f, domain %s)", doc.Title, best.Similarity, doc.Domain)
	return &store.RecallResult{
		ArtifactId: doc.Id,
		Title:      doc.Title,
		Summary:    doc.Summary,
		Score:      best.Similarity,
		Domain:     doc.Domain,
	}
}

// Threshold returns the similarity floor for a domain. Vocabulary notes are
// templated and cluster tightly, so spanish_learning uses the stricter bar.
func (r *Recaller) Threshold(domain store.Domain) float64 {
	if domain == store.DomainSpanish {
		return r.policy.VocabThreshold
	}
	return r.policy.DefaultThreshold
}
