package publish

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/store"
	"second-brain-be/pkg/utils"

	"github.com/google/uuid"
)

// Publisher writes exactly one document per session: either a new document or
// a merge into the recalled one. Captures are never dropped; a missing or
// broken draft is published as a raw capture instead.
type Publisher struct {
	docs   docstore.Store
	logger *log.Logger
}

func NewPublisher(docs docstore.Store, logger *log.Logger) *Publisher {
	return &Publisher{
		docs:   docs,
		logger: logger,
	}
}

// Publish persists the session's artifact and returns the document id and
// whether the write was a merge.
func (p *Publisher) Publish(ctx context.Context, snap *store.Snapshot) (uuid.UUID, bool, error) {
	domain := snap.AuthoritativeDomain()
	if !store.ValidDomain(domain) {
		domain = store.DomainHumanities
	}

	artifact := snap.Draft
	if !publishable(artifact) {
		p.logger.Printf("[PUBLISH] No usable draft, falling back to raw capture")
		artifact = fallbackArtifact(snap)
	}
	artifact.Domain = domain

	if p.mergeEligible(snap, domain) {
		docId := snap.Recall.ArtifactId
		if err := p.merge(ctx, docId, artifact); err == nil {
			p.logger.Printf("[PUBLISH] Merged into %q (%s)", snap.Recall.Title, docId)
			return docId, true, nil
		} else {
			p.logger.Printf("[WARN] Merge into %s failed, creating instead: %v", docId, err)
		}
	}

	docId, err := p.docs.Create(ctx, artifact, snap.SourceLocator)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("failed to publish document: %w", err)
	}
	p.logger.Printf("[PUBLISH] Created %q (%s, domain %s)", artifact.Title, docId, domain)
	return docId, false, nil
}

// mergeEligible allows merging only into a document of the same knowledge
// base. A domain override at review can break the pairing the recall stage
// found, in which case the capture becomes a new document.
func (p *Publisher) mergeEligible(snap *store.Snapshot, domain store.Domain) bool {
	return snap.Recall != nil && snap.Recall.Domain == domain
}

// merge picks the write strategy: vocabulary entries go in as table rows,
// everything else as an appended section. A target without a table degrades
// to append rather than failing the merge.
func (p *Publisher) merge(ctx context.Context, docId uuid.UUID, artifact *store.Artifact) error {
	if artifact.Domain == store.DomainSpanish && len(artifact.Vocab) > 0 {
		err := p.docs.InsertVocabRows(ctx, docId, artifact.Vocab)
		if err == nil {
			return nil
		}
		if !errors.Is(err, docstore.ErrNoVocabTable) {
			return err
		}
		p.logger.Printf("[PUBLISH] Target %s has no vocab table, appending section instead", docId)
	}
	return p.docs.AppendSection(ctx, docId, artifact)
}

func publishable(artifact *store.Artifact) bool {
	if artifact == nil {
		return false
	}
	if strings.TrimSpace(artifact.Title) == "" {
		return false
	}
	return strings.TrimSpace(artifact.Body) != "" || len(artifact.Vocab) > 0
}

// fallbackArtifact wraps the raw capture so nothing is lost when synthesis
// never produced a usable draft.
func fallbackArtifact(snap *store.Snapshot) *store.Artifact {
	title := strings.TrimSpace(strings.SplitN(snap.RawText, "\n", 2)[0])
	title = utils.Truncate(title, 60)
	if title == "" {
		title = "Untitled capture"
	}

	return &store.Artifact{
		Title:   title,
		Summary: "Raw capture saved without synthesis.",
		Body:    snap.RawText,
		Tags:    []string{"unprocessed"},
	}
}
