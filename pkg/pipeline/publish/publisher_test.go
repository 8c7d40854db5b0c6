package publish

import (
	"context"
	"fmt"
	"io"
	"log"
	"testing"

	"second-brain-be/internal/entity"
	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocs struct {
	createdArtifacts []*store.Artifact
	createdSources   []string
	createErr        error
	appendedTo       []uuid.UUID
	appendErr        error
	insertedTo       []uuid.UUID
	insertErr        error
	nextId           uuid.UUID
}

func newFakeDocs() *fakeDocs {
	return &fakeDocs{nextId: uuid.New()}
}

func (f *fakeDocs) Create(ctx context.Context, artifact *store.Artifact, sourceURL string) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.createdArtifacts = append(f.createdArtifacts, artifact)
	f.createdSources = append(f.createdSources, sourceURL)
	return f.nextId, nil
}

func (f *fakeDocs) Read(ctx context.Context, id uuid.UUID) (*entity.KnowledgeDocument, error) {
	return &entity.KnowledgeDocument{Id: id, Content: "existing"}, nil
}

func (f *fakeDocs) AppendSection(ctx context.Context, id uuid.UUID, artifact *store.Artifact) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.appendedTo = append(f.appendedTo, id)
	return nil
}

func (f *fakeDocs) InsertVocabRows(ctx context.Context, id uuid.UUID, vocab []store.VocabEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.insertedTo = append(f.insertedTo, id)
	return nil
}

func newTestPublisher(docs docstore.Store) *Publisher {
	return NewPublisher(docs, log.New(io.Discard, "", 0))
}

func validDraft(domain store.Domain) *store.Artifact {
	return &store.Artifact{
		Title:   "Title",
		Summary: "Summary",
		Body:    "Body",
		Domain:  domain,
	}
}

func TestPublishCreatesWithoutRecall(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainTech,
		Draft:   validDraft(store.DomainTech),
	}

	docId, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Equal(t, docs.nextId, docId)
	require.Len(t, docs.createdArtifacts, 1)
	assert.Equal(t, store.DomainTech, docs.createdArtifacts[0].Domain)
}

func TestPublishMergesIntoSameDomainMatch(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)
	target := uuid.New()

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainTech,
		Draft:   validDraft(store.DomainTech),
		Recall:  &store.RecallResult{ArtifactId: target, Domain: store.DomainTech},
	}

	docId, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, target, docId)
	assert.Equal(t, []uuid.UUID{target}, docs.appendedTo)
	assert.Empty(t, docs.createdArtifacts)
}

func TestPublishRefusesCrossDomainMerge(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainTech,
		Draft:   validDraft(store.DomainTech),
		Recall:  &store.RecallResult{ArtifactId: uuid.New(), Domain: store.DomainHumanities},
	}

	_, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Empty(t, docs.appendedTo)
	assert.Len(t, docs.createdArtifacts, 1)
}

func TestPublishDomainOverrideBreaksMergePairing(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)

	// Recall matched under the classifier's domain, but the reviewer
	// rerouted the capture. The match no longer applies.
	snap := &store.Snapshot{
		RawText:        "raw",
		Domain:         store.DomainTech,
		OverrideDomain: store.DomainHumanities,
		Draft:          validDraft(store.DomainTech),
		Recall:         &store.RecallResult{ArtifactId: uuid.New(), Domain: store.DomainTech},
	}

	_, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, merged)
	require.Len(t, docs.createdArtifacts, 1)
	assert.Equal(t, store.DomainHumanities, docs.createdArtifacts[0].Domain)
}

func TestPublishVocabMergeUsesRowInsert(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)
	target := uuid.New()

	draft := validDraft(store.DomainSpanish)
	draft.Vocab = []store.VocabEntry{{Word: "hola", Meaning: "hello"}}

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainSpanish,
		Draft:   draft,
		Recall:  &store.RecallResult{ArtifactId: target, Domain: store.DomainSpanish},
	}

	_, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, []uuid.UUID{target}, docs.insertedTo)
	assert.Empty(t, docs.appendedTo)
}

func TestPublishVocabMergeFallsBackToAppend(t *testing.T) {
	docs := newFakeDocs()
	docs.insertErr = docstore.ErrNoVocabTable
	p := newTestPublisher(docs)
	target := uuid.New()

	draft := validDraft(store.DomainSpanish)
	draft.Vocab = []store.VocabEntry{{Word: "hola", Meaning: "hello"}}

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainSpanish,
		Draft:   draft,
		Recall:  &store.RecallResult{ArtifactId: target, Domain: store.DomainSpanish},
	}

	_, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, []uuid.UUID{target}, docs.appendedTo)
}

func TestPublishMergeFailureDegradesToCreate(t *testing.T) {
	docs := newFakeDocs()
	docs.appendErr = fmt.Errorf("row lock timeout")
	p := newTestPublisher(docs)

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainTech,
		Draft:   validDraft(store.DomainTech),
		Recall:  &store.RecallResult{ArtifactId: uuid.New(), Domain: store.DomainTech},
	}

	_, merged, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	assert.False(t, merged)
	assert.Len(t, docs.createdArtifacts, 1)
}

func TestPublishNilDraftFallsBackToRawCapture(t *testing.T) {
	docs := newFakeDocs()
	p := newTestPublisher(docs)

	snap := &store.Snapshot{
		RawText:       "First line of the capture\nand the rest of it",
		SourceLocator: "https://example.com",
		Domain:        store.DomainTech,
	}

	_, _, err := p.Publish(context.Background(), snap)
	require.NoError(t, err)
	require.Len(t, docs.createdArtifacts, 1)

	artifact := docs.createdArtifacts[0]
	assert.Equal(t, "First line of the capture", artifact.Title)
	assert.Equal(t, snap.RawText, artifact.Body)
	assert.Contains(t, artifact.Tags, "unprocessed")
	assert.Equal(t, "https://example.com", docs.createdSources[0])
}

func TestPublishCreateErrorSurfaces(t *testing.T) {
	docs := newFakeDocs()
	docs.createErr = fmt.Errorf("db down")
	p := newTestPublisher(docs)

	snap := &store.Snapshot{
		RawText: "raw",
		Domain:  store.DomainTech,
		Draft:   validDraft(store.DomainTech),
	}

	_, _, err := p.Publish(context.Background(), snap)
	assert.Error(t, err)
}
