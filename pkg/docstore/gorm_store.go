package docstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"second-brain-be/internal/entity"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

type GormStore struct {
	factory unitofwork.RepositoryFactory
}

func NewGormStore(factory unitofwork.RepositoryFactory) Store {
	return &GormStore{
		factory: factory,
	}
}

func (s *GormStore) Create(ctx context.Context, artifact *store.Artifact, sourceURL string) (uuid.UUID, error) {
	uow := s.factory.NewUnitOfWork(ctx)

	doc := &entity.KnowledgeDocument{
		Id:        uuid.New(),
		Title:     artifact.Title,
		Summary:   artifact.Summary,
		Content:   RenderContent(artifact),
		Tags:      artifact.Tags,
		Domain:    artifact.Domain,
		SourceURL: sourceURL,
		CreatedAt: time.Now(),
	}

	if err := uow.KnowledgeDocumentRepository().Create(ctx, doc); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create document: %w", err)
	}
	return doc.Id, nil
}

func (s *GormStore) Read(ctx context.Context, id uuid.UUID) (*entity.KnowledgeDocument, error) {
	uow := s.factory.NewUnitOfWork(ctx)

	doc, err := uow.KnowledgeDocumentRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (s *GormStore) AppendSection(ctx context.Context, id uuid.UUID, artifact *store.Artifact) error {
	uow := s.factory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeDocumentRepository()

	doc, err := repo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}

	section := fmt.Sprintf("\n\n---\n\n## %s (%s)\n\n%s",
		artifact.Title,
		time.Now().Format("2006-01-02"),
		RenderContent(artifact),
	)

	doc.Content = strings.TrimRight(doc.Content, "\n") + section
	if artifact.Summary != "" {
		doc.Summary = artifact.Summary
	}
	doc.Tags = mergeTags(doc.Tags, artifact.Tags)

	return repo.Update(ctx, doc)
}

func (s *GormStore) InsertVocabRows(ctx context.Context, id uuid.UUID, vocab []store.VocabEntry) error {
	uow := s.factory.NewUnitOfWork(ctx)
	repo := uow.KnowledgeDocumentRepository()

	doc, err := repo.FindById(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrNotFound
	}

	updated, ok := insertRows(doc.Content, vocab)
	if !ok {
		return ErrNoVocabTable
	}
	if updated == doc.Content {
		return nil
	}

	doc.Content = updated
	return repo.Update(ctx, doc)
}

func mergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := append([]string{}, existing...)
	for _, t := range existing {
		seen[strings.ToLower(t)] = true
	}
	for _, t := range incoming {
		if !seen[strings.ToLower(t)] {
			merged = append(merged, t)
			seen[strings.ToLower(t)] = true
		}
	}
	return merged
}
