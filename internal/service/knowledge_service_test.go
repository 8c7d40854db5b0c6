package service

import (
	"context"
	"errors"
	"testing"

	"second-brain-be/internal/dto"
	"second-brain-be/internal/entity"
	"second-brain-be/internal/repository/contract"
	"second-brain-be/internal/repository/specification"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentRepo struct {
	docs         []*entity.KnowledgeDocument
	byId         *entity.KnowledgeDocument
	findAllSpecs []specification.Specification
	countSpecs   []specification.Specification
	lastFindById uuid.UUID
}

func (f *fakeDocumentRepo) Create(ctx context.Context, doc *entity.KnowledgeDocument) error {
	return errors.New("not used")
}

func (f *fakeDocumentRepo) Update(ctx context.Context, doc *entity.KnowledgeDocument) error {
	return errors.New("not used")
}

func (f *fakeDocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return errors.New("not used")
}

func (f *fakeDocumentRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.KnowledgeDocument, error) {
	f.lastFindById = id
	return f.byId, nil
}

func (f *fakeDocumentRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.KnowledgeDocument, error) {
	return nil, errors.New("not used")
}

func (f *fakeDocumentRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.KnowledgeDocument, error) {
	f.findAllSpecs = specs
	return f.docs, nil
}

func (f *fakeDocumentRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	f.countSpecs = specs
	return int64(len(f.docs)), nil
}

type fakeUnitOfWork struct {
	docRepo *fakeDocumentRepo
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }

func (f *fakeUnitOfWork) KnowledgeDocumentRepository() contract.KnowledgeDocumentRepository {
	return f.docRepo
}

func (f *fakeUnitOfWork) KnowledgeEmbeddingRepository() contract.KnowledgeEmbeddingRepository {
	return nil
}

func (f *fakeUnitOfWork) PipelineSessionRepository() contract.PipelineSessionRepository {
	return nil
}

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

func newKnowledgeHarness(docs ...*entity.KnowledgeDocument) (*fakeDocumentRepo, IKnowledgeService) {
	repo := &fakeDocumentRepo{docs: docs}
	svc := NewKnowledgeService(&fakeFactory{uow: &fakeUnitOfWork{docRepo: repo}})
	return repo, svc
}

func TestKnowledgeListBuildsFilters(t *testing.T) {
	repo, svc := newKnowledgeHarness(&entity.KnowledgeDocument{
		Id: uuid.New(), Title: "Verbos", Domain: store.DomainSpanish,
	})

	res, err := svc.List(context.Background(), &dto.ListKnowledgeRequest{
		Domain: "spanish_learning",
		Title:  "verb",
		Limit:  10,
		Offset: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), res.Total)
	require.Len(t, res.Documents, 1)
	assert.Equal(t, "Verbos", res.Documents[0].Title)

	assert.Contains(t, repo.countSpecs, specification.NotDeleted{})
	assert.Contains(t, repo.countSpecs, specification.ByDomain{Domain: "spanish_learning"})
	assert.Contains(t, repo.countSpecs, specification.TitleLike{Pattern: "verb"})
	assert.NotContains(t, repo.countSpecs, specification.Pagination{Limit: 10, Offset: 20},
		"the total must not be paginated")

	assert.Contains(t, repo.findAllSpecs, specification.OrderBy{Field: "created_at", Desc: true})
	assert.Contains(t, repo.findAllSpecs, specification.Pagination{Limit: 10, Offset: 20})
}

func TestKnowledgeListDefaults(t *testing.T) {
	repo, svc := newKnowledgeHarness()

	res, err := svc.List(context.Background(), &dto.ListKnowledgeRequest{})
	require.NoError(t, err)

	assert.Equal(t, defaultListLimit, res.Limit)
	assert.NotContains(t, repo.findAllSpecs, specification.ByDomain{Domain: ""},
		"empty domain must not become a filter")
	assert.Contains(t, repo.findAllSpecs, specification.Pagination{Limit: defaultListLimit, Offset: 0})
}

func TestKnowledgeGetReturnsContent(t *testing.T) {
	doc := &entity.KnowledgeDocument{
		Id: uuid.New(), Title: "Pointers", Content: "A pointer holds an address.",
	}
	repo, svc := newKnowledgeHarness()
	repo.byId = doc

	res, err := svc.Get(context.Background(), doc.Id)
	require.NoError(t, err)

	assert.Equal(t, doc.Id, repo.lastFindById)
	assert.Equal(t, "Pointers", res.Title)
	assert.Equal(t, "A pointer holds an address.", res.Content)
}

func TestKnowledgeGetMissingDocument(t *testing.T) {
	_, svc := newKnowledgeHarness()

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}
