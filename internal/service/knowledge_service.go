package service

import (
	"context"

	"second-brain-be/internal/dto"
	"second-brain-be/internal/entity"
	"second-brain-be/internal/repository/specification"
	"second-brain-be/internal/repository/unitofwork"
	"second-brain-be/pkg/docstore"

	"github.com/google/uuid"
)

const defaultListLimit = 20

// IKnowledgeService is the read surface over published documents: the
// pipeline writes them, reviewers browse them here.
type IKnowledgeService interface {
	List(ctx context.Context, req *dto.ListKnowledgeRequest) (*dto.KnowledgeListResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.KnowledgeDocumentDetailResponse, error)
}

type knowledgeService struct {
	factory unitofwork.RepositoryFactory
}

func NewKnowledgeService(factory unitofwork.RepositoryFactory) IKnowledgeService {
	return &knowledgeService{
		factory: factory,
	}
}

func (s *knowledgeService) List(ctx context.Context, req *dto.ListKnowledgeRequest) (*dto.KnowledgeListResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	filters := []specification.Specification{specification.NotDeleted{}}
	if req.Domain != "" {
		filters = append(filters, specification.ByDomain{Domain: req.Domain})
	}
	if req.Title != "" {
		filters = append(filters, specification.TitleLike{Pattern: req.Title})
	}

	repo := s.factory.NewUnitOfWork(ctx).KnowledgeDocumentRepository()

	total, err := repo.Count(ctx, filters...)
	if err != nil {
		return nil, err
	}

	page := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	)
	docs, err := repo.FindAll(ctx, page...)
	if err != nil {
		return nil, err
	}

	res := &dto.KnowledgeListResponse{
		Documents: make([]*dto.KnowledgeDocumentResponse, len(docs)),
		Total:     total,
		Limit:     limit,
		Offset:    req.Offset,
	}
	for i, doc := range docs {
		res.Documents[i] = toDocumentResponse(doc)
	}
	return res, nil
}

func (s *knowledgeService) Get(ctx context.Context, id uuid.UUID) (*dto.KnowledgeDocumentDetailResponse, error) {
	repo := s.factory.NewUnitOfWork(ctx).KnowledgeDocumentRepository()

	doc, err := repo.FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || doc.IsDeleted {
		return nil, docstore.ErrNotFound
	}

	return &dto.KnowledgeDocumentDetailResponse{
		KnowledgeDocumentResponse: *toDocumentResponse(doc),
		Content:                   doc.Content,
	}, nil
}

func toDocumentResponse(doc *entity.KnowledgeDocument) *dto.KnowledgeDocumentResponse {
	return &dto.KnowledgeDocumentResponse{
		Id:        doc.Id,
		Title:     doc.Title,
		Summary:   doc.Summary,
		Tags:      doc.Tags,
		Domain:    string(doc.Domain),
		SourceURL: doc.SourceURL,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
