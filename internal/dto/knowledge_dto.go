package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListKnowledgeRequest struct {
	Domain string `query:"domain" validate:"omitempty,oneof=spanish_learning tech_knowledge humanities"`
	Title  string `query:"title"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}

type KnowledgeDocumentResponse struct {
	Id        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Tags      []string   `json:"tags,omitempty"`
	Domain    string     `json:"domain"`
	SourceURL string     `json:"source_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type KnowledgeDocumentDetailResponse struct {
	KnowledgeDocumentResponse
	Content string `json:"content"`
}

type KnowledgeListResponse struct {
	Documents []*KnowledgeDocumentResponse `json:"documents"`
	Total     int64                        `json:"total"`
	Limit     int                          `json:"limit"`
	Offset    int                          `json:"offset"`
}
