package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByDomain filters knowledge documents by target domain
type ByDomain struct {
	Domain string
}

func (s ByDomain) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("domain = ?", s.Domain)
}

// ByDocumentID filters embeddings belonging to a document
type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}

// TitleLike performs a case-insensitive title match
type TitleLike struct {
	Pattern string
}

func (s TitleLike) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Pattern+"%")
}
