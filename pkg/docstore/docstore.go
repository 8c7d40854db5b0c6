package docstore

import (
	"context"
	"errors"

	"second-brain-be/internal/entity"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

// ErrNoVocabTable is returned by InsertVocabRows when the target document has
// no vocabulary table to insert into. Callers fall back to AppendSection.
var ErrNoVocabTable = errors.New("document has no vocabulary table")

// ErrNotFound is returned when the target document does not exist.
var ErrNotFound = errors.New("document not found")

// Store persists rendered knowledge documents. A document is markdown text;
// spanish_learning documents carry a vocabulary table as their primary payload.
type Store interface {
	// Create renders the artifact into a new document and returns its id.
	Create(ctx context.Context, artifact *store.Artifact, sourceURL string) (uuid.UUID, error)
	// Read returns the stored document, or ErrNotFound.
	Read(ctx context.Context, id uuid.UUID) (*entity.KnowledgeDocument, error)
	// AppendSection adds the artifact as a dated section at the end of an
	// existing document and refreshes summary and tags.
	AppendSection(ctx context.Context, id uuid.UUID, artifact *store.Artifact) error
	// InsertVocabRows adds vocabulary entries as rows of the document's
	// existing table, skipping words already present.
	InsertVocabRows(ctx context.Context, id uuid.UUID, vocab []store.VocabEntry) error
}
