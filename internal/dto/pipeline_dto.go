package dto

import (
	"time"

	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

type StartPipelineRequest struct {
	Input  string `json:"input" validate:"required"`
	Intent string `json:"intent" validate:"omitempty,oneof=save_note query_knowledge"`
}

type ResumePipelineRequest struct {
	Approve        bool    `json:"approve"`
	Title          *string `json:"title"`
	Summary        *string `json:"summary"`
	Body           *string `json:"body"`
	OverrideDomain string  `json:"override_domain" validate:"omitempty,oneof=spanish_learning tech_knowledge humanities"`
}

type ArtifactResponse struct {
	Title   string             `json:"title"`
	Summary string             `json:"summary"`
	Body    string             `json:"body"`
	Tags    []string           `json:"tags,omitempty"`
	Vocab   []store.VocabEntry `json:"vocab,omitempty"`
	Domain  string             `json:"domain"`
}

type RecallResponse struct {
	ArtifactId uuid.UUID `json:"artifact_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Score      float64   `json:"score"`
	Domain     string    `json:"domain"`
}

type PipelineStateResponse struct {
	Id                  uuid.UUID         `json:"id"`
	Position            string            `json:"position"`
	Intent              string            `json:"intent,omitempty"`
	Domain              string            `json:"domain,omitempty"`
	Confidence          float64           `json:"confidence,omitempty"`
	Recall              *RecallResponse   `json:"recall,omitempty"`
	Draft               *ArtifactResponse `json:"draft,omitempty"`
	RetryCount          int               `json:"retry_count"`
	LastError           string            `json:"last_error,omitempty"`
	PublishedArtifactId string            `json:"published_artifact_id,omitempty"`
	Merged              bool              `json:"merged"`
	MemoryWriteError    string            `json:"memory_write_error,omitempty"`
	Outcome             string            `json:"outcome,omitempty"`
	FinalOutput         string            `json:"final_output,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}

// ReindexDocumentMessage travels over the in-process event bus to the
// reindex consumer.
type ReindexDocumentMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
