package store

import (
	"time"

	"github.com/google/uuid"
)

// Intent is what the user wants done with the input.
type Intent string

const (
	IntentQuery Intent = "query_knowledge"
	IntentSave  Intent = "save_note"
	IntentAuto  Intent = "auto" // No caller override, classifier decides
)

// Domain is a knowledge category. It determines the routing target in the
// document store and the similarity threshold used during recall.
type Domain string

const (
	DomainSpanish    Domain = "spanish_learning"
	DomainTech       Domain = "tech_knowledge"
	DomainHumanities Domain = "humanities"
)

// ValidDomain reports whether d is one of the known knowledge domains.
func ValidDomain(d Domain) bool {
	switch d {
	case DomainSpanish, DomainTech, DomainHumanities:
		return true
	}
	return false
}

// Stage is the pipeline position persisted with every checkpoint.
type Stage string

const (
	StageNormalize  Stage = "normalize"
	StageClassify   Stage = "classify"
	StageRecall     Stage = "recall"
	StageAnswer     Stage = "answer"
	StageSynthesize Stage = "synthesize"
	StageValidate   Stage = "validate"
	StageReview     Stage = "review" // Paused, waiting for a human decision
	StagePublish    Stage = "publish"
	StageArchive    Stage = "archive"
	StageTerminal   Stage = "terminal"
)

// Outcome labels the terminal result of a session.
type Outcome string

const (
	OutcomePublished Outcome = "published"
	OutcomeAnswered  Outcome = "answered"
	OutcomeRejected  Outcome = "rejected"
)

// VocabEntry is one row of a vocabulary table in a spanish_learning artifact.
type VocabEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
	Example string `json:"example"`
}

// Artifact is the structured knowledge unit produced by synthesis and
// persisted by the publisher. Vocab is populated only for templated
// spanish_learning notes; everything else carries prose in Body.
type Artifact struct {
	Title   string       `json:"title"`
	Summary string       `json:"summary"`
	Body    string       `json:"body"`
	Tags    []string     `json:"tags,omitempty"`
	Vocab   []VocabEntry `json:"vocab,omitempty"`
	Domain  Domain       `json:"domain"`
}

// RecallResult is the closest prior artifact found in semantic memory.
// Ephemeral: recomputed per session, never persisted on its own.
type RecallResult struct {
	ArtifactId uuid.UUID `json:"artifact_id"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Score      float64   `json:"score"` // Cosine similarity, higher = closer
	Domain     Domain    `json:"domain"`
}

// Classification is the classifier's verdict for one input.
type Classification struct {
	Intent     Intent  `json:"intent"`
	Domain     Domain  `json:"domain"`
	Confidence float64 `json:"confidence"`
}

// Snapshot is the full pipeline state for one session. It is serialized
// verbatim into the checkpoint store so a paused run survives restarts.
type Snapshot struct {
	// Set once by the normalizer, immutable afterwards.
	RawText       string `json:"raw_text"`
	SourceLocator string `json:"source_locator,omitempty"`

	// Classifier output. Domain remains refinable via OverrideDomain.
	Intent     Intent  `json:"intent,omitempty"`
	Domain     Domain  `json:"domain,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`

	Recall *RecallResult `json:"recall,omitempty"`
	Draft  *Artifact     `json:"draft,omitempty"`

	RetryCount int    `json:"retry_count"`
	LastError  string `json:"last_error,omitempty"`

	// Set only at the human checkpoint. Takes precedence over Domain.
	OverrideDomain Domain `json:"override_domain,omitempty"`

	PublishedArtifactId string  `json:"published_artifact_id,omitempty"`
	Merged              bool    `json:"merged,omitempty"`
	MemoryWriteError    string  `json:"memory_write_error,omitempty"`
	Outcome             Outcome `json:"outcome,omitempty"`
	FinalOutput         string  `json:"final_output,omitempty"`
}

// Clone deep-copies the snapshot so cached state cannot be mutated through
// a live session the orchestrator is still driving.
func (s *Snapshot) Clone() Snapshot {
	clone := *s
	if s.Recall != nil {
		recall := *s.Recall
		clone.Recall = &recall
	}
	if s.Draft != nil {
		draft := *s.Draft
		draft.Tags = append([]string(nil), s.Draft.Tags...)
		draft.Vocab = append([]VocabEntry(nil), s.Draft.Vocab...)
		clone.Draft = &draft
	}
	return clone
}

// AuthoritativeDomain resolves the routing domain: a human override always
// wins over the classifier.
func (s *Snapshot) AuthoritativeDomain() Domain {
	if s.OverrideDomain != "" {
		return s.OverrideDomain
	}
	return s.Domain
}

// PipelineSession is one resumable run, keyed by an opaque id.
type PipelineSession struct {
	Id        uuid.UUID `json:"id"`
	Position  Stage     `json:"position"`
	State     Snapshot  `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone deep-copies the session, state included.
func (s *PipelineSession) Clone() *PipelineSession {
	clone := *s
	clone.State = s.State.Clone()
	return &clone
}

// Terminal reports whether the session has finished.
func (s *PipelineSession) Terminal() bool {
	return s.Position == StageTerminal
}

// ReviewDecision carries the human checkpoint verdict back into the pipeline.
type ReviewDecision struct {
	Approve        bool    `json:"approve"`
	Title          *string `json:"title,omitempty"`
	Summary        *string `json:"summary,omitempty"`
	Body           *string `json:"body,omitempty"`
	OverrideDomain Domain  `json:"override_domain,omitempty"`
}
