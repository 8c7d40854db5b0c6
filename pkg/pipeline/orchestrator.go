package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"second-brain-be/pkg/docstore"
	"second-brain-be/pkg/pipeline/normalize"
	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

// MaxRetries bounds how often a rejected draft is re-synthesized. Two
// retries means three attempts total before the draft goes to review as-is.
const MaxRetries = 2

// ErrSessionNotFound is returned by Resume for unknown session ids.
var ErrSessionNotFound = fmt.Errorf("pipeline session not found")

// Stage collaborators. The orchestrator only sequences; each stage owns its
// own degradation policy.
type Normalizer interface {
	Normalize(raw string) (*normalize.Result, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string, override store.Intent) *store.Classification
}

type Recaller interface {
	Recall(ctx context.Context, text string, domain store.Domain) *store.RecallResult
}

type Synthesizer interface {
	DraftNew(ctx context.Context, text string, domain store.Domain, feedback string) (*store.Artifact, error)
	DraftMerge(ctx context.Context, existing, text string, domain store.Domain, feedback string) (*store.Artifact, error)
}

type Validator interface {
	Validate(artifact *store.Artifact) error
}

type Publisher interface {
	Publish(ctx context.Context, snap *store.Snapshot) (uuid.UUID, bool, error)
}

type Archiver interface {
	Archive(ctx context.Context, documentId uuid.UUID) error
}

// Orchestrator drives a capture through the pipeline, checkpointing after
// every stage. A session either runs to a terminal outcome or pauses at the
// review stage until a human decision arrives via Resume.
type Orchestrator struct {
	normalizer  Normalizer
	classifier  Classifier
	recaller    Recaller
	synthesizer Synthesizer
	validator   Validator
	publisher   Publisher
	archiver    Archiver
	docs        docstore.Store
	checkpoints CheckpointStore
	logger      *log.Logger
}

func NewOrchestrator(
	normalizer Normalizer,
	classifier Classifier,
	recaller Recaller,
	synthesizer Synthesizer,
	validator Validator,
	publisher Publisher,
	archiver Archiver,
	docs docstore.Store,
	checkpoints CheckpointStore,
	logger *log.Logger,
) *Orchestrator {
	return &Orchestrator{
		normalizer:  normalizer,
		classifier:  classifier,
		recaller:    recaller,
		synthesizer: synthesizer,
		validator:   validator,
		publisher:   publisher,
		archiver:    archiver,
		docs:        docs,
		checkpoints: checkpoints,
		logger:      logger,
	}
}

// Start runs a new session from raw input. The returned session is either
// terminal (query answered, or nothing to do) or paused at review. The only
// error surfaced to the caller before a session exists is empty input.
func (o *Orchestrator) Start(ctx context.Context, rawInput string, override store.Intent) (*store.PipelineSession, error) {
	normalized, err := o.normalizer.Normalize(rawInput)
	if err != nil {
		return nil, err
	}

	session := &store.PipelineSession{
		Id:       uuid.New(),
		Position: store.StageClassify,
		State: store.Snapshot{
			RawText:       normalized.Text,
			SourceLocator: normalized.SourceLocator,
		},
	}

	o.logger.Printf("[PIPELINE] Session %s started (override=%s)", session.Id, override)

	if err := o.run(ctx, session, override); err != nil {
		return session, err
	}
	return session, nil
}

// Resume applies a human decision to a paused session. A session stranded
// past review (a publish failure, or a crash before archiving finished) is
// re-driven to terminal; the approval was already given when it left review.
// Resuming a terminal or still-running session returns it unchanged.
func (o *Orchestrator) Resume(ctx context.Context, id uuid.UUID, decision store.ReviewDecision) (*store.PipelineSession, error) {
	session, err := o.checkpoints.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	switch session.Position {
	case store.StageReview:
		// Fall through to the decision handling below.
	case store.StagePublish, store.StageArchive:
		o.logger.Printf("[PIPELINE] Session %s re-entering %s", id, session.Position)
		if err := o.run(ctx, session, store.IntentAuto); err != nil {
			return session, err
		}
		return session, nil
	default:
		o.logger.Printf("[PIPELINE] Session %s resumed at %s, nothing to do", id, session.Position)
		return session, nil
	}

	if !decision.Approve {
		session.State.Outcome = store.OutcomeRejected
		session.State.FinalOutput = "Capture rejected at review. Nothing was published."
		session.Position = store.StageTerminal
		o.logger.Printf("[PIPELINE] Session %s rejected at review", id)
		if err := o.checkpoints.Save(ctx, session); err != nil {
			return session, err
		}
		return session, nil
	}

	o.applyEdits(session, decision)
	session.Position = store.StagePublish

	if err := o.run(ctx, session, store.IntentAuto); err != nil {
		return session, err
	}
	return session, nil
}

// applyEdits folds reviewer corrections into the draft before publishing.
func (o *Orchestrator) applyEdits(session *store.PipelineSession, decision store.ReviewDecision) {
	if store.ValidDomain(decision.OverrideDomain) {
		session.State.OverrideDomain = decision.OverrideDomain
	}

	if decision.Title == nil && decision.Summary == nil && decision.Body == nil {
		return
	}

	if session.State.Draft == nil {
		session.State.Draft = &store.Artifact{Body: session.State.RawText}
	}
	if decision.Title != nil {
		session.State.Draft.Title = *decision.Title
	}
	if decision.Summary != nil {
		session.State.Draft.Summary = *decision.Summary
	}
	if decision.Body != nil {
		session.State.Draft.Body = *decision.Body
	}
}

// run advances the session until it pauses or terminates, checkpointing
// after every transition.
func (o *Orchestrator) run(ctx context.Context, session *store.PipelineSession, override store.Intent) error {
	for {
		switch session.Position {
		case store.StageClassify:
			o.stageClassify(ctx, session, override)
		case store.StageRecall:
			o.stageRecall(ctx, session)
		case store.StageAnswer:
			o.stageAnswer(session)
		case store.StageSynthesize:
			o.stageSynthesize(ctx, session)
		case store.StageValidate:
			o.stageValidate(session)
		case store.StagePublish:
			if err := o.stagePublish(ctx, session); err != nil {
				session.State.LastError = err.Error()
				if saveErr := o.checkpoints.Save(ctx, session); saveErr != nil {
					o.logger.Printf("[WARN] Could not checkpoint publish failure for session %s: %v", session.Id, saveErr)
				}
				return err
			}
		case store.StageArchive:
			o.stageArchive(ctx, session)
		case store.StageReview, store.StageTerminal:
			// Already persisted by the transition that got us here.
			return nil
		default:
			return fmt.Errorf("session %s at unknown stage %q", session.Id, session.Position)
		}

		if err := o.checkpoints.Save(ctx, session); err != nil {
			return err
		}
	}
}

func (o *Orchestrator) stageClassify(ctx context.Context, session *store.PipelineSession, override store.Intent) {
	result := o.classifier.Classify(ctx, session.State.RawText, override)
	session.State.Intent = result.Intent
	session.State.Domain = result.Domain
	session.State.Confidence = result.Confidence
	session.Position = store.StageRecall
}

func (o *Orchestrator) stageRecall(ctx context.Context, session *store.PipelineSession) {
	session.State.Recall = o.recaller.Recall(ctx, session.State.RawText, session.State.Domain)
	if session.State.Intent == store.IntentQuery {
		session.Position = store.StageAnswer
	} else {
		session.Position = store.StageSynthesize
	}
}

// stageAnswer terminates a query session with whatever recall found. No
// checkpoint pause; questions do not need review.
func (o *Orchestrator) stageAnswer(session *store.PipelineSession) {
	session.State.FinalOutput = formatAnswer(session.State.Recall)
	session.State.Outcome = store.OutcomeAnswered
	session.Position = store.StageTerminal
}

func (o *Orchestrator) stageSynthesize(ctx context.Context, session *store.PipelineSession) {
	snap := &session.State
	feedback := snap.LastError

	var artifact *store.Artifact
	var err error

	if o.mergeDraftEligible(snap) {
		existing, readErr := o.docs.Read(ctx, snap.Recall.ArtifactId)
		if readErr != nil {
			o.logger.Printf("[WARN] Could not read merge target %s, drafting new: %v", snap.Recall.ArtifactId, readErr)
			artifact, err = o.synthesizer.DraftNew(ctx, snap.RawText, snap.Domain, feedback)
		} else {
			artifact, err = o.synthesizer.DraftMerge(ctx, existing.Content, snap.RawText, snap.Domain, feedback)
		}
	} else {
		artifact, err = o.synthesizer.DraftNew(ctx, snap.RawText, snap.Domain, feedback)
	}

	if err != nil {
		o.logger.Printf("[WARN] Synthesis failed for session %s: %v", session.Id, err)
		snap.Draft = nil
		snap.LastError = err.Error()
	} else {
		snap.Draft = artifact
	}
	session.Position = store.StageValidate
}

// mergeDraftEligible mirrors the publisher's merge gate so the draft is
// written against the document it will actually land in.
func (o *Orchestrator) mergeDraftEligible(snap *store.Snapshot) bool {
	return snap.Recall != nil && snap.Recall.Domain == snap.Domain
}

func (o *Orchestrator) stageValidate(session *store.PipelineSession) {
	snap := &session.State

	if err := o.validator.Validate(snap.Draft); err != nil {
		if snap.RetryCount < MaxRetries {
			snap.RetryCount++
			snap.LastError = err.Error()
			o.logger.Printf("[PIPELINE] Draft rejected (%v), retry %d/%d", err, snap.RetryCount, MaxRetries)
			session.Position = store.StageSynthesize
			return
		}
		// Out of retries. The reviewer sees the failure and decides; an
		// approval publishes the raw capture.
		snap.LastError = err.Error()
		o.logger.Printf("[PIPELINE] Draft rejected after %d attempts, pausing for review", MaxRetries+1)
		session.Position = store.StageReview
		return
	}

	snap.LastError = ""
	session.Position = store.StageReview
}

func (o *Orchestrator) stagePublish(ctx context.Context, session *store.PipelineSession) error {
	docId, merged, err := o.publisher.Publish(ctx, &session.State)
	if err != nil {
		return err
	}
	session.State.PublishedArtifactId = docId.String()
	session.State.Merged = merged
	session.Position = store.StageArchive
	return nil
}

// stageArchive is best-effort: a failed memory write is recorded on the
// session but never undoes a successful publish.
func (o *Orchestrator) stageArchive(ctx context.Context, session *store.PipelineSession) {
	docId, err := uuid.Parse(session.State.PublishedArtifactId)
	if err == nil {
		err = o.archiver.Archive(ctx, docId)
	}
	if err != nil {
		o.logger.Printf("[WARN] Archiving failed for session %s: %v", session.Id, err)
		session.State.MemoryWriteError = err.Error()
	}

	session.State.Outcome = store.OutcomePublished
	session.State.FinalOutput = formatPublished(&session.State)
	session.Position = store.StageTerminal
}

func formatAnswer(recall *store.RecallResult) string {
	if recall == nil {
		return "No saved knowledge matches this question."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Closest note: %s", recall.Title)
	if summary := strings.TrimSpace(recall.Summary); summary != "" {
		fmt.Fprintf(&b, ": %s", summary)
	}
	fmt.Fprintf(&b, " (similarity %.2f)", recall.Score)
	return b.String()
}

func formatPublished(snap *store.Snapshot) string {
	action := "Created"
	if snap.Merged {
		action = "Merged into"
	}
	title := ""
	if snap.Draft != nil {
		title = snap.Draft.Title
	}
	out := fmt.Sprintf("%s document %s (%s)", action, snap.PublishedArtifactId, snap.AuthoritativeDomain())
	if title != "" {
		out = fmt.Sprintf("%s document %q (%s)", action, title, snap.AuthoritativeDomain())
	}
	if snap.MemoryWriteError != "" {
		out += ". Warning: semantic memory update failed."
	}
	return out
}
