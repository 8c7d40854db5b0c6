package synthesize

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"second-brain-be/internal/constant"
	"second-brain-be/pkg/llm"
	"second-brain-be/pkg/store"
)

// Synthesizer drafts structured artifacts from raw captures. Drafting uses a
// warmer temperature than classification; the output still has to be JSON.
type Synthesizer struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewSynthesizer(llmProvider llm.LLMProvider, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// DraftNew produces a fresh artifact from the capture. feedback carries the
// validator's complaint on retries, empty on the first attempt.
func (s *Synthesizer) DraftNew(ctx context.Context, text string, domain store.Domain, feedback string) (*store.Artifact, error) {
	prompt := fmt.Sprintf(constant.DraftNewPromptV1,
		domainInstructions(domain),
		text,
		feedbackBlock(feedback),
	)
	return s.draft(ctx, prompt, domain)
}

// DraftMerge folds the capture into the text of an existing document.
func (s *Synthesizer) DraftMerge(ctx context.Context, existing, text string, domain store.Domain, feedback string) (*store.Artifact, error) {
	prompt := fmt.Sprintf(constant.DraftMergePromptV1,
		domainInstructions(domain),
		existing,
		text,
		feedbackBlock(feedback),
	)
	return s.draft(ctx, prompt, domain)
}

func (s *Synthesizer) draft(ctx context.Context, prompt string, domain store.Domain) (*store.Artifact, error) {
	response, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, fmt.Errorf("synthesis call failed: %w", err)
	}

	artifact, err := ParseArtifact(response)
	if err != nil {
		return nil, err
	}

	artifact.Domain = domain
	s.logger.Printf("[SYNTHESIZE] Drafted %q (%d tags, %d vocab entries)",
		artifact.Title, len(artifact.Tags), len(artifact.Vocab))
	return artifact, nil
}

// ParseArtifact extracts an artifact from a model response. Tolerates code
// fences and prose around the JSON object.
func ParseArtifact(response string) (*store.Artifact, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON object in synthesis response")
	}

	var artifact store.Artifact
	if err := json.Unmarshal([]byte(jsonContent), &artifact); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}

	return &artifact, nil
}

func domainInstructions(domain store.Domain) string {
	switch domain {
	case store.DomainSpanish:
		return constant.DomainInstructionsSpanishV1
	case store.DomainTech:
		return constant.DomainInstructionsTechV1
	default:
		return constant.DomainInstructionsHumanitiesV1
	}
}

func feedbackBlock(feedback string) string {
	if feedback == "" {
		return ""
	}
	return fmt.Sprintf(constant.ValidatorFeedbackBlockV1, feedback)
}

func extractJSON(response string) string {
	// Strip a ```json fence first so the brace scan does not pick up braces
	// inside surrounding prose.
	if idx := strings.Index(response, "```"); idx != -1 {
		rest := response[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end != -1 {
			response = rest[:end]
		}
	}

	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
