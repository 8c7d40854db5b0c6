package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"second-brain-be/internal/constant"
	"second-brain-be/pkg/llm"
	"second-brain-be/pkg/store"
	"second-brain-be/pkg/utils"
)

// longStatementRunes is the length past which question-free input stops
// looking like a query. Long pastes are almost always captures to save.
const longStatementRunes = 150

// excerptChars bounds how much of the capture the model sees. Intent and
// domain are decided in the opening lines; the rest is token spend.
const excerptChars = 800

// Classifier routes a capture to an intent and a knowledge domain.
// Classification never fails the pipeline; parse and model errors fall back
// to a conservative save into humanities.
type Classifier struct {
	llmProvider llm.LLMProvider
	logger      *log.Logger
}

func NewClassifier(llmProvider llm.LLMProvider, logger *log.Logger) *Classifier {
	return &Classifier{
		llmProvider: llmProvider,
		logger:      logger,
	}
}

// Classify analyzes the normalized text. An override of IntentSave or
// IntentQuery pins the intent and disables the long-statement heuristic;
// the domain is still computed so routing works either way.
func (c *Classifier) Classify(ctx context.Context, text string, override store.Intent) *store.Classification {
	result := c.resolve(ctx, text)

	if override == store.IntentSave || override == store.IntentQuery {
		result.Intent = override
		c.logger.Printf("[CLASSIFY] Intent pinned by caller: %s (domain=%s, confidence=%.2f)",
			result.Intent, result.Domain, result.Confidence)
		return result
	}

	// A long statement with no question mark is a capture, whatever the
	// model thought. Applies only in auto mode.
	if result.Intent == store.IntentQuery && looksLikeStatement(text) {
		c.logger.Printf("[CLASSIFY] Reclassified query as save: %d runes, no question mark", len([]rune(text)))
		result.Intent = store.IntentSave
	}

	c.logger.Printf("[CLASSIFY] Resolved: intent=%s domain=%s confidence=%.2f",
		result.Intent, result.Domain, result.Confidence)
	return result
}

func (c *Classifier) resolve(ctx context.Context, text string) *store.Classification {
	prompt := fmt.Sprintf(constant.ClassifyPromptV1, utils.Truncate(text, excerptChars))

	response, err := c.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.0))
	if err != nil {
		c.logger.Printf("[WARN] Classification call failed, using fallback: %v", err)
		return fallbackClassification()
	}

	parsed, err := parseClassification(response)
	if err != nil {
		c.logger.Printf("[WARN] Classification parse failed, using fallback: %v", err)
		return fallbackClassification()
	}

	return parsed
}

func parseClassification(response string) (*store.Classification, error) {
	jsonContent := extractJSON(response)
	if jsonContent == "" {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var result store.Classification
	if err := json.Unmarshal([]byte(jsonContent), &result); err != nil {
		return nil, fmt.Errorf("failed to parse classification: %w", err)
	}

	if result.Intent != store.IntentQuery && result.Intent != store.IntentSave {
		result.Intent = store.IntentSave
	}
	if !store.ValidDomain(result.Domain) {
		result.Domain = store.DomainHumanities
	}
	if result.Confidence < 0 {
		result.Confidence = 0
	}
	if result.Confidence > 1 {
		result.Confidence = 1
	}

	return &result, nil
}

// fallbackClassification is the safe default: keep the capture, file it
// under the catch-all domain.
func fallbackClassification() *store.Classification {
	return &store.Classification{
		Intent:     store.IntentSave,
		Domain:     store.DomainHumanities,
		Confidence: 0,
	}
}

func looksLikeStatement(text string) bool {
	if len([]rune(text)) <= longStatementRunes {
		return false
	}
	return !strings.ContainsAny(text, "?？")
}

func extractJSON(response string) string {
	startIdx := strings.Index(response, "{")
	endIdx := strings.LastIndex(response, "}")

	if startIdx == -1 || endIdx == -1 || endIdx <= startIdx {
		return ""
	}

	return response[startIdx : endIdx+1]
}
