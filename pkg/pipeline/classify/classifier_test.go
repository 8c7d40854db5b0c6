package classify

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"testing"

	"second-brain-be/pkg/llm"
	"second-brain-be/pkg/store"
)

type stubLLM struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return s.response, s.err
}

func (s *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	s.lastPrompt = prompt
	return s.response, s.err
}

func newTestClassifier(response string, err error) *Classifier {
	return NewClassifier(&stubLLM{response: response, err: err}, log.New(io.Discard, "", 0))
}

func TestClassify(t *testing.T) {
	longStatement := strings.Repeat("GORM soft deletes use a deleted_at column. ", 5)

	tests := []struct {
		name       string
		response   string
		llmErr     error
		text       string
		override   store.Intent
		wantIntent store.Intent
		wantDomain store.Domain
	}{
		{
			name:       "model verdict respected",
			response:   `{"intent": "query_knowledge", "domain": "tech_knowledge", "confidence": 0.9}`,
			text:       "how do gorm soft deletes work?",
			override:   store.IntentAuto,
			wantIntent: store.IntentQuery,
			wantDomain: store.DomainTech,
		},
		{
			name:       "model error falls back to save humanities",
			llmErr:     fmt.Errorf("connection refused"),
			text:       "some capture",
			override:   store.IntentAuto,
			wantIntent: store.IntentSave,
			wantDomain: store.DomainHumanities,
		},
		{
			name:       "garbage response falls back",
			response:   "I think this is about Spanish",
			text:       "hola",
			override:   store.IntentAuto,
			wantIntent: store.IntentSave,
			wantDomain: store.DomainHumanities,
		},
		{
			name:       "unknown domain coerced to humanities",
			response:   `{"intent": "save_note", "domain": "cooking", "confidence": 0.7}`,
			text:       "paella recipe",
			override:   store.IntentAuto,
			wantIntent: store.IntentSave,
			wantDomain: store.DomainHumanities,
		},
		{
			name:       "long statement without question mark reclassified as save",
			response:   `{"intent": "query_knowledge", "domain": "tech_knowledge", "confidence": 0.8}`,
			text:       longStatement,
			override:   store.IntentAuto,
			wantIntent: store.IntentSave,
			wantDomain: store.DomainTech,
		},
		{
			name:       "long statement with question mark stays query",
			response:   `{"intent": "query_knowledge", "domain": "tech_knowledge", "confidence": 0.8}`,
			text:       longStatement + " why?",
			override:   store.IntentAuto,
			wantIntent: store.IntentQuery,
			wantDomain: store.DomainTech,
		},
		{
			name:       "fullwidth question mark counts",
			response:   `{"intent": "query_knowledge", "domain": "humanities", "confidence": 0.8}`,
			text:       strings.Repeat("long question text ", 10) + "？",
			override:   store.IntentAuto,
			wantIntent: store.IntentQuery,
			wantDomain: store.DomainHumanities,
		},
		{
			name:       "query override disables heuristic",
			response:   `{"intent": "query_knowledge", "domain": "tech_knowledge", "confidence": 0.8}`,
			text:       longStatement,
			override:   store.IntentQuery,
			wantIntent: store.IntentQuery,
			wantDomain: store.DomainTech,
		},
		{
			name:       "save override pins intent but keeps domain",
			response:   `{"intent": "query_knowledge", "domain": "spanish_learning", "confidence": 0.8}`,
			text:       "que significa madrugar?",
			override:   store.IntentSave,
			wantIntent: store.IntentSave,
			wantDomain: store.DomainSpanish,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClassifier(tt.response, tt.llmErr)
			result := c.Classify(context.Background(), tt.text, tt.override)

			if result.Intent != tt.wantIntent {
				t.Errorf("Intent = %s, want %s", result.Intent, tt.wantIntent)
			}
			if result.Domain != tt.wantDomain {
				t.Errorf("Domain = %s, want %s", result.Domain, tt.wantDomain)
			}
		})
	}
}

func TestClassifyBoundsExcerpt(t *testing.T) {
	stub := &stubLLM{response: `{"intent": "save_note", "domain": "tech_knowledge", "confidence": 0.9}`}
	c := NewClassifier(stub, log.New(io.Discard, "", 0))

	text := strings.Repeat("a", 1200) + "SENTINEL"
	c.Classify(context.Background(), text, store.IntentAuto)

	if strings.Contains(stub.lastPrompt, "SENTINEL") {
		t.Error("prompt should only carry a bounded excerpt of the capture")
	}
	if !strings.Contains(stub.lastPrompt, strings.Repeat("a", 100)) {
		t.Error("prompt should carry the opening of the capture")
	}
}

func TestParseClassificationClampsConfidence(t *testing.T) {
	result, err := parseClassification(`{"intent": "save_note", "domain": "tech_knowledge", "confidence": 1.7}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Confidence != 1.0 {
		t.Errorf("Confidence = %f, want 1.0", result.Confidence)
	}
}

func TestParseClassificationToleratesProse(t *testing.T) {
	response := "Sure! Here is the classification:\n```json\n{\"intent\": \"save_note\", \"domain\": \"spanish_learning\", \"confidence\": 0.95}\n```"
	result, err := parseClassification(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Domain != "spanish_learning" {
		t.Errorf("Domain = %s, want spanish_learning", result.Domain)
	}
}
