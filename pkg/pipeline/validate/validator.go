package validate

import (
	"fmt"
	"log"
	"strings"

	"second-brain-be/pkg/store"
)

// Validator checks a draft before it reaches the human checkpoint. Its error
// message is fed back into the next synthesis attempt verbatim, so it should
// name the exact defect.
type Validator struct {
	logger *log.Logger
}

func NewValidator(logger *log.Logger) *Validator {
	return &Validator{
		logger: logger,
	}
}

// Validate returns nil when the draft is presentable.
func (v *Validator) Validate(artifact *store.Artifact) error {
	if artifact == nil {
		return fmt.Errorf("no draft was produced")
	}
	if strings.TrimSpace(artifact.Title) == "" {
		return fmt.Errorf("draft title is blank")
	}
	if strings.TrimSpace(artifact.Summary) == "" {
		return fmt.Errorf("draft summary is blank")
	}
	if strings.TrimSpace(artifact.Body) == "" && len(artifact.Vocab) == 0 {
		return fmt.Errorf("draft has neither body text nor vocabulary entries")
	}
	if artifact.Domain == store.DomainSpanish {
		for i, entry := range artifact.Vocab {
			if strings.TrimSpace(entry.Word) == "" {
				return fmt.Errorf("vocabulary entry %d has an empty word", i+1)
			}
		}
	}

	v.logger.Printf("[VALIDATE] Draft %q accepted", artifact.Title)
	return nil
}
