package normalize

import (
	"errors"
	"log"
	"regexp"
	"strings"
)

// ErrEmptyInput is the only fatal intake error. Everything downstream
// degrades; an empty capture has nothing to degrade to.
var ErrEmptyInput = errors.New("input is empty after normalization")

var urlPattern = regexp.MustCompile(`^https?://\S+$`)

// Result is the cleaned capture handed to the classifier.
type Result struct {
	Text          string
	SourceLocator string // URL the capture came from, if the input carried one
}

// Normalizer cleans raw captures before they enter the pipeline.
type Normalizer struct {
	logger *log.Logger
}

func NewNormalizer(logger *log.Logger) *Normalizer {
	return &Normalizer{
		logger: logger,
	}
}

// Normalize trims and de-noises the raw capture. A leading line that is a
// bare URL becomes the source locator; the rest is the payload.
func (n *Normalizer) Normalize(raw string) (*Result, error) {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.TrimPrefix(text, "\uFEFF")
	text = stripZeroWidth(text)
	text = collapseBlankLines(text)
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, ErrEmptyInput
	}

	result := &Result{Text: text}

	lines := strings.SplitN(text, "\n", 2)
	first := strings.TrimSpace(lines[0])
	if urlPattern.MatchString(first) {
		result.SourceLocator = first
		if len(lines) > 1 {
			rest := strings.TrimSpace(lines[1])
			if rest != "" {
				result.Text = rest
			}
			// A bare URL with no body stays as the payload too, so the
			// synthesizer has something to work with.
		}
	}

	n.logger.Printf("[NORMALIZE] Cleaned capture (%d chars, locator=%q)", len(result.Text), result.SourceLocator)
	return result, nil
}

var zeroWidth = strings.NewReplacer(
	"\u200B", "", // zero width space
	"\u200C", "", // zero width non-joiner
	"\u200D", "", // zero width joiner
	"\u00A0", " ", // non-breaking space
)

func stripZeroWidth(s string) string {
	return zeroWidth.Replace(s)
}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(s string) string {
	return blankRuns.ReplaceAllString(s, "\n\n")
}
