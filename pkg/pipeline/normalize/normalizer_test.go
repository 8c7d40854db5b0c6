package normalize

import (
	"errors"
	"io"
	"log"
	"testing"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(log.New(io.Discard, "", 0))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantText    string
		wantLocator string
		wantErr     error
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyInput,
		},
		{
			name:    "whitespace only",
			input:   "   \n\n\t  ",
			wantErr: ErrEmptyInput,
		},
		{
			name:     "plain text is trimmed",
			input:    "  hola means hello  \n",
			wantText: "hola means hello",
		},
		{
			name:     "crlf normalized",
			input:    "line one\r\nline two",
			wantText: "line one\nline two",
		},
		{
			name:     "blank runs collapsed",
			input:    "first\n\n\n\n\nsecond",
			wantText: "first\n\nsecond",
		},
		{
			name:     "byte order mark stripped",
			input:    "\uFEFFhola means hello",
			wantText: "hola means hello",
		},
		{
			name:     "zero width characters stripped",
			input:    "ho\u200Bla\u00A0means hello",
			wantText: "hola means hello",
		},
		{
			name:        "leading url becomes locator",
			input:       "https://example.com/post\nNotes about the post",
			wantText:    "Notes about the post",
			wantLocator: "https://example.com/post",
		},
		{
			name:        "bare url stays as payload",
			input:       "https://example.com/post",
			wantText:    "https://example.com/post",
			wantLocator: "https://example.com/post",
		},
		{
			name:     "url mid-text is not a locator",
			input:    "see https://example.com for details",
			wantText: "see https://example.com for details",
		},
	}

	n := newTestNormalizer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := n.Normalize(tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize() unexpected error: %v", err)
			}
			if result.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", result.Text, tt.wantText)
			}
			if result.SourceLocator != tt.wantLocator {
				t.Errorf("SourceLocator = %q, want %q", result.SourceLocator, tt.wantLocator)
			}
		})
	}
}
