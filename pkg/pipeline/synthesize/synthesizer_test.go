package synthesize

import (
	"testing"
)

func TestParseArtifact(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		wantTitle string
		wantVocab int
		wantErr   bool
	}{
		{
			name:      "bare json",
			response:  `{"title": "Pointers", "summary": "Go pointers", "body": "A pointer holds an address."}`,
			wantTitle: "Pointers",
		},
		{
			name:      "fenced json",
			response:  "```json\n{\"title\": \"Verbos\", \"summary\": \"s\", \"body\": \"b\", \"vocab\": [{\"word\": \"ir\", \"meaning\": \"to go\"}]}\n```",
			wantTitle: "Verbos",
			wantVocab: 1,
		},
		{
			name:      "json wrapped in prose",
			response:  "Here is your note:\n{\"title\": \"Stoicism\", \"summary\": \"s\", \"body\": \"b\"}\nHope that helps!",
			wantTitle: "Stoicism",
		},
		{
			name:     "no json at all",
			response: "I could not produce a note for this input.",
			wantErr:  true,
		},
		{
			name:     "broken json",
			response: `{"title": "Oops", "summary":`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			artifact, err := ParseArtifact(tt.response)

			if tt.wantErr {
				if err == nil {
					t.Fatal("ParseArtifact() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArtifact() unexpected error: %v", err)
			}
			if artifact.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", artifact.Title, tt.wantTitle)
			}
			if len(artifact.Vocab) != tt.wantVocab {
				t.Errorf("Vocab count = %d, want %d", len(artifact.Vocab), tt.wantVocab)
			}
		})
	}
}

func TestExtractJSONIgnoresBracesOutsideFence(t *testing.T) {
	response := "Note {draft} below:\n```json\n{\"title\": \"T\", \"summary\": \"s\", \"body\": \"b\"}\n```"
	artifact, err := ParseArtifact(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if artifact.Title != "T" {
		t.Errorf("Title = %q, want T", artifact.Title)
	}
}
