package validate

import (
	"io"
	"log"
	"testing"

	"second-brain-be/pkg/store"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		artifact *store.Artifact
		wantErr  bool
	}{
		{
			name:     "nil draft",
			artifact: nil,
			wantErr:  true,
		},
		{
			name: "valid prose draft",
			artifact: &store.Artifact{
				Title:   "GORM Soft Deletes",
				Summary: "How gorm.DeletedAt works.",
				Body:    "GORM flags rows instead of removing them.",
			},
			wantErr: false,
		},
		{
			name: "blank title",
			artifact: &store.Artifact{
				Title:   "   ",
				Summary: "Something",
				Body:    "Body",
			},
			wantErr: true,
		},
		{
			name: "blank summary",
			artifact: &store.Artifact{
				Title:   "Title",
				Summary: "\t",
				Body:    "Body",
			},
			wantErr: true,
		},
		{
			name: "no body but vocab present",
			artifact: &store.Artifact{
				Title:   "Verbos",
				Summary: "Daily verbs",
				Domain:  store.DomainSpanish,
				Vocab: []store.VocabEntry{
					{Word: "madrugar", Meaning: "to get up early"},
				},
			},
			wantErr: false,
		},
		{
			name: "neither body nor vocab",
			artifact: &store.Artifact{
				Title:   "Empty",
				Summary: "Empty note",
			},
			wantErr: true,
		},
		{
			name: "spanish vocab with empty word",
			artifact: &store.Artifact{
				Title:   "Verbos",
				Summary: "Daily verbs",
				Domain:  store.DomainSpanish,
				Vocab: []store.VocabEntry{
					{Word: "  ", Meaning: "???"},
				},
			},
			wantErr: true,
		},
	}

	v := NewValidator(log.New(io.Discard, "", 0))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.artifact)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
