package memory

import (
	"testing"

	"second-brain-be/pkg/store"

	"github.com/google/uuid"
)

func TestSaveStoresACopy(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.PipelineSession{
		Id:       uuid.New(),
		Position: store.StageReview,
		State: store.Snapshot{
			RawText: "capture",
			Draft:   &store.Artifact{Title: "Before", Tags: []string{"a"}},
		},
	}
	repo.Save(session)

	// Mutations on the live session must not bleed into the cache.
	session.Position = store.StagePublish
	session.State.Draft.Title = "After"
	session.State.Draft.Tags[0] = "b"

	cached, found := repo.Get(session.Id.String())
	if !found {
		t.Fatal("session not found in cache")
	}
	if cached.Position != store.StageReview {
		t.Errorf("Position = %s, want %s", cached.Position, store.StageReview)
	}
	if cached.State.Draft.Title != "Before" {
		t.Errorf("Draft.Title = %q, want %q", cached.State.Draft.Title, "Before")
	}
	if cached.State.Draft.Tags[0] != "a" {
		t.Errorf("Draft.Tags[0] = %q, want %q", cached.State.Draft.Tags[0], "a")
	}
}

func TestGetReturnsACopy(t *testing.T) {
	repo := NewSessionRepository()

	session := &store.PipelineSession{
		Id:    uuid.New(),
		State: store.Snapshot{Recall: &store.RecallResult{Title: "Match"}},
	}
	repo.Save(session)

	first, _ := repo.Get(session.Id.String())
	first.State.Recall.Title = "Tampered"

	second, _ := repo.Get(session.Id.String())
	if second.State.Recall.Title != "Match" {
		t.Errorf("Recall.Title = %q, want %q", second.State.Recall.Title, "Match")
	}
}
