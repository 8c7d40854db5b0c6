package docstore

import (
	"strings"
	"testing"

	"second-brain-be/pkg/store"
)

func TestRenderContentWithVocab(t *testing.T) {
	artifact := &store.Artifact{
		Body: "Study note about greetings.",
		Vocab: []store.VocabEntry{
			{Word: "hola", Meaning: "hello", Example: "¡Hola! ¿Qué tal?"},
			{Word: "adiós", Meaning: "goodbye", Example: "Adiós, hasta luego."},
		},
	}

	content := RenderContent(artifact)

	if !strings.Contains(content, vocabTableHeading) {
		t.Error("rendered content missing vocab table heading")
	}
	if !strings.Contains(content, "| hola | hello |") {
		t.Errorf("rendered content missing vocab row:\n%s", content)
	}
	if !strings.HasPrefix(content, "Study note about greetings.") {
		t.Error("body should lead the content")
	}
}

func TestRenderContentEscapesPipes(t *testing.T) {
	artifact := &store.Artifact{
		Body: "b",
		Vocab: []store.VocabEntry{
			{Word: "o|o", Meaning: "pipe\nword", Example: "x"},
		},
	}

	content := RenderContent(artifact)
	if !strings.Contains(content, `o\|o`) {
		t.Errorf("pipe not escaped:\n%s", content)
	}
	if strings.Contains(content, "pipe\nword") {
		t.Error("newline not flattened inside cell")
	}
}

func TestInsertRows(t *testing.T) {
	base := RenderContent(&store.Artifact{
		Body: "Greetings.",
		Vocab: []store.VocabEntry{
			{Word: "hola", Meaning: "hello", Example: "Hola."},
		},
	})

	t.Run("adds new rows", func(t *testing.T) {
		updated, ok := insertRows(base, []store.VocabEntry{
			{Word: "gracias", Meaning: "thanks", Example: "Gracias."},
		})
		if !ok {
			t.Fatal("expected table to be found")
		}
		if !strings.Contains(updated, "| gracias | thanks |") {
			t.Errorf("new row missing:\n%s", updated)
		}
		if !strings.Contains(updated, "| hola | hello |") {
			t.Error("existing row lost")
		}
	})

	t.Run("skips duplicate words case-insensitively", func(t *testing.T) {
		updated, ok := insertRows(base, []store.VocabEntry{
			{Word: "HOLA", Meaning: "hello again", Example: ""},
		})
		if !ok {
			t.Fatal("expected table to be found")
		}
		if strings.Count(updated, "hello") != 1 {
			t.Errorf("duplicate word was inserted:\n%s", updated)
		}
	})

	t.Run("no table reports false", func(t *testing.T) {
		_, ok := insertRows("Just prose, no table here.", []store.VocabEntry{
			{Word: "hola", Meaning: "hello"},
		})
		if ok {
			t.Error("expected no table to be found")
		}
	})
}
