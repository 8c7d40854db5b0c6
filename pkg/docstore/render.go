package docstore

import (
	"fmt"
	"strings"

	"second-brain-be/pkg/store"
)

const vocabTableHeading = "## Vocabulario"

// RenderContent turns an artifact into the markdown body that gets stored.
// Spanish artifacts get their vocabulary rendered as a table after the body.
func RenderContent(artifact *store.Artifact) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(artifact.Body))

	if len(artifact.Vocab) > 0 {
		b.WriteString("\n\n")
		b.WriteString(RenderVocabTable(artifact.Vocab))
	}

	return b.String()
}

// RenderVocabTable renders vocabulary entries as a markdown table under the
// standard heading. InsertVocabRows relies on this exact shape.
func RenderVocabTable(vocab []store.VocabEntry) string {
	var b strings.Builder
	b.WriteString(vocabTableHeading)
	b.WriteString("\n\n")
	b.WriteString("| Palabra | Significado | Ejemplo |\n")
	b.WriteString("|---|---|---|\n")
	for _, v := range vocab {
		b.WriteString(renderVocabRow(v))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVocabRow(v store.VocabEntry) string {
	return fmt.Sprintf("| %s | %s | %s |", escapeCell(v.Word), escapeCell(v.Meaning), escapeCell(v.Example))
}

// escapeCell keeps pipes and newlines from breaking the table layout.
func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}

// existingVocabWords collects the first-column words of the document's table,
// lowercased, for dedupe on insert.
func existingVocabWords(content string) map[string]bool {
	words := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		word, ok := vocabRowWord(line)
		if ok {
			words[strings.ToLower(word)] = true
		}
	}
	return words
}

// vocabRowWord extracts the first cell of a table data row. Header and
// separator rows are skipped.
func vocabRowWord(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "|") {
		return "", false
	}
	cells := strings.Split(trimmed, "|")
	if len(cells) < 2 {
		return "", false
	}
	first := strings.TrimSpace(cells[1])
	if first == "" || first == "Palabra" || strings.HasPrefix(first, "---") {
		return "", false
	}
	return strings.ReplaceAll(first, "\\|", "|"), true
}

// insertRows appends rows to the end of the document's vocabulary table and
// returns the updated content. The second return is false when no table block
// exists in the content.
func insertRows(content string, vocab []store.VocabEntry) (string, bool) {
	lines := strings.Split(content, "\n")

	// Find the last table row. The table is the last block of pipe-prefixed
	// lines in the document.
	lastRow := -1
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "|") {
			lastRow = i
		}
	}
	if lastRow < 0 {
		return content, false
	}

	seen := existingVocabWords(content)
	var newRows []string
	for _, v := range vocab {
		if seen[strings.ToLower(strings.TrimSpace(v.Word))] {
			continue
		}
		newRows = append(newRows, renderVocabRow(v))
	}
	if len(newRows) == 0 {
		return content, true
	}

	updated := append([]string{}, lines[:lastRow+1]...)
	updated = append(updated, newRows...)
	updated = append(updated, lines[lastRow+1:]...)
	return strings.Join(updated, "\n"), true
}
