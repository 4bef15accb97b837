package search

import (
	"context"
	"strings"
)

// Transcriber turns captured audio into text. Implementations are optional
// capabilities; when none is available, or a capture fails, the screen falls
// back to manual text entry without blocking anything else.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
}

// AppendTranscript merges a dictated phrase into the existing ingredient
// text: appended with ", " when there already is text, otherwise the phrase
// replaces it.
func AppendTranscript(existing, phrase string) string {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return phrase
	}
	return existing + ", " + phrase
}
