package llm

import (
	"context"
	"strings"
)

// TextGenerator is an interface for generating text from a prompt.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
	// Model returns the model identifier, for logging and metrics.
	Model() string
}

// Closer is an interface for closing resources.
type Closer interface {
	Close() error
}

// StripFences removes a markdown code fence from a model response. Models
// sometimes wrap JSON in ```json ... ``` despite being told not to.
func StripFences(s string) string {
	if strings.Contains(s, "```json") {
		if after, found := strings.CutPrefix(s[strings.Index(s, "```json"):], "```json"); found {
			if end := strings.Index(after, "```"); end >= 0 {
				return strings.TrimSpace(after[:end])
			}
		}
	}
	if strings.Contains(s, "```") {
		parts := strings.Split(s, "```")
		if len(parts) >= 2 {
			return strings.TrimSpace(parts[1])
		}
	}
	return strings.TrimSpace(s)
}
