package voice

import (
	"context"
	"fmt"
	"strings"

	"ai-recipe-assistant/internal/config"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const transcriberModel = "gemini-1.5-flash"

// Transcriber turns short voice notes into ingredient text using Gemini's
// audio input. It is an optional capability: front-ends fall back to typed
// entry when it is unavailable or a capture fails.
type Transcriber struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewTranscriber creates a Gemini-backed transcriber.
func NewTranscriber(ctx context.Context, cfg *config.Config) (*Transcriber, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Transcriber{
		client: client,
		model:  client.GenerativeModel(transcriberModel),
	}, nil
}

// Transcribe returns the spoken words in audio as plain text.
func (t *Transcriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	resp, err := t.model.GenerateContent(ctx,
		genai.Text("Transcribe the spoken words in this audio. Return only the transcription, nothing else."),
		genai.Blob{MIMEType: mimeType, Data: audio},
	)
	if err != nil {
		return "", fmt.Errorf("failed to transcribe audio: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no transcription produced")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("transcription is not text")
	}

	return strings.TrimSpace(string(text)), nil
}

// Close closes the underlying Gemini client.
func (t *Transcriber) Close() error {
	return t.client.Close()
}
