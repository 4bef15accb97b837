package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type fakeTextGen struct {
	response   string
	err        error
	lastPrompt string
}

func (f *fakeTextGen) GenerateContent(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeTextGen) Model() string { return "fake-model" }

func TestImportURL(t *testing.T) {
	page := `<html><head><style>body{}</style></head><body>
		<script>var tracker = 1;</script>
		<h1>Masala Omelette</h1>
		<ul><li>2 eggs</li><li>1 onion</li></ul>
	</body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, page)
	}))
	defer server.Close()

	t.Run("Success", func(t *testing.T) {
		gen := &fakeTextGen{response: "```json\n" + `{
			"name": "Masala Omelette",
			"description": "A spiced omelette.",
			"ingredients": ["2 eggs", "1 onion"],
			"steps": ["Beat eggs", "Fry"],
			"missing_items": [],
			"estimated_time": "10 mins"
		}` + "\n```"}

		rec, err := NewImporter(gen).ImportURL(context.Background(), server.URL)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if rec.Name != "Masala Omelette" {
			t.Errorf("Expected name 'Masala Omelette', got '%s'", rec.Name)
		}
		if len(rec.Ingredients) != 2 {
			t.Errorf("Expected 2 ingredients, got %d", len(rec.Ingredients))
		}
		// Script and style noise must not reach the LLM.
		if strings.Contains(gen.lastPrompt, "tracker") {
			t.Error("Expected script content stripped from the prompt")
		}
		if !strings.Contains(gen.lastPrompt, "Masala Omelette") {
			t.Error("Expected page text to reach the prompt")
		}
	})

	t.Run("UnparseableAIResponse", func(t *testing.T) {
		gen := &fakeTextGen{response: "sorry, I can't do that"}
		if _, err := NewImporter(gen).ImportURL(context.Background(), server.URL); err == nil {
			t.Fatal("Expected an error for an unparseable AI response, got nil")
		}
	})

	t.Run("FetchFailure", func(t *testing.T) {
		broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer broken.Close()

		gen := &fakeTextGen{}
		if _, err := NewImporter(gen).ImportURL(context.Background(), broken.URL); err == nil {
			t.Fatal("Expected an error for a 404 page, got nil")
		}
	})
}
