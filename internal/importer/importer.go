package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ai-recipe-assistant/internal/llm"
	"ai-recipe-assistant/internal/recipe"

	"github.com/PuerkitoBio/goquery"
)

// Importer clips a recipe from a web page: it fetches the page, strips the
// noise, and has the LLM structure what remains.
type Importer struct {
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// NewImporter creates a new Importer.
func NewImporter(textGen llm.TextGenerator) *Importer {
	return &Importer{
		textGen: textGen,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ImportURL fetches the URL and extracts a structured recipe from it.
func (i *Importer) ImportURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	content, err := i.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`You are a recipe extraction expert. Extract the recipe details from the following page content.
Return the result strictly as a JSON object with this structure:
{
  "name": "Recipe Title",
  "description": "Short 1-2 line description",
  "ingredients": ["item 1", "item 2"],
  "steps": ["Step 1 description", "Step 2 description"],
  "missing_items": [],
  "estimated_time": "e.g. 30 mins"
}

Return ONLY the raw JSON string. Do not wrap the response in markdown code blocks.

Page Content:
%s
`, content)

	response, err := i.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("ai extraction failed: %w", err)
	}

	var rec recipe.Recipe
	if err := json.Unmarshal([]byte(llm.StripFences(response)), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w. Response: %s", err, response)
	}
	if rec.Name == "" {
		return nil, fmt.Errorf("no recipe found on page")
	}

	return &rec, nil
}

func (i *Importer) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}

	resp, err := i.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	// Remove noise to save LLM tokens.
	doc.Find("script, style, nav, footer, iframe, ads, .ads, #ads").Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	return doc.Find("body").Text(), nil
}
