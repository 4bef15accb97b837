package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"ai-recipe-assistant/internal/llm"
	"ai-recipe-assistant/internal/metrics"
	"ai-recipe-assistant/internal/recipe"
)

type recipeRequest struct {
	Ingredients string `json:"ingredients"`
	Language    string `json:"language"`
}

type recipeResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

const recipePromptTemplate = `You are an expert chef and helpful cooking assistant.

The user has the following ingredients: %s.

Task:
1. Suggest 2 simple recipes the user can cook with these ingredients.
2. For each recipe, include:
   - "name" (string) -> Recipe title
   - "description" (string) -> Short 1-2 line description
   - "ingredients" (array of strings) -> Full list of needed ingredients
   - "steps" (array of strings) -> Step-by-step instructions
   - "missing_items" (array of strings) -> Ingredients that the user does NOT have
   - "estimated_time" (string) -> Rough total time, e.g. "30 mins"

Important:
- Return ONLY valid JSON with a top-level "recipes" array.
- Do not include extra text, explanations, or formatting outside of the JSON.
- Respond in %s language.`

func (s *Server) handleRecipes(w http.ResponseWriter, r *http.Request) {
	var req recipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "English"
	}

	prompt := fmt.Sprintf(recipePromptTemplate, req.Ingredients, req.Language)

	generated, err := s.generate(r.Context(), "/api/recipes", prompt)
	if err != nil {
		log.Printf("Recipe generation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to AI service")
		return
	}

	var resp recipeResponse
	if err := json.Unmarshal([]byte(llm.StripFences(generated)), &resp); err != nil {
		log.Printf("Failed to parse model response: %v. Response: %s", err, generated)
		writeError(w, http.StatusInternalServerError, "Failed to parse recipe data from AI response")
		return
	}
	if resp.Recipes == nil {
		resp.Recipes = []recipe.Recipe{}
	}

	writeJSON(w, http.StatusOK, resp)
}

type importRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleRecipeImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.recipeImport.ImportURL(r.Context(), req.URL)
	if err != nil {
		log.Printf("Recipe import from %s failed: %v", req.URL, err)
		writeError(w, http.StatusInternalServerError, "Failed to import recipe")
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

func (s *Server) handleTranslate(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prompt := fmt.Sprintf(
		"Translate the following text to %s. Return only the translated text without any additional explanations:\n\n%s",
		req.TargetLanguage, req.Text)

	translated, err := s.generate(r.Context(), "/api/translate", prompt)
	if err != nil {
		log.Printf("Translation failed: %v", err)
		writeError(w, http.StatusInternalServerError, "Failed to connect to translation service")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"translated_text": llm.StripFences(translated)})
}

// generate runs one LLM call and records its latency.
func (s *Server) generate(ctx context.Context, endpoint, prompt string) (string, error) {
	start := time.Now()
	generated, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	if recErr := s.metricsStore.Record(ctx, metrics.ExecutionMetric{
		Endpoint:  endpoint,
		Model:     s.textGen.Model(),
		LatencyMS: time.Since(start).Milliseconds(),
	}); recErr != nil {
		log.Printf("Warning: failed to record metric: %v", recErr)
	}

	return generated, nil
}
