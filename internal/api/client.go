package api

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ai-recipe-assistant/internal/config"
	"ai-recipe-assistant/internal/metrics"
	"ai-recipe-assistant/internal/recipe"
	"ai-recipe-assistant/internal/shopping"

	"github.com/golang-jwt/jwt/v5"
)

// Client is the interface to the remote recipe-assistant API.
type Client interface {
	SearchRecipes(ctx context.Context, ingredients, language string) ([]recipe.Recipe, error)
	ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
	FetchSettings(ctx context.Context) (string, error)
	SaveSettings(ctx context.Context, language string) error
	FetchShoppingList(ctx context.Context) ([]shopping.Item, error)
	AddShoppingItems(ctx context.Context, names []string) error
	DeleteShoppingItem(ctx context.Context, id string) error
	ClearShoppingList(ctx context.Context) error
	FetchDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error)
}

// httpClient is the concrete implementation of the API client.
type httpClient struct {
	httpClient *http.Client
	baseURL    string
	authKey    string
}

// NewClient creates a new API client.
func NewClient(cfg *config.Config) Client {
	return &httpClient{
		httpClient: &http.Client{},
		baseURL:    cfg.APIBaseURL,
		authKey:    cfg.APIAuthKey,
	}
}

type searchRequest struct {
	Ingredients string `json:"ingredients"`
	Language    string `json:"language"`
}

type searchResponse struct {
	Recipes []recipe.Recipe `json:"recipes"`
}

// SearchRecipes submits the free-text ingredient list and returns the
// suggestions in server order.
func (c *httpClient) SearchRecipes(ctx context.Context, ingredients, language string) ([]recipe.Recipe, error) {
	var out searchResponse
	err := c.do(ctx, http.MethodPost, "/api/recipes", searchRequest{
		Ingredients: ingredients,
		Language:    language,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out.Recipes, nil
}

type importRequest struct {
	URL string `json:"url"`
}

// ImportRecipe asks the server to clip a recipe from a web page.
func (c *httpClient) ImportRecipe(ctx context.Context, url string) (*recipe.Recipe, error) {
	var out recipe.Recipe
	if err := c.do(ctx, http.MethodPost, "/api/recipes/import", importRequest{URL: url}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type translateRequest struct {
	Text           string `json:"text"`
	TargetLanguage string `json:"target_language"`
}

type translateResponse struct {
	TranslatedText string `json:"translated_text"`
}

// Translate returns text translated into targetLanguage. The call is
// stateless; nothing is cached on either side.
func (c *httpClient) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	var out translateResponse
	err := c.do(ctx, http.MethodPost, "/api/translate", translateRequest{
		Text:           text,
		TargetLanguage: targetLanguage,
	}, &out)
	if err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}

type settingsPayload struct {
	PreferredLanguage string `json:"preferred_language"`
}

// FetchSettings reads the remote language preference. An empty string means
// the server has no stored value.
func (c *httpClient) FetchSettings(ctx context.Context) (string, error) {
	var out settingsPayload
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &out); err != nil {
		return "", err
	}
	return out.PreferredLanguage, nil
}

// SaveSettings writes the language preference to the server.
func (c *httpClient) SaveSettings(ctx context.Context, language string) error {
	return c.do(ctx, http.MethodPost, "/api/settings", settingsPayload{PreferredLanguage: language}, nil)
}

// FetchShoppingList returns the full shopping list in server order.
func (c *httpClient) FetchShoppingList(ctx context.Context) ([]shopping.Item, error) {
	var out []shopping.Item
	if err := c.do(ctx, http.MethodGet, "/api/shopping-list", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddShoppingItems inserts the given names as new items. The caller is
// responsible for short-circuiting an empty set before reaching here.
func (c *httpClient) AddShoppingItems(ctx context.Context, names []string) error {
	return c.do(ctx, http.MethodPost, "/api/shopping-list/bulk", names, nil)
}

// DeleteShoppingItem removes a single item by its server-assigned id.
func (c *httpClient) DeleteShoppingItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/shopping-list/"+id, nil, nil)
}

// ClearShoppingList removes every item.
func (c *httpClient) ClearShoppingList(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/shopping-list", nil, nil)
}

// FetchDailyUsage returns per-day LLM request totals for the last N days.
func (c *httpClient) FetchDailyUsage(ctx context.Context, days int) ([]metrics.DailyUsage, error) {
	var out []metrics.DailyUsage
	path := fmt.Sprintf("/api/metrics/daily?days=%d", days)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// do executes one request and decodes the response into out when non-nil.
// Failures are classified per the error taxonomy: no HTTP response at all is
// a *TransportError, a non-2xx status is a *ServiceError.
func (c *httpClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.authKey != "" {
		token, err := c.createRequestToken()
		if err != nil {
			return fmt.Errorf("failed to create request token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ServiceError{Status: resp.StatusCode}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// createRequestToken generates a short-lived JWT from the configured
// "id:secret" auth key, secret hex-encoded.
func (c *httpClient) createRequestToken() (string, error) {
	keyParts := strings.Split(c.authKey, ":")
	if len(keyParts) != 2 {
		return "", fmt.Errorf("invalid auth key format: expected id:secret")
	}

	secret, err := hex.DecodeString(keyParts[1])
	if err != nil {
		return "", fmt.Errorf("failed to decode secret hex: %w", err)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(5 * time.Minute).Unix(),
		"aud": "/api/",
	})
	token.Header["kid"] = keyParts[0]

	return token.SignedString(secret)
}
