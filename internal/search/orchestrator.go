package search

import (
	"context"
	"errors"
	"strings"
	"sync"

	"ai-recipe-assistant/internal/recipe"
)

var (
	// ErrEmptyInput is the local validation failure for a blank ingredient
	// list. It never results in a network call.
	ErrEmptyInput = errors.New("ingredient list is empty")

	// ErrBusy is returned when a search is started while another one is
	// still in flight. The caller shows the existing busy state and waits.
	ErrBusy = errors.New("a search is already in progress")
)

// Searcher is the subset of the API client the orchestrator needs.
type Searcher interface {
	SearchRecipes(ctx context.Context, ingredients, language string) ([]recipe.Recipe, error)
}

// Orchestrator issues ingredient-search requests and owns the busy state for
// the search screen. It refuses overlapping calls; there is no cancellation,
// so a call started runs to completion and a late result is simply returned
// to whoever is still waiting.
type Orchestrator struct {
	client Searcher

	mu   sync.Mutex
	busy bool
}

// NewOrchestrator creates an Orchestrator backed by client.
func NewOrchestrator(client Searcher) *Orchestrator {
	return &Orchestrator{client: client}
}

// Busy reports whether a search is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

// FindRecipes submits the free-text ingredient list and returns suggestions
// in server order. A nil error with an empty slice is a valid outcome and
// means "no recipes for these ingredients", distinct from any failure.
func (o *Orchestrator) FindRecipes(ctx context.Context, ingredientsText, language string) ([]recipe.Recipe, error) {
	if strings.TrimSpace(ingredientsText) == "" {
		return nil, ErrEmptyInput
	}

	o.mu.Lock()
	if o.busy {
		o.mu.Unlock()
		return nil, ErrBusy
	}
	o.busy = true
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.busy = false
		o.mu.Unlock()
	}()

	recipes, err := o.client.SearchRecipes(ctx, ingredientsText, language)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
