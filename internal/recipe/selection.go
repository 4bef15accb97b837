package recipe

import (
	"errors"
	"sync"
)

// ErrNoneSelected is returned by Selection.Get when no recipe has been put
// since the process started. The detail view treats this as fatal to that
// screen and navigates back.
var ErrNoneSelected = errors.New("no recipe selected")

// Selection is the single-slot handoff store used to pass a chosen recipe
// from the results screen to the detail screen without re-fetching. Each Put
// overwrites the previous value; the slot does not survive a process restart.
type Selection struct {
	mu     sync.Mutex
	recipe Recipe
	filled bool
}

// NewSelection creates an empty Selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Put stores rec in the slot, replacing any previous selection.
func (s *Selection) Put(rec Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recipe = rec.clone()
	s.filled = true
}

// Get returns the currently selected recipe, or ErrNoneSelected when the
// slot is empty.
func (s *Selection) Get() (Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.filled {
		return Recipe{}, ErrNoneSelected
	}
	return s.recipe.clone(), nil
}
