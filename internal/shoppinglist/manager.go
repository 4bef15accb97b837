package shoppinglist

import (
	"context"
	"errors"
	"log"
	"sync"

	"ai-recipe-assistant/internal/shopping"
)

// ErrBusy is returned when a mutation is started while another one is still
// reconciling.
var ErrBusy = errors.New("a shopping-list operation is already in progress")

// ReconcileError reports that a mutation was confirmed by the server but the
// follow-up re-fetch failed, so the visible list was rolled back to the last
// confirmed snapshot and may be out of date. Callers can message this
// differently from a failed mutation.
type ReconcileError struct {
	Err error
}

func (e *ReconcileError) Error() string {
	return "list updated but could not be re-fetched: " + e.Err.Error()
}

func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// RemoteList is the subset of the API client the manager needs.
type RemoteList interface {
	FetchShoppingList(ctx context.Context) ([]shopping.Item, error)
	AddShoppingItems(ctx context.Context, names []string) error
	DeleteShoppingItem(ctx context.Context, id string) error
	ClearShoppingList(ctx context.Context) error
}

// Manager keeps the visible shopping list coherent with the server. The
// server is the source of truth: every mutation is applied optimistically to
// the visible list, confirmed remotely, then reconciled with a re-fetch.
// When any step fails the visible list reverts to the last snapshot that was
// confirmed by the server, never a partially-optimistic one.
type Manager struct {
	client RemoteList

	mu        sync.Mutex
	busy      bool
	visible   []shopping.Item
	confirmed []shopping.Item // last server-confirmed snapshot
}

// NewManager creates a Manager with an empty visible list. Call Refresh to
// populate it.
func NewManager(client RemoteList) *Manager {
	return &Manager{client: client}
}

// Items returns the currently visible list.
func (m *Manager) Items() []shopping.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]shopping.Item(nil), m.visible...)
}

// Refresh replaces the visible list with the server's, in server order.
// On failure the previously confirmed list stays visible.
func (m *Manager) Refresh(ctx context.Context) error {
	items, err := m.client.FetchShoppingList(ctx)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.setConfirmed(items)
	m.mu.Unlock()
	return nil
}

// Add inserts the given names on the server and refreshes. An empty set is
// a trivial success with no network call at all.
func (m *Manager) Add(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := m.client.AddShoppingItems(ctx, names); err != nil {
		return err
	}
	if err := m.Refresh(ctx); err != nil {
		// The insert itself succeeded; the stale view is corrected on
		// the next successful refresh.
		log.Printf("Shopping list re-fetch after add failed: %v", err)
	}
	return nil
}

// Delete removes one item. The removal is applied to the visible list
// immediately, confirmed on the server, then reconciled against a re-fetch.
// Any failure rolls the visible list back to the last confirmed snapshot.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return ErrBusy
	}
	m.busy = true

	// Phase 1: optimistic removal.
	kept := make([]shopping.Item, 0, len(m.visible))
	for _, item := range m.visible {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	m.visible = kept
	m.mu.Unlock()

	defer m.release()

	// Phase 2: remote confirmation.
	if err := m.client.DeleteShoppingItem(ctx, id); err != nil {
		m.rollback()
		return err
	}

	// Phase 3: reconciliation. The re-fetched list is authoritative and
	// replaces the optimistic view in full; if the re-fetch fails the
	// optimistic view cannot be trusted either, so roll back.
	return m.reconcile(ctx)
}

// Clear removes every item, with the same optimistic-then-reconcile shape
// as Delete.
func (m *Manager) Clear(ctx context.Context) error {
	m.mu.Lock()
	if m.busy {
		m.mu.Unlock()
		return ErrBusy
	}
	m.busy = true
	m.visible = nil
	m.mu.Unlock()

	defer m.release()

	if err := m.client.ClearShoppingList(ctx); err != nil {
		m.rollback()
		return err
	}
	return m.reconcile(ctx)
}

func (m *Manager) reconcile(ctx context.Context) error {
	items, err := m.client.FetchShoppingList(ctx)
	if err != nil {
		m.rollback()
		return &ReconcileError{Err: err}
	}
	m.mu.Lock()
	m.setConfirmed(items)
	m.mu.Unlock()
	return nil
}

func (m *Manager) rollback() {
	m.mu.Lock()
	m.visible = append([]shopping.Item(nil), m.confirmed...)
	m.mu.Unlock()
}

func (m *Manager) release() {
	m.mu.Lock()
	m.busy = false
	m.mu.Unlock()
}

// setConfirmed records items as both the visible list and the snapshot to
// roll back to. Callers must hold mu.
func (m *Manager) setConfirmed(items []shopping.Item) {
	m.confirmed = append([]shopping.Item(nil), items...)
	m.visible = append([]shopping.Item(nil), items...)
}
