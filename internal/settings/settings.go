package settings

import (
	"context"
	"fmt"
	"log"
	"sync"
)

// DefaultLanguage is used when neither the device nor the server has a
// stored preference.
const DefaultLanguage = "English"

// SupportedLanguages is the fixed set of languages the assistant can answer
// in. Order is presentation order.
var SupportedLanguages = []string{"English", "Hindi", "Marathi", "Tamil", "Telugu"}

// IsSupported reports whether language is one of SupportedLanguages.
func IsSupported(language string) bool {
	for _, l := range SupportedLanguages {
		if l == language {
			return true
		}
	}
	return false
}

// SaveStatus describes the outcome of a Save call.
type SaveStatus int

const (
	// SaveUnchanged means the requested value was already active; nothing
	// was written and no network call was made.
	SaveUnchanged SaveStatus = iota
	// SaveSynced means the value was stored locally and on the server.
	SaveSynced
	// SaveLocalOnly means the value took effect locally but the server
	// write failed; the UI should tell the user the choice is not yet
	// synced. The local value is never rolled back.
	SaveLocalOnly
)

// RemoteStore is the subset of the API client the settings sync needs.
type RemoteStore interface {
	FetchSettings(ctx context.Context) (string, error)
	SaveSettings(ctx context.Context, language string) error
}

// LocalStore is the durable on-device preference store.
type LocalStore interface {
	Language() (string, bool)
	SetLanguage(language string) error
}

// Manager reconciles the on-device language preference with the remote
// copy. Two values exist; the remote one wins on load, the freshest write
// wins on save. No history is kept. Safe for concurrent use: front-ends
// read Active from handler goroutines while Save runs elsewhere.
type Manager struct {
	remote RemoteStore
	local  LocalStore

	mu     sync.Mutex
	active string
}

// NewManager creates a Manager with the default language active.
func NewManager(remote RemoteStore, local LocalStore) *Manager {
	return &Manager{
		remote: remote,
		local:  local,
		active: DefaultLanguage,
	}
}

// Active returns the currently active language preference.
func (m *Manager) Active() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) setActive(language string) {
	m.mu.Lock()
	m.active = language
	m.mu.Unlock()
}

// Load makes the best available preference active. The local value is
// applied first so the caller is never blocked on the network; the remote
// value then overwrites it when the two disagree. A remote failure is an
// expected offline condition and is not reported to the caller.
func (m *Manager) Load(ctx context.Context) string {
	if local, ok := m.local.Language(); ok {
		m.setActive(local)
	}

	remoteLang, err := m.remote.FetchSettings(ctx)
	if err != nil {
		active := m.Active()
		log.Printf("Settings fetch failed, keeping local value %q: %v", active, err)
		return active
	}
	if remoteLang == "" || remoteLang == m.Active() {
		return m.Active()
	}

	// Remote wins on load.
	m.setActive(remoteLang)
	if err := m.local.SetLanguage(remoteLang); err != nil {
		log.Printf("Warning: failed to persist remote preference locally: %v", err)
	}
	return remoteLang
}

// Save makes language the active preference. The local write happens first
// so the choice takes effect regardless of network state; the remote write
// is best-effort and its failure downgrades the result to SaveLocalOnly.
// Saving the already-active value is a complete no-op.
func (m *Manager) Save(ctx context.Context, language string) (SaveStatus, error) {
	if !IsSupported(language) {
		return SaveUnchanged, fmt.Errorf("unsupported language %q", language)
	}
	m.mu.Lock()
	if language == m.active {
		m.mu.Unlock()
		return SaveUnchanged, nil
	}
	m.active = language
	m.mu.Unlock()

	if err := m.local.SetLanguage(language); err != nil {
		// Non-fatal: the in-memory value is already applied.
		log.Printf("Warning: failed to persist preference locally: %v", err)
	}

	if err := m.remote.SaveSettings(ctx, language); err != nil {
		log.Printf("Settings save did not reach the server: %v", err)
		return SaveLocalOnly, nil
	}
	return SaveSynced, nil
}
