package settings

import (
	"context"
	"errors"
	"testing"
)

// --- Fakes ---

type fakeRemote struct {
	stored     string
	fetchErr   error
	saveErr    error
	fetchCalls int
	saveCalls  int
}

func (f *fakeRemote) FetchSettings(ctx context.Context) (string, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return "", f.fetchErr
	}
	return f.stored, nil
}

func (f *fakeRemote) SaveSettings(ctx context.Context, language string) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = language
	return nil
}

type fakeLocal struct {
	stored    string
	setErr    error
	setCalls  int
}

func (f *fakeLocal) Language() (string, bool) {
	return f.stored, f.stored != ""
}

func (f *fakeLocal) SetLanguage(language string) error {
	f.setCalls++
	if f.setErr != nil {
		return f.setErr
	}
	f.stored = language
	return nil
}

var errOffline = errors.New("dial tcp: connection refused")

// --- Tests ---

func TestLoad(t *testing.T) {
	t.Run("FirstRunDefaults", func(t *testing.T) {
		m := NewManager(&fakeRemote{}, &fakeLocal{})
		if got := m.Load(context.Background()); got != DefaultLanguage {
			t.Errorf("Expected default '%s', got '%s'", DefaultLanguage, got)
		}
	})

	t.Run("RemoteWins", func(t *testing.T) {
		local := &fakeLocal{stored: "Hindi"}
		remote := &fakeRemote{stored: "Tamil"}
		m := NewManager(remote, local)

		if got := m.Load(context.Background()); got != "Tamil" {
			t.Errorf("Expected remote value 'Tamil' to win, got '%s'", got)
		}
		if local.stored != "Tamil" {
			t.Errorf("Expected local store overwritten with 'Tamil', got '%s'", local.stored)
		}
	})

	t.Run("OfflineKeepsLocal", func(t *testing.T) {
		local := &fakeLocal{stored: "Marathi"}
		m := NewManager(&fakeRemote{fetchErr: errOffline}, local)

		if got := m.Load(context.Background()); got != "Marathi" {
			t.Errorf("Expected local value 'Marathi' kept while offline, got '%s'", got)
		}
	})

	t.Run("RemoteEmptyKeepsLocal", func(t *testing.T) {
		local := &fakeLocal{stored: "Telugu"}
		m := NewManager(&fakeRemote{}, local)

		if got := m.Load(context.Background()); got != "Telugu" {
			t.Errorf("Expected local value 'Telugu' kept when remote is unset, got '%s'", got)
		}
		if local.setCalls != 0 {
			t.Errorf("Expected no local write, got %d", local.setCalls)
		}
	})
}

func TestSave(t *testing.T) {
	t.Run("RoundTripWhileOffline", func(t *testing.T) {
		// Property: Save(lang) then Load() with the remote unreachable
		// returns lang, for every supported language.
		for _, lang := range SupportedLanguages {
			local := &fakeLocal{}
			remote := &fakeRemote{saveErr: errOffline, fetchErr: errOffline}
			m := NewManager(remote, local)

			status, err := m.Save(context.Background(), lang)
			if err != nil {
				t.Fatalf("Save(%s): expected no error, got %v", lang, err)
			}
			if lang != DefaultLanguage && status != SaveLocalOnly {
				t.Errorf("Save(%s): expected SaveLocalOnly while offline, got %v", lang, status)
			}

			fresh := NewManager(remote, local)
			if got := fresh.Load(context.Background()); got != lang {
				t.Errorf("Load after Save(%s): expected '%s', got '%s'", lang, lang, got)
			}
		}
	})

	t.Run("Synced", func(t *testing.T) {
		remote := &fakeRemote{}
		m := NewManager(remote, &fakeLocal{})

		status, err := m.Save(context.Background(), "Hindi")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if status != SaveSynced {
			t.Errorf("Expected SaveSynced, got %v", status)
		}
		if remote.stored != "Hindi" {
			t.Errorf("Expected remote to store 'Hindi', got '%s'", remote.stored)
		}
	})

	t.Run("SameValueIsNoOp", func(t *testing.T) {
		remote := &fakeRemote{}
		local := &fakeLocal{}
		m := NewManager(remote, local)

		if _, err := m.Save(context.Background(), "Hindi"); err != nil {
			t.Fatalf("Setup save failed: %v", err)
		}
		remote.saveCalls = 0
		local.setCalls = 0

		status, err := m.Save(context.Background(), "Hindi")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if status != SaveUnchanged {
			t.Errorf("Expected SaveUnchanged, got %v", status)
		}
		if remote.saveCalls != 0 {
			t.Errorf("Expected zero network calls, got %d", remote.saveCalls)
		}
		if local.setCalls != 0 {
			t.Errorf("Expected zero storage writes, got %d", local.setCalls)
		}
	})

	t.Run("RemoteFailureKeepsLocalValue", func(t *testing.T) {
		remote := &fakeRemote{saveErr: errOffline}
		m := NewManager(remote, &fakeLocal{})

		status, err := m.Save(context.Background(), "Tamil")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if status != SaveLocalOnly {
			t.Errorf("Expected SaveLocalOnly, got %v", status)
		}
		if m.Active() != "Tamil" {
			t.Errorf("Expected 'Tamil' to stay active despite remote failure, got '%s'", m.Active())
		}
	})

	t.Run("UnsupportedLanguage", func(t *testing.T) {
		remote := &fakeRemote{}
		m := NewManager(remote, &fakeLocal{})

		if _, err := m.Save(context.Background(), "Klingon"); err == nil {
			t.Fatal("Expected an error for an unsupported language, got nil")
		}
		if remote.saveCalls != 0 {
			t.Errorf("Expected no network call for an unsupported language, got %d", remote.saveCalls)
		}
	})

	t.Run("ConcurrentSaveAndActive", func(t *testing.T) {
		// The bot reads Active from handler goroutines while a language
		// callback runs Save; run both in a loop under -race.
		m := NewManager(&fakeRemote{}, &fakeLocal{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			for i := 0; i < 1000; i++ {
				lang := SupportedLanguages[i%len(SupportedLanguages)]
				if _, err := m.Save(context.Background(), lang); err != nil {
					t.Errorf("Save(%s): %v", lang, err)
					return
				}
			}
		}()

		for i := 0; i < 1000; i++ {
			if got := m.Active(); !IsSupported(got) {
				t.Fatalf("Active returned unsupported value '%s'", got)
			}
		}
		<-done
	})

	t.Run("LocalWriteFailureIsNonFatal", func(t *testing.T) {
		m := NewManager(&fakeRemote{}, &fakeLocal{setErr: errors.New("disk full")})

		status, err := m.Save(context.Background(), "Telugu")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if status != SaveSynced {
			t.Errorf("Expected SaveSynced, got %v", status)
		}
		if m.Active() != "Telugu" {
			t.Errorf("Expected 'Telugu' active, got '%s'", m.Active())
		}
	})
}
