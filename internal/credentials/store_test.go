package credentials

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/nkurelo/socialdash/internal/shared"
)

// failingStore rejects every operation.
type failingStore struct{}

func (f *failingStore) Get() (string, error) { return "", errors.New("store unavailable") }

func (f *failingStore) Save(string) error { return errors.New("store unavailable") }

func (f *failingStore) Clear() error { return errors.New("store unavailable") }

func testKeychain(t *testing.T, primary, fallback Store) *Keychain {
	t.Helper()
	return NewKeychain(primary, fallback, shared.NewLogger(io.Discard))
}

func TestFileStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token"))

	t.Run("Empty When Missing", func(t *testing.T) {
		token, err := store.Get()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if token != "" {
			t.Errorf("expected empty token, got %q", token)
		}
	})

	t.Run("Round Trip", func(t *testing.T) {
		if err := store.Save("tok-abc"); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		token, err := store.Get()
		if err != nil {
			t.Fatalf("failed to get: %v", err)
		}
		if token != "tok-abc" {
			t.Errorf("expected tok-abc, got %q", token)
		}
	})

	t.Run("Clear Twice", func(t *testing.T) {
		if err := store.Clear(); err != nil {
			t.Fatalf("failed to clear: %v", err)
		}
		if err := store.Clear(); err != nil {
			t.Errorf("clearing an absent token should not fail: %v", err)
		}
	})
}

func TestDBStore(t *testing.T) {
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store := NewDBStore(db)

	token, err := store.Get()
	if err != nil || token != "" {
		t.Errorf("expected empty token without error, got %q, %v", token, err)
	}

	if err := store.Save("tok-db"); err != nil {
		t.Fatalf("failed to save: %v", err)
	}
	token, err = store.Get()
	if err != nil || token != "tok-db" {
		t.Errorf("expected tok-db, got %q, %v", token, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("failed to clear: %v", err)
	}
}

func TestKeychain(t *testing.T) {
	t.Run("Prefers Primary", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary"))
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback"))
		primary.Save("from-primary")
		fallback.Save("from-fallback")

		kc := testKeychain(t, primary, fallback)
		if got := kc.Token(); got != "from-primary" {
			t.Errorf("expected from-primary, got %q", got)
		}
	})

	t.Run("Environment Wins", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary"))
		primary.Save("from-primary")
		t.Setenv(TokenEnv, "from-env")

		kc := testKeychain(t, primary, nil)
		if got := kc.Token(); got != "from-env" {
			t.Errorf("expected from-env, got %q", got)
		}
	})

	t.Run("Falls Back When Primary Fails", func(t *testing.T) {
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback"))
		fallback.Save("from-fallback")

		kc := testKeychain(t, &failingStore{}, fallback)
		if got := kc.Token(); got != "from-fallback" {
			t.Errorf("expected from-fallback, got %q", got)
		}
	})

	t.Run("Save Falls Back", func(t *testing.T) {
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback"))
		kc := testKeychain(t, &failingStore{}, fallback)

		kc.Save("tok-x")
		if got, _ := fallback.Get(); got != "tok-x" {
			t.Errorf("expected fallback to hold tok-x, got %q", got)
		}
	})

	t.Run("Clear Hits Both Stores", func(t *testing.T) {
		primary := NewFileStore(filepath.Join(t.TempDir(), "primary"))
		fallback := NewFileStore(filepath.Join(t.TempDir(), "fallback"))
		primary.Save("a")
		fallback.Save("b")

		kc := testKeychain(t, primary, fallback)
		kc.Clear()

		if got, _ := primary.Get(); got != "" {
			t.Errorf("expected primary cleared, got %q", got)
		}
		if got, _ := fallback.Get(); got != "" {
			t.Errorf("expected fallback cleared, got %q", got)
		}
	})

	t.Run("Never Panics On Total Failure", func(t *testing.T) {
		kc := testKeychain(t, &failingStore{}, &failingStore{})
		kc.Save("tok")
		kc.Clear()
		if got := kc.Token(); got != "" {
			t.Errorf("expected empty token, got %q", got)
		}
	})
}
