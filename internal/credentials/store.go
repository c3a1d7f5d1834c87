// package credentials persists the bearer token across runs.
//
// Two backing stores are layered: a durable store (the SQLite credentials
// table) and a session-scoped store (a file under the system temp directory
// that does not outlive the machine session). Every operation tries the
// durable store first and falls back to the session store; failures are
// logged and swallowed so credential plumbing can never take the dashboard
// down.
package credentials

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/nkurelo/socialdash/internal/repositories"
)

// TokenKey is the single credential key the dashboard uses.
const TokenKey = "bearer_token"

// TokenEnv overrides every store when set. Useful for CI and one-off
// scripting against a known session.
const TokenEnv = "SOCIALDASH_TOKEN"

// Store reads and writes one opaque credential string.
type Store interface {
	Get() (string, error)
	Save(token string) error
	Clear() error
}

// DBStore is the durable [Store] backed by the credentials table.
type DBStore struct {
	repo *repositories.CredentialRepository
}

// NewDBStore creates a durable store over the given database.
func NewDBStore(db *sql.DB) *DBStore {
	return &DBStore{repo: repositories.NewCredentialRepository(db)}
}

func (s *DBStore) Get() (string, error) {
	value, err := s.repo.Get(TokenKey)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (s *DBStore) Save(token string) error { return s.repo.Put(TokenKey, token) }

func (s *DBStore) Clear() error { return s.repo.Delete(TokenKey) }

// FileStore is the session-scoped [Store]: a 0600 file under the temp
// directory, gone after the machine session ends.
type FileStore struct {
	path string
}

// NewFileStore creates a session store at the given path. An empty path
// defaults to a per-user file in the temp directory.
func NewFileStore(path string) *FileStore {
	if path == "" {
		path = filepath.Join(os.TempDir(), "socialdash-session-token")
	}
	return &FileStore{path: path}
}

func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	return os.WriteFile(s.path, []byte(token), 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Keychain layers a durable primary store over a session-scoped fallback.
//
// Operations never return errors: storage trouble (locked database, read-only
// temp dir) is logged and the other store picks up the slack. Clearing always
// hits both stores so a logout cannot leave a stale token behind.
type Keychain struct {
	primary  Store
	fallback Store
	logger   *log.Logger
}

// NewKeychain creates a [Keychain] from a primary and fallback store.
func NewKeychain(primary, fallback Store, logger *log.Logger) *Keychain {
	return &Keychain{primary: primary, fallback: fallback, logger: logger}
}

// Token returns the stored bearer token, or "" when none is held. A token
// set via [TokenEnv] wins over both stores.
func (k *Keychain) Token() string {
	if token := os.Getenv(TokenEnv); token != "" {
		return token
	}

	if k.primary != nil {
		token, err := k.primary.Get()
		if err == nil && token != "" {
			return token
		}
		if err != nil {
			k.logger.Warn("primary token store unavailable", "error", err)
		}
	}

	if k.fallback != nil {
		token, err := k.fallback.Get()
		if err != nil {
			k.logger.Warn("session token store unavailable", "error", err)
			return ""
		}
		return token
	}

	return ""
}

// Save stores the token durably, falling back to the session store.
func (k *Keychain) Save(token string) {
	if k.primary != nil {
		if err := k.primary.Save(token); err == nil {
			return
		} else {
			k.logger.Warn("primary token store rejected write, using session store", "error", err)
		}
	}

	if k.fallback != nil {
		if err := k.fallback.Save(token); err != nil {
			k.logger.Error("both token stores rejected write", "error", err)
		}
	}
}

// Clear removes the token from both stores unconditionally.
func (k *Keychain) Clear() {
	if k.primary != nil {
		if err := k.primary.Clear(); err != nil {
			k.logger.Warn("failed to clear primary token store", "error", err)
		}
	}
	if k.fallback != nil {
		if err := k.fallback.Clear(); err != nil {
			k.logger.Warn("failed to clear session token store", "error", err)
		}
	}
}
