package portalsdk

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// StoredTokens is the durable state a client keeps between runs.
type StoredTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	SessionID    string `json:"session_id"`
	ExpiresIn    int    `json:"expires_in"`
}

// TokenStore persists session tokens so a client can restore its session
// after a restart. Implementations decide the medium: a file, a keychain, or
// memory for tests.
type TokenStore interface {
	Save(t StoredTokens) error
	Load() (StoredTokens, bool, error)
	Clear() error
}

// MemoryTokenStore keeps tokens in memory. Restores survive a coordinator
// restart but not a process restart; mostly useful in tests.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens StoredTokens
	set    bool
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Save(t StoredTokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = t
	m.set = true
	return nil
}

func (m *MemoryTokenStore) Load() (StoredTokens, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tokens, m.set, nil
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = StoredTokens{}
	m.set = false
	return nil
}

// FileTokenStore persists tokens as JSON in a single file. The file holds a
// live refresh token, so it is written with 0600 permissions.
type FileTokenStore struct {
	mu   sync.Mutex
	path string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

func (f *FileTokenStore) Save(t StoredTokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to encode tokens: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

func (f *FileTokenStore) Load() (StoredTokens, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return StoredTokens{}, false, nil
	}
	if err != nil {
		return StoredTokens{}, false, fmt.Errorf("failed to read token file: %w", err)
	}

	var t StoredTokens
	if err := json.Unmarshal(data, &t); err != nil {
		return StoredTokens{}, false, fmt.Errorf("failed to decode token file: %w", err)
	}
	return t, true, nil
}

func (f *FileTokenStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}
