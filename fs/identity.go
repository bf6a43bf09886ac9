package fs

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/fwojciec/markdownizer"
)

// Ensure IdentityStore implements markdownizer.IdentityStore at compile time.
var _ markdownizer.IdentityStore = (*IdentityStore)(nil)

// IdentityStore keeps the user ID in a small JSON file. Pointing the file at
// a synced directory lets several machines share one ID.
type IdentityStore struct {
	mu   sync.Mutex
	path string
}

type identityFile struct {
	UserID string `json:"userId"`
}

// NewIdentityStore creates an IdentityStore backed by the file at path.
func NewIdentityStore(path string) *IdentityStore {
	return &IdentityStore{path: path}
}

// UserID returns the stored ID. A missing file or empty ID is ENOTFOUND.
func (s *IdentityStore) UserID(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", markdownizer.Errorf(markdownizer.ENOTFOUND, "user ID not found")
	} else if err != nil {
		return "", err
	}

	var f identityFile
	if err := json.Unmarshal(data, &f); err != nil {
		return "", markdownizer.Errorf(markdownizer.EINVALID, "malformed identity file %s: %v", s.path, err)
	}
	if f.UserID == "" {
		return "", markdownizer.Errorf(markdownizer.ENOTFOUND, "user ID not found")
	}
	return f.UserID, nil
}

// SetUserID writes id to the file, creating parent directories as needed.
func (s *IdentityStore) SetUserID(ctx context.Context, id string) error {
	if id == "" {
		return markdownizer.Errorf(markdownizer.EINVALID, "user ID required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(identityFile{UserID: id}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return writeFileAtomic(s.path, append(data, '\n'))
}
