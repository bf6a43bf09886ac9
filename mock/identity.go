package mock

import (
	"context"

	"github.com/fwojciec/markdownizer"
)

var _ markdownizer.IdentityStore = (*IdentityStore)(nil)

// IdentityStore is a mock implementation of markdownizer.IdentityStore.
type IdentityStore struct {
	UserIDFn    func(ctx context.Context) (string, error)
	SetUserIDFn func(ctx context.Context, id string) error
}

func (s *IdentityStore) UserID(ctx context.Context) (string, error) {
	return s.UserIDFn(ctx)
}

func (s *IdentityStore) SetUserID(ctx context.Context, id string) error {
	return s.SetUserIDFn(ctx, id)
}

// MemoryIdentityStore is an in-memory markdownizer.IdentityStore for tests.
type MemoryIdentityStore struct {
	ID string
}

var _ markdownizer.IdentityStore = (*MemoryIdentityStore)(nil)

func (s *MemoryIdentityStore) UserID(ctx context.Context) (string, error) {
	if s.ID == "" {
		return "", markdownizer.Errorf(markdownizer.ENOTFOUND, "user ID not found")
	}
	return s.ID, nil
}

func (s *MemoryIdentityStore) SetUserID(ctx context.Context, id string) error {
	s.ID = id
	return nil
}
