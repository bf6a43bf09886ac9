package markdownizer

import "context"

// IdentityStore persists the user ID sent with conversion requests.
type IdentityStore interface {
	// UserID returns the stored ID.
	// Returns ENOTFOUND if no ID has been stored.
	UserID(ctx context.Context) (string, error)

	// SetUserID stores id, replacing any previous value.
	SetUserID(ctx context.Context, id string) error
}

// IdentityResolver finds or creates the persistent user ID.
//
// Sync is the preferred store (it may be shared between machines); Local is
// a per-machine mirror. Both are kept in agreement after Resolve returns.
type IdentityResolver struct {
	Sync  IdentityStore
	Local IdentityStore

	// NewID generates an ID when neither store has one.
	NewID func() string
}

// Resolve returns the user ID, preferring Sync over Local. A sync ID is
// mirrored to Local, a local-only ID is migrated to Sync, and when neither
// exists a new ID is generated and written to both.
func (r *IdentityResolver) Resolve(ctx context.Context) (string, error) {
	id, err := r.Sync.UserID(ctx)
	if err == nil && id != "" {
		if err := r.Local.SetUserID(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	} else if err != nil && ErrorCode(err) != ENOTFOUND {
		return "", err
	}

	id, err = r.Local.UserID(ctx)
	if err == nil && id != "" {
		if err := r.Sync.SetUserID(ctx, id); err != nil {
			return "", err
		}
		return id, nil
	} else if err != nil && ErrorCode(err) != ENOTFOUND {
		return "", err
	}

	if r.NewID == nil {
		return "", Errorf(EINTERNAL, "no user ID generator configured")
	}
	id = r.NewID()
	if err := r.Sync.SetUserID(ctx, id); err != nil {
		return "", err
	}
	if err := r.Local.SetUserID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}
