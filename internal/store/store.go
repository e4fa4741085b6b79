// Package store persists the user's profile and provides the profile operations
// used by the CLI and HTTP API.
package store

import (
	"context"

	"github.com/jonathan/apply-assistant/internal/types"
)

// Store loads and saves the single user profile.
// Get returns a default profile when nothing has been saved yet.
type Store interface {
	Get(ctx context.Context) (*types.Profile, error)
	Save(ctx context.Context, p *types.Profile) error
}

// Updater is implemented by stores that apply a read-modify-write cycle
// atomically themselves, for example inside a database transaction.
type Updater interface {
	Update(ctx context.Context, fn func(p *types.Profile) error) (*types.Profile, error)
}

// Update loads the profile, applies fn, and saves the result.
// Nothing is saved when fn returns an error. Stores implementing Updater
// run the cycle themselves; for any other Store the caller must serialize
// concurrent updates.
func Update(ctx context.Context, s Store, fn func(p *types.Profile) error) (*types.Profile, error) {
	if u, ok := s.(Updater); ok {
		return u.Update(ctx, fn)
	}
	return getApplySave(ctx, s, fn)
}

func getApplySave(ctx context.Context, s Store, fn func(p *types.Profile) error) (*types.Profile, error) {
	p, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}
	p.Normalize()
	if err := s.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
