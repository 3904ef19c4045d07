package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/billo-wallet/billo/internal/store"
)

// ErrNoAccount indicates no credentials (or no matching profile record)
// exist in the device store.
var ErrNoAccount = errors.New("no account found")

// Repository persists identity records through the device store.
type Repository struct {
	store store.Store
}

// NewRepository builds a store-backed identity repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Credentials loads the current login record.
func (r *Repository) Credentials(ctx context.Context) (Credentials, error) {
	var creds Credentials
	if err := r.get(ctx, store.KeyCredentials, &creds); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Credentials{}, ErrNoAccount
		}
		return Credentials{}, err
	}
	return creds, nil
}

// SaveCredentials writes the current login record.
func (r *Repository) SaveCredentials(ctx context.Context, creds Credentials) error {
	return r.set(ctx, store.KeyCredentials, creds)
}

// Profile loads the current full profile record.
func (r *Repository) Profile(ctx context.Context) (Profile, error) {
	var profile Profile
	if err := r.get(ctx, store.KeyProfile, &profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrNoAccount
		}
		return Profile{}, err
	}
	return profile, nil
}

// UserProfile loads the per-user profile record.
func (r *Repository) UserProfile(ctx context.Context, userID string) (Profile, error) {
	var profile Profile
	if err := r.get(ctx, store.UserKey(userID), &profile); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrNoAccount
		}
		return Profile{}, err
	}
	return profile, nil
}

// SaveProfile writes the full profile under both the current-user key
// and the per-user key. The pair is not written atomically.
func (r *Repository) SaveProfile(ctx context.Context, profile Profile) error {
	if err := r.set(ctx, store.KeyProfile, profile); err != nil {
		return err
	}
	return r.set(ctx, store.UserKey(profile.UserID), profile)
}

// Draft loads the signup accumulator, returning an empty draft when the
// flow has not started.
func (r *Repository) Draft(ctx context.Context) (Draft, error) {
	var draft Draft
	if err := r.get(ctx, store.KeySignupDraft, &draft); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Draft{}, nil
		}
		return Draft{}, err
	}
	return draft, nil
}

// SaveDraft persists the signup accumulator.
func (r *Repository) SaveDraft(ctx context.Context, draft Draft) error {
	return r.set(ctx, store.KeySignupDraft, draft)
}

// StepFour loads the final-step cache, empty when absent.
func (r *Repository) StepFour(ctx context.Context) (StepFour, error) {
	var step StepFour
	if err := r.get(ctx, store.KeySignupStep4, &step); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return StepFour{}, nil
		}
		return StepFour{}, err
	}
	return step, nil
}

// SaveStepFour persists the final-step cache.
func (r *Repository) SaveStepFour(ctx context.Context, step StepFour) error {
	return r.set(ctx, store.KeySignupStep4, step)
}

// ClearSignupCaches removes the transient per-step records.
func (r *Repository) ClearSignupCaches(ctx context.Context) error {
	if err := r.store.Delete(ctx, store.KeySignupDraft); err != nil {
		return err
	}
	return r.store.Delete(ctx, store.KeySignupStep4)
}

// Purge removes every identity record: credentials, both profile keys
// and the signup caches.
func (r *Repository) Purge(ctx context.Context) error {
	var userID string
	if creds, err := r.Credentials(ctx); err == nil {
		userID = creds.UserID
	}

	for _, key := range []string{store.KeyProfile, store.KeyCredentials} {
		if err := r.store.Delete(ctx, key); err != nil {
			return err
		}
	}
	if userID != "" {
		if err := r.store.Delete(ctx, store.UserKey(userID)); err != nil {
			return err
		}
	}
	return r.ClearSignupCaches(ctx)
}

func (r *Repository) get(ctx context.Context, key string, out any) error {
	raw, err := r.store.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

func (r *Repository) set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return r.store.Set(ctx, key, raw)
}
