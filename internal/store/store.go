package store

import (
	"context"
	"errors"
)

// ErrNotFound indicates the requested record does not exist in the device store.
var ErrNotFound = errors.New("record not found")

// Record keys for the device store. The names mirror the records a fresh
// installation accumulates: current credentials, current profile, the
// ledger pair, the resumable signup draft and the navigation snapshot.
const (
	KeyCredentials  = "userCredentials"
	KeyProfile      = "userData"
	KeyBalances     = "balances"
	KeyTransactions = "transactions"
	KeySignupDraft  = "currentSignUpData"
	KeySignupStep4  = "signUp4FormData"
	KeyNavState     = "NAVIGATION_STATE"
)

// UserKey returns the per-user profile record key. The full profile is
// written under both KeyProfile and this key at signup completion.
func UserKey(userID string) string {
	return "user:" + userID
}

// Store is the durable key-value port every service persists through.
// Values are opaque serialized records; last write wins.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
