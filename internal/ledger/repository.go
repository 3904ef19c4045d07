package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/billo-wallet/billo/internal/store"
)

// Repository persists the ledger pair through the device store.
type Repository struct {
	store store.Store
}

// NewRepository builds a store-backed ledger repository.
func NewRepository(s store.Store) *Repository {
	return &Repository{store: s}
}

// Load reads the balances and transaction records. A missing balances
// record is reported through the found flag so the service can seed the
// demo state; a missing transaction record is simply an empty sequence.
func (r *Repository) Load(ctx context.Context) (Balances, []Transaction, bool, error) {
	balances := Balances{}
	found := true

	raw, err := r.store.Get(ctx, store.KeyBalances)
	switch {
	case errors.Is(err, store.ErrNotFound):
		found = false
	case err != nil:
		return nil, nil, false, err
	default:
		if err := json.Unmarshal(raw, &balances); err != nil {
			return nil, nil, false, fmt.Errorf("decode balances: %w", err)
		}
	}

	var transactions []Transaction
	raw, err = r.store.Get(ctx, store.KeyTransactions)
	switch {
	case errors.Is(err, store.ErrNotFound):
		// fresh install
	case err != nil:
		return nil, nil, false, err
	default:
		if err := json.Unmarshal(raw, &transactions); err != nil {
			return nil, nil, false, fmt.Errorf("decode transactions: %w", err)
		}
	}

	return balances, transactions, found, nil
}

// Save writes both ledger records back to the store. The pair is not
// written atomically; a crash between the two writes leaves them
// inconsistent until the next save.
func (r *Repository) Save(ctx context.Context, balances Balances, transactions []Transaction) error {
	raw, err := json.Marshal(balances)
	if err != nil {
		return fmt.Errorf("encode balances: %w", err)
	}
	if err := r.store.Set(ctx, store.KeyBalances, raw); err != nil {
		return err
	}

	raw, err = json.Marshal(transactions)
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}
	return r.store.Set(ctx, store.KeyTransactions, raw)
}

// Purge removes both ledger records.
func (r *Repository) Purge(ctx context.Context) error {
	if err := r.store.Delete(ctx, store.KeyBalances); err != nil {
		return err
	}
	return r.store.Delete(ctx, store.KeyTransactions)
}
