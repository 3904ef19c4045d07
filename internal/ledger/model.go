package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// Type classifies a transaction's effect on its currency balance.
type Type string

const (
	// TypeIncome credits the balance.
	TypeIncome Type = "income"
	// TypeExpense debits the balance.
	TypeExpense Type = "expense"
)

// Valid reports whether the type is one of the two known kinds.
func (t Type) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is an immutable ledger entry. IDs are unique and
// monotonic by creation time; the stored sequence is ordered newest
// first.
type Transaction struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Type      Type            `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
}

// Balances maps a currency code to its current amount.
type Balances map[string]decimal.Decimal

// Clone returns an independent copy.
func (b Balances) Clone() Balances {
	out := make(Balances, len(b))
	for currency, amount := range b {
		out[currency] = amount
	}
	return out
}

// SeriesPoint is one sample of the recency chart projection.
type SeriesPoint struct {
	Label string          `json:"label"`
	Value decimal.Decimal `json:"value"`
}

// Totals aggregates transaction amounts by type.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}
