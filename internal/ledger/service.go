package ledger

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrUnknownCurrency occurs when a transaction names a currency with
	// no corresponding balance entry.
	ErrUnknownCurrency = errors.New("no balance entry for currency")
	// ErrInvalidAmount occurs when a transaction amount is not positive.
	ErrInvalidAmount = errors.New("amount must be positive")
	// ErrInvalidType occurs when the transaction type is neither income
	// nor expense.
	ErrInvalidType = errors.New("unknown transaction type")
)

// SeedBalances returns the demo balances a fresh installation starts
// with. Not a zero state.
func SeedBalances() Balances {
	return Balances{
		"USD": decimal.NewFromFloat(2500.00),
		"LBP": decimal.NewFromInt(3_675_000),
	}
}

// Service owns the in-memory ledger and writes it through the
// repository after every mutation.
type Service struct {
	mu           sync.RWMutex
	repo         *Repository
	logger       *slog.Logger
	balances     Balances
	transactions []Transaction
	lastID       int64
}

// NewService builds a ledger service. Call Load before use.
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger, balances: Balances{}}
}

// Load reads the persisted ledger, seeding the demo balances when no
// balances record exists yet.
func (s *Service) Load(ctx context.Context) error {
	balances, transactions, found, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !found {
		balances = SeedBalances()
	}
	s.balances = balances
	s.transactions = transactions
	s.lastID = 0
	for _, tx := range transactions {
		if tx.ID > s.lastID {
			s.lastID = tx.ID
		}
	}

	if !found {
		if err := s.repo.Save(ctx, s.balances, s.transactions); err != nil {
			return err
		}
		s.logger.Info("ledger seeded", "currencies", len(s.balances))
	}
	return nil
}

// Add records a transaction: a fresh monotonic id and UTC timestamp,
// prepended to the sequence, with the matching balance adjusted by
// +amount for income or -amount for expense. Overdraft is permitted
// silently. Both records are persisted before returning.
func (s *Service) Add(ctx context.Context, name string, amount decimal.Decimal, currency string, typ Type) (Transaction, error) {
	if !typ.Valid() {
		return Transaction{}, ErrInvalidType
	}
	if !amount.IsPositive() {
		return Transaction{}, ErrInvalidAmount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	balance, ok := s.balances[currency]
	if !ok {
		return Transaction{}, ErrUnknownCurrency
	}

	tx := Transaction{
		ID:        s.nextID(),
		Name:      strings.TrimSpace(name),
		Amount:    amount,
		Currency:  currency,
		Type:      typ,
		Timestamp: time.Now().UTC(),
	}

	s.transactions = append([]Transaction{tx}, s.transactions...)
	if typ == TypeIncome {
		s.balances[currency] = balance.Add(amount)
	} else {
		s.balances[currency] = balance.Sub(amount)
	}

	if err := s.repo.Save(ctx, s.balances, s.transactions); err != nil {
		s.logger.Error("persist ledger", "error", err)
		return Transaction{}, err
	}

	s.logger.Info("transaction recorded",
		"id", tx.ID, "type", string(tx.Type), "currency", tx.Currency, "amount", tx.Amount.String())
	return tx, nil
}

// nextID derives a millisecond-timestamp id, bumped when two
// transactions land within the same millisecond. Callers hold mu.
func (s *Service) nextID() int64 {
	id := time.Now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return id
}

// Balances returns a copy of the current balances.
func (s *Service) Balances() Balances {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances.Clone()
}

// Transactions returns a copy of the stored sequence, newest first.
func (s *Service) Transactions() []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Filter projects the sequence by type ("all", "income" or "expense")
// and by calendar date (ISO date portion of the timestamp). Read-only.
func (s *Service) Filter(typ string, isoDate string) []Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Transaction, 0, len(s.transactions))
	for _, tx := range s.transactions {
		if typ != "" && typ != "all" && string(tx.Type) != typ {
			continue
		}
		if isoDate != "" && tx.Timestamp.UTC().Format("2006-01-02") != isoDate {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Totals sums amounts grouped by type across the full sequence.
func (s *Service) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range s.transactions {
		if tx.Type == TypeIncome {
			totals.Income = totals.Income.Add(tx.Amount)
		} else {
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	return totals
}

// RecentSeries projects the newest seven transactions in chronological
// order as signed chart samples: income positive, expense negative.
func (s *Service) RecentSeries() []SeriesPoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := len(s.transactions)
	if n > 7 {
		n = 7
	}

	out := make([]SeriesPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		tx := s.transactions[i]
		value := tx.Amount
		if tx.Type == TypeExpense {
			value = value.Neg()
		}
		label := tx.Name
		if len(label) > 5 {
			label = label[:5] + "..."
		}
		out = append(out, SeriesPoint{Label: label, Value: value})
	}
	return out
}

// Purge drops the in-memory state and removes both persisted records.
func (s *Service) Purge(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balances = Balances{}
	s.transactions = nil
	s.lastID = 0
	return s.repo.Purge(ctx)
}
