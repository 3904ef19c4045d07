package transfer

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/billo-wallet/billo/internal/ledger"
	"github.com/billo-wallet/billo/internal/notification"
	"github.com/billo-wallet/billo/internal/validate"
)

// receiveFeeRate is the 2% fee withheld from incoming transfers; only
// the net amount is credited.
var receiveFeeRate = decimal.NewFromFloat(0.02)

// Service turns send/receive form submissions into ledger entries.
type Service struct {
	ledger   *ledger.Service
	notifier notification.Notifier
}

// NewService builds a transfer service.
func NewService(l *ledger.Service, notifier notification.Notifier) *Service {
	return &Service{ledger: l, notifier: notifier}
}

// SendInput captures the send-money form.
type SendInput struct {
	Recipient    string
	PhoneNumber  string
	WalletNumber string
	Amount       decimal.Decimal
	Currency     string
}

// ReceiveInput captures the receive-money form.
type ReceiveInput struct {
	Sender       string
	PhoneNumber  string
	WalletNumber string
	Amount       decimal.Decimal
	Currency     string
}

// ReceiveResult reports the fee math applied to an incoming transfer.
type ReceiveResult struct {
	Transaction ledger.Transaction
	Gross       decimal.Decimal
	Fee         decimal.Decimal
	Net         decimal.Decimal
}

// Send records an outgoing transfer as an expense transaction.
func (s *Service) Send(ctx context.Context, in SendInput) (ledger.Transaction, error) {
	fields := validate.Errors{}
	fields.Add("recipient", validate.TextField(in.Recipient, "Recipient name"))
	fields.Add("phoneNumber", validate.Phone(in.PhoneNumber))
	fields.Add("walletNumber", validate.TextField(in.WalletNumber, "Wallet number"))
	if !in.Amount.IsPositive() {
		fields.Add("amount", "Amount must be greater than zero")
	}
	if err := fields.OrNil(); err != nil {
		return ledger.Transaction{}, err
	}

	tx, err := s.ledger.Add(ctx, fmt.Sprintf("Sent to %s", in.Recipient), in.Amount, in.Currency, ledger.TypeExpense)
	if err != nil {
		return ledger.Transaction{}, err
	}

	s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindMoneySent,
		Destination: in.PhoneNumber,
		Body:        fmt.Sprintf("Sent %s %s to %s", in.Amount.String(), in.Currency, in.Recipient),
	})
	return tx, nil
}

// Receive records an incoming transfer as an income transaction,
// crediting the amount net of the 2% fee.
func (s *Service) Receive(ctx context.Context, in ReceiveInput) (ReceiveResult, error) {
	fields := validate.Errors{}
	fields.Add("sender", validate.TextField(in.Sender, "Sender name"))
	fields.Add("phoneNumber", validate.Phone(in.PhoneNumber))
	fields.Add("walletNumber", validate.TextField(in.WalletNumber, "Wallet number"))
	if !in.Amount.IsPositive() {
		fields.Add("amount", "Amount must be greater than zero")
	}
	if err := fields.OrNil(); err != nil {
		return ReceiveResult{}, err
	}

	fee := in.Amount.Mul(receiveFeeRate)
	net := in.Amount.Sub(fee)

	tx, err := s.ledger.Add(ctx, fmt.Sprintf("Received from %s", in.Sender), net, in.Currency, ledger.TypeIncome)
	if err != nil {
		return ReceiveResult{}, err
	}

	s.notifier.Send(ctx, notification.Message{
		Kind:        notification.KindMoneyReceived,
		Destination: in.PhoneNumber,
		Body:        fmt.Sprintf("Received %s %s from %s", net.String(), in.Currency, in.Sender),
	})
	return ReceiveResult{Transaction: tx, Gross: in.Amount, Fee: fee, Net: net}, nil
}
