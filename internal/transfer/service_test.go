package transfer

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/billo-wallet/billo/internal/ledger"
	"github.com/billo-wallet/billo/internal/logging"
	"github.com/billo-wallet/billo/internal/notification"
	"github.com/billo-wallet/billo/internal/store"
	"github.com/billo-wallet/billo/internal/validate"
)

func newTestTransfer(t *testing.T) (*Service, *ledger.Service) {
	t.Helper()
	logger := logging.Discard()
	led := ledger.NewService(ledger.NewRepository(store.NewMemoryStore()), logger)
	if err := led.Load(context.Background()); err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return NewService(led, notification.NewLoggerNotifier(logger)), led
}

func TestSendRecordsExpense(t *testing.T) {
	svc, led := newTestTransfer(t)
	ctx := context.Background()

	before := led.Balances()["USD"]
	tx, err := svc.Send(ctx, SendInput{
		Recipient:    "Omar",
		PhoneNumber:  "9617098765",
		WalletNumber: "555123",
		Amount:       decimal.NewFromInt(150),
		Currency:     "USD",
	})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	if tx.Name != "Sent to Omar" || tx.Type != ledger.TypeExpense {
		t.Fatalf("unexpected transaction %+v", tx)
	}
	if got := led.Balances()["USD"]; !got.Equal(before.Sub(decimal.NewFromInt(150))) {
		t.Fatalf("expected balance -150, got %s", got)
	}
}

func TestSendValidatesForm(t *testing.T) {
	svc, _ := newTestTransfer(t)

	_, err := svc.Send(context.Background(), SendInput{Amount: decimal.Zero, Currency: "USD"})
	var fields validate.Errors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, field := range []string{"recipient", "phoneNumber", "walletNumber", "amount"} {
		if fields[field] == "" {
			t.Errorf("expected a message for %s", field)
		}
	}
}

func TestReceiveCreditsNetOfFee(t *testing.T) {
	svc, led := newTestTransfer(t)
	ctx := context.Background()

	before := led.Balances()["USD"]
	result, err := svc.Receive(ctx, ReceiveInput{
		Sender:       "Nadia",
		PhoneNumber:  "9617011122",
		WalletNumber: "555987",
		Amount:       decimal.NewFromInt(100),
		Currency:     "USD",
	})
	if err != nil {
		t.Fatalf("receive: %v", err)
	}

	if !result.Fee.Equal(decimal.NewFromInt(2)) {
		t.Fatalf("expected 2%% fee of 2, got %s", result.Fee)
	}
	if !result.Net.Equal(decimal.NewFromInt(98)) {
		t.Fatalf("expected net 98, got %s", result.Net)
	}
	if result.Transaction.Name != "Received from Nadia" || result.Transaction.Type != ledger.TypeIncome {
		t.Fatalf("unexpected transaction %+v", result.Transaction)
	}
	if got := led.Balances()["USD"]; !got.Equal(before.Add(decimal.NewFromInt(98))) {
		t.Fatalf("expected balance +98, got %s", got)
	}
}

func TestTransferUnknownCurrency(t *testing.T) {
	svc, _ := newTestTransfer(t)

	_, err := svc.Send(context.Background(), SendInput{
		Recipient:    "Omar",
		PhoneNumber:  "9617098765",
		WalletNumber: "555123",
		Amount:       decimal.NewFromInt(10),
		Currency:     "EUR",
	})
	if !errors.Is(err, ledger.ErrUnknownCurrency) {
		t.Fatalf("expected ErrUnknownCurrency, got %v", err)
	}
}
