package transfer

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestParsePaymentRequestURI(t *testing.T) {
	req, err := ParsePaymentRequest("billo://pay?wallet=555123&name=Omar&phone=9617098765&amount=42.50&currency=USD")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.WalletNumber != "555123" || req.Name != "Omar" || req.PhoneNumber != "9617098765" {
		t.Fatalf("unexpected prefill %+v", req)
	}
	if !req.Amount.Equal(decimal.NewFromFloat(42.50)) || req.Currency != "USD" {
		t.Fatalf("unexpected amount prefill %+v", req)
	}
}

func TestParsePaymentRequestBareWalletNumber(t *testing.T) {
	req, err := ParsePaymentRequest("555123")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.WalletNumber != "555123" || req.Name != "" {
		t.Fatalf("unexpected prefill %+v", req)
	}
}

func TestParsePaymentRequestRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"https://example.com",
		"billo://pay?name=NoWallet",
		"billo://pay?wallet=555&amount=-3",
		"not a code",
	}
	for _, payload := range cases {
		if _, err := ParsePaymentRequest(payload); !errors.Is(err, ErrUnrecognizedPayload) {
			t.Errorf("ParsePaymentRequest(%q): expected ErrUnrecognizedPayload, got %v", payload, err)
		}
	}
}
