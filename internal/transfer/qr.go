package transfer

import (
	"errors"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnrecognizedPayload indicates the scanned string is not a payment
// request this wallet understands.
var ErrUnrecognizedPayload = errors.New("unrecognized payment payload")

// PaymentRequest is the prefill extracted from a scanned QR code. The
// scanner hardware and decoding are external; only the decoded string
// reaches the core.
type PaymentRequest struct {
	Name         string
	PhoneNumber  string
	WalletNumber string
	Amount       decimal.Decimal
	Currency     string
}

// ParsePaymentRequest interprets a decoded QR payload. Two forms are
// accepted: a billo://pay URI with query parameters, or a bare wallet
// number (digits only).
func ParsePaymentRequest(payload string) (PaymentRequest, error) {
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return PaymentRequest{}, ErrUnrecognizedPayload
	}

	if strings.HasPrefix(payload, "billo://") {
		return parsePaymentURI(payload)
	}

	if isDigits(payload) {
		return PaymentRequest{WalletNumber: payload}, nil
	}

	return PaymentRequest{}, ErrUnrecognizedPayload
}

func parsePaymentURI(payload string) (PaymentRequest, error) {
	u, err := url.Parse(payload)
	if err != nil || u.Host != "pay" {
		return PaymentRequest{}, ErrUnrecognizedPayload
	}

	q := u.Query()
	req := PaymentRequest{
		Name:         q.Get("name"),
		PhoneNumber:  q.Get("phone"),
		WalletNumber: q.Get("wallet"),
		Currency:     q.Get("currency"),
	}
	if req.WalletNumber == "" {
		return PaymentRequest{}, ErrUnrecognizedPayload
	}

	if raw := q.Get("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil || !amount.IsPositive() {
			return PaymentRequest{}, ErrUnrecognizedPayload
		}
		req.Amount = amount
	}

	return req, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
