package transfer

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/billo-wallet/billo/internal/httputil"
	"github.com/billo-wallet/billo/internal/ledger"
)

// Handler exposes the send/receive/scan endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a transfer HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type sendRequest struct {
	Recipient    string          `json:"recipient"`
	PhoneNumber  string          `json:"phoneNumber"`
	WalletNumber string          `json:"walletNumber"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

type receiveRequest struct {
	Sender       string          `json:"sender"`
	PhoneNumber  string          `json:"phoneNumber"`
	WalletNumber string          `json:"walletNumber"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

type scanRequest struct {
	Payload string `json:"payload"`
}

// Send posts an outgoing transfer.
func (h *Handler) Send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Send(c.UserContext(), SendInput{
		Recipient:    req.Recipient,
		PhoneNumber:  req.PhoneNumber,
		WalletNumber: req.WalletNumber,
		Amount:       req.Amount,
		Currency:     req.Currency,
	})
	if errors.Is(err, ledger.ErrUnknownCurrency) {
		return httputil.Message(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}

	return c.Status(http.StatusCreated).JSON(tx)
}

// Receive posts an incoming transfer and reports the fee math.
func (h *Handler) Receive(c *fiber.Ctx) error {
	var req receiveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Receive(c.UserContext(), ReceiveInput{
		Sender:       req.Sender,
		PhoneNumber:  req.PhoneNumber,
		WalletNumber: req.WalletNumber,
		Amount:       req.Amount,
		Currency:     req.Currency,
	})
	if errors.Is(err, ledger.ErrUnknownCurrency) {
		return httputil.Message(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"transaction": result.Transaction,
		"gross":       result.Gross,
		"fee":         result.Fee,
		"net":         result.Net,
	})
}

// Scan interprets a decoded QR payload into a payment prefill.
func (h *Handler) Scan(c *fiber.Ctx) error {
	var req scanRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	request, err := ParsePaymentRequest(req.Payload)
	if err != nil {
		return httputil.Message(c, http.StatusBadRequest, "Scanned code is not a payment request")
	}

	return c.JSON(fiber.Map{
		"name":         request.Name,
		"phoneNumber":  request.PhoneNumber,
		"walletNumber": request.WalletNumber,
		"amount":       request.Amount,
		"currency":     request.Currency,
	})
}
