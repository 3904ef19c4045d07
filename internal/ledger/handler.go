package ledger

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/billo-wallet/billo/internal/httputil"
)

// Handler exposes the ledger read and mutation endpoints.
type Handler struct {
	service *Service
	logger  *slog.Logger
}

// NewHandler builds a ledger HTTP handler.
func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type addTransactionRequest struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Type     Type            `json:"type"`
}

// Overview returns balances together with the stored sequence.
func (h *Handler) Overview(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"balances":     h.service.Balances(),
		"transactions": h.service.Transactions(),
	})
}

// AddTransaction records a manual ledger entry.
func (h *Handler) AddTransaction(c *fiber.Ctx) error {
	var req addTransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	tx, err := h.service.Add(c.UserContext(), req.Name, req.Amount, req.Currency, req.Type)
	switch {
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrInvalidType), errors.Is(err, ErrUnknownCurrency):
		return httputil.Message(c, http.StatusBadRequest, err.Error())
	case err != nil:
		return httputil.Alert(c, h.logger, err)
	}

	return c.Status(http.StatusCreated).JSON(tx)
}

// Transactions returns the history projection filtered by type and date.
func (h *Handler) Transactions(c *fiber.Ctx) error {
	typ := c.Query("type", "all")
	date := c.Query("date")
	return c.JSON(h.service.Filter(typ, date))
}

// Summary returns the income/expense totals for the overview chart.
func (h *Handler) Summary(c *fiber.Ctx) error {
	return c.JSON(h.service.Totals())
}

// Recent returns the last-seven recency chart series.
func (h *Handler) Recent(c *fiber.Ctx) error {
	return c.JSON(h.service.RecentSeries())
}
