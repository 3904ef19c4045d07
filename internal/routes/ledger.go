package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billo-wallet/billo/internal/ledger"
)

// RegisterLedgerRoutes wires the balance and transaction endpoints.
func RegisterLedgerRoutes(r fiber.Router, h *ledger.Handler) {
	r.Get("/ledger", h.Overview)
	r.Post("/ledger/transactions", h.AddTransaction)
	r.Get("/ledger/transactions", h.Transactions)
	r.Get("/ledger/summary", h.Summary)
	r.Get("/ledger/recent", h.Recent)
}
