package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billo-wallet/billo/internal/transfer"
)

// RegisterTransferRoutes wires the send/receive/scan endpoints.
func RegisterTransferRoutes(r fiber.Router, h *transfer.Handler) {
	r.Post("/transfers/send", h.Send)
	r.Post("/transfers/receive", h.Receive)
	r.Post("/transfers/scan", h.Scan)
}
