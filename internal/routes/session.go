package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/billo-wallet/billo/internal/session"
)

// RegisterSessionRoutes wires the onboarding and session endpoints.
func RegisterSessionRoutes(r fiber.Router, h *session.Handler) {
	r.Post("/permissions", h.Permissions)

	r.Post("/signup/step1", h.SignupStepOne)
	r.Post("/signup/step2", h.SignupStepTwo)
	r.Post("/signup/step3", h.SignupStepThree)
	r.Post("/signup/step4", h.SignupStepFour)
	r.Post("/signup/complete", h.SignupComplete)
	r.Get("/signup/draft", h.SignupDraft)

	r.Get("/session", h.State)
	r.Post("/session/start", h.Start)
	r.Post("/session/login", h.Login)
	r.Post("/session/pin", h.VerifyPIN)
	r.Post("/session/logout", h.Logout)
	r.Post("/session/password-reset", h.ResetPassword)
	r.Put("/session/nav-state", h.SaveNavState)
	r.Get("/session/nav-state", h.NavState)

	r.Post("/account/delete", h.BeginDelete)
	r.Post("/account/delete/confirm", h.ConfirmDelete)
}
