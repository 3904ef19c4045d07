package session

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/billo-wallet/billo/internal/httputil"
	"github.com/billo-wallet/billo/internal/identity"
)

// Handler exposes the onboarding and session endpoints.
type Handler struct {
	manager *Manager
	logger  *slog.Logger
}

// NewHandler builds a session HTTP handler.
func NewHandler(manager *Manager, logger *slog.Logger) *Handler {
	return &Handler{manager: manager, logger: logger}
}

type stateResponse struct {
	State State `json:"state"`
}

type permissionsRequest struct {
	Camera   bool `json:"camera"`
	Location bool `json:"location"`
}

type stepOneRequest struct {
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type stepTwoRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
}

type stepThreeRequest struct {
	DateOfBirth        string `json:"dateOfBirth"`
	PlaceOfBirth       string `json:"placeOfBirth"`
	Nationality        string `json:"nationality"`
	CountryOfResidence string `json:"countryOfResidence"`
	Occupation         string `json:"occupation"`
	IDPhotoRef         string `json:"idPhotoRef"`
}

type stepFourRequest struct {
	SecurityPIN        string `json:"securityPin"`
	ConfirmSecurityPIN string `json:"confirmSecurityPin"`
	TermsAccepted      bool   `json:"termsAccepted"`
}

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type pinRequest struct {
	PIN string `json:"pin"`
}

type resetPasswordRequest struct {
	PIN         string `json:"pin"`
	NewPassword string `json:"newPassword"`
}

type profileResponse struct {
	UserID    string `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	State     State  `json:"state"`
}

// State reports the current machine position.
func (h *Handler) State(c *fiber.Ctx) error {
	return c.JSON(stateResponse{State: h.manager.State()})
}

// Start re-runs the app-start entry condition check.
func (h *Handler) Start(c *fiber.Ctx) error {
	state, err := h.manager.Start(c.UserContext())
	if err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	return c.JSON(stateResponse{State: state})
}

// Permissions branches on the granted booleans from the host platform.
func (h *Handler) Permissions(c *fiber.Ctx) error {
	var req permissionsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	state, err := h.manager.GrantPermissions(req.Camera, req.Location)
	if err != nil {
		return httputil.Message(c, http.StatusForbidden, err.Error())
	}
	return c.JSON(stateResponse{State: state})
}

// SignupStepOne submits the account fields.
func (h *Handler) SignupStepOne(c *fiber.Ctx) error {
	var req stepOneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.manager.SubmitStepOne(c.UserContext(), identity.StepOneInput{
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}
	return c.JSON(draft)
}

// SignupStepTwo submits the name fields.
func (h *Handler) SignupStepTwo(c *fiber.Ctx) error {
	var req stepTwoRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.manager.SubmitStepTwo(c.UserContext(), identity.StepTwoInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
	})
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}
	return c.JSON(draft)
}

// SignupStepThree submits the personal details.
func (h *Handler) SignupStepThree(c *fiber.Ctx) error {
	var req stepThreeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	draft, err := h.manager.SubmitStepThree(c.UserContext(), identity.StepThreeInput{
		DateOfBirth:        req.DateOfBirth,
		PlaceOfBirth:       req.PlaceOfBirth,
		Nationality:        req.Nationality,
		CountryOfResidence: req.CountryOfResidence,
		Occupation:         req.Occupation,
		IDPhotoRef:         req.IDPhotoRef,
	})
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}
	return c.JSON(draft)
}

// SignupStepFour submits the PIN confirmation and terms acceptance.
func (h *Handler) SignupStepFour(c *fiber.Ctx) error {
	var req stepFourRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	err := h.manager.SubmitStepFour(c.UserContext(), identity.StepFourInput{
		SecurityPIN:        req.SecurityPIN,
		ConfirmSecurityPIN: req.ConfirmSecurityPIN,
		TermsAccepted:      req.TermsAccepted,
	})
	if errors.Is(err, identity.ErrTermsNotAccepted) {
		return httputil.Message(c, http.StatusBadRequest, "You must accept the terms and conditions")
	}
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// SignupDraft returns the resumable accumulator.
func (h *Handler) SignupDraft(c *fiber.Ctx) error {
	draft, err := h.manager.identity.Draft(c.UserContext())
	if err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	return c.JSON(draft)
}

// SignupComplete materializes the account and enters the session.
func (h *Handler) SignupComplete(c *fiber.Ctx) error {
	account, err := h.manager.CompleteSignup(c.UserContext())
	if errors.Is(err, identity.ErrIncompleteSignup) {
		return httputil.Message(c, http.StatusConflict, "Please complete every signup step first")
	}
	if errors.Is(err, identity.ErrTermsNotAccepted) {
		return httputil.Message(c, http.StatusBadRequest, "You must accept the terms and conditions")
	}
	if err != nil {
		return httputil.Fail(c, h.logger, err)
	}
	return c.Status(http.StatusCreated).JSON(profileResponse{
		UserID:    account.Profile.UserID,
		FirstName: account.Profile.FirstName,
		LastName:  account.Profile.LastName,
		State:     h.manager.State(),
	})
}

// Login checks credentials, distinguishing the mismatch cases inline.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.manager.Login(c.UserContext(), req.PhoneNumber, req.Password)
	switch {
	case errors.Is(err, identity.ErrNoAccount):
		return httputil.Message(c, http.StatusNotFound, "No account found. Please sign up first.")
	case errors.Is(err, identity.ErrPhoneMismatch):
		return httputil.Message(c, http.StatusUnauthorized, "Phone number does not match our records.")
	case errors.Is(err, identity.ErrPasswordMismatch):
		return httputil.Message(c, http.StatusUnauthorized, "Invalid password. Password is case-sensitive. Please check and try again.")
	case err != nil:
		return httputil.Fail(c, h.logger, err)
	}

	return c.JSON(profileResponse{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		State:     h.manager.State(),
	})
}

// VerifyPIN resolves the PIN gate.
func (h *Handler) VerifyPIN(c *fiber.Ctx) error {
	var req pinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.manager.VerifyPIN(c.UserContext(), req.PIN)
	switch {
	case errors.Is(err, identity.ErrNoAccount):
		// Unrecoverable locally: the machine has been reset to the
		// unauthenticated entry point.
		return c.Status(http.StatusConflict).JSON(fiber.Map{
			"error": "Account data missing. Please sign up again.",
			"state": h.manager.State(),
		})
	case errors.Is(err, identity.ErrPINMismatch):
		return httputil.Message(c, http.StatusUnauthorized, "Incorrect PIN. Please try again.")
	case err != nil:
		return httputil.Fail(c, h.logger, err)
	}

	return c.JSON(profileResponse{
		UserID:    profile.UserID,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		State:     h.manager.State(),
	})
}

// ResetPassword re-verifies the PIN and swaps the password.
func (h *Handler) ResetPassword(c *fiber.Ctx) error {
	var req resetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}

	err := h.manager.ResetPassword(c.UserContext(), req.PIN, req.NewPassword)
	switch {
	case errors.Is(err, identity.ErrNoAccount):
		return httputil.Message(c, http.StatusNotFound, "No account found. Please sign up first.")
	case errors.Is(err, identity.ErrPINMismatch):
		return httputil.Message(c, http.StatusUnauthorized, "Incorrect PIN. Please try again.")
	case err != nil:
		return httputil.Fail(c, h.logger, err)
	}

	return c.JSON(stateResponse{State: h.manager.State()})
}

// Logout clears the transient navigation record only.
func (h *Handler) Logout(c *fiber.Ctx) error {
	if err := h.manager.Logout(c.UserContext()); err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	return c.JSON(stateResponse{State: h.manager.State()})
}

// BeginDelete is the first of two confirmations before the purge.
func (h *Handler) BeginDelete(c *fiber.Ctx) error {
	if err := h.manager.BeginDeleteAccount(); err != nil {
		return httputil.Message(c, http.StatusConflict, err.Error())
	}
	return c.JSON(fiber.Map{
		"warning": "This will permanently delete all your data. Are you absolutely sure?",
	})
}

// ConfirmDelete is the second, irreversible confirmation.
func (h *Handler) ConfirmDelete(c *fiber.Ctx) error {
	err := h.manager.ConfirmDeleteAccount(c.UserContext())
	if errors.Is(err, ErrDeletionNotArmed) {
		return httputil.Message(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	return c.JSON(stateResponse{State: h.manager.State()})
}

// SaveNavState persists the opaque navigation snapshot.
func (h *Handler) SaveNavState(c *fiber.Ctx) error {
	if err := h.manager.SaveNavState(c.UserContext(), c.Body()); err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

// NavState returns the persisted navigation snapshot.
func (h *Handler) NavState(c *fiber.Ctx) error {
	snapshot, err := h.manager.NavState(c.UserContext())
	if err != nil {
		return httputil.Alert(c, h.logger, err)
	}
	if snapshot == nil {
		return c.SendStatus(http.StatusNoContent)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(snapshot)
}
