package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/billo-wallet/billo/internal/validate"
)

var (
	// ErrPhoneMismatch indicates the entered phone number does not match
	// the stored credentials.
	ErrPhoneMismatch = errors.New("phone number does not match")
	// ErrPasswordMismatch indicates the entered password failed the check.
	ErrPasswordMismatch = errors.New("invalid password")
	// ErrPINMismatch indicates the entered PIN differs from the stored one.
	ErrPINMismatch = errors.New("incorrect PIN")
	// ErrTermsNotAccepted blocks signup completion until the terms are accepted.
	ErrTermsNotAccepted = errors.New("terms must be accepted")
	// ErrIncompleteSignup indicates a completion attempt before every
	// required step field was captured.
	ErrIncompleteSignup = errors.New("signup data incomplete")
)

// Service manages the signup accumulation and the credential lifecycle.
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

// NewService creates a new identity service.
func NewService(repo *Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// StepOneInput carries the account fields of the first signup step.
type StepOneInput struct {
	Email       string
	PhoneNumber string
	Password    string
}

// StepTwoInput carries the name fields of the second signup step.
type StepTwoInput struct {
	FirstName string
	LastName  string
	Gender    string
}

// StepThreeInput carries the personal-detail fields of the third step.
type StepThreeInput struct {
	DateOfBirth        string
	PlaceOfBirth       string
	Nationality        string
	CountryOfResidence string
	Occupation         string
	IDPhotoRef         string
}

// StepFourInput carries the PIN confirmation and terms acceptance.
type StepFourInput struct {
	SecurityPIN        string
	ConfirmSecurityPIN string
	TermsAccepted      bool
}

// SubmitStepOne validates the account fields and merges them into the
// persisted draft.
func (s *Service) SubmitStepOne(ctx context.Context, in StepOneInput) (Draft, error) {
	fields := validate.Errors{}
	fields.Add("email", validate.Email(in.Email))
	fields.Add("phoneNumber", validate.Phone(in.PhoneNumber))
	fields.Add("password", validate.Password(in.Password))
	if err := fields.OrNil(); err != nil {
		return Draft{}, err
	}

	draft, err := s.repo.Draft(ctx)
	if err != nil {
		return Draft{}, err
	}
	draft.Email = strings.TrimSpace(in.Email)
	draft.PhoneNumber = strings.TrimSpace(in.PhoneNumber)
	draft.Password = strings.TrimSpace(in.Password)

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SubmitStepTwo validates the name fields and merges them into the draft.
func (s *Service) SubmitStepTwo(ctx context.Context, in StepTwoInput) (Draft, error) {
	fields := validate.Errors{}
	fields.Add("firstName", validate.Name(in.FirstName, "First name"))
	fields.Add("lastName", validate.Name(in.LastName, "Last name"))
	if err := fields.OrNil(); err != nil {
		return Draft{}, err
	}

	draft, err := s.repo.Draft(ctx)
	if err != nil {
		return Draft{}, err
	}
	draft.FirstName = strings.TrimSpace(in.FirstName)
	draft.LastName = strings.TrimSpace(in.LastName)
	draft.Gender = strings.TrimSpace(in.Gender)

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SubmitStepThree validates the personal details and merges them into
// the draft.
func (s *Service) SubmitStepThree(ctx context.Context, in StepThreeInput) (Draft, error) {
	fields := validate.Errors{}
	fields.Add("dateOfBirth", validate.DateOfBirth(strings.TrimSpace(in.DateOfBirth)))
	fields.Add("placeOfBirth", validate.TextField(in.PlaceOfBirth, "Place of birth"))
	fields.Add("nationality", validate.TextField(in.Nationality, "Nationality"))
	fields.Add("countryOfResidence", validate.TextField(in.CountryOfResidence, "Country of residence"))
	fields.Add("occupation", validate.TextField(in.Occupation, "Occupation"))
	if err := fields.OrNil(); err != nil {
		return Draft{}, err
	}

	draft, err := s.repo.Draft(ctx)
	if err != nil {
		return Draft{}, err
	}
	draft.DateOfBirth = strings.TrimSpace(in.DateOfBirth)
	draft.PlaceOfBirth = strings.TrimSpace(in.PlaceOfBirth)
	draft.Nationality = strings.TrimSpace(in.Nationality)
	draft.CountryOfResidence = strings.TrimSpace(in.CountryOfResidence)
	draft.Occupation = strings.TrimSpace(in.Occupation)
	if in.IDPhotoRef != "" {
		draft.IDPhotoRef = in.IDPhotoRef
	}

	if err := s.repo.SaveDraft(ctx, draft); err != nil {
		return Draft{}, err
	}
	return draft, nil
}

// SubmitStepFour validates the PIN pair and persists the final-step cache.
func (s *Service) SubmitStepFour(ctx context.Context, in StepFourInput) error {
	fields := validate.Errors{}
	fields.Add("securityPin", validate.PIN(in.SecurityPIN))
	if in.ConfirmSecurityPIN != in.SecurityPIN {
		fields.Add("confirmSecurityPin", "PINs do not match")
	}
	if err := fields.OrNil(); err != nil {
		return err
	}
	if !in.TermsAccepted {
		return ErrTermsNotAccepted
	}

	return s.repo.SaveStepFour(ctx, StepFour{
		SecurityPIN:        in.SecurityPIN,
		ConfirmSecurityPIN: in.ConfirmSecurityPIN,
		TermsAccepted:      in.TermsAccepted,
	})
}

// Draft exposes the current accumulator so an interrupted flow can resume.
func (s *Service) Draft(ctx context.Context) (Draft, error) {
	return s.repo.Draft(ctx)
}

// CompleteSignup materializes the account: re-validates the accumulated
// draft, assigns the user id, writes the profile under both keys,
// derives the credentials record and purges the per-step caches.
func (s *Service) CompleteSignup(ctx context.Context) (Account, error) {
	draft, err := s.repo.Draft(ctx)
	if err != nil {
		return Account{}, err
	}
	step4, err := s.repo.StepFour(ctx)
	if err != nil {
		return Account{}, err
	}

	if draft.Email == "" || draft.PhoneNumber == "" || draft.Password == "" ||
		draft.FirstName == "" || draft.LastName == "" || draft.DateOfBirth == "" {
		return Account{}, ErrIncompleteSignup
	}
	if validate.PIN(step4.SecurityPIN) != "" || step4.SecurityPIN != step4.ConfirmSecurityPIN {
		return Account{}, ErrIncompleteSignup
	}
	if !step4.TermsAccepted {
		return Account{}, ErrTermsNotAccepted
	}

	now := time.Now().UTC()
	profile := Profile{
		UserID:             uuid.New().String(),
		FirstName:          draft.FirstName,
		LastName:           draft.LastName,
		Gender:             draft.Gender,
		DateOfBirth:        draft.DateOfBirth,
		PlaceOfBirth:       draft.PlaceOfBirth,
		Nationality:        draft.Nationality,
		CountryOfResidence: draft.CountryOfResidence,
		Occupation:         draft.Occupation,
		SecurityPIN:        step4.SecurityPIN,
		IDPhotoRef:         draft.IDPhotoRef,
		SignupDate:         now,
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(draft.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}
	creds := Credentials{
		UserID:       profile.UserID,
		PhoneNumber:  draft.PhoneNumber,
		Email:        draft.Email,
		PasswordHash: hash,
		CreatedAt:    now,
	}

	// Profile then credentials, the same order the records are read
	// back. The pair is not transactional.
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return Account{}, err
	}
	if err := s.repo.SaveCredentials(ctx, creds); err != nil {
		return Account{}, err
	}
	if err := s.repo.ClearSignupCaches(ctx); err != nil {
		return Account{}, err
	}

	s.logger.Info("account created", "user_id", profile.UserID)
	return Account{Profile: profile, Credentials: creds}, nil
}

// Login checks the entered phone and password against the stored
// credentials, distinguishing a missing account, a phone mismatch and a
// password mismatch.
func (s *Service) Login(ctx context.Context, phone, password string) (Profile, error) {
	creds, err := s.repo.Credentials(ctx)
	if err != nil {
		return Profile{}, err
	}

	if strings.TrimSpace(creds.PhoneNumber) != strings.TrimSpace(phone) {
		return Profile{}, ErrPhoneMismatch
	}
	if err := bcrypt.CompareHashAndPassword(creds.PasswordHash, []byte(password)); err != nil {
		return Profile{}, ErrPasswordMismatch
	}

	profile, err := s.repo.UserProfile(ctx, creds.UserID)
	if err != nil {
		return Profile{}, err
	}

	s.logger.Info("login succeeded", "user_id", creds.UserID)
	return profile, nil
}

// VerifyPIN succeeds iff the entered PIN exactly matches the stored
// 4-digit security PIN. Attempts are unlimited.
func (s *Service) VerifyPIN(ctx context.Context, pin string) (Profile, error) {
	creds, err := s.repo.Credentials(ctx)
	if err != nil {
		return Profile{}, err
	}

	profile, err := s.repo.UserProfile(ctx, creds.UserID)
	if err != nil {
		return Profile{}, err
	}
	if profile.SecurityPIN == "" {
		return Profile{}, ErrNoAccount
	}

	if pin != profile.SecurityPIN {
		return Profile{}, ErrPINMismatch
	}
	return profile, nil
}

// ResetPassword re-verifies the security PIN, validates the replacement
// password and updates the credentials record together with both
// profile records.
func (s *Service) ResetPassword(ctx context.Context, pin, newPassword string) error {
	profile, err := s.VerifyPIN(ctx, pin)
	if err != nil {
		return err
	}

	fields := validate.Errors{}
	fields.Add("newPassword", validate.Password(newPassword))
	if err := fields.OrNil(); err != nil {
		return err
	}

	creds, err := s.repo.Credentials(ctx)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(strings.TrimSpace(newPassword)), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	creds.PasswordHash = hash

	// Paired write, no rollback if the second fails.
	if err := s.repo.SaveCredentials(ctx, creds); err != nil {
		return err
	}
	if err := s.repo.SaveProfile(ctx, profile); err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", creds.UserID)
	return nil
}

// HasStoredCredentials reports whether a usable login record exists,
// the app-start entry condition.
func (s *Service) HasStoredCredentials(ctx context.Context) (bool, error) {
	creds, err := s.repo.Credentials(ctx)
	if errors.Is(err, ErrNoAccount) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return creds.PhoneNumber != "" && len(creds.PasswordHash) > 0, nil
}

// Purge removes every identity record.
func (s *Service) Purge(ctx context.Context) error {
	return s.repo.Purge(ctx)
}
