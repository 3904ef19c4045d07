package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/billo-wallet/billo/internal/logging"
	"github.com/billo-wallet/billo/internal/store"
	"github.com/billo-wallet/billo/internal/validate"
)

func newTestService() (*Service, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return NewService(NewRepository(mem), logging.Discard()), mem
}

func completeSignup(t *testing.T, svc *Service) Account {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.SubmitStepOne(ctx, StepOneInput{
		Email:       "maya@example.com",
		PhoneNumber: "9617012345",
		Password:    "Abcdef1!",
	}); err != nil {
		t.Fatalf("step one: %v", err)
	}
	if _, err := svc.SubmitStepTwo(ctx, StepTwoInput{
		FirstName: "Maya",
		LastName:  "Khal",
		Gender:    "female",
	}); err != nil {
		t.Fatalf("step two: %v", err)
	}
	if _, err := svc.SubmitStepThree(ctx, StepThreeInput{
		DateOfBirth:        "01/15/1990",
		PlaceOfBirth:       "Beirut",
		Nationality:        "Lebanese",
		CountryOfResidence: "Lebanon",
		Occupation:         "Engineer",
	}); err != nil {
		t.Fatalf("step three: %v", err)
	}
	if err := svc.SubmitStepFour(ctx, StepFourInput{
		SecurityPIN:        "1234",
		ConfirmSecurityPIN: "1234",
		TermsAccepted:      true,
	}); err != nil {
		t.Fatalf("step four: %v", err)
	}

	account, err := svc.CompleteSignup(ctx)
	if err != nil {
		t.Fatalf("complete signup: %v", err)
	}
	return account
}

func TestSignupKeepsEveryStepField(t *testing.T) {
	svc, _ := newTestService()
	account := completeSignup(t, svc)

	p := account.Profile
	if p.UserID == "" {
		t.Fatal("expected a user id to be assigned")
	}
	if p.FirstName != "Maya" || p.LastName != "Khal" || p.Gender != "female" {
		t.Fatalf("step two fields lost: %+v", p)
	}
	if p.DateOfBirth != "01/15/1990" || p.PlaceOfBirth != "Beirut" ||
		p.Nationality != "Lebanese" || p.CountryOfResidence != "Lebanon" || p.Occupation != "Engineer" {
		t.Fatalf("step three fields lost: %+v", p)
	}
	if p.SecurityPIN != "1234" {
		t.Fatalf("step four PIN lost: %+v", p)
	}
	if account.Credentials.Email != "maya@example.com" || account.Credentials.PhoneNumber != "9617012345" {
		t.Fatalf("step one fields lost: %+v", account.Credentials)
	}
	if account.Credentials.UserID != p.UserID {
		t.Fatal("credentials and profile disagree on the user id")
	}
}

func TestSignupStepValidationBlocksAdvancement(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.SubmitStepOne(ctx, StepOneInput{
		Email:       "not-an-email",
		PhoneNumber: "123",
		Password:    "weak",
	})
	var fields validate.Errors
	if !errors.As(err, &fields) {
		t.Fatalf("expected field errors, got %v", err)
	}
	for _, field := range []string{"email", "phoneNumber", "password"} {
		if fields[field] == "" {
			t.Errorf("expected a message for %s", field)
		}
	}
}

func TestSignupDraftIsResumable(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()

	if _, err := svc.SubmitStepOne(ctx, StepOneInput{
		Email:       "maya@example.com",
		PhoneNumber: "9617012345",
		Password:    "Abcdef1!",
	}); err != nil {
		t.Fatalf("step one: %v", err)
	}

	// A fresh service over the same store sees the draft.
	resumed := NewService(NewRepository(mem), logging.Discard())
	draft, err := resumed.Draft(ctx)
	if err != nil {
		t.Fatalf("draft: %v", err)
	}
	if draft.Email != "maya@example.com" || draft.PhoneNumber != "9617012345" {
		t.Fatalf("draft not persisted across interruption: %+v", draft)
	}
}

func TestCompleteSignupPurgesStepCaches(t *testing.T) {
	svc, mem := newTestService()
	completeSignup(t, svc)

	ctx := context.Background()
	if _, err := mem.Get(ctx, store.KeySignupDraft); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected draft cache to be purged, got %v", err)
	}
	if _, err := mem.Get(ctx, store.KeySignupStep4); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected step four cache to be purged, got %v", err)
	}
}

func TestCompleteSignupRequiresTermsAndPinMatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if err := svc.SubmitStepFour(ctx, StepFourInput{
		SecurityPIN:        "1234",
		ConfirmSecurityPIN: "4321",
		TermsAccepted:      true,
	}); err == nil {
		t.Fatal("expected mismatched PIN confirmation to fail")
	}

	if err := svc.SubmitStepFour(ctx, StepFourInput{
		SecurityPIN:        "1234",
		ConfirmSecurityPIN: "1234",
		TermsAccepted:      false,
	}); !errors.Is(err, ErrTermsNotAccepted) {
		t.Fatalf("expected ErrTermsNotAccepted, got %v", err)
	}
}

func TestLoginDistinguishesFailures(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.Login(ctx, "9617012345", "Abcdef1!"); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount before signup, got %v", err)
	}

	completeSignup(t, svc)

	if _, err := svc.Login(ctx, "9999999999", "Abcdef1!"); !errors.Is(err, ErrPhoneMismatch) {
		t.Fatalf("expected ErrPhoneMismatch, got %v", err)
	}
	if _, err := svc.Login(ctx, "9617012345", "Wrong1!pass"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}

	profile, err := svc.Login(ctx, "9617012345", "Abcdef1!")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if profile.FirstName != "Maya" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestVerifyPINExactMatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	completeSignup(t, svc)

	if _, err := svc.VerifyPIN(ctx, "1234"); err != nil {
		t.Fatalf("expected matching PIN to verify, got %v", err)
	}
	if _, err := svc.VerifyPIN(ctx, "123"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected mismatch for short PIN, got %v", err)
	}
	if _, err := svc.VerifyPIN(ctx, "5678"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected mismatch for wrong PIN, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()
	completeSignup(t, svc)

	if err := svc.ResetPassword(ctx, "0000", "Newpass1!"); !errors.Is(err, ErrPINMismatch) {
		t.Fatalf("expected PIN check to gate the reset, got %v", err)
	}

	var fields validate.Errors
	if err := svc.ResetPassword(ctx, "1234", "weak"); !errors.As(err, &fields) {
		t.Fatalf("expected complexity validation on the new password, got %v", err)
	}

	if err := svc.ResetPassword(ctx, "1234", "Newpass1!"); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	if _, err := svc.Login(ctx, "9617012345", "Abcdef1!"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("expected old password to stop working, got %v", err)
	}
	if _, err := svc.Login(ctx, "9617012345", "Newpass1!"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
}

func TestPurgeRemovesAllIdentityRecords(t *testing.T) {
	svc, mem := newTestService()
	ctx := context.Background()
	account := completeSignup(t, svc)

	if err := svc.Purge(ctx); err != nil {
		t.Fatalf("purge: %v", err)
	}

	for _, key := range []string{store.KeyCredentials, store.KeyProfile, store.UserKey(account.Profile.UserID)} {
		if _, err := mem.Get(ctx, key); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected %s to be purged, got %v", key, err)
		}
	}
	if _, err := svc.Login(ctx, "9617012345", "Abcdef1!"); !errors.Is(err, ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount after purge, got %v", err)
	}
}
