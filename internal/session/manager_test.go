package session

import (
	"context"
	"errors"
	"testing"

	"github.com/billo-wallet/billo/internal/identity"
	"github.com/billo-wallet/billo/internal/ledger"
	"github.com/billo-wallet/billo/internal/logging"
	"github.com/billo-wallet/billo/internal/notification"
	"github.com/billo-wallet/billo/internal/store"
)

func newTestManager() (*Manager, *store.MemoryStore) {
	mem := store.NewMemoryStore()
	return newManagerOver(mem), mem
}

func newManagerOver(mem *store.MemoryStore) *Manager {
	logger := logging.Discard()
	identitySvc := identity.NewService(identity.NewRepository(mem), logger)
	ledgerSvc := ledger.NewService(ledger.NewRepository(mem), logger)
	notifier := notification.NewLoggerNotifier(logger)
	return NewManager(identitySvc, ledgerSvc, mem, notifier, logger)
}

func runSignup(t *testing.T, m *Manager) identity.Account {
	t.Helper()
	ctx := context.Background()

	if _, err := m.GrantPermissions(true, true); err != nil {
		t.Fatalf("grant permissions: %v", err)
	}
	if _, err := m.SubmitStepOne(ctx, identity.StepOneInput{
		Email:       "maya@example.com",
		PhoneNumber: "9617012345",
		Password:    "Abcdef1!",
	}); err != nil {
		t.Fatalf("step one: %v", err)
	}
	if _, err := m.SubmitStepTwo(ctx, identity.StepTwoInput{FirstName: "Maya", LastName: "Khal"}); err != nil {
		t.Fatalf("step two: %v", err)
	}
	if _, err := m.SubmitStepThree(ctx, identity.StepThreeInput{
		DateOfBirth:        "01/15/1990",
		PlaceOfBirth:       "Beirut",
		Nationality:        "Lebanese",
		CountryOfResidence: "Lebanon",
		Occupation:         "Engineer",
	}); err != nil {
		t.Fatalf("step three: %v", err)
	}
	if err := m.SubmitStepFour(ctx, identity.StepFourInput{
		SecurityPIN:        "1234",
		ConfirmSecurityPIN: "1234",
		TermsAccepted:      true,
	}); err != nil {
		t.Fatalf("step four: %v", err)
	}

	account, err := m.CompleteSignup(ctx)
	if err != nil {
		t.Fatalf("complete signup: %v", err)
	}
	return account
}

func TestStartWithoutCredentialsStaysUnauthenticated(t *testing.T) {
	m, _ := newTestManager()

	state, err := m.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state != StateUnauthenticated {
		t.Fatalf("expected unauthenticated entry, got %s", state)
	}
}

func TestStartWithStoredCredentialsRoutesToPinGate(t *testing.T) {
	m, mem := newTestManager()
	runSignup(t, m)

	// A second app start over the same device store.
	restarted := newManagerOver(mem)

	state, err := restarted.Start(context.Background())
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if state != StatePinGate {
		t.Fatalf("expected pin gate after restart, got %s", state)
	}
}

func TestPermissionsRequireBothGrants(t *testing.T) {
	m, _ := newTestManager()

	if _, err := m.GrantPermissions(true, false); !errors.Is(err, ErrPermissionsDenied) {
		t.Fatalf("expected denial with location missing, got %v", err)
	}
	if _, err := m.GrantPermissions(false, true); !errors.Is(err, ErrPermissionsDenied) {
		t.Fatalf("expected denial with camera missing, got %v", err)
	}
	state, err := m.GrantPermissions(true, true)
	if err != nil {
		t.Fatalf("grant: %v", err)
	}
	if state != StatePermissionsGranted {
		t.Fatalf("expected permissions granted, got %s", state)
	}
}

func TestFreshSignupBypassesPinGate(t *testing.T) {
	m, _ := newTestManager()
	runSignup(t, m)

	if m.State() != StateActive {
		t.Fatalf("expected active session immediately after signup, got %s", m.State())
	}
}

func TestPinGateExactMatch(t *testing.T) {
	m, _ := newTestManager()
	runSignup(t, m)
	ctx := context.Background()

	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if _, err := m.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}

	// Unlimited attempts: several failures do not lock the gate.
	for _, wrong := range []string{"123", "5678", "0000"} {
		if _, err := m.VerifyPIN(ctx, wrong); !errors.Is(err, identity.ErrPINMismatch) {
			t.Fatalf("expected mismatch for %q, got %v", wrong, err)
		}
		if m.State() != StatePinGate {
			t.Fatalf("expected to stay at pin gate, got %s", m.State())
		}
	}

	if _, err := m.VerifyPIN(ctx, "1234"); err != nil {
		t.Fatalf("verify pin: %v", err)
	}
	if m.State() != StateActive {
		t.Fatalf("expected active session, got %s", m.State())
	}
}

func TestPinGateMissingProfileResetsToEntry(t *testing.T) {
	m, mem := newTestManager()
	account := runSignup(t, m)
	ctx := context.Background()

	m.Logout(ctx)
	m.Start(ctx)

	// Simulate a corrupted install: credentials survive but the per-user
	// profile record is gone.
	if err := mem.Delete(ctx, store.UserKey(account.Profile.UserID)); err != nil {
		t.Fatalf("delete user record: %v", err)
	}

	if _, err := m.VerifyPIN(ctx, "1234"); !errors.Is(err, identity.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount, got %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("expected reset to the unauthenticated entry, got %s", m.State())
	}
}

func TestLogoutRetainsCredentials(t *testing.T) {
	m, _ := newTestManager()
	runSignup(t, m)
	ctx := context.Background()

	if err := m.SaveNavState(ctx, []byte(`{"route":"Home"}`)); err != nil {
		t.Fatalf("save nav state: %v", err)
	}
	if err := m.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated after logout, got %s", m.State())
	}

	snapshot, err := m.NavState(ctx)
	if err != nil {
		t.Fatalf("nav state: %v", err)
	}
	if snapshot != nil {
		t.Fatal("expected navigation record to be cleared by logout")
	}

	// Credentials survive: the same phone/password logs straight back in.
	if _, err := m.Login(ctx, "9617012345", "Abcdef1!"); err != nil {
		t.Fatalf("login after logout: %v", err)
	}
	if m.State() != StateActive {
		t.Fatalf("expected active session, got %s", m.State())
	}
}

func TestDeleteAccountRequiresDoubleConfirmation(t *testing.T) {
	m, _ := newTestManager()
	runSignup(t, m)
	ctx := context.Background()

	if err := m.ConfirmDeleteAccount(ctx); !errors.Is(err, ErrDeletionNotArmed) {
		t.Fatalf("expected unarmed confirm to fail, got %v", err)
	}

	if err := m.BeginDeleteAccount(); err != nil {
		t.Fatalf("begin delete: %v", err)
	}
	if err := m.ConfirmDeleteAccount(ctx); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("expected unauthenticated after deletion, got %s", m.State())
	}
}

func TestDeletedAccountCannotLogIn(t *testing.T) {
	m, mem := newTestManager()
	runSignup(t, m)
	ctx := context.Background()

	m.BeginDeleteAccount()
	if err := m.ConfirmDeleteAccount(ctx); err != nil {
		t.Fatalf("confirm delete: %v", err)
	}

	if _, err := m.Login(ctx, "9617012345", "Abcdef1!"); !errors.Is(err, identity.ErrNoAccount) {
		t.Fatalf("expected ErrNoAccount after deletion, got %v", err)
	}
	if mem.Len() != 0 {
		t.Fatalf("expected every persisted record purged, %d remain", mem.Len())
	}
}

func TestResetPasswordRoutesToFreshLogin(t *testing.T) {
	m, _ := newTestManager()
	runSignup(t, m)
	ctx := context.Background()

	if err := m.ResetPassword(ctx, "1234", "Newpass1!"); err != nil {
		t.Fatalf("reset password: %v", err)
	}
	if m.State() != StateUnauthenticated {
		t.Fatalf("expected route back to login, got %s", m.State())
	}
	if _, err := m.Login(ctx, "9617012345", "Newpass1!"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}
