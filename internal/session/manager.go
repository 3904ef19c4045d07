// Package session drives the onboarding and session state machine:
// permission grant, the four signup steps, the PIN gate and the
// logout/delete paths. The manager owns the current state and
// coordinates the identity and ledger services plus the device store.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/billo-wallet/billo/internal/identity"
	"github.com/billo-wallet/billo/internal/ledger"
	"github.com/billo-wallet/billo/internal/notification"
	"github.com/billo-wallet/billo/internal/store"
)

// State enumerates the positions of the onboarding/session machine.
type State string

const (
	StateUnauthenticated    State = "unauthenticated"
	StatePermissionsGranted State = "permissions_granted"
	StateSignupStep1        State = "signup_step_1"
	StateSignupStep2        State = "signup_step_2"
	StateSignupStep3        State = "signup_step_3"
	StateSignupStep4        State = "signup_step_4"
	StatePinGate            State = "pin_gate"
	StateActive             State = "active"
)

var (
	// ErrPermissionsDenied blocks onboarding until camera and location
	// are both granted.
	ErrPermissionsDenied = errors.New("camera and location permissions are required")
	// ErrNotActive guards operations that require an active session.
	ErrNotActive = errors.New("no active session")
	// ErrDeletionNotArmed requires the first confirmation before the
	// second, irreversible one.
	ErrDeletionNotArmed = errors.New("account deletion not confirmed")
)

// Manager is the session/onboarding state machine.
type Manager struct {
	mu          sync.Mutex
	state       State
	deleteArmed bool

	identity *identity.Service
	ledger   *ledger.Service
	store    store.Store
	notifier notification.Notifier
	logger   *slog.Logger
}

// NewManager wires the state machine to its collaborators. Call Start
// to run the entry condition check.
func NewManager(id *identity.Service, led *ledger.Service, s store.Store, notifier notification.Notifier, logger *slog.Logger) *Manager {
	return &Manager{
		state:    StateUnauthenticated,
		identity: id,
		ledger:   led,
		store:    s,
		notifier: notifier,
		logger:   logger,
	}
}

// State reports the current machine position.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start runs the app-start entry check: valid persisted credentials
// route to the PIN gate, otherwise the machine stays unauthenticated.
func (m *Manager) Start(ctx context.Context) (State, error) {
	has, err := m.identity.HasStoredCredentials(ctx)
	if err != nil {
		return StateUnauthenticated, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if has {
		m.state = StatePinGate
	} else {
		m.state = StateUnauthenticated
	}
	m.logger.Info("session started", "state", string(m.state))
	return m.state, nil
}

// GrantPermissions branches on the granted booleans supplied by the
// host permission subsystem. Both must be granted to advance.
func (m *Manager) GrantPermissions(camera, location bool) (State, error) {
	if !camera || !location {
		return m.State(), ErrPermissionsDenied
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StatePermissionsGranted
	return m.state, nil
}

// SubmitStepOne validates and persists the first signup step.
func (m *Manager) SubmitStepOne(ctx context.Context, in identity.StepOneInput) (identity.Draft, error) {
	draft, err := m.identity.SubmitStepOne(ctx, in)
	if err != nil {
		return identity.Draft{}, err
	}
	m.setState(StateSignupStep2)
	return draft, nil
}

// SubmitStepTwo validates and persists the second signup step.
func (m *Manager) SubmitStepTwo(ctx context.Context, in identity.StepTwoInput) (identity.Draft, error) {
	draft, err := m.identity.SubmitStepTwo(ctx, in)
	if err != nil {
		return identity.Draft{}, err
	}
	m.setState(StateSignupStep3)
	return draft, nil
}

// SubmitStepThree validates and persists the third signup step.
func (m *Manager) SubmitStepThree(ctx context.Context, in identity.StepThreeInput) (identity.Draft, error) {
	draft, err := m.identity.SubmitStepThree(ctx, in)
	if err != nil {
		return identity.Draft{}, err
	}
	m.setState(StateSignupStep4)
	return draft, nil
}

// SubmitStepFour validates and persists the final signup step.
func (m *Manager) SubmitStepFour(ctx context.Context, in identity.StepFourInput) error {
	return m.identity.SubmitStepFour(ctx, in)
}

// CompleteSignup materializes the account and enters the session
// directly; a freshly created account is trusted without the PIN gate.
func (m *Manager) CompleteSignup(ctx context.Context) (identity.Account, error) {
	account, err := m.identity.CompleteSignup(ctx)
	if err != nil {
		return identity.Account{}, err
	}

	if err := m.ledger.Load(ctx); err != nil {
		return identity.Account{}, err
	}

	m.setState(StateActive)
	return account, nil
}

// Login checks the entered credentials and enters the session on
// success. Failures leave the state unchanged.
func (m *Manager) Login(ctx context.Context, phone, password string) (identity.Profile, error) {
	profile, err := m.identity.Login(ctx, phone, password)
	if err != nil {
		return identity.Profile{}, err
	}

	if err := m.ledger.Load(ctx); err != nil {
		return identity.Profile{}, err
	}

	m.setState(StateActive)
	return profile, nil
}

// VerifyPIN resolves the PIN gate. A mismatch keeps the gate with
// unlimited retries; missing identity records reset the machine to the
// unauthenticated entry point.
func (m *Manager) VerifyPIN(ctx context.Context, pin string) (identity.Profile, error) {
	profile, err := m.identity.VerifyPIN(ctx, pin)
	if errors.Is(err, identity.ErrNoAccount) {
		m.setState(StateUnauthenticated)
		return identity.Profile{}, err
	}
	if err != nil {
		return identity.Profile{}, err
	}

	if err := m.ledger.Load(ctx); err != nil {
		return identity.Profile{}, err
	}

	m.setState(StateActive)
	return profile, nil
}

// ResetPassword re-verifies the PIN and swaps the password, then routes
// back to a fresh login.
func (m *Manager) ResetPassword(ctx context.Context, pin, newPassword string) error {
	if err := m.identity.ResetPassword(ctx, pin, newPassword); err != nil {
		return err
	}
	m.setState(StateUnauthenticated)
	return nil
}

// Logout clears only the transient navigation record; credentials and
// profile survive so the PIN gate admits the user again.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, store.KeyNavState); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateUnauthenticated
	m.deleteArmed = false
	m.logger.Info("logged out")
	return nil
}

// BeginDeleteAccount is the first of the two confirmations required
// before the purge.
func (m *Manager) BeginDeleteAccount() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateActive {
		return ErrNotActive
	}
	m.deleteArmed = true
	return nil
}

// ConfirmDeleteAccount is the second confirmation: purges credentials,
// both profile records, the ledger pair, the signup caches and the
// navigation record, then returns to the unauthenticated entry point.
func (m *Manager) ConfirmDeleteAccount(ctx context.Context) error {
	m.mu.Lock()
	armed := m.deleteArmed
	m.mu.Unlock()
	if !armed {
		return ErrDeletionNotArmed
	}

	if err := m.identity.Purge(ctx); err != nil {
		return err
	}
	if err := m.ledger.Purge(ctx); err != nil {
		return err
	}
	if err := m.store.Delete(ctx, store.KeyNavState); err != nil {
		return err
	}

	m.mu.Lock()
	m.state = StateUnauthenticated
	m.deleteArmed = false
	m.mu.Unlock()

	m.notifier.Send(ctx, notification.Message{
		Kind: notification.KindAccountDeleted,
		Body: "Account and all local records deleted",
	})
	m.logger.Info("account deleted")
	return nil
}

// SaveNavState persists the opaque navigation snapshot for session
// restoration.
func (m *Manager) SaveNavState(ctx context.Context, snapshot []byte) error {
	return m.store.Set(ctx, store.KeyNavState, snapshot)
}

// NavState loads the persisted navigation snapshot, nil when absent.
func (m *Manager) NavState(ctx context.Context) ([]byte, error) {
	snapshot, err := m.store.Get(ctx, store.KeyNavState)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return snapshot, err
}

func (m *Manager) setState(next State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = next
}
