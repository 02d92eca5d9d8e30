package session

import (
	"context"
	"errors"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mwhitfield/clavier/internal/models"
	"github.com/mwhitfield/clavier/internal/services"
	"github.com/mwhitfield/clavier/internal/shared"
)

// Status enumerates the session state machine.
type Status int

const (
	// StatusUnknown is the initial state, before startup verification.
	StatusUnknown Status = iota
	// StatusVerifying means a persisted token is being checked.
	StatusVerifying
	// StatusAuthenticated means user and token are set and the token has
	// been accepted by the backend at least once this session.
	StatusAuthenticated
	// StatusAnonymous means no valid session exists.
	StatusAnonymous
)

// Routes the store navigates to after transitions.
const (
	RouteHome  = "/"
	RouteLogin = "/login"
)

// TokenVerifier checks a persisted token against the backend.
// *services.AuthService satisfies it.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*services.Result[models.AuthUser], error)
}

// State is a point-in-time snapshot of the session.
type State struct {
	User  *models.AuthUser
	Token string
	// IsAuthenticated is true iff user and token are set and the token has
	// been accepted by the backend this session.
	IsAuthenticated bool
	// IsLoading is true until startup verification has settled.
	IsLoading bool
	Status    Status
}

// StoreConfig configures a session [Store].
type StoreConfig struct {
	// Credentials is the durable store. Required.
	Credentials *CredentialStore
	// Verifier checks persisted tokens on startup. Required for Verify.
	Verifier TokenVerifier
	// OnNavigate is invoked with the target route after login and logout.
	OnNavigate func(route string)
	// OnChange is invoked outside locks after every transition.
	OnChange func(State)
	Logger   *log.Logger
}

// Store holds the current session and applies transitions. All methods are
// safe for concurrent use; a verification result racing a logout resolves
// in favor of whichever transition lands last, and a settled store ignores
// a late verification result.
type Store struct {
	creds      *CredentialStore
	verifier   TokenVerifier
	onNavigate func(string)
	onChange   func(State)
	logger     *log.Logger

	mu     sync.Mutex
	status Status
	user   *models.AuthUser
	token  string
}

// NewStore creates a session store in the unknown state.
func NewStore(cfg StoreConfig) *Store {
	return &Store{
		creds:      cfg.Credentials,
		verifier:   cfg.Verifier,
		onNavigate: cfg.OnNavigate,
		onChange:   cfg.OnChange,
		logger:     cfg.Logger,
		status:     StatusUnknown,
	}
}

// State returns a snapshot of the session.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Token returns the current bearer token, empty while unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Verify performs the one-time startup verification. Without persisted
// credentials the store settles as anonymous immediately; otherwise the
// token is checked against the backend. Any failure settles the store as
// anonymous and clears the persisted credentials. Every side effect is
// gated on the store still being in a pre-settled state, so an explicit
// login or logout that lands mid-verification is never undone.
func (s *Store) Verify(ctx context.Context) {
	user, token, err := s.creds.Load()
	if err != nil {
		if s.logger != nil && !isNoCredentials(err) {
			s.logger.Warn("failed to load stored credentials", "error", err)
		}
		s.settle(StatusAnonymous, nil, "", false)
		return
	}

	s.mu.Lock()
	if s.status != StatusUnknown {
		// A login or logout already moved the store; the stored token
		// is no longer the one to verify.
		s.mu.Unlock()
		return
	}
	s.status = StatusVerifying
	s.user = user
	state := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(state)

	result, err := s.verifier.Verify(ctx, token)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("token verification failed", "error", err)
		}
		s.settle(StatusAnonymous, nil, "", true)
		return
	}

	verified := result.Data
	s.settle(StatusAuthenticated, &verified, token, true)
}

// Login transitions unconditionally to authenticated, persists the
// credentials and navigates home.
func (s *Store) Login(user models.AuthUser, token string) {
	s.mu.Lock()
	if err := s.creds.Save(user, token); err != nil && s.logger != nil {
		s.logger.Error("failed to persist credentials", "error", err)
	}
	s.status = StatusAuthenticated
	s.user = &user
	s.token = token
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	s.navigate(RouteHome)
}

// Logout transitions unconditionally to anonymous, clears persisted
// credentials and navigates to the login route.
func (s *Store) Logout() {
	s.mu.Lock()
	if err := s.creds.Clear(); err != nil && s.logger != nil {
		s.logger.Error("failed to clear credentials", "error", err)
	}
	s.status = StatusAnonymous
	s.user = nil
	s.token = ""
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
	s.navigate(RouteLogin)
}

// settle applies a startup-verification outcome unless a login or logout
// already moved the store past verification; the later transition wins.
// When persist is set, the credential write happens under the same lock as
// the state check, so a stale verification can neither wipe nor overwrite
// credentials a concurrent login just saved.
func (s *Store) settle(status Status, user *models.AuthUser, token string, persist bool) {
	s.mu.Lock()
	if s.status != StatusUnknown && s.status != StatusVerifying {
		s.mu.Unlock()
		return
	}
	if persist {
		switch status {
		case StatusAnonymous:
			if err := s.creds.Clear(); err != nil && s.logger != nil {
				s.logger.Warn("failed to clear credentials", "error", err)
			}
		case StatusAuthenticated:
			// Refresh the persisted user copy with what the backend
			// returned.
			if err := s.creds.SaveUser(*user); err != nil && s.logger != nil {
				s.logger.Warn("failed to refresh stored user", "error", err)
			}
		}
	}
	s.status = status
	s.user = user
	s.token = token
	state := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(state)
}

func (s *Store) snapshotLocked() State {
	return State{
		User:            s.user,
		Token:           s.token,
		IsAuthenticated: s.status == StatusAuthenticated,
		IsLoading:       s.status == StatusUnknown || s.status == StatusVerifying,
		Status:          s.status,
	}
}

func (s *Store) notify(state State) {
	if s.onChange != nil {
		s.onChange(state)
	}
}

func (s *Store) navigate(route string) {
	if s.onNavigate != nil {
		s.onNavigate(route)
	}
}

func isNoCredentials(err error) bool {
	return errors.Is(err, shared.ErrNoCredentials)
}
