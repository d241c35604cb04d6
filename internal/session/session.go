// Package session holds the client's authenticated identity state: a small
// state machine over the backend's verify/login/register/logout endpoints.
// Exactly one of unauthenticated, loading, authenticated is observable at
// any time; there is no partial session state.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"storybook-client/internal/models"
	"storybook-client/internal/token"
)

// State of the session machine.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateLoading         State = "loading"
	StateAuthenticated   State = "authenticated"
)

// Snapshot is a consistent copy of the session state. User is non-nil
// exactly when State is StateAuthenticated.
type Snapshot struct {
	State State
	User  *models.User
}

// API is the slice of the backend client the session store depends on.
type API interface {
	Register(ctx context.Context, email, password, firstName, lastName string) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	VerifyEmail(ctx context.Context, email, code string) error
	VerifyAuth(ctx context.Context) (*models.AuthVerification, error)
	Logout(ctx context.Context) error
}

// Store owns the session state. Safe for concurrent use.
type Store struct {
	api    API
	tokens token.Store
	logger *zap.Logger

	state stateBox
}

// NewStore creates a session store over the given API client and token
// store. The token store must be the same instance the client uses.
func NewStore(api API, tokens token.Store, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Store{
		api:    api,
		tokens: tokens,
		logger: logger.Named("Session"),
	}
	s.state.set(StateUnauthenticated, nil)
	return s
}

// Current returns a snapshot of the session state.
func (s *Store) Current() Snapshot { return s.state.get() }

// IsAuthenticated reports whether a verified user is present.
func (s *Store) IsAuthenticated() bool { return s.Current().State == StateAuthenticated }

// Bootstrap runs the app-start flow: loading, then a verify round trip if
// a token is stored, landing on authenticated or unauthenticated.
func (s *Store) Bootstrap(ctx context.Context) error {
	tok, ok := s.tokens.Token()
	if !ok {
		s.state.set(StateUnauthenticated, nil)
		return nil
	}

	// Локально просроченный токен не стоит round trip'а: чистим сразу.
	if expired, err := tokenExpired(tok); err == nil && expired {
		s.logger.Debug("Stored token is expired, skipping verify round trip")
		if clearErr := s.tokens.Clear(); clearErr != nil {
			s.logger.Error("Failed to clear expired token", zap.Error(clearErr))
		}
		s.state.set(StateUnauthenticated, nil)
		return nil
	}

	s.state.set(StateLoading, nil)
	verification, err := s.api.VerifyAuth(ctx)
	if err != nil {
		// 401 уже снес токен внутри клиента; любой исход = не аутентифицированы.
		s.state.set(StateUnauthenticated, nil)
		s.logger.Debug("Session verify failed", zap.Error(err))
		return nil
	}
	if verification.Authenticated && verification.User != nil {
		s.state.set(StateAuthenticated, verification.User)
		s.logger.Info("Session restored", zap.String("email", verification.User.Email))
	} else {
		s.state.set(StateUnauthenticated, nil)
	}
	return nil
}

// Login authenticates and stores the session. On failure the state stays
// unauthenticated and the error is surfaced to the caller.
func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.state.set(StateUnauthenticated, nil)
		return fmt.Errorf("login failed: %w", err)
	}
	s.state.set(StateAuthenticated, &resp.User)
	return nil
}

// Register creates an account and stores the session.
func (s *Store) Register(ctx context.Context, email, password, firstName, lastName string) error {
	resp, err := s.api.Register(ctx, email, password, firstName, lastName)
	if err != nil {
		s.state.set(StateUnauthenticated, nil)
		return fmt.Errorf("registration failed: %w", err)
	}
	s.state.set(StateAuthenticated, &resp.User)
	return nil
}

// VerifyEmail confirms the email with an OTP code. It never authenticates
// by itself; on success the current token is re-verified so the
// emailVerified flag is observed from the server, not assumed.
func (s *Store) VerifyEmail(ctx context.Context, email, code string) error {
	if err := s.api.VerifyEmail(ctx, email, code); err != nil {
		return fmt.Errorf("email verification failed: %w", err)
	}
	return s.Bootstrap(ctx)
}

// Logout notifies the backend best-effort and clears local state
// unconditionally: the local clear happens even when the server call fails.
func (s *Store) Logout(ctx context.Context) {
	if err := s.api.Logout(ctx); err != nil {
		s.logger.Warn("Server-side logout failed, clearing local session anyway", zap.Error(err))
	}
	if err := s.tokens.Clear(); err != nil {
		s.logger.Error("Failed to clear token store on logout", zap.Error(err))
	}
	s.state.set(StateUnauthenticated, nil)
}

// Refresh re-runs the verify flow. Used after OAuth callbacks that set
// the token out-of-band, and after a 401 cleared the credentials.
func (s *Store) Refresh(ctx context.Context) error {
	return s.Bootstrap(ctx)
}

// tokenExpired inspects the JWT exp claim without verifying the
// signature; verification is the backend's job.
func tokenExpired(tok string) (bool, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok, claims); err != nil {
		return false, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false, err
	}
	return exp.Before(time.Now()), nil
}
