// Package session owns the authentication token and current-user identity.
// The Manager is the single source of truth for whether the user may
// perform a gated action; components that gate behavior receive it
// explicitly instead of reading implicit global state.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/jonathan/cvfiller/internal/apiclient"
	"github.com/jonathan/cvfiller/internal/types"
)

// AuthAPI is the slice of the API client the manager needs.
// *apiclient.Client satisfies it.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*types.LoginResponse, error)
	Register(ctx context.Context, req types.RegisterRequest) (*types.LoginResponse, error)
	Me(ctx context.Context, token string) (*types.User, error)
}

// ValidationError is a client-side precondition failure. It is surfaced
// immediately and never reaches the remote service.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// Manager holds the session state: an opaque token and, once the token
// has been validated remotely, the current user. The user is non-nil only
// while a validated token is held.
type Manager struct {
	api   AuthAPI
	store TokenStore

	mu    sync.Mutex
	token string
	user  *types.User
}

// NewManager creates a Manager. The store is read once via Init; until
// then the session is logged out.
func NewManager(api AuthAPI, store TokenStore) *Manager {
	return &Manager{api: api, store: store}
}

// Init loads a persisted token and validates it against the remote
// identity check. A rejected token forces a logout so a stale token is
// never left in durable storage; a transport failure leaves the session
// logged out but keeps the token for a later retry.
func (m *Manager) Init(ctx context.Context) error {
	token, err := m.store.Load()
	if err != nil {
		return fmt.Errorf("failed to load persisted token: %w", err)
	}
	if token == "" {
		return nil
	}
	return m.ValidateSession(ctx, token)
}

// ValidateSession checks a token against the remote identity check and,
// on acceptance, transitions to logged in. On rejection it clears both
// the in-memory session and durable storage: this is the one
// self-correcting transition in the system.
func (m *Manager) ValidateSession(ctx context.Context, token string) error {
	user, err := m.api.Me(ctx, token)
	if err != nil {
		var remoteErr *apiclient.RemoteError
		if errors.As(err, &remoteErr) {
			m.Logout()
			return fmt.Errorf("session rejected: %w", err)
		}
		return fmt.Errorf("session validation failed: %w", err)
	}

	m.mu.Lock()
	m.token = token
	m.user = user
	m.mu.Unlock()
	return nil
}

// Login authenticates with the remote service. On success the token is
// persisted and the session transitions to logged in; on any failure the
// session state is unchanged.
func (m *Manager) Login(ctx context.Context, email, password string) error {
	resp, err := m.api.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// Register creates an account. The local preconditions (all fields
// non-empty, matching password confirmation) fail fast without any
// remote call; on remote success it behaves like Login.
func (m *Manager) Register(ctx context.Context, username, email, password, confirmPassword string) error {
	switch {
	case strings.TrimSpace(username) == "":
		return &ValidationError{Field: "username", Message: "username is required"}
	case strings.TrimSpace(email) == "":
		return &ValidationError{Field: "email", Message: "email is required"}
	case password == "":
		return &ValidationError{Field: "password", Message: "password is required"}
	case password != confirmPassword:
		return &ValidationError{Field: "confirm_password", Message: "passwords do not match"}
	}

	resp, err := m.api.Register(ctx, types.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return err
	}
	return m.adopt(resp)
}

// adopt persists the token and installs the new session state. The token
// is persisted first so a storage failure never leaves a logged-in
// session without a durable token.
func (m *Manager) adopt(resp *types.LoginResponse) error {
	if resp.AccessToken == "" || resp.User == nil {
		return fmt.Errorf("malformed auth response: missing token or user")
	}
	if err := m.store.Save(resp.AccessToken); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}

	m.mu.Lock()
	m.token = resp.AccessToken
	m.user = resp.User
	m.mu.Unlock()
	return nil
}

// Logout clears the durable token and transitions to logged out. It is
// unconditional and cannot fail; a storage error still leaves the
// in-memory session logged out.
func (m *Manager) Logout() {
	_ = m.store.Clear()

	m.mu.Lock()
	m.token = ""
	m.user = nil
	m.mu.Unlock()
}

// Authorized reports whether a gated action may proceed. Callers must
// check this before any remote call that requires authentication and
// refuse locally when it returns false.
func (m *Manager) Authorized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token != "" && m.user != nil
}

// Token returns the current bearer token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// CurrentUser returns the validated user, or nil when logged out.
func (m *Manager) CurrentUser() *types.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return nil
	}
	user := *m.user
	return &user
}
