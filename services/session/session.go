package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"medibook/services/account"
	"medibook/utils"

	"go.uber.org/zap"
)

// State is the session lifecycle state.
type State int

const (
	Unauthenticated State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrNoSession is returned by Bootstrap when no snapshot is persisted.
var ErrNoSession = errors.New("no persisted session")

// Snapshot is the persisted session: the token plus the identity it belongs
// to. Persisting and reloading a snapshot must round-trip exactly.
type Snapshot struct {
	Token    string           `json:"token"`
	Identity account.Identity `json:"identity"`
	SavedAt  time.Time        `json:"savedAt"`
}

// IdentityResolver revalidates a session against the account store.
type IdentityResolver interface {
	WhoAmI(accountID, role string) (*account.Identity, error)
}

// Session is an explicit session object passed to whoever needs it; there is
// no ambient global. State transitions:
//
//	unauthenticated -> authenticating -> authenticated -> unauthenticated
type Session struct {
	mu       sync.Mutex
	state    State
	snapshot *Snapshot

	key      string
	store    Store
	resolver IdentityResolver
}

// New creates an unauthenticated session bound to a persistence key.
func New(key string, store Store, resolver IdentityResolver) *Session {
	return &Session{
		state:    Unauthenticated,
		key:      key,
		store:    store,
		resolver: resolver,
	}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Identity returns the authenticated identity, or nil.
func (s *Session) Identity() *account.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil
	}
	id := s.snapshot.Identity
	return &id
}

// Token returns the session token, or the empty string.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return ""
	}
	return s.snapshot.Token
}

func (s *Session) setState(state State, snap *Snapshot) {
	s.mu.Lock()
	s.state = state
	s.snapshot = snap
	s.mu.Unlock()
}

// Establish records a successful login. The snapshot is persisted with a
// single awaited write before the session is declared authenticated; there is
// no read-back verification. A login that still requires email verification
// establishes nothing.
func (s *Session) Establish(ctx context.Context, auth account.AuthResponse) error {
	if auth.RequiresVerification || auth.Token == "" {
		return fmt.Errorf("cannot establish session: account requires verification")
	}

	s.setState(Authenticating, nil)

	snap := Snapshot{
		Token: auth.Token,
		Identity: account.Identity{
			ID:            auth.ID,
			Role:          auth.Role,
			FullName:      auth.FullName,
			Email:         auth.Email,
			EmailVerified: true,
		},
		SavedAt: time.Now(),
	}
	if err := s.store.Save(ctx, s.key, snap); err != nil {
		s.setState(Unauthenticated, nil)
		return fmt.Errorf("failed to persist session: %w", err)
	}

	s.setState(Authenticated, &snap)
	return nil
}

// Bootstrap performs the cold-start sequence: load the persisted snapshot,
// optimistically authenticate, then revalidate against the account store.
// A single failed revalidation is fatal for the session; persisted state is
// cleared and no retry is attempted.
func (s *Session) Bootstrap(ctx context.Context) error {
	logger := utils.GetLogger()

	s.setState(Authenticating, nil)

	snap, err := s.store.Load(ctx, s.key)
	if err != nil {
		s.setState(Unauthenticated, nil)
		return fmt.Errorf("failed to load session: %w", err)
	}
	if snap == nil || snap.Token == "" {
		s.setState(Unauthenticated, nil)
		return ErrNoSession
	}

	// Optimistic: the persisted snapshot is trusted before the revalidation
	// round-trip completes.
	s.setState(Authenticated, snap)

	identity, err := s.resolver.WhoAmI(snap.Identity.ID, snap.Identity.Role)
	if err != nil || identity == nil {
		logger.Warn("session revalidation failed, forcing logout",
			zap.String("accountID", snap.Identity.ID), zap.Error(err))
		_ = s.Logout(ctx)
		return fmt.Errorf("session is no longer valid")
	}

	// Refresh the snapshot with the authoritative identity.
	snap.Identity = *identity
	s.setState(Authenticated, snap)
	return nil
}

// Logout clears persisted and in-memory session state.
func (s *Session) Logout(ctx context.Context) error {
	err := s.store.Clear(ctx, s.key)
	s.setState(Unauthenticated, nil)
	if err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
