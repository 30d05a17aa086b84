package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/avelarde/attendctl-go/internal/core/domain"
	"github.com/avelarde/attendctl-go/internal/telemetry/logger"
)

// Authenticator is the external login collaborator. It exchanges
// credentials for an opaque token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Repository persists the session record across process restarts.
type Repository interface {
	// Save writes the session atomically: a restart never observes a
	// token without its identity.
	Save(ctx context.Context, s *domain.Session) error

	// Load reads the persisted session, (nil, nil) when empty, and
	// domain.ErrSessionDecode when the stored state is malformed.
	Load(ctx context.Context) (*domain.Session, error)

	// Purge clears the persisted record. Clearing an empty record is
	// not an error.
	Purge(ctx context.Context) error
}

// SessionService owns the current session. All mutating operations
// (login, logout, refresh) are serialized with each other, and the
// in-memory record only changes together with the persisted one.
type SessionService struct {
	repo   Repository
	auth   Authenticator
	logger logger.Logger
	now    func() time.Time

	// opMu serializes session-mutating operations. A second login
	// started before a prior one resolves cannot interleave its
	// persistence writes with the first.
	opMu sync.Mutex

	stateMu  sync.RWMutex
	current  *domain.Session
	restored atomic.Bool

	subMu       sync.Mutex
	subscribers map[int]func(*domain.Session)
	nextSubID   int
}

// NewSessionService creates a session service. The session starts
// empty; call Restore at startup to pick up a persisted one.
func NewSessionService(repo Repository, auth Authenticator, log logger.Logger) *SessionService {
	if log == nil {
		log = logger.Default()
	}
	return &SessionService{
		repo:        repo,
		auth:        auth,
		logger:      log,
		now:         time.Now,
		subscribers: make(map[int]func(*domain.Session)),
	}
}

// Login authenticates against the backend and establishes a session.
// A failed login leaves the current session untouched.
func (s *SessionService) Login(ctx context.Context, username, password string) (*domain.Session, error) {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	token, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.logger.Warn("login rejected", "username", username)
		return nil, err
	}

	identity := s.decodeToken(username, token)
	session, err := domain.NewSession(token, identity)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, session); err != nil {
		return nil, err
	}
	s.setCurrent(session)

	s.logger.Info("session established",
		"username", identity.Username,
		"role", string(identity.Role),
		"expires_at", identity.ExpiresAt)
	return session, nil
}

// Logout clears the in-memory session and the persisted record
// unconditionally. It never fails and is idempotent.
func (s *SessionService) Logout() {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	s.clear()
}

// Restore re-establishes a persisted session at startup. Expired or
// malformed persisted state is purged and yields an empty session,
// never an error: a corrupt record only forces re-authentication.
func (s *SessionService) Restore(ctx context.Context) *domain.Session {
	s.opMu.Lock()
	defer s.opMu.Unlock()
	defer s.restored.Store(true)

	session, err := s.repo.Load(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrSessionDecode) {
			s.logger.Warn("session restore failed", "error", err)
		}
		s.purge()
		return nil
	}
	if session == nil {
		return nil
	}
	if err := session.Validate(s.now()); err != nil {
		s.logger.Debug("persisted session rejected, purging", "error", err)
		s.purge()
		return nil
	}

	s.setCurrent(session)
	s.logger.Debug("session restored", "username", session.Identity.Username)
	return session
}

// Refresh performs the local expiry check: a no-op while the session
// is valid, a logout once it has expired. No renewal call is made;
// the backend does not expose one.
func (s *SessionService) Refresh() {
	s.opMu.Lock()
	defer s.opMu.Unlock()

	current := s.Current()
	if current == nil {
		return
	}
	err := current.Validate(s.now())
	if err == nil {
		return
	}

	s.logger.Info("session expired", "username", current.Identity.Username, "error", err)
	s.clear()
}

// IsAuthenticated reports whether a session is active: token and
// identity both present.
func (s *SessionService) IsAuthenticated() bool {
	return s.Current() != nil
}

// Current returns the active session, or nil.
func (s *SessionService) Current() *domain.Session {
	s.stateMu.RLock()
	defer s.stateMu.RUnlock()
	return s.current
}

// Identity returns the active identity, or nil.
func (s *SessionService) Identity() *domain.Identity {
	if c := s.Current(); c != nil {
		return c.Identity
	}
	return nil
}

// Token returns the current bearer token, or "". Shaped to plug
// straight into the API client as its token source.
func (s *SessionService) Token() string {
	if c := s.Current(); c != nil {
		return c.Token
	}
	return ""
}

// Restored reports whether startup restoration has completed. Until
// then guards stay in their checking state.
func (s *SessionService) Restored() bool {
	return s.restored.Load()
}

// Subscribe registers a callback invoked with the new session (nil on
// logout) after every session change. The returned function removes
// the subscription.
func (s *SessionService) Subscribe(fn func(*domain.Session)) func() {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

// setCurrent swaps the in-memory record and notifies subscribers.
// Callers hold opMu, so persistence has already succeeded.
func (s *SessionService) setCurrent(session *domain.Session) {
	s.stateMu.Lock()
	s.current = session
	s.stateMu.Unlock()
	s.notify(session)
}

// clear drops memory and persistence together. Purge failures are
// logged, not surfaced: logout must always succeed.
func (s *SessionService) clear() {
	s.stateMu.Lock()
	wasActive := s.current != nil
	s.current = nil
	s.stateMu.Unlock()

	s.purge()

	if wasActive {
		s.notify(nil)
	}
}

func (s *SessionService) purge() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.repo.Purge(ctx); err != nil {
		s.logger.Warn("purging persisted session failed", "error", err)
	}
}

func (s *SessionService) notify(session *domain.Session) {
	s.subMu.Lock()
	callbacks := make([]func(*domain.Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		callbacks = append(callbacks, fn)
	}
	s.subMu.Unlock()

	for _, fn := range callbacks {
		fn(session)
	}
}
