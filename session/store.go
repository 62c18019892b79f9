package session

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/collegeops/collegeops-cli/api"
	"github.com/collegeops/collegeops-cli/users"
)

// AuthClient is the slice of the API the Store needs: the two
// authentication endpoints. Satisfied by *api.Client.
type AuthClient interface {
	Login(ctx context.Context, creds users.Credentials) (*api.AuthPayload, error)
	Register(ctx context.Context, registration users.Registration) (*api.AuthPayload, error)
}

// Result is the outcome of Login or Register. Network and server
// failures never surface as Go errors from those methods; they are
// folded into a failed Result so callers can render the message inline
// without error handling.
type Result struct {
	Success bool
	User    *users.User
	Error   string
}

const (
	loginFailedMessage        = "Login failed"
	registrationFailedMessage = "Registration failed"
	authInFlightMessage       = "authentication already in progress"
)

// Store owns the in-memory Session and its durable mirror. Construct
// one per process and inject it; there is no package-level singleton.
// All methods are safe for concurrent use, and at most one Login or
// Register may be in flight at a time - a second concurrent attempt is
// rejected with a failed Result instead of racing on the write.
type Store struct {
	storage Storage
	client  AuthClient

	mu       sync.RWMutex
	current  *Session
	inFlight bool
}

func NewStore(storage Storage, client AuthClient) (*Store, error) {
	if storage == nil {
		return nil, errors.New("[NewStore] storage is required")
	}
	if client == nil {
		return nil, errors.New("[NewStore] auth client is required")
	}
	return &Store{storage: storage, client: client}, nil
}

// Bootstrap reconstructs the Session from durable storage. It runs
// before any protected screen and never touches the network. Both
// entries must be present and the identity must parse; anything less
// clears durable storage entirely and leaves the Session absent.
// Calling it again changes nothing further.
func (s *Store) Bootstrap() {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, tokenErr := s.storage.Get(KeyToken)
	rawUser, userErr := s.storage.Get(KeyUser)

	if tokenErr != nil || userErr != nil || token == "" || rawUser == "" || rawUser == "undefined" {
		s.discardLocked()
		return
	}

	var user users.User
	if err := json.Unmarshal([]byte(rawUser), &user); err != nil {
		log.Warn().Err(err).Msg("Invalid stored identity, clearing session")
		s.discardLocked()
		return
	}

	s.current = &Session{User: user, Token: token}
}

// Login authenticates against the server. On success the Session is
// replaced in memory and durable storage; on failure the prior Session
// is left untouched and the Result carries the server's message.
func (s *Store) Login(ctx context.Context, email, password string) Result {
	if !s.acquireFlight() {
		return Result{Success: false, Error: authInFlightMessage}
	}
	defer s.releaseFlight()

	payload, err := s.client.Login(ctx, users.Credentials{Email: email, Password: password})
	if err != nil {
		return failedResult(err, loginFailedMessage)
	}
	return s.adopt(payload, loginFailedMessage)
}

// Register creates an account; same contract as Login.
func (s *Store) Register(ctx context.Context, registration users.Registration) Result {
	if !s.acquireFlight() {
		return Result{Success: false, Error: authInFlightMessage}
	}
	defer s.releaseFlight()

	payload, err := s.client.Register(ctx, registration)
	if err != nil {
		return failedResult(err, registrationFailedMessage)
	}
	return s.adopt(payload, registrationFailedMessage)
}

// Logout clears durable storage (credential, identity and the admin
// gate flag) and drops the in-memory Session. It never calls the
// server; the credential is simply forgotten.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.discardLocked()
}

// Current returns a copy of the authenticated identity, or nil.
func (s *Store) Current() *users.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	user := s.current.User
	return &user
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}

func (s *Store) IsStudent() bool {
	return s.Current().IsStudent()
}

// adopt installs a freshly authenticated session in memory and mirrors
// it to durable storage. A storage write failure is logged rather than
// failing the login; Bootstrap discards any partial mirror it left.
func (s *Store) adopt(payload *api.AuthPayload, fallback string) Result {
	serialized, err := json.Marshal(payload.User)
	if err != nil {
		log.Error().Err(err).Msg("Failed to serialize identity")
		return Result{Success: false, Error: fallback}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.Set(KeyToken, payload.Token); err != nil {
		log.Error().Err(err).Msg("Failed to persist credential")
	}
	if err := s.storage.Set(KeyUser, string(serialized)); err != nil {
		log.Error().Err(err).Msg("Failed to persist identity")
	}

	s.current = &Session{User: payload.User, Token: payload.Token}
	user := payload.User
	return Result{Success: true, User: &user}
}

func (s *Store) discardLocked() {
	for _, key := range []string{KeyToken, KeyUser, KeyAdminVerified} {
		if err := s.storage.Delete(key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to clear storage entry")
		}
	}
	s.current = nil
}

func (s *Store) acquireFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return false
	}
	s.inFlight = true
	return true
}

func (s *Store) releaseFlight() {
	s.mu.Lock()
	s.inFlight = false
	s.mu.Unlock()
}

// failedResult extracts the server's message from err, falling back to
// the given generic message for transport-level failures.
func failedResult(err error, fallback string) Result {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return Result{Success: false, Error: apiErr.Message}
	}
	return Result{Success: false, Error: fallback}
}
