// Package session holds the CUFF identity of whoever uses the app. The admin role is always derived
// from the loaded user and is false while loading, without a CUFF record or after a failed lookup.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cuff-app/cuff/pkg/model"
)

type userClient interface {
	FetchUserByEmail(ctx context.Context, email string) (*model.User, error)
}

func New(logger *slog.Logger, client userClient) *Session {
	return &Session{
		logger:  logger,
		client:  client,
		loading: true,
	}
}

type Session struct {
	logger *slog.Logger
	client userClient

	mu      sync.RWMutex
	loading bool
	user    *model.User
}

// State is a snapshot of the session.
type State struct {
	Loading bool
	User    *model.User
}

func (s State) IsAdmin() bool {
	return s.User != nil && s.User.IsAdmin
}

// UserID returns the id of the loaded user. ok is false if there is none.
func (s State) UserID() (uint, bool) {
	if s.User == nil {
		return 0, false
	}
	return s.User.ID, true
}

// Load resolves the CUFF user registered with email. Lookup failures are logged and leave the
// session without a user.
func (s *Session) Load(ctx context.Context, email string) State {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var user *model.User
	if email != "" {
		found, err := s.client.FetchUserByEmail(ctx, email)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to load user", "error", err)
		} else if found == nil {
			s.logger.InfoContext(ctx, "No CUFF user for email, continuing without admin features")
		} else {
			user = found
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loading = false
	return State{User: user}
}

// SetUser replaces the loaded user, e.g. with the record returned after a preference update.
func (s *Session) SetUser(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loading = false
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return State{Loading: s.loading, User: s.user}
}

func (s *Session) IsAdmin() bool {
	return s.State().IsAdmin()
}
