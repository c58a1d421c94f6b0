package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
)

type userSetter interface {
	SetUser(user *model.User)
}

// NewPreferences returns the preferences screen. Updated users returned by the backend are handed
// to users if not nil.
func NewPreferences(logger *slog.Logger, store preferenceStore, client preferenceClient, identity identity, users userSetter) *Preferences {
	return &Preferences{
		logger:   logger,
		store:    store,
		client:   client,
		identity: identity,
		users:    users,
		current:  model.DefaultStoredPreferences(),
	}
}

type Preferences struct {
	logger   *slog.Logger
	store    preferenceStore
	client   preferenceClient
	identity identity
	users    userSetter

	// updates serializes Toggle and SetNotificationType from reading the current preferences to
	// the end of the sync so concurrent changes don't overwrite each other.
	updates sync.Mutex
	mu      sync.Mutex
	current model.StoredPreferences
}

// Load reads the saved preferences. A failed read is logged and leaves the defaults.
func (p *Preferences) Load(ctx context.Context) model.StoredPreferences {
	prefs, err := p.store.Load()
	if err != nil {
		p.logger.ErrorContext(ctx, "Failed to load preferences", "error", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err == nil {
		p.current = prefs
	}
	return p.current
}

func (p *Preferences) Current() model.StoredPreferences {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Toggle sets a single flag, see model.FlagNames.
func (p *Preferences) Toggle(ctx context.Context, flag string, value bool) (model.StoredPreferences, error) {
	p.updates.Lock()
	defer p.updates.Unlock()

	current := p.Current()
	next, ok := current.With(flag, value)
	if !ok {
		return current, errdef.NewBadRequest("unknown preference %q", flag)
	}
	return p.persist(ctx, model.StoredPreferences{Preferences: next, NotificationType: current.NotificationType})
}

func (p *Preferences) SetNotificationType(ctx context.Context, notificationType string) (model.StoredPreferences, error) {
	p.updates.Lock()
	defer p.updates.Unlock()

	current := p.Current()
	t, ok := model.ParseNotificationType(notificationType)
	if !ok {
		return current, errdef.NewBadRequest("unknown notification type %q", notificationType)
	}
	return p.persist(ctx, model.StoredPreferences{Preferences: current.Preferences, NotificationType: t})
}

// persist saves locally and then syncs to the backend if a user is signed in. A failed sync is only
// logged, the local copy stays authoritative.
func (p *Preferences) persist(ctx context.Context, next model.StoredPreferences) (model.StoredPreferences, error) {
	if err := p.store.Save(next); err != nil {
		p.logger.ErrorContext(ctx, "Failed to save preferences", "error", err)
		return p.Current(), err
	}

	p.mu.Lock()
	p.current = next
	p.mu.Unlock()

	userID, ok := p.identity.State().UserID()
	if !ok {
		return next, nil
	}

	user, err := p.client.UpdateUserPreferences(ctx, userID, next.NotificationType, next.Preferences)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to sync preferences", "userId", userID, "error", err)
		return next, nil
	}
	if p.users != nil && user != nil {
		p.users.SetUser(user)
	}
	return next, nil
}
