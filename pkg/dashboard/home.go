package dashboard

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
	"golang.org/x/sync/errgroup"
)

func NewHome(logger *slog.Logger, client eventClient, store preferenceStore, identity identity) *Home {
	return &Home{
		logger:   logger,
		client:   client,
		store:    store,
		identity: identity,
		prefs:    model.DefaultStoredPreferences(),
	}
}

type Home struct {
	logger   *slog.Logger
	client   eventClient
	store    preferenceStore
	identity identity

	mu     sync.Mutex
	events []model.Event
	prefs  model.StoredPreferences
}

// HomeView is what the home screen renders.
type HomeView struct {
	Items     []visibility.Item
	Stats     Stats
	HiddenFor string
	IsAdmin   bool
}

type Stats struct {
	TotalEvents     int
	VisibleNow      int
	UniqueLocations int
}

// Load fetches the events and reads the saved preferences concurrently. Either failing is logged
// and keeps the previous value.
func (h *Home) Load(ctx context.Context) {
	var g errgroup.Group

	g.Go(func() error {
		events, err := h.client.FetchEvents(ctx)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to fetch events", "error", err)
			return nil
		}
		h.mu.Lock()
		h.events = events
		h.mu.Unlock()
		return nil
	})

	g.Go(func() error {
		prefs, err := h.store.Load()
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to load preferences", "error", err)
			return nil
		}
		h.mu.Lock()
		h.prefs = prefs
		h.mu.Unlock()
		return nil
	})

	_ = g.Wait()
}

// View applies the preferences to the last fetched events.
func (h *Home) View(now time.Time) HomeView {
	h.mu.Lock()
	events := slices.Clone(h.events)
	prefs := h.prefs.Preferences
	h.mu.Unlock()

	logMalformedWindows(h.logger, "home", events, now.Location())
	items := visibility.Build(events, prefs, now)
	return HomeView{
		Items: items,
		Stats: Stats{
			TotalEvents:     len(events),
			VisibleNow:      len(items),
			UniqueLocations: uniqueLocations(events),
		},
		HiddenFor: visibility.HiddenFor(prefs),
		IsAdmin:   h.identity.State().IsAdmin(),
	}
}

// Delete removes an event on behalf of an administrator.
func (h *Home) Delete(ctx context.Context, id uint) error {
	if !h.identity.State().IsAdmin() {
		return errdef.NewForbidden("only administrators can delete events")
	}

	if err := h.client.DeleteEvent(ctx, id); err != nil {
		h.logger.ErrorContext(ctx, "Failed to delete event", "eventId", id, "error", err)
		return err
	}

	h.mu.Lock()
	h.events = slices.DeleteFunc(h.events, func(e model.Event) bool { return e.ID == id })
	h.mu.Unlock()
	return nil
}

func uniqueLocations(events []model.Event) int {
	locations := make(map[string]struct{}, len(events))
	for _, e := range events {
		locations[e.Location] = struct{}{}
	}
	return len(locations)
}
