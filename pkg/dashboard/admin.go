package dashboard

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/analytics"
	"github.com/cuff-app/cuff/pkg/model"
)

// NewAdmin returns the admin dashboard. Times entered on the post form are sent as wall clock time
// in location.
func NewAdmin(logger *slog.Logger, client eventClient, identity identity, location *time.Location) *Admin {
	return &Admin{
		logger:   logger,
		client:   client,
		identity: identity,
		location: location,
		summary:  analytics.EmptySummary(),
	}
}

type Admin struct {
	logger   *slog.Logger
	client   eventClient
	identity identity
	location *time.Location

	mu      sync.Mutex
	summary analytics.Summary
}

// PostForm is the post creation form as filled in by an administrator.
type PostForm struct {
	Title                string
	Location             string
	Description          string
	DietarySpecification string
	AvailableFrom        *time.Time
	AvailableUntil       *time.Time
	ImageURL             string
}

// Refresh recomputes the summary over every fetched event. A failed fetch is logged and the
// previous summary stays.
func (a *Admin) Refresh(ctx context.Context, now time.Time) error {
	if !a.identity.State().IsAdmin() {
		return errdef.NewForbidden("admin access only")
	}

	events, err := a.client.FetchEvents(ctx)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to load admin analytics", "error", err)
		return nil
	}

	logMalformedWindows(a.logger, "admin", events, a.location)
	summary := analytics.Summarize(events, now.In(a.location))
	a.mu.Lock()
	a.summary = summary
	a.mu.Unlock()
	return nil
}

func (a *Admin) Summary() analytics.Summary {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.summary
}

// Create posts a new event in the name of the signed in administrator.
func (a *Admin) Create(ctx context.Context, form PostForm) (*model.Event, error) {
	state := a.identity.State()
	if !state.IsAdmin() {
		return nil, errdef.NewForbidden("admin access only")
	}

	if strings.TrimSpace(form.Title) == "" {
		return nil, errdef.NewBadRequest("please enter a title for the post")
	}
	if form.AvailableFrom == nil || form.AvailableUntil == nil {
		return nil, errdef.NewBadRequest("please pick both a start and end time for the event")
	}
	if !form.AvailableUntil.After(*form.AvailableFrom) {
		return nil, errdef.NewBadRequest("the end time has to be after the start time")
	}

	payload := model.EventPayload{
		Title:                strings.TrimSpace(form.Title),
		Location:             strings.TrimSpace(form.Location),
		Description:          strings.TrimSpace(form.Description),
		DietarySpecification: strings.TrimSpace(form.DietarySpecification),
		AvailableFrom:        model.FormatLocal(form.AvailableFrom.In(a.location)),
		AvailableUntil:       model.FormatLocal(form.AvailableUntil.In(a.location)),
		ImageURL:             strings.TrimSpace(form.ImageURL),
		UserID:               state.User.ID,
	}

	event, err := a.client.CreateEvent(ctx, payload)
	if err != nil {
		a.logger.ErrorContext(ctx, "Failed to create event", "error", err)
		return nil, err
	}
	a.logger.InfoContext(ctx, "Created event", "eventId", event.ID)
	return event, nil
}
