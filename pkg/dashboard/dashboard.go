// Package dashboard backs the app screens: the home feed, the admin dashboard and the preferences
// screen. Passive loads log failures and keep what was shown before, interactive actions return
// their errors to the caller.
package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/session"
	"github.com/cuff-app/cuff/pkg/visibility"
)

type eventClient interface {
	FetchEvents(ctx context.Context) ([]model.Event, error)
	CreateEvent(ctx context.Context, payload model.EventPayload) (*model.Event, error)
	DeleteEvent(ctx context.Context, id uint) error
}

type preferenceClient interface {
	UpdateUserPreferences(ctx context.Context, userID uint, notificationType model.NotificationType, prefs model.Preferences) (*model.User, error)
}

type preferenceStore interface {
	Load() (model.StoredPreferences, error)
	Save(prefs model.StoredPreferences) error
}

type identity interface {
	State() session.State
}

// logMalformedWindows logs events whose availableUntil can't be parsed. They are still shown.
func logMalformedWindows(logger *slog.Logger, screen string, events []model.Event, loc *time.Location) {
	for _, e := range events {
		if visibility.MalformedWindow(e, loc) {
			logger.Debug("Malformed availableUntil", "screen", screen, "eventId", e.ID, "availableUntil", e.AvailableUntil)
		}
	}
}
