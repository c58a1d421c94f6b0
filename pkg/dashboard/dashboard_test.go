package dashboard

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/session"
	"github.com/stretchr/testify/mock"
)

var (
	admin   = session.State{User: &model.User{ID: 1, IsAdmin: true}}
	student = session.State{User: &model.User{ID: 2}}
	nobody  = session.State{}
)

type fixedIdentity session.State

func (i fixedIdentity) State() session.State {
	return session.State(i)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// debugLogger records every log line including debug ones as JSON.
func debugLogger() (*slog.Logger, *bytes.Buffer) {
	var b bytes.Buffer
	return slog.New(slog.NewJSONHandler(&b, &slog.HandlerOptions{Level: slog.LevelDebug})), &b
}

type mockEventClient struct{ mock.Mock }

func (m *mockEventClient) FetchEvents(ctx context.Context) ([]model.Event, error) {
	called := m.Called(ctx)
	events, _ := called.Get(0).([]model.Event)
	return events, called.Error(1)
}

func (m *mockEventClient) CreateEvent(ctx context.Context, payload model.EventPayload) (*model.Event, error) {
	called := m.Called(ctx, payload)
	event, _ := called.Get(0).(*model.Event)
	return event, called.Error(1)
}

func (m *mockEventClient) DeleteEvent(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type mockPreferenceClient struct{ mock.Mock }

func (m *mockPreferenceClient) UpdateUserPreferences(ctx context.Context, userID uint, notificationType model.NotificationType, prefs model.Preferences) (*model.User, error) {
	called := m.Called(ctx, userID, notificationType, prefs)
	user, _ := called.Get(0).(*model.User)
	return user, called.Error(1)
}

// memoryStore keeps preferences in memory, loadErr and saveErr make the respective call fail.
type memoryStore struct {
	saved   *model.StoredPreferences
	saves   int
	loadErr error
	saveErr error
}

func (s *memoryStore) Load() (model.StoredPreferences, error) {
	if s.loadErr != nil {
		return model.DefaultStoredPreferences(), s.loadErr
	}
	if s.saved == nil {
		return model.DefaultStoredPreferences(), nil
	}
	return *s.saved, nil
}

func (s *memoryStore) Save(prefs model.StoredPreferences) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.saved = &prefs
	return nil
}

type recordingUsers struct {
	users []*model.User
}

func (r *recordingUsers) SetUser(user *model.User) {
	r.users = append(r.users, user)
}
