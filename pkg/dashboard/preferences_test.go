package dashboard

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPreferences_Load(t *testing.T) {
	saved := model.StoredPreferences{Preferences: model.Preferences{AvoidGluten: true}, NotificationType: model.NotificationSMS}
	p := NewPreferences(discard(), &memoryStore{saved: &saved}, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	got := p.Load(context.Background())

	assert.Equal(t, saved, got)
	assert.Equal(t, saved, p.Current())
}

func TestPreferences_LoadFailureKeepsDefaults(t *testing.T) {
	p := NewPreferences(discard(), &memoryStore{loadErr: errors.New("disk gone")}, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	got := p.Load(context.Background())

	assert.Equal(t, model.DefaultStoredPreferences(), got)
}

func TestPreferences_Toggle(t *testing.T) {
	store := &memoryStore{}
	client := &mockPreferenceClient{}
	updated := &model.User{ID: 2, NotificationType: "Both", DietaryPreferences: `{"avoidNuts":true}`}
	client.
		On("UpdateUserPreferences", mock.Anything, uint(2), model.NotificationBoth, model.Preferences{AvoidNuts: true}).
		Return(updated, nil)
	users := &recordingUsers{}
	p := NewPreferences(discard(), store, client, fixedIdentity(student), users)
	p.Load(context.Background())

	got, err := p.Toggle(context.Background(), model.FlagAvoidNuts, true)

	require.NoError(t, err)
	want := model.StoredPreferences{Preferences: model.Preferences{AvoidNuts: true}, NotificationType: model.NotificationBoth}
	assert.Equal(t, want, got)
	require.NotNil(t, store.saved)
	assert.Equal(t, want, *store.saved)
	assert.Equal(t, []*model.User{updated}, users.users)
	client.AssertExpectations(t)
}

func TestPreferences_Toggle_RoundTrip(t *testing.T) {
	store := &memoryStore{}
	p := NewPreferences(discard(), store, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	for _, flag := range model.FlagNames {
		_, err := p.Toggle(context.Background(), flag, true)
		require.NoError(t, err)
	}
	_, err := p.Toggle(context.Background(), model.FlagHighlightVeg, false)
	require.NoError(t, err)

	reloaded := NewPreferences(discard(), store, &mockPreferenceClient{}, fixedIdentity(nobody), nil).Load(context.Background())
	assert.Equal(t, p.Current(), reloaded)
	assert.Equal(t, model.Preferences{HighlightVegan: true, AvoidNuts: true, AvoidGluten: true, AvoidDairy: true}, reloaded.Preferences)
}

func TestPreferences_ConcurrentChangesAreAllKept(t *testing.T) {
	store := &memoryStore{}
	p := NewPreferences(discard(), store, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	var wg sync.WaitGroup
	for _, flag := range model.FlagNames {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := p.Toggle(context.Background(), flag, true)
			assert.NoError(t, err)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := p.SetNotificationType(context.Background(), "sms")
		assert.NoError(t, err)
	}()
	wg.Wait()

	want := model.StoredPreferences{
		Preferences:      model.Preferences{HighlightVegan: true, HighlightVeg: true, AvoidNuts: true, AvoidGluten: true, AvoidDairy: true},
		NotificationType: model.NotificationSMS,
	}
	assert.Equal(t, want, p.Current())
	require.NotNil(t, store.saved)
	assert.Equal(t, want, *store.saved)
	assert.Equal(t, len(model.FlagNames)+1, store.saves)
}

func TestPreferences_Toggle_WithoutUserSkipsSync(t *testing.T) {
	client := &mockPreferenceClient{}
	store := &memoryStore{}
	p := NewPreferences(discard(), store, client, fixedIdentity(nobody), nil)

	_, err := p.Toggle(context.Background(), model.FlagAvoidDairy, true)

	require.NoError(t, err)
	assert.Equal(t, 1, store.saves)
	client.AssertNotCalled(t, "UpdateUserPreferences", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreferences_Toggle_SyncFailureKeepsLocalChange(t *testing.T) {
	store := &memoryStore{}
	client := &mockPreferenceClient{}
	client.
		On("UpdateUserPreferences", mock.Anything, uint(2), mock.Anything, mock.Anything).
		Return(nil, errors.New("network down"))
	users := &recordingUsers{}
	p := NewPreferences(discard(), store, client, fixedIdentity(student), users)

	got, err := p.Toggle(context.Background(), model.FlagHighlightVeg, true)

	require.NoError(t, err)
	assert.True(t, got.HighlightVeg)
	assert.True(t, store.saved.HighlightVeg)
	assert.Empty(t, users.users)
}

func TestPreferences_Toggle_SaveFailure(t *testing.T) {
	client := &mockPreferenceClient{}
	p := NewPreferences(discard(), &memoryStore{saveErr: errors.New("disk full")}, client, fixedIdentity(student), nil)

	got, err := p.Toggle(context.Background(), model.FlagAvoidNuts, true)

	require.Error(t, err)
	assert.False(t, got.AvoidNuts)
	assert.Equal(t, model.DefaultStoredPreferences(), p.Current())
	client.AssertNotCalled(t, "UpdateUserPreferences", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPreferences_Toggle_UnknownFlag(t *testing.T) {
	store := &memoryStore{}
	p := NewPreferences(discard(), store, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	_, err := p.Toggle(context.Background(), "avoidEverything", true)

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
	assert.Zero(t, store.saves)
}

func TestPreferences_SetNotificationType(t *testing.T) {
	store := &memoryStore{}
	client := &mockPreferenceClient{}
	client.
		On("UpdateUserPreferences", mock.Anything, uint(2), model.NotificationEmail, model.Preferences{}).
		Return(&model.User{ID: 2}, nil)
	p := NewPreferences(discard(), store, client, fixedIdentity(student), nil)

	got, err := p.SetNotificationType(context.Background(), "email")

	require.NoError(t, err)
	assert.Equal(t, model.NotificationEmail, got.NotificationType)
	assert.Equal(t, model.NotificationEmail, store.saved.NotificationType)
	client.AssertExpectations(t)
}

func TestPreferences_SetNotificationType_Unknown(t *testing.T) {
	p := NewPreferences(discard(), &memoryStore{}, &mockPreferenceClient{}, fixedIdentity(nobody), nil)

	_, err := p.SetNotificationType(context.Background(), "Pigeon")

	require.Error(t, err)
	assert.True(t, errdef.IsBadRequest(err))
}
