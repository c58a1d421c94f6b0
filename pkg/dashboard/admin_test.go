package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/analytics"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var campus = time.FixedZone("campus", -6*60*60)

func TestAdmin_Refresh(t *testing.T) {
	client := &mockEventClient{}
	client.On("FetchEvents", mock.Anything).Return([]model.Event{
		{Location: "UMC", Description: "vegan", AvailableFrom: "2026-03-02T12:30:00", Status: "active"},
		{Location: "UMC", Description: "gluten-free", AvailableFrom: "2026-03-02T19:00:00", Status: "expired"},
	}, nil)
	a := NewAdmin(discard(), client, fixedIdentity(admin), campus)

	err := a.Refresh(context.Background(), time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	summary := a.Summary()
	assert.Equal(t, 2, summary.TotalEvents)
	assert.Equal(t, 1, summary.ActiveEvents)
	assert.Equal(t, 1, summary.ExpiredEvents)
	assert.Equal(t, []analytics.LocationCount{{Location: "UMC", Count: 2}}, summary.TopLocations)
	assert.Equal(t, 1, summary.TimeBuckets[1].Count)
	assert.Equal(t, 1, summary.TimeBuckets[3].Count)
}

func TestAdmin_Refresh_LogsMalformedWindows(t *testing.T) {
	client := &mockEventClient{}
	client.On("FetchEvents", mock.Anything).Return([]model.Event{
		{ID: 5, Location: "UMC", AvailableFrom: "2026-03-02T12:30:00", AvailableUntil: "tomorrow-ish"},
		{ID: 6, Location: "UMC", AvailableFrom: "2026-03-02T12:30:00", AvailableUntil: "2026-03-02T23:00:00"},
	}, nil)
	logger, logs := debugLogger()
	a := NewAdmin(logger, client, fixedIdentity(admin), campus)

	err := a.Refresh(context.Background(), time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, 2, a.Summary().ActiveEvents)
	assert.Contains(t, logs.String(), `"msg":"Malformed availableUntil"`)
	assert.Contains(t, logs.String(), `"screen":"admin"`)
	assert.Contains(t, logs.String(), `"eventId":5`)
	assert.NotContains(t, logs.String(), `"eventId":6`)
}

func TestAdmin_Refresh_FailureKeepsSnapshot(t *testing.T) {
	client := &mockEventClient{}
	client.On("FetchEvents", mock.Anything).Return([]model.Event{{Location: "UMC"}}, nil).Once()
	client.On("FetchEvents", mock.Anything).Return(nil, errors.New("network down")).Once()
	a := NewAdmin(discard(), client, fixedIdentity(admin), campus)
	require.NoError(t, a.Refresh(context.Background(), now))
	before := a.Summary()

	err := a.Refresh(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, before, a.Summary())
	assert.Equal(t, 1, a.Summary().TotalEvents)
}

func TestAdmin_Refresh_InitialSnapshotIsEmpty(t *testing.T) {
	a := NewAdmin(discard(), &mockEventClient{}, fixedIdentity(admin), campus)

	assert.Equal(t, analytics.EmptySummary(), a.Summary())
}

func TestAdmin_RequiresAdmin(t *testing.T) {
	client := &mockEventClient{}
	a := NewAdmin(discard(), client, fixedIdentity(student), campus)

	err := a.Refresh(context.Background(), now)
	require.True(t, errdef.IsForbidden(err))

	from, until := now, now.Add(time.Hour)
	_, err = a.Create(context.Background(), PostForm{Title: "Pizza", AvailableFrom: &from, AvailableUntil: &until})
	require.True(t, errdef.IsForbidden(err))

	client.AssertNotCalled(t, "FetchEvents", mock.Anything)
	client.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
}

func TestAdmin_Create(t *testing.T) {
	client := &mockEventClient{}
	client.
		On("CreateEvent", mock.Anything, model.EventPayload{
			Title:          "Pizza",
			Location:       "UMC",
			Description:    "Cheese",
			AvailableFrom:  "2026-03-02T12:00:00",
			AvailableUntil: "2026-03-02T14:30:00",
			UserID:         1,
		}).
		Return(&model.Event{ID: 9, Title: "Pizza"}, nil)
	a := NewAdmin(discard(), client, fixedIdentity(admin), campus)
	from := time.Date(2026, time.March, 2, 18, 0, 0, 0, time.UTC)
	until := time.Date(2026, time.March, 2, 20, 30, 0, 0, time.UTC)

	event, err := a.Create(context.Background(), PostForm{
		Title:          "  Pizza ",
		Location:       "UMC",
		Description:    "Cheese\n",
		AvailableFrom:  &from,
		AvailableUntil: &until,
	})

	require.NoError(t, err)
	assert.Equal(t, uint(9), event.ID)
	client.AssertExpectations(t)
}

func TestAdmin_Create_Invalid(t *testing.T) {
	from := now
	until := now.Add(time.Hour)
	tests := map[string]PostForm{
		"MissingTitle":    {Title: "  ", AvailableFrom: &from, AvailableUntil: &until},
		"MissingFrom":     {Title: "Pizza", AvailableUntil: &until},
		"MissingUntil":    {Title: "Pizza", AvailableFrom: &from},
		"UntilBeforeFrom": {Title: "Pizza", AvailableFrom: &until, AvailableUntil: &from},
	}

	for name, form := range tests {
		t.Run(name, func(t *testing.T) {
			client := &mockEventClient{}
			a := NewAdmin(discard(), client, fixedIdentity(admin), campus)

			_, err := a.Create(context.Background(), form)

			require.Error(t, err)
			assert.True(t, errdef.IsBadRequest(err))
			client.AssertNotCalled(t, "CreateEvent", mock.Anything, mock.Anything)
		})
	}
}

func TestAdmin_Create_BackendFailure(t *testing.T) {
	client := &mockEventClient{}
	client.On("CreateEvent", mock.Anything, mock.Anything).Return(nil, errors.New("500"))
	a := NewAdmin(discard(), client, fixedIdentity(admin), campus)
	from, until := now, now.Add(time.Hour)

	event, err := a.Create(context.Background(), PostForm{Title: "Pizza", AvailableFrom: &from, AvailableUntil: &until})

	require.Error(t, err)
	assert.Nil(t, event)
}
