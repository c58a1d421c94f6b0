package post

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestService_Create_Rejected(t *testing.T) {
	from := model.NewLocalTime(time.Date(2025, 4, 10, 12, 0, 0, 0, time.Local))
	before := model.NewLocalTime(time.Date(2025, 4, 10, 11, 0, 0, 0, time.Local))

	tests := map[string]struct {
		post    model.Post
		user    *model.User
		userErr error
		check   func(error) bool
	}{
		"MissingAvailableFrom": {
			post:  model.Post{Title: "Pizza", UserID: 1},
			check: errdef.IsBadRequest,
		},
		"UntilBeforeFrom": {
			post:  model.Post{Title: "Pizza", UserID: 1, AvailableFrom: from, AvailableUntil: &before},
			check: errdef.IsBadRequest,
		},
		"UnknownUser": {
			post:    model.Post{Title: "Pizza", UserID: 9, AvailableFrom: from},
			userErr: errdef.NewNotFound("failed to find user with id 9"),
			check:   errdef.IsBadRequest,
		},
		"NotAdmin": {
			post:  model.Post{Title: "Pizza", UserID: 2, AvailableFrom: from},
			user:  &model.User{ID: 2},
			check: errdef.IsForbidden,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			userService := &mockUserService{}
			userService.
				On("FindById", mock.Anything, test.post.UserID).
				Return(test.user, test.userErr).
				Maybe()
			publisher := &mockPublisher{}
			service := NewService(slog.Default(), nil, userService, publisher, nil, nil)

			err := service.Create(context.Background(), &test.post)

			assert.True(t, test.check(err), "unexpected error %v", err)
			publisher.AssertNotCalled(t, "PublishPost", mock.Anything)
		})
	}
}

type mockUserService struct{ mock.Mock }

func (m *mockUserService) FindById(ctx context.Context, id uint) (*model.User, error) {
	called := m.Called(ctx, id)
	if user, ok := called.Get(0).(*model.User); ok && user != nil {
		return user, nil
	}
	return nil, called.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishPost(post model.Post) {
	m.Called(post)
}
