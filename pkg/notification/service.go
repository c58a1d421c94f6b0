package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository *repository, userService userService) *Service {
	return &Service{
		logger:      logger,
		repository:  repository,
		userService: userService,
	}
}

type userService interface {
	FindNotifiable(ctx context.Context) ([]*model.User, error)
}

type Service struct {
	logger      *slog.Logger
	repository  *repository
	userService userService
}

func (s Service) Create(ctx context.Context, notification *model.Notification) error {
	if _, ok := model.ParseNotificationType(notification.NotificationType); !ok {
		return errdef.NewBadRequest("invalid notification type %q", notification.NotificationType)
	}
	if notification.Status == nil {
		status := model.NotificationPending
		notification.Status = &status
	}
	return s.repository.create(ctx, notification)
}

func (s Service) FindAll(ctx context.Context) ([]model.Notification, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Notification, error) {
	return s.repository.findById(ctx, id)
}

// FindByUser returns the notifications of a user, newest first.
func (s Service) FindByUser(ctx context.Context, userID uint) ([]model.Notification, error) {
	return s.repository.findByUser(ctx, userID)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

// PostCreated records a pending notification for every user who wants to be notified and whose
// dietary avoidances the post passes. It returns the number of notifications created.
func (s Service) PostCreated(ctx context.Context, post model.Post) (int, error) {
	users, err := s.userService.FindNotifiable(ctx)
	if err != nil {
		return 0, err
	}

	notifications := Recipients(post, users)
	if err := s.repository.create(ctx, notifications...); err != nil {
		return 0, err
	}

	s.logger.DebugContext(ctx, "Created notifications", "postId", post.ID, "candidates", len(users), "count", len(notifications))
	return len(notifications), nil
}

// Recipients builds the pending notifications for post. Users who opted out, either by type or by
// flag, and users avoiding something the post contains are skipped.
func Recipients(post model.Post, users []*model.User) []*model.Notification {
	event := post.Event()
	message := Message(post)

	var notifications []*model.Notification
	for _, user := range users {
		notificationType, ok := model.ParseNotificationType(user.NotificationType)
		if !ok {
			notificationType = model.DefaultNotificationType
		}
		if !user.NotificationsEnabled || notificationType == model.NotificationNone {
			continue
		}
		if !visibility.Safe(event, user.Preferences()) {
			continue
		}

		status := model.NotificationPending
		content := message
		notifications = append(notifications, &model.Notification{
			PostID:           post.ID,
			UserID:           user.ID,
			NotificationType: string(notificationType),
			MessageContent:   &content,
			Status:           &status,
		})
	}
	return notifications
}

// Message is the text users are notified with.
func Message(post model.Post) string {
	return fmt.Sprintf("%s at %s", post.Title, post.Location)
}
