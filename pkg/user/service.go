package user

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
)

func NewService(logger *slog.Logger, repository *repository) *Service {
	return &Service{
		logger:     logger,
		repository: repository,
	}
}

type Service struct {
	logger     *slog.Logger
	repository *repository
}

// Create stores a new user with a hashed password. Users without a notification type get the
// default one.
func (s Service) Create(ctx context.Context, user *model.User, password string) (*model.User, error) {
	hashedPassword, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("password hashing failed: %v", err)
	}
	user.Password = hashedPassword

	notificationType := model.DefaultNotificationType
	if user.NotificationType != "" {
		var ok bool
		notificationType, ok = model.ParseNotificationType(user.NotificationType)
		if !ok {
			return nil, errdef.NewBadRequest("invalid notification type %q", user.NotificationType)
		}
	}
	user.NotificationType = string(notificationType)
	user.NotificationsEnabled = notificationType != model.NotificationNone

	if err := s.repository.create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s Service) FindAll(ctx context.Context) ([]*model.User, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.User, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.repository.findByEmail(ctx, email)
}

// FindNotifiable returns the users who want to hear about new posts.
func (s Service) FindNotifiable(ctx context.Context) ([]*model.User, error) {
	return s.repository.findNotifiable(ctx)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

// UpdatePreferences replaces the notification type and dietary preferences of a user.
// dietaryPreferences has to be a JSON object, unknown keys are kept as sent.
func (s Service) UpdatePreferences(ctx context.Context, id uint, notificationType string, dietaryPreferences string) (*model.User, error) {
	parsedType, ok := model.ParseNotificationType(notificationType)
	if !ok {
		return nil, errdef.NewBadRequest("invalid notification type %q", notificationType)
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(dietaryPreferences), &object); err != nil || object == nil {
		return nil, errdef.NewBadRequest("dietaryPreferences must be a JSON object")
	}

	user, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	user.NotificationType = string(parsedType)
	user.DietaryPreferences = dietaryPreferences
	user.NotificationsEnabled = parsedType != model.NotificationNone

	if err := s.repository.updatePreferences(ctx, user); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Updated user preferences", "userId", user.ID, "notificationType", user.NotificationType)
	return user, nil
}

// EnsureAdmin makes sure an administrator with the given email and password exists. An existing
// user is promoted and gets the password reset if it doesn't match.
func (s Service) EnsureAdmin(ctx context.Context, email string, password string) (*model.User, error) {
	user, err := s.repository.findByEmail(ctx, email)
	if errdef.IsNotFound(err) {
		admin := &model.User{Email: email, FirstName: "CUFF", LastName: "Admin", IsAdmin: true}
		created, err := s.Create(ctx, admin, password)
		if err != nil {
			return nil, fmt.Errorf("error creating admin user: %v", err)
		}
		s.logger.InfoContext(ctx, "Created admin user", "userId", created.ID)
		return created, nil
	}
	if err != nil {
		return nil, err
	}

	changed := false
	if !user.IsAdmin {
		user.IsAdmin = true
		changed = true
	}

	match, err := comparePasswords(user.Password, password)
	if err != nil || !match {
		user.Password, err = hashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("password hashing failed: %v", err)
		}
		changed = true
	}

	if changed {
		if err := s.repository.save(ctx, user); err != nil {
			return nil, fmt.Errorf("error saving admin user: %v", err)
		}
		s.logger.InfoContext(ctx, "Updated admin user", "userId", user.ID)
	}

	return user, nil
}
