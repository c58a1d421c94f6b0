package post

import (
	"context"
	"log/slog"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository *repository, userService userService, publisher publisher, notifier notifier, cache cache) *Service {
	return &Service{
		logger:      logger,
		repository:  repository,
		userService: userService,
		publisher:   publisher,
		notifier:    notifier,
		cache:       cache,
	}
}

type userService interface {
	FindById(ctx context.Context, id uint) (*model.User, error)
}

type publisher interface {
	PublishPost(post model.Post)
}

type notifier interface {
	PostCreated(ctx context.Context, post model.Post) (int, error)
}

type cache interface {
	Invalidate() error
}

type Service struct {
	logger      *slog.Logger
	repository  *repository
	userService userService
	publisher   publisher
	notifier    notifier
	cache       cache
}

// Create stores a post on behalf of an administrator. Subscribers of the event stream and users
// with notifications enabled are told about it. Failing to notify doesn't fail the creation.
func (s Service) Create(ctx context.Context, post *model.Post) error {
	if err := validateWindow(post); err != nil {
		return err
	}

	user, err := s.userService.FindById(ctx, post.UserID)
	if err != nil {
		if errdef.IsNotFound(err) {
			return errdef.NewBadRequest("user %d doesn't exist", post.UserID)
		}
		return err
	}
	if !user.IsAdmin {
		return errdef.NewForbidden("user %d isn't allowed to create posts", user.ID)
	}

	post.Status = model.StatusActive
	if err := s.repository.create(ctx, post); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Created post", "postId", post.ID, "userId", post.UserID)

	s.invalidateSummary(ctx)
	s.publisher.PublishPost(*post)

	notified, err := s.notifier.PostCreated(ctx, *post)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create notifications", "postId", post.ID, "error", err)
	} else {
		s.logger.InfoContext(ctx, "Queued notifications", "postId", post.ID, "count", notified)
	}

	return nil
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Post, error) {
	return s.repository.findById(ctx, id)
}

// FindActive returns the posts with status active, newest first.
func (s Service) FindActive(ctx context.Context) ([]model.Post, error) {
	return s.repository.findActive(ctx)
}

// Update replaces the content, window and status of a post.
func (s Service) Update(ctx context.Context, id uint, update model.Post) (*model.Post, error) {
	if err := validateWindow(&update); err != nil {
		return nil, err
	}

	post, err := s.repository.findById(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = update.Title
	post.Location = update.Location
	post.Description = update.Description
	post.DietarySpecification = update.DietarySpecification
	post.AvailableFrom = update.AvailableFrom
	post.AvailableUntil = update.AvailableUntil
	post.ImageURL = update.ImageURL
	if update.Status != "" {
		post.Status = update.Status
	}

	if err := s.repository.update(ctx, post); err != nil {
		return nil, err
	}
	s.invalidateSummary(ctx)

	return post, nil
}

// Delete marks the post as deleted. The row is kept but the post is no longer listed or counted.
func (s Service) Delete(ctx context.Context, id uint) error {
	if err := s.repository.updateStatus(ctx, id, model.StatusDeleted); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Deleted post", "postId", id)
	s.invalidateSummary(ctx)
	return nil
}

func (s Service) invalidateSummary(ctx context.Context) {
	if err := s.cache.Invalidate(); err != nil {
		s.logger.WarnContext(ctx, "Failed to invalidate analytics summary", "error", err)
	}
}

func validateWindow(post *model.Post) error {
	if post.AvailableFrom.IsZero() {
		return errdef.NewBadRequest("availableFrom is required")
	}
	if post.AvailableUntil != nil && !post.AvailableUntil.IsZero() && !post.AvailableUntil.After(post.AvailableFrom.Time) {
		return errdef.NewBadRequest("availableUntil has to be after availableFrom")
	}
	return nil
}
