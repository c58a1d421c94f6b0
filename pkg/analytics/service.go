package analytics

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/cuff-app/cuff/internal/errdef"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
)

//goland:noinspection GoExportedFuncWithUnexportedType
func NewService(logger *slog.Logger, repository *repository, postService postService, cache SummaryCache, location *time.Location) *Service {
	return &Service{
		logger:      logger,
		repository:  repository,
		postService: postService,
		cache:       cache,
		location:    location,
		now:         time.Now,
	}
}

type postService interface {
	FindActive(ctx context.Context) ([]model.Post, error)
}

type Service struct {
	logger      *slog.Logger
	repository  *repository
	postService postService
	cache       SummaryCache
	location    *time.Location
	now         func() time.Time
}

// Summary returns the analytics overview of the posts served by GET /posts, so deleted posts
// aren't counted and the overview matches what the admin screen computes. A cache failure only
// costs the recomputation.
func (s Service) Summary(ctx context.Context) (Summary, error) {
	summary, ok, err := s.cache.Get()
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to read summary cache", "error", err)
	}
	if ok {
		return summary, nil
	}

	posts, err := s.postService.FindActive(ctx)
	if err != nil {
		return Summary{}, err
	}

	now := s.now().In(s.location)
	events := model.Events(posts)
	summary = Summarize(events, now)

	if err := s.cache.Set(summary, untilNextExpiry(events, now)); err != nil {
		s.logger.WarnContext(ctx, "Failed to cache summary", "error", err)
	}
	return summary, nil
}

func (s Service) Create(ctx context.Context, metric *model.Metric) error {
	if metric.Metadata != nil && !json.Valid([]byte(*metric.Metadata)) {
		return errdef.NewBadRequest("metadata must be valid JSON")
	}
	if metric.Timestamp == nil {
		now := s.now()
		metric.Timestamp = &now
	}
	return s.repository.create(ctx, metric)
}

func (s Service) FindAll(ctx context.Context) ([]model.Metric, error) {
	return s.repository.findAll(ctx)
}

func (s Service) FindById(ctx context.Context, id uint) (*model.Metric, error) {
	return s.repository.findById(ctx, id)
}

func (s Service) Delete(ctx context.Context, id uint) error {
	return s.repository.delete(ctx, id)
}

// untilNextExpiry returns the time until the first active event stops being active, zero if none
// will. The active and expired counts of a summary are only valid until then.
func untilNextExpiry(events []model.Event, now time.Time) time.Duration {
	var next time.Duration
	for _, e := range events {
		if !visibility.IsActive(e, now) || e.AvailableUntil == "" {
			continue
		}
		until, ok := model.ParseLocal(e.AvailableUntil, now.Location())
		if !ok {
			continue
		}
		if d := until.Sub(now); next == 0 || d < next {
			next = d
		}
	}
	return next
}
