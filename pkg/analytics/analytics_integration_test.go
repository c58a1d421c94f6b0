package analytics_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/cuff-app/cuff/pkg/analytics"
	"github.com/cuff-app/cuff/pkg/event"
	"github.com/cuff-app/cuff/pkg/inttest"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/notification"
	"github.com/cuff-app/cuff/pkg/post"
	"github.com/cuff-app/cuff/pkg/user"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsHandler(t *testing.T) {
	t.Parallel()

	db := inttest.SetupDB(t)
	redisClient := inttest.SetupRedis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cache := analytics.NewCache(redisClient, time.Hour)
	userService := user.NewService(logger, user.NewRepository(db))
	notificationService := notification.NewService(logger, notification.NewRepository(db), userService)
	postService := post.NewService(logger, post.NewRepository(db), userService, event.NewEventBroker(), notificationService, cache)
	analyticsService := analytics.NewService(logger, analytics.NewRepository(db), postService, cache, time.Local)

	client := inttest.SetupHTTPServer(t, func(r gin.IRouter) {
		post.Routes(r, post.NewHandler(postService))
		analytics.Routes(r, analytics.NewHandler(analyticsService))
	})

	ctx := context.Background()
	admin, err := userService.EnsureAdmin(ctx, "admin@cuff.test", "administrator")
	require.NoError(t, err)

	createPost := func(t *testing.T, title, location, description string) model.Post {
		t.Helper()
		body := fmt.Sprintf(`{
			"title": %q,
			"location": %q,
			"description": %q,
			"availableFrom": "2026-03-02T12:30:00",
			"availableUntil": "2099-03-02T14:00:00",
			"userId": %d
		}`, title, location, description, admin.ID)
		var p model.Post
		client.PostJSON(t, "/posts", strings.NewReader(body), &p)
		return p
	}

	t.Run("Summary", func(t *testing.T) {
		var empty analytics.Summary
		client.GetJSON(t, "/analytics/summary", &empty)
		assert.Equal(t, 0, empty.TotalEvents)

		_, cached, err := cache.Get()
		require.NoError(t, err)
		require.True(t, cached, "summary should be cached after the first request")

		createPost(t, "Bagels", "UMC", "Vegan bagels")
		createPost(t, "Salad", "UMC", "Gluten-free salad")
		createPost(t, "Pizza", "Library", "Cheese pizza")
		gone := createPost(t, "Donuts", "Gym", "Glazed donuts")
		gym := createPost(t, "Muffins", "Gym", "Vegan muffins")
		gymAgain := createPost(t, "Cookies", "Gym", "Sugar cookies")
		client.Delete(t, fmt.Sprintf("/posts/%d", gone.ID))
		client.Delete(t, fmt.Sprintf("/posts/%d", gym.ID))
		client.Delete(t, fmt.Sprintf("/posts/%d", gymAgain.ID))

		// creating and deleting posts drops the stale summary, deleted posts aren't counted
		var summary analytics.Summary
		client.GetJSON(t, "/analytics/summary", &summary)
		assert.Equal(t, 3, summary.TotalEvents)
		assert.Equal(t, 3, summary.ActiveEvents)
		assert.Equal(t, 2, summary.UniqueLocations)
		assert.Equal(t, []analytics.LocationCount{{Location: "UMC", Count: 2}, {Location: "Library", Count: 1}}, summary.TopLocations)
		assert.Equal(t, 1, summary.DietaryCounts.Vegan)
		assert.Equal(t, 1, summary.DietaryCounts.GlutenFree)
		assert.Equal(t, 3, summary.TimeBuckets[1].Count)
	})

	t.Run("Metrics", func(t *testing.T) {
		body := strings.NewReader(`{"metricType": "post_view", "location": "UMC", "metadata": "{\"source\":\"feed\"}"}`)
		var metric model.Metric
		client.PostJSON(t, "/analytics", body, &metric)
		require.NotZero(t, metric.ID)
		require.NotNil(t, metric.Timestamp)

		var found model.Metric
		client.GetJSON(t, fmt.Sprintf("/analytics/%d", metric.ID), &found)
		assert.Equal(t, "post_view", found.MetricType)

		var all []model.Metric
		client.GetJSON(t, "/analytics", &all)
		assert.Len(t, all, 1)

		client.Delete(t, fmt.Sprintf("/analytics/%d", metric.ID))
		client.Expect(t, http.MethodGet, fmt.Sprintf("/analytics/%d", metric.ID), nil, http.StatusNotFound)
	})

	t.Run("MetricWithInvalidMetadata", func(t *testing.T) {
		body := strings.NewReader(`{"metricType": "post_view", "metadata": "not json"}`)
		client.Expect(t, http.MethodPost, "/analytics", body, http.StatusBadRequest)
	})
}
