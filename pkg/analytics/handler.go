package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(service analyticsService) Handler {
	return Handler{service}
}

type Handler struct {
	service analyticsService
}

type analyticsService interface {
	Summary(ctx context.Context) (Summary, error)
	Create(ctx context.Context, metric *model.Metric) error
	FindAll(ctx context.Context) ([]model.Metric, error)
	FindById(ctx context.Context, id uint) (*model.Metric, error)
	Delete(ctx context.Context, id uint) error
}

// Summary of all posts for the admin dashboard
func (h Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

type CreateMetricRequest struct {
	MetricType string     `json:"metricType" binding:"required"`
	PostID     *uint      `json:"postId"`
	UserID     *uint      `json:"userId"`
	Location   string     `json:"location"`
	Timestamp  *time.Time `json:"timestamp"`
	Metadata   *string    `json:"metadata"`
}

func (h Handler) Create(c *gin.Context) {
	var request CreateMetricRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	metric := &model.Metric{
		MetricType: request.MetricType,
		PostID:     request.PostID,
		UserID:     request.UserID,
		Location:   request.Location,
		Timestamp:  request.Timestamp,
		Metadata:   request.Metadata,
	}
	if err := h.service.Create(c.Request.Context(), metric); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, metric)
}

func (h Handler) FindAll(c *gin.Context) {
	metrics, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, metrics)
}

func (h Handler) FindById(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	metric, err := h.service.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, metric)
}

func (h Handler) Delete(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
