package notification

import (
	"context"
	"net/http"
	"time"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(service notificationService) Handler {
	return Handler{service}
}

type Handler struct {
	service notificationService
}

type notificationService interface {
	Create(ctx context.Context, notification *model.Notification) error
	FindAll(ctx context.Context) ([]model.Notification, error)
	FindById(ctx context.Context, id uint) (*model.Notification, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Notification, error)
	Delete(ctx context.Context, id uint) error
}

type CreateNotificationRequest struct {
	PostID           uint       `json:"postId" binding:"required"`
	UserID           uint       `json:"userId" binding:"required"`
	NotificationType string     `json:"notificationType" binding:"required,oneOf=None Email SMS Both"`
	MessageContent   *string    `json:"messageContent"`
	SentAt           *time.Time `json:"sentAt"`
	Status           *string    `json:"status" binding:"omitempty,oneOf=pending sent"`
}

func (h Handler) Create(c *gin.Context) {
	var request CreateNotificationRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	notification := &model.Notification{
		PostID:           request.PostID,
		UserID:           request.UserID,
		NotificationType: request.NotificationType,
		MessageContent:   request.MessageContent,
		SentAt:           request.SentAt,
		Status:           request.Status,
	}
	if err := h.service.Create(c.Request.Context(), notification); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, notification)
}

func (h Handler) FindAll(c *gin.Context) {
	notifications, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h Handler) FindById(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	notification, err := h.service.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, notification)
}

// FindByUser returns the notifications of a user, newest first
func (h Handler) FindByUser(c *gin.Context) {
	userID, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	notifications, err := h.service.FindByUser(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, notifications)
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
