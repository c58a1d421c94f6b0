package user

import (
	"context"
	"net/http"
	"time"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
	"github.com/gin-gonic/gin"
)

func NewHandler(userService userService, postService postService, location *time.Location) Handler {
	return Handler{
		userService: userService,
		postService: postService,
		location:    location,
		now:         time.Now,
	}
}

type Handler struct {
	userService userService
	postService postService
	location    *time.Location
	now         func() time.Time
}

type userService interface {
	Create(ctx context.Context, user *model.User, password string) (*model.User, error)
	FindAll(ctx context.Context) ([]*model.User, error)
	FindById(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Delete(ctx context.Context, id uint) error
	UpdatePreferences(ctx context.Context, id uint, notificationType string, dietaryPreferences string) (*model.User, error)
}

type postService interface {
	FindActive(ctx context.Context) ([]model.Post, error)
}

type CreateUserRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Password         string `json:"password" binding:"required,gte=8,lte=128"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	NotificationType string `json:"notificationType" binding:"omitempty,oneOf=None Email SMS Both"`
	IsAdmin          bool   `json:"isAdmin"`
}

// Create user
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /users userCreate
	//
	// Create user
	//
	// Register a CUFF user. New users get notified about every post until they change their preferences.
	//
	// responses:
	//   201: User
	//   400: Error
	//   409: Error
	//   415: Error
	var request CreateUserRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user := &model.User{
		Email:            request.Email,
		FirstName:        request.FirstName,
		LastName:         request.LastName,
		NotificationType: request.NotificationType,
		IsAdmin:          request.IsAdmin,
	}
	user, err := h.userService.Create(c.Request.Context(), user, request.Password)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h Handler) FindAll(c *gin.Context) {
	users, err := h.userService.FindAll(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// FindById user
func (h Handler) FindById(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// FindByEmail looks a user up by the email query parameter
func (h Handler) FindByEmail(c *gin.Context) {
	// swagger:route GET /users/by-email findUserByEmail
	//
	// Find user by email
	//
	// responses:
	//   200: User
	//   400: Error
	//   404: Error
	email, ok := handler.GetRequiredQuery(c, "email")
	if !ok {
		return
	}

	user, err := h.userService.FindByEmail(c.Request.Context(), email)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h Handler) Delete(c *gin.Context) {
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

type UpdatePreferencesRequest struct {
	NotificationType   string `json:"notificationType" binding:"required,oneOf=None Email SMS Both"`
	DietaryPreferences string `json:"dietaryPreferences" binding:"required"`
}

// UpdatePreferences replaces the notification and dietary preferences of a user
func (h Handler) UpdatePreferences(c *gin.Context) {
	// swagger:route PUT /users/preferences/{userId} updatePreferences
	//
	// Update preferences
	//
	// Replace the notification type and dietary preferences of a user. dietaryPreferences is a JSON encoded object of boolean flags.
	//
	// responses:
	//   200: User
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "userId")
	if !ok {
		return
	}

	var request UpdatePreferencesRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), id, request.NotificationType, request.DietaryPreferences)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// Feed returns the active posts visible to the user given their dietary preferences, earliest
// first and with highlight badges
func (h Handler) Feed(c *gin.Context) {
	// swagger:route GET /users/{id}/feed userFeed
	//
	// Feed
	//
	// Active posts the user gets to see given their dietary preferences, earliest first.
	//
	// responses:
	//   200: FeedItems
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	user, err := h.userService.FindById(ctx, id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	posts, err := h.postService.FindActive(ctx)
	if err != nil {
		_ = c.Error(err)
		return
	}

	items := visibility.Build(model.Events(posts), user.Preferences(), h.now().In(h.location))
	c.JSON(http.StatusOK, items)
}
