package post

import (
	"context"
	"net/http"

	"github.com/cuff-app/cuff/internal/handler"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/gin-gonic/gin"
)

func NewHandler(postService postService) Handler {
	return Handler{postService}
}

type Handler struct {
	postService postService
}

type postService interface {
	Create(ctx context.Context, post *model.Post) error
	FindById(ctx context.Context, id uint) (*model.Post, error)
	FindActive(ctx context.Context) ([]model.Post, error)
	Update(ctx context.Context, id uint, update model.Post) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type CreatePostRequest struct {
	Title                string           `json:"title" binding:"required"`
	Location             string           `json:"location"`
	Description          string           `json:"description"`
	DietarySpecification string           `json:"dietarySpecification"`
	AvailableFrom        model.LocalTime  `json:"availableFrom"`
	AvailableUntil       *model.LocalTime `json:"availableUntil"`
	ImageURL             string           `json:"imageUrl"`
	UserID               uint             `json:"userId" binding:"required"`
}

// Create post
func (h Handler) Create(c *gin.Context) {
	// swagger:route POST /posts postCreate
	//
	// Create post
	//
	// Create a leftover food post. Only administrators can post, subscribers of the event stream and users with notifications enabled are told about the new post.
	//
	// responses:
	//   201: Post
	//   400: Error
	//   403: Error
	//   415: Error
	var request CreatePostRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	post := &model.Post{
		UserID:               request.UserID,
		Title:                request.Title,
		Location:             request.Location,
		Description:          request.Description,
		DietarySpecification: request.DietarySpecification,
		AvailableFrom:        request.AvailableFrom,
		AvailableUntil:       request.AvailableUntil,
		ImageURL:             request.ImageURL,
	}
	if err := h.postService.Create(c.Request.Context(), post); err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// FindActive returns all active posts, newest first
func (h Handler) FindActive(c *gin.Context) {
	// swagger:route GET /posts findActivePosts
	//
	// Find active posts
	//
	// Find all active posts, newest first.
	//
	// responses:
	//   200: Posts
	posts, err := h.postService.FindActive(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h Handler) FindById(c *gin.Context) {
	// swagger:route GET /posts/{id} findPostById
	//
	// Find post
	//
	// Find a post by its id.
	//
	// responses:
	//   200: Post
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.FindById(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, post)
}

type UpdatePostRequest struct {
	Title                string           `json:"title" binding:"required"`
	Location             string           `json:"location"`
	Description          string           `json:"description"`
	DietarySpecification string           `json:"dietarySpecification"`
	AvailableFrom        model.LocalTime  `json:"availableFrom"`
	AvailableUntil       *model.LocalTime `json:"availableUntil"`
	ImageURL             string           `json:"imageUrl"`
	Status               string           `json:"status" binding:"omitempty,oneOf=active expired deleted"`
}

func (h Handler) Update(c *gin.Context) {
	// swagger:route PUT /posts/{id} updatePost
	//
	// Update post
	//
	// Replace the content, time window and status of a post.
	//
	// responses:
	//   200: Post
	//   400: Error
	//   404: Error
	//   415: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	var request UpdatePostRequest
	if err := handler.DataBinder(c, &request); err != nil {
		_ = c.Error(err)
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, model.Post{
		Title:                request.Title,
		Location:             request.Location,
		Description:          request.Description,
		DietarySpecification: request.DietarySpecification,
		AvailableFrom:        request.AvailableFrom,
		AvailableUntil:       request.AvailableUntil,
		ImageURL:             request.ImageURL,
		Status:               request.Status,
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// Delete soft deletes a post
func (h Handler) Delete(c *gin.Context) {
	// swagger:route DELETE /posts/{id} deletePost
	//
	// Delete post
	//
	// Mark a post as deleted. It stays in the database but is no longer listed or counted in analytics.
	//
	// responses:
	//   204:
	//   400: Error
	//   404: Error
	id, ok := handler.GetPathParameter(c, "id")
	if !ok {
		return
	}

	if err := h.postService.Delete(c.Request.Context(), id); err != nil {
		_ = c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
