package user

import (
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
)

// swagger:parameters userCreate
type _ struct {
	// Create user request body parameter
	// in: body
	// required: true
	Body CreateUserRequest
}

// swagger:parameters findUserByEmail
type _ struct {
	// in: query
	// required: true
	Email string `json:"email"`
}

// swagger:parameters updatePreferences
type _ struct {
	// in: path
	// required: true
	UserID uint `json:"userId"`

	// Update preferences request body parameter
	// in: body
	// required: true
	Body UpdatePreferencesRequest
}

// swagger:response User
type _ struct {
	//in: body
	_ model.User
}

// swagger:response FeedItems
type _ struct {
	//in: body
	_ []visibility.Item
}
