package post

import "github.com/cuff-app/cuff/pkg/model"

// swagger:parameters postCreate
type _ struct {
	// Create post request body parameter
	// in: body
	// required: true
	Body CreatePostRequest
}

// swagger:parameters updatePost
type _ struct {
	// Update post request body parameter
	// in: body
	// required: true
	Body UpdatePostRequest
}

// swagger:response Post
type _ struct {
	//in: body
	_ model.Post
}

// swagger:response Posts
type _ struct {
	//in: body
	_ []model.Post
}
