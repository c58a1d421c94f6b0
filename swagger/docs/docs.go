// Package docs holds swagger definitions shared by several routes.
package docs

// swagger:parameters findPostById updatePost deletePost userFeed
type _ struct {
	// Post or user id, ids start at 1
	// in: path
	// required: true
	ID uint `json:"id"`
}

// Plain text description of what went wrong. Internal errors only carry the correlation id.
// swagger:response Error
type _ struct {
	// in: body
	Body string
}
