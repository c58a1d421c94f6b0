package model

// Event is a posted food availability window as the app receives it. Timestamps are kept as the
// raw strings sent over the wire so malformed values survive decoding and can be judged by the
// visibility rules instead of failing the whole fetch.
type Event struct {
	ID                   uint   `json:"id"`
	UserID               uint   `json:"userId,omitempty"`
	Title                string `json:"title"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	DietarySpecification string `json:"dietarySpecification,omitempty"`
	AvailableFrom        string `json:"availableFrom"`
	AvailableUntil       string `json:"availableUntil"`
	Status               string `json:"status,omitempty"`
	ImageURL             string `json:"imageUrl,omitempty"`
}

// EventPayload is the body sent when an admin creates a post.
type EventPayload struct {
	Title                string `json:"title"`
	Location             string `json:"location"`
	Description          string `json:"description"`
	DietarySpecification string `json:"dietarySpecification,omitempty"`
	AvailableFrom        string `json:"availableFrom"`
	AvailableUntil       string `json:"availableUntil"`
	ImageURL             string `json:"imageUrl,omitempty"`
	UserID               uint   `json:"userId"`
}
