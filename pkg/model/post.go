package model

import "time"

const (
	StatusActive  = "active"
	StatusDeleted = "deleted"
)

// Post is a leftover food posting as persisted by the backend.
type Post struct {
	ID                   uint       `gorm:"primarykey" json:"id"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
	UserID               uint       `gorm:"index" json:"userId"`
	Title                string     `json:"title"`
	Location             string     `gorm:"index" json:"location"`
	Description          string     `json:"description"`
	DietarySpecification string     `json:"dietarySpecification"`
	AvailableFrom        LocalTime  `json:"availableFrom"`
	AvailableUntil       *LocalTime `json:"availableUntil"`
	ImageURL             string     `json:"imageUrl,omitempty"`
	Status               string     `gorm:"index;default:active" json:"status"`
}

// Event converts the post into the record shape the app consumes.
func (p Post) Event() Event {
	e := Event{
		ID:                   p.ID,
		UserID:               p.UserID,
		Title:                p.Title,
		Location:             p.Location,
		Description:          p.Description,
		DietarySpecification: p.DietarySpecification,
		Status:               p.Status,
		ImageURL:             p.ImageURL,
	}
	if !p.AvailableFrom.IsZero() {
		e.AvailableFrom = FormatLocal(p.AvailableFrom.Time)
	}
	if p.AvailableUntil != nil && !p.AvailableUntil.IsZero() {
		e.AvailableUntil = FormatLocal(p.AvailableUntil.Time)
	}
	return e
}

// Events converts posts preserving their order.
func Events(posts []Post) []Event {
	events := make([]Event, len(posts))
	for i, p := range posts {
		events[i] = p.Event()
	}
	return events
}
