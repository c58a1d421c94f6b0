package model

import "time"

// User is a CUFF account. Identity is owned by an external provider, the record only carries what
// CUFF needs: the admin role and the saved preferences.
type User struct {
	ID                   uint      `gorm:"primarykey" json:"id"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	Email                string    `gorm:"index;unique" json:"email"`
	FirstName            string    `json:"firstName,omitempty"`
	LastName             string    `json:"lastName,omitempty"`
	Password             string    `json:"-"`
	NotificationType     string    `json:"notificationType,omitempty"`
	DietaryPreferences   string    `json:"dietaryPreferences,omitempty"`
	IsAdmin              bool      `gorm:"column:is_admin;default:false" json:"isAdmin"`
	NotificationsEnabled bool      `json:"notificationsEnabled"`
}

// Preferences decodes the dietary preferences saved with the user.
func (u *User) Preferences() Preferences {
	if u == nil {
		return Preferences{}
	}
	return ParseDietaryPreferences(u.DietaryPreferences)
}
