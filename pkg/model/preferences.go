package model

import (
	"encoding/json"
	"strings"
)

// Preferences are the dietary settings of a user. Highlight flags only decorate events, avoid flags
// hide them.
type Preferences struct {
	HighlightVeg   bool `json:"highlightVeg"`
	HighlightVegan bool `json:"highlightVegan"`
	AvoidNuts      bool `json:"avoidNuts"`
	AvoidGluten    bool `json:"avoidGluten"`
	AvoidDairy     bool `json:"avoidDairy"`
}

// Flag names as used on the wire and by the preferences screen.
const (
	FlagHighlightVeg   = "highlightVeg"
	FlagHighlightVegan = "highlightVegan"
	FlagAvoidNuts      = "avoidNuts"
	FlagAvoidGluten    = "avoidGluten"
	FlagAvoidDairy     = "avoidDairy"
)

// FlagNames lists every preference flag in display order.
var FlagNames = []string{FlagHighlightVeg, FlagHighlightVegan, FlagAvoidNuts, FlagAvoidGluten, FlagAvoidDairy}

// With returns a copy of p with the named flag set to value. ok is false for unknown flags.
func (p Preferences) With(flag string, value bool) (Preferences, bool) {
	switch flag {
	case FlagHighlightVeg:
		p.HighlightVeg = value
	case FlagHighlightVegan:
		p.HighlightVegan = value
	case FlagAvoidNuts:
		p.AvoidNuts = value
	case FlagAvoidGluten:
		p.AvoidGluten = value
	case FlagAvoidDairy:
		p.AvoidDairy = value
	default:
		return p, false
	}
	return p, true
}

// Encode renders the flags as the JSON string kept in User.DietaryPreferences.
func (p Preferences) Encode() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// ParseDietaryPreferences decodes the JSON string kept in User.DietaryPreferences. Only literal true
// values enable a flag; anything unreadable yields the zero value.
func ParseDietaryPreferences(s string) Preferences {
	var raw map[string]any
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return Preferences{}
	}

	var p Preferences
	for _, flag := range FlagNames {
		if v, ok := raw[flag].(bool); ok && v {
			p, _ = p.With(flag, true)
		}
	}
	return p
}

type NotificationType string

const (
	NotificationNone  NotificationType = "None"
	NotificationEmail NotificationType = "Email"
	NotificationSMS   NotificationType = "SMS"
	NotificationBoth  NotificationType = "Both"
)

// DefaultNotificationType is used until the user picks one.
const DefaultNotificationType = NotificationBoth

var NotificationTypes = []NotificationType{NotificationNone, NotificationEmail, NotificationSMS, NotificationBoth}

// ParseNotificationType matches s case-insensitively against the known notification types.
func ParseNotificationType(s string) (NotificationType, bool) {
	for _, t := range NotificationTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return "", false
}

// StoredPreferences is the blob persisted on the device: the flags plus the notification type.
type StoredPreferences struct {
	Preferences
	NotificationType NotificationType `json:"notificationType"`
}

// DefaultStoredPreferences is what a device without saved preferences starts with.
func DefaultStoredPreferences() StoredPreferences {
	return StoredPreferences{NotificationType: DefaultNotificationType}
}
