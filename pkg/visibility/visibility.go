// Package visibility decides which posted events a user gets to see and in which order.
//
// An event is admitted when it is active and does not contain an allergen the user avoids:
//
//  1. status is empty or "active" (any case)
//  2. availableUntil is empty, unparseable or strictly after now
//  3. every enabled avoidance check passes
//
// Malformed timestamps never hide an event. Timestamps without zone are read in the location of
// the now argument.
package visibility

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/cuff-app/cuff/pkg/diet"
	"github.com/cuff-app/cuff/pkg/model"
)

const (
	BadgeVegetarian = "Vegetarian option"
	BadgeVegan      = "Vegan option"
)

// Item is a visible event together with its highlight badges.
type Item struct {
	model.Event
	Badges []string `json:"badges"`
}

// IsActive applies the status and window checks.
func IsActive(e model.Event, now time.Time) bool {
	if !statusActive(e.Status) {
		return false
	}
	active, _ := window(e, now)
	return active
}

// MalformedWindow reports whether the event has an availableUntil value that can't be parsed in
// loc. Such events stay active, callers log them.
func MalformedWindow(e model.Event, loc *time.Location) bool {
	if e.AvailableUntil == "" {
		return false
	}
	_, ok := model.ParseLocal(e.AvailableUntil, loc)
	return !ok
}

func statusActive(status string) bool {
	return status == "" || strings.EqualFold(status, model.StatusActive)
}

// window returns whether the event is still available and whether availableUntil was malformed.
func window(e model.Event, now time.Time) (bool, bool) {
	if e.AvailableUntil == "" {
		return true, false
	}
	until, ok := model.ParseLocal(e.AvailableUntil, now.Location())
	if !ok {
		return true, true
	}
	return until.After(now), false
}

// Safe reports whether the event passes every avoidance check enabled in prefs.
func Safe(e model.Event, prefs model.Preferences) bool {
	text := diet.Text(e.Description, e.DietarySpecification)

	if prefs.AvoidGluten && diet.ContainsGluten(text) {
		return false
	}
	if prefs.AvoidDairy && diet.ContainsDairy(text) {
		return false
	}
	if prefs.AvoidNuts && diet.ContainsNuts(text) {
		return false
	}
	return true
}

// Admit runs the full admission pipeline for a single event.
func Admit(e model.Event, prefs model.Preferences, now time.Time) bool {
	return IsActive(e, now) && Safe(e, prefs)
}

// Visible returns the admitted events sorted by availableFrom. Events starting at the same time keep
// their relative order and events with an unparseable availableFrom go last.
func Visible(events []model.Event, prefs model.Preferences, now time.Time) []model.Event {
	type keyed struct {
		event model.Event
		from  time.Time
		ok    bool
	}

	admitted := make([]keyed, 0, len(events))
	for _, e := range events {
		if !Admit(e, prefs, now) {
			continue
		}
		from, ok := model.ParseLocal(e.AvailableFrom, now.Location())
		admitted = append(admitted, keyed{event: e, from: from, ok: ok})
	}

	slices.SortStableFunc(admitted, func(a, b keyed) int {
		switch {
		case a.ok && b.ok:
			return a.from.Compare(b.from)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})

	visible := make([]model.Event, len(admitted))
	for i, k := range admitted {
		visible[i] = k.event
	}
	return visible
}

// Badges lists the highlight badges of an event. They never affect admission.
func Badges(e model.Event, prefs model.Preferences) []string {
	text := diet.Text(e.Description, e.DietarySpecification)

	var badges []string
	if prefs.HighlightVeg && diet.IsVegetarian(text) {
		badges = append(badges, BadgeVegetarian)
	}
	if prefs.HighlightVegan && diet.IsVegan(text) {
		badges = append(badges, BadgeVegan)
	}
	return badges
}

// Build returns the visible events with their badges attached.
func Build(events []model.Event, prefs model.Preferences, now time.Time) []Item {
	visible := Visible(events, prefs, now)
	items := make([]Item, len(visible))
	for i, e := range visible {
		items[i] = Item{Event: e, Badges: Badges(e, prefs)}
	}
	return items
}

// HiddenFor summarizes the enabled avoidance flags, e.g. "no nuts, no dairy", or "None".
func HiddenFor(prefs model.Preferences) string {
	var hidden []string
	if prefs.AvoidNuts {
		hidden = append(hidden, "no nuts")
	}
	if prefs.AvoidGluten {
		hidden = append(hidden, "no gluten")
	}
	if prefs.AvoidDairy {
		hidden = append(hidden, "no dairy")
	}
	return cmp.Or(strings.Join(hidden, ", "), "None")
}
