package analytics

import (
	"slices"
	"time"

	"github.com/cuff-app/cuff/pkg/diet"
	"github.com/cuff-app/cuff/pkg/model"
	"github.com/cuff-app/cuff/pkg/visibility"
)

const topLocationsLimit = 3

// Summary is the admin dashboard overview of all events, filtered or not.
type Summary struct {
	TotalEvents     int             `json:"totalEvents"`
	ActiveEvents    int             `json:"activeEvents"`
	ExpiredEvents   int             `json:"expiredEvents"`
	UniqueLocations int             `json:"uniqueLocations"`
	TopLocations    []LocationCount `json:"topLocations"`
	DietaryCounts   DietaryCounts   `json:"dietaryCounts"`
	TimeBuckets     []TimeBucket    `json:"timeBuckets"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// DietaryCounts are independent keyword tallies, an event can count towards several of them.
type DietaryCounts struct {
	Vegan      int `json:"vegan"`
	Vegetarian int `json:"vegetarian"`
	GlutenFree int `json:"glutenFree"`
	NutFree    int `json:"nutFree"`
}

type TimeBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Bucket labels in display order.
const (
	BucketMorning   = "Morning (6–11am)"
	BucketMidday    = "Midday (11am–2pm)"
	BucketAfternoon = "Afternoon (2–5pm)"
	BucketEvening   = "Evening (5–9pm)"
	BucketLateNight = "Late night (9pm–6am)"
)

func emptyBuckets() []TimeBucket {
	return []TimeBucket{
		{Label: BucketMorning},
		{Label: BucketMidday},
		{Label: BucketAfternoon},
		{Label: BucketEvening},
		{Label: BucketLateNight},
	}
}

// EmptySummary is the snapshot shown before any events were loaded.
func EmptySummary() Summary {
	return Summary{
		TopLocations: []LocationCount{},
		TimeBuckets:  emptyBuckets(),
	}
}

// bucketForHour maps an hour of the day onto an index into the time buckets. The last bucket
// catches everything else, including events without a readable start time.
func bucketForHour(hour int) int {
	switch {
	case hour >= 6 && hour < 11:
		return 0
	case hour >= 11 && hour < 14:
		return 1
	case hour >= 14 && hour < 17:
		return 2
	case hour >= 17 && hour < 21:
		return 3
	default:
		return 4
	}
}

// Summarize computes the admin overview of events. Activity follows the same status and window
// rule as the home feed, preferences play no part.
func Summarize(events []model.Event, now time.Time) Summary {
	summary := EmptySummary()
	summary.TotalEvents = len(events)

	locationCounts := make(map[string]int)
	var locationOrder []string

	for _, e := range events {
		if visibility.IsActive(e, now) {
			summary.ActiveEvents++
		}

		if _, seen := locationCounts[e.Location]; !seen {
			locationOrder = append(locationOrder, e.Location)
		}
		locationCounts[e.Location]++

		text := diet.Text(e.Description, e.DietarySpecification)
		if diet.IsVegan(text) {
			summary.DietaryCounts.Vegan++
		}
		if diet.IsVegetarian(text) {
			summary.DietaryCounts.Vegetarian++
		}
		if diet.IsGlutenFree(text) {
			summary.DietaryCounts.GlutenFree++
		}
		if diet.IsNutFree(text) {
			summary.DietaryCounts.NutFree++
		}

		hour := -1
		if from, ok := model.ParseLocal(e.AvailableFrom, now.Location()); ok {
			hour = from.In(now.Location()).Hour()
		}
		summary.TimeBuckets[bucketForHour(hour)].Count++
	}

	summary.ExpiredEvents = summary.TotalEvents - summary.ActiveEvents
	summary.UniqueLocations = len(locationCounts)
	summary.TopLocations = topLocations(locationCounts, locationOrder)

	return summary
}

func topLocations(counts map[string]int, order []string) []LocationCount {
	locations := make([]LocationCount, len(order))
	for i, location := range order {
		locations[i] = LocationCount{Location: location, Count: counts[location]}
	}

	slices.SortStableFunc(locations, func(a, b LocationCount) int {
		return b.Count - a.Count
	})

	if len(locations) > topLocationsLimit {
		locations = locations[:topLocationsLimit]
	}
	return locations
}
