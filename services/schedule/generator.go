// Package schedule expands weekly slot patterns into dated class occurrences
// for the remainder of the current calendar month. Everything here is a pure
// function of its inputs so plan previews can be recomputed from scratch on
// every pattern change.
package schedule

import (
	"fmt"
	"sort"
	"time"

	"tutorly/models"
)

const dateLayout = "2006-01-02"

// GenerateOccurrences expands each pattern into one occurrence per remaining
// weekly recurrence of its weekday, from referenceDate through month end.
// A pattern whose weekday does not recur again before month end contributes
// zero occurrences. Occurrences sharing the same ID across patterns are
// emitted once; the merged result is sorted ascending by DateTime.
func GenerateOccurrences(patterns []models.SlotPattern, referenceDate time.Time) []models.OccurrenceSlot {
	day := time.Date(referenceDate.Year(), referenceDate.Month(), referenceDate.Day(),
		0, 0, 0, 0, referenceDate.Location())

	seen := make(map[string]struct{})
	var occurrences []models.OccurrenceSlot

	for _, p := range patterns {
		hour, minute, err := parseClock(p.StartTime)
		if err != nil {
			continue
		}

		offset := (p.DayOfWeek - int(day.Weekday()) + 7) % 7
		for d := day.AddDate(0, 0, offset); sameMonth(d, day); d = d.AddDate(0, 0, 7) {
			id := occurrenceID(p.DayOfWeek, p.StartTime, d)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}

			start := time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, d.Location())
			occurrences = append(occurrences, models.OccurrenceSlot{
				ID:        id,
				Date:      d.Format(dateLayout),
				DateTime:  start.Format(time.RFC3339),
				StartTime: p.StartTime,
				EndTime:   p.EndTime,
				Hint:      models.ClientHint{Available: true},
			})
		}
	}

	sort.Slice(occurrences, func(i, j int) bool {
		if occurrences[i].DateTime != occurrences[j].DateTime {
			return occurrences[i].DateTime < occurrences[j].DateTime
		}
		return occurrences[i].ID < occurrences[j].ID
	})
	return occurrences
}

// GroupByWeek partitions occurrences into Monday-anchored week buckets.
// Sunday occurrences map to the previous Monday. Buckets are returned in
// ascending order of WeekStartDate and preserve the input slot order.
func GroupByWeek(occurrences []models.OccurrenceSlot) []models.WeekBucket {
	byWeek := make(map[string]*models.WeekBucket)
	var order []string

	for _, occ := range occurrences {
		date, err := time.Parse(dateLayout, occ.Date)
		if err != nil {
			continue
		}
		key := mondayOf(date).Format(dateLayout)

		bucket, ok := byWeek[key]
		if !ok {
			bucket = &models.WeekBucket{WeekStartDate: key}
			byWeek[key] = bucket
			order = append(order, key)
		}
		bucket.Slots = append(bucket.Slots, occ)
		bucket.TotalSlots = len(bucket.Slots)
	}

	sort.Strings(order)
	buckets := make([]models.WeekBucket, 0, len(order))
	for _, key := range order {
		buckets = append(buckets, *byWeek[key])
	}
	return buckets
}

// ComputeCost prices a plan: slot count times the per-slot unit price. The
// unit price is a policy value taken from configuration, not a constant.
func ComputeCost(totalSlots int, unitPrice float64) float64 {
	return float64(totalSlots) * unitPrice
}

// BuildPlan runs the full generation pipeline for a pattern set and returns
// the review-stage preview: occurrences, week breakdown, totals and the
// generation window (referenceDate through the end of its month).
func BuildPlan(patterns []models.SlotPattern, referenceDate time.Time, unitPrice float64) models.PlanPreview {
	occurrences := GenerateOccurrences(patterns, referenceDate)
	buckets := GroupByWeek(occurrences)

	monthEnd := time.Date(referenceDate.Year(), referenceDate.Month(), 1,
		0, 0, 0, 0, referenceDate.Location()).AddDate(0, 1, -1)

	return models.PlanPreview{
		Occurrences:   occurrences,
		WeekBreakdown: buckets,
		TotalSlots:    len(occurrences),
		TotalCost:     ComputeCost(len(occurrences), unitPrice),
		StartDate:     referenceDate.Format(dateLayout),
		EndDate:       monthEnd.Format(dateLayout),
	}
}

// occurrenceID is deterministic over (dayOfWeek, startTime, date) so that
// regeneration from identical inputs yields identical identities.
func occurrenceID(dayOfWeek int, startTime string, date time.Time) string {
	return fmt.Sprintf("%d-%s-%s", dayOfWeek, startTime, date.Format(dateLayout))
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

func mondayOf(date time.Time) time.Time {
	wd := int(date.Weekday())
	if wd == 0 { // Sunday closes the week
		return date.AddDate(0, 0, -6)
	}
	return date.AddDate(0, 0, -(wd - 1))
}

func parseClock(value string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}
