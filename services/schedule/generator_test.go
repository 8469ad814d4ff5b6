package schedule

import (
	"testing"
	"time"

	"tutorly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Friday 2024-03-15, 09:00 UTC.
var midMarch = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

func fridayPattern() models.SlotPattern {
	return models.SlotPattern{ID: "p1", DayOfWeek: 5, StartTime: "10:00", EndTime: "11:00"}
}

func TestGenerateOccurrences(t *testing.T) {
	t.Run("Remaining Fridays Of March", func(t *testing.T) {
		occurrences := GenerateOccurrences([]models.SlotPattern{fridayPattern()}, midMarch)

		require.Len(t, occurrences, 3)
		assert.Equal(t, "2024-03-15", occurrences[0].Date)
		assert.Equal(t, "2024-03-22", occurrences[1].Date)
		assert.Equal(t, "2024-03-29", occurrences[2].Date)
		assert.Equal(t, "5-10:00-2024-03-15", occurrences[0].ID)
		assert.Equal(t, "10:00", occurrences[0].StartTime)
		assert.Equal(t, "11:00", occurrences[0].EndTime)
	})

	t.Run("Is Idempotent", func(t *testing.T) {
		patterns := []models.SlotPattern{
			fridayPattern(),
			{ID: "p2", DayOfWeek: 1, StartTime: "08:30", EndTime: "09:30"},
		}

		first := GenerateOccurrences(patterns, midMarch)
		second := GenerateOccurrences(patterns, midMarch)

		assert.Equal(t, first, second, "identical inputs must yield identical output")
	})

	t.Run("Bounded To Reference Month", func(t *testing.T) {
		patterns := []models.SlotPattern{
			{ID: "p1", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
			{ID: "p2", DayOfWeek: 3, StartTime: "14:00", EndTime: "15:00"},
			{ID: "p3", DayOfWeek: 6, StartTime: "09:00", EndTime: "10:00"},
		}

		for _, occ := range GenerateOccurrences(patterns, midMarch) {
			date, err := time.Parse("2006-01-02", occ.Date)
			require.NoError(t, err)
			assert.Equal(t, time.March, date.Month())
			assert.Equal(t, 2024, date.Year())
			assert.False(t, date.Before(midMarch.Truncate(24*time.Hour)))
		}
	})

	t.Run("Late Month Weekday Yields Nothing", func(t *testing.T) {
		// Saturday 2024-03-30: no Friday remains in March.
		lateMarch := time.Date(2024, time.March, 30, 12, 0, 0, 0, time.UTC)

		occurrences := GenerateOccurrences([]models.SlotPattern{fridayPattern()}, lateMarch)
		assert.Empty(t, occurrences)
	})

	t.Run("Deduplicates Colliding Patterns", func(t *testing.T) {
		colliding := []models.SlotPattern{
			fridayPattern(),
			{ID: "p2", DayOfWeek: 5, StartTime: "10:00", EndTime: "12:00"},
		}

		occurrences := GenerateOccurrences(colliding, midMarch)
		assert.Len(t, occurrences, 3, "same (day, start, date) must appear once")
	})

	t.Run("Merged Output Is Sorted", func(t *testing.T) {
		patterns := []models.SlotPattern{
			{ID: "p1", DayOfWeek: 5, StartTime: "16:00", EndTime: "17:00"},
			{ID: "p2", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
		}

		occurrences := GenerateOccurrences(patterns, midMarch)
		require.NotEmpty(t, occurrences)
		for i := 1; i < len(occurrences); i++ {
			assert.LessOrEqual(t, occurrences[i-1].DateTime, occurrences[i].DateTime)
		}
	})
}

func TestGroupByWeek(t *testing.T) {
	t.Run("Three Fridays Three Buckets", func(t *testing.T) {
		occurrences := GenerateOccurrences([]models.SlotPattern{fridayPattern()}, midMarch)
		buckets := GroupByWeek(occurrences)

		require.Len(t, buckets, 3)
		assert.Equal(t, "2024-03-11", buckets[0].WeekStartDate)
		assert.Equal(t, "2024-03-18", buckets[1].WeekStartDate)
		assert.Equal(t, "2024-03-25", buckets[2].WeekStartDate)
		for _, b := range buckets {
			assert.Equal(t, len(b.Slots), b.TotalSlots)
		}
	})

	t.Run("Sunday Maps To Previous Monday", func(t *testing.T) {
		sunday := []models.SlotPattern{{ID: "p1", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"}}
		occurrences := GenerateOccurrences(sunday, midMarch)

		buckets := GroupByWeek(occurrences)
		require.NotEmpty(t, buckets)
		// 2024-03-17 is the first remaining Sunday; its week began Monday the 11th.
		assert.Equal(t, "2024-03-11", buckets[0].WeekStartDate)
	})

	t.Run("Buckets Partition All Occurrences", func(t *testing.T) {
		patterns := []models.SlotPattern{
			{ID: "p1", DayOfWeek: 0, StartTime: "10:00", EndTime: "11:00"},
			{ID: "p2", DayOfWeek: 2, StartTime: "12:00", EndTime: "13:00"},
			{ID: "p3", DayOfWeek: 4, StartTime: "15:00", EndTime: "16:00"},
			{ID: "p4", DayOfWeek: 6, StartTime: "18:00", EndTime: "19:00"},
		}
		occurrences := GenerateOccurrences(patterns, midMarch)
		buckets := GroupByWeek(occurrences)

		total := 0
		seen := make(map[string]bool)
		for _, b := range buckets {
			total += b.TotalSlots
			for _, slot := range b.Slots {
				assert.False(t, seen[slot.ID], "slot %s appears in more than one bucket", slot.ID)
				seen[slot.ID] = true
			}
		}
		assert.Equal(t, len(occurrences), total)
	})

	t.Run("Buckets Are Chronological", func(t *testing.T) {
		patterns := []models.SlotPattern{
			{ID: "p1", DayOfWeek: 6, StartTime: "18:00", EndTime: "19:00"},
			{ID: "p2", DayOfWeek: 1, StartTime: "08:00", EndTime: "09:00"},
		}
		buckets := GroupByWeek(GenerateOccurrences(patterns, midMarch))
		for i := 1; i < len(buckets); i++ {
			assert.Less(t, buckets[i-1].WeekStartDate, buckets[i].WeekStartDate)
		}
	})
}

func TestComputeCost(t *testing.T) {
	assert.Equal(t, 0.0, ComputeCost(0, 12.0))
	assert.Equal(t, 36.0, ComputeCost(3, 12.0))
	assert.Equal(t, 62.5, ComputeCost(5, 12.5))
}

func TestBuildPlan(t *testing.T) {
	preview := BuildPlan([]models.SlotPattern{fridayPattern()}, midMarch, 12.0)

	assert.Equal(t, 3, preview.TotalSlots)
	assert.Equal(t, 36.0, preview.TotalCost)
	assert.Equal(t, "2024-03-15", preview.StartDate)
	assert.Equal(t, "2024-03-31", preview.EndDate)
	assert.Len(t, preview.WeekBreakdown, 3)
}
