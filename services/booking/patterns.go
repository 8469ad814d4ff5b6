package booking

import (
	"fmt"
	"time"

	"tutorly/models"

	"github.com/google/uuid"
)

// appendPattern validates and adds one weekly pattern to the session's
// selection. At most models.MaxPatterns patterns may be active, and two
// patterns may not share the same weekday and start time: occurrence
// identity is keyed on (dayOfWeek, startTime, date), so such a pair would
// collapse into duplicate occurrences.
func appendPattern(session *models.BookingSession, dayOfWeek int, startTime, endTime string) (models.SlotPattern, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return models.SlotPattern{}, NewValidationError(fmt.Sprintf("day of week must be 0-6, got %d", dayOfWeek))
	}
	start, err := time.Parse("15:04", startTime)
	if err != nil {
		return models.SlotPattern{}, NewValidationError(fmt.Sprintf("invalid start time %q, expected HH:MM", startTime))
	}
	end, err := time.Parse("15:04", endTime)
	if err != nil {
		return models.SlotPattern{}, NewValidationError(fmt.Sprintf("invalid end time %q, expected HH:MM", endTime))
	}
	if !end.After(start) {
		return models.SlotPattern{}, NewValidationError("end time must be after start time")
	}

	if len(session.Patterns) >= models.MaxPatterns {
		return models.SlotPattern{}, NewCapacityError()
	}
	for _, p := range session.Patterns {
		if p.DayOfWeek == dayOfWeek && p.StartTime == startTime {
			return models.SlotPattern{}, NewOverlapError(dayOfWeek, startTime)
		}
	}

	pattern := models.SlotPattern{
		ID:        uuid.New().String(),
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}
	session.Patterns = append(session.Patterns, pattern)
	return pattern, nil
}

// dropPattern removes a pattern by ID. Removing an absent ID is a no-op.
func dropPattern(session *models.BookingSession, patternID string) {
	for i, p := range session.Patterns {
		if p.ID == patternID {
			session.Patterns = append(session.Patterns[:i], session.Patterns[i+1:]...)
			return
		}
	}
}
