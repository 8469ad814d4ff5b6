package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tutorly/models"
)

// ErrSessionNotFound is returned when a session ID resolves to nothing,
// either because it never existed or because its TTL lapsed.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ErrSubmissionInFlight is returned when a submit arrives while a previous
// submit for the same session has not finished. The duplicate is rejected,
// never queued.
var ErrSubmissionInFlight = errors.New("a submission is already in progress for this session")

// WorkflowError is a recoverable, user-visible rejection of a workflow
// operation. It never indicates a transport or server fault.
type WorkflowError struct {
	Code    string
	Message string
}

func (e *WorkflowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &WorkflowError{Code: "validationError", Message: msg}
}

func NewCapacityError() error {
	return &WorkflowError{
		Code:    "capacityExceeded",
		Message: fmt.Sprintf("you can select at most %d weekly patterns per plan", models.MaxPatterns),
	}
}

func NewOverlapError(dayOfWeek int, startTime string) error {
	return &WorkflowError{
		Code:    "overlappingPattern",
		Message: fmt.Sprintf("a pattern for %s at %s is already selected", WeekdayName(dayOfWeek), startTime),
	}
}

func NewStageError(op, stage string) error {
	return &WorkflowError{
		Code:    "invalidStage",
		Message: fmt.Sprintf("%s is not allowed while the booking is in the %q stage", op, stage),
	}
}

// AvailabilityError reports an application-level rejection from the
// reservation API: some of the requested day/time combinations could not be
// held. The rest of the plan remains valid and the session stays in review.
type AvailabilityError struct {
	FailedSlots []models.FailedSlot
}

func (e *AvailabilityError) Error() string {
	parts := make([]string, 0, len(e.FailedSlots))
	for _, fs := range e.FailedSlots {
		part := fmt.Sprintf("%s %s", WeekdayName(fs.DayOfWeek), fs.Time)
		if fs.Reason != "" {
			part += fmt.Sprintf(" (%s)", fs.Reason)
		}
		parts = append(parts, part)
	}
	return fmt.Sprintf("the following times are unavailable: %s", strings.Join(parts, ", "))
}

// WeekdayName renders a 0-6 weekday index (0 = Sunday) for user-facing
// messages.
func WeekdayName(dayOfWeek int) string {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return fmt.Sprintf("day %d", dayOfWeek)
	}
	return time.Weekday(dayOfWeek).String()
}
