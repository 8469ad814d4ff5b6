package booking

import (
	"context"
	"time"

	"tutorly/database/repository"
	"tutorly/models"
	"tutorly/services/reservation"
	"tutorly/services/tasks"
)

// WorkflowService drives one monthly booking attempt through its stages:
// select (patterns mutable) -> review (plan frozen for inspection) ->
// confirming (reservation held, payment outstanding) -> succeeded.
type WorkflowService interface {
	InitiateSession(ctx context.Context, studentID, tutorID, subjectID, languageID string) (*models.BookingSession, error)
	GetSession(ctx context.Context, sessionID string) (*models.BookingSession, *models.PlanPreview, error)

	AddPattern(ctx context.Context, sessionID string, dayOfWeek int, startTime, endTime string) (*models.BookingSession, *models.PlanPreview, error)
	RemovePattern(ctx context.Context, sessionID, patternID string) (*models.BookingSession, *models.PlanPreview, error)

	Review(ctx context.Context, sessionID string) (*models.BookingSession, *models.PlanPreview, error)
	BackToSelect(ctx context.Context, sessionID string) (*models.BookingSession, error)

	Submit(ctx context.Context, sessionID string) (*models.BookingSession, error)
	ConfirmPayment(ctx context.Context, sessionID, method string) (*models.MonthlyClassBooking, *models.Invoice, error)
	CancelSubmission(ctx context.Context, sessionID string) (*models.BookingSession, error)

	// ExpireHold is invoked by the background worker when a submitted plan's
	// payment hold lapses.
	ExpireHold(ctx context.Context, sessionID, holdID string) error
}

// DefaultWorkflowService implements WorkflowService.
type DefaultWorkflowService struct {
	Sessions     SessionStore
	Reservations reservation.Client
	Payments     PaymentHandler
	Repo         repository.BookingRepository
	Notifier     Notifier
	Holds        tasks.HoldScheduler

	UnitPrice float64
	Currency  string
	HoldTTL   time.Duration

	// Now is the clock used for occurrence generation and hold deadlines.
	// Defaults to time.Now.
	Now func() time.Time
}

func (s *DefaultWorkflowService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
