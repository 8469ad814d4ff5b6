package booking

import (
	"context"
	"fmt"

	"tutorly/models"
	"tutorly/services/schedule"
	"tutorly/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// InitiateSession opens a new booking attempt in the select stage.
func (s *DefaultWorkflowService) InitiateSession(ctx context.Context, studentID, tutorID, subjectID, languageID string) (*models.BookingSession, error) {
	if studentID == "" || tutorID == "" || subjectID == "" || languageID == "" {
		return nil, NewValidationError("studentId, tutorId, subjectId and languageId are required")
	}

	session := &models.BookingSession{
		SessionID:  uuid.New().String(),
		Stage:      models.StageSelect,
		StudentID:  studentID,
		TutorID:    tutorID,
		SubjectID:  subjectID,
		LanguageID: languageID,
		UnitPrice:  s.UnitPrice,
		Currency:   s.Currency,
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("booking session initiated",
		zap.String("sessionID", session.SessionID),
		zap.String("studentID", studentID),
		zap.String("tutorID", tutorID))
	return session, nil
}

// GetSession returns the session and the plan preview generated from its
// current pattern set.
func (s *DefaultWorkflowService) GetSession(ctx context.Context, sessionID string) (*models.BookingSession, *models.PlanPreview, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	preview := s.preview(session)
	return session, preview, nil
}

// AddPattern adds one weekly pattern. Only allowed in the select stage.
func (s *DefaultWorkflowService) AddPattern(ctx context.Context, sessionID string, dayOfWeek int, startTime, endTime string) (*models.BookingSession, *models.PlanPreview, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Stage != models.StageSelect {
		return nil, nil, NewStageError("adding a pattern", session.Stage)
	}

	if _, err := appendPattern(session, dayOfWeek, startTime, endTime); err != nil {
		return nil, nil, err
	}
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, s.preview(session), nil
}

// RemovePattern drops a pattern by ID; an absent ID is a no-op.
func (s *DefaultWorkflowService) RemovePattern(ctx context.Context, sessionID, patternID string) (*models.BookingSession, *models.PlanPreview, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Stage != models.StageSelect {
		return nil, nil, NewStageError("removing a pattern", session.Stage)
	}

	dropPattern(session, patternID)
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, s.preview(session), nil
}

// Review freezes the pattern set and exposes the full week breakdown and
// total cost for inspection.
func (s *DefaultWorkflowService) Review(ctx context.Context, sessionID string) (*models.BookingSession, *models.PlanPreview, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Stage != models.StageSelect {
		return nil, nil, NewStageError("review", session.Stage)
	}

	session.Stage = models.StageReview
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, s.preview(session), nil
}

// BackToSelect reopens pattern selection. The existing patterns are kept.
func (s *DefaultWorkflowService) BackToSelect(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageReview {
		return nil, NewStageError("returning to selection", session.Stage)
	}

	session.Stage = models.StageSelect
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Submit sends the generated plan to the reservation API. It is reachable
// only from review and only when the plan has at least one occurrence; both
// checks run before any network call. A second submit while one is in flight
// is rejected. On a partial-availability rejection or a transport failure
// the session is left untouched in review so the user can adjust or retry.
func (s *DefaultWorkflowService) Submit(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	logger := utils.GetLogger()

	locked, err := s.Sessions.AcquireSubmitLock(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, ErrSubmissionInFlight
	}
	defer func() {
		if err := s.Sessions.ReleaseSubmitLock(ctx, sessionID); err != nil {
			logger.Warn("failed to release submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Stage != models.StageReview {
		return nil, NewStageError("submit", session.Stage)
	}

	preview := s.preview(session)
	if preview.TotalSlots == 0 {
		return nil, NewValidationError("the plan has no occurrences to book; select at least one pattern with a remaining date this month")
	}

	resp, err := s.Reservations.BookMonthly(ctx, models.BookMonthlyRequest{
		TutorID:    session.TutorID,
		SubjectID:  session.SubjectID,
		LanguageID: session.LanguageID,
		Patterns:   session.Patterns,
		StartDate:  preview.StartDate,
		EndDate:    preview.EndDate,
	})
	if err != nil {
		logger.Error("reservation submission failed",
			zap.String("sessionID", sessionID), zap.Error(err))
		return nil, fmt.Errorf("could not reach the booking service, please try again: %w", err)
	}

	if !resp.Success {
		availErr := &AvailabilityError{FailedSlots: resp.FailedSlots}
		s.Notifier.BookingFailed(ctx, session.StudentID, availErr.Error())
		return nil, availErr
	}

	plan := &models.MonthlyClassBooking{
		ID:            uuid.New().String(),
		StudentID:     session.StudentID,
		TutorID:       session.TutorID,
		SubjectID:     session.SubjectID,
		LanguageID:    session.LanguageID,
		Patterns:      session.Patterns,
		WeekBreakdown: preview.WeekBreakdown,
		TotalSlots:    preview.TotalSlots,
		TotalCost:     preview.TotalCost,
		Currency:      session.Currency,
		Status:        models.BookingStatusPending,
		StartDate:     preview.StartDate,
		EndDate:       preview.EndDate,
		HoldID:        resp.HoldID,
	}
	if err := s.Repo.Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to record submitted plan: %w", err)
	}

	session.Stage = models.StageConfirming
	session.Plan = plan
	session.HoldID = resp.HoldID
	session.HoldExpiresAt = s.now().Add(s.HoldTTL)
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	if err := s.Holds.ScheduleHoldExpiry(ctx, session.SessionID, session.HoldID, session.HoldExpiresAt); err != nil {
		logger.Error("failed to schedule hold expiry",
			zap.String("sessionID", sessionID), zap.Error(err))
	}

	logger.Info("plan submitted",
		zap.String("sessionID", sessionID),
		zap.String("bookingID", plan.ID),
		zap.Int("totalSlots", plan.TotalSlots),
		zap.Time("holdExpiresAt", session.HoldExpiresAt))
	return session, nil
}

// ConfirmPayment settles the held plan. On success the booking is confirmed,
// the session is terminal and removed.
func (s *DefaultWorkflowService) ConfirmPayment(ctx context.Context, sessionID, method string) (*models.MonthlyClassBooking, *models.Invoice, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.Stage != models.StageConfirming || session.Plan == nil {
		return nil, nil, NewStageError("payment", session.Stage)
	}
	if s.now().After(session.HoldExpiresAt) {
		if err := s.expireHeldSession(ctx, session); err != nil {
			utils.GetLogger().Error("failed to expire lapsed hold", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return nil, nil, NewValidationError("the reservation hold has expired; please review and submit again")
	}

	plan := session.Plan
	invoice, err := s.Payments.ProcessPayment(ctx, models.PaymentRequest{
		StudentID:   plan.StudentID,
		BookingID:   plan.ID,
		Amount:      plan.TotalCost,
		Method:      method,
		Currency:    plan.Currency,
		Description: fmt.Sprintf("%d classes, %s to %s", plan.TotalSlots, plan.StartDate, plan.EndDate),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("payment failed: %w", err)
	}

	plan.Status = models.BookingStatusConfirmed
	plan.InvoiceID = invoice.InvoiceID
	if err := s.Repo.UpdateStatus(ctx, plan.ID, plan.Status, invoice.InvoiceID); err != nil {
		return nil, nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	if err := s.Sessions.Delete(ctx, sessionID); err != nil {
		utils.GetLogger().Warn("failed to delete settled session", zap.String("sessionID", sessionID), zap.Error(err))
	}

	s.Notifier.BookingSucceeded(ctx, plan)
	s.Notifier.Completed(ctx, plan.StudentID, plan.ID)
	return plan, invoice, nil
}

// CancelSubmission releases a held plan and returns the session to review.
// Before submission it simply abandons the attempt.
func (s *DefaultWorkflowService) CancelSubmission(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if session.Stage != models.StageConfirming {
		if err := s.Sessions.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, nil
	}

	if err := s.Reservations.Release(ctx, session.HoldID); err != nil {
		return nil, fmt.Errorf("failed to release reservation hold: %w", err)
	}
	if session.Plan != nil {
		if err := s.Repo.UpdateStatus(ctx, session.Plan.ID, models.BookingStatusFailed, ""); err != nil {
			utils.GetLogger().Warn("failed to mark cancelled plan", zap.String("bookingID", session.Plan.ID), zap.Error(err))
		}
	}

	session.Stage = models.StageReview
	session.Plan = nil
	session.HoldID = ""
	if err := s.Sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// ExpireHold is the worker entry point for a lapsed payment hold. The
// session is re-read first: if payment already settled, or the hold was
// replaced by a newer submission, the expiry is stale and ignored.
func (s *DefaultWorkflowService) ExpireHold(ctx context.Context, sessionID, holdID string) error {
	session, err := s.Sessions.Get(ctx, sessionID)
	if err == ErrSessionNotFound {
		return nil
	}
	if err != nil {
		return err
	}
	if session.Stage != models.StageConfirming || session.HoldID != holdID {
		return nil
	}
	return s.expireHeldSession(ctx, session)
}

func (s *DefaultWorkflowService) expireHeldSession(ctx context.Context, session *models.BookingSession) error {
	logger := utils.GetLogger()

	if err := s.Reservations.Release(ctx, session.HoldID); err != nil {
		logger.Error("failed to release expired hold",
			zap.String("sessionID", session.SessionID), zap.Error(err))
	}
	if session.Plan != nil {
		if err := s.Repo.UpdateStatus(ctx, session.Plan.ID, models.BookingStatusExpired, ""); err != nil {
			logger.Warn("failed to mark expired plan", zap.String("bookingID", session.Plan.ID), zap.Error(err))
		}
	}

	s.Notifier.BookingFailed(ctx, session.StudentID,
		"the reservation hold expired before payment; the plan was released")

	session.Stage = models.StageReview
	session.Plan = nil
	session.HoldID = ""
	return s.Sessions.Save(ctx, session)
}

func (s *DefaultWorkflowService) preview(session *models.BookingSession) *models.PlanPreview {
	p := schedule.BuildPlan(session.Patterns, s.now(), session.UnitPrice)
	p.Currency = session.Currency
	return &p
}
