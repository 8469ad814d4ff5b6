package booking

import (
	"context"

	"tutorly/models"

	"go.uber.org/zap"
)

// Notifier receives workflow-boundary events. Hosts plug in push or email
// delivery; the default implementation only logs.
type Notifier interface {
	BookingSucceeded(ctx context.Context, plan *models.MonthlyClassBooking)
	BookingFailed(ctx context.Context, studentID, message string)
	Completed(ctx context.Context, studentID, bookingID string)
}

// LogNotifier logs workflow events through zap.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n *LogNotifier) BookingSucceeded(ctx context.Context, plan *models.MonthlyClassBooking) {
	n.Logger.Info("booking succeeded",
		zap.String("bookingID", plan.ID),
		zap.String("studentID", plan.StudentID),
		zap.Int("totalSlots", plan.TotalSlots),
		zap.Float64("totalCost", plan.TotalCost))
}

func (n *LogNotifier) BookingFailed(ctx context.Context, studentID, message string) {
	n.Logger.Warn("booking failed",
		zap.String("studentID", studentID),
		zap.String("message", message))
}

func (n *LogNotifier) Completed(ctx context.Context, studentID, bookingID string) {
	n.Logger.Info("booking flow completed",
		zap.String("studentID", studentID),
		zap.String("bookingID", bookingID))
}
