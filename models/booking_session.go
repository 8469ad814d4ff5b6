package models

import "time"

// Workflow stages. Transitions are strictly forward-or-backward:
// select <-> review -> confirming -> succeeded, with confirming falling back
// to review on cancellation or hold expiry.
const (
	StageSelect     = "select"
	StageReview     = "review"
	StageConfirming = "confirming"
	StageSucceeded  = "succeeded"
)

// BookingSession holds one booking attempt between pattern selection and
// payment. It lives in Redis under a TTL and is never persisted.
type BookingSession struct {
	SessionID  string `json:"sessionId"`
	Stage      string `json:"stage"`
	StudentID  string `json:"studentId"`
	TutorID    string `json:"tutorId"`
	SubjectID  string `json:"subjectId"`
	LanguageID string `json:"languageId"`

	Patterns  []SlotPattern `json:"patterns"`
	UnitPrice float64       `json:"unitPrice"`
	Currency  string        `json:"currency"`

	// Set once the reservation API accepts the submission.
	Plan          *MonthlyClassBooking `json:"plan,omitempty"`
	HoldID        string               `json:"holdId,omitempty"`
	HoldExpiresAt time.Time            `json:"holdExpiresAt,omitempty"`
}

// PlanPreview is the review-stage view of the generated plan.
type PlanPreview struct {
	Occurrences   []OccurrenceSlot `json:"occurrences"`
	WeekBreakdown []WeekBucket     `json:"weekBreakdown"`
	TotalSlots    int              `json:"totalSlots"`
	TotalCost     float64          `json:"totalCost"`
	Currency      string           `json:"currency"`
	StartDate     string           `json:"startDate"`
	EndDate       string           `json:"endDate"`
}
