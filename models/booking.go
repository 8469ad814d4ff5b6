package models

import "time"

// Booking status values.
const (
	BookingStatusPending   = "PENDING"   // accepted by the reservation API, payment outstanding
	BookingStatusConfirmed = "CONFIRMED" // paid
	BookingStatusFailed    = "FAILED"    // cancelled before payment
	BookingStatusExpired   = "EXPIRED"   // hold lapsed before payment
)

// MonthlyClassBooking is a submitted monthly plan: the pattern set plus the
// week breakdown and totals snapshotted at submission time.
type MonthlyClassBooking struct {
	ID            string        `bson:"id" json:"id"`
	StudentID     string        `bson:"student_id" json:"studentId"`
	TutorID       string        `bson:"tutor_id" json:"tutorId"`
	SubjectID     string        `bson:"subject_id" json:"subjectId"`
	LanguageID    string        `bson:"language_id" json:"languageId"`
	Patterns      []SlotPattern `bson:"patterns" json:"patterns"`
	WeekBreakdown []WeekBucket  `bson:"week_breakdown" json:"weekBreakdown"`
	TotalSlots    int           `bson:"total_slots" json:"totalSlots"`
	TotalCost     float64       `bson:"total_cost" json:"totalCost"`
	Currency      string        `bson:"currency" json:"currency"`
	Status        string        `bson:"status" json:"status"`
	StartDate     string        `bson:"start_date" json:"startDate"` // first day of generation
	EndDate       string        `bson:"end_date" json:"endDate"`     // last day of the calendar month
	HoldID        string        `bson:"hold_id,omitempty" json:"holdId,omitempty"`
	InvoiceID     string        `bson:"invoice_id,omitempty" json:"invoiceId,omitempty"`
	CreatedAt     time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updated_at" json:"updatedAt"`
}
