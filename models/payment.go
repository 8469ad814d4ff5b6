package models

import "time"

// --- PaymentRequest & Invoice ---
type PaymentRequest struct {
	StudentID   string
	BookingID   string
	Amount      float64
	Method      string // "cash" or "card"
	Currency    string
	Description string
}

type Invoice struct {
	InvoiceID string    `bson:"invoice_id" json:"invoiceId"`
	BookingID string    `bson:"booking_id" json:"bookingId"`
	StudentID string    `bson:"student_id" json:"studentId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Currency  string    `bson:"currency" json:"currency"`
	Method    string    `bson:"method" json:"method"`
	Status    string    `bson:"status" json:"status"` // "pending" or "paid"
	PaymentID string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
