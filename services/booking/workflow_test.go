package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tutorly/models"
)

// Friday 2024-03-15, 09:00 UTC.
var testNow = time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)

// memSessionStore is an in-memory SessionStore. Sessions are copied through
// JSON, as the Redis store does, so tests observe stored state rather than
// shared pointers.
type memSessionStore struct {
	sessions map[string][]byte
	locks    map[string]bool
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{
		sessions: make(map[string][]byte),
		locks:    make(map[string]bool),
	}
}

func (s *memSessionStore) Save(ctx context.Context, session *models.BookingSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.sessions[session.SessionID] = data
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	var session models.BookingSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *memSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

func (s *memSessionStore) AcquireSubmitLock(ctx context.Context, sessionID string) (bool, error) {
	if s.locks[sessionID] {
		return false, nil
	}
	s.locks[sessionID] = true
	return true, nil
}

func (s *memSessionStore) ReleaseSubmitLock(ctx context.Context, sessionID string) error {
	delete(s.locks, sessionID)
	return nil
}

// fakeReservationClient counts calls and answers with a programmable
// response.
type fakeReservationClient struct {
	bookCalls    int
	releaseCalls []string
	response     *models.BookMonthlyResponse
	err          error
}

func (c *fakeReservationClient) BookMonthly(ctx context.Context, req models.BookMonthlyRequest) (*models.BookMonthlyResponse, error) {
	c.bookCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.response, nil
}

func (c *fakeReservationClient) Release(ctx context.Context, holdID string) error {
	c.releaseCalls = append(c.releaseCalls, holdID)
	return nil
}

// fakePaymentHandler settles every request immediately.
type fakePaymentHandler struct {
	requests []models.PaymentRequest
	err      error
}

func (h *fakePaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, error) {
	h.requests = append(h.requests, req)
	if h.err != nil {
		return nil, h.err
	}
	return &models.Invoice{
		InvoiceID: "inv-1",
		BookingID: req.BookingID,
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    "paid",
	}, nil
}

// memBookingRepo stores plans by ID.
type memBookingRepo struct {
	bookings map[string]*models.MonthlyClassBooking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.MonthlyClassBooking)}
}

func (r *memBookingRepo) Create(ctx context.Context, booking *models.MonthlyClassBooking) error {
	copied := *booking
	r.bookings[booking.ID] = &copied
	return nil
}

func (r *memBookingRepo) GetByID(ctx context.Context, id string) (*models.MonthlyClassBooking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking with id %s not found", id)
	}
	return b, nil
}

func (r *memBookingRepo) UpdateStatus(ctx context.Context, id, status, invoiceID string) error {
	b, ok := r.bookings[id]
	if !ok {
		return fmt.Errorf("booking with id %s not found", id)
	}
	b.Status = status
	if invoiceID != "" {
		b.InvoiceID = invoiceID
	}
	return nil
}

func (r *memBookingRepo) ListByStudent(ctx context.Context, studentID string) ([]models.MonthlyClassBooking, error) {
	var out []models.MonthlyClassBooking
	for _, b := range r.bookings {
		if b.StudentID == studentID {
			out = append(out, *b)
		}
	}
	return out, nil
}

// recordingNotifier captures workflow events.
type recordingNotifier struct {
	succeeded []string
	failed    []string
	completed []string
}

func (n *recordingNotifier) BookingSucceeded(ctx context.Context, plan *models.MonthlyClassBooking) {
	n.succeeded = append(n.succeeded, plan.ID)
}

func (n *recordingNotifier) BookingFailed(ctx context.Context, studentID, message string) {
	n.failed = append(n.failed, message)
}

func (n *recordingNotifier) Completed(ctx context.Context, studentID, bookingID string) {
	n.completed = append(n.completed, bookingID)
}

// recordingHoldScheduler captures hold-expiry scheduling.
type recordingHoldScheduler struct {
	sessionIDs []string
	fireAts    []time.Time
}

func (h *recordingHoldScheduler) ScheduleHoldExpiry(ctx context.Context, sessionID, holdID string, fireAt time.Time) error {
	h.sessionIDs = append(h.sessionIDs, sessionID)
	h.fireAts = append(h.fireAts, fireAt)
	return nil
}

type workflowFixture struct {
	svc          *DefaultWorkflowService
	sessions     *memSessionStore
	reservations *fakeReservationClient
	payments     *fakePaymentHandler
	repo         *memBookingRepo
	notifier     *recordingNotifier
	holds        *recordingHoldScheduler
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		sessions:     newMemSessionStore(),
		reservations: &fakeReservationClient{response: &models.BookMonthlyResponse{Success: true, HoldID: "hold-1"}},
		payments:     &fakePaymentHandler{},
		repo:         newMemBookingRepo(),
		notifier:     &recordingNotifier{},
		holds:        &recordingHoldScheduler{},
	}
	f.svc = &DefaultWorkflowService{
		Sessions:     f.sessions,
		Reservations: f.reservations,
		Payments:     f.payments,
		Repo:         f.repo,
		Notifier:     f.notifier,
		Holds:        f.holds,
		UnitPrice:    12.0,
		Currency:     "USD",
		HoldTTL:      15 * time.Minute,
		Now:          func() time.Time { return testNow },
	}
	return f
}
