package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"tutorly/database/repository"
	"tutorly/services/booking"
)

// BookingHandler exposes the monthly booking workflow over HTTP.
type BookingHandler struct {
	Workflow booking.WorkflowService
	Repo     repository.BookingRepository
	Logger   *zap.Logger
}

func NewBookingHandler(workflow booking.WorkflowService, repo repository.BookingRepository, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Workflow: workflow, Repo: repo, Logger: logger}
}

// InitiateSession opens a new booking session in the select stage.
func (h *BookingHandler) InitiateSession(c *gin.Context) {
	var input struct {
		StudentID  string `json:"studentId" binding:"required"`
		TutorID    string `json:"tutorId" binding:"required"`
		SubjectID  string `json:"subjectId" binding:"required"`
		LanguageID string `json:"languageId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := h.Workflow.InitiateSession(c.Request.Context(), input.StudentID, input.TutorID, input.SubjectID, input.LanguageID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetSession returns the session with its live plan preview.
func (h *BookingHandler) GetSession(c *gin.Context) {
	session, preview, err := h.Workflow.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "preview": preview})
}

// AddPattern adds one weekly pattern to the selection.
func (h *BookingHandler) AddPattern(c *gin.Context) {
	var input struct {
		DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
		EndTime   string `json:"endTime" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, preview, err := h.Workflow.AddPattern(c.Request.Context(), c.Param("sessionID"), *input.DayOfWeek, input.StartTime, input.EndTime)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "preview": preview})
}

// RemovePattern removes a pattern by ID.
func (h *BookingHandler) RemovePattern(c *gin.Context) {
	session, preview, err := h.Workflow.RemovePattern(c.Request.Context(), c.Param("sessionID"), c.Param("patternID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "preview": preview})
}

// Review freezes the pattern set and returns the full breakdown and cost.
func (h *BookingHandler) Review(c *gin.Context) {
	session, preview, err := h.Workflow.Review(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "preview": preview})
}

// BackToSelect reopens pattern selection, keeping the patterns.
func (h *BookingHandler) BackToSelect(c *gin.Context) {
	session, err := h.Workflow.BackToSelect(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// Submit sends the plan to the reservation backend.
func (h *BookingHandler) Submit(c *gin.Context) {
	session, err := h.Workflow.Submit(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session, "plan": session.Plan})
}

// ConfirmPayment settles the held plan.
func (h *BookingHandler) ConfirmPayment(c *gin.Context) {
	var input struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	plan, invoice, err := h.Workflow.ConfirmPayment(c.Request.Context(), c.Param("sessionID"), input.Method)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": plan, "invoice": invoice})
}

// CancelSession releases any held plan and abandons or reopens the attempt.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	session, err := h.Workflow.CancelSubmission(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if session == nil {
		c.JSON(http.StatusOK, gin.H{"message": "booking session cancelled"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": session})
}

// GetPlan returns a submitted monthly booking by ID.
func (h *BookingHandler) GetPlan(c *gin.Context) {
	plan, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": plan})
}

// ListPlans returns a student's monthly bookings, newest first.
func (h *BookingHandler) ListPlans(c *gin.Context) {
	studentID := c.Query("studentId")
	if studentID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "studentId query parameter is required"})
		return
	}
	plans, err := h.Repo.ListByStudent(c.Request.Context(), studentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": plans})
}

// respondError maps workflow errors onto HTTP statuses. Everything
// recoverable carries the user-facing message; transport and server faults
// stay generic.
func (h *BookingHandler) respondError(c *gin.Context, err error) {
	var workflowErr *booking.WorkflowError
	var availErr *booking.AvailabilityError

	switch {
	case errors.Is(err, booking.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrSubmissionInFlight):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &availErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":       availErr.Error(),
			"failedSlots": availErr.FailedSlots,
		})
	case errors.As(err, &workflowErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": workflowErr.Message, "code": workflowErr.Code})
	default:
		h.Logger.Error("booking operation failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "the booking could not be completed, please try again"})
	}
}
