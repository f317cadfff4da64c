package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/handler/dto"
	"github.com/wb-go/wbf/ginext"
)

type TutorSvc interface {
	GetTutor(ctx context.Context, id string) (*domain.Tutor, error)
	ListTutors(ctx context.Context) ([]*domain.Tutor, error)
}

type BookingSvc interface {
	CreateBooking(ctx context.Context, input domain.CreateBookingInput) (*domain.Booking, error)
	GetBooking(ctx context.Context, id string) (*domain.Booking, error)
}

type PaymentSvc interface {
	ProcessPayment(ctx context.Context, in domain.ProcessPaymentInput) (*domain.PaymentResult, error)
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
}

type StudentSvc interface {
	GetStudentData(ctx context.Context, studentID string) (*domain.StudentData, error)
}

type Handler struct {
	tutorService   TutorSvc
	bookingService BookingSvc
	paymentService PaymentSvc
	studentService StudentSvc
}

func NewHandler(tutorService TutorSvc, bookingService BookingSvc, paymentService PaymentSvc, studentService StudentSvc) *Handler {
	return &Handler{
		tutorService:   tutorService,
		bookingService: bookingService,
		paymentService: paymentService,
		studentService: studentService,
	}
}

// Tutors

func (h *Handler) ListTutors(c *ginext.Context) {
	tutors, err := h.tutorService.ListTutors(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := make([]dto.TutorResponse, 0, len(tutors))
	for _, t := range tutors {
		resp = append(resp, dto.ToTutorResponse(t))
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetTutor(c *ginext.Context) {
	tutor, err := h.tutorService.GetTutor(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTutorResponse(tutor))
}

// Bookings

func (h *Handler) CreateBooking(c *ginext.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	sessions := 1
	if req.SessionsCount != nil {
		sessions = *req.SessionsCount
	}

	input := domain.CreateBookingInput{
		TutorID:       c.Param("id"),
		StudentID:     req.StudentID,
		Date:          req.Date,
		Time:          req.Time,
		Subject:       req.Subject,
		SessionsCount: sessions,
		SessionType:   req.SessionType,
		SessionFormat: req.SessionFormat,
		LearningGoals: req.LearningGoals,
	}

	booking, err := h.bookingService.CreateBooking(c.Request.Context(), input)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *Handler) GetBooking(c *ginext.Context) {
	booking, err := h.bookingService.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// Payments

func (h *Handler) ProcessPayment(c *ginext.Context) {
	var req dto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), domain.ProcessPaymentInput{
		BookingID: c.Param("id"),
		Method:    req.PaymentMethod,
		Contact:   req.Contact(),
		Amount:    req.Amount,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentResultResponse(result))
}

func (h *Handler) GetPayment(c *ginext.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// Students

func (h *Handler) GetStudentDashboard(c *ginext.Context) {
	data, err := h.studentService.GetStudentData(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStudentDashboardResponse(data))
}

func (h *Handler) handleError(c *ginext.Context, err error) {
	c.Set("error", err.Error())

	switch {
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrAlreadyFinalized):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, domain.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})

	case errors.Is(err, domain.ErrTransientStore):
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: domain.ErrTransientStore.Error()})

	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
