package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Saikirangolkonda/TutorMatch/internal/domain"
	"github.com/Saikirangolkonda/TutorMatch/internal/handler/dto"
	hmocks "github.com/Saikirangolkonda/TutorMatch/internal/handler/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/ginext"
)

type testDeps struct {
	tutors   *hmocks.MockTutorSvc
	bookings *hmocks.MockBookingSvc
	payments *hmocks.MockPaymentSvc
	students *hmocks.MockStudentSvc
	router   http.Handler
}

func setupRouter(t *testing.T) testDeps {
	t.Helper()
	d := testDeps{
		tutors:   hmocks.NewMockTutorSvc(t),
		bookings: hmocks.NewMockBookingSvc(t),
		payments: hmocks.NewMockPaymentSvc(t),
		students: hmocks.NewMockStudentSvc(t),
	}

	h := NewHandler(d.tutors, d.bookings, d.payments, d.students)

	r := ginext.New("test")
	api := r.Group("/api")
	{
		api.GET("/tutors", h.ListTutors)
		api.GET("/tutors/:id", h.GetTutor)
		api.POST("/tutors/:id/bookings", h.CreateBooking)
		api.GET("/bookings/:id", h.GetBooking)
		api.POST("/bookings/:id/payments", h.ProcessPayment)
		api.GET("/payments/:id", h.GetPayment)
		api.GET("/students/:id/dashboard", h.GetStudentDashboard)
	}
	d.router = r

	return d
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func testBooking() *domain.Booking {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	return &domain.Booking{
		ID:            "b1",
		TutorID:       "t1",
		TutorName:     "Priya Sharma",
		StudentID:     "s1",
		Date:          "2025-03-10",
		Time:          "10:00",
		Subject:       "Math",
		SessionType:   domain.DefaultSessionType,
		SessionFormat: domain.DefaultSessionFormat,
		SessionsCount: 2,
		TotalPrice:    decimal.RequireFromString("60"),
		Status:        domain.BookingStatusPendingPayment,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// --- Tutors ---

func TestHandler_ListTutors(t *testing.T) {
	d := setupRouter(t)

	d.tutors.EXPECT().ListTutors(mock.Anything).Return([]*domain.Tutor{
		{ID: "t1", Name: "Priya Sharma", Subjects: []string{"Math"}, HourlyRate: decimal.RequireFromString("30")},
	}, nil)

	w := doJSON(t, d.router, http.MethodGet, "/api/tutors", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp []dto.TutorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "30.00", resp[0].HourlyRate)
}

func TestHandler_GetTutor_NotFound(t *testing.T) {
	d := setupRouter(t)

	d.tutors.EXPECT().GetTutor(mock.Anything, "nope").Return(nil, domain.ErrTutorNotFound)

	w := doJSON(t, d.router, http.MethodGet, "/api/tutors/nope", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Bookings ---

func TestHandler_CreateBooking_Success(t *testing.T) {
	d := setupRouter(t)

	d.bookings.EXPECT().
		CreateBooking(mock.Anything, mock.MatchedBy(func(in domain.CreateBookingInput) bool {
			return in.TutorID == "t1" && in.StudentID == "s1" && in.SessionsCount == 2
		})).
		Return(testBooking(), nil)

	w := doJSON(t, d.router, http.MethodPost, "/api/tutors/t1/bookings", map[string]any{
		"student_id":     "s1",
		"date":           "2025-03-10",
		"time":           "10:00",
		"subject":        "Math",
		"sessions_count": 2,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.ID)
	assert.Equal(t, "60.00", resp.TotalPrice)
	assert.Equal(t, "pending_payment", resp.Status)
	assert.Nil(t, resp.PaymentID)
}

func TestHandler_CreateBooking_DefaultsSessionsCount(t *testing.T) {
	d := setupRouter(t)

	d.bookings.EXPECT().
		CreateBooking(mock.Anything, mock.MatchedBy(func(in domain.CreateBookingInput) bool {
			return in.SessionsCount == 1
		})).
		Return(testBooking(), nil)

	w := doJSON(t, d.router, http.MethodPost, "/api/tutors/t1/bookings", map[string]any{
		"student_id": "s1",
		"date":       "2025-03-10",
		"time":       "10:00",
		"subject":    "Math",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestHandler_CreateBooking_MissingFields(t *testing.T) {
	d := setupRouter(t)

	w := doJSON(t, d.router, http.MethodPost, "/api/tutors/t1/bookings", map[string]any{
		"student_id": "s1",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_CreateBooking_InvalidSessions(t *testing.T) {
	d := setupRouter(t)

	d.bookings.EXPECT().
		CreateBooking(mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: sessions_count must be at least 1", domain.ErrInvalidArgument))

	w := doJSON(t, d.router, http.MethodPost, "/api/tutors/t1/bookings", map[string]any{
		"student_id":     "s1",
		"date":           "2025-03-10",
		"time":           "10:00",
		"subject":        "Math",
		"sessions_count": 0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetBooking_NotFound(t *testing.T) {
	d := setupRouter(t)

	d.bookings.EXPECT().GetBooking(mock.Anything, "unknown-id").Return(nil, domain.ErrBookingNotFound)

	w := doJSON(t, d.router, http.MethodGet, "/api/bookings/unknown-id", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

// --- Payments ---

func TestHandler_ProcessPayment_Success(t *testing.T) {
	d := setupRouter(t)

	d.payments.EXPECT().
		ProcessPayment(mock.Anything, mock.MatchedBy(func(in domain.ProcessPaymentInput) bool {
			return in.BookingID == "b1" &&
				in.Method == "credit_card" &&
				in.Contact == "s@example.com" &&
				in.Amount != nil && in.Amount.Equal(decimal.RequireFromString("60"))
		})).
		Return(&domain.PaymentResult{
			PaymentID: "p1",
			BookingID: "b1",
			Amount:    decimal.RequireFromString("60"),
			Status:    domain.PaymentStatusCompleted,
		}, nil)

	w := doJSON(t, d.router, http.MethodPost, "/api/bookings/b1/payments", map[string]any{
		"payment_method": "credit_card",
		"email":          "s@example.com",
		"amount":         "60.00",
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var resp dto.PaymentResultResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "p1", resp.PaymentID)
	assert.Equal(t, "60.00", resp.Amount)
	assert.Equal(t, "completed", resp.Status)
}

func TestHandler_ProcessPayment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", domain.ErrBookingNotFound, http.StatusNotFound},
		{"already finalized", fmt.Errorf("booking b1 is confirmed: %w", domain.ErrAlreadyFinalized), http.StatusConflict},
		{"validation", fmt.Errorf("%w: malformed payment method", domain.ErrValidationFailed), http.StatusBadRequest},
		{"invalid argument", fmt.Errorf("%w: booking_id is required", domain.ErrInvalidArgument), http.StatusBadRequest},
		{"transient", fmt.Errorf("confirm booking: %w: %w", domain.ErrTransientStore, errors.New("i/o timeout")), http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupRouter(t)

			d.payments.EXPECT().ProcessPayment(mock.Anything, mock.Anything).Return(nil, tt.err)

			w := doJSON(t, d.router, http.MethodPost, "/api/bookings/b1/payments", map[string]any{
				"payment_method": "card",
				"payer_contact":  "s@example.com",
			})

			assert.Equal(t, tt.want, w.Code)
			assert.NotContains(t, w.Body.String(), "i/o timeout")
			assert.NotContains(t, w.Body.String(), "boom")
		})
	}
}

func TestHandler_ProcessPayment_BadAmount(t *testing.T) {
	d := setupRouter(t)

	w := doJSON(t, d.router, http.MethodPost, "/api/bookings/b1/payments", map[string]any{
		"payment_method": "card",
		"payer_contact":  "s@example.com",
		"amount":         "sixty",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_GetPayment(t *testing.T) {
	d := setupRouter(t)

	d.payments.EXPECT().GetPayment(mock.Anything, "p1").Return(&domain.Payment{
		ID:        "p1",
		BookingID: "b1",
		Amount:    decimal.RequireFromString("60"),
		Method:    "card",
		Status:    domain.PaymentStatusCompleted,
		CreatedAt: time.Now(),
	}, nil)

	w := doJSON(t, d.router, http.MethodGet, "/api/payments/p1", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.PaymentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b1", resp.BookingID)
}

// --- Students ---

func TestHandler_GetStudentDashboard(t *testing.T) {
	d := setupRouter(t)

	b := testBooking()
	pid := "p1"
	b.Status = domain.BookingStatusConfirmed
	b.PaymentID = &pid

	d.students.EXPECT().GetStudentData(mock.Anything, "s1").Return(&domain.StudentData{
		StudentID: "s1",
		Bookings:  []*domain.Booking{b},
		Payments: []*domain.Payment{
			{ID: pid, BookingID: b.ID, Amount: b.TotalPrice, Status: domain.PaymentStatusCompleted},
		},
		Notifications: []domain.NotificationEntry{
			{BookingID: b.ID, Title: "Session Confirmed", Message: "confirmed", CreatedAt: b.UpdatedAt},
		},
	}, nil)

	w := doJSON(t, d.router, http.MethodGet, "/api/students/s1/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.StudentDashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "s1", resp.StudentID)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, "p1", *resp.Bookings[0].PaymentID)
	assert.Len(t, resp.Payments, 1)
	assert.Len(t, resp.Notifications, 1)
}

func TestHandler_GetStudentDashboard_Empty(t *testing.T) {
	d := setupRouter(t)

	d.students.EXPECT().GetStudentData(mock.Anything, "new").Return(&domain.StudentData{
		StudentID:     "new",
		Bookings:      []*domain.Booking{},
		Payments:      []*domain.Payment{},
		Notifications: []domain.NotificationEntry{},
	}, nil)

	w := doJSON(t, d.router, http.MethodGet, "/api/students/new/dashboard", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"student_id":"new","bookings":[],"payments":[],"notifications":[]}`, w.Body.String())
}
