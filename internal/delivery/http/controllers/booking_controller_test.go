package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/delivery/http/middleware"
	"musicroombooking/internal/domain"
	"musicroombooking/internal/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBookingService implements domain.BookingService for handler tests.
type fakeBookingService struct {
	createBooking *domain.Booking
	createErr     error
	deleteBooking *domain.Booking
	deleteErr     error
	listBookings  []*domain.Booking
	listErr       error
	weekBookings  []*domain.Booking
	weekErr       error
	dailyUsage    *domain.QuotaUsage
	weeklyUsage   *domain.QuotaUsage
	quotaErr      error
}

func (f *fakeBookingService) Create(ctx context.Context, participantID int64, timeStart, timeEnd time.Time) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createBooking, nil
}

func (f *fakeBookingService) Delete(ctx context.Context, bookingID, callerID int64) (*domain.Booking, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	return f.deleteBooking, nil
}

func (f *fakeBookingService) GetBookings(ctx context.Context, fromDate, toDate time.Time) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listBookings, nil
}

func (f *fakeBookingService) GetParticipantBookings(ctx context.Context, participantID int64) ([]*domain.Booking, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listBookings, nil
}

func (f *fakeBookingService) BookingsForWeek(ctx context.Context, nextWeek bool) ([]*domain.Booking, error) {
	if f.weekErr != nil {
		return nil, f.weekErr
	}
	return f.weekBookings, nil
}

func (f *fakeBookingService) RemainingDailyHours(ctx context.Context, participantID int64, date time.Time) (*domain.QuotaUsage, error) {
	if f.quotaErr != nil {
		return nil, f.quotaErr
	}
	return f.dailyUsage, nil
}

func (f *fakeBookingService) RemainingWeeklyHours(ctx context.Context, participantID int64, ref time.Time) (*domain.QuotaUsage, error) {
	if f.quotaErr != nil {
		return nil, f.quotaErr
	}
	return f.weeklyUsage, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func authedRequest(method, target string, body []byte, participantID int64) *http.Request {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if participantID != 0 {
		req = req.WithContext(middleware.SetParticipantID(req.Context(), participantID))
	}
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	return envelope
}

func TestBookingController_CreateBooking(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	created := &domain.Booking{ID: 1, ParticipantID: 7, TimeStart: start, TimeEnd: end}

	validBody, err := json.Marshal(CreateBookingRequest{TimeStart: start, TimeEnd: end})
	require.NoError(t, err)

	tests := []struct {
		name          string
		body          []byte
		participantID int64
		svc           *fakeBookingService
		wantStatus    int
		wantBodyCode  string
	}{
		{
			name:          "success",
			body:          validBody,
			participantID: 7,
			svc:           &fakeBookingService{createBooking: created},
			wantStatus:    http.StatusCreated,
		},
		{
			name:          "unauthenticated",
			body:          validBody,
			participantID: 0,
			svc:           &fakeBookingService{createBooking: created},
			wantStatus:    http.StatusUnauthorized,
			wantBodyCode:  helpers.ErrCodeUnauthorized,
		},
		{
			name:          "malformed body",
			body:          []byte(`{"time_start": "not a time"}`),
			participantID: 7,
			svc:           &fakeBookingService{},
			wantStatus:    http.StatusBadRequest,
			wantBodyCode:  helpers.ErrCodeBadRequest,
		},
		{
			name:          "end before start",
			body:          mustMarshal(t, CreateBookingRequest{TimeStart: end, TimeEnd: start}),
			participantID: 7,
			svc:           &fakeBookingService{},
			wantStatus:    http.StatusBadRequest,
			wantBodyCode:  helpers.ErrCodeBadRequest,
		},
		{
			name:          "slot taken",
			body:          validBody,
			participantID: 7,
			svc:           &fakeBookingService{createErr: domain.ErrSlotTaken},
			wantStatus:    http.StatusConflict,
			wantBodyCode:  helpers.ErrCodeConflict,
		},
		{
			name:          "quota exceeded",
			body:          validBody,
			participantID: 7,
			svc:           &fakeBookingService{createErr: domain.ErrQuotaExceeded},
			wantStatus:    http.StatusForbidden,
			wantBodyCode:  helpers.ErrCodeQuotaExceeded,
		},
		{
			name:          "not eligible",
			body:          validBody,
			participantID: 7,
			svc:           &fakeBookingService{createErr: domain.ErrNotEligible},
			wantStatus:    http.StatusForbidden,
			wantBodyCode:  helpers.ErrCodeForbidden,
		},
		{
			name:          "service error",
			body:          validBody,
			participantID: 7,
			svc:           &fakeBookingService{createErr: assert.AnError},
			wantStatus:    http.StatusInternalServerError,
			wantBodyCode:  helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBookingController(testLogger(), tt.svc, metrics.Nop{}, time.UTC)
			req := authedRequest(http.MethodPost, "http://test/bookings", tt.body, tt.participantID)
			rr := httptest.NewRecorder()

			c.CreateBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			} else {
				assert.Nil(t, envelope.Error)
				assert.NotNil(t, envelope.Data)
			}
		})
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return b
}

func TestBookingController_DeleteBooking(t *testing.T) {
	removed := &domain.Booking{ID: 5, ParticipantID: 7}

	tests := []struct {
		name          string
		bookingID     string
		participantID int64
		svc           *fakeBookingService
		wantStatus    int
		wantBodyCode  string
	}{
		{
			name:          "success",
			bookingID:     "5",
			participantID: 7,
			svc:           &fakeBookingService{deleteBooking: removed},
			wantStatus:    http.StatusOK,
		},
		{
			name:          "invalid id",
			bookingID:     "abc",
			participantID: 7,
			svc:           &fakeBookingService{},
			wantStatus:    http.StatusBadRequest,
			wantBodyCode:  helpers.ErrCodeBadRequest,
		},
		{
			name:          "not owner",
			bookingID:     "5",
			participantID: 8,
			svc:           &fakeBookingService{deleteErr: domain.ErrForbidden},
			wantStatus:    http.StatusForbidden,
			wantBodyCode:  helpers.ErrCodeForbidden,
		},
		{
			name:          "not found",
			bookingID:     "5",
			participantID: 7,
			svc:           &fakeBookingService{deleteErr: domain.ErrNotFound},
			wantStatus:    http.StatusNotFound,
			wantBodyCode:  helpers.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewBookingController(testLogger(), tt.svc, metrics.Nop{}, time.UTC)
			req := authedRequest(http.MethodDelete, "http://test/bookings/"+tt.bookingID, nil, tt.participantID)
			req.SetPathValue("bookingID", tt.bookingID)
			rr := httptest.NewRecorder()

			c.DeleteBooking(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			envelope := decodeEnvelope(t, rr)
			if tt.wantBodyCode != "" {
				require.NotNil(t, envelope.Error)
				assert.Equal(t, tt.wantBodyCode, envelope.Error.Code)
			}
		})
	}
}

func TestBookingController_ListBookings(t *testing.T) {
	bookings := []*domain.Booking{
		{ID: 1, ParticipantAlias: "ivan"},
		{ID: 2, ParticipantAlias: "olga"},
	}

	t.Run("success with explicit range", func(t *testing.T) {
		c := NewBookingController(testLogger(), &fakeBookingService{listBookings: bookings}, metrics.Nop{}, time.UTC)
		req := httptest.NewRequest(http.MethodGet, "http://test/bookings?from=2025-03-10&to=2025-03-16", nil)
		rr := httptest.NewRecorder()

		c.ListBookings(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		data, ok := envelope.Data.([]any)
		require.True(t, ok)
		assert.Len(t, data, 2)
	})

	t.Run("invalid from date", func(t *testing.T) {
		c := NewBookingController(testLogger(), &fakeBookingService{}, metrics.Nop{}, time.UTC)
		req := httptest.NewRequest(http.MethodGet, "http://test/bookings?from=yesterday", nil)
		rr := httptest.NewRecorder()

		c.ListBookings(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("to before from", func(t *testing.T) {
		c := NewBookingController(testLogger(), &fakeBookingService{}, metrics.Nop{}, time.UTC)
		req := httptest.NewRequest(http.MethodGet, "http://test/bookings?from=2025-03-16&to=2025-03-10", nil)
		rr := httptest.NewRecorder()

		c.ListBookings(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestBookingController_MyQuota(t *testing.T) {
	daily := &domain.QuotaUsage{UsedHours: 2, CapHours: 4, RemainingHours: 2}
	weekly := &domain.QuotaUsage{UsedHours: 2, CapHours: 10, RemainingHours: 8}

	t.Run("success", func(t *testing.T) {
		svc := &fakeBookingService{dailyUsage: daily, weeklyUsage: weekly}
		c := NewBookingController(testLogger(), svc, metrics.Nop{}, time.UTC)
		req := authedRequest(http.MethodGet, "http://test/participants/me/quota?date=2025-03-10", nil, 7)
		rr := httptest.NewRecorder()

		c.MyQuota(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr)
		require.Nil(t, envelope.Error)
		data, ok := envelope.Data.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "2025-03-10", data["date"])
	})

	t.Run("unauthenticated", func(t *testing.T) {
		c := NewBookingController(testLogger(), &fakeBookingService{}, metrics.Nop{}, time.UTC)
		req := httptest.NewRequest(http.MethodGet, "http://test/participants/me/quota", nil)
		rr := httptest.NewRecorder()

		c.MyQuota(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("invalid date", func(t *testing.T) {
		c := NewBookingController(testLogger(), &fakeBookingService{}, metrics.Nop{}, time.UTC)
		req := authedRequest(http.MethodGet, "http://test/participants/me/quota?date=nope", nil, 7)
		rr := httptest.NewRecorder()

		c.MyQuota(rr, req)

		require.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
