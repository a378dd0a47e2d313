package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/delivery/http/middleware"
	"musicroombooking/internal/domain"
	"musicroombooking/internal/metrics"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	TimeStart time.Time `json:"time_start"`
	TimeEnd   time.Time `json:"time_end"`
}

// Validate implements helpers.Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if c.TimeStart.IsZero() {
		errs = append(errs, "time_start is required")
	}
	if c.TimeEnd.IsZero() {
		errs = append(errs, "time_end is required")
	}
	if len(errs) == 0 && !c.TimeEnd.After(c.TimeStart) {
		errs = append(errs, "time_end must be after time_start")
	}
	return errs
}

// BookingSuccessResponse is the success response envelope for booking endpoints.
type BookingSuccessResponse struct {
	Data  *domain.Booking   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookingListSuccessResponse is the success response envelope for booking list endpoints.
type BookingListSuccessResponse struct {
	Data  []*domain.Booking `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// QuotaResponse is the data object for GET /participants/me/quota.
type QuotaResponse struct {
	Date   string             `json:"date"`
	Daily  *domain.QuotaUsage `json:"daily"`
	Weekly *domain.QuotaUsage `json:"weekly"`
}

type BookingController struct {
	Logger   *slog.Logger
	Service  domain.BookingService
	Metrics  metrics.Collector
	Location *time.Location
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService, collector metrics.Collector, loc *time.Location) *BookingController {
	return &BookingController{
		Logger:   logger,
		Service:  svc,
		Metrics:  collector,
		Location: loc,
	}
}

// CreateBooking godoc
// @Summary Book the music room
// @Description Books the music room for the authenticated participant. The interval must not overlap any existing booking and must fit within the participant's remaining daily and weekly quota.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param booking body CreateBookingRequest true "Booking interval"
// @Success 201 {object} controllers.BookingSuccessResponse "data contains the created booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden or quota_exceeded"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	participantID, ok := middleware.ParticipantIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Service.Create(r.Context(), participantID, req.TimeStart, req.TimeEnd)
	if err != nil {
		c.Metrics.RecordBookingRejected(rejectionReason(err))
		writeDomainError(w, r, c.Logger, err)
		return
	}
	c.Metrics.RecordBookingCreated()
	helpers.WriteJSONSuccess(w, http.StatusCreated, booking)
}

// DeleteBooking godoc
// @Summary Cancel a booking
// @Description Deletes a booking owned by the authenticated participant and frees its slot.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path int true "Booking ID"
// @Success 200 {object} controllers.BookingSuccessResponse "data contains the removed booking"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) DeleteBooking(w http.ResponseWriter, r *http.Request) {
	bookingID, ok := helpers.ParseIDPathValue(r, "bookingID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid bookingID")
		return
	}
	participantID, ok := middleware.ParticipantIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	booking, err := c.Service.Delete(r.Context(), bookingID, participantID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, booking)
}

// ListBookings godoc
// @Summary List bookings in a date range
// @Description Lists bookings whose start date falls within [from, to], inclusive, ordered by start time. Both bounds default to today.
// @Tags bookings
// @Produce json
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [get]
func (c *BookingController) ListBookings(w http.ResponseWriter, r *http.Request) {
	loc := time.Local
	if c.Location != nil {
		loc = c.Location
	}
	today := time.Now().In(loc)
	from, ok := helpers.ParseDateParam(r, "from", loc, today)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid from date")
		return
	}
	to, ok := helpers.ParseDateParam(r, "to", loc, today)
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid to date")
		return
	}
	if to.Before(from) {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "to must not be before from")
		return
	}

	bookings, err := c.Service.GetBookings(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// MyBookings godoc
// @Summary List the authenticated participant's bookings
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BookingListSuccessResponse
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/me/bookings [get]
func (c *BookingController) MyBookings(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.ParticipantIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	bookings, err := c.Service.GetParticipantBookings(r.Context(), participantID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// MyQuota godoc
// @Summary Remaining booking quota for the authenticated participant
// @Description Reports the daily and weekly quota usage for the given date, defaulting to today.
// @Tags participants
// @Produce json
// @Security BearerAuth
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} helpers.APIResponse "data contains QuotaResponse"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/me/quota [get]
func (c *BookingController) MyQuota(w http.ResponseWriter, r *http.Request) {
	participantID, ok := middleware.ParticipantIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	loc := time.Local
	if c.Location != nil {
		loc = c.Location
	}
	date, ok := helpers.ParseDateParam(r, "date", loc, time.Now().In(loc))
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid date")
		return
	}

	daily, err := c.Service.RemainingDailyHours(r.Context(), participantID, date)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	weekly, err := c.Service.RemainingWeeklyHours(r.Context(), participantID, date)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, QuotaResponse{
		Date:   date.Format(helpers.DateLayout),
		Daily:  daily,
		Weekly: weekly,
	})
}
