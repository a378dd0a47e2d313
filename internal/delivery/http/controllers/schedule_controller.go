package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"musicroombooking/internal/calendar"
	"musicroombooking/internal/delivery/http/helpers"
	"musicroombooking/internal/domain"
	"musicroombooking/internal/metrics"
	"musicroombooking/internal/schedule"
)

// ScheduleImageResponse is the data object for GET /schedule/image.
type ScheduleImageResponse struct {
	Image string `json:"image"`
}

type ScheduleController struct {
	Logger   *slog.Logger
	Bookings domain.BookingService
	Renderer *schedule.Renderer
	Exporter *calendar.Exporter
	Metrics  metrics.Collector

	now func() time.Time
}

func NewScheduleController(logger *slog.Logger, bookings domain.BookingService, renderer *schedule.Renderer, exporter *calendar.Exporter, collector metrics.Collector) *ScheduleController {
	return &ScheduleController{
		Logger:   logger,
		Bookings: bookings,
		Renderer: renderer,
		Exporter: exporter,
		Metrics:  collector,
		now:      time.Now,
	}
}

// GetScheduleImage godoc
// @Summary Weekly schedule as a rendered image
// @Description Renders the current week's bookings onto the schedule template and returns the JPEG as a base64 string. Pass next_week=true for the following week.
// @Tags schedule
// @Produce json
// @Param next_week query bool false "Render the next week instead of the current one"
// @Success 200 {object} helpers.APIResponse "data contains ScheduleImageResponse"
// @Failure 500 {object} helpers.APIResponse "error.code: asset_missing or internal_error"
// @Router /schedule/image [get]
func (c *ScheduleController) GetScheduleImage(w http.ResponseWriter, r *http.Request) {
	nextWeek := helpers.ParseBoolParam(r, "next_week")

	bookings, err := c.Bookings.BookingsForWeek(r.Context(), nextWeek)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}

	start := time.Now()
	image, err := c.Renderer.Render(bookings, c.now())
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	c.Metrics.RecordScheduleRender(time.Since(start))
	helpers.WriteJSONSuccess(w, http.StatusOK, ScheduleImageResponse{Image: image})
}

// GetMusicRoomICS godoc
// @Summary Room-wide iCalendar feed
// @Description Serves all bookings within two weeks of now, in either direction, as a text/calendar document. Suitable for calendar client subscriptions.
// @Tags schedule
// @Produce plain
// @Success 200 {string} string "iCalendar document"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /music-room.ics [get]
func (c *ScheduleController) GetMusicRoomICS(w http.ResponseWriter, r *http.Request) {
	from, to := c.Exporter.FeedRange()
	bookings, err := c.Bookings.GetBookings(r.Context(), from, to)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	c.writeCalendar(w, bookings)
}

// GetParticipantICS godoc
// @Summary Per-participant iCalendar feed
// @Description Serves all bookings of one participant as a text/calendar document.
// @Tags schedule
// @Produce plain
// @Param participantID path int true "Participant ID"
// @Success 200 {string} string "iCalendar document"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /participants/{participantID}/bookings.ics [get]
func (c *ScheduleController) GetParticipantICS(w http.ResponseWriter, r *http.Request) {
	participantID, ok := helpers.ParseIDPathValue(r, "participantID")
	if !ok {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid participantID")
		return
	}
	bookings, err := c.Bookings.GetParticipantBookings(r.Context(), participantID)
	if err != nil {
		writeDomainError(w, r, c.Logger, err)
		return
	}
	c.writeCalendar(w, bookings)
}

func (c *ScheduleController) writeCalendar(w http.ResponseWriter, bookings []*domain.Booking) {
	c.Metrics.RecordICSExport()
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(c.Exporter.Export(bookings)))
}
