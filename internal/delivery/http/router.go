package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger"

	"musicroombooking/internal/delivery/http/controllers"
	"musicroombooking/internal/delivery/http/middleware"
	"musicroombooking/internal/domain"
	"musicroombooking/internal/metrics"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	bookingController *controllers.BookingController,
	participantController *controllers.ParticipantController,
	scheduleController *controllers.ScheduleController,
	gatherer prometheus.Gatherer,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Bookings
	mux.HandleFunc("POST /bookings", auth(bookingController.CreateBooking))
	mux.HandleFunc("DELETE /bookings/{bookingID}", auth(bookingController.DeleteBooking))
	mux.HandleFunc("GET /bookings", bookingController.ListBookings)

	// Participants
	mux.HandleFunc("POST /participants", auth(participantController.CreateParticipant))
	mux.HandleFunc("GET /participants/me/bookings", auth(bookingController.MyBookings))
	mux.HandleFunc("GET /participants/me/quota", auth(bookingController.MyQuota))
	mux.HandleFunc("GET /participants/{participantID}", participantController.GetParticipant)
	mux.HandleFunc("PUT /participants/{participantID}/status", auth(participantController.ChangeStatus))

	// Schedule and calendar feeds
	mux.HandleFunc("GET /schedule/image", scheduleController.GetScheduleImage)
	mux.HandleFunc("GET /music-room.ics", scheduleController.GetMusicRoomICS)
	mux.HandleFunc("GET /participants/{participantID}/bookings.ics", scheduleController.GetParticipantICS)

	// Operational endpoints
	mux.Handle("GET /metrics", metrics.Handler(gatherer))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
