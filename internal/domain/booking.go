package domain

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for booking allocation. Repositories and services return
// these; the HTTP layer maps each to a stable response code.
var (
	ErrInvalidInterval = errors.New("invalid time interval")
	ErrNotEligible     = errors.New("participant is not eligible to book")
	ErrSlotTaken       = errors.New("slot is already taken")
	ErrQuotaExceeded   = errors.New("booking quota exceeded")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrAssetMissing    = errors.New("rendering asset missing")
)

// Booking represents an exclusive occupancy of the music room for the
// half-open interval [TimeStart, TimeEnd). Bookings are immutable once
// created, except for deletion.
// swagger:model Booking
type Booking struct {
	ID            int64     `json:"id"`
	ParticipantID int64     `json:"participant_id"`
	// ParticipantAlias is joined in by list queries for presentation.
	ParticipantAlias string    `json:"participant_alias,omitempty"`
	TimeStart        time.Time `json:"time_start"`
	TimeEnd          time.Time `json:"time_end"`
	CreatedAt        time.Time `json:"created_at"`
}

// NewBooking returns a new Booking with the given fields. ID is set by the
// repository on create.
func NewBooking(participantID int64, timeStart, timeEnd time.Time) *Booking {
	return &Booking{
		ParticipantID: participantID,
		TimeStart:     timeStart,
		TimeEnd:       timeEnd,
	}
}

// BookingRepository defines the interface for booking storage.
// Create must run its checks and the insert against a single consistent
// snapshot: two concurrent creates for overlapping intervals must not both
// succeed, and a failed create must leave no residual row.
type BookingRepository interface {
	// Create validates eligibility, collision, and the daily/weekly quota
	// atomically, then persists the booking and fills in its ID. Returns
	// ErrNotFound (unknown participant), ErrNotEligible, ErrSlotTaken, or
	// ErrQuotaExceeded as typed outcomes.
	Create(ctx context.Context, booking *Booking) error
	// Delete removes the booking and returns its prior state. Returns
	// ErrNotFound when the booking is already gone.
	Delete(ctx context.Context, id int64) (*Booking, error)
	// GetByID returns a single booking or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// ListInRange returns bookings whose start falls in [from, to), ordered
	// by time_start ascending, with participant aliases joined in.
	ListInRange(ctx context.Context, from, to time.Time) ([]*Booking, error)
	// ListByParticipant returns all bookings for one participant, ordered by
	// time_start ascending.
	ListByParticipant(ctx context.Context, participantID int64) ([]*Booking, error)
	// SumHoursInRange sums booked hours for a participant over bookings whose
	// start falls in [from, to).
	SumHoursInRange(ctx context.Context, participantID int64, from, to time.Time) (float64, error)
}

// BookingService defines the business logic of the booking allocator and
// quota engine.
type BookingService interface {
	Create(ctx context.Context, participantID int64, timeStart, timeEnd time.Time) (*Booking, error)
	// Delete removes a booking on behalf of callerID; only the owner may
	// delete. Returns the removed booking's prior state.
	Delete(ctx context.Context, bookingID, callerID int64) (*Booking, error)
	// GetBookings returns bookings with start dates in [fromDate, toDate],
	// inclusive on both ends, ordered by time_start ascending.
	GetBookings(ctx context.Context, fromDate, toDate time.Time) ([]*Booking, error)
	GetParticipantBookings(ctx context.Context, participantID int64) ([]*Booking, error)
	// BookingsForWeek returns the bookings of the current Mon-Sun week, or of
	// the next one when nextWeek is true.
	BookingsForWeek(ctx context.Context, nextWeek bool) ([]*Booking, error)
	RemainingDailyHours(ctx context.Context, participantID int64, date time.Time) (*QuotaUsage, error)
	RemainingWeeklyHours(ctx context.Context, participantID int64, ref time.Time) (*QuotaUsage, error)
}
