package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"musicroombooking/internal/domain"
)

type bookingService struct {
	bookingRepo    domain.BookingRepository
	quota          domain.Quota
	loc            *time.Location
	contextTimeout time.Duration
	now            func() time.Time
}

// NewBookingService returns the booking allocator and quota engine.
// quota and loc must match the repository's so acceptance-time and
// query-time accounting cannot drift.
func NewBookingService(bookingRepo domain.BookingRepository, quota domain.Quota, loc *time.Location, timeout time.Duration) domain.BookingService {
	return &bookingService{
		bookingRepo:    bookingRepo,
		quota:          quota,
		loc:            loc,
		contextTimeout: timeout,
		now:            time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, participantID int64, timeStart, timeEnd time.Time) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !timeEnd.After(timeStart) {
		return nil, domain.ErrInvalidInterval
	}

	booking := domain.NewBooking(participantID, timeStart, timeEnd)
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if isAllocationError(err) {
			return nil, err
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

func (s *bookingService) Delete(ctx context.Context, bookingID, callerID int64) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.ParticipantID != callerID {
		return nil, domain.ErrForbidden
	}

	removed, err := s.bookingRepo.Delete(ctx, bookingID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete booking: %w", err)
	}
	return removed, nil
}

func (s *bookingService) GetBookings(ctx context.Context, fromDate, toDate time.Time) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if toDate.Before(fromDate) {
		return nil, domain.ErrInvalidInterval
	}

	// Inclusive date bounds: [fromDate 00:00, day after toDate 00:00).
	from, _ := domain.DayRange(fromDate, s.loc)
	_, to := domain.DayRange(toDate, s.loc)
	return s.bookingRepo.ListInRange(ctx, from, to)
}

func (s *bookingService) GetParticipantBookings(ctx context.Context, participantID int64) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.bookingRepo.ListByParticipant(ctx, participantID)
}

func (s *bookingService) BookingsForWeek(ctx context.Context, nextWeek bool) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	start := domain.WeekStart(s.now(), s.loc)
	if nextWeek {
		start = start.AddDate(0, 0, 7)
	}
	return s.bookingRepo.ListInRange(ctx, start, start.AddDate(0, 0, 7))
}

func (s *bookingService) RemainingDailyHours(ctx context.Context, participantID int64, date time.Time) (*domain.QuotaUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	from, to := domain.DayRange(date, s.loc)
	used, err := s.bookingRepo.SumHoursInRange(ctx, participantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum daily hours: %w", err)
	}
	return domain.NewQuotaUsage(used, s.quota.DailyCapHours), nil
}

func (s *bookingService) RemainingWeeklyHours(ctx context.Context, participantID int64, ref time.Time) (*domain.QuotaUsage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	from, to := domain.WeekRange(ref, s.loc)
	used, err := s.bookingRepo.SumHoursInRange(ctx, participantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("sum weekly hours: %w", err)
	}
	return domain.NewQuotaUsage(used, s.quota.WeeklyCapHours), nil
}

// isAllocationError reports whether err is one of the typed outcomes a
// create may surface to the caller unchanged.
func isAllocationError(err error) bool {
	return errors.Is(err, domain.ErrInvalidInterval) ||
		errors.Is(err, domain.ErrNotEligible) ||
		errors.Is(err, domain.ErrSlotTaken) ||
		errors.Is(err, domain.ErrQuotaExceeded) ||
		errors.Is(err, domain.ErrNotFound)
}
