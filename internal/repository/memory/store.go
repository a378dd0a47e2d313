// Package memory provides a mutex-guarded in-memory implementation of the
// booking and participant repositories. It mirrors the transactional
// semantics of the postgres package and backs the service tests; it is also
// usable for local runs without a database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"musicroombooking/internal/domain"
)

// Store holds all state behind one mutex, so a booking create observes a
// consistent snapshot exactly like the SQL transaction does. The repository
// views returned by Bookings and Participants share it.
type Store struct {
	mu           sync.Mutex
	quota        domain.Quota
	loc          *time.Location
	participants map[int64]*domain.Participant
	bookings     map[int64]*domain.Booking
	nextPartID   int64
	nextBookID   int64
}

// NewStore returns an empty Store enforcing the given quota in loc.
func NewStore(quota domain.Quota, loc *time.Location) *Store {
	return &Store{
		quota:        quota,
		loc:          loc,
		participants: make(map[int64]*domain.Participant),
		bookings:     make(map[int64]*domain.Booking),
		nextPartID:   1,
		nextBookID:   1,
	}
}

// Bookings returns the booking repository view of the store.
func (s *Store) Bookings() domain.BookingRepository {
	return &bookingRepo{s: s}
}

// Participants returns the participant repository view of the store.
func (s *Store) Participants() domain.ParticipantRepository {
	return &participantRepo{s: s}
}

type bookingRepo struct {
	s *Store
}

func (r *bookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	duration, err := domain.DurationHours(b.TimeStart, b.TimeEnd)
	if err != nil {
		return err
	}

	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[b.ParticipantID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != domain.StatusActive {
		return domain.ErrNotEligible
	}

	for _, existing := range s.bookings {
		if domain.Overlaps(b.TimeStart, b.TimeEnd, existing.TimeStart, existing.TimeEnd) {
			return domain.ErrSlotTaken
		}
	}

	dayFrom, dayTo := domain.DayRange(b.TimeStart, s.loc)
	if s.sumHoursLocked(b.ParticipantID, dayFrom, dayTo)+duration > s.quota.DailyCapHours+1e-9 {
		return domain.ErrQuotaExceeded
	}
	weekFrom, weekTo := domain.WeekRange(b.TimeStart, s.loc)
	if s.sumHoursLocked(b.ParticipantID, weekFrom, weekTo)+duration > s.quota.WeeklyCapHours+1e-9 {
		return domain.ErrQuotaExceeded
	}

	b.ID = s.nextBookID
	s.nextBookID++
	b.CreatedAt = time.Now()
	stored := *b
	s.bookings[b.ID] = &stored
	return nil
}

func (r *bookingRepo) Delete(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(s.bookings, id)
	return s.withAliasLocked(b), nil
}

func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return s.withAliasLocked(b), nil
}

func (r *bookingRepo) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Booking
	for _, b := range s.bookings {
		if !b.TimeStart.Before(from) && b.TimeStart.Before(to) {
			out = append(out, s.withAliasLocked(b))
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *bookingRepo) ListByParticipant(ctx context.Context, participantID int64) ([]*domain.Booking, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*domain.Booking
	for _, b := range s.bookings {
		if b.ParticipantID == participantID {
			out = append(out, s.withAliasLocked(b))
		}
	}
	sortByStart(out)
	return out, nil
}

func (r *bookingRepo) SumHoursInRange(ctx context.Context, participantID int64, from, to time.Time) (float64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumHoursLocked(participantID, from, to), nil
}

func (s *Store) sumHoursLocked(participantID int64, from, to time.Time) float64 {
	var hours float64
	for _, b := range s.bookings {
		if b.ParticipantID != participantID {
			continue
		}
		if !b.TimeStart.Before(from) && b.TimeStart.Before(to) {
			hours += b.TimeEnd.Sub(b.TimeStart).Hours()
		}
	}
	return hours
}

// withAliasLocked copies the booking and joins the participant alias in,
// matching the SQL list queries.
func (s *Store) withAliasLocked(b *domain.Booking) *domain.Booking {
	out := *b
	if p, ok := s.participants[b.ParticipantID]; ok {
		out.ParticipantAlias = p.Alias
	}
	return &out
}

func sortByStart(bookings []*domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool {
		return bookings[i].TimeStart.Before(bookings[j].TimeStart)
	})
}
