package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"musicroombooking/internal/domain"

	"github.com/lib/pq"
)

// pqExclusionViolation is the class 23 code raised when an insert collides
// with the bookings_no_overlap exclusion constraint.
const pqExclusionViolation = "23P01"

type bookingRepository struct {
	DB    *sql.DB
	quota domain.Quota
	loc   *time.Location
}

// NewBookingRepository returns a BookingRepository backed by PostgreSQL.
// quota and loc drive the in-transaction quota checks; they must match what
// the quota read paths use so acceptance-time and query-time accounting agree.
func NewBookingRepository(db *sql.DB, quota domain.Quota, loc *time.Location) domain.BookingRepository {
	return &bookingRepository{
		DB:    db,
		quota: quota,
		loc:   loc,
	}
}

const sumHoursQuery = `
	SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (time_end - time_start))), 0) / 3600.0
	FROM bookings
	WHERE participant_id = $1 AND time_start >= $2 AND time_start < $3
`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	duration, err := domain.DurationHours(b.TimeStart, b.TimeEnd)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	// Lock the participant row: serializes quota checks for concurrent
	// creates by the same participant.
	var status domain.ParticipantStatus
	err = tx.QueryRowContext(ctx,
		`SELECT status FROM participants WHERE id = $1 FOR UPDATE`,
		b.ParticipantID,
	).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("lock participant: %w", err)
	}
	if status != domain.StatusActive {
		return domain.ErrNotEligible
	}

	var collides bool
	err = tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM bookings WHERE time_start < $2 AND time_end > $1)`,
		b.TimeStart, b.TimeEnd,
	).Scan(&collides)
	if err != nil {
		return fmt.Errorf("check collision: %w", err)
	}
	if collides {
		return domain.ErrSlotTaken
	}

	dayFrom, dayTo := domain.DayRange(b.TimeStart, r.loc)
	var dayUsed float64
	if err := tx.QueryRowContext(ctx, sumHoursQuery, b.ParticipantID, dayFrom, dayTo).Scan(&dayUsed); err != nil {
		return fmt.Errorf("sum daily hours: %w", err)
	}
	if dayUsed+duration > r.quota.DailyCapHours+1e-9 {
		return domain.ErrQuotaExceeded
	}

	weekFrom, weekTo := domain.WeekRange(b.TimeStart, r.loc)
	var weekUsed float64
	if err := tx.QueryRowContext(ctx, sumHoursQuery, b.ParticipantID, weekFrom, weekTo).Scan(&weekUsed); err != nil {
		return fmt.Errorf("sum weekly hours: %w", err)
	}
	if weekUsed+duration > r.quota.WeeklyCapHours+1e-9 {
		return domain.ErrQuotaExceeded
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (participant_id, time_start, time_end)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, b.ParticipantID, b.TimeStart, b.TimeEnd).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		if isExclusionViolation(err) {
			return domain.ErrSlotTaken
		}
		return fmt.Errorf("commit booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := r.DB.QueryRowContext(ctx, `
		DELETE FROM bookings
		WHERE id = $1
		RETURNING id, participant_id, time_start, time_end, created_at
	`, id).Scan(&b.ID, &b.ParticipantID, &b.TimeStart, &b.TimeEnd, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b := &domain.Booking{}
	err := r.DB.QueryRowContext(ctx, `
		SELECT b.id, b.participant_id, p.alias, b.time_start, b.time_end, b.created_at
		FROM bookings b
		INNER JOIN participants p ON p.id = b.participant_id
		WHERE b.id = $1
	`, id).Scan(&b.ID, &b.ParticipantID, &b.ParticipantAlias, &b.TimeStart, &b.TimeEnd, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) ListInRange(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.participant_id, p.alias, b.time_start, b.time_end, b.created_at
		FROM bookings b
		INNER JOIN participants p ON p.id = b.participant_id
		WHERE b.time_start >= $1 AND b.time_start < $2
		ORDER BY b.time_start
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) ListByParticipant(ctx context.Context, participantID int64) ([]*domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT b.id, b.participant_id, p.alias, b.time_start, b.time_end, b.created_at
		FROM bookings b
		INNER JOIN participants p ON p.id = b.participant_id
		WHERE b.participant_id = $1
		ORDER BY b.time_start
	`, participantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *bookingRepository) SumHoursInRange(ctx context.Context, participantID int64, from, to time.Time) (float64, error) {
	var hours float64
	err := r.DB.QueryRowContext(ctx, sumHoursQuery, participantID, from, to).Scan(&hours)
	if err != nil {
		return 0, err
	}
	return hours, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	for rows.Next() {
		b := &domain.Booking{}
		if err := rows.Scan(&b.ID, &b.ParticipantID, &b.ParticipantAlias, &b.TimeStart, &b.TimeEnd, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqExclusionViolation
}
