package postgres

import (
	"context"
	"database/sql"
	"errors"

	"musicroombooking/internal/domain"
)

type participantRepository struct {
	DB *sql.DB
}

func NewParticipantRepository(db *sql.DB) domain.ParticipantRepository {
	return &participantRepository{
		DB: db,
	}
}

func (r *participantRepository) Create(ctx context.Context, p *domain.Participant) error {
	query := `
		INSERT INTO participants (alias, status)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	return r.DB.QueryRowContext(ctx, query, p.Alias, p.Status).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *participantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	query := `
		SELECT id, alias, status, created_at, updated_at
		FROM participants
		WHERE id = $1
	`
	p := &domain.Participant{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Alias, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *participantRepository) ChangeStatus(ctx context.Context, id int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	query := `
		UPDATE participants
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, alias, status, created_at, updated_at
	`
	p := &domain.Participant{}
	err := r.DB.QueryRowContext(ctx, query, id, status).Scan(&p.ID, &p.Alias, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}
