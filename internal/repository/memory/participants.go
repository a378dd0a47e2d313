package memory

import (
	"context"
	"time"

	"musicroombooking/internal/domain"
)

type participantRepo struct {
	s *Store
}

func (r *participantRepo) Create(ctx context.Context, p *domain.Participant) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPartID
	s.nextPartID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	stored := *p
	s.participants[p.ID] = &stored
	return nil
}

func (r *participantRepo) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (r *participantRepo) ChangeStatus(ctx context.Context, id int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.participants[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = time.Now()
	out := *p
	return &out, nil
}
