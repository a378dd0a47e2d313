package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"musicroombooking/internal/domain"
)

type participantService struct {
	participantRepo domain.ParticipantRepository
	contextTimeout  time.Duration
}

func NewParticipantService(participantRepo domain.ParticipantRepository, timeout time.Duration) domain.ParticipantService {
	return &participantService{
		participantRepo: participantRepo,
		contextTimeout:  timeout,
	}
}

func (s *participantService) Create(ctx context.Context, alias string) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	alias = strings.TrimSpace(alias)
	if alias == "" {
		return nil, fmt.Errorf("alias is required")
	}

	participant := domain.NewParticipant(alias)
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		return nil, fmt.Errorf("create participant: %w", err)
	}
	return participant, nil
}

func (s *participantService) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.participantRepo.GetByID(ctx, id)
}

func (s *participantService) ChangeStatus(ctx context.Context, id int64, status domain.ParticipantStatus) (*domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("unknown status %q", status)
	}
	return s.participantRepo.ChangeStatus(ctx, id, status)
}
