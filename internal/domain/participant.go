package domain

import (
	"context"
	"time"
)

// ParticipantStatus gates booking eligibility. Only active participants may
// book; suspension is the way to retire a participant, their rows survive.
type ParticipantStatus string

const (
	StatusPending   ParticipantStatus = "pending"
	StatusActive    ParticipantStatus = "active"
	StatusSuspended ParticipantStatus = "suspended"
)

// ValidStatus reports whether s is one of the known participant statuses.
func ValidStatus(s ParticipantStatus) bool {
	switch s {
	case StatusPending, StatusActive, StatusSuspended:
		return true
	}
	return false
}

// Participant represents a registered music room participant.
// swagger:model Participant
type Participant struct {
	ID        int64             `json:"id"`
	Alias     string            `json:"alias"`
	Status    ParticipantStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NewParticipant returns a new Participant with the given alias in pending
// status. ID is set by the repository on create.
func NewParticipant(alias string) *Participant {
	return &Participant{
		Alias:  alias,
		Status: StatusPending,
	}
}

// ParticipantRepository defines the interface for participant storage.
type ParticipantRepository interface {
	Create(ctx context.Context, participant *Participant) error
	GetByID(ctx context.Context, id int64) (*Participant, error)
	// ChangeStatus updates the status and returns the updated participant,
	// or ErrNotFound.
	ChangeStatus(ctx context.Context, id int64, status ParticipantStatus) (*Participant, error)
}

// ParticipantService defines the business logic for participant management.
type ParticipantService interface {
	Create(ctx context.Context, alias string) (*Participant, error)
	GetByID(ctx context.Context, id int64) (*Participant, error)
	ChangeStatus(ctx context.Context, id int64, status ParticipantStatus) (*Participant, error)
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated participant.
type TokenIssuer interface {
	Issue(participantID int64, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated participant ID.
type TokenVerifier interface {
	Verify(token string) (participantID int64, err error)
}
