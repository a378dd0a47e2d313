package services

import (
	"context"
	"testing"
	"time"

	"musicroombooking/internal/domain"
	"musicroombooking/internal/repository/memory"

	"github.com/stretchr/testify/require"
)

func TestParticipantService_Create(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(testQuota, time.UTC)
	svc := NewParticipantService(store.Participants(), 5*time.Second)

	p, err := svc.Create(ctx, "  ivan  ")
	require.NoError(t, err)
	require.Equal(t, "ivan", p.Alias)
	require.Equal(t, domain.StatusPending, p.Status)
	require.NotZero(t, p.ID)

	_, err = svc.Create(ctx, "   ")
	require.Error(t, err)
}

func TestParticipantService_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(testQuota, time.UTC)
	svc := NewParticipantService(store.Participants(), 5*time.Second)

	p, err := svc.Create(ctx, "ivan")
	require.NoError(t, err)

	updated, err := svc.ChangeStatus(ctx, p.ID, domain.StatusActive)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, updated.Status)

	_, err = svc.ChangeStatus(ctx, p.ID, domain.ParticipantStatus("frozen"))
	require.Error(t, err)

	_, err = svc.ChangeStatus(ctx, 999, domain.StatusActive)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
