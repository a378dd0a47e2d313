package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"musicroombooking/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestParticipantRepository_Create(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO participants`).
		WithArgs("ivan", domain.StatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(int64(7), now, now))

	repo := NewParticipantRepository(db)
	p := domain.NewParticipant("ivan")
	require.NoError(t, repo.Create(ctx, p))
	require.Equal(t, int64(7), p.ID)
	require.Equal(t, domain.StatusPending, p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestParticipantRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			id:   7,
			mock: func(mock sqlmock.Sqlmock) {
				now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
				mock.ExpectQuery(`SELECT id, alias, status, created_at, updated_at`).
					WithArgs(int64(7)).
					WillReturnRows(sqlmock.NewRows([]string{"id", "alias", "status", "created_at", "updated_at"}).
						AddRow(int64(7), "ivan", "active", now, now))
			},
		},
		{
			name: "not found",
			id:   99,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, alias, status, created_at, updated_at`).
					WithArgs(int64(99)).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewParticipantRepository(db)
			p, err := repo.GetByID(ctx, tt.id)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, domain.StatusActive, p.Status)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestParticipantRepository_ChangeStatus(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`UPDATE participants`).
		WithArgs(int64(7), domain.StatusActive).
		WillReturnRows(sqlmock.NewRows([]string{"id", "alias", "status", "created_at", "updated_at"}).
			AddRow(int64(7), "ivan", "active", now, now))

	repo := NewParticipantRepository(db)
	p, err := repo.ChangeStatus(ctx, 7, domain.StatusActive)
	require.NoError(t, err)
	require.Equal(t, domain.StatusActive, p.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}
