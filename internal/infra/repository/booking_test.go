//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		rowErr        error
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name:          "success: booking created",
			rowErr:        nil,
			expectedError: false,
		},
		{
			name:          "error: database error occurs",
			rowErr:        errors.New("database connection error"),
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name:          "error: duplicate confirmation code",
			rowErr:        &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"},
			expectedError: true,
			expectKind:    infra.KindDuplicateKey,
		},
		{
			name:          "error: unknown workspace",
			rowErr:        &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			entity := buildTestBooking(t)
			tx := &stubDBTX{rowErr: tc.rowErr, rowID: entity.ID()}
			repo := repository.NewBookingRepository()

			id, err := repo.Create(ctx, tx, entity)

			if tc.expectedError {
				require.Error(t, err)
				assert.True(t, infra.IsKind(err, tc.expectKind))
				assert.Equal(t, uuid.Nil, id)
			} else {
				require.NoError(t, err)
				assert.Equal(t, entity.ID(), id)
			}
		})
	}
}

// =============================================================================
// Conditional Update Tests
// =============================================================================

func TestBookingRepository_CheckIn(t *testing.T) {
	ctx := context.Background()

	t.Run("success: one row updated", func(t *testing.T) {
		tx := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewBookingRepository()

		affected, err := repo.CheckIn(ctx, tx, uuid.New(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("race lost: zero rows reported, no error", func(t *testing.T) {
		tx := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewBookingRepository()

		affected, err := repo.CheckIn(ctx, tx, uuid.New(), time.Now())

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})

	t.Run("error: database failure is wrapped", func(t *testing.T) {
		tx := &stubDBTX{execErr: errors.New("connection reset")}
		repo := repository.NewBookingRepository()

		_, err := repo.CheckIn(ctx, tx, uuid.New(), time.Now())

		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestBookingRepository_CheckOut(t *testing.T) {
	ctx := context.Background()

	t.Run("success: settlement columns written", func(t *testing.T) {
		tx := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 1")}
		repo := repository.NewBookingRepository()

		affected, err := repo.CheckOut(ctx, tx, uuid.New(), time.Now(), 2.5, 4800)

		require.NoError(t, err)
		assert.Equal(t, int64(1), affected)
	})

	t.Run("already checked out: zero rows", func(t *testing.T) {
		tx := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewBookingRepository()

		affected, err := repo.CheckOut(ctx, tx, uuid.New(), time.Now(), 2.5, 4800)

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func TestBookingRepository_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("active or terminal booking: zero rows", func(t *testing.T) {
		tx := &stubDBTX{execTag: pgconn.NewCommandTag("UPDATE 0")}
		repo := repository.NewBookingRepository()

		affected, err := repo.Cancel(ctx, tx, uuid.New())

		require.NoError(t, err)
		assert.Equal(t, int64(0), affected)
	})
}

func buildTestBooking(t *testing.T) *booking.Booking {
	t.Helper()
	now := time.Now().UTC()
	start := now.AddDate(0, 0, 1).Truncate(24 * time.Hour).Add(9 * time.Hour)
	entity, err := booking.NewBooking(
		uuid.New(),
		booking.WorkspaceSpec{ID: uuid.New(), Name: "Focus Pod A", HourlyRateCents: 1500},
		start, start.Add(4*time.Hour),
		false,
		now,
	)
	require.NoError(t, err)
	return entity
}

// stubDBTX scripts pgx results so repository error classification is
// testable without a live connection.
type stubDBTX struct {
	execTag pgconn.CommandTag
	execErr error
	rowID   uuid.UUID
	rowErr  error
}

func (s *stubDBTX) Exec(_ context.Context, _ string, _ ...any) (pgconn.CommandTag, error) {
	return s.execTag, s.execErr
}

func (s *stubDBTX) Query(_ context.Context, _ string, _ ...any) (pgx.Rows, error) {
	return nil, errors.New("stubDBTX.Query not scripted")
}

func (s *stubDBTX) QueryRow(_ context.Context, _ string, _ ...any) pgx.Row {
	return &stubRow{id: s.rowID, err: s.rowErr}
}

type stubRow struct {
	id  uuid.UUID
	err error
}

func (r *stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) > 0 {
		if id, ok := dest[0].(*uuid.UUID); ok {
			*id = r.id
		}
	}
	return nil
}
