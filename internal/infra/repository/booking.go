package repository

import (
	"context"
	"errors"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

const createBookingSQL = `
INSERT INTO bookings (
    id, user_id, workspace_id, confirmation_code, booking_date,
    start_time, end_time, status,
    subtotal_cents, processing_fee_cents, total_price_cents, nft_discount_applied
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
RETURNING id`

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBookingSQL,
		b.ID(), b.UserID(), b.WorkspaceID(), b.ConfirmationCode(), b.BookingDate(),
		b.StartTime(), b.EndTime(), string(b.Status()),
		b.SubtotalCents(), b.ProcessingFeeCents(), b.TotalPriceCents(), b.NFTDiscountApplied(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err, classifyPgErr(err))
	}
	return id, nil
}

const checkInSQL = `
UPDATE bookings
SET check_in_time = $2, status = 'checked_in', updated_at = now()
WHERE id = $1 AND check_in_time IS NULL
  AND status NOT IN ('cancelled', 'completed')`

// CheckIn relies on the conditional WHERE so exactly one of two racing
// requests updates the row; the loser sees zero rows affected.
func (r *BookingRepository) CheckIn(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time) (int64, error) {
	tag, err := tx.Exec(ctx, checkInSQL, id, at)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to check in booking", err, classifyPgErr(err))
	}
	return tag.RowsAffected(), nil
}

const checkOutSQL = `
UPDATE bookings
SET check_out_time = $2, status = 'completed',
    actual_hours = $3, final_charge_cents = $4, updated_at = now()
WHERE id = $1 AND check_in_time IS NOT NULL AND check_out_time IS NULL`

func (r *BookingRepository) CheckOut(ctx context.Context, tx db.DBTX, id uuid.UUID, at time.Time, actualHours float64, finalChargeCents int64) (int64, error) {
	tag, err := tx.Exec(ctx, checkOutSQL, id, at, actualHours, finalChargeCents)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to check out booking", err)
	}
	return tag.RowsAffected(), nil
}

const cancelBookingSQL = `
UPDATE bookings
SET status = 'cancelled', updated_at = now()
WHERE id = $1 AND status IN ('pending', 'confirmed') AND check_in_time IS NULL`

func (r *BookingRepository) Cancel(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, cancelBookingSQL, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to cancel booking", err)
	}
	return tag.RowsAffected(), nil
}

func classifyPgErr(err error) infra.RepositoryErrorKind {
	if pgconv.IsNoRows(err) {
		return infra.KindNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrCodeUniqueViolation:
			return infra.KindDuplicateKey
		case pgErrCodeForeignKeyViolation:
			return infra.KindForeignKeyViolated
		}
	}
	return infra.KindDBFailure
}
