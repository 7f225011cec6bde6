package readstore

import (
	"context"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/pgconv"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(db db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: db}
}

const bookingViewColumns = `
    b.id, b.user_id, b.workspace_id, w.name AS workspace_name,
    b.confirmation_code, b.booking_date, b.start_time, b.end_time, b.status,
    b.check_in_time, b.check_out_time,
    b.subtotal_cents, b.processing_fee_cents, b.total_price_cents,
    b.nft_discount_applied, b.final_charge_cents, b.actual_hours,
    b.created_at, b.updated_at`

const findBookingByIDSQL = `
SELECT` + bookingViewColumns + `
FROM bookings b
JOIN workspaces w ON w.id = b.workspace_id
WHERE b.id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, findBookingByIDSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return view, nil
}

const findActiveBookingSQL = `
SELECT` + bookingViewColumns + `
FROM bookings b
JOIN workspaces w ON w.id = b.workspace_id
WHERE b.user_id = $1 AND b.status = 'checked_in'
LIMIT 1`

// FindActiveByUser returns the member's currently checked-in booking.
func (r *BookingReadStore) FindActiveByUser(ctx context.Context, userID uuid.UUID) (*queries.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, findActiveBookingSQL, userID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active booking", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active booking", err)
	}
	return view, nil
}

const findBookingsByUserSQL = `
SELECT b.id, w.name AS workspace_name, b.start_time, b.end_time, b.status,
       b.total_price_cents, b.created_at
FROM bookings b
JOIN workspaces w ON w.id = b.workspace_id
WHERE b.user_id = $1
ORDER BY b.created_at DESC, b.id DESC
LIMIT $2`

func (r *BookingReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, findBookingsByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find bookings by user ID", err)
	}
	defer rows.Close()

	var result []*queries.BookingListItem
	for rows.Next() {
		item := &queries.BookingListItem{}
		if err := rows.Scan(
			&item.ID, &item.WorkspaceName, &item.StartTime, &item.EndTime,
			&item.Status, &item.TotalPriceCents, &item.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list item", err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBookingView(row rowScanner) (*queries.BookingView, error) {
	var (
		view         queries.BookingView
		checkInTime  pgtype.Timestamptz
		checkOutTime pgtype.Timestamptz
		finalCharge  pgtype.Int8
		actualHours  pgtype.Float8
	)
	err := row.Scan(
		&view.ID, &view.UserID, &view.WorkspaceID, &view.WorkspaceName,
		&view.ConfirmationCode, &view.BookingDate, &view.StartTime, &view.EndTime, &view.Status,
		&checkInTime, &checkOutTime,
		&view.SubtotalCents, &view.ProcessingFeeCents, &view.TotalPriceCents,
		&view.NFTDiscountApplied, &finalCharge, &actualHours,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	view.CheckInTime = pgconv.TimePtrFromPgtype(checkInTime)
	view.CheckOutTime = pgconv.TimePtrFromPgtype(checkOutTime)
	view.FinalChargeCents = pgconv.Int64PtrFromPgtype(finalCharge)
	view.ActualHours = pgconv.Float64PtrFromPgtype(actualHours)
	return &view, nil
}
