//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"coworkhub/internal/domain/booking"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/clock"
	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/shared"
	queriesmock "coworkhub/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Check-In Rejection Ladder Tests
// =============================================================================

func TestBookingCommands_CheckIn_RejectionOrder(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	userID := uuid.New()
	bookingID := uuid.New()
	activeID := uuid.New()

	baseSnapshot := func(status string) *shared.BookingSnapshot {
		return &shared.BookingSnapshot{
			ID:                 bookingID,
			UserID:             userID,
			WorkspaceID:        uuid.New(),
			WorkspaceName:      "Focus Pod A",
			ConfirmationCode:   "CWH-TEST0001",
			BookingDate:        now.Truncate(24 * time.Hour),
			StartTime:          now.Add(5 * time.Minute),
			EndTime:            now.Add(4 * time.Hour),
			Status:             status,
			SubtotalCents:      6000,
			ProcessingFeeCents: 204,
			TotalPriceCents:    6204,
		}
	}
	activeElsewhere := func() *shared.BookingSnapshot {
		at := now.Add(-time.Hour)
		return &shared.BookingSnapshot{
			ID:            activeID,
			UserID:        userID,
			WorkspaceName: "Focus Pod B",
			Status:        "checked_in",
			CheckInTime:   &at,
		}
	}

	testCases := []struct {
		name    string
		booking *shared.BookingSnapshot
		active  *shared.BookingSnapshot
		errIs   error
	}{
		{
			name:    "cancelled booking rejected as invalid state before the conflict check",
			booking: baseSnapshot("cancelled"),
			active:  activeElsewhere(),
			errIs:   commands.ErrInvalidBookingState,
		},
		{
			name:    "completed booking rejected as invalid state before the conflict check",
			booking: baseSnapshot("completed"),
			active:  activeElsewhere(),
			errIs:   commands.ErrInvalidBookingState,
		},
		{
			name: "repeated check-in rejected before the conflict check",
			booking: func() *shared.BookingSnapshot {
				snap := baseSnapshot("checked_in")
				at := now.Add(-time.Minute)
				snap.CheckInTime = &at
				return snap
			}(),
			active: activeElsewhere(),
			errIs:  commands.ErrAlreadyCheckedIn,
		},
		{
			name:    "eligible booking with a stay elsewhere reports the conflict",
			booking: baseSnapshot("confirmed"),
			active:  activeElsewhere(),
			errIs:   commands.ErrActiveBookingExists,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			uow := &stubUoW{reads: &stubReads{booking: tc.booking, active: tc.active}}
			cmds := commands.NewBookingCommands(
				uow,
				queriesmock.NewMockBookingQueries(ctrl),
				stubGateway{},
				clock.NewMockClock(now),
			)

			_, err := cmds.CheckIn(ctx, bookingID, userID)

			assert.ErrorIs(t, err, tc.errIs)
		})
	}
}

// =============================================================================
// Stubs
// =============================================================================

type stubUoW struct {
	reads *stubReads
}

func (u *stubUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &stubTx{reads: u.reads})
}

func (u *stubUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *stubUoW) CommandReads() shared.CommandReads {
	return u.reads
}

type stubTx struct {
	reads *stubReads
}

func (t *stubTx) Bookings() shared.BookingRepository { return stubBookingRepo{} }
func (t *stubTx) Orders() shared.OrderRepository     { return nil }
func (t *stubTx) Users() shared.UserRepository       { return nil }
func (t *stubTx) Reads() shared.CommandReads         { return t.reads }
func (t *stubTx) DB() db.DBTX                        { return nil }

type stubReads struct {
	booking *shared.BookingSnapshot
	active  *shared.BookingSnapshot
}

func (r *stubReads) BookingByID(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.booking, nil
}

func (r *stubReads) ActiveBookingByUser(_ context.Context, _ uuid.UUID) (*shared.BookingSnapshot, error) {
	return r.active, nil
}

func (r *stubReads) WorkspaceByID(_ context.Context, _ uuid.UUID) (*shared.WorkspaceSnapshot, error) {
	return nil, nil
}

func (r *stubReads) UserByID(_ context.Context, _ uuid.UUID) (*shared.UserSnapshot, error) {
	return nil, nil
}

func (r *stubReads) MenuItemByID(_ context.Context, _ uuid.UUID) (*shared.MenuItemSnapshot, error) {
	return nil, nil
}

type stubBookingRepo struct{}

func (stubBookingRepo) Create(_ context.Context, _ db.DBTX, _ *booking.Booking) (uuid.UUID, error) {
	return uuid.Nil, nil
}

func (stubBookingRepo) CheckIn(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time) (int64, error) {
	return 1, nil
}

func (stubBookingRepo) CheckOut(_ context.Context, _ db.DBTX, _ uuid.UUID, _ time.Time, _ float64, _ int64) (int64, error) {
	return 1, nil
}

func (stubBookingRepo) Cancel(_ context.Context, _ db.DBTX, _ uuid.UUID) (int64, error) {
	return 1, nil
}

type stubGateway struct{}

func (stubGateway) Report(_ context.Context, _ commands.PaymentInstruction) error {
	return nil
}
