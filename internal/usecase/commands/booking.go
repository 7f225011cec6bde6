package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"coworkhub/internal/domain/booking"
	reqdto "coworkhub/internal/handler/dto/request"
	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/clock"
	"coworkhub/internal/pkg/errs"
	"coworkhub/internal/pkg/metrics"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrWorkspaceNotFound       = errs.New("workspace not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrNotBookingOwner         = errs.New("booking belongs to another member")
	ErrInvalidBookingState     = errs.New("booking state does not allow this operation")
	ErrAlreadyCheckedIn        = errs.New("already checked in")
	ErrAlreadyCheckedOut       = errs.New("already checked out")
	ErrActiveBookingExists     = errs.New("another booking is currently checked in")
	ErrCheckInTooEarly         = errs.New("check-in window has not opened yet")
	ErrCheckInWindowExpired    = errs.New("check-in window has expired")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// Usage summarizes booked versus actual time for a completed stay.
type Usage struct {
	BookedHours float64
	ActualHours float64
	Description string
}

// Charges is the money side of a settlement: the estimate collected at
// booking time and the reconciled final amount with its delta.
type Charges struct {
	InitialChargeCents int64
	FinalChargeCents   int64
	OverageCents       int64
	RefundCents        int64
}

type CheckOutResult struct {
	Booking                   *queries.BookingView
	Usage                     Usage
	Charges                   Charges
	RequiresAdditionalPayment bool
	RequiresRefund            bool
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req reqdto.CreateBookingRequest, userID uuid.UUID) (*queries.BookingView, error)
	CheckIn(ctx context.Context, bookingID, userID uuid.UUID) (*queries.BookingView, error)
	CheckOut(ctx context.Context, bookingID, userID uuid.UUID) (*CheckOutResult, error)
	Cancel(ctx context.Context, bookingID, userID uuid.UUID) error
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	bookingQueries queries.BookingQueries
	gateway        PaymentGateway
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	bookingQueries queries.BookingQueries,
	gateway PaymentGateway,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		bookingQueries: bookingQueries,
		gateway:        gateway,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	req reqdto.CreateBookingRequest,
	userID uuid.UUID,
) (*queries.BookingView, error) {
	ws, err := c.uow.CommandReads().WorkspaceByID(ctx, req.WorkspaceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	usr, err := c.uow.CommandReads().UserByID(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := booking.NewBooking(
		userID,
		booking.WorkspaceSpec{
			ID:              ws.ID,
			Name:            ws.Name,
			HourlyRateCents: ws.HourlyRateCents,
		},
		req.StartTime,
		req.EndTime,
		usr.NFTHolder,
		c.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var bookingID uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, createErr := tx.Bookings().Create(ctx, tx.DB(), entity)
		if createErr != nil {
			return createErr
		}
		bookingID = id
		return nil
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write: return the persisted view from the read store
	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

// CheckIn walks the rejection ladder in the order the member sees it:
// unknown booking, someone else's booking, a dead state, a repeated
// check-in, an active stay elsewhere, and finally the timing window.
func (c *bookingCommandsImpl) CheckIn(ctx context.Context, bookingID, userID uuid.UUID) (*queries.BookingView, error) {
	now := c.clock.Now()

	var view *queries.BookingView
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := snapshotToBooking(snap)
		if !entity.IsOwnedBy(userID) {
			return ErrNotBookingOwner
		}

		// State rejections outrank the cross-booking conflict: a dead or
		// already-started booking never reports a stay elsewhere.
		switch entity.Status() {
		case booking.StatusCancelled, booking.StatusCompleted:
			return ErrInvalidBookingState
		}
		if entity.CheckInTime() != nil {
			return ErrAlreadyCheckedIn
		}

		active, err := tx.Reads().ActiveBookingByUser(ctx, userID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if active != nil && active.ID != bookingID {
			return errs.Mark(
				errs.Newf("already checked in at %s", active.WorkspaceName),
				ErrActiveBookingExists,
			)
		}

		if err := entity.CheckIn(now); err != nil {
			return mapCheckInError(err, entity, now)
		}

		affected, err := tx.Bookings().CheckIn(ctx, tx.DB(), bookingID, now)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			// Lost the race against a concurrent check-in
			return ErrAlreadyCheckedIn
		}
		return nil
	})
	if err != nil {
		metrics.IncCheckIn("rejected")
		return nil, err
	}

	view, err = c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	metrics.IncCheckIn("success")
	return view, nil
}

// CheckOut completes the stay and settles the final charge. The
// payment delta is reported to the gateway after commit; a gateway
// failure is logged, never surfaced, the completed state is already
// durable.
func (c *bookingCommandsImpl) CheckOut(ctx context.Context, bookingID, userID uuid.UUID) (*CheckOutResult, error) {
	now := c.clock.Now()

	var result *CheckOutResult
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := snapshotToBooking(snap)
		if !entity.IsOwnedBy(userID) {
			return ErrNotBookingOwner
		}

		settlement, err := entity.CheckOut(now)
		if err != nil {
			switch {
			case errors.Is(err, booking.ErrAlreadyCheckedOut):
				return ErrAlreadyCheckedOut
			case errors.Is(err, booking.ErrNotCheckedIn):
				return ErrInvalidBookingState
			default:
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		affected, err := tx.Bookings().CheckOut(ctx, tx.DB(), bookingID, now, *entity.ActualHours(), settlement.FinalChargeCents)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrAlreadyCheckedOut
		}

		result = &CheckOutResult{
			Usage: Usage{
				BookedHours: entity.BookedHours(),
				ActualHours: *entity.ActualHours(),
				Description: settlement.Description,
			},
			Charges: Charges{
				InitialChargeCents: entity.TotalPriceCents(),
				FinalChargeCents:   settlement.FinalChargeCents,
				OverageCents:       settlement.OverageCents,
				RefundCents:        settlement.RefundCents,
			},
			RequiresAdditionalPayment: settlement.OverageCents > 0,
			RequiresRefund:            settlement.RefundCents > 0,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.bookingQueries.GetByIDSystem(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	result.Booking = view

	c.reportSettlement(ctx, bookingID, userID, result)
	return result, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, bookingID, userID uuid.UUID) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().BookingByID(ctx, bookingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBookingNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		entity := snapshotToBooking(snap)
		if !entity.IsOwnedBy(userID) {
			return ErrNotBookingOwner
		}

		if err := entity.Cancel(); err != nil {
			switch {
			case errors.Is(err, booking.ErrTerminalState):
				return ErrInvalidBookingState
			case errors.Is(err, booking.ErrAlreadyCheckedIn):
				return ErrAlreadyCheckedIn
			default:
				return errs.Mark(err, ErrDomainValidation)
			}
		}

		affected, err := tx.Bookings().Cancel(ctx, tx.DB(), bookingID)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if affected == 0 {
			return ErrInvalidBookingState
		}
		return nil
	})
}

func (c *bookingCommandsImpl) reportSettlement(ctx context.Context, bookingID, userID uuid.UUID, result *CheckOutResult) {
	var instruction PaymentInstruction
	switch {
	case result.RequiresAdditionalPayment:
		metrics.IncCheckOut("overage")
		instruction = PaymentInstruction{
			BookingID:   bookingID,
			UserID:      userID,
			Kind:        PaymentKindCharge,
			AmountCents: result.Charges.OverageCents,
			Description: result.Usage.Description,
		}
	case result.RequiresRefund:
		metrics.IncCheckOut("refund")
		instruction = PaymentInstruction{
			BookingID:   bookingID,
			UserID:      userID,
			Kind:        PaymentKindRefund,
			AmountCents: result.Charges.RefundCents,
			Description: result.Usage.Description,
		}
	default:
		metrics.IncCheckOut("exact")
		return
	}

	if err := c.gateway.Report(ctx, instruction); err != nil {
		slog.Error("failed to report settlement to payment gateway",
			"booking_id", bookingID, "kind", instruction.Kind,
			"amount_cents", instruction.AmountCents, "error", err.Error())
	}
}

func mapCheckInError(err error, entity *booking.Booking, now time.Time) error {
	switch {
	case errors.Is(err, booking.ErrBookingCancelled), errors.Is(err, booking.ErrBookingCompleted):
		return ErrInvalidBookingState
	case errors.Is(err, booking.ErrAlreadyCheckedIn):
		return ErrAlreadyCheckedIn
	case errors.Is(err, booking.ErrCheckInTooEarly):
		return errs.Mark(
			errs.Newf("check-in opens in %d minutes", entity.MinutesUntilWindow(now)),
			ErrCheckInTooEarly,
		)
	case errors.Is(err, booking.ErrCheckInExpired):
		return ErrCheckInWindowExpired
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

func snapshotToBooking(snap *shared.BookingSnapshot) *booking.Booking {
	return booking.ReconstructBooking(
		snap.ID, snap.UserID, snap.WorkspaceID,
		snap.ConfirmationCode,
		snap.BookingDate, snap.StartTime, snap.EndTime,
		booking.Status(snap.Status),
		snap.CheckInTime, snap.CheckOutTime,
		snap.SubtotalCents, snap.ProcessingFeeCents, snap.TotalPriceCents,
		snap.NFTDiscountApplied,
		snap.FinalChargeCents,
		snap.ActualHours,
		snap.CreatedAt, snap.UpdatedAt,
	)
}
