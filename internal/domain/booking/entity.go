package booking

import (
	"errors"
	"math"
	"time"

	"coworkhub/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeRange  = errors.New("start time must be before end time")
	ErrBookingCancelled  = errors.New("cannot check in to a cancelled booking")
	ErrBookingCompleted  = errors.New("booking already completed")
	ErrAlreadyCheckedIn  = errors.New("already checked in")
	ErrAlreadyCheckedOut = errors.New("already checked out")
	ErrNotCheckedIn      = errors.New("must check in before checking out")
	ErrCheckInTooEarly   = errors.New("check-in window has not opened yet")
	ErrCheckInExpired    = errors.New("check-in window has expired")
	ErrTerminalState     = errors.New("booking is in a terminal state")
)

// Check-in is allowed from 15 minutes before the booked start until 60
// minutes after the booked end.
const (
	checkInEarlyWindow = 15 * time.Minute
	checkInLateWindow  = 60 * time.Minute

	// Keeps the per-hour rate well-defined when check-out follows
	// check-in almost immediately.
	minActualHours = 1.0 / 3600.0
)

type Booking struct {
	id                 uuid.UUID
	userID             uuid.UUID
	workspaceID        uuid.UUID
	confirmationCode   string
	bookingDate        time.Time
	startTime          time.Time
	endTime            time.Time
	status             Status
	checkInTime        *time.Time
	checkOutTime       *time.Time
	subtotalCents      int64
	processingFeeCents int64
	totalPriceCents    int64
	nftDiscountApplied bool
	finalChargeCents   *int64
	actualHours        *float64
	createdAt          time.Time
	updatedAt          time.Time
}

func ReconstructBooking(
	id, userID, workspaceID uuid.UUID,
	confirmationCode string,
	bookingDate, startTime, endTime time.Time,
	status Status,
	checkInTime, checkOutTime *time.Time,
	subtotalCents, processingFeeCents, totalPriceCents int64,
	nftDiscountApplied bool,
	finalChargeCents *int64,
	actualHours *float64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:                 id,
		userID:             userID,
		workspaceID:        workspaceID,
		confirmationCode:   confirmationCode,
		bookingDate:        bookingDate,
		startTime:          startTime,
		endTime:            endTime,
		status:             status,
		checkInTime:        checkInTime,
		checkOutTime:       checkOutTime,
		subtotalCents:      subtotalCents,
		processingFeeCents: processingFeeCents,
		totalPriceCents:    totalPriceCents,
		nftDiscountApplied: nftDiscountApplied,
		finalChargeCents:   finalChargeCents,
		actualHours:        actualHours,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID            { return b.id }
func (b *Booking) UserID() uuid.UUID        { return b.userID }
func (b *Booking) WorkspaceID() uuid.UUID   { return b.workspaceID }
func (b *Booking) ConfirmationCode() string { return b.confirmationCode }
func (b *Booking) BookingDate() time.Time   { return b.bookingDate }
func (b *Booking) StartTime() time.Time     { return b.startTime }
func (b *Booking) EndTime() time.Time       { return b.endTime }
func (b *Booking) Status() Status           { return b.status }
func (b *Booking) CheckInTime() *time.Time  { return b.checkInTime }
func (b *Booking) CheckOutTime() *time.Time { return b.checkOutTime }
func (b *Booking) SubtotalCents() int64     { return b.subtotalCents }
func (b *Booking) ProcessingFeeCents() int64 {
	return b.processingFeeCents
}
func (b *Booking) TotalPriceCents() int64    { return b.totalPriceCents }
func (b *Booking) NFTDiscountApplied() bool  { return b.nftDiscountApplied }
func (b *Booking) FinalChargeCents() *int64  { return b.finalChargeCents }
func (b *Booking) ActualHours() *float64     { return b.actualHours }
func (b *Booking) CreatedAt() time.Time      { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time      { return b.updatedAt }
func (b *Booking) IsOwnedBy(id uuid.UUID) bool {
	return b.userID == id
}

// BookedHours is the estimate duration fixed at creation.
func (b *Booking) BookedHours() float64 {
	return b.endTime.Sub(b.startTime).Hours()
}

// WindowStart is the earliest instant check-in is accepted.
func (b *Booking) WindowStart() time.Time {
	return b.startTime.Add(-checkInEarlyWindow)
}

// WindowEnd is the latest instant check-in is accepted.
func (b *Booking) WindowEnd() time.Time {
	return b.endTime.Add(checkInLateWindow)
}

// MinutesUntilWindow returns how many minutes remain before the
// check-in window opens, rounded up. Zero once the window is open.
func (b *Booking) MinutesUntilWindow(now time.Time) int {
	remaining := b.WindowStart().Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Minutes()))
}

// CheckIn transitions the booking to checked_in. This is the only way
// checked_in is ever entered. The error ladder mirrors the order the
// platform reports problems to the member.
func (b *Booking) CheckIn(now time.Time) error {
	switch b.status {
	case StatusCancelled:
		return ErrBookingCancelled
	case StatusCompleted:
		return ErrBookingCompleted
	}
	if b.checkInTime != nil {
		return ErrAlreadyCheckedIn
	}
	if now.Before(b.WindowStart()) {
		return ErrCheckInTooEarly
	}
	if now.After(b.WindowEnd()) {
		return ErrCheckInExpired
	}

	t := now
	b.checkInTime = &t
	b.status = StatusCheckedIn
	return nil
}

// CheckOut transitions the booking to completed and settles the final
// charge against actual usage. Elapsed time is clamped to a small
// positive floor so the pricing rate stays well-defined.
func (b *Booking) CheckOut(now time.Time) (pricing.Result, error) {
	if b.checkOutTime != nil {
		return pricing.Result{}, ErrAlreadyCheckedOut
	}
	if b.checkInTime == nil {
		return pricing.Result{}, ErrNotCheckedIn
	}

	actualHours := now.Sub(*b.checkInTime).Hours()
	if actualHours < minActualHours {
		actualHours = minActualHours
	}

	result, err := pricing.Reconcile(pricing.ReconcileInput{
		BookedHours:        b.BookedHours(),
		ActualHours:        actualHours,
		SubtotalCents:      b.subtotalCents,
		ProcessingFeeCents: b.processingFeeCents,
		NFTDiscountApplied: b.nftDiscountApplied,
	})
	if err != nil {
		return pricing.Result{}, err
	}

	t := now
	b.checkOutTime = &t
	b.status = StatusCompleted
	b.finalChargeCents = &result.FinalChargeCents
	b.actualHours = &actualHours
	return result, nil
}

// Cancel marks a not-yet-started booking cancelled. Terminal states
// and active stays are immutable.
func (b *Booking) Cancel() error {
	if b.status.IsTerminal() {
		return ErrTerminalState
	}
	if b.checkInTime != nil {
		return ErrAlreadyCheckedIn
	}
	b.status = StatusCancelled
	return nil
}
