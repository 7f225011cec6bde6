package booking

import (
	"crypto/rand"
	"errors"
	"time"

	"coworkhub/internal/domain/pricing"

	"github.com/google/uuid"
)

var (
	ErrZeroDuration      = errors.New("booking duration must be positive")
	ErrStartInPast       = errors.New("start time cannot be in the past")
	ErrSpansMidnight     = errors.New("booking must start and end on the same date")
	ErrInvalidHourlyRate = errors.New("workspace hourly rate must be positive")
)

// WorkspaceSpec is the slice of workspace state booking creation needs.
type WorkspaceSpec struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
}

// NewBooking creates a pending booking with its price estimate fixed at
// creation time: hourly rate times booked hours, the NFT loyalty
// discount baked into the subtotal when the member holds one, plus the
// processing fee. Check-out reconciles against exactly these numbers.
func NewBooking(
	userID uuid.UUID,
	ws WorkspaceSpec,
	startTime, endTime time.Time,
	nftHolder bool,
	now time.Time,
) (*Booking, error) {
	if !startTime.Before(endTime) {
		return nil, ErrInvalidTimeRange
	}
	if startTime.Before(now) {
		return nil, ErrStartInPast
	}
	sy, sm, sd := startTime.Date()
	ey, em, ed := endTime.Date()
	if sy != ey || sm != em || sd != ed {
		return nil, ErrSpansMidnight
	}
	if ws.HourlyRateCents <= 0 {
		return nil, ErrInvalidHourlyRate
	}

	hours := endTime.Sub(startTime).Hours()
	if hours <= 0 {
		return nil, ErrZeroDuration
	}

	subtotal := pricing.DollarsToCents(pricing.CentsToDollars(ws.HourlyRateCents) * hours)
	if nftHolder {
		subtotal -= pricing.NFTDiscountCents(subtotal)
	}
	fee := pricing.ProcessingFeeCents(subtotal)

	return &Booking{
		id:                 uuid.New(),
		userID:             userID,
		workspaceID:        ws.ID,
		confirmationCode:   newConfirmationCode(),
		bookingDate:        time.Date(sy, sm, sd, 0, 0, 0, 0, startTime.Location()),
		startTime:          startTime,
		endTime:            endTime,
		status:             StatusPending,
		subtotalCents:      subtotal,
		processingFeeCents: fee,
		totalPriceCents:    subtotal + fee,
		nftDiscountApplied: nftHolder,
	}, nil
}

const confirmationCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func newConfirmationCode() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// uuid entropy as a fallback keeps codes unique
		return "CW-" + uuid.New().String()[:8]
	}
	code := make([]byte, 8)
	for i, b := range buf {
		code[i] = confirmationCodeAlphabet[int(b)%len(confirmationCodeAlphabet)]
	}
	return "CW-" + string(code)
}
