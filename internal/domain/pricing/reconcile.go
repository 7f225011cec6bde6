package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNonPositiveBookedHours signals a programming fault: booking
// creation guarantees a positive duration, so a zero or negative value
// can never come from user input.
var ErrNonPositiveBookedHours = errors.New("booked duration must be positive")

// Durations closer than one minute count as "used full booked time".
const equalityEpsilonHours = 1.0 / 60.0

// ReconcileInput carries the booking's stored estimate and the elapsed
// usage measured at check-out.
type ReconcileInput struct {
	BookedHours        float64
	ActualHours        float64
	SubtotalCents      int64
	ProcessingFeeCents int64
	NFTDiscountApplied bool
}

// Result is produced once per check-out and never mutated afterwards.
type Result struct {
	FinalChargeCents int64
	OverageCents     int64
	RefundCents      int64
	Description      string
}

// Reconcile settles the estimated charge against actual usage. The
// estimate's per-hour rate is applied to the elapsed hours; staying
// longer yields an overage, leaving early yields a refund. Any NFT
// discount is already baked into the stored subtotal, so the flag is
// informational only here. Pure function, no I/O.
func Reconcile(in ReconcileInput) (Result, error) {
	if in.BookedHours <= 0 {
		return Result{}, ErrNonPositiveBookedHours
	}

	estimated := in.SubtotalCents + in.ProcessingFeeCents

	diff := in.ActualHours - in.BookedHours
	if diff > -equalityEpsilonHours && diff < equalityEpsilonHours {
		return Result{
			FinalChargeCents: estimated,
			Description:      "Used full booked time",
		}, nil
	}

	// actual = estimated * actualHours / bookedHours, to the nearest cent
	actual := decimal.NewFromInt(estimated).
		Mul(decimal.NewFromFloat(in.ActualHours)).
		Div(decimal.NewFromFloat(in.BookedHours)).
		Round(0).
		IntPart()

	if diff > 0 {
		overage := actual - estimated
		return Result{
			FinalChargeCents: actual,
			OverageCents:     overage,
			Description: fmt.Sprintf("Stayed %.1f hours longer than booked - additional $%.2f charged",
				diff, CentsToDollars(overage)),
		}, nil
	}

	refund := estimated - actual
	return Result{
		FinalChargeCents: actual,
		RefundCents:      refund,
		Description: fmt.Sprintf("Left %.1f hours early - $%.2f refund due",
			-diff, CentsToDollars(refund)),
	}, nil
}
