package commands

import (
	"context"

	"coworkhub/internal/domain/order"

	"github.com/google/uuid"
)

// PaymentInstruction tells the payment provider what to do after a
// check-out settles. Execution (capture, refund) happens outside this
// service.
type PaymentInstruction struct {
	BookingID   uuid.UUID
	UserID      uuid.UUID
	Kind        string // "charge" or "refund"
	AmountCents int64
	Description string
}

const (
	PaymentKindCharge = "charge"
	PaymentKindRefund = "refund"
)

// PaymentGateway receives settlement deltas produced by check-out
// reconciliation. A failed report must not roll back the check-out;
// implementations are expected to queue and retry on their side.
type PaymentGateway interface {
	Report(ctx context.Context, instruction PaymentInstruction) error
}

// CartStore keeps the per-member café cart between requests. Carts are
// session state, not domain state: totals are never stored, only lines.
type CartStore interface {
	Get(ctx context.Context, userID uuid.UUID) (order.Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart order.Cart) error
	Clear(ctx context.Context, userID uuid.UUID) error
}
