package payment

import (
	"context"
	"log/slog"

	"coworkhub/internal/usecase/commands"
)

// LogGateway records settlement instructions without executing them.
// Capture and refund run in a separate billing system; this service
// only has to hand the instruction over.
type LogGateway struct{}

func NewLogGateway() commands.PaymentGateway {
	return &LogGateway{}
}

func (g *LogGateway) Report(ctx context.Context, instruction commands.PaymentInstruction) error {
	slog.Info("settlement instruction issued",
		"booking_id", instruction.BookingID,
		"user_id", instruction.UserID,
		"kind", instruction.Kind,
		"amount_cents", instruction.AmountCents,
		"description", instruction.Description,
	)
	return nil
}
