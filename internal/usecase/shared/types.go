package shared

import (
	"time"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on read-side query types
// (CQRS separation).
type WorkspaceSnapshot struct {
	ID              uuid.UUID
	Name            string
	HourlyRateCents int64
	Capacity        int32
}

type UserSnapshot struct {
	ID        uuid.UUID
	Email     string
	Role      string
	NFTHolder bool
	IsActive  bool
}

type MenuItemSnapshot struct {
	ID         uuid.UUID
	Name       string
	PriceCents int64
	Available  bool
}

// BookingSnapshot carries the full persisted state so commands can
// rebuild the domain entity and replay its transition rules.
type BookingSnapshot struct {
	ID                 uuid.UUID
	UserID             uuid.UUID
	WorkspaceID        uuid.UUID
	WorkspaceName      string
	ConfirmationCode   string
	BookingDate        time.Time
	StartTime          time.Time
	EndTime            time.Time
	Status             string
	CheckInTime        *time.Time
	CheckOutTime       *time.Time
	SubtotalCents      int64
	ProcessingFeeCents int64
	TotalPriceCents    int64
	NFTDiscountApplied bool
	FinalChargeCents   *int64
	ActualHours        *float64
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
