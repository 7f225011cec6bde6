package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"user_id"`
	WorkspaceID        uuid.UUID  `json:"workspace_id"`
	WorkspaceName      string     `json:"workspace_name"`
	ConfirmationCode   string     `json:"confirmation_code"`
	BookingDate        time.Time  `json:"booking_date"`
	StartTime          time.Time  `json:"start_time"`
	EndTime            time.Time  `json:"end_time"`
	Status             string     `json:"status"`
	CheckInTime        *time.Time `json:"check_in_time,omitempty"`
	CheckOutTime       *time.Time `json:"check_out_time,omitempty"`
	SubtotalCents      int64      `json:"subtotal_cents"`
	ProcessingFeeCents int64      `json:"processing_fee_cents"`
	TotalPriceCents    int64      `json:"total_price_cents"`
	NFTDiscountApplied bool       `json:"nft_discount_applied"`
	FinalChargeCents   *int64     `json:"final_charge_cents,omitempty"`
	ActualHours        *float64   `json:"actual_hours,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type BookingListItem struct {
	ID              uuid.UUID `json:"id"`
	WorkspaceName   string    `json:"workspace_name"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type WorkspaceView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	HourlyRateCents int64     `json:"hourly_rate_cents"`
	Capacity        int32     `json:"capacity"`
}

type MenuItemView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	PriceCents int64     `json:"price_cents"`
	Available  bool      `json:"available"`
}

type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	Items         []OrderItemView `json:"items"`
	SubtotalCents int64           `json:"subtotal_cents"`
	DiscountCents int64           `json:"discount_cents"`
	TotalCents    int64           `json:"total_cents"`
	CreatedAt     time.Time       `json:"created_at"`
}

type OrderItemView struct {
	MenuItemID     uuid.UUID `json:"menu_item_id"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int64     `json:"quantity"`
	Instructions   *string   `json:"instructions,omitempty"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	NFTHolder bool      `json:"nft_holder"`
	IsActive  bool      `json:"is_active"`
}
