package response

import (
	"time"

	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type BookingResponse struct {
	ID                 uuid.UUID  `json:"id"`
	UserID             uuid.UUID  `json:"userId"`
	WorkspaceID        uuid.UUID  `json:"workspaceId"`
	WorkspaceName      string     `json:"workspaceName"`
	ConfirmationCode   string     `json:"confirmationCode"`
	BookingDate        time.Time  `json:"bookingDate"`
	StartTime          time.Time  `json:"startTime"`
	EndTime            time.Time  `json:"endTime"`
	Status             string     `json:"status"`
	CheckInTime        *time.Time `json:"checkInTime,omitempty"`
	CheckOutTime       *time.Time `json:"checkOutTime,omitempty"`
	SubtotalCents      int64      `json:"subtotalCents"`
	ProcessingFeeCents int64      `json:"processingFeeCents"`
	TotalPriceCents    int64      `json:"totalPriceCents"`
	NFTDiscountApplied bool       `json:"nftDiscountApplied"`
	FinalChargeCents   *int64     `json:"finalChargeCents,omitempty"`
	ActualHours        *float64   `json:"actualHours,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

type BookingListResponse struct {
	ID              uuid.UUID `json:"id"`
	WorkspaceName   string    `json:"workspaceName"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"totalPriceCents"`
	CreatedAt       time.Time `json:"createdAt"`
}

type UsageResponse struct {
	BookedHours float64 `json:"bookedHours"`
	ActualHours float64 `json:"actualHours"`
	Description string  `json:"description"`
}

type ChargesResponse struct {
	InitialChargeCents int64 `json:"initialChargeCents"`
	FinalChargeCents   int64 `json:"finalChargeCents"`
	OverageCents       int64 `json:"overageCents"`
	RefundCents        int64 `json:"refundCents"`
}

type CheckOutResponse struct {
	Booking                   *BookingResponse `json:"booking"`
	Usage                     UsageResponse    `json:"usage"`
	Charges                   ChargesResponse  `json:"charges"`
	RequiresAdditionalPayment bool             `json:"requiresAdditionalPayment"`
	RequiresRefund            bool             `json:"requiresRefund"`
}

func FromBookingView(view *queries.BookingView) *BookingResponse {
	resp := &BookingResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromBookingListItem(item *queries.BookingListItem) *BookingListResponse {
	resp := &BookingListResponse{}
	_ = copier.Copy(resp, item)
	return resp
}

func FromCheckOutResult(result *commands.CheckOutResult) *CheckOutResponse {
	resp := &CheckOutResponse{
		Booking: FromBookingView(result.Booking),
	}
	_ = copier.Copy(&resp.Usage, &result.Usage)
	_ = copier.Copy(&resp.Charges, &result.Charges)
	resp.RequiresAdditionalPayment = result.RequiresAdditionalPayment
	resp.RequiresRefund = result.RequiresRefund
	return resp
}
