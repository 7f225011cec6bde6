//go:build unit || e2e

package builder

import (
	"time"

	reqdto "coworkhub/internal/handler/dto/request"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	WorkspaceID   uuid.UUID
	WorkspaceName string
	StartTime     time.Time
	EndTime       time.Time
	Status        string
	CheckInTime   *time.Time
	CheckOutTime  *time.Time
	SubtotalCents int64
	NFTDiscount   bool
}

func NewBookingBuilder() *BookingBuilder {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		WorkspaceID:   uuid.New(),
		WorkspaceName: "Focus Pod A",
		StartTime:     start,
		EndTime:       start.Add(4 * time.Hour),
		Status:        "confirmed",
		SubtotalCents: 6000,
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		WorkspaceID: b.WorkspaceID,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
	}
}

func (b *BookingBuilder) BuildReadModel() *queries.BookingView {
	fee := processingFee(b.SubtotalCents)
	return &queries.BookingView{
		ID:                 b.ID,
		UserID:             b.UserID,
		WorkspaceID:        b.WorkspaceID,
		WorkspaceName:      b.WorkspaceName,
		ConfirmationCode:   "CWH-TEST0001",
		BookingDate:        b.StartTime.Truncate(24 * time.Hour),
		StartTime:          b.StartTime,
		EndTime:            b.EndTime,
		Status:             b.Status,
		CheckInTime:        b.CheckInTime,
		CheckOutTime:       b.CheckOutTime,
		SubtotalCents:      b.SubtotalCents,
		ProcessingFeeCents: fee,
		TotalPriceCents:    b.SubtotalCents + fee,
		NFTDiscountApplied: b.NFTDiscount,
		CreatedAt:          b.StartTime.Add(-24 * time.Hour),
		UpdatedAt:          b.StartTime.Add(-24 * time.Hour),
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	fee := processingFee(b.SubtotalCents)
	return &queries.BookingListItem{
		ID:              b.ID,
		WorkspaceName:   b.WorkspaceName,
		StartTime:       b.StartTime,
		EndTime:         b.EndTime,
		Status:          b.Status,
		TotalPriceCents: b.SubtotalCents + fee,
		CreatedAt:       b.StartTime.Add(-24 * time.Hour),
	}
}

// Fluent builder methods
func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithStatus(status string) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) CheckedIn(at time.Time) *BookingBuilder {
	b.Status = "checked_in"
	b.CheckInTime = &at
	return b
}

func (b *BookingBuilder) Completed(in, out time.Time) *BookingBuilder {
	b.Status = "completed"
	b.CheckInTime = &in
	b.CheckOutTime = &out
	return b
}

// flat 2.9% plus 30 cents, rounded half away from zero
func processingFee(subtotalCents int64) int64 {
	return (subtotalCents*29+500)/1000 + 30
}
