package response

import (
	"time"

	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CartItemResponse struct {
	MenuItemID     uuid.UUID `json:"menuItemId"`
	Name           string    `json:"name"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int64     `json:"quantity"`
	Instructions   *string   `json:"instructions,omitempty"`
}

type CartResponse struct {
	Items         []CartItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotalCents"`
	DiscountCents int64              `json:"discountCents"`
	TotalCents    int64              `json:"totalCents"`
}

type OrderResponse struct {
	ID            uuid.UUID          `json:"id"`
	UserID        uuid.UUID          `json:"userId"`
	Items         []CartItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotalCents"`
	DiscountCents int64              `json:"discountCents"`
	TotalCents    int64              `json:"totalCents"`
	CreatedAt     time.Time          `json:"createdAt"`
}

type MenuItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	PriceCents int64     `json:"priceCents"`
}

type WorkspaceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	HourlyRateCents int64     `json:"hourlyRateCents"`
	Capacity        int32     `json:"capacity"`
}

func FromCartQuote(quote *commands.CartQuote) *CartResponse {
	resp := &CartResponse{
		Items:         make([]CartItemResponse, len(quote.Items)),
		SubtotalCents: quote.SubtotalCents,
		DiscountCents: quote.DiscountCents,
		TotalCents:    quote.TotalCents,
	}
	for i, item := range quote.Items {
		_ = copier.Copy(&resp.Items[i], &item)
	}
	return resp
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	resp := &OrderResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromMenuItemView(view *queries.MenuItemView) *MenuItemResponse {
	resp := &MenuItemResponse{}
	_ = copier.Copy(resp, view)
	return resp
}

func FromWorkspaceView(view *queries.WorkspaceView) *WorkspaceResponse {
	resp := &WorkspaceResponse{}
	_ = copier.Copy(resp, view)
	return resp
}
