//go:build unit || e2e

package builder

import (
	"time"

	reqdto "coworkhub/internal/handler/dto/request"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	MenuItemID uuid.UUID
	ItemName   string
	PriceCents int64
	Quantity   int64
	NFTHolder  bool
}

func NewOrderBuilder() *OrderBuilder {
	return &OrderBuilder{
		ID:         uuid.New(),
		UserID:     uuid.New(),
		MenuItemID: uuid.New(),
		ItemName:   "Flat White",
		PriceCents: 450,
		Quantity:   2,
	}
}

func (o *OrderBuilder) BuildAddItemDTO() reqdto.AddCartItemRequest {
	return reqdto.AddCartItemRequest{
		MenuItemID: o.MenuItemID,
		Quantity:   o.Quantity,
	}
}

func (o *OrderBuilder) BuildMenuItemView() *queries.MenuItemView {
	return &queries.MenuItemView{
		ID:         o.MenuItemID,
		Name:       o.ItemName,
		Category:   "drinks",
		PriceCents: o.PriceCents,
		Available:  true,
	}
}

func (o *OrderBuilder) BuildReadModel() *queries.OrderView {
	subtotal := o.PriceCents * o.Quantity
	var discount int64
	if o.NFTHolder {
		discount = (subtotal + 5) / 10
	}
	return &queries.OrderView{
		ID:     o.ID,
		UserID: o.UserID,
		Items: []queries.OrderItemView{
			{
				MenuItemID:     o.MenuItemID,
				Name:           o.ItemName,
				UnitPriceCents: o.PriceCents,
				Quantity:       o.Quantity,
			},
		},
		SubtotalCents: subtotal,
		DiscountCents: discount,
		TotalCents:    subtotal - discount,
		CreatedAt:     time.Date(2026, 3, 10, 10, 30, 0, 0, time.UTC),
	}
}

// Fluent builder methods
func (o *OrderBuilder) WithUserID(id uuid.UUID) *OrderBuilder {
	o.UserID = id
	return o
}

func (o *OrderBuilder) WithQuantity(q int64) *OrderBuilder {
	o.Quantity = q
	return o
}

func (o *OrderBuilder) AsNFTHolder() *OrderBuilder {
	o.NFTHolder = true
	return o
}
