package repository

import (
	"context"

	"coworkhub/internal/domain/order"
	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"

	"github.com/google/uuid"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

const createOrderSQL = `
INSERT INTO orders (id, user_id, subtotal_cents, discount_cents, total_cents, nft_discount)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`

const createOrderItemSQL = `
INSERT INTO order_items (order_id, menu_item_id, name, unit_price_cents, quantity, instructions)
VALUES ($1, $2, $3, $4, $5, $6)`

func (r *OrderRepository) Create(ctx context.Context, tx db.DBTX, o *order.Order) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createOrderSQL,
		o.ID(), o.UserID(), o.SubtotalCents(), o.DiscountCents(), o.TotalCents(), o.NFTDiscount(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create order", err, classifyPgErr(err))
	}

	for _, item := range o.Items() {
		if _, err := tx.Exec(ctx, createOrderItemSQL,
			id, item.MenuItemID, item.Name, item.UnitPriceCents, item.Quantity, item.Instructions,
		); err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to create order item", err, classifyPgErr(err))
		}
	}
	return id, nil
}
