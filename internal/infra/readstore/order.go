package readstore

import (
	"context"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/pgconv"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type OrderReadStore struct {
	db db.DBTX
}

func NewOrderReadStore(db db.DBTX) *OrderReadStore {
	return &OrderReadStore{db: db}
}

const findOrderByIDSQL = `
SELECT id, user_id, subtotal_cents, discount_cents, total_cents, created_at
FROM orders
WHERE id = $1`

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var view queries.OrderView
	err := r.db.QueryRow(ctx, findOrderByIDSQL, id).Scan(
		&view.ID, &view.UserID, &view.SubtotalCents, &view.DiscountCents,
		&view.TotalCents, &view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("order not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find order by ID", err)
	}

	items, err := r.findItems(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Items = items
	return &view, nil
}

const findOrdersByUserSQL = `
SELECT id, user_id, subtotal_cents, discount_cents, total_cents, created_at
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2`

func (r *OrderReadStore) FindByUserID(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.OrderView, error) {
	rows, err := r.db.Query(ctx, findOrdersByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find orders by user ID", err)
	}
	defer rows.Close()

	var result []*queries.OrderView
	for rows.Next() {
		view := &queries.OrderView{}
		if err := rows.Scan(
			&view.ID, &view.UserID, &view.SubtotalCents, &view.DiscountCents,
			&view.TotalCents, &view.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order rows", err)
	}

	for _, view := range result {
		items, err := r.findItems(ctx, view.ID)
		if err != nil {
			return nil, err
		}
		view.Items = items
	}
	return result, nil
}

const findOrderItemsSQL = `
SELECT menu_item_id, name, unit_price_cents, quantity, instructions
FROM order_items
WHERE order_id = $1
ORDER BY name`

func (r *OrderReadStore) findItems(ctx context.Context, orderID uuid.UUID) ([]queries.OrderItemView, error) {
	rows, err := r.db.Query(ctx, findOrderItemsSQL, orderID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find order items", err)
	}
	defer rows.Close()

	var items []queries.OrderItemView
	for rows.Next() {
		var (
			item         queries.OrderItemView
			instructions pgtype.Text
		)
		if err := rows.Scan(
			&item.MenuItemID, &item.Name, &item.UnitPriceCents, &item.Quantity, &instructions,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan order item", err)
		}
		item.Instructions = pgconv.StringPtrFromPgtype(instructions)
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate order item rows", err)
	}
	return items, nil
}
