package readstore

import (
	"context"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/pgconv"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type MenuReadStore struct {
	db db.DBTX
}

func NewMenuReadStore(db db.DBTX) *MenuReadStore {
	return &MenuReadStore{db: db}
}

const findMenuItemByIDSQL = `
SELECT id, name, category, price_cents, available
FROM menu_items
WHERE id = $1`

func (r *MenuReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.MenuItemView, error) {
	var view queries.MenuItemView
	err := r.db.QueryRow(ctx, findMenuItemByIDSQL, id).Scan(
		&view.ID, &view.Name, &view.Category, &view.PriceCents, &view.Available,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("menu item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find menu item by ID", err)
	}
	return &view, nil
}

const findAvailableMenuItemsSQL = `
SELECT id, name, category, price_cents, available
FROM menu_items
WHERE available
ORDER BY category, name`

func (r *MenuReadStore) FindAvailable(ctx context.Context) ([]*queries.MenuItemView, error) {
	rows, err := r.db.Query(ctx, findAvailableMenuItemsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list menu items", err)
	}
	defer rows.Close()

	var result []*queries.MenuItemView
	for rows.Next() {
		view := &queries.MenuItemView{}
		if err := rows.Scan(&view.ID, &view.Name, &view.Category, &view.PriceCents, &view.Available); err != nil {
			return nil, infra.WrapRepoErr("failed to scan menu item", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate menu item rows", err)
	}
	return result, nil
}
