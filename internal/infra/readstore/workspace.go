package readstore

import (
	"context"

	"coworkhub/internal/infra"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/pkg/pgconv"
	"coworkhub/internal/usecase/queries"

	"github.com/google/uuid"
)

type WorkspaceReadStore struct {
	db db.DBTX
}

func NewWorkspaceReadStore(db db.DBTX) *WorkspaceReadStore {
	return &WorkspaceReadStore{db: db}
}

const findWorkspaceByIDSQL = `
SELECT id, name, hourly_rate_cents, capacity
FROM workspaces
WHERE id = $1`

func (r *WorkspaceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.WorkspaceView, error) {
	var view queries.WorkspaceView
	err := r.db.QueryRow(ctx, findWorkspaceByIDSQL, id).Scan(
		&view.ID, &view.Name, &view.HourlyRateCents, &view.Capacity,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("workspace not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find workspace by ID", err)
	}
	return &view, nil
}

const findAllWorkspacesSQL = `
SELECT id, name, hourly_rate_cents, capacity
FROM workspaces
ORDER BY name`

func (r *WorkspaceReadStore) FindAll(ctx context.Context) ([]*queries.WorkspaceView, error) {
	rows, err := r.db.Query(ctx, findAllWorkspacesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list workspaces", err)
	}
	defer rows.Close()

	var result []*queries.WorkspaceView
	for rows.Next() {
		view := &queries.WorkspaceView{}
		if err := rows.Scan(&view.ID, &view.Name, &view.HourlyRateCents, &view.Capacity); err != nil {
			return nil, infra.WrapRepoErr("failed to scan workspace", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate workspace rows", err)
	}
	return result, nil
}
