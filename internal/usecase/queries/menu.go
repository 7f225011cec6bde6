package queries

import (
	"context"

	"coworkhub/internal/infra"
	"coworkhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrWorkspaceNotFound = errs.New("workspace not found")

type MenuQueries interface {
	ListItems(ctx context.Context) ([]*MenuItemView, error)
}

type WorkspaceQueries interface {
	List(ctx context.Context) ([]*WorkspaceView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*WorkspaceView, error)
}

type MenuReadStore interface {
	FindAvailable(ctx context.Context) ([]*MenuItemView, error)
}

type WorkspaceReadStore interface {
	FindAll(ctx context.Context) ([]*WorkspaceView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*WorkspaceView, error)
}

type menuQueriesImpl struct {
	store MenuReadStore
}

func NewMenuQueries(store MenuReadStore) MenuQueries {
	return &menuQueriesImpl{store: store}
}

func (q *menuQueriesImpl) ListItems(ctx context.Context) ([]*MenuItemView, error) {
	return q.store.FindAvailable(ctx)
}

type workspaceQueriesImpl struct {
	store WorkspaceReadStore
}

func NewWorkspaceQueries(store WorkspaceReadStore) WorkspaceQueries {
	return &workspaceQueriesImpl{store: store}
}

func (q *workspaceQueriesImpl) List(ctx context.Context) ([]*WorkspaceView, error) {
	return q.store.FindAll(ctx)
}

func (q *workspaceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*WorkspaceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrWorkspaceNotFound
		}
		return nil, err
	}
	return view, nil
}
