package components

import (
	"coworkhub/internal/infra/cartstore"
	"coworkhub/internal/infra/db"
	"coworkhub/internal/infra/payment"
	"coworkhub/internal/infra/readstore"
	"coworkhub/internal/infra/uow"
	"coworkhub/internal/pkg/config"
	"coworkhub/internal/usecase/commands"
	"coworkhub/internal/usecase/queries"
	"coworkhub/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var PersistenceModule = fx.Module("persistence",
	baseOption,
	readstoreModule,
	writeSideModule,
)

var baseOption = fx.Provide(
	NewDBTX,
)

var readstoreModule = fx.Module("persistence/readstore",
	fx.Provide(
		// Booking
		fx.Annotate(
			readstore.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		// Workspace
		fx.Annotate(
			readstore.NewWorkspaceReadStore,
			fx.As(new(queries.WorkspaceReadStore)),
		),
		// Menu
		fx.Annotate(
			readstore.NewMenuReadStore,
			fx.As(new(queries.MenuReadStore)),
		),
		// Order
		fx.Annotate(
			readstore.NewOrderReadStore,
			fx.As(new(queries.OrderReadStore)),
		),
		// User
		fx.Annotate(
			readstore.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
	),
)

var writeSideModule = fx.Module("persistence/write",
	fx.Provide(
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Cart
		fx.Annotate(
			NewCartStore,
			fx.As(new(commands.CartStore)),
		),
		// Payment
		payment.NewLogGateway,
	),
)

// NewDBTX exposes the pool as the query interface shared by readstores.
func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewCartStore(client *redis.Client, cfg config.Config) *cartstore.RedisCartStore {
	return cartstore.NewRedisCartStore(client, cfg.Redis.CartTTL)
}
