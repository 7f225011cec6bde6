package bootstrap

import (
	"context"

	"coworkhub/internal/infra/cartstore"
	"coworkhub/internal/pkg/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RedisModule = fx.Module("redis",
	fx.Provide(
		NewRedis,
	),
)

func NewRedis(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	client := cartstore.NewRedisClient(cfg.Redis)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return cartstore.Ping(ctx, client)
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return client
}
