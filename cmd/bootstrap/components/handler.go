package components

import (
	"coworkhub/internal/handler"
	"coworkhub/internal/handler/api"
	"coworkhub/internal/handler/middleware"
	"coworkhub/internal/pkg/config"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		func(cfg config.Config) config.CookieConfig { return cfg.Cookie },
		api.NewAuthHandler,
		api.NewBookingHandler,
		api.NewOrderHandler,
		api.NewWorkspaceHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
