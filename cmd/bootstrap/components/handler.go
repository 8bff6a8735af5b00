package components

import (
	"credshop/internal/handler"
	"credshop/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCheckoutHandler,
		api.NewOrderHandler,
	),
	fx.Invoke(handler.NewRouter),
)
